package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/pos-terminal/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/testutils"
	"github.com/aaravmahajanofficial/pos-terminal/internal/utils/response"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// createAuthenticatedRequest builds a request carrying the claims the auth middleware would set.
func createAuthenticatedRequest(method, url string, body []byte) (*http.Request, *models.Claims) {
	req := testutils.CreateTestRequestWithContext(method, url, bytes.NewReader(body), uuid.New(), "sess-1", nil)

	claims, _ := middleware.ClaimsFromContext(req.Context())

	return req, claims
}

func createAnonymousRequest(method, url string, body []byte) *http.Request {
	return testutils.CreateTestRequestWithoutContext(method, url, bytes.NewReader(body), nil)
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	return resp
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}

func ptr[T any](v T) *T {
	return &v
}

func sampleView() models.TerminalView {
	return models.TerminalView{
		Lines: []models.CartLine{{
			SKU: "A", ItemName: "Apple", UnitPrice: decimal.NewFromInt(10), Quantity: 2, Total: decimal.NewFromInt(20),
		}},
		GrandTotal: decimal.NewFromInt(20),
	}
}
