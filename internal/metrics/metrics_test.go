package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCheckout(t *testing.T) {
	before := testutil.ToFloat64(checkoutTotal.WithLabelValues(OutcomeRejected))

	ObserveCheckout(OutcomeRejected, 120*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(checkoutTotal.WithLabelValues(OutcomeRejected)))
}

func TestCartLineAdded(t *testing.T) {
	before := testutil.ToFloat64(cartLinesAdded)

	CartLineAdded()
	CartLineAdded()

	assert.Equal(t, before+2, testutil.ToFloat64(cartLinesAdded))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v1/terminal/lines/{sku}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Middleware(mux)
	counter := httpRequestsTotal.WithLabelValues("204", http.MethodDelete, "DELETE /api/v1/terminal/lines/{sku}")
	before := testutil.ToFloat64(counter)

	// Act
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/terminal/lines/4800016", nil))

	// Assert
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
