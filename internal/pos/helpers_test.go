package pos_test

import (
	"testing"

	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/pos/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func ptr[T any](v T) *T {
	return &v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "expected %s, got %s %v", want, got.String(), msgAndArgs)
}

// stubCatalog knows sku "A" at 10.00 and "B" at 50.00.
func stubCatalog() *mocks.CatalogLookup {
	catalog := &mocks.CatalogLookup{}

	catalog.On("Lookup", mock.Anything, "A").Return(&models.CatalogItem{
		SKU: "A", ItemName: "Apple", UnitPrice: dec("10.00"), AvailableStock: 40,
	}, nil).Maybe()

	catalog.On("Lookup", mock.Anything, "B").Return(&models.CatalogItem{
		SKU: "B", ItemName: "Bread", UnitPrice: dec("50.00"), AvailableStock: 5,
	}, nil).Maybe()

	return catalog
}
