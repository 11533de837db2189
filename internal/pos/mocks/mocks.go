// Package mocks provides testify mocks for the terminal's collaborators.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/stretchr/testify/mock"
)

type CatalogLookup struct {
	mock.Mock
}

func (m *CatalogLookup) Lookup(ctx context.Context, sku string) (*models.CatalogItem, error) {
	args := m.Called(ctx, sku)

	item, _ := args.Get(0).(*models.CatalogItem)

	return item, args.Error(1)
}

type SaleBackend struct {
	mock.Mock
}

func (m *SaleBackend) SubmitSale(ctx context.Context, header models.SaleHeader, lines []models.SaleLine) (*models.SaleReceipt, error) {
	args := m.Called(ctx, header, lines)

	receipt, _ := args.Get(0).(*models.SaleReceipt)

	return receipt, args.Error(1)
}

type SessionChecker struct {
	mock.Mock
}

func (m *SessionChecker) IsSessionValid(ctx context.Context, sessionID, cashierID string) (bool, error) {
	args := m.Called(ctx, sessionID, cashierID)

	return args.Bool(0), args.Error(1)
}
