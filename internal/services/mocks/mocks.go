// Package mocks provides testify mocks for the service interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/pos"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type TerminalService struct {
	mock.Mock
}

func (m *TerminalService) View(ctx context.Context, sessionID string) models.TerminalView {
	return m.Called(ctx, sessionID).Get(0).(models.TerminalView)
}

func (m *TerminalService) UpdateFields(ctx context.Context, sessionID string, req *models.UpdateFieldsRequest) (models.TerminalView, error) {
	args := m.Called(ctx, sessionID, req)

	return args.Get(0).(models.TerminalView), args.Error(1)
}

func (m *TerminalService) AddLine(ctx context.Context, sessionID string, req *models.AddLineRequest) (models.TerminalView, error) {
	args := m.Called(ctx, sessionID, req)

	return args.Get(0).(models.TerminalView), args.Error(1)
}

func (m *TerminalService) RemoveLine(ctx context.Context, sessionID, sku string) (models.TerminalView, error) {
	args := m.Called(ctx, sessionID, sku)

	return args.Get(0).(models.TerminalView), args.Error(1)
}

func (m *TerminalService) SelectCustomer(ctx context.Context, sessionID string, customerID uuid.UUID) (models.TerminalView, error) {
	args := m.Called(ctx, sessionID, customerID)

	return args.Get(0).(models.TerminalView), args.Error(1)
}

func (m *TerminalService) Clear(ctx context.Context, sessionID string) (models.TerminalView, error) {
	args := m.Called(ctx, sessionID)

	return args.Get(0).(models.TerminalView), args.Error(1)
}

func (m *TerminalService) Checkout(ctx context.Context, identity pos.Identity) (*models.CheckoutResponse, error) {
	args := m.Called(ctx, identity)

	resp, _ := args.Get(0).(*models.CheckoutResponse)

	return resp, args.Error(1)
}

func (m *TerminalService) Release(sessionID string) {
	m.Called(sessionID)
}

func (m *TerminalService) EvictIdle(cutoff time.Time) int {
	return m.Called(cutoff).Int(0)
}

func (m *TerminalService) RunEvictor(ctx context.Context, idle time.Duration) {
	m.Called(ctx, idle)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) Lookup(ctx context.Context, sku string) (*models.CatalogItem, error) {
	args := m.Called(ctx, sku)

	item, _ := args.Get(0).(*models.CatalogItem)

	return item, args.Error(1)
}

func (m *CatalogService) GetItem(ctx context.Context, sku string) (*models.CatalogItem, error) {
	args := m.Called(ctx, sku)

	item, _ := args.Get(0).(*models.CatalogItem)

	return item, args.Error(1)
}

type CustomerService struct {
	mock.Mock
}

func (m *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)

	customer, _ := args.Get(0).(*models.Customer)

	return customer, args.Error(1)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	resp, _ := args.Get(0).(*models.LoginResponse)

	return resp, args.Error(1)
}

func (m *UserService) Logout(ctx context.Context, claims *models.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

type ReceiptService struct {
	mock.Mock
}

func (m *ReceiptService) SendReceipt(ctx context.Context, to string, sale models.SaleRequest, receipt *models.SaleReceipt) error {
	return m.Called(ctx, to, sale, receipt).Error(0)
}
