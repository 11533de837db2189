// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	repository "github.com/aaravmahajanofficial/pos-terminal/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	args := m.Called(ctx, sku)

	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

type CustomerRepository struct {
	mock.Mock
}

func (m *CustomerRepository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)

	customer, _ := args.Get(0).(*models.Customer)

	return customer, args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) CreateSession(ctx context.Context, sessionID, cashierID string, ttl time.Duration) error {
	return m.Called(ctx, sessionID, cashierID, ttl).Error(0)
}

func (m *SessionRepository) IsSessionValid(ctx context.Context, sessionID, cashierID string) (bool, error) {
	args := m.Called(ctx, sessionID, cashierID)

	return args.Bool(0), args.Error(1)
}

func (m *SessionRepository) RevokeSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (repository.LoginAttempt, error) {
	args := m.Called(ctx, email)

	return args.Get(0).(repository.LoginAttempt), args.Error(1)
}
