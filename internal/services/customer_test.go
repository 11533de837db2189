package service_test

import (
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/pos-terminal/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_GetCustomer(t *testing.T) {
	id := uuid.New()
	customer := &models.Customer{ID: id, Name: "Juan Dela Cruz", Email: "juan@example.com"}

	t.Run("Success - Loads Then Serves From Cache", func(t *testing.T) {
		// Arrange
		repo := new(mocks.CustomerRepository)
		svc := service.NewCustomerService(repo, newMemoryCache())

		repo.On("GetCustomerByID", mock.Anything, id).Return(customer, nil).Once()

		// Act
		first, err1 := svc.GetCustomer(t.Context(), id)
		second, err2 := svc.GetCustomer(t.Context(), id)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, customer.Name, first.Name)
		assert.Equal(t, customer.Email, second.Email)
		repo.AssertNumberOfCalls(t, "GetCustomerByID", 1)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		repo := new(mocks.CustomerRepository)
		svc := service.NewCustomerService(repo, newMemoryCache())

		repo.On("GetCustomerByID", mock.Anything, id).Return(nil, sql.ErrNoRows).Once()

		// Act
		got, err := svc.GetCustomer(t.Context(), id)

		// Assert
		assert.Nil(t, got)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		repo := new(mocks.CustomerRepository)
		svc := service.NewCustomerService(repo, newMemoryCache())

		repo.On("GetCustomerByID", mock.Anything, id).Return(nil, errors.New("timeout")).Once()

		// Act
		got, err := svc.GetCustomer(t.Context(), id)

		// Assert
		assert.Nil(t, got)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))
	})
}
