package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/aaravmahajanofficial/pos-terminal/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func TestProductRepository(t *testing.T) {
	productSQL := `SELECT id, sku, name, price, stock_quantity, status, created_at, updated_at\s+FROM products\s+WHERE sku = \$1 AND status = 'active'`
	columns := []string{"id", "sku", "name", "price", "stock_quantity", "status", "created_at", "updated_at"}

	t.Run("Success - Found", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewProductRepo(db)
		now := time.Now()

		mock.ExpectQuery(productSQL).
			WithArgs("4800016").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(7, "4800016", "Instant Noodles", "14.75", 120, "active", now, now))

		// Act
		product, err := repo.GetProductBySKU(t.Context(), "4800016")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(7), product.ID)
		assert.Equal(t, "Instant Noodles", product.Name)
		assert.True(t, decimal.RequireFromString("14.75").Equal(product.Price))
		assert.Equal(t, int64(120), product.StockQuantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewProductRepo(db)

		mock.ExpectQuery(productSQL).WithArgs("nope").WillReturnError(sql.ErrNoRows)

		// Act
		product, err := repo.GetProductBySKU(t.Context(), "nope")

		// Assert
		assert.Nil(t, product)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewProductRepo(db)
		dbErr := errors.New("connection refused")

		mock.ExpectQuery(productSQL).WithArgs("4800016").WillReturnError(dbErr)

		// Act
		_, err := repo.GetProductBySKU(t.Context(), "4800016")

		// Assert
		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "querying product 4800016")
	})
}

func TestCustomerRepository(t *testing.T) {
	customerSQL := `SELECT id, name, email, phone, created_at\s+FROM customers\s+WHERE id = \$1`

	t.Run("Success - Nullable Contact Fields", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCustomerRepo(db)
		id := mustUUID(t)

		mock.ExpectQuery(customerSQL).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "created_at"}).
				AddRow(id.String(), "Ana Cruz", nil, "0917", time.Now()))

		// Act
		customer, err := repo.GetCustomerByID(t.Context(), id)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Ana Cruz", customer.Name)
		assert.Empty(t, customer.Email)
		assert.Equal(t, "0917", customer.Phone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCustomerRepo(db)
		id := mustUUID(t)

		mock.ExpectQuery(customerSQL).WithArgs(id).WillReturnError(sql.ErrNoRows)

		// Act
		customer, err := repo.GetCustomerByID(t.Context(), id)

		// Assert
		assert.Nil(t, customer)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestUserRepository(t *testing.T) {
	userSQL := `SELECT id, email, password, name, created_at, updated_at\s+FROM users\s+WHERE email = \$1 AND is_active`

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		id := mustUUID(t)
		now := time.Now()

		mock.ExpectQuery(userSQL).
			WithArgs("till@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "created_at", "updated_at"}).
				AddRow(id.String(), "till@example.com", "$2a$10$hash", "Till One", now, now))

		// Act
		user, err := repo.GetUserByEmail(t.Context(), "till@example.com")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "$2a$10$hash", user.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown Email", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(userSQL).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

		// Act
		user, err := repo.GetUserByEmail(t.Context(), "ghost@example.com")

		// Assert
		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestNewFromDB(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectClose()

	repo := repository.NewFromDB(db)

	assert.NotNil(t, repo.Products)
	assert.NotNil(t, repo.Customers)
	assert.NotNil(t, repo.Users)
	assert.NotNil(t, repo.Sales)
	require.NoError(t, repo.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
