package repository_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/pos"
	repository "github.com/aaravmahajanofficial/pos-terminal/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()

	id, err := uuid.NewRandom()
	require.NoError(t, err)

	return id
}

func TestSaleRepository(t *testing.T) {
	submitSQL := `SELECT invoice_no, payment_id FROM insert_new_payment_and_transaction\(\$1::jsonb, \$2::jsonb\)`

	header := models.SaleHeader{
		IdempotencyKey: uuid.MustParse("5b0f7a4e-3f4c-4d6a-9a53-2b1e8d8b9c11"),
		AmountRendered: decimal.RequireFromString("30"),
		Voucher:        decimal.Zero,
		GrandTotal:     decimal.RequireFromString("25"),
		Change:         decimal.RequireFromString("5"),
		CashierID:      "cashier-1",
	}
	lines := []models.SaleLine{{
		SKU: "A", ItemName: "Apple", Quantity: 3,
		UnitCost: decimal.RequireFromString("10"), Discount: decimal.RequireFromString("5"), Total: decimal.RequireFromString("25"),
	}}

	headerJSON, err := json.Marshal(header)
	require.NoError(t, err)
	linesJSON, err := json.Marshal(lines)
	require.NoError(t, err)

	t.Run("Success - Single Atomic Call", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewSaleRepo(db)

		mock.ExpectQuery(submitSQL).
			WithArgs(headerJSON, linesJSON).
			WillReturnRows(sqlmock.NewRows([]string{"invoice_no", "payment_id"}).AddRow("INV-000123", "PAY-000045"))

		// Act
		receipt, err := repo.SubmitSale(t.Context(), header, lines)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "INV-000123", receipt.InvoiceNo)
		assert.Equal(t, "PAY-000045", receipt.PaymentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Procedure Raises", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewSaleRepo(db)

		mock.ExpectQuery(submitSQL).
			WithArgs(headerJSON, linesJSON).
			WillReturnError(&pq.Error{Code: "P0001", Message: "Insufficient stock for Apple"})

		// Act
		receipt, err := repo.SubmitSale(t.Context(), header, lines)

		// Assert
		assert.Nil(t, receipt)

		var rejected *pos.RejectedError

		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, "Insufficient stock for Apple", rejected.Reason)
	})

	t.Run("Failure - No Row", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewSaleRepo(db)

		mock.ExpectQuery(submitSQL).WithArgs(headerJSON, linesJSON).WillReturnError(sql.ErrNoRows)

		// Act
		_, err := repo.SubmitSale(t.Context(), header, lines)

		// Assert
		var rejected *pos.RejectedError

		assert.ErrorAs(t, err, &rejected)
	})

	t.Run("Failure - Transport Error", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewSaleRepo(db)
		netErr := errors.New("broken pipe")

		mock.ExpectQuery(submitSQL).WithArgs(headerJSON, linesJSON).WillReturnError(netErr)

		// Act
		_, err := repo.SubmitSale(t.Context(), header, lines)

		// Assert
		var rejected *pos.RejectedError

		assert.False(t, errors.As(err, &rejected))
		assert.ErrorIs(t, err, netErr)
	})
}
