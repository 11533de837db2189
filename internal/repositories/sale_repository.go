package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/pos"
	"github.com/lib/pq"
)

type SaleRepository interface {
	SubmitSale(ctx context.Context, header models.SaleHeader, lines []models.SaleLine) (*models.SaleReceipt, error)
}

type saleRepository struct {
	DB *sql.DB
}

func NewSaleRepo(db *sql.DB) SaleRepository {
	return &saleRepository{DB: db}
}

// SubmitSale records the payment and its transaction lines in one statement. The procedure owns the
// transaction and enforces uniqueness of the idempotency key. The caller's context is the only deadline.
func (r *saleRepository) SubmitSale(ctx context.Context, header models.SaleHeader, lines []models.SaleLine) (*models.SaleReceipt, error) {

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sale header: %w", err)
	}

	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sale lines: %w", err)
	}

	query := `SELECT invoice_no, payment_id FROM insert_new_payment_and_transaction($1::jsonb, $2::jsonb)`

	receipt := &models.SaleReceipt{}

	err = r.DB.QueryRowContext(ctx, query, headerJSON, linesJSON).Scan(&receipt.InvoiceNo, &receipt.PaymentID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return nil, &pos.RejectedError{Reason: pqErr.Message}
		}

		if errors.Is(err, sql.ErrNoRows) {
			return nil, &pos.RejectedError{Reason: "Sale was not recorded"}
		}

		return nil, fmt.Errorf("submitting sale: %w", err)
	}

	return receipt, nil
}
