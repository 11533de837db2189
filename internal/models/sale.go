package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleHeader is the immutable header submitted with a sale.
type SaleHeader struct {
	IdempotencyKey uuid.UUID       `json:"idempotency_key"`
	CustomerName   *string         `json:"customer_name"`
	CustomerID     *uuid.UUID      `json:"customer_id"`
	AmountRendered decimal.Decimal `json:"amount_rendered"`
	Voucher        decimal.Decimal `json:"voucher"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	Change         decimal.Decimal `json:"change"`
	CashierID      string          `json:"cashier_id"`
	TransactedAt   *time.Time      `json:"transacted_at,omitempty"`
}

type SaleLine struct {
	SKU      string          `json:"sku"`
	ItemName string          `json:"item_name"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Total    decimal.Decimal `json:"total"`
	Discount decimal.Decimal `json:"discount"`
	Quantity int             `json:"quantity"`
}

type SaleRequest struct {
	Header SaleHeader `json:"header"`
	Lines  []SaleLine `json:"lines"`
}

type SaleReceipt struct {
	InvoiceNo string `json:"invoice_no"`
	PaymentID string `json:"payment_id"`
}

type CheckoutResponse struct {
	Receipt *SaleReceipt `json:"receipt"`
	Refocus string       `json:"refocus"`
}
