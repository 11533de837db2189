package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateFieldsRequest carries raw operator input; nil means "leave unchanged".
type UpdateFieldsRequest struct {
	Barcode       *string `json:"barcode,omitempty"`
	Quantity      *string `json:"quantity,omitempty"`
	Discount      *string `json:"discount,omitempty"`
	Payment       *string `json:"payment,omitempty"`
	Voucher       *string `json:"voucher,omitempty"`
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	Backdate      *string `json:"backdate,omitempty"`
	GrandTotal    *string `json:"grand_total,omitempty"`
	Change        *string `json:"change,omitempty"`
}

type FieldsView struct {
	Barcode       string          `json:"barcode"`
	Quantity      *int            `json:"quantity"`
	Discount      decimal.Decimal `json:"discount"`
	Payment       decimal.Decimal `json:"payment"`
	Voucher       decimal.Decimal `json:"voucher"`
	CustomerName  *string         `json:"customer_name"`
	CustomerEmail *string         `json:"customer_email,omitempty"`
	Backdate      *time.Time      `json:"backdate,omitempty"`
}

type TerminalView struct {
	Fields     FieldsView      `json:"fields"`
	Lines      []CartLine      `json:"lines"`
	CustomerID *uuid.UUID      `json:"customer_id"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Change     decimal.Decimal `json:"change"`
	InFlight   bool            `json:"in_flight"`
}
