package models

import (
	"github.com/shopspring/decimal"
)

// CartLine is one aggregated product position in the current sale.
type CartLine struct {
	SKU       string          `json:"sku"`
	ItemName  string          `json:"item_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

type AddLineRequest struct {
	Barcode  *string `json:"barcode,omitempty"`
	Quantity *string `json:"quantity,omitempty"`
	Discount *string `json:"discount,omitempty"`
}
