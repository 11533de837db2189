package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64           `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CatalogItem is what the terminal copies into a cart line at add time.
type CatalogItem struct {
	SKU            string          `json:"sku"`
	ItemName       string          `json:"item_name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AvailableStock int64           `json:"available_stock"`
}

func (p *Product) CatalogItem() *CatalogItem {
	return &CatalogItem{
		SKU:            p.SKU,
		ItemName:       p.Name,
		UnitPrice:      p.Price,
		AvailableStock: p.StockQuantity,
	}
}
