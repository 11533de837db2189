package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/utils"
)

type ProductRepository interface {
	GetProductBySKU(ctx context.Context, sku string) (*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

// GetProductBySKU only returns sellable products. sql.ErrNoRows is wrapped, not replaced.
func (r *productRepository) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, sku, name, price, stock_quantity, status, created_at, updated_at
		FROM products
		WHERE sku = $1 AND status = 'active'`

	err := r.DB.QueryRowContext(dbCtx, query, sku).Scan(
		&product.ID, &product.SKU, &product.Name, &product.Price,
		&product.StockQuantity, &product.Status, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("querying product %s: %w", sku, err)
	}

	return product, nil
}
