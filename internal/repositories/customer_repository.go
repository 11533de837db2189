package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/utils"
	"github.com/google/uuid"
)

type CustomerRepository interface {
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type customerRepository struct {
	DB *sql.DB
}

func NewCustomerRepo(db *sql.DB) CustomerRepository {
	return &customerRepository{DB: db}
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	customer := &models.Customer{}

	var email, phone sql.NullString

	query := `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&customer.ID, &customer.Name, &email, &phone, &customer.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying customer %s: %w", id, err)
	}

	customer.Email = email.String
	customer.Phone = phone.String

	return customer, nil
}
