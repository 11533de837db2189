package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/pos-terminal/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB        *sql.DB
	Products  ProductRepository
	Customers CustomerRepository
	Users     UserRepository
	Sales     SaleRepository
}

func New(ctx context.Context, cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.name", cfg.Database.Name),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewFromDB(db), nil
}

// NewFromDB wires every repository onto an already opened pool.
func NewFromDB(db *sql.DB) *Repository {
	return &Repository{
		DB:        db,
		Products:  NewProductRepo(db),
		Customers: NewCustomerRepo(db),
		Users:     NewUserRepo(db),
		Sales:     NewSaleRepo(db),
	}
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
