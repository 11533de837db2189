package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/pos-terminal/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-terminal/internal/cache"
	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	repository "github.com/aaravmahajanofficial/pos-terminal/internal/repositories"
	"github.com/google/uuid"
)

type CustomerService interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type customerService struct {
	repo  repository.CustomerRepository
	cache cache.Cache
}

func NewCustomerService(repo repository.CustomerRepository, cache cache.Cache) CustomerService {
	return &customerService{repo: repo, cache: cache}
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.CustomerKeyPrefix, id.String())

	var cached models.Customer

	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		logger.Warn("Customer cache read failed", slog.String("customerId", id.String()), slog.Any("error", err))
	} else if found {
		return &cached, nil
	}

	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Customer not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to load customer").WithError(err)
	}

	// zero ttl means the cache default
	if err := s.cache.Set(ctx, key, customer, 0); err != nil {
		logger.Warn("Customer cache write failed", slog.String("customerId", id.String()), slog.Any("error", err))
	}

	return customer, nil
}
