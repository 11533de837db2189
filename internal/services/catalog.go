package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/pos-terminal/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-terminal/internal/cache"
	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/metrics"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/pos"
	repository "github.com/aaravmahajanofficial/pos-terminal/internal/repositories"
	"golang.org/x/sync/singleflight"
)

type CatalogService interface {
	// Lookup satisfies pos.CatalogLookup; an unknown sku yields pos.ErrItemNotFound.
	Lookup(ctx context.Context, sku string) (*models.CatalogItem, error)
	GetItem(ctx context.Context, sku string) (*models.CatalogItem, error)
}

type catalogService struct {
	repo  repository.ProductRepository
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCatalogService(repo repository.ProductRepository, cache cache.Cache, ttl time.Duration) CatalogService {
	return &catalogService{repo: repo, cache: cache, ttl: ttl}
}

// Lookup reads through the cache. Concurrent misses for one sku share a single query.
func (s *catalogService) Lookup(ctx context.Context, sku string) (*models.CatalogItem, error) {

	logger := middleware.LoggerFromContext(ctx)

	sku = pos.NormalizeSKU(sku)
	key := cache.Key(cache.CatalogKeyPrefix, sku)

	var cached models.CatalogItem

	found, err := s.cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		metrics.CatalogLookup("error")
		logger.Warn("Catalog cache read failed", slog.String("sku", sku), slog.Any("error", err))
	case found:
		metrics.CatalogLookup("hit")
		return &cached, nil
	default:
		metrics.CatalogLookup("miss")
	}

	v, err, _ := s.group.Do(sku, func() (any, error) {

		product, err := s.repo.GetProductBySKU(ctx, sku)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", pos.ErrItemNotFound, sku)
			}

			return nil, appErrors.DatabaseError("Failed to look up product").WithError(err)
		}

		item := product.CatalogItem()

		if err := s.cache.Set(ctx, key, item, s.ttl); err != nil {
			logger.Warn("Catalog cache write failed", slog.String("sku", sku), slog.Any("error", err))
		}

		return item, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.CatalogItem), nil
}

func (s *catalogService) GetItem(ctx context.Context, sku string) (*models.CatalogItem, error) {

	item, err := s.Lookup(ctx, sku)
	if err != nil {
		if errors.Is(err, pos.ErrItemNotFound) {
			return nil, appErrors.ItemNotFoundError(pos.NormalizeSKU(sku)).WithError(err)
		}

		return nil, err
	}

	return item, nil
}
