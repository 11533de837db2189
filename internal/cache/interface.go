package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values. A ttl of zero or less means the configured default.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CatalogKeyPrefix  = "catalog"
	CustomerKeyPrefix = "customer"
)
