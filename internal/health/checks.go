package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/redis/go-redis/v9"
)

// Endpoints are the live connections the terminal needs; checks reuse them instead of dialing anew.
type Endpoints struct {
	DB          *sql.DB
	RedisClient redis.Cmdable
}

func NewHealthHandler(serviceName, version string, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    serviceName,
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check:     databaseCheck(endpoints.DB),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check:     redisCheck(endpoints.RedisClient),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func databaseCheck(db *sql.DB) health.CheckFunc {
	return func(ctx context.Context) error {
		if db == nil {
			return fmt.Errorf("database is not initialized")
		}

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}

		return nil
	}
}

func redisCheck(client redis.Cmdable) health.CheckFunc {
	return func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("redis client is not initialized")
		}

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}

		return nil
	}
}
