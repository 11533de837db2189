package utils

import (
	"context"
	"time"
)

// DefaultDBTimeout bounds single-row reads. Sale submission has its own ceiling.
const DefaultDBTimeout = 5 * time.Second

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}
