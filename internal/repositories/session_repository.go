package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, sessionID, cashierID string, ttl time.Duration) error
	IsSessionValid(ctx context.Context, sessionID, cashierID string) (bool, error)
	RevokeSession(ctx context.Context, sessionID string) error
}

type sessionRepository struct {
	client redis.Cmdable
}

func NewSessionRepo(client redis.Cmdable) SessionRepository {
	return &sessionRepository{client: client}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (r *sessionRepository) CreateSession(ctx context.Context, sessionID, cashierID string, ttl time.Duration) error {

	if err := r.client.Set(ctx, sessionKey(sessionID), cashierID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// IsSessionValid is true only while the session exists and belongs to cashierID.
func (r *sessionRepository) IsSessionValid(ctx context.Context, sessionID, cashierID string) (bool, error) {

	owner, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, fmt.Errorf("failed to read session: %w", err)
	}

	return owner == cashierID, nil
}

func (r *sessionRepository) RevokeSession(ctx context.Context, sessionID string) error {

	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}
