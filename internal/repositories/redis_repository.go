package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/pos-terminal/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-terminal/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {

	slog.Info("Connecting to Redis",
		slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)),
	)

	opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis")

	return client, nil
}

// LoginAttempt is the outcome of counting one login attempt against the sliding window.
type LoginAttempt struct {
	Allowed    bool
	Remaining  int
	RetryAfter int
}

type RateLimitRepository interface {
	CheckLoginRateLimit(ctx context.Context, email string) (LoginAttempt, error)
}

type rateLimitRepository struct {
	client *redis.Client
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRateLimitRepo(client *redis.Client, cfg config.RateConfig) RateLimitRepository {
	return &rateLimitRepository{client: client, cfg: cfg, now: time.Now}
}

func loginAttemptsKey(email string) string {
	return "login_attempts:" + email
}

// CheckLoginRateLimit records the attempt in a sorted set scored by unix seconds and counts what is
// left inside the window.
func (r *rateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (LoginAttempt, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := loginAttemptsKey(email)
	now := r.now()
	window := int64(r.cfg.WindowSize.Seconds())
	windowStart := now.Unix() - window

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Rate limit pipeline failed", slog.String("key", key), slog.Any("error", err))
		return LoginAttempt{}, fmt.Errorf("rate limit check for %s: %w", email, err)
	}

	attempts := count.Val()

	if attempts <= r.cfg.MaxAttempts {
		return LoginAttempt{Allowed: true, Remaining: int(r.cfg.MaxAttempts - attempts)}, nil
	}

	oldest, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil || len(oldest) == 0 {
		logger.Error("Failed to read oldest login attempt", slog.String("key", key), slog.Any("error", err))
		return LoginAttempt{RetryAfter: int(window)}, nil
	}

	retryAfter := max(int64(oldest[0].Score)+window-now.Unix(), 1)

	logger.Warn("Login rate limit exceeded", slog.String("email", email), slog.Int64("attempts", attempts))

	return LoginAttempt{RetryAfter: int(retryAfter)}, nil
}
