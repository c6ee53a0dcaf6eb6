package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/inventory-service/internal/config"
	"github.com/aaravmahajanofficial/inventory-service/internal/logging"
	"github.com/redis/go-redis/v9"
)

type RateLimitRepository interface {
	// CheckWriteRateLimit returns isAllowed, requests left, seconds to wait.
	CheckWriteRateLimit(ctx context.Context, subject string) (bool, int, int, error)
}

type RateLimitOption func(*redisRepository)

// WithClock replaces time.Now, used by tests.
func WithClock(now func() time.Time) RateLimitOption {
	return func(r *redisRepository) {
		r.now = now
	}
}

type redisRepository struct {
	client redis.Cmdable
	rate   config.RateConfig
	now    func() time.Time
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil

}

func NewRateLimitRepo(client redis.Cmdable, rate config.RateConfig, opts ...RateLimitOption) RateLimitRepository {
	r := &redisRepository{client: client, rate: rate, now: time.Now}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func RateLimitKey(subject string) string {
	return "write_requests:" + subject
}

func (r *redisRepository) CheckWriteRateLimit(ctx context.Context, subject string) (bool, int, int, error) {

	logger := logging.FromContext(ctx)

	key := RateLimitKey(subject)

	now := r.now()
	nowMs := now.UnixMilli()
	windowMs := r.rate.WindowSize.Milliseconds()

	// only requests after windowStart are counted
	windowStart := nowMs - windowMs

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))

	pipe.ZAdd(ctx, key, redis.Z{Score: float64(nowMs), Member: strconv.FormatInt(now.UnixNano(), 10)})

	count := pipe.ZCard(ctx, key)

	pipe.Expire(ctx, key, r.rate.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	requests := count.Val()
	remaining := r.rate.MaxAttempts - requests

	if requests > r.rate.MaxAttempts {

		scores, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil {
			logger.Error("Failed to get oldest request time for rate limit", slog.String("key", key), slog.Any("error", err))
			return false, 0, int(r.rate.WindowSize.Seconds()), fmt.Errorf("failed to get oldest request time: %w", err)
		}

		if len(scores) == 0 {
			return false, 0, int(r.rate.WindowSize.Seconds()), nil
		}

		oldest := int64(scores[0].Score)
		waitMs := max(oldest+windowMs-nowMs, 0)
		retryAfter := int((waitMs + 999) / 1000)

		logger.Warn("Write rate limit exceeded", slog.String("subject", subject), slog.Int64("requests", requests))
		return false, 0, retryAfter, nil
	}

	logger.Debug("Rate limit check passed", slog.String("subject", subject), slog.Int64("requests", requests), slog.Int64("remaining", remaining))
	return true, int(remaining), 0, nil
}
