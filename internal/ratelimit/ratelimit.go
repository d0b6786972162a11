package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/healthify-app/healthify-api/internal/config"
)

// Limiter bounds OTP verification attempts. A nil *Limiter allows
// everything, so deployments without redis keep working.
type Limiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

const (
	defaultMax    = 5
	defaultWindow = 5 * time.Minute
)

// New returns nil when no redis address is configured.
func New(cfg config.RedisConfig) *Limiter {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, otp attempt limiting disabled: %v", err)
		return nil
	}

	return &Limiter{client: client, max: defaultMax, window: defaultWindow}
}

// Allow counts one attempt for the key and reports whether it is
// still within the window's budget. Redis errors fail open.
func (l *Limiter) Allow(ctx context.Context, kind, key string) bool {
	if l == nil {
		return true
	}

	redisKey := fmt.Sprintf("otp_attempts:%s:%s", kind, key)

	n, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Printf("rate limit incr failed: %v", err)
		return true
	}
	if n == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			log.Printf("rate limit expire failed: %v", err)
		}
	}

	return n <= int64(l.max)
}

// Reset clears the attempt counter after a successful verification.
func (l *Limiter) Reset(ctx context.Context, kind, key string) {
	if l == nil {
		return
	}
	redisKey := fmt.Sprintf("otp_attempts:%s:%s", kind, key)
	if err := l.client.Del(ctx, redisKey).Err(); err != nil {
		log.Printf("rate limit reset failed: %v", err)
	}
}

func (l *Limiter) Close() error {
	if l == nil {
		return nil
	}
	return l.client.Close()
}
