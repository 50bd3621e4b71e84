package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/hotelproducts/internal/config"
)

const keyHotelReadClient = "hotel:read:client:%s"

// Bucket takes a token for key. *TokenBucket is the redis implementation.
type Bucket interface {
	Allow(ctx context.Context, key string, rate float64, burst int) (*RateLimitResult, error)
}

// HotelReadLimiter throttles reads of the hotel routes per client IP.
// A nil limiter allows everything.
type HotelReadLimiter struct {
	bucket Bucket
	rate   float64
	burst  int
}

func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}
	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	}), nil
}

func NewHotelReadLimiter(cfg config.Config, client *redis.Client) (*HotelReadLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled || client == nil {
		return nil, nil
	}
	if limitCfg.HotelRate <= 0 || limitCfg.HotelBurst <= 0 {
		return nil, errors.New("hotel read rate limit must be positive")
	}
	return NewHotelReadLimiterWithBucket(NewTokenBucket(client), limitCfg.HotelRate, limitCfg.HotelBurst), nil
}

func NewHotelReadLimiterWithBucket(b Bucket, rate float64, burst int) *HotelReadLimiter {
	return &HotelReadLimiter{bucket: b, rate: rate, burst: burst}
}

func (l *HotelReadLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *HotelReadLimiter) AllowClient(ctx context.Context, clientIP string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	clientIP = strings.TrimSpace(clientIP)
	if clientIP == "" {
		clientIP = "unknown"
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyHotelReadClient, clientIP), l.rate, l.burst)
}
