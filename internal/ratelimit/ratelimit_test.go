package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/hotelproducts/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBucket struct {
	keys   []string
	result *RateLimitResult
	err    error
}

func (b *recordingBucket) Allow(_ context.Context, key string, _ float64, _ int) (*RateLimitResult, error) {
	b.keys = append(b.keys, key)
	return b.result, b.err
}

func TestParseScriptResult(t *testing.T) {
	cases := []struct {
		name      string
		res       []interface{}
		allowed   bool
		remaining int
		retry     time.Duration
	}{
		{name: "allowed", res: []interface{}{int64(1), "4.5", int64(1700000000000)}, allowed: true, remaining: 4},
		{name: "denied half token", res: []interface{}{int64(0), "0.5", int64(1700000000000)}, allowed: false, remaining: 0, retry: 100 * time.Millisecond},
		{name: "denied empty", res: []interface{}{int64(0), "0", int64(1700000000000)}, allowed: false, remaining: 0, retry: 200 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseScriptResult(tc.res, 5, 20)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, got.Allowed)
			assert.Equal(t, tc.remaining, got.Remaining)
			assert.Equal(t, 20, got.Limit)
			assert.Equal(t, tc.retry, got.RetryAfter)
		})
	}
}

func TestParseScriptResultRejectsShortReply(t *testing.T) {
	_, err := parseScriptResult([]interface{}{int64(1)}, 5, 20)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestTokenBucketValidation(t *testing.T) {
	var nilBucket *TokenBucket
	_, err := nilBucket.Allow(context.Background(), "k", 1, 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, NewTokenBucket(nil))
}

func TestDefaultBucketTTL(t *testing.T) {
	assert.Equal(t, 8*time.Second, defaultBucketTTL(5, 20))
	assert.Equal(t, time.Second, defaultBucketTTL(100, 1))
	assert.Equal(t, time.Second, defaultBucketTTL(0, 0))
}

func TestHotelReadLimiterKeysByClient(t *testing.T) {
	b := &recordingBucket{result: &RateLimitResult{Allowed: true}}
	l := NewHotelReadLimiterWithBucket(b, 5, 20)

	res, err := l.AllowClient(context.Background(), " 10.0.0.7 ")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	_, err = l.AllowClient(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"hotel:read:client:10.0.0.7", "hotel:read:client:unknown"}, b.keys)
}

func TestHotelReadLimiterPropagatesErrors(t *testing.T) {
	b := &recordingBucket{result: &RateLimitResult{}, err: errors.New("redis down")}
	_, err := NewHotelReadLimiterWithBucket(b, 5, 20).AllowClient(context.Background(), "10.0.0.7")
	assert.EqualError(t, err, "redis down")
}

func TestNilHotelReadLimiterAllows(t *testing.T) {
	var l *HotelReadLimiter
	res, err := l.AllowClient(context.Background(), "10.0.0.7")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.False(t, l.Enabled())
}

func TestNewHotelReadLimiterDisabled(t *testing.T) {
	client, err := NewRedisClient(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, client)

	l, err := NewHotelReadLimiter(config.Config{}, nil)
	require.NoError(t, err)
	assert.Nil(t, l)
}
