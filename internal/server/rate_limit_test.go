package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/hotelproducts/internal/config"
	"github.com/smallbiznis/hotelproducts/internal/observability"
	"github.com/smallbiznis/hotelproducts/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

type fakeBucket struct {
	result *ratelimit.RateLimitResult
	err    error
	calls  int
}

func (f *fakeBucket) Allow(ctx context.Context, key string, rate float64, burst int) (*ratelimit.RateLimitResult, error) {
	_ = ctx
	_ = key
	_ = rate
	_ = burst
	f.calls++
	return f.result, f.err
}

func newLimitedRouter(t *testing.T, b ratelimit.Bucket) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := NewEngine(EngineParams{Cfg: config.Config{}, ObsCfg: observability.Config{}})
	NewServer(ServerParams{
		Gin:          engine,
		HotelSvc:     newHotelService(&fakeRepository{}),
		HotelLimiter: ratelimit.NewHotelReadLimiterWithBucket(b, 5, 20),
	})
	return engine
}

func TestHotelRateLimitAllows(t *testing.T) {
	b := &fakeBucket{result: &ratelimit.RateLimitResult{Allowed: true, Limit: 20, Remaining: 19}}
	r := newLimitedRouter(t, b)

	resp := get(t, r, "/hotel/products")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, "20", resp.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "19", resp.Header().Get("X-RateLimit-Remaining"))
}

func TestHotelRateLimitDenies(t *testing.T) {
	b := &fakeBucket{result: &ratelimit.RateLimitResult{Allowed: false, Limit: 20, RetryAfter: 1500 * time.Millisecond}}
	r := newLimitedRouter(t, b)

	resp := get(t, r, "/hotel/reservations")

	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "2", resp.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"success": false, "message": "Too many requests", "responseObject": null, "statusCode": 429}`, resp.Body.String())
}

func TestHotelRateLimitUnavailable(t *testing.T) {
	b := &fakeBucket{result: &ratelimit.RateLimitResult{}, err: errors.New("dial tcp: connection refused")}
	r := newLimitedRouter(t, b)

	resp := get(t, r, "/hotel")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.JSONEq(t, `{"success": false, "message": "Service unavailable", "responseObject": null, "statusCode": 503}`, resp.Body.String())
}

func TestHotelRateLimitSkipsHealth(t *testing.T) {
	b := &fakeBucket{result: &ratelimit.RateLimitResult{Allowed: false}}
	r := newLimitedRouter(t, b)

	resp := get(t, r, "/health")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 0, b.calls)
}
