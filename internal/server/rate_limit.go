package server

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/hotelproducts/internal/observability/logger"
	"go.uber.org/zap"
)

const rateLimitReasonClientRate = "client-rate"

// HotelRateLimit applies the per-client token bucket to the hotel routes.
// Limiter failures answer 503.
func (s *Server) HotelRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.hotelLimiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		endpoint := normalizeRateLimitEndpoint(c)

		res, err := s.hotelLimiter.AllowClient(ctx, c.ClientIP())
		if err != nil {
			logger.FromContext(ctx).Warn("hotel rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			logger.FromContext(ctx).Warn("hotel rate limit exceeded",
				zap.String("reason", rateLimitReasonClientRate),
				zap.String("endpoint", endpoint),
			)
			s.obsMetrics.RecordRateLimitDenied(ctx, endpoint, rateLimitReasonClientRate)

			retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			AbortWithError(c, ErrRateLimited)
			return
		}

		s.obsMetrics.RecordRateLimitAllowed(ctx, endpoint)
		c.Next()
	}
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	endpoint := strings.TrimSpace(c.FullPath())
	if endpoint == "" {
		endpoint = strings.TrimSpace(c.Request.URL.Path)
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}
