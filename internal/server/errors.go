package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	"github.com/smallbiznis/hotelproducts/internal/observability/logger"
	"go.uber.org/zap"
)

const unknownErrorMessage = "Unknown error"

var (
	ErrNotFound           = errors.New("not_found")
	ErrRateLimited        = errors.New("rate_limited")
	ErrServiceUnavailable = errors.New("service_unavailable")
	ErrInternal           = errors.New("internal_error")
)

// ErrorHandlingMiddleware renders the last handler error as a failure envelope.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, serviceResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, failureResponse(http.StatusInternalServerError, "Internal server error", unknownErrorMessage)
	case errors.Is(err, domain.ErrLoadFailed):
		return http.StatusInternalServerError, failureResponse(http.StatusInternalServerError, domain.MessageProductsFailed, causeMessage(err))
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, failureResponse(http.StatusNotFound, "Not found", "")
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, failureResponse(http.StatusTooManyRequests, "Too many requests", "")
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, failureResponse(http.StatusServiceUnavailable, "Service unavailable", "")
	default:
		return http.StatusInternalServerError, failureResponse(http.StatusInternalServerError, domain.MessageProductsFailed, causeMessage(err))
	}
}

// causeMessage returns the message of the underlying failure without the ErrLoadFailed prefix.
func causeMessage(err error) string {
	if err == nil {
		return unknownErrorMessage
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			if inner != nil && !errors.Is(inner, domain.ErrLoadFailed) {
				return causeMessage(inner)
			}
		}
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return unknownErrorMessage
	}
	return msg
}

func classifyErrorForLog(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrLoadFailed):
		return "load_failed", domain.ErrLoadFailed.Error()
	case errors.Is(err, ErrNotFound):
		return "not_found", ErrNotFound.Error()
	case errors.Is(err, ErrRateLimited):
		return "rate_limited", ErrRateLimited.Error()
	case errors.Is(err, ErrServiceUnavailable):
		return "service_unavailable", ErrServiceUnavailable.Error()
	case errors.Is(err, errPanic):
		return "panic", errPanic.Error()
	default:
		return "internal_error", ErrInternal.Error()
	}
}

var errPanic = errors.New("panic")

// RecoveryMiddleware turns a panic into the hotel failure envelope.
// Error values keep their message; anything else is reported as "Unknown error".
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			cause := unknownErrorMessage
			if err, ok := recovered.(error); ok {
				cause = causeMessage(err)
			}
			logger.FromContext(c.Request.Context()).Error("panic recovered",
				zap.String("panic", fmt.Sprint(recovered)),
				zap.Stack("stack"),
			)
			_ = c.Error(fmt.Errorf("%w: %s", errPanic, cause))
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				failureResponse(http.StatusInternalServerError, domain.MessageProductsFailed, cause))
		}()
		c.Next()
	}
}

func notFoundHandler(c *gin.Context) {
	AbortWithError(c, ErrNotFound)
}
