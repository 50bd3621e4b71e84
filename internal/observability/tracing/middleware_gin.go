package tracing

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/hotelproducts/internal/observability/context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const unmatchedRoute = "unknown"

// MiddlewareConfig controls how request spans are labelled.
type MiddlewareConfig struct {
	// Store names the backing store serving hotel reads.
	Store string
	// ErrorClassifier maps a handler error to a kind and a stable description.
	ErrorClassifier func(err error) (string, string)
}

// GinMiddleware opens one server span per request, continuing any remote
// parent carried by the headers. Spans are named after the matched route.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	tracer := otel.Tracer("hotel/http")
	return func(c *gin.Context) {
		ctx := ExtractContext(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, c.Request.Method, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := c.Writer.Status()
		span.SetName(c.Request.Method + " " + route)

		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
			attribute.Int64("http.server_duration_ms", time.Since(start).Milliseconds()),
		}
		if id := obscontext.RequestIDFromContext(ctx); id != "" {
			attrs = append(attrs, attribute.String("request_id", id))
		}
		if cfg.Store != "" {
			attrs = append(attrs, attribute.String("hotel.store", cfg.Store))
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			span.SetAttributes(SafeAttributes(attrs...)...)
			return
		}

		kind, description := "internal_error", http.StatusText(status)
		if cfg.ErrorClassifier != nil {
			kind, description = cfg.ErrorClassifier(lastErr.Err)
		}
		attrs = append(attrs, attribute.String("hotel.error_kind", kind))
		span.SetAttributes(SafeAttributes(attrs...)...)

		// 4xx responses are the client's fault and leave the span status unset.
		if status >= http.StatusInternalServerError {
			if safeErr := SafeError(lastErr.Err); safeErr != nil {
				span.RecordError(safeErr)
			}
			span.SetStatus(codes.Error, description)
		}
	}
}
