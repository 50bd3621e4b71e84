package tracing

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

const maxAttributeLength = 256

var allowedAttributeKeys = map[attribute.Key]struct{}{
	"http.method":             {},
	"http.route":              {},
	"http.status_code":        {},
	"http.server_duration_ms": {},
	"http.url":                {},
	"request_id":              {},
	"hotel.store":             {},
	"hotel.error_kind":        {},
}

// SafeAttributes keeps only known keys and truncates long string values.
func SafeAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedAttributeKeys[attr.Key]; !ok {
			continue
		}
		if attr.Value.Type() == attribute.STRING {
			attr = attribute.String(string(attr.Key), truncate(attr.Value.AsString()))
		}
		out = append(out, attr)
	}
	return out
}

// SafeError returns an error with a truncated single-line message suitable for span events.
func SafeError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if msg == "" {
		return nil
	}
	return errors.New(truncate(msg))
}

// ExtractContext reads the remote span context carried by the inbound headers.
func ExtractContext(ctx context.Context, carrier propagation.TextMapCarrier) context.Context {
	if carrier == nil {
		return ctx
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

func truncate(value string) string {
	if len(value) <= maxAttributeLength {
		return value
	}
	return value[:maxAttributeLength]
}
