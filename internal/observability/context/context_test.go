package obscontext

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "  req-1 ")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
	if got := RequestIDFromContext(WithRequestID(context.Background(), " ")); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
	if got := ClientIPFromContext(WithClientIP(ctx, "10.0.0.1")); got != "10.0.0.1" {
		t.Fatalf("expected client ip, got %q", got)
	}
}
