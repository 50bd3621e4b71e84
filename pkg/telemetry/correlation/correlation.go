package correlation

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"
)

// MaxLength bounds inbound correlation ids; longer values are replaced.
const MaxLength = 128

type key struct{}

// FromContext returns the correlation id carried by ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(key{}).(string)
	return id
}

// Ensure keeps a usable inbound id or mints a ULID, and stores the result on ctx.
func Ensure(ctx context.Context, inbound string) (context.Context, string) {
	id := strings.TrimSpace(inbound)
	if !valid(id) {
		id = ulid.Make().String()
	}
	return context.WithValue(ctx, key{}, id), id
}

// valid accepts visible ASCII up to MaxLength so the id is safe in headers and logs.
func valid(id string) bool {
	if id == "" || len(id) > MaxLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
