package correlation

import (
	"context"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureGeneratesULID(t *testing.T) {
	ctx, id := Ensure(context.Background(), "")

	_, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, FromContext(ctx))
}

func TestEnsureKeepsInboundID(t *testing.T) {
	ctx, id := Ensure(context.Background(), "  web-ui-42 ")

	assert.Equal(t, "web-ui-42", id)
	assert.Equal(t, "web-ui-42", FromContext(ctx))
}

func TestEnsureReplacesUnusableIDs(t *testing.T) {
	for name, inbound := range map[string]string{
		"too long":     strings.Repeat("a", MaxLength+1),
		"inner space":  "two words",
		"control char": "id\x00",
		"non ascii":    "réservation",
	} {
		t.Run(name, func(t *testing.T) {
			_, id := Ensure(context.Background(), inbound)
			_, err := ulid.Parse(id)
			assert.NoError(t, err)
		})
	}
}

func TestFromContextEmpty(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))
	assert.Empty(t, FromContext(nil))
}
