package storage

import (
	"testing"

	"github.com/smallbiznis/hotelproducts/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := NewClient(config.Config{MinIO: config.MinIOConfig{Bucket: "hotel"}})
	assert.ErrorIs(t, err, ErrMissingEndpoint)

	_, err = NewClient(config.Config{MinIO: config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "  "}})
	assert.ErrorIs(t, err, ErrMissingBucket)
}

func TestNewClientBuildsClient(t *testing.T) {
	client, err := NewClient(config.Config{MinIO: config.MinIOConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "hotel",
	}})
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", client.EndpointURL().Host)
	assert.Equal(t, "http", client.EndpointURL().Scheme)
}
