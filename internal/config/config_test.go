package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOTEL_STORE", "")
	t.Setenv("HOTEL_DATA_DIR", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("RATE_LIMIT_ENABLED", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StoreFile, cfg.Hotel.Store)
	assert.Equal(t, DefaultAssignmentsFile, cfg.Hotel.AssignmentsFile)
	assert.Equal(t, DefaultChargesFile, cfg.Hotel.ChargesFile)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOTEL_STORE", " S3 ")
	t.Setenv("MINIO_PREFIX", "/fixtures/hotel/")
	t.Setenv("RATE_LIMIT_ENABLED", "yes")
	t.Setenv("RATE_LIMIT_HOTEL_RATE", "2.5")
	t.Setenv("RATE_LIMIT_HOTEL_BURST", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()
	assert.Equal(t, StoreMinIO, cfg.Hotel.Store)
	assert.Equal(t, "fixtures/hotel", cfg.MinIO.Prefix)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 2.5, cfg.RateLimit.HotelRate)
	assert.Equal(t, 20, cfg.RateLimit.HotelBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestDefaultDataset(t *testing.T) {
	cfg := Config{Hotel: HotelConfig{DataDir: "data", AssignmentsFile: "a.json", ChargesFile: "c.json"}}
	assert.Equal(t, Dataset{
		AssignmentsPath: filepath.Join("data", "a.json"),
		ChargesPath:     filepath.Join("data", "c.json"),
	}, cfg.DefaultDataset())
}
