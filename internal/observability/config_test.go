package observability

import (
	"testing"

	"github.com/smallbiznis/hotelproducts/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDisablesOtelWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg := LoadConfig(config.Config{AppName: "hotel-products", Environment: "development"})

	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, "hotel-products", cfg.ServiceName)
	assert.Equal(t, "grpc", cfg.OtelExporterProtocol)
	assert.True(t, cfg.Debug())
}

func TestLoadConfigTracesProtocolOverride(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "HTTP")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := LoadConfig(config.Config{Environment: "production"})

	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.Equal(t, "hotel-products", cfg.ServiceName)
	assert.False(t, cfg.Debug())
}

func TestConfigDerivesComponentSettings(t *testing.T) {
	cfg := Config{
		ServiceName:          "hotel-products",
		Environment:          "production",
		Version:              "1.2.0",
		LogLevel:             "debug",
		LogFormat:            "console",
		OtelEnabled:          true,
		OtelExporterEndpoint: "collector:4318",
		OtelExporterProtocol: "http",
		OtelSamplingRatio:    0.25,
	}

	log := cfg.Logger()
	assert.Equal(t, "console", log.Format)
	assert.True(t, log.IncludeStackOnError)

	tr := cfg.Tracing()
	assert.True(t, tr.Enabled)
	assert.Equal(t, "1.2.0", tr.ServiceVersion)
	assert.Equal(t, 0.25, tr.SamplingRatio)

	m := cfg.Metrics()
	assert.Equal(t, tr.ExporterEndpoint, m.ExporterEndpoint)
	assert.Equal(t, "http", m.ExporterProtocol)

	cfg.LogLevel = "info"
	assert.False(t, cfg.Logger().IncludeStackOnError)
}
