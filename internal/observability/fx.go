package observability

import (
	"github.com/smallbiznis/hotelproducts/internal/observability/logger"
	"github.com/smallbiznis/hotelproducts/internal/observability/metrics"
	"github.com/smallbiznis/hotelproducts/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(LoadConfig),
	fx.Provide(Config.Logger, logger.New),
	fx.Provide(Config.Tracing, tracing.NewProvider),
	fx.Provide(Config.Metrics, metrics.NewProvider, metrics.New),
	fx.Provide(metrics.NewRegistry, metrics.NewHTTPMetrics),
	fx.Invoke(announce),
)

// announce forces the tracer provider so the global propagator is set
// before the first request.
func announce(cfg Config, log *zap.Logger, _ *sdktrace.TracerProvider) {
	log.Info("observability ready",
		zap.String("log_level", cfg.LogLevel),
		zap.String("log_format", cfg.LogFormat),
		zap.Bool("otel_enabled", cfg.OtelEnabled),
		zap.String("otel_protocol", cfg.OtelExporterProtocol),
		zap.Float64("otel_sampling_ratio", cfg.OtelSamplingRatio),
	)
}
