package pushmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/hotelproducts/internal/config"
	obsmetrics "github.com/smallbiznis/hotelproducts/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("metrics.push",
	fx.Provide(NewPusher),
	fx.Invoke(startWorker),
)

type workerParams struct {
	fx.In

	Lc       fx.Lifecycle
	Cfg      config.Config
	Pusher   Pusher               `optional:"true"`
	Registry *prometheus.Registry `optional:"true"`
	Log      *zap.Logger
}

func startWorker(p workerParams) {
	if p.Pusher == nil {
		return
	}
	gatherer := obsmetrics.Gatherer(p.Registry)
	log := p.Log.Named("metrics.push")
	interval := time.Duration(p.Cfg.MetricsPush.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("starting metrics push worker", zap.Duration("interval", interval))
			go func() {
				defer close(done)
				runWorker(ctx, interval, func(ctx context.Context) {
					if err := p.Pusher.Push(ctx, gatherer); err != nil {
						log.Warn("metrics push failed", zap.Error(err))
					}
				})
				log.Info("stopping metrics push worker")
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

// runWorker calls push immediately and then on every tick until ctx is cancelled.
func runWorker(ctx context.Context, interval time.Duration, push func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	push(ctx)
	for {
		select {
		case <-ticker.C:
			push(ctx)
		case <-ctx.Done():
			return
		}
	}
}
