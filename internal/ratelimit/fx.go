package ratelimit

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("rate.limit",
	fx.Provide(NewRedisClient),
	fx.Provide(NewHotelReadLimiter),
	fx.Invoke(registerClientHooks),
)

func registerClientHooks(lc fx.Lifecycle, client *redis.Client) {
	if client == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
}
