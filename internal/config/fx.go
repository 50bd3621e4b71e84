package config

import "go.uber.org/fx"

// Module supplies an already loaded Config so .env is read exactly once.
func Module(cfg Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
		fx.Provide(NewDatasetHolder),
	)
}
