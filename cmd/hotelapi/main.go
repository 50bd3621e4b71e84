package main

import (
	"github.com/smallbiznis/hotelproducts/internal/config"
	"github.com/smallbiznis/hotelproducts/internal/hotel"
	"github.com/smallbiznis/hotelproducts/internal/observability"
	"github.com/smallbiznis/hotelproducts/internal/pushmetrics"
	"github.com/smallbiznis/hotelproducts/internal/ratelimit"
	"github.com/smallbiznis/hotelproducts/internal/server"
	"go.uber.org/fx"
)

func main() {
	cfg := config.Load()

	app := fx.New(
		// Core Infrastructure
		config.Module(cfg),
		observability.Module,
		hotel.StoreModule(cfg.Hotel.Store),
		ratelimit.Module,
		pushmetrics.Module,

		// Functional Domains
		hotel.Module,
		server.Module,
	)
	app.Run()
}
