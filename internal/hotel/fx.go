package hotel

import (
	"github.com/smallbiznis/hotelproducts/internal/config"
	"github.com/smallbiznis/hotelproducts/internal/hotel/repository"
	"github.com/smallbiznis/hotelproducts/internal/hotel/service"
	"github.com/smallbiznis/hotelproducts/internal/migration"
	"github.com/smallbiznis/hotelproducts/internal/storage"
	"github.com/smallbiznis/hotelproducts/pkg/db"
	"go.uber.org/fx"
)

var Module = fx.Module("hotel.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

// StoreModule wires the infrastructure the configured backing store needs.
func StoreModule(store string) fx.Option {
	switch store {
	case config.StoreDatabase:
		return fx.Options(db.Module, migration.Module)
	case config.StoreMinIO:
		return storage.Module
	default:
		return fx.Options()
	}
}
