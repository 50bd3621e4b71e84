package migration

import (
	"github.com/smallbiznis/hotelproducts/internal/hotel/repository"
	"github.com/smallbiznis/hotelproducts/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(Apply),
)

// Apply creates the hotel tables: SQL migrations on postgres, AutoMigrate elsewhere.
func Apply(conn *gorm.DB, cfg db.Config, log *zap.Logger) error {
	if cfg.Type != db.TypePostgres {
		log.Info("auto-migrating hotel tables", zap.String("db_type", cfg.Type))
		return repository.AutoMigrate(conn)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	log.Info("applying hotel migrations")
	return RunMigrations(sqlDB)
}
