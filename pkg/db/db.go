package db

import (
	"context"
	"fmt"
	"time"

	"github.com/smallbiznis/hotelproducts/internal/observability"
	obslogger "github.com/smallbiznis/hotelproducts/internal/observability/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

var Module = fx.Module("db",
	fx.Provide(ConfigFrom),
	fx.Provide(NewDB),
)

type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    Config
	ObsCfg observability.Config `optional:"true"`
	Log    *zap.Logger
}

// NewDB opens the configured database, installs tracing and stats plugins and closes the pool on stop.
func NewDB(p Params) (*gorm.DB, error) {
	conn, err := Open(p.Cfg, p.Log, p.ObsCfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if p.Lc != nil {
		p.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				sqlDB, err := conn.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
	}
	return conn, nil
}

// Open connects without fx; the seeding command uses it directly.
func Open(cfg Config, log *zap.Logger, logLevel string) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         obslogger.NewGormLogger(log, obslogger.GormLoggerConfigFor(logLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Type, err)
	}

	if err := conn.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.Name))); err != nil {
		return nil, fmt.Errorf("install tracing plugin: %w", err)
	}
	if err := conn.Use(gormprometheus.New(gormprometheus.Config{
		DBName:          cfg.Name,
		RefreshInterval: 15,
		StartServer:     false,
		Labels:          map[string]string{"store": "database"},
	})); err != nil {
		return nil, fmt.Errorf("install prometheus plugin: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	}
	if cfg.MaxOpenConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	}

	return conn, nil
}
