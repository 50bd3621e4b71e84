package repository

import (
	"errors"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/smallbiznis/hotelproducts/internal/config"
	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg     config.Config
	Dataset *config.DatasetHolder `optional:"true"`
	DB      *gorm.DB              `optional:"true"`
	Objects *minio.Client         `optional:"true"`
}

// Provide selects the backing store configured by HOTEL_STORE.
func Provide(p Params) (domain.Repository, error) {
	switch p.Cfg.Hotel.Store {
	case config.StoreFile, "":
		if p.Dataset == nil {
			return nil, errors.New("file store requires a dataset holder")
		}
		return NewFileStore(p.Dataset), nil
	case config.StoreMinIO:
		if p.Objects == nil {
			return nil, errors.New("minio store requires a minio client")
		}
		return NewObjectStore(
			p.Objects,
			p.Cfg.MinIO.Bucket,
			ObjectKey(p.Cfg, p.Cfg.Hotel.AssignmentsFile),
			ObjectKey(p.Cfg, p.Cfg.Hotel.ChargesFile),
		), nil
	case config.StoreDatabase:
		if p.DB == nil {
			return nil, errors.New("database store requires a database connection")
		}
		return NewDatabaseStore(p.DB), nil
	default:
		return nil, fmt.Errorf("unsupported hotel store %q", p.Cfg.Hotel.Store)
	}
}

// ObjectKey returns the bucket key for a dataset file name.
func ObjectKey(cfg config.Config, name string) string {
	if cfg.MinIO.Prefix == "" {
		return name
	}
	return path.Join(cfg.MinIO.Prefix, name)
}
