package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Dataset locates the two JSON documents read by the file store.
type Dataset struct {
	AssignmentsPath string
	ChargesPath     string
}

type DatasetHolder struct {
	current atomic.Value // holds Dataset
}

// NewDatasetHolder reads an optional hotel.yml and watches it for changes.
// Env configuration supplies the defaults when no file is present.
func NewDatasetHolder(cfg Config, log *zap.Logger) (*DatasetHolder, error) {
	v := viper.New()

	v.SetConfigName("hotel")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/hotel-products")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HOTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := cfg.DefaultDataset()
	v.SetDefault("dataset.assignments", defaults.AssignmentsPath)
	v.SetDefault("dataset.charges", defaults.ChargesPath)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileFound = false
	}

	dataset, err := readDataset(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticDatasetHolder(dataset)
	if !fileFound {
		return holder, nil
	}

	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("dataset.config")

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := readDataset(v)
		if err != nil {
			log.Warn("invalid dataset config ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("dataset config reloaded",
			zap.String("assignments", updated.AssignmentsPath),
			zap.String("charges", updated.ChargesPath),
		)
	})
	v.WatchConfig()

	return holder, nil
}

// NewStaticDatasetHolder returns a holder that never reloads.
func NewStaticDatasetHolder(dataset Dataset) *DatasetHolder {
	holder := &DatasetHolder{}
	holder.current.Store(dataset)
	return holder
}

func (h *DatasetHolder) Current() Dataset {
	return h.current.Load().(Dataset)
}

func readDataset(v *viper.Viper) (Dataset, error) {
	dataset := Dataset{
		AssignmentsPath: strings.TrimSpace(v.GetString("dataset.assignments")),
		ChargesPath:     strings.TrimSpace(v.GetString("dataset.charges")),
	}
	if err := validateDataset(dataset); err != nil {
		return Dataset{}, err
	}
	return dataset, nil
}

func validateDataset(dataset Dataset) error {
	if dataset.AssignmentsPath == "" {
		return errors.New("dataset.assignments is required")
	}
	if dataset.ChargesPath == "" {
		return errors.New("dataset.charges is required")
	}
	return nil
}
