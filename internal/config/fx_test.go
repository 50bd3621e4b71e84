package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func TestModuleSuppliesLoadedConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_ADDR", ":9999")

	cfg := Config{
		HTTPAddr: ":8081",
		Hotel:    HotelConfig{DataDir: "fixtures", AssignmentsFile: "a.json", ChargesFile: "c.json"},
	}

	var (
		got    Config
		holder *DatasetHolder
	)
	app := fxtest.New(t,
		Module(cfg),
		fx.Supply(zap.NewNop()),
		fx.Populate(&got, &holder),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, ":8081", got.HTTPAddr)
	assert.Equal(t, cfg.DefaultDataset(), holder.Current())
}
