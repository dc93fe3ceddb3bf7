package main

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/luki/wristtemp/internal/config"
	"github.com/luki/wristtemp/internal/demo"
	"github.com/luki/wristtemp/internal/healthstore"
	"github.com/luki/wristtemp/internal/loader"
	"github.com/luki/wristtemp/internal/temperature"
)

func TestSeedThenLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  func(dir string) *config.Config
	}{
		{
			name: "csv",
			cfg: func(dir string) *config.Config {
				return &config.Config{Store: config.StoreCSV, DataDir: filepath.Join(dir, "samples")}
			},
		},
		{
			name: "sqlite without auto grant",
			cfg: func(dir string) *config.Config {
				return &config.Config{Store: config.StoreSQLite, DSN: filepath.Join(dir, "health.db")}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			logger := zaptest.NewLogger(t)
			cfg := tt.cfg(t.TempDir())

			objects := demo.Nights(healthstore.SleepingWristTemperature, 14, time.Now(), rand.New(rand.NewPCG(7, 7)))
			require.NoError(t, seedStore(ctx, cfg, healthstore.SleepingWristTemperature, objects, logger))

			store, closeStore, err := openStore(cfg, logger)
			require.NoError(t, err)
			defer closeStore()

			entries, err := loader.New(store, healthstore.SleepingWristTemperature, logger).Load(ctx)
			require.NoError(t, err)
			require.Len(t, entries, len(objects))
			for i, o := range objects {
				assert.Equal(t, o.UUID(), entries[i].ID)
			}

			lo, hi := temperature.Range(entries)
			assert.Less(t, lo, hi)
		})
	}
}

func TestOpenStoreUnknown(t *testing.T) {
	t.Parallel()
	_, _, err := openStore(&config.Config{Store: "mongo"}, zaptest.NewLogger(t))
	assert.Error(t, err)
}
