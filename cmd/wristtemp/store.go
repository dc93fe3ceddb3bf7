package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/luki/wristtemp/internal/config"
	"github.com/luki/wristtemp/internal/healthstore"
	"github.com/luki/wristtemp/internal/healthstore/csvstore"
	"github.com/luki/wristtemp/internal/healthstore/sqlstore"
)

// openStore opens the configured backend. The returned func releases it.
func openStore(cfg *config.Config, logger *zap.Logger) (healthstore.Store, func(), error) {
	switch cfg.Store {
	case config.StoreCSV:
		ds := csvstore.New(cfg.DataDir)
		logger.Debug("opened csv store", zap.String("dir", ds.Dir()))
		return ds, ds.Close, nil
	case config.StoreSQLite, config.StorePostgres:
		s, err := sqlstore.Open(cfg.Store, cfg.DSN, cfg.AutoGrant)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("opened sql store", zap.String("driver", cfg.Store))
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Warn("close store", zap.Error(err))
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// seedStore writes objects into the configured backend. The sql backend
// also records a read grant for st so the viewer can load immediately.
func seedStore(ctx context.Context, cfg *config.Config, st healthstore.SampleType, objects []healthstore.Object, logger *zap.Logger) error {
	switch cfg.Store {
	case config.StoreCSV:
		ds := csvstore.New(cfg.DataDir)
		defer ds.Close()
		return ds.Write(objects)
	case config.StoreSQLite, config.StorePostgres:
		s, err := sqlstore.Open(cfg.Store, cfg.DSN, cfg.AutoGrant)
		if err != nil {
			return err
		}
		defer func() {
			if err := s.Close(); err != nil {
				logger.Warn("close store", zap.Error(err))
			}
		}()
		if err := s.SetAuthorization(ctx, st, true); err != nil {
			return fmt.Errorf("grant read access: %w", err)
		}
		return s.Save(ctx, objects)
	}
	return fmt.Errorf("unknown store %q", cfg.Store)
}
