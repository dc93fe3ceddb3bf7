package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/luki/wristtemp/internal/config"
	"github.com/luki/wristtemp/internal/demo"
	"github.com/luki/wristtemp/internal/healthstore"
	"github.com/luki/wristtemp/internal/loader"
	"github.com/luki/wristtemp/internal/logging"
	"github.com/luki/wristtemp/internal/screen"
	"github.com/luki/wristtemp/internal/server"
	"github.com/luki/wristtemp/internal/settings"
	"github.com/luki/wristtemp/internal/state"
)

// loadConfig reads the environment and applies any flags that were set.
func loadConfig(c *cli.Context) (*config.Config, error) {
	return config.Load(func(cfg *config.Config) {
		for name, field := range map[string]*string{
			"store":     &cfg.Store,
			"dsn":       &cfg.DSN,
			"data-dir":  &cfg.DataDir,
			"log-level": &cfg.LogLevel,
			"log-file":  &cfg.LogFile,
			"addr":      &cfg.Addr,
		} {
			if c.IsSet(name) {
				*field = c.String(name)
			}
		}
	})
}

// sampleType resolves the configured type. An unknown identifier means the
// store cannot serve this application at all, so the process exits. The
// reason also goes to stderr since the logger may only write to a file.
func sampleType(cfg *config.Config, logger *zap.Logger, stderr io.Writer) healthstore.SampleType {
	st, err := healthstore.QuantityType(cfg.SampleType)
	if err != nil {
		fmt.Fprintf(stderr, "wristtemp: unsupported sample type: %v\n", err)
		logger.Fatal("unsupported sample type", zap.Error(err))
	}
	return st
}

func viewCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	st := sampleType(cfg, logger, os.Stderr)

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	model := screen.New(ctx,
		loader.New(store, st, logger),
		settings.New(cfg.SettingsURL),
		cfg.Store,
		logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	st := sampleType(cfg, logger, os.Stderr)

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := server.NewService(ctx, loader.New(store, st, logger), state.NewHolder(), logger)
	svc.Refresh()

	srv := &http.Server{
		Handler:      server.NewRouter(server.NewHandler(svc), logger),
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		err := srv.Shutdown(shutdownCtx)
		svc.Wait()
		return err
	})

	return eg.Wait()
}

func seedCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	st := sampleType(cfg, logger, os.Stderr)

	now := time.Now()
	objects := demo.Nights(st, c.Int("nights"), now, rand.New(rand.NewPCG(uint64(now.UnixNano()), 0)))
	if err := seedStore(c.Context, cfg, st, objects, logger); err != nil {
		return err
	}
	logger.Info("seeded store",
		zap.String("store", cfg.Store),
		zap.Int("nights", len(objects)))
	return nil
}
