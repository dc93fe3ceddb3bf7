// Package config loads runtime settings from WRISTTEMP_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreCSV      = "csv"
)

const dirName = ".wristtemp"

type Config struct {
	Store       string `env:"STORE" envDefault:"sqlite"`
	DSN         string `env:"DSN"`
	DataDir     string `env:"DATA_DIR"`
	AutoGrant   bool   `env:"AUTO_GRANT" envDefault:"true"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	Addr        string `env:"ADDR" envDefault:":8080"`
	SettingsURL string `env:"SETTINGS_URL" envDefault:"x-apple-health://"`
	SampleType  string `env:"SAMPLE_TYPE" envDefault:"HKQuantityTypeIdentifierAppleSleepingWristTemperature"`
}

// Option overrides a field after the environment has been parsed.
type Option func(*Config)

// Load parses the environment, applies opts, and fills path defaults under
// ~/.wristtemp.
func Load(opts ...Option) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "WRISTTEMP_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	for _, o := range opts {
		o(cfg)
	}
	cfg.Store = strings.ToLower(cfg.Store)
	if err := cfg.fillDefaults(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) fillDefaults() error {
	if c.DSN != "" && c.DataDir != "" && c.LogFile != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot find home dir: %w", err)
	}
	base := filepath.Join(home, dirName)
	if c.DSN == "" && c.Store == StoreSQLite {
		c.DSN = filepath.Join(base, "health.db")
	}
	if c.DataDir == "" {
		c.DataDir = filepath.Join(base, "samples")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(base, "wristtemp.log")
	}
	return nil
}

// Validate checks the store selection.
func (c *Config) Validate() error {
	c.Store = strings.ToLower(c.Store)
	switch c.Store {
	case StoreSQLite, StoreCSV:
	case StorePostgres:
		if c.DSN == "" {
			return fmt.Errorf("store %q needs WRISTTEMP_DSN", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}
