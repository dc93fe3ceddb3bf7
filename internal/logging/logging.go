// Package logging builds the zap logger used by every command.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// New returns a production logger at level writing to paths. Parent
// directories of file paths are created.
func New(level string, paths ...string) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	logCfg.Level = lvl

	if len(paths) == 0 {
		paths = []string{"stdout"}
	}
	for _, p := range paths {
		if p == "stdout" || p == "stderr" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, fmt.Errorf("cannot create log dir: %w", err)
		}
	}
	logCfg.OutputPaths = paths
	logCfg.ErrorOutputPaths = paths
	logCfg.Sampling = nil

	return logCfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}
