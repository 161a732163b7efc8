package testsupport

import (
	"path/filepath"
	"testing"

	"dreamcodec/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.StateDir = filepath.Join(base, "state")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithContainer overrides the output container on the test config.
func WithContainer(container string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Conversion.OutputContainer = container
	}
}

// WithOutputDir overrides the output directory on the test config.
func WithOutputDir(dir string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.OutputDir = dir
	}
}
