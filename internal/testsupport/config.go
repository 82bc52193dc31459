package testsupport

import (
	"path/filepath"
	"testing"

	"waxcrate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Discogs.Token = "test-token"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Backfill.CSVDir = filepath.Join(base, "reports")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithToken sets the Discogs token on the test config.
func WithToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Discogs.Token = token
	}
}

// WithCategoriesPath points the config at an external category table.
func WithCategoriesPath(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Categories.Path = path
	}
}
