// Package testsupport provides shared helpers for notesift tests: temp-dir
// configs, session stores, and a canned fake backend server.
package testsupport

import (
	"path/filepath"
	"testing"

	"notesift/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")
	cfg.Backend.BaseURL = "http://127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithBackendURL points the test config at a live server, usually httptest.
func WithBackendURL(url string) ConfigOption {
	return func(c *config.Config) {
		c.Backend.BaseURL = url
	}
}

// WithWorkers sets the per-note concurrency on the test config.
func WithWorkers(workers int) ConfigOption {
	return func(c *config.Config) {
		c.Workflow.Workers = workers
	}
}
