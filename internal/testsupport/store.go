package testsupport

import (
	"testing"

	"notesift/internal/config"
	"notesift/internal/session"
)

// MustOpenStore opens a session store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *session.Store {
	t.Helper()

	if cfg == nil {
		cfg = NewConfig(t)
	}
	store, err := session.Open(cfg)
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
