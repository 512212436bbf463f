package testsupport

import (
	"testing"

	"playbeat/internal/config"
	"playbeat/internal/logging"
	"playbeat/internal/store"
)

// MustOpenStore opens the SQLite-backed store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.KV {
	t.Helper()

	db, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	kv := store.New(db, logging.NewNop())
	t.Cleanup(func() {
		kv.Close()
	})
	return kv
}
