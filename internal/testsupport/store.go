package testsupport

import (
	"context"
	"testing"

	"undisorder/internal/config"
	"undisorder/internal/hashdb"
)

// MustOpenIndex opens the index scoped to targetDir for tests and registers cleanup.
func MustOpenIndex(t testing.TB, cfg *config.Config, targetDir string) *hashdb.Store {
	t.Helper()

	store, err := hashdb.Open(context.Background(), cfg.Paths.IndexPath, targetDir)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
