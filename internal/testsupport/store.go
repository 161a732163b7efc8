package testsupport

import (
	"context"
	"testing"

	"dreamcodec/internal/config"
	"dreamcodec/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustEnqueue inserts the given paths and fails the test on error or on
// any skipped path.
func MustEnqueue(t testing.TB, store *queue.Store, paths ...string) {
	t.Helper()

	added, skipped, err := store.Enqueue(context.Background(), paths)
	if err != nil {
		t.Fatalf("store.Enqueue: %v", err)
	}
	if skipped != 0 || added != len(paths) {
		t.Fatalf("store.Enqueue: added %d, skipped %d of %d paths", added, skipped, len(paths))
	}
}
