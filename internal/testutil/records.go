package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/store"
)

// NewTempFSStore returns a file store rooted in a fresh temp dir.
func NewTempFSStore(t *testing.T) *store.FSStore {
	t.Helper()
	return store.NewFSStore(t.TempDir())
}

// SeedStore writes every record or fails the test.
func SeedStore(t *testing.T, s store.Store, records ...games.TrackedGame) {
	t.Helper()
	for _, r := range records {
		if err := s.Put(context.Background(), r); err != nil {
			t.Fatalf("seed %s: %v", r.ID, err)
		}
	}
}

// StoredIDs lists the store's ids or fails the test.
func StoredIDs(t *testing.T, s store.Store) []string {
	t.Helper()
	ids, err := s.ListIDs(context.Background())
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	return ids
}

// ReadRecordFile returns the raw bytes persisted for id by a file store.
func ReadRecordFile(t *testing.T, s *store.FSStore, id string) []byte {
	t.Helper()
	data, err := os.ReadFile(store.RecordPath(s.Root(), id))
	if err != nil {
		t.Fatalf("read record %s: %v", id, err)
	}
	return data
}
