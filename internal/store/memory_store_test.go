package store

import (
	"context"
	"testing"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

func TestMemoryStoreReturnsCopies(t *testing.T) {
	g := record("401")
	g.LiveThreadID = games.Ref("t3_live")
	s := NewMemoryStore(g)

	got, err := s.GetByID(context.Background(), "401")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	*got.LiveThreadID = "mutated"

	again, _ := s.GetByID(context.Background(), "401")
	if *again.LiveThreadID != "t3_live" {
		t.Fatalf("expected stored ref untouched, got %s", *again.LiveThreadID)
	}
}
