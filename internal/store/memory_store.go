package store

import (
	"context"
	"sort"
	"sync"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

// MemoryStore keeps tracked games in memory. Reads return copies.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]games.TrackedGame
}

// NewMemoryStore constructs a MemoryStore seeded with the provided records.
func NewMemoryStore(seed ...games.TrackedGame) *MemoryStore {
	s := &MemoryStore{
		games: make(map[string]games.TrackedGame, len(seed)),
	}
	for _, g := range seed {
		s.games[g.ID] = g.Clone()
	}
	return s
}

// ListIDs returns the stored identifiers in sorted order.
func (s *MemoryStore) ListIDs(ctx context.Context) ([]string, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// GetAll returns copies of every record ordered by identifier.
func (s *MemoryStore) GetAll(ctx context.Context) ([]games.TrackedGame, error) {
	ids, _ := s.ListIDs(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.TrackedGame, 0, len(ids))
	for _, id := range ids {
		if g, ok := s.games[id]; ok {
			result = append(result, g.Clone())
		}
	}
	return result, nil
}

// GetByID retrieves a record by identifier.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (games.TrackedGame, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return games.TrackedGame{}, notFound(id)
	}
	return g.Clone(), nil
}

// Put creates or replaces a record.
func (s *MemoryStore) Put(ctx context.Context, game games.TrackedGame) error {
	_ = ctx
	if err := validateID(game.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[game.ID] = game.Clone()
	return nil
}

// PutIfExists replaces a record only when it is already present.
func (s *MemoryStore) PutIfExists(ctx context.Context, game games.TrackedGame) (bool, error) {
	_ = ctx
	if err := validateID(game.ID); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[game.ID]; !ok {
		return false, nil
	}
	s.games[game.ID] = game.Clone()
	return true, nil
}

// DeleteByID removes a record if present.
func (s *MemoryStore) DeleteByID(ctx context.Context, id string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, id)
	return nil
}
