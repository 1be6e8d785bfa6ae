package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

const recordExt = ".json"

// FSStore persists one indented JSON file per tracked game under a root directory.
type FSStore struct {
	root string
}

// NewFSStore constructs a filesystem store rooted at root. The directory is created on
// first write.
func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

// Root exposes the store directory.
func (s *FSStore) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

// RecordPath builds the path of the record for id.
func RecordPath(root, id string) string {
	return filepath.Join(root, id+recordExt)
}

// ListIDs returns identifiers of every record file, sorted.
func (s *FSStore) ListIDs(ctx context.Context) ([]string, error) {
	if s == nil {
		return nil, errors.New("record store not configured")
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != recordExt {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, recordExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// GetAll loads every record, skipping files that do not decode.
func (s *FSStore) GetAll(ctx context.Context) ([]games.TrackedGame, error) {
	ids, err := s.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]games.TrackedGame, 0, len(ids))
	corrupt := &CorruptRecordsError{}
	for _, id := range ids {
		g, err := s.GetByID(ctx, id)
		switch {
		case errors.Is(err, ErrNotFound):
			// removed between listing and reading
			continue
		case errors.Is(err, ErrCorruptRecord):
			corrupt.add(id, err)
			continue
		case err != nil:
			return nil, err
		}
		result = append(result, g)
	}
	return result, corrupt.orNil()
}

// GetByID reads the record for id.
func (s *FSStore) GetByID(ctx context.Context, id string) (games.TrackedGame, error) {
	_ = ctx
	if s == nil {
		return games.TrackedGame{}, errors.New("record store not configured")
	}
	if err := validateID(id); err != nil {
		return games.TrackedGame{}, err
	}
	data, err := os.ReadFile(RecordPath(s.root, id))
	if err != nil {
		if os.IsNotExist(err) {
			return games.TrackedGame{}, notFound(id)
		}
		return games.TrackedGame{}, err
	}
	var g games.TrackedGame
	if err := json.Unmarshal(data, &g); err != nil {
		return games.TrackedGame{}, fmt.Errorf("%w %s: %w", ErrCorruptRecord, id, err)
	}
	return g, nil
}

// Put writes the record through a temp file and rename. Unchanged content is not rewritten.
func (s *FSStore) Put(ctx context.Context, game games.TrackedGame) error {
	_ = ctx
	if s == nil {
		return errors.New("record store not configured")
	}
	if err := validateID(game.ID); err != nil {
		return err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return err
	}

	target := RecordPath(s.root, game.ID)
	data, err := json.MarshalIndent(game, "", "  ")
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

// PutIfExists writes the record only when its file is present.
func (s *FSStore) PutIfExists(ctx context.Context, game games.TrackedGame) (bool, error) {
	if s == nil {
		return false, errors.New("record store not configured")
	}
	if err := validateID(game.ID); err != nil {
		return false, err
	}
	if _, err := os.Stat(RecordPath(s.root, game.ID)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := s.Put(ctx, game); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByID removes the record file.
func (s *FSStore) DeleteByID(ctx context.Context, id string) error {
	_ = ctx
	if s == nil {
		return errors.New("record store not configured")
	}
	if err := validateID(id); err != nil {
		return err
	}
	if err := os.Remove(RecordPath(s.root, id)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
