package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

// SQLiteStore keeps each record as a JSON document in a single table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("missing sqlite path")
	}
	if p != ":memory:" {
		p = filepath.Clean(p)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(`PRAGMA busy_timeout=3000;`); err != nil {
		return fmt.Errorf("pragma busy_timeout: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS tracked_games (
	id   TEXT PRIMARY KEY,
	body TEXT NOT NULL
);`); err != nil {
		return fmt.Errorf("create tracked_games: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ListIDs returns every stored identifier, sorted.
func (s *SQLiteStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM tracked_games ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetAll decodes every stored record ordered by identifier.
func (s *SQLiteStore) GetAll(ctx context.Context) ([]games.TrackedGame, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, body FROM tracked_games ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []games.TrackedGame{}
	corrupt := &CorruptRecordsError{}
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		g, err := decodeRecord(id, body)
		if err != nil {
			corrupt.add(id, err)
			continue
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, corrupt.orNil()
}

// GetByID loads a single record.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (games.TrackedGame, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM tracked_games WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return games.TrackedGame{}, notFound(id)
	}
	if err != nil {
		return games.TrackedGame{}, err
	}
	return decodeRecord(id, body)
}

// Put inserts or replaces the record.
func (s *SQLiteStore) Put(ctx context.Context, game games.TrackedGame) error {
	body, err := encodeRecord(game)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tracked_games (id, body) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET body = excluded.body`,
		game.ID, body)
	return err
}

// PutIfExists updates the record only when its row exists.
func (s *SQLiteStore) PutIfExists(ctx context.Context, game games.TrackedGame) (bool, error) {
	body, err := encodeRecord(game)
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE tracked_games SET body = ? WHERE id = ?`, body, game.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByID removes the record row.
func (s *SQLiteStore) DeleteByID(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tracked_games WHERE id = ?`, id)
	return err
}

func encodeRecord(game games.TrackedGame) (string, error) {
	if err := validateID(game.ID); err != nil {
		return "", err
	}
	data, err := json.Marshal(game)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeRecord(id, body string) (games.TrackedGame, error) {
	var g games.TrackedGame
	if err := json.Unmarshal([]byte(body), &g); err != nil {
		return games.TrackedGame{}, fmt.Errorf("%w %s: %w", ErrCorruptRecord, id, err)
	}
	return g, nil
}
