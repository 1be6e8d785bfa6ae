package server

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/gameday-threads/internal/config"
	"github.com/preston-bernstein/gameday-threads/internal/store"
)

var openSQLite = store.OpenSQLite

// openStore selects the record store backend. The returned closer is nil when the backend
// holds no resources.
func openStore(cfg config.StoreConfig) (store.Store, func(context.Context) error, error) {
	switch cfg.Backend {
	case config.StoreSQLite:
		db, err := openSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store %s: %w", cfg.SQLitePath, err)
		}
		return db, func(context.Context) error { return db.Close() }, nil
	case config.StoreMemory:
		return store.NewMemoryStore(), nil, nil
	case config.StoreFile, "":
		return store.NewFSStore(cfg.DataDir), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
