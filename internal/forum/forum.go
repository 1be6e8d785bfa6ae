// Package forum defines the discussion forum boundary and renders thread content.
package forum

import (
	"context"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

// Thread references a published thread.
type Thread struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Client publishes and locks threads.
type Client interface {
	CreateLiveThread(ctx context.Context, snap games.Snapshot) (Thread, error)
	CreateSummaryThread(ctx context.Context, snap games.Snapshot) (Thread, error)
	// LockThread posts a pointer to pointerURL on the thread and locks it.
	LockThread(ctx context.Context, threadID, pointerURL string) (Thread, error)
}

// Action names used in logs and metrics.
const (
	ActionLiveThread = "live_thread"
	ActionSummary    = "summary_thread"
	ActionLock       = "lock_thread"
)
