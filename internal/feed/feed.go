// Package feed defines the scoreboard feed boundary and the wrappers composed around it.
package feed

import (
	"context"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

// Client fetches scoreboards and single-game snapshots from the upstream feed.
type Client interface {
	// FetchTodayScoreboards returns one scoreboard per competition for the feed's "today".
	FetchTodayScoreboards(ctx context.Context, competitions []games.Competition) ([]games.Scoreboard, error)
	// FetchGameSnapshot returns the authoritative current state of one game.
	FetchGameSnapshot(ctx context.Context, id string) (games.Snapshot, error)
}
