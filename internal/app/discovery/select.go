package discovery

import (
	"strings"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/lifecycle"
)

// Rules decides which scoreboard games are worth tracking.
type Rules struct {
	// Team is the followed team's SEO name; games without it are ignored.
	Team string
	// Rival makes any game involving it eligible for a live thread.
	Rival string
}

var trackableStates = []games.State{games.StatePre, games.StateLive}

// Unwrap flattens the per-game wrappers of every scoreboard, in feed order.
func Unwrap(boards []games.Scoreboard) []games.Snapshot {
	var out []games.Snapshot
	for _, b := range boards {
		for _, entry := range b.Games {
			out = append(out, entry.Game)
		}
	}
	return out
}

// IDFromURL returns the last path segment of a scoreboard game URL.
func IDFromURL(raw string) string {
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

// Select picks the followed team's upcoming games that are not tracked yet and shapes them
// into new records. An id seen twice in one batch is only selected once.
func Select(boards []games.Scoreboard, existing map[string]struct{}, rules Rules, now time.Time) []games.TrackedGame {
	seen := make(map[string]struct{}, len(existing))
	for id := range existing {
		seen[id] = struct{}{}
	}

	var out []games.TrackedGame
	for _, s := range Unwrap(boards) {
		id := IDFromURL(s.URL)
		if !lifecycle.MatchesTeam(s, rules.Team) ||
			!lifecycle.ValidState(s.State, trackableStates...) ||
			!lifecycle.StartsAfter(s.Start, now) ||
			!lifecycle.ValidID(id, seen) {
			continue
		}
		g, err := games.NewTrackedGame(id, s.Start, s.State, lifecycle.IsEligible(s, rules.Rival))
		if err != nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, g)
	}
	return out
}
