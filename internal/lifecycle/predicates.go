// Package lifecycle decides, without doing any I/O, what should happen to a tracked game
// given its stored record and the feed's latest snapshot. Every predicate takes the cycle's
// "now" explicitly so one cycle's decisions stay consistent.
package lifecycle

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/timeutil"
)

// Lookahead is how far before kickoff a live thread may be opened.
const Lookahead = 4 * time.Hour

const (
	minTopRank = 1
	maxTopRank = 25
)

var numericID = regexp.MustCompile(`^\d+$`)

// NormalizeTeam folds a team short identifier for caseless comparison.
func NormalizeTeam(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameTeam compares two team short identifiers caselessly.
func SameTeam(a, b string) bool {
	return NormalizeTeam(a) == NormalizeTeam(b)
}

// MatchesTeam reports whether either participant is the given team.
func MatchesTeam(s games.Snapshot, team string) bool {
	if NormalizeTeam(team) == "" {
		return false
	}
	return SameTeam(s.Home.SEO, team) || SameTeam(s.Away.SEO, team)
}

// ValidState reports whether state is one of allowed.
func ValidState(state games.State, allowed ...games.State) bool {
	for _, a := range allowed {
		if state == a {
			return true
		}
	}
	return false
}

// StartsAfter reports whether start is strictly after limit.
func StartsAfter(start, limit time.Time) bool {
	return start.After(limit)
}

// WellFormedID reports whether id is a non-empty numeric string.
func WellFormedID(id string) bool {
	return numericID.MatchString(id)
}

// ValidID reports whether id is well formed and not already tracked.
func ValidID(id string, existing map[string]struct{}) bool {
	if _, ok := existing[id]; ok {
		return false
	}
	return WellFormedID(id)
}

// SameMinute compares two instants at minute precision.
func SameMinute(a, b time.Time) bool {
	return timeutil.SameMinute(a, b)
}

// IsTopRanked reports whether rank falls within the top 25.
func IsTopRanked(rank int) bool {
	return rank >= minTopRank && rank <= maxTopRank
}

// IsEligible decides whether a game gets a live thread: bracket games, top-25 matchups and
// rivalry games do.
func IsEligible(s games.Snapshot, rival string) bool {
	if s.InBracket() {
		return true
	}
	if IsTopRanked(s.Home.Rank) && IsTopRanked(s.Away.Rank) {
		return true
	}
	return MatchesTeam(s, rival)
}

// IsImminent reports whether a pre-game record should get its live thread now.
func IsImminent(g games.TrackedGame, now time.Time) bool {
	return g.State == games.StatePre &&
		g.LiveThreadEligible &&
		!g.HasLiveThread() &&
		timeutil.BeforeMinute(g.Start, now.Add(Lookahead))
}

// IsLive reports whether the game is in progress or past its scheduled start.
func IsLive(g games.TrackedGame, now time.Time) bool {
	return g.State == games.StateLive || g.Start.Before(now)
}

// IsPostGame reports whether the stored record is final and its start has passed.
func IsPostGame(g games.TrackedGame, now time.Time) bool {
	return g.State == games.StateFinal && g.Start.Before(now)
}

// IsPendingRetire reports whether the summary thread exists but the record was not removed.
func IsPendingRetire(g games.TrackedGame) bool {
	return g.HasSummaryThread()
}

// IsRelevant decides whether a record is reconciled this cycle.
func IsRelevant(g games.TrackedGame, now time.Time) bool {
	return IsImminent(g, now) || IsLive(g, now) || IsPostGame(g, now) || IsPendingRetire(g)
}

// ReadyForSummary reports whether a fetched snapshot has a settled result. A final game with
// no winner only qualifies when the sport permits ties and the score is level.
func ReadyForSummary(s games.Snapshot) bool {
	if s.State != games.StateFinal {
		return false
	}
	if s.Winner == games.SideHome || s.Winner == games.SideAway {
		return true
	}
	return games.SportAllowsTies(s.Sport) && s.Home.Score == s.Away.Score
}

// SameRecord compares records on the fields that matter for persistence.
func SameRecord(a, b games.TrackedGame) bool {
	return a.ID == b.ID &&
		a.LiveThreadEligible == b.LiveThreadEligible &&
		sameRef(a.LiveThreadID, b.LiveThreadID) &&
		sameRef(a.SummaryThreadID, b.SummaryThreadID) &&
		a.State == b.State &&
		SameMinute(a.Start, b.Start)
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
