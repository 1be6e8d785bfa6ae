// Package fixture provides a deterministic feed for local runs without network access.
package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/feed"
)

const (
	gameLength   = 2 * time.Hour
	idDateLayout = "20060102"
)

// Feed returns one game per competition, each involving the configured team, whose state
// advances with the clock: pre before tip-off, live for two hours, then final.
type Feed struct {
	team  string
	rival string
	comps []games.Competition
	now   func() time.Time
}

var _ feed.Client = (*Feed)(nil)

// New creates a fixture feed for team, scheduling a rivalry game against rival first.
func New(team, rival string, comps []games.Competition) *Feed {
	if len(comps) == 0 {
		comps = games.DefaultCompetitions
	}
	return &Feed{team: team, rival: rival, comps: comps, now: time.Now}
}

// FetchTodayScoreboards returns the fixture schedule for the requested competitions.
func (f *Feed) FetchTodayScoreboards(ctx context.Context, competitions []games.Competition) ([]games.Scoreboard, error) {
	_ = ctx
	now := f.now().UTC()
	boards := make([]games.Scoreboard, 0, len(competitions))
	for _, comp := range competitions {
		board := games.Scoreboard{Competition: comp, Date: now.Format("2006/01/02")}
		for i, c := range f.comps {
			if c == comp {
				board.Games = append(board.Games, games.ScoreboardEntry{Game: f.game(i, startOfDay(now), now)})
			}
		}
		boards = append(boards, board)
	}
	return boards, nil
}

// FetchGameSnapshot returns the fixture game with the given id. Ids encode the competition
// slot and the scheduled day, so games stay addressable after midnight.
func (f *Feed) FetchGameSnapshot(ctx context.Context, id string) (games.Snapshot, error) {
	_ = ctx
	i, day, ok := parseID(id)
	if !ok || i >= len(f.comps) {
		return games.Snapshot{}, &feed.UpstreamError{Feed: "fixture", StatusCode: 404, Message: "game " + id + " not found"}
	}
	return f.game(i, day, f.now().UTC()), nil
}

func gameID(i int, day time.Time) string {
	return fmt.Sprintf("9%d%s", i+1, day.Format(idDateLayout))
}

func parseID(id string) (int, time.Time, bool) {
	if len(id) != 2+len(idDateLayout) || id[0] != '9' || id[1] < '1' || id[1] > '9' {
		return 0, time.Time{}, false
	}
	day, err := time.Parse(idDateLayout, id[2:])
	if err != nil {
		return 0, time.Time{}, false
	}
	return int(id[1] - '1'), day, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (f *Feed) game(i int, day, now time.Time) games.Snapshot {
	comp := f.comps[i]
	// 23:00 UTC onward, one game every three hours.
	start := day.Add(23*time.Hour + time.Duration(i)*3*time.Hour)
	id := gameID(i, day)

	opponent := f.rival
	oppRank := 0
	if i > 0 {
		opponent = fmt.Sprintf("opponent-%d", i)
		oppRank = 10 + i
	}

	snap := games.Snapshot{
		ID:       id,
		URL:      "/game/" + id,
		Start:    start,
		Sport:    comp.Sport,
		Division: comp.Division,
		Home: games.Competitor{
			Name: f.team, ShortName: f.team, SEO: f.team, Rank: 8 + i, Record: "5-1",
		},
		Away: games.Competitor{
			Name: opponent, ShortName: opponent, SEO: opponent, Rank: oppRank, Record: "4-2",
		},
		Venue: games.Venue{Name: "Fixture Arena", City: "Louisville", State: "KY"},
	}

	switch {
	case now.Before(start):
		snap.State = games.StatePre
	case now.Before(start.Add(gameLength)):
		snap.State = games.StateLive
		snap.Home.Score, snap.Away.Score = 30, 28
		snap.Linescores = []games.Linescore{{Period: "1", Home: 30, Away: 28}}
	default:
		snap.State = games.StateFinal
		snap.Home.Score, snap.Away.Score = 71, 64
		snap.Winner = games.SideHome
		snap.Linescores = []games.Linescore{
			{Period: "1", Home: 30, Away: 28},
			{Period: "2", Home: 41, Away: 36},
		}
	}
	return snap
}
