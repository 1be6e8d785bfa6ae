package testutil

import (
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

// NowAt returns a clock fixed at t.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SampleSnapshot returns a Louisville home game against Kentucky with the provided id.
func SampleSnapshot(id string, start time.Time, state games.State) games.Snapshot {
	return games.Snapshot{
		ID:    id,
		URL:   "/game/" + id,
		Start: start.UTC(),
		State: state,
		Sport: "basketball-men",
		Home: games.Competitor{
			Name:      "Louisville Cardinals",
			ShortName: "Louisville",
			SEO:       "louisville",
			Rank:      5,
			Record:    "5-1",
		},
		Away: games.Competitor{
			Name:      "Kentucky Wildcats",
			ShortName: "Kentucky",
			SEO:       "kentucky",
			Record:    "4-2",
		},
		Venue: games.Venue{Name: "KFC Yum! Center", City: "Louisville", State: "KY"},
	}
}

// FinalSnapshot returns a decided final for the provided id with the home side winning.
func FinalSnapshot(id string, start time.Time) games.Snapshot {
	s := SampleSnapshot(id, start, games.StateFinal)
	s.Home.Score = 80
	s.Away.Score = 70
	s.Winner = games.SideHome
	s.Linescores = []games.Linescore{
		{Period: "1", Home: 38, Away: 35},
		{Period: "2", Home: 42, Away: 35},
	}
	return s
}

// SampleTracked returns a stored record with no thread references.
func SampleTracked(id string, start time.Time, state games.State, eligible bool) games.TrackedGame {
	return games.TrackedGame{
		ID:                 id,
		Start:              start.UTC(),
		State:              state,
		LiveThreadEligible: eligible,
	}
}
