package ncaa

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/timeutil"
)

func mapScoreboard(comp games.Competition, date string, payload scoreboardResponse) games.Scoreboard {
	board := games.Scoreboard{
		Competition: comp,
		Date:        date,
		Games:       make([]games.ScoreboardEntry, 0, len(payload.Games)),
	}
	for _, entry := range payload.Games {
		board.Games = append(board.Games, games.ScoreboardEntry{Game: mapScoreboardGame(comp, entry.Game)})
	}
	return board
}

// mapScoreboardGame keeps states outside pre/live/final as StateNone so filtering drops them
// without failing the whole scoreboard.
func mapScoreboardGame(comp games.Competition, g scoreboardGame) games.Snapshot {
	state, err := games.ParseState(g.GameState)
	if err != nil {
		state = games.StateNone
	}
	snap := games.Snapshot{
		ID:        g.GameID,
		URL:       g.URL,
		Home:      mapScoreboardTeam(g.Home),
		Away:      mapScoreboardTeam(g.Away),
		Start:     timeutil.FromEpoch(int64(g.StartTimeEpoch)),
		State:     state,
		Sport:     comp.Sport,
		Division:  comp.Division,
		BracketID: strings.TrimSpace(g.BracketID),
	}
	switch {
	case g.Home.Winner:
		snap.Winner = games.SideHome
	case g.Away.Winner:
		snap.Winner = games.SideAway
	}
	return snap
}

func mapScoreboardTeam(t scoreboardTeam) games.Competitor {
	return games.Competitor{
		Name:      t.Names.Full,
		ShortName: t.Names.Short,
		SEO:       t.Names.SEO,
		Rank:      int(t.Rank),
		Seed:      int(t.Seed),
		Record:    strings.TrimSpace(t.Description),
		Score:     int(t.Score),
	}
}

func mapGameInfo(id string, g gameInfoResponse) (games.Snapshot, error) {
	state, err := games.ParseState(g.Status.GameState)
	if err != nil {
		return games.Snapshot{}, fmt.Errorf("game %s: %w", id, err)
	}
	if g.ID != "" {
		id = g.ID
	}
	snap := games.Snapshot{
		ID:        id,
		URL:       "/game/" + id,
		Home:      mapGameInfoTeam(g.Home),
		Away:      mapGameInfoTeam(g.Away),
		Start:     timeutil.FromEpoch(int64(g.Status.StartTimeEpoch)),
		State:     state,
		Winner:    mapWinner(g.Status.Winner),
		Sport:     g.Championship.Sport,
		Division:  g.Championship.Division,
		BracketID: strings.TrimSpace(g.Championship.BracketID),
		Venue: games.Venue{
			Name:  g.Venue.Name,
			City:  g.Venue.City,
			State: g.Venue.State,
		},
	}
	for _, ls := range g.Linescores {
		snap.Linescores = append(snap.Linescores, games.Linescore{
			Period: ls.Period,
			Home:   int(ls.Home),
			Away:   int(ls.Away),
		})
	}
	return snap, nil
}

func mapGameInfoTeam(t gameInfoTeam) games.Competitor {
	return games.Competitor{
		Name:      t.Names.Full,
		ShortName: t.Names.Short,
		SEO:       t.Names.SEO,
		Rank:      int(t.Rank),
		Seed:      int(t.Seed),
		Record:    strings.TrimSpace(t.Record),
		Score:     int(t.Score),
	}
}

func mapWinner(raw string) games.Side {
	switch games.Side(strings.ToLower(strings.TrimSpace(raw))) {
	case games.SideHome:
		return games.SideHome
	case games.SideAway:
		return games.SideAway
	default:
		return ""
	}
}
