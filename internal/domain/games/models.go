package games

import (
	"strings"
	"time"
)

// Competition identifies a sport/division pair on the scoreboard feed.
type Competition struct {
	Sport    string `json:"sport" yaml:"sport"`
	Division string `json:"division" yaml:"division"`
}

// String renders the competition as sport/division.
func (c Competition) String() string {
	return c.Sport + "/" + c.Division
}

// DefaultCompetitions are tracked when configuration does not override them.
var DefaultCompetitions = []Competition{
	{Sport: "basketball-men", Division: "d1"},
	{Sport: "basketball-women", Division: "d1"},
	{Sport: "football", Division: "fbs"},
}

// tieSports permit a final result without a winner.
var tieSports = map[string]bool{
	"soccer-men":   true,
	"soccer-women": true,
}

// SportAllowsTies reports whether a final game in the sport may end level.
func SportAllowsTies(sport string) bool {
	return tieSports[strings.ToLower(sport)]
}

// Side marks which participant slot a competitor occupies.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Competitor is one participant in a game.
type Competitor struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	SEO       string `json:"seo"`
	Rank      int    `json:"rank,omitempty"`
	Seed      int    `json:"seed,omitempty"`
	Record    string `json:"record,omitempty"`
	Score     int    `json:"score"`
}

// Venue describes where a game is played.
type Venue struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// Linescore is the per-period scoring line.
type Linescore struct {
	Period string `json:"period"`
	Home   int    `json:"home"`
	Away   int    `json:"away"`
}

// Snapshot is the authoritative point-in-time game data from the feed.
type Snapshot struct {
	ID         string      `json:"id"`
	URL        string      `json:"url"`
	Home       Competitor  `json:"home"`
	Away       Competitor  `json:"away"`
	Start      time.Time   `json:"start"`
	State      State       `json:"state"`
	Winner     Side        `json:"winner,omitempty"`
	Sport      string      `json:"sport"`
	Division   string      `json:"division,omitempty"`
	BracketID  string      `json:"bracketId,omitempty"`
	Venue      Venue       `json:"venue"`
	Linescores []Linescore `json:"linescores,omitempty"`
}

// Competitor returns the participant on the given side.
func (s Snapshot) Competitor(side Side) Competitor {
	if side == SideHome {
		return s.Home
	}
	return s.Away
}

// SideOf returns the side the team (matched by SEO name, case-insensitive) plays on.
func (s Snapshot) SideOf(team string) (Side, bool) {
	switch {
	case strings.EqualFold(s.Home.SEO, team):
		return SideHome, true
	case strings.EqualFold(s.Away.SEO, team):
		return SideAway, true
	default:
		return "", false
	}
}

// InBracket reports whether the game belongs to an elimination bracket.
func (s Snapshot) InBracket() bool {
	return s.BracketID != ""
}

// ScoreboardEntry is the per-game wrapper the scoreboard feed nests snapshots in.
type ScoreboardEntry struct {
	Game Snapshot `json:"game"`
}

// Scoreboard is one competition's games for a day.
type Scoreboard struct {
	Competition Competition       `json:"competition"`
	Date        string            `json:"date"`
	Games       []ScoreboardEntry `json:"games"`
}
