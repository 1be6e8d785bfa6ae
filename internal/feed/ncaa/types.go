package ncaa

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexInt decodes numbers the feed sends either as JSON numbers or as strings. Empty or
// unparseable values decode to zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

type todayResponse struct {
	Today string `json:"today"`
}

type teamNames struct {
	Char6 string `json:"char6"`
	Short string `json:"short"`
	SEO   string `json:"seo"`
	Full  string `json:"full"`
}

type scoreboardResponse struct {
	Games []scoreboardEntry `json:"games"`
}

type scoreboardEntry struct {
	Game scoreboardGame `json:"game"`
}

type scoreboardGame struct {
	GameID         string         `json:"gameID"`
	URL            string         `json:"url"`
	GameState      string         `json:"gameState"`
	StartTimeEpoch flexInt        `json:"startTimeEpoch"`
	BracketID      string         `json:"bracketId"`
	Home           scoreboardTeam `json:"home"`
	Away           scoreboardTeam `json:"away"`
}

type scoreboardTeam struct {
	Names       teamNames `json:"names"`
	Rank        flexInt   `json:"rank"`
	Seed        flexInt   `json:"seed"`
	Score       flexInt   `json:"score"`
	Winner      bool      `json:"winner"`
	Description string    `json:"description"`
}

type gameInfoResponse struct {
	ID           string             `json:"id"`
	Status       gameInfoStatus     `json:"status"`
	Home         gameInfoTeam       `json:"home"`
	Away         gameInfoTeam       `json:"away"`
	Championship gameInfoChampion   `json:"championship"`
	Venue        gameInfoVenue      `json:"venue"`
	Linescores   []gameInfoLinescore `json:"linescores"`
}

type gameInfoStatus struct {
	GameState      string  `json:"gameState"`
	StartTimeEpoch flexInt `json:"startTimeEpoch"`
	Winner         string  `json:"winner"`
}

type gameInfoTeam struct {
	Names  teamNames `json:"names"`
	Rank   flexInt   `json:"rank"`
	Seed   flexInt   `json:"seed"`
	Score  flexInt   `json:"score"`
	Record string    `json:"record"`
}

type gameInfoChampion struct {
	Sport     string `json:"sport"`
	Division  string `json:"division"`
	BracketID string `json:"bracketId"`
}

type gameInfoVenue struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

type gameInfoLinescore struct {
	Period string  `json:"per"`
	Home   flexInt `json:"h"`
	Away   flexInt `json:"v"`
}
