package forum

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/timeutil"
)

const (
	boxscoreURLFormat = "https://www.ncaa.com/game/%s/boxscore"
	composeURL        = "https://www.reddit.com/message/compose"
	lockCommentFormat = "**This game has ended.** Keep the discussion going in the [post-game thread](%s)!"
	footerFormat      = "_I am a bot. If you notice a problem or have a suggestion regarding me, please [message the moderators](%s)._\n"
)

var sportNames = map[string]string{
	"basketball-men":   "Men's Basketball",
	"basketball-women": "Women's Basketball",
	"football":         "Football",
}

var overtimePeriod = regexp.MustCompile(`OT$`)

// SportName returns the display name for a feed sport slug.
func SportName(sport string) string {
	if name, ok := sportNames[strings.ToLower(sport)]; ok {
		return name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(sport, "-", " "))
}

// Renderer builds thread titles and bodies from the followed team's perspective.
type Renderer struct {
	Team      string
	Location  *time.Location
	Subreddit string
	BotName   string
}

// LiveTitle renders e.g. "[Game Thread] #5 Louisville Men's Basketball (5-1) vs Kentucky (4-2) at 7:00 PM EST".
func (r Renderer) LiveTitle(s games.Snapshot) string {
	ours, theirs, ourSide := r.sides(s)
	venue := "vs"
	if ourSide == games.SideAway {
		venue = "@"
	}
	return joinNonEmpty(" ",
		"[Game Thread]",
		teamLabel(s, ours),
		formatRecord(ours.Record),
		venue,
		opponentLabel(s, theirs),
		formatRecord(theirs.Record),
		"at "+r.clock(s),
	)
}

// LiveBody renders the live thread body. threadURL feeds the report link.
func (r Renderer) LiveBody(s games.Snapshot, threadURL string) string {
	_, theirs, _ := r.sides(s)

	var b strings.Builder
	fmt.Fprintf(&b, "**Opponent:** %s\n\n", joinNonEmpty(" ", opponentLabel(s, theirs), formatRecord(theirs.Record)))
	fmt.Fprintf(&b, "**Time:** %s\n\n", r.clock(s))
	fmt.Fprintf(&b, "**Location:** %s\n\n", joinNonEmpty(", ", s.Venue.Name, s.Venue.City, s.Venue.State))
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, footerFormat, r.ReportURL(threadURL))
	return b.String()
}

// SummaryTitle renders e.g. "[Post-Game Thread] #5 Louisville Men's Basketball defeats Kentucky, 80-70 (OT)".
func (r Renderer) SummaryTitle(s games.Snapshot) string {
	ours, theirs, ourSide := r.sides(s)

	verb := "loses to"
	switch s.Winner {
	case "":
		verb = "ties"
	case ourSide:
		verb = "defeats"
	}

	score := fmt.Sprintf("%d-%d", ours.Score, theirs.Score)
	if n := len(s.Linescores); n > 0 && overtimePeriod.MatchString(s.Linescores[n-1].Period) {
		score += " (" + s.Linescores[n-1].Period + ")"
	}

	return joinNonEmpty(" ",
		"[Post-Game Thread]",
		teamLabel(s, ours),
		verb,
		opponentLabel(s, theirs),
	) + ", " + score
}

// SummaryBody renders the scoring table, boxscore link and footer.
func (r Renderer) SummaryBody(s games.Snapshot, threadURL string) string {
	ours, theirs, ourSide := r.sides(s)

	header := []string{"Team"}
	align := []string{":--"}
	for _, ls := range s.Linescores {
		header = append(header, ls.Period)
		align = append(align, ":-:")
	}
	header = append(header, "Total")
	align = append(align, ":-:")

	var b strings.Builder
	b.WriteString("### Scoring\n\n")
	b.WriteString(strings.Join(header, " | ") + "\n")
	b.WriteString(strings.Join(align, " | ") + "\n")
	b.WriteString(scoringRow(s, ours, ourSide) + "\n")
	b.WriteString(scoringRow(s, theirs, opposite(ourSide)) + "\n\n")
	fmt.Fprintf(&b, "[View the Boxscore on NCAA.com](%s)\n\n", fmt.Sprintf(boxscoreURLFormat, s.ID))
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, footerFormat, r.ReportURL(threadURL))
	return b.String()
}

// LockComment renders the pointer left on a locked live thread.
func LockComment(summaryURL string) string {
	return fmt.Sprintf(lockCommentFormat, summaryURL)
}

// ReportURL builds a message-the-moderators link referencing threadURL.
func (r Renderer) ReportURL(threadURL string) string {
	v := url.Values{}
	v.Set("to", "/r/"+r.Subreddit)
	v.Set("subject", "I have a problem or suggestion regarding /u/"+r.BotName)
	v.Set("message", "**Problem/Suggestion:** \n**Reference URL**: "+threadURL)
	return composeURL + "?" + v.Encode()
}

// sides returns the followed team, its opponent and the followed team's side. When the team
// is not playing, the home side is treated as ours.
func (r Renderer) sides(s games.Snapshot) (games.Competitor, games.Competitor, games.Side) {
	if side, ok := s.SideOf(r.Team); ok && side == games.SideAway {
		return s.Away, s.Home, games.SideAway
	}
	return s.Home, s.Away, games.SideHome
}

func (r Renderer) clock(s games.Snapshot) string {
	return timeutil.FormatClock(s.Start, r.Location)
}

func teamLabel(s games.Snapshot, c games.Competitor) string {
	return joinNonEmpty(" ", designation(s, c), c.ShortName+" "+SportName(s.Sport))
}

func opponentLabel(s games.Snapshot, c games.Competitor) string {
	return joinNonEmpty(" ", designation(s, c), c.ShortName)
}

// designation prefers the bracket seed in bracket games, then the poll rank.
func designation(s games.Snapshot, c games.Competitor) string {
	if s.InBracket() && c.Seed > 0 {
		return fmt.Sprintf("%d seed", c.Seed)
	}
	if c.Rank > 0 {
		return fmt.Sprintf("#%d", c.Rank)
	}
	return ""
}

func formatRecord(record string) string {
	record = strings.TrimSpace(record)
	if record == "" || strings.HasPrefix(record, "(") {
		return record
	}
	return "(" + record + ")"
}

func scoringRow(s games.Snapshot, c games.Competitor, side games.Side) string {
	cells := []string{c.ShortName}
	if len(s.Linescores) == 0 {
		return strings.Join(append(cells, fmt.Sprint(c.Score)), " | ")
	}
	total := 0
	for _, ls := range s.Linescores {
		points := ls.Away
		if side == games.SideHome {
			points = ls.Home
		}
		total += points
		cells = append(cells, fmt.Sprint(points))
	}
	return strings.Join(append(cells, fmt.Sprint(total)), " | ")
}

func opposite(side games.Side) games.Side {
	if side == games.SideHome {
		return games.SideAway
	}
	return games.SideHome
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
