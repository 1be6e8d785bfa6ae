// Package ncaa reads scoreboards and game details from the NCAA casablanca data feed.
package ncaa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/feed"
)

// Config controls how the client reaches the upstream feed.
type Config struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches scoreboards and game info and maps them to domain snapshots.
type Client struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient httpDoer
}

var _ feed.Client = (*Client)(nil)

// NewClient constructs an NCAA feed client with the provided configuration.
func NewClient(cfg Config) *Client {
	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  ua,
		timeout:    resolveTimeout(cfg.Timeout),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchTodayScoreboards resolves each competition's "today" and fetches its scoreboard.
// Competitions are fetched concurrently; any failure fails the whole call.
func (c *Client) FetchTodayScoreboards(ctx context.Context, competitions []games.Competition) ([]games.Scoreboard, error) {
	boards := make([]games.Scoreboard, len(competitions))
	g, gctx := errgroup.WithContext(ctx)
	for i, comp := range competitions {
		i, comp := i, comp
		g.Go(func() error {
			board, err := c.fetchScoreboard(gctx, comp)
			if err != nil {
				return fmt.Errorf("%s scoreboard: %w", comp, err)
			}
			boards[i] = board
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return boards, nil
}

// FetchGameSnapshot fetches game info for one game.
func (c *Client) FetchGameSnapshot(ctx context.Context, id string) (games.Snapshot, error) {
	if strings.TrimSpace(id) == "" {
		return games.Snapshot{}, fmt.Errorf("game id required")
	}
	var payload gameInfoResponse
	if err := c.getJSON(ctx, "/game/"+id+"/gameInfo.json", &payload); err != nil {
		return games.Snapshot{}, err
	}
	return mapGameInfo(id, payload)
}

func (c *Client) fetchScoreboard(ctx context.Context, comp games.Competition) (games.Scoreboard, error) {
	var today todayResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/schedule/%s/%s/today.json", comp.Sport, comp.Division), &today); err != nil {
		return games.Scoreboard{}, err
	}
	date := strings.Trim(strings.TrimSpace(today.Today), "/")
	if date == "" {
		return games.Scoreboard{}, &feed.UpstreamError{Feed: feedName, Message: "schedule returned no date"}
	}

	var payload scoreboardResponse
	path := fmt.Sprintf("/scoreboard/%s/%s/%s/scoreboard.json", comp.Sport, comp.Division, date)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return games.Scoreboard{}, err
	}
	return mapScoreboard(comp, date, payload), nil
}

// getJSON issues one GET bounded by the per-request timeout.
func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &feed.UpstreamError{
			Feed:       feedName,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("GET %s: %s", path, strings.TrimSpace(string(body))),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: decode %s: %w", feedName, path, err)
	}
	return nil
}
