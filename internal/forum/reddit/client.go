// Package reddit publishes game threads to a subreddit through the OAuth API.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/forum"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
)

// Config holds script-app credentials and endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	Subreddit    string
	UserAgent    string
	APIBase      string
	TokenURL     string
	Timeout      time.Duration
	HTTPClient   *http.Client
	Renderer     forum.Renderer
	Logger       *slog.Logger
}

// Client implements forum.Client against the reddit API.
type Client struct {
	apiBase   string
	subreddit string
	http      *http.Client
	renderer  forum.Renderer
	logger    *slog.Logger
}

var _ forum.Client = (*Client)(nil)

// New validates credentials and builds an authorized client. No request is made until the
// first post.
func New(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.Username == "" || cfg.Password == "" || cfg.Subreddit == "" {
		return nil, forum.ErrNotConfigured
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	base := cfg.HTTPClient
	if base == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		base = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	renderer := cfg.Renderer
	if renderer.Subreddit == "" {
		renderer.Subreddit = cfg.Subreddit
	}
	if renderer.BotName == "" {
		renderer.BotName = cfg.Username
	}

	return &Client{
		apiBase:   strings.TrimSuffix(cfg.APIBase, "/"),
		subreddit: cfg.Subreddit,
		http:      newAuthorizedClient(cfg, base),
		renderer:  renderer,
		logger:    logger,
	}, nil
}

// CreateLiveThread submits the game thread, then decorates it. Only the submission itself can
// fail the call; once it exists, decoration failures are logged so the thread is never posted twice.
func (c *Client) CreateLiveThread(ctx context.Context, snap games.Snapshot) (forum.Thread, error) {
	thread, err := c.submit(ctx, forum.ActionLiveThread, c.renderer.LiveTitle(snap))
	if err != nil {
		return forum.Thread{}, err
	}
	c.decorate(ctx, forum.ActionLiveThread, thread, "edit", func() error {
		return c.editText(ctx, thread.ID, c.renderer.LiveBody(snap, thread.URL))
	})
	c.decorate(ctx, forum.ActionLiveThread, thread, "distinguish", func() error {
		return c.distinguish(ctx, thread.ID, false)
	})
	c.decorate(ctx, forum.ActionLiveThread, thread, "suggested_sort", func() error {
		return c.post(ctx, forum.ActionLiveThread, "/api/set_suggested_sort", url.Values{"id": {thread.ID}, "sort": {suggestedSort}}, nil)
	})
	c.decorate(ctx, forum.ActionLiveThread, thread, "flair", func() error {
		return c.applyFlair(ctx, thread.ID, forum.SportName(snap.Sport))
	})
	return thread, nil
}

// CreateSummaryThread submits the post-game thread with its scoring table.
func (c *Client) CreateSummaryThread(ctx context.Context, snap games.Snapshot) (forum.Thread, error) {
	thread, err := c.submit(ctx, forum.ActionSummary, c.renderer.SummaryTitle(snap))
	if err != nil {
		return forum.Thread{}, err
	}
	c.decorate(ctx, forum.ActionSummary, thread, "edit", func() error {
		return c.editText(ctx, thread.ID, c.renderer.SummaryBody(snap, thread.URL))
	})
	c.decorate(ctx, forum.ActionSummary, thread, "distinguish", func() error {
		return c.distinguish(ctx, thread.ID, false)
	})
	c.decorate(ctx, forum.ActionSummary, thread, "flair", func() error {
		return c.applyFlair(ctx, thread.ID, forum.SportName(snap.Sport))
	})
	return thread, nil
}

// LockThread replies with a stickied pointer to pointerURL, mutes replies to it and locks the
// thread. Every step must succeed.
func (c *Client) LockThread(ctx context.Context, threadID, pointerURL string) (forum.Thread, error) {
	thread, err := c.lookup(ctx, threadID)
	if err != nil {
		return forum.Thread{}, err
	}

	var env apiEnvelope
	form := url.Values{"thing_id": {thread.ID}, "text": {forum.LockComment(pointerURL)}}
	if err := c.post(ctx, forum.ActionLock, "/api/comment", form, &env); err != nil {
		return forum.Thread{}, err
	}
	if len(env.JSON.Data.Things) == 0 {
		return forum.Thread{}, &forum.APIError{Action: forum.ActionLock, Message: "comment response carried no thing"}
	}
	commentID := env.JSON.Data.Things[0].Data.Name

	if err := c.distinguish(ctx, commentID, true); err != nil {
		return forum.Thread{}, err
	}
	if err := c.post(ctx, forum.ActionLock, "/api/sendreplies", url.Values{"id": {commentID}, "state": {"false"}}, nil); err != nil {
		return forum.Thread{}, err
	}
	if err := c.post(ctx, forum.ActionLock, "/api/lock", url.Values{"id": {thread.ID}}, nil); err != nil {
		return forum.Thread{}, err
	}
	return thread, nil
}

func (c *Client) submit(ctx context.Context, action, title string) (forum.Thread, error) {
	form := url.Values{
		"sr":          {c.subreddit},
		"kind":        {"self"},
		"title":       {title},
		"text":        {""},
		"sendreplies": {"false"},
		"resubmit":    {"true"},
	}
	var env apiEnvelope
	if err := c.post(ctx, action, "/api/submit", form, &env); err != nil {
		return forum.Thread{}, err
	}
	data := env.JSON.Data
	if data.Name == "" {
		return forum.Thread{}, &forum.APIError{Action: action, Message: "submit response carried no thread name"}
	}
	return forum.Thread{ID: data.Name, URL: data.URL}, nil
}

func (c *Client) editText(ctx context.Context, thingID, text string) error {
	return c.post(ctx, "edit", "/api/editusertext", url.Values{"thing_id": {thingID}, "text": {text}}, nil)
}

func (c *Client) distinguish(ctx context.Context, thingID string, sticky bool) error {
	form := url.Values{"id": {thingID}, "how": {"yes"}}
	if sticky {
		form.Set("sticky", "true")
	}
	return c.post(ctx, "distinguish", "/api/distinguish", form, nil)
}

// applyFlair selects the link flair whose text equals name; no match is not an error.
func (c *Client) applyFlair(ctx context.Context, thingID, name string) error {
	var templates []flairTemplate
	if err := c.get(ctx, "flair", "/r/"+c.subreddit+"/api/link_flair_v2", nil, &templates); err != nil {
		return err
	}
	for _, tpl := range templates {
		if tpl.Text == name {
			form := url.Values{"link": {thingID}, "flair_template_id": {tpl.ID}}
			return c.post(ctx, "flair", "/r/"+c.subreddit+"/api/selectflair", form, nil)
		}
	}
	return nil
}

func (c *Client) lookup(ctx context.Context, threadID string) (forum.Thread, error) {
	if strings.TrimSpace(threadID) == "" {
		return forum.Thread{}, &forum.APIError{Action: forum.ActionLock, Message: "thread id required"}
	}
	var out listing
	if err := c.get(ctx, forum.ActionLock, "/api/info", url.Values{"id": {threadID}}, &out); err != nil {
		return forum.Thread{}, err
	}
	if len(out.Data.Children) == 0 {
		return forum.Thread{}, &forum.APIError{Action: forum.ActionLock, StatusCode: http.StatusNotFound, Message: "thread " + threadID + " not found"}
	}
	data := out.Data.Children[0].Data
	return forum.Thread{ID: data.Name, URL: data.URL}, nil
}

func (c *Client) decorate(ctx context.Context, action string, thread forum.Thread, step string, fn func() error) {
	if err := fn(); err != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "thread decoration failed",
			logging.FieldAction, action,
			logging.FieldThreadID, thread.ID,
			"step", step,
			logging.FieldError, err,
		)
	}
}

func (c *Client) post(ctx context.Context, action, path string, form url.Values, dst any) error {
	form.Set("api_type", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, action, dst)
}

func (c *Client) get(ctx context.Context, action, path string, query url.Values, dst any) error {
	target := c.apiBase + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	return c.do(req, action, dst)
}

func (c *Client) do(req *http.Request, action string, dst any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return &forum.APIError{Action: action, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &forum.APIError{Action: action, StatusCode: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > errorBodyLimit {
			body = body[:errorBodyLimit]
		}
		return &forum.APIError{
			Action:     action,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s %s: %s", req.Method, req.URL.Path, strings.TrimSpace(string(body))),
		}
	}

	var env apiEnvelope
	if json.Unmarshal(body, &env) == nil {
		if msg := env.errorMessage(); msg != "" {
			return &forum.APIError{Action: action, StatusCode: resp.StatusCode, Message: msg}
		}
	}
	if dst == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &forum.APIError{Action: action, StatusCode: resp.StatusCode, Message: "decode: " + err.Error()}
	}
	return nil
}
