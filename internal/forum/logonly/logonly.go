// Package logonly implements a forum client that logs what it would publish.
package logonly

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/forum"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
)

const defaultBaseURL = "https://forum.invalid/threads/"

// Client renders threads and logs them instead of posting.
type Client struct {
	renderer forum.Renderer
	baseURL  string
	logger   *slog.Logger
}

var _ forum.Client = (*Client)(nil)

// New builds a log-only client. baseURL prefixes the synthetic thread URLs.
func New(renderer forum.Renderer, baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{renderer: renderer, baseURL: baseURL, logger: logger}
}

func (c *Client) CreateLiveThread(ctx context.Context, snap games.Snapshot) (forum.Thread, error) {
	thread := c.newThread()
	c.log(ctx, forum.ActionLiveThread, thread, snap.ID,
		"title", c.renderer.LiveTitle(snap),
		"body", c.renderer.LiveBody(snap, thread.URL),
	)
	return thread, nil
}

func (c *Client) CreateSummaryThread(ctx context.Context, snap games.Snapshot) (forum.Thread, error) {
	thread := c.newThread()
	c.log(ctx, forum.ActionSummary, thread, snap.ID,
		"title", c.renderer.SummaryTitle(snap),
		"body", c.renderer.SummaryBody(snap, thread.URL),
	)
	return thread, nil
}

func (c *Client) LockThread(ctx context.Context, threadID, pointerURL string) (forum.Thread, error) {
	thread := forum.Thread{ID: threadID, URL: c.baseURL + threadID}
	c.log(ctx, forum.ActionLock, thread, "", "comment", forum.LockComment(pointerURL))
	return thread, nil
}

func (c *Client) newThread() forum.Thread {
	id := uuid.NewString()
	return forum.Thread{ID: id, URL: c.baseURL + id}
}

func (c *Client) log(ctx context.Context, action string, thread forum.Thread, gameID string, args ...any) {
	attrs := []any{
		logging.FieldForum, "log",
		logging.FieldAction, action,
		logging.FieldThreadID, thread.ID,
		"url", thread.URL,
	}
	if gameID != "" {
		attrs = append(attrs, logging.FieldGameID, gameID)
	}
	logging.Info(logging.FromContext(ctx, c.logger), "forum post (not published)", append(attrs, args...)...)
}
