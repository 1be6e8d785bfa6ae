package forum

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
)

type instrumentedClient struct {
	next     Client
	provider string
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewInstrumented records every forum action and its outcome.
func NewInstrumented(next Client, provider string, recorder *metrics.Recorder, logger *slog.Logger) Client {
	return &instrumentedClient{next: next, provider: provider, recorder: recorder, logger: logger}
}

func (c *instrumentedClient) CreateLiveThread(ctx context.Context, snap games.Snapshot) (Thread, error) {
	start := time.Now()
	thread, err := c.next.CreateLiveThread(ctx, snap)
	c.observe(ctx, ActionLiveThread, start, thread, err, logging.FieldGameID, snap.ID)
	return thread, err
}

func (c *instrumentedClient) CreateSummaryThread(ctx context.Context, snap games.Snapshot) (Thread, error) {
	start := time.Now()
	thread, err := c.next.CreateSummaryThread(ctx, snap)
	c.observe(ctx, ActionSummary, start, thread, err, logging.FieldGameID, snap.ID)
	return thread, err
}

func (c *instrumentedClient) LockThread(ctx context.Context, threadID, pointerURL string) (Thread, error) {
	start := time.Now()
	thread, err := c.next.LockThread(ctx, threadID, pointerURL)
	c.observe(ctx, ActionLock, start, Thread{ID: threadID}, err)
	return thread, err
}

func (c *instrumentedClient) observe(ctx context.Context, action string, start time.Time, thread Thread, err error, args ...any) {
	elapsed := time.Since(start)
	c.recorder.RecordForumAction(action, elapsed, err)

	logger := logging.FromContext(ctx, c.logger)
	if logger == nil {
		return
	}
	args = append(args,
		logging.FieldForum, c.provider,
		logging.FieldAction, action,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	if thread.ID != "" {
		args = append(args, logging.FieldThreadID, thread.ID)
	}
	if err != nil {
		if apiErr, ok := AsAPIError(err); ok && apiErr.StatusCode > 0 {
			args = append(args, logging.FieldStatusCode, apiErr.StatusCode)
		}
		logging.Warn(logger, "forum call failed", append(args, logging.FieldError, err)...)
		return
	}
	logger.Debug("forum call", args...)
}
