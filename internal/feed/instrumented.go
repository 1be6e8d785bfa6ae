package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
)

const (
	OpScoreboards = "scoreboards"
	OpGame        = "game"
)

type instrumentedClient struct {
	next     Client
	name     string
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewInstrumented records attempts, errors and latency for every call to next.
func NewInstrumented(next Client, name string, recorder *metrics.Recorder, logger *slog.Logger) Client {
	return &instrumentedClient{next: next, name: name, recorder: recorder, logger: logger}
}

func (c *instrumentedClient) FetchTodayScoreboards(ctx context.Context, competitions []games.Competition) ([]games.Scoreboard, error) {
	start := time.Now()
	boards, err := c.next.FetchTodayScoreboards(ctx, competitions)
	c.observe(ctx, OpScoreboards, start, err, logging.FieldCount, len(competitions))
	return boards, err
}

func (c *instrumentedClient) FetchGameSnapshot(ctx context.Context, id string) (games.Snapshot, error) {
	start := time.Now()
	snap, err := c.next.FetchGameSnapshot(ctx, id)
	c.observe(ctx, OpGame, start, err, logging.FieldGameID, id)
	return snap, err
}

func (c *instrumentedClient) observe(ctx context.Context, op string, start time.Time, err error, args ...any) {
	elapsed := time.Since(start)
	c.recorder.RecordFeedAttempt(c.name, op, elapsed, err)

	logger := logging.FromContext(ctx, c.logger)
	if logger == nil {
		return
	}
	args = append(args,
		logging.FieldFeed, c.name,
		"operation", op,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	if err != nil {
		if upErr, ok := AsUpstreamError(err); ok {
			args = append(args, logging.FieldStatusCode, upErr.StatusCode)
		}
		logging.Warn(logger, "feed call failed", append(args, logging.FieldError, err)...)
		return
	}
	logger.Debug("feed call", args...)
}
