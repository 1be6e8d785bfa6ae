package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
)

// rateLimitedClient spaces calls to the wrapped client by a minimum interval. The first call
// goes through immediately.
type rateLimitedClient struct {
	next     Client
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewRateLimited returns a Client that waits at least interval between upstream calls.
// Callers block until their slot arrives or ctx is done.
func NewRateLimited(next Client, interval time.Duration, logger *slog.Logger) Client {
	return &rateLimitedClient{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (c *rateLimitedClient) FetchTodayScoreboards(ctx context.Context, competitions []games.Competition) ([]games.Scoreboard, error) {
	if c.next == nil {
		return nil, ErrFeedUnavailable
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.next.FetchTodayScoreboards(ctx, competitions)
}

func (c *rateLimitedClient) FetchGameSnapshot(ctx context.Context, id string) (games.Snapshot, error) {
	if c.next == nil {
		return games.Snapshot{}, ErrFeedUnavailable
	}
	if err := c.wait(ctx); err != nil {
		return games.Snapshot{}, err
	}
	return c.next.FetchGameSnapshot(ctx, id)
}

func (c *rateLimitedClient) wait(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.interval > 0 && !c.last.IsZero() {
		if delay := c.interval - c.now().Sub(c.last); delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				logging.Warn(logging.FromContext(ctx, c.logger), "rate-limited feed call canceled")
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	c.last = c.now()
	return nil
}
