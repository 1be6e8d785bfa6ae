// Package discovery finds the followed team's upcoming games on today's scoreboards and starts
// tracking them.
package discovery

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/feed"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
	"github.com/preston-bernstein/gameday-threads/internal/store"
)

// JobName labels discovery runs in logs and metrics.
const JobName = "discover"

// Config wires a discovery cycle.
type Config struct {
	Store        store.Store
	Feed         feed.Client
	Competitions []games.Competition
	Rules        Rules
	Logger       *slog.Logger
	Recorder     *metrics.Recorder
	Now          func() time.Time
}

// Cycle runs one discovery pass per Run call.
type Cycle struct {
	store        store.Store
	feed         feed.Client
	competitions []games.Competition
	rules        Rules
	logger       *slog.Logger
	recorder     *metrics.Recorder
	now          func() time.Time
}

// Summary reports what one pass did.
type Summary struct {
	RunID       string
	ExistingIDs []string
	NewIDs      []string
	StoredIDs   []string
	FailedIDs   []string
}

// New builds a discovery cycle, defaulting the clock, logger and competitions.
func New(cfg Config) *Cycle {
	c := &Cycle{
		store:        cfg.Store,
		feed:         cfg.Feed,
		competitions: cfg.Competitions,
		rules:        cfg.Rules,
		logger:       cfg.Logger,
		recorder:     cfg.Recorder,
		now:          cfg.Now,
	}
	if len(c.competitions) == 0 {
		c.competitions = games.DefaultCompetitions
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Run lists tracked ids, fetches today's scoreboards and stores every newly selected game.
// Only the two bulk reads can fail the pass; a record that cannot be stored is logged and
// skipped.
func (c *Cycle) Run(ctx context.Context) (Summary, error) {
	now := c.now().UTC()
	started := time.Now()
	sum := Summary{RunID: uuid.NewString()}
	logger := c.logger.With(logging.FieldJob, JobName, logging.FieldRunID, sum.RunID)
	ctx = logging.WithLogger(ctx, logger)

	err := c.run(ctx, logger, now, &sum)
	c.recorder.RecordCycle(JobName, time.Since(started), err)
	if err != nil {
		return sum, err
	}

	c.recorder.RecordOutcome(JobName, "selected", len(sum.NewIDs))
	c.recorder.RecordOutcome(JobName, "stored", len(sum.StoredIDs))
	c.recorder.RecordOutcome(JobName, "failed", len(sum.FailedIDs))
	logger.Info("cycle complete",
		"existing_ids", sum.ExistingIDs,
		"existing_count", len(sum.ExistingIDs),
		"new_ids", sum.NewIDs,
		"new_count", len(sum.NewIDs),
		"stored_ids", sum.StoredIDs,
		"stored_count", len(sum.StoredIDs),
		"failed_ids", sum.FailedIDs,
		"failed_count", len(sum.FailedIDs),
		logging.FieldDurationMS, time.Since(started).Milliseconds(),
	)
	return sum, nil
}

func (c *Cycle) run(ctx context.Context, logger *slog.Logger, now time.Time, sum *Summary) error {
	logger.Debug("listing tracked ids")
	ids, err := c.store.ListIDs(ctx)
	if err != nil {
		logging.Error(logger, "failed to list tracked ids", err)
		return err
	}
	sum.ExistingIDs = ids

	logger.Debug("fetching scoreboards", logging.FieldCount, len(c.competitions))
	boards, err := c.feed.FetchTodayScoreboards(ctx, c.competitions)
	if err != nil {
		logging.Error(logger, "failed to fetch scoreboards", err)
		return err
	}

	existing := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		existing[id] = struct{}{}
	}
	selected := Select(boards, existing, c.rules, now)

	for _, g := range selected {
		sum.NewIDs = append(sum.NewIDs, g.ID)
		if err := c.store.Put(ctx, g); err != nil {
			logging.Error(logger, "failed to store game", err, logging.FieldGameID, g.ID)
			sum.FailedIDs = append(sum.FailedIDs, g.ID)
			continue
		}
		logger.Debug("game stored",
			logging.FieldGameID, g.ID,
			logging.FieldState, g.State,
			"live_thread_eligible", g.LiveThreadEligible,
		)
		sum.StoredIDs = append(sum.StoredIDs, g.ID)
	}
	return nil
}
