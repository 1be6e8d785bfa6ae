// Package reconcile refreshes tracked games from the feed and drives their threads: a live
// thread shortly before tip-off, then a summary thread, a locked live thread and a deleted
// record once the result is in.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/feed"
	"github.com/preston-bernstein/gameday-threads/internal/forum"
	"github.com/preston-bernstein/gameday-threads/internal/lifecycle"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
	"github.com/preston-bernstein/gameday-threads/internal/store"
)

// JobName labels reconciliation runs in logs and metrics.
const JobName = "reconcile"

// Config wires a reconciliation cycle.
type Config struct {
	Store    store.Store
	Feed     feed.Client
	Forum    forum.Client
	Logger   *slog.Logger
	Recorder *metrics.Recorder
	Now      func() time.Time
}

// Cycle runs one reconciliation pass per Run call.
type Cycle struct {
	store    store.Store
	feed     feed.Client
	forum    forum.Client
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// Summary reports what one pass did, by game id.
type Summary struct {
	RunID            string
	StoredIDs        []string
	RelevantIDs      []string
	SummaryThreadIDs []string
	LiveThreadIDs    []string
	UpdatedIDs       []string
	DeletedIDs       []string
	FailedIDs        []string
}

// New builds a reconciliation cycle, defaulting the clock and logger.
func New(cfg Config) *Cycle {
	c := &Cycle{
		store:    cfg.Store,
		feed:     cfg.Feed,
		forum:    cfg.Forum,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
		now:      cfg.Now,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Run loads every record, keeps the relevant ones and reconciles them one at a time. Only the
// initial load can fail the pass.
func (c *Cycle) Run(ctx context.Context) (Summary, error) {
	now := c.now().UTC()
	started := time.Now()
	sum := Summary{RunID: uuid.NewString()}
	logger := c.logger.With(logging.FieldJob, JobName, logging.FieldRunID, sum.RunID)
	ctx = logging.WithLogger(ctx, logger)

	stored, err := c.store.GetAll(ctx)
	var corrupt *store.CorruptRecordsError
	if errors.As(err, &corrupt) {
		logging.Error(logger, "skipping unreadable tracked games", err, "corrupt_ids", corrupt.IDs)
		sum.FailedIDs = append(sum.FailedIDs, corrupt.IDs...)
		err = nil
	}
	if err != nil {
		logging.Error(logger, "failed to load tracked games", err)
		c.recorder.RecordCycle(JobName, time.Since(started), err)
		return sum, err
	}

	for _, g := range stored {
		sum.StoredIDs = append(sum.StoredIDs, g.ID)
	}
	for _, g := range stored {
		if !lifecycle.IsRelevant(g, now) {
			continue
		}
		sum.RelevantIDs = append(sum.RelevantIDs, g.ID)
		c.reconcile(ctx, logger.With(logging.FieldGameID, g.ID), g, now, &sum)
	}

	c.recorder.RecordCycle(JobName, time.Since(started), nil)
	c.recorder.RecordOutcome(JobName, "summary_thread", len(sum.SummaryThreadIDs))
	c.recorder.RecordOutcome(JobName, "live_thread", len(sum.LiveThreadIDs))
	c.recorder.RecordOutcome(JobName, "updated", len(sum.UpdatedIDs))
	c.recorder.RecordOutcome(JobName, "deleted", len(sum.DeletedIDs))
	c.recorder.RecordOutcome(JobName, "failed", len(sum.FailedIDs))
	logger.Info("cycle complete",
		"stored_ids", sum.StoredIDs,
		"stored_count", len(sum.StoredIDs),
		"relevant_ids", sum.RelevantIDs,
		"relevant_count", len(sum.RelevantIDs),
		"summary_thread_ids", sum.SummaryThreadIDs,
		"summary_thread_count", len(sum.SummaryThreadIDs),
		"live_thread_ids", sum.LiveThreadIDs,
		"live_thread_count", len(sum.LiveThreadIDs),
		"updated_ids", sum.UpdatedIDs,
		"updated_count", len(sum.UpdatedIDs),
		"deleted_ids", sum.DeletedIDs,
		"deleted_count", len(sum.DeletedIDs),
		"failed_ids", sum.FailedIDs,
		"failed_count", len(sum.FailedIDs),
		logging.FieldDurationMS, time.Since(started).Milliseconds(),
	)
	return sum, nil
}

// reconcile decides first, then applies the plan's effects in order.
func (c *Cycle) reconcile(ctx context.Context, logger *slog.Logger, stored games.TrackedGame, now time.Time, sum *Summary) {
	ctx = logging.WithLogger(ctx, logger)

	fetched, err := c.feed.FetchGameSnapshot(ctx, stored.ID)
	if err != nil {
		logging.Error(logger, "failed to fetch game", err)
		sum.FailedIDs = append(sum.FailedIDs, stored.ID)
		return
	}

	plan, err := lifecycle.Decide(stored, fetched, now)
	if err != nil {
		msg := "failed to plan game"
		if errors.Is(err, games.ErrIllegalTransition) {
			msg = "ignoring illegal state change"
		}
		logging.Warn(logger, msg,
			logging.FieldState, stored.State,
			"fetched_state", fetched.State,
			logging.FieldError, err,
		)
		sum.FailedIDs = append(sum.FailedIDs, stored.ID)
		return
	}
	logger = logger.With(logging.FieldPlan, plan.Kind, logging.FieldTransition, plan.Transition)
	ctx = logging.WithLogger(ctx, logger)
	if plan.Refused != "" {
		logger.Info("feed moved game backward; holding state",
			logging.FieldState, stored.State,
			"fetched_state", plan.Refused,
			"start", plan.Next.Start,
		)
	}

	switch plan.Kind {
	case lifecycle.PlanFinalize:
		c.finalize(ctx, logger, plan, fetched, sum)
	case lifecycle.PlanRetire:
		c.delete(ctx, logger, plan.Stored.ID, sum)
	default:
		c.update(ctx, logger, plan, fetched, sum)
	}
}

// finalize posts the summary, records it, locks the live thread and deletes the record. The
// summary reference is persisted before the lock and delete are attempted.
func (c *Cycle) finalize(ctx context.Context, logger *slog.Logger, plan lifecycle.Plan, fetched games.Snapshot, sum *Summary) {
	id := plan.Stored.ID
	thread, err := c.forum.CreateSummaryThread(ctx, fetched)
	if err != nil {
		logging.Error(logger, "failed to create summary thread", err)
		sum.FailedIDs = append(sum.FailedIDs, id)
		return
	}
	sum.SummaryThreadIDs = append(sum.SummaryThreadIDs, id)
	logger.Info("summary thread created", logging.FieldThreadID, thread.ID, "url", thread.URL)

	plan = plan.WithSummaryThread(thread.ID)
	if _, err := c.store.PutIfExists(ctx, plan.Next); err != nil {
		logging.Error(logger, "failed to record summary thread", err, logging.FieldThreadID, thread.ID)
	}

	if plan.LockThreadID != "" {
		locked, err := c.forum.LockThread(ctx, plan.LockThreadID, thread.URL)
		if err != nil {
			logging.Error(logger, "failed to lock live thread", err, logging.FieldThreadID, plan.LockThreadID)
		} else {
			logger.Info("live thread locked", logging.FieldThreadID, locked.ID, "url", locked.URL)
		}
	}

	if plan.Delete {
		c.delete(ctx, logger, id, sum)
	}
}

func (c *Cycle) update(ctx context.Context, logger *slog.Logger, plan lifecycle.Plan, fetched games.Snapshot, sum *Summary) {
	id := plan.Stored.ID
	if plan.CreateLiveThread {
		thread, err := c.forum.CreateLiveThread(ctx, fetched)
		if err != nil {
			logging.Error(logger, "failed to create live thread", err)
		} else {
			plan = plan.WithLiveThread(thread.ID)
			sum.LiveThreadIDs = append(sum.LiveThreadIDs, id)
			logger.Info("live thread created", logging.FieldThreadID, thread.ID, "url", thread.URL)
		}
	}

	if !plan.Changed() {
		logger.Debug("no change to store")
		return
	}
	written, err := c.store.PutIfExists(ctx, plan.Next)
	if err != nil {
		logging.Error(logger, "failed to store game", err)
		sum.FailedIDs = append(sum.FailedIDs, id)
		return
	}
	if !written {
		logger.Info("record removed before update; skipping")
		return
	}
	sum.UpdatedIDs = append(sum.UpdatedIDs, id)
	logger.Debug("game updated", logging.FieldState, plan.Next.State)
}

func (c *Cycle) delete(ctx context.Context, logger *slog.Logger, id string, sum *Summary) {
	if err := c.store.DeleteByID(ctx, id); err != nil {
		logging.Error(logger, "failed to delete game", err)
		sum.FailedIDs = append(sum.FailedIDs, id)
		return
	}
	sum.DeletedIDs = append(sum.DeletedIDs, id)
	logger.Info("game retired")
}
