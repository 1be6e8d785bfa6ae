package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
	"github.com/preston-bernstein/gameday-threads/internal/store"
	"github.com/preston-bernstein/gameday-threads/internal/teststubs"
	"github.com/preston-bernstein/gameday-threads/internal/testutil"
)

func newCycle(s store.Store, f *teststubs.StubFeed, rec *metrics.Recorder) *Cycle {
	return New(Config{
		Store:    s,
		Feed:     f,
		Rules:    rules,
		Logger:   testutil.DiscardLogger(),
		Recorder: rec,
		Now:      testutil.NowAt(now),
	})
}

func TestRunStoresNewGames(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore(testutil.SampleTracked("105", now.Add(time.Hour), games.StatePre, true))
	f := &teststubs.StubFeed{Scoreboards: []games.Scoreboard{board(
		scheduled("100", now.Add(4*time.Hour), games.StatePre),
		scheduled("105", now.Add(time.Hour), games.StatePre),
	)}}
	rec := metrics.NewRecorder()
	c := newCycle(s, f, rec)

	sum, err := c.Run(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, []string{"105"}, sum.ExistingIDs)
	assert.Equal(t, []string{"100"}, sum.NewIDs)
	assert.Equal(t, []string{"100"}, sum.StoredIDs)
	assert.Empty(t, sum.FailedIDs)

	stored, err := s.GetByID(ctx, "100")
	require.NoError(t, err)
	assert.True(t, stored.LiveThreadEligible)

	assert.Equal(t, 1, rec.Cycle(JobName).Calls)
	assert.Equal(t, 1, rec.Outcome(JobName, "stored"))
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	f := &teststubs.StubFeed{Scoreboards: []games.Scoreboard{board(scheduled("100", now.Add(time.Hour), games.StatePre))}}
	c := newCycle(s, f, nil)

	_, err := c.Run(ctx)
	require.NoError(t, err)
	second, err := c.Run(ctx)
	require.NoError(t, err)

	assert.Empty(t, second.NewIDs)
	assert.Equal(t, []string{"100"}, testutil.StoredIDs(t, s))
}

func TestRunAbortsWhenListingFails(t *testing.T) {
	boom := errors.New("disk gone")
	s := &teststubs.FaultyStore{Store: store.NewMemoryStore(), ListErr: boom}
	f := &teststubs.StubFeed{}
	rec := metrics.NewRecorder()
	c := newCycle(s, f, rec)

	_, err := c.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Zero(t, f.ScoreboardCalls, "feed is not consulted")
	assert.Equal(t, 1, rec.Cycle(JobName).Errors)
}

func TestRunAbortsWhenScoreboardsFail(t *testing.T) {
	boom := errors.New("feed down")
	s := store.NewMemoryStore()
	c := newCycle(s, &teststubs.StubFeed{ScoreboardErr: boom}, nil)

	_, err := c.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Empty(t, testutil.StoredIDs(t, s))
}

func TestRunContinuesPastStoreFailures(t *testing.T) {
	s := &teststubs.FaultyStore{
		Store:   store.NewMemoryStore(),
		PutErrs: map[string]error{"100": errors.New("write failed")},
	}
	f := &teststubs.StubFeed{Scoreboards: []games.Scoreboard{board(
		scheduled("100", now.Add(time.Hour), games.StatePre),
		scheduled("101", now.Add(2*time.Hour), games.StatePre),
	)}}
	c := newCycle(s, f, nil)

	sum, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "101"}, sum.NewIDs)
	assert.Equal(t, []string{"101"}, sum.StoredIDs)
	assert.Equal(t, []string{"100"}, sum.FailedIDs)
}

func TestRunLogsCompletion(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	c := New(Config{
		Store:  store.NewMemoryStore(),
		Feed:   &teststubs.StubFeed{Scoreboards: []games.Scoreboard{board(scheduled("100", now.Add(time.Hour), games.StatePre))}},
		Rules:  rules,
		Logger: logger,
		Now:    testutil.NowAt(now),
	})

	sum, err := c.Run(context.Background())
	require.NoError(t, err)

	rec, ok := testutil.FindLog(t, buf, "cycle complete")
	require.True(t, ok)
	assert.Equal(t, JobName, rec["job"])
	assert.Equal(t, sum.RunID, rec["run_id"])
	assert.Equal(t, float64(1), rec["stored_count"])
	assert.Equal(t, []any{"100"}, rec["stored_ids"])
}
