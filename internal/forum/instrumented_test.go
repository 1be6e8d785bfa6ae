package forum

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
	"github.com/preston-bernstein/gameday-threads/internal/testutil"
)

type scriptedClient struct {
	err error
}

func (c scriptedClient) CreateLiveThread(context.Context, games.Snapshot) (Thread, error) {
	return Thread{ID: "t3_live"}, c.err
}

func (c scriptedClient) CreateSummaryThread(context.Context, games.Snapshot) (Thread, error) {
	return Thread{ID: "t3_sum"}, c.err
}

func (c scriptedClient) LockThread(_ context.Context, id, _ string) (Thread, error) {
	return Thread{ID: id}, c.err
}

func TestInstrumentedRecordsActions(t *testing.T) {
	rec := metrics.NewRecorder()
	logger, buf := testutil.NewBufferLogger()
	snap := testutil.SampleSnapshot("401", time.Now(), games.StatePre)

	ok := NewInstrumented(scriptedClient{}, "reddit", rec, logger)
	_, err := ok.CreateLiveThread(context.Background(), snap)
	require.NoError(t, err)
	_, err = ok.LockThread(context.Background(), "t3_live", "https://x")
	require.NoError(t, err)

	failing := NewInstrumented(scriptedClient{err: &APIError{Action: ActionSummary, StatusCode: http.StatusForbidden}}, "reddit", rec, logger)
	_, err = failing.CreateSummaryThread(context.Background(), snap)
	require.Error(t, err)

	assert.Equal(t, 1, rec.Forum(ActionLiveThread).Calls)
	assert.Equal(t, 1, rec.Forum(ActionLock).Calls)
	assert.Equal(t, 1, rec.Forum(ActionSummary).Errors)

	failure, found := testutil.FindLog(t, buf, "forum call failed")
	require.True(t, found)
	assert.Equal(t, float64(http.StatusForbidden), failure["status_code"])
	assert.Equal(t, "401", failure["game_id"])
}

func TestAPIErrorFormatting(t *testing.T) {
	err := &APIError{Action: ActionLock, StatusCode: 500, Message: "boom"}
	assert.Equal(t, "lock_thread: boom (status=500)", err.Error())
	assert.Equal(t, "forum request failed", (&APIError{}).Error())

	wrapped := errors.Join(errors.New("outer"), err)
	got, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ActionLock, got.Action)
}
