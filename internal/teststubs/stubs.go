// Package teststubs holds configurable doubles for the feed, forum, store and poller boundaries.
package teststubs

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/feed"
	"github.com/preston-bernstein/gameday-threads/internal/forum"
	"github.com/preston-bernstein/gameday-threads/internal/store"
)

// StubFeed is a test double for feed.Client.
type StubFeed struct {
	mu              sync.Mutex
	Scoreboards     []games.Scoreboard
	ScoreboardErr   error
	Snapshots       map[string]games.Snapshot
	SnapshotErrs    map[string]error
	ScoreboardCalls int
	SnapshotCalls   []string
}

var _ feed.Client = (*StubFeed)(nil)

// FetchTodayScoreboards returns the configured scoreboards and error.
func (s *StubFeed) FetchTodayScoreboards(ctx context.Context, competitions []games.Competition) ([]games.Scoreboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ScoreboardCalls++
	if s.ScoreboardErr != nil {
		return nil, s.ScoreboardErr
	}
	return s.Scoreboards, nil
}

// FetchGameSnapshot returns the configured snapshot for id, or a 404 upstream error.
func (s *StubFeed) FetchGameSnapshot(ctx context.Context, id string) (games.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SnapshotCalls = append(s.SnapshotCalls, id)
	if err := s.SnapshotErrs[id]; err != nil {
		return games.Snapshot{}, err
	}
	snap, ok := s.Snapshots[id]
	if !ok {
		return games.Snapshot{}, &feed.UpstreamError{Feed: "stub", StatusCode: http.StatusNotFound, Message: "no game " + id}
	}
	return snap, nil
}

// SnapshotCallsFor counts fetches for id.
func (s *StubFeed) SnapshotCallsFor(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.SnapshotCalls {
		if c == id {
			n++
		}
	}
	return n
}

// LockCall records one LockThread invocation.
type LockCall struct {
	ThreadID   string
	PointerURL string
}

// StubForum is a test double for forum.Client. Thread ids derive from the game id.
type StubForum struct {
	mu           sync.Mutex
	LiveErr      error
	SummaryErr   error
	LockErr      error
	LiveCalls    []string
	SummaryCalls []string
	LockCalls    []LockCall
}

var _ forum.Client = (*StubForum)(nil)

// LiveThreadFor is the thread StubForum creates for a game's live thread.
func LiveThreadFor(id string) forum.Thread {
	return forum.Thread{ID: "t3_live_" + id, URL: "https://forum.test/live/" + id}
}

// SummaryThreadFor is the thread StubForum creates for a game's summary thread.
func SummaryThreadFor(id string) forum.Thread {
	return forum.Thread{ID: "t3_summary_" + id, URL: "https://forum.test/summary/" + id}
}

func (f *StubForum) CreateLiveThread(ctx context.Context, snap games.Snapshot) (forum.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LiveCalls = append(f.LiveCalls, snap.ID)
	if f.LiveErr != nil {
		return forum.Thread{}, f.LiveErr
	}
	return LiveThreadFor(snap.ID), nil
}

func (f *StubForum) CreateSummaryThread(ctx context.Context, snap games.Snapshot) (forum.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SummaryCalls = append(f.SummaryCalls, snap.ID)
	if f.SummaryErr != nil {
		return forum.Thread{}, f.SummaryErr
	}
	return SummaryThreadFor(snap.ID), nil
}

func (f *StubForum) LockThread(ctx context.Context, threadID, pointerURL string) (forum.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LockCalls = append(f.LockCalls, LockCall{ThreadID: threadID, PointerURL: pointerURL})
	if f.LockErr != nil {
		return forum.Thread{}, f.LockErr
	}
	return forum.Thread{ID: threadID, URL: "https://forum.test/thread/" + threadID}, nil
}

// Calls returns copies of the recorded live, summary and lock calls.
func (f *StubForum) Calls() (live, summary []string, locks []LockCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.LiveCalls...),
		append([]string(nil), f.SummaryCalls...),
		append([]LockCall(nil), f.LockCalls...)
}

// FaultyStore wraps a store and injects errors per operation or per id. CorruptIDs are
// dropped from GetAll and reported the way a store reports undecodable records.
type FaultyStore struct {
	store.Store
	ListErr         error
	GetAllErr       error
	CorruptIDs      []string
	PutErrs         map[string]error
	PutIfExistsErrs map[string]error
	DeleteErrs      map[string]error
}

var _ store.Store = (*FaultyStore)(nil)

func (s *FaultyStore) ListIDs(ctx context.Context) ([]string, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Store.ListIDs(ctx)
}

func (s *FaultyStore) GetAll(ctx context.Context) ([]games.TrackedGame, error) {
	if s.GetAllErr != nil {
		return nil, s.GetAllErr
	}
	all, err := s.Store.GetAll(ctx)
	if err != nil || len(s.CorruptIDs) == 0 {
		return all, err
	}
	corrupt := &store.CorruptRecordsError{}
	kept := all[:0]
	for _, g := range all {
		if slices.Contains(s.CorruptIDs, g.ID) {
			corrupt.IDs = append(corrupt.IDs, g.ID)
			corrupt.Errs = append(corrupt.Errs, errors.New("unreadable record "+g.ID))
			continue
		}
		kept = append(kept, g)
	}
	return kept, corrupt
}

func (s *FaultyStore) Put(ctx context.Context, game games.TrackedGame) error {
	if err := s.PutErrs[game.ID]; err != nil {
		return err
	}
	return s.Store.Put(ctx, game)
}

func (s *FaultyStore) PutIfExists(ctx context.Context, game games.TrackedGame) (bool, error) {
	if err := s.PutIfExistsErrs[game.ID]; err != nil {
		return false, err
	}
	return s.Store.PutIfExists(ctx, game)
}

func (s *FaultyStore) DeleteByID(ctx context.Context, id string) error {
	if err := s.DeleteErrs[id]; err != nil {
		return err
	}
	return s.Store.DeleteByID(ctx, id)
}

// StubJob is a poller job that counts runs and signals the first one.
type StubJob struct {
	Err    error
	Notify chan struct{}
	calls  atomic.Int32
	once   sync.Once
}

// Run records the call and returns Err.
func (j *StubJob) Run(ctx context.Context) error {
	j.calls.Add(1)
	if j.Notify != nil {
		j.once.Do(func() { close(j.Notify) })
	}
	return j.Err
}

// Calls reports how many times Run was invoked.
func (j *StubJob) Calls() int {
	return int(j.calls.Load())
}
