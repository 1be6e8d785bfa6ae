package teststubs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/feed"
	"github.com/preston-bernstein/gameday-threads/internal/store"
)

func TestStubFeed(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	f := &StubFeed{
		Scoreboards:  []games.Scoreboard{{Date: "2024/03/01"}},
		Snapshots:    map[string]games.Snapshot{"401": {ID: "401"}},
		SnapshotErrs: map[string]error{"402": boom},
	}

	boards, err := f.FetchTodayScoreboards(ctx, nil)
	if err != nil || len(boards) != 1 || f.ScoreboardCalls != 1 {
		t.Fatalf("unexpected scoreboards %v err %v calls %d", boards, err, f.ScoreboardCalls)
	}
	if snap, err := f.FetchGameSnapshot(ctx, "401"); err != nil || snap.ID != "401" {
		t.Fatalf("expected snapshot 401, got %v err %v", snap, err)
	}
	if _, err := f.FetchGameSnapshot(ctx, "402"); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	_, err = f.FetchGameSnapshot(ctx, "403")
	if upstream, ok := feed.AsUpstreamError(err); !ok || upstream.StatusCode != 404 {
		t.Fatalf("expected 404 upstream error, got %v", err)
	}
	if f.SnapshotCallsFor("401") != 1 {
		t.Fatalf("expected one call for 401")
	}

	f.ScoreboardErr = boom
	if _, err := f.FetchTodayScoreboards(ctx, nil); !errors.Is(err, boom) {
		t.Fatalf("expected scoreboard error passthrough")
	}
}

func TestStubForum(t *testing.T) {
	ctx := context.Background()
	f := &StubForum{}

	live, err := f.CreateLiveThread(ctx, games.Snapshot{ID: "401"})
	if err != nil || live != LiveThreadFor("401") {
		t.Fatalf("unexpected live thread %v err %v", live, err)
	}
	summary, err := f.CreateSummaryThread(ctx, games.Snapshot{ID: "401"})
	if err != nil || summary != SummaryThreadFor("401") {
		t.Fatalf("unexpected summary thread %v err %v", summary, err)
	}
	if _, err := f.LockThread(ctx, live.ID, summary.URL); err != nil {
		t.Fatalf("unexpected lock error %v", err)
	}

	lives, summaries, locks := f.Calls()
	if len(lives) != 1 || len(summaries) != 1 || len(locks) != 1 || locks[0].PointerURL != summary.URL {
		t.Fatalf("unexpected calls %v %v %v", lives, summaries, locks)
	}

	f.SummaryErr = errors.New("down")
	if _, err := f.CreateSummaryThread(ctx, games.Snapshot{ID: "402"}); err == nil {
		t.Fatalf("expected summary error")
	}
}

func TestFaultyStore(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk")
	s := &FaultyStore{
		Store:   store.NewMemoryStore(),
		PutErrs: map[string]error{"bad": boom},
	}

	if err := s.Put(ctx, games.TrackedGame{ID: "bad", Start: time.Now()}); !errors.Is(err, boom) {
		t.Fatalf("expected injected put error, got %v", err)
	}
	if err := s.Put(ctx, games.TrackedGame{ID: "good", Start: time.Now()}); err != nil {
		t.Fatalf("expected put passthrough, got %v", err)
	}
	ids, err := s.ListIDs(ctx)
	if err != nil || len(ids) != 1 || ids[0] != "good" {
		t.Fatalf("unexpected ids %v err %v", ids, err)
	}

	s.CorruptIDs = []string{"good"}
	all, err := s.GetAll(ctx)
	if !errors.Is(err, store.ErrCorruptRecord) || len(all) != 0 {
		t.Fatalf("expected good reported corrupt and dropped, got %v err %v", all, err)
	}
	s.CorruptIDs = nil

	s.GetAllErr = boom
	if _, err := s.GetAll(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected get all error")
	}
	s.DeleteErrs = map[string]error{"good": boom}
	if err := s.DeleteByID(ctx, "good"); !errors.Is(err, boom) {
		t.Fatalf("expected delete error")
	}
}

func TestStubJob(t *testing.T) {
	j := &StubJob{Err: errors.New("fail"), Notify: make(chan struct{})}
	if err := j.Run(context.Background()); err == nil {
		t.Fatalf("expected error passthrough")
	}
	_ = j.Run(context.Background())
	select {
	case <-j.Notify:
	default:
		t.Fatalf("expected notify closed")
	}
	if j.Calls() != 2 {
		t.Fatalf("expected two calls, got %d", j.Calls())
	}
}
