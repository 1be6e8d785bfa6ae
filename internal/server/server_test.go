package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/preston-bernstein/gameday-threads/internal/config"
	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/http/handlers"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
	"github.com/preston-bernstein/gameday-threads/internal/store"
	"github.com/preston-bernstein/gameday-threads/internal/teststubs"
	"github.com/preston-bernstein/gameday-threads/internal/testutil"
)

var now = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

func stubComponents(cfg config.Config, feed *teststubs.StubFeed, forum *teststubs.StubForum) *Components {
	return &Components{
		cfg:      cfg,
		now:      testutil.NowAt(now),
		Store:    store.NewMemoryStore(),
		Feed:     feed,
		Forum:    forum,
		Recorder: metrics.NewRecorder(),
	}
}

func testConfig() config.Config {
	return config.Config{
		Port:              "0",
		DiscoverInterval:  time.Hour,
		ReconcileInterval: time.Hour,
		Team:              "louisville",
		Rival:             "kentucky",
		Competitions:      games.DefaultCompetitions,
		Timezone:          "America/New_York",
		Store:             config.StoreConfig{Backend: config.StoreMemory},
		Feed:              config.FeedConfig{Provider: config.FeedFixture},
		Forum:             config.ForumConfig{Provider: config.ForumLog},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for condition")
}

func TestServerRunsBothCyclesAndServesGames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	upcoming := testutil.SampleSnapshot("401", now.Add(2*time.Hour), games.StatePre)
	feed := &teststubs.StubFeed{
		Scoreboards: []games.Scoreboard{{
			Competition: games.DefaultCompetitions[0],
			Games:       []games.ScoreboardEntry{{Game: upcoming}},
		}},
		Snapshots: map[string]games.Snapshot{"401": upcoming},
	}
	forum := &teststubs.StubForum{}
	comps := stubComponents(testConfig(), feed, forum)

	srv := newServerWithComponents(testConfig(), nil, comps)
	if len(srv.pollers) != 2 || srv.pollers[0].Name() != "discover" || srv.pollers[1].Name() != "reconcile" {
		t.Fatalf("expected discover and reconcile pollers")
	}
	defer func() {
		for _, p := range srv.pollers {
			_ = p.Stop(context.Background())
		}
	}()

	// Discovery first so the reconcile pass finds the stored record.
	srv.pollers[0].Start(ctx)
	waitFor(t, func() bool {
		ids, _ := comps.Store.ListIDs(ctx)
		return len(ids) == 1
	})
	testutil.GetJSON(t, srv.Handler(), "/ready", http.StatusServiceUnavailable, nil)

	srv.pollers[1].Start(ctx)
	waitFor(t, func() bool {
		rr := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
		return rr.Code == http.StatusOK
	})

	var resp handlers.GamesResponse
	testutil.GetJSON(t, srv.Handler(), "/games", http.StatusOK, &resp)
	if resp.Count != 1 || resp.Games[0].ID != "401" {
		t.Fatalf("expected discovered game, got %+v", resp)
	}
	testutil.GetJSON(t, srv.Handler(), "/games/401", http.StatusOK, nil)

	live, _, _ := forum.Calls()
	if len(live) != 1 || live[0] != "401" {
		t.Fatalf("expected imminent game to get a live thread, got %v", live)
	}
}

func TestNewBuildsServerFromConfig(t *testing.T) {
	cfg := testConfig()
	srv, err := New(context.Background(), cfg, nil, Options{Version: "1.2.3", Recorder: metrics.NewRecorder()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if srv.Handler() == nil || srv.components == nil {
		t.Fatalf("expected server with handler and components")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server with an injected recorder")
	}
	testutil.GetJSON(t, srv.Handler(), "/health", http.StatusOK, nil)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Backend = "s3"
	if _, err := New(context.Background(), cfg, nil, Options{Recorder: metrics.NewRecorder()}); err == nil {
		t.Fatalf("expected invalid configuration error")
	}
}

func TestGracefulShutdownStopsEveryPollerAndServer(t *testing.T) {
	discover := &testutil.StubPoller{NameVal: "discover"}
	reconcile := &testutil.StubPoller{NameVal: "reconcile", Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, discover, reconcile)
	srv.gracefulShutdown()

	if discover.StopCalls != 1 || reconcile.StopCalls != 1 {
		t.Fatalf("expected both pollers stopped once, got %d/%d", discover.StopCalls, reconcile.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownClosesComponents(t *testing.T) {
	httpSrv := &testutil.StubHTTPServer{}
	metricsSrv := &testutil.StubHTTPServer{}
	flushed := 0
	comps := &Components{}
	comps.addCloser(func(context.Context) error {
		flushed++
		return errors.New("flush failed")
	})

	srv := newServerWithDeps(config.Config{}, testutil.DiscardLogger(), httpSrv)
	srv.metricsServer = metricsSrv
	srv.components = comps
	srv.gracefulShutdown()

	if flushed != 1 {
		t.Fatalf("expected components closed once, got %d", flushed)
	}
	if metricsSrv.ShutdownCalls != 1 {
		t.Fatalf("expected metrics server shut down once, got %d", metricsSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	blocking := &testutil.StubHTTPServer{Block: make(chan struct{})}
	cfg := config.Config{HTTP: config.HTTPConfig{ShutdownTimeout: 5 * time.Millisecond}}

	srv := newServerWithDeps(cfg, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &testutil.StubHTTPServer{ListenErr: errors.New("listen failure")}, &testutil.StubPoller{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	discover := &testutil.StubPoller{NameVal: "discover"}
	reconcile := &testutil.StubPoller{NameVal: "reconcile"}
	httpSrv := &testutil.StubHTTPServer{ListenErr: http.ErrServerClosed}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, discover, reconcile)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	// Let Start be invoked.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	for _, p := range []*testutil.StubPoller{discover, reconcile} {
		if p.StartCalls != 1 || p.StopCalls != 1 {
			t.Fatalf("expected %s started and stopped once, got %d/%d", p.NameVal, p.StartCalls, p.StopCalls)
		}
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}
