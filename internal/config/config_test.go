package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gamethread.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		envConfigFile, envPort, envDiscoverInterval, envReconcileInterval, envTeam, envRival,
		envTimezone, envDataDir, envStoreBackend, envSQLitePath, envLogLevel, envLogFormat,
		envLogFile, envLogMaxSizeMB, envFeedProvider, envNCAABaseURL, envFeedTimeout,
		envFeedMinInterval, envForumProvider, envRedditClientID, envRedditSecret,
		envRedditUsername, envRedditPassword, envRedditSubreddit, envRedditAuthor,
		envMetricsPort, envMetricsOn, envOtelEndpoint, envOtelService, envOtelInsecure,
		envHTTPReadTimeout, envHTTPWriteTimeout, envHTTPIdleTimeout, envShutdownTimeout,
	} {
		t.Setenv(key, "")
	}
}

func mustLoad(t *testing.T) Config {
	t.Helper()
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := mustLoad(t)

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.DiscoverInterval != defaultDiscoverInterval || cfg.ReconcileInterval != defaultReconcileInterval {
		t.Fatalf("unexpected intervals %s/%s", cfg.DiscoverInterval, cfg.ReconcileInterval)
	}
	if cfg.Team != "louisville" || cfg.Rival != "kentucky" || cfg.Timezone != "America/New_York" {
		t.Fatalf("unexpected team defaults %+v", cfg)
	}
	if len(cfg.Competitions) != len(games.DefaultCompetitions) {
		t.Fatalf("expected default competitions, got %v", cfg.Competitions)
	}
	if cfg.Store.Backend != StoreFile || cfg.Store.DataDir != defaultDataDir {
		t.Fatalf("unexpected store defaults %+v", cfg.Store)
	}
	if cfg.Feed.Provider != FeedNCAA || cfg.Feed.Timeout != 5*time.Second || cfg.Feed.MinInterval != 0 {
		t.Fatalf("unexpected feed defaults %+v", cfg.Feed)
	}
	if cfg.Forum.Provider != ForumReddit || cfg.Forum.HasCredentials() {
		t.Fatalf("unexpected forum defaults %+v", cfg.Forum)
	}
	if cfg.Log.MaxSizeMB != defaultLogMaxSizeMB {
		t.Fatalf("unexpected log size %d", cfg.Log.MaxSizeMB)
	}
	if cfg.Metrics.ServiceName != defaultServiceName || !cfg.Metrics.Enabled {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
	if cfg.HTTP.ReadTimeout != 10*time.Second || cfg.HTTP.IdleTimeout != time.Minute || cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected http defaults %+v", cfg.HTTP)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(envPort, "5000")
	t.Setenv(envReconcileInterval, "45s")
	t.Setenv(envTeam, "Kentucky")
	t.Setenv(envStoreBackend, "SQLITE")
	t.Setenv(envFeedProvider, "fixture")
	t.Setenv(envFeedTimeout, "2s")
	t.Setenv(envFeedMinInterval, "250ms")
	t.Setenv(envForumProvider, "log")
	t.Setenv(envRedditClientID, "id")
	t.Setenv(envRedditSecret, "secret")
	t.Setenv(envRedditUsername, "bot")
	t.Setenv(envRedditPassword, "pw")
	t.Setenv(envRedditSubreddit, "wildcats")
	t.Setenv(envLogMaxSizeMB, "10")
	t.Setenv(envShutdownTimeout, "3s")
	t.Setenv(envMetricsOn, "no")

	cfg := mustLoad(t)

	if cfg.Port != "5000" || cfg.ReconcileInterval != 45*time.Second {
		t.Fatalf("unexpected port/interval %s %s", cfg.Port, cfg.ReconcileInterval)
	}
	if cfg.Team != "kentucky" {
		t.Fatalf("expected lowercased team, got %s", cfg.Team)
	}
	if cfg.Store.Backend != StoreSQLite {
		t.Fatalf("expected sqlite backend, got %s", cfg.Store.Backend)
	}
	if cfg.Feed.Provider != FeedFixture || cfg.Feed.Timeout != 2*time.Second || cfg.Feed.MinInterval != 250*time.Millisecond {
		t.Fatalf("unexpected feed overrides %+v", cfg.Feed)
	}
	if cfg.Forum.Provider != ForumLog || !cfg.Forum.HasCredentials() || cfg.Forum.Subreddit != "wildcats" {
		t.Fatalf("unexpected forum overrides %+v", cfg.Forum)
	}
	if cfg.Log.MaxSizeMB != 10 {
		t.Fatalf("expected log size 10, got %d", cfg.Log.MaxSizeMB)
	}
	if cfg.HTTP.ShutdownTimeout != 3*time.Second || cfg.Metrics.Enabled {
		t.Fatalf("unexpected shutdown/metrics overrides %+v %+v", cfg.HTTP, cfg.Metrics)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv(envDiscoverInterval, "not-a-duration")
	t.Setenv(envReconcileInterval, "0s")

	cfg := mustLoad(t)

	if cfg.DiscoverInterval != defaultDiscoverInterval || cfg.ReconcileInterval != defaultReconcileInterval {
		t.Fatalf("expected defaults on invalid values, got %s/%s", cfg.DiscoverInterval, cfg.ReconcileInterval)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `
team: Duke
rival: unc
timezone: America/Chicago
subreddit: dukebasketball
competitions:
  - sport: basketball-men
    division: d1
`)
	t.Setenv(envConfigFile, path)
	t.Setenv(envRival, "wake-forest")

	cfg := mustLoad(t)

	if cfg.Team != "duke" {
		t.Fatalf("expected team from file, got %s", cfg.Team)
	}
	if cfg.Rival != "wake-forest" {
		t.Fatalf("expected env to win over file, got %s", cfg.Rival)
	}
	if cfg.Timezone != "America/Chicago" || cfg.Forum.Subreddit != "dukebasketball" {
		t.Fatalf("unexpected overlay values %+v", cfg)
	}
	if len(cfg.Competitions) != 1 || cfg.Competitions[0] != (games.Competition{Sport: "basketball-men", Division: "d1"}) {
		t.Fatalf("unexpected competitions %v", cfg.Competitions)
	}
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv(envConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected missing file error, got %v", err)
	}

	t.Setenv(envConfigFile, writeConfigFile(t, "team: [unterminated"))
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse config file") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg := mustLoad(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}

	cfg.Team = " "
	cfg.Timezone = "Mars/Olympus"
	cfg.Store.Backend = "s3"
	cfg.Feed.Provider = "espn"
	cfg.Forum.Provider = "discord"
	cfg.Competitions = []games.Competition{{Sport: "football"}}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{"team is required", "unknown timezone", "unknown store backend", "unknown feed provider", "unknown forum provider", "needs sport and division"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}
