package server

import (
	"log/slog"

	"github.com/preston-bernstein/gameday-threads/internal/config"
	"github.com/preston-bernstein/gameday-threads/internal/feed"
	"github.com/preston-bernstein/gameday-threads/internal/feed/fixture"
	"github.com/preston-bernstein/gameday-threads/internal/feed/ncaa"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
)

// buildFeed assembles the feed client with the shared wrappers (spacing + instrumentation).
func buildFeed(cfg config.Config, version string, logger *slog.Logger, recorder *metrics.Recorder) feed.Client {
	base := selectFeed(cfg, version, logger)
	limited := feed.NewRateLimited(base, cfg.Feed.MinInterval, logger)
	return feed.NewInstrumented(limited, feedName(cfg.Feed.Provider), recorder, logger)
}

func selectFeed(cfg config.Config, version string, logger *slog.Logger) feed.Client {
	switch cfg.Feed.Provider {
	case config.FeedFixture:
		return fixture.New(cfg.Team, cfg.Rival, cfg.Competitions)
	case config.FeedNCAA, "":
		return ncaa.NewClient(ncaa.Config{
			BaseURL:   cfg.Feed.BaseURL,
			UserAgent: userAgent(version, ""),
			Timeout:   cfg.Feed.Timeout,
		})
	default:
		if logger != nil {
			logger.Warn("unknown feed provider, falling back to fixture", slog.String("provider", cfg.Feed.Provider))
		}
		return fixture.New(cfg.Team, cfg.Rival, cfg.Competitions)
	}
}

func feedName(provider string) string {
	if provider == "" {
		return config.FeedNCAA
	}
	return provider
}
