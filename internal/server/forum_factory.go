package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/gameday-threads/internal/config"
	"github.com/preston-bernstein/gameday-threads/internal/forum"
	"github.com/preston-bernstein/gameday-threads/internal/forum/logonly"
	"github.com/preston-bernstein/gameday-threads/internal/forum/reddit"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
	"github.com/preston-bernstein/gameday-threads/internal/timeutil"
)

const userAgentProduct = "gameday-threads"

// buildForum selects the forum client and wraps it with instrumentation.
func buildForum(cfg config.Config, version string, logger *slog.Logger, recorder *metrics.Recorder) (forum.Client, error) {
	renderer := buildRenderer(cfg)

	var client forum.Client
	switch cfg.Forum.Provider {
	case config.ForumLog:
		client = logonly.New(renderer, "", logger)
	case config.ForumReddit, "":
		rc, err := reddit.New(reddit.Config{
			ClientID:     cfg.Forum.ClientID,
			ClientSecret: cfg.Forum.ClientSecret,
			Username:     cfg.Forum.Username,
			Password:     cfg.Forum.Password,
			Subreddit:    cfg.Forum.Subreddit,
			UserAgent:    userAgent(version, cfg.Forum.Author),
			Renderer:     renderer,
			Logger:       logger,
		})
		if err != nil {
			return nil, fmt.Errorf("reddit forum: %w (set REDDIT_* credentials or FORUM_PROVIDER=log)", err)
		}
		client = rc
	default:
		return nil, fmt.Errorf("unknown forum provider %q", cfg.Forum.Provider)
	}
	return forum.NewInstrumented(client, forumName(cfg.Forum.Provider), recorder, logger), nil
}

func buildRenderer(cfg config.Config) forum.Renderer {
	return forum.Renderer{
		Team:      cfg.Team,
		Location:  timeutil.ResolveLocation(cfg.Timezone),
		Subreddit: cfg.Forum.Subreddit,
		BotName:   cfg.Forum.Username,
	}
}

// userAgent follows reddit's platform:app:version (by /u/author) convention.
func userAgent(version, author string) string {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	ua := fmt.Sprintf("%s:v%s", userAgentProduct, strings.TrimPrefix(version, "v"))
	if author = strings.TrimSpace(author); author != "" {
		ua += " (by /u/" + strings.TrimPrefix(author, "/u/") + ")"
	}
	return ua
}

func forumName(provider string) string {
	if provider == "" {
		return config.ForumReddit
	}
	return provider
}
