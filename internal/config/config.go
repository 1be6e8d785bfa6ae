// Package config loads runtime configuration from the environment, optionally layered over a
// YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/timeutil"
)

// Config holds runtime configuration for every command.
type Config struct {
	Port              string
	HTTP              HTTPConfig
	DiscoverInterval  Duration
	ReconcileInterval Duration
	Team              string
	Rival             string
	Competitions      []games.Competition
	Timezone          string
	Log               LogConfig
	Store             StoreConfig
	Feed              FeedConfig
	Forum             ForumConfig
	Metrics           MetricsConfig
}

// LogConfig selects log level, output format and an optional rotating file.
type LogConfig struct {
	Level     string
	Format    string
	File      string
	MaxSizeMB int
}

// StoreConfig selects where tracked games are persisted.
type StoreConfig struct {
	Backend    string
	DataDir    string
	SQLitePath string
}

// FeedConfig controls how the scoreboard feed is reached.
type FeedConfig struct {
	Provider    string
	BaseURL     string
	Timeout     Duration
	MinInterval Duration
}

// Load reads configuration from the optional YAML file named by GAMETHREAD_CONFIG, then the
// environment. Environment values win.
func Load() (Config, error) {
	file, err := readFile(envOrDefault(envConfigFile, ""))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:              envOrDefault(envPort, defaultPort),
		HTTP:              loadHTTP(),
		DiscoverInterval:  durationEnvOrDefault(envDiscoverInterval, defaultDiscoverInterval),
		ReconcileInterval: durationEnvOrDefault(envReconcileInterval, defaultReconcileInterval),
		Team:              strings.ToLower(envOrDefault(envTeam, firstNonEmpty(file.Team, defaultTeam))),
		Rival:             strings.ToLower(envOrDefault(envRival, firstNonEmpty(file.Rival, defaultRival))),
		Competitions:      file.Competitions,
		Timezone:          envOrDefault(envTimezone, firstNonEmpty(file.Timezone, defaultTimezone)),
		Log: LogConfig{
			Level:     envOrDefault(envLogLevel, defaultLogLevel),
			Format:    envOrDefault(envLogFormat, ""),
			File:      envOrDefault(envLogFile, ""),
			MaxSizeMB: intEnvOrDefault(envLogMaxSizeMB, defaultLogMaxSizeMB),
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(envOrDefault(envStoreBackend, defaultStoreBackend)),
			DataDir:    envOrDefault(envDataDir, defaultDataDir),
			SQLitePath: envOrDefault(envSQLitePath, defaultSQLitePath),
		},
		Feed: FeedConfig{
			Provider:    strings.ToLower(envOrDefault(envFeedProvider, defaultFeedProvider)),
			BaseURL:     envOrDefault(envNCAABaseURL, defaultNCAABaseURL),
			Timeout:     durationEnvOrDefault(envFeedTimeout, defaultFeedTimeout),
			MinInterval: durationEnvOrDefault(envFeedMinInterval, 0),
		},
		Forum:   loadForum(file),
		Metrics: loadMetrics(),
	}
	if len(cfg.Competitions) == 0 {
		cfg.Competitions = games.DefaultCompetitions
	}
	return cfg, nil
}

// Validate reports every setting that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Team) == "" {
		errs = append(errs, errors.New("team is required"))
	}
	if timeutil.ResolveLocation(c.Timezone) == nil {
		errs = append(errs, fmt.Errorf("unknown timezone %q", c.Timezone))
	}
	switch c.Store.Backend {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	switch c.Feed.Provider {
	case FeedNCAA, FeedFixture:
	default:
		errs = append(errs, fmt.Errorf("unknown feed provider %q", c.Feed.Provider))
	}
	switch c.Forum.Provider {
	case ForumReddit, ForumLog:
	default:
		errs = append(errs, fmt.Errorf("unknown forum provider %q", c.Forum.Provider))
	}
	for _, comp := range c.Competitions {
		if comp.Sport == "" || comp.Division == "" {
			errs = append(errs, fmt.Errorf("competition %q needs sport and division", comp))
		}
	}
	return errors.Join(errs...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
