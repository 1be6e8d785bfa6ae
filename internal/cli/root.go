// Package cli exposes the discover, reconcile and serve commands. Every setting comes from the
// environment (and the optional config file it names); the commands take no flags.
package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/gameday-threads/internal/config"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
	"github.com/preston-bernstein/gameday-threads/internal/server"
)

const serviceName = "gameday-threads"

// flushTimeout bounds how long a one-shot command waits for telemetry and the store to close.
var flushTimeout = 10 * time.Second

// RootOptions carries process-level inputs shared by every command.
type RootOptions struct {
	Version string
	// LoadConfig defaults to config.Load.
	LoadConfig func() (config.Config, error)
	// LogOutput defaults to stderr.
	LogOutput io.Writer
	// Recorder skips telemetry setup when set.
	Recorder *metrics.Recorder
	Now      func() time.Time
}

// NewRootCommand creates the gamethread command tree.
func NewRootCommand(opts RootOptions) *cobra.Command {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}

	cmd := &cobra.Command{
		Use:           "gamethread",
		Short:         "Post game and post-game threads for a college team",
		Long:          "Discovers the followed team's games on today's NCAA scoreboards and drives their forum threads from tip-off to final.",
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewDiscoverCommand(&opts))
	cmd.AddCommand(NewReconcileCommand(&opts))
	cmd.AddCommand(NewServeCommand(&opts))

	return cmd
}

// session is the per-invocation setup every command shares.
type session struct {
	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
}

func setup(opts *RootOptions) (session, error) {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return session{}, err
	}
	logger, closeLog := logging.NewLogger(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
		Service:   serviceName,
		Version:   opts.Version,
		Output:    opts.LogOutput,
	})
	return session{cfg: cfg, logger: logger, closeLog: closeLog}, nil
}

func serverOptions(opts *RootOptions) server.Options {
	return server.Options{Version: opts.Version, Recorder: opts.Recorder, Now: opts.Now}
}

func (r session) close() {
	if err := r.closeLog(); err != nil {
		logging.Warn(r.logger, "log file close failed", logging.FieldError, err)
	}
}

func flush(logger *slog.Logger, comps *server.Components) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := comps.Close(ctx); err != nil {
		logging.Warn(logger, "component shutdown failed", logging.FieldError, err)
	}
}
