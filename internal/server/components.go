package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/app/discovery"
	"github.com/preston-bernstein/gameday-threads/internal/app/reconcile"
	"github.com/preston-bernstein/gameday-threads/internal/config"
	"github.com/preston-bernstein/gameday-threads/internal/feed"
	"github.com/preston-bernstein/gameday-threads/internal/forum"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
	"github.com/preston-bernstein/gameday-threads/internal/store"
)

// Options adjusts how components are assembled.
type Options struct {
	Version string
	// Recorder skips telemetry setup when set.
	Recorder *metrics.Recorder
	Now      func() time.Time
}

// Components are the collaborators shared by the one-shot commands and serve mode.
type Components struct {
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time

	Store    store.Store
	Feed     feed.Client
	Forum    forum.Client
	Recorder *metrics.Recorder

	metricsHandler http.Handler
	closers        []func(context.Context) error
}

// Build validates the configuration and assembles store, feed, forum and telemetry.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger, opts Options) (*Components, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := &Components{cfg: cfg, logger: logger, now: opts.Now}

	recorder, handler, shutdown := buildMetrics(ctx, cfg, logger, opts.Recorder)
	c.Recorder = recorder
	c.metricsHandler = handler
	c.addCloser(shutdown)

	st, closeStore, err := openStore(cfg.Store)
	if err != nil {
		_ = c.Close(ctx)
		return nil, err
	}
	c.Store = st
	c.addCloser(closeStore)

	c.Feed = buildFeed(cfg, opts.Version, logger, recorder)

	fc, err := buildForum(cfg, opts.Version, logger, recorder)
	if err != nil {
		_ = c.Close(ctx)
		return nil, err
	}
	c.Forum = fc
	return c, nil
}

// Discovery returns a discovery cycle over the shared components.
func (c *Components) Discovery() *discovery.Cycle {
	return discovery.New(discovery.Config{
		Store:        c.Store,
		Feed:         c.Feed,
		Competitions: c.cfg.Competitions,
		Rules:        discovery.Rules{Team: c.cfg.Team, Rival: c.cfg.Rival},
		Logger:       c.logger,
		Recorder:     c.Recorder,
		Now:          c.now,
	})
}

// Reconcile returns a reconciliation cycle over the shared components.
func (c *Components) Reconcile() *reconcile.Cycle {
	return reconcile.New(reconcile.Config{
		Store:    c.Store,
		Feed:     c.Feed,
		Forum:    c.Forum,
		Logger:   c.logger,
		Recorder: c.Recorder,
		Now:      c.now,
	})
}

// Close flushes telemetry and releases the store, most recently opened first.
func (c *Components) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *Components) addCloser(fn func(context.Context) error) {
	if fn != nil {
		c.closers = append(c.closers, fn)
	}
}

var metricsSetup = metrics.Setup

// buildMetrics returns the recorder, the Prometheus handler (nil when disabled) and the
// meter provider shutdown. Setup failures degrade to an in-memory recorder.
func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, http.Handler, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}
	if !recCfg.Enabled {
		handler = nil
	}
	return rec, handler, shutdown
}
