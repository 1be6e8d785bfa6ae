package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/gameday-threads/internal/app/discovery"
	"github.com/preston-bernstein/gameday-threads/internal/app/reconcile"
	"github.com/preston-bernstein/gameday-threads/internal/config"
	httpserver "github.com/preston-bernstein/gameday-threads/internal/http"
	"github.com/preston-bernstein/gameday-threads/internal/http/handlers"
	"github.com/preston-bernstein/gameday-threads/internal/http/middleware"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
	"github.com/preston-bernstein/gameday-threads/internal/metrics"
	"github.com/preston-bernstein/gameday-threads/internal/poller"
	"github.com/preston-bernstein/gameday-threads/internal/store"
)

// Server runs both cycles on their intervals next to the inspection API.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	components    *Components
	httpServer    httpServer
	metricsServer httpServer
	pollers       []Poller
}

// New builds the components and wires a discovery poller, a reconcile poller and the HTTP
// servers.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, opts Options) (*Server, error) {
	comps, err := Build(ctx, cfg, logger, opts)
	if err != nil {
		return nil, err
	}
	return newServerWithComponents(cfg, logger, comps), nil
}

func newServerWithComponents(cfg config.Config, logger *slog.Logger, comps *Components) *Server {
	pollers := []Poller{
		poller.New(discovery.JobName, cycleJob(comps.Discovery().Run), logger, cfg.DiscoverInterval),
		poller.New(reconcile.JobName, cycleJob(comps.Reconcile().Run), logger, cfg.ReconcileInterval),
	}

	var metricsSrv httpServer
	if comps.metricsHandler != nil {
		metricsSrv = newNetHTTPServer(cfg.Metrics.Port, comps.metricsHandler, cfg.HTTP)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		components:    comps,
		httpServer:    buildHTTPServer(cfg, comps.Store, logger, comps.Recorder, pollers),
		metricsServer: metricsSrv,
		pollers:       pollers,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, pollers ...Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		pollers:    pollers,
	}
}

func buildHTTPServer(cfg config.Config, st store.Store, logger *slog.Logger, recorder *metrics.Recorder, pollers []Poller) httpServer {
	statuses := make([]handlers.StatusFunc, 0, len(pollers))
	for _, p := range pollers {
		statuses = append(statuses, p.Status)
	}

	handler := handlers.NewHandler(st, logger, statuses...)
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger, _ = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newNetHTTPServer(cfg.Port, wrapped, cfg.HTTP)
}

// Run starts the pollers and HTTP servers, then waits for context cancellation to shut down
// gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	for _, p := range s.pollers {
		p.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), resolveLimits(s.cfg.HTTP).ShutdownTimeout)
	defer cancel()

	for _, p := range s.pollers {
		if err := p.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err, logging.FieldJob, p.Name())
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if s.components != nil {
		if err := s.components.Close(shutdownCtx); err != nil {
			logging.Warn(s.logger, "component shutdown failed", logging.FieldError, err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
