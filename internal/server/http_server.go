package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/config"
)

// httpServer is the part of *http.Server the process lifecycle depends on.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

// fallbackLimits fill any HTTP setting left at zero.
var fallbackLimits = config.HTTPConfig{
	ReadTimeout:     10 * time.Second,
	WriteTimeout:    10 * time.Second,
	IdleTimeout:     60 * time.Second,
	ShutdownTimeout: 10 * time.Second,
}

func resolveLimits(limits config.HTTPConfig) config.HTTPConfig {
	pick := func(v, fallback time.Duration) time.Duration {
		if v <= 0 {
			return fallback
		}
		return v
	}
	return config.HTTPConfig{
		ReadTimeout:     pick(limits.ReadTimeout, fallbackLimits.ReadTimeout),
		WriteTimeout:    pick(limits.WriteTimeout, fallbackLimits.WriteTimeout),
		IdleTimeout:     pick(limits.IdleTimeout, fallbackLimits.IdleTimeout),
		ShutdownTimeout: pick(limits.ShutdownTimeout, fallbackLimits.ShutdownTimeout),
	}
}

type netHTTPServer struct {
	srv      *http.Server
	listener net.Listener
}

// newNetHTTPServer binds handler to ":port" with the resolved limits.
func newNetHTTPServer(port string, handler http.Handler, limits config.HTTPConfig) netHTTPServer {
	limits = resolveLimits(limits)
	return netHTTPServer{srv: &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: limits.ReadTimeout,
		ReadTimeout:       limits.ReadTimeout,
		WriteTimeout:      limits.WriteTimeout,
		IdleTimeout:       limits.IdleTimeout,
	}}
}

func (s netHTTPServer) ListenAndServe() error {
	if s.listener != nil {
		return s.srv.Serve(s.listener)
	}
	return s.srv.ListenAndServe()
}

func (s netHTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s netHTTPServer) Addr() string                       { return s.srv.Addr }
func (s netHTTPServer) Handler() http.Handler              { return s.srv.Handler }
