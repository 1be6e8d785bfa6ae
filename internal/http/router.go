// Package http wires the inspection endpoints onto a ServeMux.
package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/gameday-threads/internal/http/handlers"
)

// Route binds a mux pattern to one handler method.
type Route struct {
	Pattern string
	Handle  func(nethttp.ResponseWriter, *nethttp.Request)
}

// Routes lists every endpoint the service exposes. "/games/" matches a single game by id.
func Routes(handler *handlers.Handler) []Route {
	return []Route{
		{Pattern: "/health", Handle: handler.Health},
		{Pattern: "/ready", Handle: handler.Ready},
		{Pattern: "/games", Handle: handler.Games},
		{Pattern: "/games/", Handle: handler.GameByID},
	}
}

// NewRouter registers Routes on a fresh ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	for _, r := range Routes(handler) {
		mux.HandleFunc(r.Pattern, r.Handle)
	}
	return mux
}
