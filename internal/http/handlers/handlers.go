package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
	"github.com/preston-bernstein/gameday-threads/internal/poller"
	"github.com/preston-bernstein/gameday-threads/internal/store"
)

// StatusFunc reports the health of one background job.
type StatusFunc func() poller.Status

// Handler serves the read-only inspection API over the record store.
type Handler struct {
	store    store.Store
	logger   *slog.Logger
	statuses []StatusFunc
}

// GamesResponse lists tracked games ordered by start.
type GamesResponse struct {
	Count int                 `json:"count"`
	Games []games.TrackedGame `json:"games"`
}

// NewHandler constructs a Handler. Readiness requires every status to be ready.
func NewHandler(s store.Store, logger *slog.Logger, statuses ...StatusFunc) *Handler {
	return &Handler{
		store:    s,
		logger:   logger,
		statuses: statuses,
	}
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/games":
		h.Games(w, r)
	case strings.HasPrefix(r.URL.Path, "/games/"):
		h.GameByID(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether both cycles have completed recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	for _, fn := range h.statuses {
		if fn == nil {
			continue
		}
		status := fn()
		if status.IsReady() {
			continue
		}
		msg := status.LastError
		if msg == "" {
			msg = "not ready"
		}
		if status.Job != "" {
			msg = status.Job + ": " + msg
		}
		writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Games lists tracked records sorted by start, optionally filtered by ?state=.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	var want games.State
	if raw := r.URL.Query().Get("state"); raw != "" {
		s, err := games.ParseState(raw)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid state (expected pre, live or final)", h.logger)
			return
		}
		want = s
	}

	all, err := h.store.GetAll(r.Context())
	var corrupt *store.CorruptRecordsError
	if errors.As(err, &corrupt) {
		logging.Warn(loggerFromContext(r, h.logger), "listing readable games only", "corrupt_ids", corrupt.IDs)
		err = nil
	}
	if err != nil {
		logging.Error(loggerFromContext(r, h.logger), "failed to load tracked games", err)
		writeError(w, r, nethttp.StatusInternalServerError, "store unavailable", h.logger)
		return
	}

	out := make([]games.TrackedGame, 0, len(all))
	for _, g := range all {
		if want != games.StateNone && g.State != want {
			continue
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})

	writeJSON(w, nethttp.StatusOK, GamesResponse{Count: len(out), Games: out}, h.logger)
}

// GameByID returns a specific tracked record.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	// Expect path: /games/{id}
	path := strings.TrimPrefix(r.URL.Path, "/games")
	if path == "" || path == "/" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	id, err := url.PathUnescape(strings.TrimPrefix(path, "/"))
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	game, err := h.store.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	case errors.Is(err, store.ErrInvalidID):
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	case err != nil:
		logging.Error(loggerFromContext(r, h.logger), "failed to load tracked game", err, logging.FieldGameID, id)
		writeError(w, r, nethttp.StatusInternalServerError, "store unavailable", h.logger)
		return
	}

	writeJSON(w, nethttp.StatusOK, game, h.logger)
}
