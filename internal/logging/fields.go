package logging

import "log/slog"

// Structured log keys shared across packages.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRunID      = "run_id"
	FieldJob        = "job"
	FieldGameID     = "game_id"
	FieldThreadID   = "thread_id"
	FieldState      = "state"
	FieldTransition = "transition"
	FieldPlan       = "plan"
	FieldFeed       = "feed"
	FieldForum      = "forum"
	FieldAction     = "action"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDate       = "date"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)

// WithCommon appends the process identity attributes that are set.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	for _, kv := range [...][2]string{{FieldService, service}, {FieldVersion, version}} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
