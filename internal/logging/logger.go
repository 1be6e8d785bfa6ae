package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatJSON   = "json"
	FormatText   = "text"
	FormatPretty = "pretty"
)

const defaultMaxSizeMB = 50

// Config controls logger construction.
type Config struct {
	Level     string
	Format    string
	File      string
	MaxSizeMB int // rotation size for File; zero means 50
	Service   string
	Version   string
	Output    io.Writer // defaults to stderr
}

// NewLogger returns a structured logger with sane defaults. The returned close func
// releases the rotating log file when one is configured.
func NewLogger(cfg Config) (*slog.Logger, func() error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level := ParseLevel(cfg.Level)

	handlers := []slog.Handler{consoleHandler(out, cfg.Format, level)}
	closeFn := func() error { return nil }

	if path := strings.TrimSpace(cfg.File); path != "" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = defaultMaxSizeMB
		}
		file := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSize,
			MaxBackups: 5,
			MaxAge:     14, // days
		}
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
		closeFn = file.Close
	}

	var h slog.Handler = handlers[0]
	if len(handlers) > 1 {
		h = NewMultiHandler(handlers...)
	}
	if attrs := WithCommon(nil, cfg.Service, cfg.Version); len(attrs) > 0 {
		h = h.WithAttrs(attrs)
	}
	return slog.New(h), closeFn
}

func consoleHandler(out io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	switch resolveFormat(format, out) {
	case FormatJSON:
		return slog.NewJSONHandler(out, opts)
	case FormatPretty:
		return tint.NewHandler(out, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    os.Getenv("NO_COLOR") != "",
		})
	default:
		return slog.NewTextHandler(out, opts)
	}
}

// resolveFormat picks pretty output for terminals when no format was requested.
func resolveFormat(format string, out io.Writer) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case FormatJSON, FormatText, FormatPretty:
		return f
	}
	if f, ok := out.(interface{ Fd() uintptr }); ok && isatty.IsTerminal(f.Fd()) {
		return FormatPretty
	}
	return FormatText
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
