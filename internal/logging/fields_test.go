package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestWithCommon(t *testing.T) {
	attrs := WithCommon(nil, "gameday-threads", "1.2.0")
	if len(attrs) != 2 || attrs[0].Key != FieldService || attrs[1].Value.String() != "1.2.0" {
		t.Fatalf("expected service and version attrs, got %+v", attrs)
	}

	onlyVersion := WithCommon([]slog.Attr{slog.String(FieldJob, "discover")}, "", "dev")
	if len(onlyVersion) != 2 || onlyVersion[0].Key != FieldJob || onlyVersion[1].Key != FieldVersion {
		t.Fatalf("expected existing attrs kept and empty service skipped, got %+v", onlyVersion)
	}
}

func TestHelpersRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	Debug(logger, "hidden")
	Info(logger, "shown", FieldCount, 2)
	Error(logger, "no cause", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug suppressed at info, got %q", out)
	}
	if !strings.Contains(out, "count=2") || strings.Contains(out, FieldError+"=") {
		t.Fatalf("unexpected output %q", out)
	}

	buf.Reset()
	Warn(logger, "retrying", FieldError, errors.New("timeout"))
	if !strings.Contains(out+buf.String(), "level=WARN") {
		t.Fatalf("expected warn level, got %q", buf.String())
	}
}
