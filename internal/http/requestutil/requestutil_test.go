package requestutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	for _, bad := range []string{"", "bad id", strings.Repeat("a", 65), "../etc"} {
		got := SanitizeRequestID(bad)
		if got == bad || !requestIDPattern.MatchString(got) {
			t.Fatalf("expected fresh id for %q, got %q", bad, got)
		}
	}
}

func TestNewRequestIDFallsBackWhenRandomFails(t *testing.T) {
	if _, err := uuid.Parse(NewRequestID()); err != nil {
		t.Fatalf("expected uuid request id: %v", err)
	}

	original := newRandomID
	newRandomID = func() (uuid.UUID, error) { return uuid.Nil, errors.New("no entropy") }
	defer func() { newRandomID = original }()

	got := NewRequestID()
	if !strings.HasPrefix(got, "t") || !requestIDPattern.MatchString(got) {
		t.Fatalf("expected clock fallback id, got %q", got)
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "9.9.9.9:1234", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": "4.4.4.4"}, "9.9.9.9:1234", "4.4.4.4"},
		{"empty forwarded hop", map[string]string{"X-Forwarded-For": " , 5.6.7.8"}, "9.9.9.9:1234", "9.9.9.9"},
		{"remote host", nil, "9.9.9.9:1234", "9.9.9.9"},
		{"remote without port", nil, "unix", "unix"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tc.remote
		for k, v := range tc.headers {
			req.Header.Set(k, v)
		}
		if got := ClientIP(req); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}
