package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("decoding log line %q: %v", line, err)
	}
	return entry
}

func TestInfoCarriesServiceAndContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "terminald", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithOperation(ctx, "checkout")
	logg.Info(ctx, "order accepted")

	entry := decodeLine(t, &buf)
	if entry["service"] != "terminald" {
		t.Errorf("missing service field: %v", entry)
	}
	if entry["request_id"] != "req-123" {
		t.Errorf("missing request_id field: %v", entry)
	}
	if entry["operation"] != "checkout" {
		t.Errorf("missing operation field: %v", entry)
	}
	if entry["message"] != "order accepted" {
		t.Errorf("missing message: %v", entry)
	}
}

func TestErrorIncludesErrAndStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "terminald", Output: &buf})

	logg.Error(context.Background(), "upstream request failed", errors.New("connection refused"))

	entry := decodeLine(t, &buf)
	if entry["error"] != "connection refused" {
		t.Errorf("missing error field: %v", entry)
	}
	if stack, _ := entry["stack"].(string); stack == "" {
		t.Error("error log must carry a stack trace")
	}
}

func TestWarnStackIsOptIn(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "terminald", Output: &buf})
	logg.Warn(context.Background(), "degraded")
	if _, present := decodeLine(t, &buf)["stack"]; present {
		t.Error("warn must not carry a stack unless enabled")
	}

	buf.Reset()
	logg = New(Options{ServiceName: "terminald", Output: &buf, WarnStack: true})
	logg.Warn(context.Background(), "degraded")
	if stack, _ := decodeLine(t, &buf)["stack"].(string); stack == "" {
		t.Error("warn stack enabled but missing")
	}
}

func TestLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "terminald", Output: &buf, Level: zerolog.WarnLevel})

	logg.Info(context.Background(), "quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"":       zerolog.InfoLevel,
		"bogus":  zerolog.InfoLevel,
		"error":  zerolog.ErrorLevel,
	}
	for input, expected := range cases {
		if got := ParseLevel(input); got != expected {
			t.Errorf("ParseLevel(%q) = %s, expected %s", input, got, expected)
		}
	}
}
