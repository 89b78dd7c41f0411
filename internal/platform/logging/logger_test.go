package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q)=%s want %s", input, got, want)
		}
	}
}

func TestLoggerWritesKeyValueFields(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).Named("board")

	logger.WarnContext(context.Background(), "fetch predictions failed", "match_count", 3, "error", errors.New("timeout"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != "board" {
		t.Fatalf("unexpected logger name: %s", entry.LoggerName)
	}
	fields := entry.ContextMap()
	if fields["match_count"] != int64(3) {
		t.Fatalf("unexpected match_count field: %#v", fields["match_count"])
	}
	if fields["error"] != "timeout" {
		t.Fatalf("unexpected error field: %#v", fields["error"])
	}
}
