package tui

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLogBuffer_EvictsOldest(t *testing.T) {
	b := NewLogBuffer(3)
	for i, msg := range []string{"one", "two", "three", "four"} {
		b.Append(LogEntry{Time: time.Unix(int64(i), 0), Message: msg})
	}

	entries := b.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "two" {
		t.Errorf("oldest entry should have been evicted, got %q", entries[0].Message)
	}
	if entries[2].Message != "four" {
		t.Errorf("expected newest entry last, got %q", entries[2].Message)
	}
}

func TestLogBuffer_EntriesIsSnapshot(t *testing.T) {
	b := NewLogBuffer(10)
	b.Append(LogEntry{Message: "first"})

	snap := b.Entries()
	b.Append(LogEntry{Message: "second"})

	if len(snap) != 1 {
		t.Errorf("snapshot should not grow, got %d entries", len(snap))
	}
}

func TestBufferHandler_RecordsAttrs(t *testing.T) {
	buf := NewLogBuffer(10)
	h := NewBufferHandler(buf, slog.LevelDebug)
	logger := slog.New(h)

	logger.Info("stack loaded", "org", "acme", "count", 7)

	entries := buf.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0].Message
	if !strings.Contains(got, "stack loaded") {
		t.Errorf("message missing, got %q", got)
	}
	if !strings.Contains(got, "org=acme") || !strings.Contains(got, "count=7") {
		t.Errorf("attrs missing, got %q", got)
	}
	if entries[0].Level != slog.LevelInfo {
		t.Errorf("expected info level, got %v", entries[0].Level)
	}
}

func TestBufferHandler_LevelGate(t *testing.T) {
	buf := NewLogBuffer(10)
	h := NewBufferHandler(buf, slog.LevelWarn)

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be below the warn gate")
	}

	slog.New(h).Warn("kept")
	slog.New(h).Info("dropped")
	if got := len(buf.Entries()); got != 1 {
		t.Errorf("expected 1 entry past the gate, got %d", got)
	}
}

func TestBufferHandler_WithAttrsAndGroups(t *testing.T) {
	buf := NewLogBuffer(10)
	h := NewBufferHandler(buf, slog.LevelDebug)
	logger := slog.New(h).With("component", "api").WithGroup("req")

	logger.Info("fetched", "path", "/api/user")

	entries := buf.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0].Message
	if !strings.Contains(got, "component=api") {
		t.Errorf("pre-bound attr missing, got %q", got)
	}
	if !strings.Contains(got, "req.path=/api/user") {
		t.Errorf("grouped attr missing, got %q", got)
	}
}
