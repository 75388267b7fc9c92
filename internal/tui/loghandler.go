package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogEntry is one line in the log viewer popup.
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// LogBuffer is a bounded ring of recent log entries shared between the slog
// handler (any goroutine) and the log viewer (UI goroutine).
type LogBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
	max     int
}

// NewLogBuffer creates a buffer holding up to max entries.
func NewLogBuffer(max int) *LogBuffer {
	return &LogBuffer{max: max}
}

// Append adds an entry, evicting the oldest when full.
func (b *LogBuffer) Append(e LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
	if len(b.entries) > b.max {
		b.entries = b.entries[len(b.entries)-b.max:]
	}
}

// Entries returns a snapshot of the buffer, oldest first.
func (b *LogBuffer) Entries() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]LogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// BufferHandler is a slog.Handler that appends records to a LogBuffer so the
// log viewer popup can show them without touching any log file.
type BufferHandler struct {
	buffer *LogBuffer
	level  slog.Level
	attrs  []string // pre-rendered, under the groups in effect when bound
	groups []string
}

// NewBufferHandler creates a handler writing into buffer.
func NewBufferHandler(buffer *LogBuffer, level slog.Level) *BufferHandler {
	return &BufferHandler{buffer: buffer, level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *BufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle appends the record, flattening attributes into the message.
func (h *BufferHandler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{r.Message}
	parts = append(parts, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, h.formatAttr(a))
		return true
	})

	h.buffer.Append(LogEntry{
		Time:    r.Time,
		Level:   r.Level,
		Message: strings.Join(parts, " "),
	})
	return nil
}

// WithAttrs returns a new handler with the given attributes added.
func (h *BufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make([]string, 0, len(h.attrs)+len(attrs))
	bound = append(bound, h.attrs...)
	for _, a := range attrs {
		bound = append(bound, h.formatAttr(a))
	}
	return &BufferHandler{
		buffer: h.buffer,
		level:  h.level,
		attrs:  bound,
		groups: h.groups,
	}
}

// WithGroup returns a new handler with the given group appended.
func (h *BufferHandler) WithGroup(name string) slog.Handler {
	return &BufferHandler{
		buffer: h.buffer,
		level:  h.level,
		attrs:  h.attrs,
		groups: append(append([]string{}, h.groups...), name),
	}
}

func (h *BufferHandler) formatAttr(a slog.Attr) string {
	key := a.Key
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	return fmt.Sprintf("%s=%v", key, a.Value.Any())
}
