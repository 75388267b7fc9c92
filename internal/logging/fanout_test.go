package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestFanoutHandler_DuplicatesRecords(t *testing.T) {
	var a, b bytes.Buffer
	h := NewFanoutHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	)

	slog.New(h).Info("hello", "k", "v")

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("%s target missing the record: %q", name, buf.String())
		}
		if !strings.Contains(buf.String(), "k=v") {
			t.Errorf("%s target missing the attr: %q", name, buf.String())
		}
	}
}

func TestFanoutHandler_RespectsPerTargetLevels(t *testing.T) {
	var warnOnly, all bytes.Buffer
	h := NewFanoutHandler(
		slog.NewTextHandler(&warnOnly, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&all, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)

	logger := slog.New(h)
	logger.Info("quiet")
	logger.Warn("loud")

	if strings.Contains(warnOnly.String(), "quiet") {
		t.Error("info record leaked past a warn-level target")
	}
	if !strings.Contains(warnOnly.String(), "loud") {
		t.Error("warn record missing from the warn-level target")
	}
	if !strings.Contains(all.String(), "quiet") || !strings.Contains(all.String(), "loud") {
		t.Error("debug-level target should carry both records")
	}
}

func TestFanoutHandler_WithAttrsPropagates(t *testing.T) {
	var out bytes.Buffer
	h := NewFanoutHandler(slog.NewTextHandler(&out, nil))

	slog.New(h).With("org", "acme").Info("scoped")

	if !strings.Contains(out.String(), "org=acme") {
		t.Errorf("bound attr missing: %q", out.String())
	}
}
