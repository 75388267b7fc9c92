package logging

import (
	"log/slog"
	"testing"
)

func TestParseFilter_Empty(t *testing.T) {
	t.Parallel()
	f := ParseFilter("")
	if f.Default != slog.LevelInfo {
		t.Errorf("expected default info, got %v", f.Default)
	}
	if len(f.Targets) != 0 {
		t.Errorf("expected no targets, got %v", f.Targets)
	}
}

func TestParseFilter_BareLevel(t *testing.T) {
	t.Parallel()
	f := ParseFilter("debug")
	if f.Default != slog.LevelDebug {
		t.Errorf("expected default debug, got %v", f.Default)
	}
}

func TestParseFilter_Targets(t *testing.T) {
	t.Parallel()
	f := ParseFilter("warn,pulumi=debug,tui=error")

	if f.Default != slog.LevelWarn {
		t.Errorf("expected default warn, got %v", f.Default)
	}
	if got := f.Level("pulumi"); got != slog.LevelDebug {
		t.Errorf("expected pulumi debug, got %v", got)
	}
	if got := f.Level("tui"); got != slog.LevelError {
		t.Errorf("expected tui error, got %v", got)
	}
	if got := f.Level("other"); got != slog.LevelWarn {
		t.Errorf("expected fallback warn, got %v", got)
	}
}

func TestParseFilter_RightmostWins(t *testing.T) {
	t.Parallel()
	f := ParseFilter("pulumi=debug,pulumi=error")
	if got := f.Level("pulumi"); got != slog.LevelError {
		t.Errorf("expected rightmost entry to win, got %v", got)
	}

	f = ParseFilter("debug,warn")
	if f.Default != slog.LevelWarn {
		t.Errorf("expected rightmost bare level to win, got %v", f.Default)
	}
}

func TestParseFilter_Malformed(t *testing.T) {
	t.Parallel()
	f := ParseFilter(",,=debug, pulumi = warn ,bogus=notalevel")

	if got := f.Level("pulumi"); got != slog.LevelWarn {
		t.Errorf("expected whitespace-trimmed target, got %v", got)
	}
	// Unknown level names fall back to info rather than erroring.
	if got := f.Level("bogus"); got != slog.LevelInfo {
		t.Errorf("expected unknown level to parse as info, got %v", got)
	}
}

func TestFilter_MinLevel(t *testing.T) {
	t.Parallel()
	f := ParseFilter("error,pulumi=debug")
	if got := f.MinLevel(); got != slog.LevelDebug {
		t.Errorf("expected most permissive level, got %v", got)
	}

	f = ParseFilter("info")
	if got := f.MinLevel(); got != slog.LevelInfo {
		t.Errorf("expected default as min, got %v", got)
	}
}
