package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Logger wraps slog.Logger with secret redaction and per-component filtering.
type Logger struct {
	*slog.Logger
	sanitizer *Sanitizer
}

// Config configures the logger.
type Config struct {
	Level     string
	Format    string // auto, text, json
	Output    io.Writer
	Filter    string // LOG_FILTER expression, overrides Level per component
	AddSource bool
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "auto",
		Output:    os.Stderr,
		AddSource: false,
	}
}

// New creates a new logger.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	filter := ParseFilter(cfg.Filter)
	if cfg.Filter == "" {
		filter.Default = parseLevel(cfg.Level)
	}
	sanitizer := NewSanitizer()

	// The inner handler runs at the most permissive level the filter can
	// ask for; the filter handler does the per-component gating.
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{
			Level:     filter.MinLevel(),
			AddSource: cfg.AddSource,
		})
	case "text":
		handler = slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{
			Level:     filter.MinLevel(),
			AddSource: cfg.AddSource,
		})
	default: // auto
		if isTerminal(cfg.Output) {
			handler = NewConsoleHandler(cfg.Output, filter.MinLevel())
		} else {
			handler = slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{
				Level:     filter.MinLevel(),
				AddSource: cfg.AddSource,
			})
		}
	}

	handler = NewSanitizingHandler(handler, sanitizer)
	handler = NewFilterHandler(handler, filter)

	return &Logger{
		Logger:    slog.New(handler),
		sanitizer: sanitizer,
	}
}

// NewWithHandler builds a logger on top of an existing handler, still
// applying redaction. Used to route records into the in-app log viewer.
func NewWithHandler(h slog.Handler, filter Filter) *Logger {
	sanitizer := NewSanitizer()
	wrapped := NewFilterHandler(NewSanitizingHandler(h, sanitizer), filter)
	return &Logger{
		Logger:    slog.New(wrapped),
		sanitizer: sanitizer,
	}
}

// NewNop creates a no-op logger for testing.
func NewNop() *Logger {
	return &Logger{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		sanitizer: NewSanitizer(),
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// WithComponent returns a logger tagged with a component name. The name is
// what LOG_FILTER targets match against.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger:    l.Logger.With(ComponentKey, name),
		sanitizer: l.sanitizer,
	}
}

// WithOrg returns a logger with organization context.
func (l *Logger) WithOrg(org string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("org", org),
		sanitizer: l.sanitizer,
	}
}

// WithTask returns a logger with agent task context.
func (l *Logger) WithTask(taskID string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("task_id", taskID),
		sanitizer: l.sanitizer,
	}
}

// With returns a logger with custom fields.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		sanitizer: l.sanitizer,
	}
}

// Sanitize redacts secrets from a string using the logger's sanitizer.
func (l *Logger) Sanitize(input string) string {
	return l.sanitizer.Sanitize(input)
}
