package logging

import (
	"context"
	"log/slog"
	"strings"
)

// ComponentKey is the attribute that FilterHandler matches targets against.
const ComponentKey = "component"

// Filter holds the per-component log levels parsed from a LOG_FILTER
// expression such as "info,pulumi=debug,tui=warn". A bare level sets the
// default; "target=level" entries override it for one component. When the
// same target appears twice the rightmost entry wins.
type Filter struct {
	Default slog.Level
	Targets map[string]slog.Level
}

// ParseFilter parses a LOG_FILTER expression. Unknown levels fall back to
// info and malformed entries are skipped.
func ParseFilter(expr string) Filter {
	f := Filter{Default: slog.LevelInfo}
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if target, level, ok := strings.Cut(part, "="); ok {
			target = strings.TrimSpace(target)
			if target == "" {
				continue
			}
			if f.Targets == nil {
				f.Targets = make(map[string]slog.Level)
			}
			f.Targets[target] = parseLevel(strings.TrimSpace(level))
			continue
		}
		f.Default = parseLevel(part)
	}
	return f
}

// Level returns the effective level for a component.
func (f Filter) Level(component string) slog.Level {
	if lvl, ok := f.Targets[component]; ok {
		return lvl
	}
	return f.Default
}

// MinLevel returns the most permissive level the filter can resolve to.
func (f Filter) MinLevel() slog.Level {
	min := f.Default
	for _, lvl := range f.Targets {
		if lvl < min {
			min = lvl
		}
	}
	return min
}

// FilterHandler gates records on the component-specific level before
// delegating to the wrapped handler. The component is picked up from
// WithAttrs, so loggers built via WithComponent get the right threshold.
type FilterHandler struct {
	handler   slog.Handler
	filter    Filter
	component string
}

// NewFilterHandler wraps a handler with per-component level filtering.
func NewFilterHandler(handler slog.Handler, filter Filter) *FilterHandler {
	return &FilterHandler{handler: handler, filter: filter}
}

// Enabled applies the component's threshold.
func (h *FilterHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.filter.Level(h.component)
}

// Handle delegates to the wrapped handler; gating happened in Enabled, but
// records handed over directly are checked again.
func (h *FilterHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < h.filter.Level(h.component) {
		return nil
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs tracks the component attribute and forwards the rest.
func (h *FilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	component := h.component
	for _, a := range attrs {
		if a.Key == ComponentKey && a.Value.Kind() == slog.KindString {
			component = a.Value.String()
		}
	}
	return &FilterHandler{
		handler:   h.handler.WithAttrs(attrs),
		filter:    h.filter,
		component: component,
	}
}

// WithGroup forwards the group to the wrapped handler.
func (h *FilterHandler) WithGroup(name string) slog.Handler {
	return &FilterHandler{
		handler:   h.handler.WithGroup(name),
		filter:    h.filter,
		component: h.component,
	}
}
