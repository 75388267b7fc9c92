package tui

import (
	"github.com/sahilm/fuzzy"
)

// List is a selectable list with an optional fuzzy filter. The zero value
// is empty and usable.
type List[T any] struct {
	items    []T
	filtered []int // indexes into items; nil when no filter applied
	cursor   int
	filter   string
	label    func(T) string
}

// NewList creates a list whose filter matches against label(item).
func NewList[T any](label func(T) string) List[T] {
	return List[T]{label: label}
}

// SetItems replaces the items, clamping the cursor and reapplying the filter.
func (l *List[T]) SetItems(items []T) {
	l.items = items
	l.applyFilter()
	l.clamp()
}

// Items returns the visible (filtered) items in order.
func (l *List[T]) Items() []T {
	if l.filtered == nil {
		return l.items
	}
	out := make([]T, len(l.filtered))
	for i, idx := range l.filtered {
		out[i] = l.items[idx]
	}
	return out
}

// Len returns the number of visible items.
func (l *List[T]) Len() int {
	if l.filtered == nil {
		return len(l.items)
	}
	return len(l.filtered)
}

// Cursor returns the cursor position within the visible items.
func (l *List[T]) Cursor() int { return l.cursor }

// Selected returns the item under the cursor.
func (l *List[T]) Selected() (T, bool) {
	var zero T
	if l.Len() == 0 {
		return zero, false
	}
	if l.filtered != nil {
		return l.items[l.filtered[l.cursor]], true
	}
	return l.items[l.cursor], true
}

// Next moves the cursor down.
func (l *List[T]) Next() {
	if l.cursor < l.Len()-1 {
		l.cursor++
	}
}

// Prev moves the cursor up.
func (l *List[T]) Prev() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// First jumps to the top.
func (l *List[T]) First() { l.cursor = 0 }

// Last jumps to the bottom.
func (l *List[T]) Last() {
	if n := l.Len(); n > 0 {
		l.cursor = n - 1
	}
}

// Filter returns the active filter text.
func (l *List[T]) Filter() string { return l.filter }

// SetFilter fuzzy-filters the visible items and resets the cursor.
func (l *List[T]) SetFilter(filter string) {
	l.filter = filter
	l.applyFilter()
	l.cursor = 0
}

func (l *List[T]) applyFilter() {
	if l.filter == "" || l.label == nil {
		l.filtered = nil
		return
	}
	labels := make([]string, len(l.items))
	for i, item := range l.items {
		labels[i] = l.label(item)
	}
	matches := fuzzy.Find(l.filter, labels)
	l.filtered = make([]int, len(matches))
	for i, m := range matches {
		l.filtered[i] = m.Index
	}
}

func (l *List[T]) clamp() {
	if n := l.Len(); l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}
