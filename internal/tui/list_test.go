package tui

import (
	"testing"
)

func newStringList(items ...string) List[string] {
	l := NewList(func(s string) string { return s })
	l.SetItems(items)
	return l
}

func TestList_CursorNavigation(t *testing.T) {
	l := newStringList("a", "b", "c")

	if l.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor())
	}

	l.Next()
	l.Next()
	if l.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", l.Cursor())
	}

	// Bounded at the end
	l.Next()
	if l.Cursor() != 2 {
		t.Errorf("cursor should stay at 2, got %d", l.Cursor())
	}

	l.First()
	if l.Cursor() != 0 {
		t.Errorf("expected cursor 0 after First, got %d", l.Cursor())
	}

	l.Prev()
	if l.Cursor() != 0 {
		t.Errorf("cursor should stay at 0, got %d", l.Cursor())
	}

	l.Last()
	if l.Cursor() != 2 {
		t.Errorf("expected cursor 2 after Last, got %d", l.Cursor())
	}
}

func TestList_SelectedEmpty(t *testing.T) {
	l := NewList(func(s string) string { return s })

	if _, ok := l.Selected(); ok {
		t.Error("empty list should have no selection")
	}
}

func TestList_FilterNarrowsItems(t *testing.T) {
	l := newStringList("acme-corp", "acme-labs", "globex")

	l.SetFilter("acme")
	if got := l.Len(); got != 2 {
		t.Fatalf("expected 2 filtered items, got %d", got)
	}

	sel, ok := l.Selected()
	if !ok {
		t.Fatal("expected a selection after filtering")
	}
	if sel != "acme-corp" && sel != "acme-labs" {
		t.Errorf("unexpected selection %q", sel)
	}
}

func TestList_FilterIsFuzzy(t *testing.T) {
	l := newStringList("production", "staging", "dev")

	l.SetFilter("prdn")
	if got := l.Len(); got != 1 {
		t.Fatalf("expected 1 fuzzy match, got %d", got)
	}
	if sel, _ := l.Selected(); sel != "production" {
		t.Errorf("expected production, got %q", sel)
	}
}

func TestList_ClearFilterRestoresItems(t *testing.T) {
	l := newStringList("a", "b", "c")

	l.SetFilter("zzz")
	if l.Len() != 0 {
		t.Fatalf("expected no matches, got %d", l.Len())
	}

	l.SetFilter("")
	if l.Len() != 3 {
		t.Errorf("expected all items back, got %d", l.Len())
	}
}

func TestList_SetItemsClampsCursor(t *testing.T) {
	l := newStringList("a", "b", "c")
	l.Last()

	l.SetItems([]string{"only"})
	if l.Cursor() != 0 {
		t.Errorf("cursor should clamp to 0, got %d", l.Cursor())
	}
	if sel, ok := l.Selected(); !ok || sel != "only" {
		t.Errorf("expected selection %q, got %q (%v)", "only", sel, ok)
	}
}
