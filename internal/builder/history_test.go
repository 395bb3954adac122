package builder

import (
	"fmt"
	"testing"

	"clinicsite-backend/internal/sections"
)

func siteWithTheme(theme string) *Site {
	site := NewSite(1)
	site.ThemeID = theme
	return site
}

func TestUndoRedoRoundTrip(t *testing.T) {
	d0 := siteWithTheme("v0")
	h := NewHistory(d0, 10)

	d1 := d0.Clone()
	d1.ThemeID = "v1"
	h.Commit(d1)

	undone, ok := h.Undo()
	if !ok {
		t.Fatal("expected undo to succeed")
	}
	if undone.ThemeID != "v0" {
		t.Fatalf("undo should restore the baseline, got %s", undone.ThemeID)
	}

	redone, ok := h.Redo()
	if !ok {
		t.Fatal("expected redo to succeed")
	}
	if redone.ThemeID != "v1" {
		t.Fatalf("redo should restore the commit, got %s", redone.ThemeID)
	}
}

func TestUndoAtBaselineIsNoop(t *testing.T) {
	h := NewHistory(siteWithTheme("v0"), 10)

	current, ok := h.Undo()
	if ok {
		t.Fatal("undo with no history should report nothing to undo")
	}
	if current.ThemeID != "v0" {
		t.Fatalf("no-op undo should return the current state, got %s", current.ThemeID)
	}
}

func TestRedoAtTailIsNoop(t *testing.T) {
	h := NewHistory(siteWithTheme("v0"), 10)

	if _, ok := h.Redo(); ok {
		t.Fatal("redo at the tail should be a no-op")
	}
}

func TestCommitAfterUndoDiscardsFuture(t *testing.T) {
	base := siteWithTheme("v0")
	h := NewHistory(base, 10)

	for i := 1; i <= 3; i++ {
		next := base.Clone()
		next.ThemeID = fmt.Sprintf("v%d", i)
		h.Commit(next)
	}

	h.Undo()
	h.Undo()

	branch := base.Clone()
	branch.ThemeID = "branch"
	h.Commit(branch)

	if _, ok := h.Redo(); ok {
		t.Fatal("redo after committing on an undone state should be a no-op")
	}
	// baseline + v1 + branch
	if h.Len() != 3 {
		t.Fatalf("expected 3 snapshots after branch discard, got %d", h.Len())
	}
}

func TestHistoryBoundEvictsOldest(t *testing.T) {
	const cap = 5
	base := siteWithTheme("v0")
	h := NewHistory(base, cap)

	for i := 1; i <= cap+5; i++ {
		next := base.Clone()
		next.ThemeID = fmt.Sprintf("v%d", i)
		h.Commit(next)
	}

	if h.Len() != cap {
		t.Fatalf("expected history to stay at cap %d, got %d", cap, h.Len())
	}

	// Walk all the way back: the oldest reachable state is the one just
	// inside the cap, everything older is gone.
	var last *Site
	for {
		snapshot, ok := h.Undo()
		last = snapshot
		if !ok {
			break
		}
	}
	if last.ThemeID != fmt.Sprintf("v%d", 5+1) {
		t.Fatalf("expected oldest surviving snapshot v6, got %s", last.ThemeID)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	site := NewSite(1)
	h := NewHistory(site, 10)

	// Mutating the live site after commit must not alter stored history.
	home := site.HomePage()
	home.AddSection(sections.Builtin(), sections.TypeHero, -1)

	baseline, _ := h.Undo()
	if got := len(baseline.HomePage().Sections); got != 0 {
		t.Fatalf("baseline snapshot was mutated: %d sections", got)
	}
}
