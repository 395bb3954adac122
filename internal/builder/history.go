package builder

// History is a bounded linear stack of site snapshots with a cursor. Each
// committed edit appends one snapshot; committing after an undo discards the
// future entries beyond the cursor.
type History struct {
	snapshots []*Site
	cursor    int
	limit     int
}

const DefaultHistoryLimit = 50

// NewHistory creates a history seeded with the baseline snapshot. The limit
// bounds the stack; when it is exceeded the oldest entry is evicted.
func NewHistory(baseline *Site, limit int) *History {
	if limit < 2 {
		limit = DefaultHistoryLimit
	}
	return &History{
		snapshots: []*Site{baseline.Clone()},
		cursor:    0,
		limit:     limit,
	}
}

// Commit records a new snapshot: the future beyond the cursor is discarded,
// the snapshot appended, and the oldest entry evicted if over the cap.
func (h *History) Commit(site *Site) {
	h.snapshots = append(h.snapshots[:h.cursor+1], site.Clone())
	h.cursor = len(h.snapshots) - 1

	if len(h.snapshots) > h.limit {
		overflow := len(h.snapshots) - h.limit
		h.snapshots = append([]*Site(nil), h.snapshots[overflow:]...)
		h.cursor -= overflow
	}
}

// Undo steps the cursor back and returns a copy of that snapshot. The second
// return is false when there is nothing to undo; the current snapshot is
// returned unchanged in that case.
func (h *History) Undo() (*Site, bool) {
	if h.cursor == 0 {
		return h.snapshots[h.cursor].Clone(), false
	}
	h.cursor--
	return h.snapshots[h.cursor].Clone(), true
}

// Redo steps the cursor forward and returns a copy of that snapshot. The
// second return is false at the tail.
func (h *History) Redo() (*Site, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return h.snapshots[h.cursor].Clone(), false
	}
	h.cursor++
	return h.snapshots[h.cursor].Clone(), true
}

func (h *History) CanUndo() bool {
	return h.cursor > 0
}

func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Len reports the number of stored snapshots, including the baseline.
func (h *History) Len() int {
	return len(h.snapshots)
}
