package fold

import "sort"

// LineType classifies a row for gutter rendering.
type LineType int

const (
	LineNone LineType = iota
	LineRangeStartOpen
	LineRangeStartClosed
	LineBetween
	LineFolded
	LineRangeEnd
)

// RowRange is a half-open [Start, End) interval of rows.
type RowRange struct {
	Start int
	End   int
}

// Contains reports whether other nests strictly inside r.
func (r RowRange) Contains(other RowRange) bool {
	return r.Start <= other.Start && other.End <= r.End && r != other
}

// Range is one foldable interval in the tree.
type Range struct {
	RowRange
	folded   bool
	parent   *Range
	children []*Range
}

// Folded reports whether the range is currently folded.
func (r *Range) Folded() bool { return r.folded }

// Parent returns the enclosing range, or nil at a root.
func (r *Range) Parent() *Range { return r.parent }

// Children returns the directly nested ranges.
func (r *Range) Children() []*Range { return r.children }

// Listener observes fold state changes.
type Listener interface {
	// FoldStateChanged fires when a range's folded flag flips.
	FoldStateChanged(r *Range)
	// RootWasRebuilt fires after SetRanges replaces the tree.
	RootWasRebuilt()
}

// Tree is the fold hierarchy for one document.
type Tree struct {
	roots     []*Range
	listeners []Listener
}

// NewTree creates an empty fold tree.
func NewTree() *Tree {
	return &Tree{}
}

// AddListener registers a listener. Adding the same listener twice is
// a no-op.
func (t *Tree) AddListener(l Listener) {
	for _, have := range t.listeners {
		if have == l {
			return
		}
	}
	t.listeners = append(t.listeners, l)
}

// RemoveListener unregisters a listener.
func (t *Tree) RemoveListener(l Listener) {
	for i, have := range t.listeners {
		if have == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// SetRanges replaces the whole tree with the given row ranges, nesting
// them by containment. Folded state is preserved by matching start
// rows against the previous set.
func (t *Tree) SetRanges(ranges []RowRange) {
	foldedStarts := make(map[int]bool)
	t.walk(func(r *Range) {
		if r.folded {
			foldedStarts[r.Start] = true
		}
	})

	sorted := make([]RowRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})

	t.roots = nil
	var stack []*Range
	for _, rr := range sorted {
		if rr.End <= rr.Start {
			continue
		}
		node := &Range{RowRange: rr, folded: foldedStarts[rr.Start]}
		for len(stack) > 0 && !stack[len(stack)-1].RowRange.Contains(rr) {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			t.roots = append(t.roots, node)
		} else {
			parent := stack[len(stack)-1]
			node.parent = parent
			parent.children = append(parent.children, node)
		}
		stack = append(stack, node)
	}

	for _, l := range t.listeners {
		l.RootWasRebuilt()
	}
}

// walk visits every range depth-first.
func (t *Tree) walk(fn func(*Range)) {
	var visit func(r *Range)
	visit = func(r *Range) {
		fn(r)
		for _, c := range r.children {
			visit(c)
		}
	}
	for _, r := range t.roots {
		visit(r)
	}
}

// rangeStartingAt returns the range whose start row is the given row.
func (t *Tree) rangeStartingAt(row int) *Range {
	var found *Range
	t.walk(func(r *Range) {
		if r.Start == row {
			found = r
		}
	})
	return found
}

// ToggleFold flips the fold flag of the range starting at row. A row
// that starts no range is a no-op.
func (t *Tree) ToggleFold(row int) bool {
	r := t.rangeStartingAt(row)
	if r == nil {
		return false
	}
	r.folded = !r.folded
	for _, l := range t.listeners {
		l.FoldStateChanged(r)
	}
	return true
}

// IsFolded reports whether the row is hidden: some range whose folded
// flag is set holds the row strictly inside itself. The start row of a
// folded range stays visible.
func (t *Tree) IsFolded(row int) bool {
	hidden := false
	t.walk(func(r *Range) {
		if r.folded && r.Start < row && row < r.End {
			hidden = true
		}
	})
	return hidden
}

// LineType classifies the row for gutter rendering.
func (t *Tree) LineType(row int) LineType {
	if t.IsFolded(row) {
		return LineFolded
	}
	var innermost *Range
	t.walk(func(r *Range) {
		if r.Start <= row && row < r.End {
			if innermost == nil || innermost.RowRange.Contains(r.RowRange) {
				innermost = r
			}
		}
	})
	if innermost == nil {
		return LineNone
	}
	switch {
	case innermost.Start == row && innermost.folded:
		return LineRangeStartClosed
	case innermost.Start == row:
		return LineRangeStartOpen
	case row == innermost.End-1:
		return LineRangeEnd
	default:
		return LineBetween
	}
}

// ShiftRows maintains every anchor across an edit that inserted
// (delta > 0) or removed (delta < 0) rows at editRow. An anchor
// strictly after the edit row shifts by the delta; an anchor exactly
// at the edit row stays put. Removed-region anchors clamp to the edit
// row.
func (t *Tree) ShiftRows(editRow, delta int) {
	if delta == 0 {
		return
	}
	t.walk(func(r *Range) {
		r.Start = shiftAnchor(r.Start, editRow, delta)
		r.End = shiftAnchor(r.End, editRow, delta)
	})
}

func shiftAnchor(anchor, editRow, delta int) int {
	if anchor <= editRow {
		return anchor
	}
	anchor += delta
	if anchor < editRow {
		return editRow
	}
	return anchor
}

// Roots returns the top-level ranges in start order.
func (t *Tree) Roots() []*Range {
	return t.roots
}
