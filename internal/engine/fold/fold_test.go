package fold

import "testing"

func TestSetRangesNestsByContainment(t *testing.T) {
	tr := NewTree()
	tr.SetRanges([]RowRange{
		{Start: 0, End: 10},
		{Start: 2, End: 5},
		{Start: 3, End: 4},
		{Start: 12, End: 14},
	})

	roots := tr.Roots()
	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(roots))
	}
	outer := roots[0]
	if outer.Start != 0 || outer.End != 10 {
		t.Fatalf("outer = %+v", outer.RowRange)
	}
	if len(outer.Children()) != 1 {
		t.Fatalf("outer children = %d, want 1", len(outer.Children()))
	}
	mid := outer.Children()[0]
	if mid.Start != 2 || mid.Parent() != outer {
		t.Errorf("mid = %+v, parent mismatch", mid.RowRange)
	}
	if len(mid.Children()) != 1 || mid.Children()[0].Start != 3 {
		t.Errorf("inner nesting broken: %+v", mid.Children())
	}
}

func TestSetRangesDropsEmptyRanges(t *testing.T) {
	tr := NewTree()
	tr.SetRanges([]RowRange{{Start: 3, End: 3}, {Start: 5, End: 4}})
	if len(tr.Roots()) != 0 {
		t.Errorf("empty ranges must be dropped, got %d roots", len(tr.Roots()))
	}
}

func TestToggleFoldAndIsFolded(t *testing.T) {
	tr := NewTree()
	tr.SetRanges([]RowRange{{Start: 1, End: 5}})

	if tr.ToggleFold(3) {
		t.Error("toggling a non-start row must be a no-op")
	}
	if !tr.ToggleFold(1) {
		t.Fatal("toggling a start row must succeed")
	}

	// Strictly-inside rows hide; the start row and the end row stay
	// visible.
	tests := []struct {
		row  int
		want bool
	}{
		{0, false}, {1, false}, {2, true}, {4, true}, {5, false},
	}
	for _, tt := range tests {
		if got := tr.IsFolded(tt.row); got != tt.want {
			t.Errorf("IsFolded(%d) = %v, want %v", tt.row, got, tt.want)
		}
	}

	tr.ToggleFold(1)
	if tr.IsFolded(2) {
		t.Error("unfolding must unhide rows")
	}
}

func TestFoldedParentHidesNestedStart(t *testing.T) {
	tr := NewTree()
	tr.SetRanges([]RowRange{{Start: 0, End: 10}, {Start: 2, End: 5}})
	tr.ToggleFold(0)
	if !tr.IsFolded(2) {
		t.Error("nested start inside a folded parent must hide")
	}
}

func TestLineType(t *testing.T) {
	tr := NewTree()
	tr.SetRanges([]RowRange{{Start: 1, End: 5}, {Start: 7, End: 9}})
	tr.ToggleFold(7)

	tests := []struct {
		row  int
		want LineType
	}{
		{0, LineNone},
		{1, LineRangeStartOpen},
		{2, LineBetween},
		{4, LineRangeEnd},
		{7, LineRangeStartClosed},
		{8, LineFolded},
	}
	for _, tt := range tests {
		if got := tr.LineType(tt.row); got != tt.want {
			t.Errorf("LineType(%d) = %v, want %v", tt.row, got, tt.want)
		}
	}
}

func TestSetRangesPreservesFoldedState(t *testing.T) {
	tr := NewTree()
	tr.SetRanges([]RowRange{{Start: 2, End: 6}})
	tr.ToggleFold(2)

	// Rebuild with the same start row and a different end.
	tr.SetRanges([]RowRange{{Start: 2, End: 8}})
	if !tr.Roots()[0].Folded() {
		t.Error("fold state must survive a rebuild with a matching start")
	}

	// A rebuild without that start forgets it.
	tr.SetRanges([]RowRange{{Start: 4, End: 8}})
	if tr.Roots()[0].Folded() {
		t.Error("fold state must not leak to a different range")
	}
}

func TestShiftRows(t *testing.T) {
	tests := []struct {
		name      string
		editRow   int
		delta     int
		wantStart int
		wantEnd   int
	}{
		{"insert above shifts down", 1, 2, 4, 9},
		{"insert at start row stays", 2, 1, 2, 8},
		{"insert below stays", 8, 3, 2, 7},
		{"remove above shifts up", 0, -1, 1, 6},
		{"remove clamps into edit row", 1, -4, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTree()
			tr.SetRanges([]RowRange{{Start: 2, End: 7}})
			tr.ShiftRows(tt.editRow, tt.delta)
			r := tr.Roots()[0]
			if r.Start != tt.wantStart || r.End != tt.wantEnd {
				t.Errorf("range = [%d,%d), want [%d,%d)", r.Start, r.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestShiftRowsKeepsFoldAlignment(t *testing.T) {
	// Inserting a row above a folded region moves the whole region but
	// keeps it folded over the same lines.
	tr := NewTree()
	tr.SetRanges([]RowRange{{Start: 2, End: 7}})
	tr.ToggleFold(2)

	tr.ShiftRows(0, 1)
	if tr.IsFolded(3) {
		t.Error("new start row must be visible")
	}
	if !tr.IsFolded(4) || !tr.IsFolded(7) {
		t.Error("shifted interior rows must stay hidden")
	}
	if tr.IsFolded(2) {
		t.Error("rows above the shifted range must be visible")
	}
}

type recordingListener struct {
	changed int
	rebuilt int
}

func (l *recordingListener) FoldStateChanged(*Range) { l.changed++ }
func (l *recordingListener) RootWasRebuilt()         { l.rebuilt++ }

func TestListeners(t *testing.T) {
	tr := NewTree()
	l := &recordingListener{}
	tr.AddListener(l)
	tr.AddListener(l) // duplicate registration is a no-op

	tr.SetRanges([]RowRange{{Start: 0, End: 3}})
	tr.ToggleFold(0)
	if l.rebuilt != 1 || l.changed != 1 {
		t.Errorf("listener counts = rebuilt %d changed %d", l.rebuilt, l.changed)
	}

	tr.RemoveListener(l)
	tr.ToggleFold(0)
	if l.changed != 1 {
		t.Error("removed listener must not fire")
	}
}
