package index

import "fmt"

// Selection is a contiguous region of a document. Head is the leading
// edge (where a caret would be drawn) and Tail the trailing edge. The
// region is exclusive in columns and inclusive in rows. A selection is
// oriented when Head <= Tail and singular when Head == Tail.
//
// Token carries a style tag used by zone-based coloring; it does not
// participate in equality of the covered region.
type Selection struct {
	Head  Position
	Tail  Position
	Token int
}

// NewSelection constructs a selection between two positions.
func NewSelection(head, tail Position) Selection {
	return Selection{Head: head, Tail: tail}
}

// Caret constructs a singular selection at the given position.
func Caret(p Position) Selection {
	return Selection{Head: p, Tail: p}
}

// FromContent constructs a selection whose head is at (0, 0) and whose
// tail sits at the end of the given content string, which may span
// multiple lines.
func FromContent(content string) Selection {
	rows, cols := ContentShape(content)
	return Selection{Head: Position{}, Tail: Position{Row: rows, Col: cols}}
}

// IsSingular reports whether the selection covers no extent.
func (s Selection) IsSingular() bool {
	return s.Head == s.Tail
}

// IsSingleLine reports whether head and tail share a row.
func (s Selection) IsSingleLine() bool {
	return s.Head.Row == s.Tail.Row
}

// IsOriented reports whether the head precedes or equals the tail.
func (s Selection) IsOriented() bool {
	return s.Head.AtOrBefore(s.Tail)
}

// Oriented returns a copy with head <= tail.
func (s Selection) Oriented() Selection {
	if s.IsOriented() {
		return s
	}
	return s.Swapped()
}

// Swapped returns a copy with head and tail exchanged.
func (s Selection) Swapped() Selection {
	return Selection{Head: s.Tail, Tail: s.Head, Token: s.Token}
}

// Less orders selections by their oriented head position.
func (s Selection) Less(other Selection) bool {
	a := s.Oriented()
	b := other.Oriented()
	if a.Head.Row != b.Head.Row {
		return a.Head.Row < b.Head.Row
	}
	return a.Head.Col < b.Head.Col
}

// WithToken returns a copy carrying the given style tag.
func (s Selection) WithToken(token int) Selection {
	s.Token = token
	return s
}

// IntersectsRow reports whether the given row is within the selection's
// row span.
func (s Selection) IntersectsRow(row int) bool {
	if s.IsOriented() {
		return s.Head.Row <= row && row <= s.Tail.Row
	}
	return s.Tail.Row <= row && row <= s.Head.Row
}

// Contains reports whether the position lies strictly inside the
// selection's covered region (head inclusive, tail exclusive).
func (s Selection) Contains(p Position) bool {
	a := s.Oriented()
	return a.Head.AtOrBefore(p) && p.Before(a.Tail)
}

// ColumnRangeOnRow returns the half-open column range the selection
// covers on the given row. numColumns is the length of that row; rows
// fully inside the selection cover [0, numColumns).
func (s Selection) ColumnRangeOnRow(row, numColumns int) (start, end int) {
	a := s.Oriented()
	switch {
	case row < a.Head.Row || row > a.Tail.Row:
		return 0, 0
	case row == a.Head.Row && row == a.Tail.Row:
		return a.Head.Col, a.Tail.Col
	case row == a.Head.Row:
		return a.Head.Col, numColumns
	case row == a.Tail.Row:
		return 0, a.Tail.Col
	default:
		return 0, numColumns
	}
}

// Measuring returns a copy whose tail (if oriented) is moved to account
// for the shape of the given content. When head > tail the head is
// bumped instead.
func (s Selection) Measuring(content string) Selection {
	rows, cols := ContentShape(content)
	if s.IsOriented() {
		s.Tail = advanceByShape(s.Head, rows, cols)
	} else {
		s.Head = advanceByShape(s.Tail, rows, cols)
	}
	return s
}

// StartingFrom returns a copy whose head (if oriented) is placed at the
// given position with the tail moved to keep the measure unchanged.
// When head > tail the tail is moved instead.
func (s Selection) StartingFrom(p Position) Selection {
	if s.IsOriented() {
		rows := s.Tail.Row - s.Head.Row
		cols := s.Tail.Col
		if rows == 0 {
			cols = s.Tail.Col - s.Head.Col
		}
		return Selection{Head: p, Tail: advanceByShape(p, rows, cols), Token: s.Token}
	}
	rows := s.Head.Row - s.Tail.Row
	cols := s.Head.Col
	if rows == 0 {
		cols = s.Head.Col - s.Tail.Col
	}
	return Selection{Head: advanceByShape(p, rows, cols), Tail: p, Token: s.Token}
}

// advanceByShape lands the end position of content with the given shape
// when inserted at p.
func advanceByShape(p Position, rowSpan, lastCols int) Position {
	if rowSpan == 0 {
		return Position{Row: p.Row, Col: p.Col + lastCols}
	}
	return Position{Row: p.Row + rowSpan, Col: lastCols}
}

// PullBy returns a copy repositioned to account for the disappearance
// of the given selection's covered text. Endpoints that fell inside the
// removed span collapse onto its head.
func (s Selection) PullBy(disappearing Selection) Selection {
	d := disappearing.Oriented()
	s.Head = pull(s.Head, d)
	s.Tail = pull(s.Tail, d)
	return s
}

// PushBy returns a copy repositioned to account for the appearance of
// the given selection's covered text.
func (s Selection) PushBy(appearing Selection) Selection {
	a := appearing.Oriented()
	s.Head = push(s.Head, a)
	s.Tail = push(s.Tail, a)
	return s
}

// pull adjusts a position for the removal of the oriented selection d.
func pull(p Position, d Selection) Position {
	if p.AtOrBefore(d.Head) {
		return p
	}
	if p.Before(d.Tail) {
		// Inside the removed span: collapse to its head.
		return d.Head
	}
	if p.Row == d.Tail.Row {
		// Text after the tail lands on the head's row.
		return Position{Row: d.Head.Row, Col: d.Head.Col + (p.Col - d.Tail.Col)}
	}
	return Position{Row: p.Row - (d.Tail.Row - d.Head.Row), Col: p.Col}
}

// push adjusts a position for the insertion of the oriented selection a.
// A position exactly at the insertion point moves past the new content.
func push(p Position, a Selection) Position {
	if p.Before(a.Head) {
		return p
	}
	if p.Row == a.Head.Row {
		return Position{Row: a.Tail.Row, Col: a.Tail.Col + (p.Col - a.Head.Col)}
	}
	return Position{Row: p.Row + (a.Tail.Row - a.Head.Row), Col: p.Col}
}

// String returns "(head)-(tail)" for debugging.
func (s Selection) String() string {
	if s.IsSingular() {
		return fmt.Sprintf("caret(%s)", s.Head)
	}
	return fmt.Sprintf("(%s)-(%s)", s.Head, s.Tail)
}
