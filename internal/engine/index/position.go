package index

import (
	"fmt"
	"strings"
)

// Position is a logical location in a document: a zero-based row and a
// zero-based column within that row. The column may equal the line
// length, denoting the slot just past the last character.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for constructing a Position.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Before reports whether p precedes other in lexicographic order.
func (p Position) Before(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// After reports whether p follows other in lexicographic order.
func (p Position) After(other Position) bool {
	return other.Before(p)
}

// AtOrBefore reports whether p precedes or equals other.
func (p Position) AtOrBefore(other Position) bool {
	return !other.Before(p)
}

// AtOrAfter reports whether p follows or equals other.
func (p Position) AtOrAfter(other Position) bool {
	return !p.Before(other)
}

// Translated returns a copy shifted by the given row and column deltas.
func (p Position) Translated(rows, cols int) Position {
	return Position{Row: p.Row + rows, Col: p.Col + cols}
}

// String returns "row:col" for debugging.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// ContentShape measures a content string the way a document stores it:
// the number of row steps it spans (count of newlines) and the column
// count of its trailing line, both in characters.
func ContentShape(content string) (rowSpan, lastCols int) {
	last := strings.LastIndexByte(content, '\n')
	if last < 0 {
		return 0, len([]rune(content))
	}
	return strings.Count(content, "\n"), len([]rune(content[last+1:]))
}
