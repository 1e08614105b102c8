package glyph

import (
	"hash/fnv"

	"github.com/dshills/glyphed/internal/engine/index"
)

// OutOfBoundsMode selects the policy PositionInLine applies to a
// column beyond the laid-out characters.
type OutOfBoundsMode int

const (
	// ReturnLastCharacter yields the position of the last character on
	// the last visual row.
	ReturnLastCharacter OutOfBoundsMode = iota
	// ReturnBeyondLastCharacter yields the slot one past the last
	// character, rounding to the next tab stop after a trailing tab.
	ReturnBeyondLastCharacter
	// ReturnNextLine yields column 0 of the visual row after the last.
	ReturnNextLine
	// AssertFalse marks call sites that never expect an out-of-range
	// column; such a query yields the zero position.
	AssertFalse
)

// Unlimited disables soft wrapping when used as a wrap width.
const Unlimited = -1

// Key is the content-addressed identity of an entry: the line's
// content hash paired with the wrap width it was laid out under.
type Key struct {
	Hash      uint64
	WrapWidth int
}

// MakeKey computes the cache key for a line under a wrap width.
func MakeKey(text string, wrapWidth int) Key {
	h := fnv.New64a()
	length := uint64(len(text))
	h.Write([]byte{
		byte(length), byte(length >> 8), byte(length >> 16), byte(length >> 24),
		byte(length >> 32), byte(length >> 40), byte(length >> 48), byte(length >> 56),
	})
	h.Write([]byte(text))
	return Key{Hash: h.Sum64(), WrapWidth: wrapWidth}
}

// Glyph is one laid-out character cell, with bounds relative to the
// line's top-left corner.
type Glyph struct {
	Col    int // character index within the logical line
	Rune   rune
	Token  int
	Bounds index.Rect
}

// Entry holds the memoized layout of a single logical line.
type Entry struct {
	text  string
	runes []rune
	key   Key

	font      FontMetrics
	wrapWidth int // visual columns, Unlimited for none

	// positions[i] is the (visual row, visual column) of character i.
	positions []index.Position
	// colsPerRow[v] is the visual column extent of visual row v,
	// including tab expansion.
	colsPerRow []int
	tokens     []int
	height     float64
}

// NewEntry lays out a line under the given wrap width and font.
func NewEntry(text string, wrapWidth int, font FontMetrics) *Entry {
	e := &Entry{
		text:      text,
		runes:     []rune(text),
		key:       MakeKey(text, wrapWidth),
		font:      font,
		wrapWidth: wrapWidth,
	}
	e.layout()
	return e
}

func (e *Entry) layout() {
	e.positions = make([]index.Position, len(e.runes))
	e.tokens = make([]int, len(e.runes))
	e.colsPerRow = e.colsPerRow[:0]

	vrow, vcol := 0, 0
	for i, r := range e.runes {
		if e.wrapWidth > 0 && vcol >= e.wrapWidth {
			e.colsPerRow = append(e.colsPerRow, vcol)
			vrow++
			vcol = 0
		}
		e.positions[i] = index.Position{Row: vrow, Col: vcol}
		if r == '\t' {
			vcol = RoundToTab(vcol)
		} else {
			vcol++
		}
	}
	e.colsPerRow = append(e.colsPerRow, vcol)
	e.height = float64(len(e.colsPerRow)) * e.font.Height
}

// Key returns the entry's content-addressed identity.
func (e *Entry) Key() Key { return e.key }

// Text returns the source string the entry was laid out from.
func (e *Entry) Text() string { return e.text }

// Len returns the character count of the line.
func (e *Entry) Len() int { return len(e.runes) }

// VisualRows returns the number of visual rows the line occupies.
func (e *Entry) VisualRows() int { return len(e.colsPerRow) }

// ColsOnVisualRow returns the visual column extent of visual row v.
func (e *Entry) ColsOnVisualRow(v int) int {
	if v < 0 || v >= len(e.colsPerRow) {
		return 0
	}
	return e.colsPerRow[v]
}

// Height returns the line's total height: font height times the visual
// row count.
func (e *Entry) Height() float64 { return e.height }

// MaxCols returns the widest visual column extent across the line's
// visual rows.
func (e *Entry) MaxCols() int {
	m := 0
	for _, c := range e.colsPerRow {
		if c > m {
			m = c
		}
	}
	return m
}

// PositionInLine maps a character column to its (visual row, visual
// column) after soft wrapping. mode selects the out-of-range policy.
func (e *Entry) PositionInLine(col int, mode OutOfBoundsMode) index.Position {
	if col >= 0 && col < len(e.positions) {
		return e.positions[col]
	}

	switch mode {
	case ReturnLastCharacter:
		l := len(e.colsPerRow) - 1
		c := e.colsPerRow[l] - 1
		if c < 0 {
			c = 0
		}
		return index.Position{Row: l, Col: c}

	case ReturnNextLine:
		return index.Position{Row: len(e.colsPerRow), Col: 0}

	case ReturnBeyondLastCharacter:
		l := len(e.colsPerRow) - 1
		c := e.colsPerRow[l]
		if n := len(e.runes); n > 0 && col > 0 && col-1 < n && e.runes[n-1] == '\t' {
			c = RoundToTab(c)
		}
		return index.Position{Row: l, Col: c}

	default: // AssertFalse
		return index.Position{}
	}
}

// Token returns the token tag of the character at col, or def when the
// column is out of range.
func (e *Entry) Token(col, def int) int {
	if col < 0 || col >= len(e.tokens) {
		return def
	}
	return e.tokens[col]
}

// ClearTokens resets every tag to 0.
func (e *Entry) ClearTokens() {
	for i := range e.tokens {
		e.tokens[i] = 0
	}
}

// ApplyZone sets the zone's token tag on every column the zone covers
// on the given logical row.
func (e *Entry) ApplyZone(row int, zone index.Selection) {
	start, end := zone.ColumnRangeOnRow(row, len(e.tokens))
	if start < 0 {
		start = 0
	}
	if end > len(e.tokens) {
		end = len(e.tokens)
	}
	for i := start; i < end; i++ {
		e.tokens[i] = zone.Token
	}
}

// CellBounds returns the pixel rectangle of the character at col,
// relative to the line's top-left corner. Tabs span to their stop.
func (e *Entry) CellBounds(col int, mode OutOfBoundsMode) index.Rect {
	p := e.PositionInLine(col, mode)
	w := e.font.CharWidth
	if col >= 0 && col < len(e.runes) && e.runes[col] == '\t' {
		w = float64(RoundToTab(p.Col)-p.Col) * e.font.CharWidth
	}
	return index.Rect{
		X: float64(p.Col) * e.font.CharWidth,
		Y: float64(p.Row) * e.font.Height,
		W: w,
		H: e.font.Height,
	}
}

// Glyphs returns the laid-out glyphs of the line, relative to the
// line's top-left corner. tokenFilter restricts the result to glyphs
// whose tag equals the filter; pass a negative filter for all glyphs.
// withTrailingSpace appends the imaginary whitespace cell that follows
// the final character on the last visual row.
func (e *Entry) Glyphs(tokenFilter int, withTrailingSpace bool) []Glyph {
	out := make([]Glyph, 0, len(e.runes)+1)
	for i, r := range e.runes {
		if tokenFilter >= 0 && e.tokens[i] != tokenFilter {
			continue
		}
		out = append(out, Glyph{
			Col:    i,
			Rune:   r,
			Token:  e.tokens[i],
			Bounds: e.CellBounds(i, AssertFalse),
		})
	}
	if withTrailingSpace && (tokenFilter < 0 || tokenFilter == 0) {
		out = append(out, Glyph{
			Col:    len(e.runes),
			Rune:   ' ',
			Bounds: e.CellBounds(len(e.runes), ReturnBeyondLastCharacter),
		})
	}
	return out
}

// Underlines returns one horizontal segment per visual row covered by
// the half-open column range, relative to the line's top-left corner.
// An empty line yields a half-cell stub when treatAsWordIfEmpty is set.
func (e *Entry) Underlines(startCol, endCol int, treatAsWordIfEmpty bool) []index.Segment {
	if len(e.runes) == 0 {
		if !treatAsWordIfEmpty {
			return nil
		}
		return []index.Segment{{X0: 0, Y0: 0, X1: e.font.CharWidth / 2, Y1: 0}}
	}

	type span struct {
		used bool
		l, r float64
		y    float64
	}
	rows := make([]span, len(e.colsPerRow))

	if startCol < 0 {
		startCol = 0
	}
	for i := startCol; i < endCol; i++ {
		p := e.PositionInLine(i, ReturnLastCharacter)
		b := e.CellBounds(i, ReturnLastCharacter)
		s := &rows[p.Row]
		if !s.used {
			s.used = true
			s.l = b.X
			s.r = b.Right()
			s.y = b.Y
			continue
		}
		if b.X < s.l {
			s.l = b.X
		}
		if b.Right() > s.r {
			s.r = b.Right()
		}
	}

	var out []index.Segment
	for _, s := range rows {
		if s.used {
			out = append(out, index.Segment{X0: s.l, Y0: s.y, X1: s.r, Y1: s.y})
		}
	}
	return out
}
