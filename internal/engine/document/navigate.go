package document

import (
	"strings"
	"unicode"

	"github.com/dshills/glyphed/internal/engine/index"
)

// Target selects the unit a navigation step moves by.
type Target int

const (
	TargetWhitespace Target = iota
	TargetPunctuation
	TargetCharacter
	TargetSubword
	TargetCppToken
	TargetSubwordWithPoint
	TargetWord
	TargetFirstNonWhitespace
	TargetToken
	TargetLine
	TargetParagraph
	TargetScope
	TargetDocument
)

// Direction selects the axis and sense of a navigation step.
type Direction int

const (
	ForwardCol Direction = iota
	BackwardCol
	ForwardRow
	BackwardRow
)

// Part selects which end of a selection a navigation applies to.
type Part int

const (
	PartHead Part = iota
	PartTail
	PartBoth
)

const punctuationChars = "{}<>()[],.;:"

func isSubwordChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

// Navigate moves p by one target unit in the given direction and
// returns the resulting position.
func (d *Document) Navigate(p index.Position, target Target, direction Direction) index.Position {
	it := d.NewIterator(p)

	// advance takes one directional step; get peeks at the character
	// that step would cross.
	var advance func() bool
	var get func() rune

	switch direction {
	case ForwardRow:
		advance = it.NextRow
		get = it.Peek
	case BackwardRow:
		advance = it.PrevRow
		get = it.PeekPrev
	case ForwardCol:
		advance = func() bool { _, ok := it.Next(); return ok }
		get = it.Peek
	default: // BackwardCol
		advance = func() bool { _, ok := it.Prev(); return ok }
		get = it.PeekPrev
	}

	switch target {
	case TargetWhitespace:
		for !unicode.IsSpace(get()) && advance() {
		}
	case TargetPunctuation:
		for !strings.ContainsRune(punctuationChars, get()) && advance() {
		}
	case TargetCharacter:
		advance()
	case TargetFirstNonWhitespace:
		d.navigateFirstNonWhitespace(it)
	case TargetSubword:
		for isSubwordChar(get()) && advance() {
		}
	case TargetSubwordWithPoint:
		for (isSubwordChar(get()) || get() == '.') && advance() {
		}
	case TargetWord:
		for unicode.IsSpace(get()) && advance() {
		}
	case TargetCppToken:
		d.navigateCppToken(it, advance, get)
	case TargetToken:
		d.navigateToken(it, advance)
	case TargetLine:
		for get() != '\n' && advance() {
		}
	case TargetParagraph:
		for d.NumColumns(it.pos.Row) > 0 && advance() {
		}
	case TargetScope:
		navigateScope(direction, advance, get)
	case TargetDocument:
		for advance() {
		}
	}
	return it.Position()
}

// navigateFirstNonWhitespace walks back to the start of the caret's
// line, then forward over leading whitespace when the line has any
// content at all.
func (d *Document) navigateFirstNonWhitespace(it *Iterator) {
	row := it.pos.Row
	it.SetPosition(index.Position{Row: row, Col: 0})
	sawContent := false
	for _, ch := range d.Line(row) {
		if !unicode.IsSpace(ch) {
			sawContent = true
			break
		}
	}
	if !sawContent {
		return
	}
	for unicode.IsSpace(it.Peek()) {
		if _, ok := it.Next(); !ok {
			return
		}
	}
}

// navigateToken advances while the glyph token tag stays unchanged,
// skipping empty rows without a tag of their own.
func (d *Document) navigateToken(it *Iterator, advance func() bool) {
	tag := d.tokenAt(it.pos, -1)
	cur := tag
	for cur == tag {
		if !advance() {
			return
		}
		if d.NumColumns(it.pos.Row) > 0 {
			cur = d.tokenAt(it.pos, tag)
		}
	}
}

func (d *Document) tokenAt(p index.Position, def int) int {
	e := d.entry(p.Row)
	if e == nil {
		return def
	}
	return e.Token(p.Col, def)
}

// navigateCppToken hops over one C-family expression element,
// skipping balanced parens, brackets and angle groups as a unit.
func (d *Document) navigateCppToken(it *Iterator, advance func() bool, get func() rune) {
	skipBetween := func(open rune) {
		for advance() {
			c := get()
			if c == '\n' || c == ';' || c == open {
				return
			}
		}
	}
	for {
		switch get() {
		case ')':
			skipBetween('(')
		case ']':
			skipBetween('[')
		case '>':
			skipBetween('<')
		case ':':
			// Only a scope operator's double colon is crossed.
			before := index.Position{Row: it.pos.Row, Col: it.pos.Col - 1}
			if it.pos.Col < 1 || d.CharacterAt(before) != ':' {
				return
			}
			advance()
		case '(', '?', ' ', '+', '-', ';', '\n', '\t', '=', ',', '}', '<', '{':
			return
		}
		if !advance() {
			return
		}
	}
}

// navigateScope walks to the enclosing bracket boundary: the first
// closer (forward) or opener (backward) not balanced by a matching
// bracket crossed along the way.
func navigateScope(direction Direction, advance func() bool, get func() rune) {
	opens := "([{"
	closes := ")]}"
	if direction == BackwardCol || direction == BackwardRow {
		opens, closes = closes, opens
	}
	depth := 0
	for {
		c := get()
		if strings.ContainsRune(opens, c) {
			depth++
		} else if strings.ContainsRune(closes, c) {
			if depth == 0 {
				return
			}
			depth--
		}
		if !advance() {
			return
		}
	}
}

// NavigateSelections applies a navigation step to the chosen part of
// every active selection.
func (d *Document) NavigateSelections(target Target, direction Direction, part Part) {
	for i, s := range d.selections {
		switch part {
		case PartHead:
			s.Head = d.Navigate(s.Head, target, direction)
		case PartTail:
			s.Tail = d.Navigate(s.Tail, target, direction)
		default:
			s.Head = d.Navigate(s.Head, target, direction)
			s.Tail = s.Head
		}
		d.selections[i] = s
	}
	d.publishSelection()
}
