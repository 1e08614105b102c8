package document

import "github.com/dshills/glyphed/internal/engine/index"

// Iterator walks the document character by character or row by row.
// It holds a position and yields the character crossed by each move.
type Iterator struct {
	doc *Document
	pos index.Position
}

// NewIterator returns an iterator anchored at p, clamped into range.
func (d *Document) NewIterator(p index.Position) *Iterator {
	return &Iterator{doc: d, pos: d.store.Clamp(p)}
}

// Position returns the iterator's current position.
func (it *Iterator) Position() index.Position { return it.pos }

// SetPosition moves the iterator to p, clamped into range.
func (it *Iterator) SetPosition(p index.Position) {
	it.pos = it.doc.store.Clamp(p)
}

// Next advances one character, returning the character crossed and
// false when already at the end sentinel.
func (it *Iterator) Next() (rune, bool) {
	if it.pos == it.doc.End() {
		return 0, false
	}
	ch := it.doc.CharacterAt(it.pos)
	if ch == '\n' {
		it.pos = index.Position{Row: it.pos.Row + 1, Col: 0}
	} else {
		it.pos.Col++
	}
	return ch, true
}

// Prev retreats one character, returning the character crossed and
// false when already at the origin.
func (it *Iterator) Prev() (rune, bool) {
	if it.pos.Row == 0 && it.pos.Col == 0 {
		return 0, false
	}
	if it.pos.Col == 0 {
		it.pos = index.Position{Row: it.pos.Row - 1, Col: it.doc.NumColumns(it.pos.Row - 1)}
	} else {
		it.pos.Col--
	}
	return it.doc.CharacterAt(it.pos), true
}

// Peek returns the character at the current position without moving.
func (it *Iterator) Peek() rune {
	return it.doc.CharacterAt(it.pos)
}

// PeekPrev returns the character a backward step would cross, or 0 at
// the origin.
func (it *Iterator) PeekPrev() rune {
	if it.pos.Row == 0 && it.pos.Col == 0 {
		return 0
	}
	if it.pos.Col == 0 {
		return '\n'
	}
	return it.doc.CharacterAt(index.Position{Row: it.pos.Row, Col: it.pos.Col - 1})
}

// NextRow moves down one visible logical row, preserving the column as
// far as the target row allows. Returns false on the last visible row.
func (it *Iterator) NextRow() bool {
	r := it.pos.Row + 1
	for r < it.doc.NumRows() && it.doc.folds.IsFolded(r) {
		r++
	}
	if r >= it.doc.NumRows() {
		return false
	}
	it.pos = index.Position{Row: r, Col: min(it.pos.Col, it.doc.NumColumns(r))}
	return true
}

// PrevRow moves up one visible logical row, preserving the column as
// far as the target row allows. Returns false on the first visible row.
func (it *Iterator) PrevRow() bool {
	r := it.pos.Row - 1
	for r >= 0 && it.doc.folds.IsFolded(r) {
		r--
	}
	if r < 0 {
		return false
	}
	it.pos = index.Position{Row: r, Col: min(it.pos.Col, it.doc.NumColumns(r))}
	return true
}
