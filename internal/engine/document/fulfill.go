package document

import (
	"math"
	"strings"

	"github.com/dshills/glyphed/internal/engine/index"
)

// Special trailing characters a transaction's content may carry.
const (
	// DeletePrevChar marks a backspace: with a singular selection the
	// head moves one step backward before the (emptied) content lands.
	DeletePrevChar = '\b'
	// DeleteNextChar marks a forward delete: with a singular selection
	// the tail moves one step forward instead.
	DeleteNextChar = rune(0x7F)
)

// TxDirection records which way a transaction travels through the
// undo history.
type TxDirection int

const (
	TxForward TxDirection = iota
	TxReverse
)

// Transaction describes one atomic replacement: the text covered by
// Selection is exchanged for Content. Fulfill returns the reciprocal
// transaction that restores the previous state.
type Transaction struct {
	Selection    index.Selection
	Content      string
	AffectedArea index.Rect
	Direction    TxDirection
}

// accountingForSpecialCharacters rewrites a transaction whose content
// ends in a delete marker into a plain replacement.
func (d *Document) accountingForSpecialCharacters(tx Transaction) Transaction {
	runes := []rune(tx.Content)
	if len(runes) == 0 {
		return tx
	}
	switch runes[len(runes)-1] {
	case DeletePrevChar:
		if tx.Selection.IsSingular() {
			tx.Selection.Head = d.Navigate(tx.Selection.Head, TargetCharacter, BackwardCol)
		}
		tx.Content = ""
	case DeleteNextChar:
		if tx.Selection.IsSingular() {
			tx.Selection.Tail = d.Navigate(tx.Selection.Tail, TargetCharacter, ForwardCol)
		}
		tx.Content = ""
	}
	return tx
}

// Fulfill atomically applies tx and returns the reciprocal
// transaction. An out-of-range selection yields ErrInvalidTransaction
// with no state change.
func (d *Document) Fulfill(tx Transaction) (Transaction, error) {
	if !d.store.InRange(tx.Selection.Head) || !d.store.InRange(tx.Selection.Tail) {
		return Transaction{}, ErrInvalidTransaction
	}

	d.boundsValid = false

	t := d.accountingForSpecialCharacters(tx)
	s := t.Selection.Oriented()

	maxStart := index.Position{Row: s.Head.Row, Col: 0}
	maxEnd := index.Position{Row: s.Tail.Row, Col: d.store.NumColumns(s.Tail.Row)}
	l := []rune(d.store.TextBetween(maxStart, maxEnd))

	i := s.Head.Col
	j := lastIndexOfNewline(l) + s.Tail.Col + 1

	m := string(l[:i]) + t.Content + string(l[j:])

	appearing := index.FromContent(t.Content).StartingFrom(s.Head)
	for k, existing := range d.selections {
		moved := existing.PullBy(s)
		moved = moved.PushBy(appearing)
		d.selections[k] = moved
	}

	oldRows := s.Tail.Row - s.Head.Row + 1
	newLines := strings.Split(m, "\n")
	if err := d.store.Splice(s.Head.Row, s.Tail.Row, newLines); err != nil {
		return Transaction{}, err
	}

	rowDelta := len(newLines) - oldRows
	if rowDelta != 0 {
		d.folds.ShiftRows(s.Head.Row, rowDelta)
	}

	d.glyphs.SpliceRows(s.Head.Row, s.Tail.Row, len(newLines))
	d.RebuildRowPositions()

	d.publishLayout(s.Head.Row, s.Head.Row+len(newLines))
	d.publishSelection()

	r := Transaction{
		Selection:    appearing,
		Content:      string(l[i:j]),
		AffectedArea: index.Rect{W: math.MaxFloat32, H: math.MaxFloat32},
		Direction:    TxForward,
	}
	if t.Direction == TxForward {
		r.Direction = TxReverse
	}
	return r, nil
}

func lastIndexOfNewline(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}

// ClearTokens resets glyph token tags for the half-open row range,
// building any entry not laid out yet.
func (d *Document) ClearTokens(startRow, endRowExcl int) {
	for r := startRow; r < endRowExcl; r++ {
		if d.entry(r) != nil {
			d.glyphs.ClearTokens(r)
		}
	}
}

// ApplyTokens stamps every zone intersecting the half-open row range
// onto the glyph entries.
func (d *Document) ApplyTokens(startRow, endRowExcl int, zones []index.Selection) {
	for r := startRow; r < endRowExcl; r++ {
		if d.entry(r) == nil {
			continue
		}
		for _, zone := range zones {
			if zone.IntersectsRow(r) {
				d.glyphs.ApplyTokens(r, zone)
			}
		}
	}
}
