package document

import (
	"errors"

	"github.com/dshills/glyphed/internal/engine/fold"
	"github.com/dshills/glyphed/internal/engine/glyph"
	"github.com/dshills/glyphed/internal/engine/index"
	"github.com/dshills/glyphed/internal/engine/linestore"
	"github.com/dshills/glyphed/internal/event"
)

// Errors returned by document operations.
var (
	// ErrInvalidTransaction indicates a transaction whose selection
	// endpoints reference positions outside the document.
	ErrInvalidTransaction = errors.New("transaction selection out of range")
)

// textIndent is the left margin applied to all glyph geometry.
const textIndent = 4.0

// Metric selects a vertical reference line within a row.
type Metric int

const (
	MetricTop Metric = iota
	MetricAscent
	MetricBaseline
	MetricBottom
)

// Document is the editor's document model.
type Document struct {
	store  *linestore.Store
	glyphs *glyph.Cache
	folds  *fold.Tree
	bus    *event.Bus

	lineSpacing float64

	selections []index.Selection

	rowPositions []float64
	cachedBounds index.Rect
	boundsValid  bool
}

// New creates a document with the given content and font metrics.
func New(content string, font glyph.FontMetrics, bus *event.Bus) *Document {
	d := &Document{
		store:       linestore.FromString(content),
		glyphs:      glyph.NewCache(font),
		folds:       fold.NewTree(),
		bus:         bus,
		lineSpacing: 1.0,
	}
	d.glyphs.Reset(d.store.NumRows())
	d.RebuildRowPositions()
	return d
}

// Store returns the underlying line store (read-only use).
func (d *Document) Store() *linestore.Store { return d.store }

// Glyphs returns the glyph cache.
func (d *Document) Glyphs() *glyph.Cache { return d.glyphs }

// Folds returns the fold tree.
func (d *Document) Folds() *fold.Tree { return d.folds }

// Bus returns the observer bus, which may be nil.
func (d *Document) Bus() *event.Bus { return d.bus }

// Font returns the current font metrics.
func (d *Document) Font() glyph.FontMetrics { return d.glyphs.Font() }

// SetFont replaces the font metrics, invalidating every glyph entry.
func (d *Document) SetFont(font glyph.FontMetrics) {
	d.glyphs.SetFont(font)
	d.Invalidate(0, d.store.NumRows())
}

// LineSpacing returns the row spacing multiplier.
func (d *Document) LineSpacing() float64 { return d.lineSpacing }

// SetLineSpacing sets the row spacing multiplier (>= 1.0).
func (d *Document) SetLineSpacing(spacing float64) {
	if spacing < 1.0 {
		spacing = 1.0
	}
	d.lineSpacing = spacing
	d.Invalidate(0, d.store.NumRows())
}

// SetWrapWidth enables soft wrap at the given pixel width, or disables
// it when width <= 0.
func (d *Document) SetWrapWidth(pixels float64) {
	cols := glyph.Unlimited
	if pixels > 0 {
		cols = int((pixels - textIndent) / d.Font().CharWidth)
		if cols < 1 {
			cols = 1
		}
	}
	if cols == d.glyphs.WrapWidth() {
		return
	}
	d.glyphs.SetWrapWidth(cols)
	d.Invalidate(0, d.store.NumRows())
}

// NumRows returns the number of logical rows.
func (d *Document) NumRows() int { return d.store.NumRows() }

// NumColumns returns the character count of row r.
func (d *Document) NumColumns(r int) int { return d.store.NumColumns(r) }

// Line returns the text of row r.
func (d *Document) Line(r int) string { return d.store.Line(r) }

// End returns the one-past-the-end sentinel position.
func (d *Document) End() index.Position { return d.store.End() }

// CharacterAt returns the character at p; line ends and the end
// sentinel read as '\n'.
func (d *Document) CharacterAt(p index.Position) rune { return d.store.CharacterAt(p) }

// ReplaceAll replaces the whole content, clearing layout state. The
// selection set is preserved only as far as it stays in range.
func (d *Document) ReplaceAll(content string) {
	d.store.ReplaceAll(content)
	d.glyphs.Reset(d.store.NumRows())
	for i, s := range d.selections {
		d.selections[i] = index.Selection{
			Head:  d.store.Clamp(s.Head),
			Tail:  d.store.Clamp(s.Tail),
			Token: s.Token,
		}
	}
	d.Invalidate(0, d.store.NumRows())
	d.publishLayout(0, d.store.NumRows())
}

// Selections returns the active selection set.
func (d *Document) Selections() []index.Selection { return d.selections }

// NumSelections returns the number of active selections.
func (d *Document) NumSelections() int { return len(d.selections) }

// Selection returns the selection at i.
func (d *Document) Selection(i int) index.Selection { return d.selections[i] }

// SetSelections replaces the selection set.
func (d *Document) SetSelections(sels []index.Selection) {
	d.selections = sels
	d.publishSelection()
}

// SetSelection replaces the selection at index i, which must be in
// range.
func (d *Document) SetSelection(i int, s index.Selection) {
	d.selections[i] = s
	d.publishSelection()
}

// AddSelection appends a selection to the set.
func (d *Document) AddSelection(s index.Selection) {
	d.selections = append(d.selections, s)
	d.publishSelection()
}

// ClearSelections drops every selection.
func (d *Document) ClearSelections() {
	d.selections = nil
	d.publishSelection()
}

// SelectionContent returns the text the selection covers, with '\n'
// separators for cross-line spans.
func (d *Document) SelectionContent(s index.Selection) string {
	o := s.Oriented()
	return d.store.TextBetween(o.Head, o.Tail)
}

// entry returns the validated glyph entry for row r, or nil when r is
// out of range.
func (d *Document) entry(r int) *glyph.Entry {
	if r < 0 || r >= d.store.NumRows() {
		return nil
	}
	return d.glyphs.EnsureValid(r, d.store.Line(r))
}

// RowHeight returns the nominal height of a single-visual-row line,
// including spacing.
func (d *Document) RowHeight() float64 {
	return d.Font().Height * d.lineSpacing
}

// spacingGap returns the vertical padding the line spacing multiplier
// adds above each row.
func (d *Document) spacingGap() float64 {
	return d.Font().Height * (d.lineSpacing - 1.0) * 0.5
}

// Invalidate drops glyph entries for rows [startRow, endRowExcl),
// clears the cached bounds, and recomputes row vertical positions.
func (d *Document) Invalidate(startRow, endRowExcl int) {
	d.glyphs.Invalidate(startRow, endRowExcl)
	d.boundsValid = false
	d.RebuildRowPositions()
}

// RebuildRowPositions recomputes the y position of every row by
// summing preceding entries' heights plus the spacing gap. Hidden rows
// contribute no height.
func (d *Document) RebuildRowPositions() {
	d.boundsValid = false
	n := d.store.NumRows()
	if cap(d.rowPositions) < n+1 {
		d.rowPositions = make([]float64, 0, n+1)
	}
	d.rowPositions = d.rowPositions[:0]

	y := 0.0
	gap := d.spacingGap()
	for r := 0; r < n; r++ {
		d.rowPositions = append(d.rowPositions, y)
		if d.folds.IsFolded(r) {
			continue
		}
		if e := d.entry(r); e != nil {
			y += e.Height() + gap
		}
	}
	// Sentinel: y position one past the last row.
	d.rowPositions = append(d.rowPositions, y)
}

// VerticalPosition returns the y coordinate of the given metric on row
// r. Out-of-range rows clamp to the document's vertical extent.
func (d *Document) VerticalPosition(r int, m Metric) float64 {
	if len(d.rowPositions) == 0 {
		return 0
	}
	if r < 0 {
		r = 0
	}
	if r >= len(d.rowPositions) {
		r = len(d.rowPositions) - 1
	}
	pos := d.rowPositions[r]
	gap := d.spacingGap()

	lineHeight := d.Font().Height + gap
	if e := d.entry(r); e != nil {
		lineHeight = e.Height() + gap
	}

	switch m {
	case MetricTop:
		return pos
	case MetricAscent:
		return pos + gap
	case MetricBaseline:
		return pos + gap + d.Font().Ascent
	default: // MetricBottom
		return pos + lineHeight
	}
}

// VisualRowsForRow returns how many visual rows logical row r occupies
// under the current wrap width.
func (d *Document) VisualRowsForRow(r int) int {
	if e := d.entry(r); e != nil {
		return e.VisualRows()
	}
	return 1
}

func (d *Document) publishSelection() {
	if d.bus != nil {
		d.bus.Publish(event.TopicSelection, d.selections)
	}
}

func (d *Document) publishLayout(startRow, endRowExcl int) {
	if d.bus != nil {
		d.bus.Publish(event.TopicLayout, event.LayoutChange{StartRow: startRow, EndRow: endRowExcl})
	}
}
