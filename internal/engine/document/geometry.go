package document

import (
	"github.com/dshills/glyphed/internal/engine/glyph"
	"github.com/dshills/glyphed/internal/engine/index"
)

// RowData describes one row intersecting a query area.
type RowData struct {
	RowNumber     int
	IsRowSelected bool
	Bounds        []index.Rect
}

// Bounds returns the document's pixel bounding box, recomputing it
// lazily after edits.
func (d *Document) Bounds() index.Rect {
	if d.boundsValid {
		return d.cachedBounds
	}
	maxCols := 0
	for r := 0; r < d.NumRows(); r++ {
		if e := d.entry(r); e != nil {
			if c := e.MaxCols(); c > maxCols {
				maxCols = c
			}
		}
	}
	right := float64(maxCols)*d.Font().CharWidth + textIndent
	// The row-position sentinel is the accumulated visible height, so
	// folded rows do not inflate the box.
	bottom := 0.0
	if n := len(d.rowPositions); n > 0 {
		bottom = d.rowPositions[n-1]
	}
	d.cachedBounds = index.NewRect(0, 0, right, bottom)
	d.boundsValid = true
	return d.cachedBounds
}

// BoundsOnRow returns the consolidated pixel rectangles of the
// half-open column range on the given row, in document coordinates.
func (d *Document) BoundsOnRow(row, startCol, endColExcl int, mode glyph.OutOfBoundsMode) []index.Rect {
	e := d.entry(row)
	if e == nil {
		return nil
	}
	if startCol < 0 {
		startCol = 0
	}

	yPos := d.VerticalPosition(row, MetricTop)
	gap := d.spacingGap() * 2

	rects := make([]index.Rect, 0, endColExcl-startCol)
	lastVisual := e.VisualRows() - 1
	for c := startCol; c < endColExcl; c++ {
		p := e.PositionInLine(c, mode)
		b := e.CellBounds(c, mode).Translated(textIndent, yPos)
		if p.Row == lastVisual {
			b = b.WithHeight(b.H + gap)
		}
		rects = append(rects, b)
	}
	return index.ConsolidateRects(rects)
}

// GlyphBounds returns the pixel rectangle of the character at p,
// clamped into range.
func (d *Document) GlyphBounds(p index.Position, mode glyph.OutOfBoundsMode) index.Rect {
	p = d.store.Clamp(p)
	b := d.BoundsOnRow(p.Row, p.Col, p.Col+1, mode)
	if len(b) == 0 {
		return index.Rect{}
	}
	return b[0]
}

// PositionOnScreen returns the pixel location of p at the given
// vertical metric.
func (d *Document) PositionOnScreen(p index.Position, m Metric) index.Point {
	b := d.GlyphBounds(p, glyph.ReturnBeyondLastCharacter)
	return index.Point{X: b.X, Y: d.VerticalPosition(p.Row, m)}
}

// GlyphsForRow returns the row's glyphs translated into document
// coordinates. A negative token selects every glyph.
func (d *Document) GlyphsForRow(row, token int, withTrailingSpace bool) []glyph.Glyph {
	e := d.entry(row)
	if e == nil {
		return nil
	}
	yPos := d.VerticalPosition(row, MetricTop)
	out := e.Glyphs(token, withTrailingSpace)
	for i := range out {
		out[i].Bounds = out[i].Bounds.Translated(textIndent, yPos)
	}
	return out
}

// FindGlyphsIntersecting returns the glyphs of every visible row whose
// vertical span intersects area.
func (d *Document) FindGlyphsIntersecting(area index.Rect, token int) []glyph.Glyph {
	first, last := d.RangeOfRowsIntersecting(area)
	var out []glyph.Glyph
	for r := first; r < last; r++ {
		if d.folds.IsFolded(r) {
			continue
		}
		out = append(out, d.GlyphsForRow(r, token, false)...)
	}
	return out
}

// RangeOfRowsIntersecting returns the half-open row range whose y
// positions fall within area, padded by one row height on both sides.
// An area touching no row yields the empty range [0, 0).
func (d *Document) RangeOfRowsIntersecting(area index.Rect) (first, lastExcl int) {
	n := d.NumRows()
	if n == 0 || len(d.rowPositions) == 0 {
		return 0, 0
	}
	top := area.Y - d.RowHeight()
	bottom := area.Bottom() + d.RowHeight()

	// rowPositions carries a sentinel one past the last row; only real
	// rows participate.
	lo, hi := -1, -1
	for r := 0; r < n && r < len(d.rowPositions); r++ {
		y := d.rowPositions[r]
		if y >= top && y <= bottom {
			if lo < 0 {
				lo = r
			}
			hi = r
		}
	}
	if lo < 0 {
		return 0, 0
	}
	return lo, hi + 1
}

// FindRowsIntersecting returns per-row data for every row whose
// vertical span intersects area.
func (d *Document) FindRowsIntersecting(area index.Rect) []RowData {
	first, last := d.RangeOfRowsIntersecting(area)
	rows := make([]RowData, 0, last-first)
	for r := first; r < last; r++ {
		data := RowData{RowNumber: r}
		data.Bounds = d.BoundsOnRow(r, 0, d.NumColumns(r), glyph.ReturnBeyondLastCharacter)
		if len(data.Bounds) == 0 {
			data.Bounds = []index.Rect{index.NewRect(
				0, d.VerticalPosition(r, MetricTop),
				1, d.Font().Height*d.lineSpacing,
			)}
		}
		for _, s := range d.selections {
			if s.IntersectsRow(r) {
				data.IsRowSelected = true
				break
			}
		}
		rows = append(rows, data)
	}
	return rows
}

// SelectionRegion returns one rectangle per visual row the selection
// touches, skipping rows outside the clip when one is given.
func (d *Document) SelectionRegion(sel index.Selection, clip index.Rect) []index.Rect {
	s := sel.Oriented()
	mode := glyph.ReturnBeyondLastCharacter

	if s.IsSingleLine() {
		return d.BoundsOnRow(s.Head.Row, s.Head.Col, s.Tail.Col, mode)
	}

	var patches []index.Rect
	for n := s.Head.Row; n <= s.Tail.Row; n++ {
		if !clip.IsEmpty() && !clip.IntersectsVertically(
			d.VerticalPosition(n, MetricTop),
			d.VerticalPosition(n, MetricBottom)) {
			continue
		}
		switch {
		case n == s.Tail.Row && s.Tail.Col == 0:
			// The final row contributes nothing.
		case n == s.Head.Row:
			patches = append(patches, d.BoundsOnRow(n, s.Head.Col, d.NumColumns(n)+1, mode)...)
		case n == s.Tail.Row:
			patches = append(patches, d.BoundsOnRow(n, 0, s.Tail.Col, mode)...)
		default:
			patches = append(patches, d.BoundsOnRow(n, 0, d.NumColumns(n)+1, mode)...)
		}
	}
	return patches
}

// Underlines returns the underline segments of sel at the given
// metric, in document coordinates. Folded rows are skipped.
func (d *Document) Underlines(sel index.Selection, m Metric) []index.Segment {
	o := sel.Oriented()

	var delta float64
	switch m {
	case MetricAscent, MetricBaseline:
		delta = (d.RowHeight()+d.Font().Height)/2 + 2
	case MetricBottom:
		delta = d.RowHeight()
	}

	var out []index.Segment
	for r := o.Head.Row; r <= o.Tail.Row; r++ {
		if r < 0 || r >= d.NumRows() || d.folds.IsFolded(r) {
			continue
		}
		e := d.entry(r)
		if e == nil {
			continue
		}
		left := 0
		right := d.NumColumns(r)
		if r == o.Head.Row {
			left = o.Head.Col
		}
		if r == o.Tail.Row {
			right = o.Tail.Col
		}
		y := d.VerticalPosition(r, MetricTop) + delta
		for _, u := range e.Underlines(left, right, !sel.IsSingular()) {
			out = append(out, u.Translated(textIndent, y))
		}
	}
	return out
}

// FindIndexNearestPosition maps a pixel location to the closest
// character position, skipping folded rows. A point below the last
// row maps onto the final row.
func (d *Document) FindIndexNearestPosition(pos index.Point) index.Position {
	pos = pos.Translated(d.Font().CharWidth*0.5, 0)

	gap := d.spacingGap()

	if n := len(d.rowPositions); n > 0 && pos.Y > d.rowPositions[n-1]+d.RowHeight() {
		r := d.NumRows() - 1
		if r >= 0 {
			return index.Position{Row: r, Col: max(0, d.NumColumns(r)-1)}
		}
	}

	yPos := gap
	for r := 0; r < d.NumRows(); r++ {
		if d.folds.IsFolded(r) {
			continue
		}
		e := d.entry(r)
		if e == nil {
			continue
		}
		top := yPos - gap
		bottom := yPos + e.Height() + gap

		if pos.Y >= top && pos.Y < bottom {
			glyphs := d.GlyphsForRow(r, -1, true)
			col := len(glyphs)
			for n, g := range glyphs {
				b := g.Bounds
				b.Y -= gap
				b.H += gap * 2
				if b.Contains(pos) {
					col = n + 1
					break
				}
			}
			return index.Position{Row: r, Col: col - 1}
		}
		yPos = bottom
	}
	return index.Position{}
}
