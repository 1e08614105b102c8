package engine

import "github.com/dshills/glyphed/internal/engine/fold"

// RecomputeFoldRanges derives foldable row ranges from brace nesting
// and rebuilds the fold tree. Folded state survives the rebuild for
// every range whose start row is unchanged.
func (e *Engine) RecomputeFoldRanges() {
	var ranges []fold.RowRange
	var stack []int

	for r := 0; r < e.doc.NumRows(); r++ {
		for _, ch := range e.doc.Line(r) {
			switch ch {
			case '{':
				stack = append(stack, r)
			case '}':
				if len(stack) == 0 {
					continue
				}
				start := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if r > start {
					ranges = append(ranges, fold.RowRange{Start: start, End: r + 1})
				}
			}
		}
	}

	e.doc.Folds().SetRanges(ranges)
	e.doc.RebuildRowPositions()
}
