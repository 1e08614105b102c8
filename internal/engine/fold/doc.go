// Package fold maintains the hierarchy of foldable line ranges.
//
// Ranges are half-open [startRow, endRow) row intervals nested into a
// parent/child tree. A row is hidden when some ancestor range is
// folded and the row lies strictly inside it; a range's start row is
// always visible. Anchors are position-maintained: the document shifts
// them inside the same fulfill transaction that edits the text, so a
// range keeps referring to the same conceptual region across edits.
//
// The range set itself is recomputed wholesale by an external
// range-provider callback; folded state survives a rebuild by matching
// start rows against the previous set.
package fold
