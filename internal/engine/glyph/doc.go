// Package glyph provides the per-line memoized glyph layout for the
// editor engine.
//
// Each line gets an Entry holding its laid-out geometry: the soft-wrap
// row count, every character's (visual row, visual column) position,
// the column extent of each visual row, per-character token tags, and
// the line's total height. Entries are keyed by a (content hash, wrap
// width) pair so an unchanged line under an unchanged wrap width reuses
// its existing layout instead of tracking ad-hoc dirty state.
//
// Every cell occupies a uniform character rectangle; tab characters
// round the visual column to the next multiple of the tab size. All
// queries are total: an out-of-range row yields empty arrangements,
// never an error.
package glyph
