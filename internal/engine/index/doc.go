// Package index provides the coordinate and selection algebra for the
// editor engine.
//
// Positions are logical (row, column) pairs where the column may equal
// the line length (one past the last character). Selections are ordered
// pairs of positions with value semantics: nothing in this package
// mutates in place, and nothing holds a reference back to the document.
// Repositioning across edits is explicit through PullBy and PushBy,
// which the document applies to every live selection inside a
// transaction.
//
// The package also carries the small pixel-space geometry types (Point,
// Rect, Segment) shared by the layout queries.
package index
