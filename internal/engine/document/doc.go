// Package document composes the line store, glyph cache, and fold tree
// into the editor's document model.
//
// The document exposes navigation over (row, column) positions,
// coordinate-to-pixel mapping, the active selection set, and the
// fulfill transaction primitive. Fulfill is the only mutator of the
// underlying text: it splices the line store, repositions every live
// selection, maintains fold anchors, invalidates the glyph cache, and
// returns the inverse transaction, all atomically with respect to
// outside observers.
//
// All document methods run on the editor thread. Navigation and
// rendering queries never fail; mutations validate and reject with no
// state change.
package document
