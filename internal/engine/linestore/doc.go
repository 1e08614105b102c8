// Package linestore owns the raw text of a document as an ordered
// sequence of logical lines.
//
// Lines are stored without terminators; line endings are logical '\n'
// only, and any carriage returns are discarded on load. Random access
// to a line is O(1). Columns are character (rune) indices.
//
// The store is deliberately passive: splicing rows is the exclusive
// responsibility of the document's fulfill transaction, and no other
// component may resize the line vector. Each mutation mints a fresh
// revision ID so snapshot readers can detect staleness.
package linestore
