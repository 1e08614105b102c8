// Package history provides grouped undo/redo over document
// transactions.
//
// Edits are recorded as invertible transactions: performing one
// through the engine routes it to the document, which returns the
// reciprocal transaction that restores the previous state. The
// reciprocal is kept on the undo stack; undoing performs it and keeps
// the new reciprocal for redo, so the two stacks always hold
// ready-to-run transactions.
//
// Consecutive edits coalesce into a single undo group while they
// arrive within the idle threshold of one another. A burst of typing
// therefore undoes as one unit, while edits separated by a pause
// undo separately.
//
// Callbacks registered with each perform run synchronously after the
// document applies the transaction and receive the reciprocal, which
// carries the selection covering the newly written content. The
// caller uses it to reposition carets.
package history
