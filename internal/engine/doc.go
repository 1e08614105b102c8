// Package engine is the single-threaded editor controller.
//
// An Engine owns one document, its undo history and the autocomplete
// token index, and translates semantic intents into transactions and
// selection updates. Every method must be called from one goroutine,
// the editor thread; the only concurrent piece is the token index
// worker, which communicates back through a drained notification
// channel.
//
// Intents mirror what a key handler needs: Insert, Delete, Move,
// AutoClose, SkipIfClosure, DuplicateCaret, SelectNextMatch,
// FoldToggle, Undo, Redo and the autocomplete session calls.
package engine
