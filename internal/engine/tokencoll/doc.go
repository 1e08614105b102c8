// Package tokencoll maintains the background-rebuilt autocomplete
// token index.
//
// Providers contribute tokens; a dedicated worker goroutine collects
// them into a sorted list whenever the collection is signaled dirty.
// The rebuilt list replaces the published one under a single atomic
// pointer swap, and only when its content hash actually changed does
// the worker post a notification. Readers on the editor thread load
// the pointer once and iterate; they never block the worker.
//
// Cross-thread traffic is limited to the dirty flag with its wake
// signal, the published pointer, and the notification callback. The
// callback runs on the worker, so callers must forward it to their
// own thread before touching editor state.
package tokencoll
