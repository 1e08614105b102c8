// Package event provides the synchronous observer bus connecting the
// editor core to its renderers.
//
// The core is single-threaded cooperative, so the bus dispatches
// inline on the editor thread: Publish walks the subscribers for the
// event's topic and invokes each handler before returning. Handlers
// observe the full post-state of whatever mutation triggered the
// event and must not mutate the document re-entrantly.
package event
