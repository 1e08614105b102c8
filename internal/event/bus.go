package event

import "sync/atomic"

// Topic names an event stream.
type Topic string

// Topics published by the editor core.
const (
	TopicSelection Topic = "editor.selection"  // selection set changed
	TopicLayout    Topic = "editor.layout"     // text or layout changed
	TopicFold      Topic = "editor.fold"       // fold state changed
	TopicTokens    Topic = "editor.tokens"     // token list rebuilt
	TopicConfig    Topic = "editor.config"     // options reloaded
)

// LayoutChange describes the rows a mutation touched.
type LayoutChange struct {
	StartRow int
	EndRow   int // exclusive; EndRow <= StartRow means "all rows"
}

// Handler receives published events.
type Handler func(topic Topic, payload any)

// Subscription identifies a registered handler.
type Subscription struct {
	id    uint64
	topic Topic
}

type entry struct {
	id      uint64
	handler Handler
}

// Bus is a synchronous, editor-thread observer registry.
type Bus struct {
	nextID    atomic.Uint64
	subs      map[Topic][]entry
	published uint64
	delivered uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]entry)}
}

// Subscribe registers a handler for a topic and returns its
// subscription handle.
func (b *Bus) Subscribe(topic Topic, h Handler) Subscription {
	id := b.nextID.Add(1)
	b.subs[topic] = append(b.subs[topic], entry{id: id, handler: h})
	return Subscription{id: id, topic: topic}
}

// Unsubscribe removes a previously registered handler. Unknown
// subscriptions are a no-op.
func (b *Bus) Unsubscribe(sub Subscription) {
	list := b.subs[sub.topic]
	for i, e := range list {
		if e.id == sub.id {
			b.subs[sub.topic] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Publish dispatches the payload to every subscriber of the topic,
// inline on the caller's goroutine.
func (b *Bus) Publish(topic Topic, payload any) {
	b.published++
	for _, e := range b.subs[topic] {
		e.handler(topic, payload)
		b.delivered++
	}
}

// Stats returns published and delivered event counts.
func (b *Bus) Stats() (published, delivered uint64) {
	return b.published, b.delivered
}
