package library

import (
	"github.com/nbd-wtf/go-nostr"
)

// NewBacklog returns an empty FIFO of events that grows in steps of size.
func NewBacklog(size int) *Backlog {
	if size < 1 {
		size = 1
	}
	return &Backlog{
		events: make([]nostr.Event, size),
		step:   size,
	}
}

// Backlog holds events waiting to be published. It is not safe for concurrent use.
type Backlog struct {
	events []nostr.Event
	step   int
	head   int
	tail   int
	count  int
}

// Push appends an event, growing the ring when it is full.
func (b *Backlog) Push(e nostr.Event) {
	if b.count == len(b.events) {
		grown := make([]nostr.Event, len(b.events)+b.step)
		n := copy(grown, b.events[b.head:])
		copy(grown[n:], b.events[:b.head])
		b.head = 0
		b.tail = len(b.events)
		b.events = grown
	}
	b.events[b.tail] = e
	b.tail = (b.tail + 1) % len(b.events)
	b.count++
}

// Peek returns the oldest event without removing it.
func (b *Backlog) Peek() (nostr.Event, bool) {
	if b.count == 0 {
		return nostr.Event{}, false
	}
	return b.events[b.head], true
}

// Pop removes the oldest event.
func (b *Backlog) Pop() (nostr.Event, bool) {
	if b.count == 0 {
		return nostr.Event{}, false
	}
	e := b.events[b.head]
	b.events[b.head] = nostr.Event{}
	b.head = (b.head + 1) % len(b.events)
	b.count--
	return e, true
}

func (b *Backlog) Len() int {
	return b.count
}
