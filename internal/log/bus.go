package log

import (
	"fmt"
	"os"
	"sync"
)

// Bus is an EventLogger that also fans events out to subscribers.
// Subscribers are registered per event type (or for every type) and are
// invoked synchronously, in registration order, on the goroutine that
// logged the event. A panicking subscriber is recovered and reported so
// one bad listener cannot take down the engine.
type Bus struct {
	mu     sync.Mutex
	seq    int
	events []GameEvent
	nextID int
	subs   map[EventType][]subscriber
	all    []subscriber
}

type subscriber struct {
	id int
	fn func(GameEvent)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]subscriber)}
}

// Subscribe registers fn for the given event types, or for all events if
// none are given. The returned function cancels the subscription.
func (b *Bus) Subscribe(fn func(GameEvent), types ...EventType) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := subscriber{id: b.nextID, fn: fn}
	if len(types) == 0 {
		b.all = append(b.all, sub)
	} else {
		for _, t := range types {
			b.subs[t] = append(b.subs[t], sub)
		}
	}

	id := sub.id
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = removeSub(b.all, id)
		for t, list := range b.subs {
			b.subs[t] = removeSub(list, id)
		}
	}
}

func removeSub(list []subscriber, id int) []subscriber {
	for i, s := range list {
		if s.id == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// Log assigns the sequence number, retains the event, and dispatches it.
func (b *Bus) Log(event GameEvent) {
	b.mu.Lock()
	b.seq++
	event.Seq = b.seq
	b.events = append(b.events, event)

	// Snapshot the recipient list so subscribers may (un)subscribe
	// from inside their own callback without deadlocking.
	recipients := make([]subscriber, 0, len(b.all)+len(b.subs[event.Type]))
	recipients = append(recipients, b.all...)
	recipients = append(recipients, b.subs[event.Type]...)
	b.mu.Unlock()

	for _, sub := range recipients {
		dispatch(sub.fn, event)
	}
}

func dispatch(fn func(GameEvent), event GameEvent) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "event subscriber panic on %s: %v\n", event.Type, r)
		}
	}()
	fn(event)
}

func (b *Bus) Events() []GameEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]GameEvent, len(b.events))
	copy(out, b.events)
	return out
}

// EventsOfType returns all retained events matching the given type.
func (b *Bus) EventsOfType(t EventType) []GameEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var result []GameEvent
	for _, e := range b.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}
