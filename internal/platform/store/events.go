package store

import "sync"

// Action describes what a mutation did to a collection.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event is published on every successful mutation of a collection.
type Event struct {
	Collection string
	Action     Action
	ID         ID
}

// Listener receives change events. Delivery is synchronous, on the goroutine
// that performed the mutation; listeners must not call back into the store.
type Listener interface {
	OnChange(event Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnChange(event Event) { f(event) }

// Bus fans change events out to subscribers. Mutating collections share one
// bus so a view observing the store sees every collection change.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

func (b *Bus) publish(event Event) {
	b.mu.RLock()
	listeners := b.listeners
	b.mu.RUnlock()

	for _, l := range listeners {
		l.OnChange(event)
	}
}
