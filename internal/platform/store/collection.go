// Package store is the in-memory entity store backing the clinic registry:
// ordered collections with allocator-assigned identifiers, typed not-found
// outcomes, and synchronous change notification to subscribers.
package store

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Update and Delete when no entity with the given
// ID exists. Callers that want the old silent no-op behavior can ignore it;
// surfacing it keeps caller bugs visible.
var ErrNotFound = errors.New("store: entity not found")

// Collection holds one entity type in insertion order. Values are cloned on
// the way in and on the way out, so holders of a returned entity never alias
// store state and later edits to the store cannot reach into snapshots
// callers have taken.
//
// All operations are synchronous and guarded by a mutex: the reference
// deployment is single-writer, but the HTTP boundary may drive the store
// from concurrent requests.
type Collection[T any] struct {
	name  string
	alloc *Allocator
	bus   *Bus

	meta  func(T) (ID, time.Time)
	stamp func(T, ID, time.Time) T
	clone func(T) T

	mu      sync.RWMutex
	entries []T
}

// NewCollection builds an empty collection.
//
// meta extracts an entity's identifier and creation time; stamp writes both
// back onto a value (used when creating and to restore them after a merge);
// clone must return a copy sharing no mutable state (slices, maps, nested
// pointers) with its argument.
func NewCollection[T any](name string, alloc *Allocator, bus *Bus, meta func(T) (ID, time.Time), stamp func(T, ID, time.Time) T, clone func(T) T) *Collection[T] {
	return &Collection[T]{
		name:  name,
		alloc: alloc,
		bus:   bus,
		meta:  meta,
		stamp: stamp,
		clone: clone,
	}
}

func (c *Collection[T]) Name() string { return c.name }

// Create allocates an identifier, appends the entity, and returns the stored
// value. The input must not carry an identifier; whatever it carries is
// overwritten. No business-key uniqueness is checked here.
func (c *Collection[T]) Create(v T) T {
	id := c.alloc.Next()
	stored := c.stamp(c.clone(v), id, time.Now().UTC())

	c.mu.Lock()
	c.entries = append(c.entries, stored)
	c.mu.Unlock()

	c.bus.publish(Event{Collection: c.name, Action: ActionCreated, ID: id})
	return c.clone(stored)
}

// Get returns a copy of the entity with the given ID.
func (c *Collection[T]) Get(id ID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries {
		if eid, _ := c.meta(e); eid == id {
			return c.clone(e), true
		}
	}
	var zero T
	return zero, false
}

// Find returns a copy of the first entity matching the predicate, in
// insertion order. Business-key lookups (file number) go through here.
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries {
		if match(e) {
			return c.clone(e), true
		}
	}
	var zero T
	return zero, false
}

// Update replaces the entity with the given ID by merge(current). The merge
// function receives a copy and returns the full replacement value; its
// identifier and creation time are re-stamped afterwards, so merge cannot
// forge either. Returns ErrNotFound when no entity matches, leaving the
// collection untouched.
func (c *Collection[T]) Update(id ID, merge func(T) T) error {
	c.mu.Lock()
	idx := -1
	for i, e := range c.entries {
		if eid, _ := c.meta(e); eid == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	_, createdAt := c.meta(c.entries[idx])
	merged := c.clone(merge(c.clone(c.entries[idx])))
	merged = c.stamp(merged, id, createdAt)
	c.entries[idx] = merged
	c.mu.Unlock()

	c.bus.publish(Event{Collection: c.name, Action: ActionUpdated, ID: id})
	return nil
}

// Delete removes the entity with the given ID. Returns ErrNotFound when no
// entity matches; a repeated delete therefore reports not-found without
// disturbing anything.
func (c *Collection[T]) Delete(id ID) error {
	c.mu.Lock()
	idx := -1
	for i, e := range c.entries {
		if eid, _ := c.meta(e); eid == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	c.mu.Unlock()

	c.bus.publish(Event{Collection: c.name, Action: ActionDeleted, ID: id})
	return nil
}

// List returns a copy of the whole collection in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.entries))
	for i, e := range c.entries {
		out[i] = c.clone(e)
	}
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
