package store

import (
	"fmt"
	"sync"
	"time"
)

// ID identifies an entity within the store. IDs sort lexicographically in
// allocation order.
type ID string

// Allocator issues unique, monotonically ordered IDs for the lifetime of the
// process. Allocation never fails.
//
// An ID is the allocation wall-clock tick in milliseconds plus a per-tick
// sequence number, so two allocations in the same millisecond still produce
// distinct, ordered values. If the clock stalls or moves backwards the
// allocator keeps counting from its last tick rather than reusing one.
type Allocator struct {
	mu   sync.Mutex
	tick int64
	seq  uint32
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns an ID greater than every ID returned before it.
func (a *Allocator) Next() ID {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now().UnixMilli()
	switch {
	case now > a.tick:
		a.tick = now
		a.seq = 0
	case a.seq >= 9999:
		// Sequence exhausted within one tick; borrow the next one.
		a.tick++
		a.seq = 0
	default:
		a.seq++
	}
	return ID(fmt.Sprintf("%013d-%04d", a.tick, a.seq))
}
