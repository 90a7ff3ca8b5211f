package delivery

import (
	"time"

	"github.com/ancare/ancare/internal/platform/store"
)

// CollectionName is the name the delivery collection publishes events under.
const CollectionName = "deliveries"

type memRepo struct {
	col *store.Collection[Record]
}

// NewMemRepository builds the in-memory delivery record store.
func NewMemRepository(alloc *store.Allocator, bus *store.Bus) Repository {
	col := store.NewCollection(
		CollectionName,
		alloc,
		bus,
		func(r Record) (store.ID, time.Time) { return r.ID, r.CreatedAt },
		func(r Record, id store.ID, at time.Time) Record {
			r.ID = id
			r.CreatedAt = at
			return r
		},
		Record.Clone,
	)
	return &memRepo{col: col}
}

func (r *memRepo) Create(rec Record) Record { return r.col.Create(rec) }

func (r *memRepo) Get(id store.ID) (Record, bool) { return r.col.Get(id) }

func (r *memRepo) Delete(id store.ID) error { return r.col.Delete(id) }

func (r *memRepo) List() []Record { return r.col.List() }

func (r *memRepo) Len() int { return r.col.Len() }
