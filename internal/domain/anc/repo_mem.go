package anc

import (
	"time"

	"github.com/ancare/ancare/internal/platform/store"
)

// CollectionName is the name the patient collection publishes events under.
const CollectionName = "patients"

type memRepo struct {
	col *store.Collection[Patient]
}

// NewMemRepository builds the in-memory patient repository on top of the
// shared allocator and event bus.
func NewMemRepository(alloc *store.Allocator, bus *store.Bus) Repository {
	col := store.NewCollection(
		CollectionName,
		alloc,
		bus,
		func(p Patient) (store.ID, time.Time) { return p.ID, p.CreatedAt },
		func(p Patient, id store.ID, at time.Time) Patient {
			p.ID = id
			p.CreatedAt = at
			return p
		},
		Patient.Clone,
	)
	return &memRepo{col: col}
}

func (r *memRepo) Create(p Patient) Patient { return r.col.Create(p) }

func (r *memRepo) Get(id store.ID) (Patient, bool) { return r.col.Get(id) }

func (r *memRepo) FindByFileNumber(fileNumber string) (Patient, bool) {
	return r.col.Find(func(p Patient) bool { return p.FileNumber == fileNumber })
}

func (r *memRepo) Update(id store.ID, u PatientUpdate) (Patient, error) {
	if err := r.col.Update(id, u.apply); err != nil {
		return Patient{}, err
	}
	p, _ := r.col.Get(id)
	return p, nil
}

func (r *memRepo) Delete(id store.ID) error { return r.col.Delete(id) }

func (r *memRepo) List() []Patient { return r.col.List() }

func (r *memRepo) Len() int { return r.col.Len() }
