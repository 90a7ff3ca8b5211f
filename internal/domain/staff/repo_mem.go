package staff

import (
	"time"

	"github.com/ancare/ancare/internal/platform/store"
)

// Collection names for roster change events.
const (
	DoctorCollection = "doctors"
	NurseCollection  = "nurses"
)

type doctorMemRepo struct {
	col *store.Collection[Doctor]
}

// NewMemDoctorRepository builds the in-memory doctor roster.
func NewMemDoctorRepository(alloc *store.Allocator, bus *store.Bus) DoctorRepository {
	col := store.NewCollection(
		DoctorCollection,
		alloc,
		bus,
		func(d Doctor) (store.ID, time.Time) { return d.ID, d.CreatedAt },
		func(d Doctor, id store.ID, at time.Time) Doctor {
			d.ID = id
			d.CreatedAt = at
			return d
		},
		Doctor.Clone,
	)
	return &doctorMemRepo{col: col}
}

func (r *doctorMemRepo) Create(d Doctor) Doctor { return r.col.Create(d) }

func (r *doctorMemRepo) Get(id store.ID) (Doctor, bool) { return r.col.Get(id) }

func (r *doctorMemRepo) Update(id store.ID, u DoctorUpdate) (Doctor, error) {
	if err := r.col.Update(id, u.apply); err != nil {
		return Doctor{}, err
	}
	d, _ := r.col.Get(id)
	return d, nil
}

func (r *doctorMemRepo) Delete(id store.ID) error { return r.col.Delete(id) }

func (r *doctorMemRepo) List() []Doctor { return r.col.List() }

func (r *doctorMemRepo) Len() int { return r.col.Len() }

type nurseMemRepo struct {
	col *store.Collection[Nurse]
}

// NewMemNurseRepository builds the in-memory nurse roster.
func NewMemNurseRepository(alloc *store.Allocator, bus *store.Bus) NurseRepository {
	col := store.NewCollection(
		NurseCollection,
		alloc,
		bus,
		func(n Nurse) (store.ID, time.Time) { return n.ID, n.CreatedAt },
		func(n Nurse, id store.ID, at time.Time) Nurse {
			n.ID = id
			n.CreatedAt = at
			return n
		},
		Nurse.Clone,
	)
	return &nurseMemRepo{col: col}
}

func (r *nurseMemRepo) Create(n Nurse) Nurse { return r.col.Create(n) }

func (r *nurseMemRepo) Get(id store.ID) (Nurse, bool) { return r.col.Get(id) }

func (r *nurseMemRepo) Update(id store.ID, u NurseUpdate) (Nurse, error) {
	if err := r.col.Update(id, u.apply); err != nil {
		return Nurse{}, err
	}
	n, _ := r.col.Get(id)
	return n, nil
}

func (r *nurseMemRepo) Delete(id store.ID) error { return r.col.Delete(id) }

func (r *nurseMemRepo) List() []Nurse { return r.col.List() }

func (r *nurseMemRepo) Len() int { return r.col.Len() }
