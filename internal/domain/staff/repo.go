package staff

import "github.com/ancare/ancare/internal/platform/store"

// DoctorRepository is the doctor persistence boundary.
type DoctorRepository interface {
	Create(d Doctor) Doctor
	Get(id store.ID) (Doctor, bool)
	Update(id store.ID, u DoctorUpdate) (Doctor, error)
	Delete(id store.ID) error
	List() []Doctor
	Len() int
}

// NurseRepository is the nurse persistence boundary.
type NurseRepository interface {
	Create(n Nurse) Nurse
	Get(id store.ID) (Nurse, bool)
	Update(id store.ID, u NurseUpdate) (Nurse, error)
	Delete(id store.ID) error
	List() []Nurse
	Len() int
}
