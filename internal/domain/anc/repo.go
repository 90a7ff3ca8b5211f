package anc

import "github.com/ancare/ancare/internal/platform/store"

// Repository is the patient persistence boundary. The in-memory
// implementation lives in repo_mem.go; nothing above this interface
// assumes any particular backing.
type Repository interface {
	Create(p Patient) Patient
	Get(id store.ID) (Patient, bool)
	FindByFileNumber(fileNumber string) (Patient, bool)
	Update(id store.ID, u PatientUpdate) (Patient, error)
	Delete(id store.ID) error
	List() []Patient
	Len() int
}
