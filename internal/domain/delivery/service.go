package delivery

import "github.com/ancare/ancare/internal/platform/store"

// Service exposes read and delete access to completed records. Creation
// goes exclusively through the Linker; there is no direct-write path.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(id store.ID) (Record, error) {
	r, ok := s.repo.Get(id)
	if !ok {
		return Record{}, store.ErrNotFound
	}
	return r, nil
}

func (s *Service) Delete(id store.ID) error {
	return s.repo.Delete(id)
}

// List returns all records in recording order.
func (s *Service) List() []Record {
	return s.repo.List()
}

// ListForPatient returns the records whose frozen snapshot references the
// given patient. Deliveries for since-deleted patients still appear.
func (s *Service) ListForPatient(patientID store.ID) []Record {
	var out []Record
	for _, r := range s.repo.List() {
		if r.Patient.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out
}
