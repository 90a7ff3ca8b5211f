package staff

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ancare/ancare/internal/platform/store"
)

// ErrValidation wraps all roster input rejections.
var ErrValidation = errors.New("invalid staff input")

// Service owns roster business rules for both doctors and nurses.
type Service struct {
	doctors DoctorRepository
	nurses  NurseRepository
}

func NewService(doctors DoctorRepository, nurses NurseRepository) *Service {
	return &Service{doctors: doctors, nurses: nurses}
}

// AddDoctor validates and stores a new doctor.
func (s *Service) AddDoctor(d Doctor) (Doctor, error) {
	if d.Name == "" {
		return Doctor{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if d.Specialty == "" {
		return Doctor{}, fmt.Errorf("%w: specialty is required", ErrValidation)
	}
	if d.Experience < 0 {
		return Doctor{}, fmt.Errorf("%w: experience cannot be negative", ErrValidation)
	}
	created := s.doctors.Create(d)
	log.Info().Str("doctor_id", string(created.ID)).Str("specialty", created.Specialty).Msg("doctor added")
	return created, nil
}

func (s *Service) GetDoctor(id store.ID) (Doctor, error) {
	d, ok := s.doctors.Get(id)
	if !ok {
		return Doctor{}, store.ErrNotFound
	}
	return d, nil
}

func (s *Service) UpdateDoctor(id store.ID, u DoctorUpdate) (Doctor, error) {
	if u.Name != nil && *u.Name == "" {
		return Doctor{}, fmt.Errorf("%w: name cannot be cleared", ErrValidation)
	}
	if u.Experience != nil && *u.Experience < 0 {
		return Doctor{}, fmt.Errorf("%w: experience cannot be negative", ErrValidation)
	}
	return s.doctors.Update(id, u)
}

func (s *Service) DeleteDoctor(id store.ID) error { return s.doctors.Delete(id) }

func (s *Service) ListDoctors() []Doctor { return s.doctors.List() }

// AddNurse validates and stores a new nurse.
func (s *Service) AddNurse(n Nurse) (Nurse, error) {
	if n.Name == "" {
		return Nurse{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if n.Department == "" {
		return Nurse{}, fmt.Errorf("%w: department is required", ErrValidation)
	}
	if n.Shift != "" && !n.Shift.Valid() {
		return Nurse{}, fmt.Errorf("%w: unknown shift %q", ErrValidation, n.Shift)
	}
	if n.Experience < 0 {
		return Nurse{}, fmt.Errorf("%w: experience cannot be negative", ErrValidation)
	}
	created := s.nurses.Create(n)
	log.Info().Str("nurse_id", string(created.ID)).Str("department", created.Department).Msg("nurse added")
	return created, nil
}

func (s *Service) GetNurse(id store.ID) (Nurse, error) {
	n, ok := s.nurses.Get(id)
	if !ok {
		return Nurse{}, store.ErrNotFound
	}
	return n, nil
}

func (s *Service) UpdateNurse(id store.ID, u NurseUpdate) (Nurse, error) {
	if u.Name != nil && *u.Name == "" {
		return Nurse{}, fmt.Errorf("%w: name cannot be cleared", ErrValidation)
	}
	if u.Shift != nil && !u.Shift.Valid() {
		return Nurse{}, fmt.Errorf("%w: unknown shift %q", ErrValidation, *u.Shift)
	}
	if u.Experience != nil && *u.Experience < 0 {
		return Nurse{}, fmt.Errorf("%w: experience cannot be negative", ErrValidation)
	}
	return s.nurses.Update(id, u)
}

func (s *Service) DeleteNurse(id store.ID) error { return s.nurses.Delete(id) }

func (s *Service) ListNurses() []Nurse { return s.nurses.List() }
