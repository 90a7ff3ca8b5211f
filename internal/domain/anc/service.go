package anc

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ancare/ancare/internal/platform/store"
	"github.com/ancare/ancare/pkg/clinical"
)

// ErrValidation wraps all patient input rejections so handlers can map
// them to a 400 with errors.Is.
var ErrValidation = errors.New("invalid patient input")

// Service owns patient business rules: input validation, BMI derivation,
// and the file-number lookup used by the delivery linker.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates and stores a new patient. BMI is always recomputed
// from weight and height here; any caller-supplied value is discarded.
func (s *Service) Register(p Patient) (Patient, error) {
	if err := validate(p); err != nil {
		return Patient{}, err
	}
	p.BMI = clinical.BMI(p.WeightKg, p.HeightCm)
	if p.RiskScore != nil && p.RiskCategory == nil {
		rc := clinical.CategoryForScore(*p.RiskScore)
		p.RiskCategory = &rc
	}
	created := s.repo.Create(p)
	log.Info().
		Str("patient_id", string(created.ID)).
		Str("file_number", created.FileNumber).
		Msg("patient registered")
	return created, nil
}

// Get returns the patient with the given identifier.
func (s *Service) Get(id store.ID) (Patient, error) {
	p, ok := s.repo.Get(id)
	if !ok {
		return Patient{}, store.ErrNotFound
	}
	return p, nil
}

// FindByFileNumber looks a patient up by the clinic file number. When
// duplicates exist the earliest registration wins.
func (s *Service) FindByFileNumber(fileNumber string) (Patient, error) {
	p, ok := s.repo.FindByFileNumber(fileNumber)
	if !ok {
		return Patient{}, store.ErrNotFound
	}
	return p, nil
}

// Update applies a partial update. Weight or height changes trigger a BMI
// recompute against the merged measurements, folded into the same store
// write so observers see a single consistent update.
func (s *Service) Update(id store.ID, u PatientUpdate) (Patient, error) {
	if err := validateUpdate(u); err != nil {
		return Patient{}, err
	}
	if u.WeightKg != nil || u.HeightCm != nil {
		current, ok := s.repo.Get(id)
		if !ok {
			return Patient{}, store.ErrNotFound
		}
		w, h := current.WeightKg, current.HeightCm
		if u.WeightKg != nil {
			w = *u.WeightKg
		}
		if u.HeightCm != nil {
			h = *u.HeightCm
		}
		bmi := clinical.BMI(w, h)
		u.bmi = &bmi
	}
	return s.repo.Update(id, u)
}

// Delete removes a patient. Deliveries that snapshot this patient are
// unaffected; dangling assignments are left to the caller.
func (s *Service) Delete(id store.ID) error {
	return s.repo.Delete(id)
}

// List returns all patients in registration order.
func (s *Service) List() []Patient {
	return s.repo.List()
}

func validate(p Patient) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.FileNumber == "" {
		return fmt.Errorf("%w: file number is required", ErrValidation)
	}
	if p.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrValidation)
	}
	if p.WeightKg <= 0 || p.HeightCm <= 0 {
		return fmt.Errorf("%w: weight and height must be positive", ErrValidation)
	}
	if p.TypeOfVisit != "" && !p.TypeOfVisit.Valid() {
		return fmt.Errorf("%w: unknown visit type %q", ErrValidation, p.TypeOfVisit)
	}
	if p.RiskCategory != nil && !p.RiskCategory.Valid() {
		return fmt.Errorf("%w: unknown risk category %q", ErrValidation, *p.RiskCategory)
	}
	return nil
}

func validateUpdate(u PatientUpdate) error {
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("%w: name cannot be cleared", ErrValidation)
	}
	if u.FileNumber != nil && *u.FileNumber == "" {
		return fmt.Errorf("%w: file number cannot be cleared", ErrValidation)
	}
	if u.Age != nil && *u.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrValidation)
	}
	if u.WeightKg != nil && *u.WeightKg <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrValidation)
	}
	if u.HeightCm != nil && *u.HeightCm <= 0 {
		return fmt.Errorf("%w: height must be positive", ErrValidation)
	}
	if u.TypeOfVisit != nil && !u.TypeOfVisit.Valid() {
		return fmt.Errorf("%w: unknown visit type %q", ErrValidation, *u.TypeOfVisit)
	}
	if u.RiskCategory != nil && !u.RiskCategory.Valid() {
		return fmt.Errorf("%w: unknown risk category %q", ErrValidation, *u.RiskCategory)
	}
	return nil
}
