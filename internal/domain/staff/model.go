// Package staff manages the clinic's doctor and nurse rosters. Both entity
// kinds share the same lifecycle but carry different professional fields,
// so each gets its own model, repository, and routes.
package staff

import (
	"time"

	"github.com/ancare/ancare/internal/platform/store"
)

// Shift is a nurse's duty shift.
type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
	ShiftNight   Shift = "night"
)

func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftEvening || s == ShiftNight
}

// Doctor is a clinic physician. Experience is whole years in practice.
type Doctor struct {
	ID         store.ID  `json:"id"`
	Name       string    `json:"name"`
	Specialty  string    `json:"specialty"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	Experience int       `json:"experience"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
}

// Clone returns a copy of the doctor. The struct holds no reference
// fields today; the method exists so the store contract is explicit.
func (d Doctor) Clone() Doctor { return d }

// DoctorUpdate is a partial doctor: nil fields are left untouched.
type DoctorUpdate struct {
	Name       *string `json:"name,omitempty"`
	Specialty  *string `json:"specialty,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	Experience *int    `json:"experience,omitempty"`
	Available  *bool   `json:"available,omitempty"`
}

func (u DoctorUpdate) apply(d Doctor) Doctor {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Specialty != nil {
		d.Specialty = *u.Specialty
	}
	if u.Phone != nil {
		d.Phone = *u.Phone
	}
	if u.Email != nil {
		d.Email = *u.Email
	}
	if u.Experience != nil {
		d.Experience = *u.Experience
	}
	if u.Available != nil {
		d.Available = *u.Available
	}
	return d
}

// Nurse is a clinic nurse. Experience is whole years in practice.
type Nurse struct {
	ID         store.ID  `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Shift      Shift     `json:"shift"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	Experience int       `json:"experience"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
}

// Clone returns a copy of the nurse.
func (n Nurse) Clone() Nurse { return n }

// NurseUpdate is a partial nurse: nil fields are left untouched.
type NurseUpdate struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Shift      *Shift  `json:"shift,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	Experience *int    `json:"experience,omitempty"`
	Available  *bool   `json:"available,omitempty"`
}

func (u NurseUpdate) apply(n Nurse) Nurse {
	if u.Name != nil {
		n.Name = *u.Name
	}
	if u.Department != nil {
		n.Department = *u.Department
	}
	if u.Shift != nil {
		n.Shift = *u.Shift
	}
	if u.Phone != nil {
		n.Phone = *u.Phone
	}
	if u.Email != nil {
		n.Email = *u.Email
	}
	if u.Experience != nil {
		n.Experience = *u.Experience
	}
	if u.Available != nil {
		n.Available = *u.Available
	}
	return n
}
