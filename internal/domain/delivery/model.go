// Package delivery manages birth records and the two-step workflow that
// creates them. A delivery record freezes a copy of the patient's
// demographics at recording time, so later edits to the patient never
// rewrite delivery history.
package delivery

import (
	"time"

	"github.com/ancare/ancare/internal/domain/anc"
	"github.com/ancare/ancare/internal/platform/store"
)

// Type is the mode of delivery.
type Type string

const (
	TypeNormal   Type = "normal"
	TypeCesarean Type = "cesarean"
	TypeAssisted Type = "assisted"
)

func (t Type) Valid() bool {
	return t == TypeNormal || t == TypeCesarean || t == TypeAssisted
}

// BabyGender is the recorded sex of the newborn.
type BabyGender string

const (
	GenderMale   BabyGender = "male"
	GenderFemale BabyGender = "female"
)

func (g BabyGender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// PatientSnapshot is the entire patient record frozen into a delivery
// record at lookup time: demographics, metrics, vitals, histories, risk
// fields, everything. PatientID is a weak reference: the patient may be
// edited or deleted afterwards without affecting this copy.
type PatientSnapshot struct {
	PatientID store.ID `json:"patient_id"`
	anc.Patient
}

// SnapshotOf freezes a deep copy of the patient.
func SnapshotOf(p anc.Patient) PatientSnapshot {
	return PatientSnapshot{PatientID: p.ID, Patient: p.Clone()}
}

// Clone returns a copy of the snapshot sharing no mutable state.
func (s PatientSnapshot) Clone() PatientSnapshot {
	s.Patient = s.Patient.Clone()
	return s
}

// Details is the outcome data collected in the second workflow step.
type Details struct {
	DeliveryDate  time.Time  `json:"delivery_date"`
	DeliveryType  Type       `json:"delivery_type"`
	Complications []string   `json:"complications,omitempty"`
	BabyWeightKg  float64    `json:"baby_weight"`
	BabyGender    BabyGender `json:"baby_gender"`
	ApgarScore    int        `json:"apgar_score"`
	AttendedBy    *store.ID  `json:"attended_by,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// Record is a completed birth record.
type Record struct {
	ID        store.ID        `json:"id"`
	Patient   PatientSnapshot `json:"patient"`
	Details   Details         `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

// Clone returns a copy of the record sharing no mutable state.
func (r Record) Clone() Record {
	out := r
	out.Patient = r.Patient.Clone()
	if r.Details.Complications != nil {
		out.Details.Complications = append([]string(nil), r.Details.Complications...)
	}
	if r.Details.AttendedBy != nil {
		a := *r.Details.AttendedBy
		out.Details.AttendedBy = &a
	}
	return out
}
