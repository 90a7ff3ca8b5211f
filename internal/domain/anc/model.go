// Package anc manages the antenatal patient registry: the patient records
// created at screening or follow-up visits, their derived clinical metrics,
// and their weak links to assigned staff.
package anc

import (
	"time"

	"github.com/ancare/ancare/internal/platform/store"
	"github.com/ancare/ancare/pkg/clinical"
)

// VisitType distinguishes the two antenatal visit kinds.
type VisitType string

const (
	VisitScreening VisitType = "screening"
	VisitFollowUp  VisitType = "follow-up"
)

func (v VisitType) Valid() bool {
	return v == VisitScreening || v == VisitFollowUp
}

// VitalSigns is the most recent set of vitals captured for a patient.
type VitalSigns struct {
	BloodPressure string    `json:"blood_pressure"`
	Pulse         int       `json:"pulse"`
	Temperature   float64   `json:"temperature"`
	Oxygen        int       `json:"oxygen"`
	LastUpdated   time.Time `json:"last_updated"`
}

// MedicalHistory carries the clinical background recorded at intake.
type MedicalHistory struct {
	Conditions          []string `json:"conditions"`
	Medications         []string `json:"medications"`
	Allergies           []string `json:"allergies"`
	PreviousPregnancies int      `json:"previous_pregnancies"`
	Complications       []string `json:"complications"`
}

// SocialHistory carries lifestyle and support-context answers.
type SocialHistory struct {
	SmokingStatus  string `json:"smoking_status"`
	AlcoholUse     string `json:"alcohol_use"`
	Occupation     string `json:"occupation"`
	SupportSystem  string `json:"support_system"`
	EducationLevel string `json:"education_level"`
}

// Referral records an onward referral raised during a visit.
type Referral struct {
	IsRequired bool   `json:"is_required"`
	Clinic     string `json:"clinic"`
	Reason     string `json:"reason"`
	Urgency    string `json:"urgency"` // routine, urgent, emergency
}

// ScheduledVisit is one entry in a patient's visit schedule.
type ScheduledVisit struct {
	ID     store.ID  `json:"id"`
	Date   time.Time `json:"date"`
	Type   string    `json:"type"`
	Status string    `json:"status"` // scheduled, completed, missed
	Notes  string    `json:"notes,omitempty"`
}

// Patient is an antenatal clinic record. The ID is allocated by the store;
// FileNumber is the clinic-assigned business key. The store does not enforce
// FileNumber uniqueness and BMI is whatever the boundary computed — both are
// documented consistency risks, not hard guarantees.
type Patient struct {
	ID             store.ID               `json:"id"`
	FileNumber     string                 `json:"file_number"`
	Name           string                 `json:"name"`
	Nationality    string                 `json:"nationality"`
	Age            int                    `json:"age"`
	WeightKg       float64                `json:"weight"`
	HeightCm       float64                `json:"height"`
	Phone          string                 `json:"phone"`
	BMI            float64                `json:"bmi"`
	TypeOfVisit    VisitType              `json:"type_of_visit"`
	CreatedAt      time.Time              `json:"created_at"`
	VitalSigns     *VitalSigns            `json:"vital_signs,omitempty"`
	MedicalHistory *MedicalHistory        `json:"medical_history,omitempty"`
	SocialHistory  *SocialHistory         `json:"social_history,omitempty"`
	AssignedDoctor *store.ID              `json:"assigned_doctor,omitempty"`
	AssignedNurse  *store.ID              `json:"assigned_nurse,omitempty"`
	RiskScore      *int                   `json:"risk_score,omitempty"`
	RiskCategory   *clinical.RiskCategory `json:"risk_category,omitempty"`
	VisitSchedule  []ScheduledVisit       `json:"visit_schedule,omitempty"`
	Referral       *Referral              `json:"referral,omitempty"`
}

// Clone returns a copy of the patient sharing no mutable state with the
// receiver. The store relies on this for snapshot isolation, and the
// delivery linker relies on it when it freezes a patient into a record.
func (p Patient) Clone() Patient {
	out := p
	if p.VitalSigns != nil {
		vs := *p.VitalSigns
		out.VitalSigns = &vs
	}
	if p.MedicalHistory != nil {
		mh := *p.MedicalHistory
		mh.Conditions = append([]string(nil), p.MedicalHistory.Conditions...)
		mh.Medications = append([]string(nil), p.MedicalHistory.Medications...)
		mh.Allergies = append([]string(nil), p.MedicalHistory.Allergies...)
		mh.Complications = append([]string(nil), p.MedicalHistory.Complications...)
		out.MedicalHistory = &mh
	}
	if p.SocialHistory != nil {
		sh := *p.SocialHistory
		out.SocialHistory = &sh
	}
	if p.AssignedDoctor != nil {
		d := *p.AssignedDoctor
		out.AssignedDoctor = &d
	}
	if p.AssignedNurse != nil {
		n := *p.AssignedNurse
		out.AssignedNurse = &n
	}
	if p.RiskScore != nil {
		rs := *p.RiskScore
		out.RiskScore = &rs
	}
	if p.RiskCategory != nil {
		rc := *p.RiskCategory
		out.RiskCategory = &rc
	}
	if p.VisitSchedule != nil {
		out.VisitSchedule = append([]ScheduledVisit(nil), p.VisitSchedule...)
	}
	if p.Referral != nil {
		r := *p.Referral
		out.Referral = &r
	}
	return out
}

// PatientUpdate is a partial patient: nil fields are left untouched by an
// update. Identifier and creation time are never updatable.
type PatientUpdate struct {
	FileNumber     *string                `json:"file_number,omitempty"`
	Name           *string                `json:"name,omitempty"`
	Nationality    *string                `json:"nationality,omitempty"`
	Age            *int                   `json:"age,omitempty"`
	WeightKg       *float64               `json:"weight,omitempty"`
	HeightCm       *float64               `json:"height,omitempty"`
	Phone          *string                `json:"phone,omitempty"`
	TypeOfVisit    *VisitType             `json:"type_of_visit,omitempty"`
	VitalSigns     *VitalSigns            `json:"vital_signs,omitempty"`
	MedicalHistory *MedicalHistory        `json:"medical_history,omitempty"`
	SocialHistory  *SocialHistory         `json:"social_history,omitempty"`
	AssignedDoctor *store.ID              `json:"assigned_doctor,omitempty"`
	AssignedNurse  *store.ID              `json:"assigned_nurse,omitempty"`
	RiskScore      *int                   `json:"risk_score,omitempty"`
	RiskCategory   *clinical.RiskCategory `json:"risk_category,omitempty"`
	VisitSchedule  *[]ScheduledVisit      `json:"visit_schedule,omitempty"`
	Referral       *Referral              `json:"referral,omitempty"`

	// bmi is set only by the service when a weight or height change
	// forces a recompute; it is never accepted from callers.
	bmi *float64
}

// apply merges the update into a copy of p.
func (u PatientUpdate) apply(p Patient) Patient {
	if u.FileNumber != nil {
		p.FileNumber = *u.FileNumber
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Nationality != nil {
		p.Nationality = *u.Nationality
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.WeightKg != nil {
		p.WeightKg = *u.WeightKg
	}
	if u.HeightCm != nil {
		p.HeightCm = *u.HeightCm
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.TypeOfVisit != nil {
		p.TypeOfVisit = *u.TypeOfVisit
	}
	if u.VitalSigns != nil {
		vs := *u.VitalSigns
		p.VitalSigns = &vs
	}
	if u.MedicalHistory != nil {
		mh := *u.MedicalHistory
		p.MedicalHistory = &mh
	}
	if u.SocialHistory != nil {
		sh := *u.SocialHistory
		p.SocialHistory = &sh
	}
	if u.AssignedDoctor != nil {
		d := *u.AssignedDoctor
		p.AssignedDoctor = &d
	}
	if u.AssignedNurse != nil {
		n := *u.AssignedNurse
		p.AssignedNurse = &n
	}
	if u.RiskScore != nil {
		rs := *u.RiskScore
		p.RiskScore = &rs
	}
	if u.RiskCategory != nil {
		rc := *u.RiskCategory
		p.RiskCategory = &rc
	}
	if u.VisitSchedule != nil {
		p.VisitSchedule = append([]ScheduledVisit(nil), (*u.VisitSchedule)...)
	}
	if u.Referral != nil {
		r := *u.Referral
		p.Referral = &r
	}
	if u.bmi != nil {
		p.BMI = *u.bmi
	}
	return p
}
