package anc

import (
	"errors"
	"testing"

	"github.com/ancare/ancare/internal/platform/store"
	"github.com/ancare/ancare/pkg/clinical"
)

func newTestService() *Service {
	return NewService(NewMemRepository(store.NewAllocator(), store.NewBus()))
}

func validPatient() Patient {
	return Patient{
		FileNumber:  "ANC0042",
		Name:        "Jane Doe",
		Nationality: "Kenyan",
		Age:         28,
		WeightKg:    65,
		HeightCm:    165,
		Phone:       "+254700000042",
		TypeOfVisit: VisitScreening,
	}
}

func TestRegisterComputesBMI(t *testing.T) {
	svc := newTestService()

	p := validPatient()
	p.BMI = 99 // caller-supplied value must be discarded

	created, err := svc.Register(p)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.BMI != 23.9 {
		t.Errorf("BMI = %v, want 23.9", created.BMI)
	}
	if created.ID == "" {
		t.Error("expected allocated ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		name   string
		mutate func(*Patient)
	}{
		{"missing name", func(p *Patient) { p.Name = "" }},
		{"missing file number", func(p *Patient) { p.FileNumber = "" }},
		{"zero age", func(p *Patient) { p.Age = 0 }},
		{"negative weight", func(p *Patient) { p.WeightKg = -1 }},
		{"zero height", func(p *Patient) { p.HeightCm = 0 }},
		{"bad visit type", func(p *Patient) { p.TypeOfVisit = "walk-in" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPatient()
			tc.mutate(&p)
			if _, err := svc.Register(p); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterDerivesRiskCategory(t *testing.T) {
	svc := newTestService()

	p := validPatient()
	score := 45
	p.RiskScore = &score

	created, err := svc.Register(p)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.RiskCategory == nil || *created.RiskCategory != clinical.RiskMedium {
		t.Errorf("RiskCategory = %v, want medium", created.RiskCategory)
	}
}

func TestFindByFileNumber(t *testing.T) {
	svc := newTestService()

	created, err := svc.Register(validPatient())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	found, err := svc.FindByFileNumber("ANC0042")
	if err != nil {
		t.Fatalf("FindByFileNumber: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("found %s, want %s", found.ID, created.ID)
	}

	if _, err := svc.FindByFileNumber("ANC9999"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown file number, got %v", err)
	}
}

func TestFindByFileNumberDuplicatesReturnEarliest(t *testing.T) {
	svc := newTestService()

	first, err := svc.Register(validPatient())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	dup := validPatient()
	dup.Name = "Second Jane"
	if _, err := svc.Register(dup); err != nil {
		t.Fatalf("Register duplicate: %v", err)
	}

	found, err := svc.FindByFileNumber("ANC0042")
	if err != nil {
		t.Fatalf("FindByFileNumber: %v", err)
	}
	if found.ID != first.ID {
		t.Errorf("duplicate lookup returned %s, want earliest %s", found.ID, first.ID)
	}
}

func TestUpdateRecomputesBMI(t *testing.T) {
	svc := newTestService()

	created, err := svc.Register(validPatient())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	weight := 70.0
	height := 170.0
	updated, err := svc.Update(created.ID, PatientUpdate{WeightKg: &weight, HeightCm: &height})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.BMI != 24.2 {
		t.Errorf("BMI after update = %v, want 24.2", updated.BMI)
	}
	if updated.ID != created.ID {
		t.Errorf("ID changed across update: %s -> %s", created.ID, updated.ID)
	}
}

func TestUpdateWeightPublishesSingleEvent(t *testing.T) {
	bus := store.NewBus()
	svc := NewService(NewMemRepository(store.NewAllocator(), bus))

	created, err := svc.Register(validPatient())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	var updates int
	bus.Subscribe(store.ListenerFunc(func(e store.Event) {
		if e.Action == store.ActionUpdated {
			updates++
		}
	}))

	weight := 70.0
	updated, err := svc.Update(created.ID, PatientUpdate{WeightKg: &weight})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.BMI != 25.7 {
		t.Errorf("BMI after weight change = %v, want 25.7", updated.BMI)
	}
	if updates != 1 {
		t.Errorf("weight change published %d update events, want 1", updates)
	}
}

func TestUpdateVisitSchedule(t *testing.T) {
	svc := newTestService()

	created, err := svc.Register(validPatient())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	sched := []ScheduledVisit{
		{ID: "v1", Date: created.CreatedAt.AddDate(0, 1, 0), Type: "follow-up", Status: "scheduled"},
	}
	updated, err := svc.Update(created.ID, PatientUpdate{VisitSchedule: &sched})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.VisitSchedule) != 1 || updated.VisitSchedule[0].ID != "v1" {
		t.Fatalf("VisitSchedule = %+v, want the scheduled visit", updated.VisitSchedule)
	}

	sched[0].Status = "mutated"
	again, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.VisitSchedule[0].Status != "scheduled" {
		t.Error("mutating the caller's schedule slice leaked into the store")
	}
}

func TestUpdateWithoutDimensionsKeepsBMI(t *testing.T) {
	svc := newTestService()

	created, err := svc.Register(validPatient())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	phone := "+254711111111"
	updated, err := svc.Update(created.ID, PatientUpdate{Phone: &phone})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.BMI != created.BMI {
		t.Errorf("BMI changed on unrelated update: %v -> %v", created.BMI, updated.BMI)
	}
}

func TestUpdateMissingPatient(t *testing.T) {
	svc := newTestService()

	name := "Nobody"
	if _, err := svc.Update("missing", PatientUpdate{Name: &name}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePatient(t *testing.T) {
	svc := newTestService()

	created, err := svc.Register(validPatient())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	svc := newTestService()

	p := validPatient()
	p.MedicalHistory = &MedicalHistory{Conditions: []string{"anemia"}}
	created, err := svc.Register(p)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.MedicalHistory.Conditions[0] = "mutated"

	again, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.MedicalHistory.Conditions[0] != "anemia" {
		t.Error("mutating a returned snapshot leaked into the store")
	}
}
