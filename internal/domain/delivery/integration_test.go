package delivery

import (
	"errors"
	"testing"
	"time"

	"github.com/ancare/ancare/internal/domain/anc"
	"github.com/ancare/ancare/internal/platform/store"
)

func TestRegisterThenRecordDelivery(t *testing.T) {
	alloc := store.NewAllocator()
	bus := store.NewBus()
	patients := anc.NewService(anc.NewMemRepository(alloc, bus))
	repo := NewMemRepository(alloc, bus)
	linker := NewLinker(RegistryDirectory(patients), repo, time.Minute)

	registered, err := patients.Register(anc.Patient{
		FileNumber:  "ANC0042",
		Name:        "Jane Doe",
		Age:         28,
		WeightKg:    65,
		HeightCm:    165,
		TypeOfVisit: anc.VisitScreening,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.BMI != 23.9 {
		t.Fatalf("BMI = %v, want 23.9", registered.BMI)
	}

	s := linker.Start()
	if _, err := linker.Lookup(s.ID, "ANC0042"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	rec, err := linker.Submit(s.ID, validDetails())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Patient.PatientID != registered.ID {
		t.Errorf("snapshot patient ID = %s, want %s", rec.Patient.PatientID, registered.ID)
	}
	if rec.Patient.Name != "Jane Doe" {
		t.Errorf("snapshot name = %q, want Jane Doe", rec.Patient.Name)
	}
	if rec.Patient.BMI != 23.9 {
		t.Errorf("snapshot BMI = %v, want 23.9", rec.Patient.BMI)
	}
	if rec.Patient.WeightKg != 65 || rec.Patient.HeightCm != 165 {
		t.Errorf("snapshot dimensions = %v/%v, want 65/165", rec.Patient.WeightKg, rec.Patient.HeightCm)
	}
	if rec.Patient.TypeOfVisit != anc.VisitScreening {
		t.Errorf("snapshot visit type = %q, want screening", rec.Patient.TypeOfVisit)
	}
	if rec.ID == registered.ID {
		t.Error("record must carry its own identifier, not the patient's")
	}
}

func TestSnapshotFrozenAgainstLaterPatientEdits(t *testing.T) {
	alloc := store.NewAllocator()
	bus := store.NewBus()
	patients := anc.NewService(anc.NewMemRepository(alloc, bus))
	repo := NewMemRepository(alloc, bus)
	linker := NewLinker(RegistryDirectory(patients), repo, time.Minute)
	svc := NewService(repo)

	registered, err := patients.Register(anc.Patient{
		FileNumber: "ANC0042", Name: "Jane Doe", Age: 28, WeightKg: 65, HeightCm: 165,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	s := linker.Start()
	if _, err := linker.Lookup(s.ID, "ANC0042"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	rec, err := linker.Submit(s.ID, validDetails())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	weight := 80.0
	if _, err := patients.Update(registered.ID, anc.PatientUpdate{WeightKg: &weight}); err != nil {
		t.Fatalf("Update patient: %v", err)
	}

	kept, err := svc.Get(rec.ID)
	if err != nil {
		t.Fatalf("Get record: %v", err)
	}
	if kept.Patient.WeightKg != 65 || kept.Patient.BMI != 23.9 {
		t.Errorf("snapshot changed by a later patient edit: weight=%v bmi=%v",
			kept.Patient.WeightKg, kept.Patient.BMI)
	}
}

func TestDeliverySurvivesPatientDeletion(t *testing.T) {
	alloc := store.NewAllocator()
	bus := store.NewBus()
	patients := anc.NewService(anc.NewMemRepository(alloc, bus))
	repo := NewMemRepository(alloc, bus)
	linker := NewLinker(RegistryDirectory(patients), repo, time.Minute)
	svc := NewService(repo)

	registered, err := patients.Register(anc.Patient{
		FileNumber: "ANC0007", Name: "Halima Said", Age: 31, WeightKg: 70, HeightCm: 160,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	s := linker.Start()
	if _, err := linker.Lookup(s.ID, "ANC0007"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	rec, err := linker.Submit(s.ID, validDetails())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := patients.Delete(registered.ID); err != nil {
		t.Fatalf("Delete patient: %v", err)
	}
	if _, err := patients.Get(registered.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("patient should be gone, got %v", err)
	}

	// The record's weak reference dangles but the snapshot is intact.
	kept, err := svc.Get(rec.ID)
	if err != nil {
		t.Fatalf("Get record: %v", err)
	}
	if kept.Patient.Name != "Halima Said" {
		t.Errorf("snapshot lost after patient deletion: %+v", kept.Patient)
	}
	if got := svc.ListForPatient(registered.ID); len(got) != 1 {
		t.Errorf("ListForPatient = %d records, want 1 despite deleted patient", len(got))
	}
}
