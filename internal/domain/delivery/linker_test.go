package delivery

import (
	"errors"
	"testing"
	"time"

	"github.com/ancare/ancare/internal/domain/anc"
	"github.com/ancare/ancare/internal/platform/store"
)

// fakeDirectory is a map-backed patient directory.
type fakeDirectory struct {
	patients map[string]PatientSnapshot
}

func (f *fakeDirectory) SnapshotByFileNumber(fileNumber string) (PatientSnapshot, bool) {
	p, ok := f.patients[fileNumber]
	return p, ok
}

func newTestLinker(ttl time.Duration) (*Linker, *fakeDirectory, Repository) {
	dir := &fakeDirectory{patients: map[string]PatientSnapshot{
		"ANC0001": {
			PatientID: "0000000000001-0000",
			Patient:   anc.Patient{ID: "0000000000001-0000", FileNumber: "ANC0001", Name: "Amina Hassan", Age: 27},
		},
		"ANC0042": {
			PatientID: "0000000000042-0000",
			Patient:   anc.Patient{ID: "0000000000042-0000", FileNumber: "ANC0042", Name: "Jane Doe", Age: 28, BMI: 23.9},
		},
	}}
	repo := NewMemRepository(store.NewAllocator(), store.NewBus())
	return NewLinker(dir, repo, ttl), dir, repo
}

func validDetails() Details {
	return Details{
		DeliveryDate: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		DeliveryType: TypeNormal,
		BabyWeightKg: 3.2,
		BabyGender:   GenderFemale,
		ApgarScore:   9,
	}
}

func TestLinkerHappyPath(t *testing.T) {
	l, _, repo := newTestLinker(time.Minute)

	s := l.Start()
	if s.State != StateLookup {
		t.Fatalf("new session state = %q, want lookup", s.State)
	}

	s, err := l.Lookup(s.ID, "ANC0042")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if s.State != StateDetails {
		t.Errorf("state after lookup = %q, want details", s.State)
	}
	if s.Patient == nil || s.Patient.Name != "Jane Doe" {
		t.Fatalf("pinned patient = %+v, want Jane Doe", s.Patient)
	}

	rec, err := l.Submit(s.ID, validDetails())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected allocated record ID")
	}
	if rec.Patient.FileNumber != "ANC0042" {
		t.Errorf("record file number = %q, want ANC0042", rec.Patient.FileNumber)
	}
	if repo.Len() != 1 {
		t.Errorf("repo has %d records, want 1", repo.Len())
	}

	// Session is consumed by a successful submit.
	if _, err := l.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after submit, got %v", err)
	}
}

func TestLinkerLookupMissKeepsSessionRetryable(t *testing.T) {
	l, _, _ := newTestLinker(time.Minute)

	s := l.Start()
	if _, err := l.Lookup(s.ID, "ANC9999"); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}

	// Still in lookup, so a corrected number works.
	got, err := l.Lookup(s.ID, "ANC0001")
	if err != nil {
		t.Fatalf("retry Lookup: %v", err)
	}
	if got.State != StateDetails {
		t.Errorf("state after retry = %q, want details", got.State)
	}
}

func TestLinkerSubmitBeforeLookup(t *testing.T) {
	l, _, repo := newTestLinker(time.Minute)

	s := l.Start()
	if _, err := l.Submit(s.ID, validDetails()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if repo.Len() != 0 {
		t.Error("premature submit must not write a record")
	}
}

func TestLinkerBack(t *testing.T) {
	l, _, _ := newTestLinker(time.Minute)

	s := l.Start()
	if _, err := l.Back(s.ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("back from lookup state: expected ErrInvalidState, got %v", err)
	}

	if _, err := l.Lookup(s.ID, "ANC0001"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	got, err := l.Back(s.ID)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if got.State != StateLookup || got.Patient != nil {
		t.Errorf("after back: state=%q patient=%v, want lookup with no patient", got.State, got.Patient)
	}

	// The workflow can pin a different patient afterwards.
	got, err = l.Lookup(s.ID, "ANC0042")
	if err != nil {
		t.Fatalf("re-Lookup: %v", err)
	}
	if got.Patient.Name != "Jane Doe" {
		t.Errorf("re-pinned %q, want Jane Doe", got.Patient.Name)
	}
}

func TestLinkerDoubleLookup(t *testing.T) {
	l, _, _ := newTestLinker(time.Minute)

	s := l.Start()
	if _, err := l.Lookup(s.ID, "ANC0001"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if _, err := l.Lookup(s.ID, "ANC0042"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second lookup: expected ErrInvalidState, got %v", err)
	}
}

func TestLinkerCancel(t *testing.T) {
	l, _, repo := newTestLinker(time.Minute)

	s := l.Start()
	if err := l.Cancel(s.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := l.Cancel(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second cancel: expected ErrSessionNotFound, got %v", err)
	}
	if repo.Len() != 0 {
		t.Error("cancelled workflow must not write a record")
	}
}

func TestLinkerSessionExpiry(t *testing.T) {
	l, _, _ := newTestLinker(time.Millisecond)

	s := l.Start()
	time.Sleep(5 * time.Millisecond)

	if _, err := l.Lookup(s.ID, "ANC0001"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for expired session, got %v", err)
	}
}

func TestLinkerSnapshotFrozenAgainstDirectoryEdits(t *testing.T) {
	l, dir, _ := newTestLinker(time.Minute)

	s := l.Start()
	if _, err := l.Lookup(s.ID, "ANC0042"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	// Patient record changes between lookup and submit.
	p := dir.patients["ANC0042"]
	p.Name = "Jane Married-Name"
	dir.patients["ANC0042"] = p

	rec, err := l.Submit(s.ID, validDetails())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Patient.Name != "Jane Doe" {
		t.Errorf("record snapshot = %q, want the name at lookup time", rec.Patient.Name)
	}
}

func TestRecordCarriesFullPatientSnapshot(t *testing.T) {
	l, _, _ := newTestLinker(time.Minute)

	s := l.Start()
	if _, err := l.Lookup(s.ID, "ANC0042"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	rec, err := l.Submit(s.ID, validDetails())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Patient.BMI != 23.9 {
		t.Errorf("snapshot BMI = %v, want 23.9", rec.Patient.BMI)
	}
	if rec.Patient.PatientID != rec.Patient.Patient.ID {
		t.Errorf("weak reference %s does not match frozen patient id %s",
			rec.Patient.PatientID, rec.Patient.Patient.ID)
	}
}

func TestRecordComplicationsIsolated(t *testing.T) {
	l, _, repo := newTestLinker(time.Minute)
	svc := NewService(repo)

	s := l.Start()
	if _, err := l.Lookup(s.ID, "ANC0001"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	d := validDetails()
	d.Complications = []string{"prolonged labor"}
	rec, err := l.Submit(s.ID, d)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got, err := svc.Get(rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.Details.Complications[0] = "mutated"

	again, err := svc.Get(rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Details.Complications[0] != "prolonged labor" {
		t.Error("mutating a returned record's complications leaked into the store")
	}
}

func TestSubmitValidation(t *testing.T) {
	l, _, _ := newTestLinker(time.Minute)

	cases := []struct {
		name   string
		mutate func(*Details)
	}{
		{"zero date", func(d *Details) { d.DeliveryDate = time.Time{} }},
		{"bad type", func(d *Details) { d.DeliveryType = "water-birth" }},
		{"bad gender", func(d *Details) { d.BabyGender = "unknown" }},
		{"zero weight", func(d *Details) { d.BabyWeightKg = 0 }},
		{"apgar too high", func(d *Details) { d.ApgarScore = 11 }},
		{"apgar negative", func(d *Details) { d.ApgarScore = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := l.Start()
			if _, err := l.Lookup(s.ID, "ANC0001"); err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			d := validDetails()
			tc.mutate(&d)
			if _, err := l.Submit(s.ID, d); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			// Rejected details leave the session open for another try.
			if _, err := l.Get(s.ID); err != nil {
				t.Errorf("session should survive a rejected submit: %v", err)
			}
		})
	}
}
