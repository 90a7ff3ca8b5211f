package delivery

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Linker errors. ErrPatientNotFound is a lookup miss, distinct from a bad
// session or a wrong-state call, so handlers can map each separately.
var (
	ErrSessionNotFound = errors.New("delivery session not found or expired")
	ErrPatientNotFound = errors.New("no patient with that file number")
	ErrInvalidState    = errors.New("operation not valid in current workflow state")
	ErrValidation      = errors.New("invalid delivery input")
)

// State is a linker session's workflow position.
type State string

const (
	// StateLookup is the first step: the clerk enters a file number and
	// the session resolves it to a patient.
	StateLookup State = "lookup"
	// StateDetails is the second step: the patient is pinned and the
	// outcome details are collected.
	StateDetails State = "details"
)

// Session is one in-flight record-a-delivery workflow.
type Session struct {
	ID        string           `json:"id"`
	State     State            `json:"state"`
	Patient   *PatientSnapshot `json:"patient,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// PatientDirectory resolves a clinic file number to a frozen patient
// snapshot. The patient registry provides the production implementation.
type PatientDirectory interface {
	SnapshotByFileNumber(fileNumber string) (PatientSnapshot, bool)
}

// DirectoryFunc adapts a plain lookup function to PatientDirectory.
type DirectoryFunc func(fileNumber string) (PatientSnapshot, bool)

func (f DirectoryFunc) SnapshotByFileNumber(fileNumber string) (PatientSnapshot, bool) {
	return f(fileNumber)
}

// Linker drives the two-step delivery workflow: look the patient up by
// file number, then collect the delivery details and write the record.
// Sessions are held in memory with a TTL; an abandoned session simply
// expires without writing anything.
type Linker struct {
	dir  PatientDirectory
	repo Repository
	ttl  time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewLinker builds a linker with the given session TTL.
func NewLinker(dir PatientDirectory, repo Repository, ttl time.Duration) *Linker {
	return &Linker{
		dir:      dir,
		repo:     repo,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Start opens a new workflow session in the lookup state.
func (l *Linker) Start() Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.New().String(),
		State:     StateLookup,
		CreatedAt: now,
		ExpiresAt: now.Add(l.ttl),
	}

	l.mu.Lock()
	l.pruneLocked(now)
	l.sessions[s.ID] = s
	l.mu.Unlock()

	return *s
}

// Get returns the current session snapshot.
func (l *Linker) Get(sessionID string) (Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, err := l.liveLocked(sessionID)
	if err != nil {
		return Session{}, err
	}
	return *s, nil
}

// Lookup resolves the file number and advances the session to the details
// state. A miss leaves the session in the lookup state so the clerk can
// retry with a corrected number.
func (l *Linker) Lookup(sessionID, fileNumber string) (Session, error) {
	snap, ok := l.dir.SnapshotByFileNumber(fileNumber)

	l.mu.Lock()
	defer l.mu.Unlock()
	s, err := l.liveLocked(sessionID)
	if err != nil {
		return Session{}, err
	}
	if s.State != StateLookup {
		return Session{}, fmt.Errorf("%w: lookup after patient already pinned", ErrInvalidState)
	}
	if !ok {
		return Session{}, ErrPatientNotFound
	}

	s.State = StateDetails
	s.Patient = &snap
	return *s, nil
}

// Back returns a details-state session to the lookup state, dropping the
// pinned patient.
func (l *Linker) Back(sessionID string) (Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, err := l.liveLocked(sessionID)
	if err != nil {
		return Session{}, err
	}
	if s.State != StateDetails {
		return Session{}, fmt.Errorf("%w: no patient pinned to step back from", ErrInvalidState)
	}
	s.State = StateLookup
	s.Patient = nil
	return *s, nil
}

// Submit validates the details, writes the record with the pinned patient
// snapshot, and closes the session.
func (l *Linker) Submit(sessionID string, d Details) (Record, error) {
	if err := validateDetails(d); err != nil {
		return Record{}, err
	}

	l.mu.Lock()
	s, err := l.liveLocked(sessionID)
	if err != nil {
		l.mu.Unlock()
		return Record{}, err
	}
	if s.State != StateDetails {
		l.mu.Unlock()
		return Record{}, fmt.Errorf("%w: submit before a patient is pinned", ErrInvalidState)
	}
	snap := *s.Patient
	delete(l.sessions, sessionID)
	l.mu.Unlock()

	rec := l.repo.Create(Record{Patient: snap, Details: d})
	log.Info().
		Str("delivery_id", string(rec.ID)).
		Str("file_number", snap.FileNumber).
		Str("delivery_type", string(d.DeliveryType)).
		Msg("delivery recorded")
	return rec, nil
}

// Cancel discards the session without writing anything. Cancelling an
// unknown or expired session reports ErrSessionNotFound.
func (l *Linker) Cancel(sessionID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.liveLocked(sessionID); err != nil {
		return err
	}
	delete(l.sessions, sessionID)
	return nil
}

// liveLocked fetches a session, treating expiry as absence. Caller holds mu.
func (l *Linker) liveLocked(sessionID string) (*Session, error) {
	s, ok := l.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().UTC().After(s.ExpiresAt) {
		delete(l.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// pruneLocked drops expired sessions. Caller holds mu.
func (l *Linker) pruneLocked(now time.Time) {
	for id, s := range l.sessions {
		if now.After(s.ExpiresAt) {
			delete(l.sessions, id)
		}
	}
}

func validateDetails(d Details) error {
	if d.DeliveryDate.IsZero() {
		return fmt.Errorf("%w: delivery date is required", ErrValidation)
	}
	if !d.DeliveryType.Valid() {
		return fmt.Errorf("%w: unknown delivery type %q", ErrValidation, d.DeliveryType)
	}
	if !d.BabyGender.Valid() {
		return fmt.Errorf("%w: unknown baby gender %q", ErrValidation, d.BabyGender)
	}
	if d.BabyWeightKg <= 0 {
		return fmt.Errorf("%w: baby weight must be positive", ErrValidation)
	}
	if d.ApgarScore < 0 || d.ApgarScore > 10 {
		return fmt.Errorf("%w: apgar score must be between 0 and 10", ErrValidation)
	}
	return nil
}
