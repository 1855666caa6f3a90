package scheduling

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/timegrid"
)

// Errors returned by the appointment store.
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrMissingPatient      = errors.New("patient name is required")
	ErrInvalidType         = errors.New("appointment type is not in the enumeration")
	ErrInvalidTime         = errors.New("time is not on the slot grid")
	ErrInvalidDuration     = errors.New("duration must be positive")
	ErrInvalidDate         = errors.New("date must be YYYY-MM-DD")
)

// Store holds the authoritative in-memory appointment collection for the
// session. There is no persistence behind it; its lifetime is the server
// process. The mutex makes each operation atomic so concurrent HTTP
// requests observe no partial writes.
type Store struct {
	mu     sync.RWMutex
	byID   map[int64]*Appointment
	order  []int64 // insertion order for List
	nextID int64
	slots  []string // valid time labels, fixed at construction
}

// NewStore creates an empty store that validates appointment times against
// the given slot sequence.
func NewStore(slots []string) *Store {
	return &Store{
		byID:   make(map[int64]*Appointment),
		slots:  slots,
		nextID: 1,
	}
}

func (s *Store) validSlot(label string) bool {
	return timegrid.Contains(s.slots, label)
}

func validDate(d string) bool {
	_, err := time.Parse("2006-01-02", d)
	return err == nil
}

// Create validates the draft, assigns a fresh ID, and inserts the record.
// The returned value is a copy of the persisted appointment.
func (s *Store) Create(draft Draft) (Appointment, error) {
	if draft.Patient == "" {
		return Appointment{}, ErrMissingPatient
	}
	if !draft.Type.Valid() {
		return Appointment{}, fmt.Errorf("%w: %q", ErrInvalidType, draft.Type)
	}
	if !validDate(draft.Date) {
		return Appointment{}, fmt.Errorf("%w: %q", ErrInvalidDate, draft.Date)
	}
	if !s.validSlot(draft.Time) {
		return Appointment{}, fmt.Errorf("%w: %q", ErrInvalidTime, draft.Time)
	}
	if draft.Duration <= 0 {
		return Appointment{}, fmt.Errorf("%w: %d", ErrInvalidDuration, draft.Duration)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	appt := &Appointment{
		ID:        s.nextID,
		Patient:   draft.Patient,
		Type:      draft.Type,
		Date:      draft.Date,
		Time:      draft.Time,
		Duration:  draft.Duration,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.byID[appt.ID] = appt
	s.order = append(s.order, appt.ID)

	return *appt, nil
}

// Update applies the non-nil fields of patch to the record matching id. The
// ID itself is never mutable. Validation failures leave the record exactly
// as it was.
func (s *Store) Update(id int64, patch Patch) (Appointment, error) {
	if patch.Patient != nil && *patch.Patient == "" {
		return Appointment{}, ErrMissingPatient
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return Appointment{}, fmt.Errorf("%w: %q", ErrInvalidType, *patch.Type)
	}
	if patch.Date != nil && !validDate(*patch.Date) {
		return Appointment{}, fmt.Errorf("%w: %q", ErrInvalidDate, *patch.Date)
	}
	if patch.Time != nil && !s.validSlot(*patch.Time) {
		return Appointment{}, fmt.Errorf("%w: %q", ErrInvalidTime, *patch.Time)
	}
	if patch.Duration != nil && *patch.Duration <= 0 {
		return Appointment{}, fmt.Errorf("%w: %d", ErrInvalidDuration, *patch.Duration)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.byID[id]
	if !ok {
		return Appointment{}, ErrAppointmentNotFound
	}
	if patch.Patient != nil {
		appt.Patient = *patch.Patient
	}
	if patch.Type != nil {
		appt.Type = *patch.Type
	}
	if patch.Date != nil {
		appt.Date = *patch.Date
	}
	if patch.Time != nil {
		appt.Time = *patch.Time
	}
	if patch.Duration != nil {
		appt.Duration = *patch.Duration
	}
	appt.UpdatedAt = time.Now()

	return *appt, nil
}

// Delete removes the record matching id. Absence is reported as
// ErrAppointmentNotFound rather than silently ignored so the caller can
// decide how to surface it.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of the record matching id.
func (s *Store) Get(id int64) (Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	appt, ok := s.byID[id]
	if !ok {
		return Appointment{}, ErrAppointmentNotFound
	}
	return *appt, nil
}

// List returns all appointments in insertion order. Callers that need
// chronological order sort explicitly. The slice and its elements are
// copies; mutating them does not touch the store.
func (s *Store) List() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Appointment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out
}

// Len returns the number of stored appointments.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
