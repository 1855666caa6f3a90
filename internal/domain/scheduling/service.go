package scheduling

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/notify"
	"github.com/clinicdesk/clinicdesk/internal/platform/timegrid"
)

// Errors returned by the booking coordinator.
var (
	ErrInvalidFilter = errors.New("filter is not \"all\" or a known appointment type")
	ErrNoOpenDialog  = errors.New("no dialog is open")
	ErrDialogBusy    = errors.New("another dialog is already open")
)

// DialogKind distinguishes the booking form from the edit form.
type DialogKind string

const (
	DialogBooking DialogKind = "booking"
	DialogEdit    DialogKind = "edit"
)

// Dialog is the open form state: Closed -> Open(prefilled) -> Confirmed or
// Cancelled -> Closed. Store operations are synchronous, so there is no
// intermediate "saving" state to model.
type Dialog struct {
	Kind DialogKind `json:"kind"`
	// Booking prefill
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`
	// Edit prefill
	Appointment *Appointment `json:"appointment,omitempty"`
}

// Service is the booking coordinator: it gates new bookings on slot
// availability, routes edit and delete intents to the store, owns the
// session's display filter and week anchor, and emits the success toasts.
type Service struct {
	store *Store
	hub   *notify.Hub
	slots []string

	mu     sync.RWMutex
	filter Filter
	anchor time.Time
	dialog *Dialog
}

// NewService creates a coordinator over the given store, slot sequence, and
// notification hub. The session starts unfiltered with the current week.
func NewService(store *Store, slots []string, hub *notify.Hub) *Service {
	return &Service{
		store:  store,
		hub:    hub,
		slots:  slots,
		filter: FilterAll,
		anchor: time.Now(),
	}
}

// Store exposes the underlying appointment store for direct reads.
func (s *Service) Store() *Store { return s.store }

// Slots returns the fixed slot sequence for the working day.
func (s *Service) Slots() []string { return s.slots }

// -- Session state --

// SetFilter changes the active display filter. It never touches the store.
func (s *Service) SetFilter(f Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, f)
	}
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	return nil
}

// ActiveFilter returns the session's current display filter.
func (s *Service) ActiveFilter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetAnchor moves the displayed week to the one containing anchor.
func (s *Service) SetAnchor(anchor time.Time) {
	s.mu.Lock()
	s.anchor = anchor
	s.mu.Unlock()
}

// Anchor returns the session's current week anchor.
func (s *Service) Anchor() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.anchor
}

// Week returns the displayed business week.
func (s *Service) Week() [5]time.Time {
	return timegrid.BusinessWeek(s.Anchor())
}

// ShiftWeek navigates the session forward or back by whole weeks.
func (s *Service) ShiftWeek(deltaWeeks int) [5]time.Time {
	s.mu.Lock()
	s.anchor = timegrid.ShiftWeek(s.anchor, deltaWeeks)
	anchor := s.anchor
	s.mu.Unlock()
	return timegrid.BusinessWeek(anchor)
}

// Grid assembles the occupancy grid for the displayed week under the
// session's active filter.
func (s *Service) Grid() []GridDay {
	return WeekGrid(s.Week(), s.slots, s.ActiveFilter(), s.store.List())
}

// -- Booking gate --

// CanBookNewAt reports whether a new booking may be initiated at the cell.
// Availability is always evaluated against the unfiltered appointment set:
// a slot hidden by the active display filter still refuses a new booking.
func (s *Service) CanBookNewAt(day time.Time, slot string) bool {
	return len(OccupantsOf(day, slot, FilterAll, s.store.List())) == 0
}

// RequestNewBooking opens a booking dialog prefilled with (day, slot) and
// reports whether it opened. A click on an occupied slot is silently
// ignored; that is UX policy, not a failure, so no error is returned for
// it. Only a dialog already being open is an error.
func (s *Service) RequestNewBooking(day time.Time, slot string) (bool, error) {
	if !s.CanBookNewAt(day, slot) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog != nil {
		return false, ErrDialogBusy
	}
	s.dialog = &Dialog{
		Kind: DialogBooking,
		Date: day.Format(timegrid.DateFormat),
		Time: slot,
	}
	return true, nil
}

// RequestEdit opens an edit dialog prefilled with the full record.
func (s *Service) RequestEdit(id int64) (*Dialog, error) {
	appt, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog != nil {
		return nil, ErrDialogBusy
	}
	s.dialog = &Dialog{Kind: DialogEdit, Appointment: &appt}
	return s.dialog, nil
}

// OpenDialog returns the currently open dialog, or nil.
func (s *Service) OpenDialog() *Dialog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dialog
}

// CancelDialog closes the open dialog without saving.
func (s *Service) CancelDialog() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog == nil {
		return ErrNoOpenDialog
	}
	s.dialog = nil
	return nil
}

func (s *Service) closeDialog() {
	s.mu.Lock()
	s.dialog = nil
	s.mu.Unlock()
}

func (s *Service) closeDialogFor(id int64) {
	s.mu.Lock()
	if s.dialog != nil && s.dialog.Appointment != nil && s.dialog.Appointment.ID == id {
		s.dialog = nil
	}
	s.mu.Unlock()
}

// -- Confirmed intents --

// ConfirmNewBooking creates the appointment and closes the booking dialog.
func (s *Service) ConfirmNewBooking(draft Draft) (Appointment, error) {
	appt, err := s.store.Create(draft)
	if err != nil {
		return Appointment{}, err
	}
	s.closeDialog()
	s.hub.Info("New appointment created successfully")
	return appt, nil
}

// ConfirmEdit applies the patch and closes the edit dialog. A record that
// vanished underneath the form is not an error worth surfacing to the
// session: the dialog is closed and a non-fatal notice emitted.
func (s *Service) ConfirmEdit(id int64, patch Patch) (Appointment, error) {
	appt, err := s.store.Update(id, patch)
	if errors.Is(err, ErrAppointmentNotFound) {
		s.closeDialogFor(id)
		s.hub.Warn("Appointment no longer exists")
		return Appointment{}, err
	}
	if err != nil {
		return Appointment{}, err
	}
	s.closeDialog()
	s.hub.Info("Appointment updated successfully")
	return appt, nil
}

// ConfirmDelete removes the record and closes any dialog referencing it.
func (s *Service) ConfirmDelete(id int64) error {
	err := s.store.Delete(id)
	if errors.Is(err, ErrAppointmentNotFound) {
		s.closeDialogFor(id)
		s.hub.Warn("Appointment no longer exists")
		return err
	}
	if err != nil {
		return err
	}
	s.closeDialogFor(id)
	s.hub.Info("Appointment deleted successfully")
	return nil
}
