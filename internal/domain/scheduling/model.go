package scheduling

import "time"

// AppointmentType is the closed set of encounter categories. Values outside
// the set are rejected at the store boundary rather than trusted from the
// form layer.
type AppointmentType string

const (
	TypeCheckup      AppointmentType = "checkup"
	TypeFollowup     AppointmentType = "followup"
	TypeConsultation AppointmentType = "consultation"
	TypeEmergency    AppointmentType = "emergency"
)

var validTypes = map[AppointmentType]bool{
	TypeCheckup:      true,
	TypeFollowup:     true,
	TypeConsultation: true,
	TypeEmergency:    true,
}

// Valid reports whether t is a member of the enumeration.
func (t AppointmentType) Valid() bool { return validTypes[t] }

// Types returns the enumeration in display order.
func Types() []AppointmentType {
	return []AppointmentType{TypeCheckup, TypeFollowup, TypeConsultation, TypeEmergency}
}

// FilterAll shows every appointment type on the grid.
const FilterAll = "all"

// Filter narrows which appointments the occupancy resolver returns for
// display. It never affects what the store contains, and the booking gate
// deliberately ignores it.
type Filter string

// Valid reports whether f is "all" or a member of the type enumeration.
func (f Filter) Valid() bool {
	return f == FilterAll || AppointmentType(f).Valid()
}

// Matches reports whether an appointment of type t is visible under f.
func (f Filter) Matches(t AppointmentType) bool {
	return f == FilterAll || AppointmentType(f) == t
}

// Appointment is a scheduled patient encounter. Date carries the calendar
// day (YYYY-MM-DD) and Time one of the generated HH:MM slot labels. The ID
// is assigned at creation and never changes.
type Appointment struct {
	ID        int64           `json:"id"`
	Patient   string          `json:"patient"`
	Type      AppointmentType `json:"type"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Duration  int             `json:"duration_minutes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Draft is the form-layer payload for a new appointment.
type Draft struct {
	Patient  string          `json:"patient" validate:"required"`
	Type     AppointmentType `json:"type" validate:"required"`
	Date     string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string          `json:"time" validate:"required,slot_time"`
	Duration int             `json:"duration_minutes" validate:"required,gt=0"`
}

// Patch carries the fields of an edit-form submission. Nil fields are left
// untouched; the ID is never patchable.
type Patch struct {
	Patient  *string          `json:"patient,omitempty" validate:"omitempty,min=1"`
	Type     *AppointmentType `json:"type,omitempty"`
	Date     *string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time     *string          `json:"time,omitempty" validate:"omitempty,slot_time"`
	Duration *int             `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
}
