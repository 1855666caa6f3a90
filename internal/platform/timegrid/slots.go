// Package timegrid derives the calendar scaffolding for the appointment
// grid: the fixed sequence of bookable time-of-day slots for a working day
// and the Monday-to-Friday business week around an anchor date. Everything
// here is a pure function of its inputs; the server computes the slot
// sequence once at startup and reuses it for every request.
package timegrid

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when the working-day bounds or the slot
// granularity cannot produce a whole number of slots.
var ErrInvalidRange = errors.New("timegrid: invalid slot range")

// Slots returns the ordered sequence of HH:MM labels for a working day that
// runs from startHour (inclusive) to endHour (exclusive) at the given
// granularity. The half-open convention means 08:00-18:00 at 30 minutes
// yields 20 labels, 08:00 through 17:30; there is no 18:00 slot. The edit
// form and the occupancy grid share this sequence, so the convention only
// has to be chosen once.
func Slots(startHour, endHour, granularityMinutes int) ([]string, error) {
	if endHour <= startHour {
		return nil, fmt.Errorf("%w: end hour %d must be after start hour %d", ErrInvalidRange, endHour, startHour)
	}
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: granularity %d must be positive", ErrInvalidRange, granularityMinutes)
	}
	span := (endHour - startHour) * 60
	if span%granularityMinutes != 0 {
		return nil, fmt.Errorf("%w: %d minutes not divisible by %d-minute slots", ErrInvalidRange, span, granularityMinutes)
	}

	count := span / granularityMinutes
	labels := make([]string, 0, count)
	for i := 0; i < count; i++ {
		minutes := startHour*60 + i*granularityMinutes
		labels = append(labels, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
	}
	return labels, nil
}

// Contains reports whether label is a member of the slot sequence.
func Contains(slots []string, label string) bool {
	for _, s := range slots {
		if s == label {
			return true
		}
	}
	return false
}
