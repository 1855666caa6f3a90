package timegrid

import "time"

// DateFormat is the wire format for calendar dates throughout the API.
const DateFormat = "2006-01-02"

// BusinessWeek returns the five business days (Monday through Friday) of the
// ISO week containing anchor. Weekend days are not represented at all; the
// grid has no Saturday or Sunday columns. Each returned date is normalized
// to midnight in anchor's location.
func BusinessWeek(anchor time.Time) [5]time.Time {
	monday := StartOfWeek(anchor)
	var days [5]time.Time
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// StartOfWeek returns the Monday of the ISO week containing t, at midnight
// in t's location. Weeks start on Monday regardless of locale; a Sunday
// anchor therefore belongs to the week that began six days earlier.
func StartOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

// ShiftWeek returns a new anchor offset by deltaWeeks whole weeks,
// preserving the time-of-day component. Navigation recomputes the week from
// the shifted anchor rather than mutating a stored week.
func ShiftWeek(anchor time.Time, deltaWeeks int) time.Time {
	return anchor.AddDate(0, 0, deltaWeeks*7)
}
