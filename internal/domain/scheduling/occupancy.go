package scheduling

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/timegrid"
)

// OccupantsOf returns the appointments occupying the (day, slot) cell. A
// record occupies the cell when its date and time both match; a 60-minute
// appointment does not spill into the following 30-minute slot. When filter
// is narrower than "all", appointments of other types are hidden from the
// result. Hidden, not removed: the booking gate always asks with FilterAll.
func OccupantsOf(day time.Time, slot string, filter Filter, appts []Appointment) []Appointment {
	date := day.Format(timegrid.DateFormat)
	var out []Appointment
	for _, a := range appts {
		if a.Date != date || a.Time != slot {
			continue
		}
		if !filter.Matches(a.Type) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// GridCell is one (day, slot) cell of the rendered calendar.
type GridCell struct {
	Time         string        `json:"time"`
	Appointments []Appointment `json:"appointments,omitempty"`
	Available    bool          `json:"available"`
}

// GridDay is one business-day column of the calendar.
type GridDay struct {
	Date  string     `json:"date"`
	Cells []GridCell `json:"cells"`
}

// WeekGrid assembles the full five-column occupancy grid for a business
// week. Availability is evaluated against the unfiltered set even when a
// display filter hides the occupants, so a cell never looks bookable while
// something sits in it.
func WeekGrid(week [5]time.Time, slots []string, filter Filter, appts []Appointment) []GridDay {
	days := make([]GridDay, 0, len(week))
	for _, day := range week {
		cells := make([]GridCell, 0, len(slots))
		for _, slot := range slots {
			cells = append(cells, GridCell{
				Time:         slot,
				Appointments: OccupantsOf(day, slot, filter, appts),
				Available:    len(OccupantsOf(day, slot, FilterAll, appts)) == 0,
			})
		}
		days = append(days, GridDay{Date: day.Format(timegrid.DateFormat), Cells: cells})
	}
	return days
}
