package timegrid

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessWeek_Length(t *testing.T) {
	week := BusinessWeek(date(2026, time.February, 4)) // a Wednesday
	if week[0].Weekday() != time.Monday {
		t.Errorf("expected week to start on Monday, got %v", week[0].Weekday())
	}
	for i, day := range week {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			t.Errorf("day %d is a weekend day: %v", i, day)
		}
		if i > 0 {
			diff := day.Sub(week[i-1])
			if diff != 24*time.Hour {
				t.Errorf("days %d and %d are not consecutive: %v apart", i-1, i, diff)
			}
		}
	}
}

func TestBusinessWeek_AnchorAnywhereInWeek(t *testing.T) {
	monday := date(2026, time.February, 2)
	// Every anchor Monday through Sunday resolves to the same week.
	for offset := 0; offset < 7; offset++ {
		anchor := monday.AddDate(0, 0, offset)
		week := BusinessWeek(anchor)
		if !week[0].Equal(monday) {
			t.Errorf("anchor %v (%v): expected Monday %v, got %v",
				anchor.Format(DateFormat), anchor.Weekday(), monday.Format(DateFormat), week[0].Format(DateFormat))
		}
		if !week[4].Equal(monday.AddDate(0, 0, 4)) {
			t.Errorf("anchor %v: wrong Friday %v", anchor.Format(DateFormat), week[4].Format(DateFormat))
		}
	}
}

func TestStartOfWeek_SundayBelongsToPriorMonday(t *testing.T) {
	sunday := date(2026, time.February, 8)
	got := StartOfWeek(sunday)
	want := date(2026, time.February, 2)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestShiftWeek_PreservesTimeOfDay(t *testing.T) {
	anchor := time.Date(2026, time.March, 10, 14, 45, 0, 0, time.UTC)
	shifted := ShiftWeek(anchor, 2)
	if shifted.Hour() != 14 || shifted.Minute() != 45 {
		t.Errorf("time-of-day not preserved: %v", shifted)
	}
	if got := shifted.Sub(anchor); got != 14*24*time.Hour {
		t.Errorf("expected 14 days offset, got %v", got)
	}
}

func TestShiftWeek_RoundTrip(t *testing.T) {
	anchors := []time.Time{
		date(2026, time.January, 1),
		date(2026, time.February, 7),
		date(2025, time.December, 29),
		time.Date(2026, time.June, 15, 9, 30, 0, 0, time.UTC),
	}
	for _, anchor := range anchors {
		back := ShiftWeek(ShiftWeek(anchor, 1), -1)
		a := BusinessWeek(anchor)
		b := BusinessWeek(back)
		for i := range a {
			if !a[i].Equal(b[i]) {
				t.Errorf("anchor %v: round-trip week differs at day %d", anchor, i)
			}
		}
	}
}

func TestBusinessWeek_YearBoundary(t *testing.T) {
	// 2026-01-01 is a Thursday; its week starts Monday 2025-12-29.
	week := BusinessWeek(date(2026, time.January, 1))
	if !week[0].Equal(date(2025, time.December, 29)) {
		t.Errorf("expected week start 2025-12-29, got %v", week[0].Format(DateFormat))
	}
	if !week[4].Equal(date(2026, time.January, 2)) {
		t.Errorf("expected Friday 2026-01-02, got %v", week[4].Format(DateFormat))
	}
}
