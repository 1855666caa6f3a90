package timegrid

import (
	"errors"
	"regexp"
	"testing"
)

func TestSlots_ReferenceConfiguration(t *testing.T) {
	slots, err := Slots(8, 18, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 20 {
		t.Fatalf("expected 20 slots, got %d", len(slots))
	}
	if slots[0] != "08:00" {
		t.Errorf("expected first slot 08:00, got %s", slots[0])
	}
	if slots[len(slots)-1] != "17:30" {
		t.Errorf("expected last slot 17:30, got %s", slots[len(slots)-1])
	}
}

func TestSlots_FormatAndOrdering(t *testing.T) {
	slots, err := Slots(8, 18, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pattern := regexp.MustCompile(`^([01]\d|2[0-3]):(00|30)$`)
	for i, s := range slots {
		if !pattern.MatchString(s) {
			t.Errorf("slot %q does not match HH:MM with minutes in {00,30}", s)
		}
		if i > 0 && slots[i-1] >= s {
			t.Errorf("slots not strictly increasing: %q then %q", slots[i-1], s)
		}
	}
}

func TestSlots_Deterministic(t *testing.T) {
	a, err := Slots(9, 12, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := Slots(9, 12, 15)
	if len(a) != 12 {
		t.Fatalf("expected 12 slots for 9-12 at 15min, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("slot %d differs between calls: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestSlots_InvalidRange(t *testing.T) {
	cases := []struct {
		name               string
		start, end, minute int
	}{
		{"end before start", 18, 8, 30},
		{"end equals start", 8, 8, 30},
		{"zero granularity", 8, 18, 0},
		{"negative granularity", 8, 18, -30},
		{"uneven division", 8, 18, 45},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Slots(tc.start, tc.end, tc.minute)
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestContains(t *testing.T) {
	slots, _ := Slots(8, 18, 30)
	if !Contains(slots, "09:30") {
		t.Error("expected 09:30 to be a valid slot")
	}
	if Contains(slots, "18:00") {
		t.Error("18:00 is past the top edge and must not be a slot")
	}
	if Contains(slots, "09:15") {
		t.Error("09:15 is off the grid and must not be a slot")
	}
}
