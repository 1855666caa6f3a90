package validation

import (
	"errors"
	"testing"

	"github.com/labstack/echo/v4"
)

type payload struct {
	Name string `validate:"required"`
	Time string `validate:"required,slot_time"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	if err := v.Validate(payload{Name: "x", Time: "09:30"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_FailureIsHTTPError(t *testing.T) {
	v := New()
	err := v.Validate(payload{Time: "09:30"})
	if err == nil {
		t.Fatal("expected an error for a missing required field")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != 400 {
		t.Errorf("expected a 400 HTTPError, got %v", err)
	}
}

func TestSlotTimeTag(t *testing.T) {
	v := New()

	valid := []string{"00:00", "08:00", "17:30", "23:59"}
	for _, s := range valid {
		if err := v.Validate(payload{Name: "x", Time: s}); err != nil {
			t.Errorf("%q should validate, got %v", s, err)
		}
	}

	invalid := []string{"8:00", "24:00", "12:60", "noon", "12-30", "123:0"}
	for _, s := range invalid {
		if err := v.Validate(payload{Name: "x", Time: s}); err == nil {
			t.Errorf("%q should fail slot_time validation", s)
		}
	}
}
