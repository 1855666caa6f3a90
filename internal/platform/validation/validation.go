// Package validation binds go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound payloads.
package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator implements echo.Validator using struct tags.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterValidation("slot_time", validateSlotTime)
	return &Validator{validate: v}
}

// Validate checks struct tags and returns a 400 HTTPError on failure so
// echo reports the field-level message instead of a bare 500.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}
	return nil
}

// validateSlotTime accepts HH:MM wall-clock labels.
func validateSlotTime(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	for _, c := range []byte{s[0], s[1], s[3], s[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	return hour < 24 && minute < 60
}
