package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MsgInvalidPatronID = "Invalid patron ID. Must be exactly 6 digits."

var patronIDPattern = regexp.MustCompile(`^[0-9]{6}$`)

// ValidatePatronID accepts exactly six ASCII digits.
func ValidatePatronID(patronID string) error {
	return validation.Validate(patronID,
		validation.Required.Error(MsgInvalidPatronID),
		validation.Match(patronIDPattern).Error(MsgInvalidPatronID),
	)
}
