package pricing

import (
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxRoomSide bounds a room's width and length, in metres.
const MaxRoomSide = 100.0

func finite(value interface{}) error {
	v, ok := value.(float64)
	if !ok {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("must be a finite number")
	}
	return nil
}

// Validate checks the geometry the engine relies on. Enumerated fields are
// not checked: unknown values price at the neutral multiplier.
func (r RoomInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Width, validation.By(finite), validation.Required, validation.Min(0.0).Exclusive(), validation.Max(MaxRoomSide)),
		validation.Field(&r.Length, validation.By(finite), validation.Required, validation.Min(0.0).Exclusive(), validation.Max(MaxRoomSide)),
	)
}

func (in ProjectInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Rooms, validation.Required),
	)
}

// ValidateInput rejects input the engine cannot price meaningfully. The
// returned error is a validation.Errors keyed by JSON field name.
func ValidateInput(in ProjectInput) error {
	return in.Validate()
}

// IsValidationError reports whether err came from ValidateInput.
func IsValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}
