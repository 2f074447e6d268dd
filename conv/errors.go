package conv

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnsupportedType is returned when no conversion exists for a type
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrInvalidNumber is returned for unparsable numbers
	ErrInvalidNumber = errors.New("invalid number")
	// ErrInvalidBool is returned for unparsable booleans
	ErrInvalidBool = errors.New("invalid boolean")
	// ErrInvalidTime is returned for unparsable date/time values
	ErrInvalidTime = errors.New("invalid time")
)

// ConversionError represents a failed field conversion
type ConversionError struct {
	// Field is mapped field name, empty when converting outside a record
	Field string
	// Text is raw field text
	Text string
	// Type is the destination (reading) or source (writing) type
	Type reflect.Type
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to convert %q to %v: %v", e.Text, e.Type, e.Err)
	}
	return fmt.Sprintf("failed to convert field %v value %q to %v: %v", e.Field, e.Text, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
