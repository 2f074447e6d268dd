package recordmap

import "errors"

var (
	// ErrFrozen is raised (as a panic value) when a mapping is changed after decoding or encoding started
	ErrFrozen = errors.New("class map is frozen")
	// ErrNotStruct is returned when a mapped type is not a struct
	ErrNotStruct = errors.New("supplied type is not struct")
	// ErrMissingColumn is returned when a required column is absent from a header or record
	ErrMissingColumn = errors.New("column was missing")
	// ErrTypeMismatch is returned when a value does not match the class map type
	ErrTypeMismatch = errors.New("type mismatch")
)
