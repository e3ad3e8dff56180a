package bulkmanager

import "errors"

var (
	// ErrMalformedInput marks a tabular row missing a required field.
	ErrMalformedInput = errors.New("malformed input")

	// ErrValidation aborts a run before any target is dispatched.
	ErrValidation = errors.New("validation failed")
)
