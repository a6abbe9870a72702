package where

import "errors"

var (
	// ErrEmptyInput is returned when at least one field or value is required
	// and none was given: an all-absent record passed to EnsureFromPartial,
	// an empty IN list, or an empty field name.
	ErrEmptyInput = errors.New("expect at least one field")

	// ErrUnknownSelectorShape is returned when a predicate is neither a
	// Comparison nor a Membership (in practice, a nil predicate).
	ErrUnknownSelectorShape = errors.New("unknown predicate shape")

	// ErrUnsupportedOperator is returned for an unrecognized comparison
	// operator or connective token.
	ErrUnsupportedOperator = errors.New("unsupported operator")
)
