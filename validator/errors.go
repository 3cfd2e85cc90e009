package validator

import "errors"

var (
	// ErrUnknownRule is returned when a rule selection names no known rule.
	ErrUnknownRule = errors.New("unknown validator rule")

	// ErrDuplicateRule is returned when two rules share a name.
	ErrDuplicateRule = errors.New("duplicate validator rule")
)
