package reasoner

import "errors"

var (
	// ErrUnknownRule is returned when a rule selection names no known rule.
	ErrUnknownRule = errors.New("unknown reasoner rule")

	// ErrDuplicateRule is returned when two rules share a name.
	ErrDuplicateRule = errors.New("duplicate reasoner rule")
)
