package swrl

import "errors"

var (
	// ErrUnknownBuiltIn is returned when a rule calls an unregistered built-in.
	ErrUnknownBuiltIn = errors.New("unknown built-in")

	// ErrArity is returned when a built-in is called with the wrong number of
	// arguments.
	ErrArity = errors.New("wrong number of built-in arguments")

	// ErrUnsafeRule is returned when a variable is used before any antecedent
	// atom or built-in binds it.
	ErrUnsafeRule = errors.New("unsafe rule")

	// ErrHeadAtom is returned for consequent atoms that cannot be asserted.
	ErrHeadAtom = errors.New("atom not allowed in rule head")

	// ErrParse is returned for malformed rule text.
	ErrParse = errors.New("rule syntax error")

	// ErrDuplicateBuiltIn is returned when a built-in IRI is registered twice.
	ErrDuplicateBuiltIn = errors.New("built-in already registered")
)
