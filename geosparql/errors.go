package geosparql

import "errors"

var (
	// ErrMalformedGeometry reports a geometry literal that cannot be parsed.
	ErrMalformedGeometry = errors.New("malformed geometry literal")

	// ErrNoGeometry reports a feature without a readable geometry.
	ErrNoGeometry = errors.New("no geometry")

	// ErrUnknownUnit reports a distance unit outside the OGC units supported.
	ErrUnknownUnit = errors.New("unknown distance unit")
)
