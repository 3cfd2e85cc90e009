package owlxml

import "errors"

var (
	// ErrUnknownElement is returned for elements outside the OWL/XML vocabulary.
	ErrUnknownElement = errors.New("unknown OWL/XML element")

	// ErrMalformed is returned when an element has the wrong operands.
	ErrMalformed = errors.New("malformed OWL/XML element")

	// ErrNotOntology is returned when the document root is not Ontology.
	ErrNotOntology = errors.New("document root is not an Ontology element")
)
