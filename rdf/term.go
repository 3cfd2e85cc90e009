// Package rdf provides the RDF term, triple and graph model that OWL
// ontologies are mapped onto for export and inspection.
package rdf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Well-known namespaces used across the toolkit.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  = "http://www.w3.org/2002/07/owl#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
	SWRL = "http://www.w3.org/2003/11/swrl#"
	// SWRLB is the namespace of the standard SWRL built-ins.
	SWRLB = "http://www.w3.org/2003/11/swrlb#"
)

// Frequently used vocabulary IRIs.
const (
	RDFType      = RDF + "type"
	RDFFirst     = RDF + "first"
	RDFRest      = RDF + "rest"
	RDFNil       = RDF + "nil"
	RDFLangStr   = RDF + "langString"
	RDFPlainLit  = RDF + "PlainLiteral"
	RDFSLiteral  = RDFS + "Literal"
	XSDString    = XSD + "string"
	XSDBoolean   = XSD + "boolean"
	XSDInteger   = XSD + "integer"
	XSDInt       = XSD + "int"
	XSDLong      = XSD + "long"
	XSDShort     = XSD + "short"
	XSDByte      = XSD + "byte"
	XSDDecimal   = XSD + "decimal"
	XSDDouble    = XSD + "double"
	XSDFloat     = XSD + "float"
	XSDDateTime  = XSD + "dateTime"
	XSDDateTimeS = XSD + "dateTimeStamp"
	XSDDate      = XSD + "date"
	XSDAnyURI    = XSD + "anyURI"

	XSDNonNegativeInteger = XSD + "nonNegativeInteger"
	XSDPositiveInteger    = XSD + "positiveInteger"
	XSDNegativeInteger    = XSD + "negativeInteger"
	XSDNonPositiveInteger = XSD + "nonPositiveInteger"
	XSDUnsignedInt        = XSD + "unsignedInt"
	XSDUnsignedLong       = XSD + "unsignedLong"
)

// Kind classifies a Term.
type Kind uint8

const (
	// KindIRI is a named resource.
	KindIRI Kind = iota + 1
	// KindBlank is a blank node.
	KindBlank
	// KindLiteral is a literal value.
	KindLiteral
)

// Term is an RDF term. Terms are comparable and can be used as map keys.
type Term struct {
	Kind     Kind
	Value    string
	Datatype string
	Lang     string
}

// IRI returns a named resource term.
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// Blank returns a blank node term with the given label.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: strings.TrimPrefix(label, "_:")}
}

// NewBlank returns a blank node with a fresh random label.
func NewBlank() Term {
	return Blank("b" + strings.ReplaceAll(uuid.New().String(), "-", ""))
}

// Literal returns a typed literal. An empty datatype means xsd:string.
func Literal(value, datatype string) Term {
	if datatype == "" {
		datatype = XSDString
	}
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral returns a language-tagged literal.
func LangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: RDFLangStr, Lang: strings.ToLower(lang)}
}

// IsIRI reports whether the term is a named resource.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsZero reports whether the term is unset.
func (t Term) IsZero() bool { return t.Kind == 0 }

// String renders the term in N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		lit := `"` + EscapeLiteral(t.Value) + `"`
		if t.Lang != "" {
			return lit + "@" + t.Lang
		}
		if t.Datatype != "" && t.Datatype != XSDString {
			return lit + "^^<" + t.Datatype + ">"
		}
		return lit
	default:
		return ""
	}
}

// EscapeLiteral escapes the characters N-Triples and Turtle require escaped
// inside a quoted literal.
func EscapeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// Triple is a single RDF statement.
type Triple struct {
	S Term
	P Term
	O Term
}

// NewTriple builds a triple, rejecting positions that RDF does not allow.
func NewTriple(s, p, o Term) (Triple, error) {
	if s.IsLiteral() || s.IsZero() {
		return Triple{}, fmt.Errorf("invalid subject %s", s)
	}
	if !p.IsIRI() {
		return Triple{}, fmt.Errorf("invalid predicate %s", p)
	}
	if o.IsZero() {
		return Triple{}, fmt.Errorf("missing object")
	}
	return Triple{S: s, P: p, O: o}, nil
}

// String renders the triple as one N-Triples line without the newline.
func (t Triple) String() string {
	return t.S.String() + " " + t.P.String() + " " + t.O.String() + " ."
}
