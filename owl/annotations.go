package owl

import "github.com/c360studio/semowl/rdf"

// Common annotation properties.
const (
	RDFSLabel      = rdf.RDFS + "label"
	RDFSComment    = rdf.RDFS + "comment"
	RDFSSeeAlso    = rdf.RDFS + "seeAlso"
	OWLDeprecated  = rdf.OWL + "deprecated"
	OWLVersionInfo = rdf.OWL + "versionInfo"
)

// AnnotationValue is an IRI, a literal or an anonymous individual.
type AnnotationValue interface {
	Expression
	annotationValue()
}

// AnnotationSubject is an IRI or an anonymous individual.
type AnnotationSubject interface {
	Expression
	annotationSubject()
}

// IRIValue is a bare IRI used as an annotation subject or value.
type IRIValue string

func (v IRIValue) String() string                { return iriString(string(v)) }
func (v IRIValue) graph(w *graphWriter) rdf.Term { return rdf.IRI(string(v)) }
func (v IRIValue) annotationValue()              {}
func (v IRIValue) annotationSubject()            {}

// Annotation attaches a value to an ontology, an axiom or another annotation.
type Annotation struct {
	Property    *AnnotationProperty
	Value       AnnotationValue
	Annotations []Annotation
}

// NewAnnotation builds an annotation.
func NewAnnotation(p *AnnotationProperty, v AnnotationValue) Annotation {
	return Annotation{Property: p, Value: v}
}

func (a Annotation) String() string {
	parts := make([]string, 0, len(a.Annotations)+2)
	for _, nested := range a.Annotations {
		parts = append(parts, nested.String())
	}
	parts = append(parts, a.Property.String(), a.Value.String())
	return functional("Annotation", parts...)
}
