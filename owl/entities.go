package owl

import (
	"fmt"
	"strings"

	"github.com/c360studio/semowl/rdf"
)

// Well-known OWL entity IRIs.
const (
	ThingIRI              = rdf.OWL + "Thing"
	NothingIRI            = rdf.OWL + "Nothing"
	TopObjectPropertyIRI  = rdf.OWL + "topObjectProperty"
	BottomObjectPropIRI   = rdf.OWL + "bottomObjectProperty"
	TopDataPropertyIRI    = rdf.OWL + "topDataProperty"
	BottomDataPropertyIRI = rdf.OWL + "bottomDataProperty"
)

// EntityKind names the kind of an OWL entity. Values match the OWL/XML
// element names.
type EntityKind string

const (
	EntityClass              EntityKind = "Class"
	EntityDatatype           EntityKind = "Datatype"
	EntityObjectProperty     EntityKind = "ObjectProperty"
	EntityDataProperty       EntityKind = "DataProperty"
	EntityAnnotationProperty EntityKind = "AnnotationProperty"
	EntityNamedIndividual    EntityKind = "NamedIndividual"
)

// Expression is implemented by every OWL 2 expression.
type Expression interface {
	// String renders the expression in OWL 2 functional syntax.
	String() string
	graph(w *graphWriter) rdf.Term
}

// Entity is a named OWL 2 expression.
type Entity interface {
	Expression
	EntityIRI() string
	EntityKind() EntityKind
}

// ClassExpression is a class or an anonymous class expression.
type ClassExpression interface {
	Expression
	classExpression()
}

// ObjectPropertyExpression is a named object property or its inverse.
type ObjectPropertyExpression interface {
	Expression
	objectPropertyExpression()
	// Named returns the underlying named property.
	Named() *ObjectProperty
	// Inverse reports whether the expression is an ObjectInverseOf.
	Inverse() bool
}

// DataRange is a datatype or an anonymous data range.
type DataRange interface {
	Expression
	dataRange()
}

// Individual is a named or anonymous individual.
type Individual interface {
	Expression
	individual()
	// Term returns the RDF term identifying the individual.
	Term() rdf.Term
}

func iriString(iri string) string { return "<" + iri + ">" }

func functional(name string, parts ...string) string {
	return name + "(" + strings.Join(parts, " ") + ")"
}

// Class is a named class.
type Class struct {
	IRI string
}

// NewClass returns a named class.
func NewClass(iri string) *Class { return &Class{IRI: iri} }

// Thing returns owl:Thing.
func Thing() *Class { return &Class{IRI: ThingIRI} }

// Nothing returns owl:Nothing.
func Nothing() *Class { return &Class{IRI: NothingIRI} }

func (c *Class) String() string                { return iriString(c.IRI) }
func (c *Class) EntityIRI() string             { return c.IRI }
func (c *Class) EntityKind() EntityKind        { return EntityClass }
func (c *Class) graph(w *graphWriter) rdf.Term { return rdf.IRI(c.IRI) }
func (c *Class) classExpression()              {}

// IsThing reports whether the class is owl:Thing.
func (c *Class) IsThing() bool { return c.IRI == ThingIRI }

// IsNothing reports whether the class is owl:Nothing.
func (c *Class) IsNothing() bool { return c.IRI == NothingIRI }

// ObjectProperty is a named object property.
type ObjectProperty struct {
	IRI string
}

// NewObjectProperty returns a named object property.
func NewObjectProperty(iri string) *ObjectProperty { return &ObjectProperty{IRI: iri} }

func (p *ObjectProperty) String() string                { return iriString(p.IRI) }
func (p *ObjectProperty) EntityIRI() string             { return p.IRI }
func (p *ObjectProperty) EntityKind() EntityKind        { return EntityObjectProperty }
func (p *ObjectProperty) graph(w *graphWriter) rdf.Term { return rdf.IRI(p.IRI) }
func (p *ObjectProperty) objectPropertyExpression()     {}
func (p *ObjectProperty) Named() *ObjectProperty        { return p }
func (p *ObjectProperty) Inverse() bool                 { return false }

// ObjectInverseOf is the inverse of a named object property.
type ObjectInverseOf struct {
	Property *ObjectProperty
}

// InverseOf returns the inverse expression of p.
func InverseOf(p *ObjectProperty) *ObjectInverseOf { return &ObjectInverseOf{Property: p} }

func (p *ObjectInverseOf) String() string {
	return functional("ObjectInverseOf", p.Property.String())
}
func (p *ObjectInverseOf) objectPropertyExpression() {}
func (p *ObjectInverseOf) Named() *ObjectProperty    { return p.Property }
func (p *ObjectInverseOf) Inverse() bool             { return true }

// DataProperty is a named data property.
type DataProperty struct {
	IRI string
}

// NewDataProperty returns a named data property.
func NewDataProperty(iri string) *DataProperty { return &DataProperty{IRI: iri} }

func (p *DataProperty) String() string                { return iriString(p.IRI) }
func (p *DataProperty) EntityIRI() string             { return p.IRI }
func (p *DataProperty) EntityKind() EntityKind        { return EntityDataProperty }
func (p *DataProperty) graph(w *graphWriter) rdf.Term { return rdf.IRI(p.IRI) }

// AnnotationProperty is a named annotation property.
type AnnotationProperty struct {
	IRI string
}

// NewAnnotationProperty returns a named annotation property.
func NewAnnotationProperty(iri string) *AnnotationProperty { return &AnnotationProperty{IRI: iri} }

func (p *AnnotationProperty) String() string                { return iriString(p.IRI) }
func (p *AnnotationProperty) EntityIRI() string             { return p.IRI }
func (p *AnnotationProperty) EntityKind() EntityKind        { return EntityAnnotationProperty }
func (p *AnnotationProperty) graph(w *graphWriter) rdf.Term { return rdf.IRI(p.IRI) }

// NamedIndividual is an individual identified by an IRI.
type NamedIndividual struct {
	IRI string
}

// NewIndividual returns a named individual.
func NewIndividual(iri string) *NamedIndividual { return &NamedIndividual{IRI: iri} }

func (i *NamedIndividual) String() string                { return iriString(i.IRI) }
func (i *NamedIndividual) EntityIRI() string             { return i.IRI }
func (i *NamedIndividual) EntityKind() EntityKind        { return EntityNamedIndividual }
func (i *NamedIndividual) graph(w *graphWriter) rdf.Term { return rdf.IRI(i.IRI) }
func (i *NamedIndividual) individual()                   {}
func (i *NamedIndividual) Term() rdf.Term                { return rdf.IRI(i.IRI) }

// AnonymousIndividual is an individual local to the ontology.
type AnonymousIndividual struct {
	NodeID string
}

// NewAnonymousIndividual returns an anonymous individual with the given node ID.
func NewAnonymousIndividual(nodeID string) *AnonymousIndividual {
	return &AnonymousIndividual{NodeID: strings.TrimPrefix(nodeID, "_:")}
}

func (i *AnonymousIndividual) String() string                { return "_:" + i.NodeID }
func (i *AnonymousIndividual) graph(w *graphWriter) rdf.Term { return rdf.Blank(i.NodeID) }
func (i *AnonymousIndividual) individual()                   {}
func (i *AnonymousIndividual) Term() rdf.Term                { return rdf.Blank(i.NodeID) }
func (i *AnonymousIndividual) annotationValue()              {}
func (i *AnonymousIndividual) annotationSubject()            {}

// IndividualFromTerm converts an IRI or blank node term into an Individual.
func IndividualFromTerm(t rdf.Term) (Individual, error) {
	switch t.Kind {
	case rdf.KindIRI:
		return NewIndividual(t.Value), nil
	case rdf.KindBlank:
		return NewAnonymousIndividual(t.Value), nil
	default:
		return nil, fmt.Errorf("term %s does not denote an individual", t)
	}
}

// Datatype is a named datatype.
type Datatype struct {
	IRI string
}

// NewDatatype returns a named datatype.
func NewDatatype(iri string) *Datatype { return &Datatype{IRI: iri} }

func (d *Datatype) String() string                { return iriString(d.IRI) }
func (d *Datatype) EntityIRI() string             { return d.IRI }
func (d *Datatype) EntityKind() EntityKind        { return EntityDatatype }
func (d *Datatype) graph(w *graphWriter) rdf.Term { return rdf.IRI(d.IRI) }
func (d *Datatype) dataRange()                    {}

// NewEntity builds an entity of the given kind.
func NewEntity(kind EntityKind, iri string) (Entity, error) {
	switch kind {
	case EntityClass:
		return NewClass(iri), nil
	case EntityDatatype:
		return NewDatatype(iri), nil
	case EntityObjectProperty:
		return NewObjectProperty(iri), nil
	case EntityDataProperty:
		return NewDataProperty(iri), nil
	case EntityAnnotationProperty:
		return NewAnnotationProperty(iri), nil
	case EntityNamedIndividual:
		return NewIndividual(iri), nil
	default:
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
}
