package owltime

import (
	"time"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// DeclareVocabulary declares the OWL-Time terms used by this package and
// the schema axioms relating them.
func DeclareVocabulary(o *owl.Ontology) {
	o.AddPrefix("time", Namespace)
	class := owl.NewClass
	prop := owl.NewObjectProperty
	for _, c := range []string{ClassTemporalEntity, ClassInstant, ClassInterval, ClassProperInterval} {
		o.Declare(class(c))
	}
	for _, p := range []string{HasBeginning, HasEnd, Before, After} {
		o.Declare(prop(p))
	}
	for _, p := range []string{InXSDDateTimeStamp, InXSDDateTime, HasXSDDuration} {
		o.Declare(owl.NewDataProperty(p))
	}
	o.AddAxioms(
		owl.NewSubClassOf(class(ClassInstant), class(ClassTemporalEntity)),
		owl.NewSubClassOf(class(ClassInterval), class(ClassTemporalEntity)),
		owl.NewSubClassOf(class(ClassProperInterval), class(ClassInterval)),
		owl.NewDisjointClasses(class(ClassInstant), class(ClassProperInterval)),
		&owl.ObjectPropertyDomain{Property: prop(HasBeginning), Class: class(ClassTemporalEntity)},
		&owl.ObjectPropertyRange{Property: prop(HasBeginning), Class: class(ClassInstant)},
		&owl.ObjectPropertyDomain{Property: prop(HasEnd), Class: class(ClassTemporalEntity)},
		&owl.ObjectPropertyRange{Property: prop(HasEnd), Class: class(ClassInstant)},
		&owl.InverseObjectProperties{First: prop(Before), Second: prop(After)},
		owl.NewCharacteristic(owl.KindTransitiveObjectProperty, prop(Before)),
		&owl.DataPropertyRange{Property: owl.NewDataProperty(InXSDDateTimeStamp), Range: owl.NewDatatype(rdf.XSDDateTimeS)},
	)
	for _, r := range Relations() {
		o.Declare(prop(r.IRI()))
		if r == Equals {
			o.AddAxiom(owl.NewCharacteristic(owl.KindSymmetricObjectProperty, prop(r.IRI())))
			continue
		}
		if r < r.Inverse() {
			o.AddAxiom(&owl.InverseObjectProperties{First: prop(r.IRI()), Second: prop(r.Inverse().IRI())})
		}
	}
}

func individual(o *owl.Ontology, iri string) *owl.NamedIndividual {
	ind := owl.NewIndividual(iri)
	o.Declare(ind)
	return ind
}

// PositionLiteral returns the xsd:dateTimeStamp literal of t.
func PositionLiteral(t time.Time) *owl.Literal {
	return owl.NewLiteral(t.Format(time.RFC3339Nano), rdf.XSDDateTimeS)
}

// DeclareInstant declares an instant positioned at t.
func DeclareInstant(o *owl.Ontology, iri string, t time.Time) *owl.NamedIndividual {
	ind := individual(o, iri)
	o.AddAxioms(
		owl.NewClassAssertion(owl.NewClass(ClassInstant), ind),
		owl.NewDataPropertyAssertion(owl.NewDataProperty(InXSDDateTimeStamp), ind, PositionLiteral(t)),
	)
	return ind
}

// DeclareInterval declares an interval bounded by existing instants. An
// empty bound is left open.
func DeclareInterval(o *owl.Ontology, iri, begin, end string) *owl.NamedIndividual {
	ind := individual(o, iri)
	o.AddAxiom(owl.NewClassAssertion(owl.NewClass(ClassInterval), ind))
	if begin != "" {
		o.AddAxiom(owl.NewObjectPropertyAssertion(owl.NewObjectProperty(HasBeginning), ind, individual(o, begin)))
	}
	if end != "" {
		o.AddAxiom(owl.NewObjectPropertyAssertion(owl.NewObjectProperty(HasEnd), ind, individual(o, end)))
	}
	return ind
}

// DeclareIntervalAt declares an interval together with its bounding
// instants, named iri+"-begin" and iri+"-end". Intervals of positive
// length are also typed as proper intervals.
func DeclareIntervalAt(o *owl.Ontology, iri string, begin, end time.Time) *owl.NamedIndividual {
	DeclareInstant(o, iri+"-begin", begin)
	DeclareInstant(o, iri+"-end", end)
	ind := DeclareInterval(o, iri, iri+"-begin", iri+"-end")
	if begin.Before(end) {
		o.AddAxiom(owl.NewClassAssertion(owl.NewClass(ClassProperInterval), ind))
	}
	return ind
}

// SetDuration records the xsd:duration of an entity.
func SetDuration(o *owl.Ontology, iri string, d time.Duration) *owl.DataPropertyAssertion {
	ax := owl.NewDataPropertyAssertion(owl.NewDataProperty(HasXSDDuration), individual(o, iri),
		owl.NewLiteral(FormatDuration(d), XSDDuration))
	o.AddAxiom(ax)
	return ax
}

// DeclareRelation asserts the Allen relation r from a to b.
func DeclareRelation(o *owl.Ontology, r Relation, a, b string) *owl.ObjectPropertyAssertion {
	ax := owl.NewObjectPropertyAssertion(owl.NewObjectProperty(r.IRI()), individual(o, a), individual(o, b))
	o.AddAxiom(ax)
	return ax
}

// DeclareBefore asserts that a ends before b begins.
func DeclareBefore(o *owl.Ontology, a, b string) *owl.ObjectPropertyAssertion {
	ax := owl.NewObjectPropertyAssertion(owl.NewObjectProperty(Before), individual(o, a), individual(o, b))
	o.AddAxiom(ax)
	return ax
}
