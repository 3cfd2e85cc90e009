package skos

import (
	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// LabelKind names one of the SKOS lexical label properties.
type LabelKind string

const (
	LabelPref   LabelKind = "pref"
	LabelAlt    LabelKind = "alt"
	LabelHidden LabelKind = "hidden"
)

// IRI returns the annotation property of the label kind.
func (k LabelKind) IRI() string {
	switch k {
	case LabelAlt:
		return AltLabel
	case LabelHidden:
		return HiddenLabel
	default:
		return PrefLabel
	}
}

var (
	objectProperties = []string{
		Broader, Narrower, Related, BroaderTransitive, NarrowerTransitive,
		ExactMatch, CloseMatch, BroadMatch, NarrowMatch, RelatedMatch,
		InScheme, HasTopConcept, TopConceptOf,
	}
	annotationProperties = []string{PrefLabel, AltLabel, HiddenLabel, Definition}
)

// DeclareVocabulary declares the SKOS classes and properties in o along
// with the schema axioms relating them.
func DeclareVocabulary(o *owl.Ontology) {
	o.AddPrefix("skos", Namespace)
	o.Declare(owl.NewClass(ClassConcept))
	o.Declare(owl.NewClass(ClassConceptScheme))
	for _, p := range objectProperties {
		o.Declare(owl.NewObjectProperty(p))
	}
	for _, p := range annotationProperties {
		o.Declare(owl.NewAnnotationProperty(p))
	}
	o.Declare(owl.NewDataProperty(Notation))

	prop := owl.NewObjectProperty
	o.AddAxioms(
		owl.NewDisjointClasses(owl.NewClass(ClassConcept), owl.NewClass(ClassConceptScheme)),
		&owl.InverseObjectProperties{First: prop(Broader), Second: prop(Narrower)},
		&owl.InverseObjectProperties{First: prop(BroaderTransitive), Second: prop(NarrowerTransitive)},
		&owl.InverseObjectProperties{First: prop(BroadMatch), Second: prop(NarrowMatch)},
		&owl.InverseObjectProperties{First: prop(HasTopConcept), Second: prop(TopConceptOf)},
		owl.NewSubObjectPropertyOf(prop(Broader), prop(BroaderTransitive)),
		owl.NewSubObjectPropertyOf(prop(Narrower), prop(NarrowerTransitive)),
		owl.NewSubObjectPropertyOf(prop(BroadMatch), prop(Broader)),
		owl.NewSubObjectPropertyOf(prop(NarrowMatch), prop(Narrower)),
		owl.NewSubObjectPropertyOf(prop(RelatedMatch), prop(Related)),
		owl.NewSubObjectPropertyOf(prop(ExactMatch), prop(CloseMatch)),
		owl.NewSubObjectPropertyOf(prop(TopConceptOf), prop(InScheme)),
		owl.NewCharacteristic(owl.KindTransitiveObjectProperty, prop(BroaderTransitive)),
		owl.NewCharacteristic(owl.KindTransitiveObjectProperty, prop(NarrowerTransitive)),
		owl.NewCharacteristic(owl.KindTransitiveObjectProperty, prop(ExactMatch)),
		owl.NewCharacteristic(owl.KindSymmetricObjectProperty, prop(Related)),
		owl.NewCharacteristic(owl.KindSymmetricObjectProperty, prop(ExactMatch)),
		owl.NewCharacteristic(owl.KindSymmetricObjectProperty, prop(CloseMatch)),
		owl.NewCharacteristic(owl.KindSymmetricObjectProperty, prop(RelatedMatch)),
		&owl.ObjectPropertyRange{Property: prop(InScheme), Class: owl.NewClass(ClassConceptScheme)},
		&owl.ObjectPropertyDomain{Property: prop(HasTopConcept), Class: owl.NewClass(ClassConceptScheme)},
		&owl.ObjectPropertyRange{Property: prop(HasTopConcept), Class: owl.NewClass(ClassConcept)},
	)
}

func individual(o *owl.Ontology, iri string) *owl.NamedIndividual {
	ind := owl.NewIndividual(iri)
	o.Declare(ind)
	return ind
}

func relate(o *owl.Ontology, property, s, t string) *owl.ObjectPropertyAssertion {
	ax := owl.NewObjectPropertyAssertion(owl.NewObjectProperty(property), individual(o, s), individual(o, t))
	o.AddAxiom(ax)
	return ax
}

// DeclareConceptScheme declares a concept scheme individual.
func DeclareConceptScheme(o *owl.Ontology, iri string) *owl.NamedIndividual {
	ind := individual(o, iri)
	o.AddAxiom(owl.NewClassAssertion(owl.NewClass(ClassConceptScheme), ind))
	return ind
}

// DeclareConcept declares a concept individual, placing it in scheme when
// scheme is not empty.
func DeclareConcept(o *owl.Ontology, iri, scheme string) *owl.NamedIndividual {
	ind := individual(o, iri)
	o.AddAxiom(owl.NewClassAssertion(owl.NewClass(ClassConcept), ind))
	if scheme != "" {
		relate(o, InScheme, iri, scheme)
	}
	return ind
}

// DeclareTopConcept marks concept as a top concept of scheme.
func DeclareTopConcept(o *owl.Ontology, scheme, concept string) *owl.ObjectPropertyAssertion {
	return relate(o, HasTopConcept, scheme, concept)
}

// DeclareBroader states that broader is more general than concept.
func DeclareBroader(o *owl.Ontology, concept, broader string) *owl.ObjectPropertyAssertion {
	return relate(o, Broader, concept, broader)
}

// DeclareNarrower states that narrower is more specific than concept.
func DeclareNarrower(o *owl.Ontology, concept, narrower string) *owl.ObjectPropertyAssertion {
	return relate(o, Narrower, concept, narrower)
}

// DeclareRelated states an associative link between two concepts.
func DeclareRelated(o *owl.Ontology, a, b string) *owl.ObjectPropertyAssertion {
	return relate(o, Related, a, b)
}

// DeclareMapping links concepts of different schemes with one of the
// mapping relations (ExactMatch, CloseMatch, BroadMatch, NarrowMatch,
// RelatedMatch).
func DeclareMapping(o *owl.Ontology, relation, a, b string) *owl.ObjectPropertyAssertion {
	return relate(o, relation, a, b)
}

// AddLabel attaches a lexical label to a concept.
func AddLabel(o *owl.Ontology, kind LabelKind, concept, text, lang string) *owl.AnnotationAssertion {
	var v *owl.Literal
	if lang != "" {
		v = owl.NewLangLiteral(text, lang)
	} else {
		v = owl.NewLiteral(text, rdf.XSDString)
	}
	ax := owl.NewAnnotationAssertion(owl.NewAnnotationProperty(kind.IRI()), owl.IRIValue(concept), v)
	o.AddAxiom(ax)
	return ax
}

// AddPrefLabel attaches a preferred label.
func AddPrefLabel(o *owl.Ontology, concept, text, lang string) *owl.AnnotationAssertion {
	return AddLabel(o, LabelPref, concept, text, lang)
}

// AddAltLabel attaches an alternative label.
func AddAltLabel(o *owl.Ontology, concept, text, lang string) *owl.AnnotationAssertion {
	return AddLabel(o, LabelAlt, concept, text, lang)
}

// AddHiddenLabel attaches a hidden label.
func AddHiddenLabel(o *owl.Ontology, concept, text, lang string) *owl.AnnotationAssertion {
	return AddLabel(o, LabelHidden, concept, text, lang)
}

// AddNotation attaches a notation. An empty datatype means xsd:string.
func AddNotation(o *owl.Ontology, concept, code, datatype string) *owl.DataPropertyAssertion {
	if datatype == "" {
		datatype = rdf.XSDString
	}
	ax := owl.NewDataPropertyAssertion(owl.NewDataProperty(Notation), individual(o, concept), owl.NewLiteral(code, datatype))
	o.AddAxiom(ax)
	return ax
}
