package owl

import (
	"strings"

	"github.com/c360studio/semowl/rdf"
)

// AxiomKind names an axiom type. Values match the OWL/XML element names.
type AxiomKind string

const (
	KindDeclaration AxiomKind = "Declaration"

	KindSubClassOf        AxiomKind = "SubClassOf"
	KindEquivalentClasses AxiomKind = "EquivalentClasses"
	KindDisjointClasses   AxiomKind = "DisjointClasses"
	KindDisjointUnion     AxiomKind = "DisjointUnion"

	KindSubObjectPropertyOf             AxiomKind = "SubObjectPropertyOf"
	KindEquivalentObjectProperties      AxiomKind = "EquivalentObjectProperties"
	KindDisjointObjectProperties        AxiomKind = "DisjointObjectProperties"
	KindInverseObjectProperties         AxiomKind = "InverseObjectProperties"
	KindObjectPropertyDomain            AxiomKind = "ObjectPropertyDomain"
	KindObjectPropertyRange             AxiomKind = "ObjectPropertyRange"
	KindFunctionalObjectProperty        AxiomKind = "FunctionalObjectProperty"
	KindInverseFunctionalObjectProperty AxiomKind = "InverseFunctionalObjectProperty"
	KindReflexiveObjectProperty         AxiomKind = "ReflexiveObjectProperty"
	KindIrreflexiveObjectProperty       AxiomKind = "IrreflexiveObjectProperty"
	KindSymmetricObjectProperty         AxiomKind = "SymmetricObjectProperty"
	KindAsymmetricObjectProperty        AxiomKind = "AsymmetricObjectProperty"
	KindTransitiveObjectProperty        AxiomKind = "TransitiveObjectProperty"
	KindSubDataPropertyOf               AxiomKind = "SubDataPropertyOf"
	KindEquivalentDataProperties        AxiomKind = "EquivalentDataProperties"
	KindDisjointDataProperties          AxiomKind = "DisjointDataProperties"
	KindDataPropertyDomain              AxiomKind = "DataPropertyDomain"
	KindDataPropertyRange               AxiomKind = "DataPropertyRange"
	KindFunctionalDataProperty          AxiomKind = "FunctionalDataProperty"
	KindDatatypeDefinition              AxiomKind = "DatatypeDefinition"
	KindHasKey                          AxiomKind = "HasKey"
	KindClassAssertion                  AxiomKind = "ClassAssertion"
	KindObjectPropertyAssertion         AxiomKind = "ObjectPropertyAssertion"
	KindNegativeObjectPropertyAssertion AxiomKind = "NegativeObjectPropertyAssertion"
	KindDataPropertyAssertion           AxiomKind = "DataPropertyAssertion"
	KindNegativeDataPropertyAssertion   AxiomKind = "NegativeDataPropertyAssertion"
	KindSameIndividual                  AxiomKind = "SameIndividual"
	KindDifferentIndividuals            AxiomKind = "DifferentIndividuals"
	KindAnnotationAssertion             AxiomKind = "AnnotationAssertion"
	KindSubAnnotationPropertyOf         AxiomKind = "SubAnnotationPropertyOf"
	KindAnnotationPropertyDomain        AxiomKind = "AnnotationPropertyDomain"
	KindAnnotationPropertyRange         AxiomKind = "AnnotationPropertyRange"
)

// objectCharacteristicType maps characteristic kinds to their RDF class.
var objectCharacteristicType = map[AxiomKind]string{
	KindFunctionalObjectProperty:        rdf.OWL + "FunctionalProperty",
	KindInverseFunctionalObjectProperty: rdf.OWL + "InverseFunctionalProperty",
	KindReflexiveObjectProperty:         rdf.OWL + "ReflexiveProperty",
	KindIrreflexiveObjectProperty:       rdf.OWL + "IrreflexiveProperty",
	KindSymmetricObjectProperty:         rdf.OWL + "SymmetricProperty",
	KindAsymmetricObjectProperty:        rdf.OWL + "AsymmetricProperty",
	KindTransitiveObjectProperty:        rdf.OWL + "TransitiveProperty",
}

// IsObjectCharacteristic reports whether kind is one of the seven object
// property characteristic axioms.
func IsObjectCharacteristic(kind AxiomKind) bool {
	_, ok := objectCharacteristicType[kind]
	return ok
}

// Axiom is implemented by every OWL 2 axiom.
type Axiom interface {
	Kind() AxiomKind
	// String renders the axiom in functional syntax, without annotations.
	// The rendering is the axiom's identity.
	String() string
	Annotations() []Annotation
	IsInferred() bool
	base() *AxiomBase
	graph(w *graphWriter)
}

// AxiomBase carries the annotations and provenance shared by all axioms.
type AxiomBase struct {
	AxiomAnnotations []Annotation
	Inferred         bool
}

func (b *AxiomBase) Annotations() []Annotation { return b.AxiomAnnotations }
func (b *AxiomBase) IsInferred() bool          { return b.Inferred }
func (b *AxiomBase) base() *AxiomBase          { return b }

// Annotate appends annotations to an axiom and returns it.
func Annotate[T Axiom](ax T, annotations ...Annotation) T {
	b := ax.base()
	b.AxiomAnnotations = append(b.AxiomAnnotations, annotations...)
	return ax
}

// MarkInferred flags an axiom as produced by reasoning and returns it.
func MarkInferred[T Axiom](ax T) T {
	ax.base().Inferred = true
	return ax
}

// Declaration declares an entity.
type Declaration struct {
	AxiomBase
	Entity Entity
}

// Declare builds a Declaration axiom.
func Declare(e Entity) *Declaration { return &Declaration{Entity: e} }

func (a *Declaration) Kind() AxiomKind { return KindDeclaration }
func (a *Declaration) String() string {
	return functional("Declaration", functional(string(a.Entity.EntityKind()), a.Entity.String()))
}

// SubClassOf states that every instance of Sub is an instance of Super.
type SubClassOf struct {
	AxiomBase
	Sub   ClassExpression
	Super ClassExpression
}

// NewSubClassOf builds a SubClassOf axiom.
func NewSubClassOf(sub, super ClassExpression) *SubClassOf {
	return &SubClassOf{Sub: sub, Super: super}
}

func (a *SubClassOf) Kind() AxiomKind { return KindSubClassOf }
func (a *SubClassOf) String() string {
	return functional("SubClassOf", a.Sub.String(), a.Super.String())
}

// EquivalentClasses states that class expressions share their instances.
type EquivalentClasses struct {
	AxiomBase
	Classes []ClassExpression
}

// NewEquivalentClasses builds an EquivalentClasses axiom.
func NewEquivalentClasses(classes ...ClassExpression) *EquivalentClasses {
	return &EquivalentClasses{Classes: classes}
}

func (a *EquivalentClasses) Kind() AxiomKind { return KindEquivalentClasses }
func (a *EquivalentClasses) String() string {
	return functional("EquivalentClasses", classList(a.Classes)...)
}

// DisjointClasses states that class expressions share no instances.
type DisjointClasses struct {
	AxiomBase
	Classes []ClassExpression
}

// NewDisjointClasses builds a DisjointClasses axiom.
func NewDisjointClasses(classes ...ClassExpression) *DisjointClasses {
	return &DisjointClasses{Classes: classes}
}

func (a *DisjointClasses) Kind() AxiomKind { return KindDisjointClasses }
func (a *DisjointClasses) String() string {
	return functional("DisjointClasses", classList(a.Classes)...)
}

// DisjointUnion states that Class is the disjoint union of Classes.
type DisjointUnion struct {
	AxiomBase
	Class   *Class
	Classes []ClassExpression
}

func (a *DisjointUnion) Kind() AxiomKind { return KindDisjointUnion }
func (a *DisjointUnion) String() string {
	return functional("DisjointUnion", append([]string{a.Class.String()}, classList(a.Classes)...)...)
}

// SubObjectPropertyOf states a property inclusion. When Chain is non-empty
// the sub property is the composition of the chain and Sub is nil.
type SubObjectPropertyOf struct {
	AxiomBase
	Sub   ObjectPropertyExpression
	Chain []ObjectPropertyExpression
	Super ObjectPropertyExpression
}

// NewSubObjectPropertyOf builds a simple property inclusion.
func NewSubObjectPropertyOf(sub, super ObjectPropertyExpression) *SubObjectPropertyOf {
	return &SubObjectPropertyOf{Sub: sub, Super: super}
}

// NewPropertyChain builds a property chain inclusion.
func NewPropertyChain(super ObjectPropertyExpression, chain ...ObjectPropertyExpression) *SubObjectPropertyOf {
	return &SubObjectPropertyOf{Chain: chain, Super: super}
}

func (a *SubObjectPropertyOf) Kind() AxiomKind { return KindSubObjectPropertyOf }
func (a *SubObjectPropertyOf) String() string {
	if len(a.Chain) > 0 {
		return functional("SubObjectPropertyOf", functional("ObjectPropertyChain", objectPropertyList(a.Chain)...), a.Super.String())
	}
	return functional("SubObjectPropertyOf", a.Sub.String(), a.Super.String())
}

func objectPropertyList(ps []ObjectPropertyExpression) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func dataPropertyList(ps []*DataProperty) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

// EquivalentObjectProperties states that properties share their extension.
type EquivalentObjectProperties struct {
	AxiomBase
	Properties []ObjectPropertyExpression
}

func (a *EquivalentObjectProperties) Kind() AxiomKind { return KindEquivalentObjectProperties }
func (a *EquivalentObjectProperties) String() string {
	return functional("EquivalentObjectProperties", objectPropertyList(a.Properties)...)
}

// DisjointObjectProperties states that properties never relate the same pair.
type DisjointObjectProperties struct {
	AxiomBase
	Properties []ObjectPropertyExpression
}

func (a *DisjointObjectProperties) Kind() AxiomKind { return KindDisjointObjectProperties }
func (a *DisjointObjectProperties) String() string {
	return functional("DisjointObjectProperties", objectPropertyList(a.Properties)...)
}

// InverseObjectProperties states that two properties are inverses.
type InverseObjectProperties struct {
	AxiomBase
	First  ObjectPropertyExpression
	Second ObjectPropertyExpression
}

func (a *InverseObjectProperties) Kind() AxiomKind { return KindInverseObjectProperties }
func (a *InverseObjectProperties) String() string {
	return functional("InverseObjectProperties", a.First.String(), a.Second.String())
}

// ObjectPropertyDomain states the domain of an object property.
type ObjectPropertyDomain struct {
	AxiomBase
	Property ObjectPropertyExpression
	Class    ClassExpression
}

func (a *ObjectPropertyDomain) Kind() AxiomKind { return KindObjectPropertyDomain }
func (a *ObjectPropertyDomain) String() string {
	return functional("ObjectPropertyDomain", a.Property.String(), a.Class.String())
}

// ObjectPropertyRange states the range of an object property.
type ObjectPropertyRange struct {
	AxiomBase
	Property ObjectPropertyExpression
	Class    ClassExpression
}

func (a *ObjectPropertyRange) Kind() AxiomKind { return KindObjectPropertyRange }
func (a *ObjectPropertyRange) String() string {
	return functional("ObjectPropertyRange", a.Property.String(), a.Class.String())
}

// ObjectPropertyCharacteristic is one of the functional, inverse
// functional, reflexive, irreflexive, symmetric, asymmetric or transitive
// object property axioms, selected by Characteristic.
type ObjectPropertyCharacteristic struct {
	AxiomBase
	Characteristic AxiomKind
	Property       ObjectPropertyExpression
}

// NewCharacteristic builds a characteristic axiom. It panics when kind is not
// a characteristic kind.
func NewCharacteristic(kind AxiomKind, p ObjectPropertyExpression) *ObjectPropertyCharacteristic {
	if !IsObjectCharacteristic(kind) {
		panic("owl: " + string(kind) + " is not an object property characteristic")
	}
	return &ObjectPropertyCharacteristic{Characteristic: kind, Property: p}
}

func (a *ObjectPropertyCharacteristic) Kind() AxiomKind { return a.Characteristic }
func (a *ObjectPropertyCharacteristic) String() string {
	return functional(string(a.Characteristic), a.Property.String())
}

// SubDataPropertyOf states a data property inclusion.
type SubDataPropertyOf struct {
	AxiomBase
	Sub   *DataProperty
	Super *DataProperty
}

func (a *SubDataPropertyOf) Kind() AxiomKind { return KindSubDataPropertyOf }
func (a *SubDataPropertyOf) String() string {
	return functional("SubDataPropertyOf", a.Sub.String(), a.Super.String())
}

// EquivalentDataProperties states that data properties share their extension.
type EquivalentDataProperties struct {
	AxiomBase
	Properties []*DataProperty
}

func (a *EquivalentDataProperties) Kind() AxiomKind { return KindEquivalentDataProperties }
func (a *EquivalentDataProperties) String() string {
	return functional("EquivalentDataProperties", dataPropertyList(a.Properties)...)
}

// DisjointDataProperties states that data properties never share a pair.
type DisjointDataProperties struct {
	AxiomBase
	Properties []*DataProperty
}

func (a *DisjointDataProperties) Kind() AxiomKind { return KindDisjointDataProperties }
func (a *DisjointDataProperties) String() string {
	return functional("DisjointDataProperties", dataPropertyList(a.Properties)...)
}

// DataPropertyDomain states the domain of a data property.
type DataPropertyDomain struct {
	AxiomBase
	Property *DataProperty
	Class    ClassExpression
}

func (a *DataPropertyDomain) Kind() AxiomKind { return KindDataPropertyDomain }
func (a *DataPropertyDomain) String() string {
	return functional("DataPropertyDomain", a.Property.String(), a.Class.String())
}

// DataPropertyRange states the range of a data property.
type DataPropertyRange struct {
	AxiomBase
	Property *DataProperty
	Range    DataRange
}

func (a *DataPropertyRange) Kind() AxiomKind { return KindDataPropertyRange }
func (a *DataPropertyRange) String() string {
	return functional("DataPropertyRange", a.Property.String(), a.Range.String())
}

// FunctionalDataProperty states that a data property has at most one value.
type FunctionalDataProperty struct {
	AxiomBase
	Property *DataProperty
}

func (a *FunctionalDataProperty) Kind() AxiomKind { return KindFunctionalDataProperty }
func (a *FunctionalDataProperty) String() string {
	return functional("FunctionalDataProperty", a.Property.String())
}

// DatatypeDefinition defines a datatype as a data range.
type DatatypeDefinition struct {
	AxiomBase
	Datatype *Datatype
	Range    DataRange
}

func (a *DatatypeDefinition) Kind() AxiomKind { return KindDatatypeDefinition }
func (a *DatatypeDefinition) String() string {
	return functional("DatatypeDefinition", a.Datatype.String(), a.Range.String())
}

// HasKey states that instances of Class are identified by property values.
type HasKey struct {
	AxiomBase
	Class            ClassExpression
	ObjectProperties []ObjectPropertyExpression
	DataProperties   []*DataProperty
}

func (a *HasKey) Kind() AxiomKind { return KindHasKey }
func (a *HasKey) String() string {
	return functional("HasKey", a.Class.String(),
		"("+strings.Join(objectPropertyList(a.ObjectProperties), " ")+")",
		"("+strings.Join(dataPropertyList(a.DataProperties), " ")+")")
}

// ClassAssertion states that an individual is an instance of a class.
type ClassAssertion struct {
	AxiomBase
	Class      ClassExpression
	Individual Individual
}

// NewClassAssertion builds a ClassAssertion.
func NewClassAssertion(c ClassExpression, ind Individual) *ClassAssertion {
	return &ClassAssertion{Class: c, Individual: ind}
}

func (a *ClassAssertion) Kind() AxiomKind { return KindClassAssertion }
func (a *ClassAssertion) String() string {
	return functional("ClassAssertion", a.Class.String(), a.Individual.String())
}

// ObjectPropertyAssertion relates two individuals.
type ObjectPropertyAssertion struct {
	AxiomBase
	Property ObjectPropertyExpression
	Source   Individual
	Target   Individual
}

// NewObjectPropertyAssertion builds an ObjectPropertyAssertion.
func NewObjectPropertyAssertion(p ObjectPropertyExpression, source, target Individual) *ObjectPropertyAssertion {
	return &ObjectPropertyAssertion{Property: p, Source: source, Target: target}
}

func (a *ObjectPropertyAssertion) Kind() AxiomKind { return KindObjectPropertyAssertion }
func (a *ObjectPropertyAssertion) String() string {
	return functional("ObjectPropertyAssertion", a.Property.String(), a.Source.String(), a.Target.String())
}

// Normalized returns the subject and object in the direction of the named
// property, unwrapping ObjectInverseOf.
func (a *ObjectPropertyAssertion) Normalized() (p *ObjectProperty, source, target Individual) {
	if a.Property.Inverse() {
		return a.Property.Named(), a.Target, a.Source
	}
	return a.Property.Named(), a.Source, a.Target
}

// NegativeObjectPropertyAssertion denies a relation between two individuals.
type NegativeObjectPropertyAssertion struct {
	AxiomBase
	Property ObjectPropertyExpression
	Source   Individual
	Target   Individual
}

func (a *NegativeObjectPropertyAssertion) Kind() AxiomKind {
	return KindNegativeObjectPropertyAssertion
}
func (a *NegativeObjectPropertyAssertion) String() string {
	return functional("NegativeObjectPropertyAssertion", a.Property.String(), a.Source.String(), a.Target.String())
}

// DataPropertyAssertion attaches a literal to an individual.
type DataPropertyAssertion struct {
	AxiomBase
	Property *DataProperty
	Source   Individual
	Value    *Literal
}

// NewDataPropertyAssertion builds a DataPropertyAssertion.
func NewDataPropertyAssertion(p *DataProperty, source Individual, v *Literal) *DataPropertyAssertion {
	return &DataPropertyAssertion{Property: p, Source: source, Value: v}
}

func (a *DataPropertyAssertion) Kind() AxiomKind { return KindDataPropertyAssertion }
func (a *DataPropertyAssertion) String() string {
	return functional("DataPropertyAssertion", a.Property.String(), a.Source.String(), a.Value.String())
}

// NegativeDataPropertyAssertion denies a literal value for an individual.
type NegativeDataPropertyAssertion struct {
	AxiomBase
	Property *DataProperty
	Source   Individual
	Value    *Literal
}

func (a *NegativeDataPropertyAssertion) Kind() AxiomKind { return KindNegativeDataPropertyAssertion }
func (a *NegativeDataPropertyAssertion) String() string {
	return functional("NegativeDataPropertyAssertion", a.Property.String(), a.Source.String(), a.Value.String())
}

func individualList(inds []Individual) []string {
	out := make([]string, len(inds))
	for i, ind := range inds {
		out[i] = ind.String()
	}
	return out
}

// SameIndividual states that individuals denote the same object.
type SameIndividual struct {
	AxiomBase
	Individuals []Individual
}

// NewSameIndividual builds a SameIndividual axiom.
func NewSameIndividual(inds ...Individual) *SameIndividual {
	return &SameIndividual{Individuals: inds}
}

func (a *SameIndividual) Kind() AxiomKind { return KindSameIndividual }
func (a *SameIndividual) String() string {
	return functional("SameIndividual", individualList(a.Individuals)...)
}

// DifferentIndividuals states that individuals are pairwise distinct.
type DifferentIndividuals struct {
	AxiomBase
	Individuals []Individual
}

// NewDifferentIndividuals builds a DifferentIndividuals axiom.
func NewDifferentIndividuals(inds ...Individual) *DifferentIndividuals {
	return &DifferentIndividuals{Individuals: inds}
}

func (a *DifferentIndividuals) Kind() AxiomKind { return KindDifferentIndividuals }
func (a *DifferentIndividuals) String() string {
	return functional("DifferentIndividuals", individualList(a.Individuals)...)
}

// AnnotationAssertion annotates an IRI or anonymous individual.
type AnnotationAssertion struct {
	AxiomBase
	Property *AnnotationProperty
	Subject  AnnotationSubject
	Value    AnnotationValue
}

// NewAnnotationAssertion builds an AnnotationAssertion.
func NewAnnotationAssertion(p *AnnotationProperty, subject AnnotationSubject, v AnnotationValue) *AnnotationAssertion {
	return &AnnotationAssertion{Property: p, Subject: subject, Value: v}
}

func (a *AnnotationAssertion) Kind() AxiomKind { return KindAnnotationAssertion }
func (a *AnnotationAssertion) String() string {
	return functional("AnnotationAssertion", a.Property.String(), a.Subject.String(), a.Value.String())
}

// SubAnnotationPropertyOf states an annotation property inclusion.
type SubAnnotationPropertyOf struct {
	AxiomBase
	Sub   *AnnotationProperty
	Super *AnnotationProperty
}

func (a *SubAnnotationPropertyOf) Kind() AxiomKind { return KindSubAnnotationPropertyOf }
func (a *SubAnnotationPropertyOf) String() string {
	return functional("SubAnnotationPropertyOf", a.Sub.String(), a.Super.String())
}

// AnnotationPropertyDomain states the domain of an annotation property.
type AnnotationPropertyDomain struct {
	AxiomBase
	Property *AnnotationProperty
	Domain   string
}

func (a *AnnotationPropertyDomain) Kind() AxiomKind { return KindAnnotationPropertyDomain }
func (a *AnnotationPropertyDomain) String() string {
	return functional("AnnotationPropertyDomain", a.Property.String(), iriString(a.Domain))
}

// AnnotationPropertyRange states the range of an annotation property.
type AnnotationPropertyRange struct {
	AxiomBase
	Property *AnnotationProperty
	Range    string
}

func (a *AnnotationPropertyRange) Kind() AxiomKind { return KindAnnotationPropertyRange }
func (a *AnnotationPropertyRange) String() string {
	return functional("AnnotationPropertyRange", a.Property.String(), iriString(a.Range))
}
