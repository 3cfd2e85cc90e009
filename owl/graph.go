package owl

import (
	"strconv"

	"github.com/c360studio/semowl/rdf"
)

var (
	rdfType          = rdf.IRI(rdf.RDFType)
	owlRestriction   = rdf.IRI(rdf.OWL + "Restriction")
	owlOnProperty    = rdf.IRI(rdf.OWL + "onProperty")
	owlClassType     = rdf.IRI(rdf.OWL + "Class")
	rdfsDatatypeType = rdf.IRI(rdf.RDFS + "Datatype")
	rdfsSubClassOf   = rdf.IRI(rdf.RDFS + "subClassOf")
	owlMembers       = rdf.IRI(rdf.OWL + "members")
	swrlVariable     = rdf.IRI(rdf.SWRL + "Variable")
)

// graphWriter emits the RDF mapping of expressions into a graph.
type graphWriter struct {
	g     *rdf.Graph
	blank int
}

func newGraphWriter(g *rdf.Graph) *graphWriter { return &graphWriter{g: g} }

func (w *graphWriter) node() rdf.Term {
	w.blank++
	return rdf.Blank("genid" + strconv.Itoa(w.blank))
}

func (w *graphWriter) add(s, p, o rdf.Term) {
	w.g.AddTerms(s, p, o)
}

func (w *graphWriter) addIRI(s rdf.Term, p string, o rdf.Term) {
	w.add(s, rdf.IRI(p), o)
}

// list writes an rdf:List and returns its head.
func (w *graphWriter) list(items []rdf.Term) rdf.Term {
	if len(items) == 0 {
		return rdf.IRI(rdf.RDFNil)
	}
	head := w.node()
	cur := head
	for i, it := range items {
		w.addIRI(cur, rdf.RDFFirst, it)
		if i == len(items)-1 {
			w.addIRI(cur, rdf.RDFRest, rdf.IRI(rdf.RDFNil))
			break
		}
		next := w.node()
		w.addIRI(cur, rdf.RDFRest, next)
		cur = next
	}
	return head
}

func (w *graphWriter) terms(es []Expression) []rdf.Term {
	out := make([]rdf.Term, len(es))
	for i, e := range es {
		out[i] = e.graph(w)
	}
	return out
}

func (w *graphWriter) typed(t string) rdf.Term {
	n := w.node()
	w.add(n, rdfType, rdf.IRI(t))
	return n
}

func (w *graphWriter) restriction(p Expression) rdf.Term {
	n := w.node()
	w.add(n, rdfType, owlRestriction)
	w.add(n, owlOnProperty, p.graph(w))
	return n
}

// annotate writes annotations on subject.
func (w *graphWriter) annotate(subject rdf.Term, anns []Annotation) {
	for _, a := range anns {
		w.add(subject, rdf.IRI(a.Property.IRI), a.Value.graph(w))
	}
}

// triple writes the main triple of an axiom and reifies its annotations.
func (w *graphWriter) triple(ax Axiom, s, p, o rdf.Term) {
	w.add(s, p, o)
	anns := ax.Annotations()
	if len(anns) == 0 {
		return
	}
	r := w.typed(rdf.OWL + "Axiom")
	w.addIRI(r, rdf.OWL+"annotatedSource", s)
	w.addIRI(r, rdf.OWL+"annotatedProperty", p)
	w.addIRI(r, rdf.OWL+"annotatedTarget", o)
	w.annotate(r, anns)
}

func (p *ObjectInverseOf) graph(w *graphWriter) rdf.Term {
	n := w.node()
	w.addIRI(n, rdf.OWL+"inverseOf", p.Property.graph(w))
	return n
}

func (c *ObjectIntersectionOf) graph(w *graphWriter) rdf.Term {
	n := w.node()
	w.add(n, rdfType, owlClassType)
	w.addIRI(n, rdf.OWL+"intersectionOf", w.list(w.terms(classExprs(c.Classes))))
	return n
}

func (c *ObjectUnionOf) graph(w *graphWriter) rdf.Term {
	n := w.node()
	w.add(n, rdfType, owlClassType)
	w.addIRI(n, rdf.OWL+"unionOf", w.list(w.terms(classExprs(c.Classes))))
	return n
}

func (c *ObjectComplementOf) graph(w *graphWriter) rdf.Term {
	n := w.node()
	w.add(n, rdfType, owlClassType)
	w.addIRI(n, rdf.OWL+"complementOf", c.Class.graph(w))
	return n
}

func (c *ObjectOneOf) graph(w *graphWriter) rdf.Term {
	n := w.node()
	w.add(n, rdfType, owlClassType)
	w.addIRI(n, rdf.OWL+"oneOf", w.list(w.terms(individualExprs(c.Individuals))))
	return n
}

func (c *ObjectSomeValuesFrom) graph(w *graphWriter) rdf.Term {
	n := w.restriction(c.Property)
	w.addIRI(n, rdf.OWL+"someValuesFrom", c.Class.graph(w))
	return n
}

func (c *ObjectAllValuesFrom) graph(w *graphWriter) rdf.Term {
	n := w.restriction(c.Property)
	w.addIRI(n, rdf.OWL+"allValuesFrom", c.Class.graph(w))
	return n
}

func (c *ObjectHasValue) graph(w *graphWriter) rdf.Term {
	n := w.restriction(c.Property)
	w.addIRI(n, rdf.OWL+"hasValue", c.Individual.graph(w))
	return n
}

func (c *ObjectHasSelf) graph(w *graphWriter) rdf.Term {
	n := w.restriction(c.Property)
	w.addIRI(n, rdf.OWL+"hasSelf", rdf.Literal("true", rdf.XSDBoolean))
	return n
}

var cardinalityPredicates = map[CardinalityKind][2]string{
	CardinalityMin:   {"minCardinality", "minQualifiedCardinality"},
	CardinalityMax:   {"maxCardinality", "maxQualifiedCardinality"},
	CardinalityExact: {"cardinality", "qualifiedCardinality"},
}

func cardinalityTerm(n uint) rdf.Term {
	return rdf.Literal(strconv.FormatUint(uint64(n), 10), rdf.XSDNonNegativeInteger)
}

func (c *ObjectCardinality) graph(w *graphWriter) rdf.Term {
	n := w.restriction(c.Property)
	preds := cardinalityPredicates[c.Restriction]
	if c.Class == nil {
		w.addIRI(n, rdf.OWL+preds[0], cardinalityTerm(c.N))
		return n
	}
	w.addIRI(n, rdf.OWL+preds[1], cardinalityTerm(c.N))
	w.addIRI(n, rdf.OWL+"onClass", c.Class.graph(w))
	return n
}

func (c *DataSomeValuesFrom) graph(w *graphWriter) rdf.Term {
	n := w.restriction(c.Property)
	w.addIRI(n, rdf.OWL+"someValuesFrom", c.Range.graph(w))
	return n
}

func (c *DataAllValuesFrom) graph(w *graphWriter) rdf.Term {
	n := w.restriction(c.Property)
	w.addIRI(n, rdf.OWL+"allValuesFrom", c.Range.graph(w))
	return n
}

func (c *DataHasValue) graph(w *graphWriter) rdf.Term {
	n := w.restriction(c.Property)
	w.addIRI(n, rdf.OWL+"hasValue", c.Value.graph(w))
	return n
}

func (c *DataCardinality) graph(w *graphWriter) rdf.Term {
	n := w.restriction(c.Property)
	preds := cardinalityPredicates[c.Restriction]
	if c.Range == nil {
		w.addIRI(n, rdf.OWL+preds[0], cardinalityTerm(c.N))
		return n
	}
	w.addIRI(n, rdf.OWL+preds[1], cardinalityTerm(c.N))
	w.addIRI(n, rdf.OWL+"onDataRange", c.Range.graph(w))
	return n
}

func (d *DataIntersectionOf) graph(w *graphWriter) rdf.Term {
	n := w.node()
	w.add(n, rdfType, rdfsDatatypeType)
	w.addIRI(n, rdf.OWL+"intersectionOf", w.list(w.terms(rangeExprs(d.Ranges))))
	return n
}

func (d *DataUnionOf) graph(w *graphWriter) rdf.Term {
	n := w.node()
	w.add(n, rdfType, rdfsDatatypeType)
	w.addIRI(n, rdf.OWL+"unionOf", w.list(w.terms(rangeExprs(d.Ranges))))
	return n
}

func (d *DataComplementOf) graph(w *graphWriter) rdf.Term {
	n := w.node()
	w.add(n, rdfType, rdfsDatatypeType)
	w.addIRI(n, rdf.OWL+"datatypeComplementOf", d.Range.graph(w))
	return n
}

func (d *DataOneOf) graph(w *graphWriter) rdf.Term {
	items := make([]rdf.Term, len(d.Literals))
	for i, l := range d.Literals {
		items[i] = l.Term()
	}
	n := w.node()
	w.add(n, rdfType, rdfsDatatypeType)
	w.addIRI(n, rdf.OWL+"oneOf", w.list(items))
	return n
}

func (d *DatatypeRestriction) graph(w *graphWriter) rdf.Term {
	facets := make([]rdf.Term, len(d.Facets))
	for i, f := range d.Facets {
		fn := w.node()
		w.addIRI(fn, f.Facet, f.Value.Term())
		facets[i] = fn
	}
	n := w.node()
	w.add(n, rdfType, rdfsDatatypeType)
	w.addIRI(n, rdf.OWL+"onDatatype", d.Datatype.graph(w))
	w.addIRI(n, rdf.OWL+"withRestrictions", w.list(facets))
	return n
}

var entityTypes = map[EntityKind]string{
	EntityClass:              rdf.OWL + "Class",
	EntityDatatype:           rdf.RDFS + "Datatype",
	EntityObjectProperty:     rdf.OWL + "ObjectProperty",
	EntityDataProperty:       rdf.OWL + "DatatypeProperty",
	EntityAnnotationProperty: rdf.OWL + "AnnotationProperty",
	EntityNamedIndividual:    rdf.OWL + "NamedIndividual",
}

func (a *Declaration) graph(w *graphWriter) {
	w.triple(a, a.Entity.graph(w), rdfType, rdf.IRI(entityTypes[a.Entity.EntityKind()]))
}

func (a *SubClassOf) graph(w *graphWriter) {
	w.triple(a, a.Sub.graph(w), rdfsSubClassOf, a.Super.graph(w))
}

// pairwise writes binary axioms as a single triple and n-ary ones as an
// owl:All* node with owl:members.
func (w *graphWriter) pairwise(ax Axiom, es []Expression, pred, allType string) {
	if len(es) == 2 || allType == "" {
		for i := 1; i < len(es); i++ {
			w.triple(ax, es[0].graph(w), rdf.IRI(pred), es[i].graph(w))
		}
		return
	}
	n := w.typed(allType)
	w.add(n, owlMembers, w.list(w.terms(es)))
	w.annotate(n, ax.Annotations())
}

func (a *EquivalentClasses) graph(w *graphWriter) {
	w.pairwise(a, classExprs(a.Classes), rdf.OWL+"equivalentClass", "")
}

func (a *DisjointClasses) graph(w *graphWriter) {
	w.pairwise(a, classExprs(a.Classes), rdf.OWL+"disjointWith", rdf.OWL+"AllDisjointClasses")
}

func (a *DisjointUnion) graph(w *graphWriter) {
	w.triple(a, a.Class.graph(w), rdf.IRI(rdf.OWL+"disjointUnionOf"), w.list(w.terms(classExprs(a.Classes))))
}

func (a *SubObjectPropertyOf) graph(w *graphWriter) {
	if len(a.Chain) > 0 {
		w.triple(a, a.Super.graph(w), rdf.IRI(rdf.OWL+"propertyChainAxiom"), w.list(w.terms(objectPropExprs(a.Chain))))
		return
	}
	w.triple(a, a.Sub.graph(w), rdf.IRI(rdf.RDFS+"subPropertyOf"), a.Super.graph(w))
}

func (a *EquivalentObjectProperties) graph(w *graphWriter) {
	w.pairwise(a, objectPropExprs(a.Properties), rdf.OWL+"equivalentProperty", "")
}

func (a *DisjointObjectProperties) graph(w *graphWriter) {
	w.pairwise(a, objectPropExprs(a.Properties), rdf.OWL+"propertyDisjointWith", rdf.OWL+"AllDisjointProperties")
}

func (a *InverseObjectProperties) graph(w *graphWriter) {
	w.triple(a, a.First.graph(w), rdf.IRI(rdf.OWL+"inverseOf"), a.Second.graph(w))
}

func (a *ObjectPropertyDomain) graph(w *graphWriter) {
	w.triple(a, a.Property.graph(w), rdf.IRI(rdf.RDFS+"domain"), a.Class.graph(w))
}

func (a *ObjectPropertyRange) graph(w *graphWriter) {
	w.triple(a, a.Property.graph(w), rdf.IRI(rdf.RDFS+"range"), a.Class.graph(w))
}

func (a *ObjectPropertyCharacteristic) graph(w *graphWriter) {
	w.triple(a, a.Property.graph(w), rdfType, rdf.IRI(objectCharacteristicType[a.Characteristic]))
}

func (a *SubDataPropertyOf) graph(w *graphWriter) {
	w.triple(a, a.Sub.graph(w), rdf.IRI(rdf.RDFS+"subPropertyOf"), a.Super.graph(w))
}

func (a *EquivalentDataProperties) graph(w *graphWriter) {
	w.pairwise(a, dataPropExprs(a.Properties), rdf.OWL+"equivalentProperty", "")
}

func (a *DisjointDataProperties) graph(w *graphWriter) {
	w.pairwise(a, dataPropExprs(a.Properties), rdf.OWL+"propertyDisjointWith", rdf.OWL+"AllDisjointProperties")
}

func (a *DataPropertyDomain) graph(w *graphWriter) {
	w.triple(a, a.Property.graph(w), rdf.IRI(rdf.RDFS+"domain"), a.Class.graph(w))
}

func (a *DataPropertyRange) graph(w *graphWriter) {
	w.triple(a, a.Property.graph(w), rdf.IRI(rdf.RDFS+"range"), a.Range.graph(w))
}

func (a *FunctionalDataProperty) graph(w *graphWriter) {
	w.triple(a, a.Property.graph(w), rdfType, rdf.IRI(rdf.OWL+"FunctionalProperty"))
}

func (a *DatatypeDefinition) graph(w *graphWriter) {
	w.triple(a, a.Datatype.graph(w), rdf.IRI(rdf.OWL+"equivalentClass"), a.Range.graph(w))
}

func (a *HasKey) graph(w *graphWriter) {
	keys := append(objectPropExprs(a.ObjectProperties), dataPropExprs(a.DataProperties)...)
	w.triple(a, a.Class.graph(w), rdf.IRI(rdf.OWL+"hasKey"), w.list(w.terms(keys)))
}

func (a *ClassAssertion) graph(w *graphWriter) {
	w.triple(a, a.Individual.graph(w), rdfType, a.Class.graph(w))
}

func (a *ObjectPropertyAssertion) graph(w *graphWriter) {
	p, s, o := a.Normalized()
	w.triple(a, s.graph(w), p.graph(w), o.graph(w))
}

func (w *graphWriter) negative(ax Axiom, p Expression, s Individual, target string, o rdf.Term) {
	n := w.typed(rdf.OWL + "NegativePropertyAssertion")
	w.addIRI(n, rdf.OWL+"sourceIndividual", s.graph(w))
	w.addIRI(n, rdf.OWL+"assertionProperty", p.graph(w))
	w.addIRI(n, rdf.OWL+target, o)
	w.annotate(n, ax.Annotations())
}

func (a *NegativeObjectPropertyAssertion) graph(w *graphWriter) {
	w.negative(a, a.Property, a.Source, "targetIndividual", a.Target.graph(w))
}

func (a *DataPropertyAssertion) graph(w *graphWriter) {
	w.triple(a, a.Source.graph(w), a.Property.graph(w), a.Value.graph(w))
}

func (a *NegativeDataPropertyAssertion) graph(w *graphWriter) {
	w.negative(a, a.Property, a.Source, "targetValue", a.Value.graph(w))
}

func (a *SameIndividual) graph(w *graphWriter) {
	w.pairwise(a, individualExprs(a.Individuals), rdf.OWL+"sameAs", "")
}

func (a *DifferentIndividuals) graph(w *graphWriter) {
	if len(a.Individuals) == 2 {
		w.pairwise(a, individualExprs(a.Individuals), rdf.OWL+"differentFrom", "")
		return
	}
	n := w.typed(rdf.OWL + "AllDifferent")
	w.addIRI(n, rdf.OWL+"distinctMembers", w.list(w.terms(individualExprs(a.Individuals))))
	w.annotate(n, a.Annotations())
}

func (a *AnnotationAssertion) graph(w *graphWriter) {
	w.triple(a, a.Subject.graph(w), a.Property.graph(w), a.Value.graph(w))
}

func (a *SubAnnotationPropertyOf) graph(w *graphWriter) {
	w.triple(a, a.Sub.graph(w), rdf.IRI(rdf.RDFS+"subPropertyOf"), a.Super.graph(w))
}

func (a *AnnotationPropertyDomain) graph(w *graphWriter) {
	w.triple(a, a.Property.graph(w), rdf.IRI(rdf.RDFS+"domain"), rdf.IRI(a.Domain))
}

func (a *AnnotationPropertyRange) graph(w *graphWriter) {
	w.triple(a, a.Property.graph(w), rdf.IRI(rdf.RDFS+"range"), rdf.IRI(a.Range))
}

func (w *graphWriter) argument(a Argument) rdf.Term {
	switch v := a.(type) {
	case *Variable:
		t := rdf.IRI(v.IRI)
		w.add(t, rdfType, swrlVariable)
		return t
	case *IndividualArgument:
		return v.Individual.graph(w)
	case *LiteralArgument:
		return v.Literal.Term()
	}
	return rdf.IRI(rdf.RDFNil)
}

func (w *graphWriter) atom(a Atom) rdf.Term {
	var n rdf.Term
	switch v := a.(type) {
	case *ClassAtom:
		n = w.typed(rdf.SWRL + "ClassAtom")
		w.addIRI(n, rdf.SWRL+"classPredicate", v.Class.graph(w))
	case *DataRangeAtom:
		n = w.typed(rdf.SWRL + "DataRangeAtom")
		w.addIRI(n, rdf.SWRL+"dataRange", v.Range.graph(w))
	case *ObjectPropertyAtom:
		n = w.typed(rdf.SWRL + "IndividualPropertyAtom")
		w.addIRI(n, rdf.SWRL+"propertyPredicate", v.Property.graph(w))
	case *DataPropertyAtom:
		n = w.typed(rdf.SWRL + "DatavaluedPropertyAtom")
		w.addIRI(n, rdf.SWRL+"propertyPredicate", v.Property.graph(w))
	case *SameIndividualAtom:
		n = w.typed(rdf.SWRL + "SameIndividualAtom")
	case *DifferentIndividualsAtom:
		n = w.typed(rdf.SWRL + "DifferentIndividualsAtom")
	default:
		return rdf.IRI(rdf.RDFNil)
	}
	for i, arg := range a.Arguments() {
		w.addIRI(n, rdf.SWRL+"argument"+strconv.Itoa(i+1), w.argument(arg))
	}
	return n
}

func (w *graphWriter) builtIn(b *BuiltIn) rdf.Term {
	n := w.typed(rdf.SWRL + "BuiltinAtom")
	w.addIRI(n, rdf.SWRL+"builtin", rdf.IRI(b.IRI))
	args := make([]rdf.Term, len(b.Args))
	for i, a := range b.Args {
		args[i] = w.argument(a)
	}
	w.addIRI(n, rdf.SWRL+"arguments", w.list(args))
	return n
}

func (r *Rule) graph(w *graphWriter) rdf.Term {
	n := w.typed(rdf.SWRL + "Imp")
	body := make([]rdf.Term, 0, len(r.Antecedent.Atoms)+len(r.Antecedent.BuiltIns))
	for _, a := range r.Antecedent.Atoms {
		body = append(body, w.atom(a))
	}
	for _, b := range r.Antecedent.BuiltIns {
		body = append(body, w.builtIn(b))
	}
	head := make([]rdf.Term, 0, len(r.Consequent.Atoms))
	for _, a := range r.Consequent.Atoms {
		head = append(head, w.atom(a))
	}
	w.addIRI(n, rdf.SWRL+"body", w.list(body))
	w.addIRI(n, rdf.SWRL+"head", w.list(head))
	w.annotate(n, r.Annotations)
	return n
}

// AxiomGraph returns the RDF mapping of a single axiom.
func AxiomGraph(ax Axiom) *rdf.Graph {
	g := rdf.NewGraph()
	ax.graph(newGraphWriter(g))
	return g
}

// ToGraph maps the ontology, its axioms and rules to RDF triples.
func (o *Ontology) ToGraph() *rdf.Graph {
	g := rdf.NewGraph()
	w := newGraphWriter(g)
	var head rdf.Term
	if o.IRI != "" {
		head = rdf.IRI(o.IRI)
	} else {
		head = w.node()
	}
	w.add(head, rdfType, rdf.IRI(rdf.OWL+"Ontology"))
	if o.VersionIRI != "" {
		w.addIRI(head, rdf.OWL+"versionIRI", rdf.IRI(o.VersionIRI))
	}
	for _, imp := range o.Imports {
		w.addIRI(head, rdf.OWL+"imports", rdf.IRI(imp))
	}
	w.annotate(head, o.Annotations)
	for _, ax := range o.axioms {
		ax.graph(w)
	}
	for _, r := range o.rules {
		r.graph(w)
	}
	return g
}
