package owl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/rdf"
)

func TestToGraphSimpleAxioms(t *testing.T) {
	o := NewOntology(ex)
	o.AddAxioms(
		Declare(NewClass(ex+"Dog")),
		NewSubClassOf(NewClass(ex+"Dog"), NewClass(ex+"Animal")),
		NewObjectPropertyAssertion(InverseOf(NewObjectProperty(ex+"owns")), NewIndividual(ex+"rex"), NewIndividual(ex+"ann")),
	)
	g := o.ToGraph()

	assert.True(t, g.Contains(rdf.Triple{S: rdf.IRI(ex), P: rdf.IRI(rdf.RDFType), O: rdf.IRI(rdf.OWL + "Ontology")}))
	assert.True(t, g.Contains(rdf.Triple{S: rdf.IRI(ex + "Dog"), P: rdf.IRI(rdf.RDFType), O: rdf.IRI(rdf.OWL + "Class")}))
	assert.True(t, g.Contains(rdf.Triple{S: rdf.IRI(ex + "Dog"), P: rdf.IRI(rdf.RDFS + "subClassOf"), O: rdf.IRI(ex + "Animal")}))
	assert.True(t, g.Contains(rdf.Triple{S: rdf.IRI(ex + "ann"), P: rdf.IRI(ex + "owns"), O: rdf.IRI(ex + "rex")}))
}

func TestToGraphRestriction(t *testing.T) {
	ax := NewSubClassOf(NewClass(ex+"Owner"), SomeValuesFrom(NewObjectProperty(ex+"owns"), NewClass(ex+"Dog")))
	g := AxiomGraph(ax)

	vocab := func(local string) *rdf.Term { term := rdf.IRI(rdf.OWL + local); return &term }
	restrictions := g.Match(nil, nil, vocab("Restriction"))
	require.Len(t, restrictions, 1)
	node := restrictions[0].S
	assert.Len(t, g.Match(&node, vocab("onProperty"), nil), 1)
	assert.Len(t, g.Match(&node, vocab("someValuesFrom"), nil), 1)
	assert.Equal(t, 4, g.Len())
}

func TestToGraphAnnotatedAxiomIsReified(t *testing.T) {
	ax := Annotate(NewSubClassOf(NewClass(ex+"Dog"), NewClass(ex+"Animal")),
		NewAnnotation(NewAnnotationProperty(RDFSComment), NewLiteral("checked", "")))
	g := AxiomGraph(ax)

	source := rdf.IRI(rdf.OWL + "annotatedSource")
	matches := g.Match(nil, &source, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, rdf.IRI(ex+"Dog"), matches[0].O)
}

func TestToGraphRule(t *testing.T) {
	o := NewOntology(ex)
	o.AddRule(&Rule{
		Antecedent: Antecedent{Atoms: []Atom{&ClassAtom{Class: NewClass(ex + "Dog"), Arg: Var("x")}}},
		Consequent: Consequent{Atoms: []Atom{&ClassAtom{Class: NewClass(ex + "Animal"), Arg: Var("x")}}},
	})
	g := o.ToGraph()
	imp := rdf.IRI(rdf.SWRL + "Imp")
	assert.Len(t, g.Match(nil, nil, &imp), 1)
	v := rdf.IRI(VariableNamespace + "x")
	assert.True(t, g.Contains(rdf.Triple{S: v, P: rdf.IRI(rdf.RDFType), O: rdf.IRI(rdf.SWRL + "Variable")}))
}
