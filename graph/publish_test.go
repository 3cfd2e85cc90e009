package graph

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
	"github.com/c360studio/semowl/skos"
)

const ex = "http://example.org/zoo#"

type recordingSink struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (s *recordingSink) PublishToStream(_ context.Context, subject string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.subjects = append(s.subjects, subject)
	s.payloads = append(s.payloads, data)
	return nil
}

func inferredZoo() *owl.Ontology {
	o := owl.NewOntology("http://example.org/zoo")
	leo := owl.NewIndividual(ex + "leo")
	o.AddAxioms(
		owl.NewClassAssertion(owl.NewClass(ex+"Lion"), leo),
		owl.MarkInferred(owl.NewClassAssertion(owl.NewClass(ex+"Cat"), leo)),
		owl.MarkInferred(owl.NewDataPropertyAssertion(owl.NewDataProperty(ex+"age"), leo,
			owl.NewLiteral("7", rdf.XSDInteger))),
		owl.MarkInferred(owl.NewObjectPropertyAssertion(owl.NewObjectProperty(skos.Broader),
			owl.NewIndividual(ex+"lions"), owl.NewIndividual(ex+"cats"))),
	)
	return o
}

func byID(entities []*EntityPayload) map[string]*EntityPayload {
	out := make(map[string]*EntityPayload, len(entities))
	for _, e := range entities {
		out[e.EntityID()] = e
	}
	return out
}

func TestEntitiesGroupsBySubject(t *testing.T) {
	o := inferredZoo()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := NewPublisher(nil, WithPredicateNames(skos.PredicateNames()...))
	p.now = func() time.Time { return fixed }

	entities := byID(p.Entities(o, o.InferredAxioms()))
	require.Len(t, entities, 2)

	leo := entities[ex+"leo"]
	require.NotNil(t, leo)
	assert.Equal(t, o.IRI, leo.OntologyIRI)
	assert.Equal(t, fixed, leo.UpdatedAt)
	require.Len(t, leo.Triples(), 2)

	objects := map[string]any{}
	for _, tr := range leo.Triples() {
		objects[tr.Predicate] = tr.Object
		assert.Equal(t, DefaultSource, tr.Source)
		assert.Equal(t, 1.0, tr.Confidence)
	}
	assert.Equal(t, ex+"Cat", objects[rdf.RDFType])
	assert.Equal(t, int64(7), objects[ex+"age"])

	lions := entities[ex+"lions"]
	require.NotNil(t, lions)
	require.Len(t, lions.Triples(), 1)
	assert.Equal(t, skos.PredicateBroader, lions.Triples()[0].Predicate)
	assert.Equal(t, ex+"cats", lions.Triples()[0].Object)
}

func TestEntitiesWithoutAxioms(t *testing.T) {
	p := NewPublisher(nil)
	assert.Empty(t, p.Entities(owl.NewOntology("http://example.org/empty"), nil))
}

func TestPublishSendsOnePayloadPerSubject(t *testing.T) {
	sink := &recordingSink{}
	p := NewPublisher(sink, WithSubject("custom.inferences"), WithSource("test"))

	n, err := p.PublishInferences(context.Background(), inferredZoo())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, sink.payloads, 2)

	for i, data := range sink.payloads {
		assert.Equal(t, "custom.inferences", sink.subjects[i])
		var e EntityPayload
		require.NoError(t, json.Unmarshal(data, &e))
		require.NoError(t, e.Validate())
		for _, tr := range e.Triples() {
			assert.Equal(t, "test", tr.Source)
		}
	}
}

func TestPublishWithoutSinkIsNoop(t *testing.T) {
	n, err := NewPublisher(nil).PublishInferences(context.Background(), inferredZoo())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPublishReportsSinkErrors(t *testing.T) {
	sink := &recordingSink{err: errors.New("no responders")}
	n, err := NewPublisher(sink).PublishInferences(context.Background(), inferredZoo())
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "no responders")
}

func TestEntityPayloadValidate(t *testing.T) {
	assert.Error(t, (&EntityPayload{}).Validate())
	assert.Error(t, (&EntityPayload{EntityID_: "x"}).Validate())
	assert.Equal(t, EntityType, (&EntityPayload{}).Schema())
}

func TestObjectValue(t *testing.T) {
	tests := []struct {
		term rdf.Term
		want any
	}{
		{rdf.IRI(ex + "leo"), ex + "leo"},
		{rdf.Term{Kind: rdf.KindLiteral, Value: "7", Datatype: rdf.XSDInteger}, int64(7)},
		{rdf.Term{Kind: rdf.KindLiteral, Value: "2.5", Datatype: rdf.XSDDouble}, 2.5},
		{rdf.Term{Kind: rdf.KindLiteral, Value: "true", Datatype: rdf.XSDBoolean}, true},
		{rdf.Term{Kind: rdf.KindLiteral, Value: "abc", Datatype: rdf.XSDInteger}, "abc"},
		{rdf.Term{Kind: rdf.KindLiteral, Value: "hello", Datatype: rdf.XSDString}, "hello"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, objectValue(tt.term), tt.term.String())
	}
}
