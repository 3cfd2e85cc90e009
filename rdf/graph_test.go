package rdf

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAddRemove(t *testing.T) {
	g := NewGraph()
	tr := Triple{S: IRI("http://ex/a"), P: IRI(RDFType), O: IRI("http://ex/C")}

	assert.True(t, g.Add(tr))
	assert.False(t, g.Add(tr), "duplicate add should report false")
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Contains(tr))

	assert.True(t, g.Remove(tr))
	assert.False(t, g.Remove(tr))
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.Match(nil, nil, nil))
}

func TestGraphMatch(t *testing.T) {
	g := NewGraph()
	a, b := IRI("http://ex/a"), IRI("http://ex/b")
	knows := IRI("http://ex/knows")
	name := IRI("http://ex/name")

	g.AddTerms(a, knows, b)
	g.AddTerms(b, knows, a)
	g.AddTerms(a, name, Literal("Alice", ""))

	assert.Len(t, g.Match(&a, nil, nil), 2)
	assert.Len(t, g.Match(nil, &knows, nil), 2)
	assert.Len(t, g.Match(nil, nil, &a), 1)
	assert.Len(t, g.Match(&a, &knows, &b), 1)
	assert.Empty(t, g.Match(&b, &name, nil))
	assert.Len(t, g.Triples(), 3)
}

func TestGraphConcurrentAdd(t *testing.T) {
	g := NewGraph()
	p := IRI("http://ex/p")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				g.AddTerms(IRI("http://ex/s"), p, Literal(string(rune('a'+i))+string(rune('a'+j%26)), ""))
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8*26, g.Len())
}

func TestTermString(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{"iri", IRI("http://ex/a"), "<http://ex/a>"},
		{"blank", Blank("_:x1"), "_:x1"},
		{"plain", Literal("hi", ""), `"hi"`},
		{"typed", Literal("5", XSDInteger), `"5"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{"lang", LangLiteral("ciao", "IT"), `"ciao"@it`},
		{"escaped", Literal("a\"b\nc", ""), `"a\"b\nc"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}

func TestNewTripleRejectsInvalidPositions(t *testing.T) {
	_, err := NewTriple(Literal("x", ""), IRI("http://ex/p"), IRI("http://ex/o"))
	require.Error(t, err)
	_, err = NewTriple(IRI("http://ex/s"), Blank("p"), IRI("http://ex/o"))
	require.Error(t, err)
	tr, err := NewTriple(NewBlank(), IRI("http://ex/p"), Literal("o", ""))
	require.NoError(t, err)
	assert.True(t, tr.S.IsBlank())
}
