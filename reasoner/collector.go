package reasoner

import (
	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// Collector accumulates the inferences of one rule application. It drops
// duplicates, axioms the indexed ontology already holds and facts the index
// already entails for identity (same-as, different-from).
type Collector struct {
	idx  *owl.Index
	seen map[string]bool
	out  []owl.Axiom
}

// NewCollector returns a collector for rules running against idx.
func NewCollector(idx *owl.Index) *Collector {
	return &Collector{idx: idx, seen: make(map[string]bool)}
}

// Axioms returns the collected axioms in the order they were added.
func (c *Collector) Axioms() []owl.Axiom { return c.out }

// Add keeps ax unless it is already known.
func (c *Collector) Add(ax owl.Axiom) {
	key := ax.String()
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	if o := c.idx.Ontology(); o != nil && o.ContainsKey(key) {
		return
	}
	c.out = append(c.out, ax)
}

func individual(t rdf.Term) (owl.Individual, bool) {
	ind, err := owl.IndividualFromTerm(t)
	return ind, err == nil
}

// ClassAssertion records that t is an instance of ce.
func (c *Collector) ClassAssertion(ce owl.ClassExpression, t rdf.Term) {
	if named, ok := owl.AsNamedClass(ce); ok && named.IsThing() {
		return
	}
	if ind, ok := individual(t); ok {
		c.Add(owl.NewClassAssertion(ce, ind))
	}
}

// ObjectAssertion records p(s, o); an inverse property swaps the pair so
// the stored assertion always uses the named property.
func (c *Collector) ObjectAssertion(p owl.ObjectPropertyExpression, s, o rdf.Term) {
	if p.Inverse() {
		s, o = o, s
	}
	si, ok1 := individual(s)
	oi, ok2 := individual(o)
	if ok1 && ok2 {
		c.Add(owl.NewObjectPropertyAssertion(p.Named(), si, oi))
	}
}

// DataAssertion records p(s, v).
func (c *Collector) DataAssertion(p *owl.DataProperty, s rdf.Term, v *owl.Literal) {
	if si, ok := individual(s); ok {
		c.Add(owl.NewDataPropertyAssertion(p, si, v))
	}
}

func ordered(a, b rdf.Term) (rdf.Term, rdf.Term) {
	if b.String() < a.String() {
		return b, a
	}
	return a, b
}

// Same records that a and b denote the same individual.
func (c *Collector) Same(a, b rdf.Term) {
	if c.idx.AreSame(a, b) {
		return
	}
	a, b = ordered(a, b)
	ai, ok1 := individual(a)
	bi, ok2 := individual(b)
	if ok1 && ok2 {
		c.Add(owl.NewSameIndividual(ai, bi))
	}
}

// Different records that a and b denote different individuals.
func (c *Collector) Different(a, b rdf.Term) {
	if a == b {
		return
	}
	a, b = ordered(a, b)
	ai, ok1 := individual(a)
	bi, ok2 := individual(b)
	if ok1 && ok2 {
		c.Add(owl.NewDifferentIndividuals(ai, bi))
	}
}
