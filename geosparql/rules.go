package geosparql

import (
	"context"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
	"github.com/c360studio/semowl/reasoner"
)

// Reasoner rule names.
const (
	RuleContainsWithin = "GEO:ContainsWithin"
	RuleTopology       = "GEO:Topology"
)

// ReasonerRules returns the GeoSPARQL inference rules.
func ReasonerRules() []reasoner.Rule {
	return []reasoner.Rule{
		reasoner.NewRule(RuleContainsWithin, containsWithin),
		reasoner.NewRule(RuleTopology, topology),
	}
}

func containsWithin(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := reasoner.NewCollector(idx)
	contains := owl.NewObjectProperty(SfContains)
	within := owl.NewObjectProperty(SfWithin)
	for _, pair := range idx.AssertedObjectPairs(SfContains) {
		c.ObjectAssertion(within, pair.Object, pair.Subject)
	}
	for _, pair := range idx.AssertedObjectPairs(SfWithin) {
		c.ObjectAssertion(contains, pair.Object, pair.Subject)
	}
	return c.Axioms(), nil
}

// topology relates every pair of features whose geometries are readable.
func topology(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := reasoner.NewCollector(idx)
	contains := owl.NewObjectProperty(SfContains)
	within := owl.NewObjectProperty(SfWithin)
	intersects := owl.NewObjectProperty(SfIntersects)

	var features []rdf.Term
	shapes := make(map[rdf.Term]Geometry)
	for _, f := range Features(idx) {
		t := rdf.IRI(f)
		g, err := geometryOf(idx, t)
		if err != nil {
			continue
		}
		features = append(features, t)
		shapes[t] = g
	}
	for i, a := range features {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, b := range features[i+1:] {
			ga, gb := shapes[a].Shape, shapes[b].Shape
			if !Intersects(ga, gb) {
				continue
			}
			c.ObjectAssertion(intersects, a, b)
			c.ObjectAssertion(intersects, b, a)
			if Contains(ga, gb) {
				c.ObjectAssertion(contains, a, b)
				c.ObjectAssertion(within, b, a)
			}
			if Contains(gb, ga) {
				c.ObjectAssertion(contains, b, a)
				c.ObjectAssertion(within, a, b)
			}
		}
	}
	return c.Axioms(), nil
}
