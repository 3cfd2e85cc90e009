package skos

import (
	"context"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/reasoner"
)

// Reasoner rule names.
const (
	RuleBroaderNarrower = "SKOS:BroaderNarrower"
	RuleTransitive      = "SKOS:Transitive"
	RuleRelated         = "SKOS:Related"
	RuleExactMatch      = "SKOS:ExactMatch"
	RuleMatchSymmetry   = "SKOS:MatchSymmetry"
	RuleMatchInverse    = "SKOS:MatchInverse"
	RuleTopConcept      = "SKOS:TopConcept"
)

// ReasonerRules returns the SKOS inference rules.
func ReasonerRules() []reasoner.Rule {
	return []reasoner.Rule{
		reasoner.NewRule(RuleBroaderNarrower, broaderNarrower),
		reasoner.NewRule(RuleTransitive, transitiveClosure),
		reasoner.NewRule(RuleRelated, relatedSymmetry),
		reasoner.NewRule(RuleExactMatch, exactMatch),
		reasoner.NewRule(RuleMatchSymmetry, matchSymmetry),
		reasoner.NewRule(RuleMatchInverse, matchInverse),
		reasoner.NewRule(RuleTopConcept, topConcept),
	}
}

// mirror adds q(o, s) for every p(s, o).
func mirror(c *reasoner.Collector, idx *owl.Index, p, q string) {
	prop := owl.NewObjectProperty(q)
	for _, pair := range idx.AssertedObjectPairs(p) {
		c.ObjectAssertion(prop, pair.Object, pair.Subject)
	}
}

func broaderNarrower(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := reasoner.NewCollector(idx)
	mirror(c, idx, Broader, Narrower)
	mirror(c, idx, Narrower, Broader)
	return c.Axioms(), nil
}

// closeOver adds property(s, t) for every t reachable from s in l.
func closeOver(ctx context.Context, c *reasoner.Collector, l links, property string) error {
	prop := owl.NewObjectProperty(property)
	for _, s := range l.subjects() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for t := range l.reach(s) {
			c.ObjectAssertion(prop, s, t)
		}
	}
	return nil
}

// transitiveClosure materializes broaderTransitive and narrowerTransitive
// from the direct hierarchy.
func transitiveClosure(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := reasoner.NewCollector(idx)
	up := transitiveBroaderLinks(idx)
	if err := closeOver(ctx, c, up, BroaderTransitive); err != nil {
		return nil, err
	}
	if err := closeOver(ctx, c, invert(up), NarrowerTransitive); err != nil {
		return nil, err
	}
	return c.Axioms(), nil
}

func relatedSymmetry(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := reasoner.NewCollector(idx)
	mirror(c, idx, Related, Related)
	return c.Axioms(), nil
}

// exactMatch makes skos:exactMatch symmetric and transitive. A concept is
// not matched with itself.
func exactMatch(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := reasoner.NewCollector(idx)
	l := relation(idx, ExactMatch, ExactMatch)
	prop := owl.NewObjectProperty(ExactMatch)
	for _, s := range l.subjects() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for t := range l.reach(s) {
			if t != s {
				c.ObjectAssertion(prop, s, t)
			}
		}
	}
	return c.Axioms(), nil
}

func matchSymmetry(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := reasoner.NewCollector(idx)
	mirror(c, idx, CloseMatch, CloseMatch)
	mirror(c, idx, RelatedMatch, RelatedMatch)
	return c.Axioms(), nil
}

func matchInverse(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := reasoner.NewCollector(idx)
	mirror(c, idx, BroadMatch, NarrowMatch)
	mirror(c, idx, NarrowMatch, BroadMatch)
	return c.Axioms(), nil
}

// topConcept mirrors hasTopConcept and topConceptOf and places every top
// concept in its scheme.
func topConcept(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := reasoner.NewCollector(idx)
	mirror(c, idx, HasTopConcept, TopConceptOf)
	mirror(c, idx, TopConceptOf, HasTopConcept)
	in := owl.NewObjectProperty(InScheme)
	tops := relation(idx, TopConceptOf, HasTopConcept)
	for _, concept := range tops.subjects() {
		for _, scheme := range tops.targets(concept) {
			c.ObjectAssertion(in, concept, scheme)
		}
	}
	return c.Axioms(), nil
}
