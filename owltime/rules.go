package owltime

import (
	"context"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
	"github.com/c360studio/semowl/reasoner"
)

// Reasoner rule names.
const (
	RuleAllenInverse = "TIME:AllenInverse"
	RuleAllenBounds  = "TIME:AllenFromBounds"
	RuleOrdering     = "TIME:Ordering"
)

// ReasonerRules returns the OWL-Time inference rules.
func ReasonerRules() []reasoner.Rule {
	return []reasoner.Rule{
		reasoner.NewRule(RuleAllenInverse, allenInverse),
		reasoner.NewRule(RuleAllenBounds, allenFromBounds),
		reasoner.NewRule(RuleOrdering, ordering),
	}
}

// allenInverse adds the inverse reading of every asserted Allen relation.
func allenInverse(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := reasoner.NewCollector(idx)
	for _, r := range Relations() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		inv := owl.NewObjectProperty(r.Inverse().IRI())
		for _, pair := range idx.AssertedObjectPairs(r.IRI()) {
			c.ObjectAssertion(inv, pair.Object, pair.Subject)
		}
	}
	return c.Axioms(), nil
}

// allenFromBounds relates every pair of intervals whose bounds are
// positioned.
func allenFromBounds(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := reasoner.NewCollector(idx)
	intervals := make(map[rdf.Term]Span)
	for t, s := range spans(idx) {
		if len(idx.ObjectValues(owl.NewObjectProperty(HasBeginning), t)) > 0 {
			intervals[t] = s
		}
	}
	terms := sortedTerms(intervals)
	for _, a := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, b := range terms {
			if a == b {
				continue
			}
			rel := Relate(intervals[a], intervals[b])
			c.ObjectAssertion(owl.NewObjectProperty(rel.IRI()), a, b)
		}
	}
	return c.Axioms(), nil
}

// ordering derives time:before and time:after between entities on the
// timeline, and mirrors asserted before and after.
func ordering(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := reasoner.NewCollector(idx)
	before := owl.NewObjectProperty(Before)
	after := owl.NewObjectProperty(After)
	for _, pair := range idx.AssertedObjectPairs(Before) {
		c.ObjectAssertion(after, pair.Object, pair.Subject)
	}
	for _, pair := range idx.AssertedObjectPairs(After) {
		c.ObjectAssertion(before, pair.Object, pair.Subject)
	}
	all := spans(idx)
	terms := sortedTerms(all)
	for _, a := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, b := range terms {
			if all[a].End.Before(all[b].Begin) {
				c.ObjectAssertion(before, a, b)
				c.ObjectAssertion(after, b, a)
			}
		}
	}
	return c.Axioms(), nil
}
