package reasoner

import (
	"context"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// sameIndividual copies the types and property values of each member of a
// same-as group to every other member.
func sameIndividual(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, group := range idx.SameGroups() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, from := range group {
			types := idx.AssertedTypes(from)
			objects := idx.SubjectObjectAssertions(from)
			data := idx.SubjectDataAssertions(from)
			for _, to := range group {
				if to == from {
					continue
				}
				for _, ce := range types {
					c.ClassAssertion(ce, to)
				}
				for _, a := range objects {
					c.ObjectAssertion(a.Property, to, a.Target.Term())
				}
				for _, a := range data {
					c.DataAssertion(a.Property, to, a.Value)
				}
			}
		}
		for _, ind := range idx.Individuals() {
			for _, a := range idx.SubjectObjectAssertions(ind) {
				target := a.Target.Term()
				if !idx.AreSame(target, group[0]) {
					continue
				}
				for _, to := range group {
					if to != target {
						c.ObjectAssertion(a.Property, ind, to)
					}
				}
			}
		}
	}
	return c.Axioms(), nil
}

// differentIndividuals spreads different-from assertions across same-as
// groups.
func differentIndividuals(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	pairs := idx.DifferentPairs()
	asserted := make(map[[2]rdf.Term]bool, len(pairs))
	for _, p := range pairs {
		asserted[p] = true
	}
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, a := range idx.SameAs(pair[0]) {
			for _, b := range idx.SameAs(pair[1]) {
				x, y := ordered(a, b)
				if x == y || asserted[[2]rdf.Term{x, y}] {
					continue
				}
				c.Different(x, y)
			}
		}
	}
	return c.Axioms(), nil
}
