package validator

import (
	"context"

	"github.com/c360studio/semowl/owl"
)

func negativeObject(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleNegativeObjectAssertions)
	for _, ax := range owl.AxiomsOf[*owl.NegativeObjectPropertyAssertion](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, tgt := ax.Source.Term(), ax.Target.Term()
		for _, pair := range idx.ObjectPairs(ax.Property) {
			if idx.AreSame(pair.Subject, src) && idx.AreSame(pair.Object, tgt) {
				rep.Errorf("Remove the assertion or the negative assertion.",
					"%s is related to %s by %s, which a negative assertion forbids", src, tgt, ax.Property)
			}
		}
	}
	return rep.Issues(), nil
}

func negativeData(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleNegativeDataAssertions)
	for _, ax := range owl.AxiomsOf[*owl.NegativeDataPropertyAssertion](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := ax.Source.Term()
		for _, pair := range idx.DataAssertions(ax.Property.IRI) {
			if idx.AreSame(pair.Subject, src) && pair.Value.SameValue(ax.Value) {
				rep.Errorf("Remove the assertion or the negative assertion.",
					"%s has value %s for %s, which a negative assertion forbids", src, ax.Value, ax.Property)
			}
		}
	}
	return rep.Issues(), nil
}

func differentIndividuals(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleDifferentIndividuals)
	for _, ax := range owl.AxiomsOf[*owl.DifferentIndividuals](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, x := range ax.Individuals {
			for _, y := range ax.Individuals[i+1:] {
				a, b := x.Term(), y.Term()
				if a == b {
					rep.Errorf("Remove the duplicate from the axiom.",
						"%s is asserted to be different from itself", a)
					continue
				}
				if idx.AreSame(a, b) {
					rep.Errorf("Remove the different-from or the same-as assertion.",
						"%s and %s are asserted different but are the same individual", a, b)
				}
			}
		}
	}
	return rep.Issues(), nil
}

// dataPropertyRange checks literal well-formedness and that data property
// values fall inside the declared ranges.
func dataPropertyRange(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleDataPropertyRange)
	o := idx.Ontology()
	for _, ax := range o.Axioms() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		owl.WalkAxiom(ax, func(e owl.Expression) {
			if l, ok := e.(*owl.Literal); ok && !l.Valid() {
				rep.Errorf("Fix the lexical form or change the datatype.",
					"literal %s is not a valid value of its datatype", l)
			}
		})
	}
	for _, ax := range owl.AxiomsOf[*owl.DataPropertyRange](o) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, pair := range idx.DataAssertions(ax.Property.IRI) {
			if !idx.DataRangeContains(ax.Range, pair.Value) {
				rep.Errorf("Change the value or widen the range of the property.",
					"value %s of %s for %s is outside its range %s", pair.Value, ax.Property, pair.Subject, ax.Range)
			}
		}
	}
	return rep.Issues(), nil
}
