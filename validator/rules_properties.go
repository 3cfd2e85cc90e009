package validator

import (
	"context"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

func asymmetric(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleAsymmetricObjectProperty)
	for _, p := range idx.PropertiesWith(owl.KindAsymmetricObjectProperty) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pairs := idx.ObjectAssertions(p)
		seen := make(map[[2]rdf.Term]bool, len(pairs))
		for _, pair := range pairs {
			seen[[2]rdf.Term{canonical(idx, pair.Subject), canonical(idx, pair.Object)}] = true
		}
		for _, pair := range pairs {
			s, o := canonical(idx, pair.Subject), canonical(idx, pair.Object)
			switch {
			case s == o:
				rep.Errorf("Remove the assertion.",
					"%s is related to itself by asymmetric property %s", pair.Subject, angle(p))
			case seen[[2]rdf.Term{o, s}] && s.String() < o.String():
				rep.Errorf("Remove one direction of the relation.",
					"%s and %s are related both ways by asymmetric property %s", s, o, angle(p))
			}
		}
	}
	return rep.Issues(), nil
}

func irreflexive(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleIrreflexiveObjectProperty)
	for _, p := range idx.PropertiesWith(owl.KindIrreflexiveObjectProperty) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, pair := range idx.ObjectAssertions(p) {
			if idx.AreSame(pair.Subject, pair.Object) {
				rep.Errorf("Remove the assertion.",
					"%s is related to itself by irreflexive property %s", pair.Subject, angle(p))
			}
		}
	}
	return rep.Issues(), nil
}

// conflicting reports the pairs of values grouped under one key that are
// known to be different individuals.
func conflicting(idx *owl.Index, pairs []owl.ObjectPair, inverse bool, report func(key, a, b rdf.Term)) {
	groups := make(map[rdf.Term][]rdf.Term)
	var keys []rdf.Term
	for _, pair := range pairs {
		key, value := pair.Subject, pair.Object
		if inverse {
			key, value = value, key
		}
		key = canonical(idx, key)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], value)
	}
	for _, key := range keys {
		values := groups[key]
		for i, a := range values {
			for _, b := range values[i+1:] {
				if idx.AreDifferent(a, b) {
					report(key, a, b)
				}
			}
		}
	}
}

func functional(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleFunctionalObjectProperty)
	for _, p := range idx.PropertiesWith(owl.KindFunctionalObjectProperty) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		conflicting(idx, idx.ObjectAssertions(p), false, func(s, a, b rdf.Term) {
			rep.Errorf("Keep a single value or drop the functional characteristic.",
				"%s has different values %s and %s for functional property %s", s, a, b, angle(p))
		})
	}
	return rep.Issues(), nil
}

func inverseFunctional(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleInverseFunctionalObjectProperty)
	for _, p := range idx.PropertiesWith(owl.KindInverseFunctionalObjectProperty) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		conflicting(idx, idx.ObjectAssertions(p), true, func(o, a, b rdf.Term) {
			rep.Errorf("Keep a single subject or drop the inverse-functional characteristic.",
				"different individuals %s and %s share value %s of inverse-functional property %s", a, b, o, angle(p))
		})
	}
	return rep.Issues(), nil
}

func functionalData(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleFunctionalDataProperty)
	for _, ax := range owl.AxiomsOf[*owl.FunctionalDataProperty](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := ax.Property.IRI
		values := make(map[rdf.Term][]*owl.Literal)
		var subjects []rdf.Term
		for _, pair := range idx.DataAssertions(p) {
			s := canonical(idx, pair.Subject)
			if _, ok := values[s]; !ok {
				subjects = append(subjects, s)
			}
			values[s] = append(values[s], pair.Value)
		}
		for _, s := range subjects {
			vs := values[s]
			for i, a := range vs {
				for _, b := range vs[i+1:] {
					if !a.SameValue(b) {
						rep.Errorf("Keep a single value or drop the functional characteristic.",
							"%s has values %s and %s for functional data property %s", s, a, b, angle(p))
					}
				}
			}
		}
	}
	return rep.Issues(), nil
}

func disjointObjectProperties(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleDisjointObjectProperties)
	for _, ax := range owl.AxiomsOf[*owl.DisjointObjectProperties](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, p := range ax.Properties {
			seen := make(map[[2]rdf.Term]bool)
			for _, pair := range idx.ObjectPairs(p) {
				seen[[2]rdf.Term{canonical(idx, pair.Subject), canonical(idx, pair.Object)}] = true
			}
			for _, q := range ax.Properties[i+1:] {
				for _, pair := range idx.ObjectPairs(q) {
					if seen[[2]rdf.Term{canonical(idx, pair.Subject), canonical(idx, pair.Object)}] {
						rep.Errorf("Remove one of the assertions or the disjointness axiom.",
							"%s and %s are related by disjoint properties %s and %s", pair.Subject, pair.Object, p, q)
					}
				}
			}
		}
	}
	return rep.Issues(), nil
}

func disjointDataProperties(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleDisjointDataProperties)
	for _, ax := range owl.AxiomsOf[*owl.DisjointDataProperties](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, p := range ax.Properties {
			for _, q := range ax.Properties[i+1:] {
				for _, a := range idx.DataAssertions(p.IRI) {
					for _, b := range idx.DataAssertions(q.IRI) {
						if idx.AreSame(a.Subject, b.Subject) && a.Value.SameValue(b.Value) {
							rep.Errorf("Remove one of the assertions or the disjointness axiom.",
								"%s has value %s for disjoint data properties %s and %s", a.Subject, a.Value, p, q)
						}
					}
				}
			}
		}
	}
	return rep.Issues(), nil
}
