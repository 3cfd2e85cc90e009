package validator

import (
	"context"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

func disjointClasses(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleDisjointClasses)
	var groups [][]owl.ClassExpression
	for _, ax := range owl.AxiomsOf[*owl.DisjointClasses](idx.Ontology()) {
		groups = append(groups, ax.Classes)
	}
	for _, ax := range owl.AxiomsOf[*owl.DisjointUnion](idx.Ontology()) {
		groups = append(groups, ax.Classes)
	}
	for _, classes := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, x := range classes {
			for _, y := range classes[i+1:] {
				for _, m := range idx.Members(x) {
					if idx.IsMember(y, m) {
						rep.Errorf("Remove one of the class assertions or the disjointness axiom.",
							"%s is an instance of disjoint classes %s and %s", m, x, y)
					}
				}
			}
		}
	}

	// Named classes below two disjoint classes can have no instances.
	kinds, iris := entityKinds(idx)
	for _, iri := range iris {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !kinds[iri][owl.EntityClass] {
			continue
		}
		if a, b, ok := disjointSupers(idx, idx.SuperClassesOf(iri)); ok {
			rep.Warnf("Check the subclass axioms of the class.",
				"class %s is a subclass of disjoint classes %s and %s", angle(iri), angle(a), angle(b))
		}
	}
	return rep.Issues(), nil
}

func classComplement(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleClassComplement)
	check := func(complement *owl.ObjectComplementOf, members []rdf.Term) {
		for _, m := range members {
			if idx.IsMember(complement.Class, m) {
				rep.Errorf("Remove the assertion placing the individual in the class or in its complement.",
					"%s is an instance of both %s and its complement", m, complement.Class)
			}
		}
	}
	for _, ax := range idx.Ontology().Axioms() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch a := ax.(type) {
		case *owl.ClassAssertion:
			if c, ok := a.Class.(*owl.ObjectComplementOf); ok {
				check(c, idx.SameAs(a.Individual.Term()))
			}
		case *owl.SubClassOf:
			if c, ok := a.Super.(*owl.ObjectComplementOf); ok {
				check(c, idx.Members(a.Sub))
			}
		case *owl.EquivalentClasses:
			for i, x := range a.Classes {
				c, ok := x.(*owl.ObjectComplementOf)
				if !ok {
					continue
				}
				for j, y := range a.Classes {
					if i != j {
						check(c, idx.Members(y))
					}
				}
			}
		}
	}
	return rep.Issues(), nil
}

func disjointSupers(idx *owl.Index, supers []string) (string, string, bool) {
	for i, a := range supers {
		for _, b := range supers[i+1:] {
			if idx.AreDisjoint(a, b) {
				return a, b, true
			}
		}
	}
	return "", "", false
}
