package reasoner

import (
	"context"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// membership pairs a class expression with individuals known to belong to
// it through a class assertion, a subclass axiom or an equivalence.
type membership struct {
	class   owl.ClassExpression
	members []rdf.Term
}

func memberships(ctx context.Context, idx *owl.Index) ([]membership, error) {
	var out []membership
	for _, ax := range idx.Ontology().Axioms() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch a := ax.(type) {
		case *owl.SubClassOf:
			out = append(out, membership{class: a.Super, members: idx.Members(a.Sub)})
		case *owl.EquivalentClasses:
			for i, c := range a.Classes {
				for j, d := range a.Classes {
					if i != j {
						out = append(out, membership{class: c, members: idx.Members(d)})
					}
				}
			}
		case *owl.ClassAssertion:
			out = append(out, membership{class: a.Class, members: idx.SameAs(a.Individual.Term())})
		}
	}
	return out, nil
}

// subClassOf propagates instances to named superclasses and closes the
// named class hierarchy transitively.
func subClassOf(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	subs := make(map[string]bool)
	for _, ax := range owl.AxiomsOf[*owl.SubClassOf](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if sub, ok := owl.AsNamedClass(ax.Sub); ok {
			subs[sub.IRI] = true
		}
		if _, ok := owl.AsNamedClass(ax.Super); !ok {
			continue
		}
		for _, m := range idx.Members(ax.Sub) {
			c.ClassAssertion(ax.Super, m)
		}
	}
	for _, sub := range sortedKeys(subs) {
		equivalent := make(map[string]bool)
		for _, e := range idx.EquivalentClassesOf(sub) {
			equivalent[e] = true
		}
		for _, super := range idx.SuperClassesOf(sub) {
			if super == owl.ThingIRI || equivalent[super] {
				continue
			}
			c.Add(owl.NewSubClassOf(owl.NewClass(sub), owl.NewClass(super)))
		}
	}
	return c.Axioms(), nil
}

// equivalentClasses classifies the members of each operand of an
// equivalence under its named operands.
func equivalentClasses(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, ax := range owl.AxiomsOf[*owl.EquivalentClasses](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, named := range ax.Classes {
			if _, ok := owl.AsNamedClass(named); !ok {
				continue
			}
			for j, other := range ax.Classes {
				if i == j {
					continue
				}
				for _, m := range idx.Members(other) {
					c.ClassAssertion(named, m)
				}
			}
		}
	}
	return c.Axioms(), nil
}

// disjointClasses derives that members of disjoint classes are different
// individuals.
func disjointClasses(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	var groups [][]owl.ClassExpression
	for _, ax := range owl.AxiomsOf[*owl.DisjointClasses](idx.Ontology()) {
		groups = append(groups, ax.Classes)
	}
	for _, ax := range owl.AxiomsOf[*owl.DisjointUnion](idx.Ontology()) {
		groups = append(groups, ax.Classes)
	}
	for _, classes := range groups {
		for i, x := range classes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			xs := idx.Members(x)
			for _, y := range classes[i+1:] {
				for _, a := range xs {
					for _, b := range idx.Members(y) {
						if !idx.AreSame(a, b) && !idx.AreDifferent(a, b) {
							c.Different(a, b)
						}
					}
				}
			}
		}
	}
	return c.Axioms(), nil
}

// classAssertion decomposes memberships of compound class expressions:
// intersections yield their operands, universal restrictions type the
// property values and singleton enumerations identify the member.
func classAssertion(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	ms, err := memberships(ctx, idx)
	if err != nil {
		return nil, err
	}
	c := NewCollector(idx)
	for _, m := range ms {
		switch ce := m.class.(type) {
		case *owl.ObjectIntersectionOf:
			for _, op := range ce.Classes {
				for _, ind := range m.members {
					c.ClassAssertion(op, ind)
				}
			}
		case *owl.ObjectAllValuesFrom:
			for _, ind := range m.members {
				for _, v := range idx.ObjectValues(ce.Property, ind) {
					c.ClassAssertion(ce.Class, v)
				}
			}
		case *owl.ObjectOneOf:
			if len(ce.Individuals) != 1 {
				continue
			}
			for _, ind := range m.members {
				c.Same(ind, ce.Individuals[0].Term())
			}
		}
	}
	return c.Axioms(), nil
}

// hasValue asserts the property value of every member of a value
// restriction.
func hasValue(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	ms, err := memberships(ctx, idx)
	if err != nil {
		return nil, err
	}
	c := NewCollector(idx)
	for _, m := range ms {
		switch ce := m.class.(type) {
		case *owl.ObjectHasValue:
			for _, ind := range m.members {
				c.ObjectAssertion(ce.Property, ind, ce.Individual.Term())
			}
		case *owl.DataHasValue:
			for _, ind := range m.members {
				c.DataAssertion(ce.Property, ind, ce.Value)
			}
		}
	}
	return c.Axioms(), nil
}

// hasSelf relates every member of a self restriction to itself.
func hasSelf(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	ms, err := memberships(ctx, idx)
	if err != nil {
		return nil, err
	}
	c := NewCollector(idx)
	for _, m := range ms {
		if ce, ok := m.class.(*owl.ObjectHasSelf); ok {
			for _, ind := range m.members {
				c.ObjectAssertion(ce.Property, ind, ind)
			}
		}
	}
	return c.Axioms(), nil
}

// hasKey identifies named instances of a keyed class that agree on every
// key property.
func hasKey(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, key := range owl.AxiomsOf[*owl.HasKey](idx.Ontology()) {
		var named []rdf.Term
		for _, m := range idx.Members(key.Class) {
			if m.IsIRI() {
				named = append(named, m)
			}
		}
		for i, x := range named {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			for _, y := range named[i+1:] {
				if idx.AreSame(x, y) || idx.AreDifferent(x, y) {
					continue
				}
				if keysMatch(idx, key, x, y) {
					c.Same(x, y)
				}
			}
		}
	}
	return c.Axioms(), nil
}

func keysMatch(idx *owl.Index, key *owl.HasKey, x, y rdf.Term) bool {
	if len(key.ObjectProperties)+len(key.DataProperties) == 0 {
		return false
	}
	for _, p := range key.ObjectProperties {
		if !shareObjectValue(idx, idx.ObjectValues(p, x), idx.ObjectValues(p, y)) {
			return false
		}
	}
	for _, p := range key.DataProperties {
		if !shareDataValue(idx.DataValues(p.IRI, x), idx.DataValues(p.IRI, y)) {
			return false
		}
	}
	return true
}

func shareObjectValue(idx *owl.Index, xs, ys []rdf.Term) bool {
	for _, a := range xs {
		for _, b := range ys {
			if idx.AreSame(a, b) {
				return true
			}
		}
	}
	return false
}

func shareDataValue(xs, ys []*owl.Literal) bool {
	for _, a := range xs {
		for _, b := range ys {
			if a.SameValue(b) {
				return true
			}
		}
	}
	return false
}
