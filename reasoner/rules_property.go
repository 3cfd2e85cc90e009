package reasoner

import (
	"context"
	"sort"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// domainRange types the subjects of object and data properties with their
// domains and the objects of object properties with their ranges.
func domainRange(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	o := idx.Ontology()
	for _, ax := range owl.AxiomsOf[*owl.ObjectPropertyDomain](o) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, pair := range idx.ObjectPairs(ax.Property) {
			c.ClassAssertion(ax.Class, pair.Subject)
		}
	}
	for _, ax := range owl.AxiomsOf[*owl.ObjectPropertyRange](o) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, pair := range idx.ObjectPairs(ax.Property) {
			c.ClassAssertion(ax.Class, pair.Object)
		}
	}
	for _, ax := range owl.AxiomsOf[*owl.DataPropertyDomain](o) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, pair := range idx.DataAssertions(ax.Property.IRI) {
			c.ClassAssertion(ax.Class, pair.Subject)
		}
	}
	return c.Axioms(), nil
}

// inverseProperties mirrors assertions across declared inverses.
func inverseProperties(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, ax := range owl.AxiomsOf[*owl.InverseObjectProperties](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, pair := range idx.ObjectPairs(ax.First) {
			c.ObjectAssertion(ax.Second, pair.Object, pair.Subject)
		}
		for _, pair := range idx.ObjectPairs(ax.Second) {
			c.ObjectAssertion(ax.First, pair.Object, pair.Subject)
		}
	}
	return c.Axioms(), nil
}

// symmetric adds the reverse of every assertion of a symmetric property.
func symmetric(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, p := range idx.PropertiesWith(owl.KindSymmetricObjectProperty) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prop := owl.NewObjectProperty(p)
		for _, pair := range idx.ObjectAssertions(p) {
			c.ObjectAssertion(prop, pair.Object, pair.Subject)
		}
	}
	return c.Axioms(), nil
}

// transitive closes transitive properties: every individual reachable
// through a chain of assertions becomes a direct value.
func transitive(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, p := range idx.PropertiesWith(owl.KindTransitiveObjectProperty) {
		prop := owl.NewObjectProperty(p)
		next := make(map[rdf.Term][]rdf.Term)
		var subjects []rdf.Term
		for _, pair := range idx.ObjectAssertions(p) {
			if _, ok := next[pair.Subject]; !ok {
				subjects = append(subjects, pair.Subject)
			}
			next[pair.Subject] = append(next[pair.Subject], pair.Object)
		}
		for _, s := range subjects {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			seen := map[rdf.Term]bool{}
			queue := append([]rdf.Term(nil), next[s]...)
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				if seen[cur] {
					continue
				}
				seen[cur] = true
				c.ObjectAssertion(prop, s, cur)
				queue = append(queue, next[cur]...)
			}
		}
	}
	return c.Axioms(), nil
}

// reflexive relates every individual to itself through reflexive
// properties.
func reflexive(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, p := range idx.PropertiesWith(owl.KindReflexiveObjectProperty) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prop := owl.NewObjectProperty(p)
		for _, ind := range idx.Individuals() {
			c.ObjectAssertion(prop, ind, ind)
		}
	}
	return c.Axioms(), nil
}

// subObjectProperty lifts assertions to super-properties and evaluates
// property chains.
func subObjectProperty(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, ax := range owl.AxiomsOf[*owl.SubObjectPropertyOf](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(ax.Chain) == 0 {
			for _, pair := range idx.ObjectPairs(ax.Sub) {
				c.ObjectAssertion(ax.Super, pair.Subject, pair.Object)
			}
			continue
		}
		for _, pair := range chainPairs(idx, ax.Chain) {
			c.ObjectAssertion(ax.Super, pair.Subject, pair.Object)
		}
	}
	return c.Axioms(), nil
}

// chainPairs composes the pairs of each link of a property chain.
func chainPairs(idx *owl.Index, chain []owl.ObjectPropertyExpression) []owl.ObjectPair {
	acc := idx.ObjectPairs(chain[0])
	for _, link := range chain[1:] {
		bySubject := make(map[rdf.Term][]rdf.Term)
		for _, pair := range idx.ObjectPairs(link) {
			for _, s := range idx.SameAs(pair.Subject) {
				bySubject[s] = append(bySubject[s], pair.Object)
			}
		}
		seen := make(map[owl.ObjectPair]bool)
		var next []owl.ObjectPair
		for _, pair := range acc {
			for _, o := range bySubject[pair.Object] {
				p := owl.ObjectPair{Subject: pair.Subject, Object: o}
				if !seen[p] {
					seen[p] = true
					next = append(next, p)
				}
			}
		}
		acc = next
	}
	return acc
}

// equivalentObjectProperties shares assertions among equivalent
// properties.
func equivalentObjectProperties(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, ax := range owl.AxiomsOf[*owl.EquivalentObjectProperties](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, p := range ax.Properties {
			for j, q := range ax.Properties {
				if i == j {
					continue
				}
				for _, pair := range idx.ObjectPairs(p) {
					c.ObjectAssertion(q, pair.Subject, pair.Object)
				}
			}
		}
	}
	return c.Axioms(), nil
}

// subDataProperty lifts data assertions to super-properties.
func subDataProperty(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, ax := range owl.AxiomsOf[*owl.SubDataPropertyOf](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, pair := range idx.DataAssertions(ax.Sub.IRI) {
			c.DataAssertion(ax.Super, pair.Subject, pair.Value)
		}
	}
	return c.Axioms(), nil
}

// equivalentDataProperties shares data assertions among equivalent
// properties.
func equivalentDataProperties(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, ax := range owl.AxiomsOf[*owl.EquivalentDataProperties](idx.Ontology()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, p := range ax.Properties {
			for j, q := range ax.Properties {
				if i == j {
					continue
				}
				for _, pair := range idx.DataAssertions(p.IRI) {
					c.DataAssertion(q, pair.Subject, pair.Value)
				}
			}
		}
	}
	return c.Axioms(), nil
}

// functional identifies the values a functional property gives one
// subject. Pairs known to differ are left for the validator.
func functional(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, p := range idx.PropertiesWith(owl.KindFunctionalObjectProperty) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values := make(map[rdf.Term][]rdf.Term)
		var keys []rdf.Term
		for _, pair := range idx.ObjectAssertions(p) {
			root := idx.SameAs(pair.Subject)[0]
			if _, ok := values[root]; !ok {
				keys = append(keys, root)
			}
			values[root] = append(values[root], pair.Object)
		}
		for _, k := range keys {
			sameAll(c, idx, values[k])
		}
	}
	return c.Axioms(), nil
}

// inverseFunctional identifies the subjects that share a value of an
// inverse-functional property.
func inverseFunctional(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	c := NewCollector(idx)
	for _, p := range idx.PropertiesWith(owl.KindInverseFunctionalObjectProperty) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		subjects := make(map[rdf.Term][]rdf.Term)
		var keys []rdf.Term
		for _, pair := range idx.ObjectAssertions(p) {
			root := idx.SameAs(pair.Object)[0]
			if _, ok := subjects[root]; !ok {
				keys = append(keys, root)
			}
			subjects[root] = append(subjects[root], pair.Subject)
		}
		for _, k := range keys {
			sameAll(c, idx, subjects[k])
		}
	}
	return c.Axioms(), nil
}

func sameAll(c *Collector, idx *owl.Index, ts []rdf.Term) {
	for i, a := range ts {
		for _, b := range ts[i+1:] {
			if !idx.AreDifferent(a, b) {
				c.Same(a, b)
			}
		}
	}
}
