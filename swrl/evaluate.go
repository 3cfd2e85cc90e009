package swrl

import (
	"context"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// Option configures evaluation.
type Option func(*options)

type options struct {
	registry *Registry
}

func newOptions(opts []Option) options {
	cfg := options{registry: defaultRegistry}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRegistry evaluates built-ins from r instead of the default registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// Bindings returns the rows satisfying the antecedent of a rule.
func Bindings(ctx context.Context, r *owl.Rule, idx *owl.Index, opts ...Option) (*Table, error) {
	cfg := newOptions(opts)
	steps, err := plan(r, cfg.registry)
	if err != nil {
		return nil, err
	}

	tables := make([]*Table, 0, len(r.Antecedent.Atoms))
	for _, a := range r.Antecedent.Atoms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := AtomTable(idx, a)
		if t.Len() == 0 {
			return NewTable(), nil
		}
		tables = append(tables, t)
	}
	table, err := joinAll(ctx, tables)
	if err != nil {
		return nil, err
	}
	for _, s := range steps {
		if table.Len() == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table = s.apply(table)
	}
	return table, nil
}

// joinAll joins tables smallest first, preferring tables that share a
// column with the rows joined so far.
func joinAll(ctx context.Context, tables []*Table) (*Table, error) {
	acc := unit()
	remaining := append([]*Table{}, tables...)
	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		best := 0
		for i := 1; i < len(remaining); i++ {
			if better(acc, remaining[i], remaining[best]) {
				best = i
			}
		}
		acc = Join(acc, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
		if acc.Len() == 0 {
			break
		}
	}
	return acc, nil
}

func connected(acc, t *Table) bool {
	for _, c := range t.Columns {
		if acc.Column(c) >= 0 {
			return true
		}
	}
	return false
}

func better(acc, a, b *Table) bool {
	ca, cb := connected(acc, a), connected(acc, b)
	if ca != cb {
		return ca
	}
	return a.Len() < b.Len()
}

// termLiteral presents a bound term to a built-in. Individuals are passed
// as xsd:anyURI literals so equality built-ins can compare them.
func termLiteral(t rdf.Term) *owl.Literal {
	if t.IsLiteral() {
		return owl.LiteralFromTerm(t)
	}
	return owl.NewLiteral(t.Value, rdf.XSDAnyURI)
}

func (s step) literals(t *Table, row []rdf.Term) []*owl.Literal {
	out := make([]*owl.Literal, len(s.call.Args))
	for i, arg := range s.call.Args {
		if v, ok := variableIRI(arg); ok {
			if v == s.binds {
				continue
			}
			out[i] = termLiteral(row[t.Column(v)])
			continue
		}
		g, _ := owl.ArgumentTerm(arg)
		out[i] = termLiteral(g)
	}
	return out
}

func (s step) apply(t *Table) *Table {
	if s.binds == "" {
		return t.filter(func(row []rdf.Term) bool {
			return s.builtIn.Holds(s.literals(t, row))
		})
	}
	return t.extend(s.binds, func(row []rdf.Term) (rdf.Term, bool) {
		v, ok := s.builtIn.Compute(s.literals(t, row))
		if !ok || v == nil {
			return rdf.Term{}, false
		}
		return v.Term(), true
	})
}

// Evaluate runs a rule against an index and returns the consequent axioms
// it infers, marked as inferred. Axioms already in the indexed ontology and
// duplicates are left out. Rows whose consequent arguments are unbound or
// have the wrong kind of value are skipped.
func Evaluate(ctx context.Context, r *owl.Rule, idx *owl.Index, opts ...Option) ([]owl.Axiom, error) {
	table, err := Bindings(ctx, r, idx, opts...)
	if err != nil {
		return nil, err
	}
	ont := idx.Ontology()
	seen := make(map[string]bool)
	var out []owl.Axiom
	for i, row := range table.Rows {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for _, a := range r.Consequent.Atoms {
			ax, ok := instantiate(a, table, row)
			if !ok {
				continue
			}
			key := ax.String()
			if seen[key] || (ont != nil && ont.ContainsKey(key)) {
				continue
			}
			seen[key] = true
			out = append(out, owl.MarkInferred(ax))
		}
	}
	return out, nil
}

func resolve(a owl.Argument, t *Table, row []rdf.Term) (rdf.Term, bool) {
	if v, ok := variableIRI(a); ok {
		i := t.Column(v)
		if i < 0 {
			return rdf.Term{}, false
		}
		return row[i], true
	}
	return owl.ArgumentTerm(a)
}

func resolveIndividual(a owl.Argument, t *Table, row []rdf.Term) (owl.Individual, bool) {
	term, ok := resolve(a, t, row)
	if !ok || term.IsLiteral() {
		return nil, false
	}
	ind, err := owl.IndividualFromTerm(term)
	return ind, err == nil
}

func resolveLiteral(a owl.Argument, t *Table, row []rdf.Term) (*owl.Literal, bool) {
	term, ok := resolve(a, t, row)
	if !ok || !term.IsLiteral() {
		return nil, false
	}
	return owl.LiteralFromTerm(term), true
}

func instantiate(a owl.Atom, t *Table, row []rdf.Term) (owl.Axiom, bool) {
	switch v := a.(type) {
	case *owl.ClassAtom:
		ind, ok := resolveIndividual(v.Arg, t, row)
		if !ok {
			return nil, false
		}
		return owl.NewClassAssertion(v.Class, ind), true
	case *owl.ObjectPropertyAtom:
		s, ok1 := resolveIndividual(v.Left, t, row)
		o, ok2 := resolveIndividual(v.Right, t, row)
		if !ok1 || !ok2 {
			return nil, false
		}
		return owl.NewObjectPropertyAssertion(v.Property, s, o), true
	case *owl.DataPropertyAtom:
		s, ok1 := resolveIndividual(v.Left, t, row)
		l, ok2 := resolveLiteral(v.Right, t, row)
		if !ok1 || !ok2 {
			return nil, false
		}
		return owl.NewDataPropertyAssertion(v.Property, s, l), true
	case *owl.SameIndividualAtom:
		x, ok1 := resolveIndividual(v.Left, t, row)
		y, ok2 := resolveIndividual(v.Right, t, row)
		if !ok1 || !ok2 || x.Term() == y.Term() {
			return nil, false
		}
		return owl.NewSameIndividual(x, y), true
	case *owl.DifferentIndividualsAtom:
		x, ok1 := resolveIndividual(v.Left, t, row)
		y, ok2 := resolveIndividual(v.Right, t, row)
		if !ok1 || !ok2 || x.Term() == y.Term() {
			return nil, false
		}
		return owl.NewDifferentIndividuals(x, y), true
	}
	return nil, false
}
