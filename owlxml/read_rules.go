package owlxml

import (
	"github.com/c360studio/semowl/owl"
)

func (d *decoder) rule(n *node) (*owl.Rule, error) {
	anns, ops := split(n)
	r := &owl.Rule{}
	for _, c := range anns {
		a, err := d.annotation(c)
		if err != nil {
			return nil, err
		}
		r.Annotations = append(r.Annotations, a)
	}
	for _, part := range ops {
		switch part.name() {
		case "Body":
			for _, c := range children(part) {
				if c.name() == "BuiltInAtom" {
					b, err := d.builtIn(c)
					if err != nil {
						return nil, err
					}
					r.Antecedent.BuiltIns = append(r.Antecedent.BuiltIns, b)
					continue
				}
				a, err := d.atom(c)
				if err != nil {
					return nil, err
				}
				r.Antecedent.Atoms = append(r.Antecedent.Atoms, a)
			}
		case "Head":
			for _, c := range children(part) {
				a, err := d.atom(c)
				if err != nil {
					return nil, err
				}
				r.Consequent.Atoms = append(r.Consequent.Atoms, a)
			}
		default:
			return nil, unknown(part)
		}
	}
	return r, nil
}

func (d *decoder) argument(n *node) (owl.Argument, error) {
	switch n.name() {
	case "Variable":
		iri, err := d.iri(n)
		if err != nil {
			return nil, err
		}
		return &owl.Variable{IRI: iri}, nil
	case "Literal":
		l, err := d.literal(n)
		if err != nil {
			return nil, err
		}
		return owl.LiteralArg(l), nil
	case "NamedIndividual", "AnonymousIndividual":
		ind, err := d.individual(n)
		if err != nil {
			return nil, err
		}
		return owl.IndividualArg(ind), nil
	}
	return nil, malformed(n, "expected a rule argument")
}

func (d *decoder) arguments(ns []*node) ([]owl.Argument, error) {
	out := make([]owl.Argument, 0, len(ns))
	for _, c := range ns {
		a, err := d.argument(c)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (d *decoder) builtIn(n *node) (*owl.BuiltIn, error) {
	iri, err := d.iri(n)
	if err != nil {
		return nil, err
	}
	args, err := d.arguments(children(n))
	if err != nil {
		return nil, err
	}
	return &owl.BuiltIn{IRI: iri, Args: args}, nil
}

func (d *decoder) atom(n *node) (owl.Atom, error) {
	ops := children(n)
	switch n.name() {
	case "ClassAtom":
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		c, err := d.classExpr(ops[0])
		if err != nil {
			return nil, err
		}
		arg, err := d.argument(ops[1])
		if err != nil {
			return nil, err
		}
		return &owl.ClassAtom{Class: c, Arg: arg}, nil
	case "DataRangeAtom":
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		r, err := d.dataRange(ops[0])
		if err != nil {
			return nil, err
		}
		arg, err := d.argument(ops[1])
		if err != nil {
			return nil, err
		}
		return &owl.DataRangeAtom{Range: r, Arg: arg}, nil
	case "ObjectPropertyAtom":
		if err := arity(n, ops, 3); err != nil {
			return nil, err
		}
		p, err := d.objectProperty(ops[0])
		if err != nil {
			return nil, err
		}
		args, err := d.arguments(ops[1:])
		if err != nil {
			return nil, err
		}
		return &owl.ObjectPropertyAtom{Property: p, Left: args[0], Right: args[1]}, nil
	case "DataPropertyAtom":
		if err := arity(n, ops, 3); err != nil {
			return nil, err
		}
		p, err := d.dataProperty(ops[0])
		if err != nil {
			return nil, err
		}
		args, err := d.arguments(ops[1:])
		if err != nil {
			return nil, err
		}
		return &owl.DataPropertyAtom{Property: p, Left: args[0], Right: args[1]}, nil
	case "SameIndividualAtom", "DifferentIndividualsAtom":
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		args, err := d.arguments(ops)
		if err != nil {
			return nil, err
		}
		if n.name() == "SameIndividualAtom" {
			return &owl.SameIndividualAtom{Left: args[0], Right: args[1]}, nil
		}
		return &owl.DifferentIndividualsAtom{Left: args[0], Right: args[1]}, nil
	}
	return nil, unknown(n)
}
