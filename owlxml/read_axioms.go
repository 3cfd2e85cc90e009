package owlxml

import (
	"fmt"

	"github.com/c360studio/semowl/owl"
)

func (d *decoder) objectPropertyList(ns []*node) ([]owl.ObjectPropertyExpression, error) {
	out := make([]owl.ObjectPropertyExpression, 0, len(ns))
	for _, c := range ns {
		p, err := d.objectProperty(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (d *decoder) dataPropertyList(ns []*node) ([]*owl.DataProperty, error) {
	out := make([]*owl.DataProperty, 0, len(ns))
	for _, c := range ns {
		p, err := d.dataProperty(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func arity(n *node, ops []*node, want int) error {
	if len(ops) != want {
		return malformed(n, "expected %d operands, got %d", want, len(ops))
	}
	return nil
}

func atLeast(n *node, ops []*node, want int) error {
	if len(ops) < want {
		return malformed(n, "expected at least %d operands, got %d", want, len(ops))
	}
	return nil
}

func (d *decoder) axiom(n *node) (owl.Axiom, error) {
	anns, ops := split(n)
	ax, err := d.axiomBody(n, ops)
	if err != nil {
		return nil, err
	}
	for _, c := range anns {
		a, err := d.annotation(c)
		if err != nil {
			return nil, fmt.Errorf("%s annotation: %w", n.name(), err)
		}
		owl.Annotate(ax, a)
	}
	return ax, nil
}

func (d *decoder) axiomBody(n *node, ops []*node) (owl.Axiom, error) {
	kind := owl.AxiomKind(n.name())
	switch kind {
	case owl.KindDeclaration:
		if err := arity(n, ops, 1); err != nil {
			return nil, err
		}
		e, err := d.entity(ops[0])
		if err != nil {
			return nil, err
		}
		return owl.Declare(e), nil

	case owl.KindSubClassOf:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		cs, err := d.classList(ops)
		if err != nil {
			return nil, err
		}
		return owl.NewSubClassOf(cs[0], cs[1]), nil

	case owl.KindEquivalentClasses, owl.KindDisjointClasses:
		if err := atLeast(n, ops, 2); err != nil {
			return nil, err
		}
		cs, err := d.classList(ops)
		if err != nil {
			return nil, err
		}
		if kind == owl.KindDisjointClasses {
			return owl.NewDisjointClasses(cs...), nil
		}
		return owl.NewEquivalentClasses(cs...), nil

	case owl.KindDisjointUnion:
		if err := atLeast(n, ops, 3); err != nil {
			return nil, err
		}
		cs, err := d.classList(ops)
		if err != nil {
			return nil, err
		}
		c, ok := owl.AsNamedClass(cs[0])
		if !ok {
			return nil, malformed(n, "first operand must be a named class")
		}
		return &owl.DisjointUnion{Class: c, Classes: cs[1:]}, nil

	case owl.KindSubObjectPropertyOf:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		super, err := d.objectProperty(ops[1])
		if err != nil {
			return nil, err
		}
		if ops[0].name() == "ObjectPropertyChain" {
			chain, err := d.objectPropertyList(children(ops[0]))
			if err != nil {
				return nil, err
			}
			if len(chain) < 2 {
				return nil, malformed(ops[0], "needs at least two properties")
			}
			return owl.NewPropertyChain(super, chain...), nil
		}
		sub, err := d.objectProperty(ops[0])
		if err != nil {
			return nil, err
		}
		return owl.NewSubObjectPropertyOf(sub, super), nil

	case owl.KindEquivalentObjectProperties, owl.KindDisjointObjectProperties:
		if err := atLeast(n, ops, 2); err != nil {
			return nil, err
		}
		ps, err := d.objectPropertyList(ops)
		if err != nil {
			return nil, err
		}
		if kind == owl.KindDisjointObjectProperties {
			return &owl.DisjointObjectProperties{Properties: ps}, nil
		}
		return &owl.EquivalentObjectProperties{Properties: ps}, nil

	case owl.KindInverseObjectProperties:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		ps, err := d.objectPropertyList(ops)
		if err != nil {
			return nil, err
		}
		return &owl.InverseObjectProperties{First: ps[0], Second: ps[1]}, nil

	case owl.KindObjectPropertyDomain, owl.KindObjectPropertyRange:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		p, err := d.objectProperty(ops[0])
		if err != nil {
			return nil, err
		}
		c, err := d.classExpr(ops[1])
		if err != nil {
			return nil, err
		}
		if kind == owl.KindObjectPropertyRange {
			return &owl.ObjectPropertyRange{Property: p, Class: c}, nil
		}
		return &owl.ObjectPropertyDomain{Property: p, Class: c}, nil

	case owl.KindFunctionalObjectProperty, owl.KindInverseFunctionalObjectProperty,
		owl.KindReflexiveObjectProperty, owl.KindIrreflexiveObjectProperty,
		owl.KindSymmetricObjectProperty, owl.KindAsymmetricObjectProperty,
		owl.KindTransitiveObjectProperty:
		if err := arity(n, ops, 1); err != nil {
			return nil, err
		}
		p, err := d.objectProperty(ops[0])
		if err != nil {
			return nil, err
		}
		return owl.NewCharacteristic(kind, p), nil

	case owl.KindSubDataPropertyOf:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		ps, err := d.dataPropertyList(ops)
		if err != nil {
			return nil, err
		}
		return &owl.SubDataPropertyOf{Sub: ps[0], Super: ps[1]}, nil

	case owl.KindEquivalentDataProperties, owl.KindDisjointDataProperties:
		if err := atLeast(n, ops, 2); err != nil {
			return nil, err
		}
		ps, err := d.dataPropertyList(ops)
		if err != nil {
			return nil, err
		}
		if kind == owl.KindDisjointDataProperties {
			return &owl.DisjointDataProperties{Properties: ps}, nil
		}
		return &owl.EquivalentDataProperties{Properties: ps}, nil

	case owl.KindDataPropertyDomain:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		p, err := d.dataProperty(ops[0])
		if err != nil {
			return nil, err
		}
		c, err := d.classExpr(ops[1])
		if err != nil {
			return nil, err
		}
		return &owl.DataPropertyDomain{Property: p, Class: c}, nil

	case owl.KindDataPropertyRange:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		p, err := d.dataProperty(ops[0])
		if err != nil {
			return nil, err
		}
		r, err := d.dataRange(ops[1])
		if err != nil {
			return nil, err
		}
		return &owl.DataPropertyRange{Property: p, Range: r}, nil

	case owl.KindFunctionalDataProperty:
		if err := arity(n, ops, 1); err != nil {
			return nil, err
		}
		p, err := d.dataProperty(ops[0])
		if err != nil {
			return nil, err
		}
		return &owl.FunctionalDataProperty{Property: p}, nil

	case owl.KindDatatypeDefinition:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		if ops[0].name() != "Datatype" {
			return nil, malformed(n, "first operand must be a Datatype")
		}
		iri, err := d.iri(ops[0])
		if err != nil {
			return nil, err
		}
		r, err := d.dataRange(ops[1])
		if err != nil {
			return nil, err
		}
		return &owl.DatatypeDefinition{Datatype: owl.NewDatatype(iri), Range: r}, nil

	case owl.KindHasKey:
		if err := atLeast(n, ops, 1); err != nil {
			return nil, err
		}
		c, err := d.classExpr(ops[0])
		if err != nil {
			return nil, err
		}
		key := &owl.HasKey{Class: c}
		for _, op := range ops[1:] {
			switch op.name() {
			case "DataProperty":
				p, err := d.dataProperty(op)
				if err != nil {
					return nil, err
				}
				key.DataProperties = append(key.DataProperties, p)
			default:
				p, err := d.objectProperty(op)
				if err != nil {
					return nil, err
				}
				key.ObjectProperties = append(key.ObjectProperties, p)
			}
		}
		return key, nil

	case owl.KindClassAssertion:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		c, err := d.classExpr(ops[0])
		if err != nil {
			return nil, err
		}
		ind, err := d.individual(ops[1])
		if err != nil {
			return nil, err
		}
		return owl.NewClassAssertion(c, ind), nil

	case owl.KindObjectPropertyAssertion, owl.KindNegativeObjectPropertyAssertion:
		if err := arity(n, ops, 3); err != nil {
			return nil, err
		}
		p, err := d.objectProperty(ops[0])
		if err != nil {
			return nil, err
		}
		inds, err := d.individualList(ops[1:])
		if err != nil {
			return nil, err
		}
		if kind == owl.KindNegativeObjectPropertyAssertion {
			return &owl.NegativeObjectPropertyAssertion{Property: p, Source: inds[0], Target: inds[1]}, nil
		}
		return owl.NewObjectPropertyAssertion(p, inds[0], inds[1]), nil

	case owl.KindDataPropertyAssertion, owl.KindNegativeDataPropertyAssertion:
		if err := arity(n, ops, 3); err != nil {
			return nil, err
		}
		p, err := d.dataProperty(ops[0])
		if err != nil {
			return nil, err
		}
		ind, err := d.individual(ops[1])
		if err != nil {
			return nil, err
		}
		l, err := d.literal(ops[2])
		if err != nil {
			return nil, err
		}
		if kind == owl.KindNegativeDataPropertyAssertion {
			return &owl.NegativeDataPropertyAssertion{Property: p, Source: ind, Value: l}, nil
		}
		return owl.NewDataPropertyAssertion(p, ind, l), nil

	case owl.KindSameIndividual, owl.KindDifferentIndividuals:
		if err := atLeast(n, ops, 2); err != nil {
			return nil, err
		}
		inds, err := d.individualList(ops)
		if err != nil {
			return nil, err
		}
		if kind == owl.KindDifferentIndividuals {
			return owl.NewDifferentIndividuals(inds...), nil
		}
		return owl.NewSameIndividual(inds...), nil

	case owl.KindAnnotationAssertion:
		if err := arity(n, ops, 3); err != nil {
			return nil, err
		}
		p, err := d.annotationProperty(ops[0])
		if err != nil {
			return nil, err
		}
		s, err := d.annotationSubject(ops[1])
		if err != nil {
			return nil, err
		}
		v, err := d.annotationValue(ops[2])
		if err != nil {
			return nil, err
		}
		return owl.NewAnnotationAssertion(p, s, v), nil

	case owl.KindSubAnnotationPropertyOf:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		sub, err := d.annotationProperty(ops[0])
		if err != nil {
			return nil, err
		}
		super, err := d.annotationProperty(ops[1])
		if err != nil {
			return nil, err
		}
		return &owl.SubAnnotationPropertyOf{Sub: sub, Super: super}, nil

	case owl.KindAnnotationPropertyDomain, owl.KindAnnotationPropertyRange:
		if err := arity(n, ops, 2); err != nil {
			return nil, err
		}
		p, err := d.annotationProperty(ops[0])
		if err != nil {
			return nil, err
		}
		iri, ok, err := d.iriElement(ops[1])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, malformed(n, "second operand must be an IRI")
		}
		if kind == owl.KindAnnotationPropertyRange {
			return &owl.AnnotationPropertyRange{Property: p, Range: iri}, nil
		}
		return &owl.AnnotationPropertyDomain{Property: p, Domain: iri}, nil
	}
	return nil, unknown(n)
}
