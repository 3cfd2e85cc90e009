package owl

// WalkExpression calls fn for e and, depth first, for every expression
// nested inside it.
func WalkExpression(e Expression, fn func(Expression)) {
	if e == nil {
		return
	}
	fn(e)
	for _, child := range children(e) {
		WalkExpression(child, fn)
	}
}

func children(e Expression) []Expression {
	switch v := e.(type) {
	case *ObjectInverseOf:
		return []Expression{v.Property}
	case *ObjectIntersectionOf:
		return classExprs(v.Classes)
	case *ObjectUnionOf:
		return classExprs(v.Classes)
	case *ObjectComplementOf:
		return []Expression{v.Class}
	case *ObjectOneOf:
		out := make([]Expression, len(v.Individuals))
		for i, ind := range v.Individuals {
			out[i] = ind
		}
		return out
	case *ObjectSomeValuesFrom:
		return []Expression{v.Property, v.Class}
	case *ObjectAllValuesFrom:
		return []Expression{v.Property, v.Class}
	case *ObjectHasValue:
		return []Expression{v.Property, v.Individual}
	case *ObjectHasSelf:
		return []Expression{v.Property}
	case *ObjectCardinality:
		if v.Class != nil {
			return []Expression{v.Property, v.Class}
		}
		return []Expression{v.Property}
	case *DataSomeValuesFrom:
		return []Expression{v.Property, v.Range}
	case *DataAllValuesFrom:
		return []Expression{v.Property, v.Range}
	case *DataHasValue:
		return []Expression{v.Property, v.Value}
	case *DataCardinality:
		if v.Range != nil {
			return []Expression{v.Property, v.Range}
		}
		return []Expression{v.Property}
	case *DataIntersectionOf:
		return rangeExprs(v.Ranges)
	case *DataUnionOf:
		return rangeExprs(v.Ranges)
	case *DataComplementOf:
		return []Expression{v.Range}
	case *DataOneOf:
		out := make([]Expression, len(v.Literals))
		for i, l := range v.Literals {
			out[i] = l
		}
		return out
	case *DatatypeRestriction:
		out := []Expression{v.Datatype}
		for _, f := range v.Facets {
			out = append(out, f.Value)
		}
		return out
	}
	return nil
}

func classExprs(cs []ClassExpression) []Expression {
	out := make([]Expression, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func rangeExprs(rs []DataRange) []Expression {
	out := make([]Expression, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}

func objectPropExprs(ps []ObjectPropertyExpression) []Expression {
	out := make([]Expression, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}

func dataPropExprs(ps []*DataProperty) []Expression {
	out := make([]Expression, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}

func individualExprs(inds []Individual) []Expression {
	out := make([]Expression, len(inds))
	for i, ind := range inds {
		out[i] = ind
	}
	return out
}

// Operands returns the top-level expressions of an axiom.
func Operands(ax Axiom) []Expression {
	switch a := ax.(type) {
	case *Declaration:
		return []Expression{a.Entity}
	case *SubClassOf:
		return []Expression{a.Sub, a.Super}
	case *EquivalentClasses:
		return classExprs(a.Classes)
	case *DisjointClasses:
		return classExprs(a.Classes)
	case *DisjointUnion:
		return append([]Expression{a.Class}, classExprs(a.Classes)...)
	case *SubObjectPropertyOf:
		if len(a.Chain) > 0 {
			return append(objectPropExprs(a.Chain), a.Super)
		}
		return []Expression{a.Sub, a.Super}
	case *EquivalentObjectProperties:
		return objectPropExprs(a.Properties)
	case *DisjointObjectProperties:
		return objectPropExprs(a.Properties)
	case *InverseObjectProperties:
		return []Expression{a.First, a.Second}
	case *ObjectPropertyDomain:
		return []Expression{a.Property, a.Class}
	case *ObjectPropertyRange:
		return []Expression{a.Property, a.Class}
	case *ObjectPropertyCharacteristic:
		return []Expression{a.Property}
	case *SubDataPropertyOf:
		return []Expression{a.Sub, a.Super}
	case *EquivalentDataProperties:
		return dataPropExprs(a.Properties)
	case *DisjointDataProperties:
		return dataPropExprs(a.Properties)
	case *DataPropertyDomain:
		return []Expression{a.Property, a.Class}
	case *DataPropertyRange:
		return []Expression{a.Property, a.Range}
	case *FunctionalDataProperty:
		return []Expression{a.Property}
	case *DatatypeDefinition:
		return []Expression{a.Datatype, a.Range}
	case *HasKey:
		out := []Expression{a.Class}
		out = append(out, objectPropExprs(a.ObjectProperties)...)
		return append(out, dataPropExprs(a.DataProperties)...)
	case *ClassAssertion:
		return []Expression{a.Class, a.Individual}
	case *ObjectPropertyAssertion:
		return []Expression{a.Property, a.Source, a.Target}
	case *NegativeObjectPropertyAssertion:
		return []Expression{a.Property, a.Source, a.Target}
	case *DataPropertyAssertion:
		return []Expression{a.Property, a.Source, a.Value}
	case *NegativeDataPropertyAssertion:
		return []Expression{a.Property, a.Source, a.Value}
	case *SameIndividual:
		return individualExprs(a.Individuals)
	case *DifferentIndividuals:
		return individualExprs(a.Individuals)
	case *AnnotationAssertion:
		return []Expression{a.Property, a.Subject, a.Value}
	case *SubAnnotationPropertyOf:
		return []Expression{a.Sub, a.Super}
	case *AnnotationPropertyDomain:
		return []Expression{a.Property}
	case *AnnotationPropertyRange:
		return []Expression{a.Property}
	}
	return nil
}

// WalkAxiom calls fn for every expression of ax, depth first.
func WalkAxiom(ax Axiom, fn func(Expression)) {
	for _, e := range Operands(ax) {
		WalkExpression(e, fn)
	}
}
