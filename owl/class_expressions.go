package owl

import "strconv"

func classList(cs []ClassExpression) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

// ObjectIntersectionOf is the intersection of two or more class expressions.
type ObjectIntersectionOf struct {
	Classes []ClassExpression
}

// IntersectionOf builds an ObjectIntersectionOf.
func IntersectionOf(classes ...ClassExpression) *ObjectIntersectionOf {
	return &ObjectIntersectionOf{Classes: classes}
}

func (c *ObjectIntersectionOf) String() string {
	return functional("ObjectIntersectionOf", classList(c.Classes)...)
}
func (c *ObjectIntersectionOf) classExpression() {}

// ObjectUnionOf is the union of two or more class expressions.
type ObjectUnionOf struct {
	Classes []ClassExpression
}

// UnionOf builds an ObjectUnionOf.
func UnionOf(classes ...ClassExpression) *ObjectUnionOf {
	return &ObjectUnionOf{Classes: classes}
}

func (c *ObjectUnionOf) String() string {
	return functional("ObjectUnionOf", classList(c.Classes)...)
}
func (c *ObjectUnionOf) classExpression() {}

// ObjectComplementOf is the complement of a class expression.
type ObjectComplementOf struct {
	Class ClassExpression
}

// ComplementOf builds an ObjectComplementOf.
func ComplementOf(c ClassExpression) *ObjectComplementOf {
	return &ObjectComplementOf{Class: c}
}

func (c *ObjectComplementOf) String() string {
	return functional("ObjectComplementOf", c.Class.String())
}
func (c *ObjectComplementOf) classExpression() {}

// ObjectOneOf enumerates the individuals of a class.
type ObjectOneOf struct {
	Individuals []Individual
}

// OneOf builds an ObjectOneOf.
func OneOf(individuals ...Individual) *ObjectOneOf {
	return &ObjectOneOf{Individuals: individuals}
}

func (c *ObjectOneOf) String() string {
	parts := make([]string, len(c.Individuals))
	for i, ind := range c.Individuals {
		parts[i] = ind.String()
	}
	return functional("ObjectOneOf", parts...)
}
func (c *ObjectOneOf) classExpression() {}

// ObjectSomeValuesFrom is an existential restriction.
type ObjectSomeValuesFrom struct {
	Property ObjectPropertyExpression
	Class    ClassExpression
}

// SomeValuesFrom builds an ObjectSomeValuesFrom.
func SomeValuesFrom(p ObjectPropertyExpression, c ClassExpression) *ObjectSomeValuesFrom {
	return &ObjectSomeValuesFrom{Property: p, Class: c}
}

func (c *ObjectSomeValuesFrom) String() string {
	return functional("ObjectSomeValuesFrom", c.Property.String(), c.Class.String())
}
func (c *ObjectSomeValuesFrom) classExpression() {}

// ObjectAllValuesFrom is a universal restriction.
type ObjectAllValuesFrom struct {
	Property ObjectPropertyExpression
	Class    ClassExpression
}

// AllValuesFrom builds an ObjectAllValuesFrom.
func AllValuesFrom(p ObjectPropertyExpression, c ClassExpression) *ObjectAllValuesFrom {
	return &ObjectAllValuesFrom{Property: p, Class: c}
}

func (c *ObjectAllValuesFrom) String() string {
	return functional("ObjectAllValuesFrom", c.Property.String(), c.Class.String())
}
func (c *ObjectAllValuesFrom) classExpression() {}

// ObjectHasValue restricts an object property to a fixed individual.
type ObjectHasValue struct {
	Property   ObjectPropertyExpression
	Individual Individual
}

// HasValue builds an ObjectHasValue.
func HasValue(p ObjectPropertyExpression, ind Individual) *ObjectHasValue {
	return &ObjectHasValue{Property: p, Individual: ind}
}

func (c *ObjectHasValue) String() string {
	return functional("ObjectHasValue", c.Property.String(), c.Individual.String())
}
func (c *ObjectHasValue) classExpression() {}

// ObjectHasSelf is the class of individuals related to themselves.
type ObjectHasSelf struct {
	Property ObjectPropertyExpression
}

// HasSelf builds an ObjectHasSelf.
func HasSelf(p ObjectPropertyExpression) *ObjectHasSelf {
	return &ObjectHasSelf{Property: p}
}

func (c *ObjectHasSelf) String() string {
	return functional("ObjectHasSelf", c.Property.String())
}
func (c *ObjectHasSelf) classExpression() {}

// CardinalityKind distinguishes min, max and exact cardinality restrictions.
type CardinalityKind string

const (
	CardinalityMin   CardinalityKind = "Min"
	CardinalityMax   CardinalityKind = "Max"
	CardinalityExact CardinalityKind = "Exact"
)

// ObjectCardinality is an object cardinality restriction. Class is nil for
// unqualified restrictions.
type ObjectCardinality struct {
	Restriction CardinalityKind
	N           uint
	Property    ObjectPropertyExpression
	Class       ClassExpression
}

// ObjectMinCardinality builds a min cardinality restriction.
func ObjectMinCardinality(n uint, p ObjectPropertyExpression, c ClassExpression) *ObjectCardinality {
	return &ObjectCardinality{Restriction: CardinalityMin, N: n, Property: p, Class: c}
}

// ObjectMaxCardinality builds a max cardinality restriction.
func ObjectMaxCardinality(n uint, p ObjectPropertyExpression, c ClassExpression) *ObjectCardinality {
	return &ObjectCardinality{Restriction: CardinalityMax, N: n, Property: p, Class: c}
}

// ObjectExactCardinality builds an exact cardinality restriction.
func ObjectExactCardinality(n uint, p ObjectPropertyExpression, c ClassExpression) *ObjectCardinality {
	return &ObjectCardinality{Restriction: CardinalityExact, N: n, Property: p, Class: c}
}

// Name returns the functional-syntax name, e.g. ObjectMinCardinality.
func (c *ObjectCardinality) Name() string {
	return "Object" + string(c.Restriction) + "Cardinality"
}

func (c *ObjectCardinality) String() string {
	parts := []string{strconv.FormatUint(uint64(c.N), 10), c.Property.String()}
	if c.Class != nil {
		parts = append(parts, c.Class.String())
	}
	return functional(c.Name(), parts...)
}
func (c *ObjectCardinality) classExpression() {}

// DataSomeValuesFrom is an existential data restriction.
type DataSomeValuesFrom struct {
	Property *DataProperty
	Range    DataRange
}

// DataSome builds a DataSomeValuesFrom.
func DataSome(p *DataProperty, r DataRange) *DataSomeValuesFrom {
	return &DataSomeValuesFrom{Property: p, Range: r}
}

func (c *DataSomeValuesFrom) String() string {
	return functional("DataSomeValuesFrom", c.Property.String(), c.Range.String())
}
func (c *DataSomeValuesFrom) classExpression() {}

// DataAllValuesFrom is a universal data restriction.
type DataAllValuesFrom struct {
	Property *DataProperty
	Range    DataRange
}

// DataAll builds a DataAllValuesFrom.
func DataAll(p *DataProperty, r DataRange) *DataAllValuesFrom {
	return &DataAllValuesFrom{Property: p, Range: r}
}

func (c *DataAllValuesFrom) String() string {
	return functional("DataAllValuesFrom", c.Property.String(), c.Range.String())
}
func (c *DataAllValuesFrom) classExpression() {}

// DataHasValue restricts a data property to a fixed literal.
type DataHasValue struct {
	Property *DataProperty
	Value    *Literal
}

// DataValue builds a DataHasValue.
func DataValue(p *DataProperty, v *Literal) *DataHasValue {
	return &DataHasValue{Property: p, Value: v}
}

func (c *DataHasValue) String() string {
	return functional("DataHasValue", c.Property.String(), c.Value.String())
}
func (c *DataHasValue) classExpression() {}

// DataCardinality is a data cardinality restriction. Range is nil for
// unqualified restrictions.
type DataCardinality struct {
	Restriction CardinalityKind
	N           uint
	Property    *DataProperty
	Range       DataRange
}

// DataMinCardinality builds a min data cardinality restriction.
func DataMinCardinality(n uint, p *DataProperty, r DataRange) *DataCardinality {
	return &DataCardinality{Restriction: CardinalityMin, N: n, Property: p, Range: r}
}

// DataMaxCardinality builds a max data cardinality restriction.
func DataMaxCardinality(n uint, p *DataProperty, r DataRange) *DataCardinality {
	return &DataCardinality{Restriction: CardinalityMax, N: n, Property: p, Range: r}
}

// DataExactCardinality builds an exact data cardinality restriction.
func DataExactCardinality(n uint, p *DataProperty, r DataRange) *DataCardinality {
	return &DataCardinality{Restriction: CardinalityExact, N: n, Property: p, Range: r}
}

// Name returns the functional-syntax name, e.g. DataMaxCardinality.
func (c *DataCardinality) Name() string {
	return "Data" + string(c.Restriction) + "Cardinality"
}

func (c *DataCardinality) String() string {
	parts := []string{strconv.FormatUint(uint64(c.N), 10), c.Property.String()}
	if c.Range != nil {
		parts = append(parts, c.Range.String())
	}
	return functional(c.Name(), parts...)
}
func (c *DataCardinality) classExpression() {}

// AsNamedClass returns the class when ce is a named class.
func AsNamedClass(ce ClassExpression) (*Class, bool) {
	c, ok := ce.(*Class)
	return c, ok
}
