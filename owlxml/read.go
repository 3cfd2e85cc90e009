package owlxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// node is a generic OWL/XML element. Elements are matched by local name so
// documents with or without a namespace prefix decode the same way.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (n *node) name() string { return n.XMLName.Local }

func (n *node) attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) text() string { return strings.TrimSpace(n.Text) }

// Unmarshal parses an OWL/XML document.
func Unmarshal(data []byte) (*owl.Ontology, error) {
	return Read(bytes.NewReader(data))
}

// Read parses an OWL/XML document.
func Read(r io.Reader) (*owl.Ontology, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode OWL/XML: %w", err)
	}
	if root.name() != "Ontology" {
		return nil, fmt.Errorf("%w: got %s", ErrNotOntology, root.name())
	}
	iri, _ := root.attr("ontologyIRI")
	d := &decoder{o: owl.NewOntology(iri)}
	d.o.VersionIRI, _ = root.attr("versionIRI")
	base, ok := root.attr("base")
	if !ok {
		base = iri
	}
	if base != "" {
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse xml:base %q: %w", base, err)
		}
		d.base = u
	}
	// Prefixes may appear anywhere among the leading elements; bind them first.
	for i := range root.Children {
		c := &root.Children[i]
		if c.name() != "Prefix" {
			continue
		}
		name, _ := c.attr("name")
		piri, ok := c.attr("IRI")
		if !ok {
			return nil, fmt.Errorf("%w: Prefix %q without IRI", ErrMalformed, name)
		}
		d.o.AddPrefix(name, piri)
	}
	for i := range root.Children {
		if err := d.top(&root.Children[i]); err != nil {
			return nil, err
		}
	}
	return d.o, nil
}

type decoder struct {
	o    *owl.Ontology
	base *url.URL
}

func (d *decoder) top(n *node) error {
	switch n.name() {
	case "Prefix":
		return nil
	case "Import":
		iri, err := d.resolve(n.text())
		if err != nil {
			return err
		}
		d.o.Imports = append(d.o.Imports, iri)
		return nil
	case "Annotation":
		a, err := d.annotation(n)
		if err != nil {
			return err
		}
		d.o.Annotations = append(d.o.Annotations, a)
		return nil
	case "DLSafeRule":
		r, err := d.rule(n)
		if err != nil {
			return fmt.Errorf("DLSafeRule: %w", err)
		}
		d.o.AddRule(r)
		return nil
	}
	ax, err := d.axiom(n)
	if err != nil {
		return err
	}
	d.o.AddAxiom(ax)
	return nil
}

// resolve expands a relative IRI against xml:base.
func (d *decoder) resolve(iri string) (string, error) {
	if d.base == nil {
		return iri, nil
	}
	u, err := url.Parse(iri)
	if err != nil {
		return "", fmt.Errorf("%w: bad IRI %q", ErrMalformed, iri)
	}
	if u.IsAbs() {
		return iri, nil
	}
	return d.base.ResolveReference(u).String(), nil
}

func (d *decoder) expand(abbreviated string) (string, error) {
	iri, err := d.o.ExpandIRI(abbreviated)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return iri, nil
}

// iri returns the IRI carried by an entity element's attributes.
func (d *decoder) iri(n *node) (string, error) {
	if v, ok := n.attr("IRI"); ok {
		return d.resolve(v)
	}
	if v, ok := n.attr("abbreviatedIRI"); ok {
		return d.expand(v)
	}
	return "", fmt.Errorf("%w: %s without IRI", ErrMalformed, n.name())
}

// iriElement reads IRI and AbbreviatedIRI elements.
func (d *decoder) iriElement(n *node) (string, bool, error) {
	switch n.name() {
	case "IRI":
		iri, err := d.resolve(n.text())
		return iri, true, err
	case "AbbreviatedIRI":
		iri, err := d.expand(n.text())
		return iri, true, err
	}
	return "", false, nil
}

func unknown(n *node) error {
	return fmt.Errorf("%w: %s", ErrUnknownElement, n.name())
}

func malformed(n *node, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformed, n.name(), fmt.Sprintf(format, args...))
}

// split separates leading Annotation children from operands.
func split(n *node) (anns, ops []*node) {
	for i := range n.Children {
		c := &n.Children[i]
		if c.name() == "Annotation" {
			anns = append(anns, c)
		} else {
			ops = append(ops, c)
		}
	}
	return anns, ops
}

func (d *decoder) entity(n *node) (owl.Entity, error) {
	kind := owl.EntityKind(n.name())
	switch kind {
	case owl.EntityClass, owl.EntityDatatype, owl.EntityObjectProperty,
		owl.EntityDataProperty, owl.EntityAnnotationProperty, owl.EntityNamedIndividual:
	default:
		return nil, unknown(n)
	}
	iri, err := d.iri(n)
	if err != nil {
		return nil, err
	}
	return owl.NewEntity(kind, iri)
}

func (d *decoder) literal(n *node) (*owl.Literal, error) {
	if n.name() != "Literal" {
		return nil, malformed(n, "expected Literal")
	}
	if lang, ok := n.attr("lang"); ok && lang != "" {
		return owl.NewLangLiteral(n.Text, lang), nil
	}
	dt := rdf.XSDString
	if v, ok := n.attr("datatypeIRI"); ok {
		var err error
		if strings.Contains(v, "://") || !strings.Contains(v, ":") {
			if dt, err = d.resolve(v); err != nil {
				return nil, err
			}
		} else if dt, err = d.expand(v); err != nil {
			dt = v
		}
	}
	if dt == rdf.RDFPlainLit {
		dt = rdf.XSDString
	}
	return owl.NewLiteral(n.Text, dt), nil
}

func (d *decoder) individual(n *node) (owl.Individual, error) {
	switch n.name() {
	case "NamedIndividual":
		iri, err := d.iri(n)
		if err != nil {
			return nil, err
		}
		return owl.NewIndividual(iri), nil
	case "AnonymousIndividual":
		id, ok := n.attr("nodeID")
		if !ok {
			return nil, malformed(n, "missing nodeID")
		}
		return owl.NewAnonymousIndividual(id), nil
	}
	return nil, malformed(n, "expected an individual")
}

func (d *decoder) objectProperty(n *node) (owl.ObjectPropertyExpression, error) {
	switch n.name() {
	case "ObjectProperty":
		iri, err := d.iri(n)
		if err != nil {
			return nil, err
		}
		return owl.NewObjectProperty(iri), nil
	case "ObjectInverseOf":
		if len(n.Children) != 1 || n.Children[0].name() != "ObjectProperty" {
			return nil, malformed(n, "expected one ObjectProperty")
		}
		iri, err := d.iri(&n.Children[0])
		if err != nil {
			return nil, err
		}
		return owl.InverseOf(owl.NewObjectProperty(iri)), nil
	}
	return nil, malformed(n, "expected an object property expression")
}

func (d *decoder) dataProperty(n *node) (*owl.DataProperty, error) {
	if n.name() != "DataProperty" {
		return nil, malformed(n, "expected DataProperty")
	}
	iri, err := d.iri(n)
	if err != nil {
		return nil, err
	}
	return owl.NewDataProperty(iri), nil
}

func (d *decoder) annotationProperty(n *node) (*owl.AnnotationProperty, error) {
	if n.name() != "AnnotationProperty" {
		return nil, malformed(n, "expected AnnotationProperty")
	}
	iri, err := d.iri(n)
	if err != nil {
		return nil, err
	}
	return owl.NewAnnotationProperty(iri), nil
}

func children(n *node) []*node {
	out := make([]*node, len(n.Children))
	for i := range n.Children {
		out[i] = &n.Children[i]
	}
	return out
}

func (d *decoder) classList(ns []*node) ([]owl.ClassExpression, error) {
	out := make([]owl.ClassExpression, 0, len(ns))
	for _, c := range ns {
		ce, err := d.classExpr(c)
		if err != nil {
			return nil, err
		}
		out = append(out, ce)
	}
	return out, nil
}

func (d *decoder) rangeList(ns []*node) ([]owl.DataRange, error) {
	out := make([]owl.DataRange, 0, len(ns))
	for _, c := range ns {
		r, err := d.dataRange(c)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (d *decoder) individualList(ns []*node) ([]owl.Individual, error) {
	out := make([]owl.Individual, 0, len(ns))
	for _, c := range ns {
		ind, err := d.individual(c)
		if err != nil {
			return nil, err
		}
		out = append(out, ind)
	}
	return out, nil
}

func (d *decoder) cardinality(n *node) (uint, error) {
	v, ok := n.attr("cardinality")
	if !ok {
		return 0, malformed(n, "missing cardinality")
	}
	c, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
	if err != nil {
		return 0, malformed(n, "bad cardinality %q", v)
	}
	return uint(c), nil
}

func (d *decoder) classExpr(n *node) (owl.ClassExpression, error) {
	ops := children(n)
	switch n.name() {
	case "Class":
		iri, err := d.iri(n)
		if err != nil {
			return nil, err
		}
		return owl.NewClass(iri), nil
	case "ObjectIntersectionOf", "ObjectUnionOf":
		cs, err := d.classList(ops)
		if err != nil {
			return nil, err
		}
		if len(cs) < 2 {
			return nil, malformed(n, "needs at least two operands")
		}
		if n.name() == "ObjectUnionOf" {
			return owl.UnionOf(cs...), nil
		}
		return owl.IntersectionOf(cs...), nil
	case "ObjectComplementOf":
		if len(ops) != 1 {
			return nil, malformed(n, "needs one operand")
		}
		c, err := d.classExpr(ops[0])
		if err != nil {
			return nil, err
		}
		return owl.ComplementOf(c), nil
	case "ObjectOneOf":
		inds, err := d.individualList(ops)
		if err != nil {
			return nil, err
		}
		return owl.OneOf(inds...), nil
	case "ObjectSomeValuesFrom", "ObjectAllValuesFrom":
		if len(ops) != 2 {
			return nil, malformed(n, "needs a property and a class")
		}
		p, err := d.objectProperty(ops[0])
		if err != nil {
			return nil, err
		}
		c, err := d.classExpr(ops[1])
		if err != nil {
			return nil, err
		}
		if n.name() == "ObjectAllValuesFrom" {
			return owl.AllValuesFrom(p, c), nil
		}
		return owl.SomeValuesFrom(p, c), nil
	case "ObjectHasValue":
		if len(ops) != 2 {
			return nil, malformed(n, "needs a property and an individual")
		}
		p, err := d.objectProperty(ops[0])
		if err != nil {
			return nil, err
		}
		ind, err := d.individual(ops[1])
		if err != nil {
			return nil, err
		}
		return owl.HasValue(p, ind), nil
	case "ObjectHasSelf":
		if len(ops) != 1 {
			return nil, malformed(n, "needs a property")
		}
		p, err := d.objectProperty(ops[0])
		if err != nil {
			return nil, err
		}
		return owl.HasSelf(p), nil
	case "ObjectMinCardinality", "ObjectMaxCardinality", "ObjectExactCardinality":
		if len(ops) < 1 || len(ops) > 2 {
			return nil, malformed(n, "needs a property and an optional class")
		}
		c, err := d.cardinality(n)
		if err != nil {
			return nil, err
		}
		p, err := d.objectProperty(ops[0])
		if err != nil {
			return nil, err
		}
		var filler owl.ClassExpression
		if len(ops) == 2 {
			if filler, err = d.classExpr(ops[1]); err != nil {
				return nil, err
			}
		}
		kind := owl.CardinalityKind(strings.TrimSuffix(strings.TrimPrefix(n.name(), "Object"), "Cardinality"))
		return &owl.ObjectCardinality{Restriction: kind, N: c, Property: p, Class: filler}, nil
	case "DataSomeValuesFrom", "DataAllValuesFrom":
		if len(ops) != 2 {
			return nil, malformed(n, "needs a property and a data range")
		}
		p, err := d.dataProperty(ops[0])
		if err != nil {
			return nil, err
		}
		r, err := d.dataRange(ops[1])
		if err != nil {
			return nil, err
		}
		if n.name() == "DataAllValuesFrom" {
			return owl.DataAll(p, r), nil
		}
		return owl.DataSome(p, r), nil
	case "DataHasValue":
		if len(ops) != 2 {
			return nil, malformed(n, "needs a property and a literal")
		}
		p, err := d.dataProperty(ops[0])
		if err != nil {
			return nil, err
		}
		l, err := d.literal(ops[1])
		if err != nil {
			return nil, err
		}
		return owl.DataValue(p, l), nil
	case "DataMinCardinality", "DataMaxCardinality", "DataExactCardinality":
		if len(ops) < 1 || len(ops) > 2 {
			return nil, malformed(n, "needs a property and an optional data range")
		}
		c, err := d.cardinality(n)
		if err != nil {
			return nil, err
		}
		p, err := d.dataProperty(ops[0])
		if err != nil {
			return nil, err
		}
		var r owl.DataRange
		if len(ops) == 2 {
			if r, err = d.dataRange(ops[1]); err != nil {
				return nil, err
			}
		}
		kind := owl.CardinalityKind(strings.TrimSuffix(strings.TrimPrefix(n.name(), "Data"), "Cardinality"))
		return &owl.DataCardinality{Restriction: kind, N: c, Property: p, Range: r}, nil
	}
	return nil, unknown(n)
}

func (d *decoder) dataRange(n *node) (owl.DataRange, error) {
	ops := children(n)
	switch n.name() {
	case "Datatype":
		iri, err := d.iri(n)
		if err != nil {
			return nil, err
		}
		return owl.NewDatatype(iri), nil
	case "DataIntersectionOf", "DataUnionOf":
		rs, err := d.rangeList(ops)
		if err != nil {
			return nil, err
		}
		if n.name() == "DataUnionOf" {
			return &owl.DataUnionOf{Ranges: rs}, nil
		}
		return &owl.DataIntersectionOf{Ranges: rs}, nil
	case "DataComplementOf":
		if len(ops) != 1 {
			return nil, malformed(n, "needs one operand")
		}
		r, err := d.dataRange(ops[0])
		if err != nil {
			return nil, err
		}
		return &owl.DataComplementOf{Range: r}, nil
	case "DataOneOf":
		out := &owl.DataOneOf{}
		for _, c := range ops {
			l, err := d.literal(c)
			if err != nil {
				return nil, err
			}
			out.Literals = append(out.Literals, l)
		}
		return out, nil
	case "DatatypeRestriction":
		if len(ops) < 2 || ops[0].name() != "Datatype" {
			return nil, malformed(n, "needs a datatype and facets")
		}
		iri, err := d.iri(ops[0])
		if err != nil {
			return nil, err
		}
		out := owl.Restrict(owl.NewDatatype(iri))
		for _, f := range ops[1:] {
			if f.name() != "FacetRestriction" || len(f.Children) != 1 {
				return nil, malformed(f, "expected FacetRestriction with one literal")
			}
			facet, ok := f.attr("facet")
			if !ok {
				return nil, malformed(f, "missing facet")
			}
			if facet, err = d.resolve(facet); err != nil {
				return nil, err
			}
			l, err := d.literal(&f.Children[0])
			if err != nil {
				return nil, err
			}
			out.Facets = append(out.Facets, owl.FacetRestriction{Facet: facet, Value: l})
		}
		return out, nil
	}
	return nil, unknown(n)
}

func (d *decoder) annotationValue(n *node) (owl.AnnotationValue, error) {
	if iri, ok, err := d.iriElement(n); ok {
		return owl.IRIValue(iri), err
	}
	switch n.name() {
	case "Literal":
		return d.literal(n)
	case "AnonymousIndividual":
		ind, err := d.individual(n)
		if err != nil {
			return nil, err
		}
		return ind.(*owl.AnonymousIndividual), nil
	}
	return nil, malformed(n, "expected an annotation value")
}

func (d *decoder) annotationSubject(n *node) (owl.AnnotationSubject, error) {
	if iri, ok, err := d.iriElement(n); ok {
		return owl.IRIValue(iri), err
	}
	if n.name() == "AnonymousIndividual" {
		ind, err := d.individual(n)
		if err != nil {
			return nil, err
		}
		return ind.(*owl.AnonymousIndividual), nil
	}
	return nil, malformed(n, "expected an annotation subject")
}

func (d *decoder) annotation(n *node) (owl.Annotation, error) {
	anns, ops := split(n)
	if len(ops) != 2 {
		return owl.Annotation{}, malformed(n, "needs a property and a value")
	}
	p, err := d.annotationProperty(ops[0])
	if err != nil {
		return owl.Annotation{}, err
	}
	v, err := d.annotationValue(ops[1])
	if err != nil {
		return owl.Annotation{}, err
	}
	a := owl.NewAnnotation(p, v)
	for _, c := range anns {
		nested, err := d.annotation(c)
		if err != nil {
			return owl.Annotation{}, err
		}
		a.Annotations = append(a.Annotations, nested)
	}
	return a, nil
}
