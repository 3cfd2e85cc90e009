package owlxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// Namespace is the OWL/XML namespace.
const Namespace = rdf.OWL

type attr struct {
	name, value string
}

// encoder writes indented OWL/XML. The first write error is kept and all
// later writes become no-ops.
type encoder struct {
	w     io.Writer
	depth int
	err   error
}

func (e *encoder) raw(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func (e *encoder) tag(name string, attrs []attr, selfClose bool) {
	e.raw(strings.Repeat("    ", e.depth))
	e.raw("<" + name)
	for _, a := range attrs {
		e.raw(" " + a.name + `="` + escape(a.value) + `"`)
	}
	if selfClose {
		e.raw("/>\n")
		return
	}
	e.raw(">")
}

func (e *encoder) open(name string, attrs ...attr) {
	e.tag(name, attrs, false)
	e.raw("\n")
	e.depth++
}

func (e *encoder) close(name string) {
	e.depth--
	e.raw(strings.Repeat("    ", e.depth) + "</" + name + ">\n")
}

func (e *encoder) empty(name string, attrs ...attr) {
	e.tag(name, attrs, true)
}

func (e *encoder) text(name, text string, attrs ...attr) {
	e.tag(name, attrs, false)
	e.raw(escape(text) + "</" + name + ">\n")
}

// Marshal returns the OWL/XML document of o.
func Marshal(o *owl.Ontology) ([]byte, error) {
	var b bytes.Buffer
	if err := Write(&b, o); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Write encodes o as OWL/XML.
func Write(w io.Writer, o *owl.Ontology) error {
	e := &encoder{w: w}
	e.raw(xml.Header)
	root := []attr{{"xmlns", Namespace}}
	if o.IRI != "" {
		root = append(root, attr{"xml:base", o.IRI})
	}
	for _, p := range o.Prefixes {
		if p.Name != "" && p.Name != "xml" {
			root = append(root, attr{"xmlns:" + p.Name, p.IRI})
		}
	}
	if o.IRI != "" {
		root = append(root, attr{"ontologyIRI", o.IRI})
	}
	if o.VersionIRI != "" {
		root = append(root, attr{"versionIRI", o.VersionIRI})
	}
	e.open("Ontology", root...)
	for _, p := range o.Prefixes {
		e.empty("Prefix", attr{"name", p.Name}, attr{"IRI", p.IRI})
	}
	for _, imp := range o.Imports {
		e.text("Import", imp)
	}
	for _, a := range o.Annotations {
		e.annotation(a)
	}
	for _, ax := range o.Axioms() {
		if err := e.axiom(ax); err != nil {
			return err
		}
	}
	for _, r := range o.Rules() {
		if err := e.rule(r); err != nil {
			return err
		}
	}
	e.close("Ontology")
	if e.err != nil {
		return fmt.Errorf("write ontology: %w", e.err)
	}
	return nil
}

func (e *encoder) entity(ent owl.Entity) {
	e.empty(string(ent.EntityKind()), attr{"IRI", ent.EntityIRI()})
}

func (e *encoder) literal(l *owl.Literal) {
	switch {
	case l.Lang != "":
		e.text("Literal", l.Value, attr{"xml:lang", l.Lang})
	case l.Datatype == "" || l.Datatype == rdf.XSDString:
		e.text("Literal", l.Value)
	default:
		e.text("Literal", l.Value, attr{"datatypeIRI", l.Datatype})
	}
}

func (e *encoder) individual(ind owl.Individual) {
	switch v := ind.(type) {
	case *owl.NamedIndividual:
		e.entity(v)
	case *owl.AnonymousIndividual:
		e.empty("AnonymousIndividual", attr{"nodeID", v.NodeID})
	}
}

func (e *encoder) objectProperty(p owl.ObjectPropertyExpression) {
	if p.Inverse() {
		e.open("ObjectInverseOf")
		e.entity(p.Named())
		e.close("ObjectInverseOf")
		return
	}
	e.entity(p.Named())
}

func cardinality(n uint) attr { return attr{"cardinality", strconv.FormatUint(uint64(n), 10)} }

// expression writes any class expression, data range, entity, individual or
// literal.
func (e *encoder) expression(x owl.Expression) error {
	switch v := x.(type) {
	case owl.Entity:
		e.entity(v)
	case *owl.AnonymousIndividual:
		e.individual(v)
	case *owl.Literal:
		e.literal(v)
	case *owl.ObjectInverseOf:
		e.objectProperty(v)
	case *owl.ObjectIntersectionOf:
		return e.nested("ObjectIntersectionOf", nil, classes(v.Classes)...)
	case *owl.ObjectUnionOf:
		return e.nested("ObjectUnionOf", nil, classes(v.Classes)...)
	case *owl.ObjectComplementOf:
		return e.nested("ObjectComplementOf", nil, v.Class)
	case *owl.ObjectOneOf:
		return e.nested("ObjectOneOf", nil, individuals(v.Individuals)...)
	case *owl.ObjectSomeValuesFrom:
		return e.nested("ObjectSomeValuesFrom", nil, v.Property, v.Class)
	case *owl.ObjectAllValuesFrom:
		return e.nested("ObjectAllValuesFrom", nil, v.Property, v.Class)
	case *owl.ObjectHasValue:
		return e.nested("ObjectHasValue", nil, v.Property, v.Individual)
	case *owl.ObjectHasSelf:
		return e.nested("ObjectHasSelf", nil, v.Property)
	case *owl.ObjectCardinality:
		ops := []owl.Expression{v.Property}
		if v.Class != nil {
			ops = append(ops, v.Class)
		}
		return e.nested(v.Name(), []attr{cardinality(v.N)}, ops...)
	case *owl.DataSomeValuesFrom:
		return e.nested("DataSomeValuesFrom", nil, v.Property, v.Range)
	case *owl.DataAllValuesFrom:
		return e.nested("DataAllValuesFrom", nil, v.Property, v.Range)
	case *owl.DataHasValue:
		return e.nested("DataHasValue", nil, v.Property, v.Value)
	case *owl.DataCardinality:
		ops := []owl.Expression{v.Property}
		if v.Range != nil {
			ops = append(ops, v.Range)
		}
		return e.nested(v.Name(), []attr{cardinality(v.N)}, ops...)
	case *owl.DataIntersectionOf:
		return e.nested("DataIntersectionOf", nil, ranges(v.Ranges)...)
	case *owl.DataUnionOf:
		return e.nested("DataUnionOf", nil, ranges(v.Ranges)...)
	case *owl.DataComplementOf:
		return e.nested("DataComplementOf", nil, v.Range)
	case *owl.DataOneOf:
		ops := make([]owl.Expression, len(v.Literals))
		for i, l := range v.Literals {
			ops[i] = l
		}
		return e.nested("DataOneOf", nil, ops...)
	case *owl.DatatypeRestriction:
		e.open("DatatypeRestriction")
		e.entity(v.Datatype)
		for _, f := range v.Facets {
			e.open("FacetRestriction", attr{"facet", f.Facet})
			e.literal(f.Value)
			e.close("FacetRestriction")
		}
		e.close("DatatypeRestriction")
	case owl.IRIValue:
		e.text("IRI", string(v))
	default:
		return fmt.Errorf("%w: cannot encode %T", ErrMalformed, x)
	}
	return nil
}

func (e *encoder) nested(name string, attrs []attr, ops ...owl.Expression) error {
	e.open(name, attrs...)
	for _, op := range ops {
		if err := e.expression(op); err != nil {
			return err
		}
	}
	e.close(name)
	return nil
}

func classes(cs []owl.ClassExpression) []owl.Expression {
	out := make([]owl.Expression, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func ranges(rs []owl.DataRange) []owl.Expression {
	out := make([]owl.Expression, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}

func individuals(inds []owl.Individual) []owl.Expression {
	out := make([]owl.Expression, len(inds))
	for i, ind := range inds {
		out[i] = ind
	}
	return out
}

func (e *encoder) annotation(a owl.Annotation) {
	e.open("Annotation")
	for _, nested := range a.Annotations {
		e.annotation(nested)
	}
	e.entity(a.Property)
	_ = e.expression(a.Value)
	e.close("Annotation")
}

func (e *encoder) axiom(ax owl.Axiom) error {
	name := string(ax.Kind())
	e.open(name)
	for _, a := range ax.Annotations() {
		e.annotation(a)
	}
	var err error
	switch a := ax.(type) {
	case *owl.SubObjectPropertyOf:
		if len(a.Chain) > 0 {
			e.open("ObjectPropertyChain")
			for _, p := range a.Chain {
				e.objectProperty(p)
			}
			e.close("ObjectPropertyChain")
			e.objectProperty(a.Super)
			break
		}
		err = e.operands(owl.Operands(ax))
	case *owl.AnnotationPropertyDomain:
		e.entity(a.Property)
		e.text("IRI", a.Domain)
	case *owl.AnnotationPropertyRange:
		e.entity(a.Property)
		e.text("IRI", a.Range)
	default:
		err = e.operands(owl.Operands(ax))
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	e.close(name)
	return nil
}

func (e *encoder) operands(ops []owl.Expression) error {
	for _, op := range ops {
		if err := e.expression(op); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) argument(a owl.Argument) {
	switch v := a.(type) {
	case *owl.Variable:
		e.empty("Variable", attr{"IRI", v.IRI})
	case *owl.IndividualArgument:
		e.individual(v.Individual)
	case *owl.LiteralArgument:
		e.literal(v.Literal)
	}
}

func (e *encoder) atom(a owl.Atom) error {
	name := atomName(a)
	e.open(name)
	var err error
	switch v := a.(type) {
	case *owl.ClassAtom:
		err = e.expression(v.Class)
	case *owl.DataRangeAtom:
		err = e.expression(v.Range)
	case *owl.ObjectPropertyAtom:
		e.objectProperty(v.Property)
	case *owl.DataPropertyAtom:
		e.entity(v.Property)
	case *owl.SameIndividualAtom, *owl.DifferentIndividualsAtom:
	default:
		err = fmt.Errorf("%w: cannot encode atom %T", ErrMalformed, a)
	}
	if err != nil {
		return err
	}
	for _, arg := range a.Arguments() {
		e.argument(arg)
	}
	e.close(name)
	return nil
}

func atomName(a owl.Atom) string {
	s := a.String()
	if i := strings.IndexByte(s, '('); i > 0 {
		return s[:i]
	}
	return s
}

func (e *encoder) rule(r *owl.Rule) error {
	e.open("DLSafeRule")
	for _, a := range r.Annotations {
		e.annotation(a)
	}
	e.open("Body")
	for _, a := range r.Antecedent.Atoms {
		if err := e.atom(a); err != nil {
			return err
		}
	}
	for _, b := range r.Antecedent.BuiltIns {
		e.open("BuiltInAtom", attr{"IRI", b.IRI})
		for _, arg := range b.Args {
			e.argument(arg)
		}
		e.close("BuiltInAtom")
	}
	e.close("Body")
	e.open("Head")
	for _, a := range r.Consequent.Atoms {
		if err := e.atom(a); err != nil {
			return err
		}
	}
	e.close("Head")
	e.close("DLSafeRule")
	return nil
}
