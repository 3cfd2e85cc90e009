package swrl

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// ParseOption configures Parse.
type ParseOption func(*parser)

// WithOntology resolves names against the prefixes and declarations of o.
// Declarations decide whether a two-argument atom uses a data or an object
// property and whether a one-argument atom names a datatype.
func WithOntology(o *owl.Ontology) ParseOption {
	return func(p *parser) {
		if o == nil {
			return
		}
		for _, pre := range o.Prefixes {
			p.prefixes[pre.Name] = pre.IRI
		}
		if _, ok := p.prefixes[""]; !ok && o.IRI != "" {
			p.prefixes[""] = namespaceOf(o.IRI)
		}
		for _, d := range owl.AxiomsOf[*owl.Declaration](o) {
			p.kinds[d.Entity.EntityIRI()] = append(p.kinds[d.Entity.EntityIRI()], d.Entity.EntityKind())
		}
	}
}

// WithParseRegistry treats the IRIs registered in r as built-ins even
// outside the swrlb namespace.
func WithParseRegistry(r *Registry) ParseOption {
	return func(p *parser) {
		if r != nil {
			p.registry = r
		}
	}
}

func namespaceOf(iri string) string {
	if strings.HasSuffix(iri, "#") || strings.HasSuffix(iri, "/") {
		return iri
	}
	return iri + "#"
}

type parser struct {
	toks     []token
	pos      int
	prefixes map[string]string
	kinds    map[string][]owl.EntityKind
	registry *Registry
}

func newParser(prefixes map[string]string, opts []ParseOption) *parser {
	p := &parser{
		prefixes: make(map[string]string),
		kinds:    make(map[string][]owl.EntityKind),
		registry: defaultRegistry,
	}
	for _, pre := range owl.DefaultPrefixes() {
		p.prefixes[pre.Name] = pre.IRI
	}
	for _, opt := range opts {
		opt(p)
	}
	// Explicit prefixes win over the ontology's.
	for name, iri := range prefixes {
		p.prefixes[name] = iri
	}
	return p
}

// Parse reads rules written one per line in the human-readable syntax:
//
//	[adult] Person(?p) ^ hasAge(?p, ?a) ^ swrlb:greaterThan(?a, 17) -> Adult(?p)
//
// Blank lines and '#' comments are skipped. Names are prefixed names,
// bare names in the default ("") prefix or full IRIs in angle brackets.
// sameAs and differentFrom denote the individual equality atoms. An optional
// leading [label] becomes the rule's rdfs:label.
func Parse(text string, prefixes map[string]string, opts ...ParseOption) ([]*owl.Rule, error) {
	p := newParser(prefixes, opts)
	var rules []*owl.Rule
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		r, err := p.parseLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if r != nil {
			rules = append(rules, r)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return rules, nil
}

// ParseRule parses a single rule.
func ParseRule(text string, prefixes map[string]string, opts ...ParseOption) (*owl.Rule, error) {
	r, err := newParser(prefixes, opts).parseLine(text)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: empty rule", ErrParse)
	}
	return r, nil
}

// parseLine returns nil for blank and comment lines.
func (p *parser) parseLine(line string) (*owl.Rule, error) {
	toks, err := lex(line)
	if err != nil {
		return nil, err
	}
	if len(toks) == 1 {
		return nil, nil
	}
	p.toks, p.pos = toks, 0
	return p.rule()
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return fmt.Errorf("%w: column %d: %s", ErrParse, t.col, fmt.Sprintf(format, args...))
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, p.errorf(t, "expected %s, found %s", kind, describe(t))
	}
	return t, nil
}

func describe(t token) string {
	if t.text == "" {
		return t.kind.String()
	}
	return fmt.Sprintf("%s %q", t.kind, t.text)
}

func (p *parser) rule() (*owl.Rule, error) {
	r := &owl.Rule{}
	if p.peek().kind == tokLabel {
		label := p.next().text
		r.Annotations = append(r.Annotations, owl.NewAnnotation(
			owl.NewAnnotationProperty(owl.RDFSLabel), owl.NewLiteral(label, rdf.XSDString)))
	}
	if p.peek().kind != tokArrow {
		for {
			atom, builtIn, err := p.atom(false)
			if err != nil {
				return nil, err
			}
			if builtIn != nil {
				r.Antecedent.BuiltIns = append(r.Antecedent.BuiltIns, builtIn)
			} else {
				r.Antecedent.Atoms = append(r.Antecedent.Atoms, atom)
			}
			if p.peek().kind != tokAnd {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokArrow); err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		for {
			atom, _, err := p.atom(true)
			if err != nil {
				return nil, err
			}
			r.Consequent.Atoms = append(r.Consequent.Atoms, atom)
			if p.peek().kind != tokAnd {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	return r, nil
}

// expand resolves a name or IRI token to a full IRI.
func (p *parser) expand(t token) (string, error) {
	switch t.kind {
	case tokIRI:
		return t.text, nil
	case tokName:
		prefix, local, ok := strings.Cut(t.text, ":")
		if !ok {
			prefix, local = "", t.text
		}
		ns, known := p.prefixes[prefix]
		if !known {
			if prefix == "" {
				return "", p.errorf(t, "no default prefix for %q", t.text)
			}
			return "", p.errorf(t, "undeclared prefix %q", prefix)
		}
		return ns + local, nil
	}
	return "", p.errorf(t, "expected a name, found %s", describe(t))
}

func (p *parser) declared(iri string, kind owl.EntityKind) bool {
	for _, k := range p.kinds[iri] {
		if k == kind {
			return true
		}
	}
	return false
}

func (p *parser) isDatatype(iri string) bool {
	return strings.HasPrefix(iri, rdf.XSD) || iri == rdf.RDFSLiteral || iri == rdf.RDFPlainLit ||
		iri == rdf.RDFLangStr || p.declared(iri, owl.EntityDatatype)
}

func (p *parser) isBuiltIn(iri string) bool {
	if strings.HasPrefix(iri, rdf.SWRLB) {
		return true
	}
	_, ok := p.registry.Lookup(iri)
	return ok
}

func (p *parser) atom(head bool) (owl.Atom, *owl.BuiltIn, error) {
	nameTok := p.next()
	if nameTok.kind != tokName && nameTok.kind != tokIRI {
		return nil, nil, p.errorf(nameTok, "expected an atom, found %s", describe(nameTok))
	}
	if _, err := p.expect(tokLParen); err != nil {
		return nil, nil, err
	}
	var args []owl.Argument
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.argument()
			if err != nil {
				return nil, nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, nil, err
	}

	var iri string
	switch {
	case nameTok.kind == tokName && nameTok.text == "sameAs":
		iri = rdf.OWL + "sameAs"
	case nameTok.kind == tokName && nameTok.text == "differentFrom":
		iri = rdf.OWL + "differentFrom"
	default:
		var err error
		if iri, err = p.expand(nameTok); err != nil {
			return nil, nil, err
		}
	}

	switch {
	case iri == rdf.OWL+"sameAs" || iri == rdf.OWL+"differentFrom":
		if len(args) != 2 {
			return nil, nil, p.errorf(nameTok, "%s takes 2 arguments, got %d", nameTok.text, len(args))
		}
		if iri == rdf.OWL+"sameAs" {
			return &owl.SameIndividualAtom{Left: args[0], Right: args[1]}, nil, nil
		}
		return &owl.DifferentIndividualsAtom{Left: args[0], Right: args[1]}, nil, nil

	case p.isBuiltIn(iri):
		if head {
			return nil, nil, p.errorf(nameTok, "built-in %s is not allowed in the rule head", nameTok.text)
		}
		return nil, &owl.BuiltIn{IRI: iri, Args: args}, nil

	case len(args) == 1:
		if p.isDatatype(iri) {
			return &owl.DataRangeAtom{Range: owl.NewDatatype(iri), Arg: args[0]}, nil, nil
		}
		return &owl.ClassAtom{Class: owl.NewClass(iri), Arg: args[0]}, nil, nil

	case len(args) == 2:
		_, literal := args[1].(*owl.LiteralArgument)
		if p.declared(iri, owl.EntityDataProperty) || (literal && !p.declared(iri, owl.EntityObjectProperty)) {
			return &owl.DataPropertyAtom{Property: owl.NewDataProperty(iri), Left: args[0], Right: args[1]}, nil, nil
		}
		if literal {
			return nil, nil, p.errorf(nameTok, "object property %s cannot take a literal", nameTok.text)
		}
		return &owl.ObjectPropertyAtom{Property: owl.NewObjectProperty(iri), Left: args[0], Right: args[1]}, nil, nil
	}
	return nil, nil, p.errorf(nameTok, "%s has %d arguments; atoms take 1 or 2", nameTok.text, len(args))
}

func (p *parser) argument() (owl.Argument, error) {
	t := p.next()
	switch t.kind {
	case tokVar:
		return owl.Var(t.text), nil
	case tokString:
		switch p.peek().kind {
		case tokLang:
			return owl.LiteralArg(owl.NewLangLiteral(t.text, p.next().text)), nil
		case tokDatatype:
			p.next()
			dt, err := p.expand(p.next())
			if err != nil {
				return nil, err
			}
			return owl.LiteralArg(owl.NewLiteral(t.text, dt)), nil
		}
		return owl.LiteralArg(owl.NewLiteral(t.text, rdf.XSDString)), nil
	case tokNumber:
		return owl.LiteralArg(numberLiteral(t.text)), nil
	case tokName:
		switch {
		case t.text == "true" || t.text == "false":
			return owl.LiteralArg(owl.NewLiteral(t.text, rdf.XSDBoolean)), nil
		case strings.HasPrefix(t.text, "_:"):
			return owl.IndividualArg(owl.NewAnonymousIndividual(strings.TrimPrefix(t.text, "_:"))), nil
		}
		fallthrough
	case tokIRI:
		iri, err := p.expand(t)
		if err != nil {
			return nil, err
		}
		return owl.IndividualArg(owl.NewIndividual(iri)), nil
	}
	return nil, p.errorf(t, "expected an argument, found %s", describe(t))
}

func numberLiteral(s string) *owl.Literal {
	switch {
	case strings.ContainsAny(s, "eE"):
		return owl.NewLiteral(s, rdf.XSDDouble)
	case strings.Contains(s, "."):
		return owl.NewLiteral(s, rdf.XSDDecimal)
	}
	return owl.NewLiteral(strings.TrimPrefix(s, "+"), rdf.XSDInteger)
}
