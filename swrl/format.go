package swrl

import (
	"sort"
	"strings"
	"unicode"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

type formatter struct {
	prefixes []owl.Prefix
}

func newFormatter(prefixes map[string]string) *formatter {
	f := &formatter{prefixes: owl.DefaultPrefixes()}
	for name, iri := range prefixes {
		f.prefixes = append(f.prefixes, owl.Prefix{Name: name, IRI: iri})
	}
	// Longest namespace first; ties broken by name for stable output.
	sort.SliceStable(f.prefixes, func(i, j int) bool {
		a, b := f.prefixes[i], f.prefixes[j]
		if len(a.IRI) != len(b.IRI) {
			return len(a.IRI) > len(b.IRI)
		}
		return a.Name < b.Name
	})
	return f
}

// Format renders a rule in the syntax read by Parse. Atoms over anonymous
// class expressions or data ranges are written in functional syntax, which
// Parse does not read back.
func Format(r *owl.Rule, prefixes map[string]string) string {
	f := newFormatter(prefixes)
	var b strings.Builder
	for _, a := range r.Annotations {
		if a.Property.IRI != owl.RDFSLabel {
			continue
		}
		if l, ok := a.Value.(*owl.Literal); ok && !strings.ContainsAny(l.Value, "[]") {
			b.WriteString("[" + l.Value + "] ")
			break
		}
	}
	body := make([]string, 0, len(r.Antecedent.Atoms)+len(r.Antecedent.BuiltIns))
	for _, a := range r.Antecedent.Atoms {
		body = append(body, f.atom(a))
	}
	for _, bi := range r.Antecedent.BuiltIns {
		body = append(body, f.call(f.name(bi.IRI), bi.Args...))
	}
	head := make([]string, 0, len(r.Consequent.Atoms))
	for _, a := range r.Consequent.Atoms {
		head = append(head, f.atom(a))
	}
	b.WriteString(strings.Join(body, " ^ "))
	if len(body) > 0 {
		b.WriteByte(' ')
	}
	b.WriteString("->")
	if len(head) > 0 {
		b.WriteString(" " + strings.Join(head, " ^ "))
	}
	return b.String()
}

func validLocal(s string) bool {
	if s == "" || s == "true" || s == "false" || s == "sameAs" || s == "differentFrom" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		}
		if !isNameRune(r) || r == ':' {
			return false
		}
	}
	return !strings.HasSuffix(s, ".") && !strings.Contains(s, "->")
}

func (f *formatter) name(iri string) string {
	for _, p := range f.prefixes {
		if p.IRI == "" || p.Name == "_" || !strings.HasPrefix(iri, p.IRI) {
			continue
		}
		local := iri[len(p.IRI):]
		if !validLocal(local) {
			continue
		}
		if p.Name == "" {
			return local
		}
		return p.Name + ":" + local
	}
	return "<" + iri + ">"
}

func (f *formatter) call(name string, args ...owl.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = f.argument(a)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

func (f *formatter) atom(a owl.Atom) string {
	switch v := a.(type) {
	case *owl.ClassAtom:
		if c, ok := owl.AsNamedClass(v.Class); ok {
			return f.call(f.name(c.IRI), v.Arg)
		}
	case *owl.DataRangeAtom:
		if d, ok := v.Range.(*owl.Datatype); ok {
			return f.call(f.name(d.IRI), v.Arg)
		}
	case *owl.ObjectPropertyAtom:
		if !v.Property.Inverse() {
			return f.call(f.name(v.Property.Named().IRI), v.Left, v.Right)
		}
	case *owl.DataPropertyAtom:
		return f.call(f.name(v.Property.IRI), v.Left, v.Right)
	case *owl.SameIndividualAtom:
		return f.call("sameAs", v.Left, v.Right)
	case *owl.DifferentIndividualsAtom:
		return f.call("differentFrom", v.Left, v.Right)
	}
	return a.String()
}

func (f *formatter) argument(a owl.Argument) string {
	switch v := a.(type) {
	case *owl.Variable:
		return "?" + v.Name()
	case *owl.IndividualArgument:
		if anon, ok := v.Individual.(*owl.AnonymousIndividual); ok {
			return "_:" + anon.NodeID
		}
		return f.name(v.Individual.Term().Value)
	case *owl.LiteralArgument:
		return f.literal(v.Literal)
	}
	return a.String()
}

func (f *formatter) literal(l *owl.Literal) string {
	switch {
	case l.Lang != "":
		return `"` + rdf.EscapeLiteral(l.Value) + `"@` + l.Lang
	case l.Datatype == rdf.XSDInteger && l.Valid():
		return l.Value
	case l.Datatype == rdf.XSDDecimal && l.Valid() && strings.Contains(l.Value, "."):
		return l.Value
	case l.Datatype == rdf.XSDBoolean && (l.Value == "true" || l.Value == "false"):
		return l.Value
	case l.Datatype == "" || l.Datatype == rdf.XSDString:
		return `"` + rdf.EscapeLiteral(l.Value) + `"`
	}
	return `"` + rdf.EscapeLiteral(l.Value) + `"^^` + f.name(l.Datatype)
}
