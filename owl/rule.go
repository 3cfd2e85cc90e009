package owl

import (
	"strings"

	"github.com/c360studio/semowl/rdf"
)

// VariableNamespace prefixes the IRIs of SWRL variables created from the
// human-readable ?name syntax.
const VariableNamespace = "urn:swrl:var#"

// Argument is a SWRL atom argument: a variable, an individual or a literal.
type Argument interface {
	String() string
	argument()
}

// Variable is a SWRL variable.
type Variable struct {
	IRI string
}

// Var returns the variable with the given short name.
func Var(name string) *Variable {
	return &Variable{IRI: VariableNamespace + strings.TrimPrefix(name, "?")}
}

// Name returns the short name of the variable, without the question mark.
func (v *Variable) Name() string {
	if i := strings.LastIndexAny(v.IRI, "#/"); i >= 0 && i < len(v.IRI)-1 {
		return v.IRI[i+1:]
	}
	return v.IRI
}

func (v *Variable) String() string { return functional("Variable", iriString(v.IRI)) }
func (v *Variable) argument()      {}

// IndividualArgument is an individual used as an atom argument.
type IndividualArgument struct {
	Individual Individual
}

// IndividualArg wraps an individual as an argument.
func IndividualArg(ind Individual) *IndividualArgument {
	return &IndividualArgument{Individual: ind}
}

func (a *IndividualArgument) String() string {
	if n, ok := a.Individual.(*NamedIndividual); ok {
		return functional("NamedIndividual", n.String())
	}
	return a.Individual.String()
}
func (a *IndividualArgument) argument() {}

// LiteralArgument is a literal used as an atom argument.
type LiteralArgument struct {
	Literal *Literal
}

// LiteralArg wraps a literal as an argument.
func LiteralArg(l *Literal) *LiteralArgument { return &LiteralArgument{Literal: l} }

func (a *LiteralArgument) String() string { return a.Literal.String() }
func (a *LiteralArgument) argument()      {}

// Atom is a SWRL atom.
type Atom interface {
	String() string
	// Arguments returns the atom arguments in order.
	Arguments() []Argument
	atom()
}

// ClassAtom holds when its argument is an instance of Class.
type ClassAtom struct {
	Class ClassExpression
	Arg   Argument
}

func (a *ClassAtom) String() string        { return functional("ClassAtom", a.Class.String(), a.Arg.String()) }
func (a *ClassAtom) Arguments() []Argument { return []Argument{a.Arg} }
func (a *ClassAtom) atom()                 {}

// DataRangeAtom holds when its argument is a literal in Range.
type DataRangeAtom struct {
	Range DataRange
	Arg   Argument
}

func (a *DataRangeAtom) String() string {
	return functional("DataRangeAtom", a.Range.String(), a.Arg.String())
}
func (a *DataRangeAtom) Arguments() []Argument { return []Argument{a.Arg} }
func (a *DataRangeAtom) atom()                 {}

// ObjectPropertyAtom holds when Property relates Left to Right.
type ObjectPropertyAtom struct {
	Property ObjectPropertyExpression
	Left     Argument
	Right    Argument
}

func (a *ObjectPropertyAtom) String() string {
	return functional("ObjectPropertyAtom", a.Property.String(), a.Left.String(), a.Right.String())
}
func (a *ObjectPropertyAtom) Arguments() []Argument { return []Argument{a.Left, a.Right} }
func (a *ObjectPropertyAtom) atom()                 {}

// DataPropertyAtom holds when Property relates Left to the literal Right.
type DataPropertyAtom struct {
	Property *DataProperty
	Left     Argument
	Right    Argument
}

func (a *DataPropertyAtom) String() string {
	return functional("DataPropertyAtom", a.Property.String(), a.Left.String(), a.Right.String())
}
func (a *DataPropertyAtom) Arguments() []Argument { return []Argument{a.Left, a.Right} }
func (a *DataPropertyAtom) atom()                 {}

// SameIndividualAtom holds when both arguments denote the same individual.
type SameIndividualAtom struct {
	Left  Argument
	Right Argument
}

func (a *SameIndividualAtom) String() string {
	return functional("SameIndividualAtom", a.Left.String(), a.Right.String())
}
func (a *SameIndividualAtom) Arguments() []Argument { return []Argument{a.Left, a.Right} }
func (a *SameIndividualAtom) atom()                 {}

// DifferentIndividualsAtom holds when the arguments are known to differ.
type DifferentIndividualsAtom struct {
	Left  Argument
	Right Argument
}

func (a *DifferentIndividualsAtom) String() string {
	return functional("DifferentIndividualsAtom", a.Left.String(), a.Right.String())
}
func (a *DifferentIndividualsAtom) Arguments() []Argument { return []Argument{a.Left, a.Right} }
func (a *DifferentIndividualsAtom) atom()                 {}

// BuiltIn is a call to a SWRL built-in predicate such as swrlb:greaterThan.
type BuiltIn struct {
	IRI  string
	Args []Argument
}

func (b *BuiltIn) String() string {
	parts := []string{iriString(b.IRI)}
	for _, a := range b.Args {
		parts = append(parts, a.String())
	}
	return functional("BuiltInAtom", parts...)
}

// Antecedent is the body of a rule.
type Antecedent struct {
	Atoms    []Atom
	BuiltIns []*BuiltIn
}

// Consequent is the head of a rule.
type Consequent struct {
	Atoms []Atom
}

// Rule is a DL-safe SWRL rule.
type Rule struct {
	Annotations []Annotation
	Antecedent  Antecedent
	Consequent  Consequent
}

// Label returns the rdfs:label or rdfs:comment of the rule, if any.
func (r *Rule) Label() string {
	for _, want := range []string{RDFSLabel, RDFSComment} {
		for _, a := range r.Annotations {
			if a.Property.IRI != want {
				continue
			}
			if l, ok := a.Value.(*Literal); ok {
				return l.Value
			}
		}
	}
	return ""
}

// String renders the rule in functional syntax, without annotations.
func (r *Rule) String() string {
	body := make([]string, 0, len(r.Antecedent.Atoms)+len(r.Antecedent.BuiltIns))
	for _, a := range r.Antecedent.Atoms {
		body = append(body, a.String())
	}
	for _, b := range r.Antecedent.BuiltIns {
		body = append(body, b.String())
	}
	head := make([]string, 0, len(r.Consequent.Atoms))
	for _, a := range r.Consequent.Atoms {
		head = append(head, a.String())
	}
	return functional("DLSafeRule", functional("Body", body...), functional("Head", head...))
}

// Variables returns the distinct variables of the rule in order of first use.
func (r *Rule) Variables() []*Variable {
	seen := make(map[string]bool)
	var out []*Variable
	collect := func(args []Argument) {
		for _, a := range args {
			if v, ok := a.(*Variable); ok && !seen[v.IRI] {
				seen[v.IRI] = true
				out = append(out, v)
			}
		}
	}
	for _, a := range r.Antecedent.Atoms {
		collect(a.Arguments())
	}
	for _, b := range r.Antecedent.BuiltIns {
		collect(b.Args)
	}
	for _, a := range r.Consequent.Atoms {
		collect(a.Arguments())
	}
	return out
}

// ArgumentTerm returns the RDF term of a ground argument.
func ArgumentTerm(a Argument) (rdf.Term, bool) {
	switch v := a.(type) {
	case *IndividualArgument:
		return v.Individual.Term(), true
	case *LiteralArgument:
		return v.Literal.Term(), true
	}
	return rdf.Term{}, false
}
