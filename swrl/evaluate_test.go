package swrl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

const ex = "http://example.org/family#"

var prefixes = map[string]string{"": ex}

func familyOntology() *owl.Ontology {
	o := owl.NewOntology("http://example.org/family")
	person := owl.NewClass(ex + "Person")
	hasAge := owl.NewDataProperty(ex + "hasAge")
	hasParent := owl.NewObjectProperty(ex + "hasParent")
	hasBrother := owl.NewObjectProperty(ex + "hasBrother")
	alice, bob, dave := owl.NewIndividual(ex+"alice"), owl.NewIndividual(ex+"bob"), owl.NewIndividual(ex+"dave")

	o.AddAxioms(
		owl.Declare(person),
		owl.Declare(hasAge),
		owl.Declare(owl.NewDataProperty(ex+"nextAge")),
		owl.Declare(hasParent),
		owl.NewClassAssertion(person, alice),
		owl.NewClassAssertion(person, bob),
		owl.NewDataPropertyAssertion(hasAge, alice, owl.NewIntegerLiteral(30)),
		owl.NewDataPropertyAssertion(hasAge, bob, owl.NewIntegerLiteral(12)),
		owl.NewObjectPropertyAssertion(hasParent, bob, alice),
		owl.NewObjectPropertyAssertion(hasBrother, alice, dave),
		owl.NewDifferentIndividuals(alice, bob),
	)
	return o
}

func evaluate(t *testing.T, o *owl.Ontology, text string, opts ...Option) []string {
	t.Helper()
	r, err := ParseRule(text, prefixes, WithOntology(o))
	require.NoError(t, err)
	got, err := Evaluate(context.Background(), r, owl.NewIndex(o), opts...)
	require.NoError(t, err)
	keys := make([]string, len(got))
	for n, ax := range got {
		assert.True(t, ax.IsInferred(), "%s should be marked inferred", ax)
		keys[n] = ax.String()
	}
	return keys
}

func TestEvaluate(t *testing.T) {
	alice, bob, dave := owl.NewIndividual(ex+"alice"), owl.NewIndividual(ex+"bob"), owl.NewIndividual(ex+"dave")
	nextAge := owl.NewDataProperty(ex + "nextAge")

	tests := []struct {
		name string
		rule string
		want []owl.Axiom
	}{
		{
			name: "comparison filter",
			rule: "Person(?p) ^ hasAge(?p, ?a) ^ swrlb:greaterThan(?a, 17) -> Adult(?p)",
			want: []owl.Axiom{owl.NewClassAssertion(owl.NewClass(ex+"Adult"), alice)},
		},
		{
			name: "join over shared variable",
			rule: "hasParent(?x, ?y) ^ hasBrother(?y, ?z) -> hasUncle(?x, ?z)",
			want: []owl.Axiom{owl.NewObjectPropertyAssertion(owl.NewObjectProperty(ex+"hasUncle"), bob, dave)},
		},
		{
			name: "computed binding",
			rule: "hasAge(?p, ?a) ^ swrlb:add(?n, ?a, 1) -> nextAge(?p, ?n)",
			want: []owl.Axiom{
				owl.NewDataPropertyAssertion(nextAge, alice, owl.NewIntegerLiteral(31)),
				owl.NewDataPropertyAssertion(nextAge, bob, owl.NewIntegerLiteral(13)),
			},
		},
		{
			name: "built-ins in any order",
			rule: "swrlb:greaterThan(?n, 20) ^ swrlb:add(?n, ?a, 1) ^ hasAge(?p, ?a) -> nextAge(?p, ?n)",
			want: []owl.Axiom{owl.NewDataPropertyAssertion(nextAge, alice, owl.NewIntegerLiteral(31))},
		},
		{
			name: "ground argument",
			rule: "hasParent(bob, ?y) -> Parent(?y)",
			want: []owl.Axiom{owl.NewClassAssertion(owl.NewClass(ex+"Parent"), alice)},
		},
		{
			name: "different individuals",
			rule: "differentFrom(?x, ?y) ^ hasParent(?x, ?y) -> Distinct(?x)",
			want: []owl.Axiom{owl.NewClassAssertion(owl.NewClass(ex+"Distinct"), bob)},
		},
		{
			name: "cross product",
			rule: "hasParent(?x, ?y) ^ hasBrother(?a, ?b) ^ swrlb:equal(?x, ?x) -> knows(?x, ?b)",
			want: []owl.Axiom{owl.NewObjectPropertyAssertion(owl.NewObjectProperty(ex+"knows"), bob, dave)},
		},
		{
			name: "no match",
			rule: "Person(?p) ^ hasAge(?p, ?a) ^ swrlb:greaterThan(?a, 100) -> Old(?p)",
			want: nil,
		},
		{
			name: "ill-typed consequent is skipped",
			rule: "hasAge(?p, ?a) -> Adult(?a)",
			want: nil,
		},
		{
			name: "empty antecedent",
			rule: "-> Person(carol)",
			want: []owl.Axiom{owl.NewClassAssertion(owl.NewClass(ex+"Person"), owl.NewIndividual(ex+"carol"))},
		},
		{
			name: "already asserted",
			rule: "hasParent(?x, ?y) -> Person(?x)",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := make([]string, len(tt.want))
			for n, ax := range tt.want {
				want[n] = ax.String()
			}
			assert.ElementsMatch(t, want, evaluate(t, familyOntology(), tt.rule))
		})
	}
}

func TestEvaluateSameAs(t *testing.T) {
	o := familyOntology()
	o.AddAxiom(owl.NewSameIndividual(owl.NewIndividual(ex+"alice"), owl.NewIndividual(ex+"alicia")))

	got := evaluate(t, o, "hasParent(bob, ?y) -> Parent(?y)")
	assert.ElementsMatch(t, []string{
		owl.NewClassAssertion(owl.NewClass(ex+"Parent"), owl.NewIndividual(ex+"alice")).String(),
		owl.NewClassAssertion(owl.NewClass(ex+"Parent"), owl.NewIndividual(ex+"alicia")).String(),
	}, got)

	got = evaluate(t, o, "sameAs(alicia, ?x) ^ Person(?x) -> Known(?x)")
	assert.Len(t, got, 2)
}

func TestEvaluateCustomBuiltIn(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&BuiltIn{
		IRI:     ex + "isTeen",
		MinArgs: 1,
		MaxArgs: 1,
		Test: func(args []*owl.Literal) bool {
			v, ok := args[0].Float()
			return ok && v >= 13 && v <= 19
		},
	}))
	o := familyOntology()
	o.AddAxiom(owl.NewDataPropertyAssertion(owl.NewDataProperty(ex+"hasAge"), owl.NewIndividual(ex+"erin"), owl.NewIntegerLiteral(15)))

	r, err := ParseRule("hasAge(?p, ?a) ^ isTeen(?a) -> Teen(?p)", prefixes, WithOntology(o), WithParseRegistry(reg))
	require.NoError(t, err)
	require.Len(t, r.Antecedent.BuiltIns, 1)

	_, err = Evaluate(context.Background(), r, owl.NewIndex(o))
	assert.ErrorIs(t, err, ErrUnknownBuiltIn, "default registry does not know the custom built-in")

	got, err := Evaluate(context.Background(), r, owl.NewIndex(o), WithRegistry(reg))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, owl.NewClassAssertion(owl.NewClass(ex+"Teen"), owl.NewIndividual(ex+"erin")).String(), got[0].String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		rule *owl.Rule
		err  error
	}{
		{
			name: "safe",
			rule: mustParse(t, "Person(?p) ^ hasAge(?p, ?a) ^ swrlb:add(?b, ?a, 1) -> nextAge(?p, ?b)"),
		},
		{
			name: "unknown built-in",
			rule: mustParse(t, "Person(?p) ^ swrlb:frobnicate(?p) -> Adult(?p)"),
			err:  ErrUnknownBuiltIn,
		},
		{
			name: "arity",
			rule: mustParse(t, "hasAge(?p, ?a) ^ swrlb:greaterThan(?a) -> Adult(?p)"),
			err:  ErrArity,
		},
		{
			name: "unbound consequent variable",
			rule: mustParse(t, "Person(?p) -> hasFriend(?p, ?q)"),
			err:  ErrUnsafeRule,
		},
		{
			name: "unbound test argument",
			rule: mustParse(t, "Person(?p) ^ swrlb:lessThan(?x, 3) -> Adult(?p)"),
			err:  ErrUnsafeRule,
		},
		{
			name: "function with two unbound arguments",
			rule: mustParse(t, "Person(?p) ^ swrlb:add(?x, ?y, 1) -> Adult(?p)"),
			err:  ErrUnsafeRule,
		},
		{
			name: "data range in head",
			rule: &owl.Rule{
				Antecedent: owl.Antecedent{Atoms: []owl.Atom{&owl.ClassAtom{Class: owl.NewClass(ex + "A"), Arg: owl.Var("x")}}},
				Consequent: owl.Consequent{Atoms: []owl.Atom{&owl.DataRangeAtom{Range: owl.NewDatatype(rdf.XSDInteger), Arg: owl.Var("x")}}},
			},
			err: ErrHeadAtom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.rule)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestEvaluateKeepsLargeIntegersExact(t *testing.T) {
	o := owl.NewOntology("http://example.org/family")
	hasAge := owl.NewDataProperty(ex + "hasAge")
	nextAge := owl.NewDataProperty(ex + "nextAge")
	carol := owl.NewIndividual(ex + "carol")
	o.AddAxioms(
		owl.Declare(hasAge),
		owl.Declare(nextAge),
		owl.NewDataPropertyAssertion(hasAge, carol, owl.NewLiteral("9007199254740993", rdf.XSDInteger)),
	)

	got := evaluate(t, o, "hasAge(?p, ?a) ^ swrlb:add(?n, ?a, 0) -> nextAge(?p, ?n)")
	assert.Equal(t, []string{
		owl.NewDataPropertyAssertion(nextAge, carol, owl.NewLiteral("9007199254740993", rdf.XSDInteger)).String(),
	}, got)
}

func TestEvaluateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := mustParse(t, "Person(?p) -> Known(?p)")
	_, err := Evaluate(ctx, r, owl.NewIndex(familyOntology()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAtomTable(t *testing.T) {
	idx := owl.NewIndex(familyOntology())
	alice, bob := rdf.IRI(ex+"alice"), rdf.IRI(ex+"bob")

	tab := AtomTable(idx, &owl.DifferentIndividualsAtom{Left: owl.Var("x"), Right: owl.Var("y")})
	assert.ElementsMatch(t, [][]rdf.Term{{alice, bob}, {bob, alice}}, tab.Rows)

	tab = AtomTable(idx, &owl.DataRangeAtom{Range: owl.Restrict(owl.NewDatatype(rdf.XSDInteger),
		owl.FacetRestriction{Facet: owl.FacetMinInclusive, Value: owl.NewIntegerLiteral(18)}), Arg: owl.Var("v")})
	assert.Equal(t, [][]rdf.Term{{owl.NewIntegerLiteral(30).Term()}}, tab.Rows)

	tab = AtomTable(idx, &owl.ObjectPropertyAtom{Property: owl.NewObjectProperty(ex + "hasParent"), Left: owl.Var("x"), Right: owl.Var("x")})
	assert.Zero(t, tab.Len(), "a repeated variable needs equal values")
}

func mustParse(t *testing.T, text string) *owl.Rule {
	t.Helper()
	r, err := ParseRule(text, prefixes, WithOntology(familyOntology()))
	require.NoError(t, err)
	return r
}
