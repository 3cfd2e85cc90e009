package swrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

func TestParse(t *testing.T) {
	text := `
# family rules
[adult] Person(?p) ^ hasAge(?p, ?a) ^ swrlb:greaterThan(?a, 17) -> Adult(?p)

hasParent(?x, ?y) ∧ hasBrother(?y, ?z) → hasUncle(?x, ?z)  # trailing comment
sameAs(?x, ?y) ^ differentFrom(?y, <http://other.org/z>) -> Flagged(?x)
hasName(?p, "Ann \"A\""@EN) ^ xsd:integer(?v) ^ score(?p, "4.5"^^xsd:decimal) -> Named(?p)
`
	rules, err := Parse(text, prefixes, WithOntology(familyOntology()))
	require.NoError(t, err)
	require.Len(t, rules, 4)

	adult := rules[0]
	assert.Equal(t, "adult", adult.Label())
	require.Len(t, adult.Antecedent.Atoms, 2)
	require.Len(t, adult.Antecedent.BuiltIns, 1)
	assert.IsType(t, &owl.ClassAtom{}, adult.Antecedent.Atoms[0])
	assert.IsType(t, &owl.DataPropertyAtom{}, adult.Antecedent.Atoms[1])
	assert.Equal(t, rdf.SWRLB+"greaterThan", adult.Antecedent.BuiltIns[0].IRI)
	assert.Equal(t, owl.LiteralArg(owl.NewIntegerLiteral(17)).String(), adult.Antecedent.BuiltIns[0].Args[1].String())

	uncle := rules[1]
	require.Len(t, uncle.Antecedent.Atoms, 2)
	assert.IsType(t, &owl.ObjectPropertyAtom{}, uncle.Antecedent.Atoms[0])
	assert.Equal(t, []string{"x", "y", "z"}, names(uncle.Variables()))

	flagged := rules[2]
	assert.IsType(t, &owl.SameIndividualAtom{}, flagged.Antecedent.Atoms[0])
	diff := flagged.Antecedent.Atoms[1].(*owl.DifferentIndividualsAtom)
	assert.Equal(t, owl.IndividualArg(owl.NewIndividual("http://other.org/z")).String(), diff.Right.String())

	named := rules[3]
	require.Len(t, named.Antecedent.Atoms, 3)
	name := named.Antecedent.Atoms[0].(*owl.DataPropertyAtom)
	assert.Equal(t, owl.NewLangLiteral(`Ann "A"`, "en").String(), name.Right.String())
	assert.IsType(t, &owl.DataRangeAtom{}, named.Antecedent.Atoms[1])
	score := named.Antecedent.Atoms[2].(*owl.DataPropertyAtom)
	assert.Equal(t, owl.NewLiteral("4.5", rdf.XSDDecimal).String(), score.Right.String())
}

func names(vs []*owl.Variable) []string {
	out := make([]string, len(vs))
	for n, v := range vs {
		out[n] = v.Name()
	}
	return out
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"missing arrow", "Person(?p) Adult(?p)", "expected '->'"},
		{"undeclared prefix", "foo:Bar(?x) -> Baz(?x)", `undeclared prefix "foo"`},
		{"unterminated string", `hasName(?x, "abc) -> A(?x)`, "unterminated string"},
		{"built-in in head", "A(?x) -> swrlb:equal(?x, ?x)", "not allowed in the rule head"},
		{"too many arguments", "A(?x, ?y, ?z) -> B(?x)", "atoms take 1 or 2"},
		{"literal object property", "A(?x) ^ hasParent(?x, 3) -> B(?x)", "cannot take a literal"},
		{"bad character", "A(?x) -> B(?x) !", "unexpected character"},
		{"empty variable", "A(?) -> B(?x)", "empty variable name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("\n"+tt.text, prefixes, WithOntology(familyOntology()))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
			assert.Contains(t, err.Error(), "line 2")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseRuleEmpty(t *testing.T) {
	_, err := ParseRule("  # only a comment", nil)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseNoDefaultPrefix(t *testing.T) {
	_, err := ParseRule("Person(?p) -> Adult(?p)", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no default prefix")

	r, err := ParseRule("owl:Thing(?p) -> <http://example.org/A>(?p)", nil)
	require.NoError(t, err)
	assert.Equal(t, owl.ThingIRI, r.Antecedent.Atoms[0].(*owl.ClassAtom).Class.(*owl.Class).IRI)
}

func TestFormatRoundTrip(t *testing.T) {
	rules := []string{
		"[adult] Person(?p) ^ hasAge(?p, ?a) ^ swrlb:greaterThan(?a, 17) -> Adult(?p)",
		"hasParent(?x, ?y) ^ hasBrother(?y, ?z) -> hasUncle(?x, ?z)",
		"sameAs(?x, alice) ^ differentFrom(?x, <http://other.org/z>) -> Flagged(?x)",
		`hasName(?p, "tab\there"@en) ^ score(?p, -4.5) ^ flag(?p, true) -> Named(?p)`,
		`hasAge(?p, ?a) ^ xsd:integer(?a) ^ swrlb:add(?n, ?a, 1) -> nextAge(?p, ?n) ^ Person(_:b1)`,
		`when(?e, "2024-01-01T00:00:00Z"^^xsd:dateTime) -> Event(?e)`,
		"-> Person(carol)",
	}
	for _, text := range rules {
		t.Run(text, func(t *testing.T) {
			r, err := ParseRule(text, prefixes, WithOntology(familyOntology()))
			require.NoError(t, err)
			formatted := Format(r, prefixes)
			assert.Equal(t, text, formatted)

			again, err := ParseRule(formatted, prefixes, WithOntology(familyOntology()))
			require.NoError(t, err)
			assert.Equal(t, r.String(), again.String())
		})
	}
}
