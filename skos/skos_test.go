package skos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/reasoner"
	"github.com/c360studio/semowl/validator"
)

const ex = "http://example.org/animals#"

const (
	scheme   = ex + "animals"
	other    = ex + "pets"
	animal   = ex + "animal"
	mammal   = ex + "mammal"
	cat      = ex + "cat"
	kitten   = ex + "kitten"
	whiskers = ex + "whiskers"
	housecat = ex + "housecat"
	moggy    = ex + "moggy"
	pet      = ex + "pet"
)

// animals builds a small hierarchy: animal > mammal > cat > kitten, with
// cat related to whiskers.
func animals() *owl.Ontology {
	o := owl.NewOntology("http://example.org/animals")
	DeclareVocabulary(o)
	DeclareConceptScheme(o, scheme)
	for _, c := range []string{animal, mammal, cat, kitten, whiskers} {
		DeclareConcept(o, c, scheme)
	}
	DeclareTopConcept(o, scheme, animal)
	DeclareBroader(o, mammal, animal)
	DeclareBroader(o, cat, mammal)
	DeclareNarrower(o, cat, kitten)
	DeclareRelated(o, cat, whiskers)
	AddPrefLabel(o, cat, "cat", "en")
	AddPrefLabel(o, cat, "chat", "fr")
	AddAltLabel(o, cat, "house cat", "en")
	AddHiddenLabel(o, cat, "kat", "en")
	AddNotation(o, cat, "A.1.1", "")
	return o
}

func TestQueries(t *testing.T) {
	idx := owl.NewIndex(animals())

	assert.Equal(t, []string{mammal}, BroaderOf(idx, cat))
	assert.Equal(t, []string{cat}, BroaderOf(idx, kitten), "narrower assertions count in reverse")
	assert.Equal(t, []string{kitten}, NarrowerOf(idx, cat))
	assert.Equal(t, []string{animal, mammal}, BroaderTransitiveOf(idx, cat))
	assert.Equal(t, []string{cat, kitten, mammal}, NarrowerTransitiveOf(idx, animal))
	assert.Equal(t, []string{whiskers}, RelatedTo(idx, cat))
	assert.Equal(t, []string{cat}, RelatedTo(idx, whiskers))
	assert.Equal(t, []string{animal}, TopConcepts(idx, scheme))
	assert.Equal(t, []string{animal, cat, kitten, mammal, whiskers}, Concepts(idx, scheme))
	assert.Empty(t, Concepts(idx, other))

	labels := Labels(idx, cat)
	require.Len(t, labels, 4)
	assert.Equal(t, Label{Kind: LabelPref, Value: "cat", Lang: "en"}, labels[0])
	assert.Equal(t, Label{Kind: LabelPref, Value: "chat", Lang: "fr"}, labels[1])
	assert.Equal(t, LabelAlt, labels[2].Kind)
	assert.Equal(t, LabelHidden, labels[3].Kind)

	label, ok := PrefLabelOf(idx, cat, "fr")
	assert.True(t, ok)
	assert.Equal(t, "chat", label)
	_, ok = PrefLabelOf(idx, cat, "de")
	assert.False(t, ok)

	notations := NotationsOf(idx, cat)
	require.Len(t, notations, 1)
	assert.Equal(t, "A.1.1", notations[0].Value)
}

func TestMappingQueries(t *testing.T) {
	o := animals()
	DeclareMapping(o, ExactMatch, cat, housecat)
	DeclareMapping(o, BroadMatch, kitten, pet)
	idx := owl.NewIndex(o)

	assert.Equal(t, []string{housecat}, MappingsOf(idx, ExactMatch, cat))
	assert.Equal(t, []string{pet}, MappingsOf(idx, BroadMatch, kitten))
	assert.Equal(t, []string{housecat}, MappingsOf(idx, CloseMatch, cat), "exact matches are close matches")
	assert.Empty(t, MappingsOf(idx, RelatedMatch, cat))
}

func applyRule(t *testing.T, name string, o *owl.Ontology) map[string]bool {
	t.Helper()
	for _, rule := range ReasonerRules() {
		if rule.Name() != name {
			continue
		}
		axs, err := rule.Apply(context.Background(), owl.NewIndex(o))
		require.NoError(t, err)
		got := make(map[string]bool, len(axs))
		for _, ax := range axs {
			got[ax.String()] = true
		}
		return got
	}
	t.Fatalf("no rule %q", name)
	return nil
}

func assertion(p, s, o string) string {
	return owl.NewObjectPropertyAssertion(owl.NewObjectProperty(p), owl.NewIndividual(s), owl.NewIndividual(o)).String()
}

func TestReasonerRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  string
		build func(o *owl.Ontology)
		want  []string
		deny  []string
	}{
		{
			name:  "broader mirrors narrower",
			rule:  RuleBroaderNarrower,
			build: func(o *owl.Ontology) {},
			want:  []string{assertion(Narrower, mammal, cat), assertion(Broader, kitten, cat)},
		},
		{
			name:  "transitive closure",
			rule:  RuleTransitive,
			build: func(o *owl.Ontology) {},
			want: []string{
				assertion(BroaderTransitive, kitten, animal),
				assertion(BroaderTransitive, cat, animal),
				assertion(NarrowerTransitive, animal, kitten),
			},
		},
		{
			name:  "related is symmetric",
			rule:  RuleRelated,
			build: func(o *owl.Ontology) {},
			want:  []string{assertion(Related, whiskers, cat)},
		},
		{
			name: "exact match is symmetric and transitive",
			rule: RuleExactMatch,
			build: func(o *owl.Ontology) {
				DeclareMapping(o, ExactMatch, cat, housecat)
				DeclareMapping(o, ExactMatch, housecat, moggy)
			},
			want: []string{
				assertion(ExactMatch, cat, moggy),
				assertion(ExactMatch, moggy, cat),
				assertion(ExactMatch, housecat, cat),
			},
			deny: []string{assertion(ExactMatch, cat, cat)},
		},
		{
			name: "close and related matches are symmetric",
			rule: RuleMatchSymmetry,
			build: func(o *owl.Ontology) {
				DeclareMapping(o, CloseMatch, cat, housecat)
				DeclareMapping(o, RelatedMatch, kitten, pet)
			},
			want: []string{assertion(CloseMatch, housecat, cat), assertion(RelatedMatch, pet, kitten)},
		},
		{
			name: "broad and narrow matches are inverse",
			rule: RuleMatchInverse,
			build: func(o *owl.Ontology) {
				DeclareMapping(o, BroadMatch, kitten, pet)
			},
			want: []string{assertion(NarrowMatch, pet, kitten)},
		},
		{
			name:  "top concept is in its scheme",
			rule:  RuleTopConcept,
			build: func(o *owl.Ontology) {},
			want:  []string{assertion(TopConceptOf, animal, scheme)},
		},
		{
			name: "topConceptOf implies inScheme",
			rule: RuleTopConcept,
			build: func(o *owl.Ontology) {
				DeclareConceptScheme(o, other)
				o.AddAxiom(owl.NewObjectPropertyAssertion(owl.NewObjectProperty(TopConceptOf),
					owl.NewIndividual(pet), owl.NewIndividual(other)))
			},
			want: []string{assertion(InScheme, pet, other), assertion(HasTopConcept, other, pet)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := animals()
			tt.build(o)
			got := applyRule(t, tt.rule, o)
			for _, w := range tt.want {
				assert.True(t, got[w], "missing %s", w)
			}
			for _, d := range tt.deny {
				assert.False(t, got[d], "unexpected %s", d)
			}
		})
	}
}

func TestReasonerReachesFixpointWithSKOSRules(t *testing.T) {
	r, err := reasoner.New(reasoner.WithRules(ReasonerRules()...))
	require.NoError(t, err)

	o := animals()
	_, err = r.Apply(context.Background(), o)
	require.NoError(t, err)

	idx := owl.NewIndex(o)
	assert.Contains(t, NarrowerOf(idx, animal), mammal)
	assert.True(t, o.ContainsKey(assertion(NarrowerTransitive, animal, kitten)))
	assert.True(t, o.ContainsKey(assertion(TopConceptOf, animal, scheme)))
}

func TestValidatorRules(t *testing.T) {
	tests := []struct {
		name     string
		build    func(o *owl.Ontology)
		rule     string
		errors   int
		warnings int
	}{
		{
			name:   "label used as pref and alt",
			build:  func(o *owl.Ontology) { AddAltLabel(o, cat, "cat", "en") },
			rule:   RuleLabelDisjointness,
			errors: 1,
		},
		{
			name:  "same text in different languages is fine",
			build: func(o *owl.Ontology) { AddAltLabel(o, cat, "cat", "fr") },
			rule:  RuleLabelDisjointness,
		},
		{
			name:   "two preferred labels in one language",
			build:  func(o *owl.Ontology) { AddPrefLabel(o, cat, "feline", "en") },
			rule:   RulePrefLabelUnique,
			errors: 1,
		},
		{
			name:   "related to an ancestor",
			build:  func(o *owl.Ontology) { DeclareRelated(o, kitten, mammal) },
			rule:   RuleRelatedClash,
			errors: 1,
		},
		{
			name: "exact match that is also a broad match",
			build: func(o *owl.Ontology) {
				DeclareMapping(o, ExactMatch, cat, housecat)
				DeclareMapping(o, NarrowMatch, housecat, cat)
			},
			rule:   RuleExactMatchClash,
			errors: 1,
		},
		{
			name: "notation shared in one scheme",
			build: func(o *owl.Ontology) {
				AddNotation(o, kitten, "A.1.1", "")
			},
			rule:   RuleNotationUnique,
			errors: 1,
		},
		{
			name: "notation shared across schemes is fine",
			build: func(o *owl.Ontology) {
				DeclareConcept(o, pet, other)
				AddNotation(o, pet, "A.1.1", "")
			},
			rule: RuleNotationUnique,
		},
		{
			name: "top concept with a broader concept",
			build: func(o *owl.Ontology) {
				DeclareTopConcept(o, scheme, mammal)
			},
			rule:     RuleTopConceptBroader,
			warnings: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := animals()
			tt.build(o)
			v, err := validator.New(validator.WithRules(ValidatorRules()...), validator.WithSelection(tt.rule))
			require.NoError(t, err)
			report, err := v.Validate(context.Background(), o)
			require.NoError(t, err)
			assert.Equal(t, tt.errors, report.Errors(), "issues: %v", report.Issues)
			assert.Equal(t, tt.warnings, report.Warnings(), "issues: %v", report.Issues)
		})
	}
}

func TestCleanSchemeIsValid(t *testing.T) {
	v, err := validator.New(validator.WithRules(ValidatorRules()...))
	require.NoError(t, err)
	report, err := v.Validate(context.Background(), animals())
	require.NoError(t, err)
	assert.True(t, report.Valid(), "issues: %v", report.Issues)
	assert.Zero(t, report.Warnings(), "issues: %v", report.Issues)
}
