package reasoner

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
	"github.com/c360studio/semowl/swrl"
)

var parent = owl.NewClass(ex + "Parent")

// chained needs three rounds: the range gives Parent, the hierarchy then
// gives Person, and the last round finds nothing new.
func chained() *owl.Ontology {
	return ontology(
		&owl.ObjectPropertyRange{Property: hasParent, Class: parent},
		owl.NewSubClassOf(parent, person),
		owl.NewObjectPropertyAssertion(hasParent, bob, alice),
	)
}

func keys(axs []owl.Axiom) map[string]bool {
	out := make(map[string]bool, len(axs))
	for _, ax := range axs {
		out[ax.String()] = true
	}
	return out
}

func TestReasonReachesFixpoint(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	o := chained()
	before := o.Len()
	report, err := r.Reason(context.Background(), o)
	require.NoError(t, err)

	assert.True(t, report.Fixpoint)
	assert.Equal(t, 3, report.Iterations)
	assert.Equal(t, before, o.Len(), "Reason must not modify its input")

	got := keys(report.Axioms())
	assert.True(t, got[owl.NewClassAssertion(parent, alice).String()])
	assert.True(t, got[owl.NewClassAssertion(person, alice).String()])
	assert.Len(t, report.Inferences[RuleDomainRange], 1)
	assert.Len(t, report.Inferences[RuleSubClassOf], 1)
	assert.Equal(t, 2, report.Count())
	assert.Equal(t, []string{RuleDomainRange, RuleSubClassOf}, report.RuleNames())
}

func TestReasonIterationLimit(t *testing.T) {
	r, err := New(WithMaxIterations(1))
	require.NoError(t, err)

	report, err := r.Reason(context.Background(), chained())
	require.NoError(t, err)

	assert.False(t, report.Fixpoint)
	assert.Equal(t, 1, report.Iterations)
	assert.False(t, keys(report.Axioms())[owl.NewClassAssertion(person, alice).String()])
}

func TestApplyAddsInferredAxioms(t *testing.T) {
	r, err := New(WithWorkers(2))
	require.NoError(t, err)

	o := chained()
	report, err := r.Apply(context.Background(), o)
	require.NoError(t, err)

	inferred := o.InferredAxioms()
	assert.Len(t, inferred, report.Count())
	for _, ax := range inferred {
		assert.True(t, ax.IsInferred())
	}
	assert.True(t, o.ContainsAxiom(owl.NewClassAssertion(person, alice)))
}

func TestReasonRunsSWRLRules(t *testing.T) {
	o := ontology(
		owl.NewObjectPropertyAssertion(hasParent, bob, alice),
		owl.NewObjectPropertyAssertion(owl.NewObjectProperty(ex+"hasBrother"), alice, dave),
	)
	rules, err := swrl.Parse(
		"[uncle] hasParent(?x, ?y) ^ hasBrother(?y, ?z) -> hasUncle(?x, ?z)\n"+
			"hasUncle(?x, ?z) -> hasRelative(?x, ?z)",
		map[string]string{"": ex})
	require.NoError(t, err)
	for _, sr := range rules {
		o.AddRule(sr)
	}

	tests := []struct {
		name     string
		opts     []Option
		inferred bool
	}{
		{name: "enabled", inferred: true},
		{name: "disabled", opts: []Option{WithoutSWRL()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.opts...)
			require.NoError(t, err)
			report, err := r.Reason(context.Background(), o)
			require.NoError(t, err)

			uncle := owl.NewObjectPropertyAssertion(owl.NewObjectProperty(ex+"hasUncle"), bob, dave)
			relative := owl.NewObjectPropertyAssertion(owl.NewObjectProperty(ex+"hasRelative"), bob, dave)
			if !tt.inferred {
				assert.Empty(t, report.Inferences["SWRL:uncle"])
				return
			}
			assert.True(t, keys(report.Inferences["SWRL:uncle"])[uncle.String()])
			assert.True(t, keys(report.Inferences["SWRL:2"])[relative.String()])
		})
	}
}

func TestRuleSelection(t *testing.T) {
	extra := NewRule("Custom", func(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
		return []owl.Axiom{owl.NewClassAssertion(owl.NewClass(ex+"Seen"), alice)}, nil
	})

	tests := []struct {
		name    string
		opts    []Option
		want    []string
		wantErr error
	}{
		{
			name: "subset",
			opts: []Option{WithSelection(RuleSubClassOf, RuleHasKey)},
			want: []string{RuleSubClassOf, RuleHasKey},
		},
		{
			name: "extension rule",
			opts: []Option{WithRules(extra), WithSelection("Custom")},
			want: []string{"Custom"},
		},
		{
			name:    "unknown",
			opts:    []Option{WithSelection("NoSuchRule")},
			wantErr: ErrUnknownRule,
		},
		{
			name:    "duplicate",
			opts:    []Option{WithRules(NewRule(RuleHasSelf, hasSelf))},
			wantErr: ErrDuplicateRule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.opts...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.RuleNames())
		})
	}
}

func TestReasonSuppressesDuplicatesAcrossRules(t *testing.T) {
	seen := owl.NewClassAssertion(owl.NewClass(ex+"Seen"), alice)
	asserted := owl.NewClassAssertion(person, alice)
	same := func(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
		return []owl.Axiom{seen, asserted}, nil
	}
	// Zeta registers first, so it owns the shared inference even though it
	// sorts last.
	r, err := New(
		WithRules(NewRule("Zeta", same), NewRule("Alpha", same)),
		WithSelection("Alpha", "Zeta"),
		WithWorkers(2),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"Zeta", "Alpha"}, r.RuleNames())

	report, err := r.Reason(context.Background(), ontology(asserted))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count())
	assert.Equal(t, []string{"Zeta"}, report.RuleNames())
	require.Len(t, report.Inferences["Zeta"], 1)
	assert.Equal(t, seen.String(), report.Inferences["Zeta"][0].String())
	assert.Empty(t, report.Inferences["Alpha"])
	assert.True(t, report.Fixpoint)
}

func TestReasonMinCardinalityNeedsDistinctValues(t *testing.T) {
	multiParent := owl.NewClass(ex + "MultiParent")
	twoSSN := owl.NewClass(ex + "TwoSSN")
	base := func(extra ...owl.Axiom) *owl.Ontology {
		return ontology(append([]owl.Axiom{
			owl.NewSubClassOf(owl.ObjectMinCardinality(2, hasChild, nil), multiParent),
			owl.NewSubClassOf(owl.DataMinCardinality(2, ssn, nil), twoSSN),
			owl.NewObjectPropertyAssertion(hasChild, alice, bob),
			owl.NewObjectPropertyAssertion(hasChild, alice, carol),
			owl.NewDataPropertyAssertion(ssn, alice, owl.NewLiteral("1", rdf.XSDInteger)),
			owl.NewDataPropertyAssertion(ssn, alice, owl.NewLiteral("01", rdf.XSDInteger)),
		}, extra...)...)
	}
	r, err := New()
	require.NoError(t, err)

	report, err := r.Reason(context.Background(), base())
	require.NoError(t, err)
	got := keys(report.Axioms())
	assert.False(t, got[owl.NewClassAssertion(multiParent, alice).String()],
		"distinct names are not known to be different individuals")
	assert.False(t, got[owl.NewClassAssertion(twoSSN, alice).String()],
		"equal-valued literals count once")

	report, err = r.Reason(context.Background(), base(
		owl.NewDifferentIndividuals(bob, carol),
		owl.NewDataPropertyAssertion(ssn, alice, owl.NewLiteral("2", rdf.XSDInteger)),
	))
	require.NoError(t, err)
	got = keys(report.Axioms())
	assert.True(t, got[owl.NewClassAssertion(multiParent, alice).String()])
	assert.True(t, got[owl.NewClassAssertion(twoSSN, alice).String()])
}

func TestRuleErrorAbortsRun(t *testing.T) {
	boom := errors.New("boom")
	failing := NewRule("Failing", func(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
		return nil, boom
	})
	r, err := New(WithRules(failing))
	require.NoError(t, err)

	_, err = r.Reason(context.Background(), chained())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Failing")
}

func TestReasonCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, err := New()
	require.NoError(t, err)

	_, err = r.Reason(ctx, chained())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r, err := New(WithMetrics(m))
	require.NoError(t, err)

	_, err = r.Reason(context.Background(), chained())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.inferences.WithLabelValues(RuleDomainRange)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inferences.WithLabelValues(RuleSubClassOf)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.iterations))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.observeRun(1) })
}
