package reasoner

import (
	"context"
	"fmt"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/swrl"
)

// Rule derives new axioms from an index snapshot. Apply must not modify
// the index or its ontology; it is called concurrently with other rules.
type Rule interface {
	Name() string
	Apply(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error)
}

// ApplyFunc is the signature of a rule body.
type ApplyFunc func(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error)

type funcRule struct {
	name  string
	apply ApplyFunc
}

// NewRule wraps a function as a Rule.
func NewRule(name string, apply ApplyFunc) Rule {
	return &funcRule{name: name, apply: apply}
}

func (r *funcRule) Name() string { return r.name }

func (r *funcRule) Apply(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	return r.apply(ctx, idx)
}

type swrlRule struct {
	name string
	rule *owl.Rule
	opts []swrl.Option
}

// SWRLRule runs a SWRL rule as a reasoner rule.
func SWRLRule(name string, r *owl.Rule, opts ...swrl.Option) Rule {
	return &swrlRule{name: name, rule: r, opts: opts}
}

func (r *swrlRule) Name() string { return r.name }

func (r *swrlRule) Apply(ctx context.Context, idx *owl.Index) ([]owl.Axiom, error) {
	return swrl.Evaluate(ctx, r.rule, idx, r.opts...)
}

// swrlRuleName names the n-th SWRL rule of an ontology by its label when it
// has one.
func swrlRuleName(n int, r *owl.Rule) string {
	if label := r.Label(); label != "" {
		return "SWRL:" + label
	}
	return fmt.Sprintf("SWRL:%d", n+1)
}
