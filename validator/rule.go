package validator

import (
	"context"

	"github.com/c360studio/semowl/owl"
)

// Rule checks an index snapshot. Check must not modify the index and may
// run concurrently with other rules.
type Rule interface {
	Name() string
	Check(ctx context.Context, idx *owl.Index) ([]Issue, error)
}

// CheckFunc is the signature of a rule body.
type CheckFunc func(ctx context.Context, idx *owl.Index) ([]Issue, error)

type funcRule struct {
	name  string
	check CheckFunc
}

// NewRule wraps a function as a Rule.
func NewRule(name string, check CheckFunc) Rule {
	return &funcRule{name: name, check: check}
}

func (r *funcRule) Name() string { return r.name }

func (r *funcRule) Check(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	return r.check(ctx, idx)
}
