package validator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/c360studio/semowl/owl"
)

// Validator runs a set of rules over an ontology.
type Validator struct {
	rules     []Rule
	extra     []Rule
	selection []string
	workers   int
	logger    *slog.Logger
	metrics   *Metrics
}

// Option configures a Validator.
type Option func(*Validator)

// WithRules adds rules after the built-in ones.
func WithRules(rules ...Rule) Option {
	return func(v *Validator) {
		v.extra = append(v.extra, rules...)
	}
}

// WithSelection keeps only the named rules.
func WithSelection(names ...string) Option {
	return func(v *Validator) {
		v.selection = append(v.selection, names...)
	}
}

// WithWorkers bounds how many rules run at once.
func WithWorkers(n int) Option {
	return func(v *Validator) {
		v.workers = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// WithMetrics records rule activity.
func WithMetrics(m *Metrics) Option {
	return func(v *Validator) {
		v.metrics = m
	}
}

// New builds a validator with the built-in rules plus any added with
// WithRules.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	if v.workers < 1 {
		v.workers = 1
	}

	all := append(DefaultRules(), v.extra...)
	byName := make(map[string]bool, len(all))
	for _, rule := range all {
		if byName[rule.Name()] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, rule.Name())
		}
		byName[rule.Name()] = true
	}
	if len(v.selection) == 0 {
		v.rules = all
		return v, nil
	}
	keep := make(map[string]bool, len(v.selection))
	for _, name := range v.selection {
		if !byName[name] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
		keep[name] = true
	}
	for _, rule := range all {
		if keep[rule.Name()] {
			v.rules = append(v.rules, rule)
		}
	}
	return v, nil
}

// RuleNames returns the names of the enabled rules.
func (v *Validator) RuleNames() []string {
	out := make([]string, len(v.rules))
	for i, rule := range v.rules {
		out[i] = rule.Name()
	}
	return out
}

// Validate runs every enabled rule against o.
func (v *Validator) Validate(ctx context.Context, o *owl.Ontology) (*Report, error) {
	start := time.Now()
	idx := owl.NewIndex(o)
	results := make([][]Issue, len(v.rules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for i, rule := range v.rules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			began := time.Now()
			issues, err := rule.Check(gctx, idx)
			if err != nil {
				return fmt.Errorf("rule %s: %w", rule.Name(), err)
			}
			v.metrics.observeRule(rule.Name(), issues, time.Since(began))
			results[i] = issues
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		v.metrics.observeRun(nil, err)
		return nil, err
	}

	report := &Report{}
	for _, issues := range results {
		report.Issues = append(report.Issues, issues...)
	}
	sortIssues(report.Issues)
	report.Duration = time.Since(start)
	v.metrics.observeRun(report, nil)

	v.logger.Info("Validation complete",
		"ontology", o.IRI,
		"rules", len(v.rules),
		"errors", report.Errors(),
		"warnings", report.Warnings(),
		"duration", report.Duration)
	return report, nil
}
