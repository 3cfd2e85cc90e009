package reasoner

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/swrl"
)

// DefaultMaxIterations bounds a reasoning run when no limit is configured.
const DefaultMaxIterations = 64

// Reasoner runs a rule set to a fixpoint.
type Reasoner struct {
	rules         []Rule
	maxIterations int
	workers       int
	swrl          bool
	swrlOpts      []swrl.Option
	selection     []string
	extra         []Rule
	logger        *slog.Logger
	metrics       *Metrics
}

// Option configures a Reasoner.
type Option func(*Reasoner)

// WithMaxIterations limits the number of rounds. Values below one mean a
// single round.
func WithMaxIterations(n int) Option {
	return func(r *Reasoner) {
		r.maxIterations = n
	}
}

// WithWorkers bounds how many rules run at once.
func WithWorkers(n int) Option {
	return func(r *Reasoner) {
		r.workers = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reasoner) {
		r.logger = logger
	}
}

// WithMetrics records rule activity.
func WithMetrics(m *Metrics) Option {
	return func(r *Reasoner) {
		r.metrics = m
	}
}

// WithRules adds rules after the built-in ones. Extension packages use it
// to plug in their inferences.
func WithRules(rules ...Rule) Option {
	return func(r *Reasoner) {
		r.extra = append(r.extra, rules...)
	}
}

// WithSelection keeps only the named built-in and extension rules. SWRL
// rules are controlled separately by WithoutSWRL.
func WithSelection(names ...string) Option {
	return func(r *Reasoner) {
		r.selection = append(r.selection, names...)
	}
}

// WithoutSWRL skips the ontology's SWRL rules.
func WithoutSWRL() Option {
	return func(r *Reasoner) {
		r.swrl = false
	}
}

// WithSWRLOptions passes options to every SWRL rule evaluation.
func WithSWRLOptions(opts ...swrl.Option) Option {
	return func(r *Reasoner) {
		r.swrlOpts = append(r.swrlOpts, opts...)
	}
}

// New builds a reasoner with the built-in rules plus any added with
// WithRules.
func New(opts ...Option) (*Reasoner, error) {
	r := &Reasoner{
		maxIterations: DefaultMaxIterations,
		workers:       runtime.GOMAXPROCS(0),
		swrl:          true,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.maxIterations < 1 {
		r.maxIterations = 1
	}
	if r.workers < 1 {
		r.workers = 1
	}

	all := append(DefaultRules(), r.extra...)
	byName := make(map[string]Rule, len(all))
	for _, rule := range all {
		if _, dup := byName[rule.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, rule.Name())
		}
		byName[rule.Name()] = rule
	}
	if len(r.selection) == 0 {
		r.rules = all
		return r, nil
	}
	keep := make(map[string]bool, len(r.selection))
	for _, name := range r.selection {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
		keep[name] = true
	}
	for _, rule := range all {
		if keep[rule.Name()] {
			r.rules = append(r.rules, rule)
		}
	}
	return r, nil
}

// RuleNames returns the names of the enabled non-SWRL rules.
func (r *Reasoner) RuleNames() []string {
	out := make([]string, len(r.rules))
	for i, rule := range r.rules {
		out[i] = rule.Name()
	}
	return out
}

// Report describes a reasoning run.
type Report struct {
	// Inferences groups the new axioms by the rule that first produced them.
	Inferences map[string][]owl.Axiom
	Iterations int
	// Fixpoint is false when the run stopped at the iteration limit with
	// rules still producing axioms.
	Fixpoint bool
	Duration time.Duration
}

// RuleNames returns the rules that inferred something, sorted.
func (rep *Report) RuleNames() []string {
	out := make([]string, 0, len(rep.Inferences))
	for name := range rep.Inferences {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Axioms returns every inferred axiom, grouped by rule name.
func (rep *Report) Axioms() []owl.Axiom {
	var out []owl.Axiom
	for _, name := range rep.RuleNames() {
		out = append(out, rep.Inferences[name]...)
	}
	return out
}

// Count returns the number of inferred axioms.
func (rep *Report) Count() int {
	n := 0
	for _, axs := range rep.Inferences {
		n += len(axs)
	}
	return n
}

// rulesFor adds the SWRL rules of o to the enabled rule set. SWRL rule
// names are made unique so reports keep them apart.
func (r *Reasoner) rulesFor(o *owl.Ontology) []Rule {
	rules := append([]Rule(nil), r.rules...)
	if !r.swrl {
		return rules
	}
	used := make(map[string]int)
	for i, sr := range o.Rules() {
		name := swrlRuleName(i, sr)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s#%d", name, n)
		}
		rules = append(rules, SWRLRule(name, sr, r.swrlOpts...))
	}
	return rules
}

// Reason infers the consequences of o without modifying it.
func (r *Reasoner) Reason(ctx context.Context, o *owl.Ontology) (*Report, error) {
	start := time.Now()
	work := o.Clone()
	rules := r.rulesFor(work)
	report := &Report{Inferences: make(map[string][]owl.Axiom)}

	for iter := 1; iter <= r.maxIterations; iter++ {
		idx := owl.NewIndex(work)
		results, err := r.round(ctx, rules, idx)
		if err != nil {
			return nil, err
		}
		added := 0
		for i, axs := range results {
			name := rules[i].Name()
			for _, ax := range axs {
				if work.AddAxiom(owl.MarkInferred(ax)) {
					report.Inferences[name] = append(report.Inferences[name], ax)
					added++
				}
			}
		}
		report.Iterations = iter
		r.logger.Debug("Reasoner iteration complete", "iteration", iter, "inferred", added)
		if added == 0 {
			report.Fixpoint = true
			break
		}
	}

	report.Duration = time.Since(start)
	r.metrics.observeRun(report.Iterations)
	r.logger.Info("Reasoning complete",
		"ontology", o.IRI,
		"rules", len(rules),
		"inferred", report.Count(),
		"iterations", report.Iterations,
		"fixpoint", report.Fixpoint,
		"duration", report.Duration)
	return report, nil
}

// round applies every rule once against the same snapshot.
func (r *Reasoner) round(ctx context.Context, rules []Rule, idx *owl.Index) ([][]owl.Axiom, error) {
	results := make([][]owl.Axiom, len(rules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, rule := range rules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			began := time.Now()
			axs, err := rule.Apply(gctx, idx)
			r.metrics.observeRule(rule.Name(), len(axs), time.Since(began), err)
			if err != nil {
				return fmt.Errorf("rule %s: %w", rule.Name(), err)
			}
			results[i] = axs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Apply reasons over o and adds the inferred axioms to it.
func (r *Reasoner) Apply(ctx context.Context, o *owl.Ontology) (*Report, error) {
	report, err := r.Reason(ctx, o)
	if err != nil {
		return nil, err
	}
	o.AddAxioms(report.Axioms()...)
	return report, nil
}
