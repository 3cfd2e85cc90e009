package swrl

import (
	"fmt"

	"github.com/c360studio/semowl/owl"
)

// step is one built-in call in evaluation order. A step with binds set
// computes that variable; otherwise it filters rows.
type step struct {
	builtIn *BuiltIn
	call    *owl.BuiltIn
	binds   string
}

func variableIRI(a owl.Argument) (string, bool) {
	if v, ok := a.(*owl.Variable); ok {
		return v.IRI, true
	}
	return "", false
}

func varName(iri string) string { return "?" + (&owl.Variable{IRI: iri}).Name() }

// plan checks a rule and orders its built-ins so that every call runs once
// its inputs are bound. Built-ins may appear in any order in the rule.
func plan(r *owl.Rule, reg *Registry) ([]step, error) {
	bound := make(map[string]bool)
	for _, a := range r.Antecedent.Atoms {
		for _, arg := range a.Arguments() {
			if v, ok := variableIRI(arg); ok {
				bound[v] = true
			}
		}
	}

	pending := make([]step, 0, len(r.Antecedent.BuiltIns))
	for _, call := range r.Antecedent.BuiltIns {
		b, ok := reg.Lookup(call.IRI)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBuiltIn, call.IRI)
		}
		if err := b.CheckArity(len(call.Args)); err != nil {
			return nil, err
		}
		pending = append(pending, step{builtIn: b, call: call})
	}

	var steps []step
	for len(pending) > 0 {
		var waiting []step
		for _, s := range pending {
			switch target, ok := ready(s, bound); {
			case !ok:
				waiting = append(waiting, s)
			case target != "":
				s.binds = target
				bound[target] = true
				steps = append(steps, s)
			default:
				steps = append(steps, s)
			}
		}
		if len(waiting) == len(pending) {
			s := waiting[0]
			for _, arg := range s.call.Args {
				if v, ok := variableIRI(arg); ok && !bound[v] {
					return nil, fmt.Errorf("%w: %s uses unbound variable %s", ErrUnsafeRule, s.call.IRI, varName(v))
				}
			}
			return nil, fmt.Errorf("%w: %s cannot be evaluated", ErrUnsafeRule, s.call.IRI)
		}
		pending = waiting
	}

	for _, a := range r.Consequent.Atoms {
		if _, ok := a.(*owl.DataRangeAtom); ok {
			return nil, fmt.Errorf("%w: %s", ErrHeadAtom, a)
		}
		for _, arg := range a.Arguments() {
			if v, ok := variableIRI(arg); ok && !bound[v] {
				return nil, fmt.Errorf("%w: consequent variable %s is not bound by the antecedent", ErrUnsafeRule, varName(v))
			}
		}
	}
	return steps, nil
}

// ready reports whether a built-in call can run with the bound variables.
// A function built-in whose only unbound variable is its first argument can
// run and returns that variable as the target.
func ready(s step, bound map[string]bool) (string, bool) {
	var unbound []string
	for _, arg := range s.call.Args {
		if v, ok := variableIRI(arg); ok && !bound[v] {
			unbound = append(unbound, v)
		}
	}
	if len(unbound) == 0 {
		return "", true
	}
	first, isVar := variableIRI(s.call.Args[0])
	if !s.builtIn.Binds() || !isVar || bound[first] {
		return "", false
	}
	for _, v := range unbound {
		if v != first {
			return "", false
		}
	}
	// The target must not also be an input.
	for _, arg := range s.call.Args[1:] {
		if v, ok := variableIRI(arg); ok && v == first {
			return "", false
		}
	}
	return first, true
}

// Validate checks that a rule only calls known built-ins with a valid number
// of arguments and that every variable is bound before it is used.
func Validate(r *owl.Rule, opts ...Option) error {
	cfg := newOptions(opts)
	_, err := plan(r, cfg.registry)
	return err
}
