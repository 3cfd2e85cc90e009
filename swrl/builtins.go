package swrl

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// Unbounded is the MaxArgs of variadic built-ins.
const Unbounded = -1

// BuiltIn is a SWRL built-in predicate.
//
// A test built-in sets Test and holds when Test returns true. A function
// built-in sets Compute, which derives the first argument from the others:
// when the first argument is unbound the result is bound to it, otherwise
// the built-in holds when the result equals the bound value.
type BuiltIn struct {
	IRI     string
	MinArgs int
	MaxArgs int

	Test    func(args []*owl.Literal) bool
	Compute func(args []*owl.Literal) (*owl.Literal, bool)
}

// Binds reports whether the built-in can bind its first argument.
func (b *BuiltIn) Binds() bool { return b.Compute != nil }

// CheckArity reports ErrArity when n arguments are not accepted.
func (b *BuiltIn) CheckArity(n int) error {
	if n < b.MinArgs || (b.MaxArgs != Unbounded && n > b.MaxArgs) {
		return fmt.Errorf("%w: %s takes %s arguments, got %d", ErrArity, b.IRI, b.arityString(), n)
	}
	return nil
}

func (b *BuiltIn) arityString() string {
	switch {
	case b.MaxArgs == Unbounded:
		return fmt.Sprintf("at least %d", b.MinArgs)
	case b.MinArgs == b.MaxArgs:
		return strconv.Itoa(b.MinArgs)
	default:
		return fmt.Sprintf("%d to %d", b.MinArgs, b.MaxArgs)
	}
}

// Holds evaluates a fully bound built-in call.
func (b *BuiltIn) Holds(args []*owl.Literal) bool {
	if b.Compute != nil {
		v, ok := b.Compute(args)
		return ok && v.SameValue(args[0])
	}
	return b.Test(args)
}

// Registry maps built-in IRIs to implementations. It is safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	builtins map[string]*BuiltIn
}

// NewRegistry returns a registry holding the standard swrlb built-ins.
func NewRegistry() *Registry {
	r := &Registry{builtins: make(map[string]*BuiltIn)}
	for _, b := range standardBuiltIns() {
		r.builtins[b.IRI] = b
	}
	return r
}

// Register adds a built-in. Registering an IRI twice fails.
func (r *Registry) Register(b *BuiltIn) error {
	if b.IRI == "" {
		return fmt.Errorf("register built-in: empty IRI")
	}
	if (b.Test == nil) == (b.Compute == nil) {
		return fmt.Errorf("register built-in %s: exactly one of Test and Compute must be set", b.IRI)
	}
	if b.MinArgs < 1 || (b.MaxArgs != Unbounded && b.MaxArgs < b.MinArgs) {
		return fmt.Errorf("register built-in %s: invalid arity %d..%d", b.IRI, b.MinArgs, b.MaxArgs)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.builtins[b.IRI]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBuiltIn, b.IRI)
	}
	r.builtins[b.IRI] = b
	return nil
}

// Lookup returns the built-in registered for an IRI.
func (r *Registry) Lookup(iri string) (*BuiltIn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builtins[iri]
	return b, ok
}

// IRIs returns the registered built-in IRIs, sorted.
func (r *Registry) IRIs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.builtins))
	for iri := range r.builtins {
		out = append(out, iri)
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used when no registry
// is configured.
func DefaultRegistry() *Registry { return defaultRegistry }

// RegisterBuiltIn adds a custom built-in to the default registry.
func RegisterBuiltIn(b *BuiltIn) error { return defaultRegistry.Register(b) }

// LookupBuiltIn finds a built-in in the default registry.
func LookupBuiltIn(iri string) (*BuiltIn, bool) { return defaultRegistry.Lookup(iri) }

func test(name string, n int, fn func(args []*owl.Literal) bool) *BuiltIn {
	return &BuiltIn{IRI: rdf.SWRLB + name, MinArgs: n, MaxArgs: n, Test: fn}
}

func compute(name string, min, max int, fn func(args []*owl.Literal) (*owl.Literal, bool)) *BuiltIn {
	return &BuiltIn{IRI: rdf.SWRLB + name, MinArgs: min, MaxArgs: max, Compute: fn}
}

func compare(fn func(c int) bool) func(args []*owl.Literal) bool {
	return func(args []*owl.Literal) bool {
		c, ok := args[0].Compare(args[1])
		return ok && fn(c)
	}
}

func standardBuiltIns() []*BuiltIn {
	return []*BuiltIn{
		test("equal", 2, func(args []*owl.Literal) bool { return args[0].SameValue(args[1]) }),
		test("notEqual", 2, func(args []*owl.Literal) bool { return !args[0].SameValue(args[1]) }),
		test("lessThan", 2, compare(func(c int) bool { return c < 0 })),
		test("lessThanOrEqual", 2, compare(func(c int) bool { return c <= 0 })),
		test("greaterThan", 2, compare(func(c int) bool { return c > 0 })),
		test("greaterThanOrEqual", 2, compare(func(c int) bool { return c >= 0 })),

		compute("add", 2, Unbounded, numeric(
			func(vs []*big.Rat) (*big.Rat, bool) {
				acc := new(big.Rat)
				for _, v := range vs {
					acc.Add(acc, v)
				}
				return acc, true
			},
			func(vs []float64) (float64, bool) {
				acc := 0.0
				for _, v := range vs {
					acc += v
				}
				return acc, true
			})),
		compute("multiply", 2, Unbounded, numeric(
			func(vs []*big.Rat) (*big.Rat, bool) {
				acc := big.NewRat(1, 1)
				for _, v := range vs {
					acc.Mul(acc, v)
				}
				return acc, true
			},
			func(vs []float64) (float64, bool) {
				acc := 1.0
				for _, v := range vs {
					acc *= v
				}
				return acc, true
			})),
		compute("subtract", 3, 3, numeric(
			func(vs []*big.Rat) (*big.Rat, bool) { return new(big.Rat).Sub(vs[0], vs[1]), true },
			func(vs []float64) (float64, bool) { return vs[0] - vs[1], true })),
		compute("divide", 3, 3, divide),
		compute("integerDivide", 3, 3, integerDivide),
		compute("mod", 3, 3, numeric(
			func(vs []*big.Rat) (*big.Rat, bool) {
				if vs[1].Sign() == 0 {
					return nil, false
				}
				q := truncRat(new(big.Rat).Quo(vs[0], vs[1]))
				return new(big.Rat).Sub(vs[0], q.Mul(q, vs[1])), true
			},
			func(vs []float64) (float64, bool) {
				if vs[1] == 0 {
					return 0, false
				}
				return math.Mod(vs[0], vs[1]), true
			})),
		compute("pow", 3, 3, pow),
		compute("unaryPlus", 2, 2, unary(
			func(v *big.Rat) *big.Rat { return v },
			func(v float64) float64 { return v })),
		compute("unaryMinus", 2, 2, unary(
			func(v *big.Rat) *big.Rat { return new(big.Rat).Neg(v) },
			func(v float64) float64 { return -v })),
		compute("abs", 2, 2, unary(
			func(v *big.Rat) *big.Rat { return new(big.Rat).Abs(v) },
			math.Abs)),
		compute("ceiling", 2, 2, unary(
			func(v *big.Rat) *big.Rat { return new(big.Rat).Neg(floorRat(new(big.Rat).Neg(v))) },
			math.Ceil)),
		compute("floor", 2, 2, unary(floorRat, math.Floor)),
		compute("round", 2, 2, unary(
			func(v *big.Rat) *big.Rat { return floorRat(new(big.Rat).Add(v, big.NewRat(1, 2))) },
			func(v float64) float64 { return math.Floor(v + 0.5) })),
		compute("sin", 2, 2, trig(math.Sin)),
		compute("cos", 2, 2, trig(math.Cos)),
		compute("tan", 2, 2, trig(math.Tan)),

		test("stringEqualIgnoreCase", 2, func(args []*owl.Literal) bool {
			return strings.EqualFold(args[0].LexicalString(), args[1].LexicalString())
		}),
		compute("stringConcat", 1, Unbounded, func(args []*owl.Literal) (*owl.Literal, bool) {
			var b strings.Builder
			for _, a := range args[1:] {
				b.WriteString(a.LexicalString())
			}
			return owl.NewLiteral(b.String(), rdf.XSDString), true
		}),
		compute("substring", 3, 4, substring),
		compute("stringLength", 2, 2, func(args []*owl.Literal) (*owl.Literal, bool) {
			return owl.NewIntegerLiteral(int64(utf8.RuneCountInString(args[1].LexicalString()))), true
		}),
		compute("normalizeSpace", 2, 2, stringFunc(func(s string) string { return strings.Join(strings.Fields(s), " ") })),
		compute("upperCase", 2, 2, stringFunc(strings.ToUpper)),
		compute("lowerCase", 2, 2, stringFunc(strings.ToLower)),
		test("contains", 2, stringTest(strings.Contains)),
		test("containsIgnoreCase", 2, stringTest(func(s, sub string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
		})),
		test("startsWith", 2, stringTest(strings.HasPrefix)),
		test("endsWith", 2, stringTest(strings.HasSuffix)),
		compute("substringBefore", 3, 3, func(args []*owl.Literal) (*owl.Literal, bool) {
			before, _, found := strings.Cut(args[1].LexicalString(), args[2].LexicalString())
			if !found {
				before = ""
			}
			return owl.NewLiteral(before, rdf.XSDString), true
		}),
		compute("substringAfter", 3, 3, func(args []*owl.Literal) (*owl.Literal, bool) {
			_, after, _ := strings.Cut(args[1].LexicalString(), args[2].LexicalString())
			return owl.NewLiteral(after, rdf.XSDString), true
		}),
		{IRI: rdf.SWRLB + "matches", MinArgs: 2, MaxArgs: 3, Test: func(args []*owl.Literal) bool {
			re, err := pattern(args[1:])
			return err == nil && re.MatchString(args[0].LexicalString())
		}},
		compute("replace", 4, 5, func(args []*owl.Literal) (*owl.Literal, bool) {
			flags := args[2:3]
			if len(args) == 5 {
				flags = []*owl.Literal{args[2], args[4]}
			}
			re, err := pattern(flags)
			if err != nil {
				return nil, false
			}
			return owl.NewLiteral(re.ReplaceAllString(args[1].LexicalString(), args[3].LexicalString()), rdf.XSDString), true
		}),

		compute("booleanNot", 2, 2, func(args []*owl.Literal) (*owl.Literal, bool) {
			v, ok := args[1].Bool()
			if !ok {
				return nil, false
			}
			return owl.NewBooleanLiteral(!v), true
		}),
	}
}

// numericResult types a computed float: integers stay integers, anything
// touching a double or float is a double, the rest is decimal.
func numericResult(v float64, operands []*owl.Literal) (*owl.Literal, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	integral := true
	double := false
	for _, o := range operands {
		if !o.IsInteger() {
			integral = false
		}
		if o.Datatype == rdf.XSDDouble || o.Datatype == rdf.XSDFloat {
			double = true
		}
	}
	switch {
	case integral && v == math.Trunc(v):
		return owl.NewLiteral(strconv.FormatFloat(v, 'f', 0, 64), rdf.XSDInteger), true
	case double:
		return owl.NewDoubleLiteral(v), true
	default:
		return owl.NewLiteral(strconv.FormatFloat(v, 'f', -1, 64), rdf.XSDDecimal), true
	}
}

// ratResult types an exact result: integer when every operand is an
// integer and the value is whole, decimal otherwise.
func ratResult(r *big.Rat, operands []*owl.Literal) *owl.Literal {
	for _, o := range operands {
		if !o.IsInteger() {
			return owl.NewDecimalLiteral(r)
		}
	}
	if r.IsInt() {
		return owl.NewLiteral(r.Num().String(), rdf.XSDInteger)
	}
	return owl.NewDecimalLiteral(r)
}

func numbers(args []*owl.Literal) ([]float64, bool) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, ok := a.Float()
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// exact returns the values of integer and decimal operands. It fails when
// any operand is a double, a float or not a number.
func exact(args []*owl.Literal) ([]*big.Rat, bool) {
	out := make([]*big.Rat, len(args))
	for i, a := range args {
		r, ok := a.Rat()
		if !ok {
			return nil, false
		}
		out[i] = r
	}
	return out, true
}

// numeric computes exactly over integers and decimals and falls back to
// float64 when a double or float takes part.
func numeric(exactFn func(vs []*big.Rat) (*big.Rat, bool), floatFn func(vs []float64) (float64, bool)) func(args []*owl.Literal) (*owl.Literal, bool) {
	return func(args []*owl.Literal) (*owl.Literal, bool) {
		operands := args[1:]
		if rs, ok := exact(operands); ok {
			r, ok := exactFn(rs)
			if !ok {
				return nil, false
			}
			return ratResult(r, operands), true
		}
		vs, ok := numbers(operands)
		if !ok {
			return nil, false
		}
		v, ok := floatFn(vs)
		if !ok {
			return nil, false
		}
		return numericResult(v, operands)
	}
}

func unary(exactFn func(v *big.Rat) *big.Rat, floatFn func(v float64) float64) func(args []*owl.Literal) (*owl.Literal, bool) {
	return numeric(
		func(vs []*big.Rat) (*big.Rat, bool) { return exactFn(vs[0]), true },
		func(vs []float64) (float64, bool) { return floatFn(vs[0]), true })
}

// floorRat rounds toward negative infinity.
func floorRat(v *big.Rat) *big.Rat {
	// Euclidean division by the positive denominator floors.
	return new(big.Rat).SetInt(new(big.Int).Div(v.Num(), v.Denom()))
}

// truncRat rounds toward zero.
func truncRat(v *big.Rat) *big.Rat {
	return new(big.Rat).SetInt(new(big.Int).Quo(v.Num(), v.Denom()))
}

func integerDivide(args []*owl.Literal) (*owl.Literal, bool) {
	if !args[1].IsInteger() || !args[2].IsInteger() {
		return nil, false
	}
	vs, ok := exact(args[1:])
	if !ok || vs[1].Sign() == 0 {
		return nil, false
	}
	q := new(big.Int).Quo(vs[0].Num(), vs[1].Num())
	return owl.NewLiteral(q.String(), rdf.XSDInteger), true
}

// divide yields a double when a double or float takes part and a decimal
// otherwise, even for integer operands.
func divide(args []*owl.Literal) (*owl.Literal, bool) {
	if vs, ok := exact(args[1:]); ok {
		if vs[1].Sign() == 0 {
			return nil, false
		}
		return owl.NewDecimalLiteral(new(big.Rat).Quo(vs[0], vs[1])), true
	}
	vs, ok := numbers(args[1:])
	if !ok || vs[1] == 0 {
		return nil, false
	}
	v := vs[0] / vs[1]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return owl.NewDoubleLiteral(v), true
}

// maxExactExponent bounds integer powers computed with big.Int.
const maxExactExponent = 4096

// pow is exact for an integer base and a small non-negative integer
// exponent, and uses float64 otherwise.
func pow(args []*owl.Literal) (*owl.Literal, bool) {
	if args[1].IsInteger() && args[2].IsInteger() {
		if vs, ok := exact(args[1:]); ok {
			e := vs[1].Num()
			if e.Sign() >= 0 && e.IsInt64() && e.Int64() <= maxExactExponent {
				n := new(big.Int).Exp(vs[0].Num(), e, nil)
				return owl.NewLiteral(n.String(), rdf.XSDInteger), true
			}
		}
	}
	vs, ok := numbers(args[1:])
	if !ok {
		return nil, false
	}
	return numericResult(math.Pow(vs[0], vs[1]), args[1:])
}

func trig(fn func(v float64) float64) func(args []*owl.Literal) (*owl.Literal, bool) {
	return func(args []*owl.Literal) (*owl.Literal, bool) {
		v, ok := args[1].Float()
		if !ok {
			return nil, false
		}
		r := fn(v)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, false
		}
		return owl.NewDoubleLiteral(r), true
	}
}

func stringFunc(fn func(string) string) func(args []*owl.Literal) (*owl.Literal, bool) {
	return func(args []*owl.Literal) (*owl.Literal, bool) {
		return owl.NewLiteral(fn(args[1].LexicalString()), rdf.XSDString), true
	}
}

func stringTest(fn func(s, other string) bool) func(args []*owl.Literal) bool {
	return func(args []*owl.Literal) bool {
		return fn(args[0].LexicalString(), args[1].LexicalString())
	}
}

// substring follows XPath fn:substring: positions are 1-based and rounded.
func substring(args []*owl.Literal) (*owl.Literal, bool) {
	runes := []rune(args[1].LexicalString())
	start, ok := args[2].Float()
	if !ok {
		return nil, false
	}
	first := int(math.Floor(start + 0.5))
	last := len(runes) + 1
	if len(args) == 4 {
		n, ok := args[3].Float()
		if !ok {
			return nil, false
		}
		last = first + int(math.Floor(n+0.5))
	}
	if first < 1 {
		first = 1
	}
	if last > len(runes)+1 {
		last = len(runes) + 1
	}
	if first >= last {
		return owl.NewLiteral("", rdf.XSDString), true
	}
	return owl.NewLiteral(string(runes[first-1:last-1]), rdf.XSDString), true
}

// pattern compiles args[0] with the optional XPath flags in args[1].
func pattern(args []*owl.Literal) (*regexp.Regexp, error) {
	expr := args[0].LexicalString()
	if len(args) > 1 {
		var flags string
		for _, f := range args[1].LexicalString() {
			switch f {
			case 'i', 'm', 's':
				flags += string(f)
			case 'x':
				expr = strings.Join(strings.Fields(expr), "")
			default:
				return nil, fmt.Errorf("unsupported regex flag %q", f)
			}
		}
		if flags != "" {
			expr = "(?" + flags + ")" + expr
		}
	}
	return regexp.Compile(expr)
}
