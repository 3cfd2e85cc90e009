package swrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

func intLit(v int64) *owl.Literal  { return owl.NewIntegerLiteral(v) }
func strLit(v string) *owl.Literal { return owl.NewLiteral(v, rdf.XSDString) }
func decLit(v string) *owl.Literal { return owl.NewLiteral(v, rdf.XSDDecimal) }
func boolLit(v bool) *owl.Literal  { return owl.NewBooleanLiteral(v) }
func bigLit(v string) *owl.Literal { return owl.NewLiteral(v, rdf.XSDInteger) }
func swrlb(name string) string     { return rdf.SWRLB + name }

func TestComputeBuiltIns(t *testing.T) {
	tests := []struct {
		name string
		args []*owl.Literal
		want *owl.Literal
	}{
		{"add", []*owl.Literal{intLit(2), intLit(3)}, intLit(5)},
		{"add", []*owl.Literal{intLit(1), intLit(2), intLit(3)}, intLit(6)},
		{"add", []*owl.Literal{intLit(1), decLit("0.5")}, decLit("1.5")},
		{"subtract", []*owl.Literal{intLit(10), intLit(4)}, intLit(6)},
		{"multiply", []*owl.Literal{intLit(4), intLit(5)}, intLit(20)},
		{"divide", []*owl.Literal{intLit(7), intLit(2)}, decLit("3.5")},
		{"integerDivide", []*owl.Literal{intLit(7), intLit(2)}, intLit(3)},
		{"mod", []*owl.Literal{intLit(7), intLit(3)}, intLit(1)},
		{"pow", []*owl.Literal{intLit(2), intLit(3)}, intLit(8)},
		{"unaryMinus", []*owl.Literal{intLit(4)}, intLit(-4)},
		{"abs", []*owl.Literal{intLit(-4)}, intLit(4)},
		{"ceiling", []*owl.Literal{decLit("1.2")}, decLit("2")},
		{"floor", []*owl.Literal{decLit("1.8")}, decLit("1")},
		{"round", []*owl.Literal{decLit("2.5")}, decLit("3")},
		{"round", []*owl.Literal{decLit("-2.5")}, decLit("-2")},
		{"add", []*owl.Literal{bigLit("9007199254740993"), intLit(0)}, bigLit("9007199254740993")},
		{"multiply", []*owl.Literal{bigLit("9223372036854775807"), intLit(2)}, bigLit("18446744073709551614")},
		{"add", []*owl.Literal{decLit("0.1"), decLit("0.2")}, decLit("0.3")},
		{"mod", []*owl.Literal{intLit(-7), intLit(3)}, intLit(-1)},
		{"pow", []*owl.Literal{intLit(3), intLit(40)}, bigLit("12157665459056928801")},
		{"add", []*owl.Literal{owl.NewDoubleLiteral(1.5), intLit(1)}, owl.NewDoubleLiteral(2.5)},
		{"sin", []*owl.Literal{intLit(0)}, owl.NewDoubleLiteral(0)},
		{"stringConcat", []*owl.Literal{strLit("foo"), strLit("bar")}, strLit("foobar")},
		{"substring", []*owl.Literal{strLit("motor car"), intLit(6)}, strLit(" car")},
		{"substring", []*owl.Literal{strLit("metadata"), intLit(4), intLit(3)}, strLit("ada")},
		{"stringLength", []*owl.Literal{strLit("héllo")}, intLit(5)},
		{"normalizeSpace", []*owl.Literal{strLit("  a   b ")}, strLit("a b")},
		{"upperCase", []*owl.Literal{strLit("abc")}, strLit("ABC")},
		{"lowerCase", []*owl.Literal{strLit("ABC")}, strLit("abc")},
		{"substringBefore", []*owl.Literal{strLit("tattoo"), strLit("attoo")}, strLit("t")},
		{"substringAfter", []*owl.Literal{strLit("tattoo"), strLit("tat")}, strLit("too")},
		{"replace", []*owl.Literal{strLit("abracadabra"), strLit("bra"), strLit("*")}, strLit("a*cada*")},
		{"replace", []*owl.Literal{strLit("ABC"), strLit("b"), strLit("x"), strLit("i")}, strLit("AxC")},
		{"booleanNot", []*owl.Literal{boolLit(true)}, boolLit(false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := LookupBuiltIn(swrlb(tt.name))
			require.True(t, ok)
			require.True(t, b.Binds())
			got, ok := b.Compute(append([]*owl.Literal{nil}, tt.args...))
			require.True(t, ok)
			assert.True(t, got.SameValue(tt.want), "got %s, want %s", got, tt.want)
			assert.True(t, b.Holds(append([]*owl.Literal{tt.want}, tt.args...)))
		})
	}
}

func TestDivideYieldsDecimal(t *testing.T) {
	b, ok := LookupBuiltIn(swrlb("divide"))
	require.True(t, ok)

	got, ok := b.Compute([]*owl.Literal{nil, intLit(6), intLit(3)})
	require.True(t, ok)
	assert.Equal(t, rdf.XSDDecimal, got.Datatype)
	assert.Equal(t, "2", got.Value)

	got, ok = b.Compute([]*owl.Literal{nil, intLit(1), intLit(3)})
	require.True(t, ok)
	assert.Equal(t, "0.33333333333333333333", got.Value)

	got, ok = b.Compute([]*owl.Literal{nil, owl.NewDoubleLiteral(1), intLit(4)})
	require.True(t, ok)
	assert.Equal(t, rdf.XSDDouble, got.Datatype)
}

func TestComputeFailures(t *testing.T) {
	tests := []struct {
		name string
		args []*owl.Literal
	}{
		{"divide", []*owl.Literal{intLit(1), intLit(0)}},
		{"mod", []*owl.Literal{intLit(1), intLit(0)}},
		{"add", []*owl.Literal{intLit(1), strLit("x")}},
		{"integerDivide", []*owl.Literal{decLit("1.5"), intLit(1)}},
		{"booleanNot", []*owl.Literal{strLit("yes")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := LookupBuiltIn(swrlb(tt.name))
			require.True(t, ok)
			_, ok = b.Compute(append([]*owl.Literal{nil}, tt.args...))
			assert.False(t, ok)
		})
	}
}

func TestTestBuiltIns(t *testing.T) {
	tests := []struct {
		name string
		args []*owl.Literal
		want bool
	}{
		{"equal", []*owl.Literal{intLit(1), decLit("1.0")}, true},
		{"equal", []*owl.Literal{bigLit("9007199254740993"), bigLit("9007199254740992")}, false},
		{"greaterThan", []*owl.Literal{bigLit("9007199254740993"), bigLit("9007199254740992")}, true},
		{"notEqual", []*owl.Literal{intLit(1), intLit(2)}, true},
		{"lessThan", []*owl.Literal{intLit(1), intLit(2)}, true},
		{"lessThan", []*owl.Literal{strLit("b"), strLit("a")}, false},
		{"lessThanOrEqual", []*owl.Literal{intLit(2), intLit(2)}, true},
		{"greaterThan", []*owl.Literal{intLit(18), intLit(17)}, true},
		{"greaterThan", []*owl.Literal{intLit(1), strLit("a")}, false},
		{"greaterThanOrEqual", []*owl.Literal{intLit(1), intLit(2)}, false},
		{"stringEqualIgnoreCase", []*owl.Literal{strLit("Ab"), strLit("aB")}, true},
		{"contains", []*owl.Literal{strLit("hello"), strLit("ell")}, true},
		{"containsIgnoreCase", []*owl.Literal{strLit("HELLO"), strLit("ell")}, true},
		{"startsWith", []*owl.Literal{strLit("hello"), strLit("he")}, true},
		{"endsWith", []*owl.Literal{strLit("hello"), strLit("he")}, false},
		{"matches", []*owl.Literal{strLit("abc"), strLit("b")}, true},
		{"matches", []*owl.Literal{strLit("Abc"), strLit("^a"), strLit("i")}, true},
		{"matches", []*owl.Literal{strLit("abc"), strLit("[")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := LookupBuiltIn(swrlb(tt.name))
			require.True(t, ok)
			assert.Equal(t, tt.want, b.Holds(tt.args))
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Contains(t, r.IRIs(), swrlb("greaterThan"))

	even := &BuiltIn{
		IRI:     "http://example.org/fn#isEven",
		MinArgs: 1,
		MaxArgs: 1,
		Test: func(args []*owl.Literal) bool {
			v, ok := args[0].Float()
			return ok && int64(v)%2 == 0
		},
	}
	require.NoError(t, r.Register(even))
	assert.ErrorIs(t, r.Register(even), ErrDuplicateBuiltIn)

	got, ok := r.Lookup(even.IRI)
	require.True(t, ok)
	assert.True(t, got.Holds([]*owl.Literal{intLit(4)}))

	_, ok = DefaultRegistry().Lookup(even.IRI)
	assert.False(t, ok, "custom registry must not leak into the default one")

	assert.Error(t, r.Register(&BuiltIn{IRI: "x", MinArgs: 1, MaxArgs: 1}))
	assert.Error(t, r.Register(&BuiltIn{IRI: "y", MinArgs: 0, MaxArgs: 1, Test: even.Test}))
}

func TestCheckArity(t *testing.T) {
	b, _ := LookupBuiltIn(swrlb("substring"))
	assert.NoError(t, b.CheckArity(3))
	assert.NoError(t, b.CheckArity(4))
	assert.ErrorIs(t, b.CheckArity(2), ErrArity)
	assert.ErrorIs(t, b.CheckArity(5), ErrArity)

	add, _ := LookupBuiltIn(swrlb("add"))
	assert.NoError(t, add.CheckArity(10))
}
