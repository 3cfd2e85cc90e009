package reasoner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/owl"
)

const ex = "http://example.org/zoo#"

var (
	alice = owl.NewIndividual(ex + "alice")
	bob   = owl.NewIndividual(ex + "bob")
	carol = owl.NewIndividual(ex + "carol")
	dave  = owl.NewIndividual(ex + "dave")
	rex   = owl.NewIndividual(ex + "rex")
	tom   = owl.NewIndividual(ex + "tom")

	person    = owl.NewClass(ex + "Person")
	student   = owl.NewClass(ex + "Student")
	animal    = owl.NewClass(ex + "Animal")
	cat       = owl.NewClass(ex + "Cat")
	dog       = owl.NewClass(ex + "Dog")
	hasPet    = owl.NewObjectProperty(ex + "hasPet")
	hasParent = owl.NewObjectProperty(ex + "hasParent")
	hasChild  = owl.NewObjectProperty(ex + "hasChild")
	ssn       = owl.NewDataProperty(ex + "ssn")
)

func ontology(axioms ...owl.Axiom) *owl.Ontology {
	o := owl.NewOntology("http://example.org/zoo")
	o.AddAxioms(axioms...)
	return o
}

// apply runs a single built-in rule and returns the rendered inferences.
func apply(t *testing.T, name string, o *owl.Ontology) map[string]bool {
	t.Helper()
	for _, rule := range DefaultRules() {
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

func TestBuiltInRules(t *testing.T) {
	knows := owl.NewObjectProperty(ex + "knows")
	ancestor := owl.NewObjectProperty(ex + "ancestor")
	hasMother := owl.NewObjectProperty(ex + "hasMother")
	hasBrother := owl.NewObjectProperty(ex + "hasBrother")
	hasUncle := owl.NewObjectProperty(ex + "hasUncle")
	nationality := owl.NewObjectProperty(ex + "nationality")
	italy := owl.NewIndividual(ex + "italy")
	italian := owl.NewClass(ex + "Italian")
	a, b, c := owl.NewClass(ex+"A"), owl.NewClass(ex+"B"), owl.NewClass(ex+"C")

	tests := []struct {
		name  string
		rule  string
		input []owl.Axiom
		want  []owl.Axiom
		none  []owl.Axiom
	}{
		{
			name: "instances inherit named superclasses",
			rule: RuleSubClassOf,
			input: []owl.Axiom{
				owl.NewSubClassOf(student, person),
				owl.NewClassAssertion(student, alice),
			},
			want: []owl.Axiom{owl.NewClassAssertion(person, alice)},
		},
		{
			name: "class hierarchy is closed transitively",
			rule: RuleSubClassOf,
			input: []owl.Axiom{
				owl.NewSubClassOf(a, b),
				owl.NewSubClassOf(b, c),
			},
			want: []owl.Axiom{owl.NewSubClassOf(a, c)},
			none: []owl.Axiom{owl.NewSubClassOf(a, b)},
		},
		{
			name: "equivalent classes share members",
			rule: RuleEquivalentClasses,
			input: []owl.Axiom{
				owl.NewEquivalentClasses(person, owl.NewClass(ex+"Human")),
				owl.NewClassAssertion(person, alice),
			},
			want: []owl.Axiom{owl.NewClassAssertion(owl.NewClass(ex+"Human"), alice)},
		},
		{
			name: "members of disjoint classes differ",
			rule: RuleDisjointClasses,
			input: []owl.Axiom{
				owl.NewDisjointClasses(cat, dog),
				owl.NewClassAssertion(cat, tom),
				owl.NewClassAssertion(dog, rex),
			},
			want: []owl.Axiom{owl.NewDifferentIndividuals(rex, tom)},
		},
		{
			name: "intersection membership yields operands",
			rule: RuleClassAssertion,
			input: []owl.Axiom{
				owl.NewClassAssertion(owl.IntersectionOf(person, student), alice),
			},
			want: []owl.Axiom{
				owl.NewClassAssertion(person, alice),
				owl.NewClassAssertion(student, alice),
			},
		},
		{
			name: "universal restriction types the values",
			rule: RuleClassAssertion,
			input: []owl.Axiom{
				owl.NewClassAssertion(owl.AllValuesFrom(hasPet, cat), alice),
				owl.NewObjectPropertyAssertion(hasPet, alice, tom),
			},
			want: []owl.Axiom{owl.NewClassAssertion(cat, tom)},
		},
		{
			name: "singleton enumeration identifies the member",
			rule: RuleClassAssertion,
			input: []owl.Axiom{
				owl.NewClassAssertion(owl.OneOf(bob), alice),
			},
			want: []owl.Axiom{owl.NewSameIndividual(alice, bob)},
		},
		{
			name: "domain and range",
			rule: RuleDomainRange,
			input: []owl.Axiom{
				&owl.ObjectPropertyDomain{Property: hasPet, Class: person},
				&owl.ObjectPropertyRange{Property: hasPet, Class: animal},
				&owl.DataPropertyDomain{Property: ssn, Class: person},
				owl.NewObjectPropertyAssertion(hasPet, alice, tom),
				owl.NewDataPropertyAssertion(ssn, bob, owl.NewLiteral("123", "")),
			},
			want: []owl.Axiom{
				owl.NewClassAssertion(person, alice),
				owl.NewClassAssertion(animal, tom),
				owl.NewClassAssertion(person, bob),
			},
		},
		{
			name: "inverse properties",
			rule: RuleInverseObjectProperties,
			input: []owl.Axiom{
				&owl.InverseObjectProperties{First: hasParent, Second: hasChild},
				owl.NewObjectPropertyAssertion(hasParent, bob, alice),
			},
			want: []owl.Axiom{owl.NewObjectPropertyAssertion(hasChild, alice, bob)},
		},
		{
			name: "symmetric property",
			rule: RuleSymmetricObjectProperty,
			input: []owl.Axiom{
				owl.NewCharacteristic(owl.KindSymmetricObjectProperty, knows),
				owl.NewObjectPropertyAssertion(knows, alice, bob),
			},
			want: []owl.Axiom{owl.NewObjectPropertyAssertion(knows, bob, alice)},
		},
		{
			name: "transitive property",
			rule: RuleTransitiveObjectProperty,
			input: []owl.Axiom{
				owl.NewCharacteristic(owl.KindTransitiveObjectProperty, ancestor),
				owl.NewObjectPropertyAssertion(ancestor, alice, bob),
				owl.NewObjectPropertyAssertion(ancestor, bob, carol),
				owl.NewObjectPropertyAssertion(ancestor, carol, dave),
			},
			want: []owl.Axiom{
				owl.NewObjectPropertyAssertion(ancestor, alice, carol),
				owl.NewObjectPropertyAssertion(ancestor, alice, dave),
				owl.NewObjectPropertyAssertion(ancestor, bob, dave),
			},
		},
		{
			name: "reflexive property",
			rule: RuleReflexiveObjectProperty,
			input: []owl.Axiom{
				owl.NewCharacteristic(owl.KindReflexiveObjectProperty, knows),
				owl.NewClassAssertion(person, alice),
			},
			want: []owl.Axiom{owl.NewObjectPropertyAssertion(knows, alice, alice)},
		},
		{
			name: "sub-property and chain",
			rule: RuleSubObjectPropertyOf,
			input: []owl.Axiom{
				owl.NewSubObjectPropertyOf(hasMother, hasParent),
				owl.NewPropertyChain(hasUncle, hasParent, hasBrother),
				owl.NewObjectPropertyAssertion(hasMother, bob, alice),
				owl.NewObjectPropertyAssertion(hasParent, carol, alice),
				owl.NewObjectPropertyAssertion(hasBrother, alice, dave),
			},
			want: []owl.Axiom{
				owl.NewObjectPropertyAssertion(hasParent, bob, alice),
				owl.NewObjectPropertyAssertion(hasUncle, bob, dave),
				owl.NewObjectPropertyAssertion(hasUncle, carol, dave),
			},
		},
		{
			name: "inverse sub-property swaps the pair",
			rule: RuleSubObjectPropertyOf,
			input: []owl.Axiom{
				owl.NewSubObjectPropertyOf(hasParent, owl.InverseOf(hasChild)),
				owl.NewObjectPropertyAssertion(hasParent, bob, alice),
			},
			want: []owl.Axiom{owl.NewObjectPropertyAssertion(hasChild, alice, bob)},
		},
		{
			name: "functional property merges values",
			rule: RuleFunctionalObjectProperty,
			input: []owl.Axiom{
				owl.NewCharacteristic(owl.KindFunctionalObjectProperty, hasMother),
				owl.NewObjectPropertyAssertion(hasMother, bob, alice),
				owl.NewObjectPropertyAssertion(hasMother, bob, carol),
			},
			want: []owl.Axiom{owl.NewSameIndividual(alice, carol)},
		},
		{
			name: "functional property leaves different values alone",
			rule: RuleFunctionalObjectProperty,
			input: []owl.Axiom{
				owl.NewCharacteristic(owl.KindFunctionalObjectProperty, hasMother),
				owl.NewObjectPropertyAssertion(hasMother, bob, alice),
				owl.NewObjectPropertyAssertion(hasMother, bob, carol),
				owl.NewDifferentIndividuals(alice, carol),
			},
			none: []owl.Axiom{owl.NewSameIndividual(alice, carol)},
		},
		{
			name: "inverse functional property merges subjects",
			rule: RuleInverseFunctionalObjectProperty,
			input: []owl.Axiom{
				owl.NewCharacteristic(owl.KindInverseFunctionalObjectProperty, hasPet),
				owl.NewObjectPropertyAssertion(hasPet, alice, tom),
				owl.NewObjectPropertyAssertion(hasPet, bob, tom),
			},
			want: []owl.Axiom{owl.NewSameIndividual(alice, bob)},
		},
		{
			name: "same individuals share facts",
			rule: RuleSameIndividual,
			input: []owl.Axiom{
				owl.NewSameIndividual(alice, bob),
				owl.NewClassAssertion(person, alice),
				owl.NewObjectPropertyAssertion(hasPet, alice, tom),
				owl.NewObjectPropertyAssertion(hasParent, carol, bob),
			},
			want: []owl.Axiom{
				owl.NewClassAssertion(person, bob),
				owl.NewObjectPropertyAssertion(hasPet, bob, tom),
				owl.NewObjectPropertyAssertion(hasParent, carol, alice),
			},
		},
		{
			name: "different individuals spread over same-as",
			rule: RuleDifferentIndividuals,
			input: []owl.Axiom{
				owl.NewSameIndividual(alice, bob),
				owl.NewDifferentIndividuals(alice, carol),
			},
			want: []owl.Axiom{owl.NewDifferentIndividuals(bob, carol)},
			none: []owl.Axiom{owl.NewDifferentIndividuals(alice, carol)},
		},
		{
			name: "value restriction asserts the value",
			rule: RuleHasValue,
			input: []owl.Axiom{
				owl.NewSubClassOf(italian, owl.HasValue(nationality, italy)),
				owl.NewClassAssertion(italian, alice),
			},
			want: []owl.Axiom{owl.NewObjectPropertyAssertion(nationality, alice, italy)},
		},
		{
			name: "data value restriction",
			rule: RuleHasValue,
			input: []owl.Axiom{
				owl.NewClassAssertion(owl.DataValue(ssn, owl.NewLiteral("000", "")), alice),
			},
			want: []owl.Axiom{owl.NewDataPropertyAssertion(ssn, alice, owl.NewLiteral("000", ""))},
		},
		{
			name: "self restriction",
			rule: RuleHasSelf,
			input: []owl.Axiom{
				owl.NewEquivalentClasses(owl.NewClass(ex+"Narcissist"), owl.HasSelf(knows)),
				owl.NewClassAssertion(owl.NewClass(ex+"Narcissist"), alice),
			},
			want: []owl.Axiom{owl.NewObjectPropertyAssertion(knows, alice, alice)},
		},
		{
			name: "keys identify instances",
			rule: RuleHasKey,
			input: []owl.Axiom{
				&owl.HasKey{Class: person, DataProperties: []*owl.DataProperty{ssn}},
				owl.NewClassAssertion(person, alice),
				owl.NewClassAssertion(person, bob),
				owl.NewClassAssertion(person, carol),
				owl.NewDataPropertyAssertion(ssn, alice, owl.NewLiteral("42", "")),
				owl.NewDataPropertyAssertion(ssn, bob, owl.NewLiteral("42", "")),
				owl.NewDataPropertyAssertion(ssn, carol, owl.NewLiteral("7", "")),
			},
			want: []owl.Axiom{owl.NewSameIndividual(alice, bob)},
			none: []owl.Axiom{
				owl.NewSameIndividual(alice, carol),
				owl.NewSameIndividual(bob, carol),
			},
		},
		{
			name: "data sub-property",
			rule: RuleSubDataPropertyOf,
			input: []owl.Axiom{
				&owl.SubDataPropertyOf{Sub: ssn, Super: owl.NewDataProperty(ex + "id")},
				owl.NewDataPropertyAssertion(ssn, alice, owl.NewLiteral("42", "")),
			},
			want: []owl.Axiom{owl.NewDataPropertyAssertion(owl.NewDataProperty(ex+"id"), alice, owl.NewLiteral("42", ""))},
		},
		{
			name: "equivalent object properties",
			rule: RuleEquivalentObjectProperties,
			input: []owl.Axiom{
				&owl.EquivalentObjectProperties{Properties: []owl.ObjectPropertyExpression{hasPet, owl.NewObjectProperty(ex + "owns")}},
				owl.NewObjectPropertyAssertion(hasPet, alice, tom),
			},
			want: []owl.Axiom{owl.NewObjectPropertyAssertion(owl.NewObjectProperty(ex+"owns"), alice, tom)},
		},
		{
			name: "equivalent data properties",
			rule: RuleEquivalentDataProperties,
			input: []owl.Axiom{
				&owl.EquivalentDataProperties{Properties: []*owl.DataProperty{ssn, owl.NewDataProperty(ex + "taxID")}},
				owl.NewDataPropertyAssertion(owl.NewDataProperty(ex+"taxID"), alice, owl.NewLiteral("9", "")),
			},
			want: []owl.Axiom{owl.NewDataPropertyAssertion(ssn, alice, owl.NewLiteral("9", ""))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, tt.rule, ontology(tt.input...))
			for _, ax := range tt.want {
				assert.True(t, got[ax.String()], "missing %s in %v", ax, got)
			}
			for _, ax := range tt.none {
				assert.False(t, got[ax.String()], "unexpected %s", ax)
			}
		})
	}
}

func TestRuleRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := ontology(
		owl.NewSubClassOf(student, person),
		owl.NewClassAssertion(student, alice),
	)
	for _, rule := range DefaultRules() {
		if rule.Name() != RuleSubClassOf {
			continue
		}
		_, err := rule.Apply(ctx, owl.NewIndex(o))
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestCollector(t *testing.T) {
	o := ontology(
		owl.NewClassAssertion(person, alice),
		owl.NewSameIndividual(alice, bob),
	)
	c := NewCollector(owl.NewIndex(o))

	c.ClassAssertion(person, alice.Term())
	c.ClassAssertion(owl.Thing(), bob.Term())
	c.ClassAssertion(student, alice.Term())
	c.ClassAssertion(student, alice.Term())
	c.Same(bob.Term(), alice.Term())
	c.Different(tom.Term(), rex.Term())
	c.Different(tom.Term(), tom.Term())
	c.ObjectAssertion(owl.InverseOf(hasParent), alice.Term(), bob.Term())

	want := []string{
		owl.NewClassAssertion(student, alice).String(),
		owl.NewDifferentIndividuals(rex, tom).String(),
		owl.NewObjectPropertyAssertion(hasParent, bob, alice).String(),
	}
	var got []string
	for _, ax := range c.Axioms() {
		got = append(got, ax.String())
	}
	assert.Equal(t, want, got)
}
