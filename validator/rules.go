package validator

import (
	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// Names of the built-in rules.
const (
	RuleTermDisjointness                = "TermDisjointness"
	RuleTermDeclaration                 = "TermDeclaration"
	RuleTopBottom                       = "TopBottom"
	RuleDisjointClasses                 = "DisjointClasses"
	RuleClassComplement                 = "ClassComplement"
	RuleAsymmetricObjectProperty        = "AsymmetricObjectProperty"
	RuleIrreflexiveObjectProperty       = "IrreflexiveObjectProperty"
	RuleFunctionalObjectProperty        = "FunctionalObjectProperty"
	RuleInverseFunctionalObjectProperty = "InverseFunctionalObjectProperty"
	RuleFunctionalDataProperty          = "FunctionalDataProperty"
	RuleNegativeObjectAssertions        = "NegativeObjectAssertions"
	RuleNegativeDataAssertions          = "NegativeDataAssertions"
	RuleDifferentIndividuals            = "DifferentIndividuals"
	RuleDisjointObjectProperties        = "DisjointObjectProperties"
	RuleDisjointDataProperties          = "DisjointDataProperties"
	RuleDataPropertyRange               = "DataPropertyRange"
	RulePropertyChain                   = "PropertyChain"
)

// DefaultRules returns the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		NewRule(RuleTermDisjointness, termDisjointness),
		NewRule(RuleTermDeclaration, termDeclaration),
		NewRule(RuleTopBottom, topBottom),
		NewRule(RuleDisjointClasses, disjointClasses),
		NewRule(RuleClassComplement, classComplement),
		NewRule(RuleAsymmetricObjectProperty, asymmetric),
		NewRule(RuleIrreflexiveObjectProperty, irreflexive),
		NewRule(RuleFunctionalObjectProperty, functional),
		NewRule(RuleInverseFunctionalObjectProperty, inverseFunctional),
		NewRule(RuleFunctionalDataProperty, functionalData),
		NewRule(RuleNegativeObjectAssertions, negativeObject),
		NewRule(RuleNegativeDataAssertions, negativeData),
		NewRule(RuleDifferentIndividuals, differentIndividuals),
		NewRule(RuleDisjointObjectProperties, disjointObjectProperties),
		NewRule(RuleDisjointDataProperties, disjointDataProperties),
		NewRule(RuleDataPropertyRange, dataPropertyRange),
		NewRule(RulePropertyChain, propertyChain),
	}
}

func angle(iri string) string { return "<" + iri + ">" }

// canonical picks one representative of the same-as group of t.
func canonical(idx *owl.Index, t rdf.Term) rdf.Term {
	return idx.SameAs(t)[0]
}
