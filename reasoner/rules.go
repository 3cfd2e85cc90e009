package reasoner

// Names of the built-in rules.
const (
	RuleSubClassOf                      = "SubClassOf"
	RuleEquivalentClasses               = "EquivalentClasses"
	RuleDisjointClasses                 = "DisjointClasses"
	RuleClassAssertion                  = "ClassAssertion"
	RuleDomainRange                     = "DomainRange"
	RuleInverseObjectProperties         = "InverseObjectProperties"
	RuleSymmetricObjectProperty         = "SymmetricObjectProperty"
	RuleTransitiveObjectProperty        = "TransitiveObjectProperty"
	RuleReflexiveObjectProperty         = "ReflexiveObjectProperty"
	RuleSubObjectPropertyOf             = "SubObjectPropertyOf"
	RuleEquivalentObjectProperties      = "EquivalentObjectProperties"
	RuleSubDataPropertyOf               = "SubDataPropertyOf"
	RuleEquivalentDataProperties        = "EquivalentDataProperties"
	RuleSameIndividual                  = "SameIndividual"
	RuleDifferentIndividuals            = "DifferentIndividuals"
	RuleFunctionalObjectProperty        = "FunctionalObjectProperty"
	RuleInverseFunctionalObjectProperty = "InverseFunctionalObjectProperty"
	RuleHasValue                        = "HasValue"
	RuleHasSelf                         = "HasSelf"
	RuleHasKey                          = "HasKey"
)

// DefaultRules returns the built-in rule set in its evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		NewRule(RuleSubClassOf, subClassOf),
		NewRule(RuleEquivalentClasses, equivalentClasses),
		NewRule(RuleDisjointClasses, disjointClasses),
		NewRule(RuleClassAssertion, classAssertion),
		NewRule(RuleDomainRange, domainRange),
		NewRule(RuleInverseObjectProperties, inverseProperties),
		NewRule(RuleSymmetricObjectProperty, symmetric),
		NewRule(RuleTransitiveObjectProperty, transitive),
		NewRule(RuleReflexiveObjectProperty, reflexive),
		NewRule(RuleSubObjectPropertyOf, subObjectProperty),
		NewRule(RuleEquivalentObjectProperties, equivalentObjectProperties),
		NewRule(RuleSubDataPropertyOf, subDataProperty),
		NewRule(RuleEquivalentDataProperties, equivalentDataProperties),
		NewRule(RuleSameIndividual, sameIndividual),
		NewRule(RuleDifferentIndividuals, differentIndividuals),
		NewRule(RuleFunctionalObjectProperty, functional),
		NewRule(RuleInverseFunctionalObjectProperty, inverseFunctional),
		NewRule(RuleHasValue, hasValue),
		NewRule(RuleHasSelf, hasSelf),
		NewRule(RuleHasKey, hasKey),
	}
}
