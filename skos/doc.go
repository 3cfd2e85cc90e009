// Package skos adds the SKOS vocabulary to the toolkit: builders for
// concept schemes, queries over concept hierarchies, and reasoner and
// validator rules for the SKOS integrity conditions.
//
// Relations between concepts are object property assertions and labels are
// annotation assertions, so a SKOS vocabulary is an ordinary ontology:
//
//	o := owl.NewOntology("http://example.org/animals")
//	skos.DeclareVocabulary(o)
//	skos.DeclareConceptScheme(o, ex+"animals")
//	skos.DeclareConcept(o, ex+"mammal", ex+"animals")
//	skos.DeclareConcept(o, ex+"cat", ex+"animals")
//	skos.DeclareBroader(o, ex+"cat", ex+"mammal")
//	skos.AddPrefLabel(o, ex+"cat", "cat", "en")
//
//	r, _ := reasoner.New(reasoner.WithRules(skos.ReasonerRules()...))
//	v, _ := validator.New(validator.WithRules(skos.ValidatorRules()...))
//
// Importing the package registers its predicates with the semstreams
// vocabulary registry.
package skos
