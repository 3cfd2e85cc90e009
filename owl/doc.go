// Package owl provides an in-memory OWL 2 object model: entities, class and
// property expressions, data ranges, axioms, SWRL rules and ontologies.
//
// Every expression and axiom renders to OWL 2 functional syntax through
// String(). The rendering of an axiom (without its annotations) is its
// identity: an Ontology never holds two axioms with the same rendering.
// Every ontology can also be mapped to RDF with ToGraph, following the
// OWL 2 RDF mapping.
//
// Query helpers that need a consistent view over many axioms live on Index,
// a read-only snapshot built with NewIndex:
//
//	idx := owl.NewIndex(ontology)
//	for _, ind := range idx.Members(owl.NewClass(ex + "Person")) {
//	    ...
//	}
package owl
