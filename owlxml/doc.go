// Package owlxml reads and writes ontologies in the OWL 2 XML serialization.
//
// Write emits every axiom kind, ontology annotations, imports, prefixes and
// SWRL DLSafeRule elements. Read accepts the same vocabulary and resolves
// IRI, abbreviatedIRI and AbbreviatedIRI forms against the declared prefixes
// and xml:base.
package owlxml
