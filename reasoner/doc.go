// Package reasoner materializes the consequences of an ontology with a
// forward-chaining rule engine.
//
// Each iteration builds an owl.Index snapshot, runs every enabled rule in
// parallel against it and adds the new axioms to a working copy. Iteration
// stops at a fixpoint or after the configured number of rounds. The
// built-in rules cover the OWL 2 RL style entailments of the object model;
// every SWRL rule of the ontology runs as a rule of its own, and extension
// packages contribute more rules through WithRules.
//
// The reasoner is sound but not complete: it only derives what its rules
// derive.
package reasoner
