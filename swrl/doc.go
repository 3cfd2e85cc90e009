// Package swrl evaluates SWRL rules against an ontology index.
//
// Evaluation is table based. Every antecedent atom produces a Table whose
// columns are the atom's variables and whose rows are the bindings found in
// the index. Tables are natural-joined, built-ins filter the joined rows or
// compute values for unbound variables, and every surviving row
// instantiates the consequent atoms as new assertions:
//
//	idx := owl.NewIndex(ontology)
//	inferred, err := swrl.Evaluate(ctx, rule, idx)
//
// Rules can be written in the human-readable syntax accepted by Parse:
//
//	Person(?p) ^ hasAge(?p, ?a) ^ swrlb:greaterThan(?a, 17) -> Adult(?p)
package swrl
