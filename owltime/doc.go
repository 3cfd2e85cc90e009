// Package owltime adds the OWL-Time vocabulary: instants positioned by
// xsd:dateTimeStamp literals, intervals bounded by instants, and Allen's
// interval algebra.
//
// Temporal facts are plain assertions, so they are read back through an
// owl.Index:
//
//	owltime.DeclareIntervalAt(o, ex+"meeting", start, start.Add(time.Hour))
//	owltime.DeclareIntervalAt(o, ex+"lunch", start.Add(time.Hour), start.Add(2*time.Hour))
//
//	idx := owl.NewIndex(o)
//	rel, _ := owltime.RelateIntervals(idx, ex+"meeting", ex+"lunch") // owltime.Meets
//
// ReasonerRules derives Allen relations and before/after orderings from
// positions; ValidatorRules reports inverted intervals, contradicting
// relations and unpositioned instants.
package owltime
