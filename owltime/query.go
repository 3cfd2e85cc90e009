package owltime

import (
	"time"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

var positionProperties = []string{InXSDDateTimeStamp, InXSDDateTime}

// positionOf returns the first readable position of t.
func positionOf(idx *owl.Index, t rdf.Term) (time.Time, bool) {
	for _, p := range positionProperties {
		for _, l := range idx.DataValues(p, t) {
			if at, ok := l.Time(); ok {
				return at, true
			}
		}
	}
	return time.Time{}, false
}

// Position returns the position of an instant.
func Position(idx *owl.Index, instant string) (time.Time, bool) {
	return positionOf(idx, rdf.IRI(instant))
}

func boundOf(idx *owl.Index, property string, t rdf.Term) (time.Time, bool) {
	for _, inst := range idx.ObjectValues(owl.NewObjectProperty(property), t) {
		if at, ok := positionOf(idx, inst); ok {
			return at, true
		}
	}
	return time.Time{}, false
}

func spanOf(idx *owl.Index, t rdf.Term) (Span, bool) {
	if at, ok := positionOf(idx, t); ok {
		return Span{Begin: at, End: at}, true
	}
	begin, ok := boundOf(idx, HasBeginning, t)
	if !ok {
		return Span{}, false
	}
	end, ok := boundOf(idx, HasEnd, t)
	if !ok {
		return Span{}, false
	}
	return Span{Begin: begin, End: end}, true
}

// SpanOf returns where a temporal entity lies on the timeline. Instants
// give a span of zero length; intervals need positioned bounds.
func SpanOf(idx *owl.Index, entity string) (Span, bool) {
	return spanOf(idx, rdf.IRI(entity))
}

// RelateIntervals computes the Allen relation from a to b.
func RelateIntervals(idx *owl.Index, a, b string) (Relation, bool) {
	sa, ok := SpanOf(idx, a)
	if !ok {
		return "", false
	}
	sb, ok := SpanOf(idx, b)
	if !ok {
		return "", false
	}
	return Relate(sa, sb), true
}

// Duration returns the length of an interval, from its bounds when they
// are positioned and from its xsd:duration otherwise.
func Duration(idx *owl.Index, interval string) (time.Duration, bool) {
	if s, ok := SpanOf(idx, interval); ok {
		return s.Duration(), true
	}
	for _, l := range idx.DataValues(HasXSDDuration, rdf.IRI(interval)) {
		if d, err := ParseDuration(l.Value); err == nil {
			return d, true
		}
	}
	return 0, false
}

// spans returns every entity that can be placed on the timeline.
func spans(idx *owl.Index) map[rdf.Term]Span {
	candidates := make(map[rdf.Term]bool)
	for _, p := range positionProperties {
		for _, pair := range idx.DataAssertions(p) {
			candidates[pair.Subject] = true
		}
	}
	for _, p := range []string{HasBeginning, HasEnd} {
		for _, pair := range idx.ObjectAssertions(p) {
			candidates[pair.Subject] = true
		}
	}
	out := make(map[rdf.Term]Span, len(candidates))
	for t := range candidates {
		if s, ok := spanOf(idx, t); ok {
			out[t] = s
		}
	}
	return out
}

func sortedTerms[V any](m map[rdf.Term]V) []rdf.Term {
	out := make([]rdf.Term, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	owl.SortTerms(out)
	return out
}

type assertedRelation struct {
	a, b rdf.Term
	rel  Relation
}

// assertedRelations returns every asserted Allen relation, including the
// reading of each assertion from the other side.
func assertedRelations(idx *owl.Index) map[[2]rdf.Term]map[Relation]bool {
	out := make(map[[2]rdf.Term]map[Relation]bool)
	add := func(r assertedRelation) {
		k := [2]rdf.Term{r.a, r.b}
		if out[k] == nil {
			out[k] = make(map[Relation]bool)
		}
		out[k][r.rel] = true
	}
	for _, r := range Relations() {
		for _, pair := range idx.ObjectAssertions(r.IRI()) {
			add(assertedRelation{pair.Subject, pair.Object, r})
			add(assertedRelation{pair.Object, pair.Subject, r.Inverse()})
		}
	}
	return out
}

// AssertedRelations returns the Allen relations asserted from a to b,
// reading inverse assertions from b to a as well.
func AssertedRelations(idx *owl.Index, a, b string) []Relation {
	rels := assertedRelations(idx)[[2]rdf.Term{rdf.IRI(a), rdf.IRI(b)}]
	var out []Relation
	for _, r := range Relations() {
		if rels[r] {
			out = append(out, r)
		}
	}
	return out
}
