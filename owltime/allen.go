package owltime

import (
	"strings"
	"time"
	"unicode"
)

// Relation is one of the thirteen Allen interval relations.
type Relation string

const (
	Precedes     Relation = "Before"
	PrecededBy   Relation = "After"
	Meets        Relation = "Meets"
	MetBy        Relation = "MetBy"
	Overlaps     Relation = "Overlaps"
	OverlappedBy Relation = "OverlappedBy"
	Starts       Relation = "Starts"
	StartedBy    Relation = "StartedBy"
	During       Relation = "During"
	Contains     Relation = "Contains"
	Finishes     Relation = "Finishes"
	FinishedBy   Relation = "FinishedBy"
	Equals       Relation = "Equals"
)

var inverses = map[Relation]Relation{
	Precedes:     PrecededBy,
	PrecededBy:   Precedes,
	Meets:        MetBy,
	MetBy:        Meets,
	Overlaps:     OverlappedBy,
	OverlappedBy: Overlaps,
	Starts:       StartedBy,
	StartedBy:    Starts,
	During:       Contains,
	Contains:     During,
	Finishes:     FinishedBy,
	FinishedBy:   Finishes,
	Equals:       Equals,
}

// Relations returns the thirteen relations.
func Relations() []Relation {
	return []Relation{
		Precedes, PrecededBy, Meets, MetBy, Overlaps, OverlappedBy,
		Starts, StartedBy, During, Contains, Finishes, FinishedBy, Equals,
	}
}

// IRI returns the OWL-Time property of the relation, such as
// time:intervalMetBy.
func (r Relation) IRI() string { return Namespace + "interval" + string(r) }

// Inverse returns the relation that holds with the arguments swapped.
func (r Relation) Inverse() Relation { return inverses[r] }

// Valid reports whether r is one of the thirteen relations.
func (r Relation) Valid() bool {
	_, ok := inverses[r]
	return ok
}

func (r Relation) snake() string {
	var b strings.Builder
	for i, c := range string(r) {
		if unicode.IsUpper(c) {
			if i > 0 {
				b.WriteByte('_')
			}
			c = unicode.ToLower(c)
		}
		b.WriteRune(c)
	}
	return b.String()
}

// RelationFromIRI maps an OWL-Time interval property back to its relation.
func RelationFromIRI(iri string) (Relation, bool) {
	if !strings.HasPrefix(iri, Namespace+"interval") {
		return "", false
	}
	r := Relation(strings.TrimPrefix(iri, Namespace+"interval"))
	return r, r.Valid()
}

// Span is a closed stretch of the timeline. An instant is a span whose
// bounds coincide.
type Span struct {
	Begin time.Time
	End   time.Time
}

// Duration returns the length of the span.
func (s Span) Duration() time.Duration { return s.End.Sub(s.Begin) }

// Proper reports whether the span begins strictly before it ends.
func (s Span) Proper() bool { return s.Begin.Before(s.End) }

// Relate returns the Allen relation that holds from a to b.
func Relate(a, b Span) Relation {
	switch {
	case a.End.Before(b.Begin):
		return Precedes
	case b.End.Before(a.Begin):
		return PrecededBy
	case a.End.Equal(b.Begin) && a.Begin.Before(b.Begin):
		return Meets
	case b.End.Equal(a.Begin) && b.Begin.Before(a.Begin):
		return MetBy
	case a.Begin.Equal(b.Begin) && a.End.Equal(b.End):
		return Equals
	case a.Begin.Equal(b.Begin):
		if a.End.Before(b.End) {
			return Starts
		}
		return StartedBy
	case a.End.Equal(b.End):
		if a.Begin.After(b.Begin) {
			return Finishes
		}
		return FinishedBy
	case a.Begin.After(b.Begin) && a.End.Before(b.End):
		return During
	case b.Begin.After(a.Begin) && b.End.Before(a.End):
		return Contains
	case a.Begin.Before(b.Begin):
		return Overlaps
	default:
		return OverlappedBy
	}
}
