package owltime

import (
	"context"
	"sort"
	"strings"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
	"github.com/c360studio/semowl/validator"
)

// Validator rule names.
const (
	RuleIntervalBounds   = "TIME:IntervalBounds"
	RuleAllenConsistency = "TIME:AllenConsistency"
	RuleInstantPosition  = "TIME:InstantPosition"
)

// ValidatorRules returns the OWL-Time integrity checks.
func ValidatorRules() []validator.Rule {
	return []validator.Rule{
		validator.NewRule(RuleIntervalBounds, intervalBounds),
		validator.NewRule(RuleAllenConsistency, allenConsistency),
		validator.NewRule(RuleInstantPosition, instantPosition),
	}
}

// intervalBounds reports intervals that end before they begin, and proper
// intervals of zero length.
func intervalBounds(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleIntervalBounds)
	proper := owl.NewClass(ClassProperInterval)
	all := spans(idx)
	for _, t := range sortedTerms(all) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s := all[t]
		switch {
		case s.End.Before(s.Begin):
			rep.Errorf("Swap the beginning and end instants.",
				"%s begins at %s, after its end at %s", t, s.Begin.Format(timeLayout), s.End.Format(timeLayout))
		case s.Begin.Equal(s.End) && idx.IsMember(proper, t):
			rep.Errorf("Give the interval a positive length or drop the ProperInterval type.",
				"proper interval %s begins and ends at %s", t, s.Begin.Format(timeLayout))
		}
	}
	return rep.Issues(), nil
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func relationList(rels map[Relation]bool) string {
	names := make([]string, 0, len(rels))
	for r := range rels {
		names = append(names, string(r))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// allenConsistency reports pairs with more than one asserted Allen
// relation, and asserted relations the positions contradict.
func allenConsistency(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleAllenConsistency)
	asserted := assertedRelations(idx)
	keys := make([][2]rdf.Term, 0, len(asserted))
	for k := range asserted {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0].String() < keys[j][0].String()
		}
		return keys[i][1].String() < keys[j][1].String()
	})
	all := spans(idx)
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, b := k[0], k[1]
		if b.String() < a.String() {
			continue
		}
		rels := asserted[k]
		if len(rels) > 1 {
			rep.Errorf("Keep only one Allen relation between the intervals.",
				"%s and %s are related by %s, which exclude each other", a, b, relationList(rels))
			continue
		}
		sa, okA := all[a]
		sb, okB := all[b]
		if !okA || !okB {
			continue
		}
		actual := Relate(sa, sb)
		for r := range rels {
			if r != actual {
				rep.Errorf("Fix the asserted relation or the interval bounds.",
					"%s is asserted %s %s, but its bounds give %s", a, r, b, actual)
			}
		}
	}
	return rep.Issues(), nil
}

// instantPosition reports instants without a position and positions that
// cannot be read.
func instantPosition(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleInstantPosition)
	instants := make(map[rdf.Term]bool)
	for _, t := range idx.Members(owl.NewClass(ClassInstant)) {
		instants[t] = true
	}
	for _, p := range []string{HasBeginning, HasEnd} {
		for _, pair := range idx.ObjectAssertions(p) {
			instants[pair.Object] = true
		}
	}
	for _, p := range positionProperties {
		for _, pair := range idx.DataAssertions(p) {
			instants[pair.Subject] = true
		}
	}
	for _, t := range sortedTerms(instants) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var values []*owl.Literal
		for _, p := range positionProperties {
			values = append(values, idx.DataValues(p, t)...)
		}
		if len(values) == 0 {
			rep.Warnf("Add a time:inXSDDateTimeStamp value.",
				"instant %s has no position", t)
			continue
		}
		for _, l := range values {
			if _, ok := l.Time(); !ok {
				rep.Errorf("Use an xsd:dateTimeStamp such as 2024-01-02T15:04:05Z.",
					"instant %s has unreadable position %s", t, l)
			}
		}
	}
	return rep.Issues(), nil
}
