package skos

import (
	"context"
	"sort"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
	"github.com/c360studio/semowl/validator"
)

// Validator rule names.
const (
	RuleLabelDisjointness = "SKOS:LabelDisjointness"
	RulePrefLabelUnique   = "SKOS:PrefLabelUniqueness"
	RuleRelatedClash      = "SKOS:RelatedBroaderClash"
	RuleExactMatchClash   = "SKOS:ExactMatchClash"
	RuleNotationUnique    = "SKOS:NotationUniqueness"
	RuleTopConceptBroader = "SKOS:TopConceptBroader"
)

// ValidatorRules returns the SKOS integrity checks.
func ValidatorRules() []validator.Rule {
	return []validator.Rule{
		validator.NewRule(RuleLabelDisjointness, labelDisjointness),
		validator.NewRule(RulePrefLabelUnique, prefLabelUnique),
		validator.NewRule(RuleRelatedClash, relatedClash),
		validator.NewRule(RuleExactMatchClash, exactMatchClash),
		validator.NewRule(RuleNotationUnique, notationUnique),
		validator.NewRule(RuleTopConceptBroader, topConceptBroader),
	}
}

func sortedSubjects(m map[string][]Label) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func quoted(l Label) string {
	if l.Lang == "" {
		return `"` + l.Value + `"`
	}
	return `"` + l.Value + `"@` + l.Lang
}

// labelDisjointness reports a label text used by two different label kinds
// of the same concept.
func labelDisjointness(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleLabelDisjointness)
	labels := labelsBySubject(idx.Ontology())
	for _, concept := range sortedSubjects(labels) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		first := make(map[[2]string]LabelKind)
		for _, l := range labels[concept] {
			key := [2]string{l.Value, l.Lang}
			prev, ok := first[key]
			if !ok {
				first[key] = l.Kind
				continue
			}
			if prev != l.Kind {
				a, b := prev, l.Kind
				if kindRank(b) < kindRank(a) {
					a, b = b, a
				}
				rep.Errorf("Keep the text in one label property only.",
					"%s uses %s as both %sLabel and %sLabel", angleIRI(concept), quoted(l), a, b)
			}
		}
	}
	return rep.Issues(), nil
}

// prefLabelUnique reports concepts with more than one preferred label in a
// language.
func prefLabelUnique(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RulePrefLabelUnique)
	labels := labelsBySubject(idx.Ontology())
	for _, concept := range sortedSubjects(labels) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		byLang := make(map[string]map[string]bool)
		for _, l := range labels[concept] {
			if l.Kind != LabelPref {
				continue
			}
			if byLang[l.Lang] == nil {
				byLang[l.Lang] = make(map[string]bool)
			}
			byLang[l.Lang][l.Value] = true
		}
		langs := make([]string, 0, len(byLang))
		for lang, values := range byLang {
			if len(values) > 1 {
				langs = append(langs, lang)
			}
		}
		sort.Strings(langs)
		for _, lang := range langs {
			tag := lang
			if tag == "" {
				tag = "no language"
			}
			rep.Errorf("Keep one prefLabel per language and move the rest to altLabel.",
				"%s has %d preferred labels for %s", angleIRI(concept), len(byLang[lang]), tag)
		}
	}
	return rep.Issues(), nil
}

func angleIRI(iri string) string { return rdf.IRI(iri).String() }

// relatedClash reports associative links between concepts that are also
// hierarchically linked.
func relatedClash(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleRelatedClash)
	up := transitiveBroaderLinks(idx)
	related := relation(idx, Related, Related)
	for _, a := range related.subjects() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ancestors := up.reach(a)
		for _, b := range related.targets(a) {
			if ancestors[b] {
				rep.Errorf("Remove the skos:related link; the concepts are already in one hierarchy.",
					"%s is related to its broader concept %s", a, b)
			}
		}
	}
	return rep.Issues(), nil
}

// exactMatchClash reports exact matches that are also hierarchical or
// associative matches.
func exactMatchClash(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleExactMatchClash)
	exact := relation(idx, ExactMatch, ExactMatch)
	clashing := []struct {
		name string
		l    links
	}{
		{"a hierarchical mapping", relation(idx, BroadMatch, NarrowMatch)},
		{"skos:relatedMatch", relation(idx, RelatedMatch, RelatedMatch)},
	}
	for _, a := range exact.subjects() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, b := range exact.targets(a) {
			if b.String() < a.String() {
				continue
			}
			for _, cl := range clashing {
				if cl.l.has(a, b) || cl.l.has(b, a) {
					rep.Errorf("Drop either the exact match or "+cl.name+".",
						"%s and %s are linked by both skos:exactMatch and %s", a, b, cl.name)
				}
			}
		}
	}
	return rep.Issues(), nil
}

// notationUnique reports notations shared by two concepts of one scheme.
func notationUnique(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleNotationUnique)
	schemes := schemeLinks(idx)
	type key struct {
		scheme rdf.Term
		code   string
	}
	owners := make(map[key]map[rdf.Term]bool)
	for _, pair := range idx.DataAssertions(Notation) {
		for _, scheme := range schemes.targets(pair.Subject) {
			k := key{scheme, pair.Value.Term().String()}
			if owners[k] == nil {
				owners[k] = make(map[rdf.Term]bool)
			}
			owners[k][pair.Subject] = true
		}
	}
	keys := make([]key, 0, len(owners))
	for k := range owners {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].scheme != keys[j].scheme {
			return keys[i].scheme.String() < keys[j].scheme.String()
		}
		return keys[i].code < keys[j].code
	})
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		concepts := make(map[rdf.Term]bool)
		for t := range owners[k] {
			concepts[canonical(idx, t)] = true
		}
		if len(concepts) < 2 {
			continue
		}
		rep.Errorf("Give each concept of the scheme its own notation.",
			"notation %s is used by %d concepts of %s", k.code, len(concepts), k.scheme)
	}
	return rep.Issues(), nil
}

func canonical(idx *owl.Index, t rdf.Term) rdf.Term {
	return idx.SameAs(t)[0]
}

// topConceptBroader warns about top concepts that have a broader concept in
// the same scheme.
func topConceptBroader(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleTopConceptBroader)
	tops := relation(idx, HasTopConcept, TopConceptOf)
	schemes := schemeLinks(idx)
	broader := broaderLinks(idx)
	for _, scheme := range tops.subjects() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, top := range tops.targets(scheme) {
			for _, b := range broader.targets(top) {
				if schemes.has(b, scheme) {
					rep.Warnf("Remove the broader link or the top concept assertion.",
						"top concept %s of %s has broader concept %s in the same scheme", top, scheme, b)
				}
			}
		}
	}
	return rep.Issues(), nil
}
