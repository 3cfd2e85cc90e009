package skos

import (
	"sort"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// links is a directed relation between individuals.
type links map[rdf.Term]map[rdf.Term]bool

func (l links) add(s, o rdf.Term) {
	m, ok := l[s]
	if !ok {
		m = make(map[rdf.Term]bool)
		l[s] = m
	}
	m[o] = true
}

func (l links) has(s, o rdf.Term) bool { return l[s][o] }

func (l links) targets(s rdf.Term) []rdf.Term {
	out := make([]rdf.Term, 0, len(l[s]))
	for t := range l[s] {
		out = append(out, t)
	}
	owl.SortTerms(out)
	return out
}

func (l links) subjects() []rdf.Term {
	out := make([]rdf.Term, 0, len(l))
	for s := range l {
		out = append(out, s)
	}
	owl.SortTerms(out)
	return out
}

// reach returns every term reachable from s in one or more steps.
func (l links) reach(s rdf.Term) map[rdf.Term]bool {
	seen := make(map[rdf.Term]bool)
	queue := l.targets(s)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		queue = append(queue, l.targets(cur)...)
	}
	return seen
}

// relation collects the assertions of forward and the reversed assertions
// of each backward property.
func relation(idx *owl.Index, forward string, backward ...string) links {
	l := make(links)
	for _, pair := range idx.ObjectAssertions(forward) {
		l.add(pair.Subject, pair.Object)
	}
	for _, b := range backward {
		for _, pair := range idx.ObjectAssertions(b) {
			l.add(pair.Object, pair.Subject)
		}
	}
	return l
}

func iris(ts []rdf.Term) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		if t.IsIRI() {
			out = append(out, t.Value)
		}
	}
	return out
}

func sortedIRIs(set map[rdf.Term]bool) []string {
	ts := make([]rdf.Term, 0, len(set))
	for t := range set {
		ts = append(ts, t)
	}
	owl.SortTerms(ts)
	return iris(ts)
}

func broaderLinks(idx *owl.Index) links {
	return relation(idx, Broader, Narrower)
}

func transitiveBroaderLinks(idx *owl.Index) links {
	l := broaderLinks(idx)
	for _, pair := range idx.ObjectAssertions(BroaderTransitive) {
		l.add(pair.Subject, pair.Object)
	}
	for _, pair := range idx.ObjectAssertions(NarrowerTransitive) {
		l.add(pair.Object, pair.Subject)
	}
	return l
}

func invert(l links) links {
	out := make(links)
	for s, os := range l {
		for o := range os {
			out.add(o, s)
		}
	}
	return out
}

// BroaderOf returns the concepts directly broader than concept, from
// skos:broader and reversed skos:narrower assertions.
func BroaderOf(idx *owl.Index, concept string) []string {
	return iris(broaderLinks(idx).targets(rdf.IRI(concept)))
}

// NarrowerOf returns the concepts directly narrower than concept.
func NarrowerOf(idx *owl.Index, concept string) []string {
	return iris(relation(idx, Narrower, Broader).targets(rdf.IRI(concept)))
}

// BroaderTransitiveOf returns every ancestor of concept.
func BroaderTransitiveOf(idx *owl.Index, concept string) []string {
	return sortedIRIs(transitiveBroaderLinks(idx).reach(rdf.IRI(concept)))
}

// NarrowerTransitiveOf returns every descendant of concept.
func NarrowerTransitiveOf(idx *owl.Index, concept string) []string {
	return sortedIRIs(invert(transitiveBroaderLinks(idx)).reach(rdf.IRI(concept)))
}

// RelatedTo returns the concepts associated with concept in either
// direction.
func RelatedTo(idx *owl.Index, concept string) []string {
	return iris(relation(idx, Related, Related).targets(rdf.IRI(concept)))
}

// MappingsOf returns the targets of one mapping relation from concept.
func MappingsOf(idx *owl.Index, mapping, concept string) []string {
	return iris(idx.ObjectValues(owl.NewObjectProperty(mapping), rdf.IRI(concept)))
}

// TopConcepts returns the top concepts of scheme.
func TopConcepts(idx *owl.Index, scheme string) []string {
	return iris(relation(idx, HasTopConcept, TopConceptOf).targets(rdf.IRI(scheme)))
}

func schemeLinks(idx *owl.Index) links {
	return relation(idx, InScheme, HasTopConcept)
}

// Concepts returns the concepts of scheme, or every concept when scheme is
// empty.
func Concepts(idx *owl.Index, scheme string) []string {
	set := make(map[rdf.Term]bool)
	if scheme == "" {
		for _, t := range idx.Members(owl.NewClass(ClassConcept)) {
			set[t] = true
		}
		for s := range schemeLinks(idx) {
			set[s] = true
		}
		return sortedIRIs(set)
	}
	target := rdf.IRI(scheme)
	for s, schemes := range schemeLinks(idx) {
		if schemes[target] {
			set[s] = true
		}
	}
	return sortedIRIs(set)
}

// Label is one lexical label of a concept.
type Label struct {
	Kind  LabelKind
	Value string
	Lang  string
}

func labelKind(property string) (LabelKind, bool) {
	switch property {
	case PrefLabel:
		return LabelPref, true
	case AltLabel:
		return LabelAlt, true
	case HiddenLabel:
		return LabelHidden, true
	}
	return "", false
}

func kindRank(k LabelKind) int {
	switch k {
	case LabelPref:
		return 0
	case LabelAlt:
		return 1
	}
	return 2
}

// labelsBySubject groups the SKOS labels of an ontology by the IRI they
// annotate.
func labelsBySubject(o *owl.Ontology) map[string][]Label {
	out := make(map[string][]Label)
	for _, ax := range owl.AxiomsOf[*owl.AnnotationAssertion](o) {
		kind, ok := labelKind(ax.Property.IRI)
		if !ok {
			continue
		}
		subject, ok := ax.Subject.(owl.IRIValue)
		if !ok {
			continue
		}
		l, ok := ax.Value.(*owl.Literal)
		if !ok {
			continue
		}
		out[string(subject)] = append(out[string(subject)], Label{Kind: kind, Value: l.Value, Lang: l.Lang})
	}
	return out
}

// Labels returns the labels of concept ordered preferred, alternative,
// hidden.
func Labels(idx *owl.Index, concept string) []Label {
	out := labelsBySubject(idx.Ontology())[concept]
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := kindRank(a.Kind), kindRank(b.Kind); ra != rb {
			return ra < rb
		}
		if a.Lang != b.Lang {
			return a.Lang < b.Lang
		}
		return a.Value < b.Value
	})
	return out
}

// PrefLabelOf returns the preferred label of concept in lang. A label
// without a language tag is used when none matches.
func PrefLabelOf(idx *owl.Index, concept, lang string) (string, bool) {
	var fallback string
	found := false
	for _, l := range Labels(idx, concept) {
		if l.Kind != LabelPref {
			continue
		}
		if l.Lang == lang {
			return l.Value, true
		}
		if l.Lang == "" && !found {
			fallback, found = l.Value, true
		}
	}
	return fallback, found
}

// NotationsOf returns the notations of concept.
func NotationsOf(idx *owl.Index, concept string) []*owl.Literal {
	return idx.DataValues(Notation, rdf.IRI(concept))
}
