package owl

import (
	"slices"
	"sort"

	"github.com/c360studio/semowl/rdf"
)

// ObjectPair is one object property assertion, normalized so that the
// property is named.
type ObjectPair struct {
	Subject rdf.Term
	Object  rdf.Term
}

// DataPair is one data property assertion.
type DataPair struct {
	Subject rdf.Term
	Value   *Literal
}

type stringSet map[string]struct{}

func (s stringSet) add(v string) { s[v] = struct{}{} }

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

type termSet map[rdf.Term]struct{}

func (s termSet) add(t rdf.Term) { s[t] = struct{}{} }

func (s termSet) has(t rdf.Term) bool {
	_, ok := s[t]
	return ok
}

func (s termSet) sorted() []rdf.Term {
	out := make([]rdf.Term, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	SortTerms(out)
	return out
}

// SortTerms orders terms by their N-Triples rendering.
func SortTerms(ts []rdf.Term) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].String() < ts[j].String() })
}

func addEdge(m map[string]stringSet, from, to string) {
	if from == to {
		return
	}
	s, ok := m[from]
	if !ok {
		s = make(stringSet)
		m[from] = s
	}
	s.add(to)
}

// closure walks edges from start breadth first, excluding start.
func closure(m map[string]stringSet, start string) stringSet {
	out := make(stringSet)
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range m[cur] {
			if next == start {
				continue
			}
			if _, seen := out[next]; seen {
				continue
			}
			out.add(next)
			queue = append(queue, next)
		}
	}
	return out
}

// Index is a read-only query snapshot of an ontology. It is safe for
// concurrent use; changes to the ontology after NewIndex are not seen.
type Index struct {
	ont *Ontology

	declared map[string][]EntityKind

	classSupers map[string]stringSet
	classSubs   map[string]stringSet
	disjoint    map[string]stringSet

	classMembers map[string]termSet
	typed        map[rdf.Term][]ClassExpression
	exprMembers  map[string]termSet

	objectProps   map[string][]ObjectPair
	dataProps     map[string][]DataPair
	objectSubject map[rdf.Term][]*ObjectPropertyAssertion
	dataSubject   map[rdf.Term][]*DataPropertyAssertion

	objSupers  map[string]stringSet
	objSubs    map[string]stringSet
	dataSupers map[string]stringSet
	dataSubs   map[string]stringSet
	inverses   map[string]stringSet
	chars      map[string]map[AxiomKind]bool
	funcData   stringSet

	same        map[rdf.Term]rdf.Term
	sameGroups  map[rdf.Term][]rdf.Term
	different   map[[2]rdf.Term]bool
	individuals termSet

	datatypeDefs map[string]DataRange
}

// NewIndex builds a query snapshot of o.
func NewIndex(o *Ontology) *Index {
	ix := &Index{
		ont:           o,
		declared:      make(map[string][]EntityKind),
		classSupers:   make(map[string]stringSet),
		classSubs:     make(map[string]stringSet),
		disjoint:      make(map[string]stringSet),
		classMembers:  make(map[string]termSet),
		typed:         make(map[rdf.Term][]ClassExpression),
		exprMembers:   make(map[string]termSet),
		objectProps:   make(map[string][]ObjectPair),
		dataProps:     make(map[string][]DataPair),
		objectSubject: make(map[rdf.Term][]*ObjectPropertyAssertion),
		dataSubject:   make(map[rdf.Term][]*DataPropertyAssertion),
		objSupers:     make(map[string]stringSet),
		objSubs:       make(map[string]stringSet),
		dataSupers:    make(map[string]stringSet),
		dataSubs:      make(map[string]stringSet),
		inverses:      make(map[string]stringSet),
		chars:         make(map[string]map[AxiomKind]bool),
		funcData:      make(stringSet),
		same:          make(map[rdf.Term]rdf.Term),
		sameGroups:    make(map[rdf.Term][]rdf.Term),
		different:     make(map[[2]rdf.Term]bool),
		individuals:   make(termSet),
		datatypeDefs:  make(map[string]DataRange),
	}
	for _, ax := range o.axioms {
		ix.add(ax)
	}
	ix.buildSameGroups()
	return ix
}

// Ontology returns the indexed ontology.
func (ix *Index) Ontology() *Ontology { return ix.ont }

func (ix *Index) subClass(sub, super ClassExpression) {
	// A ⊑ B ⊓ C gives A ⊑ B and A ⊑ C; B ⊔ C ⊑ A gives B ⊑ A and C ⊑ A.
	var subs, supers []string
	switch s := sub.(type) {
	case *Class:
		subs = []string{s.IRI}
	case *ObjectUnionOf:
		for _, c := range s.Classes {
			if n, ok := c.(*Class); ok {
				subs = append(subs, n.IRI)
			}
		}
	}
	switch s := super.(type) {
	case *Class:
		supers = []string{s.IRI}
	case *ObjectIntersectionOf:
		for _, c := range s.Classes {
			if n, ok := c.(*Class); ok {
				supers = append(supers, n.IRI)
			}
		}
	}
	for _, a := range subs {
		for _, b := range supers {
			addEdge(ix.classSupers, a, b)
			addEdge(ix.classSubs, b, a)
		}
	}
}

func (ix *Index) disjointPairs(cs []ClassExpression) {
	for i, a := range cs {
		an, ok := a.(*Class)
		if !ok {
			continue
		}
		for _, b := range cs[i+1:] {
			if bn, ok := b.(*Class); ok {
				addEdge(ix.disjoint, an.IRI, bn.IRI)
				addEdge(ix.disjoint, bn.IRI, an.IRI)
			}
		}
	}
}

func (ix *Index) subObjectProperty(sub, super ObjectPropertyExpression) {
	if sub.Inverse() != super.Inverse() {
		return
	}
	addEdge(ix.objSupers, sub.Named().IRI, super.Named().IRI)
	addEdge(ix.objSubs, super.Named().IRI, sub.Named().IRI)
}

func (ix *Index) individual(ind Individual) rdf.Term {
	t := ind.Term()
	ix.individuals.add(t)
	return t
}

func (ix *Index) add(ax Axiom) {
	switch a := ax.(type) {
	case *Declaration:
		iri := a.Entity.EntityIRI()
		ix.declared[iri] = append(ix.declared[iri], a.Entity.EntityKind())
		if ind, ok := a.Entity.(*NamedIndividual); ok {
			ix.individual(ind)
		}
	case *SubClassOf:
		ix.subClass(a.Sub, a.Super)
	case *EquivalentClasses:
		for i, c := range a.Classes {
			for j, d := range a.Classes {
				if i != j {
					ix.subClass(c, d)
				}
			}
		}
	case *DisjointClasses:
		ix.disjointPairs(a.Classes)
	case *DisjointUnion:
		ix.disjointPairs(a.Classes)
		for _, c := range a.Classes {
			ix.subClass(c, a.Class)
		}
	case *SubObjectPropertyOf:
		if len(a.Chain) == 0 {
			ix.subObjectProperty(a.Sub, a.Super)
		}
	case *EquivalentObjectProperties:
		for i, p := range a.Properties {
			for j, q := range a.Properties {
				if i != j {
					ix.subObjectProperty(p, q)
				}
			}
		}
	case *InverseObjectProperties:
		f, s := a.First.Named().IRI, a.Second.Named().IRI
		if a.First.Inverse() == a.Second.Inverse() {
			addEdge(ix.inverses, f, s)
			addEdge(ix.inverses, s, f)
		}
	case *ObjectPropertyCharacteristic:
		p := a.Property.Named().IRI
		if ix.chars[p] == nil {
			ix.chars[p] = make(map[AxiomKind]bool)
		}
		ix.chars[p][a.Characteristic] = true
	case *SubDataPropertyOf:
		addEdge(ix.dataSupers, a.Sub.IRI, a.Super.IRI)
		addEdge(ix.dataSubs, a.Super.IRI, a.Sub.IRI)
	case *EquivalentDataProperties:
		for i, p := range a.Properties {
			for j, q := range a.Properties {
				if i != j {
					addEdge(ix.dataSupers, p.IRI, q.IRI)
					addEdge(ix.dataSubs, q.IRI, p.IRI)
				}
			}
		}
	case *FunctionalDataProperty:
		ix.funcData.add(a.Property.IRI)
	case *DatatypeDefinition:
		ix.datatypeDefs[a.Datatype.IRI] = a.Range
	case *ClassAssertion:
		t := ix.individual(a.Individual)
		ix.typed[t] = append(ix.typed[t], a.Class)
		if c, ok := a.Class.(*Class); ok {
			members(ix.classMembers, c.IRI).add(t)
		} else {
			members(ix.exprMembers, a.Class.String()).add(t)
		}
	case *ObjectPropertyAssertion:
		p, s, o := a.Normalized()
		st, ot := ix.individual(s), ix.individual(o)
		ix.objectProps[p.IRI] = append(ix.objectProps[p.IRI], ObjectPair{Subject: st, Object: ot})
		norm := a
		if a.Property.Inverse() {
			norm = NewObjectPropertyAssertion(p, s, o)
		}
		ix.objectSubject[st] = append(ix.objectSubject[st], norm)
	case *NegativeObjectPropertyAssertion:
		ix.individual(a.Source)
		ix.individual(a.Target)
	case *DataPropertyAssertion:
		st := ix.individual(a.Source)
		ix.dataProps[a.Property.IRI] = append(ix.dataProps[a.Property.IRI], DataPair{Subject: st, Value: a.Value})
		ix.dataSubject[st] = append(ix.dataSubject[st], a)
	case *NegativeDataPropertyAssertion:
		ix.individual(a.Source)
	case *SameIndividual:
		for i := 1; i < len(a.Individuals); i++ {
			ix.union(ix.individual(a.Individuals[0]), ix.individual(a.Individuals[i]))
		}
		if len(a.Individuals) == 1 {
			ix.individual(a.Individuals[0])
		}
	case *DifferentIndividuals:
		for i, x := range a.Individuals {
			for _, y := range a.Individuals[i+1:] {
				xt, yt := ix.individual(x), ix.individual(y)
				ix.different[[2]rdf.Term{xt, yt}] = true
				ix.different[[2]rdf.Term{yt, xt}] = true
			}
		}
	}
}

func members(m map[string]termSet, key string) termSet {
	s, ok := m[key]
	if !ok {
		s = make(termSet)
		m[key] = s
	}
	return s
}

func (ix *Index) find(t rdf.Term) rdf.Term {
	for {
		p, ok := ix.same[t]
		if !ok || p == t {
			return t
		}
		t = p
	}
}

func (ix *Index) union(a, b rdf.Term) {
	ra, rb := ix.find(a), ix.find(b)
	if ra == rb {
		return
	}
	if rb.String() < ra.String() {
		ra, rb = rb, ra
	}
	ix.same[ra] = ra
	ix.same[rb] = ra
}

func (ix *Index) buildSameGroups() {
	for t := range ix.same {
		r := ix.find(t)
		ix.sameGroups[r] = append(ix.sameGroups[r], t)
	}
	for _, g := range ix.sameGroups {
		SortTerms(g)
	}
}

// Declarations returns the entity kinds declared for iri.
func (ix *Index) Declarations(iri string) []EntityKind {
	return ix.declared[iri]
}

// IsDeclared reports whether iri is declared with the given kind.
func (ix *Index) IsDeclared(iri string, kind EntityKind) bool {
	for _, k := range ix.declared[iri] {
		if k == kind {
			return true
		}
	}
	return false
}

// SuperClassesOf returns the named superclasses of a named class,
// transitively, excluding the class itself.
func (ix *Index) SuperClassesOf(iri string) []string {
	return closure(ix.classSupers, iri).sorted()
}

// SubClassesOf returns the named subclasses of a named class, transitively.
func (ix *Index) SubClassesOf(iri string) []string {
	return closure(ix.classSubs, iri).sorted()
}

// EquivalentClassesOf returns the named classes that are both sub- and
// superclasses of iri.
func (ix *Index) EquivalentClassesOf(iri string) []string {
	subs := closure(ix.classSubs, iri)
	var out []string
	for _, s := range ix.SuperClassesOf(iri) {
		if _, ok := subs[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// IsSubClassOf reports whether sub is subsumed by super, reflexively.
func (ix *Index) IsSubClassOf(sub, super string) bool {
	if sub == super || super == ThingIRI {
		return true
	}
	_, ok := closure(ix.classSupers, sub)[super]
	return ok
}

// DisjointWith returns the named classes disjoint with iri, taking the
// class hierarchy into account.
func (ix *Index) DisjointWith(iri string) []string {
	out := make(stringSet)
	self := append([]string{iri}, ix.SuperClassesOf(iri)...)
	for _, c := range self {
		for d := range ix.disjoint[c] {
			out.add(d)
			for _, s := range ix.SubClassesOf(d) {
				out.add(s)
			}
		}
	}
	return out.sorted()
}

// AreDisjoint reports whether two named classes are disjoint.
func (ix *Index) AreDisjoint(a, b string) bool {
	for _, d := range ix.DisjointWith(a) {
		if d == b {
			return true
		}
	}
	return false
}

// Individuals returns every individual mentioned by an assertion or
// declaration.
func (ix *Index) Individuals() []rdf.Term {
	return ix.individuals.sorted()
}

// AssertedTypes returns the class expressions asserted for an individual.
func (ix *Index) AssertedTypes(ind rdf.Term) []ClassExpression {
	return ix.typed[ind]
}

// ClassesOf returns the named classes of an individual: asserted ones,
// those of its same-as individuals and all their superclasses.
func (ix *Index) ClassesOf(ind rdf.Term) []string {
	out := make(stringSet)
	for _, t := range ix.SameAs(ind) {
		for _, ce := range ix.typed[t] {
			if c, ok := ce.(*Class); ok {
				out.add(c.IRI)
				for _, s := range ix.SuperClassesOf(c.IRI) {
					out.add(s)
				}
			}
		}
	}
	return out.sorted()
}

// SameAs returns the same-as closure of ind, including ind.
func (ix *Index) SameAs(ind rdf.Term) []rdf.Term {
	if g, ok := ix.sameGroups[ix.find(ind)]; ok {
		return g
	}
	return []rdf.Term{ind}
}

// AreSame reports whether two individuals are known to be the same.
func (ix *Index) AreSame(a, b rdf.Term) bool {
	return a == b || ix.find(a) == ix.find(b)
}

// AreDifferent reports whether two individuals are known to differ.
func (ix *Index) AreDifferent(a, b rdf.Term) bool {
	for _, x := range ix.SameAs(a) {
		for _, y := range ix.SameAs(b) {
			if ix.different[[2]rdf.Term{x, y}] {
				return true
			}
		}
	}
	return false
}

// SameGroups returns the same-as groups with more than one member.
func (ix *Index) SameGroups() [][]rdf.Term {
	keys := make([]rdf.Term, 0, len(ix.sameGroups))
	for k := range ix.sameGroups {
		keys = append(keys, k)
	}
	SortTerms(keys)
	out := make([][]rdf.Term, 0, len(keys))
	for _, k := range keys {
		out = append(out, ix.sameGroups[k])
	}
	return out
}

// DifferentPairs returns the asserted different-from pairs, each once.
func (ix *Index) DifferentPairs() [][2]rdf.Term {
	var out [][2]rdf.Term
	for p := range ix.different {
		if p[0].String() < p[1].String() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0].String() < out[j][0].String()
		}
		return out[i][1].String() < out[j][1].String()
	})
	return out
}

// HasCharacteristic reports whether the named object property carries the
// given characteristic axiom.
func (ix *Index) HasCharacteristic(property string, kind AxiomKind) bool {
	return ix.chars[property][kind]
}

// PropertiesWith returns the object properties carrying a characteristic.
func (ix *Index) PropertiesWith(kind AxiomKind) []string {
	out := make(stringSet)
	for p, cs := range ix.chars {
		if cs[kind] {
			out.add(p)
		}
	}
	return out.sorted()
}

// IsFunctionalData reports whether a data property is functional.
func (ix *Index) IsFunctionalData(property string) bool {
	_, ok := ix.funcData[property]
	return ok
}

// SuperPropertiesOf returns the named object super-properties, transitively.
func (ix *Index) SuperPropertiesOf(property string) []string {
	return closure(ix.objSupers, property).sorted()
}

// SubPropertiesOf returns the named object sub-properties, transitively.
func (ix *Index) SubPropertiesOf(property string) []string {
	return closure(ix.objSubs, property).sorted()
}

// DataSuperPropertiesOf returns the data super-properties, transitively.
func (ix *Index) DataSuperPropertiesOf(property string) []string {
	return closure(ix.dataSupers, property).sorted()
}

// DataSubPropertiesOf returns the data sub-properties, transitively.
func (ix *Index) DataSubPropertiesOf(property string) []string {
	return closure(ix.dataSubs, property).sorted()
}

// InversesOf returns the declared inverses of an object property.
func (ix *Index) InversesOf(property string) []string {
	return ix.inverses[property].sorted()
}

// AssertedObjectPairs returns the assertions of exactly this property.
func (ix *Index) AssertedObjectPairs(property string) []ObjectPair {
	return ix.objectProps[property]
}

// AssertedDataPairs returns the assertions of exactly this data property.
func (ix *Index) AssertedDataPairs(property string) []DataPair {
	return ix.dataProps[property]
}

// ObjectPropertiesInUse returns the named object properties with at least
// one assertion.
func (ix *Index) ObjectPropertiesInUse() []string {
	out := make(stringSet)
	for p := range ix.objectProps {
		out.add(p)
	}
	return out.sorted()
}

// DataPropertiesInUse returns the data properties with at least one
// assertion.
func (ix *Index) DataPropertiesInUse() []string {
	out := make(stringSet)
	for p := range ix.dataProps {
		out.add(p)
	}
	return out.sorted()
}

// ObjectAssertions returns the assertions of a property and of all its
// sub-properties, without duplicates.
func (ix *Index) ObjectAssertions(property string) []ObjectPair {
	seen := make(map[ObjectPair]bool)
	var out []ObjectPair
	for _, p := range append([]string{property}, ix.SubPropertiesOf(property)...) {
		for _, pair := range ix.objectProps[p] {
			if !seen[pair] {
				seen[pair] = true
				out = append(out, pair)
			}
		}
	}
	return out
}

// ObjectPairs returns the assertions of a property expression; pairs of an
// inverse are swapped.
func (ix *Index) ObjectPairs(p ObjectPropertyExpression) []ObjectPair {
	pairs := ix.ObjectAssertions(p.Named().IRI)
	if !p.Inverse() {
		return pairs
	}
	out := make([]ObjectPair, len(pairs))
	for i, pair := range pairs {
		out[i] = ObjectPair{Subject: pair.Object, Object: pair.Subject}
	}
	return out
}

// ObjectValues returns the objects related to subject by p.
func (ix *Index) ObjectValues(p ObjectPropertyExpression, subject rdf.Term) []rdf.Term {
	out := make(termSet)
	for _, pair := range ix.ObjectPairs(p) {
		if pair.Subject == subject {
			out.add(pair.Object)
		}
	}
	return out.sorted()
}

// DataAssertions returns the assertions of a data property and of all its
// sub-properties.
func (ix *Index) DataAssertions(property string) []DataPair {
	seen := make(map[string]bool)
	var out []DataPair
	for _, p := range append([]string{property}, ix.DataSubPropertiesOf(property)...) {
		for _, pair := range ix.dataProps[p] {
			k := pair.Subject.String() + " " + pair.Value.String()
			if !seen[k] {
				seen[k] = true
				out = append(out, pair)
			}
		}
	}
	return out
}

// DataValues returns the literals related to subject by a data property.
func (ix *Index) DataValues(property string, subject rdf.Term) []*Literal {
	var out []*Literal
	for _, pair := range ix.DataAssertions(property) {
		if pair.Subject == subject {
			out = append(out, pair.Value)
		}
	}
	return out
}

// SubjectObjectAssertions returns the object assertions whose subject is
// ind, with inverse properties normalized.
func (ix *Index) SubjectObjectAssertions(ind rdf.Term) []*ObjectPropertyAssertion {
	return ix.objectSubject[ind]
}

// SubjectDataAssertions returns the data assertions whose subject is ind.
func (ix *Index) SubjectDataAssertions(ind rdf.Term) []*DataPropertyAssertion {
	return ix.dataSubject[ind]
}

// Members returns the individuals known to belong to a class expression.
// Named classes include the members of their subclasses. Expressions whose
// membership cannot be established from assertions alone (universal,
// complement and max cardinality restrictions) only yield individuals
// asserted to them directly.
func (ix *Index) Members(ce ClassExpression) []rdf.Term {
	return ix.members(ce).sorted()
}

// IsMember reports whether ind is a known member of ce.
func (ix *Index) IsMember(ce ClassExpression, ind rdf.Term) bool {
	m := ix.members(ce)
	for _, t := range ix.SameAs(ind) {
		if m.has(t) {
			return true
		}
	}
	return false
}

func (ix *Index) withSame(s termSet) termSet {
	out := make(termSet, len(s))
	for t := range s {
		for _, u := range ix.SameAs(t) {
			out.add(u)
		}
	}
	return out
}

// hasDifferent reports whether n of the values are pairwise known to be
// different. Distinct names alone do not count, since OWL makes no unique
// name assumption.
func (ix *Index) hasDifferent(values []rdf.Term, n uint) bool {
	if uint(len(values)) < n {
		return false
	}
	if n <= 1 {
		return n == 0 || len(values) > 0
	}
	var pick func(start int, chosen []rdf.Term) bool
	pick = func(start int, chosen []rdf.Term) bool {
		if uint(len(chosen)) == n {
			return true
		}
		for i := start; i < len(values); i++ {
			if uint(len(chosen))+uint(len(values)-i) < n {
				return false
			}
			ok := true
			for _, prev := range chosen {
				if !ix.AreDifferent(prev, values[i]) {
					ok = false
					break
				}
			}
			if ok && pick(i+1, append(chosen, values[i])) {
				return true
			}
		}
		return false
	}
	return pick(0, make([]rdf.Term, 0, n))
}

func (ix *Index) members(ce ClassExpression) termSet {
	out := make(termSet)
	for t := range ix.exprMembers[ce.String()] {
		out.add(t)
	}
	switch c := ce.(type) {
	case *Class:
		if c.IsThing() {
			for t := range ix.individuals {
				out.add(t)
			}
			break
		}
		for _, iri := range append([]string{c.IRI}, ix.SubClassesOf(c.IRI)...) {
			for t := range ix.classMembers[iri] {
				out.add(t)
			}
		}
	case *ObjectIntersectionOf:
		if len(c.Classes) == 0 {
			break
		}
		acc := ix.members(c.Classes[0])
		for _, next := range c.Classes[1:] {
			m := ix.members(next)
			for t := range acc {
				if !m.has(t) {
					delete(acc, t)
				}
			}
		}
		for t := range acc {
			out.add(t)
		}
	case *ObjectUnionOf:
		for _, next := range c.Classes {
			for t := range ix.members(next) {
				out.add(t)
			}
		}
	case *ObjectOneOf:
		for _, ind := range c.Individuals {
			out.add(ind.Term())
		}
	case *ObjectSomeValuesFrom:
		filler := ix.members(c.Class)
		for _, pair := range ix.ObjectPairs(c.Property) {
			if filler.has(pair.Object) {
				out.add(pair.Subject)
			}
		}
	case *ObjectHasValue:
		v := c.Individual.Term()
		for _, pair := range ix.ObjectPairs(c.Property) {
			if ix.AreSame(pair.Object, v) {
				out.add(pair.Subject)
			}
		}
	case *ObjectHasSelf:
		for _, pair := range ix.ObjectPairs(c.Property) {
			if ix.AreSame(pair.Subject, pair.Object) {
				out.add(pair.Subject)
			}
		}
	case *ObjectCardinality:
		if c.Restriction != CardinalityMin {
			break
		}
		filler := ix.members(Thing())
		if c.Class != nil {
			filler = ix.members(c.Class)
		}
		values := make(map[rdf.Term]termSet)
		for _, pair := range ix.ObjectPairs(c.Property) {
			if !filler.has(pair.Object) {
				continue
			}
			if values[pair.Subject] == nil {
				values[pair.Subject] = make(termSet)
			}
			values[pair.Subject].add(ix.find(pair.Object))
		}
		for s, vs := range values {
			if ix.hasDifferent(vs.sorted(), c.N) {
				out.add(s)
			}
		}
	case *DataSomeValuesFrom:
		for _, pair := range ix.DataAssertions(c.Property.IRI) {
			if ix.DataRangeContains(c.Range, pair.Value) {
				out.add(pair.Subject)
			}
		}
	case *DataHasValue:
		for _, pair := range ix.DataAssertions(c.Property.IRI) {
			if pair.Value.SameValue(c.Value) {
				out.add(pair.Subject)
			}
		}
	case *DataCardinality:
		if c.Restriction != CardinalityMin {
			break
		}
		values := make(map[rdf.Term][]*Literal)
		for _, pair := range ix.DataAssertions(c.Property.IRI) {
			if c.Range != nil && !ix.DataRangeContains(c.Range, pair.Value) {
				continue
			}
			if !slices.ContainsFunc(values[pair.Subject], pair.Value.SameValue) {
				values[pair.Subject] = append(values[pair.Subject], pair.Value)
			}
		}
		for s, vs := range values {
			if uint(len(vs)) >= c.N {
				out.add(s)
			}
		}
	}
	return ix.withSame(out)
}
