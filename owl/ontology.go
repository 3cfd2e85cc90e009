package owl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/semowl/rdf"
)

// Prefix binds a short name to a namespace IRI.
type Prefix struct {
	Name string
	IRI  string
}

// DefaultPrefixes are declared on every new ontology.
func DefaultPrefixes() []Prefix {
	return []Prefix{
		{Name: "owl", IRI: rdf.OWL},
		{Name: "rdf", IRI: rdf.RDF},
		{Name: "rdfs", IRI: rdf.RDFS},
		{Name: "xsd", IRI: rdf.XSD},
		{Name: "xml", IRI: "http://www.w3.org/XML/1998/namespace"},
		{Name: "swrlb", IRI: rdf.SWRLB},
	}
}

// Ontology is an ordered, duplicate-free set of axioms plus ontology-level
// metadata and SWRL rules. It is not safe for concurrent mutation; the
// reasoner and validator only read it.
type Ontology struct {
	IRI         string
	VersionIRI  string
	Prefixes    []Prefix
	Imports     []string
	Annotations []Annotation

	axioms []Axiom
	keys   map[string]int
	rules  []*Rule
	ruleIx map[string]bool
}

// NewOntology creates an empty ontology with the default prefixes.
func NewOntology(iri string) *Ontology {
	return &Ontology{
		IRI:      iri,
		Prefixes: DefaultPrefixes(),
		keys:     make(map[string]int),
		ruleIx:   make(map[string]bool),
	}
}

func (o *Ontology) init() {
	if o.keys == nil {
		o.keys = make(map[string]int)
	}
	if o.ruleIx == nil {
		o.ruleIx = make(map[string]bool)
	}
}

// AddPrefix declares or rebinds a prefix.
func (o *Ontology) AddPrefix(name, iri string) {
	for i, p := range o.Prefixes {
		if p.Name == name {
			o.Prefixes[i].IRI = iri
			return
		}
	}
	o.Prefixes = append(o.Prefixes, Prefix{Name: name, IRI: iri})
}

// ExpandIRI resolves a prefixed name such as "ex:Person".
func (o *Ontology) ExpandIRI(abbreviated string) (string, error) {
	name, local, ok := strings.Cut(abbreviated, ":")
	if !ok {
		return "", fmt.Errorf("%q is not a prefixed name", abbreviated)
	}
	for _, p := range o.Prefixes {
		if p.Name == name {
			return p.IRI + local, nil
		}
	}
	return "", fmt.Errorf("undeclared prefix %q", name)
}

// AddAxiom appends an axiom and reports whether it was not already present.
func (o *Ontology) AddAxiom(ax Axiom) bool {
	o.init()
	key := ax.String()
	if _, ok := o.keys[key]; ok {
		return false
	}
	o.keys[key] = len(o.axioms)
	o.axioms = append(o.axioms, ax)
	return true
}

// AddAxioms adds several axioms and returns how many were new.
func (o *Ontology) AddAxioms(axioms ...Axiom) int {
	added := 0
	for _, ax := range axioms {
		if o.AddAxiom(ax) {
			added++
		}
	}
	return added
}

// Declare adds a Declaration axiom for e.
func (o *Ontology) Declare(e Entity) bool {
	return o.AddAxiom(Declare(e))
}

// RemoveAxiom removes the axiom with the same identity as ax.
func (o *Ontology) RemoveAxiom(ax Axiom) bool {
	o.init()
	i, ok := o.keys[ax.String()]
	if !ok {
		return false
	}
	o.axioms = append(o.axioms[:i], o.axioms[i+1:]...)
	o.keys = make(map[string]int, len(o.axioms))
	for j, a := range o.axioms {
		o.keys[a.String()] = j
	}
	return true
}

// ContainsAxiom reports whether an axiom with the same identity is present.
func (o *Ontology) ContainsAxiom(ax Axiom) bool {
	_, ok := o.keys[ax.String()]
	return ok
}

// ContainsKey reports whether an axiom with the given rendering is present.
func (o *Ontology) ContainsKey(key string) bool {
	_, ok := o.keys[key]
	return ok
}

// Axioms returns the axioms in insertion order.
func (o *Ontology) Axioms() []Axiom {
	out := make([]Axiom, len(o.axioms))
	copy(out, o.axioms)
	return out
}

// Len returns the number of axioms.
func (o *Ontology) Len() int { return len(o.axioms) }

// AxiomsOf returns the axioms of the given Go type, e.g.
// AxiomsOf[*owl.SubClassOf](o).
func AxiomsOf[T Axiom](o *Ontology) []T {
	var out []T
	for _, ax := range o.axioms {
		if t, ok := ax.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// AxiomsOfKind returns the axioms with the given kind.
func (o *Ontology) AxiomsOfKind(kind AxiomKind) []Axiom {
	var out []Axiom
	for _, ax := range o.axioms {
		if ax.Kind() == kind {
			out = append(out, ax)
		}
	}
	return out
}

// InferredAxioms returns the axioms flagged as inferred.
func (o *Ontology) InferredAxioms() []Axiom {
	var out []Axiom
	for _, ax := range o.axioms {
		if ax.IsInferred() {
			out = append(out, ax)
		}
	}
	return out
}

// AddRule appends a SWRL rule and reports whether it was not already present.
func (o *Ontology) AddRule(r *Rule) bool {
	o.init()
	key := r.String()
	if o.ruleIx[key] {
		return false
	}
	o.ruleIx[key] = true
	o.rules = append(o.rules, r)
	return true
}

// Rules returns the SWRL rules in insertion order.
func (o *Ontology) Rules() []*Rule {
	out := make([]*Rule, len(o.rules))
	copy(out, o.rules)
	return out
}

// Clone returns a copy sharing the (immutable) axiom and rule values.
func (o *Ontology) Clone() *Ontology {
	c := NewOntology(o.IRI)
	c.VersionIRI = o.VersionIRI
	c.Prefixes = append([]Prefix(nil), o.Prefixes...)
	c.Imports = append([]string(nil), o.Imports...)
	c.Annotations = append([]Annotation(nil), o.Annotations...)
	c.axioms = make([]Axiom, len(o.axioms))
	copy(c.axioms, o.axioms)
	for k, v := range o.keys {
		c.keys[k] = v
	}
	for _, r := range o.rules {
		c.AddRule(r)
	}
	return c
}

// Merge adds the axioms, rules and prefixes of other, as done when
// resolving an import. It returns the number of new axioms.
func (o *Ontology) Merge(other *Ontology) int {
	for _, p := range other.Prefixes {
		found := false
		for _, q := range o.Prefixes {
			if q.Name == p.Name {
				found = true
				break
			}
		}
		if !found {
			o.Prefixes = append(o.Prefixes, p)
		}
	}
	for _, r := range other.rules {
		o.AddRule(r)
	}
	return o.AddAxioms(other.axioms...)
}

// Entities returns every entity mentioned by the axioms, sorted by kind
// and IRI.
func (o *Ontology) Entities() []Entity {
	seen := make(map[string]Entity)
	for _, ax := range o.axioms {
		WalkAxiom(ax, func(e Expression) {
			if ent, ok := e.(Entity); ok {
				seen[string(ent.EntityKind())+" "+ent.EntityIRI()] = ent
			}
		})
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Entity, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}
