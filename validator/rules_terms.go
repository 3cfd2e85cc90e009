package validator

import (
	"context"
	"sort"
	"strings"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// incompatible lists the entity kinds one IRI may not combine.
var incompatible = [][2]owl.EntityKind{
	{owl.EntityClass, owl.EntityDatatype},
	{owl.EntityObjectProperty, owl.EntityDataProperty},
	{owl.EntityObjectProperty, owl.EntityAnnotationProperty},
	{owl.EntityDataProperty, owl.EntityAnnotationProperty},
}

func entityKinds(idx *owl.Index) (map[string]map[owl.EntityKind]bool, []string) {
	kinds := make(map[string]map[owl.EntityKind]bool)
	for _, e := range idx.Ontology().Entities() {
		iri := e.EntityIRI()
		if kinds[iri] == nil {
			kinds[iri] = make(map[owl.EntityKind]bool)
		}
		kinds[iri][e.EntityKind()] = true
	}
	iris := make([]string, 0, len(kinds))
	for iri := range kinds {
		iris = append(iris, iri)
	}
	sort.Strings(iris)
	return kinds, iris
}

func termDisjointness(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleTermDisjointness)
	kinds, iris := entityKinds(idx)
	for _, iri := range iris {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, pair := range incompatible {
			if kinds[iri][pair[0]] && kinds[iri][pair[1]] {
				rep.Errorf("Use separate IRIs for the two entities.",
					"%s is used both as %s and as %s", angle(iri), pair[0], pair[1])
			}
		}
	}
	return rep.Issues(), nil
}

// builtInVocabulary reports whether iri belongs to a namespace whose terms
// need no declaration.
func builtInVocabulary(iri string) bool {
	for _, ns := range []string{rdf.OWL, rdf.RDF, rdf.RDFS, rdf.XSD} {
		if strings.HasPrefix(iri, ns) {
			return true
		}
	}
	return false
}

func termDeclaration(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleTermDeclaration)
	for _, e := range idx.Ontology().Entities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iri, kind := e.EntityIRI(), e.EntityKind()
		if builtInVocabulary(iri) || idx.IsDeclared(iri, kind) {
			continue
		}
		rep.Warnf("Add Declaration("+string(kind)+"("+angle(iri)+")).",
			"%s %s is used but not declared", kind, angle(iri))
	}
	return rep.Issues(), nil
}

func topBottom(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RuleTopBottom)
	nothing := owl.Nothing()
	for _, m := range idx.Members(nothing) {
		rep.Errorf("Remove the assertions that make it a member of owl:Nothing or one of its subclasses.",
			"%s is an instance of owl:Nothing", m)
	}
	for _, c := range idx.SubClassesOf(owl.NothingIRI) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(idx.Members(owl.NewClass(c))) == 0 {
			rep.Warnf("Check the axioms that make the class equivalent to owl:Nothing.",
				"class %s is unsatisfiable", angle(c))
		}
	}
	for _, ax := range owl.AxiomsOf[*owl.SubClassOf](idx.Ontology()) {
		if sub, ok := owl.AsNamedClass(ax.Sub); ok && sub.IsThing() {
			if super, ok := owl.AsNamedClass(ax.Super); ok && super.IsThing() {
				continue
			}
			rep.Warnf("Reverse the axiom or drop it.",
				"owl:Thing is a subclass of %s, so every individual is an instance of it", ax.Super)
		}
	}
	for _, pair := range idx.AssertedObjectPairs(owl.BottomObjectPropIRI) {
		rep.Errorf("Remove the assertion.",
			"%s is related to %s by owl:bottomObjectProperty", pair.Subject, pair.Object)
	}
	for _, pair := range idx.AssertedDataPairs(owl.BottomDataPropertyIRI) {
		rep.Errorf("Remove the assertion.",
			"%s has value %s for owl:bottomDataProperty", pair.Subject, pair.Value)
	}
	return rep.Issues(), nil
}

// nonSimple returns the object properties that are transitive, the
// super-property of a chain, or above or inverse to such a property.
func nonSimple(idx *owl.Index) map[string]bool {
	out := make(map[string]bool)
	var queue []string
	mark := func(p string) {
		if !out[p] {
			out[p] = true
			queue = append(queue, p)
		}
	}
	for _, p := range idx.PropertiesWith(owl.KindTransitiveObjectProperty) {
		mark(p)
	}
	for _, ax := range owl.AxiomsOf[*owl.SubObjectPropertyOf](idx.Ontology()) {
		if len(ax.Chain) > 0 {
			mark(ax.Super.Named().IRI)
		}
	}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, s := range idx.SuperPropertiesOf(p) {
			mark(s)
		}
		for _, inv := range idx.InversesOf(p) {
			mark(inv)
		}
	}
	return out
}

// simpleOnly lists the characteristics that require a simple property.
var simpleOnly = []owl.AxiomKind{
	owl.KindFunctionalObjectProperty,
	owl.KindInverseFunctionalObjectProperty,
	owl.KindIrreflexiveObjectProperty,
	owl.KindAsymmetricObjectProperty,
}

func propertyChain(ctx context.Context, idx *owl.Index) ([]Issue, error) {
	rep := NewReporter(RulePropertyChain)
	composite := nonSimple(idx)
	if len(composite) == 0 {
		return nil, nil
	}
	const suggestion = "Transitive properties and chain super-properties may not carry this restriction; use a simple sub-property instead."
	for _, kind := range simpleOnly {
		for _, p := range idx.PropertiesWith(kind) {
			if composite[p] {
				rep.Errorf(suggestion, "non-simple property %s is declared %s", angle(p), kind)
			}
		}
	}
	for _, ax := range idx.Ontology().Axioms() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if d, ok := ax.(*owl.DisjointObjectProperties); ok {
			for _, p := range d.Properties {
				if composite[p.Named().IRI] {
					rep.Errorf(suggestion, "non-simple property %s is used in %s", angle(p.Named().IRI), d.Kind())
				}
			}
		}
		owl.WalkAxiom(ax, func(e owl.Expression) {
			switch ce := e.(type) {
			case *owl.ObjectCardinality:
				if composite[ce.Property.Named().IRI] {
					rep.Errorf(suggestion, "non-simple property %s is used in %s", angle(ce.Property.Named().IRI), ce.Name())
				}
			case *owl.ObjectHasSelf:
				if composite[ce.Property.Named().IRI] {
					rep.Errorf(suggestion, "non-simple property %s is used in ObjectHasSelf", angle(ce.Property.Named().IRI))
				}
			}
		})
	}
	return rep.Issues(), nil
}
