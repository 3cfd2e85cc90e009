package geosparql

import (
	"context"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
	"github.com/c360studio/semowl/validator"
)

// Validator rule names.
const (
	RuleGeometryLiteral = "GEO:GeometryLiteral"
	RuleFeatureGeometry = "GEO:FeatureGeometry"
	RuleDefaultGeometry = "GEO:DefaultGeometry"
)

// ValidatorRules returns the GeoSPARQL integrity checks.
func ValidatorRules() []validator.Rule {
	return []validator.Rule{
		validator.NewRule(RuleGeometryLiteral, geometryLiteral),
		validator.NewRule(RuleFeatureGeometry, featureGeometry),
		validator.NewRule(RuleDefaultGeometry, defaultGeometry),
	}
}

// geometryLiteral reports serializations that do not parse or carry the
// wrong datatype.
func geometryLiteral(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleGeometryLiteral)
	for _, prop := range []struct{ iri, datatype string }{{AsWKT, WKTLiteral}, {AsGML, GMLLiteral}} {
		for _, pair := range idx.DataAssertions(prop.iri) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if pair.Value.Datatype != prop.datatype {
				rep.Errorf("Type the literal as "+rdf.IRI(prop.datatype).String()+".",
					"geometry %s has a %s value typed %s", pair.Subject, rdf.IRI(prop.iri), rdf.IRI(pair.Value.Datatype))
				continue
			}
			if _, err := ParseLiteral(pair.Value); err != nil {
				rep.Errorf("Fix the geometry serialization.",
					"geometry %s cannot be read: %v", pair.Subject, err)
			}
		}
	}
	return rep.Issues(), nil
}

// featureGeometry warns about features without any geometry.
func featureGeometry(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleFeatureGeometry)
	for _, f := range idx.Members(owl.NewClass(ClassFeature)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(geometryTerms(idx, f)) == 0 && len(literals(idx, f)) == 0 {
			rep.Warnf("Attach a geometry with geo:hasDefaultGeometry.",
				"feature %s has no geometry", f)
		}
	}
	return rep.Issues(), nil
}

// defaultGeometry reports features with more than one default geometry.
func defaultGeometry(ctx context.Context, idx *owl.Index) ([]validator.Issue, error) {
	rep := validator.NewReporter(RuleDefaultGeometry)
	counts := make(map[rdf.Term]map[rdf.Term]bool)
	var order []rdf.Term
	for _, pair := range idx.AssertedObjectPairs(HasDefaultGeometry) {
		f := idx.SameAs(pair.Subject)[0]
		if counts[f] == nil {
			counts[f] = make(map[rdf.Term]bool)
			order = append(order, f)
		}
		counts[f][idx.SameAs(pair.Object)[0]] = true
	}
	owl.SortTerms(order)
	for _, f := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if n := len(counts[f]); n > 1 {
			rep.Errorf("Keep one default geometry and link the others with geo:hasGeometry.",
				"feature %s has %d default geometries", f, n)
		}
	}
	return rep.Issues(), nil
}
