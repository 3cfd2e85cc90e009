package geosparql

import (
	"fmt"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

func iris(ts []rdf.Term) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		if t.IsIRI() {
			out = append(out, t.Value)
		}
	}
	return out
}

// Features returns every individual typed as a feature or carrying a
// geometry.
func Features(idx *owl.Index) []string {
	set := make(map[rdf.Term]bool)
	for _, t := range idx.Members(owl.NewClass(ClassFeature)) {
		set[t] = true
	}
	for _, pair := range idx.ObjectAssertions(HasGeometry) {
		set[pair.Subject] = true
	}
	for _, pair := range idx.ObjectAssertions(HasDefaultGeometry) {
		set[pair.Subject] = true
	}
	ts := make([]rdf.Term, 0, len(set))
	for t := range set {
		ts = append(ts, t)
	}
	owl.SortTerms(ts)
	return iris(ts)
}

// geometryTerms returns the geometries of a feature, default ones first.
func geometryTerms(idx *owl.Index, feature rdf.Term) []rdf.Term {
	defaults := idx.ObjectValues(owl.NewObjectProperty(HasDefaultGeometry), feature)
	out := append([]rdf.Term(nil), defaults...)
	seen := make(map[rdf.Term]bool, len(defaults))
	for _, t := range defaults {
		seen[t] = true
	}
	for _, t := range idx.ObjectValues(owl.NewObjectProperty(HasGeometry), feature) {
		if !seen[t] {
			out = append(out, t)
		}
	}
	return out
}

// GeometriesOf returns the geometry individuals of a feature, default
// geometries first.
func GeometriesOf(idx *owl.Index, feature string) []string {
	return iris(geometryTerms(idx, rdf.IRI(feature)))
}

func literals(idx *owl.Index, t rdf.Term) []*owl.Literal {
	return append(idx.DataValues(AsWKT, t), idx.DataValues(AsGML, t)...)
}

func geometryOf(idx *owl.Index, t rdf.Term) (Geometry, error) {
	candidates := append([]rdf.Term{t}, geometryTerms(idx, t)...)
	var firstErr error
	for _, c := range candidates {
		for _, l := range literals(idx, c) {
			g, err := ParseLiteral(l)
			if err == nil {
				return g, nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return Geometry{}, fmt.Errorf("geometry of %s: %w", t, firstErr)
	}
	return Geometry{}, fmt.Errorf("%s: %w", t, ErrNoGeometry)
}

// GeometryOf returns the geometry of a feature or geometry individual,
// preferring its own serialization, then its default geometry.
func GeometryOf(idx *owl.Index, iri string) (Geometry, error) {
	return geometryOf(idx, rdf.IRI(iri))
}

func pair(idx *owl.Index, a, b string) (Geometry, Geometry, error) {
	ga, err := GeometryOf(idx, a)
	if err != nil {
		return Geometry{}, Geometry{}, err
	}
	gb, err := GeometryOf(idx, b)
	if err != nil {
		return Geometry{}, Geometry{}, err
	}
	return ga, gb, nil
}

// Distance returns the distance between two features in unit, measured
// between centroids on the sphere.
func Distance(idx *owl.Index, a, b, unit string) (float64, error) {
	ga, gb, err := pair(idx, a, b)
	if err != nil {
		return 0, err
	}
	return ConvertDistance(DistanceMetres(ga.Shape, gb.Shape), unit)
}

// WithinDistance returns the other features no farther from feature than
// d in unit.
func WithinDistance(idx *owl.Index, feature string, d float64, unit string) ([]string, error) {
	limit, err := ToMetres(d, unit)
	if err != nil {
		return nil, err
	}
	origin, err := GeometryOf(idx, feature)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range Features(idx) {
		if f == feature {
			continue
		}
		g, err := GeometryOf(idx, f)
		if err != nil {
			continue
		}
		if DistanceMetres(origin.Shape, g.Shape) <= limit {
			out = append(out, f)
		}
	}
	return out, nil
}

// FeatureContains reports whether feature a contains feature b.
func FeatureContains(idx *owl.Index, a, b string) (bool, error) {
	ga, gb, err := pair(idx, a, b)
	if err != nil {
		return false, err
	}
	return Contains(ga.Shape, gb.Shape), nil
}

// FeatureWithin reports whether feature a lies within feature b.
func FeatureWithin(idx *owl.Index, a, b string) (bool, error) {
	return FeatureContains(idx, b, a)
}

// FeatureIntersects reports whether two features share a point.
func FeatureIntersects(idx *owl.Index, a, b string) (bool, error) {
	ga, gb, err := pair(idx, a, b)
	if err != nil {
		return false, err
	}
	return Intersects(ga.Shape, gb.Shape), nil
}
