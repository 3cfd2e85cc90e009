package geosparql

import (
	"context"
	"errors"
	"testing"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
	"github.com/c360studio/semowl/reasoner"
	"github.com/c360studio/semowl/validator"
)

const ex = "http://example.org/city#"

const (
	park  = ex + "park"
	pond  = ex + "pond"
	kiosk = ex + "kiosk"
	road  = ex + "road"
	farm  = ex + "farm"
)

func square(x0, y0, x1, y1 float64) orb.Polygon {
	return orb.Polygon{{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}}
}

// city places a pond and a kiosk inside a park, a road across the park and
// a farm far away.
func city() *owl.Ontology {
	o := owl.NewOntology("http://example.org/city")
	DeclareVocabulary(o)
	DeclareFeature(o, park, NewWKTLiteral(square(0, 0, 10, 10), ""))
	DeclareFeature(o, pond, NewWKTLiteral(square(2, 2, 4, 4), ""))
	DeclareFeature(o, kiosk, NewWKTLiteral(orb.Point{3, 3}, ""))
	DeclareFeature(o, road, NewWKTLiteral(orb.LineString{{-5, 5}, {15, 5}}, ""))
	DeclareFeature(o, farm, NewWKTLiteral(square(20, 20, 30, 30), EPSG4326))
	return o
}

func assertion(p, s, o string) string {
	return owl.NewObjectPropertyAssertion(owl.NewObjectProperty(p), owl.NewIndividual(s), owl.NewIndividual(o)).String()
}

func TestSpatialPredicates(t *testing.T) {
	parkShape := square(0, 0, 10, 10)
	pondShape := square(2, 2, 4, 4)
	roadShape := orb.LineString{{-5, 5}, {15, 5}}
	// L-shaped polygon whose notch is outside.
	ell := orb.Polygon{{{0, 0}, {10, 0}, {10, 2}, {2, 2}, {2, 10}, {0, 10}, {0, 0}}}

	tests := []struct {
		name       string
		a, b       orb.Geometry
		contains   bool
		intersects bool
	}{
		{name: "polygon inside polygon", a: parkShape, b: pondShape, contains: true, intersects: true},
		{name: "polygon around polygon", a: pondShape, b: parkShape, intersects: true},
		{name: "line across polygon", a: parkShape, b: roadShape, intersects: true},
		{name: "point on boundary", a: parkShape, b: orb.Point{0, 5}, contains: true, intersects: true},
		{name: "point outside", a: parkShape, b: orb.Point{11, 5}},
		{name: "disjoint polygons", a: parkShape, b: square(20, 20, 30, 30)},
		{name: "chord through concave notch", a: ell, b: orb.LineString{{1, 9}, {9, 1}}, intersects: true},
		{name: "touching corners", a: square(0, 0, 1, 1), b: square(1, 1, 2, 2), intersects: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.contains, Contains(tt.a, tt.b), "contains")
			assert.Equal(t, tt.contains, Within(tt.b, tt.a), "within")
			assert.Equal(t, tt.intersects, Intersects(tt.a, tt.b), "intersects")
			assert.Equal(t, tt.intersects, Intersects(tt.b, tt.a), "intersects reversed")
		})
	}
}

func TestDistances(t *testing.T) {
	d := DistanceMetres(orb.Point{0, 0}, orb.Point{0, 1})
	assert.InEpsilon(t, 111_200, d, 0.01)

	deg, err := ConvertDistance(d, UnitDegree)
	require.NoError(t, err)
	assert.InDelta(t, 1, deg, 1e-9)

	km, err := ConvertDistance(2500, UnitKilometre)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, km, 1e-12)

	m, err := ToMetres(2.5, UnitKilometre)
	require.NoError(t, err)
	assert.InDelta(t, 2500, m, 1e-9)

	_, err = ConvertDistance(1, UnitNamespace+"furlong")
	assert.True(t, errors.Is(err, ErrUnknownUnit))

	c := Centroid(square(0, 0, 10, 10))
	assert.InDelta(t, 5, c[0], 1e-9)
	assert.InDelta(t, 5, c[1], 1e-9)
	assert.Equal(t, orb.Bound{Min: orb.Point{-5, 5}, Max: orb.Point{15, 5}}, BoundingBox(orb.LineString{{-5, 5}, {15, 5}}))
}

func TestQueries(t *testing.T) {
	idx := owl.NewIndex(city())

	assert.Equal(t, []string{farm, kiosk, park, pond, road}, Features(idx))
	assert.Equal(t, []string{park + "-geometry"}, GeometriesOf(idx, park))

	g, err := GeometryOf(idx, farm)
	require.NoError(t, err)
	assert.Equal(t, EPSG4326, g.CRS)
	assert.Equal(t, square(20, 20, 30, 30), g.Shape)

	g, err = GeometryOf(idx, pond+"-geometry")
	require.NoError(t, err)
	assert.Equal(t, square(2, 2, 4, 4), g.Shape)

	_, err = GeometryOf(idx, ex+"nowhere")
	assert.True(t, errors.Is(err, ErrNoGeometry))

	ok, err := FeatureContains(idx, park, pond)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = FeatureWithin(idx, park, pond)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = FeatureIntersects(idx, road, park)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = FeatureIntersects(idx, road, pond)
	require.NoError(t, err)
	assert.False(t, ok)

	d, err := Distance(idx, kiosk, pond, UnitMetre)
	require.NoError(t, err)
	assert.InDelta(t, 0, d, 1e-6)
	d, err = Distance(idx, kiosk, park, UnitKilometre)
	require.NoError(t, err)
	assert.InDelta(t, 314, d, 3)

	near, err := WithinDistance(idx, kiosk, 100, UnitKilometre)
	require.NoError(t, err)
	assert.Equal(t, []string{pond}, near)

	_, err = WithinDistance(idx, kiosk, 1, "miles")
	assert.True(t, errors.Is(err, ErrUnknownUnit))
}

func TestAddGeometryKeepsDefaultFirst(t *testing.T) {
	o := city()
	AddGeometry(o, park, ex+"park-outline", NewWKTLiteral(orb.LineString{{0, 0}, {10, 0}}, ""), false)
	idx := owl.NewIndex(o)
	assert.Equal(t, []string{park + "-geometry", ex + "park-outline"}, GeometriesOf(idx, park))

	g, err := GeometryOf(idx, park)
	require.NoError(t, err)
	assert.Equal(t, square(0, 0, 10, 10), g.Shape)
}

func applyRule(t *testing.T, name string, o *owl.Ontology) map[string]bool {
	t.Helper()
	for _, rule := range ReasonerRules() {
		if rule.Name() != name {
			continue
		}
		axs, err := rule.Apply(context.Background(), owl.NewIndex(o))
		require.NoError(t, err)
		got := make(map[string]bool, len(axs))
		for _, ax := range axs {
			got[ax.String()] = true
		}
		return got
	}
	t.Fatalf("no rule %q", name)
	return nil
}

func TestReasonerRules(t *testing.T) {
	t.Run("contains within mirror", func(t *testing.T) {
		o := owl.NewOntology("http://example.org/regions")
		DeclareVocabulary(o)
		o.AddAxiom(owl.NewObjectPropertyAssertion(owl.NewObjectProperty(SfContains),
			owl.NewIndividual(ex+"county"), owl.NewIndividual(ex+"town")))
		o.AddAxiom(owl.NewObjectPropertyAssertion(owl.NewObjectProperty(SfWithin),
			owl.NewIndividual(ex+"village"), owl.NewIndividual(ex+"county")))
		got := applyRule(t, RuleContainsWithin, o)
		assert.True(t, got[assertion(SfWithin, ex+"town", ex+"county")])
		assert.True(t, got[assertion(SfContains, ex+"county", ex+"village")])
		assert.Len(t, got, 2)
	})

	t.Run("topology from geometries", func(t *testing.T) {
		got := applyRule(t, RuleTopology, city())
		assert.True(t, got[assertion(SfContains, park, pond)])
		assert.True(t, got[assertion(SfWithin, pond, park)])
		assert.True(t, got[assertion(SfContains, pond, kiosk)])
		assert.True(t, got[assertion(SfContains, park, kiosk)])
		assert.True(t, got[assertion(SfIntersects, park, road)])
		assert.True(t, got[assertion(SfIntersects, road, park)])
		assert.False(t, got[assertion(SfContains, park, road)])
		assert.False(t, got[assertion(SfIntersects, road, pond)])
		assert.False(t, got[assertion(SfIntersects, park, farm)])
	})
}

func TestReasonerMaterializesTopology(t *testing.T) {
	r, err := reasoner.New(reasoner.WithRules(ReasonerRules()...))
	require.NoError(t, err)

	o := city()
	report, err := r.Apply(context.Background(), o)
	require.NoError(t, err)
	assert.True(t, report.Fixpoint)
	assert.True(t, o.ContainsKey(assertion(SfWithin, kiosk, park)))
	assert.True(t, o.ContainsKey(assertion(SfIntersects, pond, park)))
}

func TestValidatorRules(t *testing.T) {
	tests := []struct {
		name     string
		build    func(o *owl.Ontology)
		rule     string
		errors   int
		warnings int
	}{
		{
			name: "unreadable wkt",
			build: func(o *owl.Ontology) {
				AddGeometry(o, ex+"bad", ex+"bad-geometry", owl.NewLiteral("POINT(", WKTLiteral), true)
			},
			rule:   RuleGeometryLiteral,
			errors: 1,
		},
		{
			name: "wkt typed as string",
			build: func(o *owl.Ontology) {
				o.AddAxiom(owl.NewDataPropertyAssertion(owl.NewDataProperty(AsWKT),
					owl.NewIndividual(ex+"plain"), owl.NewLiteral("POINT(1 2)", rdf.XSDString)))
			},
			rule:   RuleGeometryLiteral,
			errors: 1,
		},
		{
			name: "readable gml",
			build: func(o *owl.Ontology) {
				l, err := NewGMLLiteral(orb.Point{1, 2}, "")
				if err != nil {
					panic(err)
				}
				AddGeometry(o, ex+"well", ex+"well-geometry", l, true)
			},
			rule: RuleGeometryLiteral,
		},
		{
			name: "feature without geometry",
			build: func(o *owl.Ontology) {
				o.AddAxiom(owl.NewClassAssertion(owl.NewClass(ClassFeature), owl.NewIndividual(ex+"ghost")))
			},
			rule:     RuleFeatureGeometry,
			warnings: 1,
		},
		{
			name: "two default geometries",
			build: func(o *owl.Ontology) {
				AddGeometry(o, park, ex+"park-alt", NewWKTLiteral(square(0, 0, 9, 9), ""), true)
			},
			rule:   RuleDefaultGeometry,
			errors: 1,
		},
		{
			name: "extra non-default geometry",
			build: func(o *owl.Ontology) {
				AddGeometry(o, park, ex+"park-alt", NewWKTLiteral(square(0, 0, 9, 9), ""), false)
			},
			rule: RuleDefaultGeometry,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := city()
			tt.build(o)
			v, err := validator.New(validator.WithRules(ValidatorRules()...), validator.WithSelection(tt.rule))
			require.NoError(t, err)
			report, err := v.Validate(context.Background(), o)
			require.NoError(t, err)
			assert.Equal(t, tt.errors, report.Errors(), "issues: %v", report.Issues)
			assert.Equal(t, tt.warnings, report.Warnings(), "issues: %v", report.Issues)
		})
	}
}

func TestCleanCityIsValid(t *testing.T) {
	v, err := validator.New(validator.WithRules(ValidatorRules()...))
	require.NoError(t, err)
	report, err := v.Validate(context.Background(), city())
	require.NoError(t, err)
	assert.True(t, report.Valid(), "issues: %v", report.Issues)
}

func TestPredicatesRegistered(t *testing.T) {
	predicates := []struct {
		name string
		iri  string
	}{
		{PredicateGeometry, HasGeometry},
		{PredicateDefaultGeometry, HasDefaultGeometry},
		{PredicateWKT, AsWKT},
		{PredicateGML, AsGML},
		{PredicateContains, SfContains},
		{PredicateWithin, SfWithin},
		{PredicateIntersects, SfIntersects},
	}
	for _, p := range predicates {
		meta := vocabulary.GetPredicateMetadata(p.name)
		if meta == nil {
			t.Errorf("predicate %s not registered", p.name)
			continue
		}
		assert.Equal(t, p.iri, meta.StandardIRI, p.name)
	}
}
