package geosparql

import "github.com/c360studio/semstreams/vocabulary"

// Feature and geometry predicates.
const (
	// PredicateGeometry links a feature to one of its geometries.
	PredicateGeometry = "geo.feature.geometry"

	// PredicateDefaultGeometry links a feature to the geometry used for
	// spatial calculations.
	PredicateDefaultGeometry = "geo.feature.default_geometry"

	// PredicateWKT is the WKT serialization of a geometry.
	PredicateWKT = "geo.geometry.wkt"

	// PredicateGML is the GML serialization of a geometry.
	PredicateGML = "geo.geometry.gml"
)

// Topology predicates.
const (
	PredicateContains   = "geo.topology.contains"
	PredicateWithin     = "geo.topology.within"
	PredicateIntersects = "geo.topology.intersects"
)

func init() {
	vocabulary.Register(PredicateGeometry,
		vocabulary.WithDescription("Geometry of a feature"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(HasGeometry))

	vocabulary.Register(PredicateDefaultGeometry,
		vocabulary.WithDescription("Default geometry of a feature"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(HasDefaultGeometry))

	vocabulary.Register(PredicateWKT,
		vocabulary.WithDescription("Well-known text serialization"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(AsWKT))

	vocabulary.Register(PredicateGML,
		vocabulary.WithDescription("GML serialization"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(AsGML))

	vocabulary.Register(PredicateContains,
		vocabulary.WithDescription("Spatial object lying inside this one"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SfContains))

	vocabulary.Register(PredicateWithin,
		vocabulary.WithDescription("Spatial object this one lies inside"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SfWithin))

	vocabulary.Register(PredicateIntersects,
		vocabulary.WithDescription("Spatial object sharing a point with this one"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SfIntersects))
}

// PredicateNames lists the registry names of the spatial predicates.
func PredicateNames() []string {
	return []string{
		PredicateGeometry, PredicateDefaultGeometry, PredicateWKT, PredicateGML,
		PredicateContains, PredicateWithin, PredicateIntersects,
	}
}
