package geosparql

// Namespaces.
const (
	Namespace         = "http://www.opengis.net/ont/geosparql#"
	FunctionNamespace = "http://www.opengis.net/def/function/geosparql/"
	UnitNamespace     = "http://www.opengis.net/def/uom/OGC/1.0/"
)

// Class IRIs.
const (
	ClassSpatialObject = Namespace + "SpatialObject"
	ClassFeature       = Namespace + "Feature"
	ClassGeometry      = Namespace + "Geometry"
)

// Property IRIs.
const (
	HasGeometry        = Namespace + "hasGeometry"
	HasDefaultGeometry = Namespace + "hasDefaultGeometry"
	AsWKT              = Namespace + "asWKT"
	AsGML              = Namespace + "asGML"
)

// Simple-features topology property IRIs.
const (
	SfContains   = Namespace + "sfContains"
	SfWithin     = Namespace + "sfWithin"
	SfIntersects = Namespace + "sfIntersects"
)

// Literal datatypes.
const (
	WKTLiteral = Namespace + "wktLiteral"
	GMLLiteral = Namespace + "gmlLiteral"
)

// Coordinate reference systems.
const (
	CRS84    = "http://www.opengis.net/def/crs/OGC/1.3/CRS84"
	EPSG4326 = "http://www.opengis.net/def/crs/EPSG/0/4326"
)

// Distance function and units.
const (
	FunctionDistance = FunctionNamespace + "distance"

	UnitMetre     = UnitNamespace + "metre"
	UnitKilometre = UnitNamespace + "kilometre"
	UnitDegree    = UnitNamespace + "degree"
)
