// Package geosparql adds the GeoSPARQL vocabulary: features with WKT or
// GML geometries, distance and topology queries, and reasoner and
// validator rules for the simple-features relations.
//
// Geometry literals are parsed into github.com/paulmach/orb shapes.
// Coordinates are longitude, latitude (CRS84) unless the literal names
// EPSG:4326, whose axis order is latitude, longitude.
package geosparql
