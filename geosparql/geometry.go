package geosparql

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/c360studio/semowl/owl"
)

// Geometry is a parsed geometry literal. Shape coordinates are always
// longitude, latitude.
type Geometry struct {
	Shape orb.Geometry
	CRS   string
}

// ParseLiteral parses a wktLiteral or gmlLiteral.
func ParseLiteral(l *owl.Literal) (Geometry, error) {
	switch l.Datatype {
	case WKTLiteral:
		return ParseWKT(l.Value)
	case GMLLiteral:
		return ParseGML(l.Value)
	}
	return Geometry{}, fmt.Errorf("%w: datatype %s is not a geometry literal", ErrMalformedGeometry, l.Datatype)
}

// ParseWKT parses a WKT literal with an optional leading <crs> IRI.
func ParseWKT(lexical string) (Geometry, error) {
	s := strings.TrimSpace(lexical)
	crs := CRS84
	if strings.HasPrefix(s, "<") {
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return Geometry{}, fmt.Errorf("%w: unterminated CRS IRI", ErrMalformedGeometry)
		}
		crs = normalizeCRS(s[1:end])
		s = strings.TrimSpace(s[end+1:])
	}
	if s == "" {
		return Geometry{}, fmt.Errorf("%w: empty WKT", ErrMalformedGeometry)
	}
	shape, err := wkt.Unmarshal(s)
	if err != nil {
		return Geometry{}, fmt.Errorf("%w: %v", ErrMalformedGeometry, err)
	}
	if crs == EPSG4326 {
		shape = swapAxes(shape)
	}
	return Geometry{Shape: shape, CRS: crs}, nil
}

// FormatWKT renders g as a WKT literal lexical form. The default CRS is
// left implicit.
func FormatWKT(g Geometry) string {
	shape := g.Shape
	if g.CRS == EPSG4326 {
		shape = swapAxes(shape)
	}
	text := wkt.MarshalString(shape)
	if g.CRS == "" || g.CRS == CRS84 {
		return text
	}
	return "<" + g.CRS + "> " + text
}

// NewWKTLiteral returns the wktLiteral of a shape in the given CRS; an
// empty crs means CRS84.
func NewWKTLiteral(shape orb.Geometry, crs string) *owl.Literal {
	return owl.NewLiteral(FormatWKT(Geometry{Shape: shape, CRS: crs}), WKTLiteral)
}

func normalizeCRS(crs string) string {
	switch strings.TrimSpace(crs) {
	case "EPSG:4326", "urn:ogc:def:crs:EPSG::4326", "urn:ogc:def:crs:EPSG:6.6:4326", EPSG4326:
		return EPSG4326
	case "", "CRS84", "urn:ogc:def:crs:OGC:1.3:CRS84", CRS84:
		return CRS84
	}
	return crs
}

func swap(p orb.Point) orb.Point { return orb.Point{p[1], p[0]} }

func swapLine(ps []orb.Point) []orb.Point {
	out := make([]orb.Point, len(ps))
	for i, p := range ps {
		out[i] = swap(p)
	}
	return out
}

func swapPolygon(p orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, r := range p {
		out[i] = orb.Ring(swapLine(r))
	}
	return out
}

// swapAxes exchanges the two coordinates of every point.
func swapAxes(g orb.Geometry) orb.Geometry {
	switch v := g.(type) {
	case orb.Point:
		return swap(v)
	case orb.MultiPoint:
		return orb.MultiPoint(swapLine(v))
	case orb.LineString:
		return orb.LineString(swapLine(v))
	case orb.Ring:
		return orb.Ring(swapLine(v))
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(v))
		for i, l := range v {
			out[i] = orb.LineString(swapLine(l))
		}
		return out
	case orb.Polygon:
		return swapPolygon(v)
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(v))
		for i, p := range v {
			out[i] = swapPolygon(p)
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(v))
		for i, sub := range v {
			out[i] = swapAxes(sub)
		}
		return out
	}
	return g
}
