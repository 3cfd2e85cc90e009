package geosparql

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Centroid returns the planar centroid of a shape.
func Centroid(g orb.Geometry) orb.Point {
	c, _ := planar.CentroidArea(g)
	return c
}

// BoundingBox returns the extent of a shape.
func BoundingBox(g orb.Geometry) orb.Bound { return g.Bound() }

// DistanceMetres returns the haversine distance between the centroids of
// two shapes.
func DistanceMetres(a, b orb.Geometry) float64 {
	return geo.DistanceHaversine(Centroid(a), Centroid(b))
}

// metresPerDegree is the length of one degree of arc on the earth model.
var metresPerDegree = orb.EarthRadius * math.Pi / 180

// ConvertDistance expresses a distance in metres in an OGC unit.
func ConvertDistance(metres float64, unit string) (float64, error) {
	switch unit {
	case UnitMetre, "":
		return metres, nil
	case UnitKilometre:
		return metres / 1000, nil
	case UnitDegree:
		return metres / metresPerDegree, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, unit)
}

// ToMetres converts a distance in an OGC unit to metres.
func ToMetres(d float64, unit string) (float64, error) {
	one, err := ConvertDistance(1, unit)
	if err != nil {
		return 0, err
	}
	return d / one, nil
}

const epsilon = 1e-12

func polygons(g orb.Geometry) []orb.Polygon {
	switch v := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{v}
	case orb.MultiPolygon:
		return v
	case orb.Ring:
		return []orb.Polygon{{v}}
	case orb.Bound:
		return []orb.Polygon{v.ToPolygon()}
	case orb.Collection:
		var out []orb.Polygon
		for _, sub := range v {
			out = append(out, polygons(sub)...)
		}
		return out
	}
	return nil
}

func vertices(g orb.Geometry) []orb.Point {
	switch v := g.(type) {
	case orb.Point:
		return []orb.Point{v}
	case orb.MultiPoint:
		return v
	case orb.LineString:
		return v
	case orb.Ring:
		return v
	case orb.MultiLineString:
		var out []orb.Point
		for _, l := range v {
			out = append(out, l...)
		}
		return out
	case orb.Polygon:
		var out []orb.Point
		for _, r := range v {
			out = append(out, r...)
		}
		return out
	case orb.MultiPolygon:
		var out []orb.Point
		for _, p := range v {
			out = append(out, vertices(p)...)
		}
		return out
	case orb.Bound:
		return vertices(v.ToPolygon())
	case orb.Collection:
		var out []orb.Point
		for _, sub := range v {
			out = append(out, vertices(sub)...)
		}
		return out
	}
	return nil
}

type segment [2]orb.Point

func lineSegments(ps []orb.Point) []segment {
	var out []segment
	for i := 1; i < len(ps); i++ {
		out = append(out, segment{ps[i-1], ps[i]})
	}
	return out
}

func segments(g orb.Geometry) []segment {
	switch v := g.(type) {
	case orb.LineString:
		return lineSegments(v)
	case orb.Ring:
		return lineSegments(v)
	case orb.MultiLineString:
		var out []segment
		for _, l := range v {
			out = append(out, lineSegments(l)...)
		}
		return out
	case orb.Polygon:
		var out []segment
		for _, r := range v {
			out = append(out, lineSegments(r)...)
		}
		return out
	case orb.MultiPolygon:
		var out []segment
		for _, p := range v {
			out = append(out, segments(p)...)
		}
		return out
	case orb.Bound:
		return segments(v.ToPolygon())
	case orb.Collection:
		var out []segment
		for _, sub := range v {
			out = append(out, segments(sub)...)
		}
		return out
	}
	return nil
}

func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func onSegment(p orb.Point, s segment) bool {
	if math.Abs(cross(s[0], s[1], p)) > epsilon {
		return false
	}
	return p[0] >= math.Min(s[0][0], s[1][0])-epsilon && p[0] <= math.Max(s[0][0], s[1][0])+epsilon &&
		p[1] >= math.Min(s[0][1], s[1][1])-epsilon && p[1] <= math.Max(s[0][1], s[1][1])+epsilon
}

func sign(v float64) int {
	switch {
	case v > epsilon:
		return 1
	case v < -epsilon:
		return -1
	}
	return 0
}

// segmentsIntersect reports whether two segments share a point.
func segmentsIntersect(a, b segment) bool {
	d1 := sign(cross(b[0], b[1], a[0]))
	d2 := sign(cross(b[0], b[1], a[1]))
	d3 := sign(cross(a[0], a[1], b[0]))
	d4 := sign(cross(a[0], a[1], b[1]))
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return onSegment(a[0], b) || onSegment(a[1], b) || onSegment(b[0], a) || onSegment(b[1], a)
}

// segmentsCross reports whether two segments cross at a point interior to
// both.
func segmentsCross(a, b segment) bool {
	d1 := sign(cross(b[0], b[1], a[0]))
	d2 := sign(cross(b[0], b[1], a[1]))
	d3 := sign(cross(a[0], a[1], b[0]))
	d4 := sign(cross(a[0], a[1], b[1]))
	return d1*d2 < 0 && d3*d4 < 0
}

// covers reports whether p lies in g, boundary included.
func covers(g orb.Geometry, p orb.Point) bool {
	if polys := polygons(g); len(polys) > 0 {
		for _, poly := range polys {
			if planar.PolygonContains(poly, p) {
				return true
			}
		}
		return false
	}
	for _, s := range segments(g) {
		if onSegment(p, s) {
			return true
		}
	}
	for _, v := range vertices(g) {
		if v == p {
			return true
		}
	}
	return false
}

func boundContains(outer, inner orb.Bound) bool {
	return outer.Contains(inner.Min) && outer.Contains(inner.Max)
}

// Contains reports whether every point of b lies in a. Polygon boundaries
// count as inside, and no edge of b may cross an edge of a.
func Contains(a, b orb.Geometry) bool {
	if !boundContains(a.Bound(), b.Bound()) {
		return false
	}
	for _, v := range vertices(b) {
		if !covers(a, v) {
			return false
		}
	}
	outer := segments(a)
	for _, s := range segments(b) {
		for _, o := range outer {
			if segmentsCross(s, o) {
				return false
			}
		}
	}
	return true
}

// Within reports whether a lies in b.
func Within(a, b orb.Geometry) bool { return Contains(b, a) }

// Intersects reports whether two shapes share at least one point.
func Intersects(a, b orb.Geometry) bool {
	if !a.Bound().Intersects(b.Bound()) {
		return false
	}
	for _, v := range vertices(b) {
		if covers(a, v) {
			return true
		}
	}
	for _, v := range vertices(a) {
		if covers(b, v) {
			return true
		}
	}
	sb := segments(b)
	for _, s := range segments(a) {
		for _, t := range sb {
			if segmentsIntersect(s, t) {
				return true
			}
		}
	}
	return false
}
