package geosparql

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/c360studio/semowl/owl"
)

// GMLNamespace is the GML 3.2 namespace used when writing.
const GMLNamespace = "http://www.opengis.net/gml/3.2"

type gmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []gmlNode  `xml:",any"`
}

func (n *gmlNode) attr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func (n *gmlNode) child(locals ...string) *gmlNode {
	for i := range n.Nodes {
		for _, l := range locals {
			if n.Nodes[i].XMLName.Local == l {
				return &n.Nodes[i]
			}
		}
	}
	return nil
}

func (n *gmlNode) children(locals ...string) []*gmlNode {
	var out []*gmlNode
	for i := range n.Nodes {
		for _, l := range locals {
			if n.Nodes[i].XMLName.Local == l {
				out = append(out, &n.Nodes[i])
			}
		}
	}
	return out
}

// ParseGML parses a GML Point, LineString, Polygon, MultiPoint,
// MultiLineString (MultiCurve) or MultiPolygon (MultiSurface) element.
func ParseGML(lexical string) (Geometry, error) {
	var root gmlNode
	if err := xml.Unmarshal([]byte(strings.TrimSpace(lexical)), &root); err != nil {
		return Geometry{}, fmt.Errorf("%w: %v", ErrMalformedGeometry, err)
	}
	crs := normalizeCRS(root.attr("srsName"))
	shape, err := gmlShape(&root, dimension(&root, 2))
	if err != nil {
		return Geometry{}, err
	}
	if crs == EPSG4326 {
		shape = swapAxes(shape)
	}
	return Geometry{Shape: shape, CRS: crs}, nil
}

func dimension(n *gmlNode, fallback int) int {
	if d, err := strconv.Atoi(n.attr("srsDimension")); err == nil && d > 0 {
		return d
	}
	return fallback
}

func gmlError(n *gmlNode, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedGeometry, n.XMLName.Local, fmt.Sprintf(format, args...))
}

func gmlShape(n *gmlNode, dim int) (orb.Geometry, error) {
	dim = dimension(n, dim)
	switch n.XMLName.Local {
	case "Point":
		ps, err := gmlPoints(n, dim)
		if err != nil {
			return nil, err
		}
		if len(ps) != 1 {
			return nil, gmlError(n, "expected one position, got %d", len(ps))
		}
		return ps[0], nil
	case "LineString":
		ps, err := gmlPoints(n, dim)
		if err != nil {
			return nil, err
		}
		if len(ps) < 2 {
			return nil, gmlError(n, "needs at least two positions")
		}
		return orb.LineString(ps), nil
	case "Polygon":
		return gmlPolygon(n, dim)
	case "MultiPoint":
		var out orb.MultiPoint
		for _, m := range gmlMembers(n, "pointMember", "pointMembers") {
			g, err := gmlShape(m, dim)
			if err != nil {
				return nil, err
			}
			p, ok := g.(orb.Point)
			if !ok {
				return nil, gmlError(n, "member %s is not a point", m.XMLName.Local)
			}
			out = append(out, p)
		}
		return out, nil
	case "MultiLineString", "MultiCurve":
		var out orb.MultiLineString
		for _, m := range gmlMembers(n, "lineStringMember", "curveMember", "curveMembers") {
			g, err := gmlShape(m, dim)
			if err != nil {
				return nil, err
			}
			l, ok := g.(orb.LineString)
			if !ok {
				return nil, gmlError(n, "member %s is not a line string", m.XMLName.Local)
			}
			out = append(out, l)
		}
		return out, nil
	case "MultiPolygon", "MultiSurface":
		var out orb.MultiPolygon
		for _, m := range gmlMembers(n, "polygonMember", "surfaceMember", "surfaceMembers") {
			g, err := gmlShape(m, dim)
			if err != nil {
				return nil, err
			}
			p, ok := g.(orb.Polygon)
			if !ok {
				return nil, gmlError(n, "member %s is not a polygon", m.XMLName.Local)
			}
			out = append(out, p)
		}
		return out, nil
	}
	return nil, gmlError(n, "unsupported geometry")
}

// gmlMembers returns the geometries wrapped by member elements; a plural
// member element holds several geometries.
func gmlMembers(n *gmlNode, wrappers ...string) []*gmlNode {
	var out []*gmlNode
	for _, w := range n.children(wrappers...) {
		for i := range w.Nodes {
			out = append(out, &w.Nodes[i])
		}
	}
	return out
}

func gmlPolygon(n *gmlNode, dim int) (orb.Polygon, error) {
	outer := n.child("exterior", "outerBoundaryIs")
	if outer == nil {
		return nil, gmlError(n, "missing exterior ring")
	}
	var poly orb.Polygon
	for _, b := range append([]*gmlNode{outer}, n.children("interior", "innerBoundaryIs")...) {
		ring := b.child("LinearRing")
		if ring == nil {
			return nil, gmlError(b, "missing LinearRing")
		}
		ps, err := gmlPoints(ring, dimension(ring, dim))
		if err != nil {
			return nil, err
		}
		if len(ps) < 4 || ps[0] != ps[len(ps)-1] {
			return nil, gmlError(ring, "ring must be closed with at least four positions")
		}
		poly = append(poly, orb.Ring(ps))
	}
	return poly, nil
}

// gmlPoints reads the positions of an element from pos, posList or
// coordinates children. Coordinates beyond the second are dropped.
func gmlPoints(n *gmlNode, dim int) ([]orb.Point, error) {
	var out []orb.Point
	for _, p := range n.children("pos") {
		ps, err := positions(p, strings.Fields(p.Text), dimension(p, dim))
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	if pl := n.child("posList"); pl != nil {
		ps, err := positions(pl, strings.Fields(pl.Text), dimension(pl, dim))
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	if c := n.child("coordinates"); c != nil {
		for _, tuple := range strings.Fields(c.Text) {
			ps, err := positions(c, strings.Split(tuple, ","), len(strings.Split(tuple, ",")))
			if err != nil {
				return nil, err
			}
			out = append(out, ps...)
		}
	}
	if len(out) == 0 {
		return nil, gmlError(n, "no coordinates")
	}
	return out, nil
}

func positions(n *gmlNode, fields []string, dim int) ([]orb.Point, error) {
	if dim < 2 {
		return nil, gmlError(n, "dimension %d is too small", dim)
	}
	if len(fields) == 0 || len(fields)%dim != 0 {
		return nil, gmlError(n, "%d values do not split into %d-dimensional positions", len(fields), dim)
	}
	out := make([]orb.Point, 0, len(fields)/dim)
	for i := 0; i < len(fields); i += dim {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, gmlError(n, "bad coordinate %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, gmlError(n, "bad coordinate %q", fields[i+1])
		}
		out = append(out, orb.Point{x, y})
	}
	return out, nil
}

// FormatGML renders g as a GML 3.2 element.
func FormatGML(g Geometry) (string, error) {
	shape := g.Shape
	if g.CRS == EPSG4326 {
		shape = swapAxes(shape)
	}
	var b strings.Builder
	srs := ""
	if g.CRS != "" {
		srs = ` srsName="` + g.CRS + `"`
	}
	if err := writeGML(&b, shape, ` xmlns:gml="`+GMLNamespace+`"`+srs); err != nil {
		return "", err
	}
	return b.String(), nil
}

// NewGMLLiteral returns the gmlLiteral of a shape in the given CRS.
func NewGMLLiteral(shape orb.Geometry, crs string) (*owl.Literal, error) {
	s, err := FormatGML(Geometry{Shape: shape, CRS: crs})
	if err != nil {
		return nil, err
	}
	return owl.NewLiteral(s, GMLLiteral), nil
}

func posList(ps []orb.Point) string {
	parts := make([]string, 0, 2*len(ps))
	for _, p := range ps {
		parts = append(parts, strconv.FormatFloat(p[0], 'f', -1, 64), strconv.FormatFloat(p[1], 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}

func writeGML(b *strings.Builder, g orb.Geometry, attrs string) error {
	switch v := g.(type) {
	case orb.Point:
		b.WriteString("<gml:Point" + attrs + "><gml:pos>" + posList([]orb.Point{v}) + "</gml:pos></gml:Point>")
	case orb.LineString:
		b.WriteString("<gml:LineString" + attrs + "><gml:posList>" + posList(v) + "</gml:posList></gml:LineString>")
	case orb.Polygon:
		b.WriteString("<gml:Polygon" + attrs + ">")
		for i, r := range v {
			tag := "gml:interior"
			if i == 0 {
				tag = "gml:exterior"
			}
			b.WriteString("<" + tag + "><gml:LinearRing><gml:posList>" + posList(r) + "</gml:posList></gml:LinearRing></" + tag + ">")
		}
		b.WriteString("</gml:Polygon>")
	case orb.MultiPoint:
		b.WriteString("<gml:MultiPoint" + attrs + ">")
		for _, p := range v {
			b.WriteString("<gml:pointMember>")
			_ = writeGML(b, p, "")
			b.WriteString("</gml:pointMember>")
		}
		b.WriteString("</gml:MultiPoint>")
	case orb.MultiLineString:
		b.WriteString("<gml:MultiCurve" + attrs + ">")
		for _, l := range v {
			b.WriteString("<gml:curveMember>")
			_ = writeGML(b, l, "")
			b.WriteString("</gml:curveMember>")
		}
		b.WriteString("</gml:MultiCurve>")
	case orb.MultiPolygon:
		b.WriteString("<gml:MultiSurface" + attrs + ">")
		for _, p := range v {
			b.WriteString("<gml:surfaceMember>")
			_ = writeGML(b, p, "")
			b.WriteString("</gml:surfaceMember>")
		}
		b.WriteString("</gml:MultiSurface>")
	default:
		return fmt.Errorf("%w: cannot write %T as GML", ErrMalformedGeometry, g)
	}
	return nil
}
