package owl

import "github.com/c360studio/semowl/rdf"

// Constraining facets used by DatatypeRestriction.
const (
	FacetLength       = rdf.XSD + "length"
	FacetMinLength    = rdf.XSD + "minLength"
	FacetMaxLength    = rdf.XSD + "maxLength"
	FacetPattern      = rdf.XSD + "pattern"
	FacetMinInclusive = rdf.XSD + "minInclusive"
	FacetMaxInclusive = rdf.XSD + "maxInclusive"
	FacetMinExclusive = rdf.XSD + "minExclusive"
	FacetMaxExclusive = rdf.XSD + "maxExclusive"
	FacetLangRange    = rdf.RDF + "langRange"
)

func rangeList(rs []DataRange) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.String()
	}
	return out
}

// DataIntersectionOf is the intersection of data ranges.
type DataIntersectionOf struct {
	Ranges []DataRange
}

func (d *DataIntersectionOf) String() string {
	return functional("DataIntersectionOf", rangeList(d.Ranges)...)
}
func (d *DataIntersectionOf) dataRange() {}

// DataUnionOf is the union of data ranges.
type DataUnionOf struct {
	Ranges []DataRange
}

func (d *DataUnionOf) String() string {
	return functional("DataUnionOf", rangeList(d.Ranges)...)
}
func (d *DataUnionOf) dataRange() {}

// DataComplementOf is the complement of a data range.
type DataComplementOf struct {
	Range DataRange
}

func (d *DataComplementOf) String() string {
	return functional("DataComplementOf", d.Range.String())
}
func (d *DataComplementOf) dataRange() {}

// DataOneOf enumerates literals.
type DataOneOf struct {
	Literals []*Literal
}

func (d *DataOneOf) String() string {
	parts := make([]string, len(d.Literals))
	for i, l := range d.Literals {
		parts[i] = l.String()
	}
	return functional("DataOneOf", parts...)
}
func (d *DataOneOf) dataRange() {}

// FacetRestriction constrains a datatype facet to a value.
type FacetRestriction struct {
	Facet string
	Value *Literal
}

func (f FacetRestriction) String() string {
	return iriString(f.Facet) + " " + f.Value.String()
}

// DatatypeRestriction restricts a datatype with facets.
type DatatypeRestriction struct {
	Datatype *Datatype
	Facets   []FacetRestriction
}

// Restrict builds a DatatypeRestriction.
func Restrict(dt *Datatype, facets ...FacetRestriction) *DatatypeRestriction {
	return &DatatypeRestriction{Datatype: dt, Facets: facets}
}

func (d *DatatypeRestriction) String() string {
	parts := []string{d.Datatype.String()}
	for _, f := range d.Facets {
		parts = append(parts, f.String())
	}
	return functional("DatatypeRestriction", parts...)
}
func (d *DatatypeRestriction) dataRange() {}
