package owl

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/c360studio/semowl/rdf"
)

// datatypeParents lists the XSD derivations the toolkit understands.
var datatypeParents = map[string]string{
	rdf.XSDInteger:            rdf.XSDDecimal,
	rdf.XSDNonNegativeInteger: rdf.XSDInteger,
	rdf.XSDPositiveInteger:    rdf.XSDNonNegativeInteger,
	rdf.XSDNonPositiveInteger: rdf.XSDInteger,
	rdf.XSDNegativeInteger:    rdf.XSDNonPositiveInteger,
	rdf.XSDLong:               rdf.XSDInteger,
	rdf.XSDInt:                rdf.XSDLong,
	rdf.XSDShort:              rdf.XSDInt,
	rdf.XSDByte:               rdf.XSDShort,
	rdf.XSDUnsignedLong:       rdf.XSDNonNegativeInteger,
	rdf.XSDUnsignedInt:        rdf.XSDUnsignedLong,
	rdf.XSDDateTimeS:          rdf.XSDDateTime,
}

// DerivesFrom reports whether datatype is base or derived from it.
func DerivesFrom(datatype, base string) bool {
	for dt := datatype; dt != ""; dt = datatypeParents[dt] {
		if dt == base {
			return true
		}
	}
	return false
}

// DatatypeContains reports whether a literal belongs to a named datatype.
func DatatypeContains(datatype string, l *Literal) bool {
	switch datatype {
	case rdf.RDFSLiteral:
		return true
	case rdf.RDFPlainLit:
		return l.IsString()
	case rdf.XSDString:
		return l.Datatype == rdf.XSDString
	case rdf.OWL + "real", rdf.OWL + "rational":
		return l.IsNumeric() && l.Valid()
	}
	if !strings.HasPrefix(datatype, rdf.XSD) && datatype != rdf.RDFLangStr {
		// Unknown datatypes only contain literals typed with them.
		return l.Datatype == datatype
	}
	if !DerivesFrom(l.Datatype, datatype) {
		return false
	}
	if l.Datatype == datatype {
		return l.Valid()
	}
	// A literal typed with a subtype must also be valid for the supertype.
	return l.Valid() && (&Literal{Value: l.Value, Datatype: datatype}).Valid()
}

// DataRangeContains reports whether a literal belongs to a data range,
// resolving datatypes defined by DatatypeDefinition axioms.
func (ix *Index) DataRangeContains(r DataRange, l *Literal) bool {
	return dataRangeContains(r, l, ix.datatypeDefs, 0)
}

// InDataRange reports whether a literal belongs to a data range without
// datatype definitions.
func InDataRange(r DataRange, l *Literal) bool {
	return dataRangeContains(r, l, nil, 0)
}

func dataRangeContains(r DataRange, l *Literal, defs map[string]DataRange, depth int) bool {
	if depth > 32 {
		return false
	}
	switch d := r.(type) {
	case *Datatype:
		if def, ok := defs[d.IRI]; ok {
			return dataRangeContains(def, l, defs, depth+1)
		}
		return DatatypeContains(d.IRI, l)
	case *DataIntersectionOf:
		for _, sub := range d.Ranges {
			if !dataRangeContains(sub, l, defs, depth+1) {
				return false
			}
		}
		return true
	case *DataUnionOf:
		for _, sub := range d.Ranges {
			if dataRangeContains(sub, l, defs, depth+1) {
				return true
			}
		}
		return false
	case *DataComplementOf:
		return !dataRangeContains(d.Range, l, defs, depth+1)
	case *DataOneOf:
		for _, v := range d.Literals {
			if v.SameValue(l) {
				return true
			}
		}
		return false
	case *DatatypeRestriction:
		if !dataRangeContains(d.Datatype, l, defs, depth+1) {
			return false
		}
		for _, f := range d.Facets {
			if !facetHolds(f, l) {
				return false
			}
		}
		return true
	}
	return false
}

func facetHolds(f FacetRestriction, l *Literal) bool {
	switch f.Facet {
	case FacetLength, FacetMinLength, FacetMaxLength:
		n, ok := f.Value.Float()
		if !ok {
			return false
		}
		size := float64(utf8.RuneCountInString(l.Value))
		switch f.Facet {
		case FacetLength:
			return size == n
		case FacetMinLength:
			return size >= n
		default:
			return size <= n
		}
	case FacetPattern:
		re, err := regexp.Compile("^(?:" + f.Value.Value + ")$")
		return err == nil && re.MatchString(l.Value)
	case FacetLangRange:
		want := strings.ToLower(f.Value.Value)
		return l.Lang != "" && (want == "*" || l.Lang == want || strings.HasPrefix(l.Lang, want+"-"))
	case FacetMinInclusive, FacetMaxInclusive, FacetMinExclusive, FacetMaxExclusive:
		c, ok := l.Compare(f.Value)
		if !ok {
			return false
		}
		switch f.Facet {
		case FacetMinInclusive:
			return c >= 0
		case FacetMaxInclusive:
			return c <= 0
		case FacetMinExclusive:
			return c > 0
		default:
			return c < 0
		}
	}
	return false
}
