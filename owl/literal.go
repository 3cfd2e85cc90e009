package owl

import (
	"math"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/semowl/rdf"
)

// Literal is a data value with a datatype and an optional language tag.
type Literal struct {
	Value    string
	Datatype string
	Lang     string
}

// NewLiteral returns a typed literal. An empty datatype means xsd:string.
func NewLiteral(value, datatype string) *Literal {
	if datatype == "" {
		datatype = rdf.XSDString
	}
	return &Literal{Value: value, Datatype: datatype}
}

// NewLangLiteral returns a language-tagged string.
func NewLangLiteral(value, lang string) *Literal {
	return &Literal{Value: value, Datatype: rdf.RDFLangStr, Lang: strings.ToLower(lang)}
}

// NewIntegerLiteral returns an xsd:integer literal.
func NewIntegerLiteral(v int64) *Literal {
	return NewLiteral(strconv.FormatInt(v, 10), rdf.XSDInteger)
}

// NewDecimalLiteral returns an xsd:decimal literal. Values without a finite
// decimal expansion are rounded to decimalDigits fractional digits.
func NewDecimalLiteral(v *big.Rat) *Literal {
	if v.IsInt() {
		return NewLiteral(v.Num().String(), rdf.XSDDecimal)
	}
	prec, exact := v.FloatPrec()
	if !exact {
		prec = decimalDigits
	}
	s := v.FloatString(prec)
	if strings.Contains(s, ".") {
		s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	}
	return NewLiteral(s, rdf.XSDDecimal)
}

const decimalDigits = 20

// NewDoubleLiteral returns an xsd:double literal.
func NewDoubleLiteral(v float64) *Literal {
	return NewLiteral(strconv.FormatFloat(v, 'g', -1, 64), rdf.XSDDouble)
}

// NewBooleanLiteral returns an xsd:boolean literal.
func NewBooleanLiteral(v bool) *Literal {
	return NewLiteral(strconv.FormatBool(v), rdf.XSDBoolean)
}

// NewDateTimeLiteral returns an xsd:dateTime literal.
func NewDateTimeLiteral(t time.Time) *Literal {
	return NewLiteral(t.Format(time.RFC3339Nano), rdf.XSDDateTime)
}

// LiteralFromTerm converts an RDF literal term.
func LiteralFromTerm(t rdf.Term) *Literal {
	if t.Lang != "" {
		return NewLangLiteral(t.Value, t.Lang)
	}
	return NewLiteral(t.Value, t.Datatype)
}

// Term returns the RDF term of the literal.
func (l *Literal) Term() rdf.Term {
	if l.Lang != "" {
		return rdf.LangLiteral(l.Value, l.Lang)
	}
	return rdf.Literal(l.Value, l.Datatype)
}

func (l *Literal) String() string                { return l.Term().String() }
func (l *Literal) graph(w *graphWriter) rdf.Term { return l.Term() }
func (l *Literal) annotationValue()              {}

var integerTypes = map[string]bool{
	rdf.XSDInteger:            true,
	rdf.XSDInt:                true,
	rdf.XSDLong:               true,
	rdf.XSDShort:              true,
	rdf.XSDByte:               true,
	rdf.XSDNonNegativeInteger: true,
	rdf.XSDPositiveInteger:    true,
	rdf.XSDNegativeInteger:    true,
	rdf.XSDNonPositiveInteger: true,
	rdf.XSDUnsignedInt:        true,
	rdf.XSDUnsignedLong:       true,
}

var numericTypes = map[string]bool{
	rdf.XSDDecimal: true,
	rdf.XSDDouble:  true,
	rdf.XSDFloat:   true,
}

// IsNumeric reports whether the literal has a numeric datatype.
func (l *Literal) IsNumeric() bool {
	return integerTypes[l.Datatype] || numericTypes[l.Datatype]
}

// IsInteger reports whether the literal has an integer-derived datatype.
func (l *Literal) IsInteger() bool { return integerTypes[l.Datatype] }

// IsString reports whether the literal is a plain or language-tagged string.
func (l *Literal) IsString() bool {
	return l.Datatype == rdf.XSDString || l.Datatype == rdf.RDFLangStr || l.Datatype == rdf.RDFPlainLit || l.Datatype == ""
}

// Float returns the numeric value of the literal.
func (l *Literal) Float() (float64, bool) {
	if !l.IsNumeric() {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(l.Value), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Rat returns the exact value of an integer or decimal literal.
func (l *Literal) Rat() (*big.Rat, bool) {
	if !l.IsInteger() && l.Datatype != rdf.XSDDecimal {
		return nil, false
	}
	v := strings.TrimSpace(l.Value)
	if v == "" || strings.ContainsAny(v, "eE/") {
		return nil, false
	}
	return new(big.Rat).SetString(v)
}

// Bool returns the boolean value of an xsd:boolean literal.
func (l *Literal) Bool() (bool, bool) {
	if l.Datatype != rdf.XSDBoolean {
		return false, false
	}
	switch strings.TrimSpace(l.Value) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

// Time returns the value of a date or date-time literal.
func (l *Literal) Time() (time.Time, bool) {
	v := strings.TrimSpace(l.Value)
	switch l.Datatype {
	case rdf.XSDDateTime, rdf.XSDDateTimeS:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	case rdf.XSDDate:
		for _, layout := range []string{"2006-01-02", "2006-01-02Z07:00"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// Valid reports whether the lexical form is valid for the literal's
// datatype. Datatypes without a known lexical space are always valid.
func (l *Literal) Valid() bool {
	v := strings.TrimSpace(l.Value)
	switch {
	case l.IsInteger():
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return false
		}
		switch l.Datatype {
		case rdf.XSDNonNegativeInteger, rdf.XSDUnsignedInt, rdf.XSDUnsignedLong:
			return n.Sign() >= 0
		case rdf.XSDPositiveInteger:
			return n.Sign() > 0
		case rdf.XSDNegativeInteger:
			return n.Sign() < 0
		case rdf.XSDNonPositiveInteger:
			return n.Sign() <= 0
		case rdf.XSDInt:
			return n.IsInt64() && n.Int64() >= math.MinInt32 && n.Int64() <= math.MaxInt32
		case rdf.XSDLong:
			return n.IsInt64()
		case rdf.XSDShort:
			return n.IsInt64() && n.Int64() >= math.MinInt16 && n.Int64() <= math.MaxInt16
		case rdf.XSDByte:
			return n.IsInt64() && n.Int64() >= math.MinInt8 && n.Int64() <= math.MaxInt8
		}
		return true
	case l.Datatype == rdf.XSDDecimal:
		if strings.ContainsAny(v, "eE") {
			return false
		}
		_, err := strconv.ParseFloat(v, 64)
		return err == nil
	case l.Datatype == rdf.XSDDouble || l.Datatype == rdf.XSDFloat:
		switch v {
		case "INF", "-INF", "NaN":
			return true
		}
		_, err := strconv.ParseFloat(v, 64)
		return err == nil
	case l.Datatype == rdf.XSDBoolean:
		_, ok := l.Bool()
		return ok
	case l.Datatype == rdf.XSDDateTime || l.Datatype == rdf.XSDDate:
		_, ok := l.Time()
		return ok
	case l.Datatype == rdf.XSDDateTimeS:
		// dateTimeStamp requires an explicit timezone.
		if _, err := time.Parse(time.RFC3339Nano, v); err != nil {
			return false
		}
		return true
	case l.Datatype == rdf.XSDAnyURI:
		_, err := url.Parse(v)
		return err == nil
	case l.Datatype == rdf.RDFLangStr:
		return l.Lang != ""
	}
	return true
}

// Compare orders two literals by value. It reports false when the literals
// are not comparable (different value spaces or invalid lexical forms).
func (l *Literal) Compare(other *Literal) (int, bool) {
	if a, ok := l.Rat(); ok {
		if b, ok := other.Rat(); ok {
			return a.Cmp(b), true
		}
	}
	if a, ok := l.Float(); ok {
		b, ok := other.Float()
		if !ok {
			return 0, false
		}
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	}
	if a, ok := l.Time(); ok {
		b, ok := other.Time()
		if !ok {
			return 0, false
		}
		return a.Compare(b), true
	}
	if l.IsString() && other.IsString() {
		return strings.Compare(l.Value, other.Value), true
	}
	if l.Datatype == other.Datatype {
		return strings.Compare(l.Value, other.Value), true
	}
	return 0, false
}

// SameValue reports whether two literals denote the same data value.
func (l *Literal) SameValue(other *Literal) bool {
	if l.Lang != "" || other.Lang != "" {
		return l.Lang == other.Lang && l.Value == other.Value
	}
	if l.IsNumeric() && other.IsNumeric() {
		c, ok := l.Compare(other)
		return ok && c == 0
	}
	if l.IsString() && other.IsString() {
		return l.Value == other.Value
	}
	if l.Datatype != other.Datatype {
		return false
	}
	if c, ok := l.Compare(other); ok {
		return c == 0
	}
	return l.Value == other.Value
}

// LexicalString returns the value as a plain string, used by string built-ins.
func (l *Literal) LexicalString() string { return l.Value }
