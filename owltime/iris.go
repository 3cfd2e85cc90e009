package owltime

// Namespace is the OWL-Time namespace.
const Namespace = "http://www.w3.org/2006/time#"

// Class IRIs.
const (
	ClassTemporalEntity = Namespace + "TemporalEntity"
	ClassInstant        = Namespace + "Instant"
	ClassInterval       = Namespace + "Interval"
	ClassProperInterval = Namespace + "ProperInterval"
)

// Structural property IRIs.
const (
	HasBeginning       = Namespace + "hasBeginning"
	HasEnd             = Namespace + "hasEnd"
	Before             = Namespace + "before"
	After              = Namespace + "after"
	InXSDDateTimeStamp = Namespace + "inXSDDateTimeStamp"
	InXSDDateTime      = Namespace + "inXSDDateTime"
	HasXSDDuration     = Namespace + "hasXSDDuration"
)

// XSDDuration is the datatype of duration literals.
const XSDDuration = "http://www.w3.org/2001/XMLSchema#duration"
