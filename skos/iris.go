package skos

// Namespace is the SKOS core namespace.
const Namespace = "http://www.w3.org/2004/02/skos/core#"

// Class IRIs.
const (
	ClassConcept       = Namespace + "Concept"
	ClassConceptScheme = Namespace + "ConceptScheme"
)

// Semantic relation IRIs.
const (
	Broader            = Namespace + "broader"
	Narrower           = Namespace + "narrower"
	Related            = Namespace + "related"
	BroaderTransitive  = Namespace + "broaderTransitive"
	NarrowerTransitive = Namespace + "narrowerTransitive"
)

// Mapping relation IRIs.
const (
	ExactMatch   = Namespace + "exactMatch"
	CloseMatch   = Namespace + "closeMatch"
	BroadMatch   = Namespace + "broadMatch"
	NarrowMatch  = Namespace + "narrowMatch"
	RelatedMatch = Namespace + "relatedMatch"
)

// Scheme membership IRIs.
const (
	InScheme      = Namespace + "inScheme"
	HasTopConcept = Namespace + "hasTopConcept"
	TopConceptOf  = Namespace + "topConceptOf"
)

// Lexical label IRIs. Labels are annotation properties.
const (
	PrefLabel   = Namespace + "prefLabel"
	AltLabel    = Namespace + "altLabel"
	HiddenLabel = Namespace + "hiddenLabel"
	Definition  = Namespace + "definition"
)

// Notation is a data property holding a typed code for a concept.
const Notation = Namespace + "notation"
