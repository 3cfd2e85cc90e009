package skos

import "github.com/c360studio/semstreams/vocabulary"

// Semantic relation predicates.
const (
	// PredicateBroader links a concept to a more general concept.
	PredicateBroader = "skos.concept.broader"

	// PredicateNarrower links a concept to a more specific concept.
	PredicateNarrower = "skos.concept.narrower"

	// PredicateRelated links two associated concepts.
	PredicateRelated = "skos.concept.related"

	// PredicateInScheme links a concept to its concept scheme.
	PredicateInScheme = "skos.concept.in_scheme"

	// PredicateTopConceptOf links a top concept to its scheme.
	PredicateTopConceptOf = "skos.concept.top_concept_of"
)

// Mapping predicates link concepts across schemes.
const (
	PredicateExactMatch   = "skos.mapping.exact_match"
	PredicateCloseMatch   = "skos.mapping.close_match"
	PredicateBroadMatch   = "skos.mapping.broad_match"
	PredicateNarrowMatch  = "skos.mapping.narrow_match"
	PredicateRelatedMatch = "skos.mapping.related_match"
)

// Lexical predicates.
const (
	PredicatePrefLabel   = "skos.label.pref"
	PredicateAltLabel    = "skos.label.alt"
	PredicateHiddenLabel = "skos.label.hidden"
	PredicateNotation    = "skos.label.notation"
)

func init() {
	vocabulary.Register(PredicateBroader,
		vocabulary.WithDescription("More general concept"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Broader))

	vocabulary.Register(PredicateNarrower,
		vocabulary.WithDescription("More specific concept"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Narrower))

	vocabulary.Register(PredicateRelated,
		vocabulary.WithDescription("Associated concept"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Related))

	vocabulary.Register(PredicateInScheme,
		vocabulary.WithDescription("Concept scheme the concept belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(InScheme))

	vocabulary.Register(PredicateTopConceptOf,
		vocabulary.WithDescription("Scheme the concept heads"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(TopConceptOf))

	vocabulary.Register(PredicateExactMatch,
		vocabulary.WithDescription("Interchangeable concept in another scheme"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(ExactMatch))

	vocabulary.Register(PredicateCloseMatch,
		vocabulary.WithDescription("Similar concept in another scheme"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(CloseMatch))

	vocabulary.Register(PredicateBroadMatch,
		vocabulary.WithDescription("More general concept in another scheme"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(BroadMatch))

	vocabulary.Register(PredicateNarrowMatch,
		vocabulary.WithDescription("More specific concept in another scheme"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(NarrowMatch))

	vocabulary.Register(PredicateRelatedMatch,
		vocabulary.WithDescription("Associated concept in another scheme"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RelatedMatch))

	vocabulary.Register(PredicatePrefLabel,
		vocabulary.WithDescription("Preferred lexical label"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PrefLabel))

	vocabulary.Register(PredicateAltLabel,
		vocabulary.WithDescription("Alternative lexical label"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(AltLabel))

	vocabulary.Register(PredicateHiddenLabel,
		vocabulary.WithDescription("Label for search, not display"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(HiddenLabel))

	vocabulary.Register(PredicateNotation,
		vocabulary.WithDescription("Code identifying the concept within its scheme"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Notation))
}

// PredicateNames lists the registry names of the SKOS predicates.
func PredicateNames() []string {
	return []string{
		PredicateBroader, PredicateNarrower, PredicateRelated,
		PredicateInScheme, PredicateTopConceptOf,
		PredicateExactMatch, PredicateCloseMatch, PredicateBroadMatch,
		PredicateNarrowMatch, PredicateRelatedMatch,
		PredicatePrefLabel, PredicateAltLabel, PredicateHiddenLabel, PredicateNotation,
	}
}
