package owltime

import "github.com/c360studio/semstreams/vocabulary"

// Predicates for temporal entities.
const (
	// PredicatePosition is the timestamp of an instant.
	PredicatePosition = "time.instant.position"

	// PredicateBeginning links an interval to its first instant.
	PredicateBeginning = "time.interval.beginning"

	// PredicateEnd links an interval to its last instant.
	PredicateEnd = "time.interval.end"

	// PredicateDuration is the xsd:duration of an interval.
	PredicateDuration = "time.interval.duration"

	// PredicateBefore orders two temporal entities.
	PredicateBefore = "time.entity.before"

	// PredicateAfter orders two temporal entities.
	PredicateAfter = "time.entity.after"
)

// predicateName returns the registry name of an Allen relation, such as
// time.allen.met_by.
func predicateName(r Relation) string {
	return "time.allen." + r.snake()
}

func init() {
	vocabulary.Register(PredicatePosition,
		vocabulary.WithDescription("Position of an instant on the timeline"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(InXSDDateTimeStamp))

	vocabulary.Register(PredicateBeginning,
		vocabulary.WithDescription("Instant at which an interval begins"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(HasBeginning))

	vocabulary.Register(PredicateEnd,
		vocabulary.WithDescription("Instant at which an interval ends"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(HasEnd))

	vocabulary.Register(PredicateDuration,
		vocabulary.WithDescription("Extent of an interval"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(HasXSDDuration))

	vocabulary.Register(PredicateBefore,
		vocabulary.WithDescription("Entity that starts after this one ends"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Before))

	vocabulary.Register(PredicateAfter,
		vocabulary.WithDescription("Entity that ends before this one starts"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(After))

	for _, r := range Relations() {
		vocabulary.Register(predicateName(r),
			vocabulary.WithDescription("Allen relation "+string(r)),
			vocabulary.WithDataType("entity_id"),
			vocabulary.WithIRI(r.IRI()))
	}
}

// PredicateNames lists the registry names of the temporal predicates,
// including one per Allen relation.
func PredicateNames() []string {
	names := []string{
		PredicatePosition, PredicateBeginning, PredicateEnd,
		PredicateDuration, PredicateBefore, PredicateAfter,
	}
	for _, r := range Relations() {
		names = append(names, predicateName(r))
	}
	return names
}
