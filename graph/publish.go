// Package graph publishes inferred axioms to NATS as graph entity payloads.
package graph

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/rdf"
)

// DefaultSubject is the subject inference payloads are published on.
const DefaultSubject = "semowl.inferences"

// DefaultSource tags the triples produced by the reasoner.
const DefaultSource = "semowl.reasoner"

// Sink delivers encoded payloads to a stream.
type Sink interface {
	PublishToStream(ctx context.Context, subject string, data []byte) error
}

// JetStreamSink publishes through a JetStream context.
type JetStreamSink struct {
	js jetstream.JetStream
}

// NewJetStreamSink wraps js as a Sink.
func NewJetStreamSink(js jetstream.JetStream) *JetStreamSink {
	return &JetStreamSink{js: js}
}

// PublishToStream publishes data and waits for the stream acknowledgement.
func (s *JetStreamSink) PublishToStream(ctx context.Context, subject string, data []byte) error {
	_, err := s.js.Publish(ctx, subject, data)
	return err
}

// EnsureStream creates or updates the stream capturing subject.
func EnsureStream(ctx context.Context, js jetstream.JetStream, name, subject string) error {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        name,
		Description: "semowl inferred axioms",
		Subjects:    []string{subject},
		MaxAge:      7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("ensure stream %s: %w", name, err)
	}
	return nil
}

// Publisher turns inferred axioms into entity payloads and publishes them.
type Publisher struct {
	sink    Sink
	subject string
	source  string
	names   map[string]string
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithSubject sets the publish subject.
func WithSubject(subject string) Option {
	return func(p *Publisher) {
		if subject != "" {
			p.subject = subject
		}
	}
}

// WithSource sets the source recorded on every triple.
func WithSource(source string) Option {
	return func(p *Publisher) { p.source = source }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPredicateNames maps the IRIs of registered predicates back to their
// registry names, so triples use names like skos.concept.broader where one
// is known. Unregistered names are ignored.
func WithPredicateNames(names ...string) Option {
	return func(p *Publisher) {
		for _, name := range names {
			meta := vocabulary.GetPredicateMetadata(name)
			if meta == nil || meta.StandardIRI == "" {
				continue
			}
			p.names[meta.StandardIRI] = name
		}
	}
}

// NewPublisher creates a Publisher. A nil sink makes Publish a no-op.
func NewPublisher(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{
		sink:    sink,
		subject: DefaultSubject,
		source:  DefaultSource,
		names:   make(map[string]string),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Entities groups the RDF mapping of axioms by subject, one payload per
// subject in graph order.
func (p *Publisher) Entities(o *owl.Ontology, axioms []owl.Axiom) []*EntityPayload {
	if len(axioms) == 0 {
		return nil
	}
	tmp := owl.NewOntology(o.IRI)
	tmp.AddAxioms(axioms...)

	now := p.now()
	var out []*EntityPayload
	bySubject := make(map[string]*EntityPayload)
	for _, t := range tmp.ToGraph().Triples() {
		if t.P.Value == rdf.RDFType && t.O.Value == rdf.OWL+"Ontology" {
			continue
		}
		id := termID(t.S)
		e, ok := bySubject[id]
		if !ok {
			e = &EntityPayload{EntityID_: id, OntologyIRI: o.IRI, UpdatedAt: now}
			bySubject[id] = e
			out = append(out, e)
		}
		e.TripleData = append(e.TripleData, message.Triple{
			Subject:    id,
			Predicate:  p.predicate(t.P.Value),
			Object:     objectValue(t.O),
			Source:     p.source,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	return out
}

// Publish sends one payload per subject of axioms and returns how many were
// published.
func (p *Publisher) Publish(ctx context.Context, o *owl.Ontology, axioms []owl.Axiom) (int, error) {
	if p.sink == nil {
		return 0, nil
	}
	entities := p.Entities(o, axioms)
	for i, e := range entities {
		data, err := e.MarshalJSON()
		if err != nil {
			return i, fmt.Errorf("marshal entity %s: %w", e.EntityID_, err)
		}
		if err := p.sink.PublishToStream(ctx, p.subject, data); err != nil {
			return i, fmt.Errorf("publish entity %s: %w", e.EntityID_, err)
		}
	}
	p.logger.Debug("Published inferences",
		"ontology", o.IRI,
		"subject", p.subject,
		"entities", len(entities),
		"axioms", len(axioms))
	return len(entities), nil
}

// PublishInferences publishes every inferred axiom of o.
func (p *Publisher) PublishInferences(ctx context.Context, o *owl.Ontology) (int, error) {
	return p.Publish(ctx, o, o.InferredAxioms())
}

func (p *Publisher) predicate(iri string) string {
	if name, ok := p.names[iri]; ok {
		return name
	}
	return iri
}

func termID(t rdf.Term) string {
	if t.IsBlank() {
		return t.String()
	}
	return t.Value
}

// objectValue converts literals of common XSD types to Go values and
// leaves everything else as its lexical form.
func objectValue(t rdf.Term) any {
	if !t.IsLiteral() {
		return termID(t)
	}
	switch t.Datatype {
	case rdf.XSDInteger:
		if n, err := strconv.ParseInt(t.Value, 10, 64); err == nil {
			return n
		}
	case rdf.XSDDouble, rdf.XSDDecimal:
		if f, err := strconv.ParseFloat(t.Value, 64); err == nil {
			return f
		}
	case rdf.XSDBoolean:
		if b, err := strconv.ParseBool(t.Value); err == nil {
			return b
		}
	}
	return t.Value
}
