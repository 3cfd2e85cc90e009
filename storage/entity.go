// Package storage persists ontologies and the results of reasoning and
// validation runs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/owlxml"
)

// EntityType represents the type of a stored entity.
type EntityType string

const (
	EntityTypeOntology EntityType = "ontology"
	EntityTypeRun      EntityType = "run"
)

// EntityID represents a typed entity identifier.
type EntityID struct {
	Type EntityType
	ID   string
}

// String returns the string representation of the entity ID.
func (e EntityID) String() string {
	return fmt.Sprintf("%s:%s", e.Type, e.ID)
}

// ParseEntityID parses an entity ID string into its components.
func ParseEntityID(s string) (EntityID, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return EntityID{}, fmt.Errorf("invalid entity ID format: %s", s)
	}
	entityType := EntityType(parts[0])
	switch entityType {
	case EntityTypeOntology, EntityTypeRun:
		return EntityID{Type: entityType, ID: parts[1]}, nil
	default:
		return EntityID{}, fmt.Errorf("unknown entity type: %s", parts[0])
	}
}

// NewEntityID generates a new unique entity ID for the given type.
func NewEntityID(t EntityType) EntityID {
	return EntityID{
		Type: t,
		ID:   uuid.New().String(),
	}
}

// RunKind distinguishes reasoning runs from validation runs.
type RunKind string

const (
	RunKindReason   RunKind = "reason"
	RunKindValidate RunKind = "validate"
)

// Ontology is a stored ontology document.
type Ontology struct {
	ID        string    `json:"id"`
	IRI       string    `json:"iri"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Axioms    int       `json:"axioms"`
	Rules     int       `json:"rules"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Run records the outcome of a reasoning or validation run.
type Run struct {
	ID         string        `json:"id"`
	OntologyID string        `json:"ontology_id"`
	Kind       RunKind       `json:"kind"`
	Inferences int           `json:"inferences,omitempty"`
	Iterations int           `json:"iterations,omitempty"`
	Errors     int           `json:"errors,omitempty"`
	Warnings   int           `json:"warnings,omitempty"`
	Issues     []string      `json:"issues,omitempty"`
	Duration   time.Duration `json:"duration"`
	CreatedAt  time.Time     `json:"created_at"`
}

// NewOntologyRecord encodes o as OWL/XML for storage.
func NewOntologyRecord(o *owl.Ontology, name string) (*Ontology, error) {
	doc, err := owlxml.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("encode ontology: %w", err)
	}
	return &Ontology{
		IRI:      o.IRI,
		Name:     name,
		Document: string(doc),
		Axioms:   o.Len(),
		Rules:    len(o.Rules()),
	}, nil
}

// Decode parses the stored OWL/XML document.
func (r *Ontology) Decode() (*owl.Ontology, error) {
	o, err := owlxml.Unmarshal([]byte(r.Document))
	if err != nil {
		return nil, fmt.Errorf("decode ontology %s: %w", r.ID, err)
	}
	return o, nil
}

// Repository is implemented by every storage backend.
type Repository interface {
	CreateOntology(ctx context.Context, o *Ontology) (EntityID, error)
	GetOntology(ctx context.Context, id EntityID) (*Ontology, error)
	FindOntology(ctx context.Context, iri string) (*Ontology, error)
	UpdateOntology(ctx context.Context, o *Ontology) error
	ListOntologies(ctx context.Context) ([]*Ontology, error)
	DeleteOntology(ctx context.Context, id EntityID) error
	CreateRun(ctx context.Context, r *Run) (EntityID, error)
	ListRuns(ctx context.Context, ontologyID EntityID) ([]*Run, error)
	Close() error
}

// SaveOntology stores o, replacing the document of a stored ontology with
// the same IRI.
func SaveOntology(ctx context.Context, repo Repository, o *owl.Ontology, name string) (*Ontology, error) {
	rec, err := NewOntologyRecord(o, name)
	if err != nil {
		return nil, err
	}
	if o.IRI != "" {
		existing, err := repo.FindOntology(ctx, o.IRI)
		switch {
		case err == nil:
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			if rec.Name == "" {
				rec.Name = existing.Name
			}
			if err := repo.UpdateOntology(ctx, rec); err != nil {
				return nil, err
			}
			return rec, nil
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}
	if _, err := repo.CreateOntology(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ontologyKey validates an ontology ID and returns its key part.
func ontologyKey(id EntityID) (string, error) {
	if id.Type != EntityTypeOntology {
		return "", fmt.Errorf("invalid entity type: expected ontology, got %s", id.Type)
	}
	return id.ID, nil
}
