package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// Bucket name suffixes appended to the configured prefix.
const (
	bucketOntologies = "_ONTOLOGIES"
	bucketRuns       = "_RUNS"
)

// KVStore provides entity storage operations backed by NATS KV.
type KVStore struct {
	ontologies jetstream.KeyValue
	runs       jetstream.KeyValue
}

var _ Repository = (*KVStore)(nil)

// NewKVStore creates a KVStore with the given JetStream context. It creates
// the prefix_ONTOLOGIES and prefix_RUNS buckets if they don't exist.
func NewKVStore(ctx context.Context, js jetstream.JetStream, prefix string) (*KVStore, error) {
	ontologies, err := getOrCreateBucket(ctx, js, prefix+bucketOntologies)
	if err != nil {
		return nil, fmt.Errorf("create ontologies bucket: %w", err)
	}

	runs, err := getOrCreateBucket(ctx, js, prefix+bucketRuns)
	if err != nil {
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}

	return &KVStore{
		ontologies: ontologies,
		runs:       runs,
	}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("semowl %s storage", strings.ToLower(name)),
		History:     5, // Keep last 5 revisions
	})
}

// Close is a no-op; the NATS connection is owned by the caller.
func (s *KVStore) Close() error { return nil }

// CreateOntology stores a new ontology and returns its ID.
func (s *KVStore) CreateOntology(ctx context.Context, o *Ontology) (EntityID, error) {
	if strings.TrimSpace(o.Document) == "" {
		return EntityID{}, fmt.Errorf("ontology document is required")
	}
	if o.IRI != "" {
		if _, err := s.FindOntology(ctx, o.IRI); err == nil {
			return EntityID{}, fmt.Errorf("ontology %s: %w", o.IRI, ErrAlreadyExists)
		} else if !errors.Is(err, ErrNotFound) {
			return EntityID{}, err
		}
	}
	id := NewEntityID(EntityTypeOntology)
	o.ID = id.String()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt

	data, err := json.Marshal(o)
	if err != nil {
		return EntityID{}, fmt.Errorf("marshal ontology: %w", err)
	}

	if _, err := s.ontologies.Create(ctx, id.ID, data); err != nil {
		return EntityID{}, fmt.Errorf("store ontology: %w", err)
	}

	return id, nil
}

// GetOntology retrieves an ontology by ID.
func (s *KVStore) GetOntology(ctx context.Context, id EntityID) (*Ontology, error) {
	key, err := ontologyKey(id)
	if err != nil {
		return nil, err
	}

	entry, err := s.ontologies.Get(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get ontology: %w", err)
	}

	var o Ontology
	if err := json.Unmarshal(entry.Value(), &o); err != nil {
		return nil, fmt.Errorf("unmarshal ontology: %w", err)
	}

	return &o, nil
}

// FindOntology retrieves the ontology with the given IRI.
func (s *KVStore) FindOntology(ctx context.Context, iri string) (*Ontology, error) {
	if iri == "" {
		return nil, ErrNotFound
	}
	all, err := s.ListOntologies(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range all {
		if o.IRI == iri {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateOntology replaces a stored ontology.
func (s *KVStore) UpdateOntology(ctx context.Context, o *Ontology) error {
	id, err := ParseEntityID(o.ID)
	if err != nil {
		return fmt.Errorf("parse ontology ID: %w", err)
	}
	key, err := ontologyKey(id)
	if err != nil {
		return err
	}
	stored, err := s.GetOntology(ctx, id)
	if err != nil {
		return err
	}
	if o.IRI != "" && o.IRI != stored.IRI {
		if other, err := s.FindOntology(ctx, o.IRI); err == nil && other.ID != o.ID {
			return fmt.Errorf("ontology %s: %w", o.IRI, ErrAlreadyExists)
		} else if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	o.CreatedAt = stored.CreatedAt
	o.UpdatedAt = time.Now()

	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal ontology: %w", err)
	}

	if _, err := s.ontologies.Put(ctx, key, data); err != nil {
		return fmt.Errorf("update ontology: %w", err)
	}

	return nil
}

// ListOntologies returns all ontologies sorted by IRI.
func (s *KVStore) ListOntologies(ctx context.Context) ([]*Ontology, error) {
	keys, err := s.ontologies.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list ontology keys: %w", err)
	}

	out := make([]*Ontology, 0, len(keys))
	for _, key := range keys {
		entry, err := s.ontologies.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		var o Ontology
		if err := json.Unmarshal(entry.Value(), &o); err != nil {
			continue
		}
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IRI != out[j].IRI {
			return out[i].IRI < out[j].IRI
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// DeleteOntology removes an ontology and its runs.
func (s *KVStore) DeleteOntology(ctx context.Context, id EntityID) error {
	if _, err := s.GetOntology(ctx, id); err != nil {
		return err
	}
	runs, err := s.ListRuns(ctx, id)
	if err != nil {
		return err
	}
	for _, r := range runs {
		runID, err := ParseEntityID(r.ID)
		if err != nil {
			continue
		}
		if err := s.runs.Delete(ctx, runID.ID); err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
	}
	if err := s.ontologies.Delete(ctx, id.ID); err != nil {
		return fmt.Errorf("delete ontology: %w", err)
	}
	return nil
}

// CreateRun records a run and returns its ID.
func (s *KVStore) CreateRun(ctx context.Context, r *Run) (EntityID, error) {
	ontologyID, err := ParseEntityID(r.OntologyID)
	if err != nil {
		return EntityID{}, fmt.Errorf("parse ontology ID: %w", err)
	}
	if _, err := s.GetOntology(ctx, ontologyID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return EntityID{}, fmt.Errorf("ontology %s: %w", r.OntologyID, ErrNotFound)
		}
		return EntityID{}, err
	}
	id := NewEntityID(EntityTypeRun)
	r.ID = id.String()
	r.CreatedAt = time.Now()

	data, err := json.Marshal(r)
	if err != nil {
		return EntityID{}, fmt.Errorf("marshal run: %w", err)
	}

	if _, err := s.runs.Create(ctx, id.ID, data); err != nil {
		return EntityID{}, fmt.Errorf("store run: %w", err)
	}

	return id, nil
}

// ListRuns returns the runs of an ontology, oldest first.
func (s *KVStore) ListRuns(ctx context.Context, ontologyID EntityID) ([]*Run, error) {
	keys, err := s.runs.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list run keys: %w", err)
	}

	runs := make([]*Run, 0)
	for _, key := range keys {
		entry, err := s.runs.Get(ctx, key)
		if err != nil {
			continue
		}
		var r Run
		if err := json.Unmarshal(entry.Value(), &r); err != nil {
			continue
		}
		if r.OntologyID == ontologyID.String() {
			runs = append(runs, &r)
		}
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].CreatedAt.Before(runs[j].CreatedAt) })

	return runs, nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound) || (err != nil && strings.Contains(err.Error(), "key not found"))
}
