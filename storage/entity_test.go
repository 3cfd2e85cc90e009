package storage

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/c360studio/semowl/owl"
)

const ex = "http://example.org/zoo#"

func zoo() *owl.Ontology {
	o := owl.NewOntology("http://example.org/zoo")
	o.AddAxioms(
		owl.Declare(owl.NewClass(ex+"Lion")),
		owl.Declare(owl.NewClass(ex+"Cat")),
		owl.NewSubClassOf(owl.NewClass(ex+"Lion"), owl.NewClass(ex+"Cat")),
		owl.NewClassAssertion(owl.NewClass(ex+"Lion"), owl.NewIndividual(ex+"leo")),
	)
	return o
}

func TestEntityID(t *testing.T) {
	t.Run("NewEntityID generates valid ID", func(t *testing.T) {
		id := NewEntityID(EntityTypeOntology)
		if id.Type != EntityTypeOntology {
			t.Errorf("expected type %s, got %s", EntityTypeOntology, id.Type)
		}
		if id.ID == "" {
			t.Error("expected non-empty ID")
		}
	})

	t.Run("String returns correct format", func(t *testing.T) {
		id := EntityID{Type: EntityTypeRun, ID: "abc123"}
		expected := "run:abc123"
		if id.String() != expected {
			t.Errorf("expected %s, got %s", expected, id.String())
		}
	})

	t.Run("ParseEntityID handles all types", func(t *testing.T) {
		tests := []struct {
			input    string
			expected EntityType
		}{
			{"ontology:123", EntityTypeOntology},
			{"run:456", EntityTypeRun},
		}

		for _, tc := range tests {
			id, err := ParseEntityID(tc.input)
			if err != nil {
				t.Errorf("unexpected error for %s: %v", tc.input, err)
				continue
			}
			if id.Type != tc.expected {
				t.Errorf("expected type %s for %s, got %s", tc.expected, tc.input, id.Type)
			}
		}
	})

	t.Run("ParseEntityID rejects invalid IDs", func(t *testing.T) {
		for _, input := range []string{"", "ontology", "ontology:", "proposal:123"} {
			if _, err := ParseEntityID(input); err == nil {
				t.Errorf("expected error for %q", input)
			}
		}
	})

	t.Run("round trip", func(t *testing.T) {
		original := NewEntityID(EntityTypeOntology)
		parsed, err := ParseEntityID(original.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed != original {
			t.Errorf("expected %v, got %v", original, parsed)
		}
	})
}

func TestOntologyRecordDecode(t *testing.T) {
	o := zoo()
	rec, err := NewOntologyRecord(o, "zoo")
	if err != nil {
		t.Fatalf("NewOntologyRecord: %v", err)
	}
	if rec.IRI != o.IRI || rec.Name != "zoo" {
		t.Errorf("unexpected record header: %+v", rec)
	}
	if rec.Axioms != o.Len() {
		t.Errorf("expected %d axioms, got %d", o.Len(), rec.Axioms)
	}

	back, err := rec.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for _, ax := range o.Axioms() {
		if !back.ContainsAxiom(ax) {
			t.Errorf("decoded ontology lost %s", ax)
		}
	}
}

func TestOntologyRecordDecodeRejectsGarbage(t *testing.T) {
	rec := &Ontology{ID: "ontology:x", Document: "not xml"}
	if _, err := rec.Decode(); err == nil {
		t.Error("expected error decoding garbage")
	}
}

// memRepo is an in-memory Repository for exercising SaveOntology.
type memRepo struct {
	ontologies map[string]*Ontology
	runs       []*Run
}

func newMemRepo() *memRepo {
	return &memRepo{ontologies: make(map[string]*Ontology)}
}

func (m *memRepo) CreateOntology(_ context.Context, o *Ontology) (EntityID, error) {
	if _, err := m.FindOntology(context.Background(), o.IRI); err == nil {
		return EntityID{}, ErrAlreadyExists
	}
	id := NewEntityID(EntityTypeOntology)
	o.ID = id.String()
	cp := *o
	m.ontologies[o.ID] = &cp
	return id, nil
}

func (m *memRepo) GetOntology(_ context.Context, id EntityID) (*Ontology, error) {
	o, ok := m.ontologies[id.String()]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (m *memRepo) FindOntology(_ context.Context, iri string) (*Ontology, error) {
	for _, o := range m.ontologies {
		if iri != "" && o.IRI == iri {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) UpdateOntology(_ context.Context, o *Ontology) error {
	if _, ok := m.ontologies[o.ID]; !ok {
		return ErrNotFound
	}
	cp := *o
	m.ontologies[o.ID] = &cp
	return nil
}

func (m *memRepo) ListOntologies(context.Context) ([]*Ontology, error) {
	out := make([]*Ontology, 0, len(m.ontologies))
	for _, o := range m.ontologies {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IRI < out[j].IRI })
	return out, nil
}

func (m *memRepo) DeleteOntology(_ context.Context, id EntityID) error {
	if _, ok := m.ontologies[id.String()]; !ok {
		return ErrNotFound
	}
	delete(m.ontologies, id.String())
	return nil
}

func (m *memRepo) CreateRun(_ context.Context, r *Run) (EntityID, error) {
	id := NewEntityID(EntityTypeRun)
	r.ID = id.String()
	m.runs = append(m.runs, r)
	return id, nil
}

func (m *memRepo) ListRuns(_ context.Context, ontologyID EntityID) ([]*Run, error) {
	var out []*Run
	for _, r := range m.runs {
		if r.OntologyID == ontologyID.String() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) Close() error { return nil }

func TestSaveOntologyUpsertsByIRI(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()

	first, err := SaveOntology(ctx, repo, zoo(), "zoo")
	if err != nil {
		t.Fatalf("first save: %v", err)
	}

	o := zoo()
	o.AddAxiom(owl.NewClassAssertion(owl.NewClass(ex+"Lion"), owl.NewIndividual(ex+"nala")))
	second, err := SaveOntology(ctx, repo, o, "")
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected update of %s, got new record %s", first.ID, second.ID)
	}
	if second.Name != "zoo" {
		t.Errorf("expected name to be kept, got %q", second.Name)
	}
	all, _ := repo.ListOntologies(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 stored ontology, got %d", len(all))
	}
	if all[0].Axioms != o.Len() {
		t.Errorf("expected %d axioms after update, got %d", o.Len(), all[0].Axioms)
	}
}

func TestSaveOntologyWithoutIRICreates(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()

	o := zoo()
	o.IRI = ""
	a, err := SaveOntology(ctx, repo, o, "a")
	if err != nil {
		t.Fatalf("save a: %v", err)
	}
	b, err := SaveOntology(ctx, repo, o, "b")
	if err != nil {
		t.Fatalf("save b: %v", err)
	}
	if a.ID == b.ID {
		t.Error("expected anonymous ontologies to get distinct records")
	}
}

type failingRepo struct{ memRepo }

func (f *failingRepo) FindOntology(context.Context, string) (*Ontology, error) {
	return nil, errors.New("backend down")
}

func TestSaveOntologyPropagatesLookupErrors(t *testing.T) {
	repo := &failingRepo{memRepo: *newMemRepo()}
	if _, err := SaveOntology(context.Background(), repo, zoo(), "zoo"); err == nil {
		t.Error("expected lookup error")
	}
}
