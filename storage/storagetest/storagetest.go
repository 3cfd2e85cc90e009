// Package storagetest checks that a storage.Repository honours the contract
// shared by every backend.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/owl"
	"github.com/c360studio/semowl/storage"
)

// OpenFunc returns an empty repository. Closing it is up to the caller.
type OpenFunc func(t *testing.T) storage.Repository

// Record builds an ontology record with two axioms.
func Record(t *testing.T, iri string) *storage.Ontology {
	t.Helper()
	o := owl.NewOntology(iri)
	o.AddAxioms(
		owl.Declare(owl.NewClass(iri+"#Lion")),
		owl.NewSubClassOf(owl.NewClass(iri+"#Lion"), owl.NewClass(iri+"#Cat")),
	)
	rec, err := storage.NewOntologyRecord(o, "zoo")
	require.NoError(t, err)
	return rec
}

// Run runs the repository contract against fresh repositories from open.
func Run(t *testing.T, open OpenFunc) {
	tests := []struct {
		name string
		fn   func(t *testing.T, repo storage.Repository)
	}{
		{"OntologyCRUD", ontologyCRUD},
		{"DuplicateIRI", duplicateIRI},
		{"UpdateToTakenIRI", updateToTakenIRI},
		{"UpdateMissing", updateMissing},
		{"AnonymousOntologies", anonymousOntologies},
		{"ListSortedByIRI", listSortedByIRI},
		{"Runs", runs},
		{"RunRequiresOntology", runRequiresOntology},
		{"SaveOntologyUpserts", saveOntologyUpserts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

func ontologyCRUD(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	rec := Record(t, "http://example.org/zoo")
	id, err := repo.CreateOntology(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, id.String(), rec.ID)

	got, err := repo.GetOntology(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rec.IRI, got.IRI)
	assert.Equal(t, rec.Document, got.Document)
	assert.Equal(t, rec.Axioms, got.Axioms)
	assert.False(t, got.CreatedAt.IsZero(), "created_at must be set")

	found, err := repo.FindOntology(ctx, rec.IRI)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, found.ID)

	got.Name = "renamed"
	require.NoError(t, repo.UpdateOntology(ctx, got))
	again, err := repo.GetOntology(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", again.Name)
	assert.False(t, again.CreatedAt.IsZero(), "update must keep created_at")

	require.NoError(t, repo.DeleteOntology(ctx, id))
	_, err = repo.GetOntology(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteOntology(ctx, id), storage.ErrNotFound)
}

func duplicateIRI(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	_, err := repo.CreateOntology(ctx, Record(t, "http://example.org/zoo"))
	require.NoError(t, err)
	_, err = repo.CreateOntology(ctx, Record(t, "http://example.org/zoo"))
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func updateToTakenIRI(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	_, err := repo.CreateOntology(ctx, Record(t, "http://example.org/a"))
	require.NoError(t, err)
	b := Record(t, "http://example.org/b")
	_, err = repo.CreateOntology(ctx, b)
	require.NoError(t, err)

	b.IRI = "http://example.org/a"
	assert.ErrorIs(t, repo.UpdateOntology(ctx, b), storage.ErrAlreadyExists)
}

func updateMissing(t *testing.T, repo storage.Repository) {
	rec := Record(t, "http://example.org/zoo")
	rec.ID = storage.NewEntityID(storage.EntityTypeOntology).String()
	assert.ErrorIs(t, repo.UpdateOntology(context.Background(), rec), storage.ErrNotFound)
}

func anonymousOntologies(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.CreateOntology(ctx, Record(t, ""))
		require.NoError(t, err, "create %d", i)
	}
	all, err := repo.ListOntologies(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repo.FindOntology(ctx, "")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func listSortedByIRI(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	for _, iri := range []string{"http://example.org/b", "http://example.org/a"} {
		_, err := repo.CreateOntology(ctx, Record(t, iri))
		require.NoError(t, err)
	}
	all, err := repo.ListOntologies(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "http://example.org/a", all[0].IRI)
	assert.Equal(t, "http://example.org/b", all[1].IRI)
}

func runs(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	id, err := repo.CreateOntology(ctx, Record(t, "http://example.org/zoo"))
	require.NoError(t, err)

	for _, r := range []*storage.Run{
		{OntologyID: id.String(), Kind: storage.RunKindReason, Inferences: 3, Iterations: 2, Duration: 15 * time.Millisecond},
		{OntologyID: id.String(), Kind: storage.RunKindValidate, Errors: 1, Issues: []string{"ERROR [disjoint] leo"}},
	} {
		_, err := repo.CreateRun(ctx, r)
		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)
	}

	got, err := repo.ListRuns(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, storage.RunKindReason, got[0].Kind)
	assert.Equal(t, 3, got[0].Inferences)
	assert.Equal(t, 15*time.Millisecond, got[0].Duration)
	assert.Equal(t, id.String(), got[0].OntologyID)
	assert.Equal(t, storage.RunKindValidate, got[1].Kind)
	assert.Len(t, got[1].Issues, 1)

	require.NoError(t, repo.DeleteOntology(ctx, id))
	got, err = repo.ListRuns(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got, "deleting an ontology deletes its runs")
}

func runRequiresOntology(t *testing.T, repo storage.Repository) {
	missing := storage.NewEntityID(storage.EntityTypeOntology)
	_, err := repo.CreateRun(context.Background(), &storage.Run{OntologyID: missing.String(), Kind: storage.RunKindReason})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func saveOntologyUpserts(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	o := owl.NewOntology("http://example.org/zoo")
	o.AddAxiom(owl.Declare(owl.NewClass("http://example.org/zoo#Lion")))
	first, err := storage.SaveOntology(ctx, repo, o, "zoo")
	require.NoError(t, err)

	o.AddAxiom(owl.Declare(owl.NewClass("http://example.org/zoo#Cat")))
	second, err := storage.SaveOntology(ctx, repo, o, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := repo.FindOntology(ctx, o.IRI)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Axioms)
	assert.Equal(t, "zoo", stored.Name)
}
