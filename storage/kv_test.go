package storage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/natsserver"
	"github.com/c360studio/semowl/storage"
	"github.com/c360studio/semowl/storage/storagetest"
)

func TestKVStoreRepositoryContract(t *testing.T) {
	js := natsserver.NewTestJetStream(t)

	storagetest.Run(t, func(t *testing.T) storage.Repository {
		// Buckets are per subtest so every run starts empty.
		prefix := "T" + strings.ReplaceAll(strings.ToUpper(t.Name()), "/", "_")
		store, err := storage.NewKVStore(context.Background(), js, prefix)
		require.NoError(t, err)
		return store
	})
}

func TestNewKVStoreReusesBuckets(t *testing.T) {
	ctx := context.Background()
	js := natsserver.NewTestJetStream(t)

	first, err := storage.NewKVStore(ctx, js, "SEMOWL")
	require.NoError(t, err)
	rec := storagetest.Record(t, "http://example.org/zoo")
	_, err = first.CreateOntology(ctx, rec)
	require.NoError(t, err)

	second, err := storage.NewKVStore(ctx, js, "SEMOWL")
	require.NoError(t, err)
	got, err := second.FindOntology(ctx, rec.IRI)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
}
