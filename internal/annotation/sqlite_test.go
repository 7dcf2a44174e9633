package annotation

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genomic-vcf-service/internal/domain"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "annotations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore_SeedsOnCreate(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	status, frequency, err := store.Lookup(ctx, "rs28897756")
	require.NoError(t, err)
	assert.Equal(t, domain.ClinVarPathogenic, status)
	assert.Equal(t, 0.0001, frequency)

	status, frequency, err = store.Lookup(ctx, "rs4680")
	require.NoError(t, err)
	assert.Equal(t, domain.ClinVarBenign, status)
	assert.Equal(t, 0.14, frequency)
}

func TestSQLiteStore_Lookup_MissWithoutFallback(t *testing.T) {
	store := newTestSQLiteStore(t)

	_, _, err := store.Lookup(context.Background(), "rs000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_Lookup_MissWithFallback(t *testing.T) {
	store := newTestSQLiteStore(t).WithFallback(NewMemoryStore(7))

	status, frequency, err := store.Lookup(context.Background(), "rs000000")
	require.NoError(t, err)
	assert.Equal(t, domain.ClinVarUncertain, status)
	assert.Greater(t, frequency, 0.0)
}

func TestSQLiteStore_Upsert(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	entry := Entry{Status: domain.ClinVarLikelyPathogenic, Frequency: 0.002}
	require.NoError(t, store.Upsert(ctx, "custom_1", entry))

	status, frequency, err := store.Lookup(ctx, "custom_1")
	require.NoError(t, err)
	assert.Equal(t, domain.ClinVarLikelyPathogenic, status)
	assert.Equal(t, 0.002, frequency)

	// Upsert replaces the existing row.
	updated := Entry{Status: domain.ClinVarBenign, Frequency: 0.2}
	require.NoError(t, store.Upsert(ctx, "custom_1", updated))

	status, frequency, err = store.Lookup(ctx, "custom_1")
	require.NoError(t, err)
	assert.Equal(t, domain.ClinVarBenign, status)
	assert.Equal(t, 0.2, frequency)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "annotations.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, "custom_2", Entry{Status: domain.ClinVarPathogenic, Frequency: 0.0003}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	status, frequency, err := reopened.Lookup(ctx, "custom_2")
	require.NoError(t, err)
	assert.Equal(t, domain.ClinVarPathogenic, status)
	assert.Equal(t, 0.0003, frequency)
}

func TestSQLiteStore_Health(t *testing.T) {
	store := newTestSQLiteStore(t)
	assert.NoError(t, store.Health(context.Background()))
}
