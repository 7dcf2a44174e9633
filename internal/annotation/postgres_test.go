package annotation

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genomic-vcf-service/internal/domain"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectPing()

	store, err := NewPostgresStore(db)
	require.NoError(t, err)

	return store, mock
}

func TestNewPostgresStore_RequiresConnection(t *testing.T) {
	_, err := NewPostgresStore(nil)
	assert.Error(t, err)
}

func TestPostgresStore_Lookup(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	rows := sqlmock.NewRows([]string{"clinvar_status", "population_frequency"}).
		AddRow("Pathogenic", 0.0001)
	mock.ExpectQuery("SELECT clinvar_status, population_frequency FROM variant_annotations").
		WithArgs("rs28897756").
		WillReturnRows(rows)

	status, frequency, err := store.Lookup(context.Background(), "rs28897756")
	require.NoError(t, err)
	assert.Equal(t, domain.ClinVarPathogenic, status)
	assert.Equal(t, 0.0001, frequency)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Lookup_MissWithoutFallback(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT clinvar_status, population_frequency FROM variant_annotations").
		WithArgs("rs000000").
		WillReturnRows(sqlmock.NewRows([]string{"clinvar_status", "population_frequency"}))

	_, _, err := store.Lookup(context.Background(), "rs000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Lookup_MissWithFallback(t *testing.T) {
	store, mock := newMockPostgresStore(t)
	store.WithFallback(NewMemoryStore(7))

	mock.ExpectQuery("SELECT clinvar_status, population_frequency FROM variant_annotations").
		WithArgs("rs000000").
		WillReturnRows(sqlmock.NewRows([]string{"clinvar_status", "population_frequency"}))

	status, frequency, err := store.Lookup(context.Background(), "rs000000")
	require.NoError(t, err)
	assert.Equal(t, domain.ClinVarUncertain, status)
	assert.Greater(t, frequency, 0.0)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Upsert(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectExec("INSERT INTO variant_annotations").
		WithArgs("custom_1", "Likely Pathogenic", 0.002).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Upsert(context.Background(), "custom_1", Entry{
		Status:    domain.ClinVarLikelyPathogenic,
		Frequency: 0.002,
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SeedIfEmpty_SkipsPopulatedTable(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(46))

	require.NoError(t, store.SeedIfEmpty(context.Background()))

	// No inserts were issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Health(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectPing()
	assert.NoError(t, store.Health(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
