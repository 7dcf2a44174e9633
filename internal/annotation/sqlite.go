package annotation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/genomic-vcf-service/internal/domain"
)

// SQLiteStore is a file-backed annotation source using SQLite. The schema
// is created on open and seeded from the bundled dataset when empty.
// Misses return domain.ErrNotFound unless a fallback source is installed.
type SQLiteStore struct {
	GeneCatalog

	db       *sql.DB
	dbPath   string
	fallback domain.AnnotationSource
}

// NewSQLiteStore opens (creating if necessary) the annotation database at
// dbPath, applies the schema and seeds it when empty.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for concurrent readers during request handling.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSQLiteSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	store := &SQLiteStore{db: db, dbPath: dbPath}
	if err := store.seedIfEmpty(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed annotations: %w", err)
	}

	return store, nil
}

// WithFallback installs a source consulted when an identifier has no row.
// Returns the store for chaining.
func (s *SQLiteStore) WithFallback(fallback domain.AnnotationSource) *SQLiteStore {
	s.fallback = fallback
	return s
}

func createSQLiteSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS variant_annotations (
		variant_id TEXT PRIMARY KEY,
		clinvar_status TEXT NOT NULL,
		population_frequency REAL NOT NULL CHECK (population_frequency >= 0 AND population_frequency <= 1),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_annotations_status ON variant_annotations(clinvar_status);
	`
	_, err := db.Exec(schema)
	return err
}

// seedIfEmpty loads the bundled dataset into an empty table.
func (s *SQLiteStore) seedIfEmpty() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM variant_annotations").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO variant_annotations (variant_id, clinvar_status, population_frequency) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, entry := range SeedData() {
		if _, err := stmt.Exec(id, string(entry.Status), entry.Frequency); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Lookup resolves clinical status and population frequency for a variant
// identifier from the database, falling back when configured.
func (s *SQLiteStore) Lookup(ctx context.Context, variantID string) (domain.ClinVarStatus, float64, error) {
	var status string
	var frequency float64

	err := s.db.QueryRowContext(ctx,
		"SELECT clinvar_status, population_frequency FROM variant_annotations WHERE variant_id = ?",
		variantID,
	).Scan(&status, &frequency)

	if errors.Is(err, sql.ErrNoRows) {
		if s.fallback != nil {
			return s.fallback.Lookup(ctx, variantID)
		}
		return "", 0, fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}
	if err != nil {
		return "", 0, fmt.Errorf("querying annotation for %s: %w", variantID, err)
	}

	return domain.ClinVarStatus(status), frequency, nil
}

// Upsert stores or replaces the annotation for a variant identifier.
func (s *SQLiteStore) Upsert(ctx context.Context, variantID string, entry Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO variant_annotations (variant_id, clinvar_status, population_frequency)
		VALUES (?, ?, ?)
		ON CONFLICT(variant_id) DO UPDATE SET
			clinvar_status = excluded.clinvar_status,
			population_frequency = excluded.population_frequency
	`, variantID, string(entry.Status), entry.Frequency)
	if err != nil {
		return fmt.Errorf("upserting annotation for %s: %w", variantID, err)
	}
	return nil
}

// Health checks the database connection.
func (s *SQLiteStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
