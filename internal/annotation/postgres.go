package annotation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/genomic-vcf-service/internal/domain"
)

// PostgresStore is an annotation source backed by PostgreSQL. It expects
// the schema to already exist (created via migrations). Misses return
// domain.ErrNotFound unless a fallback source is installed.
type PostgresStore struct {
	GeneCatalog

	db       *sql.DB
	fallback domain.AnnotationSource
}

// NewPostgresStore creates a store over an existing connection.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDSN opens a connection with pool settings applied.
func NewPostgresStoreFromDSN(dsn string, cfg domain.DatabaseConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MinConns)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// WithFallback installs a source consulted when an identifier has no row.
func (s *PostgresStore) WithFallback(fallback domain.AnnotationSource) *PostgresStore {
	s.fallback = fallback
	return s
}

// Lookup resolves clinical status and population frequency for a variant
// identifier, falling back when configured.
func (s *PostgresStore) Lookup(ctx context.Context, variantID string) (domain.ClinVarStatus, float64, error) {
	var status string
	var frequency float64

	err := s.db.QueryRowContext(ctx,
		"SELECT clinvar_status, population_frequency FROM variant_annotations WHERE variant_id = $1",
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
func (s *PostgresStore) Upsert(ctx context.Context, variantID string, entry Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO variant_annotations (variant_id, clinvar_status, population_frequency)
		VALUES ($1, $2, $3)
		ON CONFLICT (variant_id) DO UPDATE SET
			clinvar_status = EXCLUDED.clinvar_status,
			population_frequency = EXCLUDED.population_frequency
	`, variantID, string(entry.Status), entry.Frequency)
	if err != nil {
		return fmt.Errorf("upserting annotation for %s: %w", variantID, err)
	}
	return nil
}

// SeedIfEmpty loads the bundled dataset into an empty table.
func (s *PostgresStore) SeedIfEmpty(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM variant_annotations").Scan(&count); err != nil {
		return fmt.Errorf("counting annotations: %w", err)
	}
	if count > 0 {
		return nil
	}

	for id, entry := range SeedData() {
		if err := s.Upsert(ctx, id, entry); err != nil {
			return err
		}
	}
	return nil
}

// Health checks the database connection.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
