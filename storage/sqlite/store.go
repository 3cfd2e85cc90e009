// Package sqlite provides a SQLite-backed ontology repository.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/c360studio/semowl/storage"
	"github.com/c360studio/semowl/storage/sqlite/migrations"
)

// Store persists ontologies and runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Repository = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store, creating the file and its directory when
// needed, and applies the embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	dsn := "file:" + cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// CreateOntology inserts an ontology and returns its ID.
func (s *Store) CreateOntology(ctx context.Context, o *storage.Ontology) (storage.EntityID, error) {
	if err := s.ready(ctx); err != nil {
		return storage.EntityID{}, err
	}
	if strings.TrimSpace(o.Document) == "" {
		return storage.EntityID{}, fmt.Errorf("ontology document is required")
	}
	id := storage.NewEntityID(storage.EntityTypeOntology)
	now := time.Now().UTC()

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO ontologies (id, iri, name, document, axioms, rules, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.ID, o.IRI, o.Name, o.Document, o.Axioms, o.Rules, toMillis(now), toMillis(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.EntityID{}, fmt.Errorf("ontology %s: %w", o.IRI, storage.ErrAlreadyExists)
		}
		return storage.EntityID{}, fmt.Errorf("create ontology: %w", err)
	}
	o.ID = id.String()
	o.CreatedAt = now
	o.UpdatedAt = now
	return id, nil
}

const ontologyColumns = `id, iri, name, document, axioms, rules, created_at, updated_at`

func scanOntology(row interface{ Scan(...any) error }) (*storage.Ontology, error) {
	var (
		o                storage.Ontology
		key              string
		created, updated int64
	)
	if err := row.Scan(&key, &o.IRI, &o.Name, &o.Document, &o.Axioms, &o.Rules, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("scan ontology: %w", err)
	}
	o.ID = storage.EntityID{Type: storage.EntityTypeOntology, ID: key}.String()
	o.CreatedAt = fromMillis(created)
	o.UpdatedAt = fromMillis(updated)
	return &o, nil
}

// GetOntology returns one ontology by ID.
func (s *Store) GetOntology(ctx context.Context, id storage.EntityID) (*storage.Ontology, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if id.Type != storage.EntityTypeOntology {
		return nil, fmt.Errorf("invalid entity type: expected ontology, got %s", id.Type)
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+ontologyColumns+` FROM ontologies WHERE id = ?`, id.ID)
	return scanOntology(row)
}

// FindOntology returns the ontology with the given IRI.
func (s *Store) FindOntology(ctx context.Context, iri string) (*storage.Ontology, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if iri == "" {
		return nil, storage.ErrNotFound
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+ontologyColumns+` FROM ontologies WHERE iri = ?`, iri)
	return scanOntology(row)
}

// UpdateOntology replaces the stored fields of an ontology.
func (s *Store) UpdateOntology(ctx context.Context, o *storage.Ontology) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := storage.ParseEntityID(o.ID)
	if err != nil {
		return fmt.Errorf("parse ontology ID: %w", err)
	}
	now := time.Now().UTC()
	res, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE ontologies SET iri = ?, name = ?, document = ?, axioms = ?, rules = ?, updated_at = ?
		 WHERE id = ?`,
		o.IRI, o.Name, o.Document, o.Axioms, o.Rules, toMillis(now), id.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ontology %s: %w", o.IRI, storage.ErrAlreadyExists)
		}
		return fmt.Errorf("update ontology: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	o.UpdatedAt = now
	return nil
}

// ListOntologies returns all ontologies sorted by IRI.
func (s *Store) ListOntologies(ctx context.Context) ([]*storage.Ontology, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+ontologyColumns+` FROM ontologies ORDER BY iri, id`)
	if err != nil {
		return nil, fmt.Errorf("list ontologies: %w", err)
	}
	defer rows.Close()

	var out []*storage.Ontology
	for rows.Next() {
		o, err := scanOntology(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ontologies: %w", err)
	}
	return out, nil
}

// DeleteOntology removes an ontology and its runs.
func (s *Store) DeleteOntology(ctx context.Context, id storage.EntityID) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE ontology_id = ?`, id.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete runs: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM ontologies WHERE id = ?`, id.ID)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete ontology: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		_ = tx.Rollback()
		return storage.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// CreateRun records a run of a stored ontology.
func (s *Store) CreateRun(ctx context.Context, r *storage.Run) (storage.EntityID, error) {
	if err := s.ready(ctx); err != nil {
		return storage.EntityID{}, err
	}
	ontologyID, err := storage.ParseEntityID(r.OntologyID)
	if err != nil {
		return storage.EntityID{}, fmt.Errorf("parse ontology ID: %w", err)
	}
	issues, err := json.Marshal(r.Issues)
	if err != nil {
		return storage.EntityID{}, fmt.Errorf("marshal issues: %w", err)
	}
	if r.Issues == nil {
		issues = []byte("[]")
	}
	id := storage.NewEntityID(storage.EntityTypeRun)
	now := time.Now().UTC()

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO runs (id, ontology_id, kind, inferences, iterations, errors, warnings, issues, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.ID, ontologyID.ID, string(r.Kind), r.Inferences, r.Iterations, r.Errors, r.Warnings,
		string(issues), r.Duration.Milliseconds(), toMillis(now),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.EntityID{}, fmt.Errorf("ontology %s: %w", r.OntologyID, storage.ErrNotFound)
		}
		return storage.EntityID{}, fmt.Errorf("create run: %w", err)
	}
	r.ID = id.String()
	r.CreatedAt = now
	return id, nil
}

// ListRuns returns the runs of an ontology, oldest first.
func (s *Store) ListRuns(ctx context.Context, ontologyID storage.EntityID) ([]*storage.Run, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, kind, inferences, iterations, errors, warnings, issues, duration_ms, created_at
		 FROM runs WHERE ontology_id = ? ORDER BY created_at, rowid`,
		ontologyID.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []*storage.Run
	for rows.Next() {
		var (
			r                 storage.Run
			key, kind, issues string
			durationMS, at    int64
		)
		if err := rows.Scan(&key, &kind, &r.Inferences, &r.Iterations, &r.Errors, &r.Warnings, &issues, &durationMS, &at); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(issues), &r.Issues); err != nil {
			return nil, fmt.Errorf("unmarshal issues: %w", err)
		}
		r.ID = storage.EntityID{Type: storage.EntityTypeRun, ID: key}.String()
		r.OntologyID = ontologyID.String()
		r.Kind = storage.RunKind(kind)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = fromMillis(at)
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}
