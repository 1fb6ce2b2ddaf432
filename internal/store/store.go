// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists generated use cases in SQLite so earlier runs can
// be listed, re-rendered, and exported.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Sneha-B6/P-1/pkg/types"
)

const dbFile = "usecases.db"

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned when no use case has the requested ID.
var ErrNotFound = errors.New("use case not found")

// Store manages the use-case SQLite database.
type Store struct {
	db     *sql.DB
	dir    string
	logger *slog.Logger
}

// Open opens or creates dir/usecases.db and its schema. A nil logger means
// slog.Default().
func Open(cfg types.StoreConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir, logger: logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	logger.Debug("opened use case store", "path", dbPath)
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS use_cases (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			focus TEXT,
			user_story TEXT,
			narrative TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fields (
			use_case_id TEXT NOT NULL REFERENCES use_cases(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			content TEXT NOT NULL,
			found INTEGER NOT NULL,
			PRIMARY KEY (use_case_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_use_cases_created_at ON use_cases(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// NewID derives a stable identifier from the source name and narrative: the
// first 12 hex characters of their SHA-256.
func NewID(source, narrative string) string {
	sum := sha256.Sum256([]byte(source + "\x00" + narrative))
	return hex.EncodeToString(sum[:])[:12]
}

// Save inserts uc or replaces the stored use case with the same ID. An empty
// ID is filled with NewID and a zero CreatedAt with the current time.
func (s *Store) Save(ctx context.Context, uc *types.UseCase) error {
	if uc.ID == "" {
		uc.ID = NewID(uc.Source, uc.Narrative)
	}
	if uc.CreatedAt.IsZero() {
		uc.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO use_cases (id, source, focus, user_story, narrative, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source=excluded.source, focus=excluded.focus, user_story=excluded.user_story,
			narrative=excluded.narrative, created_at=excluded.created_at`,
		uc.ID, uc.Source, uc.Focus, uc.UserStory, uc.Narrative, uc.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upserting use case: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM fields WHERE use_case_id = ?`, uc.ID); err != nil {
		return fmt.Errorf("deleting old fields: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fields (use_case_id, position, label, content, found) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range uc.Fields {
		if _, err := stmt.ExecContext(ctx, uc.ID, i, string(f.Label), f.Content, f.Found); err != nil {
			return fmt.Errorf("inserting field %s: %w", f.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing use case %s: %w", uc.ID, err)
	}
	s.logger.Debug("saved use case", "id", uc.ID, "source", uc.Source, "fields", len(uc.Fields))
	return nil
}

// Get returns the use case with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (types.UseCase, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, focus, user_story, narrative, created_at FROM use_cases WHERE id = ?`, id)
	uc, err := scanUseCase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.UseCase{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.UseCase{}, fmt.Errorf("reading use case %s: %w", id, err)
	}

	uc.Fields, err = s.fields(ctx, id)
	if err != nil {
		return types.UseCase{}, err
	}
	return uc, nil
}

// List returns up to limit use cases, newest first. A limit of zero or less
// returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]types.UseCase, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, focus, user_story, narrative, created_at FROM use_cases
		 ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing use cases: %w", err)
	}

	var out []types.UseCase
	for rows.Next() {
		uc, err := scanUseCase(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning use case: %w", err)
		}
		out = append(out, uc)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating use cases: %w", err)
	}
	rows.Close()

	for i := range out {
		if out[i].Fields, err = s.fields(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Delete removes the use case with id and its fields.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM use_cases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting use case %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting use case %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) fields(ctx context.Context, id string) (types.FieldSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, content, found FROM fields WHERE use_case_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("reading fields of %s: %w", id, err)
	}
	defer rows.Close()

	var fs types.FieldSet
	for rows.Next() {
		var f types.Field
		var label string
		if err := rows.Scan(&label, &f.Content, &f.Found); err != nil {
			return nil, fmt.Errorf("scanning field of %s: %w", id, err)
		}
		f.Label = types.SectionLabel(label)
		fs = append(fs, f)
	}
	return fs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUseCase(row scanner) (types.UseCase, error) {
	var uc types.UseCase
	var focus, story sql.NullString
	var created string
	if err := row.Scan(&uc.ID, &uc.Source, &focus, &story, &uc.Narrative, &created); err != nil {
		return types.UseCase{}, err
	}
	uc.Focus = focus.String
	uc.UserStory = story.String

	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return types.UseCase{}, fmt.Errorf("parsing created_at %q: %w", created, err)
	}
	uc.CreatedAt = t
	return uc, nil
}
