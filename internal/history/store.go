// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records every file reportsmith writes in a SQLite
// database so reruns can be compared by content hash.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/reportsmith/pkg/types"
)

const dbFile = "reportsmith.db"

// Change compares an entry with the previous entry for the same path.
type Change string

const (
	ChangeNew       Change = "new"
	ChangeChanged   Change = "changed"
	ChangeUnchanged Change = "unchanged"
)

// Entry is one recorded artifact.
type Entry struct {
	ID             int64 `json:"id" yaml:"id"`
	types.Artifact `yaml:",inline"`
	Change         Change `json:"change" yaml:"change"`
}

// Store manages the history database.
type Store struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// Open opens or creates dir/reportsmith.db and its schema.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
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
		`CREATE TABLE IF NOT EXISTS artifacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			kind TEXT NOT NULL,
			size INTEGER NOT NULL,
			sha256 TEXT NOT NULL,
			status TEXT,
			change TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_path ON artifacts(path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a, comparing its hash with the latest entry for the same
// path. A zero CreatedAt is set to the current time.
func (s *Store) Record(ctx context.Context, a types.Artifact) (Entry, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}

	change := ChangeNew
	var prev string
	err := s.db.QueryRowContext(ctx,
		`SELECT sha256 FROM artifacts WHERE path = ? ORDER BY id DESC LIMIT 1`, a.Path,
	).Scan(&prev)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Entry{}, fmt.Errorf("querying previous entry: %w", err)
	case prev == a.SHA256:
		change = ChangeUnchanged
	default:
		change = ChangeChanged
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO artifacts (name, path, kind, size, sha256, status, change, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Path, string(a.Kind), a.Size, a.SHA256, string(a.Status), string(change),
		a.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting %s: %w", a.Path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("reading entry id: %w", err)
	}
	return Entry{ID: id, Artifact: a, Change: change}, nil
}

// List returns the newest entries first. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, path, kind, size, sha256, status, change, created_at
		 FROM artifacts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                   Entry
			kind, change, stamp string
			status              sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Path, &kind, &e.Size, &e.SHA256, &status, &change, &stamp); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Kind = types.ArtifactKind(kind)
		e.Status = types.RenderStatus(status.String)
		e.Change = Change(change)
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", stamp, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// Describe builds an artifact for the file at path, hashing its contents.
func Describe(name, path string, kind types.ArtifactKind, status types.RenderStatus) (types.Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Artifact{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return types.Artifact{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return types.Artifact{
		Name:   name,
		Path:   path,
		Kind:   kind,
		Size:   n,
		SHA256: hex.EncodeToString(h.Sum(nil)),
		Status: status,
	}, nil
}
