package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

var _ ports.DocumentStore = (*DocumentStore)(nil)

const (
	createDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`
	selectDocument = `SELECT value FROM documents WHERE key = ?`
	upsertDocument = `INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// DocumentStore keeps JSON documents in a device-local SQLite table.
type DocumentStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewDocumentStore ensures the documents table exists on db.
func NewDocumentStore(ctx context.Context, db *sql.DB) (*DocumentStore, error) {
	if db == nil {
		return nil, errors.New("sqlite document store requires a database")
	}
	if _, err := db.ExecContext(ctx, createDocumentsTable); err != nil {
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}
	return &DocumentStore{db: db, now: time.Now}, nil
}

// Get returns the stored document or nil when the key is unknown.
func (s *DocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, selectDocument, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %q: %w", key, err)
	}
	return []byte(value), nil
}

// Set upserts the document stored under key.
func (s *DocumentStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertDocument, key, string(value), s.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}
	return nil
}
