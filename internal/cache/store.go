// Package cache implements the persistent analysis cache (spec.md
// §6.5): a key-value store keyed by module qualified name, holding an
// opaque serialized analysis result, consulted before parsing. Backend
// grounded on termfx-morfx's internal/db/db.go (database/sql +
// lock-retry wrapper around Exec), adapted from mattn/go-sqlite3 (cgo)
// to modernc.org/sqlite (pure Go, matching SPEC_FULL.md's DOMAIN STACK
// choice so the analyzer has no cgo build requirement).
package cache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const maxRetries = 5

// Store is the cache contract (spec.md §6.5): Get before parsing, Put
// after successful analysis of Library modules only.
type Store interface {
	Get(qualifiedName string) ([]byte, bool, error)
	Put(qualifiedName string, data []byte) error
	Close() error
}

// SQLiteStore implements Store over a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path and
// applies the schema migration.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db %s: %w", path, err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating cache db %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS analysis_cache (
	id TEXT PRIMARY KEY,
	qualified_name TEXT NOT NULL UNIQUE,
	payload BLOB NOT NULL,
	written_at INTEGER NOT NULL
)`)
	return err
}

func (s *SQLiteStore) Get(qualifiedName string) ([]byte, bool, error) {
	row := s.db.QueryRow(`SELECT payload FROM analysis_cache WHERE qualified_name = ?`, qualifiedName)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache entry %s: %w", qualifiedName, err)
	}
	return payload, true, nil
}

func (s *SQLiteStore) Put(qualifiedName string, data []byte) error {
	_, err := execWithRetry(s.db,
		`INSERT INTO analysis_cache (id, qualified_name, payload, written_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(qualified_name) DO UPDATE SET payload = excluded.payload, written_at = excluded.written_at`,
		uuid.NewString(), qualifiedName, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", qualifiedName, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// execWithRetry retries on "database is locked", grounded on
// termfx-morfx's internal/db/db.go execWithRetry.
func execWithRetry(db *sql.DB, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	var err error
	for i := 0; i < maxRetries; i++ {
		res, err = db.Exec(query, args...)
		if err == nil {
			return res, nil
		}
		if strings.Contains(err.Error(), "locked") {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("database is locked after %d retries: %w", maxRetries, err)
}
