// Package index provides a SQLite-backed search index over classification
// history, with optional FTS5 full-text search.
//
// The JSON document store is the source of truth; the index is derived
// state and is rebuilt from the store by Sync.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS records (
	record_id     TEXT PRIMARY KEY,
	classifier_id TEXT NOT NULL,
	text          TEXT NOT NULL DEFAULT '',
	explanation   TEXT NOT NULL DEFAULT '',
	category_id   TEXT NOT NULL DEFAULT '',
	feedback      TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_records_classifier ON records(classifier_id);
`

// HistoryIndex defines the indexing operations. Consumers should depend on
// this interface rather than the concrete *DB type to facilitate testing.
type HistoryIndex interface {
	UpsertRecord(classifierID string, rec Record) error
	DeleteClassifier(classifierID string) error
	AllClassifierIDs() (map[string]struct{}, error)
	Search(query, classifierID string, limit int) ([]SearchResult, error)
	Close() error
}

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Verify *DB satisfies HistoryIndex at compile time.
var _ HistoryIndex = (*DB)(nil)

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
