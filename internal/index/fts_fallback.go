//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses a LIKE fallback on the records table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _, _, _ string) error {
	// Text is already stored in the records table; nothing extra to do.
	return nil
}

func ftsDeleteClassifier(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query, classifierID string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	var (
		rows *sql.Rows
		err  error
	)
	if classifierID != "" {
		rows, err = db.conn.Query(`
			SELECT classifier_id, record_id, substr(text, 1, 200)
			FROM records
			WHERE (text LIKE ? OR explanation LIKE ?) AND classifier_id = ?
			LIMIT ?
		`, like, like, classifierID, limit)
	} else {
		rows, err = db.conn.Query(`
			SELECT classifier_id, record_id, substr(text, 1, 200)
			FROM records
			WHERE text LIKE ? OR explanation LIKE ?
			LIMIT ?
		`, like, like, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ClassifierID, &r.RecordID, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
