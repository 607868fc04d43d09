//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
			record_id UNINDEXED,
			classifier_id UNINDEXED,
			text,
			explanation,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, recordID, classifierID, text, explanation string) error {
	_, _ = tx.Exec(`DELETE FROM records_fts WHERE record_id = ?`, recordID)
	_, err := tx.Exec(`INSERT INTO records_fts (record_id, classifier_id, text, explanation) VALUES (?, ?, ?, ?)`,
		recordID, classifierID, text, explanation)
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDeleteClassifier(tx *sql.Tx, classifierID string) {
	_, _ = tx.Exec(`DELETE FROM records_fts WHERE classifier_id = ?`, classifierID)
}

// Search performs an FTS5 full-text search over history records, optionally
// scoped to one classifier.
func (db *DB) Search(query, classifierID string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	var (
		rows *sql.Rows
		err  error
	)
	if classifierID != "" {
		rows, err = db.conn.Query(`
			SELECT classifier_id,
			       record_id,
			       snippet(records_fts, 2, '<b>', '</b>', '...', 64)
			FROM records_fts
			WHERE records_fts MATCH ? AND classifier_id = ?
			ORDER BY rank
			LIMIT ?
		`, query, classifierID, limit)
	} else {
		rows, err = db.conn.Query(`
			SELECT classifier_id,
			       record_id,
			       snippet(records_fts, 2, '<b>', '</b>', '...', 64)
			FROM records_fts
			WHERE records_fts MATCH ?
			ORDER BY rank
			LIMIT ?
		`, query, limit)
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
