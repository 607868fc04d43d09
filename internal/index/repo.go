package index

import (
	"fmt"
	"time"
)

// Record is the indexed projection of a classification record.
type Record struct {
	RecordID     string
	ClassifierID string
	Text         string
	Explanation  string
	CategoryID   string
	Feedback     string
	CreatedAt    time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	ClassifierID string `json:"classifierId"`
	RecordID     string `json:"recordId"`
	Snippet      string `json:"snippet"`
}

// UpsertRecord inserts or replaces a record and its FTS entry within a
// transaction.
func (db *DB) UpsertRecord(classifierID string, rec Record) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO records (record_id, classifier_id, text, explanation, category_id, feedback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(record_id) DO UPDATE SET
			classifier_id = excluded.classifier_id,
			text          = excluded.text,
			explanation   = excluded.explanation,
			category_id   = excluded.category_id,
			feedback      = excluded.feedback,
			created_at    = excluded.created_at
	`, rec.RecordID, classifierID, rec.Text, rec.Explanation, rec.CategoryID, rec.Feedback, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert record: %w", err)
	}

	if err := ftsUpsert(tx, rec.RecordID, classifierID, rec.Text, rec.Explanation); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteClassifier removes every indexed record of a classifier.
func (db *DB) DeleteClassifier(classifierID string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDeleteClassifier(tx, classifierID)
	_, _ = tx.Exec(`DELETE FROM records WHERE classifier_id = ?`, classifierID)

	return tx.Commit()
}

// AllClassifierIDs returns every classifier id present in the index.
func (db *DB) AllClassifierIDs() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT classifier_id FROM records`)
	if err != nil {
		return nil, fmt.Errorf("index: all classifier ids: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}
