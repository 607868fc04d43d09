package index

import (
	"log/slog"

	"github.com/taxolabs/taxo/internal/models"
	"github.com/taxolabs/taxo/internal/storage"
)

// Sync rebuilds the index from the document store:
//   - every history record of every classifier is upserted
//   - classifiers no longer present in the store are removed
//
// Called at startup and after the watcher detects an external edit.
func Sync(db *DB, store storage.Store, logger *slog.Logger) error {
	classifiers, err := store.List()
	if err != nil {
		return err
	}

	indexed, err := db.AllClassifierIDs()
	if err != nil {
		return err
	}

	live := make(map[string]struct{}, len(classifiers))
	for i := range classifiers {
		c := &classifiers[i]
		live[c.ID] = struct{}{}
		for _, rec := range c.History {
			if err := db.UpsertRecord(c.ID, FromRecord(c.ID, rec)); err != nil {
				logger.Warn("sync: index record failed",
					slog.String("record", rec.ID),
					slog.String("error", err.Error()))
			}
		}
	}

	// Remove stale entries.
	for id := range indexed {
		if _, ok := live[id]; !ok {
			if err := db.DeleteClassifier(id); err != nil {
				logger.Warn("sync: delete failed", slog.String("classifier", id), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale classifier", slog.String("classifier", id))
			}
		}
	}

	return nil
}

// IndexClassification upserts a domain record (convenience for the
// service layer, which satisfies classify.HistoryIndex with it).
func (db *DB) IndexClassification(classifierID string, rec models.ClassificationRecord) error {
	return db.UpsertRecord(classifierID, FromRecord(classifierID, rec))
}

// FromRecord converts a domain record to its indexed projection.
func FromRecord(classifierID string, rec models.ClassificationRecord) Record {
	catID := ""
	if rec.CategoryID != nil {
		catID = *rec.CategoryID
	}
	return Record{
		RecordID:     rec.ID,
		ClassifierID: classifierID,
		Text:         rec.Text,
		Explanation:  rec.Explanation,
		CategoryID:   catID,
		Feedback:     string(rec.Feedback),
		CreatedAt:    rec.Timestamp,
	}
}
