package index

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/taxolabs/taxo/internal/models"
	"github.com/taxolabs/taxo/internal/storage"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "taxo-index-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertAndSearch(t *testing.T) {
	db := testDB(t)

	rec := Record{
		RecordID:     "rec-1",
		ClassifierID: "clf-1",
		Text:         "my payment bounced yesterday",
		Explanation:  "billing issue",
		CategoryID:   "cat-1",
		CreatedAt:    time.Now(),
	}
	if err := db.UpsertRecord("clf-1", rec); err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}

	hits, err := db.Search("payment", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].RecordID != "rec-1" || hits[0].ClassifierID != "clf-1" {
		t.Errorf("hits = %+v", hits)
	}

	// Upsert with same id must replace, not duplicate.
	rec.Text = "completely different words now"
	if err := db.UpsertRecord("clf-1", rec); err != nil {
		t.Fatal(err)
	}
	hits, _ = db.Search("payment", "", 10)
	if len(hits) != 0 {
		t.Errorf("stale text still searchable: %+v", hits)
	}
	hits, _ = db.Search("different", "", 10)
	if len(hits) != 1 {
		t.Errorf("replaced text not searchable: %+v", hits)
	}
}

func TestSearch_ScopedToClassifier(t *testing.T) {
	db := testDB(t)

	for i, clf := range []string{"clf-a", "clf-b"} {
		rec := Record{
			RecordID:     []string{"rec-a", "rec-b"}[i],
			ClassifierID: clf,
			Text:         "shared token appears in both",
		}
		if err := db.UpsertRecord(clf, rec); err != nil {
			t.Fatal(err)
		}
	}

	hits, err := db.Search("shared", "clf-b", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].ClassifierID != "clf-b" {
		t.Errorf("scoped hits = %+v", hits)
	}

	hits, _ = db.Search("shared", "", 10)
	if len(hits) != 2 {
		t.Errorf("unscoped hits = %d, want 2", len(hits))
	}
}

func TestDeleteClassifier(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertRecord("clf-1", Record{RecordID: "rec-1", ClassifierID: "clf-1", Text: "findme"}); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteClassifier("clf-1"); err != nil {
		t.Fatalf("DeleteClassifier: %v", err)
	}
	hits, _ := db.Search("findme", "", 10)
	if len(hits) != 0 {
		t.Errorf("records survive classifier deletion: %+v", hits)
	}
}

func TestSync_RebuildsAndPrunes(t *testing.T) {
	db := testDB(t)
	store, err := storage.NewFile(t.TempDir() + "/classifiers.json")
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	catID := "cat-1"
	c := &models.Classifier{
		ID: "clf-live", Name: "live", CreatedAt: time.Now(),
		Categories: []models.Category{{ID: catID, Name: "n", Description: "d", Examples: []string{}}},
		History: []models.ClassificationRecord{
			{ID: "rec-live", Text: "indexable words", CategoryID: &catID, Confidence: models.ConfidenceHigh, Timestamp: time.Now()},
		},
	}
	if err := store.Save(c); err != nil {
		t.Fatal(err)
	}

	// Stale classifier present only in the index.
	if err := db.UpsertRecord("clf-stale", Record{RecordID: "rec-stale", ClassifierID: "clf-stale", Text: "stale"}); err != nil {
		t.Fatal(err)
	}

	if err := Sync(db, store, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	hits, _ := db.Search("indexable", "", 10)
	if len(hits) != 1 {
		t.Errorf("live record not indexed: %+v", hits)
	}
	hits, _ = db.Search("stale", "", 10)
	if len(hits) != 0 {
		t.Errorf("stale classifier not pruned: %+v", hits)
	}
}
