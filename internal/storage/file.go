package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taxolabs/taxo/internal/models"
)

// document is the persisted shape: {"classifiers": [...]}.
type document struct {
	Classifiers []models.Classifier `json:"classifiers"`
}

// File implements Store backed by a single JSON file. The file is created
// with an empty collection on first access. Writes are atomic at the file
// level: tmp file → fsync → rename.
type File struct {
	path string // absolute path to the JSON document
}

// NewFile creates a File store at the given path, creating parent
// directories and an empty document if the file does not exist yet.
func NewFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve path: %w", err)
	}
	f := &File{path: abs}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		if err := f.write(&document{Classifiers: []models.Classifier{}}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("storage: stat %s: %w", abs, err)
	}
	return f, nil
}

// Path returns the absolute path of the backing document.
func (f *File) Path() string {
	return f.path
}

// List returns all classifiers in insertion order.
func (f *File) List() ([]models.Classifier, error) {
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return doc.Classifiers, nil
}

// Get returns the classifier with the given id, or a wrapped os.ErrNotExist.
func (f *File) Get(id string) (*models.Classifier, error) {
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Classifiers {
		if doc.Classifiers[i].ID == id {
			return &doc.Classifiers[i], nil
		}
	}
	return nil, fmt.Errorf("storage: classifier %s: %w", id, os.ErrNotExist)
}

// Save inserts the classifier if its id is unseen, else fully replaces it.
func (f *File) Save(c *models.Classifier) error {
	doc, err := f.read()
	if err != nil {
		return err
	}
	replaced := false
	for i := range doc.Classifiers {
		if doc.Classifiers[i].ID == c.ID {
			doc.Classifiers[i] = *c
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Classifiers = append(doc.Classifiers, *c)
	}
	return f.write(doc)
}

// Delete removes the classifier with the given id and everything it owns.
func (f *File) Delete(id string) (bool, error) {
	doc, err := f.read()
	if err != nil {
		return false, err
	}
	kept := doc.Classifiers[:0]
	for _, c := range doc.Classifiers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(doc.Classifiers) {
		return false, nil
	}
	doc.Classifiers = kept
	return true, f.write(doc)
}

func (f *File) read() (*document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Recreate if removed out from under us.
			empty := &document{Classifiers: []models.Classifier{}}
			if werr := f.write(empty); werr != nil {
				return nil, werr
			}
			return empty, nil
		}
		return nil, fmt.Errorf("storage: read %s: %w", f.path, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("storage: parse %s: %w", f.path, err)
	}
	if doc.Classifiers == nil {
		doc.Classifiers = []models.Classifier{}
	}
	return &doc, nil
}

// write replaces the document atomically: tmp file → fsync → rename.
func (f *File) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".taxo-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}
