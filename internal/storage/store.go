// Package storage persists the classifier collection as a single JSON
// document on local disk.
package storage

import "github.com/taxolabs/taxo/internal/models"

// Store is the interface for classifier document operations. Every write
// replaces the whole persisted document; reads reflect the latest
// completed write.
type Store interface {
	// List returns all classifiers in insertion order.
	List() ([]models.Classifier, error)
	// Get returns the classifier with the given id, or os.ErrNotExist.
	Get(id string) (*models.Classifier, error)
	// Save inserts the classifier if its id is unseen, else replaces it.
	Save(c *models.Classifier) error
	// Delete removes the classifier with the given id. Reports whether
	// anything was removed.
	Delete(id string) (bool, error)
	// Path returns the location of the backing document, for watchers.
	Path() string
}
