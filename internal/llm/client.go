// Package llm wraps the external language-model collaborator used for
// classification and category suggestion.
package llm

import (
	"context"

	"github.com/taxolabs/taxo/internal/models"
)

// ClassifyResult is the collaborator's verdict on a piece of text.
//
// CategoryID is stored as returned: the caller does not validate that it
// belongs to the classifier, so a hallucinated id renders downstream as
// unclassified without being flagged.
type ClassifyResult struct {
	CategoryID  string            `json:"categoryId"`
	Confidence  models.Confidence `json:"confidence"`
	Explanation string            `json:"explanation"`
}

// Suggestion is a proposed category derived from a set of example texts.
type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Client is the collaborator interface. Both operations are network-bound
// and honor context cancellation; neither retries.
type Client interface {
	// Classify picks the best-fitting category for text.
	Classify(ctx context.Context, categories []models.Category, text string) (*ClassifyResult, error)
	// SuggestCategory proposes a name/description pair covering the given
	// examples, avoiding overlap with the existing categories.
	SuggestCategory(ctx context.Context, examples []string, existing []models.Category) (*Suggestion, error)
}
