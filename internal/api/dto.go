package api

import (
	"github.com/taxolabs/taxo/internal/index"
	"github.com/taxolabs/taxo/internal/models"
)

// CreateClassifierRequest is the request body for creating a classifier.
type CreateClassifierRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCategoryRequest is the request body for adding a category.
type CreateCategoryRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	Color       string   `json:"color"`
}

// UpdateCategoryRequest is the request body for a partial category edit.
// Examples is a pointer so that an explicitly supplied empty list (which
// clears the examples) can be told apart from an absent field.
type UpdateCategoryRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Examples    *[]string `json:"examples"`
	Color       string    `json:"color"`
}

// ClassifyRequest is the request body for classifying text.
type ClassifyRequest struct {
	ClassifierID string `json:"classifierId"`
	Text         string `json:"text"`
}

// FeedbackRequest is the request body for recording a verdict on a record.
type FeedbackRequest struct {
	ClassifierID        string `json:"classifierId"`
	HistoryID           string `json:"historyId"`
	Feedback            string `json:"feedback"`
	CorrectedCategoryID string `json:"correctedCategoryId"`
}

// SuggestCategoryRequest is the request body for a category suggestion.
type SuggestCategoryRequest struct {
	Examples           []string          `json:"examples"`
	ExistingCategories []models.Category `json:"existingCategories"`
}

// ClassifierListResponse wraps the classifier collection.
type ClassifierListResponse struct {
	Classifiers []models.Classifier `json:"classifiers"`
}

// SuccessResponse acknowledges a mutation with no other payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// SearchResponse wraps history search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}
