// Package models defines the domain types for Taxo.
package models

import "time"

// DefaultCategoryColor is assigned when a category is created without one.
const DefaultCategoryColor = "#3b82f6"

// Confidence is the qualitative score the classification collaborator
// attaches to its choice.
type Confidence string

// Confidence levels.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Valid reports whether c is one of the known confidence levels.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// Verdict is a user-supplied correctness judgement on a classification record.
type Verdict string

// Feedback verdicts.
const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

// Valid reports whether v is a known verdict.
func (v Verdict) Valid() bool {
	return v == VerdictCorrect || v == VerdictIncorrect
}

// Classifier is the aggregate root: a named container of categories and
// classification history. Categories and records are owned exclusively by
// their classifier and are never shared.
type Classifier struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	Categories  []Category             `json:"categories"`
	History     []ClassificationRecord `json:"history"`
}

// Category is a user-defined label with a description and example texts
// that guide the collaborator. Its id never changes once assigned.
type Category struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color,omitempty"`
	Examples    []string `json:"examples"`
}

// HasExample reports whether text is already present in the example list
// (exact string match).
func (c *Category) HasExample(text string) bool {
	for _, e := range c.Examples {
		if e == text {
			return true
		}
	}
	return false
}

// AddExample appends text to the example list unless it is already present.
// Reports whether the list changed.
func (c *Category) AddExample(text string) bool {
	if c.HasExample(text) {
		return false
	}
	c.Examples = append(c.Examples, text)
	return true
}

// ClassificationRecord is one classification attempt and its outcome.
// Records are appended by the classify operation and mutated afterwards only
// by feedback, category-creation back-linking, and category-deletion
// unlinking.
type ClassificationRecord struct {
	ID                  string     `json:"id"`
	Text                string     `json:"text"`
	CategoryID          *string    `json:"categoryId"` // nil = unclassified
	Confidence          Confidence `json:"confidence"`
	Explanation         string     `json:"explanation"`
	Feedback            Verdict    `json:"feedback,omitempty"`
	CorrectedCategoryID string     `json:"correctedCategoryId,omitempty"`
	Timestamp           time.Time  `json:"timestamp"`
}

// Category returns the category with the given id, or nil.
func (c *Classifier) Category(id string) *Category {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// Record returns the history record with the given id, or nil.
func (c *Classifier) Record(id string) *ClassificationRecord {
	for i := range c.History {
		if c.History[i].ID == id {
			return &c.History[i]
		}
	}
	return nil
}
