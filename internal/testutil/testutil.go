// Package testutil provides shared test helpers: temporary stores and a
// scriptable collaborator stub.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/taxolabs/taxo/internal/llm"
	"github.com/taxolabs/taxo/internal/models"
	"github.com/taxolabs/taxo/internal/storage"
)

// TestStore creates a temporary JSON document store that is cleaned up
// with the test.
func TestStore(t *testing.T) *storage.File {
	t.Helper()
	store, err := storage.NewFile(filepath.Join(t.TempDir(), "classifiers.json"))
	if err != nil {
		t.Fatal(err)
	}
	return store
}

// StubLLM is a scriptable llm.Client. Zero value returns empty results;
// set Result/Suggestion or the error fields to steer behavior. It records
// the inputs of the last call for assertions.
type StubLLM struct {
	Result     *llm.ClassifyResult
	Suggestion *llm.Suggestion
	Err        error

	ClassifyCalls  int
	LastCategories []models.Category
	LastText       string
	LastExamples   []string
}

// Classify returns the scripted result or error.
func (s *StubLLM) Classify(_ context.Context, categories []models.Category, text string) (*llm.ClassifyResult, error) {
	s.ClassifyCalls++
	s.LastCategories = categories
	s.LastText = text
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Result != nil {
		r := *s.Result
		return &r, nil
	}
	return &llm.ClassifyResult{Confidence: models.ConfidenceLow}, nil
}

// SuggestCategory returns the scripted suggestion or error.
func (s *StubLLM) SuggestCategory(_ context.Context, examples []string, _ []models.Category) (*llm.Suggestion, error) {
	s.LastExamples = examples
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Suggestion != nil {
		sg := *s.Suggestion
		return &sg, nil
	}
	return &llm.Suggestion{Name: "stub", Description: "stub"}, nil
}

var _ llm.Client = (*StubLLM)(nil)
