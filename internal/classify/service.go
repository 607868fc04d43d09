// Package classify implements the classifier aggregate: category lifecycle,
// classification history, and feedback-driven example maintenance.
package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/taxolabs/taxo/internal/apperr"
	"github.com/taxolabs/taxo/internal/ids"
	"github.com/taxolabs/taxo/internal/llm"
	"github.com/taxolabs/taxo/internal/models"
	"github.com/taxolabs/taxo/internal/storage"
)

// HistoryIndex receives classification records for search. Implementations
// are best-effort: index failures are logged, never surfaced to callers.
type HistoryIndex interface {
	IndexClassification(classifierID string, rec models.ClassificationRecord) error
	DeleteClassifier(classifierID string) error
}

// Notifier receives change notifications for connected UIs.
type Notifier interface {
	Notify(kind string, data map[string]string)
}

// Service owns all mutations of the classifier document. The persisted
// document has no versioning, so every read-modify-write cycle runs under
// a single mutex; last-writer-wins races between requests cannot occur
// within one process.
type Service struct {
	mu       sync.Mutex
	store    storage.Store
	llm      llm.Client
	idx      HistoryIndex // may be nil
	notifier Notifier     // may be nil
	logger   *slog.Logger
}

// NewService creates the classifier service. idx and notifier may be nil.
func NewService(store storage.Store, client llm.Client, idx HistoryIndex, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, llm: client, idx: idx, notifier: notifier, logger: logger}
}

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name        string
	Description string
	Examples    []string
	Color       string
}

// CategoryUpdate is a partial category edit. Zero-value fields keep their
// prior value, except Examples: a non-nil pointer replaces the list even
// when it points at an empty slice, so callers can clear examples.
type CategoryUpdate struct {
	ID          string
	Name        string
	Description string
	Color       string
	Examples    *[]string
}

// ListClassifiers returns every classifier in insertion order.
func (s *Service) ListClassifiers(_ context.Context) ([]models.Classifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

// GetClassifier returns one classifier by id.
func (s *Service) GetClassifier(_ context.Context, id string) (*models.Classifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

// CreateClassifier creates an empty classifier.
func (s *Service) CreateClassifier(_ context.Context, name, description string) (*models.Classifier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: classifier name is required", apperr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := &models.Classifier{
		ID:          ids.New(ids.ClassifierPrefix),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		Categories:  []models.Category{},
		History:     []models.ClassificationRecord{},
	}
	if err := s.store.Save(c); err != nil {
		return nil, err
	}
	s.notify("classifier.created", map[string]string{"id": c.ID})
	return c, nil
}

// DeleteClassifier removes a classifier and everything it owns.
func (s *Service) DeleteClassifier(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.store.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("classifier %s: %w", id, apperr.ErrNotFound)
	}
	if s.idx != nil {
		if err := s.idx.DeleteClassifier(id); err != nil {
			s.logger.Warn("index: delete classifier failed", slog.String("id", id), slog.String("error", err.Error()))
		}
	}
	s.notify("classifier.deleted", map[string]string{"id": id})
	return nil
}

// AddCategory appends a new category to the classifier. Unclassified
// history records whose text exactly matches one of the supplied examples
// are retroactively adopted: linked to the new category and marked as
// originally-missed (feedback = incorrect, corrected to the new id).
func (s *Service) AddCategory(_ context.Context, classifierID string, in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: category name and description are required", apperr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.getLocked(classifierID)
	if err != nil {
		return nil, err
	}

	cat := models.Category{
		ID:          ids.New(ids.CategoryPrefix),
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Examples:    in.Examples,
	}
	if cat.Color == "" {
		cat.Color = models.DefaultCategoryColor
	}
	if cat.Examples == nil {
		cat.Examples = []string{}
	}
	c.Categories = append(c.Categories, cat)

	if len(in.Examples) > 0 {
		seed := make(map[string]struct{}, len(in.Examples))
		for _, e := range in.Examples {
			seed[e] = struct{}{}
		}
		for i := range c.History {
			rec := &c.History[i]
			if rec.CategoryID != nil {
				continue
			}
			if _, ok := seed[rec.Text]; !ok {
				continue
			}
			id := cat.ID
			rec.CategoryID = &id
			rec.Feedback = models.VerdictIncorrect
			rec.CorrectedCategoryID = cat.ID
		}
	}

	if err := s.store.Save(c); err != nil {
		return nil, err
	}
	s.notify("classifier.updated", map[string]string{"id": c.ID})
	return &c.Categories[len(c.Categories)-1], nil
}

// UpdateCategory merges the supplied fields over the existing category.
func (s *Service) UpdateCategory(_ context.Context, classifierID string, in CategoryUpdate) (*models.Category, error) {
	if in.ID == "" {
		return nil, fmt.Errorf("%w: category id is required", apperr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.getLocked(classifierID)
	if err != nil {
		return nil, err
	}
	cat := c.Category(in.ID)
	if cat == nil {
		return nil, fmt.Errorf("category %s: %w", in.ID, apperr.ErrNotFound)
	}

	if in.Name != "" {
		cat.Name = in.Name
	}
	if in.Description != "" {
		cat.Description = in.Description
	}
	if in.Color != "" {
		cat.Color = in.Color
	}
	if in.Examples != nil {
		cat.Examples = *in.Examples
		if cat.Examples == nil {
			cat.Examples = []string{}
		}
	}

	if err := s.store.Save(c); err != nil {
		return nil, err
	}
	s.notify("classifier.updated", map[string]string{"id": c.ID})
	out := *cat
	return &out, nil
}

// DeleteCategory removes a category and unlinks every history record that
// points to it. Records assigned to the category revert to unclassified
// with their feedback discarded; records that only name it as a correction
// target lose just the correction. Records themselves are never deleted.
func (s *Service) DeleteCategory(_ context.Context, classifierID, categoryID string) error {
	if categoryID == "" {
		return fmt.Errorf("%w: category id is required", apperr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.getLocked(classifierID)
	if err != nil {
		return err
	}

	found := false
	kept := c.Categories[:0]
	for _, cat := range c.Categories {
		if cat.ID == categoryID {
			found = true
			continue
		}
		kept = append(kept, cat)
	}
	if !found {
		return fmt.Errorf("category %s: %w", categoryID, apperr.ErrNotFound)
	}
	c.Categories = kept

	for i := range c.History {
		rec := &c.History[i]
		if rec.CategoryID != nil && *rec.CategoryID == categoryID {
			rec.CategoryID = nil
			rec.Feedback = ""
			rec.CorrectedCategoryID = ""
		} else if rec.CorrectedCategoryID == categoryID {
			rec.CorrectedCategoryID = ""
		}
	}

	if err := s.store.Save(c); err != nil {
		return err
	}
	s.notify("classifier.updated", map[string]string{"id": c.ID})
	return nil
}

// Classify runs text through the collaborator and appends the outcome to
// the classifier's history.
//
// The collaborator call runs outside the document lock; the aggregate is
// re-read afterwards so a slow model response cannot clobber writes that
// landed in the meantime. The returned category id is stored as-is,
// without membership validation.
func (s *Service) Classify(ctx context.Context, classifierID, text string) (*models.ClassificationRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", apperr.ErrInvalidInput)
	}

	s.mu.Lock()
	c, err := s.getLocked(classifierID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if len(c.Categories) == 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: classifier has no categories", apperr.ErrInvalidInput)
	}
	categories := make([]models.Category, len(c.Categories))
	copy(categories, c.Categories)
	s.mu.Unlock()

	result, err := s.llm.Classify(ctx, categories, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCollaborator, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err = s.getLocked(classifierID)
	if err != nil {
		return nil, err
	}

	catID := result.CategoryID
	rec := models.ClassificationRecord{
		ID:          ids.New(ids.RecordPrefix),
		Text:        text,
		CategoryID:  &catID,
		Confidence:  result.Confidence,
		Explanation: result.Explanation,
		Timestamp:   time.Now().UTC(),
	}
	c.History = append(c.History, rec)

	if err := s.store.Save(c); err != nil {
		return nil, err
	}
	if s.idx != nil {
		if err := s.idx.IndexClassification(c.ID, rec); err != nil {
			s.logger.Warn("index: upsert record failed", slog.String("record", rec.ID), slog.String("error", err.Error()))
		}
	}
	s.notify("record.created", map[string]string{"classifierId": c.ID, "recordId": rec.ID})
	return &rec, nil
}

// SubmitFeedback records a correctness verdict on a history record and
// promotes the confirmed or corrected text into the matching category's
// example list, deduplicated by exact match. Repeated submissions are
// idempotent. The record's categoryId never changes here: an incorrect
// verdict keeps the wrong classification visible alongside the correction.
func (s *Service) SubmitFeedback(_ context.Context, classifierID, recordID string, verdict models.Verdict, correctedCategoryID string) error {
	if classifierID == "" || recordID == "" || verdict == "" {
		return fmt.Errorf("%w: classifier id, record id, and feedback are required", apperr.ErrInvalidInput)
	}
	if !verdict.Valid() {
		return fmt.Errorf("%w: unknown feedback %q", apperr.ErrInvalidInput, verdict)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.getLocked(classifierID)
	if err != nil {
		return err
	}
	rec := c.Record(recordID)
	if rec == nil {
		return fmt.Errorf("record %s: %w", recordID, apperr.ErrNotFound)
	}

	rec.Feedback = verdict

	switch {
	case verdict == models.VerdictCorrect:
		if rec.CategoryID != nil {
			if cat := c.Category(*rec.CategoryID); cat != nil {
				cat.AddExample(rec.Text)
			}
		}
	case verdict == models.VerdictIncorrect && correctedCategoryID != "":
		rec.CorrectedCategoryID = correctedCategoryID
		if cat := c.Category(correctedCategoryID); cat != nil {
			cat.AddExample(rec.Text)
		}
	}

	if err := s.store.Save(c); err != nil {
		return err
	}
	if s.idx != nil {
		if err := s.idx.IndexClassification(c.ID, *rec); err != nil {
			s.logger.Warn("index: upsert record failed", slog.String("record", rec.ID), slog.String("error", err.Error()))
		}
	}
	s.notify("classifier.updated", map[string]string{"id": c.ID})
	return nil
}

// SuggestCategory asks the collaborator for a category proposal covering
// the given examples. Nothing is persisted; turning the proposal into a
// real category is the caller's job.
func (s *Service) SuggestCategory(ctx context.Context, examples []string, existing []models.Category) (*llm.Suggestion, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: examples are required", apperr.ErrInvalidInput)
	}
	suggestion, err := s.llm.SuggestCategory(ctx, examples, existing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCollaborator, err)
	}
	return suggestion, nil
}

// getLocked reads one classifier; the caller holds s.mu.
func (s *Service) getLocked(id string) (*models.Classifier, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: classifier id is required", apperr.ErrInvalidInput)
	}
	c, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("classifier %s: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) notify(kind string, data map[string]string) {
	if s.notifier != nil {
		s.notifier.Notify(kind, data)
	}
}
