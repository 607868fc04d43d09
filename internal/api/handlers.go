package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taxolabs/taxo/internal/apperr"
	"github.com/taxolabs/taxo/internal/classify"
	"github.com/taxolabs/taxo/internal/index"
	"github.com/taxolabs/taxo/internal/models"
)

// maxBodySize caps request bodies; classification inputs are short texts.
const maxBodySize = 1 << 20

// Searcher is the slice of the history index the API needs.
type Searcher interface {
	Search(query, classifierID string, limit int) ([]index.SearchResult, error)
}

// Handler holds API route handlers.
type Handler struct {
	svc      *classify.Service
	searcher Searcher
}

// NewHandler creates a new Handler. searcher may be nil, in which case
// the search endpoint reports an internal error.
func NewHandler(svc *classify.Service, searcher Searcher) *Handler {
	return &Handler{svc: svc, searcher: searcher}
}

// writeErr maps service errors onto the API error taxonomy.
func writeErr(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrCollaborator):
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBodyWithDetails("collaborator failure", err.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// ListClassifiers handles GET /classifiers.
func (h *Handler) ListClassifiers(w http.ResponseWriter, r *http.Request) {
	classifiers, err := h.svc.ListClassifiers(r.Context())
	if err != nil {
		writeErr(w, "list classifiers", err)
		return
	}
	writeJSON(w, http.StatusOK, ClassifierListResponse{Classifiers: classifiers})
}

// CreateClassifier handles POST /classifiers.
func (h *Handler) CreateClassifier(w http.ResponseWriter, r *http.Request) {
	var req CreateClassifierRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.CreateClassifier(r.Context(), req.Name, req.Description)
	if err != nil {
		writeErr(w, "create classifier", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GetClassifier handles GET /classifiers/{id}.
func (h *Handler) GetClassifier(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetClassifier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, "get classifier", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteClassifier handles DELETE /classifiers/{id}.
func (h *Handler) DeleteClassifier(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteClassifier(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, "delete classifier", err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// CreateCategory handles POST /classifiers/{id}/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !decode(w, r, &req) {
		return
	}
	cat, err := h.svc.AddCategory(r.Context(), chi.URLParam(r, "id"), classify.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Examples:    req.Examples,
		Color:       req.Color,
	})
	if err != nil {
		writeErr(w, "create category", err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

// UpdateCategory handles PUT /classifiers/{id}/categories.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if !decode(w, r, &req) {
		return
	}
	cat, err := h.svc.UpdateCategory(r.Context(), chi.URLParam(r, "id"), classify.CategoryUpdate{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Examples:    req.Examples,
	})
	if err != nil {
		writeErr(w, "update category", err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// DeleteCategory handles DELETE /classifiers/{id}/categories?categoryId=...
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")
	if err := h.svc.DeleteCategory(r.Context(), chi.URLParam(r, "id"), categoryID); err != nil {
		writeErr(w, "delete category", err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Classify handles POST /classify.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if !decode(w, r, &req) {
		return
	}
	rec, err := h.svc.Classify(r.Context(), req.ClassifierID, req.Text)
	if err != nil {
		writeErr(w, "classify", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// Feedback handles POST /feedback.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !decode(w, r, &req) {
		return
	}
	err := h.svc.SubmitFeedback(r.Context(), req.ClassifierID, req.HistoryID,
		models.Verdict(req.Feedback), req.CorrectedCategoryID)
	if err != nil {
		writeErr(w, "feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// SuggestCategory handles POST /suggest-category.
func (h *Handler) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	var req SuggestCategoryRequest
	if !decode(w, r, &req) {
		return
	}
	suggestion, err := h.svc.SuggestCategory(r.Context(), req.Examples, req.ExistingCategories)
	if err != nil {
		writeErr(w, "suggest category", err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

// Search handles GET /search over classification history.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	if h.searcher == nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("search index unavailable"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.searcher.Search(q, r.URL.Query().Get("classifier"), limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
