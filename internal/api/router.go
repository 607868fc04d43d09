package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taxolabs/taxo/internal/classify"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *classify.Service, searcher Searcher, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, searcher)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Classifier CRUD.
	r.Get("/classifiers", h.ListClassifiers)
	r.Post("/classifiers", h.CreateClassifier)
	r.Get("/classifiers/{id}", h.GetClassifier)
	r.Delete("/classifiers/{id}", h.DeleteClassifier)

	// Category lifecycle within a classifier.
	r.Post("/classifiers/{id}/categories", h.CreateCategory)
	r.Put("/classifiers/{id}/categories", h.UpdateCategory)
	r.Delete("/classifiers/{id}/categories", h.DeleteCategory)

	// Classification and feedback.
	r.Post("/classify", h.Classify)
	r.Post("/feedback", h.Feedback)
	r.Post("/suggest-category", h.SuggestCategory)

	// History search.
	r.Get("/search", h.Search)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
