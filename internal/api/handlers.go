// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Rebuilder triggers asynchronous index rebuilds. Implemented by the index
// service.
type Rebuilder interface {
	// TriggerRebuild requests a rebuild. Returns
	// recommend.ErrRebuildInProgress when one is already running.
	TriggerRebuild() error
}

// Handler holds the dependencies for all API endpoints.
type Handler struct {
	recommender *recommend.Recommender
	rebuilder   Rebuilder
	startTime   time.Time
}

// NewHandler creates an API handler. rebuilder may be nil when rebuild
// endpoints are not exposed (tests).
func NewHandler(recommender *recommend.Recommender, rebuilder Rebuilder) *Handler {
	return &Handler{
		recommender: recommender,
		rebuilder:   rebuilder,
		startTime:   time.Now(),
	}
}

// recommendationsRequest is the validated query for GET /recommendations.
type recommendationsRequest struct {
	Title string `validate:"required,min=1,max=500"`
	K     int    `validate:"min=0,max=1000"`
}

// recommendationsResponse is the payload for recommendation queries.
type recommendationsResponse struct {
	Query   string                     `json:"query"`
	Count   int                        `json:"count"`
	Results []recommend.Recommendation `json:"results"`
}

// GetRecommendations handles GET /api/v1/recommendations?title=...&k=...
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	start := time.Now()

	req := recommendationsRequest{Title: r.URL.Query().Get("title")}
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		k, err := strconv.Atoi(kStr)
		if err != nil {
			rw.BadRequest("k must be an integer")
			return
		}
		req.K = k
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	results, err := h.recommender.Recommend(req.Title, req.K)
	if err != nil {
		h.writeQueryError(rw, r, err, req.Title)
		metrics.RecordRecommendation(queryOutcome(err), time.Since(start))
		return
	}
	metrics.RecordRecommendation("hit", time.Since(start))

	rw.Success(recommendationsResponse{
		Query:   req.Title,
		Count:   len(results),
		Results: results,
	})
}

// GetSimilarMovies handles GET /api/v1/movies/{id}/similar?k=...
func (h *Handler) GetSimilarMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		rw.BadRequest("movie id must be an integer")
		return
	}

	k := 0
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		if k, err = strconv.Atoi(kStr); err != nil {
			rw.BadRequest("k must be an integer")
			return
		}
	}

	results, found, err := h.recommender.SimilarByMovieID(id, k)
	if err != nil {
		h.writeQueryError(rw, r, err, "")
		return
	}
	if !found {
		rw.NotFound(ErrCodeMovieNotFound, "No movie with id "+strconv.Itoa(id))
		return
	}

	rw.Success(recommendationsResponse{
		Query:   strconv.Itoa(id),
		Count:   len(results),
		Results: results,
	})
}

// RebuildIndex handles POST /api/v1/index/rebuild
func (h *Handler) RebuildIndex(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.rebuilder == nil {
		rw.ServiceUnavailable(ErrCodeServiceUnavailable, "Rebuilds are not available")
		return
	}

	if err := h.rebuilder.TriggerRebuild(); err != nil {
		if errors.Is(err, recommend.ErrRebuildInProgress) {
			rw.Conflict(ErrCodeRebuildInProgress, "A rebuild is already in progress")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("rebuild trigger failed")
		rw.InternalError("Failed to trigger rebuild")
		return
	}

	rw.Accepted(map[string]interface{}{"rebuild": "triggered"})
}

// indexStatusResponse is the payload for GET /api/v1/index/status.
type indexStatusResponse struct {
	Ready bool             `json:"ready"`
	Stats *recommend.Stats `json:"stats,omitempty"`
}

// IndexStatus handles GET /api/v1/index/status
func (h *Handler) IndexStatus(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	idx := h.recommender.Index()
	if idx == nil {
		rw.Success(indexStatusResponse{Ready: false})
		return
	}

	stats := idx.Stats()
	rw.Success(indexStatusResponse{Ready: true, Stats: &stats})
}

// Healthz handles GET /healthz. It reports liveness regardless of index
// state; readiness is visible in the payload.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(map[string]interface{}{
		"status":      "alive",
		"index_ready": h.recommender.Index() != nil,
		"uptime":      time.Since(h.startTime).Seconds(),
	})
}

// writeQueryError maps pipeline errors to API responses.
func (h *Handler) writeQueryError(rw *ResponseWriter, r *http.Request, err error, title string) {
	var notFound *recommend.TitleNotFoundError
	switch {
	case errors.As(err, &notFound):
		rw.NotFound(ErrCodeTitleNotFound, "No movie titled "+strconv.Quote(notFound.Title))
	case errors.Is(err, recommend.ErrIndexNotReady):
		rw.ServiceUnavailable(ErrCodeIndexNotReady, "The index has not been built yet")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("title", title).Msg("recommendation query failed")
		rw.InternalError("Recommendation query failed")
	}
}

// queryOutcome labels a query error for metrics.
func queryOutcome(err error) string {
	var notFound *recommend.TitleNotFoundError
	switch {
	case errors.As(err, &notFound):
		return "title_not_found"
	case errors.Is(err, recommend.ErrIndexNotReady):
		return "not_ready"
	default:
		return "error"
	}
}
