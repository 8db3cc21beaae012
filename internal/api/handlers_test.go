// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

func apiTestMovies() []recommend.Movie {
	return []recommend.Movie{
		{ID: 100, Title: "Star Raiders", Genres: []string{"Action", "Science Fiction"}, Keywords: []string{"space war"}, Cast: []string{"Ann Lee"}, Director: "Pat Kim"},
		{ID: 200, Title: "Galaxy Quest II", Genres: []string{"Action", "Science Fiction"}, Keywords: []string{"space war"}, Cast: []string{"Ann Lee"}, Director: "Pat Kim"},
		{ID: 300, Title: "Paris in Spring", Genres: []string{"Romance"}, Keywords: []string{"paris"}, Cast: []string{"Cleo Moreau"}, Director: "Luc Besson"},
	}
}

type fakeRebuilder struct {
	err   error
	calls int
}

func (f *fakeRebuilder) TriggerRebuild() error {
	f.calls++
	return f.err
}

func testRouter(t *testing.T, built bool, rebuilder Rebuilder) http.Handler {
	t.Helper()
	rec, err := recommend.New(recommend.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if built {
		if _, err := rec.Rebuild(apiTestMovies()); err != nil {
			t.Fatalf("Rebuild: %v", err)
		}
	}
	cfg := config.APIConfig{
		RateLimitReqs:   1000,
		RateLimitWindow: time.Minute,
		CORSOrigins:     []string{"*"},
	}
	return NewRouter(NewHandler(rec, rebuilder), cfg)
}

func doRequest(t *testing.T, router http.Handler, method, target string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func TestGetRecommendationsSuccess(t *testing.T) {
	router := testRouter(t, true, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/recommendations?title=Star+Raiders&k=2")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatal(err)
	}
	var payload recommendationsResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Count != 2 {
		t.Errorf("count = %d, want 2", payload.Count)
	}
	if payload.Results[0].Title != "Galaxy Quest II" {
		t.Errorf("top result = %q, want Galaxy Quest II", payload.Results[0].Title)
	}
}

func TestGetRecommendationsTitleNotFound(t *testing.T) {
	router := testRouter(t, true, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/recommendations?title=Nope")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeTitleNotFound {
		t.Errorf("error = %+v, want TITLE_NOT_FOUND", resp.Error)
	}
}

func TestGetRecommendationsIndexNotReady(t *testing.T) {
	router := testRouter(t, false, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/recommendations?title=Star+Raiders")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeIndexNotReady {
		t.Errorf("error = %+v, want INDEX_NOT_READY", resp.Error)
	}
}

func TestGetRecommendationsMissingTitle(t *testing.T) {
	router := testRouter(t, true, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/recommendations")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeValidationFailed {
		t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
}

func TestGetRecommendationsBadK(t *testing.T) {
	router := testRouter(t, true, nil)
	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/recommendations?title=Star+Raiders&k=lots")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetSimilarMovies(t *testing.T) {
	router := testRouter(t, true, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/movies/100/similar?k=1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	data, _ := json.Marshal(resp.Data)
	var payload recommendationsResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Count != 1 || payload.Results[0].MovieID != 200 {
		t.Errorf("payload = %+v, want single neighbor 200", payload)
	}
}

func TestGetSimilarMoviesUnknownID(t *testing.T) {
	router := testRouter(t, true, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/movies/9999/similar")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeMovieNotFound {
		t.Errorf("error = %+v, want MOVIE_NOT_FOUND", resp.Error)
	}
}

func TestGetSimilarMoviesBadID(t *testing.T) {
	router := testRouter(t, true, nil)
	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/movies/abc/similar")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRebuildTriggered(t *testing.T) {
	rb := &fakeRebuilder{}
	router := testRouter(t, true, rb)
	rec, resp := doRequest(t, router, http.MethodPost, "/api/v1/index/rebuild")

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
	if rb.calls != 1 {
		t.Errorf("trigger calls = %d, want 1", rb.calls)
	}
}

func TestRebuildConflict(t *testing.T) {
	rb := &fakeRebuilder{err: recommend.ErrRebuildInProgress}
	router := testRouter(t, true, rb)
	rec, resp := doRequest(t, router, http.MethodPost, "/api/v1/index/rebuild")

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeRebuildInProgress {
		t.Errorf("error = %+v, want REBUILD_IN_PROGRESS", resp.Error)
	}
}

func TestIndexStatus(t *testing.T) {
	router := testRouter(t, true, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/index/status")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, _ := json.Marshal(resp.Data)
	var payload indexStatusResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatal(err)
	}
	if !payload.Ready {
		t.Error("expected ready index")
	}
	if payload.Stats == nil || payload.Stats.CorpusSize != 3 {
		t.Errorf("stats = %+v, want corpus size 3", payload.Stats)
	}
}

func TestIndexStatusNotReady(t *testing.T) {
	router := testRouter(t, false, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/index/status")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, _ := json.Marshal(resp.Data)
	var payload indexStatusResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Ready {
		t.Error("expected not-ready status before first build")
	}
}

func TestHealthz(t *testing.T) {
	router := testRouter(t, false, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/healthz")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
}

func TestRequestIDHeaderPresent(t *testing.T) {
	router := testRouter(t, true, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}
