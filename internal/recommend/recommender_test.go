// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"reflect"
	"testing"
)

func newTestRecommender(t *testing.T, movies []Movie, cfg Config) *Recommender {
	t.Helper()
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Rebuild(movies); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return r
}

func TestRecommendRanksSharedFeaturesFirst(t *testing.T) {
	// Star Raiders and Galaxy Quest II share genres, a keyword, a lead and
	// the director; Paris in Spring shares nothing.
	r := newTestRecommender(t, testMovies(), DefaultConfig())

	recs, err := r.Recommend("Star Raiders", 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].Title != "Galaxy Quest II" {
		t.Errorf("top recommendation = %q, want Galaxy Quest II", recs[0].Title)
	}
	if recs[1].Title != "Paris in Spring" {
		t.Errorf("second recommendation = %q, want Paris in Spring", recs[1].Title)
	}
	if recs[0].Score <= recs[1].Score {
		t.Errorf("scores not descending: %v then %v", recs[0].Score, recs[1].Score)
	}
	if recs[0].MovieID != 200 {
		t.Errorf("top MovieID = %d, want 200", recs[0].MovieID)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	a := newTestRecommender(t, testMovies(), DefaultConfig())
	b := newTestRecommender(t, testMovies(), DefaultConfig())

	ra, err := a.Recommend("Star Raiders", 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	rb, err := b.Recommend("Star Raiders", 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !reflect.DeepEqual(ra, rb) {
		t.Errorf("recommendations differ across identical builds:\n%v\n%v", ra, rb)
	}
}

func TestRecommendTitleNotFound(t *testing.T) {
	r := newTestRecommender(t, testMovies(), DefaultConfig())

	_, err := r.Recommend("No Such Movie", 5)
	var notFound *TitleNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *TitleNotFoundError", err)
	}
	if notFound.Title != "No Such Movie" {
		t.Errorf("Title = %q, want queried title", notFound.Title)
	}

	// The error is per-call; the index keeps serving.
	if _, err := r.Recommend("Star Raiders", 1); err != nil {
		t.Errorf("subsequent query failed: %v", err)
	}
}

func TestRecommendBeforeFirstBuild(t *testing.T) {
	r, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Recommend("Star Raiders", 5); !errors.Is(err, ErrIndexNotReady) {
		t.Errorf("err = %v, want ErrIndexNotReady", err)
	}
	if _, err := r.SimilarByIndex(0, 5); !errors.Is(err, ErrIndexNotReady) {
		t.Errorf("SimilarByIndex err = %v, want ErrIndexNotReady", err)
	}
}

func TestRecommendKDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultK = 1
	r := newTestRecommender(t, testMovies(), cfg)

	recs, err := r.Recommend("Star Raiders", 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("len = %d, want DefaultK = 1", len(recs))
	}
}

func TestRecommendKClampedToMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultK = 1
	cfg.MaxK = 1
	r := newTestRecommender(t, testMovies(), cfg)

	recs, err := r.Recommend("Star Raiders", 50)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("len = %d, want MaxK = 1", len(recs))
	}
}

func TestRecommendKLargerThanCorpus(t *testing.T) {
	r := newTestRecommender(t, testMovies(), DefaultConfig())

	recs, err := r.Recommend("Star Raiders", 50)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// min(k, N-1): the query movie never recommends itself.
	if len(recs) != 2 {
		t.Errorf("len = %d, want 2", len(recs))
	}
	for _, rec := range recs {
		if rec.Title == "Star Raiders" {
			t.Error("query movie present in its own recommendations")
		}
	}
}

func TestRecommendLazyMatrixMatchesEager(t *testing.T) {
	eagerCfg := DefaultConfig()
	lazyCfg := DefaultConfig()
	lazyCfg.Matrix = MatrixLazy

	re := newTestRecommender(t, testMovies(), eagerCfg)
	rl := newTestRecommender(t, testMovies(), lazyCfg)

	for _, title := range []string{"Star Raiders", "Galaxy Quest II", "Paris in Spring"} {
		ge, err := re.Recommend(title, 10)
		if err != nil {
			t.Fatalf("eager Recommend(%q): %v", title, err)
		}
		gl, err := rl.Recommend(title, 10)
		if err != nil {
			t.Fatalf("lazy Recommend(%q): %v", title, err)
		}
		if !reflect.DeepEqual(ge, gl) {
			t.Errorf("%q: eager %v != lazy %v", title, ge, gl)
		}
	}
}

func TestSimilarByIndexOutOfRange(t *testing.T) {
	r := newTestRecommender(t, testMovies(), DefaultConfig())

	if _, err := r.SimilarByIndex(99, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRebuildSwapsIndex(t *testing.T) {
	r := newTestRecommender(t, testMovies(), DefaultConfig())
	first := r.Index()

	more := append(testMovies(), Movie{
		ID:     400,
		Title:  "Deep Space Nine Lives",
		Genres: []string{"Science Fiction"},
	})
	if _, err := r.Rebuild(more); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	second := r.Index()
	if first == second {
		t.Error("expected a fresh index after rebuild")
	}
	if second.Stats().CorpusSize != 4 {
		t.Errorf("corpus size = %d, want 4", second.Stats().CorpusSize)
	}
}

func TestRebuildFailureKeepsPreviousIndex(t *testing.T) {
	r := newTestRecommender(t, testMovies(), DefaultConfig())
	before := r.Index()

	if _, err := r.Rebuild(nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("Rebuild(nil) err = %v, want ErrEmptyCorpus", err)
	}
	if r.Index() != before {
		t.Error("failed rebuild replaced the serving index")
	}
	if _, err := r.Recommend("Star Raiders", 1); err != nil {
		t.Errorf("query after failed rebuild: %v", err)
	}
}

func TestConcurrentQueriesDuringRebuild(t *testing.T) {
	r := newTestRecommender(t, testMovies(), DefaultConfig())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			if _, err := r.Recommend("Star Raiders", 2); err != nil {
				t.Errorf("concurrent Recommend: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 10; i++ {
		if _, err := r.Rebuild(testMovies()); err != nil {
			t.Fatalf("Rebuild: %v", err)
		}
	}
	<-done
}
