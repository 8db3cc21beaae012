// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"sync"
	"sync/atomic"
)

// Recommender serves recommendation queries against the current Index.
// The active Index is held behind an atomic pointer: readers load it without
// locking and a rebuild publishes a complete replacement in one store, so
// queries always see either the old index or the new one, never a partial
// build.
type Recommender struct {
	cfg Config
	idx atomic.Pointer[Index]

	// buildMu serializes rebuilds.
	buildMu sync.Mutex
}

// New creates a Recommender with no index loaded. Queries return
// ErrIndexNotReady until the first successful Rebuild or StoreIndex.
func New(cfg Config) (*Recommender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Recommender{cfg: cfg}, nil
}

// Config returns the pipeline configuration.
func (r *Recommender) Config() Config {
	return r.cfg
}

// Index returns the active index, or nil before the first build.
func (r *Recommender) Index() *Index {
	return r.idx.Load()
}

// StoreIndex atomically publishes a new index.
func (r *Recommender) StoreIndex(idx *Index) {
	r.idx.Store(idx)
}

// Rebuild runs a full build over the given movies and, on success, swaps the
// new index in atomically. On failure the previous index keeps serving.
// Returns ErrRebuildInProgress when another rebuild is running.
func (r *Recommender) Rebuild(movies []Movie) (*Index, error) {
	if !r.buildMu.TryLock() {
		return nil, ErrRebuildInProgress
	}
	defer r.buildMu.Unlock()

	idx, err := Build(movies, r.cfg)
	if err != nil {
		return nil, err
	}
	r.idx.Store(idx)
	return idx, nil
}

// Recommend returns up to k movies most similar to the given title, ranked
// by descending similarity with ties broken toward the lower corpus index.
// k <= 0 selects the configured default; k above the configured maximum is
// clamped. Unknown titles yield a TitleNotFoundError.
func (r *Recommender) Recommend(title string, k int) ([]Recommendation, error) {
	idx := r.idx.Load()
	if idx == nil {
		return nil, ErrIndexNotReady
	}

	i, ok := idx.LookupTitle(title)
	if !ok {
		return nil, &TitleNotFoundError{Title: title}
	}

	neighbors, err := idx.Neighbors(i, r.cfg.clampK(k))
	if err != nil {
		return nil, err
	}
	return resolve(idx, neighbors), nil
}

// SimilarByIndex returns ranked neighbors for a corpus index, resolved to
// catalog terms. Used by the by-ID API surface.
func (r *Recommender) SimilarByIndex(i, k int) ([]Recommendation, error) {
	idx := r.idx.Load()
	if idx == nil {
		return nil, ErrIndexNotReady
	}

	neighbors, err := idx.Neighbors(i, r.cfg.clampK(k))
	if err != nil {
		return nil, err
	}
	return resolve(idx, neighbors), nil
}

// SimilarByMovieID returns ranked neighbors for a catalog movie ID. The
// second return value reports whether the ID is in the corpus; unknown IDs
// are not an error.
func (r *Recommender) SimilarByMovieID(id, k int) ([]Recommendation, bool, error) {
	idx := r.idx.Load()
	if idx == nil {
		return nil, false, ErrIndexNotReady
	}

	i, ok := idx.LookupID(id)
	if !ok {
		return nil, false, nil
	}

	neighbors, err := idx.Neighbors(i, r.cfg.clampK(k))
	if err != nil {
		return nil, false, err
	}
	return resolve(idx, neighbors), true, nil
}

func resolve(idx *Index, neighbors []Neighbor) []Recommendation {
	recs := make([]Recommendation, len(neighbors))
	for n, nb := range neighbors {
		m := idx.Corpus().Movie(nb.Index)
		recs[n] = Recommendation{MovieID: m.ID, Title: m.Title, Score: nb.Score}
	}
	return recs
}
