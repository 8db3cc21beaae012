// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// TitleIndex maps movie titles to corpus indices. When two movies share a
// title, the first occurrence in corpus order wins. Matching is
// case-insensitive unless configured otherwise.
type TitleIndex struct {
	caseSensitive bool
	byTitle       map[string]int
}

func newTitleIndex(movies []Movie, caseSensitive bool) *TitleIndex {
	idx := &TitleIndex{
		caseSensitive: caseSensitive,
		byTitle:       make(map[string]int, len(movies)),
	}
	for i, m := range movies {
		key := idx.key(m.Title)
		if _, exists := idx.byTitle[key]; !exists {
			idx.byTitle[key] = i
		}
	}
	return idx
}

func (t *TitleIndex) key(title string) string {
	if t.caseSensitive {
		return title
	}
	return strings.ToLower(title)
}

// Lookup returns the corpus index for a title.
func (t *TitleIndex) Lookup(title string) (int, bool) {
	i, ok := t.byTitle[t.key(title)]
	return i, ok
}

// Stats describes a built index.
type Stats struct {
	// Version uniquely identifies this build; it changes on every rebuild
	// even when the corpus does not.
	Version        string        `json:"version"`
	CorpusSize     int           `json:"corpus_size"`
	VocabularySize int           `json:"vocabulary_size"`
	SkippedRecords int           `json:"skipped_records"`
	BuildDuration  time.Duration `json:"-"`
	BuiltAt        time.Time     `json:"built_at"`
}

// Index is the immutable artifact of a full pipeline build: the corpus, its
// TF-IDF vectors, the similarity structure and the title lookup table.
// All query methods are read-only and safe for unlimited concurrent use.
type Index struct {
	corpus *Corpus
	sim    similarity
	titles *TitleIndex
	ids    map[int]int
	stats  Stats
}

// Build runs the full pipeline over the input movies and returns a new
// Index. It validates the configuration, applies the schema-error policy,
// composes feature documents, fits the TF-IDF vectorizer and constructs the
// similarity structure. The input slice is copied; callers may reuse it.
func Build(movies []Movie, cfg Config) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	logger := logging.WithComponent("recommend")

	accepted := make([]Movie, 0, len(movies))
	skipped := 0
	for row, m := range movies {
		if err := validateMovie(row, m); err != nil {
			if cfg.OnSchemaError == OnSchemaErrorSkip {
				skipped++
				logger.Warn().Err(err).Int("row", row).Msg("skipping malformed record")
				continue
			}
			return nil, err
		}
		accepted = append(accepted, m)
	}

	if len(accepted) == 0 {
		return nil, ErrEmptyCorpus
	}

	docs := make([]FeatureDocument, len(accepted))
	for i, m := range accepted {
		docs[i] = composeDocument(m, cfg.CastLimit)
	}

	vec := newVectorizer(docs)
	vectors := vec.transformAll(docs)

	var sim similarity
	switch cfg.Matrix {
	case MatrixLazy:
		sim = newLazyMatrix(vectors)
	default:
		sim = newEagerMatrix(vectors)
	}

	ids := make(map[int]int, len(accepted))
	for i, m := range accepted {
		if _, exists := ids[m.ID]; !exists {
			ids[m.ID] = i
		}
	}

	idx := &Index{
		corpus: &Corpus{movies: accepted, docs: docs},
		sim:    sim,
		titles: newTitleIndex(accepted, cfg.CaseSensitiveTitles),
		ids:    ids,
		stats: Stats{
			Version:        uuid.NewString(),
			CorpusSize:     len(accepted),
			VocabularySize: vec.vocabularySize(),
			SkippedRecords: skipped,
			BuildDuration:  time.Since(start),
			BuiltAt:        time.Now().UTC(),
		},
	}

	logger.Info().
		Str("version", idx.stats.Version).
		Int("corpus_size", idx.stats.CorpusSize).
		Int("vocabulary_size", idx.stats.VocabularySize).
		Int("skipped", skipped).
		Dur("duration", idx.stats.BuildDuration).
		Str("matrix", cfg.Matrix).
		Msg("index built")

	return idx, nil
}

// validateMovie enforces the record schema: a movie must carry a non-empty
// title.
func validateMovie(row int, m Movie) error {
	if strings.TrimSpace(m.Title) == "" {
		return &SchemaError{Row: row, Field: "title", Reason: "empty title"}
	}
	return nil
}

// Corpus returns the indexed corpus.
func (idx *Index) Corpus() *Corpus {
	return idx.corpus
}

// Stats returns build statistics.
func (idx *Index) Stats() Stats {
	return idx.stats
}

// LookupTitle resolves a title to its corpus index.
func (idx *Index) LookupTitle(title string) (int, bool) {
	return idx.titles.Lookup(title)
}

// LookupID resolves a catalog movie ID to its corpus index. When duplicate
// IDs occur the first occurrence in corpus order wins, matching title
// resolution.
func (idx *Index) LookupID(id int) (int, bool) {
	i, ok := idx.ids[id]
	return i, ok
}

// Neighbors returns ranked neighbors for the movie at corpus index i.
func (idx *Index) Neighbors(i, k int) ([]Neighbor, error) {
	return idx.sim.Neighbors(i, k)
}

// Similarity returns the cosine similarity between two corpus indices.
func (idx *Index) Similarity(i, j int) (float64, error) {
	return idx.sim.Score(i, j)
}
