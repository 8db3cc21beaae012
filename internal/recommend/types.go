// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

// Movie is a single catalog record as consumed by the pipeline. Categorical
// fields may be empty; loaders normalize missing values to empty slices
// before records reach a build.
type Movie struct {
	// ID is the external catalog identifier (TMDB movie id).
	ID int `json:"id"`

	// Title must be non-empty; it is the primary query key.
	Title string `json:"title"`

	Genres   []string `json:"genres"`
	Keywords []string `json:"keywords"`

	// Cast is in billed order; only the first CastLimit entries contribute
	// features.
	Cast []string `json:"cast"`

	// Director may be empty when the crew has no director entry.
	Director string `json:"director"`
}

// FeatureDocument is the ordered, normalized token sequence derived from one
// movie. Token order is stable across builds; duplicates within a document
// are removed keeping the first occurrence.
type FeatureDocument struct {
	Tokens []string
}

// Corpus is the ordered collection of movies and their feature documents.
// A movie's position in the corpus is its canonical index, fixed at build
// time; all vectors, matrix rows and neighbor results refer to movies by
// this index.
type Corpus struct {
	movies []Movie
	docs   []FeatureDocument
}

// Len returns the number of movies in the corpus.
func (c *Corpus) Len() int {
	return len(c.movies)
}

// Movie returns the movie at corpus index i.
func (c *Corpus) Movie(i int) Movie {
	return c.movies[i]
}

// Document returns the feature document at corpus index i.
func (c *Corpus) Document(i int) FeatureDocument {
	return c.docs[i]
}

// Neighbor is one ranked similarity result: the corpus index of a movie and
// its cosine similarity to the query movie, in [0, 1] modulo float rounding.
type Neighbor struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Recommendation is one ranked result resolved to catalog terms.
type Recommendation struct {
	MovieID int     `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}
