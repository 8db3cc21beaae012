// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// vectorizer converts feature documents into dense TF-IDF vectors over a
// fixed vocabulary. The vocabulary is the sorted set of all tokens seen
// across the corpus, so dimension order is deterministic for a given input.
type vectorizer struct {
	vocab      []string
	vocabIndex map[string]int
	idf        []float64
}

// newVectorizer fits a vectorizer on the corpus documents: it collects the
// vocabulary, sorts it lexicographically, and computes smoothed inverse
// document frequencies
//
//	idf(t) = ln((1+N)/(1+df(t))) + 1
//
// which keeps every weight strictly positive even for tokens present in all
// documents.
func newVectorizer(docs []FeatureDocument) *vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		// Documents are deduped at composition time, so each token counts
		// its document once.
		for _, tok := range doc.Tokens {
			df[tok]++
		}
	}

	vocab := make([]string, 0, len(df))
	for tok := range df {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)

	vocabIndex := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for i, tok := range vocab {
		vocabIndex[tok] = i
		idf[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}

	return &vectorizer{vocab: vocab, vocabIndex: vocabIndex, idf: idf}
}

// vocabularySize returns the number of dimensions.
func (v *vectorizer) vocabularySize() int {
	return len(v.vocab)
}

// transform produces the L2-normalized TF-IDF vector for one document.
// Term frequency is the raw in-document count. A document with no tokens
// maps to the zero vector, which has cosine similarity 0 against everything.
func (v *vectorizer) transform(doc FeatureDocument) []float64 {
	vec := make([]float64, len(v.vocab))
	for _, tok := range doc.Tokens {
		if i, ok := v.vocabIndex[tok]; ok {
			vec[i] += v.idf[i]
		}
	}

	if norm := floats.Norm(vec, 2); norm > 0 {
		floats.Scale(1/norm, vec)
	}
	return vec
}

// transformAll vectorizes the whole corpus in document order.
func (v *vectorizer) transformAll(docs []FeatureDocument) [][]float64 {
	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = v.transform(doc)
	}
	return vectors
}
