// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements content-based movie recommendation.
//
// The pipeline turns movie metadata (genres, keywords, cast, director) into
// a normalized token document per movie, vectorizes the corpus with TF-IDF,
// and ranks movies by cosine similarity. A full build produces an immutable
// Index; queries against an Index never mutate it, so a single Index can
// serve unlimited concurrent readers without locks. Rebuilds construct a
// fresh Index from scratch and swap it in atomically.
//
// Determinism: for identical input and configuration, builds yield identical
// vocabulary order, identical vector values, and identical recommendation
// lists. Vocabulary dimensions are ordered lexicographically and ranking
// ties break toward the lower corpus index.
package recommend
