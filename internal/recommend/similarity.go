// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// similarity answers neighbor queries over a fixed corpus. Both
// implementations are immutable after construction and safe for concurrent
// readers.
type similarity interface {
	// Neighbors returns up to min(k, N-1) ranked neighbors of corpus index i,
	// sorted by descending score with ties broken by ascending index. The
	// query index itself is excluded. Returns ErrIndexOutOfRange for i
	// outside [0, N).
	Neighbors(i, k int) ([]Neighbor, error)

	// Score returns the similarity between corpus indices i and j.
	Score(i, j int) (float64, error)
}

// eagerMatrix holds the full N x N similarity matrix. Vectors are
// L2-normalized at build time, so cosine similarity is a plain dot product;
// the matrix is symmetric with a unit diagonal for non-zero vectors.
type eagerMatrix struct {
	n    int
	rows [][]float64
}

func newEagerMatrix(vectors [][]float64) *eagerMatrix {
	n := len(vectors)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		rows[i][i] = selfSimilarity(vectors[i])
		for j := i + 1; j < n; j++ {
			s := floats.Dot(vectors[i], vectors[j])
			rows[i][j] = s
			rows[j][i] = s
		}
	}
	return &eagerMatrix{n: n, rows: rows}
}

func (m *eagerMatrix) Neighbors(i, k int) ([]Neighbor, error) {
	if i < 0 || i >= m.n {
		return nil, ErrIndexOutOfRange
	}
	return rankRow(m.rows[i], i, k), nil
}

func (m *eagerMatrix) Score(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, ErrIndexOutOfRange
	}
	return m.rows[i][j], nil
}

// lazyMatrix keeps only the normalized vectors and computes one similarity
// row per query. Identical results to the eager matrix, O(N*V) per query
// instead of O(N^2) resident memory.
type lazyMatrix struct {
	vectors [][]float64
}

func newLazyMatrix(vectors [][]float64) *lazyMatrix {
	return &lazyMatrix{vectors: vectors}
}

func (m *lazyMatrix) row(i int) []float64 {
	row := make([]float64, len(m.vectors))
	for j, v := range m.vectors {
		if j == i {
			row[j] = selfSimilarity(m.vectors[i])
			continue
		}
		row[j] = floats.Dot(m.vectors[i], v)
	}
	return row
}

func (m *lazyMatrix) Neighbors(i, k int) ([]Neighbor, error) {
	if i < 0 || i >= len(m.vectors) {
		return nil, ErrIndexOutOfRange
	}
	return rankRow(m.row(i), i, k), nil
}

func (m *lazyMatrix) Score(i, j int) (float64, error) {
	n := len(m.vectors)
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, ErrIndexOutOfRange
	}
	if i == j {
		return selfSimilarity(m.vectors[i]), nil
	}
	return floats.Dot(m.vectors[i], m.vectors[j]), nil
}

// selfSimilarity is 1 for any non-zero normalized vector and 0 for the zero
// vector produced by an empty document.
func selfSimilarity(vec []float64) float64 {
	for _, x := range vec {
		if x != 0 {
			return 1
		}
	}
	return 0
}

// rankRow selects the top-k neighbors from a similarity row, excluding the
// query index. Ordering is descending score, then ascending index.
func rankRow(row []float64, query, k int) []Neighbor {
	if k <= 0 {
		return []Neighbor{}
	}

	neighbors := make([]Neighbor, 0, len(row)-1)
	for j, score := range row {
		if j == query {
			continue
		}
		neighbors = append(neighbors, Neighbor{Index: j, Score: score})
	}

	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].Score != neighbors[b].Score {
			return neighbors[a].Score > neighbors[b].Score
		}
		return neighbors[a].Index < neighbors[b].Index
	})

	if k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors
}
