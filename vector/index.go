// Package vector provides a flat inner-product vector index with file
// persistence. Vectors are L2-normalized on insertion and queries are
// normalized the same way, so the inner product equals cosine
// similarity, bounded in [-1, 1].
package vector

import (
	"math"
	"sort"

	"github.com/docdex/docdex"
)

// Index is a flat (brute-force) similarity index. The dimension is
// fixed by the first inserted vector; every later insertion must
// match or the index is invalid.
type Index struct {
	dim     int
	vectors [][]float32
}

// New creates an empty Index.
func New() *Index {
	return &Index{}
}

// Len returns the number of stored vectors.
func (x *Index) Len() int {
	return len(x.vectors)
}

// Dim returns the vector dimension, or 0 before the first insertion.
func (x *Index) Dim() int {
	return x.dim
}

// Add normalizes and appends vectors. Row order is insertion order
// and is the document-store alignment contract.
func (x *Index) Add(vectors ...[]float32) error {
	for _, v := range vectors {
		if len(v) == 0 {
			return docdex.Errorf(docdex.EINVALID, "empty vector")
		}
		if x.dim == 0 {
			x.dim = len(v)
		} else if len(v) != x.dim {
			return docdex.Errorf(docdex.EINVALID,
				"vector dimension %d does not match index dimension %d", len(v), x.dim)
		}
		x.vectors = append(x.vectors, normalize(v))
	}
	return nil
}

// Result is one search hit: the insertion position of the matched
// vector and its similarity score.
type Result struct {
	Position int
	Score    float32
}

// Search returns up to k results ordered by descending score. If the
// index holds fewer than k vectors, all of them are returned. Ties
// are broken by insertion order.
func (x *Index) Search(query []float32, k int) ([]Result, error) {
	if len(query) != x.dim {
		return nil, docdex.Errorf(docdex.EINVALID,
			"query dimension %d does not match index dimension %d", len(query), x.dim)
	}
	if k <= 0 || x.Len() == 0 {
		return nil, nil
	}

	q := normalize(query)
	results := make([]Result, len(x.vectors))
	for i, v := range x.vectors {
		results[i] = Result{Position: i, Score: dot(q, v)}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// normalize returns an L2-normalized copy of v. The zero vector is
// copied unchanged.
func normalize(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	out := make([]float32, len(v))
	norm := math.Sqrt(sum)
	if norm == 0 {
		copy(out, v)
		return out
	}
	for i, f := range v {
		out[i] = float32(float64(f) / norm)
	}
	return out
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
