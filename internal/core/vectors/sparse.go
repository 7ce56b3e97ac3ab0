// Package vectors provides the sparse numeric vector type used by feature
// composition and classification.
package vectors

import "math"

// Sparse is a sparse vector with strictly increasing indices.
type Sparse struct {
	Indices []int
	Values  []float64
	Dim     int
}

// Dot computes the inner product of two sparse vectors by merging their
// sorted index lists.
func Dot(a, b Sparse) float64 {
	var sum float64

	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}

	return sum
}

// Norm computes the Euclidean norm.
func (s Sparse) Norm() float64 {
	var sum float64
	for _, v := range s.Values {
		sum += v * v
	}

	return math.Sqrt(sum)
}

// Scale multiplies every stored value in place.
func (s Sparse) Scale(factor float64) {
	for i := range s.Values {
		s.Values[i] *= factor
	}
}

// SquaredDistance computes ||a-b||^2 without densifying either vector.
func SquaredDistance(a, b Sparse) float64 {
	na := Dot(a, a)
	nb := Dot(b, b)

	return na + nb - 2*Dot(a, b)
}

// Cosine computes cosine similarity. Zero-norm inputs resolve to 0 rather
// than an error; degenerate short or disjoint texts are expected callers.
func Cosine(a, b Sparse) float64 {
	normA := a.Norm()
	normB := b.Norm()

	if normA == 0 || normB == 0 {
		return 0
	}

	return Dot(a, b) / (normA * normB)
}

// Builder assembles a sparse vector from consecutive sub-vectors, offsetting
// each appended block past the previous one.
type Builder struct {
	indices []int
	values  []float64
	offset  int
}

// Append adds a sub-vector occupying the next dim positions.
func (b *Builder) Append(sub Sparse, dim int) {
	for i, idx := range sub.Indices {
		if sub.Values[i] == 0 {
			continue
		}

		b.indices = append(b.indices, b.offset+idx)
		b.values = append(b.values, sub.Values[i])
	}

	b.offset += dim
}

// Vector returns the assembled sparse vector.
func (b *Builder) Vector() Sparse {
	return Sparse{Indices: b.indices, Values: b.values, Dim: b.offset}
}
