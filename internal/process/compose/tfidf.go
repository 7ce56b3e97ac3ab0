package compose

import (
	"math"
	"sort"

	"github.com/lueurxax/stance-classifier/internal/core/vectors"
)

// TFIDF is a term-frequency / inverse-document-frequency vectorizer with
// smoothed document frequencies and L2-normalized output rows.
type TFIDF struct {
	vocab map[string]int
	idf   []float64
}

// FitTFIDF learns the vocabulary and document frequencies from token streams.
func FitTFIDF(docs [][]string) *TFIDF {
	df := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))

		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}

			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}

	sort.Strings(terms)

	t := &TFIDF{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}

	n := float64(len(docs))
	for i, term := range terms {
		t.vocab[term] = i
		// Smoothed idf: every term behaves as if seen in one extra document,
		// so unseen-at-transform terms cannot blow up the weight.
		t.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return t
}

// Dim returns the vocabulary size.
func (t *TFIDF) Dim() int {
	return len(t.vocab)
}

// Transform encodes one token stream. Terms outside the fitted vocabulary
// are ignored; the result is L2-normalized unless empty.
func (t *TFIDF) Transform(doc []string) vectors.Sparse {
	counts := make(map[int]float64)

	for _, term := range doc {
		if idx, ok := t.vocab[term]; ok {
			counts[idx]++
		}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}

	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = counts[idx] * t.idf[idx]
	}

	vec := vectors.Sparse{Indices: indices, Values: values, Dim: t.Dim()}

	if norm := vec.Norm(); norm > 0 {
		vec.Scale(1 / norm)
	}

	return vec
}
