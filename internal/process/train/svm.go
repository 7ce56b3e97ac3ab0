// Package train implements the classifier bank: support-vector classifiers
// over composed feature vectors, one-vs-rest relabeling, stratified
// cross-validation, and grid-searched hyperparameter selection.
package train

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
	"github.com/lueurxax/stance-classifier/internal/core/vectors"
)

// SMO stopping parameters. Training is deterministic: no randomized index
// selection, so identical inputs always yield identical models.
const (
	smoTolerance     = 1e-3
	smoAlphaEpsilon  = 1e-5
	smoSupportCutoff = 1e-8
	smoMaxPasses     = 10
	smoMaxIterations = 20000
)

// SVCConfig holds the hyperparameters of one support-vector classifier.
type SVCConfig struct {
	Kernel KernelKind
	C      float64
	Gamma  float64

	// Balanced scales the per-class penalty inversely to class frequency.
	Balanced bool
}

// SVC is a support-vector classifier. Multi-class problems are decomposed
// into one-vs-one pairs with majority voting; binary problems train a
// single pair. Fitted models are immutable and safe for concurrent Predict.
type SVC struct {
	config  SVCConfig
	kernel  Kernel
	classes []string
	pairs   []pairModel
	support []vectors.Sparse
}

// pairModel is the decision function for one class pair. A positive decision
// votes for pos, negative for neg.
type pairModel struct {
	pos, neg string
	vectors  []int
	coef     []float64
	bias     float64
}

// NewSVC creates an unfitted classifier.
func NewSVC(config SVCConfig) *SVC {
	return &SVC{
		config: config,
		kernel: config.Kernel.build(config.Gamma),
	}
}

// Classes returns the fitted class set in sorted order.
func (s *SVC) Classes() []string {
	return s.classes
}

// Fit trains the classifier on aligned features and labels.
func (s *SVC) Fit(x []vectors.Sparse, y []string) error {
	if len(x) == 0 {
		return fmt.Errorf("fitting svc: %w", errs.ErrEmptyTrainingSet)
	}

	if len(x) != len(y) {
		return fmt.Errorf("fitting svc: %w", errs.ErrLengthMismatch)
	}

	s.classes = uniqueSorted(y)
	if len(s.classes) < 2 {
		return fmt.Errorf("fitting svc: %w", errs.ErrSingleClassTraining)
	}

	gram := computeGram(x, s.kernel)
	penalties := s.classPenalties(y)

	byClass := make(map[string][]int, len(s.classes))
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}

	s.support = x
	s.pairs = make([]pairModel, 0, len(s.classes)*(len(s.classes)-1)/2)

	for i := 0; i < len(s.classes); i++ {
		for j := i + 1; j < len(s.classes); j++ {
			pair := s.trainPair(gram, byClass, penalties, s.classes[i], s.classes[j])
			s.pairs = append(s.pairs, pair)
		}
	}

	return nil
}

// Predict labels each sample by majority vote over the pair decisions.
// Vote ties resolve to the earliest class in sorted order.
func (s *SVC) Predict(x []vectors.Sparse) []string {
	out := make([]string, len(x))

	for i, sample := range x {
		votes := make(map[string]int, len(s.classes))

		for _, pair := range s.pairs {
			if s.decide(pair, sample) > 0 {
				votes[pair.pos]++
			} else {
				votes[pair.neg]++
			}
		}

		best := s.classes[0]
		for _, class := range s.classes {
			if votes[class] > votes[best] {
				best = class
			}
		}

		out[i] = best
	}

	return out
}

func (s *SVC) decide(pair pairModel, sample vectors.Sparse) float64 {
	sum := pair.bias

	for i, idx := range pair.vectors {
		sum += pair.coef[i] * s.kernel(s.support[idx], sample)
	}

	return sum
}

// classPenalties computes the per-class C multiplier. Balanced weighting
// uses n / (k * count), matching the usual balanced heuristic.
func (s *SVC) classPenalties(y []string) map[string]float64 {
	penalties := make(map[string]float64, len(s.classes))

	if !s.config.Balanced {
		for _, class := range s.classes {
			penalties[class] = s.config.C
		}

		return penalties
	}

	counts := make(map[string]int, len(s.classes))
	for _, label := range y {
		counts[label]++
	}

	n := float64(len(y))
	k := float64(len(s.classes))

	for _, class := range s.classes {
		penalties[class] = s.config.C * n / (k * float64(counts[class]))
	}

	return penalties
}

// trainPair runs SMO on the subset of samples belonging to either class.
// The first class of the sorted pair maps to +1.
func (s *SVC) trainPair(gram *mat.SymDense, byClass map[string][]int, penalties map[string]float64, pos, neg string) pairModel {
	indices := make([]int, 0, len(byClass[pos])+len(byClass[neg]))
	indices = append(indices, byClass[pos]...)
	indices = append(indices, byClass[neg]...)
	sort.Ints(indices)

	n := len(indices)
	y := make([]float64, n)
	c := make([]float64, n)

	for i, idx := range indices {
		if contains(byClass[pos], idx) {
			y[i] = 1
			c[i] = penalties[pos]
		} else {
			y[i] = -1
			c[i] = penalties[neg]
		}
	}

	kernelAt := func(i, j int) float64 {
		return gram.At(indices[i], indices[j])
	}

	alpha, bias := smo(kernelAt, y, c, n)

	pair := pairModel{pos: pos, neg: neg, bias: bias}

	for i := 0; i < n; i++ {
		if alpha[i] > smoSupportCutoff {
			pair.vectors = append(pair.vectors, indices[i])
			pair.coef = append(pair.coef, alpha[i]*y[i])
		}
	}

	return pair
}

// smo solves the soft-margin dual with sequential minimal optimization,
// using per-sample box constraints so class-balanced penalties apply.
func smo(kernelAt func(i, j int) float64, y, c []float64, n int) ([]float64, float64) {
	alpha := make([]float64, n)
	bias := 0.0

	decision := func(i int) float64 {
		sum := bias
		for j := 0; j < n; j++ {
			if alpha[j] > 0 {
				sum += alpha[j] * y[j] * kernelAt(i, j)
			}
		}

		return sum
	}

	passes := 0
	for iter := 0; passes < smoMaxPasses && iter < smoMaxIterations; iter++ {
		changed := 0

		for i := 0; i < n; i++ {
			errI := decision(i) - y[i]

			violates := (y[i]*errI < -smoTolerance && alpha[i] < c[i]) ||
				(y[i]*errI > smoTolerance && alpha[i] > 0)
			if !violates {
				continue
			}

			j := selectSecond(i, n, errI, decision, y)
			if j < 0 {
				continue
			}

			errJ := decision(j) - y[j]

			low, high := bounds(alpha[i], alpha[j], c[i], c[j], y[i] == y[j])
			if low >= high {
				continue
			}

			eta := 2*kernelAt(i, j) - kernelAt(i, i) - kernelAt(j, j)
			if eta >= 0 {
				continue
			}

			newJ := clamp(alpha[j]-y[j]*(errI-errJ)/eta, low, high)
			if math.Abs(newJ-alpha[j]) < smoAlphaEpsilon {
				continue
			}

			newI := alpha[i] + y[i]*y[j]*(alpha[j]-newJ)

			bias = updateBias(bias, errI, errJ, alpha[i], alpha[j], newI, newJ, y[i], y[j],
				kernelAt(i, i), kernelAt(i, j), kernelAt(j, j), c[i], c[j])

			alpha[i] = newI
			alpha[j] = newJ
			changed++
		}

		if changed == 0 {
			passes++
		} else {
			passes = 0
		}
	}

	return alpha, bias
}

// selectSecond picks the partner index maximizing |errI - errJ|, scanning
// in fixed order for determinism.
func selectSecond(i, n int, errI float64, decision func(int) float64, y []float64) int {
	best := -1
	bestGap := -1.0

	for j := 0; j < n; j++ {
		if j == i {
			continue
		}

		gap := math.Abs(errI - (decision(j) - y[j]))
		if gap > bestGap {
			bestGap = gap
			best = j
		}
	}

	return best
}

func bounds(alphaI, alphaJ, cI, cJ float64, sameSign bool) (float64, float64) {
	if sameSign {
		sum := alphaI + alphaJ
		return math.Max(0, sum-cI), math.Min(cJ, sum)
	}

	diff := alphaJ - alphaI

	return math.Max(0, diff), math.Min(cJ, cI+diff)
}

func updateBias(bias, errI, errJ, oldI, oldJ, newI, newJ, yI, yJ, kII, kIJ, kJJ, cI, cJ float64) float64 {
	b1 := bias - errI - yI*(newI-oldI)*kII - yJ*(newJ-oldJ)*kIJ
	b2 := bias - errJ - yI*(newI-oldI)*kIJ - yJ*(newJ-oldJ)*kJJ

	switch {
	case newI > 0 && newI < cI:
		return b1
	case newJ > 0 && newJ < cJ:
		return b2
	default:
		return (b1 + b2) / 2
	}
}

func computeGram(x []vectors.Sparse, kernel Kernel) *mat.SymDense {
	n := len(x)
	gram := mat.NewSymDense(n, nil)

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			gram.SetSym(i, j, kernel(x[i], x[j]))
		}
	}

	return gram
}

func clamp(v, low, high float64) float64 {
	switch {
	case v < low:
		return low
	case v > high:
		return high
	default:
		return v
	}
}

func uniqueSorted(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, 4)

	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}

		seen[label] = struct{}{}
		out = append(out, label)
	}

	sort.Strings(out)

	return out
}

func contains(sorted []int, v int) bool {
	idx := sort.SearchInts(sorted, v)
	return idx < len(sorted) && sorted[idx] == v
}
