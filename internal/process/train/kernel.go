package train

import (
	"math"

	"github.com/lueurxax/stance-classifier/internal/core/vectors"
)

// KernelKind names a supported kernel family.
type KernelKind string

const (
	KernelLinear KernelKind = "linear"
	KernelRBF    KernelKind = "rbf"
)

// Kernel computes the inner product of two samples in kernel space.
type Kernel func(a, b vectors.Sparse) float64

// Linear returns the plain dot-product kernel.
func Linear() Kernel {
	return vectors.Dot
}

// RBF returns the radial-basis kernel with the given spread.
func RBF(gamma float64) Kernel {
	return func(a, b vectors.Sparse) float64 {
		return math.Exp(-gamma * vectors.SquaredDistance(a, b))
	}
}

func (k KernelKind) build(gamma float64) Kernel {
	if k == KernelRBF {
		return RBF(gamma)
	}

	return Linear()
}
