package train

import (
	"github.com/lueurxax/stance-classifier/internal/process/compose"
)

// Classifier bank member names, used in logs and metrics labels.
const (
	MemberBase  = "base"
	MemberDeny  = "deny"
	MemberQuery = "query"
)

// BaseProfile builds the configuration record for the four-class classifier:
// RBF kernel, unbalanced penalties.
func BaseProfile(c, gamma float64, weightOverrides map[string]float64) MemberConfig {
	return MemberConfig{
		Name:     MemberBase,
		Channels: compose.ApplyWeights(compose.BaseChannels(), weightOverrides),
		SVC: SVCConfig{
			Kernel: KernelRBF,
			C:      c,
			Gamma:  gamma,
		},
	}
}

// DenyProfile builds the configuration record for the deny detector: linear
// kernel with class-balanced penalties, since denials are rare.
func DenyProfile(c float64, weightOverrides map[string]float64) MemberConfig {
	return MemberConfig{
		Name:     MemberDeny,
		Channels: compose.ApplyWeights(compose.DenyChannels(), weightOverrides),
		SVC: SVCConfig{
			Kernel:   KernelLinear,
			C:        c,
			Balanced: true,
		},
	}
}

// QueryProfile builds the configuration record for the query detector:
// linear kernel with class-balanced penalties.
func QueryProfile(c float64, weightOverrides map[string]float64) MemberConfig {
	return MemberConfig{
		Name:     MemberQuery,
		Channels: compose.ApplyWeights(compose.QueryChannels(), weightOverrides),
		SVC: SVCConfig{
			Kernel:   KernelLinear,
			C:        c,
			Balanced: true,
		},
	}
}
