// Package ensemble merges the three classifiers' predictions into one final
// label per message using fixed priority rules, auto-selecting between two
// rule variants by measured accuracy.
package ensemble

import (
	"github.com/rs/zerolog"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	"github.com/lueurxax/stance-classifier/internal/platform/observability"
)

// Strategy names a combination rule variant.
type Strategy string

const (
	// StrategyWithoutDeny trusts the base classifier's comment calls and
	// lets the query detector override everything else.
	StrategyWithoutDeny Strategy = "without_deny"

	// StrategyWithDeny applies query over deny over base, in that order.
	StrategyWithDeny Strategy = "with_deny"
)

// Log key constants for strategy selection.
const (
	logKeyStrategy           = "strategy"
	logKeyAccuracyWithout    = "accuracy_without_deny"
	logKeyAccuracyWith       = "accuracy_with_deny"
	logKeyEvaluationMessages = "evaluation_messages"
)

// CombineWithoutDeny applies the without-deny rule per message: base comment
// wins, then query detection, then the base prediction.
func CombineWithoutDeny(base, deny, query []string) []string {
	_ = deny // the deny detector is deliberately unused in this variant

	out := make([]string, len(base))

	for i := range base {
		switch {
		case base[i] == string(domain.StanceComment):
			out[i] = string(domain.StanceComment)
		case query[i] == string(domain.StanceQuery):
			out[i] = string(domain.StanceQuery)
		default:
			out[i] = base[i]
		}
	}

	return out
}

// CombineWithDeny applies the with-deny rule per message: query detection
// wins, then deny detection, then the base prediction.
func CombineWithDeny(base, deny, query []string) []string {
	out := make([]string, len(base))

	for i := range base {
		switch {
		case query[i] == string(domain.StanceQuery):
			out[i] = string(domain.StanceQuery)
		case deny[i] == string(domain.StanceDeny):
			out[i] = string(domain.StanceDeny)
		default:
			out[i] = base[i]
		}
	}

	return out
}

// Result carries both strategies' outputs and the selected one.
type Result struct {
	WithoutDeny []string
	WithDeny    []string
	Selected    []string
	Strategy    Strategy
}

// Combine evaluates both strategies against the gold base labels and keeps
// the more accurate output. On an exact tie without-deny wins; the tie-break
// is preserved verbatim for reproducibility.
func Combine(base, deny, query, gold []string, logger *zerolog.Logger) Result {
	result := Result{
		WithoutDeny: CombineWithoutDeny(base, deny, query),
		WithDeny:    CombineWithDeny(base, deny, query),
	}

	accuracyWithout := accuracy(gold, result.WithoutDeny)
	accuracyWith := accuracy(gold, result.WithDeny)

	observability.EnsembleAccuracy.WithLabelValues(string(StrategyWithoutDeny)).Set(accuracyWithout)
	observability.EnsembleAccuracy.WithLabelValues(string(StrategyWithDeny)).Set(accuracyWith)

	if accuracyWith > accuracyWithout {
		result.Selected = result.WithDeny
		result.Strategy = StrategyWithDeny
	} else {
		result.Selected = result.WithoutDeny
		result.Strategy = StrategyWithoutDeny
	}

	if logger != nil {
		logger.Info().
			Str(logKeyStrategy, string(result.Strategy)).
			Float64(logKeyAccuracyWithout, accuracyWithout).
			Float64(logKeyAccuracyWith, accuracyWith).
			Int(logKeyEvaluationMessages, len(base)).
			Msg("ensemble strategy selected")
	}

	return result
}

func accuracy(gold, pred []string) float64 {
	if len(gold) == 0 {
		return 0
	}

	correct := 0

	for i := range gold {
		if gold[i] == pred[i] {
			correct++
		}
	}

	return float64(correct) / float64(len(gold))
}
