package domain

import (
	"fmt"

	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
)

// Stance is the label a reply carries relative to the claim in its thread.
// The set is closed: exactly four values exist and every gold or predicted
// label must validate against it at ingestion.
type Stance string

const (
	StanceComment Stance = "comment"
	StanceDeny    Stance = "deny"
	StanceQuery   Stance = "query"
	StanceSupport Stance = "support"
)

// Stances returns the four stance classes in canonical report order.
func Stances() []Stance {
	return []Stance{StanceComment, StanceDeny, StanceQuery, StanceSupport}
}

// ParseStance validates a raw label string against the closed stance set.
func ParseStance(raw string) (Stance, error) {
	switch Stance(raw) {
	case StanceComment, StanceDeny, StanceQuery, StanceSupport:
		return Stance(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownLabel, raw)
	}
}

// NotLabel is the rest-class label used by one-vs-rest relabeling.
func NotLabel(target Stance) string {
	return "not_" + string(target)
}

// Annotations maps message IDs to gold stance labels.
type Annotations map[string]Stance

// Labels returns gold labels aligned with the given messages.
// Coverage must be total: a message without an annotation is an error.
func (a Annotations) Labels(messages []*Message) ([]string, error) {
	labels := make([]string, len(messages))

	for i, m := range messages {
		stance, ok := a[m.ID]
		if !ok {
			return nil, fmt.Errorf("%w: message %s", errs.ErrAnnotationCoverage, m.ID)
		}

		labels[i] = string(stance)
	}

	return labels, nil
}

// PredictionSet maps message IDs to predicted labels for one classifier run.
type PredictionSet map[string]string

// NewPredictionSet builds a PredictionSet from labels aligned with messages.
func NewPredictionSet(messages []*Message, labels []string) PredictionSet {
	set := make(PredictionSet, len(messages))
	for i, m := range messages {
		set[m.ID] = labels[i]
	}

	return set
}
