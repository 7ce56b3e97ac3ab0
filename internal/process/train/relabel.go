package train

import "github.com/lueurxax/stance-classifier/internal/core/domain"

// Relabel converts four-class annotations into a one-vs-rest labeling for
// the target class. The output takes exactly two values: the target label
// and its "not_" counterpart.
func Relabel(annotations domain.Annotations, target domain.Stance) map[string]string {
	rest := domain.NotLabel(target)

	out := make(map[string]string, len(annotations))

	for id, stance := range annotations {
		if stance == target {
			out[id] = string(target)
		} else {
			out[id] = rest
		}
	}

	return out
}

// alignedLabels resolves a relabeled map back to message order.
func alignedLabels(relabeled map[string]string, messages []*domain.Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = relabeled[m.ID]
	}

	return out
}
