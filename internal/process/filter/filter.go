// Package filter drops near-duplicate and uninformative messages from a
// training set before classification.
//
// Similarity is term-weighted cosine over a vocabulary built from just the
// root text and the candidate text. On very short or disjoint texts it
// degenerates toward 0; that is an accepted approximation, not a robust
// similarity measure.
package filter

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	"github.com/lueurxax/stance-classifier/internal/core/vectors"
	"github.com/lueurxax/stance-classifier/internal/platform/observability"
	"github.com/lueurxax/stance-classifier/internal/process/compose"
)

// Log key constants for filtering.
const (
	logKeySkippedID  = "skipped_id"
	logKeyRootID     = "root_id"
	logKeySimilarity = "similarity"
	logKeyReason     = "reason"
)

const (
	// DefaultSimilarityThreshold filters messages at least this similar to
	// their thread root.
	DefaultSimilarityThreshold = 0.9

	// minMeaningfulTokens is the whitespace-token floor for short filtering.
	minMeaningfulTokens = 3

	reasonShort   = "short"
	reasonSimilar = "similar_to_root"
)

// Normalizer produces the comparable text form of a message. It is supplied
// by the feature extractor.
type Normalizer func(*domain.Message) string

// Options tunes the filter.
type Options struct {
	// FilterShort drops replies with fewer than three whitespace tokens.
	FilterShort bool

	// SimilarityThreshold drops replies at least this similar to their root.
	SimilarityThreshold float64
}

// DefaultOptions mirrors the production filter configuration.
func DefaultOptions() Options {
	return Options{SimilarityThreshold: DefaultSimilarityThreshold}
}

// Filter returns the retained messages in their original order. Root
// messages are always kept. The root-text cache lives for exactly one call;
// it must never become shared state across invocations or goroutines.
func Filter(threads *domain.ThreadSet, messages []*domain.Message, normalize Normalizer, opts Options, logger *zerolog.Logger) []*domain.Message {
	rootCache := make(map[string]string)

	kept := make([]*domain.Message, 0, len(messages))

	for _, m := range messages {
		root := threads.Root(m)

		if root.ID == m.ID {
			kept = append(kept, m)
			continue
		}

		rootText, ok := rootCache[root.ID]
		if !ok {
			rootText = normalize(root)
			rootCache[root.ID] = rootText
		}

		text := normalize(m)

		if opts.FilterShort && len(strings.Fields(text)) < minMeaningfulTokens {
			observability.FilterDropped.WithLabelValues(reasonShort).Inc()

			if logger != nil {
				logger.Debug().
					Str(logKeySkippedID, m.ID).
					Str(logKeyReason, reasonShort).
					Msg("dropping training message")
			}

			continue
		}

		similarity := rootSimilarity(rootText, text)
		if similarity >= opts.SimilarityThreshold {
			observability.FilterDropped.WithLabelValues(reasonSimilar).Inc()

			if logger != nil {
				logger.Debug().
					Str(logKeySkippedID, m.ID).
					Str(logKeyRootID, root.ID).
					Float64(logKeySimilarity, similarity).
					Str(logKeyReason, reasonSimilar).
					Msg("dropping training message")
			}

			continue
		}

		kept = append(kept, m)
	}

	return kept
}

// rootSimilarity computes cosine similarity between the root and candidate
// texts under a TF-IDF weighting fitted on exactly those two documents.
func rootSimilarity(rootText, text string) float64 {
	rootDoc := strings.Fields(rootText)
	doc := strings.Fields(text)

	vectorizer := compose.FitTFIDF([][]string{rootDoc, doc})

	return vectors.Cosine(vectorizer.Transform(rootDoc), vectorizer.Transform(doc))
}
