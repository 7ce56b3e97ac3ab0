package domain

import (
	"fmt"

	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
)

// Feature-bag keys form the contract between the extractor and the feature
// channels: the extractor must populate every key for every message.
const (
	KeyTextStemmedStopped = "text_stemmed_stopped"
	KeyTextMinusRoot      = "text_minus_root"
	KeyVerified           = "verified"
	KeyIsNews             = "is_news"
	KeyIsRoot             = "is_root"
	KeyPeriodCount        = "period_count"
	KeyQuestionMarkCount  = "question_mark_count"
	KeyExclamationCount   = "exclamation_count"
	KeyEllipsisCount      = "ellipsis_count"
	KeyCharCount          = "char_count"
	KeyDepth              = "depth"
	KeyHashtagCount       = "hashtag_count"
	KeyMentionCount       = "mention_count"
	KeyRetweetCount       = "retweet_count"
	KeyPositiveWords      = "positive_words"
	KeyNegativeWords      = "negative_words"
	KeyDenyingWords       = "denying_words"
	KeyQueryingWords      = "querying_words"
	KeySwearWords         = "swear_words"
	KeyPersonalWords      = "personal_words"
)

// FeatureKind discriminates the value held by a Feature.
type FeatureKind int

const (
	// FeatureNumeric is a scalar count or measurement.
	FeatureNumeric FeatureKind = iota
	// FeatureFlag is a boolean indicator.
	FeatureFlag
	// FeatureText is a token stream for term-weighted encoding.
	FeatureText
)

// Feature is one named value in a message's feature bag.
type Feature struct {
	Kind   FeatureKind
	Value  float64
	Tokens []string
}

// NumericFeature wraps a scalar value.
func NumericFeature(v float64) Feature {
	return Feature{Kind: FeatureNumeric, Value: v}
}

// FlagFeature wraps a boolean indicator.
func FlagFeature(set bool) Feature {
	f := Feature{Kind: FeatureFlag}
	if set {
		f.Value = 1
	}

	return f
}

// TextFeature wraps a token stream.
func TextFeature(tokens []string) Feature {
	return Feature{Kind: FeatureText, Tokens: tokens}
}

// FeatureBag maps feature-channel keys to values for one message.
// Bags are produced once by the extractor and treated as read-only.
type FeatureBag map[string]Feature

// Lookup fetches a key. A missing key violates the extractor contract and
// is a hard failure, never silently skipped.
func (b FeatureBag) Lookup(key string) (Feature, error) {
	f, ok := b[key]
	if !ok {
		return Feature{}, fmt.Errorf("%w: %s", errs.ErrMissingChannel, key)
	}

	return f, nil
}
