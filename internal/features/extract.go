// Package features is the feature extractor: it turns a raw message plus its
// thread context into the named feature bag the composers read. The bag is
// computed once per message and treated as read-only afterwards.
package features

import (
	"strings"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
)

// TaskStanceClassification is the task identifier for the stance task.
const TaskStanceClassification = "A"

// Options configures extraction. Both strip flags stay false for the stance
// task; they exist because other tasks share the extractor contract.
type Options struct {
	Task          string
	StripHashtags bool
	StripMentions bool
}

// DefaultOptions returns the extractor configuration for the stance task.
func DefaultOptions() Options {
	return Options{Task: TaskStanceClassification}
}

// Extract builds the complete feature bag for one message. Every key of the
// extractor contract is always present; channels selecting any subset never
// observe a hole.
func Extract(m *domain.Message, threads *domain.ThreadSet, opts Options) domain.FeatureBag {
	normalized := NormalizeText(m)
	tokens := Tokenize(normalized)
	tokens = applyStripFlags(tokens, opts)

	root := threads.Root(m)

	return domain.FeatureBag{
		domain.KeyTextStemmedStopped: domain.TextFeature(StemAndStop(tokens)),
		domain.KeyTextMinusRoot:      domain.TextFeature(subtractRootTokens(tokens, m, root, opts)),

		domain.KeyVerified: domain.FlagFeature(m.Verified),
		domain.KeyIsNews:   domain.FlagFeature(m.IsNews),
		domain.KeyIsRoot:   domain.FlagFeature(m.IsRoot()),

		domain.KeyPeriodCount:       domain.NumericFeature(float64(countPeriods(m.Text))),
		domain.KeyQuestionMarkCount: domain.NumericFeature(float64(strings.Count(m.Text, "?"))),
		domain.KeyExclamationCount:  domain.NumericFeature(float64(strings.Count(m.Text, "!"))),
		domain.KeyEllipsisCount:     domain.NumericFeature(float64(countEllipses(m.Text))),
		domain.KeyCharCount:         domain.NumericFeature(float64(len([]rune(m.Text)))),

		domain.KeyDepth:        domain.NumericFeature(float64(threads.Depth(m))),
		domain.KeyHashtagCount: domain.NumericFeature(float64(m.HashtagCount)),
		domain.KeyMentionCount: domain.NumericFeature(float64(m.MentionCount)),
		domain.KeyRetweetCount: domain.NumericFeature(float64(m.RetweetCount)),

		domain.KeyPositiveWords: domain.NumericFeature(float64(positiveWords.count(tokens))),
		domain.KeyNegativeWords: domain.NumericFeature(float64(negativeWords.count(tokens))),
		domain.KeyDenyingWords:  domain.NumericFeature(float64(denyingWords.count(tokens))),
		domain.KeyQueryingWords: domain.NumericFeature(float64(queryingWords.count(tokens))),
		domain.KeySwearWords:    domain.NumericFeature(float64(swearWords.count(tokens))),
		domain.KeyPersonalWords: domain.NumericFeature(float64(personalAttackWords.count(tokens))),
	}
}

// ExtractAll builds bags for every message, aligned with the input order.
func ExtractAll(messages []*domain.Message, threads *domain.ThreadSet, opts Options) []domain.FeatureBag {
	bags := make([]domain.FeatureBag, len(messages))
	for i, m := range messages {
		bags[i] = Extract(m, threads, opts)
	}

	return bags
}

func applyStripFlags(tokens []string, opts Options) []string {
	if !opts.StripHashtags && !opts.StripMentions {
		return tokens
	}

	out := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		if opts.StripHashtags && strings.HasPrefix(tok, "#") {
			continue
		}

		if opts.StripMentions && strings.HasPrefix(tok, "@") {
			continue
		}

		out = append(out, tok)
	}

	return out
}

// subtractRootTokens removes the root's vocabulary from a reply's stemmed
// token stream, leaving only the words the reply adds to the conversation.
// For roots the stream is the full stemmed text.
func subtractRootTokens(tokens []string, m, root *domain.Message, opts Options) []string {
	stemmed := StemAndStop(tokens)
	if root == nil || root.ID == m.ID {
		return stemmed
	}

	rootTokens := Tokenize(NormalizeText(root))
	rootTokens = applyStripFlags(rootTokens, opts)

	rootVocab := make(map[string]struct{}, len(rootTokens))
	for _, tok := range StemAndStop(rootTokens) {
		rootVocab[tok] = struct{}{}
	}

	out := make([]string, 0, len(stemmed))

	for _, tok := range stemmed {
		if _, seen := rootVocab[tok]; seen {
			continue
		}

		out = append(out, tok)
	}

	return out
}

// countPeriods counts standalone full stops, not the dots inside ellipses.
func countPeriods(text string) int {
	return strings.Count(text, ".") - 3*strings.Count(text, "...")
}

func countEllipses(text string) int {
	return strings.Count(text, "...") + strings.Count(text, "…")
}
