package features

import "strings"

const minTokenLength = 2

// stopwords are dropped from the stemmed token stream fed to term-weighted
// channels. Deliberately small: stance cues like "not" and "no" must survive.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "that": {}, "the": {}, "to": {},
	"was": {}, "were": {}, "will": {}, "with": {},
}

// Tokenize splits normalized text into lowercase word tokens, dropping
// punctuation and tokens shorter than two characters.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := make([]string, 0, len(fields))

	for _, f := range fields {
		if len(f) < minTokenLength {
			continue
		}

		tokens = append(tokens, f)
	}

	return tokens
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '\'' || r == '#' || r == '@':
		return true
	default:
		return false
	}
}

// Stem strips common English suffixes. A full stemmer is overkill for the
// short, noisy texts here; this collapses the inflections that matter for
// term matching.
func Stem(token string) string {
	suffixes := []string{"ingly", "edly", "ing", "ed", "ly", "es", "s"}

	for _, suffix := range suffixes {
		if strings.HasSuffix(token, suffix) && len(token)-len(suffix) >= minTokenLength+1 {
			return token[:len(token)-len(suffix)]
		}
	}

	return token
}

// StemAndStop stems every token and drops stopwords.
func StemAndStop(tokens []string) []string {
	out := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		if _, stop := stopwords[tok]; stop {
			continue
		}

		out = append(out, Stem(tok))
	}

	return out
}
