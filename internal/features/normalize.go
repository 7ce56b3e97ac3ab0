package features

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	lowerCaser = cases.Lower(language.Und)

	// foldTransformer strips combining marks so accented and plain spellings
	// of a word land on the same term.
	foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeText produces the task-normalized form of a message's text:
// lowercased, diacritics folded, URLs removed, whitespace collapsed.
func NormalizeText(m *domain.Message) string {
	text := urlPattern.ReplaceAllString(m.Text, " ")
	text = lowerCaser.String(text)

	if folded, _, err := transform.String(foldTransformer, text); err == nil {
		text = folded
	}

	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
