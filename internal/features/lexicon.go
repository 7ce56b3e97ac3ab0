package features

// Lexicons for counting stance-bearing words. Matching happens on raw
// lowercase tokens, before stemming, so entries are surface forms.

var positiveWords = newLexicon(
	"good", "great", "true", "right", "correct", "confirmed", "agree",
	"yes", "amazing", "love", "best", "hope", "glad", "thanks", "thank",
)

var negativeWords = newLexicon(
	"bad", "wrong", "false", "terrible", "awful", "hate", "worst",
	"sad", "horrible", "fear", "afraid", "tragic", "disgusting", "angry",
)

var denyingWords = newLexicon(
	"no", "not", "never", "fake", "false", "hoax", "lie", "lies", "lying",
	"wrong", "untrue", "deny", "denies", "denied", "doubt", "rumour", "rumor",
	"unconfirmed", "bullshit", "bs",
)

var queryingWords = newLexicon(
	"what", "when", "where", "who", "why", "how", "really", "source",
	"sources", "proof", "evidence", "confirm", "confirmed", "sure",
	"verify", "true", "legit", "seriously",
)

var swearWords = newLexicon(
	"damn", "hell", "shit", "fuck", "fucking", "crap", "wtf", "ass",
	"bloody", "bastard",
)

var personalAttackWords = newLexicon(
	"idiot", "stupid", "dumb", "moron", "liar", "fool", "clown",
	"troll", "pathetic", "ignorant",
)

type lexicon map[string]struct{}

func newLexicon(words ...string) lexicon {
	l := make(lexicon, len(words))
	for _, w := range words {
		l[w] = struct{}{}
	}

	return l
}

// count returns how many tokens appear in the lexicon.
func (l lexicon) count(tokens []string) int {
	n := 0

	for _, tok := range tokens {
		if _, ok := l[tok]; ok {
			n++
		}
	}

	return n
}
