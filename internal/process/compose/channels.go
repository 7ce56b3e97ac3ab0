package compose

import "github.com/lueurxax/stance-classifier/internal/core/domain"

// Encoding selects how a channel turns feature values into a sub-vector.
type Encoding int

const (
	// EncodeNumeric emits one dimension per key carrying the raw value.
	EncodeNumeric Encoding = iota
	// EncodeCategorical emits one indicator dimension per key.
	EncodeCategorical
	// EncodeText emits a TF-IDF encoding of a single token-stream key.
	EncodeText
)

// Channel is one named, independently encoded slice of a message's features.
type Channel struct {
	Name     string
	Keys     []string
	Encoding Encoding
	Weight   float64
}

// Channel names, shared between the default tables and weight overrides.
const (
	ChannelText          = "tweet_text"
	ChannelVerified      = "verified"
	ChannelIsNews        = "is_news"
	ChannelIsRoot        = "is_root"
	ChannelPeriods       = "count_periods"
	ChannelQuestionMarks = "count_question_marks"
	ChannelExclamations  = "count_exclamations"
	ChannelEllipsis      = "count_ellipsis"
	ChannelChars         = "count_chars"
	ChannelDepth         = "count_depth"
	ChannelHashtags      = "count_hashtags"
	ChannelMentions      = "count_mentions"
	ChannelRetweets      = "count_retweets"
	ChannelSentiment     = "pos_neg_sentiment"
	ChannelDenyingWords  = "denying_words"
	ChannelQueryingWords = "querying_words"
	ChannelOffensiveness = "offensiveness"
)

// BaseChannels is the default channel table for the four-class classifier.
func BaseChannels() []Channel {
	return []Channel{
		{Name: ChannelText, Keys: []string{domain.KeyTextStemmedStopped}, Encoding: EncodeText, Weight: 1.0},

		{Name: ChannelVerified, Keys: []string{domain.KeyVerified}, Encoding: EncodeCategorical, Weight: 0.5},
		{Name: ChannelIsNews, Keys: []string{domain.KeyIsNews}, Encoding: EncodeCategorical, Weight: 5.0},
		{Name: ChannelIsRoot, Keys: []string{domain.KeyIsRoot}, Encoding: EncodeCategorical, Weight: 20.0},

		{Name: ChannelPeriods, Keys: []string{domain.KeyPeriodCount}, Encoding: EncodeNumeric, Weight: 0.5},
		{Name: ChannelQuestionMarks, Keys: []string{domain.KeyQuestionMarkCount}, Encoding: EncodeNumeric, Weight: 0.5},
		{Name: ChannelExclamations, Keys: []string{domain.KeyExclamationCount}, Encoding: EncodeNumeric, Weight: 0.5},
		{Name: ChannelEllipsis, Keys: []string{domain.KeyEllipsisCount}, Encoding: EncodeNumeric, Weight: 0.5},
		{Name: ChannelChars, Keys: []string{domain.KeyCharCount}, Encoding: EncodeNumeric, Weight: 0.5},

		{Name: ChannelDepth, Keys: []string{domain.KeyDepth}, Encoding: EncodeNumeric, Weight: 0.5},
		{Name: ChannelHashtags, Keys: []string{domain.KeyHashtagCount}, Encoding: EncodeNumeric, Weight: 0.5},
		{Name: ChannelMentions, Keys: []string{domain.KeyMentionCount}, Encoding: EncodeNumeric, Weight: 0.5},
		{Name: ChannelRetweets, Keys: []string{domain.KeyRetweetCount}, Encoding: EncodeNumeric, Weight: 0.5},

		{Name: ChannelSentiment, Keys: []string{domain.KeyPositiveWords, domain.KeyNegativeWords}, Encoding: EncodeNumeric, Weight: 1.0},
		{Name: ChannelDenyingWords, Keys: []string{domain.KeyDenyingWords}, Encoding: EncodeNumeric, Weight: 1.0},
		{Name: ChannelQueryingWords, Keys: []string{domain.KeyQueryingWords}, Encoding: EncodeNumeric, Weight: 1.0},
		{Name: ChannelOffensiveness, Keys: []string{domain.KeySwearWords, domain.KeyPersonalWords}, Encoding: EncodeNumeric, Weight: 5.0},
	}
}

// DenyChannels is the default channel table for the deny detector. Its text
// channel reads the root-subtracted token stream: restating the root is the
// opposite of denying it.
func DenyChannels() []Channel {
	return []Channel{
		{Name: ChannelText, Keys: []string{domain.KeyTextMinusRoot}, Encoding: EncodeText, Weight: 1.0},

		{Name: ChannelEllipsis, Keys: []string{domain.KeyEllipsisCount}, Encoding: EncodeNumeric, Weight: 2.5},
		{Name: ChannelQuestionMarks, Keys: []string{domain.KeyQuestionMarkCount}, Encoding: EncodeNumeric, Weight: 2.5},

		{Name: ChannelDepth, Keys: []string{domain.KeyDepth}, Encoding: EncodeNumeric, Weight: 1.0},

		{Name: ChannelIsNews, Keys: []string{domain.KeyIsNews}, Encoding: EncodeCategorical, Weight: 1.0},
		{Name: ChannelIsRoot, Keys: []string{domain.KeyIsRoot}, Encoding: EncodeCategorical, Weight: 2.5},

		{Name: ChannelSentiment, Keys: []string{domain.KeyPositiveWords, domain.KeyNegativeWords}, Encoding: EncodeNumeric, Weight: 0.5},
		{Name: ChannelDenyingWords, Keys: []string{domain.KeyDenyingWords}, Encoding: EncodeNumeric, Weight: 5.0},
		{Name: ChannelQueryingWords, Keys: []string{domain.KeyQueryingWords}, Encoding: EncodeNumeric, Weight: 1.0},
		{Name: ChannelOffensiveness, Keys: []string{domain.KeySwearWords, domain.KeyPersonalWords}, Encoding: EncodeNumeric, Weight: 5.0},
	}
}

// QueryChannels is the default channel table for the query detector.
func QueryChannels() []Channel {
	return []Channel{
		{Name: ChannelDepth, Keys: []string{domain.KeyDepth}, Encoding: EncodeNumeric, Weight: 1.0},

		{Name: ChannelIsNews, Keys: []string{domain.KeyIsNews}, Encoding: EncodeCategorical, Weight: 1.0},
		{Name: ChannelIsRoot, Keys: []string{domain.KeyIsRoot}, Encoding: EncodeCategorical, Weight: 2.5},

		{Name: ChannelQuestionMarks, Keys: []string{domain.KeyQuestionMarkCount}, Encoding: EncodeNumeric, Weight: 5.0},

		{Name: ChannelSentiment, Keys: []string{domain.KeyPositiveWords, domain.KeyNegativeWords}, Encoding: EncodeNumeric, Weight: 0.5},
		{Name: ChannelQueryingWords, Keys: []string{domain.KeyQueryingWords}, Encoding: EncodeNumeric, Weight: 1.0},
	}
}

// ApplyWeights returns a copy of the channel table with the named weights
// replaced. Unknown names are ignored so profiles can share one override map.
func ApplyWeights(channels []Channel, overrides map[string]float64) []Channel {
	if len(overrides) == 0 {
		return channels
	}

	out := make([]Channel, len(channels))
	copy(out, channels)

	for i := range out {
		if w, ok := overrides[out[i].Name]; ok {
			out[i].Weight = w
		}
	}

	return out
}
