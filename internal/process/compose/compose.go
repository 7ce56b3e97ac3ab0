// Package compose turns per-message feature bags into weighted feature
// vectors. Each channel is encoded independently, scaled by its weight, and
// the sub-vectors are concatenated in channel order.
package compose

import (
	"fmt"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
	"github.com/lueurxax/stance-classifier/internal/core/vectors"
)

// Composer encodes feature bags against a fixed channel table. Fit learns
// the text vocabularies; Transform is then safe for concurrent use.
type Composer struct {
	channels []Channel
	text     map[string]*TFIDF
	fitted   bool
}

// New creates a Composer over the given channel table.
func New(channels []Channel) *Composer {
	return &Composer{
		channels: channels,
		text:     make(map[string]*TFIDF),
	}
}

// Channels returns the channel table the composer encodes.
func (c *Composer) Channels() []Channel {
	return c.channels
}

// Fit learns TF-IDF vocabularies for every text channel from the training
// bags. Non-text channels need no fitting.
func (c *Composer) Fit(bags []domain.FeatureBag) error {
	if len(bags) == 0 {
		return fmt.Errorf("fitting composer: %w", errs.ErrEmptyTrainingSet)
	}

	for _, ch := range c.channels {
		if ch.Encoding != EncodeText {
			continue
		}

		docs := make([][]string, len(bags))

		for i, bag := range bags {
			feature, err := c.textFeature(ch, bag)
			if err != nil {
				return err
			}

			docs[i] = feature.Tokens
		}

		c.text[ch.Name] = FitTFIDF(docs)
	}

	c.fitted = true

	return nil
}

// Transform encodes every bag into one weighted, concatenated vector.
func (c *Composer) Transform(bags []domain.FeatureBag) ([]vectors.Sparse, error) {
	if !c.fitted {
		return nil, errs.ErrNotFitted
	}

	out := make([]vectors.Sparse, len(bags))

	for i, bag := range bags {
		vec, err := c.transformOne(bag)
		if err != nil {
			return nil, err
		}

		out[i] = vec
	}

	return out, nil
}

// FitTransform fits on the bags and returns their encoding.
func (c *Composer) FitTransform(bags []domain.FeatureBag) ([]vectors.Sparse, error) {
	if err := c.Fit(bags); err != nil {
		return nil, err
	}

	return c.Transform(bags)
}

func (c *Composer) transformOne(bag domain.FeatureBag) (vectors.Sparse, error) {
	var builder vectors.Builder

	for _, ch := range c.channels {
		sub, dim, err := c.encodeChannel(ch, bag)
		if err != nil {
			return vectors.Sparse{}, err
		}

		sub.Scale(ch.Weight)
		builder.Append(sub, dim)
	}

	return builder.Vector(), nil
}

func (c *Composer) encodeChannel(ch Channel, bag domain.FeatureBag) (vectors.Sparse, int, error) {
	switch ch.Encoding {
	case EncodeText:
		feature, err := c.textFeature(ch, bag)
		if err != nil {
			return vectors.Sparse{}, 0, err
		}

		vectorizer := c.text[ch.Name]

		return vectorizer.Transform(feature.Tokens), vectorizer.Dim(), nil
	case EncodeNumeric, EncodeCategorical:
		return c.encodeScalars(ch, bag)
	default:
		return vectors.Sparse{}, 0, fmt.Errorf("channel %s: unknown encoding %d", ch.Name, ch.Encoding)
	}
}

// encodeScalars emits one dimension per key. Categorical flags and numeric
// counts share the layout; they differ only in the feature kind they accept.
func (c *Composer) encodeScalars(ch Channel, bag domain.FeatureBag) (vectors.Sparse, int, error) {
	indices := make([]int, 0, len(ch.Keys))
	values := make([]float64, 0, len(ch.Keys))

	for i, key := range ch.Keys {
		feature, err := bag.Lookup(key)
		if err != nil {
			return vectors.Sparse{}, 0, fmt.Errorf("channel %s: %w", ch.Name, err)
		}

		if err := checkKind(ch, feature); err != nil {
			return vectors.Sparse{}, 0, err
		}

		if feature.Value != 0 {
			indices = append(indices, i)
			values = append(values, feature.Value)
		}
	}

	return vectors.Sparse{Indices: indices, Values: values, Dim: len(ch.Keys)}, len(ch.Keys), nil
}

func (c *Composer) textFeature(ch Channel, bag domain.FeatureBag) (domain.Feature, error) {
	feature, err := bag.Lookup(ch.Keys[0])
	if err != nil {
		return domain.Feature{}, fmt.Errorf("channel %s: %w", ch.Name, err)
	}

	if feature.Kind != domain.FeatureText {
		return domain.Feature{}, fmt.Errorf("channel %s key %s: %w", ch.Name, ch.Keys[0], errs.ErrChannelKind)
	}

	return feature, nil
}

func checkKind(ch Channel, feature domain.Feature) error {
	switch ch.Encoding {
	case EncodeNumeric:
		if feature.Kind != domain.FeatureNumeric {
			return fmt.Errorf("channel %s: %w", ch.Name, errs.ErrChannelKind)
		}
	case EncodeCategorical:
		if feature.Kind != domain.FeatureFlag {
			return fmt.Errorf("channel %s: %w", ch.Name, errs.ErrChannelKind)
		}
	case EncodeText:
	}

	return nil
}
