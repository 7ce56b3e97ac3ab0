package train

import (
	"fmt"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	"github.com/lueurxax/stance-classifier/internal/process/compose"
)

// MemberConfig is the immutable configuration record of one classifier bank
// member: its channel table and its classifier hyperparameters.
type MemberConfig struct {
	Name     string
	Channels []compose.Channel
	SVC      SVCConfig
}

// TrainedModel is a fitted composer/classifier pair. It is immutable after
// fitting and safe to share across concurrent prediction calls.
type TrainedModel struct {
	config   MemberConfig
	composer *compose.Composer
	svc      *SVC
	cvScore  float64
}

// fitModel fits a fresh composer and classifier on the given bags.
func fitModel(config MemberConfig, bags []domain.FeatureBag, labels []string) (*TrainedModel, error) {
	composer := compose.New(config.Channels)

	x, err := composer.FitTransform(bags)
	if err != nil {
		return nil, fmt.Errorf("composing %s features: %w", config.Name, err)
	}

	svc := NewSVC(config.SVC)
	if err := svc.Fit(x, labels); err != nil {
		return nil, fmt.Errorf("training %s classifier: %w", config.Name, err)
	}

	return &TrainedModel{config: config, composer: composer, svc: svc}, nil
}

// Predict labels feature bags with the fitted model.
func (m *TrainedModel) Predict(bags []domain.FeatureBag) ([]string, error) {
	x, err := m.composer.Transform(bags)
	if err != nil {
		return nil, fmt.Errorf("composing %s features: %w", m.config.Name, err)
	}

	return m.svc.Predict(x), nil
}

// Config returns the configuration the model was fitted with.
func (m *TrainedModel) Config() MemberConfig {
	return m.config
}

// CVScore returns the mean held-out accuracy from model selection.
func (m *TrainedModel) CVScore() float64 {
	return m.cvScore
}
