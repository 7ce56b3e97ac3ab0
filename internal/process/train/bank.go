package train

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
	"github.com/lueurxax/stance-classifier/internal/platform/observability"
)

const logKeyFitSeconds = "fit_seconds"

// Profiles carries the three member configurations and the shared
// hyperparameter search space.
type Profiles struct {
	Base  MemberConfig
	Deny  MemberConfig
	Query MemberConfig
	Space Space
}

// Bank trains the three classifiers of the ensemble: the four-class base
// model plus the one-vs-rest deny and query detectors.
type Bank struct {
	profiles  Profiles
	searcher  Searcher
	foldCount int
	logger    *zerolog.Logger
}

// Fitted holds the three trained models of one run.
type Fitted struct {
	Base  *TrainedModel
	Deny  *TrainedModel
	Query *TrainedModel
}

// NewBank creates a bank over the given profiles and search strategy.
func NewBank(profiles Profiles, searcher Searcher, foldCount int, logger *zerolog.Logger) *Bank {
	if foldCount < 2 {
		foldCount = DefaultFoldCount
	}

	return &Bank{
		profiles:  profiles,
		searcher:  searcher,
		foldCount: foldCount,
		logger:    logger,
	}
}

// Fit trains all three members on the same feature bags, each against its
// own labeling of the annotations.
func (b *Bank) Fit(ctx context.Context, messages []*domain.Message, bags []domain.FeatureBag, annotations domain.Annotations) (*Fitted, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("fitting classifier bank: %w", errs.ErrEmptyTrainingSet)
	}

	baseLabels, err := annotations.Labels(messages)
	if err != nil {
		return nil, fmt.Errorf("fitting classifier bank: %w", err)
	}

	denyLabels := alignedLabels(Relabel(annotations, domain.StanceDeny), messages)
	queryLabels := alignedLabels(Relabel(annotations, domain.StanceQuery), messages)

	fitted := &Fitted{}

	fitted.Base, err = b.fitMember(ctx, b.profiles.Base, bags, baseLabels)
	if err != nil {
		return nil, err
	}

	fitted.Deny, err = b.fitMember(ctx, b.profiles.Deny, bags, denyLabels)
	if err != nil {
		return nil, err
	}

	fitted.Query, err = b.fitMember(ctx, b.profiles.Query, bags, queryLabels)
	if err != nil {
		return nil, err
	}

	return fitted, nil
}

func (b *Bank) fitMember(ctx context.Context, config MemberConfig, bags []domain.FeatureBag, labels []string) (*TrainedModel, error) {
	start := time.Now()

	model, err := b.searcher.Search(ctx, config, b.profiles.Space, b.foldCount, bags, labels)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	observability.FitDurationSeconds.WithLabelValues(config.Name).Observe(elapsed.Seconds())

	if b.logger != nil {
		b.logger.Info().
			Str(logKeyClassifier, config.Name).
			Float64(logKeyCVScore, model.CVScore()).
			Float64(logKeyFitSeconds, elapsed.Seconds()).
			Msg("classifier fitted")
	}

	return model, nil
}
