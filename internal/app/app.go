// Package app wires the pipeline together and exposes the classification
// entry point: filter training data, fit the classifier bank, combine the
// three prediction sets, report, and return final labels.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	"github.com/lueurxax/stance-classifier/internal/features"
	"github.com/lueurxax/stance-classifier/internal/output/report"
	"github.com/lueurxax/stance-classifier/internal/platform/config"
	"github.com/lueurxax/stance-classifier/internal/platform/observability"
	"github.com/lueurxax/stance-classifier/internal/process/ensemble"
	"github.com/lueurxax/stance-classifier/internal/process/filter"
	"github.com/lueurxax/stance-classifier/internal/process/train"
)

// Log key constants for the run.
const (
	logKeyRunID         = "run_id"
	logKeyTrainMessages = "train_messages"
	logKeyKeptMessages  = "kept_messages"
	logKeyEvalMessages  = "eval_messages"
	logKeyStrategy      = "strategy"
)

// App holds the run dependencies.
type App struct {
	cfg    *config.Config
	logger *zerolog.Logger
}

// New creates an App.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Classify trains the bank on the training threads and labels every message
// of the evaluation threads. All failures abort the run; there are no
// partial results.
func (a *App) Classify(ctx context.Context, trainThreads, evalThreads *domain.ThreadSet, trainAnnotations, evalAnnotations domain.Annotations) (domain.PredictionSet, error) {
	logger := a.logger.With().Str(logKeyRunID, uuid.NewString()).Logger()

	profiles, err := a.profiles()
	if err != nil {
		return nil, err
	}

	filterOpts := filter.Options{
		FilterShort:         a.cfg.FilterShort,
		SimilarityThreshold: a.cfg.SimilarityThreshold,
	}

	trainMessages := filter.Filter(trainThreads, trainThreads.Messages(), features.NormalizeText, filterOpts, &logger)

	logger.Info().
		Int(logKeyTrainMessages, trainThreads.Len()).
		Int(logKeyKeptMessages, len(trainMessages)).
		Int(logKeyEvalMessages, evalThreads.Len()).
		Msg("training set filtered")

	extractOpts := features.DefaultOptions()
	trainBags := features.ExtractAll(trainMessages, trainThreads, extractOpts)

	evalMessages := evalThreads.Messages()
	evalBags := features.ExtractAll(evalMessages, evalThreads, extractOpts)

	searcher := train.NewGridSearch(a.cfg.SearchParallelism, &logger)
	bank := train.NewBank(profiles, searcher, a.cfg.FoldCount, &logger)

	fitted, err := bank.Fit(ctx, trainMessages, trainBags, trainAnnotations)
	if err != nil {
		return nil, fmt.Errorf("classifying: %w", err)
	}

	basePred, err := a.predict(fitted.Base, evalBags)
	if err != nil {
		return nil, err
	}

	denyPred, err := a.predict(fitted.Deny, evalBags)
	if err != nil {
		return nil, err
	}

	queryPred, err := a.predict(fitted.Query, evalBags)
	if err != nil {
		return nil, err
	}

	goldBase, err := evalAnnotations.Labels(evalMessages)
	if err != nil {
		return nil, fmt.Errorf("classifying: %w", err)
	}

	goldDeny := resolveLabels(train.Relabel(evalAnnotations, domain.StanceDeny), evalMessages)
	goldQuery := resolveLabels(train.Relabel(evalAnnotations, domain.StanceQuery), evalMessages)

	combined := ensemble.Combine(basePred, denyPred, queryPred, goldBase, &logger)

	reporter := report.New(&logger)
	reporter.Emit(report.Run{
		Messages:    evalMessages,
		Threads:     evalThreads,
		Normalize:   features.NormalizeText,
		GoldBase:    goldBase,
		GoldDeny:    goldDeny,
		GoldQuery:   goldQuery,
		Base:        basePred,
		Deny:        denyPred,
		Query:       queryPred,
		WithoutDeny: combined.WithoutDeny,
		WithDeny:    combined.WithDeny,
	})

	logger.Info().Str(logKeyStrategy, string(combined.Strategy)).Msg("classification run completed")

	return domain.NewPredictionSet(evalMessages, combined.Selected), nil
}

func (a *App) predict(model *train.TrainedModel, bags []domain.FeatureBag) ([]string, error) {
	start := time.Now()

	predictions, err := model.Predict(bags)
	if err != nil {
		return nil, fmt.Errorf("classifying: %w", err)
	}

	observability.PredictDurationSeconds.WithLabelValues(model.Config().Name).Observe(time.Since(start).Seconds())

	return predictions, nil
}

// profiles builds the three immutable classifier configuration records from
// the environment-supplied settings.
func (a *App) profiles() (train.Profiles, error) {
	baseWeights, err := config.ParseWeights(a.cfg.BaseWeights)
	if err != nil {
		return train.Profiles{}, fmt.Errorf("base weight overrides: %w", err)
	}

	denyWeights, err := config.ParseWeights(a.cfg.DenyWeights)
	if err != nil {
		return train.Profiles{}, fmt.Errorf("deny weight overrides: %w", err)
	}

	queryWeights, err := config.ParseWeights(a.cfg.QueryWeights)
	if err != nil {
		return train.Profiles{}, fmt.Errorf("query weight overrides: %w", err)
	}

	searchC, err := config.ParseFloatList(a.cfg.SearchC)
	if err != nil {
		return train.Profiles{}, fmt.Errorf("search space: %w", err)
	}

	searchGamma, err := config.ParseFloatList(a.cfg.SearchGamma)
	if err != nil {
		return train.Profiles{}, fmt.Errorf("search space: %w", err)
	}

	return train.Profiles{
		Base:  train.BaseProfile(a.cfg.BaseC, a.cfg.BaseGamma, baseWeights),
		Deny:  train.DenyProfile(a.cfg.DenyC, denyWeights),
		Query: train.QueryProfile(a.cfg.QueryC, queryWeights),
		Space: train.Space{C: searchC, Gamma: searchGamma},
	}, nil
}

func resolveLabels(relabeled map[string]string, messages []*domain.Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = relabeled[m.ID]
	}

	return out
}
