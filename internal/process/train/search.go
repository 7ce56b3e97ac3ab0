package train

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
	"github.com/lueurxax/stance-classifier/internal/output/report"
	"github.com/lueurxax/stance-classifier/internal/platform/observability"
	"github.com/lueurxax/stance-classifier/internal/platform/worker"
	"github.com/lueurxax/stance-classifier/internal/process/compose"
)

// Log key constants for model selection.
const (
	logKeyClassifier = "classifier"
	logKeyCandidates = "candidates"
	logKeyCVScore    = "cv_score"
	logKeyC          = "c"
	logKeyGamma      = "gamma"
)

// Space enumerates hyperparameter candidates for grid search. An empty
// space is valid: the search degenerates to a single cross-validated fit of
// the defaults.
type Space struct {
	// Weights lists alternative channel weight override sets.
	Weights []map[string]float64

	// C lists regularization strengths to try.
	C []float64

	// Gamma lists RBF kernel spreads to try; ignored for linear kernels.
	Gamma []float64
}

// Empty reports whether the space holds no candidates beyond the defaults.
func (s Space) Empty() bool {
	return len(s.Weights) == 0 && len(s.C) == 0 && len(s.Gamma) == 0
}

// candidates expands the space against a default configuration. The result
// always has at least one entry: the defaults themselves when empty.
func (s Space) candidates(defaults MemberConfig) []MemberConfig {
	weightSets := s.Weights
	if len(weightSets) == 0 {
		weightSets = []map[string]float64{nil}
	}

	cs := s.C
	if len(cs) == 0 {
		cs = []float64{defaults.SVC.C}
	}

	gammas := s.Gamma
	if len(gammas) == 0 || defaults.SVC.Kernel != KernelRBF {
		gammas = []float64{defaults.SVC.Gamma}
	}

	out := make([]MemberConfig, 0, len(weightSets)*len(cs)*len(gammas))

	for _, weights := range weightSets {
		for _, c := range cs {
			for _, gamma := range gammas {
				candidate := defaults
				candidate.Channels = compose.ApplyWeights(defaults.Channels, weights)
				candidate.SVC.C = c
				candidate.SVC.Gamma = gamma
				out = append(out, candidate)
			}
		}
	}

	return out
}

// Searcher selects the best configuration from a space. Implementations are
// decoupled from the classifier family so alternative optimizers can slot in
// without touching the composer or bank contracts.
type Searcher interface {
	Search(ctx context.Context, defaults MemberConfig, space Space, foldCount int, bags []domain.FeatureBag, labels []string) (*TrainedModel, error)
}

// GridSearch exhaustively evaluates every candidate with stratified k-fold
// cross-validation and refits the best on the full training set.
type GridSearch struct {
	parallelism int
	logger      *zerolog.Logger
}

// NewGridSearch creates a grid search evaluating fold/candidate pairs with
// the given parallelism.
func NewGridSearch(parallelism int, logger *zerolog.Logger) *GridSearch {
	return &GridSearch{parallelism: parallelism, logger: logger}
}

// Search implements Searcher. Selection is deterministic: scores tie toward
// the earlier candidate in expansion order.
func (g *GridSearch) Search(ctx context.Context, defaults MemberConfig, space Space, foldCount int, bags []domain.FeatureBag, labels []string) (*TrainedModel, error) {
	if len(bags) == 0 {
		return nil, fmt.Errorf("searching %s: %w", defaults.Name, errs.ErrEmptyTrainingSet)
	}

	candidates := space.candidates(defaults)

	folds, err := stratifiedFolds(labels, foldCount)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", defaults.Name, err)
	}

	scores := make([][]float64, len(candidates))
	for i := range scores {
		scores[i] = make([]float64, len(folds))
	}

	tasks := len(candidates) * len(folds)

	runCfg := worker.Config{
		Name:        defaults.Name + "_grid",
		Parallelism: g.parallelism,
		Logger:      g.logger,
	}

	err = worker.Run(ctx, runCfg, tasks, func(_ context.Context, index int) error {
		candidate := candidates[index/len(folds)]
		held := index % len(folds)

		score, err := scoreFold(candidate, bags, labels, folds, held)
		if err != nil {
			return err
		}

		scores[index/len(folds)][held] = score

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", defaults.Name, err)
	}

	best := 0
	bestScore := stat.Mean(scores[0], nil)

	for i := 1; i < len(candidates); i++ {
		if mean := stat.Mean(scores[i], nil); mean > bestScore {
			best = i
			bestScore = mean
		}
	}

	observability.SearchCandidatesEvaluated.WithLabelValues(defaults.Name).Add(float64(len(candidates)))
	observability.CVMeanAccuracy.WithLabelValues(defaults.Name).Set(bestScore)

	if g.logger != nil {
		g.logger.Info().
			Str(logKeyClassifier, defaults.Name).
			Int(logKeyCandidates, len(candidates)).
			Float64(logKeyCVScore, bestScore).
			Float64(logKeyC, candidates[best].SVC.C).
			Float64(logKeyGamma, candidates[best].SVC.Gamma).
			Msg("grid search selected configuration")
	}

	model, err := fitModel(candidates[best], bags, labels)
	if err != nil {
		return nil, err
	}

	model.cvScore = bestScore

	return model, nil
}

// scoreFold trains a candidate on all folds but one and scores it on the
// held-out fold. Each invocation builds private state, so fold evaluation
// parallelizes freely.
func scoreFold(candidate MemberConfig, bags []domain.FeatureBag, labels []string, folds [][]int, held int) (float64, error) {
	trainIdx, testIdx := splitFold(len(bags), folds, held)

	model, err := fitModel(candidate, subsetBags(bags, trainIdx), subsetLabels(labels, trainIdx))
	if err != nil {
		return 0, err
	}

	predictions, err := model.Predict(subsetBags(bags, testIdx))
	if err != nil {
		return 0, err
	}

	return report.Accuracy(subsetLabels(labels, testIdx), predictions), nil
}

func subsetBags(bags []domain.FeatureBag, indices []int) []domain.FeatureBag {
	out := make([]domain.FeatureBag, len(indices))
	for i, idx := range indices {
		out[i] = bags[idx]
	}

	return out
}

func subsetLabels(labels []string, indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = labels[idx]
	}

	return out
}
