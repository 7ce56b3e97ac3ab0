package report

import (
	"github.com/rs/zerolog"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
)

// Log key constants for reporting.
const (
	logKeyMessageID = "message_id"
	logKeyGold      = "gold"
	logKeyPredicted = "predicted"
	logKeyText      = "text"
	logKeyRootText  = "root_text"
	logKeyTarget    = "target"
)

// Normalizer produces the comparable text form of a message for listings.
type Normalizer func(*domain.Message) string

// Run gathers every prediction sequence of one evaluation, aligned with
// Messages order.
type Run struct {
	Messages  []*domain.Message
	Threads   *domain.ThreadSet
	Normalize Normalizer

	GoldBase  []string
	GoldDeny  []string
	GoldQuery []string

	Base        []string
	Deny        []string
	Query       []string
	WithoutDeny []string
	WithDeny    []string
}

// Misclassified is one detector disagreement, paired with the thread root
// text for context.
type Misclassified struct {
	MessageID string
	Gold      string
	Predicted string
	Text      string
	RootText  string
}

// DetectorDisagreements lists messages where a one-vs-rest detector
// disagrees with the gold base labeling of its target class.
func DetectorDisagreements(run Run, predictions []string, target domain.Stance) []Misclassified {
	rest := domain.NotLabel(target)

	var out []Misclassified

	for i, predicted := range predictions {
		goldIsTarget := run.GoldBase[i] == string(target)

		falsePositive := predicted == string(target) && !goldIsTarget
		falseNegative := predicted == rest && goldIsTarget

		if !falsePositive && !falseNegative {
			continue
		}

		m := run.Messages[i]

		out = append(out, Misclassified{
			MessageID: m.ID,
			Gold:      run.GoldBase[i],
			Predicted: predicted,
			Text:      run.Normalize(m),
			RootText:  run.Normalize(run.Threads.Root(m)),
		})
	}

	return out
}

// Reporter writes evaluation results to the structured log. It consumes
// predictions and produces nothing used downstream.
type Reporter struct {
	logger *zerolog.Logger
}

// New creates a Reporter.
func New(logger *zerolog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Emit logs accuracies, classification reports, confusion matrices, and
// detector disagreement listings for one evaluation run.
func (r *Reporter) Emit(run Run) {
	baseClasses := stanceClasses()
	denyClasses := []string{string(domain.StanceDeny), domain.NotLabel(domain.StanceDeny)}
	queryClasses := []string{domain.NotLabel(domain.StanceQuery), string(domain.StanceQuery)}

	r.logger.Info().
		Float64("deny_accuracy", Accuracy(run.GoldDeny, run.Deny)).
		Float64("query_accuracy", Accuracy(run.GoldQuery, run.Query)).
		Float64("base_accuracy", Accuracy(run.GoldBase, run.Base)).
		Float64("accuracy_without_deny", Accuracy(run.GoldBase, run.WithoutDeny)).
		Float64("accuracy_with_deny", Accuracy(run.GoldBase, run.WithDeny)).
		Msg("evaluation accuracy")

	r.emitReport("deny", run.GoldDeny, run.Deny, denyClasses)
	r.emitReport("query", run.GoldQuery, run.Query, queryClasses)
	r.emitReport("base", run.GoldBase, run.Base, baseClasses)
	r.emitReport("combined_without_deny", run.GoldBase, run.WithoutDeny, baseClasses)
	r.emitReport("combined_with_deny", run.GoldBase, run.WithDeny, baseClasses)

	r.emitDisagreements(run, run.Query, domain.StanceQuery)
	r.emitDisagreements(run, run.Deny, domain.StanceDeny)
}

func (r *Reporter) emitReport(name string, gold, pred, classes []string) {
	metrics := ClassificationReport(gold, pred, classes)
	matrix := ConfusionMatrix(gold, pred, classes)

	r.logger.Info().
		Str("classifier", name).
		Str("classification_report", FormatClassificationReport(metrics, classes)).
		Str("confusion_matrix", FormatConfusionMatrix(matrix, classes)).
		Msg("classification report")
}

func (r *Reporter) emitDisagreements(run Run, predictions []string, target domain.Stance) {
	for _, miss := range DetectorDisagreements(run, predictions, target) {
		r.logger.Info().
			Str(logKeyTarget, string(target)).
			Str(logKeyMessageID, miss.MessageID).
			Str(logKeyGold, miss.Gold).
			Str(logKeyPredicted, miss.Predicted).
			Str(logKeyText, miss.Text).
			Str(logKeyRootText, miss.RootText).
			Msg("detector disagreement")
	}
}

func stanceClasses() []string {
	stances := domain.Stances()

	out := make([]string, len(stances))
	for i, stance := range stances {
		out[i] = string(stance)
	}

	return out
}
