package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	"github.com/lueurxax/stance-classifier/internal/platform/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:              "local",
		SimilarityThreshold: 0.9,
		FoldCount:           2,
		SearchParallelism:   2,
		BaseC:               100,
		BaseGamma:           0.05,
		DenyC:               10,
		QueryC:              1,
	}
}

func trainingSet(t *testing.T) (*domain.ThreadSet, domain.Annotations) {
	t.Helper()

	messages := []*domain.Message{
		{ID: "t_root", Text: "breaking news a big storm hit the coast tonight", IsNews: true},

		{ID: "t_d1", Text: "no that is not true", ParentID: "t_root"},
		{ID: "t_q1", Text: "is that true?", ParentID: "t_root"},
		{ID: "t_c1", Text: "interesting times we live in", ParentID: "t_root"},
		{ID: "t_s1", Text: "yes i saw it myself indeed", ParentID: "t_root"},

		{ID: "t_d2", Text: "total lie completely fake and untrue", ParentID: "t_root"},
		{ID: "t_q2", Text: "really? any source for this?", ParentID: "t_root"},
		{ID: "t_c2", Text: "good luck to everyone out there", ParentID: "t_root"},
		{ID: "t_s2", Text: "yes this is real i agree with it", ParentID: "t_root"},

		{ID: "t_d3", Text: "never happened that is a hoax", ParentID: "t_root"},
		{ID: "t_q3", Text: "can you verify this claim?", ParentID: "t_root"},
		{ID: "t_c3", Text: "lol ok whatever you say friend", ParentID: "t_root"},
		{ID: "t_s3", Text: "yes i can attest it is correct", ParentID: "t_root"},

		{ID: "t_d4", Text: "false and wrong do not believe it", ParentID: "t_root"},
		{ID: "t_q4", Text: "where did you hear this? any proof?", ParentID: "t_root"},
		{ID: "t_c4", Text: "stay warm out there people", ParentID: "t_root"},
		{ID: "t_s4", Text: "yes spot on i back this up", ParentID: "t_root"},
	}

	threads, err := domain.NewThreadSet(messages)
	require.NoError(t, err)

	annotations := domain.Annotations{
		"t_root": domain.StanceComment,
		"t_d1":   domain.StanceDeny, "t_d2": domain.StanceDeny,
		"t_d3": domain.StanceDeny, "t_d4": domain.StanceDeny,
		"t_q1": domain.StanceQuery, "t_q2": domain.StanceQuery,
		"t_q3": domain.StanceQuery, "t_q4": domain.StanceQuery,
		"t_c1": domain.StanceComment, "t_c2": domain.StanceComment,
		"t_c3": domain.StanceComment, "t_c4": domain.StanceComment,
		"t_s1": domain.StanceSupport, "t_s2": domain.StanceSupport,
		"t_s3": domain.StanceSupport, "t_s4": domain.StanceSupport,
	}

	return threads, annotations
}

func evaluationSet(t *testing.T) (*domain.ThreadSet, domain.Annotations) {
	t.Helper()

	messages := []*domain.Message{
		{ID: "e_root", Text: "breaking news something big happened downtown", IsNews: true},
		{ID: "e_query", Text: "is that true?", ParentID: "e_root"},
		{ID: "e_deny", Text: "no it is not true", ParentID: "e_root"},
	}

	threads, err := domain.NewThreadSet(messages)
	require.NoError(t, err)

	annotations := domain.Annotations{
		"e_root":  domain.StanceComment,
		"e_query": domain.StanceQuery,
		"e_deny":  domain.StanceDeny,
	}

	return threads, annotations
}

func TestApp_Classify(t *testing.T) {
	trainThreads, trainAnnotations := trainingSet(t)
	evalThreads, evalAnnotations := evaluationSet(t)

	logger := zerolog.Nop()
	application := New(testConfig(), &logger)

	predictions, err := application.Classify(context.Background(), trainThreads, evalThreads, trainAnnotations, evalAnnotations)
	require.NoError(t, err)

	require.Len(t, predictions, evalThreads.Len())

	require.Equal(t, "query", predictions["e_query"])
	require.Equal(t, "deny", predictions["e_deny"])

	for id, label := range predictions {
		_, err := domain.ParseStance(label)
		require.NoErrorf(t, err, "prediction for %s is not a stance label", id)
	}
}

func TestApp_ClassifyMissingEvalAnnotation(t *testing.T) {
	trainThreads, trainAnnotations := trainingSet(t)
	evalThreads, evalAnnotations := evaluationSet(t)
	delete(evalAnnotations, "e_deny")

	logger := zerolog.Nop()
	application := New(testConfig(), &logger)

	_, err := application.Classify(context.Background(), trainThreads, evalThreads, trainAnnotations, evalAnnotations)
	require.Error(t, err)
}

func TestApp_ProfilesRejectBadOverrides(t *testing.T) {
	cfg := testConfig()
	cfg.BaseWeights = "is_root=heavy"

	logger := zerolog.Nop()
	application := New(cfg, &logger)

	_, err := application.profiles()
	require.Error(t, err)
}

func TestApp_ProfilesBuildSearchSpace(t *testing.T) {
	cfg := testConfig()
	cfg.SearchC = "1,10"
	cfg.SearchGamma = "0.001,0.01"

	logger := zerolog.Nop()
	application := New(cfg, &logger)

	profiles, err := application.profiles()
	require.NoError(t, err)

	require.Equal(t, []float64{1, 10}, profiles.Space.C)
	require.Equal(t, []float64{0.001, 0.01}, profiles.Space.Gamma)
	require.False(t, profiles.Space.Empty())
}
