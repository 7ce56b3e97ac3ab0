package train

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	"github.com/lueurxax/stance-classifier/internal/process/compose"
)

func scalarConfig(name string) MemberConfig {
	return MemberConfig{
		Name: name,
		Channels: []compose.Channel{
			{Name: "chars", Keys: []string{domain.KeyCharCount}, Encoding: compose.EncodeNumeric, Weight: 1},
		},
		SVC: SVCConfig{Kernel: KernelLinear, C: 1},
	}
}

func scalarBag(v float64) domain.FeatureBag {
	return domain.FeatureBag{domain.KeyCharCount: domain.NumericFeature(v)}
}

func separableSet() ([]domain.FeatureBag, []string) {
	bags := []domain.FeatureBag{
		scalarBag(1), scalarBag(9), scalarBag(1.5), scalarBag(9.5),
		scalarBag(2), scalarBag(8), scalarBag(2.5), scalarBag(8.5),
	}
	labels := []string{"low", "high", "low", "high", "low", "high", "low", "high"}

	return bags, labels
}

func TestSpace_Candidates(t *testing.T) {
	tests := []struct {
		name     string
		defaults MemberConfig
		space    Space
		want     int
	}{
		{
			name:     "empty space yields the defaults",
			defaults: scalarConfig("test"),
			space:    Space{},
			want:     1,
		},
		{
			name:     "linear kernel ignores gamma list",
			defaults: scalarConfig("test"),
			space:    Space{C: []float64{1, 10}, Gamma: []float64{0.1, 1}},
			want:     2,
		},
		{
			name: "rbf kernel expands gamma",
			defaults: MemberConfig{
				Name:     "test",
				Channels: scalarConfig("test").Channels,
				SVC:      SVCConfig{Kernel: KernelRBF, C: 1, Gamma: 0.1},
			},
			space: Space{C: []float64{1, 10}, Gamma: []float64{0.1, 1}},
			want:  4,
		},
		{
			name:     "weight sets multiply candidates",
			defaults: scalarConfig("test"),
			space: Space{
				Weights: []map[string]float64{{"chars": 1}, {"chars": 2}},
				C:       []float64{1, 10},
			},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.space.candidates(tt.defaults)); got != tt.want {
				t.Errorf("candidates() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSpace_Empty(t *testing.T) {
	if !(Space{}).Empty() {
		t.Error("zero Space must be empty")
	}

	if (Space{C: []float64{1}}).Empty() {
		t.Error("Space with candidates must not be empty")
	}
}

func TestGridSearch_EmptySpaceFitsDefaults(t *testing.T) {
	bags, labels := separableSet()

	logger := zerolog.Nop()
	search := NewGridSearch(2, &logger)

	model, err := search.Search(context.Background(), scalarConfig("test"), Space{}, 2, bags, labels)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if model.CVScore() < 0 || model.CVScore() > 1 {
		t.Errorf("CVScore() = %v, want within [0, 1]", model.CVScore())
	}

	predictions, err := model.Predict([]domain.FeatureBag{scalarBag(1.2), scalarBag(9.2)})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if predictions[0] != "low" || predictions[1] != "high" {
		t.Errorf("Predict() = %v, want [low high]", predictions)
	}
}

func TestGridSearch_SelectsAcrossCandidates(t *testing.T) {
	bags, labels := separableSet()

	logger := zerolog.Nop()
	search := NewGridSearch(2, &logger)

	space := Space{C: []float64{0.5, 10}}

	model, err := search.Search(context.Background(), scalarConfig("test"), space, 2, bags, labels)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	selectedC := model.Config().SVC.C
	if selectedC != 0.5 && selectedC != 10 {
		t.Errorf("selected C = %v, want one of the space candidates", selectedC)
	}

	predictions, err := model.Predict([]domain.FeatureBag{scalarBag(1.2)})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if predictions[0] != "low" {
		t.Errorf("Predict(1.2) = %q, want low", predictions[0])
	}
}

func TestGridSearch_EmptyTrainingSet(t *testing.T) {
	logger := zerolog.Nop()
	search := NewGridSearch(1, &logger)

	_, err := search.Search(context.Background(), scalarConfig("test"), Space{}, 2, nil, nil)
	if err == nil {
		t.Fatal("Search() expected error for empty training set")
	}
}
