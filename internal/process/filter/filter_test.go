package filter

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
)

func lowercase(m *domain.Message) string {
	return strings.ToLower(m.Text)
}

func buildThreads(t *testing.T, messages []*domain.Message) *domain.ThreadSet {
	t.Helper()

	threads, err := domain.NewThreadSet(messages)
	if err != nil {
		t.Fatalf("NewThreadSet() error = %v", err)
	}

	return threads
}

func keptIDs(messages []*domain.Message) []string {
	ids := make([]string, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}

	return ids
}

func TestFilter_DropsRootEcho(t *testing.T) {
	messages := []*domain.Message{
		{ID: "root", Text: "a big storm hit the coast tonight"},
		{ID: "echo", Text: "a big storm hit the coast tonight", ParentID: "root"},
		{ID: "fresh", Text: "completely unrelated nonsense entirely", ParentID: "root"},
	}

	threads := buildThreads(t, messages)
	logger := zerolog.Nop()

	kept := Filter(threads, messages, lowercase, DefaultOptions(), &logger)

	got := keptIDs(kept)
	want := []string{"root", "fresh"}

	if len(got) != len(want) {
		t.Fatalf("kept = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kept[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilter_RootsAlwaysKept(t *testing.T) {
	messages := []*domain.Message{
		{ID: "root", Text: "ok"},
	}

	threads := buildThreads(t, messages)

	opts := Options{FilterShort: true, SimilarityThreshold: 0}

	kept := Filter(threads, messages, lowercase, opts, nil)
	if len(kept) != 1 || kept[0].ID != "root" {
		t.Fatalf("kept = %v, want [root]", keptIDs(kept))
	}
}

func TestFilter_ShortReplies(t *testing.T) {
	messages := []*domain.Message{
		{ID: "root", Text: "a big storm hit the coast tonight"},
		{ID: "short", Text: "lol same", ParentID: "root"},
		{ID: "long", Text: "this reply carries enough words", ParentID: "root"},
	}

	threads := buildThreads(t, messages)

	tests := []struct {
		name        string
		filterShort bool
		want        []string
	}{
		{name: "short filter off", filterShort: false, want: []string{"root", "short", "long"}},
		{name: "short filter on", filterShort: true, want: []string{"root", "long"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{FilterShort: tt.filterShort, SimilarityThreshold: DefaultSimilarityThreshold}

			got := keptIDs(Filter(threads, messages, lowercase, opts, nil))

			if len(got) != len(tt.want) {
				t.Fatalf("kept = %v, want %v", got, tt.want)
			}

			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("kept[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFilter_ThresholdAboveOneKeepsEverything(t *testing.T) {
	messages := []*domain.Message{
		{ID: "root", Text: "a big storm hit the coast tonight"},
		{ID: "echo", Text: "a big storm hit the coast tonight", ParentID: "root"},
	}

	threads := buildThreads(t, messages)

	opts := Options{SimilarityThreshold: 1.1}

	kept := Filter(threads, messages, lowercase, opts, nil)
	if len(kept) != 2 {
		t.Fatalf("kept = %v, want both messages", keptIDs(kept))
	}
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	messages := []*domain.Message{
		{ID: "root", Text: "a big storm hit the coast tonight"},
		{ID: "r1", Text: "sounds scary over there", ParentID: "root"},
		{ID: "r2", Text: "a big storm hit the coast tonight", ParentID: "root"},
		{ID: "r3", Text: "hope everyone stays safe", ParentID: "root"},
	}

	threads := buildThreads(t, messages)

	got := keptIDs(Filter(threads, messages, lowercase, DefaultOptions(), nil))
	want := []string{"root", "r1", "r3"}

	if len(got) != len(want) {
		t.Fatalf("kept = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kept[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRootSimilarity(t *testing.T) {
	tests := []struct {
		name string
		root string
		text string
		want float64
	}{
		{
			name: "identical texts",
			root: "the storm hit the coast",
			text: "the storm hit the coast",
			want: 1,
		},
		{
			name: "disjoint texts",
			root: "the storm hit the coast",
			text: "unrelated words entirely",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rootSimilarity(tt.root, tt.text)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("rootSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
