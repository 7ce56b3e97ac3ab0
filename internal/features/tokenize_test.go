package features

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain words",
			text: "the storm hit the coast",
			want: []string{"the", "storm", "hit", "the", "coast"},
		},
		{
			name: "punctuation split",
			text: "really? no, never!",
			want: []string{"really", "no", "never"},
		},
		{
			name: "keeps hashtags and mentions",
			text: "#storm hits @city hard",
			want: []string{"#storm", "hits", "@city", "hard"},
		},
		{
			name: "drops single characters",
			text: "a b storm",
			want: []string{"storm"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tokenize(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{token: "denying", want: "deny"},
		{token: "confirmed", want: "confirm"},
		{token: "storms", want: "storm"},
		{token: "coming", want: "com"},
		{token: "quickly", want: "quick"},
		{token: "sing", want: "sing"},
		{token: "no", want: "no"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := Stem(tt.token); got != tt.want {
				t.Errorf("Stem(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestStemAndStop(t *testing.T) {
	got := StemAndStop([]string{"the", "storm", "is", "not", "coming"})

	// Stopwords drop, stance cues like "not" survive.
	want := []string{"storm", "not", "com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StemAndStop() = %v, want %v", got, want)
	}
}
