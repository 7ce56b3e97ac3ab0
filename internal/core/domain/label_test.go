package domain

import (
	"errors"
	"testing"

	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
)

func TestParseStance(t *testing.T) {
	tests := []struct {
		raw     string
		want    Stance
		wantErr bool
	}{
		{raw: "comment", want: StanceComment},
		{raw: "deny", want: StanceDeny},
		{raw: "query", want: StanceQuery},
		{raw: "support", want: StanceSupport},
		{raw: "agree", wantErr: true},
		{raw: "Comment", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStance(tt.raw)

			if tt.wantErr {
				if !errors.Is(err, errs.ErrUnknownLabel) {
					t.Fatalf("ParseStance(%q) error = %v, want %v", tt.raw, err, errs.ErrUnknownLabel)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseStance(%q) error = %v", tt.raw, err)
			}

			if got != tt.want {
				t.Errorf("ParseStance(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNotLabel(t *testing.T) {
	if got := NotLabel(StanceDeny); got != "not_deny" {
		t.Errorf("NotLabel(deny) = %q, want %q", got, "not_deny")
	}

	if got := NotLabel(StanceQuery); got != "not_query" {
		t.Errorf("NotLabel(query) = %q, want %q", got, "not_query")
	}
}

func TestAnnotations_Labels(t *testing.T) {
	messages := []*Message{{ID: "a"}, {ID: "b"}}
	annotations := Annotations{"a": StanceSupport, "b": StanceComment}

	labels, err := annotations.Labels(messages)
	if err != nil {
		t.Fatalf("Labels() error = %v", err)
	}

	want := []string{"support", "comment"}
	for i, label := range labels {
		if label != want[i] {
			t.Errorf("Labels()[%d] = %q, want %q", i, label, want[i])
		}
	}
}

func TestAnnotations_LabelsMissingAnnotation(t *testing.T) {
	messages := []*Message{{ID: "a"}, {ID: "b"}}
	annotations := Annotations{"a": StanceSupport}

	_, err := annotations.Labels(messages)
	if !errors.Is(err, errs.ErrAnnotationCoverage) {
		t.Fatalf("Labels() error = %v, want %v", err, errs.ErrAnnotationCoverage)
	}
}

func TestNewPredictionSet(t *testing.T) {
	messages := []*Message{{ID: "a"}, {ID: "b"}}

	set := NewPredictionSet(messages, []string{"query", "deny"})

	if set["a"] != "query" || set["b"] != "deny" {
		t.Errorf("NewPredictionSet() = %v, want a=query b=deny", set)
	}
}
