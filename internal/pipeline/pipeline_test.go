package pipeline

import (
	"context"
	"testing"

	"github.com/ecosift/ecosift/internal/model"
)

type fixedValidator struct {
	name  string
	score *float64
	panic bool
}

func (v *fixedValidator) Name() string { return v.name }

func (v *fixedValidator) Validate(context.Context, *model.DisclosureClaims) model.ValidationResult {
	if v.panic {
		panic("detector emitted a contradiction without an event")
	}
	return model.ValidationResult{ValidatorName: v.name, Score: v.score, MaxScore: 1.0}
}

func TestRunnerAggregates(t *testing.T) {
	r := NewRunner([]Validator{
		&fixedValidator{name: "a", score: model.ScoreValue(1.0)},
		&fixedValidator{name: "b", score: model.ScoreValue(0.5)},
	}, false)

	result := r.Run(context.Background(), &model.DisclosureClaims{CompanyName: "Acme"})

	if result.CompanyName != "Acme" {
		t.Errorf("company = %q", result.CompanyName)
	}
	if result.OverallScore != 0.75 {
		t.Errorf("overall = %v, want 0.75", result.OverallScore)
	}
	if result.Grade != "C" {
		t.Errorf("grade = %q, want C", result.Grade)
	}
	if len(result.Results) != 2 {
		t.Errorf("expected 2 results, got %d", len(result.Results))
	}
}

func TestRunnerIsolatesPanics(t *testing.T) {
	r := NewRunner([]Validator{
		&fixedValidator{name: "broken", panic: true},
		&fixedValidator{name: "ok", score: model.ScoreValue(0.9)},
	}, false)

	result := r.Run(context.Background(), &model.DisclosureClaims{CompanyName: "Acme"})

	if len(result.Results) != 2 {
		t.Fatalf("panicking validator must not abort the run, got %d results", len(result.Results))
	}
	broken := result.Results[0]
	if broken.Score != nil {
		t.Error("panicked validator should be unscored")
	}
	if len(broken.Findings) != 1 || broken.Findings[0].Code != "VALIDATOR-ERROR" {
		t.Errorf("expected a VALIDATOR-ERROR finding, got %+v", broken.Findings)
	}
	// Unscored results stay out of the average.
	if result.OverallScore != 0.9 {
		t.Errorf("overall = %v, want 0.9", result.OverallScore)
	}
}

func TestAggregateNoScoredResults(t *testing.T) {
	result := Aggregate("Acme", []model.ValidationResult{
		{ValidatorName: "a", Score: nil},
	})
	if result.OverallScore != 0 || result.Grade != "F" {
		t.Errorf("unexpected aggregate: %+v", result)
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, "A"}, {0.9, "A"}, {0.89, "B"}, {0.8, "B"},
		{0.79, "C"}, {0.7, "C"}, {0.69, "D"}, {0.6, "D"}, {0.59, "F"},
	}
	for _, tt := range tests {
		if got := gradeFor(tt.score); got != tt.want {
			t.Errorf("gradeFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
