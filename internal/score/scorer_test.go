package score

import (
	"testing"

	"github.com/ecosift/ecosift/internal/model"
)

func contradiction(severity model.Severity) model.Contradiction {
	return model.Contradiction{
		Kind:     model.ContradictionOmission,
		Severity: severity,
		Event:    &model.Event{Type: model.EventFine},
	}
}

func TestScoreDeductions(t *testing.T) {
	tests := []struct {
		name       string
		severities []model.Severity
		want       float64
	}{
		{"clean", nil, 100},
		{"one critical", []model.Severity{model.SeverityCritical}, 70},
		{"one warning", []model.Severity{model.SeverityWarning}, 85},
		{"one info", []model.Severity{model.SeverityInfo}, 95},
		{"mixed", []model.Severity{model.SeverityCritical, model.SeverityWarning, model.SeverityInfo}, 50},
		{"floors at zero", []model.Severity{
			model.SeverityCritical, model.SeverityCritical,
			model.SeverityCritical, model.SeverityCritical,
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var contradictions []model.Contradiction
			for _, s := range tt.severities {
				contradictions = append(contradictions, contradiction(s))
			}
			got := Score(contradictions, 5)
			if got.Score != tt.want {
				t.Errorf("Score = %v, want %v", got.Score, tt.want)
			}
		})
	}
}

func TestScoreZeroEventsOverride(t *testing.T) {
	// Zero events means full credibility even if contradictions exist,
	// which cannot normally happen but must not break the override.
	got := Score([]model.Contradiction{contradiction(model.SeverityCritical)}, 0)
	if got.Score != 100 {
		t.Errorf("zero-events score = %v, want 100", got.Score)
	}

	got = Score(nil, 0)
	if got.Score != 100 {
		t.Errorf("zero-events clean score = %v, want 100", got.Score)
	}
}

func TestScoreCleanWithEvents(t *testing.T) {
	if got := Score(nil, 7); got.Score != 100 {
		t.Errorf("Score = %v, want 100", got.Score)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	var contradictions []model.Contradiction
	prev := 101.0
	for i := 0; i < 10; i++ {
		contradictions = append(contradictions, contradiction(model.SeverityWarning))
		got := Score(contradictions, 10)
		if got.Score > prev {
			t.Fatalf("score increased from %v to %v at %d contradictions", prev, got.Score, i+1)
		}
		if got.Score < 0 || got.Score > 100 {
			t.Fatalf("score %v out of bounds", got.Score)
		}
		prev = got.Score
	}
}

func TestScoreOrderIndependent(t *testing.T) {
	a := []model.Contradiction{
		contradiction(model.SeverityCritical),
		contradiction(model.SeverityInfo),
		contradiction(model.SeverityWarning),
	}
	b := []model.Contradiction{a[2], a[0], a[1]}

	if Score(a, 3).Score != Score(b, 3).Score {
		t.Error("score depends on contradiction order")
	}
}

func TestScoreCounts(t *testing.T) {
	got := Score([]model.Contradiction{
		contradiction(model.SeverityCritical),
		contradiction(model.SeverityWarning),
		contradiction(model.SeverityWarning),
		contradiction(model.SeverityInfo),
	}, 4)

	if got.CriticalIssues != 1 || got.Warnings != 2 || got.InfoItems != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1", got.CriticalIssues, got.Warnings, got.InfoItems)
	}
	if got.TotalEvents != 4 || len(got.Contradictions) != 4 {
		t.Errorf("result does not carry its inputs: %+v", got)
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Excellent"}, {90, "Excellent"},
		{89, "Good"}, {70, "Good"},
		{69, "Fair"}, {50, "Fair"},
		{49, "Poor"}, {30, "Poor"},
		{29, "Very Poor"}, {0, "Very Poor"},
	}
	for _, tt := range tests {
		if got := Rating(tt.score); got != tt.want {
			t.Errorf("Rating(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFeedback(t *testing.T) {
	clean := Score(nil, 3)
	if f := Feedback(clean); f == "" || f[:2] != "No" {
		t.Errorf("unexpected clean feedback: %q", f)
	}

	dirty := Score([]model.Contradiction{contradiction(model.SeverityCritical)}, 3)
	f := Feedback(dirty)
	if f == "" || f == Feedback(clean) {
		t.Errorf("unexpected feedback: %q", f)
	}
}
