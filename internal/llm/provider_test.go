package llm

import (
	"strings"
	"testing"

	"github.com/ecosift/ecosift/internal/model"
)

func TestParseCandidateNull(t *testing.T) {
	for _, response := range []string{"null", "NULL", "  null  ", ""} {
		cand, err := ParseCandidate(response)
		if err != nil {
			t.Errorf("ParseCandidate(%q) error: %v", response, err)
		}
		if cand != nil {
			t.Errorf("ParseCandidate(%q) = %+v, want nil", response, cand)
		}
	}
}

func TestParseCandidateComplete(t *testing.T) {
	response := `{
		"event_type": "fine",
		"description": "EPA fined the company for emissions violations",
		"date": "2024-06-15",
		"severity": "high",
		"financial_impact": 50000000.0,
		"keywords": ["EPA", "fine"],
		"confidence": 0.9
	}`

	cand, err := ParseCandidate(response)
	if err != nil {
		t.Fatalf("ParseCandidate: %v", err)
	}
	if cand.EventType != "fine" || cand.Severity != "high" || cand.Date != "2024-06-15" {
		t.Errorf("unexpected candidate: %+v", cand)
	}
	if cand.FinancialImpact == nil || *cand.FinancialImpact != 50_000_000 {
		t.Errorf("financial impact = %v", cand.FinancialImpact)
	}
	if cand.Confidence != 0.9 {
		t.Errorf("confidence = %v", cand.Confidence)
	}
}

func TestParseCandidateWrappedInProse(t *testing.T) {
	response := "Here is the extraction:\n```json\n" +
		`{"event_type":"lawsuit","description":"d","date":"2024-01-01","severity":"medium","confidence":0.7}` +
		"\n```\nLet me know if you need anything else."

	cand, err := ParseCandidate(response)
	if err != nil {
		t.Fatalf("ParseCandidate: %v", err)
	}
	if cand.EventType != "lawsuit" {
		t.Errorf("event type = %q", cand.EventType)
	}
}

func TestParseCandidateCoercions(t *testing.T) {
	response := `{
		"event_type": "scandal",
		"description": "d",
		"date": "06/15/2024",
		"severity": "catastrophic",
		"financial_impact": null,
		"confidence": 1.7
	}`

	cand, err := ParseCandidate(response)
	if err != nil {
		t.Fatalf("ParseCandidate: %v", err)
	}
	if cand.EventType != "other" {
		t.Errorf("unknown event type should coerce to other, got %q", cand.EventType)
	}
	if cand.Severity != "medium" {
		t.Errorf("unknown severity should coerce to medium, got %q", cand.Severity)
	}
	if cand.Date != "2024-06-15" {
		t.Errorf("date = %q", cand.Date)
	}
	if cand.Confidence != 1.0 {
		t.Errorf("confidence should clamp to 1.0, got %v", cand.Confidence)
	}
	if cand.FinancialImpact != nil {
		t.Errorf("null impact should stay nil, got %v", *cand.FinancialImpact)
	}
	if cand.Keywords == nil || len(cand.Keywords) != 0 {
		t.Errorf("missing keywords should become empty slice, got %v", cand.Keywords)
	}
}

func TestParseCandidateMissingFields(t *testing.T) {
	if _, err := ParseCandidate(`{"event_type":"fine","description":"d"}`); err == nil {
		t.Error("expected error for missing required fields")
	}
}

func TestParseCandidateNotJSON(t *testing.T) {
	if _, err := ParseCandidate("the article is about quarterly earnings"); err == nil {
		t.Error("expected error when no JSON object is present")
	}
}

func TestNormalizeEventDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2024-06-15", "2024-06-15"},
		{"2024-06-15T10:00:00Z", "2024-06-15"},
		{"06/15/2024", "2024-06-15"},
		{"January 5, 2024", "2024-01-05"},
		{"Jan 5, 2024", "2024-01-05"},
		{"sometime in June", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeEventDate(tt.raw); got != tt.want {
			t.Errorf("normalizeEventDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestBuildExtractionPrompt(t *testing.T) {
	article := model.Article{
		Title:         "Acme fined",
		PublishedDate: "2024-06-15",
		Snippet:       "EPA fined Acme.",
	}
	prompt := BuildExtractionPrompt("Acme Corp", article)

	for _, want := range []string{"Acme Corp", "Acme fined", "2024-06-15", "EPA fined Acme.", "return null"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildExtractionPromptPrefersFullText(t *testing.T) {
	article := model.Article{Snippet: "short", FullText: "the full story"}
	if !strings.Contains(BuildExtractionPrompt("Acme", article), "the full story") {
		t.Error("prompt should use full text when present")
	}
}
