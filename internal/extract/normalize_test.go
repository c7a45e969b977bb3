package extract

import (
	"testing"

	"github.com/ecosift/ecosift/internal/model"
)

func TestNormalizeNilCandidate(t *testing.T) {
	if _, ok := Normalize(model.Article{}, nil, 0.5); ok {
		t.Error("nil candidate should be discarded")
	}
}

func TestNormalizeLowConfidence(t *testing.T) {
	cand := &model.EventCandidate{
		EventType:   "fine",
		Description: "d",
		Date:        "2024-06-15",
		Severity:    "high",
		Confidence:  0.4,
	}
	if _, ok := Normalize(model.Article{}, cand, 0.5); ok {
		t.Error("confidence below threshold should be discarded")
	}

	cand.Confidence = 0.5
	if _, ok := Normalize(model.Article{}, cand, 0.5); !ok {
		t.Error("confidence at threshold should be kept")
	}
}

func TestNormalizeEventDateWins(t *testing.T) {
	article := model.Article{PublishedDate: "2024-06-20"}
	cand := &model.EventCandidate{
		EventType:   "accident",
		Description: "spill",
		Date:        "2024-06-01",
		Severity:    "high",
		Confidence:  0.8,
	}

	event, ok := Normalize(article, cand, 0.5)
	if !ok {
		t.Fatal("expected event")
	}
	if event.Date.Format("2006-01-02") != "2024-06-01" {
		t.Errorf("event date should win over publication date, got %s", event.Date.Format("2006-01-02"))
	}
}

func TestNormalizePublicationDateFallback(t *testing.T) {
	article := model.Article{PublishedDate: "2024-06-20"}
	cand := &model.EventCandidate{
		EventType:   "fine",
		Description: "d",
		Date:        "",
		Severity:    "medium",
		Confidence:  0.8,
	}

	event, ok := Normalize(article, cand, 0.5)
	if !ok {
		t.Fatal("expected event")
	}
	if event.Date.Format("2006-01-02") != "2024-06-20" {
		t.Errorf("expected publication date fallback, got %s", event.Date.Format("2006-01-02"))
	}
}

func TestNormalizeUnknownDate(t *testing.T) {
	cand := &model.EventCandidate{
		EventType:   "fine",
		Description: "d",
		Severity:    "medium",
		Confidence:  0.8,
	}

	event, ok := Normalize(model.Article{}, cand, 0.5)
	if !ok {
		t.Fatal("expected event")
	}
	if !event.Date.IsZero() || event.Year() != 0 {
		t.Errorf("undatable event should carry a zero date, got %v", event.Date)
	}
}

func TestNormalizeCarriesFields(t *testing.T) {
	impact := 50_000_000.0
	article := model.Article{Title: "t", URL: "u", PublishedDate: "2024-06-20"}
	cand := &model.EventCandidate{
		EventType:       "fine",
		Description:     "EPA fine",
		Date:            "2024-06-15",
		Severity:        "critical",
		FinancialImpact: &impact,
		Keywords:        []string{"EPA"},
		Confidence:      0.9,
	}

	event, ok := Normalize(article, cand, 0.5)
	if !ok {
		t.Fatal("expected event")
	}
	if event.Type != model.EventFine || event.Severity != model.EventSeverityCritical {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.FinancialImpact == nil || *event.FinancialImpact != impact {
		t.Errorf("financial impact = %v", event.FinancialImpact)
	}
	if event.SourceArticle.URL != "u" {
		t.Errorf("source article not carried: %+v", event.SourceArticle)
	}
}
