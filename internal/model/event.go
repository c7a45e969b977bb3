package model

import "time"

// EventType categorizes a real-world environmental event derived from news.
type EventType string

const (
	EventFine          EventType = "fine"
	EventLawsuit       EventType = "lawsuit"
	EventAccident      EventType = "accident"
	EventRegulation    EventType = "regulation"
	EventViolation     EventType = "violation"
	EventInvestigation EventType = "investigation"
	EventNGOReport     EventType = "ngo_report"
	EventOther         EventType = "other"
)

// ParseEventType maps a raw extraction string to an EventType,
// defaulting to EventOther for anything unrecognized.
func ParseEventType(s string) EventType {
	switch EventType(s) {
	case EventFine, EventLawsuit, EventAccident, EventRegulation,
		EventViolation, EventInvestigation, EventNGOReport:
		return EventType(s)
	default:
		return EventOther
	}
}

// EventSeverity is the extraction-assigned severity tag of an event.
type EventSeverity string

const (
	EventSeverityCritical EventSeverity = "critical"
	EventSeverityHigh     EventSeverity = "high"
	EventSeverityMedium   EventSeverity = "medium"
	EventSeverityLow      EventSeverity = "low"
)

// ParseEventSeverity maps a raw severity string, defaulting to medium.
func ParseEventSeverity(s string) EventSeverity {
	switch EventSeverity(s) {
	case EventSeverityCritical, EventSeverityHigh, EventSeverityMedium, EventSeverityLow:
		return EventSeverity(s)
	default:
		return EventSeverityMedium
	}
}

// EventCandidate is the raw output of the structured-extraction collaborator
// for one article, before normalization. A nil candidate means the article
// was judged unrelated to the company or the domain.
type EventCandidate struct {
	EventType       string   `json:"event_type"`
	Description     string   `json:"description"`
	Date            string   `json:"date"` // event date, not article date
	Severity        string   `json:"severity"`
	FinancialImpact *float64 `json:"financial_impact"` // USD, nil if not mentioned
	Keywords        []string `json:"keywords"`
	Confidence      float64  `json:"confidence"` // 0.0-1.0
}

// Event is a validated environmental event. Created once per article during
// normalization and immutable thereafter; it does not outlive the run.
type Event struct {
	Type            EventType     `json:"event_type"`
	Description     string        `json:"description"`
	Date            time.Time     `json:"date"` // may predate the article
	Severity        EventSeverity `json:"severity"`
	FinancialImpact *float64      `json:"financial_impact,omitempty"` // USD
	SourceArticle   Article       `json:"source_article"`
	Keywords        []string      `json:"keywords,omitempty"`
	Confidence      float64       `json:"confidence"`
}

// Year returns the calendar year the event occurred in, or 0 if unknown.
func (e Event) Year() int {
	if e.Date.IsZero() {
		return 0
	}
	return e.Date.Year()
}
