package extract

import (
	"time"

	"github.com/ecosift/ecosift/internal/model"
)

const dateLayout = "2006-01-02"

// Normalize promotes an extraction candidate to a validated event.
// Candidates below the confidence threshold are discarded; the reported
// event date wins over the article's publication date, which serves as
// the fallback when the model could not date the event itself.
func Normalize(article model.Article, cand *model.EventCandidate, confidenceThreshold float64) (*model.Event, bool) {
	if cand == nil {
		return nil, false
	}
	if cand.Confidence < confidenceThreshold {
		return nil, false
	}

	date := parseDate(cand.Date)
	if date.IsZero() {
		date = parseDate(article.PublishedDate)
	}

	event := &model.Event{
		Type:            model.ParseEventType(cand.EventType),
		Description:     cand.Description,
		Date:            date,
		Severity:        model.ParseEventSeverity(cand.Severity),
		FinancialImpact: cand.FinancialImpact,
		SourceArticle:   article,
		Keywords:        cand.Keywords,
		Confidence:      cand.Confidence,
	}
	return event, true
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
