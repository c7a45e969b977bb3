package detect

import (
	"strings"

	"github.com/ecosift/ecosift/internal/model"
)

// eventRiskCategories maps an event type to the risk categories a disclosure
// would be expected to file it under.
var eventRiskCategories = map[model.EventType][]string{
	model.EventFine:          {"policy_legal", "regulatory", "compliance", "legal"},
	model.EventLawsuit:       {"policy_legal", "legal", "litigation"},
	model.EventViolation:     {"policy_legal", "regulatory", "compliance"},
	model.EventAccident:      {"acute_physical", "operational", "environmental"},
	model.EventInvestigation: {"policy_legal", "regulatory", "legal"},
	model.EventRegulation:    {"policy_legal", "regulatory", "transition"},
	model.EventNGOReport:     {"reputation", "reputational", "market"},
}

// IncidentLink ties an Event to the risk item believed to describe the same
// underlying incident.
type IncidentLink struct {
	Event *model.Event
	Risk  *model.RiskItem
}

// LinkIncidents associates each event with the first risk item that
// corresponds to it, by category tag or by keyword overlap between the risk
// description and the event's keywords/description. Events with no
// corresponding risk item are absent from the result; the omission detector
// treats that absence as its trigger. Deterministic: risk items are
// considered in disclosure order.
func LinkIncidents(claims *model.DisclosureClaims, events []*model.Event) []IncidentLink {
	var links []IncidentLink
	for _, event := range events {
		for i := range claims.Risks {
			risk := &claims.Risks[i]
			if riskCorresponds(event, risk) {
				links = append(links, IncidentLink{Event: event, Risk: risk})
				break
			}
		}
	}
	return links
}

// linkedRisk returns the risk linked to the event, or nil.
func linkedRisk(links []IncidentLink, event *model.Event) *model.RiskItem {
	for _, link := range links {
		if link.Event == event {
			return link.Risk
		}
	}
	return nil
}

func riskCorresponds(event *model.Event, risk *model.RiskItem) bool {
	if categoryMatches(event.Type, risk.Category) {
		return true
	}
	return tokensOverlap(eventText(event.Keywords, event.Description), risk.Description)
}

func categoryMatches(eventType model.EventType, riskCategory string) bool {
	if riskCategory == "" {
		return false
	}
	category := strings.ToLower(riskCategory)
	for _, want := range eventRiskCategories[eventType] {
		if category == want || strings.Contains(category, want) {
			return true
		}
	}
	return false
}
