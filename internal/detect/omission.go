package detect

import "github.com/ecosift/ecosift/internal/model"

// materialEventTypes are the event categories a disclosure must carry a
// corresponding risk item for.
var materialEventTypes = map[model.EventType]bool{
	model.EventFine:      true,
	model.EventLawsuit:   true,
	model.EventViolation: true,
}

// detectOmissions emits a contradiction for each material event with no
// corresponding risk item in the disclosure.
func (e *Engine) detectOmissions(claims *model.DisclosureClaims, events []*model.Event, links []IncidentLink) []model.Contradiction {
	var out []model.Contradiction
	for _, event := range events {
		if !materialEventTypes[event.Type] {
			continue
		}
		if linkedRisk(links, event) != nil {
			continue
		}

		severity := model.SeverityWarning
		if e.eventIsMaterial(event) {
			severity = model.SeverityCritical
		}

		out = append(out, model.Contradiction{
			Kind:              model.ContradictionOmission,
			Severity:          severity,
			EvidenceFromNews:  event.Description,
			Event:             event,
			CredibilityImpact: impactFor(severity),
			Recommendation:    "Disclose all material environmental penalties and legal proceedings in the Risks section",
		})
	}
	return out
}

// eventIsMaterial reports whether the event clears the materiality bar,
// either by financial impact or by its extraction-assigned severity.
func (e *Engine) eventIsMaterial(event *model.Event) bool {
	if event.FinancialImpact != nil && *event.FinancialImpact > e.cfg.MaterialityThreshold {
		return true
	}
	return event.Severity == model.EventSeverityCritical || event.Severity == model.EventSeverityHigh
}
