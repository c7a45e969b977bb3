package detect

import (
	"fmt"

	"github.com/ecosift/ecosift/internal/model"
)

// contradictableEventTypes are the event categories that can undercut an
// assurance claim.
var contradictableEventTypes = map[model.EventType]bool{
	model.EventInvestigation: true,
	model.EventViolation:     true,
	model.EventAccident:      true,
}

// detectMisrepresentations emits a contradiction when a target claim carries
// an assurance phrase while a news event with overlapping subject matter
// undercuts it. At most one contradiction per event; the first contradicted
// claim in disclosure order wins.
func (e *Engine) detectMisrepresentations(claims *model.DisclosureClaims, events []*model.Event, _ []IncidentLink) []model.Contradiction {
	var out []model.Contradiction
	for _, event := range events {
		if !contradictableEventTypes[event.Type] {
			continue
		}

		for _, target := range claims.Targets {
			phrase, ok := containsAnyPhrase(target.Description, e.cfg.AssurancePhrases)
			if !ok {
				continue
			}
			if !tokensOverlap(target.Description, eventText(event.Keywords, event.Description)) {
				continue
			}

			severity := model.SeverityWarning
			if _, absolute := containsAnyPhrase(target.Description, e.cfg.AbsolutePhrases); absolute {
				severity = model.SeverityCritical
			}

			out = append(out, model.Contradiction{
				Kind:     model.ContradictionMisrepresentation,
				Severity: severity,
				ClaimInReport: fmt.Sprintf("Company claims %q but news reports %s: %s",
					phrase, event.Type, event.Description),
				EvidenceFromNews:  event.Description,
				Event:             event,
				CredibilityImpact: impactFor(severity),
				Recommendation:    "Align environmental claims with actual performance and disclose any discrepancies",
			})
			break
		}
	}
	return out
}
