package detect

import (
	"fmt"

	"github.com/ecosift/ecosift/internal/model"
)

// detectMagnitudeMismatches compares the financial impact a linked risk item
// discloses against what the news reports for the same incident. A ratio
// beyond the tolerance is a warning; a disclosure understating the event by
// more than the critical factor escalates.
func (e *Engine) detectMagnitudeMismatches(_ *model.DisclosureClaims, events []*model.Event, links []IncidentLink) []model.Contradiction {
	var out []model.Contradiction
	for _, event := range events {
		if event.FinancialImpact == nil {
			continue
		}
		risk := linkedRisk(links, event)
		if risk == nil || risk.FinancialImpactValue == nil {
			continue
		}

		disclosed := *risk.FinancialImpactValue
		actual := *event.FinancialImpact
		if disclosed <= 0 || actual <= 0 {
			continue
		}

		ratio := disclosed / actual
		if ratio < 1 {
			ratio = actual / disclosed
		}
		if ratio <= e.cfg.MagnitudeTolerance {
			continue
		}

		severity := model.SeverityWarning
		if actual/disclosed > e.cfg.MagnitudeCritical {
			severity = model.SeverityCritical
		}

		out = append(out, model.Contradiction{
			Kind:     model.ContradictionMagnitudeMismatch,
			Severity: severity,
			ClaimInReport: fmt.Sprintf("Reported financial impact: $%.2f, actual: $%.2f",
				disclosed, actual),
			EvidenceFromNews:  fmt.Sprintf("Financial impact of $%.2f reported in news", actual),
			Event:             event,
			CredibilityImpact: impactFor(severity),
			Recommendation:    "Provide accurate quantification of financial impacts from environmental events",
		})
	}
	return out
}
