package detect

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ecosift/ecosift/internal/model"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// timingNoteEventTypes are the non-material types worth an informational
// note when undisclosed. Benign coverage ("other", ngo_report, accident
// without impact) stays silent so it cannot erode the score.
var timingNoteEventTypes = map[model.EventType]bool{
	model.EventRegulation:    true,
	model.EventInvestigation: true,
}

// detectTimingMismatches flags events inside the reporting period whose
// disclosure treatment points at the wrong period. Two triggers:
//
//   - the linked risk item references a different year than the event, or
//   - the event is unlinked and of a regulation/investigation type
//     (material unlinked events are the omission detector's finding,
//     not a timing one).
//
// A gap of one reporting cycle or less stays informational.
func (e *Engine) detectTimingMismatches(claims *model.DisclosureClaims, events []*model.Event, links []IncidentLink) []model.Contradiction {
	var out []model.Contradiction
	for _, event := range events {
		year := event.Year()
		if year == 0 || year != claims.ReportYear {
			continue
		}

		risk := linkedRisk(links, event)
		if risk != nil {
			claimYear, ok := referencedYear(risk.Description)
			if !ok || claimYear == year {
				continue
			}
			severity := model.SeverityWarning
			gap := claimYear - year
			if gap < 0 {
				gap = -gap
			}
			if gap <= 1 {
				severity = model.SeverityInfo
			}
			out = append(out, model.Contradiction{
				Kind:     model.ContradictionTimingMismatch,
				Severity: severity,
				ClaimInReport: fmt.Sprintf("Disclosure places the incident in %d but it occurred in %d",
					claimYear, year),
				EvidenceFromNews:  fmt.Sprintf("Event reported on %s: %s", event.Date.Format("2006-01-02"), event.Description),
				Event:             event,
				CredibilityImpact: impactFor(severity),
				Recommendation:    "Ensure timely disclosure of all material environmental events",
			})
			continue
		}

		if !timingNoteEventTypes[event.Type] {
			continue
		}

		out = append(out, model.Contradiction{
			Kind:              model.ContradictionTimingMismatch,
			Severity:          model.SeverityInfo,
			ClaimInReport:     fmt.Sprintf("Event occurred in %d but is absent from the disclosure timeline", year),
			EvidenceFromNews:  fmt.Sprintf("Event reported on %s: %s", event.Date.Format("2006-01-02"), event.Description),
			Event:             event,
			CredibilityImpact: impactFor(model.SeverityInfo),
			Recommendation:    "Ensure timely disclosure of all material environmental events",
		})
	}
	return out
}

// referencedYear extracts the first plausible year mentioned in the text.
func referencedYear(text string) (int, bool) {
	match := yearPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}
