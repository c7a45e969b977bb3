package score

import (
	"fmt"
	"strings"

	"github.com/ecosift/ecosift/internal/model"
)

// Deductions per contradiction severity.
const (
	criticalDeduction = 30
	warningDeduction  = 15
	infoDeduction     = 5
)

// Score reduces the contradictions of one run to a credibility score.
// Base 100, severity-weighted deductions, floored at 0. When zero events
// were considered the score is 100 unconditionally: absence of negative
// news is treated as full credibility, a modeling choice the caller must
// flag in metadata rather than silently trust.
func Score(contradictions []model.Contradiction, totalEvents int) model.CredibilityScore {
	result := model.CredibilityScore{
		TotalEvents:    totalEvents,
		Contradictions: contradictions,
	}

	value := 100.0
	for _, c := range contradictions {
		switch c.Severity {
		case model.SeverityCritical:
			value -= criticalDeduction
			result.CriticalIssues++
		case model.SeverityWarning:
			value -= warningDeduction
			result.Warnings++
		case model.SeverityInfo:
			value -= infoDeduction
			result.InfoItems++
		}
	}
	if value < 0 {
		value = 0
	}

	if totalEvents == 0 {
		value = 100
	}

	result.Score = value
	return result
}

// Rating buckets a credibility score into a label.
func Rating(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Fair"
	case score >= 30:
		return "Poor"
	default:
		return "Very Poor"
	}
}

// Feedback summarizes the contradictions of a run for human readers.
func Feedback(result model.CredibilityScore) string {
	if len(result.Contradictions) == 0 {
		return "No credibility issues detected. The company's disclosures align well with publicly reported environmental events."
	}

	var parts []string
	if result.CriticalIssues > 0 {
		parts = append(parts, fmt.Sprintf("%d critical issue(s) found that significantly impact credibility.", result.CriticalIssues))
	}
	if result.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s) indicating potential credibility concerns.", result.Warnings))
	}
	if result.InfoItems > 0 {
		parts = append(parts, fmt.Sprintf("%d informational item(s) noted.", result.InfoItems))
	}

	kinds := make(map[model.ContradictionKind]bool)
	for _, c := range result.Contradictions {
		kinds[c.Kind] = true
	}
	if kinds[model.ContradictionOmission] {
		parts = append(parts, "Recommendation: Ensure all material environmental events are disclosed in reports.")
	}
	if kinds[model.ContradictionMisrepresentation] {
		parts = append(parts, "Recommendation: Align environmental claims with actual performance data.")
	}
	if kinds[model.ContradictionMagnitudeMismatch] {
		parts = append(parts, "Recommendation: Provide accurate quantification of environmental impacts.")
	}

	return strings.Join(parts, " ")
}
