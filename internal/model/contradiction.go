package model

// ContradictionKind classifies a mismatch between disclosure and news.
type ContradictionKind string

const (
	ContradictionOmission          ContradictionKind = "omission"
	ContradictionMisrepresentation ContradictionKind = "misrepresentation"
	ContradictionTimingMismatch    ContradictionKind = "timing_mismatch"
	ContradictionMagnitudeMismatch ContradictionKind = "magnitude_mismatch"
)

// Severity indicates the importance of a contradiction or finding.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Contradiction is a detected mismatch between a disclosure claim and an
// Event. Every Contradiction references exactly one Event and is produced by
// exactly one detector rule.
type Contradiction struct {
	Kind              ContradictionKind `json:"kind"`
	Severity          Severity          `json:"severity"`
	ClaimInReport     string            `json:"claim_in_report,omitempty"` // quoted disclosure text
	EvidenceFromNews  string            `json:"evidence_from_news"`
	Event             *Event            `json:"event"`
	CredibilityImpact float64           `json:"credibility_impact"` // -50 to 0
	Recommendation    string            `json:"recommendation"`
}
