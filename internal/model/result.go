package model

// Finding is a single issue surfaced by a validator.
type Finding struct {
	Validator      string                 `json:"validator"`
	Code           string                 `json:"code"` // e.g. "NEWS-OMISSION"
	Severity       Severity               `json:"severity"`
	Message        string                 `json:"message"`
	Field          string                 `json:"field,omitempty"`
	Evidence       string                 `json:"evidence,omitempty"`
	Recommendation string                 `json:"recommendation,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// ValidationResult is the shared output contract of every validator.
// Score is nil when the validator could not run ("unscored"); callers
// distinguish a clean company from a degraded run via Metadata flags,
// never by the absence of a result.
type ValidationResult struct {
	ValidatorName string                 `json:"validator_name"`
	Score         *float64               `json:"score"` // 0.0-1.0, nil = unscored
	MaxScore      float64                `json:"max_score"`
	Findings      []Finding              `json:"findings"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// ScoreValue returns a pointer to v, for building results inline.
func ScoreValue(v float64) *float64 { return &v }

// CredibilityScore is the reduction of one run's contradictions to a single
// bounded number. Score is monotonically non-increasing in the number and
// severity of contradictions, floored at 0; zero events means 100.
type CredibilityScore struct {
	Score          float64         `json:"score"` // 0-100
	CriticalIssues int             `json:"critical_issues"`
	Warnings       int             `json:"warnings"`
	InfoItems      int             `json:"info_items"`
	TotalEvents    int             `json:"total_events"`
	Contradictions []Contradiction `json:"contradictions"`
}

// AggregatedResult is the pipeline-level roll-up across validators.
type AggregatedResult struct {
	CompanyName  string             `json:"company_name"`
	OverallScore float64            `json:"overall_score"` // 0.0-1.0
	Grade        string             `json:"grade"`         // A/B/C/D/F
	Results      []ValidationResult `json:"results"`
}
