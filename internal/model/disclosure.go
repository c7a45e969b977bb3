package model

import "fmt"

// EmissionScope identifies a greenhouse-gas accounting scope.
type EmissionScope string

const (
	Scope1 EmissionScope = "scope_1"
	Scope2 EmissionScope = "scope_2"
	Scope3 EmissionScope = "scope_3"
)

// RiskItem is one climate-risk disclosure entry.
type RiskItem struct {
	RiskType             string   `json:"risk_type"` // physical/transition
	Category             string   `json:"category"`  // e.g. "acute_physical", "policy_legal"
	Description          string   `json:"description"`
	TimeHorizon          string   `json:"time_horizon,omitempty"` // short/medium/long
	FinancialImpact      string   `json:"financial_impact,omitempty"`
	FinancialImpactValue *float64 `json:"financial_impact_value,omitempty"` // USD
	MitigationStrategy   string   `json:"mitigation_strategy,omitempty"`
}

// TargetClaim is one target or commitment statement from the disclosure.
type TargetClaim struct {
	Description   string          `json:"description"`
	TargetYear    int             `json:"target_year,omitempty"`
	BaseYear      int             `json:"base_year,omitempty"`
	ReductionPct  *float64        `json:"reduction_pct,omitempty"`
	ScopesCovered []EmissionScope `json:"scopes_covered,omitempty"`
}

// EmissionRecord is one quantified emission entry.
type EmissionRecord struct {
	Scope EmissionScope `json:"scope"`
	Value *float64      `json:"value,omitempty"` // tCO2e
	Unit  string        `json:"unit,omitempty"`
	Year  int           `json:"year,omitempty"`
}

// DisclosureClaims is a company's self-reported climate disclosure reduced to
// structured claims. Immutable for the duration of one validation run.
type DisclosureClaims struct {
	CompanyName string           `json:"company_name"`
	ReportYear  int              `json:"report_year"`
	Sector      string           `json:"sector,omitempty"`
	Emissions   []EmissionRecord `json:"emissions,omitempty"`
	Targets     []TargetClaim    `json:"targets,omitempty"`
	Risks       []RiskItem       `json:"risks,omitempty"`
}

// PeriodBounds returns the reporting period as ISO date strings,
// interpreting the fiscal year as the calendar year.
func (d DisclosureClaims) PeriodBounds() (start, end string) {
	return fmt.Sprintf("%d-01-01", d.ReportYear), fmt.Sprintf("%d-12-31", d.ReportYear)
}
