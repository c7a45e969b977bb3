package detect

import (
	"reflect"
	"testing"
	"time"

	"github.com/ecosift/ecosift/internal/model"
)

func usd(v float64) *float64 { return &v }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func defaultEngine() *Engine {
	return NewEngine(model.DefaultConfig().Detect)
}

func TestDetectOmissionCriticalFine(t *testing.T) {
	claims := &model.DisclosureClaims{CompanyName: "Acme", ReportYear: 2024}
	events := []model.Event{{
		Type:            model.EventFine,
		Description:     "EPA assessed a penalty over effluent discharges",
		Date:            date("2024-06-15"),
		Severity:        model.EventSeverityMedium,
		FinancialImpact: usd(50_000_000),
		Confidence:      0.9,
	}}

	contradictions := defaultEngine().Detect(claims, events)
	if len(contradictions) != 1 {
		t.Fatalf("expected exactly 1 contradiction, got %d: %+v", len(contradictions), contradictions)
	}
	c := contradictions[0]
	if c.Kind != model.ContradictionOmission {
		t.Errorf("kind = %s, want omission", c.Kind)
	}
	if c.Severity != model.SeverityCritical {
		t.Errorf("severity = %s, want critical ($50M exceeds materiality)", c.Severity)
	}
	if c.Event == nil || c.Event.Type != model.EventFine {
		t.Errorf("contradiction must reference the triggering event")
	}
}

func TestDetectOmissionWarningBelowMateriality(t *testing.T) {
	claims := &model.DisclosureClaims{ReportYear: 2024}
	events := []model.Event{{
		Type:            model.EventFine,
		Description:     "minor administrative penalty",
		Date:            date("2024-03-01"),
		Severity:        model.EventSeverityLow,
		FinancialImpact: usd(100_000),
		Confidence:      0.8,
	}}

	contradictions := defaultEngine().Detect(claims, events)
	if len(contradictions) != 1 || contradictions[0].Severity != model.SeverityWarning {
		t.Errorf("expected one warning omission, got %+v", contradictions)
	}
}

func TestDetectOmissionSuppressedByMatchingRisk(t *testing.T) {
	claims := &model.DisclosureClaims{
		ReportYear: 2024,
		Risks: []model.RiskItem{
			{Category: "policy_legal", Description: "regulatory penalties from effluent permit exceedances in 2024"},
		},
	}
	events := []model.Event{{
		Type:            model.EventFine,
		Description:     "penalty over effluent discharges",
		Date:            date("2024-06-15"),
		FinancialImpact: usd(50_000_000),
		Confidence:      0.9,
	}}

	for _, c := range defaultEngine().Detect(claims, events) {
		if c.Kind == model.ContradictionOmission {
			t.Errorf("disclosed incident should not be flagged as omission: %+v", c)
		}
	}
}

func TestDetectMisrepresentation(t *testing.T) {
	claims := &model.DisclosureClaims{
		ReportYear: 2023,
		Targets: []model.TargetClaim{
			{Description: "We are carbon neutral across all refinery operations"},
		},
	}
	events := []model.Event{{
		Type:        model.EventViolation,
		Description: "refinery operations breached air permit limits",
		Date:        date("2023-05-01"),
		Severity:    model.EventSeverityMedium,
		Confidence:  0.8,
	}}

	contradictions := defaultEngine().Detect(claims, events)

	var found *model.Contradiction
	for i := range contradictions {
		if contradictions[i].Kind == model.ContradictionMisrepresentation {
			found = &contradictions[i]
		}
	}
	if found == nil {
		t.Fatal("expected a misrepresentation contradiction")
	}
	if found.Severity != model.SeverityCritical {
		t.Errorf("absolute claim should escalate to critical, got %s", found.Severity)
	}
}

func TestDetectMisrepresentationNonAbsoluteClaim(t *testing.T) {
	claims := &model.DisclosureClaims{
		ReportYear: 2023,
		Targets: []model.TargetClaim{
			{Description: "Our green initiative covers pipeline operations"},
		},
	}
	events := []model.Event{{
		Type:        model.EventAccident,
		Description: "pipeline spill disrupted operations",
		Date:        date("2023-08-10"),
		Confidence:  0.8,
	}}

	contradictions := defaultEngine().Detect(claims, events)
	for _, c := range contradictions {
		if c.Kind == model.ContradictionMisrepresentation && c.Severity != model.SeverityWarning {
			t.Errorf("conditional claim should stay warning, got %s", c.Severity)
		}
	}
}

func TestDetectTimingMismatchWrongYear(t *testing.T) {
	claims := &model.DisclosureClaims{
		ReportYear: 2024,
		Risks: []model.RiskItem{
			{Category: "policy_legal", Description: "litigation settled in 2021 over groundwater claims"},
		},
	}
	events := []model.Event{{
		Type:        model.EventLawsuit,
		Description: "groundwater contamination lawsuit filed",
		Date:        date("2024-02-01"),
		Confidence:  0.9,
	}}

	contradictions := defaultEngine().Detect(claims, events)

	var timing *model.Contradiction
	for i := range contradictions {
		if contradictions[i].Kind == model.ContradictionTimingMismatch {
			timing = &contradictions[i]
		}
	}
	if timing == nil {
		t.Fatal("expected a timing mismatch")
	}
	if timing.Severity != model.SeverityWarning {
		t.Errorf("3-year gap should be warning, got %s", timing.Severity)
	}
}

func TestDetectTimingMismatchSingleCycleGapIsInfo(t *testing.T) {
	claims := &model.DisclosureClaims{
		ReportYear: 2024,
		Risks: []model.RiskItem{
			{Category: "policy_legal", Description: "penalty proceedings from 2023 permit issues"},
		},
	}
	events := []model.Event{{
		Type:        model.EventFine,
		Description: "permit penalty finalized",
		Date:        date("2024-02-01"),
		Confidence:  0.9,
	}}

	for _, c := range defaultEngine().Detect(claims, events) {
		if c.Kind == model.ContradictionTimingMismatch && c.Severity != model.SeverityInfo {
			t.Errorf("one-cycle gap should be info, got %s", c.Severity)
		}
	}
}

func TestDetectTimingSkipsMaterialUnlinkedEvents(t *testing.T) {
	// A material undisclosed event is the omission detector's finding;
	// the timing rule must not double-charge it.
	claims := &model.DisclosureClaims{ReportYear: 2024}
	events := []model.Event{{
		Type:            model.EventLawsuit,
		Description:     "shareholder suit over emissions data",
		Date:            date("2024-04-01"),
		FinancialImpact: usd(20_000_000),
		Confidence:      0.9,
	}}

	for _, c := range defaultEngine().Detect(claims, events) {
		if c.Kind == model.ContradictionTimingMismatch {
			t.Errorf("unexpected timing mismatch: %+v", c)
		}
	}
}

func TestDetectTimingIgnoresBenignUnlinkedEvents(t *testing.T) {
	// Coverage that maps to no disclosure obligation must not erode the
	// score five points at a time.
	claims := &model.DisclosureClaims{ReportYear: 2024}
	events := []model.Event{
		{Type: model.EventOther, Description: "company opens visitor center", Date: date("2024-03-01"), Confidence: 0.8},
		{Type: model.EventNGOReport, Description: "advocacy group profiles industry", Date: date("2024-05-01"), Confidence: 0.7},
		{Type: model.EventAccident, Description: "minor forklift incident", Date: date("2024-06-01"), Confidence: 0.8},
	}

	for _, c := range defaultEngine().Detect(claims, events) {
		if c.Kind == model.ContradictionTimingMismatch {
			t.Errorf("unexpected timing mismatch for benign event: %+v", c)
		}
	}
}

func TestDetectTimingNotesUndisclosedInvestigation(t *testing.T) {
	claims := &model.DisclosureClaims{ReportYear: 2024}
	events := []model.Event{{
		Type:        model.EventInvestigation,
		Description: "regulator opens inquiry into reporting practices",
		Date:        date("2024-09-01"),
		Confidence:  0.8,
	}}

	timings := 0
	for _, c := range defaultEngine().Detect(claims, events) {
		if c.Kind == model.ContradictionTimingMismatch {
			timings++
			if c.Severity != model.SeverityInfo {
				t.Errorf("undisclosed investigation should be info, got %s", c.Severity)
			}
		}
	}
	if timings != 1 {
		t.Errorf("timing notes = %d, want 1", timings)
	}
}

func TestDetectMagnitudeMismatchCritical(t *testing.T) {
	claims := &model.DisclosureClaims{
		ReportYear: 2024,
		Risks: []model.RiskItem{
			{
				Category:             "policy_legal",
				Description:          "provision for settlement of the discharge penalty",
				FinancialImpactValue: usd(5_000_000),
			},
		},
	}
	events := []model.Event{{
		Type:            model.EventFine,
		Description:     "discharge penalty announced",
		Date:            date("2024-06-15"),
		FinancialImpact: usd(500_000_000),
		Confidence:      0.9,
	}}

	contradictions := defaultEngine().Detect(claims, events)

	var magnitude *model.Contradiction
	for i := range contradictions {
		if contradictions[i].Kind == model.ContradictionMagnitudeMismatch {
			magnitude = &contradictions[i]
		}
	}
	if magnitude == nil {
		t.Fatal("expected a magnitude mismatch for a 100x understatement")
	}
	if magnitude.Severity != model.SeverityCritical {
		t.Errorf("100x understatement should be critical, got %s", magnitude.Severity)
	}
}

func TestDetectMagnitudeWithinTolerance(t *testing.T) {
	claims := &model.DisclosureClaims{
		ReportYear: 2024,
		Risks: []model.RiskItem{
			{
				Category:             "policy_legal",
				Description:          "provision for the discharge penalty",
				FinancialImpactValue: usd(48_000_000),
			},
		},
	}
	events := []model.Event{{
		Type:            model.EventFine,
		Description:     "discharge penalty announced",
		Date:            date("2024-06-15"),
		FinancialImpact: usd(50_000_000),
		Confidence:      0.9,
	}}

	for _, c := range defaultEngine().Detect(claims, events) {
		if c.Kind == model.ContradictionMagnitudeMismatch {
			t.Errorf("1.04x ratio should not fire: %+v", c)
		}
	}
}

func TestDetectMagnitudeOverstatementIsWarning(t *testing.T) {
	claims := &model.DisclosureClaims{
		ReportYear: 2024,
		Risks: []model.RiskItem{
			{
				Category:             "policy_legal",
				Description:          "provision for the discharge penalty",
				FinancialImpactValue: usd(100_000_000),
			},
		},
	}
	events := []model.Event{{
		Type:            model.EventFine,
		Description:     "discharge penalty announced",
		Date:            date("2024-06-15"),
		FinancialImpact: usd(10_000_000),
		Confidence:      0.9,
	}}

	var found bool
	for _, c := range defaultEngine().Detect(claims, events) {
		if c.Kind == model.ContradictionMagnitudeMismatch {
			found = true
			if c.Severity != model.SeverityWarning {
				t.Errorf("overstatement should stay warning, got %s", c.Severity)
			}
		}
	}
	if !found {
		t.Error("expected a magnitude mismatch for a 10x overstatement")
	}
}

func TestDetectIdempotent(t *testing.T) {
	claims := &model.DisclosureClaims{
		ReportYear: 2024,
		Targets: []model.TargetClaim{
			{Description: "net zero refinery operations by 2030"},
		},
		Risks: []model.RiskItem{
			{Category: "policy_legal", Description: "penalty provision", FinancialImpactValue: usd(1_000_000)},
		},
	}
	events := []model.Event{
		{Type: model.EventFine, Description: "penalty over discharges", Date: date("2024-06-15"), FinancialImpact: usd(50_000_000), Confidence: 0.9},
		{Type: model.EventViolation, Description: "refinery operations breached limits", Date: date("2024-07-01"), Confidence: 0.8},
		{Type: model.EventNGOReport, Description: "report on flaring practices", Date: date("2024-08-01"), Confidence: 0.7},
	}

	engine := defaultEngine()
	first := engine.Detect(claims, events)
	second := engine.Detect(claims, events)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("detect is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDetectEmptyInputs(t *testing.T) {
	engine := defaultEngine()

	if got := engine.Detect(&model.DisclosureClaims{ReportYear: 2024}, nil); len(got) != 0 {
		t.Errorf("no events should yield no contradictions, got %+v", got)
	}
}
