package detect

import (
	"fmt"

	"github.com/ecosift/ecosift/internal/model"
)

// detectorFunc is one contradiction rule. Each rule is pure: same claims and
// events always yield the same contradictions, and a rule emits at most one
// contradiction per event.
type detectorFunc func(*model.DisclosureClaims, []*model.Event, []IncidentLink) []model.Contradiction

// Engine runs the fixed battery of contradiction detectors over a
// disclosure and the validated events derived from news coverage.
type Engine struct {
	cfg       model.DetectConfig
	detectors []detectorFunc
}

// NewEngine creates an engine with the given thresholds. Zero-valued
// thresholds fall back to the built-in defaults.
func NewEngine(cfg model.DetectConfig) *Engine {
	defaults := model.DefaultConfig().Detect
	if cfg.MaterialityThreshold == 0 {
		cfg.MaterialityThreshold = defaults.MaterialityThreshold
	}
	if cfg.MagnitudeTolerance == 0 {
		cfg.MagnitudeTolerance = defaults.MagnitudeTolerance
	}
	if cfg.MagnitudeCritical == 0 {
		cfg.MagnitudeCritical = defaults.MagnitudeCritical
	}
	if len(cfg.AssurancePhrases) == 0 {
		cfg.AssurancePhrases = defaults.AssurancePhrases
	}
	if len(cfg.AbsolutePhrases) == 0 {
		cfg.AbsolutePhrases = defaults.AbsolutePhrases
	}

	e := &Engine{cfg: cfg}
	e.detectors = []detectorFunc{
		e.detectOmissions,
		e.detectMisrepresentations,
		e.detectTimingMismatches,
		e.detectMagnitudeMismatches,
	}
	return e
}

// Detect runs every detector and returns the combined contradictions.
// Detectors are independent: an event that triggers several rules yields
// several contradictions. A contradiction without an event reference is a
// broken detector and aborts the run.
func (e *Engine) Detect(claims *model.DisclosureClaims, events []model.Event) []model.Contradiction {
	refs := make([]*model.Event, len(events))
	for i := range events {
		refs[i] = &events[i]
	}

	links := LinkIncidents(claims, refs)

	var out []model.Contradiction
	for _, detector := range e.detectors {
		for _, c := range detector(claims, refs, links) {
			if c.Event == nil {
				panic(fmt.Sprintf("detector emitted a contradiction without an event: %+v", c))
			}
			out = append(out, c)
		}
	}
	return out
}

// impactFor maps a severity to its credibility deduction.
func impactFor(severity model.Severity) float64 {
	switch severity {
	case model.SeverityCritical:
		return -30
	case model.SeverityWarning:
		return -15
	default:
		return -5
	}
}
