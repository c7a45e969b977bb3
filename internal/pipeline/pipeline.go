package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/ecosift/ecosift/internal/model"
)

// Validator is the contract every disclosure validator implements. The news
// consistency validator is a drop-in peer of simpler checklist validators
// behind this interface.
type Validator interface {
	// Name returns the validator identifier.
	Name() string

	// Validate checks one disclosure and always returns a well-formed
	// result; external failures surface as degraded results, not errors.
	Validate(ctx context.Context, claims *model.DisclosureClaims) model.ValidationResult
}

// Runner executes a sequence of validators over one disclosure.
type Runner struct {
	validators []Validator
	verbose    bool
}

// NewRunner creates a runner over the given validators, executed in order.
func NewRunner(validators []Validator, verbose bool) *Runner {
	return &Runner{validators: validators, verbose: verbose}
}

// Run validates the disclosure with every validator. A panicking validator
// is isolated into an unscored error result so one defect cannot take down
// the sibling validators' findings.
func (r *Runner) Run(ctx context.Context, claims *model.DisclosureClaims) model.AggregatedResult {
	results := make([]model.ValidationResult, 0, len(r.validators))
	for _, v := range r.validators {
		if ctx.Err() != nil {
			break
		}
		if r.verbose {
			fmt.Fprintf(os.Stderr, "running validator %s\n", v.Name())
		}
		results = append(results, r.runOne(ctx, v, claims))
	}
	return Aggregate(claims.CompanyName, results)
}

func (r *Runner) runOne(ctx context.Context, v Validator, claims *model.DisclosureClaims) (result model.ValidationResult) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(os.Stderr, "validator %s panicked: %v\n", v.Name(), rec)
			result = model.ValidationResult{
				ValidatorName: v.Name(),
				Score:         nil, // unscored
				MaxScore:      1.0,
				Findings: []model.Finding{{
					Validator: v.Name(),
					Code:      "VALIDATOR-ERROR",
					Severity:  model.SeverityWarning,
					Message:   fmt.Sprintf("validator %s failed: %v", v.Name(), rec),
					Field:     "internal",
				}},
				Metadata: map[string]interface{}{"error": fmt.Sprint(rec)},
			}
		}
	}()
	return v.Validate(ctx, claims)
}

// Aggregate rolls individual validator results into one graded summary.
// Unscored results are excluded from the average but kept in the output.
func Aggregate(companyName string, results []model.ValidationResult) model.AggregatedResult {
	var sum float64
	scored := 0
	for _, r := range results {
		if r.Score != nil {
			sum += *r.Score
			scored++
		}
	}

	overall := 0.0
	if scored > 0 {
		overall = sum / float64(scored)
	}

	return model.AggregatedResult{
		CompanyName:  companyName,
		OverallScore: overall,
		Grade:        gradeFor(overall),
		Results:      results,
	}
}

func gradeFor(score float64) string {
	switch {
	case score >= 0.9:
		return "A"
	case score >= 0.8:
		return "B"
	case score >= 0.7:
		return "C"
	case score >= 0.6:
		return "D"
	default:
		return "F"
	}
}
