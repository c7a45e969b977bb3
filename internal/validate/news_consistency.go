package validate

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ecosift/ecosift/internal/detect"
	"github.com/ecosift/ecosift/internal/model"
	"github.com/ecosift/ecosift/internal/resolve"
	"github.com/ecosift/ecosift/internal/score"
)

// Stage tracks where a validation run is in its lifecycle.
type Stage string

const (
	StageIdle            Stage = "idle"
	StageRetrieving      Stage = "retrieving"
	StageExtracting      Stage = "extracting"
	StageCrossValidating Stage = "cross_validating"
	StageScored          Stage = "scored"
	StageDone            Stage = "done"
	StageDegraded        Stage = "degraded"
)

// Searcher retrieves candidate news articles for a company and date range.
type Searcher interface {
	Search(ctx context.Context, company, startDate, endDate string, keywords []string, maxResults int) ([]model.Article, error)
}

// EventExtractor turns articles into validated events. An error means the
// whole extraction stage failed, not that individual articles were dropped.
type EventExtractor interface {
	Extract(ctx context.Context, company string, articles []model.Article) ([]model.Event, error)
}

// NewsConsistency cross-checks a disclosure against independently sourced
// news events and reduces the findings to a credibility score. External
// failures degrade the result instead of failing the run; only internal
// invariant violations abort.
type NewsConsistency struct {
	searcher  Searcher
	extractor EventExtractor
	engine    *detect.Engine
	resolver  *resolve.Resolver

	keywords          []string
	maxArticles       int
	retrievalTimeout  time.Duration
	extractionTimeout time.Duration
	verbose           bool
}

// Option configures a NewsConsistency validator.
type Option func(*NewsConsistency)

// WithKeywords overrides the default environmental keyword set.
func WithKeywords(keywords []string) Option {
	return func(v *NewsConsistency) { v.keywords = keywords }
}

// WithMaxArticles caps how many articles are retrieved per run.
func WithMaxArticles(n int) Option {
	return func(v *NewsConsistency) { v.maxArticles = n }
}

// WithTimeouts sets the per-stage deadlines for retrieval and extraction.
func WithTimeouts(retrieval, extraction time.Duration) Option {
	return func(v *NewsConsistency) {
		v.retrievalTimeout = retrieval
		v.extractionTimeout = extraction
	}
}

// WithVerbose enables progress output on stderr.
func WithVerbose(verbose bool) Option {
	return func(v *NewsConsistency) { v.verbose = verbose }
}

// WithResolver overrides the company-name resolver used for relevance
// accounting over retrieved articles.
func WithResolver(r *resolve.Resolver) Option {
	return func(v *NewsConsistency) { v.resolver = r }
}

// NewNewsConsistency creates the validator over its collaborators.
func NewNewsConsistency(searcher Searcher, extractor EventExtractor, engine *detect.Engine, opts ...Option) *NewsConsistency {
	v := &NewsConsistency{
		searcher:          searcher,
		extractor:         extractor,
		engine:            engine,
		resolver:          resolve.NewResolver(0.7),
		keywords:          model.DefaultKeywords,
		maxArticles:       50,
		retrievalTimeout:  30 * time.Second,
		extractionTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Name returns the validator identifier used in results and findings.
func (v *NewsConsistency) Name() string { return "news_consistency" }

// Validate runs the full retrieval, extraction, detection, scoring sequence
// for one disclosure. Callers always receive a well-formed result; a clean
// company and a degraded run are distinguished by metadata flags.
func (v *NewsConsistency) Validate(ctx context.Context, claims *model.DisclosureClaims) model.ValidationResult {
	start, end := claims.PeriodBounds()

	stage := StageRetrieving
	v.progress("searching news for %s (%s to %s)", claims.CompanyName, start, end)

	retrievalCtx, cancelRetrieval := context.WithTimeout(ctx, v.retrievalTimeout)
	articles, err := v.searcher.Search(retrievalCtx, claims.CompanyName, start, end, v.keywords, v.maxArticles)
	cancelRetrieval()
	if err != nil {
		return v.degraded(claims, stage, fmt.Errorf("news retrieval failed: %w", err))
	}

	mentions := 0
	for _, a := range articles {
		if v.resolver.Matches(claims.CompanyName, a.Title+" "+a.Snippet) {
			mentions++
		}
	}
	if len(articles) > 0 && mentions == 0 {
		v.progress("warning: none of the %d articles name %s directly", len(articles), claims.CompanyName)
	}

	stage = StageExtracting
	v.progress("extracting events from %d articles", len(articles))

	extractionCtx, cancelExtraction := context.WithTimeout(ctx, v.extractionTimeout)
	events, err := v.extractor.Extract(extractionCtx, claims.CompanyName, articles)
	cancelExtraction()
	if err != nil {
		return v.degraded(claims, stage, fmt.Errorf("event extraction failed: %w", err))
	}

	contradictions := v.engine.Detect(claims, events)
	credibility := score.Score(contradictions, len(events))

	findings := make([]model.Finding, 0, len(contradictions))
	for _, c := range contradictions {
		findings = append(findings, model.Finding{
			Validator:      v.Name(),
			Code:           "NEWS-" + strings.ToUpper(string(c.Kind)),
			Severity:       c.Severity,
			Message:        fmt.Sprintf("%s: %s", c.Kind, c.EvidenceFromNews),
			Field:          "credibility",
			Evidence:       c.EvidenceFromNews,
			Recommendation: c.Recommendation,
			Metadata: map[string]interface{}{
				"event_type": string(c.Event.Type),
				"event_date": c.Event.Date.Format("2006-01-02"),
				"source_url": c.Event.SourceArticle.URL,
			},
		})
	}

	metadata := map[string]interface{}{
		"news_articles_found":  len(articles),
		"company_mentions":     mentions,
		"events_extracted":     len(events),
		"contradictions_found": len(contradictions),
		"report_period":        fmt.Sprintf("%s to %s", start, end),
		"credibility_rating":   score.Rating(credibility.Score),
		"stage":                string(StageDone),
	}
	if len(articles) == 0 {
		// Absence of evidence, not evidence of a clean record.
		metadata["no_external_evidence"] = true
	}

	return model.ValidationResult{
		ValidatorName: v.Name(),
		Score:         model.ScoreValue(credibility.Score / 100.0),
		MaxScore:      1.0,
		Findings:      findings,
		Metadata:      metadata,
	}
}

// degraded produces the neutral, clearly flagged result for external
// failures. Score is full per the scoring contract, never an endorsement;
// the metadata carries the distinction.
func (v *NewsConsistency) degraded(claims *model.DisclosureClaims, stage Stage, cause error) model.ValidationResult {
	start, end := claims.PeriodBounds()
	fmt.Fprintf(os.Stderr, "news consistency degraded at %s: %v\n", stage, cause)

	return model.ValidationResult{
		ValidatorName: v.Name(),
		Score:         model.ScoreValue(1.0),
		MaxScore:      1.0,
		Findings: []model.Finding{{
			Validator:      v.Name(),
			Code:           "NEWS-ERROR",
			Severity:       model.SeverityWarning,
			Message:        fmt.Sprintf("News consistency validation could not run: %v", cause),
			Field:          "credibility",
			Recommendation: "Check API keys and network connectivity for news services",
			Metadata:       map[string]interface{}{"error": cause.Error()},
		}},
		Metadata: map[string]interface{}{
			"news_articles_found":  0,
			"events_extracted":     0,
			"contradictions_found": 0,
			"report_period":        fmt.Sprintf("%s to %s", start, end),
			"stage":                string(StageDegraded),
			"degraded":             true,
			"failed_stage":         string(stage),
			"validation_error":     cause.Error(),
		},
	}
}

func (v *NewsConsistency) progress(format string, args ...interface{}) {
	if v.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
