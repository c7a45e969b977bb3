package extract

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ecosift/ecosift/internal/llm"
	"github.com/ecosift/ecosift/internal/model"
	"github.com/ecosift/ecosift/internal/worker"
)

// ErrAllExtractionsFailed indicates that every article in a run errored,
// as opposed to articles being judged unrelated.
var ErrAllExtractionsFailed = errors.New("extraction failed for every article")

// Extractor turns news articles into validated environmental events by
// running each article through an LLM provider and normalizing the output.
type Extractor struct {
	provider            llm.Provider
	workers             int
	batchSize           int
	confidenceThreshold float64
	verbose             bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithWorkers sets the number of concurrent extraction workers.
func WithWorkers(n int) Option {
	return func(e *Extractor) { e.workers = n }
}

// WithBatchSize sets how many articles are processed per batch.
func WithBatchSize(n int) Option {
	return func(e *Extractor) { e.batchSize = n }
}

// WithVerbose enables progress output on stderr.
func WithVerbose(v bool) Option {
	return func(e *Extractor) { e.verbose = v }
}

// NewExtractor creates an extractor over the given provider.
func NewExtractor(provider llm.Provider, confidenceThreshold float64, opts ...Option) *Extractor {
	e := &Extractor{
		provider:            provider,
		workers:             5,
		batchSize:           10,
		confidenceThreshold: confidenceThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = 1
	}
	if e.batchSize <= 0 {
		e.batchSize = 10
	}
	return e
}

// extractJob is a single-article extraction unit. It carries the run
// context so deadlines reach the provider call; the pool context only
// governs shutdown.
type extractJob struct {
	ctx      context.Context
	provider llm.Provider
	company  string
	article  model.Article
}

// Execute runs the extraction for one article.
func (j *extractJob) Execute(_ context.Context) worker.Result {
	resp, err := j.provider.Extract(j.ctx, llm.ExtractRequest{
		Company: j.company,
		Article: j.article,
	})
	if err != nil {
		return &extractResult{article: j.article, err: err}
	}
	return &extractResult{article: j.article, candidate: resp.Candidate}
}

// extractResult is the outcome of one extraction job.
type extractResult struct {
	article   model.Article
	candidate *model.EventCandidate
	err       error
}

// GetError returns the extraction error, if any.
func (r *extractResult) GetError() error {
	return r.err
}

// Extract processes the articles in batches and returns the validated
// events. A failed extraction drops that article with a logged reason;
// the run only errors when every single article failed.
func (e *Extractor) Extract(ctx context.Context, company string, articles []model.Article) ([]model.Event, error) {
	if len(articles) == 0 || e.provider == nil {
		return nil, nil
	}

	var events []model.Event
	failures := 0
	for start := 0; start < len(articles); start += e.batchSize {
		if ctx.Err() != nil {
			return events, ctx.Err()
		}
		end := start + e.batchSize
		if end > len(articles) {
			end = len(articles)
		}
		batchEvents, batchFailures := e.extractBatch(ctx, company, articles[start:end])
		events = append(events, batchEvents...)
		failures += batchFailures
	}

	if failures == len(articles) {
		return nil, ErrAllExtractionsFailed
	}
	return events, nil
}

func (e *Extractor) extractBatch(ctx context.Context, company string, batch []model.Article) ([]model.Event, int) {
	workers := e.workers
	if workers > len(batch) {
		workers = len(batch)
	}

	pool := worker.NewPool(workers)
	pool.Start()

	for _, article := range batch {
		pool.Submit(&extractJob{
			ctx:      ctx,
			provider: e.provider,
			company:  company,
			article:  article,
		})
	}

	var events []model.Event
	failures := 0
	for _, result := range pool.Wait() {
		res, ok := result.(*extractResult)
		if !ok {
			continue
		}
		if res.err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "extraction failed for article %q: %v\n", res.article.Title, res.err)
			continue
		}
		if event, ok := Normalize(res.article, res.candidate, e.confidenceThreshold); ok {
			events = append(events, *event)
		} else if e.verbose && res.candidate != nil {
			fmt.Fprintf(os.Stderr, "discarded low-confidence extraction for %q (%.2f)\n",
				res.article.Title, res.candidate.Confidence)
		}
	}

	return events, failures
}
