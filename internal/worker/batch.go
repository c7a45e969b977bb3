package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ecosift/ecosift/internal/model"
)

// Auditor defines the interface for auditing one disclosure file
type Auditor interface {
	AuditFile(ctx context.Context, path string) (*model.AggregatedResult, error)
}

// AuditJob represents a single-file audit job
type AuditJob struct {
	Path    string
	Auditor Auditor
}

// Execute executes the audit job
func (j *AuditJob) Execute(ctx context.Context) Result {
	result, err := j.Auditor.AuditFile(ctx, j.Path)
	if err != nil {
		return &AuditResult{
			Path:   j.Path,
			Result: nil,
			Error:  err,
		}
	}
	return &AuditResult{
		Path:   j.Path,
		Result: result,
		Error:  nil,
	}
}

// AuditResult represents the result of an audit job
type AuditResult struct {
	Path   string
	Result *model.AggregatedResult
	Error  error
}

// GetError returns the error from the audit result
func (r *AuditResult) GetError() error {
	return r.Error
}

// BatchProcessor audits multiple disclosure files concurrently
type BatchProcessor struct {
	auditor     Auditor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(auditor Auditor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		auditor:     auditor,
		concurrency: concurrency,
	}
}

// ProcessFiles audits multiple disclosure files concurrently
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AuditResult {
	if len(paths) == 0 {
		return []*AuditResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AuditJob{
			Path:    path,
			Auditor: b.auditor,
		})
	}

	results := pool.Wait()

	auditResults := make([]*AuditResult, len(results))
	for i, result := range results {
		auditResults[i] = result.(*AuditResult)
	}

	return auditResults
}

// ProcessManifest reads disclosure paths from a manifest file and audits
// them concurrently
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*AuditResult, error) {
	paths, err := ReadPathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads file paths from a manifest (one per line)
func ReadPathsFromFile(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate paths
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
