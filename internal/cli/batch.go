package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ecosift/ecosift/internal/score"
	"github.com/ecosift/ecosift/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Audit multiple disclosure files from a manifest in parallel",
	Long: `Batch audits multiple disclosure files concurrently:
- Read claims file paths from a manifest (one per line, # for comments)
- Audit files in parallel with configurable worker count
- Generate an individual JSON report for each company

Example:
  ecosift batch disclosures.txt
  ecosift batch disclosures.txt --concurrency 4 --output-dir ./reports
  ecosift batch disclosures.txt --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchAudit,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./ecosift-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	// Inherit flags from audit command
	batchCmd.Flags().StringVar(&newsProvider, "news-provider", "brave", "news provider (brave, newsapi)")
	batchCmd.Flags().IntVar(&maxArticles, "max-articles", 50, "maximum articles per company")
	batchCmd.Flags().BoolVar(&fetchText, "fetch-text", false, "fetch full article text before extraction (slower)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh searches)")
	batchCmd.Flags().BoolVar(&requireNews, "require-news", false, "fail instead of degrading when no news credentials are configured")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

func runBatchAudit(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Ecosift Batch Audit\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", manifest)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	a, err := newAuditor(cfg)
	if err != nil {
		return err
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(a, concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Auditing with %d workers...\n", concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	results, err := processor.ProcessManifest(ctx, manifest)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		slug := reportSlug(result.Result.CompanyName)
		jsonPath := filepath.Join(outputDir, slug+".json")
		if err := writeReport(result.Result, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write report: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s: %.0f/100 (%s, grade %s)\n",
			result.Result.CompanyName,
			result.Result.OverallScore*100,
			score.Rating(result.Result.OverallScore*100),
			result.Result.Grade)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// reportSlug sanitizes a company name for use as a report filename.
func reportSlug(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, name)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "report"
	}
	if len(slug) > 100 {
		slug = slug[:100]
	}
	return slug
}
