package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ecosift/ecosift/internal/cache"
	"github.com/ecosift/ecosift/internal/detect"
	"github.com/ecosift/ecosift/internal/extract"
	"github.com/ecosift/ecosift/internal/llm"
	"github.com/ecosift/ecosift/internal/model"
	"github.com/ecosift/ecosift/internal/news"
	"github.com/ecosift/ecosift/internal/pipeline"
	"github.com/ecosift/ecosift/internal/score"
	"github.com/ecosift/ecosift/internal/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON      string
	runTimeout   time.Duration
	newsProvider string
	maxArticles  int
	fetchText    bool
	noCache      bool
	requireNews  bool
	llmProvider  string
	llmModel     string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <claims.json>",
	Short: "Audit a climate disclosure against news coverage",
	Long: `Audit cross-checks one structured disclosure file:
- Retrieve news articles covering the company's reporting period
- Extract environmental events (fines, lawsuits, accidents, violations)
- Detect omissions, misrepresentations, timing and magnitude mismatches
- Reduce the contradictions to a credibility score

The input is a JSON file with the company's disclosed risks, targets,
and emissions (see 'ecosift config show' for the expected shape).

Example:
  ecosift audit acme-2024.json
  ecosift audit acme-2024.json --json acme-report.json --fetch-text
  ecosift audit acme-2024.json --llm-provider ollama --llm-model llama3.1`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	// Output flags
	auditCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")

	// News flags
	auditCmd.Flags().StringVar(&newsProvider, "news-provider", "brave", "news provider (brave, newsapi)")
	auditCmd.Flags().IntVar(&maxArticles, "max-articles", 50, "maximum articles to retrieve")
	auditCmd.Flags().BoolVar(&fetchText, "fetch-text", false, "fetch full article text before extraction (slower)")
	auditCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh search)")
	auditCmd.Flags().BoolVar(&requireNews, "require-news", false, "fail instead of degrading when no news credentials are configured")

	// LLM flags
	auditCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	auditCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")

	auditCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "overall audit timeout")
}

func runAudit(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	a, err := newAuditor(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Auditing: %s\n", path)
		fmt.Fprintf(os.Stderr, "News provider: %s\n", cfg.News.Provider)
		fmt.Fprintf(os.Stderr, "LLM: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintln(os.Stderr)
	}

	result, err := a.AuditFile(ctx, path)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if err := writeReport(result, outJSON); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printSummary(result)
	fmt.Fprintf(os.Stderr, "Report written to %s\n", outJSON)

	return nil
}

// buildConfig layers config file values over defaults, then CLI flags over both.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	cfg.News.Provider = newsProvider
	cfg.News.MaxArticles = maxArticles
	cfg.News.FetchText = fetchText
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.RunTimeout = runTimeout

	// API keys come from the environment, never from flags
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" && os.Getenv("OPENAI_API_KEY") == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" && os.Getenv("ANTHROPIC_API_KEY") == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
	}

	if key := os.Getenv("BRAVE_API_KEY"); key != "" {
		cfg.News.BraveAPIKey = key
	}
	if key := os.Getenv("NEWSAPI_API_KEY"); key != "" {
		cfg.News.NewsAPIKey = key
	}

	return cfg, nil
}

// auditor wires the full validation stack for one configuration and
// satisfies worker.Auditor so batch runs can share it.
type auditor struct {
	runner *pipeline.Runner
}

func newAuditor(cfg *model.Config) (*auditor, error) {
	searcher, err := buildSearcher(cfg)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	extractor := extract.NewExtractor(provider, cfg.Detect.ConfidenceThreshold,
		extract.WithWorkers(cfg.Concurrency.ExtractionWorkers),
		extract.WithBatchSize(cfg.Concurrency.BatchSize),
		extract.WithVerbose(verbose),
	)

	engine := detect.NewEngine(cfg.Detect)

	validator := validate.NewNewsConsistency(searcher, extractor, engine,
		validate.WithKeywords(cfg.News.Keywords),
		validate.WithMaxArticles(cfg.News.MaxArticles),
		validate.WithTimeouts(cfg.News.Timeout, 2*time.Minute),
		validate.WithVerbose(verbose),
	)

	runner := pipeline.NewRunner([]pipeline.Validator{validator}, verbose)
	return &auditor{runner: runner}, nil
}

// buildSearcher assembles the news source manager, cache, and optional
// full-text enrichment behind the validate.Searcher interface.
func buildSearcher(cfg *model.Config) (validate.Searcher, error) {
	var sources []news.Source

	if cfg.News.BraveAPIKey != "" {
		src, err := news.NewBraveSource(cfg.News.BraveAPIKey, cfg.News.Timeout)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if cfg.News.NewsAPIKey != "" {
		src, err := news.NewNewsAPISource(cfg.News.NewsAPIKey, cfg.News.Timeout)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 {
		if requireNews {
			return nil, fmt.Errorf("no news API credentials: set BRAVE_API_KEY or NEWSAPI_API_KEY")
		}
		// Without credentials the validator degrades instead of failing
		fmt.Fprintf(os.Stderr, "warning: no news API credentials (BRAVE_API_KEY, NEWSAPI_API_KEY); results will be degraded\n")
	}

	opts := []news.ManagerOption{news.WithVerbose(verbose)}
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("find home directory: %w", err)
			}
			dir = filepath.Join(home, ".ecosift", "cache")
		}
		opts = append(opts, news.WithCache(cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)))
	}

	manager := news.NewManager(cfg.News.Provider, sources, opts...)

	if cfg.News.FetchText {
		return &enrichedSearcher{
			manager: manager,
			fetcher: news.NewTextFetcher(cfg.News.Timeout, cfg.News.UserAgent),
		}, nil
	}
	return manager, nil
}

// enrichedSearcher replaces article snippets with fetched page text
// before extraction sees them.
type enrichedSearcher struct {
	manager *news.Manager
	fetcher *news.TextFetcher
}

func (s *enrichedSearcher) Search(ctx context.Context, company, startDate, endDate string, keywords []string, maxResults int) ([]model.Article, error) {
	articles, err := s.manager.Search(ctx, company, startDate, endDate, keywords, maxResults)
	if err != nil {
		return nil, err
	}
	return s.fetcher.Enrich(ctx, articles), nil
}

func (a *auditor) AuditFile(ctx context.Context, path string) (*model.AggregatedResult, error) {
	claims, err := loadClaims(path)
	if err != nil {
		return nil, err
	}
	result := a.runner.Run(ctx, claims)
	return &result, nil
}

// loadClaims decodes a structured disclosure file.
func loadClaims(path string) (*model.DisclosureClaims, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read claims file: %w", err)
	}

	var claims model.DisclosureClaims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, fmt.Errorf("parse claims file %s: %w", path, err)
	}
	if claims.CompanyName == "" {
		return nil, fmt.Errorf("claims file %s: company_name is required", path)
	}
	if claims.ReportYear == 0 {
		return nil, fmt.Errorf("claims file %s: report_year is required", path)
	}
	return &claims, nil
}

func writeReport(result *model.AggregatedResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func printSummary(result *model.AggregatedResult) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  %s\n", result.CompanyName)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Overall score:  %.0f/100 (%s, grade %s)\n",
		result.OverallScore*100, score.Rating(result.OverallScore*100), result.Grade)

	for _, r := range result.Results {
		if r.Score == nil {
			fmt.Fprintf(os.Stderr, "  %-18s unscored (%d findings)\n", r.ValidatorName+":", len(r.Findings))
			continue
		}
		fmt.Fprintf(os.Stderr, "  %-18s %.0f/100 (%d findings)\n", r.ValidatorName+":", *r.Score*100, len(r.Findings))
	}
	fmt.Fprintf(os.Stderr, "\n")
}
