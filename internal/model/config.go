package model

import "time"

// NewsConfig configures the article-search collaborator.
type NewsConfig struct {
	Provider    string        `yaml:"provider" mapstructure:"provider"` // brave, newsapi
	BraveAPIKey string        `yaml:"brave_api_key,omitempty" mapstructure:"brave_api_key"`
	NewsAPIKey  string        `yaml:"newsapi_api_key,omitempty" mapstructure:"newsapi_api_key"`
	MaxArticles int           `yaml:"max_articles" mapstructure:"max_articles"`
	Keywords    []string      `yaml:"keywords" mapstructure:"keywords"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	FetchText   bool          `yaml:"fetch_text" mapstructure:"fetch_text"` // enrich snippets with page text
	UserAgent   string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// LLMConfig configures the structured-extraction collaborator.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// DetectConfig holds the thresholds of the contradiction detectors and the
// entity resolver.
type DetectConfig struct {
	ConfidenceThreshold  float64  `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`   // discard extractions below this
	MaterialityThreshold float64  `yaml:"materiality_threshold" mapstructure:"materiality_threshold"` // USD
	MagnitudeTolerance   float64  `yaml:"magnitude_tolerance" mapstructure:"magnitude_tolerance"`     // ratio before a mismatch fires
	MagnitudeCritical    float64  `yaml:"magnitude_critical" mapstructure:"magnitude_critical"`       // understatement ratio for critical
	SimilarityCutoff     float64  `yaml:"similarity_cutoff" mapstructure:"similarity_cutoff"`         // entity resolution, 0-1
	AssurancePhrases     []string `yaml:"assurance_phrases" mapstructure:"assurance_phrases"`
	AbsolutePhrases      []string `yaml:"absolute_phrases" mapstructure:"absolute_phrases"`
}

// ConcurrencyConfig bounds parallel work against external collaborators.
type ConcurrencyConfig struct {
	ExtractionWorkers int `yaml:"extraction_workers" mapstructure:"extraction_workers"`
	BatchSize         int `yaml:"batch_size" mapstructure:"batch_size"` // articles per extraction batch
}

// CacheConfig configures the layered news-response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// Config is the full configuration surface of a validation run.
type Config struct {
	News        NewsConfig        `yaml:"news" mapstructure:"news"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Detect      DetectConfig      `yaml:"detect" mapstructure:"detect"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`

	RunTimeout time.Duration `yaml:"run_timeout" mapstructure:"run_timeout"`
}

// DefaultKeywords is the environmental/regulatory term set appended as
// OR-clauses to the company-name query.
var DefaultKeywords = []string{
	"environment", "climate", "pollution", "emission",
	"fine", "penalty", "lawsuit", "violation",
	"regulation", "EPA", "investigation",
	"carbon", "greenhouse gas", "sustainability",
}

// DefaultAssurancePhrases are claim fragments that assert a positive
// environmental stance; any of them can be contradicted by negative events.
var DefaultAssurancePhrases = []string{
	"carbon neutral", "zero emission", "net zero", "climate positive",
	"sustainable practice", "environmentally friendly", "green initiative",
	"clean energy", "100% renewable",
}

// DefaultAbsolutePhrases is the subset of assurance phrases that make an
// unconditional assertion; contradictions of these escalate to critical.
var DefaultAbsolutePhrases = []string{
	"carbon neutral", "zero emission", "net zero", "100% renewable",
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		News: NewsConfig{
			Provider:    "brave",
			MaxArticles: 50,
			Keywords:    append([]string(nil), DefaultKeywords...),
			Timeout:     30 * time.Second,
			FetchText:   false,
			UserAgent:   "Ecosift/0.1 (+https://github.com/ecosift/ecosift)",
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Detect: DetectConfig{
			ConfidenceThreshold:  0.5,
			MaterialityThreshold: 10_000_000,
			MagnitudeTolerance:   5.0,
			MagnitudeCritical:    10.0,
			SimilarityCutoff:     0.7,
			AssurancePhrases:     append([]string(nil), DefaultAssurancePhrases...),
			AbsolutePhrases:      append([]string(nil), DefaultAbsolutePhrases...),
		},
		Concurrency: ConcurrencyConfig{
			ExtractionWorkers: 5,
			BatchSize:         10,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		RunTimeout: 5 * time.Minute,
	}
}
