package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ecosift/ecosift/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Extract turns one article into a structured event candidate.
	// A nil candidate with a nil error means the article was judged
	// unrelated to the company or the environmental domain.
	Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExtractRequest contains the input for one structured extraction
type ExtractRequest struct {
	// Company is the name the event must concern
	Company string

	// Article is the news item to analyze
	Article model.Article

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ExtractResponse contains the parsed extraction output
type ExtractResponse struct {
	// Candidate is the structured event, nil when the article is unrelated
	Candidate *model.EventCandidate

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

const extractSystemPrompt = "You are an environmental compliance analyst extracting structured event data from news coverage."

// BuildExtractionPrompt constructs the default prompt for event extraction
func BuildExtractionPrompt(company string, article model.Article) string {
	return fmt.Sprintf(`You are an environmental compliance analyst. Extract structured information about environmental/climate events from the following news article.

Company: %s
Article Title: %s
Article Date: %s
Article Content: %s

Extract the following information (return JSON only):
{
  "event_type": "fine|lawsuit|accident|regulation|violation|investigation|ngo_report|other",
  "description": "Brief description of the event",
  "date": "YYYY-MM-DD (event date, not article date)",
  "severity": "critical|high|medium|low",
  "financial_impact": 1000000.0 (in USD, null if not mentioned),
  "keywords": ["keyword1", "keyword2"],
  "confidence": 0.9 (0.0-1.0, your confidence in this extraction)
}

If the article is not about an environmental/climate event related to %s, return null.`,
		company, article.Title, article.PublishedDate, article.Text(), company)
}

var jsonBlockPattern = regexp.MustCompile(`(?s)\{.*\}`)

// eventDateLayouts are the formats accepted for the event date field,
// beyond RFC 3339 timestamps.
var eventDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseCandidate parses a raw model response into an event candidate.
// Returns (nil, nil) when the model answered "null" for an unrelated
// article. Unrecognized event types coerce to "other" and unrecognized
// severities to "medium" rather than failing the extraction.
func ParseCandidate(response string) (*model.EventCandidate, error) {
	response = strings.TrimSpace(response)
	if response == "" || strings.EqualFold(response, "null") {
		return nil, nil
	}

	// Models often wrap the JSON in prose or fences; take the outermost object.
	jsonStr := jsonBlockPattern.FindString(response)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var raw struct {
		EventType       *string         `json:"event_type"`
		Description     *string         `json:"description"`
		Date            *string         `json:"date"`
		Severity        *string         `json:"severity"`
		FinancialImpact json.RawMessage `json:"financial_impact"`
		Keywords        []string        `json:"keywords"`
		Confidence      *float64        `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}

	if raw.EventType == nil || raw.Description == nil || raw.Date == nil ||
		raw.Severity == nil || raw.Confidence == nil {
		return nil, fmt.Errorf("extraction missing required fields")
	}

	cand := &model.EventCandidate{
		EventType:   string(model.ParseEventType(*raw.EventType)),
		Description: *raw.Description,
		Date:        normalizeEventDate(*raw.Date),
		Severity:    string(model.ParseEventSeverity(*raw.Severity)),
		Keywords:    raw.Keywords,
		Confidence:  clamp01(*raw.Confidence),
	}
	if cand.Keywords == nil {
		cand.Keywords = []string{}
	}

	if len(raw.FinancialImpact) > 0 && string(raw.FinancialImpact) != "null" {
		var impact float64
		if err := json.Unmarshal(raw.FinancialImpact, &impact); err == nil {
			cand.FinancialImpact = &impact
		}
	}

	return cand, nil
}

// normalizeEventDate converts a model-reported date to YYYY-MM-DD,
// returning the empty string when no layout matches.
func normalizeEventDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format("2006-01-02")
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
