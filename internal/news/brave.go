package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ecosift/ecosift/internal/model"
)

const braveBaseURL = "https://api.search.brave.com/res/v1/news/search"

// BraveSource queries the Brave Search news API.
type BraveSource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewBraveSource creates a Brave news source.
func NewBraveSource(apiKey string, timeout time.Duration) (*BraveSource, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("brave API key is required")
	}
	return &BraveSource{
		apiKey:  apiKey,
		baseURL: braveBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Name returns the provider name.
func (s *BraveSource) Name() string { return "brave" }

type braveResponse struct {
	News []struct {
		Title       string  `json:"title"`
		URL         string  `json:"url"`
		Source      string  `json:"source"`
		Description string  `json:"description"`
		Published   string  `json:"published"`
		Relevance   float64 `json:"relevance_score"`
	} `json:"news"`
}

// Search queries Brave and filters results to the requested date range.
func (s *BraveSource) Search(ctx context.Context, company, startDate, endDate string, keywords []string, maxResults int) ([]model.Article, error) {
	params := url.Values{}
	params.Set("q", BuildQuery(company, keywords))
	params.Set("count", strconv.Itoa(maxResults))
	params.Set("freshness", "pd365") // past year, filtered further below
	params.Set("country", "us")
	params.Set("search_lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Subscription-Token", s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("brave search: unexpected status %d: %s", resp.StatusCode, body)
	}

	var parsed braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode brave response: %w", err)
	}

	var articles []model.Article
	for _, item := range parsed.News {
		pub, ok := normalizeDate(item.Published)
		if !ok || !withinRange(pub, startDate, endDate) {
			continue
		}
		articles = append(articles, model.Article{
			Title:          item.Title,
			URL:            item.URL,
			Source:         orUnknown(item.Source),
			PublishedDate:  pub,
			Snippet:        item.Description,
			RelevanceScore: item.Relevance,
		})
	}
	return articles, nil
}

// normalizeDate parses a provider timestamp into YYYY-MM-DD.
func normalizeDate(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// withinRange reports whether the ISO date falls inside [start, end].
// ISO dates compare correctly as strings.
func withinRange(date, start, end string) bool {
	return date >= start && date <= end
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
