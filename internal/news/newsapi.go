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

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

// NewsAPISource queries the newsapi.org "everything" endpoint.
type NewsAPISource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewNewsAPISource creates a NewsAPI source.
func NewNewsAPISource(apiKey string, timeout time.Duration) (*NewsAPISource, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("NewsAPI key is required")
	}
	return &NewsAPISource{
		apiKey:  apiKey,
		baseURL: newsAPIBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Name returns the provider name.
func (s *NewsAPISource) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Content     string `json:"content"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Search queries NewsAPI with the date range applied server-side.
func (s *NewsAPISource) Search(ctx context.Context, company, startDate, endDate string, keywords []string, maxResults int) ([]model.Article, error) {
	pageSize := maxResults
	if pageSize > 100 {
		pageSize = 100 // API maximum
	}

	params := url.Values{}
	params.Set("q", BuildQuery(company, keywords))
	params.Set("from", startDate)
	params.Set("to", endDate)
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("newsapi search: unexpected status %d: %s", resp.StatusCode, body)
	}

	var parsed newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}

	var articles []model.Article
	for _, item := range parsed.Articles {
		pub, ok := normalizeDate(item.PublishedAt)
		if !ok {
			continue
		}
		snippet := item.Description
		if snippet == "" && item.Content != "" {
			snippet = item.Content
			if len(snippet) > 200 {
				snippet = snippet[:200]
			}
		}
		articles = append(articles, model.Article{
			Title:         item.Title,
			URL:           item.URL,
			Source:        orUnknown(item.Source.Name),
			PublishedDate: pub,
			Snippet:       snippet,
		})
		if len(articles) >= maxResults {
			break
		}
	}
	return articles, nil
}
