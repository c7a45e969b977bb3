package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ecosift/ecosift/internal/cache"
	"github.com/ecosift/ecosift/internal/model"
)

// ErrNoCredentials indicates that no news source has an API key configured.
var ErrNoCredentials = errors.New("no news source credentials configured")

// ErrAllSourcesFailed indicates that every configured source errored.
var ErrAllSourcesFailed = errors.New("all news sources failed")

// Source is a single news-search provider.
type Source interface {
	// Name returns the provider name.
	Name() string

	// Search returns articles mentioning the company within the date range
	// (YYYY-MM-DD bounds, inclusive).
	Search(ctx context.Context, company, startDate, endDate string, keywords []string, maxResults int) ([]model.Article, error)
}

// BuildQuery constructs the provider query:
// "{company}" AND ({kw1} OR {kw2} OR ...)
func BuildQuery(company string, keywords []string) string {
	if len(keywords) == 0 {
		keywords = model.DefaultKeywords
	}
	return fmt.Sprintf("%q AND (%s)", company, strings.Join(keywords, " OR "))
}

// Dedupe removes articles sharing a title or URL with an earlier one, and
// caps the result at maxResults (0 means no cap).
func Dedupe(articles []model.Article, maxResults int) []model.Article {
	seenURLs := make(map[string]bool)
	seenTitles := make(map[string]bool)

	var unique []model.Article
	for _, a := range articles {
		if seenURLs[a.URL] || seenTitles[a.Title] {
			continue
		}
		seenURLs[a.URL] = true
		seenTitles[a.Title] = true
		unique = append(unique, a)

		if maxResults > 0 && len(unique) >= maxResults {
			break
		}
	}
	return unique
}

// Manager searches a preferred source first and falls back to the others.
// Responses are cached so repeated runs over the same disclosure do not
// re-spend provider quota.
type Manager struct {
	sources   []Source
	preferred string
	cache     cache.Cache
	verbose   bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithCache attaches a response cache.
func WithCache(c cache.Cache) ManagerOption {
	return func(m *Manager) { m.cache = c }
}

// WithVerbose enables progress output on stderr.
func WithVerbose(v bool) ManagerOption {
	return func(m *Manager) { m.verbose = v }
}

// NewManager creates a manager over the given sources. The preferred source
// is tried first; the rest serve as fallbacks in order.
func NewManager(preferred string, sources []Source, opts ...ManagerOption) *Manager {
	m := &Manager{sources: sources, preferred: preferred}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Search queries the preferred source, falling back through the others.
// Returns ErrNoCredentials when no sources exist and ErrAllSourcesFailed when
// every source errors or returns nothing usable.
func (m *Manager) Search(ctx context.Context, company, startDate, endDate string, keywords []string, maxResults int) ([]model.Article, error) {
	if len(m.sources) == 0 {
		return nil, ErrNoCredentials
	}

	query := BuildQuery(company, keywords)
	if m.cache != nil {
		if data, found := m.cache.Get(cache.SearchKey("any", query, startDate, endDate)); found {
			var cached []model.Article
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var lastErr error
	for _, src := range m.ordered() {
		articles, err := src.Search(ctx, company, startDate, endDate, keywords, maxResults)
		if err != nil {
			lastErr = err
			if m.verbose {
				fmt.Fprintf(os.Stderr, "news source %s failed: %v\n", src.Name(), err)
			}
			continue
		}

		articles = Dedupe(articles, maxResults)
		m.store(query, startDate, endDate, articles)
		return articles, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllSourcesFailed, lastErr)
	}
	return nil, ErrAllSourcesFailed
}

// ordered returns sources with the preferred one first.
func (m *Manager) ordered() []Source {
	out := make([]Source, 0, len(m.sources))
	for _, s := range m.sources {
		if s.Name() == m.preferred {
			out = append(out, s)
		}
	}
	for _, s := range m.sources {
		if s.Name() != m.preferred {
			out = append(out, s)
		}
	}
	return out
}

func (m *Manager) store(query, startDate, endDate string, articles []model.Article) {
	if m.cache == nil {
		return
	}
	if data, err := json.Marshal(articles); err == nil {
		_ = m.cache.Set(cache.SearchKey("any", query, startDate, endDate), data, 0)
	}
}
