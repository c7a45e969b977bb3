package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecosift/ecosift/internal/model"
	"github.com/ecosift/ecosift/internal/util"
	"github.com/ecosift/ecosift/internal/worker"
	"golang.org/x/net/html"
)

// TextFetcher enriches article snippets with the visible text of the source
// page. Fetching is optional; failures leave the snippet untouched. Robots
// exclusions are honored and requests are rate limited per host.
type TextFetcher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	userAgent  string
	maxBytes   int64
}

// NewTextFetcher creates a fetcher with the given timeout and user agent.
func NewTextFetcher(timeout time.Duration, userAgent string) *TextFetcher {
	return &TextFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(userAgent, timeout),
		limiter:   worker.NewLimiter(2, 2),
		userAgent: userAgent,
		maxBytes:  2_000_000,
	}
}

// Enrich fetches the page text of each article that allows it. Articles are
// updated in place in the returned slice; the input is not modified.
func (f *TextFetcher) Enrich(ctx context.Context, articles []model.Article) []model.Article {
	out := make([]model.Article, len(articles))
	copy(out, articles)

	for i := range out {
		text, err := f.Fetch(ctx, out[i].URL)
		if err != nil {
			continue // snippet stays authoritative
		}
		out[i].FullText = text
	}
	return out
}

// Fetch retrieves the visible text of a single page.
func (f *TextFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if !f.robots.IsAllowed(ctx, rawURL) {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return VisibleText(string(body)), nil
}

// VisibleText extracts text nodes from an HTML document, skipping
// script/style/nav chrome.
func VisibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}
