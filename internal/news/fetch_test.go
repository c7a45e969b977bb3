package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ecosift/ecosift/internal/model"
)

func TestVisibleText(t *testing.T) {
	page := `<html><head><script>var x = 1;</script><style>.a{}</style></head>
	<body><nav>menu</nav><h1>Spill report</h1><p>Cleanup is ongoing.</p>
	<footer>copyright</footer></body></html>`

	text := VisibleText(page)
	if !strings.Contains(text, "Spill report") || !strings.Contains(text, "Cleanup is ongoing.") {
		t.Errorf("expected body text, got %q", text)
	}
	for _, skipped := range []string{"var x", ".a{}", "menu", "copyright"} {
		if strings.Contains(text, skipped) {
			t.Errorf("expected %q to be stripped, got %q", skipped, text)
		}
	}
}

func TestTextFetcherEnrich(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><body><p>Full story text.</p></body></html>`))
	}))
	defer server.Close()

	f := NewTextFetcher(5*time.Second, "Ecosift/0.1")
	articles := []model.Article{
		{Title: "ok", URL: server.URL + "/story", Snippet: "short"},
		{Title: "bad", URL: "http://127.0.0.1:1/unreachable", Snippet: "kept"},
	}

	out := f.Enrich(context.Background(), articles)
	if out[0].FullText != "Full story text." {
		t.Errorf("FullText = %q", out[0].FullText)
	}
	if out[1].FullText != "" || out[1].Snippet != "kept" {
		t.Errorf("failed fetch should leave article untouched: %+v", out[1])
	}
	if articles[0].FullText != "" {
		t.Error("input slice must not be modified")
	}
}

func TestTextFetcherRobotsDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		_, _ = w.Write([]byte(`<html><body>secret</body></html>`))
	}))
	defer server.Close()

	f := NewTextFetcher(5*time.Second, "Ecosift/0.1")
	if _, err := f.Fetch(context.Background(), server.URL+"/private/page"); err == nil {
		t.Error("expected robots.txt rejection")
	}
}
