package model

// Article is a single news item returned by a search source.
// The core never mutates an Article after retrieval.
type Article struct {
	Title          string  `json:"title"`                // Headline
	URL            string  `json:"url"`                  // Link
	Source         string  `json:"source"`               // Publisher (Reuters/Bloomberg/etc)
	PublishedDate  string  `json:"published_date"`       // Publication date (YYYY-MM-DD)
	Snippet        string  `json:"snippet"`              // Short summary
	FullText       string  `json:"full_text,omitempty"`  // Page text, if enrichment fetched it
	RelevanceScore float64 `json:"relevance_score"`      // 0.0-1.0, provider-dependent
}

// Text returns the richest text available for extraction.
func (a Article) Text() string {
	if a.FullText != "" {
		return a.FullText
	}
	return a.Snippet
}
