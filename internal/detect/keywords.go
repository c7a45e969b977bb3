package detect

import "strings"

// stopwords excluded from token-overlap comparisons.
var stopwords = map[string]bool{
	"with": true, "from": true, "this": true, "that": true, "were": true,
	"have": true, "been": true, "will": true, "into": true, "over": true,
	"their": true, "about": true, "against": true, "after": true,
	"company": true, "companies": true,
}

// tokenize lowercases the text and splits it into distinct tokens of four or
// more characters, dropping stopwords. Short tokens overlap too easily to
// carry signal.
func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if len(field) >= 4 && !stopwords[field] {
			tokens[field] = true
		}
	}
	return tokens
}

// tokensOverlap reports whether the two texts share at least one significant
// token.
func tokensOverlap(a, b string) bool {
	ta := tokenize(a)
	if len(ta) == 0 {
		return false
	}
	for token := range tokenize(b) {
		if ta[token] {
			return true
		}
	}
	return false
}

// containsAnyPhrase reports whether text contains any of the phrases,
// case-insensitive, and returns the first matching phrase.
func containsAnyPhrase(text string, phrases []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, phrase := range phrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return phrase, true
		}
	}
	return "", false
}

// eventText joins an event's keywords and description for overlap checks.
func eventText(keywords []string, description string) string {
	if len(keywords) == 0 {
		return description
	}
	return strings.Join(keywords, " ") + " " + description
}
