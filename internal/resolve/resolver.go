package resolve

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Resolver matches a free-text company name against candidate names from
// noisy sources. Exact case-insensitive containment wins over approximate
// matching; ties in the approximate pass are broken by candidate order.
type Resolver struct {
	cutoff float64
	metric *metrics.SorensenDice
}

// NewResolver creates a resolver with the given similarity cutoff (0-1).
func NewResolver(cutoff float64) *Resolver {
	if cutoff <= 0 || cutoff > 1 {
		cutoff = 0.7
	}
	m := metrics.NewSorensenDice()
	m.CaseSensitive = false
	return &Resolver{cutoff: cutoff, metric: m}
}

// Resolve returns the best-matching candidate for name, or false if none
// qualifies. It never errors on an empty candidate set.
func (r *Resolver) Resolve(name string, candidates []string) (string, bool) {
	needle := normalize(name)
	if needle == "" {
		return "", false
	}

	// Exact containment pass: either string contains the other.
	for _, cand := range candidates {
		c := normalize(cand)
		if c == "" {
			continue
		}
		if strings.Contains(c, needle) || strings.Contains(needle, c) {
			return cand, true
		}
	}

	// Approximate pass: single best match above the cutoff.
	best := ""
	bestScore := 0.0
	for _, cand := range candidates {
		c := normalize(cand)
		if c == "" {
			continue
		}
		score := strutil.Similarity(needle, c, r.metric)
		if score >= r.cutoff && score > bestScore {
			best = cand
			bestScore = score
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}

// Matches reports whether name resolves against the single candidate.
func (r *Resolver) Matches(name, candidate string) bool {
	_, ok := r.Resolve(name, []string{candidate})
	return ok
}

// normalize lowercases and strips common corporate suffixes so that
// "Acme Corp." and "acme corporation" compare as the same entity.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, ".,")
	for _, suffix := range []string{
		" incorporated", " corporation", " company",
		" inc", " corp", " ltd", " llc", " plc", " co",
	} {
		s = strings.TrimSuffix(s, suffix)
	}
	return strings.TrimSpace(s)
}
