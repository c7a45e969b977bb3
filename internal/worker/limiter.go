package worker

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter rate-limits outbound requests per host, so fetching fifty
// articles from three publishers hammers none of them.
type Limiter struct {
	mu       sync.RWMutex
	perHost  map[string]*rate.Limiter
	rateCap  rate.Limit
	burstCap int
}

// NewLimiter creates a limiter applying requestsPerSecond/burst to each
// host independently.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		perHost:  make(map[string]*rate.Limiter),
		rateCap:  rate.Limit(requestsPerSecond),
		burstCap: burst,
	}
}

// Wait blocks until the host of rawURL has a token, or ctx ends.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := hostOf(rawURL)
	if err != nil {
		return err
	}
	return l.forHost(host).Wait(ctx)
}

// Allow reports whether a request to rawURL may proceed right now.
func (l *Limiter) Allow(rawURL string) bool {
	host, err := hostOf(rawURL)
	if err != nil {
		return false
	}
	return l.forHost(host).Allow()
}

// SetHostRate overrides the limit for one host.
func (l *Limiter) SetHostRate(host string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.burstCap
	}
	l.perHost[host] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (l *Limiter) forHost(host string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.perHost[host]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.perHost[host]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.rateCap, l.burstCap)
	l.perHost[host] = lim
	return lim
}

func hostOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("no host in %q", rawURL)
	}
	return parsed.Host, nil
}
