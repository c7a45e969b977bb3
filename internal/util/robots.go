package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker gates article fetches on the publisher's robots.txt,
// caching one parsed policy per host.
type RobotsChecker struct {
	mu         sync.RWMutex
	policies   map[string]*robotstxt.RobotsData
	httpClient *http.Client
	userAgent  string
}

// NewRobotsChecker creates a checker identifying itself as userAgent.
func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		policies:   make(map[string]*robotstxt.RobotsData),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// IsAllowed reports whether rawURL may be fetched. An unreachable or
// unparsable robots.txt allows the fetch; a malformed URL does not.
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	policy, err := r.policyFor(ctx, parsed)
	if err != nil {
		return true
	}
	return policy.TestAgent(parsed.Path, r.userAgent)
}

// CrawlDelay returns the publisher's requested delay for our agent, zero
// when none is declared.
func (r *RobotsChecker) CrawlDelay(ctx context.Context, rawURL string) time.Duration {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return 0
	}

	policy, err := r.policyFor(ctx, parsed)
	if err != nil {
		return 0
	}
	if group := policy.FindGroup(r.userAgent); group != nil {
		return group.CrawlDelay
	}
	return 0
}

func (r *RobotsChecker) policyFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	r.mu.RLock()
	policy, ok := r.policies[u.Host]
	r.mu.RUnlock()
	if ok {
		return policy, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// A missing robots.txt permits everything
	if resp.StatusCode == http.StatusNotFound {
		policy, _ = robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)
		r.store(u.Host, policy)
		return policy, nil
	}

	policy, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.store(u.Host, policy)
	return policy, nil
}

func (r *RobotsChecker) store(host string, policy *robotstxt.RobotsData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[host] = policy
}

// Clear drops every cached policy.
func (r *RobotsChecker) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies = make(map[string]*robotstxt.RobotsData)
}
