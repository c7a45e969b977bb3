package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds a per-scheme proxy selector for an http.Transport.
// Explicit proxy URLs take precedence; without them the environment
// (HTTP_PROXY, HTTPS_PROXY, NO_PROXY) decides, as usual.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	skip := hostSet(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if _, excluded := skip[req.URL.Hostname()]; excluded {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func hostSet(csv string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, h := range strings.Split(csv, ",") {
		if h = strings.TrimSpace(h); h != "" {
			set[h] = struct{}{}
		}
	}
	return set
}
