package ratelimit

import "strings"

// MatchEndpoint resolves the tier for a request. Exact path+method wins
// over prefix entries (paths ending in "/", covering per-session routes
// like "/sessions/{id}/generate"); no match means the default budget.
// The health check is never limited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		c := &configs[i]
		if c.Path == path && c.Method == method {
			return c
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
