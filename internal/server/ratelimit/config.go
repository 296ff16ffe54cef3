package ratelimit

import (
	"net/http"
	"time"
)

// Rule limits one endpoint. A Path ending in "/" matches by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration // refill period for Limit tokens
	Burst  int           // defaults to Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// Default applies to requests no rule matches.
	Default Rule
	Rules   []Rule
	// IdleTTL drops per-client state unused for this long.
	IdleTTL   time.Duration
	Whitelist map[string]bool
}

// DefaultRules returns the rules for the matching API. Ranking endpoints
// score whole batches and get batchLimit per window; health checks are
// unlimited.
func DefaultRules(batchLimit int, window time.Duration) []Rule {
	return []Rule{
		{Path: "/health", Method: http.MethodGet, Limit: 0},
		{Path: "/match/rank-targets", Method: http.MethodPost, Limit: batchLimit, Window: window},
		{Path: "/match/rank-candidates", Method: http.MethodPost, Limit: batchLimit, Window: window},
		{Path: "/me/matches", Method: http.MethodGet, Limit: batchLimit, Window: window},
		{Path: "/projects/", Method: http.MethodGet, Limit: batchLimit, Window: window},
	}
}

// MatchRule returns the rule for a request path and method, preferring an
// exact path over a prefix, or nil when none applies.
func MatchRule(path, method string, rules []Rule) *Rule {
	for i := range rules {
		if rules[i].Path == path && rules[i].Method == method {
			return &rules[i]
		}
	}
	for i := range rules {
		r := &rules[i]
		if r.Method == method && len(r.Path) > 1 && r.Path[len(r.Path)-1] == '/' &&
			len(path) >= len(r.Path) && path[:len(r.Path)] == r.Path {
			return r
		}
	}
	return nil
}
