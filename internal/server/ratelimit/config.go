package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/searchfind/screening-engine/internal/config"
)

// EndpointConfig is the limit applied to one route.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per window; zero means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, Limit when zero
}

// FromSettings builds a limiter configuration from the rate_limit section of
// the service configuration.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       toSet(s.Whitelist),
		Blacklist:       toSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits of the screening API.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Bulk screening and posting downloads are the expensive calls.
		{Path: "/screenings/bulk", Method: http.MethodPost, Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/job-postings/analyze", Method: http.MethodPost, Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/documents/parse", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/matches/candidates", Method: http.MethodPost, Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/qualifications/batch", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},

		{Path: "/screenings", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 50},
		{Path: "/criteria", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 50},
		{Path: "/cover-letters/", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 50},
		{Path: "/documents/", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 50},
		{Path: "/job-postings/", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 50},
		{Path: "/resumes/", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 50},
		{Path: "/matches", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 50},
		{Path: "/qualifications", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 50},

		// Reads fall through to the default limit.
		{Path: "/health", Method: http.MethodGet},
		{Path: "/metrics", Method: http.MethodGet},
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			set[item] = true
		}
	}
	return set
}
