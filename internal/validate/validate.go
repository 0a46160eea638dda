// Package validate holds the pure input predicates used before any request
// leaves the client. They mirror the server's own checks so an invalid query
// or key never reaches the wire.
package validate

import "strings"

const (
	// MinAPIKeyLength is the minimum accepted API key length
	MinAPIKeyLength = 10
	// MinQueryLength is the minimum trimmed query length
	MinQueryLength = 2
)

// harmfulPatterns are substrings the server rejects outright; checked
// client-side to fail fast.
var harmfulPatterns = []string{
	"<script",
	"javascript:",
	"data:",
	"vbscript:",
}

// APIKey reports whether key is a plausible API key (non-empty, at least
// MinAPIKeyLength characters).
func APIKey(key string) bool {
	return len(key) >= MinAPIKeyLength
}

// Query reports whether query is acceptable: at least MinQueryLength
// characters after trimming and free of injection patterns.
func Query(query string) bool {
	if len(strings.TrimSpace(query)) < MinQueryLength {
		return false
	}
	lower := strings.ToLower(query)
	for _, pattern := range harmfulPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}

// Format reports whether format is one of the supported extraction formats.
func Format(format string) bool {
	return format == "audio" || format == "video"
}
