package errors

import (
	"strings"
)

// providerPatterns maps substrings of upstream errors to client-safe reasons.
// Order matters: the first match wins.
var providerPatterns = []struct {
	pattern string
	reason  string
}{
	{"resource_exhausted", "quota exceeded"},
	{"resource exhausted", "quota exceeded"},
	{"quota", "quota exceeded"},
	{"rate limit", "rate limit exceeded"},
	{"429", "rate limit exceeded"},
	{"context deadline", "request timed out"},
	{"timeout", "request timed out"},
	{"context canceled", "request cancelled"},
	{"permission", "access denied by provider"},
	{"unauthenticated", "authentication failed with provider"},
	{"unauthorized", "authentication failed with provider"},
	{"invalid api", "authentication failed with provider"},
	{"safety", "response blocked by provider"},
	{"not configured", "provider not configured"},
}

// SanitizeProviderError reduces an upstream error to a short reason that is
// safe to show to clients. Unknown errors become a generic reason.
func SanitizeProviderError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	for _, p := range providerPatterns {
		if strings.Contains(msg, p.pattern) {
			return p.reason
		}
	}
	return "provider temporarily unavailable"
}
