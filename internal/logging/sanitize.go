package logging

import (
	"regexp"
)

// RedactedText is the replacement text for sensitive data.
const RedactedText = "[REDACTED]"

var (
	// Matches: password=xxx, pwd=xxx, pass=xxx (until next delimiter)
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Matches the user:pass@ part of a URI.
	credentialsPattern = regexp.MustCompile(`://([^:/@\s]+):[^@\s]+@`)
)

// SanitizeURI removes passwords from a database URI before it is logged.
func SanitizeURI(uri string) string {
	if uri == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(uri, "${1}="+RedactedText)
	return credentialsPattern.ReplaceAllString(sanitized, "://${1}:"+RedactedText+"@")
}

// SanitizeError sanitizes error messages that might echo a connection string.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeURI(err.Error())
}

// TruncateQuery shortens a SQL statement for diagnostics.
func TruncateQuery(query string, maxLen int) string {
	if len(query) <= maxLen {
		return query
	}
	return query[:maxLen] + "..."
}
