// Package logging holds helpers that keep secrets and oversized payloads
// out of log fields.
package logging

import (
	"regexp"
	"unicode/utf8"
)

const (
	// MaxStringLogLength bounds translation text copied into log fields.
	MaxStringLogLength = 80
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// key=value passwords in libpq-style connection strings
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// user:pass@host in postgres:// and redis:// URLs
	connStringPattern = regexp.MustCompile(`://[^:/\s]*:[^@\s]+@[^/\s]+`)
)

// SanitizeConnectionString removes credentials from a PostgreSQL or Redis
// connection string before it is logged.
func SanitizeConnectionString(connStr string) string {
	if connStr == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(connStr, "${1}="+RedactedText)
	return connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)
}

// SanitizeError renders err with any embedded credentials removed. Driver
// errors from pgx and go-redis may echo the DSN they failed to dial.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeConnectionString(err.Error())
}

// TruncateString shortens s to at most maxLen bytes without splitting a
// UTF-8 sequence, adding an ellipsis when it cuts.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// TranslationText prepares user-submitted translation text for a log field.
func TranslationText(s string) string {
	return TruncateString(s, MaxStringLogLength)
}
