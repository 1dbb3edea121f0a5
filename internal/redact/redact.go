// Package redact scrubs credentials from strings before they are logged.
// AI provider errors often echo request URLs, headers or partial keys back to
// the caller, so every raw provider diagnostic passes through here first.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order. Specific key formats run before the generic
// key=value rule so that the placeholder is not matched twice.
var rules = []rule{
	{
		// Connection strings with inline credentials
		regexp.MustCompile(`(?i)\b(postgres|postgresql|redis|rediss|mysql|mongodb)://[^@\s/]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		// OpenAI secret and project keys
		regexp.MustCompile(`\bsk-(?:proj-)?[A-Za-z0-9_-]{8,}`),
		RedactedKeyPlaceholder,
	},
	{
		// Google API keys
		regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{20,}`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		RedactedJWTPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/=-]{8,}`),
		"Bearer [REDACTED_TOKEN]",
	},
	{
		regexp.MustCompile(`(?i)\b(api[_-]?key|x-goog-api-key|secret|token)(\s*[=:]\s*)['"]?[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
	{
		regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		RedactedStackPlaceholder,
	},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
