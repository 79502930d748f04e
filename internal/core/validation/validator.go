// Package validation sanitizes and structurally validates free-form identity
// fields before any other component sees them. Every function is a pure
// transform with no I/O or shared state, safe for unlimited concurrent calls.
package validation

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

const (
	maxUsernameLength = 50
	maxEmailLength    = 100
	minPasswordLength = 8
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,50}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	tagPattern      = regexp.MustCompile(`<.*?>`)
)

// Result is the immutable outcome of a single validation call.
// SanitizedValue is set only when valid; ErrorMessage only when invalid.
type Result struct {
	IsValid        bool
	SanitizedValue string
	ErrorMessage   string
}

func invalid(msg string) Result {
	return Result{ErrorMessage: msg}
}

// ValidateUsername trims, HTML-encodes, then length- and pattern-checks a
// username. Encoding runs before the checks so that entity expansion
// ("<" → "&lt;") counts against the length limit, and any input containing
// special characters fails the pattern check outright. A side effect is that
// Unicode and diacritic usernames are rejected as well; this is a known,
// deliberate strictness, not a bug to fix here.
func ValidateUsername(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return invalid("Username cannot be empty")
	}

	sanitized := html.EscapeString(trimmed)

	if len(sanitized) > maxUsernameLength {
		return invalid("Username must not exceed 50 characters")
	}
	if !usernamePattern.MatchString(sanitized) {
		return invalid("Username can only contain letters, numbers, underscores, and hyphens")
	}

	return Result{IsValid: true, SanitizedValue: sanitized}
}

// ValidateEmail lower-cases, trims, and HTML-encodes an email address, then
// checks length and a local@domain.tld pattern with a 2+ character TLD.
func ValidateEmail(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return invalid("Email cannot be empty")
	}

	sanitized := html.EscapeString(strings.ToLower(trimmed))

	if len(sanitized) > maxEmailLength {
		return invalid("Email must not exceed 100 characters")
	}
	if !emailPattern.MatchString(sanitized) {
		return invalid("Invalid email format")
	}

	return Result{IsValid: true, SanitizedValue: sanitized}
}

// dangerousFragments are removed in order by StripDangerous. The list targets
// common SQL injection and XSS payloads.
var dangerousFragments = []string{
	"'", `"`, ";", "--", "/*", "*/", "xp_", "<script>", "</script>",
}

// StripDangerous removes a fixed denylist of substrings and any tag-like
// <...> span from free-text input such as search terms. It is a best-effort
// filter; storage access stays parameterized regardless. Fields with a strict
// shape (username, email) go through ValidateUsername/ValidateEmail instead.
func StripDangerous(raw string) string {
	if raw == "" {
		return raw
	}

	cleaned := raw
	for _, frag := range dangerousFragments {
		cleaned = strings.ReplaceAll(cleaned, frag, "")
	}

	return tagPattern.ReplaceAllString(cleaned, "")
}

// ValidatePassword enforces the account password policy: at least 8
// characters including a digit, an upper-case letter, a lower-case letter,
// and a non-alphanumeric character. The plaintext never appears in the
// Result; only a pass/fail and the violated rule.
func ValidatePassword(raw string) Result {
	if raw == "" {
		return invalid("Password cannot be empty")
	}
	if len(raw) < minPasswordLength {
		return invalid("Password must be at least 8 characters")
	}

	var hasDigit, hasUpper, hasLower, hasSymbol bool
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		default:
			hasSymbol = true
		}
	}

	switch {
	case !hasDigit:
		return invalid("Password must contain a digit")
	case !hasUpper:
		return invalid("Password must contain an upper-case letter")
	case !hasLower:
		return invalid("Password must contain a lower-case letter")
	case !hasSymbol:
		return invalid("Password must contain a non-alphanumeric character")
	}

	return Result{IsValid: true, SanitizedValue: raw}
}
