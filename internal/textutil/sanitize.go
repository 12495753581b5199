// Package textutil cleans vision and OCR output before it reaches any
// generation prompt.
package textutil

import (
	"regexp"
	"strings"
)

// Patterns for OCR noise and caption gibberish. Applied in order; each
// match is deleted outright.
var gibberishPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b[a-z]{1,2}\b`),             // isolated one/two letter fragments
	regexp.MustCompile(`(?i)\b[a-z]{15,}\b`),             // very long nonsense runs
	regexp.MustCompile(`(?i)\b[a-z]*[0-9]+[a-z]*\b`),     // alphanumeric-mixed tokens
	regexp.MustCompile(`(?i)\b[a-z]*[!@#$%^&*()]+[a-z]*`), // symbol-contaminated tokens
}

// Sanitize strips gibberish tokens and normalizes whitespace. It is
// idempotent and returns empty input unchanged.
func Sanitize(text string) string {
	if text == "" {
		return text
	}

	cleaned := text
	for _, p := range gibberishPatterns {
		cleaned = p.ReplaceAllString(cleaned, "")
	}

	return strings.Join(strings.Fields(cleaned), " ")
}
