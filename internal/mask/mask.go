// Package mask protects proper nouns from translation by replacing them
// with placeholder tokens and restoring them afterwards.
package mask

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholders use a sentinel delimiter that cannot occur in natural
// caption or OCR text, e.g. §§PN0§§.
const placeholderFormat = "§§PN%d§§"

// PlaceholderPattern matches any placeholder token emitted by Mask.
var PlaceholderPattern = regexp.MustCompile(`§§PN\d+§§`)

// Detection rules, applied in order. Matches are located in the original
// text so later rules still see spans already masked by earlier ones.
var properNounPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`), // title-case sequences ("New York")
	regexp.MustCompile(`\b[A-Z]{2,}\b`),                      // acronyms ("NASA")
	regexp.MustCompile(`\b\d+[A-Za-z]+\b`),                   // digit-prefixed tokens ("4K")
	regexp.MustCompile(`\b[A-Za-z]+\d+\b`),                   // digit-suffixed tokens ("Windows11")
}

// Map records placeholder → original substitutions in first-occurrence
// order. A Map is request-scoped; Mask constructs a fresh one per call.
type Map struct {
	keys []string
	vals map[string]string
}

// Len returns the number of recorded placeholders.
func (m *Map) Len() int { return len(m.keys) }

// Placeholders returns the placeholder tokens in first-occurrence order.
func (m *Map) Placeholders() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Original returns the text recorded under the given placeholder.
func (m *Map) Original(placeholder string) (string, bool) {
	v, ok := m.vals[placeholder]
	return v, ok
}

// Restore substitutes every placeholder back to its original text. Calling
// it again on already-restored text is a no-op: placeholders, once
// replaced, do not reappear.
func (m *Map) Restore(text string) string {
	result := text
	for _, key := range m.keys {
		result = strings.ReplaceAll(result, key, m.vals[key])
	}
	return result
}

// Mask replaces detected proper-noun spans with unique placeholder tokens
// and returns the masked text plus the substitution map.
func Mask(text string) (string, *Map) {
	m := &Map{vals: make(map[string]string)}
	masked := text
	counter := 0

	for _, pattern := range properNounPatterns {
		for _, span := range pattern.FindAllString(text, -1) {
			// A span already masked by an earlier rule (or an earlier
			// duplicate occurrence) is gone from the working text.
			if !strings.Contains(masked, span) {
				continue
			}
			placeholder := fmt.Sprintf(placeholderFormat, counter)
			m.keys = append(m.keys, placeholder)
			m.vals[placeholder] = span
			masked = strings.ReplaceAll(masked, span, placeholder)
			counter++
		}
	}

	return masked, m
}
