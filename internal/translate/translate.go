// Package translate converts masked English fragments to Tamil. The
// primary path is a strict LLM translation; a deterministic dictionary
// substitution guarantees the pipeline never fails outright when the
// provider is unavailable.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lifechronicles/chronicler/internal/mask"
	"github.com/lifechronicles/chronicler/internal/providers"
)

const translationPrompt = `SYSTEM:
You are a deterministic translator. Translate English → Tamil.
Rules:
- Do NOT add, remove, or embellish information.
- Keep only proper nouns in English; everything else must be Tamil.
- Leave any masked tokens exactly as-is (format: §§PN0§§, §§PN1§§ …).
- Return plain Tamil text only.

USER:
Translate this to Tamil, preserving masks:
%s`

// Translator converts masked English text to Tamil.
type Translator struct {
	provider providers.Provider
	model    string
	dict     []dictEntry
}

// Option configures a Translator.
type Option func(*Translator)

// WithDictionary prepends extra entries to the fallback dictionary. Extra
// entries are applied before the defaults so callers can override them.
func WithDictionary(entries map[string]string) Option {
	return func(t *Translator) {
		// Map iteration order is random; sort for a stable fallback.
		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sortStrings(keys)

		extra := make([]dictEntry, 0, len(entries))
		for _, k := range keys {
			extra = append(extra, dictEntry{English: k, Tamil: entries[k]})
		}
		t.dict = append(extra, t.dict...)
	}
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// New creates a Translator. A nil provider skips the LLM path entirely and
// always uses the dictionary fallback.
func New(provider providers.Provider, model string, opts ...Option) *Translator {
	t := &Translator{
		provider: provider,
		model:    model,
		dict:     defaultDictionary,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ToTamil translates masked English text to Tamil. Proper nouns must
// already be replaced by placeholders; both translation paths leave every
// placeholder byte-identical. The call never fails: on any provider
// error, or if the provider damages a placeholder, the deterministic
// dictionary fallback is used instead.
func (t *Translator) ToTamil(ctx context.Context, maskedText string) string {
	if maskedText == "" {
		return maskedText
	}

	if t.provider != nil {
		translated, err := t.llmTranslate(ctx, maskedText)
		if err == nil {
			return translated
		}
		slog.Warn("LLM translation unavailable, using dictionary fallback", "err", err)
	}

	return t.fallback(maskedText)
}

func (t *Translator) llmTranslate(ctx context.Context, maskedText string) (string, error) {
	raw, err := t.provider.GenerateText(ctx, providers.Config{
		Model:       t.model,
		Temperature: 0.1,
		Prompt:      fmt.Sprintf(translationPrompt, maskedText),
	})
	if err != nil {
		return "", err
	}

	translated := strings.TrimSpace(raw)

	// Every placeholder present before translation must come back verbatim.
	for _, placeholder := range mask.PlaceholderPattern.FindAllString(maskedText, -1) {
		if !strings.Contains(translated, placeholder) {
			return "", fmt.Errorf("placeholder %s damaged by translation", placeholder)
		}
	}

	return translated, nil
}

// fallback performs dictionary substitution over the fixed table, applying
// space-surrounded forms before bare substrings for each entry. It is
// intentionally lossy; its only guarantees are determinism, non-crashing,
// and placeholder survival (placeholders contain no lowercase letters, so
// no dictionary key can match inside one).
func (t *Translator) fallback(text string) string {
	result := text
	for _, entry := range t.dict {
		result = strings.ReplaceAll(result, " "+entry.English+" ", " "+entry.Tamil+" ")
		result = strings.ReplaceAll(result, entry.English+" ", entry.Tamil+" ")
		result = strings.ReplaceAll(result, " "+entry.English, " "+entry.Tamil)
		result = strings.ReplaceAll(result, entry.English, entry.Tamil)
	}
	return result
}

// Fallback exposes the deterministic dictionary path directly, for callers
// that must never touch the LLM provider (e.g. templated article
// fallbacks).
func Fallback(text string) string {
	return (&Translator{dict: defaultDictionary}).fallback(text)
}
