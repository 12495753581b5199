// Package compose turns photo analyses into articles and day stories via
// an LLM provider, enforcing grounding, schema conformance, and
// output-language purity.
package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lifechronicles/chronicler/internal/mask"
	"github.com/lifechronicles/chronicler/internal/models"
	"github.com/lifechronicles/chronicler/internal/providers"
	"github.com/lifechronicles/chronicler/internal/textutil"
	"github.com/lifechronicles/chronicler/internal/translate"
)

// maxAttempts bounds the language-purity retry loop: one initial
// generation plus two retries.
const maxAttempts = 3

// defaultMarkerWords flag English content leaking into a non-English
// target. Checked as case-insensitive substrings of every output field.
// The tail of the list is tuned to recurring caption vocabulary rather
// than any principled rule, which is why it is overridable.
var defaultMarkerWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
	"for", "of", "with", "by", "as", "like", "against", "fading",
	"blush", "day", "whispers", "across", "horizon", "cityscape",
	"glimmers", "jeweled", "tapestry",
}

// DefaultMarkerWords returns a copy of the built-in marker-word list.
func DefaultMarkerWords() []string {
	return append([]string(nil), defaultMarkerWords...)
}

// Composer generates articles and stories through a text-generation
// provider. It holds no per-request state; a single Composer is safe for
// concurrent use.
type Composer struct {
	provider    providers.Provider
	model       string
	temperature float64
	translator  *translate.Translator
	markers     []string
}

// Option configures a Composer.
type Option func(*Composer)

// WithTranslator sets the translator used to pre-translate non-English
// inputs. Without one, inputs are only sanitized.
func WithTranslator(t *translate.Translator) Option {
	return func(c *Composer) { c.translator = t }
}

// WithMarkerWords replaces the English marker-word list used for the
// language-purity check.
func WithMarkerWords(words []string) Option {
	return func(c *Composer) {
		if len(words) > 0 {
			c.markers = words
		}
	}
}

// WithTemperature overrides the generation temperature.
func WithTemperature(temp float64) Option {
	return func(c *Composer) { c.temperature = temp }
}

// New creates a Composer backed by the given provider and model.
func New(provider providers.Provider, model string, opts ...Option) *Composer {
	c := &Composer{
		provider:    provider,
		model:       model,
		temperature: 0.7,
		markers:     defaultMarkerWords,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ComposeArticle builds a single-photo article. The analysis is sanitized
// (and, for non-English targets, translated with proper nouns protected)
// before prompting. Malformed JSON from the provider degrades to a
// deterministic templated article; persistent language mixing surfaces as
// a LanguageMixingError once all retries are spent.
func (c *Composer) ComposeArticle(ctx context.Context, analysis models.PhotoAnalysis, exif models.ExifContext, lang string) (models.GeneratedArticle, error) {
	sanitized := c.sanitizeAnalysis(ctx, analysis, lang)
	prompt := buildArticlePrompt(sanitized, exif, lang)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := c.provider.GenerateText(ctx, providers.Config{
			Model:       c.model,
			Temperature: c.temperature,
			Prompt:      prompt,
		})
		if err != nil {
			return models.GeneratedArticle{}, fmt.Errorf("article generation failed: %w", err)
		}

		article, parseErr := parseArticle(raw, lang)
		if parseErr != nil {
			slog.Warn("Article response was not valid JSON, using templated fallback",
				"err", parseErr, "response", truncate(raw, 200))
			return fallbackArticle(sanitized, lang), nil
		}

		if lang == "en" {
			return article, nil
		}

		field, mixed := c.findMarkerWord(article)
		if !mixed {
			return article, nil
		}

		slog.Warn("Generated article contains English content",
			"field", field, "attempt", attempt, "lang", lang)
		if attempt == maxAttempts {
			return models.GeneratedArticle{}, &LanguageMixingError{Field: field, Attempts: attempt}
		}
	}

	// Unreachable: the loop always returns.
	return models.GeneratedArticle{}, &LanguageMixingError{Field: "unknown", Attempts: maxAttempts}
}

// sanitizeAnalysis cleans caption, OCR text, and object names, and for
// Tamil targets runs each through mask → translate → restore so the
// prompt itself is already in the target language.
func (c *Composer) sanitizeAnalysis(ctx context.Context, analysis models.PhotoAnalysis, lang string) models.PhotoAnalysis {
	out := analysis

	out.Caption = textutil.Sanitize(analysis.Caption)
	out.OCRText = textutil.Sanitize(analysis.OCRText)

	out.Objects = make([]models.Item, len(analysis.Objects))
	copy(out.Objects, analysis.Objects)
	for i := range out.Objects {
		out.Objects[i].Name = textutil.Sanitize(out.Objects[i].Name)
	}

	if lang != "ta" {
		return out
	}

	out.Caption = c.toTamil(ctx, out.Caption)
	if out.Caption == "" {
		out.Caption = "காட்சி விளக்கம்"
	}
	out.OCRText = c.toTamil(ctx, out.OCRText)
	for i := range out.Objects {
		out.Objects[i].Name = c.toTamil(ctx, out.Objects[i].Name)
	}

	return out
}

// toTamil applies the mask → translate → restore round trip that keeps
// proper nouns out of the translator's hands.
func (c *Composer) toTamil(ctx context.Context, text string) string {
	if text == "" {
		return text
	}

	masked, tokens := mask.Mask(text)

	var translated string
	if c.translator != nil {
		translated = c.translator.ToTamil(ctx, masked)
	} else {
		translated = translate.Fallback(masked)
	}

	return strings.TrimSpace(tokens.Restore(translated))
}

// parseArticle validates the provider's response against the article
// schema. Missing fields are repaired with neutral defaults in the target
// language; only a JSON parse failure is reported as an error.
func parseArticle(raw, lang string) (models.GeneratedArticle, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(extractJSON(raw)), &fields); err != nil {
		return models.GeneratedArticle{}, fmt.Errorf("json parse error: %w", err)
	}

	article := models.GeneratedArticle{
		Title:        repairString(fields, "title", ""),
		Subtitle:     repairString(fields, "subtitle", ""),
		Body:         repairString(fields, "body", unavailableBody(lang)),
		ImageCaption: repairString(fields, "image_caption", ""),
		AltText:      repairString(fields, "alt_text", ""),
		Tags:         repairTags(fields),
	}

	return article, nil
}

func repairString(fields map[string]json.RawMessage, key, fallback string) string {
	raw, ok := fields[key]
	if !ok {
		slog.Warn("Missing required field in generated article", "field", key)
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.Warn("Malformed field in generated article", "field", key, "err", err)
		return fallback
	}
	return s
}

func repairTags(fields map[string]json.RawMessage) []string {
	raw, ok := fields["tags"]
	if !ok {
		slog.Warn("Missing required field in generated article", "field", "tags")
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		slog.Warn("Malformed tags in generated article", "err", err)
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}

func unavailableBody(lang string) string {
	if lang == "ta" {
		return "உள்ளடக்கம் கிடைக்கவில்லை."
	}
	return "Content unavailable."
}

// findMarkerWord scans every output field for English marker words and
// returns the first offending field name.
func (c *Composer) findMarkerWord(article models.GeneratedArticle) (string, bool) {
	fields := []struct {
		name  string
		value string
	}{
		{"title", article.Title},
		{"subtitle", article.Subtitle},
		{"body", article.Body},
		{"image_caption", article.ImageCaption},
		{"alt_text", article.AltText},
	}

	for _, f := range fields {
		if c.containsMarker(f.value) {
			return f.name, true
		}
	}

	for _, tag := range article.Tags {
		if c.containsMarker(tag) {
			return "tags", true
		}
	}

	return "", false
}

func (c *Composer) containsMarker(value string) bool {
	lower := strings.ToLower(value)
	for _, word := range c.markers {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// fallbackArticle is the deterministic substitute used when the
// provider returns unparseable output: a templated article built
// directly from the sanitized caption, so the endpoint always returns
// something displayable.
func fallbackArticle(analysis models.PhotoAnalysis, lang string) models.GeneratedArticle {
	if lang == "ta" {
		caption := analysis.Caption
		if caption == "" {
			caption = "வர்ணிக்கப்பட்ட காட்சி"
		} else if !containsTamil(caption) {
			caption = translate.Fallback(caption)
		}

		return models.GeneratedArticle{
			Title:    "பட பகுப்பாய்வு கட்டுரை",
			Subtitle: "படத்தின் காட்சி விளக்கத்தின் அடிப்படையில்",
			Body: fmt.Sprintf(`இந்த படத்தில் %s காணப்படுகிறது. படத்தின் காட்சி மற்றும் சூழ்நிலை கவனிக்கப்படுகிறது. இது ஒரு காட்சியை வழங்குகிறது.

படத்தின் காட்சி அமைப்பு காணப்படுகிறது. ஒவ்வொரு கூறும் காட்சியில் உள்ளது. வெளிச்சம், நிழல் மற்றும் வடிவங்கள் காட்சியில் காணப்படுகின்றன.

இந்த படம் ஒரு காட்சியை காட்டுகிறது. இது காட்சியை கைப்பற்றுகிறது.`, caption),
			ImageCaption: caption,
			AltText:      caption,
			Tags:         []string{"காட்சி", "படம்", "வர்ணனை"},
		}
	}

	caption := analysis.Caption
	if caption == "" {
		caption = "a visual scene"
	}

	return models.GeneratedArticle{
		Title:    "Image Analysis Article",
		Subtitle: "Based on visual description",
		Body: fmt.Sprintf(`This image shows %s. The visual elements and atmosphere are observed in the image. This provides a view of the scene.

The visual composition is present in the image. Each element is visible in the scene. Light, shadow, and forms are observed in the scene.

This image displays a scene. It captures the scene.`, caption),
		ImageCaption: caption,
		AltText:      caption,
		Tags:         []string{"visual", "image", "description"},
	}
}

// containsTamil reports whether the string has any character in the Tamil
// Unicode block.
func containsTamil(s string) bool {
	for _, r := range s {
		if r >= 0x0B80 && r <= 0x0BFF {
			return true
		}
	}
	return false
}
