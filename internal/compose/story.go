package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lifechronicles/chronicler/internal/models"
	"github.com/lifechronicles/chronicler/internal/providers"
)

// ComposeStory runs the two-pass day-story pipeline: a generation pass
// over the story input, then a verification pass that strips anything not
// grounded in the input. If the verifier's output does not parse, the
// generator's output is used as-is; if neither parses the story fails
// with a StoryGenerationError.
func (c *Composer) ComposeStory(ctx context.Context, input models.StoryInput) (models.GeneratedStory, error) {
	genPrompt := buildStoryPrompt(input)
	genRaw, err := c.provider.GenerateText(ctx, providers.Config{
		Model:       c.model,
		Temperature: c.temperature,
		Prompt:      genPrompt,
	})
	if err != nil {
		return models.GeneratedStory{}, fmt.Errorf("story generation failed: %w", err)
	}
	slog.Info("Story generation pass complete", "lang", input.Lang, "photos", len(input.Photos))

	verifyPrompt := buildVerifierPrompt(input, genRaw)
	verifyRaw, err := c.provider.GenerateText(ctx, providers.Config{
		Model:       c.model,
		Temperature: 0.2,
		Prompt:      verifyPrompt,
	})
	if err != nil {
		return models.GeneratedStory{}, fmt.Errorf("story verification failed: %w", err)
	}
	slog.Info("Story verification pass complete", "lang", input.Lang)

	story, verifyErr := parseStory(verifyRaw)
	if verifyErr == nil {
		return story, nil
	}

	slog.Warn("Verifier output was not valid JSON, falling back to generator output",
		"err", verifyErr, "response", truncate(verifyRaw, 200))

	story, genErr := parseStory(genRaw)
	if genErr != nil {
		slog.Error("Generator output was not valid JSON either",
			"err", genErr, "response", truncate(genRaw, 200))
		return models.GeneratedStory{}, &StoryGenerationError{Err: genErr}
	}
	return story, nil
}

// parseStory validates a model response against the story schema and
// normalizes nil slices so callers can range without nil checks.
func parseStory(raw string) (models.GeneratedStory, error) {
	var story models.GeneratedStory
	if err := json.Unmarshal([]byte(extractJSON(raw)), &story); err != nil {
		return models.GeneratedStory{}, fmt.Errorf("json parse error: %w", err)
	}

	if story.Sections == nil {
		story.Sections = []models.StorySection{}
	}
	for i := range story.Sections {
		if story.Sections[i].Tags == nil {
			story.Sections[i].Tags = []string{}
		}
	}
	return story, nil
}
