package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lifechronicles/chronicler/internal/models"
)

const validStoryJSON = `{
  "title": "A Day by the Coast",
  "subtitle": "From first light to evening calm",
  "intro_md": "The day opens on the water and ends above the city.",
  "sections": [
    {
      "media_id": "m-morning",
      "section_heading": "First Light",
      "body_md": "Soft waves under a pale sky.",
      "image_caption": "A beach at sunrise.",
      "alt_text": "Calm sea and sand in early light.",
      "tags": ["beach", "sunrise"]
    },
    {
      "media_id": "m-afternoon",
      "section_heading": "Midday Streets",
      "body_md": "Busy lanes and bright signs.",
      "image_caption": "A street at midday.",
      "alt_text": "A city street with shops and people.",
      "tags": ["street", "city"]
    },
    {
      "media_id": "m-evening",
      "section_heading": "Evening Glow",
      "body_md": "Lights coming on across the skyline.",
      "image_caption": "A skyline at dusk.",
      "alt_text": "City buildings against an orange sky.",
      "tags": ["skyline", "dusk"]
    }
  ],
  "outro_md": "The light fades and the day closes."
}`

func sampleStoryInput() models.StoryInput {
	return models.StoryInput{
		Lang:          "en",
		Tone:          "reportage",
		Length:        "medium",
		StoryDate:     "2024-03-10",
		DaypartsOrder: []string{"morning", "afternoon", "evening"},
		Photos: []models.StoryPhoto{
			{MediaID: "m-morning", Daypart: "morning", LocalTime: "07:00", Caption: "waves at sunrise"},
			{MediaID: "m-afternoon", Daypart: "afternoon", LocalTime: "13:30", Caption: "a busy street"},
			{MediaID: "m-evening", Daypart: "evening", LocalTime: "19:15", Caption: "skyline at dusk"},
		},
	}
}

func TestComposeStoryTwoPass(t *testing.T) {
	provider := &scriptedProvider{responses: []string{validStoryJSON, validStoryJSON}}
	composer := New(provider, "test-model")

	story, err := composer.ComposeStory(context.Background(), sampleStoryInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2 (generate + verify)", provider.calls)
	}
	if len(story.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(story.Sections))
	}

	wantIDs := []string{"m-morning", "m-afternoon", "m-evening"}
	for i, id := range wantIDs {
		if story.Sections[i].MediaID != id {
			t.Errorf("section %d media_id = %s, want %s", i, story.Sections[i].MediaID, id)
		}
	}
}

func TestComposeStoryVerifierPromptContainsGeneratorOutput(t *testing.T) {
	provider := &scriptedProvider{responses: []string{validStoryJSON, validStoryJSON}}
	composer := New(provider, "test-model")

	if _, err := composer.ComposeStory(context.Background(), sampleStoryInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.prompts) != 2 {
		t.Fatalf("prompts recorded = %d, want 2", len(provider.prompts))
	}
	if !strings.Contains(provider.prompts[1], "MODEL_OUTPUT") {
		t.Errorf("second prompt is not the verifier prompt")
	}
	if !strings.Contains(provider.prompts[1], "A Day by the Coast") {
		t.Errorf("verifier prompt does not embed generator output")
	}
}

func TestComposeStoryFallsBackToGeneratorOutput(t *testing.T) {
	// Verifier returns prose instead of JSON; the generator output is used.
	provider := &scriptedProvider{responses: []string{validStoryJSON, "not json"}}
	composer := New(provider, "test-model")

	story, err := composer.ComposeStory(context.Background(), sampleStoryInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if story.Title != "A Day by the Coast" {
		t.Errorf("Title = %q", story.Title)
	}
}

func TestComposeStoryBothParsesFail(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"garbage one", "garbage two"}}
	composer := New(provider, "test-model")

	_, err := composer.ComposeStory(context.Background(), sampleStoryInput())

	var storyErr *StoryGenerationError
	if !errors.As(err, &storyErr) {
		t.Fatalf("expected StoryGenerationError, got %v", err)
	}
}

func TestComposeStoryProviderErrorIsTerminal(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("upstream unavailable")}
	composer := New(provider, "test-model")

	_, err := composer.ComposeStory(context.Background(), sampleStoryInput())
	if err == nil {
		t.Fatal("expected error")
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
}

func TestComposeStoryNormalizesNilSlices(t *testing.T) {
	minimal := `{"title": "Short Day", "sections": null}`
	provider := &scriptedProvider{responses: []string{minimal, minimal}}
	composer := New(provider, "test-model")

	story, err := composer.ComposeStory(context.Background(), sampleStoryInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if story.Sections == nil {
		t.Error("Sections should be non-nil after normalization")
	}
}

func TestBuildStoryPromptEmbedsInput(t *testing.T) {
	prompt := buildStoryPrompt(sampleStoryInput())

	if !strings.Contains(prompt, "dayparts_order") {
		t.Errorf("prompt missing story input JSON")
	}
	if !strings.Contains(prompt, "m-afternoon") {
		t.Errorf("prompt missing photo entries")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounded by prose", `Sure! {"a": 1} Hope that helps.`, `{"a": 1}`},
		{"no object", "no json here", "no json here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
