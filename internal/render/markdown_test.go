package render

import (
	"strings"
	"testing"

	"github.com/lifechronicles/chronicler/internal/models"
)

func TestHTML(t *testing.T) {
	got, err := HTML("Plain text with **bold** words.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %q", got)
	}
}

func TestStoryHTML(t *testing.T) {
	story := models.GeneratedStory{
		Title:   "A Day by the Coast",
		IntroMD: "The day opens on the water.",
		Sections: []models.StorySection{
			{MediaID: "m1", SectionHeading: "First Light", BodyMD: "Soft waves roll in."},
			{MediaID: "m2", SectionHeading: "Evening Glow", BodyMD: "Lights come on."},
		},
		OutroMD: "The day closes.",
	}

	got, err := StoryHTML(story)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"First Light", "Evening Glow", "Soft waves", "day closes"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered story missing %q", want)
		}
	}

	// Section headings become h2 elements and order is preserved.
	if !strings.Contains(got, "<h2") {
		t.Errorf("section heading not rendered as heading: %q", got)
	}
	if strings.Index(got, "First Light") > strings.Index(got, "Evening Glow") {
		t.Error("section order not preserved")
	}
}

func TestStoryHTMLEmptySections(t *testing.T) {
	got, err := StoryHTML(models.GeneratedStory{IntroMD: "Just an intro."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Just an intro.") {
		t.Errorf("intro missing: %q", got)
	}
}
