// Package quality scores generated stories against the inputs they were
// composed from: structural conformance, language purity, and place-gate
// compliance.
package quality

import (
	"strings"

	"github.com/lifechronicles/chronicler/internal/models"
)

// CheckResult is one named check with its outcome.
type CheckResult struct {
	Name    string  `yaml:"name"`
	Score   float64 `yaml:"score"`
	Details string  `yaml:"details,omitempty"`
}

// Report aggregates all checks for one story.
type Report struct {
	OverallScore float64       `yaml:"overallscore"`
	Checks       []CheckResult `yaml:"checks"`
}

// Evaluate runs every check of a generated story against its input and
// returns the aggregated report. markerWords is the English marker list
// used for the purity check on non-English stories.
func Evaluate(input models.StoryInput, story models.GeneratedStory, markerWords []string) Report {
	checks := []CheckResult{
		checkSectionOrder(input, story),
		checkMediaCoverage(input, story),
		checkPlaceGate(input, story),
	}
	if input.Lang != "en" {
		checks = append(checks, checkLanguagePurity(story, markerWords))
	}

	var total float64
	for _, c := range checks {
		total += c.Score
	}

	return Report{
		OverallScore: total / float64(len(checks)),
		Checks:       checks,
	}
}

// checkSectionOrder verifies sections appear in the input's daypart order.
func checkSectionOrder(input models.StoryInput, story models.GeneratedStory) CheckResult {
	daypartByMedia := make(map[string]string, len(input.Photos))
	for _, p := range input.Photos {
		daypartByMedia[p.MediaID] = p.Daypart
	}
	orderIndex := make(map[string]int, len(input.DaypartsOrder))
	for i, dp := range input.DaypartsOrder {
		orderIndex[dp] = i
	}

	prev := -1
	for _, section := range story.Sections {
		dp, known := daypartByMedia[section.MediaID]
		if !known {
			return CheckResult{
				Name:    "section_order",
				Score:   0,
				Details: "section references unknown media_id " + section.MediaID,
			}
		}
		idx := orderIndex[dp]
		if idx < prev {
			return CheckResult{
				Name:    "section_order",
				Score:   0,
				Details: "sections are not in daypart order",
			}
		}
		prev = idx
	}
	return CheckResult{Name: "section_order", Score: 1}
}

// checkMediaCoverage verifies every input photo has exactly one section.
func checkMediaCoverage(input models.StoryInput, story models.GeneratedStory) CheckResult {
	seen := make(map[string]int, len(story.Sections))
	for _, section := range story.Sections {
		seen[section.MediaID]++
	}

	covered := 0
	for _, p := range input.Photos {
		if seen[p.MediaID] == 1 {
			covered++
		}
	}
	if len(input.Photos) == 0 {
		return CheckResult{Name: "media_coverage", Score: 1}
	}

	score := float64(covered) / float64(len(input.Photos))
	result := CheckResult{Name: "media_coverage", Score: score}
	if score < 1 {
		result.Details = "not every photo maps to exactly one section"
	}
	return result
}

// checkPlaceGate verifies a low-confidence place name never appears in the
// generated text.
func checkPlaceGate(input models.StoryInput, story models.GeneratedStory) CheckResult {
	gate := models.PlaceContext{PlaceString: input.PlaceString, Confidence: input.PlaceConfidence}
	if gate.AllowsPlaceMention() || input.PlaceString == "" {
		return CheckResult{Name: "place_gate", Score: 1}
	}

	needle := strings.ToLower(input.PlaceString)
	for _, text := range storyTexts(story) {
		if strings.Contains(strings.ToLower(text), needle) {
			return CheckResult{
				Name:    "place_gate",
				Score:   0,
				Details: "low-confidence place name appears in output",
			}
		}
	}
	return CheckResult{Name: "place_gate", Score: 1}
}

// checkLanguagePurity scans all output text for English marker words.
func checkLanguagePurity(story models.GeneratedStory, markerWords []string) CheckResult {
	for _, text := range storyTexts(story) {
		lower := strings.ToLower(text)
		for _, word := range markerWords {
			if strings.Contains(lower, word) {
				return CheckResult{
					Name:    "language_purity",
					Score:   0,
					Details: "output contains English marker " + word,
				}
			}
		}
	}
	return CheckResult{Name: "language_purity", Score: 1}
}

func storyTexts(story models.GeneratedStory) []string {
	texts := []string{story.Title, story.Subtitle, story.IntroMD, story.OutroMD}
	for _, section := range story.Sections {
		texts = append(texts, section.SectionHeading, section.BodyMD, section.ImageCaption, section.AltText)
		texts = append(texts, section.Tags...)
	}
	return texts
}
