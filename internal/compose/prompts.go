package compose

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lifechronicles/chronicler/internal/models"
)

const articlePromptTemplate = `SYSTEM:
You are a careful nonfiction writer. Write ONLY in %s.
Use ONLY the details in INPUT. Do NOT invent places, people, events, brands, or dates.
If something is missing, omit it. No external facts or web knowledge.

Style rules:
- Observational, vivid, and specific—but factual.
- Do NOT copy the caption verbatim; do not reuse more than 6 consecutive words from it.
- Weave in 2–4 concrete visual elements from Objects/Attributes naturally.
- Smooth narrative paragraphs (no lists, no headings inside body).
- Tone: reportage
- Target length: 100–150 words total.

Place guard:
If %.2f < 0.80 or Place is empty → do NOT mention a location name or local facts.

Language rules:
- Keep the entire output in %s.
- If the target language is "ta" (Tamil), translate any English descriptive text into Tamil;
  keep proper nouns in their original script (optionally add a Tamil transliteration once).

OUTPUT_SCHEMA (return ONLY valid JSON exactly like this):
{
  "title": "string (4–8 words)",
  "subtitle": "string (10–15 words, 1 sentence)",
  "body": "string (2–4 paragraphs; plain prose; **bold**/*italic* allowed)",
  "image_caption": "string (1–2 sentences, 15–30 words; describe only visible elements)",
  "alt_text": "string (20–40 words; purely descriptive for accessibility)",
  "tags": ["string", "string", "string"]
}

USER:
Write an article that respects all rules above.

INPUT:
- Visual caption: %s
- Objects: %s
- Attributes: %s
- OCR text: %s
- Place: %s (confidence: %.2f)
- Local time: %s
- Season: %s
- User context (optional): %s
%s
Additional constraints:
- If User context is provided, prioritize those facts; otherwise stay purely observational.
- Avoid clichés and repetition; vary sentence openings.
- Tags must come from Objects/Attributes/clearly visible details.
Return ONLY the JSON specified in OUTPUT_SCHEMA.`

const storyPromptTemplate = `SYSTEM:
You are a careful nonfiction writer. Write ONLY in %s.
Use ONLY the data in STORY_INPUT. Do NOT invent places, people, events, brands, times, or numbers not present.
If a field is missing, omit it. No external facts or web knowledge.
Style: plain, observational, specific. No poetry unless present in captions/notes.
Language rule: if the target language is "ta", translate descriptive English to Tamil; keep proper nouns in original script (Tamil transliteration optional once).
Place rule: If place_confidence < 0.8 or place_str is empty, do NOT mention a place name or local facts.

Structure & Order (hard constraints):
- Follow STORY_INPUT.dayparts_order exactly (e.g., morning → afternoon → evening → night).
- Intro: 2–3 sentences summarizing the day's visible arc only.
- Each section (per photo): 2–4 short sentences, grounded in that photo's fields only.
- Section heading: ≤ 5 words.
- Outro: 1–2 sentences to close the day; no new facts.

OUTPUT_SCHEMA (return ONLY valid JSON in this shape):
{
  "title": "string (≤ 8 words)",
  "subtitle": "string (≤ 15 words)",
  "intro_md": "string",
  "sections": [
    {
      "media_id": "string",
      "section_heading": "string",
      "body_md": "string",
      "image_caption": "string (1–2 sentences; visible details only)",
      "alt_text": "string (20–40 words; descriptive)",
      "tags": ["string","string","string"]
    }
  ],
  "outro_md": "string"
}

USER:
Write the story in %s using ONLY STORY_INPUT below. Keep sections ordered by daypart; keep language consistent.

STORY_INPUT:
%s`

const storyVerifierTemplate = `SYSTEM:
You remove hallucinations. Return ONLY corrected JSON in the same schema as the generator output.

USER:
Given STORY_INPUT and MODEL_OUTPUT:
1) Remove any detail not present in STORY_INPUT (no added places/people/brands/history/times).
2) If place_confidence < 0.8, remove place mentions.
3) Ensure sections are in STORY_INPUT.dayparts_order and mapped to the correct media_id.
4) Ensure the language is %s throughout.
5) Keep schema exactly the same.

STORY_INPUT:
%s

MODEL_OUTPUT:
%s`

// buildArticlePrompt assembles the single-photo prompt. When the place
// gate is closed the place is withheld from the prompt entirely rather
// than relying on the model to honor the guard.
func buildArticlePrompt(analysis models.PhotoAnalysis, exif models.ExifContext, lang string) string {
	placeCtx := models.PlaceContext{
		PlaceString: analysis.Place,
		Confidence:  analysis.PlaceConfidence,
	}
	placeStr := "N/A"
	if placeCtx.AllowsPlaceMention() {
		placeStr = analysis.Place
	}

	var exifLines []string
	if exif.GPS != nil && placeCtx.AllowsPlaceMention() {
		exifLines = append(exifLines, fmt.Sprintf("- Location: %.6f°%s, %.6f°%s",
			abs(exif.GPS.Lat), hemisphere(exif.GPS.Lat, "N", "S"),
			abs(exif.GPS.Lon), hemisphere(exif.GPS.Lon, "E", "W")))
	}
	if exif.CaptureTime != nil {
		exifLines = append(exifLines, "- Date: "+exif.CaptureTime.Format("2006-01-02 15:04"))
	}
	if exif.CameraModel != "" {
		exifLines = append(exifLines, "- Camera: "+exif.CameraModel)
	}
	exifBlock := ""
	if len(exifLines) > 0 {
		exifBlock = strings.Join(exifLines, "\n") + "\n"
	}

	return fmt.Sprintf(articlePromptTemplate,
		lang,
		analysis.PlaceConfidence,
		lang,
		orNA(analysis.Caption),
		itemList(analysis.Objects),
		itemList(analysis.Attributes),
		orNA(analysis.OCRText),
		placeStr,
		analysis.PlaceConfidence,
		orNA(analysis.LocalTime),
		orNA(analysis.Season),
		orNA(analysis.MergedNotes),
		exifBlock,
	)
}

func buildStoryPrompt(input models.StoryInput) string {
	return fmt.Sprintf(storyPromptTemplate, input.Lang, input.Lang, marshalInput(input))
}

func buildVerifierPrompt(input models.StoryInput, generatorOutput string) string {
	return fmt.Sprintf(storyVerifierTemplate, input.Lang, marshalInput(input), generatorOutput)
}

func marshalInput(input models.StoryInput) string {
	encoded, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		// StoryInput contains only marshalable fields; this cannot happen.
		return "{}"
	}
	return string(encoded)
}

func itemList(items []models.Item) string {
	if len(items) == 0 {
		return "N/A"
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func hemisphere(v float64, positive, negative string) string {
	if v >= 0 {
		return positive
	}
	return negative
}
