// Package render converts generated markdown into HTML for display and
// sharing.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/lifechronicles/chronicler/internal/models"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// HTML renders a markdown fragment to HTML.
func HTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// ArticleHTML renders a generated article's body to HTML.
func ArticleHTML(article models.GeneratedArticle) (string, error) {
	return HTML(article.Body)
}

// StoryHTML renders a full story (intro, sections, outro) into one HTML
// document fragment, preserving section order.
func StoryHTML(story models.GeneratedStory) (string, error) {
	var parts []string

	if story.IntroMD != "" {
		intro, err := HTML(story.IntroMD)
		if err != nil {
			return "", err
		}
		parts = append(parts, intro)
	}

	for _, section := range story.Sections {
		source := section.BodyMD
		if section.SectionHeading != "" {
			source = "## " + section.SectionHeading + "\n\n" + source
		}
		rendered, err := HTML(source)
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}

	if story.OutroMD != "" {
		outro, err := HTML(story.OutroMD)
		if err != nil {
			return "", err
		}
		parts = append(parts, outro)
	}

	return strings.Join(parts, "\n"), nil
}
