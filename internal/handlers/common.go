// Package handlers wires the HTTP API: article generation, day stories,
// sharing, and place lookup.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lifechronicles/chronicler/internal/geocode"
	"github.com/lifechronicles/chronicler/internal/models"
	"github.com/lifechronicles/chronicler/internal/storage"
)

// ArticleComposer generates a single-photo article.
type ArticleComposer interface {
	ComposeArticle(ctx context.Context, analysis models.PhotoAnalysis, exif models.ExifContext, lang string) (models.GeneratedArticle, error)
}

// StoryComposer generates a multi-photo day story.
type StoryComposer interface {
	ComposeStory(ctx context.Context, input models.StoryInput) (models.GeneratedStory, error)
}

// Geocoder resolves place names and coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Candidate, error)
	Reverse(ctx context.Context, lat, lon float64) (*geocode.Candidate, error)
}

type Handler struct {
	articleStore    *storage.ArticleStore
	storyStore      *storage.StoryStore
	articleComposer ArticleComposer
	storyComposer   StoryComposer
	geocoder        Geocoder
}

func New(articleComposer ArticleComposer, storyComposer StoryComposer, geocoder Geocoder) *Handler {
	return &Handler{
		articleStore:    storage.NewArticleStore(),
		storyStore:      storage.NewStoryStore(),
		articleComposer: articleComposer,
		storyComposer:   storyComposer,
		geocoder:        geocoder,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Request validation helpers

var (
	validLangs   = map[string]bool{"en": true, "ta": true}
	validTones   = map[string]bool{"reportage": true, "travelogue": true, "diary": true}
	validLengths = map[string]bool{"short": true, "medium": true, "long": true}
)

func validateLang(lang string) (string, bool) {
	if lang == "" {
		return "en", true
	}
	return lang, validLangs[lang]
}

func validateTone(tone string) (string, bool) {
	if tone == "" {
		return "reportage", true
	}
	return tone, validTones[tone]
}

func validateLength(length string) (string, bool) {
	if length == "" {
		return "medium", true
	}
	return length, validLengths[length]
}
