package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lifechronicles/chronicler/internal/compose"
	"github.com/lifechronicles/chronicler/internal/models"
	"github.com/lifechronicles/chronicler/internal/place"
	"github.com/lifechronicles/chronicler/internal/storyinput"
)

type storyRequest struct {
	Photos        []storyinput.Photo   `json:"photos"`
	PlaceOverride *models.PlaceContext `json:"place,omitempty"`
	Lang          string               `json:"lang"`
	Tone          string               `json:"tone"`
	Length        string               `json:"length"`
}

// HandleStories serves story creation and listing.
func (h *Handler) HandleStories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.storyStore.List())
	case "POST":
		h.createStory(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) createStory(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Photos) == 0 {
		h.writeError(w, "At least one photo is required", http.StatusBadRequest)
		return
	}

	lang, ok := validateLang(req.Lang)
	if !ok {
		h.writeError(w, "Unsupported language: "+req.Lang, http.StatusBadRequest)
		return
	}
	tone, ok := validateTone(req.Tone)
	if !ok {
		h.writeError(w, "Unsupported tone: "+req.Tone, http.StatusBadRequest)
		return
	}
	length, ok := validateLength(req.Length)
	if !ok {
		h.writeError(w, "Unsupported length: "+req.Length, http.StatusBadRequest)
		return
	}

	placePhotos := make([]place.Photo, 0, len(req.Photos))
	for _, p := range req.Photos {
		placePhotos = append(placePhotos, place.Photo{MediaID: p.MediaID, Analysis: p.Analysis})
	}
	placeCtx := place.Resolve(placePhotos, req.PlaceOverride)

	input := storyinput.Build(req.Photos, placeCtx, lang, tone, length)

	content, err := h.storyComposer.ComposeStory(r.Context(), input)
	if err != nil {
		var storyErr *compose.StoryGenerationError
		if errors.As(err, &storyErr) {
			h.writeError(w, "Story generation failed: "+storyErr.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.writeError(w, "Story generation failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	items := make([]models.StoryItem, len(input.Photos))
	for i, p := range input.Photos {
		items[i] = models.StoryItem{
			MediaID:   p.MediaID,
			OrderIdx:  i,
			LocalTime: p.LocalTime,
			Daypart:   p.Daypart,
		}
	}

	story := h.storyStore.Save(models.Story{
		Lang:            lang,
		Tone:            tone,
		Length:          length,
		StoryDate:       input.StoryDate,
		PlaceString:     placeCtx.PlaceString,
		PlaceConfidence: placeCtx.Confidence,
		Content:         content,
		Items:           items,
	})
	h.writeJSON(w, story)
}

// HandleStoryDetail serves one stored story by ID and its share action.
func (h *Handler) HandleStoryDetail(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/stories/")

	if id, found := strings.CutSuffix(path, "/share"); found {
		h.shareStory(w, r, id)
		return
	}

	story, exists := h.storyStore.Get(path)
	if !exists {
		h.writeError(w, "Story not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, story)
	case "DELETE":
		h.storyStore.Delete(path)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) shareStory(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token, exists := h.storyStore.MarkShared(id)
	if !exists {
		h.writeError(w, "Story not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, map[string]string{
		"share_token": token,
		"share_url":   "/api/shared/" + token,
	})
}

// HandleSharedStory serves a publicly shared story by its token.
func (h *Handler) HandleSharedStory(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := strings.TrimPrefix(r.URL.Path, "/api/shared/")
	story, exists := h.storyStore.GetByToken(token)
	if !exists || !story.IsPublic {
		h.writeError(w, "Story not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, story)
}
