package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lifechronicles/chronicler/internal/compose"
	"github.com/lifechronicles/chronicler/internal/models"
)

type articleRequest struct {
	Analysis models.PhotoAnalysis `json:"analysis"`
	Exif     models.ExifContext   `json:"exif"`
	Lang     string               `json:"lang"`
	ImageURL string               `json:"image_url"`
}

// HandleArticles serves article creation and listing.
func (h *Handler) HandleArticles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.articleStore.List())
	case "POST":
		h.createArticle(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) createArticle(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	lang, ok := validateLang(req.Lang)
	if !ok {
		h.writeError(w, "Unsupported language: "+req.Lang, http.StatusBadRequest)
		return
	}
	if req.Analysis.Caption == "" && len(req.Analysis.Objects) == 0 {
		h.writeError(w, "Analysis must include a caption or detected objects", http.StatusBadRequest)
		return
	}

	content, err := h.articleComposer.ComposeArticle(r.Context(), req.Analysis, req.Exif, lang)
	if err != nil {
		var mixErr *compose.LanguageMixingError
		if errors.As(err, &mixErr) {
			h.writeError(w, "Article generation failed: "+mixErr.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.writeError(w, "Article generation failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	article := h.articleStore.Save(models.Article{
		Language: lang,
		Content:  content,
		Analysis: req.Analysis,
		Exif:     req.Exif,
		ImageURL: req.ImageURL,
	})
	h.writeJSON(w, article)
}

// HandleArticleDetail serves one stored article by ID.
func (h *Handler) HandleArticleDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/articles/")

	article, exists := h.articleStore.Get(id)
	if !exists {
		h.writeError(w, "Article not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, article)
	case "DELETE":
		h.articleStore.Delete(id)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
