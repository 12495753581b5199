package handlers

import (
	"net/http"
	"strconv"
)

// HandleGeocodeSearch resolves a free-form place query to candidates.
func (h *Handler) HandleGeocodeSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, "Missing query parameter: q", http.StatusBadRequest)
		return
	}

	candidates, err := h.geocoder.Search(r.Context(), query)
	if err != nil {
		h.writeError(w, "Geocoding failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	h.writeJSON(w, candidates)
}

// HandleGeocodeReverse resolves coordinates to the nearest place.
func (h *Handler) HandleGeocodeReverse(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		h.writeError(w, "Invalid or missing lat/lon parameters", http.StatusBadRequest)
		return
	}

	candidate, err := h.geocoder.Reverse(r.Context(), lat, lon)
	if err != nil {
		h.writeError(w, "Reverse geocoding failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	if candidate == nil {
		h.writeError(w, "No place found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, candidate)
}
