// Package place resolves the single location context that applies to an
// article or a whole day story.
package place

import (
	"log/slog"
	"strings"
	"time"

	"github.com/lifechronicles/chronicler/internal/models"
)

// Components are the address parts a geocoder returns for one place.
type Components struct {
	PlaceName string `json:"place_name"`
	City      string `json:"city"`
	Admin     string `json:"admin"`
	Country   string `json:"country"`
}

// Label joins the components into a display string: place name (or city),
// then admin region unless it repeats the city, then country.
func (c Components) Label() string {
	var parts []string

	if c.PlaceName != "" {
		parts = append(parts, c.PlaceName)
	} else if c.City != "" {
		parts = append(parts, c.City)
	}

	if c.Admin != "" && c.Admin != c.City {
		parts = append(parts, c.Admin)
	}

	if c.Country != "" {
		parts = append(parts, c.Country)
	}

	return strings.Join(parts, ", ")
}

// Photo pairs a photo's analysis with its identifier for resolution.
type Photo struct {
	MediaID  string
	Analysis models.PhotoAnalysis
}

// Resolve picks the place context for a story. An explicit override wins
// outright; otherwise the photo with the highest non-zero place confidence
// supplies its place string and confidence; otherwise the context is empty.
func Resolve(photos []Photo, override *models.PlaceContext) models.PlaceContext {
	if override != nil {
		return *override
	}

	var bestPlace string
	var bestConfidence float64

	for _, p := range photos {
		if p.Analysis.Place == "" {
			continue
		}
		if p.Analysis.PlaceConfidence > bestConfidence {
			bestConfidence = p.Analysis.PlaceConfidence
			bestPlace = p.Analysis.Place
		}
	}

	if bestPlace != "" && bestConfidence > 0 {
		return models.PlaceContext{
			PlaceString: bestPlace,
			Confidence:  bestConfidence,
		}
	}

	return models.PlaceContext{}
}

// Location returns the timezone for a place context, falling back to UTC
// when the identifier is missing or unknown.
func Location(ctx models.PlaceContext) *time.Location {
	if ctx.Timezone != "" {
		loc, err := time.LoadLocation(ctx.Timezone)
		if err == nil {
			return loc
		}
		slog.Warn("Unknown timezone, falling back to UTC", "timezone", ctx.Timezone)
	}
	return time.UTC
}
