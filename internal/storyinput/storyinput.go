// Package storyinput assembles the immutable input a day story is
// generated from: photos bucketed into dayparts, ordered chronologically,
// with low-confidence vision items filtered out.
package storyinput

import (
	"log/slog"
	"sort"
	"time"

	"github.com/lifechronicles/chronicler/internal/daypart"
	"github.com/lifechronicles/chronicler/internal/models"
	"github.com/lifechronicles/chronicler/internal/place"
)

// ConfidenceThreshold is the minimum score an object or attribute needs to
// survive filtering. Items without a score are kept: absence of a score is
// not evidence of low quality.
const ConfidenceThreshold = 0.8

// noTimeSentinel sorts after every real HH:MM value.
const noTimeSentinel = "99:99"

// Photo is one media item handed to the builder.
type Photo struct {
	MediaID    string               `json:"media_id"`
	Analysis   models.PhotoAnalysis `json:"analysis"`
	Exif       models.ExifContext   `json:"exif"`
	UploadedAt time.Time            `json:"uploaded_at"`
	ImageURL   string               `json:"image_url"`
	AltText    string               `json:"alt_text"`
}

// Build assembles a StoryInput from the given photos and the resolved
// place context. It never fails: photos missing a timestamp fall back to
// upload time, then to the current time with a logged warning.
func Build(photos []Photo, placeCtx models.PlaceContext, lang, tone, length string) models.StoryInput {
	loc := place.Location(placeCtx)

	entries := make([]models.StoryPhoto, 0, len(photos))
	var present []string
	var earliest time.Time

	for _, p := range photos {
		dt := resolveDatetime(p)
		dp, localTime := daypart.LocalClock(dt, loc)
		present = append(present, dp)

		if earliest.IsZero() || dt.Before(earliest) {
			earliest = dt
		}

		entries = append(entries, models.StoryPhoto{
			MediaID:    p.MediaID,
			Daypart:    dp,
			LocalTime:  localTime,
			Caption:    p.Analysis.Caption,
			Objects:    FilterByConfidence(p.Analysis.Objects),
			Attributes: FilterByConfidence(p.Analysis.Attributes),
			OCRText:    p.Analysis.OCRText,
			UserNotes:  p.Analysis.UserNotes,
			ImageURL:   p.ImageURL,
			AltText:    p.AltText,
		})
	}

	order := daypart.Order(present)
	sortPhotos(entries, order)

	input := models.StoryInput{
		Lang:            lang,
		Tone:            tone,
		Length:          length,
		PlaceString:     placeCtx.PlaceString,
		PlaceConfidence: placeCtx.Confidence,
		DaypartsOrder:   order,
		Photos:          entries,
	}

	if !earliest.IsZero() {
		input.StoryDate = earliest.In(loc).Format("2006-01-02")
	}

	slog.Info("Built story input", "photos", len(entries), "dayparts", len(order))
	return input
}

// resolveDatetime prefers EXIF capture time, then upload time, then the
// current time.
func resolveDatetime(p Photo) time.Time {
	if p.Exif.CaptureTime != nil {
		return *p.Exif.CaptureTime
	}
	if !p.UploadedAt.IsZero() {
		return p.UploadedAt
	}
	slog.Warn("No datetime found for media, using current time", "media_id", p.MediaID)
	return time.Now().UTC()
}

// FilterByConfidence drops items scored below the threshold and keeps
// unscored items unconditionally.
func FilterByConfidence(items []models.Item) []models.Item {
	if len(items) == 0 {
		return nil
	}

	filtered := make([]models.Item, 0, len(items))
	for _, item := range items {
		if item.Confidence != nil && *item.Confidence < ConfidenceThreshold {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// sortPhotos orders entries by daypart position within the story's
// ordering, then by local time. HH:MM strings sort lexically in
// chronological order; photos with no local time sort last.
func sortPhotos(entries []models.StoryPhoto, order []string) {
	index := make(map[string]int, len(order))
	for i, dp := range order {
		index[dp] = i
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := index[entries[i].Daypart], index[entries[j].Daypart]
		if di != dj {
			return di < dj
		}
		return sortKey(entries[i].LocalTime) < sortKey(entries[j].LocalTime)
	})
}

func sortKey(localTime string) string {
	if localTime == "" {
		return noTimeSentinel
	}
	return localTime
}
