package storyinput

import (
	"reflect"
	"testing"
	"time"

	"github.com/lifechronicles/chronicler/internal/models"
)

func ptr(f float64) *float64 { return &f }

func TestFilterByConfidence(t *testing.T) {
	items := []models.Item{
		{Name: "tree", Confidence: ptr(0.79)},
		{Name: "beach", Confidence: ptr(0.81)},
		{Name: "sky"},
		{Name: "boat", Confidence: ptr(0.8)},
	}

	got := FilterByConfidence(items)

	want := []string{"beach", "sky", "boat"}
	if len(got) != len(want) {
		t.Fatalf("kept %d items, want %d: %+v", len(got), len(want), got)
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("item %d = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestFilterByConfidenceEmpty(t *testing.T) {
	if got := FilterByConfidence(nil); got != nil {
		t.Errorf("expected nil for empty input, got %+v", got)
	}
}

func photoAt(mediaID string, capture time.Time) Photo {
	return Photo{
		MediaID: mediaID,
		Exif:    models.ExifContext{CaptureTime: &capture},
	}
}

func TestBuildOrdersByDaypart(t *testing.T) {
	// Photos arrive out of order: evening, morning, afternoon (UTC place).
	photos := []Photo{
		photoAt("m-evening", time.Date(2024, 3, 10, 19, 15, 0, 0, time.UTC)),
		photoAt("m-morning", time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)),
		photoAt("m-afternoon", time.Date(2024, 3, 10, 13, 30, 0, 0, time.UTC)),
	}

	input := Build(photos, models.PlaceContext{}, "en", "reportage", "medium")

	wantOrder := []string{"morning", "afternoon", "evening"}
	if !reflect.DeepEqual(input.DaypartsOrder, wantOrder) {
		t.Errorf("DaypartsOrder = %v, want %v", input.DaypartsOrder, wantOrder)
	}

	wantIDs := []string{"m-morning", "m-afternoon", "m-evening"}
	for i, id := range wantIDs {
		if input.Photos[i].MediaID != id {
			t.Errorf("photo %d = %s, want %s", i, input.Photos[i].MediaID, id)
		}
	}

	if input.StoryDate != "2024-03-10" {
		t.Errorf("StoryDate = %q, want 2024-03-10", input.StoryDate)
	}
}

func TestBuildSortsWithinDaypart(t *testing.T) {
	photos := []Photo{
		photoAt("m-late", time.Date(2024, 3, 10, 9, 45, 0, 0, time.UTC)),
		photoAt("m-early", time.Date(2024, 3, 10, 6, 10, 0, 0, time.UTC)),
	}

	input := Build(photos, models.PlaceContext{}, "en", "reportage", "medium")

	if input.Photos[0].MediaID != "m-early" || input.Photos[1].MediaID != "m-late" {
		t.Errorf("within-daypart order wrong: %s then %s",
			input.Photos[0].MediaID, input.Photos[1].MediaID)
	}
	if input.Photos[0].LocalTime != "06:10" {
		t.Errorf("LocalTime = %q, want 06:10", input.Photos[0].LocalTime)
	}
}

func TestBuildFallsBackToUploadTime(t *testing.T) {
	photos := []Photo{
		{
			MediaID:    "m1",
			UploadedAt: time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC),
		},
	}

	input := Build(photos, models.PlaceContext{}, "en", "reportage", "medium")

	if input.Photos[0].Daypart != "afternoon" {
		t.Errorf("Daypart = %q, want afternoon", input.Photos[0].Daypart)
	}
	if input.StoryDate != "2024-03-10" {
		t.Errorf("StoryDate = %q, want 2024-03-10", input.StoryDate)
	}
}

func TestBuildUsesPlaceTimezone(t *testing.T) {
	// 01:30 UTC is 07:00 in Kolkata: morning there, night in UTC.
	photos := []Photo{
		photoAt("m1", time.Date(2024, 3, 10, 1, 30, 0, 0, time.UTC)),
	}
	placeCtx := models.PlaceContext{
		PlaceString: "Chennai, India",
		Confidence:  0.9,
		Timezone:    "Asia/Kolkata",
	}

	input := Build(photos, placeCtx, "en", "reportage", "medium")

	if input.Photos[0].Daypart != "morning" {
		t.Errorf("Daypart = %q, want morning", input.Photos[0].Daypart)
	}
	if input.Photos[0].LocalTime != "07:00" {
		t.Errorf("LocalTime = %q, want 07:00", input.Photos[0].LocalTime)
	}
	if input.PlaceString != "Chennai, India" || input.PlaceConfidence != 0.9 {
		t.Errorf("place context not carried: %+v", input)
	}
}

func TestBuildCarriesRequestFields(t *testing.T) {
	photos := []Photo{
		photoAt("m1", time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)),
	}

	input := Build(photos, models.PlaceContext{}, "ta", "diary", "short")

	if input.Lang != "ta" || input.Tone != "diary" || input.Length != "short" {
		t.Errorf("request fields not carried: %+v", input)
	}
}
