package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lifechronicles/chronicler/internal/models"
)

func sampleArticle() *models.Article {
	return &models.Article{
		ID:       "a1",
		Language: "en",
		Content: models.GeneratedArticle{
			Title: "Morning by the Water",
			Tags:  []string{"beach", "sunrise"},
		},
		Analysis:  models.PhotoAnalysis{Caption: "waves at sunrise", Place: "Chennai, India"},
		CreatedAt: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestFlattenArticle(t *testing.T) {
	record := FlattenArticle(sampleArticle())

	if record.ID != "a1" || record.Title != "Morning by the Water" {
		t.Errorf("unexpected record: %+v", record)
	}
	if record.Tags != "beach,sunrise" {
		t.Errorf("Tags = %q", record.Tags)
	}
	if record.CreatedAt != "2024-03-10T08:00:00Z" {
		t.Errorf("CreatedAt = %q", record.CreatedAt)
	}
}

func TestFlattenStory(t *testing.T) {
	story := &models.Story{
		ID:        "s1",
		Lang:      "ta",
		StoryDate: "2024-03-10",
		Content: models.GeneratedStory{
			Title:    "கடற்கரை நாள்",
			Sections: []models.StorySection{{MediaID: "m1"}, {MediaID: "m2"}},
		},
		Items: []models.StoryItem{
			{MediaID: "m1", Daypart: "morning"},
			{MediaID: "m2", Daypart: "evening"},
			{MediaID: "m3", Daypart: "evening"},
		},
		CreatedAt: time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC),
	}

	record := FlattenStory(story)

	if record.SectionCount != 2 {
		t.Errorf("SectionCount = %d, want 2", record.SectionCount)
	}
	if record.DaypartsOrder != "morning,evening" {
		t.Errorf("DaypartsOrder = %q", record.DaypartsOrder)
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	records := []ArticleRecord{
		FlattenArticle(sampleArticle()),
		{ID: "a2", Language: "ta", Title: "கடற்கரை"},
	}

	path := filepath.Join(t.TempDir(), "articles.jsonl")
	if err := WriteArticles(records, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := ReadArticles(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d records, want 2", len(got))
	}
	if got[0].Title != "Morning by the Water" || got[1].Title != "கடற்கரை" {
		t.Errorf("round trip changed records: %+v", got)
	}
}

func TestWriteParquet(t *testing.T) {
	records := []ArticleRecord{FlattenArticle(sampleArticle())}

	path := filepath.Join(t.TempDir(), "articles.parquet")
	if err := WriteArticles(records, path); err != nil {
		t.Fatalf("parquet write failed: %v", err)
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.csv")
	if err := WriteArticles(nil, path); err == nil {
		t.Error("expected error for unsupported format")
	}
}
