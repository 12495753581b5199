// Package export writes stored articles and stories to JSONL or Parquet
// files for offline analysis.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/lifechronicles/chronicler/internal/models"
)

// ArticleRecord is the flattened export shape of a stored article.
type ArticleRecord struct {
	ID           string `json:"id" parquet:"id"`
	Language     string `json:"language" parquet:"language"`
	Title        string `json:"title" parquet:"title"`
	Subtitle     string `json:"subtitle" parquet:"subtitle"`
	Body         string `json:"body" parquet:"body"`
	ImageCaption string `json:"image_caption" parquet:"image_caption"`
	AltText      string `json:"alt_text" parquet:"alt_text"`
	Tags         string `json:"tags" parquet:"tags"`
	Caption      string `json:"img_caption" parquet:"img_caption"`
	Place        string `json:"place" parquet:"place"`
	CreatedAt    string `json:"created_at" parquet:"created_at"`
}

// StoryRecord is the flattened export shape of a stored story.
type StoryRecord struct {
	ID              string  `json:"id" parquet:"id"`
	Lang            string  `json:"lang" parquet:"lang"`
	Tone            string  `json:"tone" parquet:"tone"`
	Length          string  `json:"length" parquet:"length"`
	StoryDate       string  `json:"story_date" parquet:"story_date"`
	PlaceString     string  `json:"place_str" parquet:"place_str"`
	PlaceConfidence float64 `json:"place_confidence" parquet:"place_confidence"`
	Title           string  `json:"title" parquet:"title"`
	Subtitle        string  `json:"subtitle" parquet:"subtitle"`
	SectionCount    int     `json:"section_count" parquet:"section_count"`
	DaypartsOrder   string  `json:"dayparts_order" parquet:"dayparts_order"`
	IsPublic        bool    `json:"is_public" parquet:"is_public"`
	CreatedAt       string  `json:"created_at" parquet:"created_at"`
}

// FlattenArticle converts a stored article into its export record.
func FlattenArticle(a *models.Article) ArticleRecord {
	return ArticleRecord{
		ID:           a.ID,
		Language:     a.Language,
		Title:        a.Content.Title,
		Subtitle:     a.Content.Subtitle,
		Body:         a.Content.Body,
		ImageCaption: a.Content.ImageCaption,
		AltText:      a.Content.AltText,
		Tags:         strings.Join(a.Content.Tags, ","),
		Caption:      a.Analysis.Caption,
		Place:        a.Analysis.Place,
		CreatedAt:    a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FlattenStory converts a stored story into its export record.
func FlattenStory(s *models.Story) StoryRecord {
	dayparts := make([]string, 0, len(s.Items))
	seen := make(map[string]bool)
	for _, item := range s.Items {
		if !seen[item.Daypart] {
			seen[item.Daypart] = true
			dayparts = append(dayparts, item.Daypart)
		}
	}

	return StoryRecord{
		ID:              s.ID,
		Lang:            s.Lang,
		Tone:            s.Tone,
		Length:          s.Length,
		StoryDate:       s.StoryDate,
		PlaceString:     s.PlaceString,
		PlaceConfidence: s.PlaceConfidence,
		Title:           s.Content.Title,
		Subtitle:        s.Content.Subtitle,
		SectionCount:    len(s.Content.Sections),
		DaypartsOrder:   strings.Join(dayparts, ","),
		IsPublic:        s.IsPublic,
		CreatedAt:       s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// WriteArticles writes article records to the given path. The format is
// chosen by extension (.parquet or .jsonl).
func WriteArticles(records []ArticleRecord, path string) error {
	return write(records, path)
}

// WriteStories writes story records to the given path. The format is
// chosen by extension (.parquet or .jsonl).
func WriteStories(records []StoryRecord, path string) error {
	return write(records, path)
}

func write[T any](records []T, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".parquet":
		return writeParquet(records, path)
	case ".jsonl", ".json":
		return writeJSONL(records, path)
	default:
		return fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func writeParquet[T any](records []T, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	slog.Info("Wrote parquet export", "path", path, "records", len(records))
	return nil
}

func writeJSONL[T any](records []T, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush export file: %w", err)
	}

	slog.Info("Wrote JSONL export", "path", path, "records", len(records))
	return nil
}

// ReadArticles loads article records back from a JSONL export, mainly for
// round-tripping between formats.
func ReadArticles(path string) ([]ArticleRecord, error) {
	return readJSONL[ArticleRecord](path)
}

// ReadStories loads story records back from a JSONL export.
func ReadStories(path string) ([]StoryRecord, error) {
	return readJSONL[StoryRecord](path)
}

func readJSONL[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	defer file.Close()

	var records []T
	scanner := bufio.NewScanner(file)

	const maxCapacity = 10 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record T
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading export file: %w", err)
	}
	return records, nil
}
