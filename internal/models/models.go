package models

import (
	"encoding/json"
	"time"
)

// Item is a detected object or attribute from the vision model.
// The confidence score is optional: vision output stores objects either as
// bare strings or as {"name": ..., "confidence": ...} entries, so both
// shapes unmarshal into an Item.
type Item struct {
	Name       string   `json:"name"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// UnmarshalJSON accepts either a plain string or a {name, confidence} object.
func (i *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.Name = s
		i.Confidence = nil
		return nil
	}

	type alias Item
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*i = Item(a)
	return nil
}

// PhotoAnalysis holds one photo's extracted facts from the vision model.
// It is produced once per photo and never mutated by the composers.
type PhotoAnalysis struct {
	Caption         string  `json:"img_caption"`
	Objects         []Item  `json:"detected_objects"`
	Attributes      []Item  `json:"attributes"`
	OCRText         string  `json:"ocr_text"`
	Place           string  `json:"place"`
	PlaceConfidence float64 `json:"place_confidence"`
	LocalTime       string  `json:"local_time"`
	Season          string  `json:"season"`
	UserNotes       string  `json:"user_notes"`
	MergedNotes     string  `json:"merged_notes_transcript"`
}

// GPSDecimal is a decimal-degree coordinate pair.
type GPSDecimal struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ExifContext holds normalized camera/location/time facts for one photo.
type ExifContext struct {
	GPS         *GPSDecimal `json:"gps_decimal,omitempty"`
	CaptureTime *time.Time  `json:"capture_time,omitempty"`
	CameraModel string      `json:"camera_model,omitempty"`
}

// PlaceContext is the resolved location for an article or story.
type PlaceContext struct {
	PlaceString string   `json:"place_str"`
	Confidence  float64  `json:"confidence"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
}

// PlaceGateThreshold is the confidence below which generated text must not
// name a location or assert local facts about it.
const PlaceGateThreshold = 0.8

// AllowsPlaceMention reports whether generated text may name this place.
func (p PlaceContext) AllowsPlaceMention() bool {
	return p.PlaceString != "" && p.Confidence >= PlaceGateThreshold
}

// StoryPhoto is one photo's entry within a StoryInput, already bucketed
// into a daypart and filtered by confidence.
type StoryPhoto struct {
	MediaID    string `json:"media_id"`
	Daypart    string `json:"daypart"`
	LocalTime  string `json:"local_time"`
	Caption    string `json:"img_caption"`
	Objects    []Item `json:"objects"`
	Attributes []Item `json:"attributes"`
	OCRText    string `json:"ocr_text"`
	UserNotes  string `json:"user_notes"`
	ImageURL   string `json:"image_url"`
	AltText    string `json:"alt_text"`
}

// StoryInput is the fully assembled input to day-story generation. It is
// built once per request and is the single source of truth the verifier
// pass checks generated text against.
type StoryInput struct {
	Lang            string       `json:"lang"`
	Tone            string       `json:"tone"`
	Length          string       `json:"length"`
	StoryDate       string       `json:"story_date,omitempty"`
	PlaceString     string       `json:"place_str"`
	PlaceConfidence float64      `json:"place_confidence"`
	DaypartsOrder   []string     `json:"dayparts_order"`
	Photos          []StoryPhoto `json:"photos"`
}

// GeneratedArticle is the validated output of single-photo composition.
type GeneratedArticle struct {
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Body         string   `json:"body"`
	ImageCaption string   `json:"image_caption"`
	AltText      string   `json:"alt_text"`
	Tags         []string `json:"tags"`
}

// StorySection is one photo's section within a generated day story.
type StorySection struct {
	MediaID        string   `json:"media_id"`
	SectionHeading string   `json:"section_heading"`
	BodyMD         string   `json:"body_md"`
	ImageCaption   string   `json:"image_caption"`
	AltText        string   `json:"alt_text"`
	Tags           []string `json:"tags"`
}

// GeneratedStory is the validated output of day-story composition.
type GeneratedStory struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	IntroMD  string         `json:"intro_md"`
	Sections []StorySection `json:"sections"`
	OutroMD  string         `json:"outro_md"`
}

// Article is a durable, stored article record.
type Article struct {
	ID        string           `json:"id"`
	Language  string           `json:"language"`
	Content   GeneratedArticle `json:"content"`
	Analysis  PhotoAnalysis    `json:"analysis"`
	Exif      ExifContext      `json:"exif"`
	ImageURL  string           `json:"image_url,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Story is a durable, stored day-story record.
type Story struct {
	ID              string         `json:"id"`
	Lang            string         `json:"lang"`
	Tone            string         `json:"tone"`
	Length          string         `json:"length"`
	StoryDate       string         `json:"story_date,omitempty"`
	PlaceString     string         `json:"place_str"`
	PlaceConfidence float64        `json:"place_confidence"`
	Content         GeneratedStory `json:"content"`
	Items           []StoryItem    `json:"items"`
	ShareToken      string         `json:"share_token,omitempty"`
	IsPublic        bool           `json:"is_public"`
	CreatedAt       time.Time      `json:"created_at"`
}

// StoryItem records one photo's position within a stored story.
type StoryItem struct {
	MediaID   string `json:"media_id"`
	OrderIdx  int    `json:"order_idx"`
	LocalTime string `json:"local_time"`
	Daypart   string `json:"daypart"`
}
