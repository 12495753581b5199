// Package exif builds ExifContext values from already-parsed EXIF fields.
// Byte-level EXIF decoding is the uploader's concern; this package only
// normalizes GPS and datetime values into the forms the composers consume.
package exif

import (
	"fmt"
	"math"
	"time"

	"github.com/lifechronicles/chronicler/internal/models"
)

// DMS is a degrees/minutes/seconds triple as stored in EXIF GPS tags.
type DMS [3]float64

func (d DMS) decimal() float64 {
	return d[0] + d[1]/60.0 + d[2]/3600.0
}

// GPSToDecimal converts EXIF GPS coordinates to signed decimal degrees,
// rounded to six places. Southern latitudes and western longitudes are
// negative.
func GPSToDecimal(lat, lon DMS, latRef, lonRef string) models.GPSDecimal {
	decLat := round6(lat.decimal())
	if latRef == "S" {
		decLat = -decLat
	}

	decLon := round6(lon.decimal())
	if lonRef == "W" {
		decLon = -decLon
	}

	return models.GPSDecimal{Lat: decLat, Lon: decLon}
}

func round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

// Timestamp layouts seen in the wild: the EXIF colon-date form plus the
// ISO forms uploaders send after their own normalization.
var datetimeLayouts = []string{
	"2006:01:02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDatetime parses an EXIF or ISO datetime string.
func ParseDatetime(s string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime format: %q", s)
}

// RawFields are the normalized EXIF values an uploader extracts from an
// image before handing them to the pipeline.
type RawFields struct {
	GPSLatitude  *DMS   `json:"gps_latitude,omitempty"`
	GPSLongitude *DMS   `json:"gps_longitude,omitempty"`
	LatRef       string `json:"gps_latitude_ref,omitempty"`
	LonRef       string `json:"gps_longitude_ref,omitempty"`
	DateTime     string `json:"datetime_original,omitempty"`
	CameraModel  string `json:"camera_model,omitempty"`
}

// Context assembles an ExifContext from raw fields, dropping whatever is
// missing or unparseable rather than failing.
func Context(raw RawFields) models.ExifContext {
	ctx := models.ExifContext{CameraModel: raw.CameraModel}

	if raw.GPSLatitude != nil && raw.GPSLongitude != nil {
		gps := GPSToDecimal(*raw.GPSLatitude, *raw.GPSLongitude, raw.LatRef, raw.LonRef)
		ctx.GPS = &gps
	}

	if raw.DateTime != "" {
		if t, err := ParseDatetime(raw.DateTime); err == nil {
			ctx.CaptureTime = &t
		}
	}

	return ctx
}
