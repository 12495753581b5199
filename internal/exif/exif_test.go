package exif

import (
	"testing"
	"time"
)

func TestGPSToDecimal(t *testing.T) {
	tests := []struct {
		name    string
		lat     DMS
		lon     DMS
		latRef  string
		lonRef  string
		wantLat float64
		wantLon float64
	}{
		{
			name:    "north east",
			lat:     DMS{13, 4, 57.0},
			lon:     DMS{80, 16, 12.0},
			latRef:  "N",
			lonRef:  "E",
			wantLat: 13.0825,
			wantLon: 80.27,
		},
		{
			name:    "south west negates",
			lat:     DMS{33, 52, 0},
			lon:     DMS{151, 12, 0},
			latRef:  "S",
			lonRef:  "W",
			wantLat: -33.866667,
			wantLon: -151.2,
		},
		{
			name:    "zero coordinates",
			lat:     DMS{0, 0, 0},
			lon:     DMS{0, 0, 0},
			latRef:  "N",
			lonRef:  "E",
			wantLat: 0,
			wantLon: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GPSToDecimal(tt.lat, tt.lon, tt.latRef, tt.lonRef)
			if got.Lat != tt.wantLat {
				t.Errorf("Lat = %v, want %v", got.Lat, tt.wantLat)
			}
			if got.Lon != tt.wantLon {
				t.Errorf("Lon = %v, want %v", got.Lon, tt.wantLon)
			}
		})
	}
}

func TestParseDatetime(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2024:03:10 07:00:00", want: time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)},
		{input: "2024-03-10T07:00:00", want: time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)},
		{input: "2024-03-10 07:00:00", want: time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)},
		{input: "not a date", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDatetime(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDatetime(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDatetime(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDatetime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestContext(t *testing.T) {
	lat := DMS{13, 4, 57.0}
	lon := DMS{80, 16, 12.0}

	ctx := Context(RawFields{
		GPSLatitude:  &lat,
		GPSLongitude: &lon,
		LatRef:       "N",
		LonRef:       "E",
		DateTime:     "2024:03:10 07:00:00",
		CameraModel:  "Pixel 8",
	})

	if ctx.GPS == nil {
		t.Fatal("expected GPS to be set")
	}
	if ctx.GPS.Lat != 13.0825 {
		t.Errorf("GPS.Lat = %v, want 13.0825", ctx.GPS.Lat)
	}
	if ctx.CaptureTime == nil || !ctx.CaptureTime.Equal(time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("CaptureTime = %v", ctx.CaptureTime)
	}
	if ctx.CameraModel != "Pixel 8" {
		t.Errorf("CameraModel = %q", ctx.CameraModel)
	}
}

func TestContextDropsUnparseable(t *testing.T) {
	ctx := Context(RawFields{DateTime: "garbage"})
	if ctx.CaptureTime != nil {
		t.Errorf("unparseable datetime should be dropped, got %v", ctx.CaptureTime)
	}
	if ctx.GPS != nil {
		t.Errorf("missing GPS should stay nil, got %v", ctx.GPS)
	}
}
