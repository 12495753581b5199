package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

func TestImportanceToConfidence(t *testing.T) {
	tests := []struct {
		importance float64
		want       float64
	}{
		{0, 0.5},
		{0.5, 0.725},
		{1.0, 0.95},
		{2.0, 0.95},  // clamped high
		{-1.0, 0.5},  // clamped low
	}

	for _, tt := range tests {
		got := importanceToConfidence(tt.importance)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("importanceToConfidence(%v) = %v, want %v", tt.importance, got, tt.want)
		}
	}
}

func TestCandidateComponents(t *testing.T) {
	raw := nominatimResult{
		DisplayName: "Marina Beach, Chennai, Tamil Nadu, India",
		Lat:         "13.0500",
		Lon:         "80.2824",
		Name:        "Marina Beach",
		Importance:  0.7,
		Address: map[string]string{
			"city":         "Chennai",
			"state":        "Tamil Nadu",
			"country":      "India",
			"country_code": "in",
		},
	}

	c := raw.candidate()

	if c.Components.PlaceName != "Marina Beach" {
		t.Errorf("PlaceName = %q", c.Components.PlaceName)
	}
	if c.Components.City != "Chennai" {
		t.Errorf("City = %q", c.Components.City)
	}
	if c.CountryCode != "IN" {
		t.Errorf("CountryCode = %q", c.CountryCode)
	}
	if c.Lat != 13.05 {
		t.Errorf("Lat = %v", c.Lat)
	}
	if c.Provider != "nominatim" {
		t.Errorf("Provider = %q", c.Provider)
	}
}

func TestCandidateCityFallback(t *testing.T) {
	raw := nominatimResult{
		Address: map[string]string{"village": "Mahabalipuram", "country": "India"},
	}
	if got := raw.candidate().Components.City; got != "Mahabalipuram" {
		t.Errorf("City = %q, want village fallback", got)
	}
}

func newTestClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		userAgent:  "test",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		cache:      gocache.New(time.Minute, time.Minute),
	}
}

func TestSearchSkipsEmptyAndOversizedQueries(t *testing.T) {
	client := newTestClient("http://unused.invalid")

	if got, err := client.Search(context.Background(), "   "); err != nil || got != nil {
		t.Errorf("blank query: got %v, %v", got, err)
	}

	long := make([]byte, 121)
	for i := range long {
		long[i] = 'x'
	}
	if got, err := client.Search(context.Background(), string(long)); err != nil || got != nil {
		t.Errorf("oversized query: got %v, %v", got, err)
	}
}

func TestSearchCachesResults(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode([]nominatimResult{
			{DisplayName: "Chennai, India", Lat: "13.08", Lon: "80.27", Name: "Chennai", Importance: 0.8},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	first, err := client.Search(context.Background(), "Chennai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("candidates = %d, want 1", len(first))
	}

	if _, err := client.Search(context.Background(), "Chennai"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 1 {
		t.Errorf("server hit %d times, want 1 (second call cached)", requests)
	}
}
