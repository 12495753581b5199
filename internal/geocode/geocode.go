// Package geocode resolves place names and coordinates through Nominatim,
// with response caching and the 1 req/s rate limit the service requires.
package geocode

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lifechronicles/chronicler/internal/place"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "LifeChronicles/1.0"
	cacheTTL         = 24 * time.Hour
	rateLimitDelay   = time.Second
)

// Candidate is one geocoding result.
type Candidate struct {
	Label           string           `json:"label"`
	Lat             float64          `json:"lat"`
	Lon             float64          `json:"lon"`
	Components      place.Components `json:"components"`
	CountryCode     string           `json:"country_code"`
	Provider        string           `json:"provider"`
	ProviderPlaceID string           `json:"provider_place_id"`
	Confidence      float64          `json:"confidence"`
}

// Client talks to a Nominatim instance.
type Client struct {
	baseURL    string
	userAgent  string
	email      string
	httpClient *http.Client
	cache      *gocache.Cache

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a geocoding client configured from the environment
// (NOMINATIM_BASE, NOMINATIM_USER_AGENT, NOMINATIM_EMAIL).
func NewClient() *Client {
	return NewClientWithConfig(
		os.Getenv("NOMINATIM_BASE"),
		os.Getenv("NOMINATIM_USER_AGENT"),
		os.Getenv("NOMINATIM_EMAIL"),
	)
}

// NewClientWithConfig creates a geocoding client with explicit settings.
// Empty values fall back to the public Nominatim defaults.
func NewClientWithConfig(baseURL, userAgent, email string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		email:      email,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      gocache.New(cacheTTL, 10*time.Minute),
	}
}

// Search looks up places matching a free-form query.
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" || len(query) > 120 {
		return nil, nil
	}

	cacheKey := c.cacheKey("search", map[string]any{"q": query})
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]Candidate), nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "5")
	params.Set("addressdetails", "1")

	var raw []nominatimResult
	if err := c.get(ctx, "search", params, &raw); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(raw))
	for _, r := range raw {
		candidates = append(candidates, r.candidate())
	}

	c.cache.Set(cacheKey, candidates, cacheTTL)
	return candidates, nil
}

// Reverse resolves coordinates to the nearest place.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*Candidate, error) {
	// Round for cache key stability; the raw values still go on the wire.
	cacheKey := c.cacheKey("reverse", map[string]any{
		"lat": strconv.FormatFloat(lat, 'f', 5, 64),
		"lon": strconv.FormatFloat(lon, 'f', 5, 64),
	})
	if cached, ok := c.cache.Get(cacheKey); ok {
		candidate := cached.(Candidate)
		return &candidate, nil
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("addressdetails", "1")

	var raw nominatimResult
	if err := c.get(ctx, "reverse", params, &raw); err != nil {
		return nil, err
	}

	candidate := raw.candidate()
	c.cache.Set(cacheKey, candidate, cacheTTL)
	return &candidate, nil
}

// Forward resolves a city/country pair to coordinates.
func (c *Client) Forward(ctx context.Context, city, country string) (*Candidate, error) {
	if city == "" || country == "" {
		return nil, nil
	}

	cacheKey := c.cacheKey("forward", map[string]any{"city": city, "country": country})
	if cached, ok := c.cache.Get(cacheKey); ok {
		candidate := cached.(Candidate)
		return &candidate, nil
	}

	params := url.Values{}
	params.Set("q", city+", "+country)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	var raw []nominatimResult
	if err := c.get(ctx, "search", params, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	candidate := raw[0].candidate()
	c.cache.Set(cacheKey, candidate, cacheTTL)
	return &candidate, nil
}

func (c *Client) cacheKey(operation string, params map[string]any) string {
	encoded, _ := json.Marshal(params)
	return fmt.Sprintf("geocode:%s:%x", operation, md5.Sum(encoded))
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	c.rateLimit()

	if c.email != "" {
		params.Set("email", c.email)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := resp.Header.Get("Retry-After")
		slog.Warn("Rate limited by Nominatim", "retry_after", retryAfter)
		return fmt.Errorf("rate limited by nominatim (retry after %s)", retryAfter)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("nominatim returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	return nil
}

func (c *Client) rateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elapsed := time.Since(c.lastRequest); elapsed < rateLimitDelay {
		time.Sleep(rateLimitDelay - elapsed)
	}
	c.lastRequest = time.Now()
}

type nominatimResult struct {
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Name        string            `json:"name"`
	PlaceID     json.Number       `json:"place_id"`
	Importance  float64           `json:"importance"`
	Address     map[string]string `json:"address"`
}

func (r nominatimResult) candidate() Candidate {
	lat, _ := strconv.ParseFloat(r.Lat, 64)
	lon, _ := strconv.ParseFloat(r.Lon, 64)

	return Candidate{
		Label: r.DisplayName,
		Lat:   lat,
		Lon:   lon,
		Components: place.Components{
			PlaceName: r.Name,
			City:      firstOf(r.Address, "city", "town", "village", "municipality"),
			Admin:     firstOf(r.Address, "state", "province", "region"),
			Country:   r.Address["country"],
		},
		CountryCode:     strings.ToUpper(r.Address["country_code"]),
		Provider:        "nominatim",
		ProviderPlaceID: r.PlaceID.String(),
		Confidence:      importanceToConfidence(r.Importance),
	}
}

func firstOf(address map[string]string, keys ...string) string {
	for _, key := range keys {
		if address[key] != "" {
			return address[key]
		}
	}
	return ""
}

// importanceToConfidence maps Nominatim's importance score onto the
// [0.5, 0.95] confidence range the place gate expects.
func importanceToConfidence(importance float64) float64 {
	confidence := 0.5 + importance*0.45
	if confidence > 0.95 {
		return 0.95
	}
	if confidence < 0.5 {
		return 0.5
	}
	return confidence
}
