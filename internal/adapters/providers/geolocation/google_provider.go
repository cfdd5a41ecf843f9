package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
	"github.com/medigate/clinic-navigator/internal/domain/providers"
	"github.com/medigate/clinic-navigator/pkg/errors"
)

const (
	googlePlacesTextURL    = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// GoogleGeolocationProvider implements the GeolocationProvider interface using
// the Google Places Text Search API. Station names with a preset location are
// resolved without touching the network.
type GoogleGeolocationProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	placesURL  string
}

// NewGoogleGeolocationProvider creates a new Google geolocation provider
func NewGoogleGeolocationProvider(apiKey string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewGoogleGeolocationProviderWithOptions(apiKey, cache, googlePlacesTextURL, nil)
}

// NewGoogleGeolocationProviderWithOptions allows overriding the base URL and
// HTTP client (used for tests)
func NewGoogleGeolocationProviderWithOptions(apiKey string, cache providers.CacheProvider, placesURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(placesURL) == "" {
		placesURL = googlePlacesTextURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleGeolocationProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		placesURL:  placesURL,
	}
}

// Geocode resolves a place name to coordinates
func (g *GoogleGeolocationProvider) Geocode(ctx context.Context, place string) (*entities.Location, error) {
	trimmed := strings.TrimSpace(place)
	if trimmed == "" {
		return nil, errors.NewValidationError("place is required")
	}

	if loc, ok := StationLocation(trimmed); ok {
		return loc, nil
	}

	cacheKey := "geo:v1:place:" + hashKey(strings.ToLower(trimmed))
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var loc entities.Location
			if err := json.Unmarshal(cached, &loc); err == nil && (loc.Latitude != 0 || loc.Longitude != 0) {
				recordCacheLookup(ctx, true)
				return &loc, nil
			}
		}
		recordCacheLookup(ctx, false)
	}

	loc, err := g.searchPlace(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		if payload, err := json.Marshal(*loc); err == nil {
			_ = g.cache.Set(ctx, cacheKey, payload, defaultGeocodeCacheTTL)
		}
	}

	return loc, nil
}

func (g *GoogleGeolocationProvider) searchPlace(ctx context.Context, query string) (*entities.Location, error) {
	if g.apiKey == "" {
		return nil, errors.NewValidationError("google maps api key is required")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("language", "ja")
	params.Set("region", "jp")
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("%s?%s", g.placesURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.NewInternalError("failed to build places text search request", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewExternalError("places text search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewExternalError(fmt.Sprintf("places text search returned status %d", resp.StatusCode), nil)
	}

	var payload googlePlacesTextSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalError("failed to decode places text search response", err)
	}

	if payload.Status == "ZERO_RESULTS" || len(payload.Results) == 0 {
		return nil, errors.NewNotFoundError("no results for place: " + query)
	}
	if payload.Status != "OK" {
		if payload.ErrorMessage != "" {
			return nil, errors.NewExternalError(fmt.Sprintf("places text search failed: %s - %s", payload.Status, payload.ErrorMessage), nil)
		}
		return nil, errors.NewExternalError("places text search failed: "+payload.Status, nil)
	}

	result := payload.Results[0]
	return &entities.Location{
		Latitude:  result.Geometry.Location.Lat,
		Longitude: result.Geometry.Location.Lng,
	}, nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

type googlePlacesTextSearchResponse struct {
	Status       string                         `json:"status"`
	ErrorMessage string                         `json:"error_message,omitempty"`
	Results      []googlePlacesTextSearchResult `json:"results"`
}

type googlePlacesTextSearchResult struct {
	FormattedAddress string         `json:"formatted_address"`
	PlaceID          string         `json:"place_id"`
	Name             string         `json:"name"`
	Geometry         googleGeometry `json:"geometry"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
