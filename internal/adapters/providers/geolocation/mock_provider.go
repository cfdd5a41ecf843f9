package geolocation

import (
	"context"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
	"github.com/medigate/clinic-navigator/internal/domain/providers"
	"github.com/medigate/clinic-navigator/pkg/errors"
)

// MockGeolocationProvider resolves only the preset stations. It lets the API
// run without a Google Maps API key.
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode resolves a place name against the preset stations
func (m *MockGeolocationProvider) Geocode(ctx context.Context, place string) (*entities.Location, error) {
	if loc, ok := StationLocation(place); ok {
		return loc, nil
	}
	return nil, errors.NewNotFoundError("no results for place: " + place)
}
