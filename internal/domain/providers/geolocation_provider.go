package providers

import (
	"context"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
)

// GeolocationProvider resolves a free-text place name (typically a station
// name) to coordinates used as the search origin.
type GeolocationProvider interface {
	Geocode(ctx context.Context, place string) (*entities.Location, error)
}
