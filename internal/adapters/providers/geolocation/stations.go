package geolocation

import (
	"strings"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
)

// stationLocations maps well-known station names to their coordinates so the
// common pickup points resolve without an API call.
var stationLocations = map[string]entities.Location{
	"田町駅": {Latitude: 35.645736, Longitude: 139.747575},
	"上野駅": {Latitude: 35.713768, Longitude: 139.777254},
	"柏駅":  {Latitude: 35.862222, Longitude: 139.970556},
}

// StationLocation looks up a preset station by name. The suffix 駅 is
// optional.
func StationLocation(name string) (*entities.Location, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, false
	}
	if loc, ok := stationLocations[trimmed]; ok {
		return &loc, true
	}
	if loc, ok := stationLocations[trimmed+"駅"]; ok {
		return &loc, true
	}
	return nil, false
}
