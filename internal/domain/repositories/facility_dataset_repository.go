package repositories

import (
	"context"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
)

// FacilityDatasetRepository provides read access to the merged clinic
// dataset. The dataset is immutable for the lifetime of the process, so
// implementations load it once and share the slice across concurrent
// readers. Callers must not mutate the returned facilities.
type FacilityDatasetRepository interface {
	Load(ctx context.Context) ([]*entities.Facility, error)
}
