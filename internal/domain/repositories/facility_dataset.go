package repositories

import (
	"context"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

// FacilityDataset loads the raw facility collection and returns it
// normalized. Implementations own all I/O; everything past this boundary
// works on the strict Facility type.
type FacilityDataset interface {
	// Load fetches and normalizes the full dataset.
	Load(ctx context.Context) ([]entities.Facility, error)

	// Source describes where the dataset comes from, for logging.
	Source() string
}
