package repositories

import (
	"context"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

// SearchParams describes a facility search request
type SearchParams struct {
	Query  string
	Region string
	Limit  int
}

// SearchHit is the indexed projection of a facility returned by search
type SearchHit struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Region       string   `json:"region"`
	District     string   `json:"district"`
	FacilityType string   `json:"facility_type"`
	Specialties  []string `json:"specialties"`
	CapCount     int      `json:"cap_count"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
}

// HitFromFacility builds the indexed projection of a facility. CapCount is
// the number of verified capabilities across all three groups and doubles as
// the index sorting field.
func HitFromFacility(f entities.Facility) SearchHit {
	hit := SearchHit{
		ID:           f.ID,
		Name:         f.Name,
		Region:       f.Region,
		District:     f.District,
		FacilityType: f.FacilityType,
		Specialties:  f.RawSpecialties,
	}
	for _, group := range []map[string]entities.Capability{f.Maternity, f.Trauma, f.Infrastructure} {
		for _, c := range group {
			if c.Available() {
				hit.CapCount++
			}
		}
	}
	if f.Mappable() {
		hit.Latitude = *f.Lat
		hit.Longitude = *f.Lon
	}
	return hit
}

// FacilitySearchRepository defines the search index operations
type FacilitySearchRepository interface {
	// InitSchema ensures the search collection exists
	InitSchema(ctx context.Context) error

	// Index upserts a facility document into the search collection
	Index(ctx context.Context, hit SearchHit) error

	// Delete removes a facility from the index
	Delete(ctx context.Context, id string) error

	// Search queries facilities by name and specialty text
	Search(ctx context.Context, params SearchParams) ([]SearchHit, error)
}
