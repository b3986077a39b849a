package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

func truth(b bool) *bool { return &b }

func TestHitFromFacility(t *testing.T) {
	lat, lon := 5.55, -0.2
	f := entities.Facility{
		ID:             "gh-001",
		Name:           "Ridge Hospital",
		Region:         "Greater Accra",
		District:       "Accra Metro",
		FacilityType:   "Regional Hospital",
		Lat:            &lat,
		Lon:            &lon,
		RawSpecialties: []string{"Obstetrics", "Surgery"},
		Maternity: map[string]entities.Capability{
			"c_section":        {Value: truth(true)},
			"delivery_natural": {Value: truth(true)},
		},
		Trauma: map[string]entities.Capability{
			"xray": {Value: truth(false)},
		},
		Infrastructure: map[string]entities.Capability{
			"blood_bank": {Value: truth(true)},
		},
	}

	hit := HitFromFacility(f)

	assert.Equal(t, "gh-001", hit.ID)
	assert.Equal(t, "Ridge Hospital", hit.Name)
	assert.Equal(t, "Greater Accra", hit.Region)
	assert.Equal(t, 3, hit.CapCount)
	assert.Equal(t, 5.55, hit.Latitude)
	assert.Equal(t, -0.2, hit.Longitude)
	assert.Equal(t, []string{"Obstetrics", "Surgery"}, hit.Specialties)
}

func TestHitFromFacilityNoCoordinates(t *testing.T) {
	f := entities.Facility{ID: "gh-002", Name: "Remote Clinic"}

	hit := HitFromFacility(f)

	assert.Zero(t, hit.Latitude)
	assert.Zero(t, hit.Longitude)
	assert.Zero(t, hit.CapCount)
	assert.Empty(t, hit.Specialties)
}
