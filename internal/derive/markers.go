package derive

import "github.com/korlebu/facilitypulse/internal/domain/entities"

// BuildMarkers projects facilities with usable coordinates into map-ready
// markers. Status priority: anomaly over uncertain over validated. Category
// is mutually exclusive and tested maternity first, then trauma, with
// infrastructure as the fallback.
func BuildMarkers(facilities []entities.Facility) []entities.FacilityMarker {
	markers := make([]entities.FacilityMarker, 0, len(facilities))
	for i := range facilities {
		f := &facilities[i]
		if !f.Mappable() {
			continue
		}
		markers = append(markers, entities.FacilityMarker{
			FacilityID:   f.ID,
			Name:         f.Name,
			Lat:          *f.Lat,
			Lon:          *f.Lon,
			Status:       markerStatus(f),
			Category:     markerCategory(f),
			Region:       f.Region,
			FacilityType: f.FacilityType,
			Specialties:  f.RawSpecialties,
		})
	}
	return markers
}

func markerStatus(f *entities.Facility) string {
	if f.HasHighSeverityAnomaly() {
		return entities.MarkerStatusAnomaly
	}
	if f.HasUncertainCapability() {
		return entities.MarkerStatusUncertain
	}
	return entities.MarkerStatusValidated
}

func markerCategory(f *entities.Facility) string {
	if f.Maternity["delivery_natural"].Available() || f.Maternity["c_section"].Available() {
		return entities.CategoryMaternity
	}
	for _, key := range []string{"emergency_24_7", "ambulance", "xray", "general_surgery"} {
		if f.Trauma[key].Available() {
			return entities.CategoryTrauma
		}
	}
	return entities.CategoryInfrastructure
}
