package derive

import (
	"testing"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

func coveredFacility(name, region string, lat, lon float64) entities.Facility {
	return entities.Facility{
		Name: name, Region: region, Lat: coord(lat), Lon: coord(lon),
		Maternity: map[string]entities.Capability{
			"c_section":  capTrue(),
			"blood_bank": capTrue(),
		},
		Trauma: map[string]entities.Capability{
			"emergency_24_7": capTrue(),
		},
	}
}

func TestDeriveDesertZones_SkipsFullyCoveredRegions(t *testing.T) {
	zones := DeriveDesertZones([]entities.Facility{coveredFacility("A", "Greater Accra", 5.6, -0.2)})
	if len(zones) != 0 {
		t.Errorf("covered region must not emit a zone: %+v", zones)
	}
}

func TestDeriveDesertZones_SkipsRegionsWithoutCoordinates(t *testing.T) {
	zones := DeriveDesertZones([]entities.Facility{{Name: "A", Region: "Savannah"}})
	if len(zones) != 0 {
		t.Errorf("region without mappable facilities must not emit a zone: %+v", zones)
	}
}

func TestDeriveDesertZones_SeverityTiers(t *testing.T) {
	all3 := entities.Facility{Name: "A", Region: "North East", Lat: coord(10.4), Lon: coord(-0.5)}
	two := entities.Facility{
		Name: "B", Region: "Oti", Lat: coord(7.9), Lon: coord(0.3),
		Maternity: map[string]entities.Capability{"c_section": capTrue()},
	}
	one := entities.Facility{
		Name: "C", Region: "Bono East", Lat: coord(7.6), Lon: coord(-1.9),
		Maternity: map[string]entities.Capability{"c_section": capTrue(), "blood_bank": capTrue()},
	}

	zones := DeriveDesertZones([]entities.Facility{all3, two, one})
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(zones))
	}
	bySeverity := map[string]string{}
	for _, z := range zones {
		bySeverity[z.Region] = z.Severity
	}
	if bySeverity["North East"] != entities.ZoneSeverityCritical {
		t.Errorf("3 gaps should be critical, got %q", bySeverity["North East"])
	}
	if bySeverity["Oti"] != entities.ZoneSeverityHigh {
		t.Errorf("2 gaps should be high, got %q", bySeverity["Oti"])
	}
	if bySeverity["Bono East"] != entities.ZoneSeverityModerate {
		t.Errorf("1 gap should be moderate, got %q", bySeverity["Bono East"])
	}
}

func TestDeriveDesertZones_CentroidAndRadius(t *testing.T) {
	facilities := []entities.Facility{
		{Name: "A", Region: "Upper East", Lat: coord(10.0), Lon: coord(-1.0)},
		{Name: "B", Region: "Upper East", Lat: coord(11.0), Lon: coord(-0.5)},
		{Name: "C", Region: "Upper East"}, // no coords: excluded from geometry
	}
	zones := DeriveDesertZones(facilities)
	if len(zones) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(zones))
	}
	z := zones[0]
	if !almostEqual(z.Lat, 10.5) || !almostEqual(z.Lng, -0.75) {
		t.Errorf("centroid = (%f, %f)", z.Lat, z.Lng)
	}
	// maxSpread = 1.0 degree latitude; 1.0 * 111000 * 0.6 = 66600, within bounds.
	if !almostEqual(z.RadiusMeters, 66600) {
		t.Errorf("radius = %f", z.RadiusMeters)
	}
}

func TestDeriveDesertZones_RadiusClamped(t *testing.T) {
	// Single facility: zero spread, clamps to the minimum.
	zones := DeriveDesertZones([]entities.Facility{
		{Name: "A", Region: "Ahafo", Lat: coord(7.0), Lon: coord(-2.5)},
	})
	if !almostEqual(zones[0].RadiusMeters, minZoneRadiusMeters) {
		t.Errorf("radius = %f, want minimum clamp", zones[0].RadiusMeters)
	}

	// Huge spread clamps to the maximum.
	zones = DeriveDesertZones([]entities.Facility{
		{Name: "A", Region: "Western", Lat: coord(4.0), Lon: coord(-3.0)},
		{Name: "B", Region: "Western", Lat: coord(11.0), Lon: coord(1.0)},
	})
	if !almostEqual(zones[0].RadiusMeters, maxZoneRadiusMeters) {
		t.Errorf("radius = %f, want maximum clamp", zones[0].RadiusMeters)
	}

	for _, z := range zones {
		if z.RadiusMeters < minZoneRadiusMeters || z.RadiusMeters > maxZoneRadiusMeters {
			t.Errorf("radius %f outside [%f, %f]", z.RadiusMeters, minZoneRadiusMeters, maxZoneRadiusMeters)
		}
	}
}
