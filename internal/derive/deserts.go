package derive

import (
	"strings"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

// Desert zone radius bounds and scaling. metersPerDegree approximates one
// degree of latitude; the 0.6 factor keeps the circle inside the region's
// coordinate spread.
const (
	minZoneRadiusMeters = 15000.0
	maxZoneRadiusMeters = 80000.0
	metersPerDegree     = 111000.0
	spreadFactor        = 0.6
)

type regionStats struct {
	lats      []float64
	lons      []float64
	cSection  int
	bloodBank int
	emergency int
}

// DeriveDesertZones clusters facilities by region into medical-desert
// overlays. A region qualifies only when it has at least one baseline gap
// (no C-section, no blood bank, or no 24/7 emergency across all its
// facilities) and at least one mappable facility; everything else is skipped
// rather than emitted empty.
func DeriveDesertZones(facilities []entities.Facility) []entities.DesertZoneData {
	var regionOrder []string
	regions := make(map[string]*regionStats)

	for i := range facilities {
		f := &facilities[i]
		region := strings.TrimSpace(f.Region)
		if region == "" {
			continue
		}
		stats, ok := regions[region]
		if !ok {
			stats = &regionStats{}
			regions[region] = stats
			regionOrder = append(regionOrder, region)
		}
		if f.Mappable() {
			stats.lats = append(stats.lats, *f.Lat)
			stats.lons = append(stats.lons, *f.Lon)
		}
		if f.HasCap("c_section") {
			stats.cSection++
		}
		if f.HasCap("blood_bank") {
			stats.bloodBank++
		}
		if f.HasCap("emergency_24_7") {
			stats.emergency++
		}
	}

	zones := make([]entities.DesertZoneData, 0, len(regionOrder))
	for _, region := range regionOrder {
		stats := regions[region]
		var gaps []string
		if stats.cSection == 0 {
			gaps = append(gaps, "No C-Section")
		}
		if stats.bloodBank == 0 {
			gaps = append(gaps, "No Blood Bank")
		}
		if stats.emergency == 0 {
			gaps = append(gaps, "No 24/7 Emergency")
		}
		if len(gaps) == 0 || len(stats.lats) == 0 {
			continue
		}

		zones = append(zones, entities.DesertZoneData{
			Lat:          mean(stats.lats),
			Lng:          mean(stats.lons),
			RadiusMeters: zoneRadius(stats.lats, stats.lons),
			Severity:     zoneSeverity(len(gaps)),
			Region:       region,
			Gaps:         gaps,
		})
	}
	return zones
}

func zoneSeverity(gapCount int) string {
	switch {
	case gapCount >= 3:
		return entities.ZoneSeverityCritical
	case gapCount >= 2:
		return entities.ZoneSeverityHigh
	default:
		return entities.ZoneSeverityModerate
	}
}

func zoneRadius(lats, lons []float64) float64 {
	spread := span(lats)
	if lonSpread := span(lons); lonSpread > spread {
		spread = lonSpread
	}
	radius := spread * metersPerDegree * spreadFactor
	if radius < minZoneRadiusMeters {
		return minZoneRadiusMeters
	}
	if radius > maxZoneRadiusMeters {
		return maxZoneRadiusMeters
	}
	return radius
}

func span(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
