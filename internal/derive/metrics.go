package derive

import (
	"strings"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

// DeriveMetrics computes the dataset-wide dashboard counters. Facilities
// without a region are excluded from region statistics entirely rather than
// being grouped under an "Unknown" bucket. An empty dataset yields zeroed
// metrics, with coverage pinned to 0 instead of dividing by zero.
func DeriveMetrics(facilities []entities.Facility) entities.Metrics {
	m := entities.Metrics{TotalFacilities: len(facilities)}

	regionCSection := make(map[string]int)
	for i := range facilities {
		f := &facilities[i]
		if f.HasCap("c_section") {
			m.SafeCSection++
		}
		for _, a := range f.Anomalies {
			if a.HighSeverity() {
				m.HighRiskAnomalies++
			}
		}
		region := strings.TrimSpace(f.Region)
		if region == "" {
			continue
		}
		if _, ok := regionCSection[region]; !ok {
			regionCSection[region] = 0
		}
		if f.HasCap("c_section") {
			regionCSection[region]++
		}
	}

	for _, count := range regionCSection {
		if count == 0 {
			m.MedicalDesertRegions++
		}
	}

	if m.TotalFacilities > 0 {
		m.CSectionCoverage = float64(m.SafeCSection) / float64(m.TotalFacilities)
	}
	return m
}
