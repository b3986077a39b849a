package derive

import (
	"testing"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

func TestDeriveMetrics_EmptyDataset(t *testing.T) {
	m := DeriveMetrics(nil)
	if m.TotalFacilities != 0 || m.SafeCSection != 0 || m.HighRiskAnomalies != 0 || m.MedicalDesertRegions != 0 {
		t.Errorf("expected zeroed metrics, got %+v", m)
	}
	if !almostEqual(m.CSectionCoverage, 0) {
		t.Errorf("coverage must be 0 for empty dataset, got %f", m.CSectionCoverage)
	}
}

func TestDeriveMetrics_Counters(t *testing.T) {
	facilities := []entities.Facility{
		{
			Name:   "A",
			Region: "Greater Accra",
			Maternity: map[string]entities.Capability{
				"c_section": capTrue(),
			},
			Anomalies: []entities.Anomaly{
				highAnomaly("missing blood bank"),
				{AnomalyType: "high_risk_pattern", Severity: "medium"}, // type substring counts as high
				{Severity: "LOW"},
			},
		},
		{
			Name:   "B",
			Region: " Greater Accra ", // trimmed into the same region
			Maternity: map[string]entities.Capability{
				"c_section": capFalse(),
			},
		},
		{
			Name:   "C",
			Region: "Upper West",
			Maternity: map[string]entities.Capability{
				"c_section": capNull(),
			},
		},
		{Name: "D"}, // no region: excluded from region stats
	}

	m := DeriveMetrics(facilities)
	if m.TotalFacilities != 4 {
		t.Errorf("total = %d", m.TotalFacilities)
	}
	if m.SafeCSection != 1 {
		t.Errorf("safe c-section = %d; only value==true may count", m.SafeCSection)
	}
	if m.HighRiskAnomalies != 2 {
		t.Errorf("high risk anomalies = %d", m.HighRiskAnomalies)
	}
	if m.MedicalDesertRegions != 1 {
		t.Errorf("desert regions = %d; Upper West has no safe c-section", m.MedicalDesertRegions)
	}
	if !almostEqual(m.CSectionCoverage, 0.25) {
		t.Errorf("coverage = %f", m.CSectionCoverage)
	}
}

func TestDeriveMetrics_CoverageWithinBounds(t *testing.T) {
	facilities := []entities.Facility{fullMaternityFacility("A"), fullMaternityFacility("B")}
	m := DeriveMetrics(facilities)
	if m.CSectionCoverage < 0 || m.CSectionCoverage > 1 {
		t.Errorf("coverage out of [0,1]: %f", m.CSectionCoverage)
	}
	if !almostEqual(m.CSectionCoverage, 1.0) {
		t.Errorf("coverage = %f", m.CSectionCoverage)
	}
}

func TestDeriveMetrics_Idempotent(t *testing.T) {
	facilities := []entities.Facility{fullMaternityFacility("A"), {Name: "B", Region: "Volta"}}
	first := DeriveMetrics(facilities)
	second := DeriveMetrics(facilities)
	if first != second {
		t.Errorf("metrics not idempotent: %+v vs %+v", first, second)
	}
}
