package derive

import (
	"strings"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

// Sentinel region for the all-clear plan. Callers must treat this as a
// valid, inspectable state, not an error path.
const NoAnomaliesRegion = "No anomalies detected"

const fallbackGap = "Capability gap under review"

// DeriveActionPlan surfaces the single highest-priority remediation
// recommendation: the region with the most accumulated anomalies, with ties
// going to the region encountered first in input order. The first anomaly of
// that region (insertion order) is the representative.
func DeriveActionPlan(facilities []entities.Facility) entities.ActionPlan {
	var regionOrder []string
	regionAnomalies := make(map[string][]entities.Anomaly)

	for i := range facilities {
		f := &facilities[i]
		region := strings.TrimSpace(f.Region)
		if region == "" || len(f.Anomalies) == 0 {
			continue
		}
		if _, ok := regionAnomalies[region]; !ok {
			regionOrder = append(regionOrder, region)
		}
		regionAnomalies[region] = append(regionAnomalies[region], f.Anomalies...)
	}

	if len(regionOrder) == 0 {
		return entities.ActionPlan{
			Region:       NoAnomaliesRegion,
			Gap:          "None",
			Severity:     "Low",
			Candidate:    "N/A",
			Intervention: "Continue routine monitoring",
		}
	}

	worst := regionOrder[0]
	for _, region := range regionOrder[1:] {
		if len(regionAnomalies[region]) > len(regionAnomalies[worst]) {
			worst = region
		}
	}

	representative := regionAnomalies[worst][0]
	gap := representative.Reason
	if gap == "" && len(representative.RequiredMissing) > 0 {
		gap = representative.RequiredMissing[0]
	}
	if gap == "" {
		gap = fallbackGap
	}

	return entities.ActionPlan{
		Region:       worst,
		Gap:          gap,
		Severity:     severityLabel(representative.Severity),
		Candidate:    firstFacilityIn(facilities, worst),
		Intervention: interventionFor(gap),
	}
}

func severityLabel(severity string) string {
	switch strings.ToUpper(severity) {
	case "HIGH":
		return "High"
	case "LOW":
		return "Low"
	default:
		return "Medium"
	}
}

func firstFacilityIn(facilities []entities.Facility, region string) string {
	for i := range facilities {
		if strings.TrimSpace(facilities[i].Region) == region {
			return facilities[i].Name
		}
	}
	return "N/A"
}

// interventionFor maps a gap description to an intervention via a fixed
// keyword cascade, first match wins.
func interventionFor(gap string) string {
	lower := strings.ToLower(gap)
	switch {
	case strings.Contains(lower, "ultrasound"):
		return "Deploy a mobile ultrasound unit"
	case strings.Contains(lower, "blood"):
		return "Establish a blood bank partnership"
	case strings.Contains(lower, "anesthesia"):
		return "Recruit visiting anesthesia coverage"
	default:
		return "Targeted capability upgrade"
	}
}
