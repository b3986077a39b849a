package entities

// TriageLevel is a coarse urgency label attached to a recommendation. It is
// not a clinical diagnosis.
type TriageLevel string

const (
	TriageCritical TriageLevel = "critical"
	TriageStable   TriageLevel = "stable"
	TriageMonitor  TriageLevel = "monitor"
)

// Marker statuses, in priority order: a high-severity anomaly wins over an
// uncertain capability, which wins over validated.
const (
	MarkerStatusAnomaly   = "anomaly"
	MarkerStatusUncertain = "uncertain"
	MarkerStatusValidated = "validated"
)

// Marker categories. Every mappable facility gets exactly one, tested in
// this priority order.
const (
	CategoryMaternity      = "Maternity"
	CategoryTrauma         = "Trauma"
	CategoryInfrastructure = "Infrastructure"
)

// Desert zone severity tiers.
const (
	ZoneSeverityCritical = "critical"
	ZoneSeverityHigh     = "high"
	ZoneSeverityModerate = "moderate"
)

// Metrics are the dataset-wide dashboard counters.
type Metrics struct {
	TotalFacilities      int     `json:"total_facilities"`
	SafeCSection         int     `json:"safe_c_section"`
	HighRiskAnomalies    int     `json:"high_risk_anomalies"`
	MedicalDesertRegions int     `json:"medical_desert_regions"`
	CSectionCoverage     float64 `json:"c_section_coverage"`
}

// FacilityMarker is the map-ready display projection of a facility. Derived,
// never persisted.
type FacilityMarker struct {
	FacilityID   string   `json:"facility_id"`
	Name         string   `json:"name"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	Status       string   `json:"status"`
	Category     string   `json:"category"`
	Region       string   `json:"region,omitempty"`
	FacilityType string   `json:"facility_type,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
}

// ActionPlan is the single highest-priority remediation recommendation. When
// no anomalies exist anywhere, Region carries the "No anomalies detected"
// sentinel rather than an empty value.
type ActionPlan struct {
	Region       string `json:"region"`
	Gap          string `json:"gap"`
	Severity     string `json:"severity"`
	Candidate    string `json:"candidate"`
	Intervention string `json:"intervention"`
}

// RecommendedCapability pairs a display label with its availability at the
// recommended facility.
type RecommendedCapability struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// FacilityRecommendation is one ranked entry produced by the recommendation
// engine.
type FacilityRecommendation struct {
	Name         string                  `json:"name"`
	ScoreLabel   string                  `json:"score_label"`
	Capabilities []RecommendedCapability `json:"capabilities"`
	Evidence     string                  `json:"evidence"`
	TriageLevel  TriageLevel             `json:"triage_level"`
}

// DesertZoneData is a geographic overlay for a region lacking baseline
// capabilities.
type DesertZoneData struct {
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	RadiusMeters float64  `json:"radius_meters"`
	Severity     string   `json:"severity"`
	Region       string   `json:"region"`
	Gaps         []string `json:"gaps"`
}
