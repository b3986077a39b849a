package entities

import "strings"

// Capability states that carry structured provenance. Anything else,
// including StateUncertain, is treated as lower-confidence.
const (
	StateAsserted  = "ASSERTED"
	StateExtracted = "EXTRACTED"
	StateUncertain = "UNCERTAIN"
)

// Evidence records the provenance of a capability assertion. Every field is
// optional; absence means no provenance was recorded, not an error.
type Evidence struct {
	RowID        string `json:"row_id,omitempty"`
	Column       string `json:"column,omitempty"`
	Snippet      string `json:"snippet,omitempty"`
	EvidenceType string `json:"evidence_type,omitempty"`
}

// Capability represents one binary clinical or infrastructure capability of a
// facility, e.g. "has operating room". Value is tri-state: true, false, or
// nil (unknown / not evaluated). Only true counts as available anywhere in
// scoring; false and nil are treated identically except where State is
// inspected directly.
type Capability struct {
	Value      *bool      `json:"value"`
	State      string     `json:"state,omitempty"`
	Confidence *float64   `json:"confidence,omitempty"`
	Evidence   []Evidence `json:"evidence,omitempty"`
}

// Available reports whether the capability is verified present.
func (c Capability) Available() bool {
	return c.Value != nil && *c.Value
}

// Snippet returns the representative evidence text: the first evidence
// entry's snippet, or "" when no evidence is recorded.
func (c Capability) Snippet() string {
	if len(c.Evidence) == 0 {
		return ""
	}
	return c.Evidence[0].Snippet
}

// Anomaly is a detected data-quality or care-gap issue tied to a facility.
type Anomaly struct {
	FacilityID      string     `json:"facility_id,omitempty"`
	Bundle          string     `json:"bundle,omitempty"`
	AnomalyType     string     `json:"anomaly_type,omitempty"`
	Severity        string     `json:"severity,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	RequiredMissing []string   `json:"required_missing,omitempty"`
	Evidence        []Evidence `json:"evidence,omitempty"`
}

// HighSeverity reports whether the anomaly should be surfaced as high
// severity: severity equals HIGH, or the anomaly type merely contains HIGH.
// The substring test on the type is deliberately looser than the exact test
// on severity.
func (a Anomaly) HighSeverity() bool {
	if strings.ToUpper(a.Severity) == "HIGH" {
		return true
	}
	return strings.Contains(strings.ToUpper(a.AnomalyType), "HIGH")
}

// Facility is the root entity of the monitoring dataset. Facilities are
// constructed once by the normalizer and never mutated; every derivation
// computes fresh output structures.
type Facility struct {
	ID             string                `json:"facility_id"`
	Name           string                `json:"name"`
	Region         string                `json:"region,omitempty"`
	District       string                `json:"district,omitempty"`
	Lat            *float64              `json:"lat"`
	Lon            *float64              `json:"lon"`
	FacilityType   string                `json:"facility_type,omitempty"`
	Maternity      map[string]Capability `json:"maternity"`
	Trauma         map[string]Capability `json:"trauma"`
	Infrastructure map[string]Capability `json:"infrastructure"`
	Anomalies      []Anomaly             `json:"anomalies"`
	RawSpecialties []string              `json:"raw_specialties"`
	RawProcedures  []string              `json:"raw_procedures"`
}

// Mappable reports whether the facility carries a plottable coordinate pair.
func (f *Facility) Mappable() bool {
	return f.Lat != nil && f.Lon != nil
}

// Capability resolves a capability key against the three capability groups,
// checking maternity, then trauma, then infrastructure.
func (f *Facility) Capability(key string) (Capability, bool) {
	if c, ok := f.Maternity[key]; ok {
		return c, true
	}
	if c, ok := f.Trauma[key]; ok {
		return c, true
	}
	if c, ok := f.Infrastructure[key]; ok {
		return c, true
	}
	return Capability{}, false
}

// HasCap reports whether the capability identified by key is verified
// present in any group.
func (f *Facility) HasCap(key string) bool {
	c, ok := f.Capability(key)
	return ok && c.Available()
}

// HasHighSeverityAnomaly reports whether any of the facility's anomalies is
// high severity.
func (f *Facility) HasHighSeverityAnomaly() bool {
	for _, a := range f.Anomalies {
		if a.HighSeverity() {
			return true
		}
	}
	return false
}

// HasUncertainCapability reports whether any capability in any group carries
// the UNCERTAIN state.
func (f *Facility) HasUncertainCapability() bool {
	for _, group := range []map[string]Capability{f.Maternity, f.Trauma, f.Infrastructure} {
		for _, c := range group {
			if c.State == StateUncertain {
				return true
			}
		}
	}
	return false
}
