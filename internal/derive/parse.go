// Package derive implements the facility data derivation layer: pure,
// side-effect-free functions that turn a loosely-typed facility dataset into
// dashboard metrics, map markers, action plans, ranked recommendations,
// desert zone geometry, and specialty tables. Nothing in this package
// performs I/O or retains state between calls.
package derive

import (
	"math"
	"sort"
	"strconv"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

const defaultFacilityName = "Unknown facility"

// ParseFacilities converts arbitrary decoded JSON (an array of facility-like
// objects, or a keyed mapping of them) into normalized Facility records. It
// is the only boundary producing the strict Facility type: missing fields
// resolve to documented defaults, non-finite coordinates are nulled, and
// non-object entries are silently dropped. Nil input yields an empty slice.
func ParseFacilities(raw any) []entities.Facility {
	items := collectItems(raw)
	facilities := make([]entities.Facility, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok || obj == nil {
			continue
		}
		facilities = append(facilities, parseFacility(obj))
	}
	return facilities
}

func collectItems(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		// Keyed mapping: take the values in stable key order.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]any, 0, len(keys))
		for _, k := range keys {
			items = append(items, v[k])
		}
		return items
	default:
		return nil
	}
}

func parseFacility(obj map[string]any) entities.Facility {
	name := stringify(obj["name"])
	if name == "" {
		name = defaultFacilityName
	}
	return entities.Facility{
		ID:             stringify(obj["facility_id"]),
		Name:           name,
		Region:         stringify(obj["region"]),
		District:       stringify(obj["district"]),
		Lat:            finiteFloat(obj["lat"]),
		Lon:            finiteFloat(obj["lon"]),
		FacilityType:   stringify(obj["facility_type"]),
		Maternity:      parseCapabilityGroup(obj["maternity"]),
		Trauma:         parseCapabilityGroup(obj["trauma"]),
		Infrastructure: parseCapabilityGroup(obj["infrastructure"]),
		Anomalies:      parseAnomalies(obj["anomalies"]),
		RawSpecialties: stringList(obj["raw_specialties"]),
		RawProcedures:  stringList(obj["raw_procedures"]),
	}
}

func parseCapabilityGroup(raw any) map[string]entities.Capability {
	group := make(map[string]entities.Capability)
	obj, ok := raw.(map[string]any)
	if !ok {
		return group
	}
	for key, entry := range obj {
		capObj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		group[key] = parseCapability(capObj)
	}
	return group
}

func parseCapability(obj map[string]any) entities.Capability {
	c := entities.Capability{
		State:    stringify(obj["state"]),
		Evidence: parseEvidenceList(obj["evidence"]),
	}
	if v, ok := obj["value"].(bool); ok {
		c.Value = &v
	}
	if n, ok := obj["confidence"].(float64); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
		c.Confidence = &n
	}
	return c
}

func parseEvidenceList(raw any) []entities.Evidence {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	evidence := make([]entities.Evidence, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		evidence = append(evidence, entities.Evidence{
			RowID:        stringify(obj["row_id"]),
			Column:       stringify(obj["column"]),
			Snippet:      stringify(obj["snippet"]),
			EvidenceType: stringify(obj["evidence_type"]),
		})
	}
	return evidence
}

func parseAnomalies(raw any) []entities.Anomaly {
	list, ok := raw.([]any)
	if !ok {
		return []entities.Anomaly{}
	}
	anomalies := make([]entities.Anomaly, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		anomalies = append(anomalies, entities.Anomaly{
			FacilityID:      stringify(obj["facility_id"]),
			Bundle:          stringify(obj["bundle"]),
			AnomalyType:     stringify(obj["anomaly_type"]),
			Severity:        stringify(obj["severity"]),
			Reason:          stringify(obj["reason"]),
			RequiredMissing: stringList(obj["required_missing"]),
			Evidence:        parseEvidenceList(obj["evidence"]),
		})
	}
	return anomalies
}

func stringList(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := stringify(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stringify coerces scalar JSON values to strings; nil and non-scalar values
// become "".
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return ""
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// finiteFloat accepts only finite numeric values; everything else becomes
// nil.
func finiteFloat(v any) *float64 {
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}
