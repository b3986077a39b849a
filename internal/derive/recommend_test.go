package derive

import (
	"reflect"
	"testing"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

func TestDeriveRecommendations_ExcludesZeroScores(t *testing.T) {
	facilities := []entities.Facility{
		{Name: "Nothing", Maternity: map[string]entities.Capability{"c_section": capFalse()}},
		fullMaternityFacility("Everything"),
	}
	recs := DeriveRecommendations(facilities, 3)
	if len(recs) != 1 || recs[0].Name != "Everything" {
		t.Fatalf("zero-score facility must never appear: %+v", recs)
	}
}

func TestDeriveRecommendations_SingleFullCapabilityFacility(t *testing.T) {
	recs := DeriveRecommendations([]entities.Facility{fullMaternityFacility("Korle Bu")}, 3)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	rec := recs[0]
	if rec.ScoreLabel != "5 of 5 maternity capabilities verified" {
		t.Errorf("score label = %q", rec.ScoreLabel)
	}
	// Sole/top entry is always forced critical.
	if rec.TriageLevel != entities.TriageCritical {
		t.Errorf("top entry triage = %q, want critical", rec.TriageLevel)
	}
	if len(rec.Capabilities) != len(SafeOBCaps) {
		t.Errorf("expected %d capability pairs", len(SafeOBCaps))
	}
	for _, pair := range rec.Capabilities {
		if !pair.Available {
			t.Errorf("capability %q should be available", pair.Label)
		}
	}
}

func TestDeriveRecommendations_TriageLevels(t *testing.T) {
	flagged := fullMaternityFacility("Flagged")
	flagged.Anomalies = []entities.Anomaly{highAnomaly("inconsistent records")}

	weak := entities.Facility{
		Name:      "Weak",
		Maternity: map[string]entities.Capability{"c_section": capTrue()},
	}

	recs := DeriveRecommendations([]entities.Facility{fullMaternityFacility("Top"), flagged, weak}, 3)
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	if recs[0].TriageLevel != entities.TriageCritical {
		t.Errorf("rank 0 forced critical, got %q", recs[0].TriageLevel)
	}
	// High-severity anomaly overrides the score-based level.
	if recs[1].Name != "Flagged" || recs[1].TriageLevel != entities.TriageMonitor {
		t.Errorf("rank 1 = %q/%q, want Flagged/monitor", recs[1].Name, recs[1].TriageLevel)
	}
	if recs[2].Name != "Weak" || recs[2].TriageLevel != entities.TriageCritical {
		t.Errorf("rank 2 = %q/%q, want Weak/critical (score < 4)", recs[2].Name, recs[2].TriageLevel)
	}
}

func TestDeriveRecommendations_StableTieOrder(t *testing.T) {
	a := fullMaternityFacility("First In")
	b := fullMaternityFacility("Second In")
	recs := DeriveRecommendations([]entities.Facility{a, b}, 2)
	if recs[0].Name != "First In" || recs[1].Name != "Second In" {
		t.Errorf("ties must keep input order: %q, %q", recs[0].Name, recs[1].Name)
	}
}

func TestDeriveRecommendations_LimitApplied(t *testing.T) {
	facilities := []entities.Facility{
		fullMaternityFacility("A"), fullMaternityFacility("B"),
		fullMaternityFacility("C"), fullMaternityFacility("D"),
	}
	recs := DeriveRecommendations(facilities, 2)
	if len(recs) != 2 {
		t.Errorf("limit not applied: got %d", len(recs))
	}
}

func TestDeriveContextualRecommendations_RequiredCapsHardFilter(t *testing.T) {
	strongButMissing := entities.Facility{
		Name: "Strong Profile",
		Trauma: map[string]entities.Capability{
			"emergency_24_7":  capTrue(),
			"xray":            capTrue(),
			"general_surgery": capTrue(),
			"trauma_surgery":  capTrue(),
			"ambulance":       capTrue(),
		},
	}
	qualifying := entities.Facility{
		Name: "Qualifying",
		Trauma: map[string]entities.Capability{
			"emergency_24_7": capTrue(),
		},
		Infrastructure: map[string]entities.Capability{
			"blood_bank": capTrue(),
		},
	}

	recs := DeriveContextualRecommendations(
		[]entities.Facility{strongButMissing, qualifying},
		ContextTrauma, 3, []string{"blood_bank"},
	)
	if len(recs) != 1 || recs[0].Name != "Qualifying" {
		t.Fatalf("hard filter must exclude facilities missing a required cap: %+v", recs)
	}
}

func TestDeriveContextualRecommendations_TopEntryForcedStable(t *testing.T) {
	weak := entities.Facility{
		Name:   "Weak But Top",
		Trauma: map[string]entities.Capability{"xray": capTrue()},
	}
	recs := DeriveContextualRecommendations([]entities.Facility{weak}, ContextTrauma, 3, nil)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	// Score 1 of 5 would be critical; the anomaly-free top entry is forced
	// stable. This deliberately differs from DeriveRecommendations.
	if recs[0].TriageLevel != entities.TriageStable {
		t.Errorf("top entry triage = %q, want stable", recs[0].TriageLevel)
	}
}

func TestDeriveContextualRecommendations_TopEntryWithAnomalyStaysMonitor(t *testing.T) {
	flagged := entities.Facility{
		Name:      "Flagged Top",
		Trauma:    map[string]entities.Capability{"xray": capTrue()},
		Anomalies: []entities.Anomaly{highAnomaly("conflicting surgery claims")},
	}
	recs := DeriveContextualRecommendations([]entities.Facility{flagged}, ContextTrauma, 3, nil)
	if recs[0].TriageLevel != entities.TriageMonitor {
		t.Errorf("anomalous top entry triage = %q, want monitor", recs[0].TriageLevel)
	}
}

func TestDeriveContextualRecommendations_DisplayCapOrder(t *testing.T) {
	f := entities.Facility{
		Name:   "Any",
		Trauma: map[string]entities.Capability{"emergency_24_7": capTrue()},
	}
	recs := DeriveContextualRecommendations([]entities.Facility{f}, ContextTrauma, 3, []string{"emergency_24_7", "blood_bank"})
	if len(recs) != 0 {
		// blood_bank is required but missing, so nothing qualifies.
		t.Fatalf("expected no results, got %+v", recs)
	}

	f.Infrastructure = map[string]entities.Capability{"blood_bank": capTrue()}
	recs = DeriveContextualRecommendations([]entities.Facility{f}, ContextTrauma, 3, []string{"emergency_24_7", "blood_bank"})
	if len(recs) != 1 {
		t.Fatalf("expected 1 result, got %d", len(recs))
	}
	var labels []string
	for _, pair := range recs[0].Capabilities {
		labels = append(labels, pair.Label)
	}
	// Required caps first (deduplicated against the profile), then the
	// remaining profile caps in profile order.
	want := []string{"24/7 Emergency", "Blood Bank", "X-Ray", "General Surgery", "Trauma Surgery", "Ambulance"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("display order = %v, want %v", labels, want)
	}
}

func TestDeriveContextualRecommendations_EvidenceSelection(t *testing.T) {
	f := entities.Facility{
		Name: "Evidence Bearer",
		Trauma: map[string]entities.Capability{
			"emergency_24_7": capTrue(), // no evidence
			"xray":           capWithSnippet("X-ray room staffed Mon-Sat"),
		},
	}
	recs := DeriveContextualRecommendations([]entities.Facility{f}, ContextTrauma, 3, nil)
	if recs[0].Evidence != "X-ray room staffed Mon-Sat" {
		t.Errorf("evidence = %q", recs[0].Evidence)
	}

	bare := entities.Facility{
		Name:   "No Evidence",
		Trauma: map[string]entities.Capability{"ambulance": capTrue()},
	}
	recs = DeriveContextualRecommendations([]entities.Facility{bare}, ContextTrauma, 3, nil)
	if recs[0].Evidence != "No verified evidence on file for trauma care" {
		t.Errorf("fallback evidence = %q", recs[0].Evidence)
	}
}

func TestFilterMarkersByCaps(t *testing.T) {
	facilities := []entities.Facility{
		fullMaternityFacility("Full"),
		{Name: "Partial", Maternity: map[string]entities.Capability{"c_section": capTrue()}},
	}

	names := FilterMarkersByCaps(facilities, []string{"c_section", "blood_bank"})
	if _, ok := names["Full"]; !ok {
		t.Errorf("Full should qualify")
	}
	if _, ok := names["Partial"]; ok {
		t.Errorf("Partial is missing blood_bank and must be excluded")
	}

	// Empty cap list yields an empty set, not all facilities.
	if got := FilterMarkersByCaps(facilities, nil); len(got) != 0 {
		t.Errorf("empty caps should yield empty set, got %v", got)
	}
}

func TestDeriveRecommendations_Idempotent(t *testing.T) {
	facilities := []entities.Facility{fullMaternityFacility("A"), fullMaternityFacility("B")}
	first := DeriveRecommendations(facilities, 3)
	second := DeriveRecommendations(facilities, 3)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recommendations not idempotent")
	}
}
