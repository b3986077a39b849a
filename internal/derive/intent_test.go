package derive

import (
	"reflect"
	"strings"
	"testing"
)

func TestDetectClinicalIntent_Obstetric(t *testing.T) {
	context, _ := DetectClinicalIntent("severe preeclampsia, 34 weeks gestation")
	if context != ContextObstetric {
		t.Errorf("expected obstetric, got %q", context)
	}
}

func TestDetectClinicalIntent_Trauma(t *testing.T) {
	context, _ := DetectClinicalIntent("patient presenting with fractured femur after fall")
	if context != ContextTrauma {
		t.Errorf("expected trauma, got %q", context)
	}
}

func TestDetectClinicalIntent_General(t *testing.T) {
	context, caps := DetectClinicalIntent("good morning")
	if context != ContextGeneral {
		t.Errorf("expected general, got %q", context)
	}
	if len(caps) != 0 {
		t.Errorf("expected no required caps, got %v", caps)
	}
}

func TestDetectClinicalIntent_FirstMatchWins(t *testing.T) {
	// Matches both cardiac and trauma rules; cardiac sits earlier in the
	// fixed priority order.
	context, _ := DetectClinicalIntent("chest pain after a road accident")
	if context != ContextCardiac {
		t.Errorf("expected cardiac by rule priority, got %q", context)
	}
}

func TestDetectRequiredCaps_EmergencyCSection(t *testing.T) {
	got := DetectRequiredCaps("patient needs emergency c-section and blood transfusion")
	want := []string{"blood_bank", "c_section", "emergency_24_7"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDetectRequiredCaps_MultipleRulesOneKey(t *testing.T) {
	// Both transfusion and haemorrhage phrases map to blood_bank; the set
	// holds it once.
	got := DetectRequiredCaps("postpartum haemorrhage requiring transfusion")
	want := []string{"blood_bank"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDetectRequiredCaps_NeverPanicsOnHostileInput(t *testing.T) {
	inputs := []string{
		"",
		strings.Repeat("emergency ", 10000),
		"χειρουργείο 手術 عملية جراحية",
		"\x00\x01\x02",
	}
	for _, input := range inputs {
		_ = DetectRequiredCaps(input)
		_, _ = DetectClinicalIntent(input)
	}
}

func TestProfileFor_UnknownContextFallsBack(t *testing.T) {
	p := ProfileFor("astrology")
	if p.Label != "General care" {
		t.Errorf("unknown context should fall back to general, got %q", p.Label)
	}
}

func TestCapLabel(t *testing.T) {
	if got := CapLabel("c_section"); got != "C-Section" {
		t.Errorf("c_section label = %q", got)
	}
	if got := CapLabel("mri_scanner"); got != "Mri Scanner" {
		t.Errorf("fallback label = %q", got)
	}
}
