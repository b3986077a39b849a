package derive

import (
	"regexp"
	"sort"
	"strings"
)

// Clinical contexts recognized by intent detection.
const (
	ContextGeneral   = "general"
	ContextObstetric = "obstetric"
	ContextCardiac   = "cardiac"
	ContextBlood     = "blood"
	ContextVitals    = "vitals"
	ContextTrauma    = "trauma"
	ContextPediatric = "pediatric"
	ContextSurgical  = "surgical"
)

// capRule maps a clinical phrase pattern to a required capability key.
// Several rules may target the same key; matches are collected as a set, so
// rule order does not affect the result.
type capRule struct {
	pattern *regexp.Regexp
	cap     string
}

var capRules = []capRule{
	{regexp.MustCompile(`c[- ]?section|caesarean|cesarean`), "c_section"},
	{regexp.MustCompile(`transfusion|blood bank|blood supply`), "blood_bank"},
	{regexp.MustCompile(`h(a)?emorrhage|heavy bleeding`), "blood_bank"},
	{regexp.MustCompile(`an(a)?esthesia|an(a)?esthetic`), "anesthesia"},
	{regexp.MustCompile(`operating (room|theatre|theater)`), "operating_room"},
	{regexp.MustCompile(`ultrasound|sonogram|scan for pregnancy`), "ultrasound_ob"},
	{regexp.MustCompile(`x[- ]?ray|radiograph|fracture`), "xray"},
	{regexp.MustCompile(`ambulance|transport to hospital`), "ambulance"},
	{regexp.MustCompile(`emergency|urgent care|resuscitat`), "emergency_24_7"},
	{regexp.MustCompile(`incubator|premature|preterm`), "incubator"},
	{regexp.MustCompile(`laborator|lab test|blood test`), "lab_basic"},
	{regexp.MustCompile(`pharmacy|medication|prescription`), "pharmacy"},
	{regexp.MustCompile(`natural (birth|delivery)|vaginal delivery`), "delivery_natural"},
}

// contextRule maps a pattern to a clinical context. Unlike capRules this
// list is first-match-wins: the fixed priority order decides ambiguous text,
// so reordering changes which facilities get recommended.
type contextRule struct {
	pattern *regexp.Regexp
	context string
}

var contextRules = []contextRule{
	{regexp.MustCompile(`pregnan|obstetric|preeclampsia|eclampsia|gestation|labou?r|delivery|c[- ]?section|caesarean|cesarean|maternal|antenatal|postpartum|birth`), ContextObstetric},
	{regexp.MustCompile(`cardiac|heart|chest pain|myocardial|arrhythmia|palpitation`), ContextCardiac},
	{regexp.MustCompile(`blood|transfusion|h(a)?emorrhage|an(a)?emia|bleeding`), ContextBlood},
	{regexp.MustCompile(`vitals|oxygen|saturation|pulse|temperature|fever|hypotens|hypertens`), ContextVitals},
	{regexp.MustCompile(`trauma|fracture|accident|injur|fall|wound|burn|crush`), ContextTrauma},
	{regexp.MustCompile(`p(a)?ediatric|child|infant|neonat|newborn|toddler`), ContextPediatric},
	{regexp.MustCompile(`surg|operat|appendectomy|laparotomy|amputation`), ContextSurgical},
}

// ContextProfile fixes the capability list and display label for one
// clinical context.
type ContextProfile struct {
	Label string
	Caps  []string
}

// contextProfiles is the immutable catalog of context profiles. SafeOBCaps
// doubles as the obstetric-adjacent default used by the non-contextual
// recommendation variant.
var contextProfiles = map[string]ContextProfile{
	ContextGeneral:   {Label: "General care", Caps: []string{"emergency_24_7", "lab_basic", "pharmacy"}},
	ContextObstetric: {Label: "Obstetric care", Caps: []string{"c_section", "blood_bank", "anesthesia", "operating_room", "ultrasound_ob"}},
	ContextCardiac:   {Label: "Cardiac care", Caps: []string{"emergency_24_7", "lab_basic", "ambulance", "operating_room"}},
	ContextBlood:     {Label: "Transfusion services", Caps: []string{"blood_bank", "lab_basic", "emergency_24_7"}},
	ContextVitals:    {Label: "Vital signs monitoring", Caps: []string{"lab_basic", "pharmacy", "emergency_24_7"}},
	ContextTrauma:    {Label: "Trauma care", Caps: []string{"emergency_24_7", "xray", "general_surgery", "trauma_surgery", "ambulance"}},
	ContextPediatric: {Label: "Pediatric care", Caps: []string{"incubator", "emergency_24_7", "lab_basic", "pharmacy"}},
	ContextSurgical:  {Label: "Surgical services", Caps: []string{"operating_room", "anesthesia", "anesthetist", "general_surgery"}},
}

// SafeOBCaps is the fixed maternity profile scored by DeriveRecommendations.
var SafeOBCaps = []string{"c_section", "blood_bank", "anesthesia", "operating_room", "incubator"}

// capLabels maps capability keys to display labels. Unknown keys fall back
// to a title-cased form of the key.
var capLabels = map[string]string{
	"c_section":        "C-Section",
	"blood_bank":       "Blood Bank",
	"operating_room":   "Operating Room",
	"emergency_24_7":   "24/7 Emergency",
	"ambulance":        "Ambulance",
	"lab_basic":        "Basic Laboratory",
	"pharmacy":         "Pharmacy",
	"anesthesia":       "Anesthesia",
	"anesthetist":      "Anesthetist",
	"ultrasound_ob":    "Obstetric Ultrasound",
	"xray":             "X-Ray",
	"general_surgery":  "General Surgery",
	"trauma_surgery":   "Trauma Surgery",
	"delivery_natural": "Natural Delivery",
	"incubator":        "Incubator",
}

// CapLabel returns the display label for a capability key.
func CapLabel(key string) string {
	if label, ok := capLabels[key]; ok {
		return label
	}
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ProfileFor returns the capability profile for a clinical context, falling
// back to the general profile for unknown contexts.
func ProfileFor(context string) ContextProfile {
	if p, ok := contextProfiles[context]; ok {
		return p
	}
	return contextProfiles[ContextGeneral]
}

// DetectRequiredCaps extracts the set of capability keys implied by a
// free-text clinical description. It never fails: text with no recognized
// phrases yields an empty slice. The result is sorted for stable output.
func DetectRequiredCaps(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	for _, rule := range capRules {
		if rule.pattern.MatchString(lower) {
			seen[rule.cap] = struct{}{}
		}
	}
	caps := make([]string, 0, len(seen))
	for key := range seen {
		caps = append(caps, key)
	}
	sort.Strings(caps)
	return caps
}

// DetectClinicalIntent resolves free-text to a clinical context plus the
// required capability set. Context resolution is first-match-wins over the
// fixed rule order; text matching nothing degrades to the general context.
func DetectClinicalIntent(text string) (context string, requiredCaps []string) {
	requiredCaps = DetectRequiredCaps(text)
	lower := strings.ToLower(text)
	for _, rule := range contextRules {
		if rule.pattern.MatchString(lower) {
			return rule.context, requiredCaps
		}
	}
	return ContextGeneral, requiredCaps
}
