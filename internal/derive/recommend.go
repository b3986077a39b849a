package derive

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

const defaultRecommendationLimit = 3

type scoredFacility struct {
	facility *entities.Facility
	score    int
}

// DeriveRecommendations ranks facilities against the fixed safe-obstetric
// capability profile. Facilities scoring zero never appear. The sort is
// stable, so ties keep their relative input order. The top-ranked entry is
// always flagged critical: it is the "most urgent attention" signal, not a
// scoring artifact.
func DeriveRecommendations(facilities []entities.Facility, limit int) []entities.FacilityRecommendation {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	var scored []scoredFacility
	for i := range facilities {
		f := &facilities[i]
		score := countAvailable(f, SafeOBCaps)
		if score > 0 {
			scored = append(scored, scoredFacility{facility: f, score: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	recs := make([]entities.FacilityRecommendation, 0, len(scored))
	for rank, s := range scored {
		rec := entities.FacilityRecommendation{
			Name:         s.facility.Name,
			ScoreLabel:   fmt.Sprintf("%d of %d maternity capabilities verified", s.score, len(SafeOBCaps)),
			Capabilities: capabilityPairs(s.facility, SafeOBCaps),
			Evidence:     evidenceText(s.facility, SafeOBCaps, "safe obstetric care"),
			TriageLevel:  obTriage(s.facility, s.score),
		}
		if rank == 0 {
			rec.TriageLevel = entities.TriageCritical
		}
		recs = append(recs, rec)
	}
	return recs
}

func obTriage(f *entities.Facility, score int) entities.TriageLevel {
	if f.HasHighSeverityAnomaly() {
		return entities.TriageMonitor
	}
	if score >= 4 {
		return entities.TriageStable
	}
	return entities.TriageCritical
}

// DeriveContextualRecommendations ranks facilities against the capability
// profile of a clinical context. When requiredCaps is non-empty it acts as a
// hard filter: a facility missing even one required capability is excluded
// regardless of its profile score, while the score still orders the
// qualifying facilities. With no required caps, only facilities scoring
// above zero are included.
//
// The top-ranked entry is forced stable when anomaly-free. That differs from
// DeriveRecommendations, which forces its top entry critical; the asymmetry
// is intentional.
func DeriveContextualRecommendations(facilities []entities.Facility, context string, limit int, requiredCaps []string) []entities.FacilityRecommendation {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	profile := ProfileFor(context)
	threshold := int(math.Ceil(0.6 * float64(len(profile.Caps))))

	var scored []scoredFacility
	for i := range facilities {
		f := &facilities[i]
		if len(requiredCaps) > 0 {
			if !hasAll(f, requiredCaps) {
				continue
			}
		} else if countAvailable(f, profile.Caps) == 0 {
			continue
		}
		scored = append(scored, scoredFacility{facility: f, score: countAvailable(f, profile.Caps)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	displayCaps := dedupeCaps(requiredCaps, profile.Caps)
	recs := make([]entities.FacilityRecommendation, 0, len(scored))
	for rank, s := range scored {
		level := contextualTriage(s.facility, s.score, threshold)
		if rank == 0 && !s.facility.HasHighSeverityAnomaly() {
			level = entities.TriageStable
		}
		recs = append(recs, entities.FacilityRecommendation{
			Name:         s.facility.Name,
			ScoreLabel:   fmt.Sprintf("%d of %d %s capabilities verified", s.score, len(profile.Caps), strings.ToLower(profile.Label)),
			Capabilities: capabilityPairs(s.facility, displayCaps),
			Evidence:     evidenceText(s.facility, displayCaps, strings.ToLower(profile.Label)),
			TriageLevel:  level,
		})
	}
	return recs
}

func contextualTriage(f *entities.Facility, score, threshold int) entities.TriageLevel {
	if f.HasHighSeverityAnomaly() {
		return entities.TriageMonitor
	}
	if score >= threshold {
		return entities.TriageStable
	}
	return entities.TriageCritical
}

// FilterMarkersByCaps returns the set of facility names where every required
// capability is verified present. An empty capability list yields an empty
// set rather than matching every facility.
func FilterMarkersByCaps(facilities []entities.Facility, requiredCaps []string) map[string]struct{} {
	names := make(map[string]struct{})
	if len(requiredCaps) == 0 {
		return names
	}
	for i := range facilities {
		if hasAll(&facilities[i], requiredCaps) {
			names[facilities[i].Name] = struct{}{}
		}
	}
	return names
}

func countAvailable(f *entities.Facility, caps []string) int {
	count := 0
	for _, key := range caps {
		if f.HasCap(key) {
			count++
		}
	}
	return count
}

func hasAll(f *entities.Facility, caps []string) bool {
	for _, key := range caps {
		if !f.HasCap(key) {
			return false
		}
	}
	return true
}

// dedupeCaps builds the display capability order: required caps first, then
// the profile list, as a set preserving first-seen order.
func dedupeCaps(required, profile []string) []string {
	seen := make(map[string]struct{}, len(required)+len(profile))
	out := make([]string, 0, len(required)+len(profile))
	for _, key := range required {
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	for _, key := range profile {
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}

func capabilityPairs(f *entities.Facility, caps []string) []entities.RecommendedCapability {
	pairs := make([]entities.RecommendedCapability, 0, len(caps))
	for _, key := range caps {
		pairs = append(pairs, entities.RecommendedCapability{
			Label:     CapLabel(key),
			Available: f.HasCap(key),
		})
	}
	return pairs
}

// evidenceText picks the first capability in display order with a non-empty
// evidence snippet.
func evidenceText(f *entities.Facility, caps []string, contextLabel string) string {
	for _, key := range caps {
		if c, ok := f.Capability(key); ok {
			if snippet := c.Snippet(); snippet != "" {
				return snippet
			}
		}
	}
	return fmt.Sprintf("No verified evidence on file for %s", contextLabel)
}
