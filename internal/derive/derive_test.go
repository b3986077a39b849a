package derive

import (
	"math"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

// Shared builders for derivation tests.

func truth(v bool) *bool { return &v }

func coord(v float64) *float64 { return &v }

func capTrue() entities.Capability {
	return entities.Capability{Value: truth(true), State: entities.StateAsserted}
}

func capFalse() entities.Capability {
	return entities.Capability{Value: truth(false), State: entities.StateExtracted}
}

func capNull() entities.Capability {
	return entities.Capability{State: entities.StateUncertain}
}

func capWithSnippet(snippet string) entities.Capability {
	return entities.Capability{
		Value:    truth(true),
		State:    entities.StateExtracted,
		Evidence: []entities.Evidence{{Snippet: snippet}},
	}
}

func highAnomaly(reason string) entities.Anomaly {
	return entities.Anomaly{Severity: "HIGH", Reason: reason}
}

// fullMaternityFacility has all five safe-obstetric capabilities verified.
func fullMaternityFacility(name string) entities.Facility {
	return entities.Facility{
		ID:   name,
		Name: name,
		Maternity: map[string]entities.Capability{
			"c_section":  capTrue(),
			"blood_bank": capTrue(),
			"anesthesia": capTrue(),
			"incubator":  capTrue(),
		},
		Infrastructure: map[string]entities.Capability{
			"operating_room": capTrue(),
		},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
