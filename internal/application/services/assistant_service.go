package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/korlebu/facilitypulse/internal/derive"
	"github.com/korlebu/facilitypulse/internal/domain/entities"
	"github.com/korlebu/facilitypulse/internal/domain/providers"
	"github.com/korlebu/facilitypulse/internal/infrastructure/observability"
	"github.com/korlebu/facilitypulse/pkg/errors"
)

const assistantSystemPrompt = `You are a clinical triage assistant for a healthcare facility dashboard in Ghana. ` +
	`You are given a patient message and a pre-computed list of recommended facilities with verified capabilities. ` +
	`Summarize the recommendations for a health worker in two or three sentences. ` +
	`Only reference the facilities and capabilities provided. Never invent capabilities or facilities.`

// AssistantReply is the response to a triage query: the detected clinical
// context, the capability filter it implies, ranked facilities, and the map
// highlight set.
type AssistantReply struct {
	Context          string                            `json:"context"`
	ContextLabel     string                            `json:"context_label"`
	RequiredCaps     []string                          `json:"required_caps"`
	Recommendations  []entities.FacilityRecommendation `json:"recommendations"`
	HighlightedNames []string                          `json:"highlighted_names"`
	Message          string                            `json:"message"`
}

// AssistantService turns free-text clinical queries into facility
// recommendations. Phrasing via the chat provider is optional; the
// deterministic template is the fallback.
type AssistantService struct {
	dashboard *DashboardService
	chat      providers.ChatProvider
	logger    zerolog.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(dashboard *DashboardService, logger zerolog.Logger) *AssistantService {
	return &AssistantService{
		dashboard: dashboard,
		logger:    logger,
	}
}

// SetChatProvider enables model-generated phrasing of replies
func (s *AssistantService) SetChatProvider(chat providers.ChatProvider) {
	s.chat = chat
}

// Ask answers a free-text clinical query
func (s *AssistantService) Ask(ctx context.Context, query string) (*AssistantReply, error) {
	ctx, span := observability.StartSpan(ctx, "assistant.ask")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidationError("query must not be empty")
	}

	clinicalContext, requiredCaps := derive.DetectClinicalIntent(query)
	profile := derive.ProfileFor(clinicalContext)
	facilities := s.dashboard.Facilities()

	recommendations := derive.DeriveContextualRecommendations(facilities, clinicalContext, 3, requiredCaps)

	highlighted := []string{}
	if len(requiredCaps) > 0 {
		names := derive.FilterMarkersByCaps(facilities, requiredCaps)
		for i := range facilities {
			if _, ok := names[facilities[i].Name]; ok {
				highlighted = append(highlighted, facilities[i].Name)
			}
		}
	}

	reply := &AssistantReply{
		Context:          clinicalContext,
		ContextLabel:     profile.Label,
		RequiredCaps:     requiredCaps,
		Recommendations:  recommendations,
		HighlightedNames: highlighted,
		Message:          s.templateMessage(profile.Label, requiredCaps, recommendations),
	}

	if s.chat != nil {
		if message, err := s.phraseWithModel(ctx, query, reply); err == nil {
			reply.Message = message
		} else {
			s.logger.Warn().Err(err).Msg("Chat provider failed, using template reply")
		}
	}

	return reply, nil
}

// templateMessage builds the deterministic reply text
func (s *AssistantService) templateMessage(contextLabel string, requiredCaps []string, recs []entities.FacilityRecommendation) string {
	if len(recs) == 0 {
		return fmt.Sprintf("No facilities currently meet the requirements for %s.", strings.ToLower(contextLabel))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "For %s, the strongest option is %s (%s).", strings.ToLower(contextLabel), recs[0].Name, recs[0].ScoreLabel)
	if len(recs) > 1 {
		others := make([]string, 0, len(recs)-1)
		for _, r := range recs[1:] {
			others = append(others, r.Name)
		}
		fmt.Fprintf(&b, " Alternatives: %s.", strings.Join(others, ", "))
	}
	if len(requiredCaps) > 0 {
		labels := make([]string, 0, len(requiredCaps))
		for _, cap := range requiredCaps {
			labels = append(labels, derive.CapLabel(cap))
		}
		fmt.Fprintf(&b, " Required capabilities: %s.", strings.Join(labels, ", "))
	}
	return b.String()
}

func (s *AssistantService) phraseWithModel(ctx context.Context, query string, reply *AssistantReply) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Patient message: %s\n", query)
	fmt.Fprintf(&b, "Detected context: %s\n", reply.ContextLabel)
	if len(reply.RequiredCaps) > 0 {
		fmt.Fprintf(&b, "Required capabilities: %s\n", strings.Join(reply.RequiredCaps, ", "))
	}
	b.WriteString("Recommended facilities:\n")
	for i, rec := range reply.Recommendations {
		fmt.Fprintf(&b, "%d. %s — %s (triage: %s). %s\n", i+1, rec.Name, rec.ScoreLabel, rec.TriageLevel, rec.Evidence)
	}

	return s.chat.Complete(ctx, assistantSystemPrompt, b.String())
}
