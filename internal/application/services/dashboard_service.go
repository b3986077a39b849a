package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/korlebu/facilitypulse/internal/derive"
	"github.com/korlebu/facilitypulse/internal/domain/entities"
	"github.com/korlebu/facilitypulse/internal/domain/providers"
	"github.com/korlebu/facilitypulse/internal/domain/repositories"
	"github.com/korlebu/facilitypulse/internal/infrastructure/observability"
	"github.com/korlebu/facilitypulse/pkg/errors"
)

const snapshotCacheKey = "dashboard:snapshot"

// DashboardSnapshot is the full derived view of the current dataset, served
// as one document so the map, metrics strip, and action plan always agree.
type DashboardSnapshot struct {
	Metrics          entities.Metrics                  `json:"metrics"`
	Markers          []entities.FacilityMarker         `json:"markers"`
	ActionPlan       entities.ActionPlan               `json:"action_plan"`
	Recommendations  []entities.FacilityRecommendation `json:"recommendations"`
	DesertZones      []entities.DesertZoneData         `json:"desert_zones"`
	SpecialtyOptions []string                          `json:"specialty_options"`
	GeneratedAt      time.Time                         `json:"generated_at"`
}

// DashboardService owns the in-memory facility dataset and derives dashboard
// views from it. The dataset is replaced wholesale on reload, never mutated.
type DashboardService struct {
	dataset  repositories.FacilityDataset
	cache    providers.CacheProvider
	metrics  *observability.Metrics
	logger   zerolog.Logger
	cacheTTL int

	mu         sync.RWMutex
	facilities []entities.Facility
	loadedAt   time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dataset repositories.FacilityDataset, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		dataset:  dataset,
		logger:   logger,
		cacheTTL: 300,
	}
}

// SetCache sets the cache provider for snapshot documents
func (s *DashboardService) SetCache(cache providers.CacheProvider, ttlSeconds int) {
	s.cache = cache
	if ttlSeconds > 0 {
		s.cacheTTL = ttlSeconds
	}
}

// SetMetrics sets the observability metrics recorder
func (s *DashboardService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Reload fetches the dataset from its source and swaps it in
func (s *DashboardService) Reload(ctx context.Context) error {
	ctx, span := observability.StartSpan(ctx, "dashboard.reload")
	defer span.End()

	facilities, err := s.dataset.Load(ctx)
	if err != nil {
		return errors.NewExternalError("failed to load facility dataset", err)
	}

	s.mu.Lock()
	s.facilities = facilities
	s.loadedAt = time.Now().UTC()
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Delete(ctx, snapshotCacheKey); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to invalidate snapshot cache after reload")
		}
	}
	if s.metrics != nil && s.metrics.DatasetReloads != nil {
		s.metrics.DatasetReloads.Add(ctx, 1)
	}

	s.logger.Info().
		Int("facilities", len(facilities)).
		Str("source", s.dataset.Source()).
		Msg("Facility dataset reloaded")

	return nil
}

// Facilities returns the current dataset
func (s *DashboardService) Facilities() []entities.Facility {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.facilities
}

// LoadedAt reports when the dataset was last reloaded
func (s *DashboardService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Snapshot derives the full dashboard view, with cache-aside on the
// serialized document.
func (s *DashboardService) Snapshot(ctx context.Context) (*DashboardSnapshot, error) {
	ctx, span := observability.StartSpan(ctx, "dashboard.snapshot")
	defer span.End()

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, snapshotCacheKey); err == nil {
			var cached DashboardSnapshot
			if json.Unmarshal(data, &cached) == nil {
				observability.RecordCacheHit(ctx, s.metrics, snapshotCacheKey)
				return &cached, nil
			}
		}
		observability.RecordCacheMiss(ctx, s.metrics, snapshotCacheKey)
	}

	s.mu.RLock()
	facilities := s.facilities
	loadedAt := s.loadedAt
	s.mu.RUnlock()

	snapshot := &DashboardSnapshot{
		Metrics:          derive.DeriveMetrics(facilities),
		Markers:          derive.BuildMarkers(facilities),
		ActionPlan:       derive.DeriveActionPlan(facilities),
		Recommendations:  derive.DeriveRecommendations(facilities, 3),
		DesertZones:      derive.DeriveDesertZones(facilities),
		SpecialtyOptions: derive.BuildSpecialtyOptions(facilities, 10),
		GeneratedAt:      loadedAt,
	}
	if s.metrics != nil && s.metrics.SnapshotBuilds != nil {
		s.metrics.SnapshotBuilds.Add(ctx, 1)
	}

	if s.cache != nil {
		if data, err := json.Marshal(snapshot); err == nil {
			if err := s.cache.Set(ctx, snapshotCacheKey, data, s.cacheTTL); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to cache dashboard snapshot")
			}
		}
	}

	return snapshot, nil
}

// FacilityFilter narrows the facility list endpoint
type FacilityFilter struct {
	Region       string
	RequiredCaps []string
}

// ListFacilities returns facilities matching the filter
func (s *DashboardService) ListFacilities(filter FacilityFilter) []entities.Facility {
	s.mu.RLock()
	facilities := s.facilities
	s.mu.RUnlock()

	region := strings.TrimSpace(filter.Region)
	result := []entities.Facility{}
	for i := range facilities {
		f := &facilities[i]
		if region != "" && !strings.EqualFold(strings.TrimSpace(f.Region), region) {
			continue
		}
		if !facilityHasAll(f, filter.RequiredCaps) {
			continue
		}
		result = append(result, *f)
	}
	return result
}

// SearchFacilities is the in-memory fallback for facility search when no
// search engine is configured: case-insensitive substring match over name and
// specialties.
func (s *DashboardService) SearchFacilities(params repositories.SearchParams) []repositories.SearchHit {
	s.mu.RLock()
	facilities := s.facilities
	s.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(params.Query))
	region := strings.TrimSpace(params.Region)
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	hits := []repositories.SearchHit{}
	for i := range facilities {
		f := &facilities[i]
		if region != "" && !strings.EqualFold(strings.TrimSpace(f.Region), region) {
			continue
		}
		if query != "" && !matchesQuery(f, query) {
			continue
		}
		hits = append(hits, repositories.HitFromFacility(*f))
		if len(hits) >= limit {
			break
		}
	}
	return hits
}

func matchesQuery(f *entities.Facility, query string) bool {
	if strings.Contains(strings.ToLower(f.Name), query) {
		return true
	}
	for _, s := range f.RawSpecialties {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

// GetFacility finds a facility by ID
func (s *DashboardService) GetFacility(id string) (*entities.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.facilities {
		if s.facilities[i].ID == id {
			f := s.facilities[i]
			return &f, nil
		}
	}
	return nil, errors.NewNotFoundError("facility not found")
}

func facilityHasAll(f *entities.Facility, caps []string) bool {
	for _, cap := range caps {
		if !f.HasCap(cap) {
			return false
		}
	}
	return true
}
