package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/korlebu/facilitypulse/internal/domain/repositories"
	tsclient "github.com/korlebu/facilitypulse/internal/infrastructure/clients/typesense"
)

const collectionName = "facilities"

// TypesenseAdapter implements facility search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements FacilitySearchRepository
var _ repositories.FacilitySearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	// Create collection
	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "region", Type: "string", Facet: pointer.True()},
			{Name: "district", Type: "string", Facet: pointer.True()},
			{Name: "facility_type", Type: "string", Facet: pointer.True()},
			{Name: "specialties", Type: "string[]"},
			{Name: "cap_count", Type: "int32"},
			{Name: "location", Type: "geopoint", Optional: pointer.True()},
		},
		DefaultSortingField: pointer.String("cap_count"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a facility document
func (a *TypesenseAdapter) Index(ctx context.Context, hit repositories.SearchHit) error {
	document := map[string]interface{}{
		"id":            hit.ID,
		"name":          hit.Name,
		"region":        hit.Region,
		"district":      hit.District,
		"facility_type": hit.FacilityType,
		"specialties":   hit.Specialties,
		"cap_count":     hit.CapCount,
	}
	if hit.Latitude != 0 || hit.Longitude != 0 {
		document["location"] = []float64{hit.Latitude, hit.Longitude}
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index facility: %w", err)
	}

	return nil
}

// Reset drops the collection so InitSchema can rebuild it
func (a *TypesenseAdapter) Reset(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete typesense collection: %w", err)
	}
	return nil
}

// Delete removes a facility from index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete facility from index: %w", err)
	}
	return nil
}

// Search searches facilities by name and specialty text
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]repositories.SearchHit, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		query = "*"
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,specialties"),
		PerPage: pointer.Int(limit),
	}
	if region := strings.TrimSpace(params.Region); region != "" {
		searchParams.FilterBy = pointer.String(fmt.Sprintf("region:=%s", region))
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search facilities: %w", err)
	}

	hits := []repositories.SearchHit{}
	if result.Hits == nil {
		return hits, nil
	}
	for _, h := range *result.Hits {
		doc := *h.Document

		hit := repositories.SearchHit{}
		if v, ok := doc["id"].(string); ok {
			hit.ID = v
		}
		if v, ok := doc["name"].(string); ok {
			hit.Name = v
		}
		if v, ok := doc["region"].(string); ok {
			hit.Region = v
		}
		if v, ok := doc["district"].(string); ok {
			hit.District = v
		}
		if v, ok := doc["facility_type"].(string); ok {
			hit.FacilityType = v
		}
		if v, ok := doc["cap_count"].(float64); ok {
			hit.CapCount = int(v)
		}
		if loc, ok := doc["location"].([]interface{}); ok && len(loc) == 2 {
			if lat, ok := loc[0].(float64); ok {
				hit.Latitude = lat
			}
			if lon, ok := loc[1].(float64); ok {
				hit.Longitude = lon
			}
		}
		if raw, ok := doc["specialties"].([]interface{}); ok {
			for _, s := range raw {
				if v, ok := s.(string); ok {
					hit.Specialties = append(hit.Specialties, v)
				}
			}
		}

		hits = append(hits, hit)
	}

	return hits, nil
}
