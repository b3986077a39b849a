package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/korlebu/facilitypulse/internal/derive"
	"github.com/korlebu/facilitypulse/internal/domain/entities"
	"github.com/korlebu/facilitypulse/internal/domain/repositories"
	"github.com/korlebu/facilitypulse/pkg/retry"
)

const maxDatasetBytes = 64 << 20 // refuse pathological payloads

// HTTPSource loads the facility dataset from a remote JSON endpoint,
// retrying transient failures before giving up.
type HTTPSource struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPSource creates a dataset source backed by a remote URL
func NewHTTPSource(url string, logger zerolog.Logger) repositories.FacilityDataset {
	return &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Load fetches and normalizes the remote dataset
func (s *HTTPSource) Load(ctx context.Context) ([]entities.Facility, error) {
	var body []byte

	err := retry.DoWithLog(ctx, retry.DefaultConfig(), "dataset-fetch", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("dataset endpoint returned status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes))
		return err
	}, func(attempt int, err error, nextDelay time.Duration) {
		s.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("next_delay", nextDelay).
			Str("url", s.url).
			Msg("Dataset fetch failed, retrying")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode dataset response: %w", err)
	}

	return derive.ParseFacilities(raw), nil
}

// Source describes the dataset origin
func (s *HTTPSource) Source() string {
	return s.url
}
