package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/korlebu/facilitypulse/internal/derive"
	"github.com/korlebu/facilitypulse/internal/domain/entities"
	"github.com/korlebu/facilitypulse/internal/domain/repositories"
)

// FileSource loads the facility dataset from a JSON file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a dataset source backed by a local file
func NewFileSource(path string) repositories.FacilityDataset {
	return &FileSource{path: path}
}

// Load reads and normalizes the dataset file
func (s *FileSource) Load(_ context.Context) ([]entities.Facility, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode dataset file: %w", err)
	}

	return derive.ParseFacilities(raw), nil
}

// Source describes the dataset origin
func (s *FileSource) Source() string {
	return "file:" + s.path
}
