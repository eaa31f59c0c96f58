package storage

import (
	"regress/internal/config"
	"regress/internal/domain"
	"regress/suite"
)

// Storage persists and loads the record of the last run (e.g. for the failures viewer).
type Storage interface {
	Save(result *suite.Result, modules int) (*domain.TestResultsOutput, error)
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full record (e.g. after marking failures resolved).
	SaveOutput(output *domain.TestResultsOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
