// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Default database filenames inside the data directory.
const (
	defaultJobSearchFile   = "jobsearch.db"
	defaultMealPlannerFile = "mealplanner.db"
)

// Settings holds everything the CLI needs at startup. All values come from
// the environment (optionally preloaded from a .env file by the caller);
// database paths fall back to files under the data directory.
type Settings struct {
	DataDir       string `validate:"required"`
	JobSearchDB   string `validate:"required"`
	MealPlannerDB string `validate:"required"`

	// Generation service. The key may be empty; operations that need it
	// fail with a configuration error at call time, not at startup.
	AnthropicAPIKey string
	Model           string
}

// Load reads settings from the environment.
func Load() (*Settings, error) {
	dataDir := os.Getenv("LIFEHUB_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lifehub")
	}

	s := &Settings{
		DataDir:         dataDir,
		JobSearchDB:     os.Getenv("LIFEHUB_JOBSEARCH_DB"),
		MealPlannerDB:   os.Getenv("LIFEHUB_MEALPLANNER_DB"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		Model:           os.Getenv("LIFEHUB_MODEL"),
	}
	if s.JobSearchDB == "" {
		s.JobSearchDB = filepath.Join(dataDir, defaultJobSearchFile)
	}
	if s.MealPlannerDB == "" {
		s.MealPlannerDB = filepath.Join(dataDir, defaultMealPlannerFile)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the settings have valid values.
func (s *Settings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// EnsureDataDir creates the data directory when the database paths point
// inside it.
func (s *Settings) EnsureDataDir() error {
	if err := os.MkdirAll(s.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", s.DataDir, err)
	}
	return nil
}
