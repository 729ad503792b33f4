package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsFromDataDir(t *testing.T) {
	t.Setenv("LIFEHUB_DATA_DIR", "/tmp/lifehub-test")
	t.Setenv("LIFEHUB_JOBSEARCH_DB", "")
	t.Setenv("LIFEHUB_MEALPLANNER_DB", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("LIFEHUB_MODEL", "")

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/lifehub-test", s.DataDir)
	require.Equal(t, filepath.Join("/tmp/lifehub-test", "jobsearch.db"), s.JobSearchDB)
	require.Equal(t, filepath.Join("/tmp/lifehub-test", "mealplanner.db"), s.MealPlannerDB)
	require.Empty(t, s.AnthropicAPIKey)
}

func TestLoadExplicitPathsWin(t *testing.T) {
	t.Setenv("LIFEHUB_DATA_DIR", "/tmp/lifehub-test")
	t.Setenv("LIFEHUB_JOBSEARCH_DB", "/elsewhere/jobs.db")
	t.Setenv("LIFEHUB_MEALPLANNER_DB", "/elsewhere/meals.db")

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/elsewhere/jobs.db", s.JobSearchDB)
	require.Equal(t, "/elsewhere/meals.db", s.MealPlannerDB)
}

func TestLoadPassesThroughGenerationSettings(t *testing.T) {
	t.Setenv("LIFEHUB_DATA_DIR", "/tmp/lifehub-test")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("LIFEHUB_MODEL", "claude-test")

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sk-test", s.AnthropicAPIKey)
	require.Equal(t, "claude-test", s.Model)
}

func TestLoadFallsBackToHomeDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LIFEHUB_DATA_DIR", "")

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, ".lifehub", filepath.Base(s.DataDir))
}

func TestEnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := &Settings{DataDir: dir, JobSearchDB: "a", MealPlannerDB: "b"}

	require.NoError(t, s.EnsureDataDir())
	require.DirExists(t, dir)
}
