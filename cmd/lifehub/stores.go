package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonathan/lifehub/internal/config"
	"github.com/jonathan/lifehub/internal/jobsearch"
	"github.com/jonathan/lifehub/internal/mealplan"
	"github.com/jonathan/lifehub/internal/storage"
)

// stores bundles the two app databases for command handlers.
type stores struct {
	settings *config.Settings
	jobsDB   *sql.DB
	mealsDB  *sql.DB
	jobs     *jobsearch.Store
	meals    *mealplan.Store
}

// openStores loads settings, opens both databases, and ensures schemas.
func openStores(ctx context.Context) (*stores, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := settings.EnsureDataDir(); err != nil {
		return nil, err
	}

	jobsDB, err := storage.Open(ctx, settings.JobSearchDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open job search database: %w", err)
	}
	mealsDB, err := storage.Open(ctx, settings.MealPlannerDB)
	if err != nil {
		jobsDB.Close()
		return nil, fmt.Errorf("failed to open meal planner database: %w", err)
	}

	s := &stores{
		settings: settings,
		jobsDB:   jobsDB,
		mealsDB:  mealsDB,
		jobs:     jobsearch.NewStore(jobsDB),
		meals:    mealplan.NewStore(mealsDB),
	}
	if err := s.jobs.EnsureSchema(ctx); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.meals.EnsureSchema(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *stores) Close() {
	s.jobsDB.Close()
	s.mealsDB.Close()
}
