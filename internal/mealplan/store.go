// Package mealplan implements the meal-planner application's local data
// layer: recipes, meal plans and their scheduled meals, shopping lists with
// recomputed running totals, coupons and their item matches, the singleton
// household preferences, ratings, and pantry inventory.
package mealplan

import (
	"database/sql"
)

// Store provides typed access to one meal-planner database handle. It is
// constructed with the handle rather than holding module-level state so
// tests can use a disposable in-memory database.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}
