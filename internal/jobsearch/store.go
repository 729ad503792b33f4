// Package jobsearch implements the job-search application's local data
// layer: job postings, applications, resumes, generated resume packages,
// the singleton user profile, the search log, and the funnel analytics
// built on top of them.
package jobsearch

import (
	"database/sql"
)

// Store provides typed access to one job-search database handle. It is
// constructed with the handle rather than holding module-level state so
// tests can use a disposable in-memory database.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}
