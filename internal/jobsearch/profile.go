package jobsearch

import (
	"context"
	"database/sql"
	"fmt"
)

// GetUserProfile returns the singleton profile row, or nil when the
// installation has not saved one yet.
func (s *Store) GetUserProfile(ctx context.Context) (*UserProfile, error) {
	var p UserProfile
	err := s.db.QueryRowContext(ctx,
		`SELECT id, full_name, email, phone, linkedin, github, portfolio,
		        claude_api_key, created_at, updated_at
		 FROM user_profile LIMIT 1`).
		Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.LinkedIn, &p.GitHub,
			&p.Portfolio, &p.ClaudeAPIKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return &p, nil
}

// SaveUserProfile upserts the singleton profile: provided fields are merged
// into the existing row, or a fresh row is inserted. The table never
// accumulates a second row through this path.
func (s *Store) SaveUserProfile(ctx context.Context, upd *UserProfileUpdate) error {
	existing, err := s.GetUserProfile(ctx)
	if err != nil {
		return err
	}

	set := upd.assignments()
	if existing != nil {
		if set.Empty() {
			return nil
		}
		set.SetRaw("updated_at", "CURRENT_TIMESTAMP")
		clause, args := set.Clause()
		args = append(args, existing.ID)
		if _, err := s.db.ExecContext(ctx,
			`UPDATE user_profile SET `+clause+` WHERE id = ?`, args...); err != nil {
			return fmt.Errorf("failed to update user profile: %w", err)
		}
		return nil
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO user_profile (full_name, email, phone, linkedin, github, portfolio, claude_api_key)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		upd.FullName, upd.Email, upd.Phone, upd.LinkedIn, upd.GitHub,
		upd.Portfolio, upd.ClaudeAPIKey); err != nil {
		return fmt.Errorf("failed to insert user profile: %w", err)
	}
	return nil
}

// RecordSearch appends one entry to the search log.
func (s *Store) RecordSearch(ctx context.Context, query string, location, filters *string, resultsCount int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO search_history (query, location, filters, results_count)
		 VALUES (?, ?, ?, ?)`,
		query, location, filters, resultsCount)
	if err != nil {
		return 0, fmt.Errorf("failed to record search: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new search id: %w", err)
	}
	return id, nil
}

// RecentSearches returns the latest n search entries, newest-first.
func (s *Store) RecentSearches(ctx context.Context, n int) ([]SearchEntry, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, location, filters, results_count, searched_at
		 FROM search_history
		 ORDER BY searched_at DESC, id DESC
		 LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var e SearchEntry
		if err := rows.Scan(&e.ID, &e.Query, &e.Location, &e.Filters,
			&e.ResultsCount, &e.SearchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
