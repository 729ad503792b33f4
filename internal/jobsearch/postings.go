package jobsearch

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonathan/lifehub/internal/storage"
)

const postingColumns = `id, title, company, location, salary_min, salary_max,
       description, url, provider, status, ai_analysis, fit_score,
       recruiter_name, recruiter_email, recruiter_phone, recruiter_linkedin,
       created_at, updated_at`

func scanPosting(row interface{ Scan(...any) error }) (*JobPosting, error) {
	var p JobPosting
	err := row.Scan(&p.ID, &p.Title, &p.Company, &p.Location, &p.SalaryMin,
		&p.SalaryMax, &p.Description, &p.URL, &p.Provider, &p.Status,
		&p.AIAnalysis, &p.FitScore, &p.RecruiterName, &p.RecruiterEmail,
		&p.RecruiterPhone, &p.RecruiterLinkedIn, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateJobPosting inserts a posting and returns its id. Status defaults
// to "saved".
func (s *Store) CreateJobPosting(ctx context.Context, input *JobPostingCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO job_postings (title, company, location, salary_min, salary_max,
		                           description, url, provider, recruiter_name,
		                           recruiter_email, recruiter_phone, recruiter_linkedin)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Title, input.Company, input.Location, input.SalaryMin, input.SalaryMax,
		input.Description, input.URL, input.Provider, input.RecruiterName,
		input.RecruiterEmail, input.RecruiterPhone, input.RecruiterLinkedIn,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create job posting: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new posting id: %w", err)
	}
	return id, nil
}

// GetJobPosting retrieves a posting by id.
func (s *Store) GetJobPosting(ctx context.Context, id int64) (*JobPosting, error) {
	p, err := scanPosting(s.db.QueryRowContext(ctx,
		`SELECT `+postingColumns+` FROM job_postings WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return p, nil
}

// ListJobPostings returns postings newest-first, optionally filtered by
// status. Empty status means all.
func (s *Store) ListJobPostings(ctx context.Context, status string) ([]JobPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM job_postings`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, *p)
	}
	return postings, rows.Err()
}

// UpdateJobPosting applies a sparse update and refreshes updated_at.
// Updating a nonexistent id returns storage.ErrNotFound.
func (s *Store) UpdateJobPosting(ctx context.Context, id int64, upd *JobPostingUpdate) error {
	set := upd.assignments()
	set.SetRaw("updated_at", "CURRENT_TIMESTAMP")
	clause, args := set.Clause()
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE job_postings SET `+clause+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update job posting: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SaveAnalysis writes back a generation result: the opaque analysis text and
// the derived fit score.
func (s *Store) SaveAnalysis(ctx context.Context, id int64, analysis string, fitScore int) error {
	return s.UpdateJobPosting(ctx, id, &JobPostingUpdate{
		AIAnalysis: &analysis,
		FitScore:   &fitScore,
	})
}

// DeleteJobPosting hard-deletes a posting; applications and resume packages
// referencing it cascade. Deleting a missing id is a no-op.
func (s *Store) DeleteJobPosting(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM job_postings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	return nil
}
