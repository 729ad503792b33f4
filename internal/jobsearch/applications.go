package jobsearch

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jonathan/lifehub/internal/storage"
)

const applicationColumns = `a.id, a.job_posting_id, a.status, a.applied_date,
       a.callback_date, a.interview_date, a.notes, a.resume_id, a.cover_letter,
       a.created_at, a.updated_at, j.title, j.company, j.location`

func scanApplication(row interface{ Scan(...any) error }) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.JobPostingID, &a.Status, &a.AppliedDate,
		&a.CallbackDate, &a.InterviewDate, &a.Notes, &a.ResumeID, &a.CoverLetter,
		&a.CreatedAt, &a.UpdatedAt, &a.Title, &a.Company, &a.Location)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts an application for a posting. Status defaults
// to "interested"; an explicit applied status stamps applied_date.
func (s *Store) CreateApplication(ctx context.Context, input *ApplicationCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	status := input.Status
	if status == "" {
		status = AppStatusInterested
	}
	appliedDate := input.AppliedDate
	if appliedDate == nil && status == AppStatusApplied {
		today := time.Now().Format("2006-01-02")
		appliedDate = &today
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (job_posting_id, status, applied_date, notes, resume_id, cover_letter)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		input.JobPostingID, status, appliedDate, input.Notes, input.ResumeID, input.CoverLetter,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new application id: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application hydrated with its posting's
// title, company, and location.
func (s *Store) GetApplication(ctx context.Context, id int64) (*Application, error) {
	a, err := scanApplication(s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a
		 JOIN job_postings j ON a.job_posting_id = j.id
		 WHERE a.id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// ListApplications returns all applications newest-first, hydrated with
// posting fields.
func (s *Store) ListApplications(ctx context.Context) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a
		 JOIN job_postings j ON a.job_posting_id = j.id
		 ORDER BY a.created_at DESC, a.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// UpdateApplication applies a sparse update and refreshes updated_at.
func (s *Store) UpdateApplication(ctx context.Context, id int64, upd *ApplicationUpdate) error {
	set := upd.assignments()
	set.SetRaw("updated_at", "CURRENT_TIMESTAMP")
	clause, args := set.Clause()
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE applications SET `+clause+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateApplicationStatus moves an application to a new status and stamps
// the matching milestone date. COALESCE keeps the first stamp: reaching a
// status again never overwrites the original date.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id int64, status string, now time.Time) error {
	today := now.Format("2006-01-02")

	var milestone string
	switch status {
	case AppStatusApplied:
		milestone = "applied_date"
	case AppStatusCallback:
		milestone = "callback_date"
	case AppStatusInterview:
		milestone = "interview_date"
	}

	var res sql.Result
	var err error
	if milestone != "" {
		res, err = s.db.ExecContext(ctx, fmt.Sprintf(
			`UPDATE applications
			 SET status = ?, %s = COALESCE(%s, ?), updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`, milestone, milestone),
			status, today, id)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE applications SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			status, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteApplication hard-deletes an application. Missing ids are a no-op.
func (s *Store) DeleteApplication(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}
