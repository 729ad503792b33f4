package jobsearch

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonathan/lifehub/internal/storage"
)

const resumeColumns = `id, name, content, skills, experience, education,
       certifications, is_master, created_at, updated_at`

func scanResume(row interface{ Scan(...any) error }) (*Resume, error) {
	var r Resume
	err := row.Scan(&r.ID, &r.Name, &r.Content, &r.Skills, &r.Experience,
		&r.Education, &r.Certifications, &r.IsMaster, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateResume inserts a resume and returns its id.
func (s *Store) CreateResume(ctx context.Context, input *ResumeCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO resumes (name, content, skills, experience, education, certifications, is_master)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		input.Name, input.Content, input.Skills, input.Experience,
		input.Education, input.Certifications, boolToInt(input.IsMaster),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create resume: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new resume id: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume by id.
func (s *Store) GetResume(ctx context.Context, id int64) (*Resume, error) {
	r, err := scanResume(s.db.QueryRowContext(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes returns all resumes newest-first.
func (s *Store) ListResumes(ctx context.Context) ([]Resume, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+resumeColumns+` FROM resumes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	return resumes, rows.Err()
}

// GetMasterResume returns the resume flagged is_master, or nil when none is
// designated.
func (s *Store) GetMasterResume(ctx context.Context) (*Resume, error) {
	r, err := scanResume(s.db.QueryRowContext(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE is_master = 1 LIMIT 1`))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get master resume: %w", err)
	}
	return r, nil
}

// SetMasterResume designates id as the single master resume: all other
// flags are cleared and the target set within one transaction, so the
// at-most-one invariant holds even if the caller races itself.
func (s *Store) SetMasterResume(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE resumes SET is_master = 0 WHERE is_master = 1`); err != nil {
		return fmt.Errorf("failed to clear master flags: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE resumes SET is_master = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to set master resume: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit master resume change: %w", err)
	}
	return nil
}

// UpdateResume applies a sparse update and refreshes updated_at.
func (s *Store) UpdateResume(ctx context.Context, id int64, upd *ResumeUpdate) error {
	set := upd.assignments()
	set.SetRaw("updated_at", "CURRENT_TIMESTAMP")
	clause, args := set.Clause()
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE resumes SET `+clause+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteResume hard-deletes a resume; resume packages keep their history
// with the reference nulled. Missing ids are a no-op.
func (s *Store) DeleteResume(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Resume packages (append-only generation history)
// -----------------------------------------------------------------------------

// CreateResumePackage records a generated tailoring artifact.
func (s *Store) CreateResumePackage(ctx context.Context, postingID, resumeID int64, tailoredContent, coverLetter string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO resume_packages (job_posting_id, resume_id, tailored_content, cover_letter)
		 VALUES (?, ?, ?, ?)`,
		postingID, resumeID, tailoredContent, coverLetter,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create resume package: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new package id: %w", err)
	}
	return id, nil
}

// ListResumePackages returns the generation history for one posting,
// newest-first.
func (s *Store) ListResumePackages(ctx context.Context, postingID int64) ([]ResumePackage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job_posting_id, resume_id, cover_letter, tailored_content, generated_at
		 FROM resume_packages
		 WHERE job_posting_id = ?
		 ORDER BY generated_at DESC, id DESC`, postingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume packages: %w", err)
	}
	defer rows.Close()

	var packages []ResumePackage
	for rows.Next() {
		var p ResumePackage
		if err := rows.Scan(&p.ID, &p.JobPostingID, &p.ResumeID, &p.CoverLetter,
			&p.TailoredContent, &p.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume package: %w", err)
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}
