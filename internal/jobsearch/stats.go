package jobsearch

import (
	"context"
	"fmt"
	"time"
)

// ApplicationStats is the funnel rollup shown on the dashboard. ByStatus
// only carries statuses with at least one row; callers must not assume the
// full status set is present.
type ApplicationStats struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"by_status"`
	ThisWeek    int            `json:"this_week"`
	AvgFitScore float64        `json:"avg_fit_score"`
}

// GetApplicationStats computes the funnel rollup. The trailing 7-day window
// is measured from now; fit-score averaging excludes NULL scores from both
// sum and count. Empty tables yield zero values, not errors.
func (s *Store) GetApplicationStats(ctx context.Context, now time.Time) (*ApplicationStats, error) {
	stats := &ApplicationStats{ByStatus: map[string]int{}}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications`).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to group applications by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE applied_date >= ?`, weekAgo).
		Scan(&stats.ThisWeek); err != nil {
		return nil, fmt.Errorf("failed to count recent applications: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(fit_score), 0) FROM job_postings WHERE fit_score IS NOT NULL`).
		Scan(&stats.AvgFitScore); err != nil {
		return nil, fmt.Errorf("failed to average fit scores: %w", err)
	}

	return stats, nil
}

// WeeklyTrend buckets applications applied in the trailing 7 days into a
// 7-length sequence ordered oldest to newest: an application applied d days
// before now lands at index 6-d. Rows outside the window or without an
// applied date are excluded.
func (s *Store) WeeklyTrend(ctx context.Context, now time.Time) ([7]int, error) {
	var trend [7]int

	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")
	rows, err := s.db.QueryContext(ctx,
		`SELECT applied_date FROM applications
		 WHERE applied_date IS NOT NULL AND applied_date >= ?`, weekAgo)
	if err != nil {
		return trend, fmt.Errorf("failed to query weekly trend: %w", err)
	}
	defer rows.Close()

	today := now.Format("2006-01-02")
	nowDay, err := time.Parse("2006-01-02", today)
	if err != nil {
		return trend, fmt.Errorf("failed to parse current date: %w", err)
	}

	for rows.Next() {
		var applied string
		if err := rows.Scan(&applied); err != nil {
			return trend, fmt.Errorf("failed to scan applied date: %w", err)
		}
		day, err := time.Parse("2006-01-02", applied)
		if err != nil {
			continue // malformed legacy value, skip rather than fail the rollup
		}
		daysAgo := int(nowDay.Sub(day).Hours() / 24)
		if daysAgo < 0 || daysAgo > 6 {
			continue
		}
		trend[6-daysAgo]++
	}
	return trend, rows.Err()
}

// UpcomingInterviews returns applications with an interview date today or
// later, soonest first, hydrated with posting fields.
func (s *Store) UpcomingInterviews(ctx context.Context, now time.Time, limit int) ([]Application, error) {
	if limit <= 0 {
		limit = 5
	}
	today := now.Format("2006-01-02")

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a
		 JOIN job_postings j ON a.job_posting_id = j.id
		 WHERE a.interview_date IS NOT NULL AND a.interview_date >= ?
		 ORDER BY a.interview_date ASC
		 LIMIT ?`, today, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming interviews: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview row: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}
