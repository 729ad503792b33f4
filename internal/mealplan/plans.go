package mealplan

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonathan/lifehub/internal/storage"
)

const planColumns = `id, name, start_date, end_date, number_of_people,
       plan_type, is_active, notes, created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (*MealPlan, error) {
	var p MealPlan
	err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.NumberOfPeople,
		&p.PlanType, &p.IsActive, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateMealPlan inserts a plan and returns its id. NumberOfPeople defaults
// to 2, PlanType to "2-week". New plans are created inactive; promote one
// with SetActivePlan.
func (s *Store) CreateMealPlan(ctx context.Context, input *MealPlanCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	people := input.NumberOfPeople
	if people == 0 {
		people = 2
	}
	planType := input.PlanType
	if planType == "" {
		planType = "2-week"
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO meal_plans (name, start_date, end_date, number_of_people, plan_type, is_active, notes)
		 VALUES (?, ?, ?, ?, ?, 0, ?)`,
		input.Name, input.StartDate, input.EndDate, people, planType, input.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to create meal plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new plan id: %w", err)
	}
	return id, nil
}

// GetMealPlan retrieves a plan by id.
func (s *Store) GetMealPlan(ctx context.Context, id int64) (*MealPlan, error) {
	p, err := scanPlan(s.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM meal_plans WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return p, nil
}

// ListMealPlans returns all plans, most recent start date first.
func (s *Store) ListMealPlans(ctx context.Context) ([]MealPlan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM meal_plans ORDER BY start_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []MealPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

// GetActivePlan returns the plan currently driving the weekly view, or nil
// when none is active.
func (s *Store) GetActivePlan(ctx context.Context) (*MealPlan, error) {
	p, err := scanPlan(s.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM meal_plans
		 WHERE is_active = 1 ORDER BY start_date DESC LIMIT 1`))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active plan: %w", err)
	}
	return p, nil
}

// SetActivePlan makes id the single active plan: all other flags are
// cleared and the target set within one transaction.
func (s *Store) SetActivePlan(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE meal_plans SET is_active = 0 WHERE is_active = 1`); err != nil {
		return fmt.Errorf("failed to clear active flags: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE meal_plans SET is_active = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to set active plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit active plan change: %w", err)
	}
	return nil
}

// UpdateMealPlan applies a sparse update and refreshes updated_at.
func (s *Store) UpdateMealPlan(ctx context.Context, id int64, upd *MealPlanUpdate) error {
	set := upd.assignments()
	set.SetRaw("updated_at", "CURRENT_TIMESTAMP")
	clause, args := set.Clause()
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE meal_plans SET `+clause+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update meal plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteMealPlan hard-deletes a plan; planned meals cascade and shopping
// lists keep their rows with the plan reference nulled. Missing ids are a
// no-op.
func (s *Store) DeleteMealPlan(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Planned meals
// -----------------------------------------------------------------------------

const plannedMealColumns = `pm.id, pm.meal_plan_id, pm.recipe_id, pm.meal_date,
       pm.meal_type, pm.is_completed, pm.servings, pm.notes, pm.created_at,
       r.name, r.cook_time, r.category, r.image_url`

func scanPlannedMeal(row interface{ Scan(...any) error }) (*PlannedMeal, error) {
	var m PlannedMeal
	err := row.Scan(&m.ID, &m.MealPlanID, &m.RecipeID, &m.MealDate, &m.MealType,
		&m.IsCompleted, &m.Servings, &m.Notes, &m.CreatedAt,
		&m.RecipeName, &m.RecipeCookTime, &m.RecipeCategory, &m.RecipeImageURL)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// AddPlannedMeal schedules a recipe on a date within a plan.
func (s *Store) AddPlannedMeal(ctx context.Context, input *PlannedMealCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO planned_meals (meal_plan_id, recipe_id, meal_date, meal_type, servings, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		input.MealPlanID, input.RecipeID, input.MealDate, input.MealType,
		input.Servings, input.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to add planned meal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new planned meal id: %w", err)
	}
	return id, nil
}

// ListPlannedMeals returns a plan's meals ordered by date then meal type,
// hydrated with recipe fields.
func (s *Store) ListPlannedMeals(ctx context.Context, planID int64) ([]PlannedMeal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+plannedMealColumns+`
		 FROM planned_meals pm
		 JOIN recipes r ON pm.recipe_id = r.id
		 WHERE pm.meal_plan_id = ?
		 ORDER BY pm.meal_date, pm.meal_type`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned meals: %w", err)
	}
	defer rows.Close()

	var meals []PlannedMeal
	for rows.Next() {
		m, err := scanPlannedMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planned meal: %w", err)
		}
		meals = append(meals, *m)
	}
	return meals, rows.Err()
}

// ListPlannedMealsByDateRange returns the active plan's meals between two
// dates inclusive, ordered by date then meal type.
func (s *Store) ListPlannedMealsByDateRange(ctx context.Context, startDate, endDate string) ([]PlannedMeal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+plannedMealColumns+`
		 FROM planned_meals pm
		 JOIN recipes r ON pm.recipe_id = r.id
		 JOIN meal_plans mp ON pm.meal_plan_id = mp.id
		 WHERE mp.is_active = 1 AND pm.meal_date BETWEEN ? AND ?
		 ORDER BY pm.meal_date, pm.meal_type`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned meals by range: %w", err)
	}
	defer rows.Close()

	var meals []PlannedMeal
	for rows.Next() {
		m, err := scanPlannedMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planned meal: %w", err)
		}
		meals = append(meals, *m)
	}
	return meals, rows.Err()
}

// ToggleMealCompleted flips the completion flag in a single statement.
func (s *Store) ToggleMealCompleted(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE planned_meals SET is_completed = NOT is_completed WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to toggle meal completion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeletePlannedMeal removes one scheduled meal. Missing ids are a no-op.
func (s *Store) DeletePlannedMeal(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM planned_meals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete planned meal: %w", err)
	}
	return nil
}
