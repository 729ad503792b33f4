package mealplan

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonathan/lifehub/internal/storage"
)

// GetUserPreferences returns the singleton preferences row, or nil when the
// household has not saved settings yet.
func (s *Store) GetUserPreferences(ctx context.Context) (*UserPreferences, error) {
	var p UserPreferences
	err := s.db.QueryRowContext(ctx,
		`SELECT id, household_size, dietary_restrictions, allergies,
		        preferred_cuisines, disliked_ingredients, budget_per_week,
		        preferred_stores, meal_prep_day, shopping_day,
		        breakfast_enabled, lunch_enabled, dinner_enabled,
		        claude_api_key, notifications_enabled, created_at, updated_at
		 FROM user_preferences LIMIT 1`).
		Scan(&p.ID, &p.HouseholdSize, &p.DietaryRestrictions, &p.Allergies,
			&p.PreferredCuisines, &p.DislikedIngredients, &p.BudgetPerWeek,
			&p.PreferredStores, &p.MealPrepDay, &p.ShoppingDay,
			&p.BreakfastEnabled, &p.LunchEnabled, &p.DinnerEnabled,
			&p.ClaudeAPIKey, &p.NotificationsEnabled, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}
	return &p, nil
}

// SaveUserPreferences upserts the singleton preferences row: provided
// fields merge into the existing row, or a fresh row is inserted with table
// defaults filling the rest.
func (s *Store) SaveUserPreferences(ctx context.Context, upd *UserPreferencesUpdate) error {
	existing, err := s.GetUserPreferences(ctx)
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
			`UPDATE user_preferences SET `+clause+` WHERE id = ?`, args...); err != nil {
			return fmt.Errorf("failed to update user preferences: %w", err)
		}
		return nil
	}

	// Fresh install: insert defaults, then merge the provided fields so the
	// table's documented defaults still apply to everything unspecified.
	if _, err := s.db.ExecContext(ctx, `INSERT INTO user_preferences DEFAULT VALUES`); err != nil {
		return fmt.Errorf("failed to insert user preferences: %w", err)
	}
	if set.Empty() {
		return nil
	}
	return s.SaveUserPreferences(ctx, upd)
}

// -----------------------------------------------------------------------------
// Pantry
// -----------------------------------------------------------------------------

const pantryColumns = `id, item_name, quantity, unit, category, purchase_date,
       expiration_date, location, is_staple, created_at, updated_at`

func scanPantryItem(row interface{ Scan(...any) error }) (*PantryItem, error) {
	var p PantryItem
	err := row.Scan(&p.ID, &p.ItemName, &p.Quantity, &p.Unit, &p.Category,
		&p.PurchaseDate, &p.ExpirationDate, &p.Location, &p.IsStaple,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AddPantryItem inserts an inventory row and returns its id.
func (s *Store) AddPantryItem(ctx context.Context, input *PantryItemCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO pantry_items (item_name, quantity, unit, category,
		                           purchase_date, expiration_date, location, is_staple)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		input.ItemName, input.Quantity, input.Unit, input.Category,
		input.PurchaseDate, input.ExpirationDate, input.Location,
		boolToInt(input.IsStaple))
	if err != nil {
		return 0, fmt.Errorf("failed to add pantry item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new pantry item id: %w", err)
	}
	return id, nil
}

// GetPantryItem retrieves an inventory row by id.
func (s *Store) GetPantryItem(ctx context.Context, id int64) (*PantryItem, error) {
	p, err := scanPantryItem(s.db.QueryRowContext(ctx,
		`SELECT `+pantryColumns+` FROM pantry_items WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pantry item: %w", err)
	}
	return p, nil
}

// ListPantryItems returns the pantry grouped by category then name.
func (s *Store) ListPantryItems(ctx context.Context) ([]PantryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pantryColumns+` FROM pantry_items ORDER BY category, item_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}
	defer rows.Close()

	var items []PantryItem
	for rows.Next() {
		p, err := scanPantryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pantry item: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// UpdatePantryItem applies a sparse update and refreshes updated_at.
func (s *Store) UpdatePantryItem(ctx context.Context, id int64, upd *PantryItemUpdate) error {
	set := upd.assignments()
	set.SetRaw("updated_at", "CURRENT_TIMESTAMP")
	clause, args := set.Clause()
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE pantry_items SET `+clause+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update pantry item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeletePantryItem removes an inventory row. Missing ids are a no-op.
func (s *Store) DeletePantryItem(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pantry_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete pantry item: %w", err)
	}
	return nil
}
