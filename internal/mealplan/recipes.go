package mealplan

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/lifehub/internal/storage"
)

const recipeColumns = `id, name, category, cook_time, prep_time, servings,
       calories, protein, sodium, ingredients, instructions, image_url,
       is_favorite, is_heart_healthy, is_diabetic_friendly, is_low_sodium,
       is_low_carb, cuisine_type, difficulty, last_used_date, use_count,
       notes, source, created_at, updated_at`

func scanRecipe(row interface{ Scan(...any) error }) (*Recipe, error) {
	var r Recipe
	err := row.Scan(&r.ID, &r.Name, &r.Category, &r.CookTime, &r.PrepTime,
		&r.Servings, &r.Calories, &r.Protein, &r.Sodium, &r.Ingredients,
		&r.Instructions, &r.ImageURL, &r.IsFavorite, &r.IsHeartHealthy,
		&r.IsDiabeticFriendly, &r.IsLowSodium, &r.IsLowCarb, &r.CuisineType,
		&r.Difficulty, &r.LastUsedDate, &r.UseCount, &r.Notes, &r.Source,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRecipe inserts a recipe and returns its id. Servings defaults to 4.
func (s *Store) CreateRecipe(ctx context.Context, input *RecipeCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	servings := input.Servings
	if servings == 0 {
		servings = 4
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO recipes (name, category, cook_time, prep_time, servings,
		                      calories, protein, sodium, ingredients, instructions,
		                      is_heart_healthy, is_diabetic_friendly, is_low_sodium,
		                      is_low_carb, cuisine_type, difficulty, image_url, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Name, input.Category, input.CookTime, input.PrepTime, servings,
		input.Calories, input.Protein, input.Sodium, input.Ingredients,
		input.Instructions, boolToInt(input.IsHeartHealthy),
		boolToInt(input.IsDiabeticFriendly), boolToInt(input.IsLowSodium),
		boolToInt(input.IsLowCarb), input.CuisineType, input.Difficulty,
		input.ImageURL, input.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new recipe id: %w", err)
	}
	return id, nil
}

// GetRecipe retrieves a recipe by id.
func (s *Store) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	r, err := scanRecipe(s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return r, nil
}

// ListRecipes returns recipes ordered by name, narrowed by whichever filter
// predicates are set. Predicates are ANDed; the zero filter returns all.
func (s *Store) ListRecipes(ctx context.Context, filter RecipeFilter) ([]Recipe, error) {
	var conditions []string
	var args []any

	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.CuisineType != "" {
		conditions = append(conditions, "cuisine_type = ?")
		args = append(args, filter.CuisineType)
	}
	if filter.MaxCookTime > 0 {
		conditions = append(conditions, "cook_time <= ?")
		args = append(args, filter.MaxCookTime)
	}
	if filter.IsHeartHealthy {
		conditions = append(conditions, "is_heart_healthy = 1")
	}
	if filter.IsDiabeticFriendly {
		conditions = append(conditions, "is_diabetic_friendly = 1")
	}
	if filter.IsLowSodium {
		conditions = append(conditions, "is_low_sodium = 1")
	}
	if filter.IsLowCarb {
		conditions = append(conditions, "is_low_carb = 1")
	}
	if filter.IsFavorite {
		conditions = append(conditions, "is_favorite = 1")
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

// UpdateRecipe applies a sparse update and refreshes updated_at.
func (s *Store) UpdateRecipe(ctx context.Context, id int64, upd *RecipeUpdate) error {
	set := upd.assignments()
	set.SetRaw("updated_at", "CURRENT_TIMESTAMP")
	clause, args := set.Clause()
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE recipes SET `+clause+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ToggleFavorite flips the favorite flag in a single statement, so it
// composes safely with other toggles on the same row.
func (s *Store) ToggleFavorite(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE recipes SET is_favorite = NOT is_favorite WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// MarkRecipeUsed bumps the usage counter and stamps last_used_date.
func (s *Store) MarkRecipeUsed(ctx context.Context, id int64, now time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE recipes
		 SET use_count = use_count + 1, last_used_date = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		now.Format("2006-01-02"), id)
	if err != nil {
		return fmt.Errorf("failed to mark recipe used: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteRecipe hard-deletes a recipe; ratings cascade and shopping items
// keep their rows with the reference nulled. Missing ids are a no-op.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Recipe ratings
// -----------------------------------------------------------------------------

// AddRecipeRating records a 1-5 star rating for a recipe.
func (s *Store) AddRecipeRating(ctx context.Context, input *RecipeRatingCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO recipe_ratings (recipe_id, rating, review, would_make_again)
		 VALUES (?, ?, ?, ?)`,
		input.RecipeID, input.Rating, input.Review, boolToInt(input.WouldMakeAgain))
	if err != nil {
		return 0, fmt.Errorf("failed to add recipe rating: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new rating id: %w", err)
	}
	return id, nil
}

// ListRecipeRatings returns all ratings for a recipe, newest-first.
func (s *Store) ListRecipeRatings(ctx context.Context, recipeID int64) ([]RecipeRating, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recipe_id, rating, review, would_make_again, created_at
		 FROM recipe_ratings
		 WHERE recipe_id = ?
		 ORDER BY created_at DESC, id DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe ratings: %w", err)
	}
	defer rows.Close()

	var ratings []RecipeRating
	for rows.Next() {
		var r RecipeRating
		if err := rows.Scan(&r.ID, &r.RecipeID, &r.Rating, &r.Review,
			&r.WouldMakeAgain, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// AverageRecipeRating returns the mean star rating for a recipe, 0 when the
// recipe has no ratings.
func (s *Store) AverageRecipeRating(ctx context.Context, recipeID int64) (float64, error) {
	var avg float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM recipe_ratings WHERE recipe_id = ?`,
		recipeID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average recipe ratings: %w", err)
	}
	return avg, nil
}
