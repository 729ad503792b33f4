package mealplan

import (
	"context"
	"fmt"
)

// PlanStats is the progress rollup for one meal plan. ByCategory only
// carries categories with at least one scheduled meal.
type PlanStats struct {
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	ByCategory map[string]int `json:"by_category"`
}

// GetPlanStats computes progress for a plan. An empty or unknown plan id
// yields zero values, not an error.
func (s *Store) GetPlanStats(ctx context.Context, planID int64) (*PlanStats, error) {
	stats := &PlanStats{ByCategory: map[string]int{}}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM planned_meals WHERE meal_plan_id = ?`, planID).
		Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("failed to count planned meals: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM planned_meals WHERE meal_plan_id = ? AND is_completed = 1`, planID).
		Scan(&stats.Completed); err != nil {
		return nil, fmt.Errorf("failed to count completed meals: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.category, COUNT(*)
		 FROM planned_meals pm
		 JOIN recipes r ON pm.recipe_id = r.id
		 WHERE pm.meal_plan_id = ?
		 GROUP BY r.category`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to group meals by category: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		stats.ByCategory[category] = count
	}
	return stats, rows.Err()
}

// ShoppingStats is the rollup for one shopping list. NULL estimated prices
// count as 0 in the total rather than being excluded.
type ShoppingStats struct {
	TotalItems     int     `json:"total_items"`
	PurchasedItems int     `json:"purchased_items"`
	TotalCost      float64 `json:"total_cost"`
}

// GetShoppingStats computes counts and the price sum for a list. An empty
// or unknown list id yields zero values, not an error.
func (s *Store) GetShoppingStats(ctx context.Context, listID int64) (*ShoppingStats, error) {
	stats := &ShoppingStats{}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shopping_items WHERE shopping_list_id = ?`, listID).
		Scan(&stats.TotalItems); err != nil {
		return nil, fmt.Errorf("failed to count shopping items: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shopping_items WHERE shopping_list_id = ? AND is_purchased = 1`, listID).
		Scan(&stats.PurchasedItems); err != nil {
		return nil, fmt.Errorf("failed to count purchased items: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(COALESCE(estimated_price, 0)), 0)
		 FROM shopping_items WHERE shopping_list_id = ?`, listID).
		Scan(&stats.TotalCost); err != nil {
		return nil, fmt.Errorf("failed to sum shopping items: %w", err)
	}

	return stats, nil
}

// SavingsSummary is the coupon savings rollup across the whole database.
type SavingsSummary struct {
	ClippedCoupons   int     `json:"clipped_coupons"`
	AppliedMatches   int     `json:"applied_matches"`
	EstimatedSavings float64 `json:"estimated_savings"`
}

// GetSavingsSummary computes clip/apply counts and the savings recorded on
// all shopping lists.
func (s *Store) GetSavingsSummary(ctx context.Context) (*SavingsSummary, error) {
	summary := &SavingsSummary{}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM coupons WHERE is_clipped = 1`).
		Scan(&summary.ClippedCoupons); err != nil {
		return nil, fmt.Errorf("failed to count clipped coupons: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM coupon_matches WHERE is_applied = 1`).
		Scan(&summary.AppliedMatches); err != nil {
		return nil, fmt.Errorf("failed to count applied matches: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_savings), 0) FROM shopping_lists`).
		Scan(&summary.EstimatedSavings); err != nil {
		return nil, fmt.Errorf("failed to sum savings: %w", err)
	}

	return summary, nil
}
