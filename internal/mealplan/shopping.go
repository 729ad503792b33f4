package mealplan

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonathan/lifehub/internal/storage"
)

const listColumns = `id, name, meal_plan_id, week_start_date, is_completed,
       total_estimated_cost, total_savings, store_preference, notes,
       created_at, updated_at`

func scanList(row interface{ Scan(...any) error }) (*ShoppingList, error) {
	var l ShoppingList
	err := row.Scan(&l.ID, &l.Name, &l.MealPlanID, &l.WeekStartDate,
		&l.IsCompleted, &l.TotalEstimatedCost, &l.TotalSavings,
		&l.StorePreference, &l.Notes, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateShoppingList inserts a list and returns its id.
func (s *Store) CreateShoppingList(ctx context.Context, input *ShoppingListCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO shopping_lists (name, meal_plan_id, week_start_date, store_preference, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		input.Name, input.MealPlanID, input.WeekStartDate, input.StorePreference, input.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to create shopping list: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new list id: %w", err)
	}
	return id, nil
}

// GetShoppingList retrieves a list by id.
func (s *Store) GetShoppingList(ctx context.Context, id int64) (*ShoppingList, error) {
	l, err := scanList(s.db.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM shopping_lists WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}
	return l, nil
}

// ListShoppingLists returns all lists newest-first.
func (s *Store) ListShoppingLists(ctx context.Context) ([]ShoppingList, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listColumns+` FROM shopping_lists ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	defer rows.Close()

	var lists []ShoppingList
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

// DeleteShoppingList hard-deletes a list and cascades its items. Missing
// ids are a no-op.
func (s *Store) DeleteShoppingList(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}

// RecalculateTotals recomputes a list's running totals from its current
// items and applied coupon matches. The schema never maintains these; every
// item mutation in this store calls back into this method.
func (s *Store) RecalculateTotals(ctx context.Context, listID int64) error {
	var totalCost float64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(COALESCE(estimated_price, 0)), 0)
		 FROM shopping_items WHERE shopping_list_id = ?`, listID).
		Scan(&totalCost); err != nil {
		return fmt.Errorf("failed to sum item prices: %w", err)
	}

	savings, err := s.appliedSavings(ctx, listID)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE shopping_lists
		 SET total_estimated_cost = ?, total_savings = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		totalCost, savings, listID)
	if err != nil {
		return fmt.Errorf("failed to store list totals: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// appliedSavings values the applied coupon matches on a list's items.
// Percentage coupons discount the item's estimated price; amount coupons
// discount their face value. Both respect max_discount_amount when set.
func (s *Store) appliedSavings(ctx context.Context, listID int64) (float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(si.estimated_price, 0), c.discount_type, c.discount_value, c.max_discount_amount
		 FROM coupon_matches cm
		 JOIN shopping_items si ON cm.shopping_item_id = si.id
		 JOIN coupons c ON cm.coupon_id = c.id
		 WHERE si.shopping_list_id = ? AND cm.is_applied = 1`, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to query applied matches: %w", err)
	}
	defer rows.Close()

	var savings float64
	for rows.Next() {
		var price float64
		var discountType *string
		var discountValue, maxDiscount *float64
		if err := rows.Scan(&price, &discountType, &discountValue, &maxDiscount); err != nil {
			return 0, fmt.Errorf("failed to scan applied match: %w", err)
		}
		if discountType == nil || discountValue == nil {
			continue
		}
		var discount float64
		switch *discountType {
		case DiscountPercentage:
			discount = price * *discountValue / 100
		case DiscountAmount:
			discount = *discountValue
		}
		if maxDiscount != nil && discount > *maxDiscount {
			discount = *maxDiscount
		}
		savings += discount
	}
	return savings, rows.Err()
}

// -----------------------------------------------------------------------------
// Shopping items
// -----------------------------------------------------------------------------

const itemColumns = `id, shopping_list_id, recipe_id, item_name, quantity,
       unit, category, estimated_price, is_purchased, aisle, notes, created_at`

func scanItem(row interface{ Scan(...any) error }) (*ShoppingItem, error) {
	var it ShoppingItem
	err := row.Scan(&it.ID, &it.ShoppingListID, &it.RecipeID, &it.ItemName,
		&it.Quantity, &it.Unit, &it.Category, &it.EstimatedPrice,
		&it.IsPurchased, &it.Aisle, &it.Notes, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// AddShoppingItem inserts an item and refreshes the owning list's totals.
func (s *Store) AddShoppingItem(ctx context.Context, input *ShoppingItemCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO shopping_items (shopping_list_id, recipe_id, item_name, quantity,
		                             unit, category, estimated_price, aisle, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.ShoppingListID, input.RecipeID, input.ItemName, input.Quantity,
		input.Unit, input.Category, input.EstimatedPrice, input.Aisle, input.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to add shopping item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new item id: %w", err)
	}

	if err := s.RecalculateTotals(ctx, input.ShoppingListID); err != nil {
		return 0, err
	}
	return id, nil
}

// GetShoppingItem retrieves an item by id.
func (s *Store) GetShoppingItem(ctx context.Context, id int64) (*ShoppingItem, error) {
	it, err := scanItem(s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM shopping_items WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shopping item: %w", err)
	}
	return it, nil
}

// ListShoppingItems returns a list's items grouped by category then name.
func (s *Store) ListShoppingItems(ctx context.Context, listID int64) ([]ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM shopping_items
		 WHERE shopping_list_id = ?
		 ORDER BY category, item_name`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}
	defer rows.Close()

	var items []ShoppingItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// UpdateShoppingItem applies a sparse update and refreshes the owning
// list's totals.
func (s *Store) UpdateShoppingItem(ctx context.Context, id int64, upd *ShoppingItemUpdate) error {
	item, err := s.GetShoppingItem(ctx, id)
	if err != nil {
		return err
	}

	set := upd.assignments()
	if set.Empty() {
		return nil
	}
	clause, args := set.Clause()
	args = append(args, id)

	if _, err := s.db.ExecContext(ctx,
		`UPDATE shopping_items SET `+clause+` WHERE id = ?`, args...); err != nil {
		return fmt.Errorf("failed to update shopping item: %w", err)
	}

	return s.RecalculateTotals(ctx, item.ShoppingListID)
}

// ToggleItemPurchased flips the purchased flag in a single statement.
func (s *Store) ToggleItemPurchased(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE shopping_items SET is_purchased = NOT is_purchased WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to toggle item purchased: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteShoppingItem removes an item and refreshes the owning list's
// totals. Missing ids are a no-op.
func (s *Store) DeleteShoppingItem(ctx context.Context, id int64) error {
	item, err := s.GetShoppingItem(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil
		}
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
	}
	return s.RecalculateTotals(ctx, item.ShoppingListID)
}
