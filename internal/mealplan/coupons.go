package mealplan

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/lifehub/internal/storage"
)

const couponColumns = `id, store, product_name, discount_type, discount_value,
       description, category, expiration_date, coupon_code, clip_url,
       is_clipped, is_used, min_purchase_amount, max_discount_amount,
       external_coupon_id, api_source, terms, created_at, updated_at`

func scanCoupon(row interface{ Scan(...any) error }) (*Coupon, error) {
	var c Coupon
	err := row.Scan(&c.ID, &c.Store, &c.ProductName, &c.DiscountType,
		&c.DiscountValue, &c.Description, &c.Category, &c.ExpirationDate,
		&c.CouponCode, &c.ClipURL, &c.IsClipped, &c.IsUsed,
		&c.MinPurchaseAmount, &c.MaxDiscountAmount, &c.ExternalCouponID,
		&c.APISource, &c.Terms, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCoupon inserts a coupon and returns its id.
func (s *Store) CreateCoupon(ctx context.Context, input *CouponCreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO coupons (store, product_name, discount_type, discount_value,
		                      description, category, expiration_date, coupon_code,
		                      clip_url, min_purchase_amount, max_discount_amount,
		                      external_coupon_id, api_source, terms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Store, input.ProductName, input.DiscountType, input.DiscountValue,
		input.Description, input.Category, input.ExpirationDate, input.CouponCode,
		input.ClipURL, input.MinPurchaseAmount, input.MaxDiscountAmount,
		input.ExternalCouponID, input.APISource, input.Terms)
	if err != nil {
		return 0, fmt.Errorf("failed to create coupon: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new coupon id: %w", err)
	}
	return id, nil
}

// GetCoupon retrieves a coupon by id.
func (s *Store) GetCoupon(ctx context.Context, id int64) (*Coupon, error) {
	c, err := scanCoupon(s.db.QueryRowContext(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return c, nil
}

// ListCoupons returns unexpired coupons ordered soonest-to-expire first,
// narrowed by whichever filter predicates are set.
func (s *Store) ListCoupons(ctx context.Context, filter CouponFilter, now time.Time) ([]Coupon, error) {
	conditions := []string{"(expiration_date IS NULL OR expiration_date >= ?)"}
	args := []any{now.Format("2006-01-02")}

	if filter.Store != "" {
		conditions = append(conditions, "store = ?")
		args = append(args, filter.Store)
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Clipped != nil {
		conditions = append(conditions, "is_clipped = ?")
		args = append(args, boolToInt(*filter.Clipped))
	}

	query := `SELECT ` + couponColumns + ` FROM coupons WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY expiration_date ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}
	return coupons, rows.Err()
}

// ToggleCouponClipped flips the clipped flag in a single statement.
func (s *Store) ToggleCouponClipped(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE coupons SET is_clipped = NOT is_clipped WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to toggle coupon clipped: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// MarkCouponUsed flags a coupon as redeemed.
func (s *Store) MarkCouponUsed(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE coupons SET is_used = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark coupon used: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteCoupon hard-deletes a coupon; its matches cascade. Missing ids are
// a no-op.
func (s *Store) DeleteCoupon(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM coupons WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Coupon matches
// -----------------------------------------------------------------------------

// RecordCouponMatch links a shopping item to a coupon with a match score.
func (s *Store) RecordCouponMatch(ctx context.Context, itemID, couponID int64, score float64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO coupon_matches (shopping_item_id, coupon_id, match_score)
		 VALUES (?, ?, ?)`,
		itemID, couponID, score)
	if err != nil {
		return 0, fmt.Errorf("failed to record coupon match: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new match id: %w", err)
	}
	return id, nil
}

// ListCouponMatches returns an item's matches best-score-first, hydrated
// with the matched coupon.
func (s *Store) ListCouponMatches(ctx context.Context, itemID int64) ([]CouponMatch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cm.id, cm.shopping_item_id, cm.coupon_id, cm.match_score,
		        cm.is_applied, cm.created_at, `+prefixColumns("c", couponColumns)+`
		 FROM coupon_matches cm
		 JOIN coupons c ON cm.coupon_id = c.id
		 WHERE cm.shopping_item_id = ?
		 ORDER BY cm.match_score DESC, cm.id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupon matches: %w", err)
	}
	defer rows.Close()

	var matches []CouponMatch
	for rows.Next() {
		var m CouponMatch
		var c Coupon
		if err := rows.Scan(&m.ID, &m.ShoppingItemID, &m.CouponID, &m.MatchScore,
			&m.IsApplied, &m.CreatedAt,
			&c.ID, &c.Store, &c.ProductName, &c.DiscountType, &c.DiscountValue,
			&c.Description, &c.Category, &c.ExpirationDate, &c.CouponCode,
			&c.ClipURL, &c.IsClipped, &c.IsUsed, &c.MinPurchaseAmount,
			&c.MaxDiscountAmount, &c.ExternalCouponID, &c.APISource, &c.Terms,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coupon match: %w", err)
		}
		m.Coupon = &c
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ApplyCouponMatch marks a match as applied and refreshes the owning
// list's savings total.
func (s *Store) ApplyCouponMatch(ctx context.Context, matchID int64) error {
	var itemID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT shopping_item_id FROM coupon_matches WHERE id = ?`, matchID).Scan(&itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to look up coupon match: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE coupon_matches SET is_applied = 1 WHERE id = ?`, matchID); err != nil {
		return fmt.Errorf("failed to apply coupon match: %w", err)
	}

	item, err := s.GetShoppingItem(ctx, itemID)
	if err != nil {
		return err
	}
	return s.RecalculateTotals(ctx, item.ShoppingListID)
}

// prefixColumns qualifies each column in a comma-separated list with a
// table alias for use in joins.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
