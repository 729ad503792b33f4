package mealplan

import (
	"context"
	"fmt"
)

// schema contains the full DDL for the meal-planner database. Idempotent;
// EnsureSchema never drops or mutates existing data.
const schema = `
CREATE TABLE IF NOT EXISTS recipes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    cook_time INTEGER,
    prep_time INTEGER,
    servings INTEGER DEFAULT 4,
    calories INTEGER,
    protein REAL,
    sodium INTEGER,
    ingredients TEXT NOT NULL,
    instructions TEXT NOT NULL,
    image_url TEXT,
    is_favorite BOOLEAN DEFAULT 0,
    is_heart_healthy BOOLEAN DEFAULT 0,
    is_diabetic_friendly BOOLEAN DEFAULT 0,
    is_low_sodium BOOLEAN DEFAULT 0,
    is_low_carb BOOLEAN DEFAULT 0,
    cuisine_type TEXT,
    difficulty TEXT,
    last_used_date DATE,
    use_count INTEGER DEFAULT 0,
    notes TEXT,
    source TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS meal_plans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    number_of_people INTEGER DEFAULT 2,
    plan_type TEXT DEFAULT '2-week',
    is_active BOOLEAN DEFAULT 1,
    notes TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS planned_meals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    meal_plan_id INTEGER NOT NULL,
    recipe_id INTEGER NOT NULL,
    meal_date DATE NOT NULL,
    meal_type TEXT NOT NULL,
    is_completed BOOLEAN DEFAULT 0,
    servings INTEGER,
    notes TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (meal_plan_id) REFERENCES meal_plans (id) ON DELETE CASCADE,
    FOREIGN KEY (recipe_id) REFERENCES recipes (id)
);

CREATE TABLE IF NOT EXISTS shopping_lists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    meal_plan_id INTEGER,
    week_start_date DATE,
    is_completed BOOLEAN DEFAULT 0,
    total_estimated_cost REAL DEFAULT 0,
    total_savings REAL DEFAULT 0,
    store_preference TEXT,
    notes TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (meal_plan_id) REFERENCES meal_plans (id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS shopping_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    shopping_list_id INTEGER NOT NULL,
    recipe_id INTEGER,
    item_name TEXT NOT NULL,
    quantity TEXT,
    unit TEXT,
    category TEXT,
    estimated_price REAL,
    is_purchased BOOLEAN DEFAULT 0,
    aisle TEXT,
    notes TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (shopping_list_id) REFERENCES shopping_lists (id) ON DELETE CASCADE,
    FOREIGN KEY (recipe_id) REFERENCES recipes (id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS coupons (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    store TEXT NOT NULL,
    product_name TEXT NOT NULL,
    discount_type TEXT,
    discount_value REAL,
    description TEXT,
    category TEXT,
    expiration_date DATE,
    coupon_code TEXT,
    clip_url TEXT,
    is_clipped BOOLEAN DEFAULT 0,
    is_used BOOLEAN DEFAULT 0,
    min_purchase_amount REAL,
    max_discount_amount REAL,
    external_coupon_id TEXT,
    api_source TEXT,
    terms TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS coupon_matches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    shopping_item_id INTEGER NOT NULL,
    coupon_id INTEGER NOT NULL,
    match_score REAL DEFAULT 0,
    is_applied BOOLEAN DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (shopping_item_id) REFERENCES shopping_items (id) ON DELETE CASCADE,
    FOREIGN KEY (coupon_id) REFERENCES coupons (id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS user_preferences (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    household_size INTEGER DEFAULT 2,
    dietary_restrictions TEXT,
    allergies TEXT,
    preferred_cuisines TEXT,
    disliked_ingredients TEXT,
    budget_per_week REAL,
    preferred_stores TEXT,
    meal_prep_day TEXT DEFAULT 'Sunday',
    shopping_day TEXT DEFAULT 'Saturday',
    breakfast_enabled BOOLEAN DEFAULT 1,
    lunch_enabled BOOLEAN DEFAULT 1,
    dinner_enabled BOOLEAN DEFAULT 1,
    claude_api_key TEXT,
    notifications_enabled BOOLEAN DEFAULT 1,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS recipe_ratings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipe_id INTEGER NOT NULL,
    rating INTEGER CHECK(rating >= 1 AND rating <= 5),
    review TEXT,
    would_make_again BOOLEAN DEFAULT 1,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (recipe_id) REFERENCES recipes (id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS pantry_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    item_name TEXT NOT NULL,
    quantity TEXT,
    unit TEXT,
    category TEXT,
    purchase_date DATE,
    expiration_date DATE,
    location TEXT,
    is_staple BOOLEAN DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_planned_meals_plan ON planned_meals(meal_plan_id);
CREATE INDEX IF NOT EXISTS idx_shopping_items_list ON shopping_items(shopping_list_id);
CREATE INDEX IF NOT EXISTS idx_coupon_matches_item ON coupon_matches(shopping_item_id);
CREATE INDEX IF NOT EXISTS idx_recipes_category ON recipes(category);
`

// EnsureSchema creates all tables and indexes if absent. Any storage error
// is fatal to startup and propagates unchanged.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize meal-planner schema: %w", err)
	}
	return nil
}
