package mealplan

import (
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/lifehub/internal/storage"
)

// Meal types. The set is extensible; these are the built-ins the planner
// schedules by default.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
)

// Coupon discount types.
const (
	DiscountPercentage = "percentage"
	DiscountAmount     = "amount"
)

// Recipe is a stored recipe with nutrition facts and dietary tags.
type Recipe struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	CookTime           *int     `json:"cook_time,omitempty"`
	PrepTime           *int     `json:"prep_time,omitempty"`
	Servings           int      `json:"servings"`
	Calories           *int     `json:"calories,omitempty"`
	Protein            *float64 `json:"protein,omitempty"`
	Sodium             *int     `json:"sodium,omitempty"`
	Ingredients        string   `json:"ingredients"`
	Instructions       string   `json:"instructions"`
	ImageURL           *string  `json:"image_url,omitempty"`
	IsFavorite         bool     `json:"is_favorite"`
	IsHeartHealthy     bool     `json:"is_heart_healthy"`
	IsDiabeticFriendly bool     `json:"is_diabetic_friendly"`
	IsLowSodium        bool     `json:"is_low_sodium"`
	IsLowCarb          bool     `json:"is_low_carb"`
	CuisineType        *string  `json:"cuisine_type,omitempty"`
	Difficulty         *string  `json:"difficulty,omitempty"`
	LastUsedDate       *string  `json:"last_used_date,omitempty"`
	UseCount           int      `json:"use_count"`
	Notes              *string  `json:"notes,omitempty"`
	Source             *string  `json:"source,omitempty"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

// RecipeCreateInput holds the fields accepted on recipe creation.
// Servings defaults to 4.
type RecipeCreateInput struct {
	Name               string   `validate:"required,min=1"`
	Category           string   `validate:"required,min=1"`
	CookTime           *int     `validate:"-"`
	PrepTime           *int     `validate:"-"`
	Servings           int      `validate:"gte=0"`
	Calories           *int     `validate:"-"`
	Protein            *float64 `validate:"-"`
	Sodium             *int     `validate:"-"`
	Ingredients        string   `validate:"required,min=1"`
	Instructions       string   `validate:"required,min=1"`
	ImageURL           *string  `validate:"-"`
	IsHeartHealthy     bool     `validate:"-"`
	IsDiabeticFriendly bool     `validate:"-"`
	IsLowSodium        bool     `validate:"-"`
	IsLowCarb          bool     `validate:"-"`
	CuisineType        *string  `validate:"-"`
	Difficulty         *string  `validate:"-"`
	Source             *string  `validate:"-"`
}

// Validate checks the input at the repository boundary.
func (in *RecipeCreateInput) Validate() error {
	validate := validator.New()
	return storage.NewValidationError(validate.Struct(in))
}

// RecipeFilter is a sparse set of list predicates, ANDed together. The zero
// value returns all recipes.
type RecipeFilter struct {
	Category           string
	CuisineType        string
	MaxCookTime        int // minutes; 0 means no ceiling
	IsHeartHealthy     bool
	IsDiabeticFriendly bool
	IsLowSodium        bool
	IsLowCarb          bool
	IsFavorite         bool
}

// RecipeUpdate is a sparse update; nil fields are left untouched.
type RecipeUpdate struct {
	Name               *string
	Category           *string
	CookTime           *int
	PrepTime           *int
	Servings           *int
	Calories           *int
	Protein            *float64
	Sodium             *int
	Ingredients        *string
	Instructions       *string
	ImageURL           *string
	IsHeartHealthy     *bool
	IsDiabeticFriendly *bool
	IsLowSodium        *bool
	IsLowCarb          *bool
	CuisineType        *string
	Difficulty         *string
	Notes              *string
	Source             *string
}

func (u *RecipeUpdate) assignments() *storage.Assignments {
	set := &storage.Assignments{}
	if u.Name != nil {
		set.Set("name", *u.Name)
	}
	if u.Category != nil {
		set.Set("category", *u.Category)
	}
	if u.CookTime != nil {
		set.Set("cook_time", *u.CookTime)
	}
	if u.PrepTime != nil {
		set.Set("prep_time", *u.PrepTime)
	}
	if u.Servings != nil {
		set.Set("servings", *u.Servings)
	}
	if u.Calories != nil {
		set.Set("calories", *u.Calories)
	}
	if u.Protein != nil {
		set.Set("protein", *u.Protein)
	}
	if u.Sodium != nil {
		set.Set("sodium", *u.Sodium)
	}
	if u.Ingredients != nil {
		set.Set("ingredients", *u.Ingredients)
	}
	if u.Instructions != nil {
		set.Set("instructions", *u.Instructions)
	}
	if u.ImageURL != nil {
		set.Set("image_url", *u.ImageURL)
	}
	if u.IsHeartHealthy != nil {
		set.Set("is_heart_healthy", *u.IsHeartHealthy)
	}
	if u.IsDiabeticFriendly != nil {
		set.Set("is_diabetic_friendly", *u.IsDiabeticFriendly)
	}
	if u.IsLowSodium != nil {
		set.Set("is_low_sodium", *u.IsLowSodium)
	}
	if u.IsLowCarb != nil {
		set.Set("is_low_carb", *u.IsLowCarb)
	}
	if u.CuisineType != nil {
		set.Set("cuisine_type", *u.CuisineType)
	}
	if u.Difficulty != nil {
		set.Set("difficulty", *u.Difficulty)
	}
	if u.Notes != nil {
		set.Set("notes", *u.Notes)
	}
	if u.Source != nil {
		set.Set("source", *u.Source)
	}
	return set
}

// MealPlan is a date-ranged plan. At most one plan is active at a time;
// SetActivePlan enforces that transactionally.
type MealPlan struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	NumberOfPeople int     `json:"number_of_people"`
	PlanType       string  `json:"plan_type"`
	IsActive       bool    `json:"is_active"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// MealPlanCreateInput holds the fields accepted on plan creation.
// NumberOfPeople defaults to 2, PlanType to "2-week".
type MealPlanCreateInput struct {
	Name           string  `validate:"required,min=1"`
	StartDate      string  `validate:"required,datetime=2006-01-02"`
	EndDate        string  `validate:"required,datetime=2006-01-02,gtefield=StartDate"`
	NumberOfPeople int     `validate:"gte=0"`
	PlanType       string  `validate:"-"`
	Notes          *string `validate:"-"`
}

// Validate checks the input at the repository boundary.
func (in *MealPlanCreateInput) Validate() error {
	validate := validator.New()
	return storage.NewValidationError(validate.Struct(in))
}

// MealPlanUpdate is a sparse update; nil fields are left untouched.
type MealPlanUpdate struct {
	Name           *string
	StartDate      *string
	EndDate        *string
	NumberOfPeople *int
	PlanType       *string
	IsActive       *bool
	Notes          *string
}

func (u *MealPlanUpdate) assignments() *storage.Assignments {
	set := &storage.Assignments{}
	if u.Name != nil {
		set.Set("name", *u.Name)
	}
	if u.StartDate != nil {
		set.Set("start_date", *u.StartDate)
	}
	if u.EndDate != nil {
		set.Set("end_date", *u.EndDate)
	}
	if u.NumberOfPeople != nil {
		set.Set("number_of_people", *u.NumberOfPeople)
	}
	if u.PlanType != nil {
		set.Set("plan_type", *u.PlanType)
	}
	if u.IsActive != nil {
		set.Set("is_active", boolToInt(*u.IsActive))
	}
	if u.Notes != nil {
		set.Set("notes", *u.Notes)
	}
	return set
}

// PlannedMeal schedules one recipe on one date of a plan. Deleting the plan
// cascades to its planned meals.
type PlannedMeal struct {
	ID          int64   `json:"id"`
	MealPlanID  int64   `json:"meal_plan_id"`
	RecipeID    int64   `json:"recipe_id"`
	MealDate    string  `json:"meal_date"`
	MealType    string  `json:"meal_type"`
	IsCompleted bool    `json:"is_completed"`
	Servings    *int    `json:"servings,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`

	// Hydrated from recipes on reads.
	RecipeName     string  `json:"recipe_name,omitempty"`
	RecipeCookTime *int    `json:"recipe_cook_time,omitempty"`
	RecipeCategory string  `json:"recipe_category,omitempty"`
	RecipeImageURL *string `json:"recipe_image_url,omitempty"`
}

// PlannedMealCreateInput holds the fields accepted when scheduling a meal.
type PlannedMealCreateInput struct {
	MealPlanID int64   `validate:"required,gt=0"`
	RecipeID   int64   `validate:"required,gt=0"`
	MealDate   string  `validate:"required,datetime=2006-01-02"`
	MealType   string  `validate:"required,min=1"`
	Servings   *int    `validate:"-"`
	Notes      *string `validate:"-"`
}

// Validate checks the input at the repository boundary.
func (in *PlannedMealCreateInput) Validate() error {
	validate := validator.New()
	return storage.NewValidationError(validate.Struct(in))
}

// ShoppingList groups items, optionally tied to a plan (nulled when the
// plan is deleted). The running totals are recomputed by the store whenever
// items change, never by the schema.
type ShoppingList struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	MealPlanID         *int64  `json:"meal_plan_id,omitempty"`
	WeekStartDate      *string `json:"week_start_date,omitempty"`
	IsCompleted        bool    `json:"is_completed"`
	TotalEstimatedCost float64 `json:"total_estimated_cost"`
	TotalSavings       float64 `json:"total_savings"`
	StorePreference    *string `json:"store_preference,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// ShoppingListCreateInput holds the fields accepted on list creation.
type ShoppingListCreateInput struct {
	Name            string  `validate:"required,min=1"`
	MealPlanID      *int64  `validate:"-"`
	WeekStartDate   *string `validate:"omitempty,datetime=2006-01-02"`
	StorePreference *string `validate:"-"`
	Notes           *string `validate:"-"`
}

// Validate checks the input at the repository boundary.
func (in *ShoppingListCreateInput) Validate() error {
	validate := validator.New()
	return storage.NewValidationError(validate.Struct(in))
}

// ShoppingItem is one row on a list, optionally traced back to the recipe
// that produced it (nulled when the recipe is deleted).
type ShoppingItem struct {
	ID             int64    `json:"id"`
	ShoppingListID int64    `json:"shopping_list_id"`
	RecipeID       *int64   `json:"recipe_id,omitempty"`
	ItemName       string   `json:"item_name"`
	Quantity       *string  `json:"quantity,omitempty"`
	Unit           *string  `json:"unit,omitempty"`
	Category       *string  `json:"category,omitempty"`
	EstimatedPrice *float64 `json:"estimated_price,omitempty"`
	IsPurchased    bool     `json:"is_purchased"`
	Aisle          *string  `json:"aisle,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

// ShoppingItemCreateInput holds the fields accepted when adding an item.
type ShoppingItemCreateInput struct {
	ShoppingListID int64    `validate:"required,gt=0"`
	RecipeID       *int64   `validate:"-"`
	ItemName       string   `validate:"required,min=1"`
	Quantity       *string  `validate:"-"`
	Unit           *string  `validate:"-"`
	Category       *string  `validate:"-"`
	EstimatedPrice *float64 `validate:"omitempty,gte=0"`
	Aisle          *string  `validate:"-"`
	Notes          *string  `validate:"-"`
}

// Validate checks the input at the repository boundary.
func (in *ShoppingItemCreateInput) Validate() error {
	validate := validator.New()
	return storage.NewValidationError(validate.Struct(in))
}

// ShoppingItemUpdate is a sparse update; nil fields are left untouched.
type ShoppingItemUpdate struct {
	ItemName       *string
	Quantity       *string
	Unit           *string
	Category       *string
	EstimatedPrice *float64
	Aisle          *string
	Notes          *string
}

func (u *ShoppingItemUpdate) assignments() *storage.Assignments {
	set := &storage.Assignments{}
	if u.ItemName != nil {
		set.Set("item_name", *u.ItemName)
	}
	if u.Quantity != nil {
		set.Set("quantity", *u.Quantity)
	}
	if u.Unit != nil {
		set.Set("unit", *u.Unit)
	}
	if u.Category != nil {
		set.Set("category", *u.Category)
	}
	if u.EstimatedPrice != nil {
		set.Set("estimated_price", *u.EstimatedPrice)
	}
	if u.Aisle != nil {
		set.Set("aisle", *u.Aisle)
	}
	if u.Notes != nil {
		set.Set("notes", *u.Notes)
	}
	return set
}

// Coupon is a store offer with clip/use tracking.
type Coupon struct {
	ID                int64    `json:"id"`
	Store             string   `json:"store"`
	ProductName       string   `json:"product_name"`
	DiscountType      *string  `json:"discount_type,omitempty"`
	DiscountValue     *float64 `json:"discount_value,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Category          *string  `json:"category,omitempty"`
	ExpirationDate    *string  `json:"expiration_date,omitempty"`
	CouponCode        *string  `json:"coupon_code,omitempty"`
	ClipURL           *string  `json:"clip_url,omitempty"`
	IsClipped         bool     `json:"is_clipped"`
	IsUsed            bool     `json:"is_used"`
	MinPurchaseAmount *float64 `json:"min_purchase_amount,omitempty"`
	MaxDiscountAmount *float64 `json:"max_discount_amount,omitempty"`
	ExternalCouponID  *string  `json:"external_coupon_id,omitempty"`
	APISource         *string  `json:"api_source,omitempty"`
	Terms             *string  `json:"terms,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// CouponCreateInput holds the fields accepted on coupon creation.
type CouponCreateInput struct {
	Store             string   `validate:"required,min=1"`
	ProductName       string   `validate:"required,min=1"`
	DiscountType      *string  `validate:"omitempty,oneof=percentage amount"`
	DiscountValue     *float64 `validate:"omitempty,gte=0"`
	Description       *string  `validate:"-"`
	Category          *string  `validate:"-"`
	ExpirationDate    *string  `validate:"omitempty,datetime=2006-01-02"`
	CouponCode        *string  `validate:"-"`
	ClipURL           *string  `validate:"-"`
	MinPurchaseAmount *float64 `validate:"omitempty,gte=0"`
	MaxDiscountAmount *float64 `validate:"omitempty,gte=0"`
	ExternalCouponID  *string  `validate:"-"`
	APISource         *string  `validate:"-"`
	Terms             *string  `validate:"-"`
}

// Validate checks the input at the repository boundary.
func (in *CouponCreateInput) Validate() error {
	validate := validator.New()
	return storage.NewValidationError(validate.Struct(in))
}

// CouponFilter is a sparse set of list predicates, ANDed together. Expired
// coupons are always excluded.
type CouponFilter struct {
	Store    string
	Category string
	Clipped  *bool
}

// CouponMatch links a shopping item to a coupon with a relevance score.
type CouponMatch struct {
	ID             int64   `json:"id"`
	ShoppingItemID int64   `json:"shopping_item_id"`
	CouponID       int64   `json:"coupon_id"`
	MatchScore     float64 `json:"match_score"`
	IsApplied      bool    `json:"is_applied"`
	CreatedAt      string  `json:"created_at"`

	// Hydrated from coupons on reads.
	Coupon *Coupon `json:"coupon,omitempty"`
}

// UserPreferences is the singleton household settings row.
type UserPreferences struct {
	ID                   int64    `json:"id"`
	HouseholdSize        int      `json:"household_size"`
	DietaryRestrictions  *string  `json:"dietary_restrictions,omitempty"`
	Allergies            *string  `json:"allergies,omitempty"`
	PreferredCuisines    *string  `json:"preferred_cuisines,omitempty"`
	DislikedIngredients  *string  `json:"disliked_ingredients,omitempty"`
	BudgetPerWeek        *float64 `json:"budget_per_week,omitempty"`
	PreferredStores      *string  `json:"preferred_stores,omitempty"`
	MealPrepDay          string   `json:"meal_prep_day"`
	ShoppingDay          string   `json:"shopping_day"`
	BreakfastEnabled     bool     `json:"breakfast_enabled"`
	LunchEnabled         bool     `json:"lunch_enabled"`
	DinnerEnabled        bool     `json:"dinner_enabled"`
	ClaudeAPIKey         *string  `json:"claude_api_key,omitempty"`
	NotificationsEnabled bool     `json:"notifications_enabled"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

// UserPreferencesUpdate carries the fields to merge into the singleton
// preferences row; Save upserts.
type UserPreferencesUpdate struct {
	HouseholdSize        *int
	DietaryRestrictions  *string
	Allergies            *string
	PreferredCuisines    *string
	DislikedIngredients  *string
	BudgetPerWeek        *float64
	PreferredStores      *string
	MealPrepDay          *string
	ShoppingDay          *string
	BreakfastEnabled     *bool
	LunchEnabled         *bool
	DinnerEnabled        *bool
	ClaudeAPIKey         *string
	NotificationsEnabled *bool
}

func (u *UserPreferencesUpdate) assignments() *storage.Assignments {
	set := &storage.Assignments{}
	if u.HouseholdSize != nil {
		set.Set("household_size", *u.HouseholdSize)
	}
	if u.DietaryRestrictions != nil {
		set.Set("dietary_restrictions", *u.DietaryRestrictions)
	}
	if u.Allergies != nil {
		set.Set("allergies", *u.Allergies)
	}
	if u.PreferredCuisines != nil {
		set.Set("preferred_cuisines", *u.PreferredCuisines)
	}
	if u.DislikedIngredients != nil {
		set.Set("disliked_ingredients", *u.DislikedIngredients)
	}
	if u.BudgetPerWeek != nil {
		set.Set("budget_per_week", *u.BudgetPerWeek)
	}
	if u.PreferredStores != nil {
		set.Set("preferred_stores", *u.PreferredStores)
	}
	if u.MealPrepDay != nil {
		set.Set("meal_prep_day", *u.MealPrepDay)
	}
	if u.ShoppingDay != nil {
		set.Set("shopping_day", *u.ShoppingDay)
	}
	if u.BreakfastEnabled != nil {
		set.Set("breakfast_enabled", boolToInt(*u.BreakfastEnabled))
	}
	if u.LunchEnabled != nil {
		set.Set("lunch_enabled", boolToInt(*u.LunchEnabled))
	}
	if u.DinnerEnabled != nil {
		set.Set("dinner_enabled", boolToInt(*u.DinnerEnabled))
	}
	if u.ClaudeAPIKey != nil {
		set.Set("claude_api_key", *u.ClaudeAPIKey)
	}
	if u.NotificationsEnabled != nil {
		set.Set("notifications_enabled", boolToInt(*u.NotificationsEnabled))
	}
	return set
}

// RecipeRating is a 1-5 star rating with an optional review. Cascade-deletes
// with its recipe.
type RecipeRating struct {
	ID             int64   `json:"id"`
	RecipeID       int64   `json:"recipe_id"`
	Rating         int     `json:"rating"`
	Review         *string `json:"review,omitempty"`
	WouldMakeAgain bool    `json:"would_make_again"`
	CreatedAt      string  `json:"created_at"`
}

// RecipeRatingCreateInput holds the fields accepted when rating a recipe.
type RecipeRatingCreateInput struct {
	RecipeID       int64   `validate:"required,gt=0"`
	Rating         int     `validate:"required,min=1,max=5"`
	Review         *string `validate:"-"`
	WouldMakeAgain bool    `validate:"-"`
}

// Validate checks the input at the repository boundary.
func (in *RecipeRatingCreateInput) Validate() error {
	validate := validator.New()
	return storage.NewValidationError(validate.Struct(in))
}

// PantryItem is a standalone inventory row, no foreign keys.
type PantryItem struct {
	ID             int64   `json:"id"`
	ItemName       string  `json:"item_name"`
	Quantity       *string `json:"quantity,omitempty"`
	Unit           *string `json:"unit,omitempty"`
	Category       *string `json:"category,omitempty"`
	PurchaseDate   *string `json:"purchase_date,omitempty"`
	ExpirationDate *string `json:"expiration_date,omitempty"`
	Location       *string `json:"location,omitempty"`
	IsStaple       bool    `json:"is_staple"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// PantryItemCreateInput holds the fields accepted when adding pantry stock.
type PantryItemCreateInput struct {
	ItemName       string  `validate:"required,min=1"`
	Quantity       *string `validate:"-"`
	Unit           *string `validate:"-"`
	Category       *string `validate:"-"`
	PurchaseDate   *string `validate:"omitempty,datetime=2006-01-02"`
	ExpirationDate *string `validate:"omitempty,datetime=2006-01-02"`
	Location       *string `validate:"-"`
	IsStaple       bool    `validate:"-"`
}

// Validate checks the input at the repository boundary.
func (in *PantryItemCreateInput) Validate() error {
	validate := validator.New()
	return storage.NewValidationError(validate.Struct(in))
}

// PantryItemUpdate is a sparse update; nil fields are left untouched.
type PantryItemUpdate struct {
	ItemName       *string
	Quantity       *string
	Unit           *string
	Category       *string
	PurchaseDate   *string
	ExpirationDate *string
	Location       *string
	IsStaple       *bool
}

func (u *PantryItemUpdate) assignments() *storage.Assignments {
	set := &storage.Assignments{}
	if u.ItemName != nil {
		set.Set("item_name", *u.ItemName)
	}
	if u.Quantity != nil {
		set.Set("quantity", *u.Quantity)
	}
	if u.Unit != nil {
		set.Set("unit", *u.Unit)
	}
	if u.Category != nil {
		set.Set("category", *u.Category)
	}
	if u.PurchaseDate != nil {
		set.Set("purchase_date", *u.PurchaseDate)
	}
	if u.ExpirationDate != nil {
		set.Set("expiration_date", *u.ExpirationDate)
	}
	if u.Location != nil {
		set.Set("location", *u.Location)
	}
	if u.IsStaple != nil {
		set.Set("is_staple", boolToInt(*u.IsStaple))
	}
	return set
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
