package mealplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/lifehub/internal/storage"
)

func TestGetUserPreferencesAbsent(t *testing.T) {
	store := newTestStore(t)

	prefs, err := store.GetUserPreferences(context.Background())
	require.NoError(t, err)
	require.Nil(t, prefs)
}

func TestSaveUserPreferencesUpsertMerge(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUserPreferences(ctx, &UserPreferencesUpdate{
		HouseholdSize:       intPtr(3),
		DietaryRestrictions: strPtr("vegetarian"),
	}))

	require.NoError(t, store.SaveUserPreferences(ctx, &UserPreferencesUpdate{
		BudgetPerWeek: floatPtr(150),
	}))

	prefs, err := store.GetUserPreferences(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, prefs.HouseholdSize)
	require.Equal(t, "vegetarian", *prefs.DietaryRestrictions)
	require.InDelta(t, 150.0, *prefs.BudgetPerWeek, 0.001)

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_preferences`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestSaveUserPreferencesFreshRowKeepsDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUserPreferences(ctx, &UserPreferencesUpdate{
		ShoppingDay: strPtr("saturday"),
	}))

	prefs, err := store.GetUserPreferences(ctx)
	require.NoError(t, err)
	require.Equal(t, "saturday", prefs.ShoppingDay)
	// Untouched columns keep their schema defaults.
	require.Equal(t, 2, prefs.HouseholdSize)
	require.True(t, prefs.BreakfastEnabled)
}

func TestPantryItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	riceID, err := store.AddPantryItem(ctx, &PantryItemCreateInput{
		ItemName: "Rice", Category: strPtr("grains"), IsStaple: true,
	})
	require.NoError(t, err)
	_, err = store.AddPantryItem(ctx, &PantryItemCreateInput{
		ItemName: "Apples", Category: strPtr("fruit"),
	})
	require.NoError(t, err)

	items, err := store.ListPantryItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Grouped by category then name.
	require.Equal(t, "Apples", items[0].ItemName)
	require.Equal(t, "Rice", items[1].ItemName)

	require.NoError(t, store.UpdatePantryItem(ctx, riceID, &PantryItemUpdate{
		Quantity: strPtr("2"), Unit: strPtr("kg"),
	}))
	rice, err := store.GetPantryItem(ctx, riceID)
	require.NoError(t, err)
	require.Equal(t, "2", *rice.Quantity)
	require.True(t, rice.IsStaple)

	require.NoError(t, store.DeletePantryItem(ctx, riceID))
	_, err = store.GetPantryItem(ctx, riceID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Missing ids are a no-op.
	require.NoError(t, store.DeletePantryItem(ctx, riceID))
}

func TestUpdatePantryItemMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdatePantryItem(context.Background(), 42, &PantryItemUpdate{
		ItemName: strPtr("Ghost"),
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}
