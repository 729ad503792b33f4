package mealplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/lifehub/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewStore(db)
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
func int64Ptr(n int64) *int64     { return &n }
func boolPtr(b bool) *bool        { return &b }

func createRecipe(t *testing.T, store *Store, name, category string) int64 {
	t.Helper()
	id, err := store.CreateRecipe(context.Background(), &RecipeCreateInput{
		Name:         name,
		Category:     category,
		Ingredients:  "ingredients",
		Instructions: "instructions",
	})
	require.NoError(t, err)
	return id
}

func createPlan(t *testing.T, store *Store, name string) int64 {
	t.Helper()
	id, err := store.CreateMealPlan(context.Background(), &MealPlanCreateInput{
		Name:      name,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-15",
	})
	require.NoError(t, err)
	return id
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, store.EnsureSchema(context.Background()))
}
