package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/lifehub/internal/jobsearch"
	"github.com/jonathan/lifehub/internal/mealplan"
	"github.com/jonathan/lifehub/internal/storage"
)

func newStores(t *testing.T) (*jobsearch.Store, *mealplan.Store) {
	t.Helper()
	ctx := context.Background()

	jobsDB, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { jobsDB.Close() })
	jobs := jobsearch.NewStore(jobsDB)
	require.NoError(t, jobs.EnsureSchema(ctx))

	mealsDB, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { mealsDB.Close() })
	meals := mealplan.NewStore(mealsDB)
	require.NoError(t, meals.EnsureSchema(ctx))

	return jobs, meals
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestBuildEmptyStores(t *testing.T) {
	jobs, meals := newStores(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	snap, err := Build(context.Background(), jobs, meals, now)
	require.NoError(t, err)

	require.Zero(t, snap.JobSearch.Stats.Total)
	require.Equal(t, [7]int{}, snap.JobSearch.WeeklyTrend)
	require.Empty(t, snap.UpcomingInterviews)
	require.Nil(t, snap.MealPlanning.Plan)
	require.Nil(t, snap.Shopping.List)
	require.Zero(t, snap.Savings.EstimatedSavings)
}

func TestBuildPopulatedSnapshot(t *testing.T) {
	jobs, meals := newStores(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// One application with an interview scheduled after now.
	postingID, err := jobs.CreateJobPosting(ctx, &jobsearch.JobPostingCreateInput{
		Title: "Engineer", Company: "Acme",
	})
	require.NoError(t, err)
	appID, err := jobs.CreateApplication(ctx, &jobsearch.ApplicationCreateInput{
		JobPostingID: postingID,
	})
	require.NoError(t, err)
	require.NoError(t, jobs.UpdateApplicationStatus(ctx, appID, jobsearch.AppStatusInterview,
		time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))

	// An active plan with one scheduled meal.
	recipeID, err := meals.CreateRecipe(ctx, &mealplan.RecipeCreateInput{
		Name: "Salad", Category: "lunch",
		Ingredients: "greens", Instructions: "toss",
	})
	require.NoError(t, err)
	planID, err := meals.CreateMealPlan(ctx, &mealplan.MealPlanCreateInput{
		Name: "March", StartDate: "2026-03-02", EndDate: "2026-03-15",
	})
	require.NoError(t, err)
	require.NoError(t, meals.SetActivePlan(ctx, planID))
	_, err = meals.AddPlannedMeal(ctx, &mealplan.PlannedMealCreateInput{
		MealPlanID: planID, RecipeID: recipeID,
		MealDate: "2026-03-11", MealType: "lunch",
	})
	require.NoError(t, err)

	// A shopping list with one priced item.
	listID, err := meals.CreateShoppingList(ctx, &mealplan.ShoppingListCreateInput{Name: "Week 2"})
	require.NoError(t, err)
	_, err = meals.AddShoppingItem(ctx, &mealplan.ShoppingItemCreateInput{
		ShoppingListID: listID, ItemName: "Milk", EstimatedPrice: floatPtr(4.25),
	})
	require.NoError(t, err)

	snap, err := Build(ctx, jobs, meals, now)
	require.NoError(t, err)

	require.Equal(t, 1, snap.JobSearch.Stats.Total)
	require.Equal(t, 1, snap.JobSearch.Stats.ByStatus[jobsearch.AppStatusInterview])

	require.Len(t, snap.UpcomingInterviews, 1)
	require.Equal(t, "Engineer", snap.UpcomingInterviews[0].Title)

	require.NotNil(t, snap.MealPlanning.Plan)
	require.Equal(t, planID, snap.MealPlanning.Plan.ID)
	require.Equal(t, 1, snap.MealPlanning.Stats.Total)

	require.NotNil(t, snap.Shopping.List)
	require.Equal(t, listID, snap.Shopping.List.ID)
	require.Equal(t, 1, snap.Shopping.Stats.TotalItems)
	require.InDelta(t, 4.25, snap.Shopping.Stats.TotalCost, 0.001)
}

func TestBuildUsesNewestShoppingList(t *testing.T) {
	jobs, meals := newStores(t)
	ctx := context.Background()

	older, err := meals.CreateShoppingList(ctx, &mealplan.ShoppingListCreateInput{
		Name: "Week 1", WeekStartDate: strPtr("2026-03-02"),
	})
	require.NoError(t, err)
	newer, err := meals.CreateShoppingList(ctx, &mealplan.ShoppingListCreateInput{
		Name: "Week 2", WeekStartDate: strPtr("2026-03-09"),
	})
	require.NoError(t, err)
	require.NotEqual(t, older, newer)

	snap, err := Build(ctx, jobs, meals, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, snap.Shopping.List)
	require.Equal(t, newer, snap.Shopping.List.ID)
}
