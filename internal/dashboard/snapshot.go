// Package dashboard assembles the cross-app home screen snapshot. Each card
// is read independently and a missing domain (no active plan, no shopping
// list yet) renders as zero values rather than an error.
package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/lifehub/internal/jobsearch"
	"github.com/jonathan/lifehub/internal/mealplan"
)

const upcomingInterviewLimit = 5

// JobSearchCard is the funnel summary plus the trailing-week trend,
// oldest day first.
type JobSearchCard struct {
	Stats       jobsearch.ApplicationStats `json:"stats"`
	WeeklyTrend [7]int                     `json:"weekly_trend"`
}

// MealPlanningCard is the active plan with its progress. Plan is nil when
// no plan is active.
type MealPlanningCard struct {
	Plan  *mealplan.MealPlan `json:"plan,omitempty"`
	Stats mealplan.PlanStats `json:"stats"`
}

// ShoppingCard is the most recent shopping list with its totals. List is
// nil when no list exists.
type ShoppingCard struct {
	List  *mealplan.ShoppingList `json:"list,omitempty"`
	Stats mealplan.ShoppingStats `json:"stats"`
}

// Snapshot is the full widget payload for the home screen.
type Snapshot struct {
	JobSearch          JobSearchCard           `json:"job_search"`
	UpcomingInterviews []jobsearch.Application `json:"upcoming_interviews"`
	MealPlanning       MealPlanningCard        `json:"meal_planning"`
	Shopping           ShoppingCard            `json:"shopping"`
	Savings            mealplan.SavingsSummary `json:"savings"`
}

// Build reads both stores concurrently and assembles the snapshot. The
// first store error aborts the whole build.
func Build(ctx context.Context, jobs *jobsearch.Store, meals *mealplan.Store, now time.Time) (*Snapshot, error) {
	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := jobs.GetApplicationStats(ctx, now)
		if err != nil {
			return err
		}
		snap.JobSearch.Stats = *stats
		return nil
	})

	g.Go(func() error {
		trend, err := jobs.WeeklyTrend(ctx, now)
		if err != nil {
			return err
		}
		snap.JobSearch.WeeklyTrend = trend
		return nil
	})

	g.Go(func() error {
		interviews, err := jobs.UpcomingInterviews(ctx, now, upcomingInterviewLimit)
		if err != nil {
			return err
		}
		snap.UpcomingInterviews = interviews
		return nil
	})

	g.Go(func() error {
		plan, err := meals.GetActivePlan(ctx)
		if err != nil {
			return err
		}
		if plan == nil {
			return nil
		}
		stats, err := meals.GetPlanStats(ctx, plan.ID)
		if err != nil {
			return err
		}
		snap.MealPlanning = MealPlanningCard{Plan: plan, Stats: *stats}
		return nil
	})

	g.Go(func() error {
		lists, err := meals.ListShoppingLists(ctx)
		if err != nil {
			return err
		}
		if len(lists) == 0 {
			return nil
		}
		current := lists[0]
		stats, err := meals.GetShoppingStats(ctx, current.ID)
		if err != nil {
			return err
		}
		snap.Shopping = ShoppingCard{List: &current, Stats: *stats}
		return nil
	})

	g.Go(func() error {
		savings, err := meals.GetSavingsSummary(ctx)
		if err != nil {
			return err
		}
		snap.Savings = *savings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
