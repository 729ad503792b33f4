package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/lifehub/internal/dashboard"
	"github.com/jonathan/lifehub/internal/jobsearch"
	"github.com/jonathan/lifehub/internal/mealplan"
)

func TestPrintApplicationStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintApplicationStats(&jobsearch.ApplicationStats{
		Total:       7,
		ThisWeek:    2,
		AvgFitScore: 71.5,
		ByStatus:    map[string]int{"applied": 4, "interview": 2, "offer": 1},
	})
	output := buf.String()

	assert.Contains(t, output, "APPLICATION FUNNEL")
	assert.Contains(t, output, "Total applications: 7")
	assert.Contains(t, output, "71.5")
	assert.Contains(t, output, "applied")
	assert.Contains(t, output, "interview")
}

func TestPrintApplicationStats_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintApplicationStats(nil)

	assert.Empty(t, buf.String())
}

func TestPrintPlanStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPlanStats("March Week 2", &mealplan.PlanStats{
		Total:      21,
		Completed:  9,
		ByCategory: map[string]int{"dinner": 7, "lunch": 7, "breakfast": 7},
	})
	output := buf.String()

	assert.Contains(t, output, "MEAL PLAN PROGRESS")
	assert.Contains(t, output, "March Week 2")
	assert.Contains(t, output, "21 meals")
	assert.Contains(t, output, "dinner")
}

func TestPrintShoppingStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintShoppingStats("Week 2", &mealplan.ShoppingStats{
		TotalItems:     12,
		PurchasedItems: 5,
		TotalCost:      84.30,
	})
	output := buf.String()

	assert.Contains(t, output, "SHOPPING LIST")
	assert.Contains(t, output, "12 (5 purchased)")
	assert.Contains(t, output, "$84.30")
}

func TestPrintSnapshot(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	date := "2026-03-14"
	snap := &dashboard.Snapshot{
		JobSearch: dashboard.JobSearchCard{
			Stats: jobsearch.ApplicationStats{Total: 3, ByStatus: map[string]int{"applied": 3}},
		},
		UpcomingInterviews: []jobsearch.Application{
			{Title: "Engineer", Company: "Acme", InterviewDate: &date},
		},
		Savings: mealplan.SavingsSummary{ClippedCoupons: 2, AppliedMatches: 1, EstimatedSavings: 3.75},
	}

	p.PrintSnapshot(snap)
	output := buf.String()

	assert.Contains(t, output, "APPLICATION FUNNEL")
	assert.Contains(t, output, "UPCOMING INTERVIEWS")
	assert.Contains(t, output, "Engineer @ Acme")
	assert.Contains(t, output, "COUPON SAVINGS")
	assert.Contains(t, output, "$3.75")
	// No plan or list cards without data.
	assert.NotContains(t, output, "MEAL PLAN PROGRESS")
	assert.NotContains(t, output, "SHOPPING LIST")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintShoppingStats("A Very Long Shopping List Name That Should Be Truncated To Fit The Box",
		&mealplan.ShoppingStats{})
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "..."))
}
