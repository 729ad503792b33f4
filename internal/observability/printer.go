// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/lifehub/internal/dashboard"
	"github.com/jonathan/lifehub/internal/jobsearch"
	"github.com/jonathan/lifehub/internal/mealplan"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintApplicationStats outputs the job application funnel summary.
func (p *Printer) PrintApplicationStats(stats *jobsearch.ApplicationStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total applications: %d\n", stats.Total))
	sb.WriteString(fmt.Sprintf("Applied this week:  %d\n", stats.ThisWeek))
	sb.WriteString(fmt.Sprintf("Average fit score:  %.1f\n", stats.AvgFitScore))

	if len(stats.ByStatus) > 0 {
		sb.WriteString("\nBy status:\n")
		statuses := make([]string, 0, len(stats.ByStatus))
		for status := range stats.ByStatus {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			sb.WriteString(fmt.Sprintf("  • %-12s %d\n", status, stats.ByStatus[status]))
		}
	}

	p.printBox("APPLICATION FUNNEL", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlanStats outputs progress for one meal plan.
func (p *Printer) PrintPlanStats(planName string, stats *mealplan.PlanStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Plan:      %s\n", planName))
	sb.WriteString(fmt.Sprintf("Scheduled: %d meals\n", stats.Total))
	sb.WriteString(fmt.Sprintf("Completed: %d meals\n", stats.Completed))

	if len(stats.ByCategory) > 0 {
		sb.WriteString("\nBy category:\n")
		categories := make([]string, 0, len(stats.ByCategory))
		for category := range stats.ByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			sb.WriteString(fmt.Sprintf("  • %-12s %d\n", category, stats.ByCategory[category]))
		}
	}

	p.printBox("MEAL PLAN PROGRESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintShoppingStats outputs totals for one shopping list.
func (p *Printer) PrintShoppingStats(listName string, stats *mealplan.ShoppingStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("List:      %s\n", listName))
	sb.WriteString(fmt.Sprintf("Items:     %d (%d purchased)\n", stats.TotalItems, stats.PurchasedItems))
	sb.WriteString(fmt.Sprintf("Est. cost: $%.2f", stats.TotalCost))

	p.printBox("SHOPPING LIST", sb.String())
}

// PrintSnapshot outputs the whole dashboard, one box per card.
func (p *Printer) PrintSnapshot(snap *dashboard.Snapshot) {
	if snap == nil {
		return
	}

	p.PrintApplicationStats(&snap.JobSearch.Stats)

	if len(snap.UpcomingInterviews) > 0 {
		var sb strings.Builder
		count := min(len(snap.UpcomingInterviews), maxItemsToShow)
		for i := 0; i < count; i++ {
			app := snap.UpcomingInterviews[i]
			date := ""
			if app.InterviewDate != nil {
				date = *app.InterviewDate
			}
			sb.WriteString(fmt.Sprintf("• %s  %s @ %s\n", date, app.Title, app.Company))
		}
		if len(snap.UpcomingInterviews) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(snap.UpcomingInterviews)-maxItemsToShow))
		}
		p.printBox("UPCOMING INTERVIEWS", strings.TrimSuffix(sb.String(), "\n"))
	}

	if snap.MealPlanning.Plan != nil {
		p.PrintPlanStats(snap.MealPlanning.Plan.Name, &snap.MealPlanning.Stats)
	}
	if snap.Shopping.List != nil {
		p.PrintShoppingStats(snap.Shopping.List.Name, &snap.Shopping.Stats)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Clipped coupons: %d\n", snap.Savings.ClippedCoupons))
	sb.WriteString(fmt.Sprintf("Applied matches: %d\n", snap.Savings.AppliedMatches))
	sb.WriteString(fmt.Sprintf("Est. savings:    $%.2f", snap.Savings.EstimatedSavings))
	p.printBox("COUPON SAVINGS", sb.String())
}
