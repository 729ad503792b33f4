package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/lifehub/internal/dashboard"
	"github.com/jonathan/lifehub/internal/observability"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the dashboard snapshot",
	Long:  "Assemble the cross-app dashboard snapshot (application funnel, upcoming interviews, active meal plan, shopping totals, coupon savings) and print it.",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := openStores(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := dashboard.Build(cmd.Context(), s.jobs, s.meals, time.Now())
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintSnapshot(snap)
	return nil
}
