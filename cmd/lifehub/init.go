package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory and both database schemas",
	Long:  "Create the lifehub data directory, open both SQLite databases, and apply the job search and meal planner schemas. Safe to run repeatedly.",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := openStores(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(os.Stdout, "Job search database:   %s\n", s.settings.JobSearchDB)
	fmt.Fprintf(os.Stdout, "Meal planner database: %s\n", s.settings.MealPlannerDB)
	return nil
}
