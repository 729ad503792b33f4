// Package main provides the entry point for the lifehub CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lifehub",
	Short: "Local data layer for the job search and meal planner apps",
	Long:  "lifehub manages the two local SQLite databases shared by the job search and meal planner apps: schema setup, dashboard aggregates, and assisted job analysis.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
