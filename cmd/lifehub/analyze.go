package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/lifehub/internal/genai"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a stored job posting",
	Long:  "Send a stored job posting to the generation service for a fit analysis and write the score and analysis text back onto the posting.",
	RunE:  runAnalyze,
}

var postingID int64

func init() {
	analyzeCmd.Flags().Int64VarP(&postingID, "posting", "p", 0, "Job posting id (required)")

	analyzeCmd.MarkFlagRequired("posting")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	posting, err := s.jobs.GetJobPosting(ctx, postingID)
	if err != nil {
		return fmt.Errorf("failed to load posting %d: %w", postingID, err)
	}

	// The environment key wins; the profile key is the in-app fallback.
	apiKey := s.settings.AnthropicAPIKey
	if apiKey == "" {
		profile, err := s.jobs.GetUserProfile(ctx)
		if err != nil {
			return err
		}
		if profile != nil && profile.ClaudeAPIKey != nil {
			apiKey = *profile.ClaudeAPIKey
		}
	}

	opts := []genai.Option{}
	if s.settings.Model != "" {
		opts = append(opts, genai.WithModel(s.settings.Model))
	}
	client, err := genai.NewAnthropicClient(apiKey, opts...)
	if err != nil {
		return err
	}

	analysis, err := genai.NewService(client).AnalyzeJob(ctx, genai.JobFields{
		Title:       posting.Title,
		Company:     posting.Company,
		Location:    posting.Location,
		SalaryMin:   posting.SalaryMin,
		SalaryMax:   posting.SalaryMax,
		Description: posting.Description,
	})
	if err != nil {
		return err
	}

	if err := s.jobs.SaveAnalysis(ctx, postingID, analysis.FullAnalysis, int(analysis.FitScore)); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Fit score: %.0f\n", analysis.FitScore)
	if analysis.Degraded {
		fmt.Fprintf(os.Stdout, "Analysis could not be parsed; raw text saved.\n")
	}
	fmt.Fprintf(os.Stdout, "Summary: %s\n", analysis.Summary)
	return nil
}
