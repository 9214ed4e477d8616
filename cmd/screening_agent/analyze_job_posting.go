package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeJobPostingCmd = &cobra.Command{
	Use:   "analyze-job-posting",
	Short: "Grade a job posting and suggest improvements",
	Long: "Extract the title, company and other details of a job posting, grade its quality and " +
		"suggest improvements. The posting is read from --in or downloaded from --url.",
	RunE: runAnalyzeJobPosting,
}

var (
	jobPostingInputFile string
	jobPostingURL       string
)

func init() {
	analyzeJobPostingCmd.Flags().StringVarP(&jobPostingInputFile, "in", "i", "", "Path to the job posting")
	analyzeJobPostingCmd.Flags().StringVarP(&jobPostingURL, "url", "u", "", "URL of the job posting")
	analyzeJobPostingCmd.MarkFlagsMutuallyExclusive("in", "url")
	analyzeJobPostingCmd.MarkFlagsOneRequired("in", "url")

	rootCmd.AddCommand(analyzeJobPostingCmd)
}

func runAnalyzeJobPosting(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	if jobPostingURL != "" {
		result, err := rt.Service.AnalyzeJobPostingURL(ctx, jobPostingURL)
		if err != nil {
			return fmt.Errorf("job posting analysis failed: %w", err)
		}
		if outputFormat == formatText {
			return writeOutput(cmd, &result.Analysis)
		}
		return writeOutput(cmd, result)
	}

	text, err := readDocument(ctx, rt.Service, jobPostingInputFile)
	if err != nil {
		return err
	}
	result, err := rt.Service.AnalyzeJobPosting(ctx, text)
	if err != nil {
		return fmt.Errorf("job posting analysis failed: %w", err)
	}
	return writeOutput(cmd, result)
}
