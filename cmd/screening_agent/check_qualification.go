package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/searchfind/screening-engine/internal/schemas"
	"github.com/searchfind/screening-engine/internal/types"
)

var checkQualificationCmd = &cobra.Command{
	Use:   "check-qualification",
	Short: "Check how qualified a resume is for one or more jobs",
	Long: "Summarize the match of a resume against a job listing (--job) or against every listing " +
		"with an id in a JSON array (--jobs): match percentage, missing requirements, strengths " +
		"and suggestions.",
	RunE: runCheckQualification,
}

var (
	qualifyResumeFile string
	qualifyJobFile    string
	qualifyJobsFile   string
)

func init() {
	checkQualificationCmd.Flags().StringVarP(&qualifyResumeFile, "resume", "r", "", "Path to the resume (required)")
	checkQualificationCmd.Flags().StringVarP(&qualifyJobFile, "job", "j", "", "Path to one job listing JSON")
	checkQualificationCmd.Flags().StringVar(&qualifyJobsFile, "jobs", "", "Path to a JSON array of job listings")
	_ = checkQualificationCmd.MarkFlagRequired("resume")
	checkQualificationCmd.MarkFlagsMutuallyExclusive("job", "jobs")

	rootCmd.AddCommand(checkQualificationCmd)
}

func runCheckQualification(cmd *cobra.Command, _ []string) error {
	if qualifyJobFile == "" && qualifyJobsFile == "" {
		return errors.New("one of --job or --jobs is required")
	}
	var (
		listing  types.JobListing
		listings []types.JobListing
	)
	if qualifyJobFile != "" {
		if err := readJSONFile(qualifyJobFile, schemas.JobListing, &listing); err != nil {
			return err
		}
	} else if err := readJSONFile(qualifyJobsFile, schemas.JobListings, &listings); err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	text, err := readDocument(ctx, rt.Service, qualifyResumeFile)
	if err != nil {
		return err
	}

	if qualifyJobFile != "" {
		result, err := rt.Service.CheckQualification(ctx, text, &listing)
		if err != nil {
			return fmt.Errorf("qualification check failed: %w", err)
		}
		return writeOutput(cmd, result)
	}
	results, err := rt.Service.CheckQualifications(ctx, text, listings)
	if err != nil {
		return fmt.Errorf("qualification check failed: %w", err)
	}
	return writeOutput(cmd, results)
}
