package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/searchfind/screening-engine/internal/schemas"
	"github.com/searchfind/screening-engine/internal/service"
	"github.com/searchfind/screening-engine/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match one resume with a job listing",
	Long: "Score a resume against a job listing on skills, experience, education, job title and " +
		"location, with recommendations for closing the gaps.",
	RunE: runMatch,
}

var (
	matchJobFile    string
	matchResumeFile string
	matchLocation   string
)

func init() {
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to the job listing JSON (required)")
	matchCmd.Flags().StringVarP(&matchResumeFile, "resume", "r", "", "Path to the resume (required)")
	matchCmd.Flags().StringVar(&matchLocation, "location", "", "Candidate location")
	_ = matchCmd.MarkFlagRequired("job")
	_ = matchCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	var listing types.JobListing
	if err := readJSONFile(matchJobFile, schemas.JobListing, &listing); err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	text, err := readDocument(ctx, rt.Service, matchResumeFile)
	if err != nil {
		return err
	}
	result, err := rt.Service.MatchCandidate(ctx, service.MatchRequest{
		ResumeText: text,
		Location:   matchLocation,
		JobListing: &listing,
	})
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}
	return writeOutput(cmd, result)
}
