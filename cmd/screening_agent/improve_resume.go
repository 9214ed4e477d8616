package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/searchfind/screening-engine/internal/matching"
	"github.com/searchfind/screening-engine/internal/schemas"
	"github.com/searchfind/screening-engine/internal/types"
)

var improveResumeCmd = &cobra.Command{
	Use:   "improve-resume",
	Short: "Suggest resume changes for a target job",
	Long: "Compare a resume with a job listing and return prioritized suggestions, missing skills " +
		"and keywords, and an outline of a resume focused on the job.",
	RunE: runImproveResume,
}

var (
	improveResumeFile string
	improveJobFile    string
	improveLevel      string
)

func init() {
	improveResumeCmd.Flags().StringVarP(&improveResumeFile, "resume", "r", "", "Path to the resume (required)")
	improveResumeCmd.Flags().StringVarP(&improveJobFile, "job", "j", "", "Path to the job listing JSON (required)")
	improveResumeCmd.Flags().StringVar(&improveLevel, "level", "", "Experience level of the job: entry, junior, mid, senior, lead or executive")
	_ = improveResumeCmd.MarkFlagRequired("resume")
	_ = improveResumeCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(improveResumeCmd)
}

// improvementRequest maps a job listing onto the fields the planner reads.
func improvementRequest(listing *types.JobListing, resumeText, level string) matching.ImprovementRequest {
	req := matching.ImprovementRequest{
		ResumeText:      resumeText,
		JobTitle:        listing.Title,
		JobDescription:  listing.Description,
		Skills:          listing.SkillsRequired,
		ExperienceLevel: level,
		Location:        listing.Location,
	}
	for _, line := range strings.Split(listing.Requirements, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•"))
		if line != "" {
			req.Requirements = append(req.Requirements, line)
		}
	}
	return req
}

func runImproveResume(cmd *cobra.Command, _ []string) error {
	var listing types.JobListing
	if err := readJSONFile(improveJobFile, schemas.JobListing, &listing); err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	text, err := readDocument(ctx, rt.Service, improveResumeFile)
	if err != nil {
		return err
	}
	plan, err := rt.Service.ImprovementPlan(ctx, improvementRequest(&listing, text, improveLevel))
	if err != nil {
		return fmt.Errorf("improvement plan failed: %w", err)
	}
	return writeOutput(cmd, plan)
}
