package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/searchfind/screening-engine/internal/matching"
	"github.com/searchfind/screening-engine/internal/schemas"
	"github.com/searchfind/screening-engine/internal/types"
)

var rankCandidatesCmd = &cobra.Command{
	Use:   "rank-candidates",
	Short: "Rank a pool of candidates for one job",
	Long: "Match every candidate in a JSON array against one job listing and order them by overall " +
		"match. Resumes may be inline or referenced by resume_file_path.",
	RunE: runRankCandidates,
}

var (
	rankJobFile        string
	rankCandidatesFile string
)

func init() {
	rankCandidatesCmd.Flags().StringVarP(&rankJobFile, "job", "j", "", "Path to the job listing JSON (required)")
	rankCandidatesCmd.Flags().StringVarP(&rankCandidatesFile, "candidates", "c", "", "Path to a JSON array of candidates (required)")
	_ = rankCandidatesCmd.MarkFlagRequired("job")
	_ = rankCandidatesCmd.MarkFlagRequired("candidates")

	rootCmd.AddCommand(rankCandidatesCmd)
}

func runRankCandidates(cmd *cobra.Command, _ []string) error {
	var listing types.JobListing
	if err := readJSONFile(rankJobFile, schemas.JobListing, &listing); err != nil {
		return err
	}
	var candidates []matching.Candidate
	if err := readJSONFile(rankCandidatesFile, schemas.Candidates, &candidates); err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.Service.RankCandidates(ctx, &listing, candidates)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}
	return writeOutput(cmd, result)
}
