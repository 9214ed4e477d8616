package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/searchfind/screening-engine/internal/schemas"
	"github.com/searchfind/screening-engine/internal/types"
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Generate a screening checklist for a job listing",
	RunE:  runCriteria,
}

var criteriaJobFile string

func init() {
	criteriaCmd.Flags().StringVarP(&criteriaJobFile, "job", "j", "", "Path to the job listing JSON (required)")
	_ = criteriaCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(criteriaCmd)
}

func runCriteria(cmd *cobra.Command, _ []string) error {
	var listing types.JobListing
	if err := readJSONFile(criteriaJobFile, schemas.JobListing, &listing); err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.Service.GenerateCriteria(ctx, &listing)
	if err != nil {
		return fmt.Errorf("criteria generation failed: %w", err)
	}
	return writeOutput(cmd, result)
}
