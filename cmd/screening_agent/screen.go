package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/searchfind/screening-engine/internal/schemas"
	"github.com/searchfind/screening-engine/internal/types"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Score one application against a job listing",
	Long: "Score an application JSON file against a job listing JSON file. Resume and cover letter " +
		"text may be inline or referenced by resume_file_path and cover_letter_file_path.",
	RunE: runScreen,
}

var (
	screenJobFile         string
	screenApplicationFile string
)

func init() {
	screenCmd.Flags().StringVarP(&screenJobFile, "job", "j", "", "Path to the job listing JSON (required)")
	screenCmd.Flags().StringVarP(&screenApplicationFile, "application", "a", "", "Path to the application JSON (required)")
	_ = screenCmd.MarkFlagRequired("job")
	_ = screenCmd.MarkFlagRequired("application")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, _ []string) error {
	var listing types.JobListing
	if err := readJSONFile(screenJobFile, schemas.JobListing, &listing); err != nil {
		return err
	}
	var app types.Application
	if err := readJSONFile(screenApplicationFile, schemas.Application, &app); err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.Service.Screen(ctx, &listing, &app)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}
	return writeOutput(cmd, result)
}
