package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/searchfind/screening-engine/internal/export"
	"github.com/searchfind/screening-engine/internal/schemas"
	"github.com/searchfind/screening-engine/internal/types"
)

var bulkScreenCmd = &cobra.Command{
	Use:   "bulk-screen",
	Short: "Screen and rank a batch of applications",
	Long: "Screen every application in a JSON array against one job listing and rank the valid ones " +
		"by score. --xlsx also writes the ranking as an Excel workbook.",
	RunE: runBulkScreen,
}

var (
	bulkJobFile          string
	bulkApplicationsFile string
	bulkXLSXFile         string
)

func init() {
	bulkScreenCmd.Flags().StringVarP(&bulkJobFile, "job", "j", "", "Path to the job listing JSON (required)")
	bulkScreenCmd.Flags().StringVarP(&bulkApplicationsFile, "applications", "a", "", "Path to a JSON array of applications (required)")
	bulkScreenCmd.Flags().StringVar(&bulkXLSXFile, "xlsx", "", "Also write the ranking to this Excel workbook")
	_ = bulkScreenCmd.MarkFlagRequired("job")
	_ = bulkScreenCmd.MarkFlagRequired("applications")

	rootCmd.AddCommand(bulkScreenCmd)
}

func runBulkScreen(cmd *cobra.Command, _ []string) error {
	var listing types.JobListing
	if err := readJSONFile(bulkJobFile, schemas.JobListing, &listing); err != nil {
		return err
	}
	var apps []types.Application
	if err := readJSONFile(bulkApplicationsFile, schemas.Applications, &apps); err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, logger, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.Service.BulkScreen(ctx, &listing, apps)
	if err != nil {
		return fmt.Errorf("bulk screening failed: %w", err)
	}

	if bulkXLSXFile != "" {
		path, err := export.SaveBulkXLSX(bulkXLSXFile, result)
		if err != nil {
			return fmt.Errorf("failed to export workbook: %w", err)
		}
		logger.Info("workbook written", map[string]interface{}{"path": path, "candidates": len(result.ScreeningResults)})
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Workbook: %s\n", path)
	}
	return writeOutput(cmd, result)
}
