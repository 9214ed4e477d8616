package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var optimizeRequirementsCmd = &cobra.Command{
	Use:   "optimize-requirements",
	Short: "Split a requirements section into must-have and nice-to-have lists",
	RunE:  runOptimizeRequirements,
}

var optimizeInputFile string

func init() {
	optimizeRequirementsCmd.Flags().StringVarP(&optimizeInputFile, "in", "i", "", "Path to the requirements text (required)")
	_ = optimizeRequirementsCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(optimizeRequirementsCmd)
}

func runOptimizeRequirements(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	text, err := readDocument(ctx, rt.Service, optimizeInputFile)
	if err != nil {
		return err
	}
	result, err := rt.Service.OptimizeRequirements(ctx, text)
	if err != nil {
		return fmt.Errorf("requirements optimization failed: %w", err)
	}
	return writeOutput(cmd, result)
}
