package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeResumeCmd = &cobra.Command{
	Use:   "analyze-resume",
	Short: "Grade a resume section by section",
	Long: "Grade the contact, summary, experience, education and skills sections of a resume and " +
		"report the parsed skills, experience timeline and improvement suggestions.",
	RunE: runAnalyzeResume,
}

var analyzeResumeInputFile string

func init() {
	analyzeResumeCmd.Flags().StringVarP(&analyzeResumeInputFile, "in", "i", "", "Path to the resume (required)")
	_ = analyzeResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeResumeCmd)
}

func runAnalyzeResume(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	text, err := readDocument(ctx, rt.Service, analyzeResumeInputFile)
	if err != nil {
		return err
	}
	result, err := rt.Service.AnalyzeResume(ctx, text)
	if err != nil {
		return fmt.Errorf("resume analysis failed: %w", err)
	}
	return writeOutput(cmd, result)
}
