package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Classify a document and report its confidence",
	Long: "Classify a .txt, .md, .html or .docx file as resume, cover letter, job description or other. " +
		"With --resume, grade the resume sections instead.",
	RunE: runValidate,
}

var (
	validateInputFile string
	validateResume    bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to the document (required)")
	validateCmd.Flags().BoolVar(&validateResume, "resume", false, "Grade resume sections and completeness")
	_ = validateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	text, err := readDocument(ctx, rt.Service, validateInputFile)
	if err != nil {
		return err
	}

	if validateResume {
		result, err := rt.Service.ValidateResume(ctx, text)
		if err != nil {
			return fmt.Errorf("resume validation failed: %w", err)
		}
		return writeOutput(cmd, result)
	}

	result, err := rt.Service.ValidateDocument(ctx, text)
	if err != nil {
		return fmt.Errorf("document validation failed: %w", err)
	}
	return writeOutput(cmd, result)
}
