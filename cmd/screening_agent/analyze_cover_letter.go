package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/searchfind/screening-engine/internal/service"
)

var analyzeCoverLetterCmd = &cobra.Command{
	Use:   "analyze-cover-letter",
	Short: "Grade a cover letter",
	Long: "Grade the structure, content and personalization of a cover letter. A job description " +
		"adds a keyword relevance score and a company name sharpens the personalization check.",
	RunE: runAnalyzeCoverLetter,
}

var (
	coverLetterInputFile string
	coverLetterJobFile   string
	coverLetterCompany   string
)

func init() {
	analyzeCoverLetterCmd.Flags().StringVarP(&coverLetterInputFile, "in", "i", "", "Path to the cover letter (required)")
	analyzeCoverLetterCmd.Flags().StringVar(&coverLetterJobFile, "job-description", "", "Path to the job description")
	analyzeCoverLetterCmd.Flags().StringVar(&coverLetterCompany, "company", "", "Company the letter is addressed to")
	_ = analyzeCoverLetterCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeCoverLetterCmd)
}

func runAnalyzeCoverLetter(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, _, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	req := service.CoverLetterRequest{CompanyName: coverLetterCompany}
	if req.Text, err = readDocument(ctx, rt.Service, coverLetterInputFile); err != nil {
		return err
	}
	if coverLetterJobFile != "" {
		if req.JobDescription, err = readDocument(ctx, rt.Service, coverLetterJobFile); err != nil {
			return err
		}
	}

	result, err := rt.Service.AnalyzeCoverLetter(ctx, req)
	if err != nil {
		return fmt.Errorf("cover letter analysis failed: %w", err)
	}
	return writeOutput(cmd, result)
}
