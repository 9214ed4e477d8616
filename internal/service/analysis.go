package service

import (
	"context"

	"github.com/searchfind/screening-engine/internal/coverletter"
	"github.com/searchfind/screening-engine/internal/db"
	"github.com/searchfind/screening-engine/internal/ingestion"
	"github.com/searchfind/screening-engine/internal/jobposting"
)

// CoverLetterRequest is the input of AnalyzeCoverLetter.
type CoverLetterRequest struct {
	Text           string `json:"cover_letter_text" yaml:"cover_letter_text" validate:"required"`
	JobDescription string `json:"job_description,omitempty" yaml:"job_description,omitempty"`
	CompanyName    string `json:"company_name,omitempty" yaml:"company_name,omitempty" validate:"max=300"`
}

// JobPostingURLAnalysis is the analysis of a fetched posting with details
// of where its text came from.
type JobPostingURLAnalysis struct {
	jobposting.Analysis `yaml:",inline"`
	Source              *ingestion.Metadata `json:"source" yaml:"source"`
}

// AnalyzeCoverLetter grades a cover letter.
func (s *Service) AnalyzeCoverLetter(ctx context.Context, req CoverLetterRequest) (*coverletter.Analysis, error) {
	return run(ctx, s, operation[*coverletter.Analysis]{
		name:      OpCoverLetter,
		request:   req,
		cacheable: true,
		compute: func() (*coverletter.Analysis, error) {
			return s.coverLetters.Analyze(ctx, req.Text, req.JobDescription, req.CompanyName)
		},
		persist: func(r *coverletter.Analysis, hash string) error {
			return s.saveAnalysis(ctx, db.KindCoverLetter, hash, r)
		},
	})
}

// AnalyzeJobPosting grades the text of a job posting.
func (s *Service) AnalyzeJobPosting(ctx context.Context, text string) (*jobposting.Analysis, error) {
	return run(ctx, s, operation[*jobposting.Analysis]{
		name:      OpJobPosting,
		request:   textRequest{Text: text},
		cacheable: true,
		compute: func() (*jobposting.Analysis, error) {
			return s.jobPostings.Analyze(ctx, text)
		},
		persist: func(r *jobposting.Analysis, hash string) error {
			return s.saveAnalysis(ctx, db.KindJobPosting, hash, r)
		},
	})
}

// AnalyzeJobPostingURL fetches a posting and grades it. Fetched pages are
// cached by the fetcher, so the analysis itself is not.
func (s *Service) AnalyzeJobPostingURL(ctx context.Context, url string) (*JobPostingURLAnalysis, error) {
	return run(ctx, s, operation[*JobPostingURLAnalysis]{
		name:    OpJobPostingURL,
		request: struct{ URL string }{url},
		compute: func() (*JobPostingURLAnalysis, error) {
			text, meta, err := s.parser.ParseURL(ctx, url)
			if err != nil {
				return nil, err
			}
			if s.store != nil {
				_, err := s.store.UpsertJobPosting(ctx, &db.JobPostingInput{
					URL:         url,
					Platform:    meta.Platform,
					CleanedText: text,
					Rendered:    meta.Rendered,
				})
				if err != nil {
					s.logger.WithError(err).Warn("failed to store job posting", map[string]interface{}{"url": url})
				}
			}
			analysis, err := s.jobPostings.Analyze(ctx, text)
			if err != nil {
				return nil, err
			}
			return &JobPostingURLAnalysis{Analysis: *analysis, Source: meta}, nil
		},
		persist: func(r *JobPostingURLAnalysis, hash string) error {
			return s.saveAnalysis(ctx, db.KindJobPosting, hash, r)
		},
	})
}

// OptimizeRequirements rewrites a requirements section into must-have and
// nice-to-have lists.
func (s *Service) OptimizeRequirements(ctx context.Context, text string) (*jobposting.OptimizedRequirements, error) {
	return run(ctx, s, operation[*jobposting.OptimizedRequirements]{
		name:      OpOptimizeRequirements,
		request:   textRequest{Text: text},
		cacheable: true,
		compute: func() (*jobposting.OptimizedRequirements, error) {
			return s.jobPostings.OptimizeRequirements(ctx, text)
		},
		persist: func(r *jobposting.OptimizedRequirements, hash string) error {
			return s.saveAnalysis(ctx, db.KindRequirements, hash, r)
		},
	})
}
