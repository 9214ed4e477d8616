package service

import (
	"context"

	"github.com/searchfind/screening-engine/internal/db"
	"github.com/searchfind/screening-engine/internal/matching"
	"github.com/searchfind/screening-engine/internal/resumeanalysis"
	"github.com/searchfind/screening-engine/internal/types"
)

// MatchRequest is one resume matched against one listing.
type MatchRequest struct {
	ResumeText string            `json:"resume_text"`
	Location   string            `json:"location,omitempty"`
	JobListing *types.JobListing `json:"job_listing"`
}

type rankRequest struct {
	JobListing *types.JobListing    `json:"job_listing"`
	Candidates []matching.Candidate `json:"candidates"`
}

type qualificationRequest struct {
	ResumeText  string             `json:"resume_text"`
	JobListings []types.JobListing `json:"job_listings"`
}

func candidatesReferenceFiles(candidates []matching.Candidate) bool {
	for _, c := range candidates {
		if c.ResumeFilePath != "" {
			return true
		}
	}
	return false
}

// AnalyzeResume grades resume text section by section.
func (s *Service) AnalyzeResume(ctx context.Context, text string) (*resumeanalysis.Analysis, error) {
	return run(ctx, s, operation[*resumeanalysis.Analysis]{
		name:      OpAnalyzeResume,
		request:   textRequest{Text: text},
		cacheable: true,
		compute: func() (*resumeanalysis.Analysis, error) {
			return s.resumes.Analyze(ctx, text)
		},
		persist: func(r *resumeanalysis.Analysis, hash string) error {
			return s.saveAnalysis(ctx, db.KindResumeAnalysis, hash, r)
		},
	})
}

// MatchCandidate scores one resume against one listing.
func (s *Service) MatchCandidate(ctx context.Context, req MatchRequest) (*matching.Match, error) {
	return run(ctx, s, operation[*matching.Match]{
		name:      OpMatchCandidate,
		request:   req,
		cacheable: true,
		compute: func() (*matching.Match, error) {
			m, err := s.matcher.MatchCandidateWithJob(ctx, req.ResumeText, req.Location, req.JobListing)
			if err != nil {
				return nil, err
			}
			s.metrics.ObserveScore(float64(m.OverallMatch))
			return m, nil
		},
		persist: func(r *matching.Match, hash string) error {
			return s.saveAnalysis(ctx, db.KindCandidateMatch, hash, r)
		},
	})
}

// RankCandidates matches every candidate against listing, best first.
func (s *Service) RankCandidates(ctx context.Context, listing *types.JobListing, candidates []matching.Candidate) (*matching.Ranking, error) {
	return run(ctx, s, operation[*matching.Ranking]{
		name:      OpRankCandidates,
		request:   rankRequest{JobListing: listing, Candidates: candidates},
		cacheable: !candidatesReferenceFiles(candidates),
		compute: func() (*matching.Ranking, error) {
			return s.matcher.MatchJobWithCandidates(ctx, listing, candidates)
		},
		persist: func(r *matching.Ranking, hash string) error {
			return s.saveAnalysis(ctx, db.KindCandidateMatch, hash, r)
		},
	})
}

// CheckQualification condenses the match of a resume against one listing.
func (s *Service) CheckQualification(ctx context.Context, resumeText string, listing *types.JobListing) (*matching.Qualification, error) {
	var listings []types.JobListing
	if listing != nil {
		listings = []types.JobListing{*listing}
	}
	return run(ctx, s, operation[*matching.Qualification]{
		name:      OpCheckQualification,
		request:   qualificationRequest{ResumeText: resumeText, JobListings: listings},
		cacheable: true,
		compute: func() (*matching.Qualification, error) {
			q, err := s.matcher.CheckQualification(ctx, resumeText, listing)
			if err != nil {
				return nil, err
			}
			return &q, nil
		},
		persist: func(r *matching.Qualification, hash string) error {
			return s.saveAnalysis(ctx, db.KindQualification, hash, r)
		},
	})
}

// CheckQualifications checks a resume against every listing with an ID.
func (s *Service) CheckQualifications(ctx context.Context, resumeText string, listings []types.JobListing) (map[string]matching.Qualification, error) {
	return run(ctx, s, operation[map[string]matching.Qualification]{
		name:      OpCheckQualifications,
		request:   qualificationRequest{ResumeText: resumeText, JobListings: listings},
		cacheable: true,
		compute: func() (map[string]matching.Qualification, error) {
			return s.matcher.CheckQualificationBatch(ctx, resumeText, listings)
		},
		persist: func(r map[string]matching.Qualification, hash string) error {
			return s.saveAnalysis(ctx, db.KindQualification, hash, r)
		},
	})
}

// ImprovementPlan suggests resume changes for the job in req.
func (s *Service) ImprovementPlan(ctx context.Context, req matching.ImprovementRequest) (*matching.ImprovementPlan, error) {
	return run(ctx, s, operation[*matching.ImprovementPlan]{
		name:      OpImprovementPlan,
		request:   req,
		cacheable: true,
		compute: func() (*matching.ImprovementPlan, error) {
			return s.matcher.ImprovementPlan(ctx, req)
		},
		persist: func(r *matching.ImprovementPlan, hash string) error {
			return s.saveAnalysis(ctx, db.KindImprovementPlan, hash, r)
		},
	})
}
