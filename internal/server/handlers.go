package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/searchfind/screening-engine/internal/matching"
	"github.com/searchfind/screening-engine/internal/schemas"
	"github.com/searchfind/screening-engine/internal/service"
	"github.com/searchfind/screening-engine/internal/types"
)

// TextRequest carries a document as plain text.
type TextRequest struct {
	Text string `json:"text" validate:"required"`
}

// ScreeningRequest is the body of POST /screenings.
type ScreeningRequest struct {
	JobListing  *types.JobListing  `json:"job_listing" validate:"required"`
	Application *types.Application `json:"application" validate:"required"`
}

// BulkScreeningRequest is the body of POST /screenings/bulk.
type BulkScreeningRequest struct {
	JobListing   *types.JobListing   `json:"job_listing" validate:"required"`
	Applications []types.Application `json:"applications" validate:"required,min=1,max=1000"`
}

// CriteriaRequest is the body of POST /criteria.
type CriteriaRequest struct {
	JobListing *types.JobListing `json:"job_listing" validate:"required"`
}

// JobPostingRequest is the body of POST /job-postings/analyze. Exactly one
// of Text and URL is set.
type JobPostingRequest struct {
	Text string `json:"text,omitempty" validate:"required_without=URL,excluded_with=URL"`
	URL  string `json:"url,omitempty" validate:"omitempty,http_url"`
}

// MatchRequest is the body of POST /matches.
type MatchRequest struct {
	ResumeText string            `json:"resume_text" validate:"required"`
	Location   string            `json:"location,omitempty"`
	JobListing *types.JobListing `json:"job_listing" validate:"required"`
}

// RankRequest is the body of POST /matches/candidates.
type RankRequest struct {
	JobListing *types.JobListing    `json:"job_listing" validate:"required"`
	Candidates []matching.Candidate `json:"candidates" validate:"required,min=1,max=1000"`
}

// QualificationRequest is the body of POST /qualifications.
type QualificationRequest struct {
	ResumeText string            `json:"resume_text" validate:"required"`
	JobListing *types.JobListing `json:"job_listing" validate:"required"`
}

// QualificationBatchRequest is the body of POST /qualifications/batch.
type QualificationBatchRequest struct {
	ResumeText  string             `json:"resume_text" validate:"required"`
	JobListings []types.JobListing `json:"job_listings" validate:"required,min=1,max=200"`
}

// decode reads a JSON body into dst. A non-empty schema name validates the
// raw document first; struct tags are checked after decoding.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any, schema string) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		return err
	}
	if !json.Valid(body) {
		return &ErrValidation{Message: "request body is not valid JSON"}
	}
	if schema != "" {
		if err := schemas.Validate(schema, body); err != nil {
			return err
		}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return s.validate.Struct(dst)
}

// rejectFilePaths refuses server-side paths in applications received over
// HTTP; remote callers send text or file contents instead.
func rejectFilePaths(apps ...types.Application) error {
	for _, a := range apps {
		if a.ResumeFilePath != "" {
			return &ErrValidation{Field: "resume_file_path", Message: "file paths are not accepted over HTTP"}
		}
		if a.CoverLetterFilePath != "" {
			return &ErrValidation{Field: "cover_letter_file_path", Message: "file paths are not accepted over HTTP"}
		}
	}
	return nil
}

func (s *Server) handleValidateDocument(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}
	result, err := s.service.ValidateDocument(r.Context(), req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleValidateResume(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}
	result, err := s.service.ValidateResume(r.Context(), req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleParseDocument accepts a multipart upload in the "file" field.
func (s *Server) handleParseDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.fail(w, r, err)
			return
		}
		s.fail(w, r, &ErrValidation{Message: "expected a multipart/form-data upload"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "file", Message: "missing upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	parsed, err := s.service.ParseDocument(r.Context(), data, header.Filename)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, parsed)
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	var req ScreeningRequest
	if err := s.decode(w, r, &req, schemas.ScreeningRequest); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := rejectFilePaths(*req.Application); err != nil {
		s.fail(w, r, err)
		return
	}
	result, err := s.service.Screen(r.Context(), req.JobListing, req.Application)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleBulkScreen ranks applications. ?format=xlsx returns the ranking as
// an Excel workbook.
func (s *Server) handleBulkScreen(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "xlsx" {
		s.fail(w, r, &ErrValidation{Field: "format", Message: "must be json or xlsx"})
		return
	}

	var req BulkScreeningRequest
	if err := s.decode(w, r, &req, schemas.BulkScreeningRequest); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := rejectFilePaths(req.Applications...); err != nil {
		s.fail(w, r, err)
		return
	}
	result, err := s.service.BulkScreen(r.Context(), req.JobListing, req.Applications)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if format == "xlsx" {
		s.xlsxResponse(w, result)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleGetScreening(w http.ResponseWriter, r *http.Request) {
	stored, err := s.service.GetScreening(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

func (s *Server) handleGetBulk(w http.ResponseWriter, r *http.Request) {
	stored, err := s.service.GetBulk(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

func (s *Server) handleCriteria(w http.ResponseWriter, r *http.Request) {
	var req CriteriaRequest
	if err := s.decode(w, r, &req, schemas.CriteriaRequest); err != nil {
		s.fail(w, r, err)
		return
	}
	criteria, err := s.service.GenerateCriteria(r.Context(), req.JobListing)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, criteria)
}

func (s *Server) handleAnalyzeCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req service.CoverLetterRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}
	analysis, err := s.service.AnalyzeCoverLetter(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

func (s *Server) handleAnalyzeJobPosting(w http.ResponseWriter, r *http.Request) {
	var req JobPostingRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}

	if req.URL != "" {
		analysis, err := s.service.AnalyzeJobPostingURL(r.Context(), req.URL)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, analysis)
		return
	}

	analysis, err := s.service.AnalyzeJobPosting(r.Context(), req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

func (s *Server) handleOptimizeRequirements(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}
	optimized, err := s.service.OptimizeRequirements(r.Context(), req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, optimized)
}

func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}
	analysis, err := s.service.AnalyzeResume(r.Context(), req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

func (s *Server) handleImprovementPlan(w http.ResponseWriter, r *http.Request) {
	var req matching.ImprovementRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}
	plan, err := s.service.ImprovementPlan(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, plan)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}
	match, err := s.service.MatchCandidate(r.Context(), service.MatchRequest{
		ResumeText: req.ResumeText,
		Location:   req.Location,
		JobListing: req.JobListing,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, match)
}

func (s *Server) handleRankCandidates(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}
	for _, c := range req.Candidates {
		if c.ResumeFilePath != "" {
			s.fail(w, r, &ErrValidation{Field: "resume_file_path", Message: "file paths are not accepted over HTTP"})
			return
		}
	}
	ranking, err := s.service.RankCandidates(r.Context(), req.JobListing, req.Candidates)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ranking)
}

func (s *Server) handleQualification(w http.ResponseWriter, r *http.Request) {
	var req QualificationRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}
	q, err := s.service.CheckQualification(r.Context(), req.ResumeText, req.JobListing)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, q)
}

func (s *Server) handleQualificationBatch(w http.ResponseWriter, r *http.Request) {
	var req QualificationBatchRequest
	if err := s.decode(w, r, &req, ""); err != nil {
		s.fail(w, r, err)
		return
	}
	results, err := s.service.CheckQualifications(r.Context(), req.ResumeText, req.JobListings)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, results)
}
