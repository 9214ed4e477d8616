package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/searchfind/screening-engine/internal/types"
)

// Analysis kinds stored in the analyses table.
const (
	KindCoverLetter        = "cover_letter"
	KindJobPosting         = "job_posting"
	KindRequirements       = "requirements_optimization"
	KindCriteria           = "screening_criteria"
	KindDocumentValidation = "document_validation"
	KindResumeValidation   = "resume_validation"
	KindResumeAnalysis     = "resume_analysis"
	KindCandidateMatch     = "candidate_match"
	KindQualification      = "qualification"
	KindImprovementPlan    = "improvement_plan"
)

// StoredScreening is a persisted screening result.
type StoredScreening struct {
	ID        uuid.UUID             `json:"id"`
	BulkID    *uuid.UUID            `json:"bulk_id,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	Result    types.ScreeningResult `json:"result"`
}

// ScreeningSummary is a list row for screenings.
type ScreeningSummary struct {
	ID            uuid.UUID           `json:"id"`
	BulkID        *uuid.UUID          `json:"bulk_id,omitempty"`
	ApplicationID string              `json:"application_id"`
	CandidateName string              `json:"candidate_name"`
	JobTitle      string              `json:"job_title"`
	OverallScore  int                 `json:"overall_score"`
	CandidateTier types.CandidateTier `json:"candidate_tier"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ScreeningFilters narrows ListScreenings.
type ScreeningFilters struct {
	JobTitle string
	Tier     types.CandidateTier
	BulkID   *uuid.UUID
	MinScore int
	Limit    int
}

// StoredBulk is a persisted bulk screening with its individual results in
// rank order.
type StoredBulk struct {
	ID                uuid.UUID         `json:"id"`
	JobTitle          string            `json:"job_title"`
	TotalApplications int               `json:"total_applications"`
	ValidApplications int               `json:"valid_applications"`
	AverageScore      float64           `json:"average_score"`
	Stats             types.BulkStats   `json:"stats"`
	CreatedAt         time.Time         `json:"created_at"`
	Screenings        []StoredScreening `json:"screenings"`
}

// Analysis is a persisted analyzer output.
type Analysis struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	InputHash string    `json:"input_hash"`
	Result    []byte    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// JobPosting is a fetched job posting page.
type JobPosting struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Platform    string    `json:"platform"`
	CleanedText string    `json:"cleaned_text"`
	ContentHash string    `json:"content_hash"`
	Rendered    bool      `json:"rendered"`
	FetchedAt   time.Time `json:"fetched_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobPostingInput is the data needed to upsert a job posting.
type JobPostingInput struct {
	URL         string
	Platform    string
	CleanedText string
	Rendered    bool
}
