package matching

import (
	"fmt"

	"github.com/searchfind/screening-engine/internal/types"
)

// Rejection messages returned when a match cannot be computed.
const (
	MsgNoResume        = "No resume provided for matching"
	MsgNoJobListing    = "No job listing provided for matching"
	MsgNoCandidates    = "No candidate profiles provided for matching"
	MsgInvalidResume   = "The provided document does not appear to be a valid resume"
	MsgMatchFault      = "Error matching candidate with job"
	MsgQualifyFault    = "Error checking qualification"
	MsgImprovementFail = "Unable to analyze resume. Please try again or contact support."
)

// MatchError rejects a resume or listing before matching. For resume-type
// rejections it carries the validator's confidence and detected type.
type MatchError struct {
	Message      string
	Confidence   float64
	DetectedType types.DocumentType
}

func (e *MatchError) Error() string {
	return e.Message
}

// AnalysisError is an unexpected failure while matching, including
// recovered panics.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
