package screening

import (
	"fmt"

	"github.com/searchfind/screening-engine/internal/types"
)

// Rejection messages returned when an application cannot be screened.
const (
	MsgNoJobListing   = "No job listing provided for screening"
	MsgNoApplication  = "No application data provided for screening"
	MsgNoApplications = "No applications provided for screening"
	MsgNoResume       = "No resume provided or could not extract resume text"
	MsgInvalidResume  = "The provided document does not appear to be a valid resume"
	MsgScreeningFault = "Error screening application"
)

// ScreeningError rejects an application or listing before scoring. For
// resume-type rejections it carries the validator's confidence and the type
// it detected instead.
type ScreeningError struct {
	Message      string
	Confidence   float64
	DetectedType types.DocumentType
	Cause        error
}

func (e *ScreeningError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScreeningError) Unwrap() error {
	return e.Cause
}

// AnalysisError is an unexpected failure while scoring, including recovered
// panics.
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
