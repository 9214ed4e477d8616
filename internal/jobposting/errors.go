package jobposting

import (
	"fmt"

	"github.com/searchfind/screening-engine/internal/types"
)

const (
	msgNotJobPosting    = "The document does not contain typical job posting elements."
	msgNoRequirements   = "No requirements text provided"
	msgAnalysisFailure  = "Error analyzing job posting"
	msgOptimizerFailure = "Error optimizing requirements"
)

// ValidationError rejects text that does not read as a job posting.
type ValidationError struct {
	Message      string
	Confidence   float64
	DetectedType types.DocumentType
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AnalysisError is an unexpected failure while analyzing, including
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
