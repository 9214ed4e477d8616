package coverletter

import (
	"fmt"

	"github.com/searchfind/screening-engine/internal/types"
)

const (
	msgNotCoverLetter  = "The document does not contain typical cover letter elements."
	msgAnalysisFailure = "Error analyzing cover letter"
)

// ValidationError rejects text that does not read as a cover letter.
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
