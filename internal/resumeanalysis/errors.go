package resumeanalysis

import "fmt"

const (
	msgEmptyDocument   = "The document appears to be empty."
	msgAnalysisFailure = "Error analyzing resume"
)

// ValidationError rejects a document that cannot be analyzed at all.
type ValidationError struct {
	Message string
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
