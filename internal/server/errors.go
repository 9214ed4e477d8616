package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/searchfind/screening-engine/internal/coverletter"
	"github.com/searchfind/screening-engine/internal/db"
	"github.com/searchfind/screening-engine/internal/fetch"
	"github.com/searchfind/screening-engine/internal/ingestion"
	"github.com/searchfind/screening-engine/internal/jobposting"
	"github.com/searchfind/screening-engine/internal/matching"
	"github.com/searchfind/screening-engine/internal/resumeanalysis"
	"github.com/searchfind/screening-engine/internal/schemas"
	"github.com/searchfind/screening-engine/internal/screening"
	"github.com/searchfind/screening-engine/internal/service"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the HTTP status code for an error returned by a handler
// or the service.
func HTTPStatus(err error) int {
	var (
		validationErr   *ErrValidation
		schemaErr       *schemas.ValidationError
		idErr           *service.InvalidIDError
		screeningErr    *screening.ScreeningError
		letterErr       *coverletter.ValidationError
		postingErr      *jobposting.ValidationError
		matchErr        *matching.MatchError
		resumeErr       *resumeanalysis.ValidationError
		fetchErr        *fetch.Error
		maxBytesErr     *http.MaxBytesError
		fieldValidation validator.ValidationErrors
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &idErr),
		errors.As(err, &fieldValidation),
		errors.Is(err, ingestion.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr), errors.Is(err, ingestion.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &screeningErr), errors.As(err, &letterErr), errors.As(err, &postingErr),
		errors.As(err, &matchErr), errors.As(err, &resumeErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNoStore), errors.Is(err, ingestion.ErrNoURLSupport):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// validationMessage turns validator and schema errors into a single line.
func validationMessage(err error) string {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return "invalid request: " + strings.Join(schemaErr.Messages(), "; ")
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), msg))
	}
	return "validation error: " + strings.Join(parts, "; ")
}
