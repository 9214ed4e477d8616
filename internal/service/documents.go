package service

import (
	"context"

	"github.com/searchfind/screening-engine/internal/db"
	"github.com/searchfind/screening-engine/internal/ingestion"
	"github.com/searchfind/screening-engine/internal/types"
)

// ParsedDocument is an uploaded file's text with its classification.
type ParsedDocument struct {
	Text       string                 `json:"text" yaml:"text"`
	Metadata   *ingestion.Metadata    `json:"metadata" yaml:"metadata"`
	Validation types.ValidationResult `json:"validation" yaml:"validation"`
}

type textRequest struct {
	Text string `json:"text"`
}

// ValidateDocument classifies text.
func (s *Service) ValidateDocument(ctx context.Context, text string) (*types.ValidationResult, error) {
	return run(ctx, s, operation[*types.ValidationResult]{
		name:      OpValidateDocument,
		request:   textRequest{Text: text},
		cacheable: true,
		compute: func() (*types.ValidationResult, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			result := s.validator.ValidateDocument(text)
			return &result, nil
		},
		persist: func(r *types.ValidationResult, hash string) error {
			return s.saveAnalysis(ctx, db.KindDocumentValidation, hash, r)
		},
	})
}

// ValidateResume checks text as a resume and reports section quality.
func (s *Service) ValidateResume(ctx context.Context, text string) (*types.ResumeValidation, error) {
	return run(ctx, s, operation[*types.ResumeValidation]{
		name:      OpValidateResume,
		request:   textRequest{Text: text},
		cacheable: true,
		compute: func() (*types.ResumeValidation, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			result := s.validator.ValidateResume(text)
			return &result, nil
		},
		persist: func(r *types.ResumeValidation, hash string) error {
			return s.saveAnalysis(ctx, db.KindResumeValidation, hash, r)
		},
	})
}

// ParseDocument extracts and classifies an uploaded file.
func (s *Service) ParseDocument(ctx context.Context, data []byte, filename string) (*ParsedDocument, error) {
	return run(ctx, s, operation[*ParsedDocument]{
		name: OpParseDocument,
		request: struct {
			Name string `json:"name"`
			Data []byte `json:"data"`
		}{filename, data},
		cacheable: true,
		compute: func() (*ParsedDocument, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			text, err := s.parser.ParseBytes(data, filename)
			if err != nil {
				return nil, err
			}
			meta := ingestion.ExtractMetadata(text)
			meta.Source = filename
			meta.Format = ingestion.FormatOf(filename)
			return &ParsedDocument{
				Text:       text,
				Metadata:   meta,
				Validation: s.validator.ValidateDocument(text),
			}, nil
		},
	})
}
