// Package types provides type definitions for the structured data passed
// between the screening engine, its analyzers and the service layer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// DocumentType is the closed set of document kinds the engine recognises.
type DocumentType int

const (
	DocumentUnknown DocumentType = iota
	DocumentResume
	DocumentCoverLetter
	DocumentJobDescription
	DocumentOther
)

var documentTypeNames = map[DocumentType]string{
	DocumentUnknown:        "unknown",
	DocumentResume:         "resume",
	DocumentCoverLetter:    "cover_letter",
	DocumentJobDescription: "job_description",
	DocumentOther:          "other",
}

// ScoredDocumentTypes is the argmax order used by the content validator.
// Ties resolve to the earlier entry.
var ScoredDocumentTypes = []DocumentType{
	DocumentResume,
	DocumentCoverLetter,
	DocumentJobDescription,
	DocumentOther,
}

func (d DocumentType) String() string {
	if name, ok := documentTypeNames[d]; ok {
		return name
	}
	return "unknown"
}

// Label returns a human-readable name, e.g. "cover letter".
func (d DocumentType) Label() string {
	return strings.ReplaceAll(d.String(), "_", " ")
}

// Valid reports whether d is one of the declared document types.
func (d DocumentType) Valid() bool {
	_, ok := documentTypeNames[d]
	return ok
}

// ParseDocumentType parses the wire name of a document type.
func ParseDocumentType(s string) (DocumentType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range documentTypeNames {
		if name == s {
			return d, nil
		}
	}
	return DocumentUnknown, fmt.Errorf("unknown document type %q", s)
}

// MarshalText implements encoding.TextMarshaler so DocumentType works as a
// JSON value and as a map key.
func (d DocumentType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DocumentType) UnmarshalText(b []byte) error {
	parsed, err := ParseDocumentType(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML renders the wire name.
func (d DocumentType) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// ValidationResult is the content validator's verdict on a document.
type ValidationResult struct {
	IsValid      bool                     `json:"is_valid"`
	DocumentType DocumentType             `json:"document_type"`
	Confidence   float64                  `json:"confidence"`
	Error        string                   `json:"error,omitempty"`
	WordCount    int                      `json:"word_count"`
	TypeScores   map[DocumentType]float64 `json:"type_scores"`
}

// ExperienceEntry is one position extracted from a resume.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Years       string `json:"years"`
	Description string `json:"description"`
}

// EducationEntry is one degree extracted from a resume.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// ContactInfo holds the contact details found in a resume.
type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// HasAny reports whether any contact detail was found.
func (c ContactInfo) HasAny() bool {
	return c.Email != "" || c.Phone != ""
}

// Entities are the loosely-typed entity sets found anywhere in a document.
type Entities struct {
	Skills    []string `json:"skills"`
	JobTitles []string `json:"job_titles"`
	Companies []string `json:"companies"`
	Education []string `json:"education"`
}

// ProcessedDocument is the structured extraction of a single document.
type ProcessedDocument struct {
	DocumentType  DocumentType      `json:"document_type"`
	CleanText     string            `json:"-"`
	WordCount     int               `json:"word_count"`
	SentenceCount int               `json:"sentence_count"`
	Tokens        []string          `json:"-"`
	Sections      map[string]string `json:"sections"`
	Entities      Entities          `json:"entities"`

	ExtractedSkills     []string          `json:"extracted_skills"`
	ExtractedExperience []ExperienceEntry `json:"extracted_experience"`
	ExtractedEducation  []EducationEntry  `json:"extracted_education"`
	ExtractedContact    ContactInfo       `json:"extracted_contact"`
	ExtractedSummary    string            `json:"extracted_summary,omitempty"`

	// Cover letter extraction.
	CompanyReferences []string `json:"company_references,omitempty"`
	SkillsMentioned   []string `json:"skills_mentioned,omitempty"`
	Achievements      []string `json:"achievements,omitempty"`
}

// ResumeSectionCheck grades one essential resume section.
type ResumeSectionCheck struct {
	Present bool    `json:"present"`
	Score   float64 `json:"score"`
	Rating  string  `json:"rating"`
}

// ResumeValidation is the section-quality report for a resume.
type ResumeValidation struct {
	IsValidResume   bool                          `json:"is_valid_resume"`
	Error           string                        `json:"error,omitempty"`
	DocumentType    DocumentType                  `json:"document_type"`
	Confidence      float64                       `json:"confidence"`
	Sections        map[string]ResumeSectionCheck `json:"sections,omitempty"`
	OverallScore    int                           `json:"overall_score"`
	Rating          string                        `json:"rating,omitempty"`
	MissingSections []string                      `json:"missing_sections,omitempty"`
	Recommendations []string                      `json:"recommendations,omitempty"`
	Completeness    int                           `json:"completeness"`
}
