package types

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SkillList accepts either a comma-separated string or a JSON list of
// strings. Entries are trimmed and lowercased; empty entries are dropped.
type SkillList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = ParseSkillList(str)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("skills must be a string or a list of strings: %w", err)
	}
	*s = normalizeSkills(list)
	return nil
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON.
func (s *SkillList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err == nil {
		*s = ParseSkillList(str)
		return nil
	}
	var list []string
	if err := unmarshal(&list); err != nil {
		return err
	}
	*s = normalizeSkills(list)
	return nil
}

// ParseSkillList splits a comma-separated skill string.
func ParseSkillList(s string) SkillList {
	return normalizeSkills(strings.Split(s, ","))
}

func normalizeSkills(in []string) SkillList {
	out := make(SkillList, 0, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

var firstNumber = regexp.MustCompile(`\d+`)

// FlexInt accepts a JSON number or a string containing a number ("3+ years").
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("expected a number or a string: %w", err)
	}
	*f = FlexInt(ParseLeadingInt(str))
	return nil
}

// ParseLeadingInt returns the first integer in s, or 0.
func ParseLeadingInt(s string) int {
	m := firstNumber.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// JobListing is the job record screened against.
type JobListing struct {
	ID                string    `json:"id,omitempty" yaml:"id,omitempty"`
	Title             string    `json:"title" yaml:"title" validate:"max=300"`
	Company           string    `json:"company,omitempty" yaml:"company,omitempty"`
	Description       string    `json:"description" yaml:"description"`
	Requirements      string    `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	SkillsRequired    SkillList `json:"skills_required,omitempty" yaml:"skills_required,omitempty"`
	PreferredSkills   SkillList `json:"preferred_skills,omitempty" yaml:"preferred_skills,omitempty"`
	EducationRequired string    `json:"education_required,omitempty" yaml:"education_required,omitempty"`
	MinExperience     FlexInt   `json:"min_experience,omitempty" yaml:"min_experience,omitempty"`
	Location          string    `json:"location,omitempty" yaml:"location,omitempty"`
	Category          string    `json:"category,omitempty" yaml:"category,omitempty"`
	Industry          string    `json:"industry,omitempty" yaml:"industry,omitempty"`
}

// IsEmpty reports whether the listing carries no usable content.
func (j *JobListing) IsEmpty() bool {
	if j == nil {
		return true
	}
	return strings.TrimSpace(j.Title) == "" &&
		strings.TrimSpace(j.Description) == "" &&
		strings.TrimSpace(j.Requirements) == "" &&
		len(j.SkillsRequired) == 0 &&
		len(j.PreferredSkills) == 0
}

// Application is one candidate's submission. Each document may arrive as
// inline text, as file bytes plus a file name, or as a path on disk.
type Application struct {
	ID                  string `json:"id,omitempty" yaml:"id,omitempty"`
	CandidateName       string `json:"candidate_name,omitempty" yaml:"candidate_name,omitempty"`
	ResumeText          string `json:"resume_text,omitempty" yaml:"resume_text,omitempty"`
	ResumeFile          []byte `json:"resume_file,omitempty" yaml:"resume_file,omitempty"`
	ResumeFileName      string `json:"resume_file_name,omitempty" yaml:"resume_file_name,omitempty"`
	ResumeFilePath      string `json:"resume_file_path,omitempty" yaml:"resume_file_path,omitempty"`
	CoverLetterText     string `json:"cover_letter_text,omitempty" yaml:"cover_letter_text,omitempty"`
	CoverLetterFile     []byte `json:"cover_letter_file,omitempty" yaml:"cover_letter_file,omitempty"`
	CoverLetterFileName string `json:"cover_letter_file_name,omitempty" yaml:"cover_letter_file_name,omitempty"`
	CoverLetterFilePath string `json:"cover_letter_file_path,omitempty" yaml:"cover_letter_file_path,omitempty"`
}

// IsEmpty reports whether the application carries nothing at all.
func (a *Application) IsEmpty() bool {
	if a == nil {
		return true
	}
	return a.CandidateName == "" && a.ResumeText == "" && len(a.ResumeFile) == 0 &&
		a.ResumeFilePath == "" && a.CoverLetterText == "" && len(a.CoverLetterFile) == 0 &&
		a.CoverLetterFilePath == ""
}

// EducationRequirements is the education a job asks for.
type EducationRequirements struct {
	MinDegreeLevel  string   `json:"min_degree_level,omitempty"`
	PreferredFields []string `json:"preferred_fields"`
	Required        bool     `json:"required"`
}

// ExperienceRequirements is the experience a job asks for.
type ExperienceRequirements struct {
	MinYears       int      `json:"min_years"`
	PreferredYears int      `json:"preferred_years"`
	Areas          []string `json:"areas"`
}

// JobRequirements is the structured view of a listing used for scoring.
type JobRequirements struct {
	JobTitle               string                 `json:"job_title"`
	JobLocation            string                 `json:"job_location"`
	RequiredSkills         []string               `json:"required_skills"`
	PreferredSkills        []string               `json:"preferred_skills"`
	EducationRequirements  EducationRequirements  `json:"education_requirements"`
	ExperienceRequirements ExperienceRequirements `json:"experience_requirements"`
	JobCategory            string                 `json:"job_category"`
	JobIndustry            string                 `json:"job_industry"`
}
