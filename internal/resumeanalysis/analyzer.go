// Package resumeanalysis grades a resume on its own, without a job to
// compare against. It scores skills, experience and education, checks
// applicant-tracking-system friendliness and suggests improvements.
package resumeanalysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/resources"
	"github.com/searchfind/screening-engine/internal/screening"
	"github.com/searchfind/screening-engine/internal/textproc"
	"github.com/searchfind/screening-engine/internal/types"
	"github.com/searchfind/screening-engine/internal/validation"
)

// Weights of the overall score.
const (
	SkillWeight      = 0.4
	ExperienceWeight = 0.4
	EducationWeight  = 0.2
)

// Placeholders for fields the extractor could not find.
const (
	UnknownPosition         = "Unknown Position"
	UnknownCompany          = "Unknown Company"
	UnknownDateRange        = "Unknown Date Range"
	DegreeNotSpecified      = "Degree not specified"
	InstitutionNotSpecified = "Institution not specified"
)

// ParsedSkills splits the skills found in a resume.
type ParsedSkills struct {
	Technical []string `json:"technical" yaml:"technical"`
	Soft      []string `json:"soft" yaml:"soft"`
}

// Analysis is the full report on one resume.
type Analysis struct {
	IsValid          bool                                `json:"is_valid" yaml:"is_valid"`
	ParsedSkills     ParsedSkills                        `json:"parsed_skills" yaml:"parsed_skills"`
	ParsedExperience []types.ExperienceEntry             `json:"parsed_experience" yaml:"parsed_experience"`
	ParsedEducation  []types.EducationEntry              `json:"parsed_education" yaml:"parsed_education"`
	SkillScore       int                                 `json:"skill_score" yaml:"skill_score"`
	ExperienceScore  int                                 `json:"experience_score" yaml:"experience_score"`
	EducationScore   int                                 `json:"education_score" yaml:"education_score"`
	OverallScore     int                                 `json:"overall_score" yaml:"overall_score"`
	Suggestions      []string                            `json:"suggestions" yaml:"suggestions"`
	SectionScores    map[string]types.ResumeSectionCheck `json:"section_scores" yaml:"section_scores"`
	MissingSections  []string                            `json:"missing_sections" yaml:"missing_sections"`
	Completeness     int                                 `json:"completeness" yaml:"completeness"`
	Detailed         DetailedAnalysis                    `json:"detailed_analysis" yaml:"detailed_analysis"`
	Sections         []string                            `json:"sections" yaml:"sections"`
	WordCount        int                                 `json:"word_count" yaml:"word_count"`
}

// Options configures an Analyzer. Zero values get defaults.
type Options struct {
	Validator *validation.ContentValidator
	Processor *textproc.Processor
	Clock     screening.Clock
	Logger    logging.Logger
}

// Analyzer grades resumes. It is safe for concurrent use.
type Analyzer struct {
	validator *validation.ContentValidator
	processor *textproc.Processor
	clock     screening.Clock
	logger    logging.Logger
}

// New returns an Analyzer built from opts.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		validator: opts.Validator,
		processor: opts.Processor,
		clock:     opts.Clock,
		logger:    opts.Logger,
	}
	if a.processor == nil {
		a.processor = textproc.New()
	}
	if a.validator == nil {
		a.validator = validation.NewContentValidator(a.processor)
	}
	if a.clock == nil {
		a.clock = screening.SystemClock
	}
	if a.logger == nil {
		a.logger = logging.NewNoOpLogger()
	}
	return a
}

// Analyze grades text as a resume. Documents the validator does not accept
// as a resume are still analyzed; only blank text is rejected, with a
// *ValidationError.
func (a *Analyzer) Analyze(ctx context.Context, text string) (analysis *Analysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("resume analysis panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			analysis, err = nil, &AnalysisError{Message: msgAnalysisFailure, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Message: msgEmptyDocument}
	}

	check := a.validator.ValidateResume(text)
	if !check.IsValidResume {
		a.logger.Warn("document did not validate as a resume; analyzing anyway", map[string]interface{}{
			"detected_type": check.DocumentType.String(),
			"confidence":    check.Confidence,
		})
	}

	doc := a.processor.Process(text, types.DocumentResume)
	skills := extractSkills(text, doc)
	experience := withExperienceDefaults(doc.ExtractedExperience)
	education := withEducationDefaults(doc.ExtractedEducation)

	skillScore := scoreSkills(skills)
	experienceScore := scoreExperience(experience)
	educationScore := scoreEducation(education)
	overall := int(float64(skillScore)*SkillWeight + float64(experienceScore)*ExperienceWeight + float64(educationScore)*EducationWeight)

	analysis = &Analysis{
		IsValid:          true,
		ParsedSkills:     skills,
		ParsedExperience: experience,
		ParsedEducation:  education,
		SkillScore:       skillScore,
		ExperienceScore:  experienceScore,
		EducationScore:   educationScore,
		OverallScore:     overall,
		Suggestions:      recommend(check, skillScore, experienceScore, educationScore, skills, experience, education),
		SectionScores:    check.Sections,
		MissingSections:  check.MissingSections,
		Completeness:     check.Completeness,
		Detailed:         a.detail(skills, experience, education),
		Sections:         sectionNames(doc.Sections),
		WordCount:        doc.WordCount,
	}
	if analysis.SectionScores == nil {
		analysis.SectionScores = map[string]types.ResumeSectionCheck{}
	}
	if analysis.MissingSections == nil {
		analysis.MissingSections = []string{}
	}
	a.logger.Debug("resume analyzed", map[string]interface{}{
		"overall_score": overall,
		"word_count":    doc.WordCount,
	})
	return analysis, nil
}

var (
	technicalCategory = categoryIndex(resources.TechnicalSkills)
	softCategory      = categoryIndex(resources.SoftSkills)

	// technicalTerms classify skills missing from both gazetteers.
	technicalTerms = []string{
		"program", "develop", "code", "script", "framework", "database", "system",
		"network", "software", "hardware", "cyber", "cloud", "web", "app",
	}
)

// categoryIndex maps each lowercased skill to its category. A skill listed
// under several categories takes the first in name order.
func categoryIndex(groups map[string][]string) map[string]string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	index := make(map[string]string)
	for _, name := range names {
		for _, skill := range groups[name] {
			key := strings.ToLower(skill)
			if _, ok := index[key]; !ok {
				index[key] = name
			}
		}
	}
	return index
}

// extractSkills collects gazetteer skills named anywhere in text and the
// skills the processor listed, then splits them into technical and soft.
func extractSkills(text string, doc *types.ProcessedDocument) ParsedSkills {
	found := resources.MentionedSkills(text)
	found = append(found, doc.Entities.Skills...)

	skills := ParsedSkills{Technical: []string{}, Soft: []string{}}
	seen := make(map[string]bool, len(found))
	for _, skill := range found {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		switch {
		case technicalCategory[key] != "":
			skills.Technical = append(skills.Technical, skill)
		case softCategory[key] != "":
			skills.Soft = append(skills.Soft, skill)
		case containsAny(key, technicalTerms):
			skills.Technical = append(skills.Technical, skill)
		default:
			skills.Soft = append(skills.Soft, skill)
		}
	}
	sort.Strings(skills.Technical)
	sort.Strings(skills.Soft)
	return skills
}

func withExperienceDefaults(entries []types.ExperienceEntry) []types.ExperienceEntry {
	out := make([]types.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			e.Title = UnknownPosition
		}
		if strings.TrimSpace(e.Company) == "" {
			e.Company = UnknownCompany
		}
		if strings.TrimSpace(e.Years) == "" {
			e.Years = UnknownDateRange
		}
		out = append(out, e)
	}
	return out
}

func withEducationDefaults(entries []types.EducationEntry) []types.EducationEntry {
	out := make([]types.EducationEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Degree) == "" {
			e.Degree = DegreeNotSpecified
		}
		if strings.TrimSpace(e.Institution) == "" {
			e.Institution = InstitutionNotSpecified
		}
		out = append(out, e)
	}
	return out
}

func sectionNames(sections map[string]string) []string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
