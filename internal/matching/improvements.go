package matching

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/searchfind/screening-engine/internal/resumeanalysis"
	"github.com/searchfind/screening-engine/internal/screening"
	"github.com/searchfind/screening-engine/internal/types"
)

// Suggestion categories, most urgent first.
const (
	CategoryCritical    = "critical"
	CategoryImportant   = "important"
	CategoryRecommended = "recommended"
	CategoryFormatting  = "formatting"
	CategoryLongTerm    = "long_term"
)

// Suggestion priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// MsgNoResumeForPlan rejects an improvement request without a resume.
const MsgNoResumeForPlan = "No resume provided for analysis"

const (
	// Sub-scores used when the job says nothing about an area.
	unstatedSkillScore      = 70
	unstatedExperienceScore = 65
	unstatedEducationScore  = 75

	planSkillWeight      = 0.5
	planExperienceWeight = 0.3
	planEducationWeight  = 0.2

	highMatchPercentage = 85
	defaultLevelYears   = 3
	maxMissingKeywords  = 10
	maxQuotedKeywords   = 5
	maxFocusSkills      = 5
	minRequirementLen   = 6
	minKeywordLen       = 3
)

// levelYears maps an experience level to the years it implies.
var levelYears = map[string]int{
	"entry":     0,
	"junior":    1,
	"mid":       3,
	"senior":    5,
	"lead":      7,
	"manager":   5,
	"director":  10,
	"executive": 15,
}

var (
	requirementSplit = regexp.MustCompile(`[\n•]+`)
	quantified       = regexp.MustCompile(`(?i)\d+%|increased|decreased|improved|reduced|saved|generated|\$\d+|\d+ hours`)
	bulletLine       = regexp.MustCompile(`(?m)^\s*[-•*·]\s+`)
	hasLetter        = regexp.MustCompile(`[a-z]`)
)

// ImprovementRequest describes the resume and the job it should be
// tailored to. Requirements and Skills are read from the description's
// requirements section when left empty.
type ImprovementRequest struct {
	ResumeText      string   `json:"resume_text" yaml:"resume_text"`
	JobTitle        string   `json:"job_title" yaml:"job_title"`
	JobDescription  string   `json:"job_description,omitempty" yaml:"job_description,omitempty"`
	Requirements    []string `json:"job_requirements,omitempty" yaml:"job_requirements,omitempty"`
	Skills          []string `json:"job_skills,omitempty" yaml:"job_skills,omitempty"`
	ExperienceLevel string   `json:"job_experience_level,omitempty" yaml:"job_experience_level,omitempty"`
	Location        string   `json:"job_location,omitempty" yaml:"job_location,omitempty"`
}

// Suggestion is one prioritized improvement.
type Suggestion struct {
	Text     string `json:"text" yaml:"text"`
	Priority string `json:"priority" yaml:"priority"`
	Category string `json:"category" yaml:"category"`
}

// SuggestionGroups holds suggestions by category.
type SuggestionGroups struct {
	Critical    []Suggestion `json:"critical" yaml:"critical"`
	Important   []Suggestion `json:"important" yaml:"important"`
	Recommended []Suggestion `json:"recommended" yaml:"recommended"`
	Formatting  []Suggestion `json:"formatting" yaml:"formatting"`
	LongTerm    []Suggestion `json:"long_term" yaml:"long_term"`
}

func newSuggestionGroups() SuggestionGroups {
	return SuggestionGroups{
		Critical:    []Suggestion{},
		Important:   []Suggestion{},
		Recommended: []Suggestion{},
		Formatting:  []Suggestion{},
		LongTerm:    []Suggestion{},
	}
}

func (g *SuggestionGroups) add(category, text string) {
	s := Suggestion{Text: text, Priority: priorityFor(category), Category: category}
	switch category {
	case CategoryCritical:
		g.Critical = append(g.Critical, s)
	case CategoryImportant:
		g.Important = append(g.Important, s)
	case CategoryRecommended:
		g.Recommended = append(g.Recommended, s)
	case CategoryFormatting:
		g.Formatting = append(g.Formatting, s)
	default:
		g.LongTerm = append(g.LongTerm, s)
	}
}

func priorityFor(category string) string {
	switch category {
	case CategoryCritical, CategoryImportant:
		return PriorityHigh
	case CategoryFormatting, CategoryLongTerm:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// ResumeOutline sketches a resume focused on one job.
type ResumeOutline struct {
	Summary               string   `json:"summary" yaml:"summary"`
	SkillsToEmphasize     []string `json:"skills_to_emphasize" yaml:"skills_to_emphasize"`
	ExperienceFocus       string   `json:"experience_focus" yaml:"experience_focus"`
	EducationPresentation string   `json:"education_presentation" yaml:"education_presentation"`
	AdditionalSections    []string `json:"additional_sections" yaml:"additional_sections"`
}

// ImprovementPlan is the gap analysis between a resume and one job.
type ImprovementPlan struct {
	MatchPercentage int                      `json:"match_percentage" yaml:"match_percentage"`
	SkillMatch      int                      `json:"skill_match" yaml:"skill_match"`
	ExperienceMatch int                      `json:"experience_match" yaml:"experience_match"`
	EducationMatch  int                      `json:"education_match" yaml:"education_match"`
	MissingSkills   []string                 `json:"missing_skills" yaml:"missing_skills"`
	PartialSkills   []string                 `json:"partial_skills" yaml:"partial_skills"`
	MissingKeywords []string                 `json:"missing_keywords" yaml:"missing_keywords"`
	Suggestions     SuggestionGroups         `json:"improvement_suggestions" yaml:"improvement_suggestions"`
	FocusedResume   *ResumeOutline           `json:"focused_resume,omitempty" yaml:"focused_resume,omitempty"`
	ResumeAnalysis  *resumeanalysis.Analysis `json:"original_resume_analysis" yaml:"original_resume_analysis"`
}

// planGaps are the sub-scores and gaps a plan is built from.
type planGaps struct {
	skill           int
	experience      int
	education       int
	overall         int
	missingSkills   []string
	partialSkills   []string
	missingKeywords []string
}

// ImprovementPlan analyzes req.ResumeText and lists prioritized changes that
// would tailor it to the job. A missing resume is rejected with *MatchError;
// unexpected failures, including panics, come back as *AnalysisError.
func (m *Matcher) ImprovementPlan(ctx context.Context, req ImprovementRequest) (plan *ImprovementPlan, err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("improvement plan panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			plan, err = nil, &AnalysisError{Message: MsgImprovementFail, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, &MatchError{Message: MsgNoResumeForPlan}
	}
	m.logger.Info("building improvement plan", map[string]interface{}{"job_title": req.JobTitle})

	analysis, err := m.resumes.Analyze(ctx, req.ResumeText)
	if err != nil {
		var vErr *resumeanalysis.ValidationError
		if errors.As(err, &vErr) {
			return nil, &MatchError{Message: vErr.Message}
		}
		return nil, err
	}

	requirements, skills := req.Requirements, req.Skills
	if req.JobDescription != "" {
		section := m.processor.IdentifySections(req.JobDescription, types.DocumentJobDescription)["requirements"]
		if len(requirements) == 0 && section != "" {
			requirements = requirementLines(section)
		}
		if len(skills) == 0 && section != "" {
			skills = m.processor.ExtractSkills(section)
		}
	}

	gaps := m.gaps(analysis, req, requirements, skills)
	result := &ImprovementPlan{
		MatchPercentage: gaps.overall,
		SkillMatch:      gaps.skill,
		ExperienceMatch: gaps.experience,
		EducationMatch:  gaps.education,
		MissingSkills:   gaps.missingSkills,
		PartialSkills:   gaps.partialSkills,
		MissingKeywords: gaps.missingKeywords,
		ResumeAnalysis:  analysis,
	}

	if gaps.overall >= highMatchPercentage {
		result.Suggestions = highMatchSuggestions()
		return result, nil
	}

	result.Suggestions = suggest(gaps, analysis, req.ResumeText, req.JobTitle)
	result.FocusedResume = &ResumeOutline{
		Summary:               "A tailored professional summary highlighting your most relevant qualifications",
		SkillsToEmphasize:     head(gaps.missingSkills, maxFocusSkills),
		ExperienceFocus:       "Focus on responsibilities and achievements most relevant to this position",
		EducationPresentation: "Format education section to meet job requirements",
		AdditionalSections:    []string{"Certifications", "Projects", "Professional Development"},
	}
	return result, nil
}

func (m *Matcher) gaps(analysis *resumeanalysis.Analysis, req ImprovementRequest, requirements, skills []string) planGaps {
	have := make(map[string]bool)
	var haveList []string
	for _, s := range append(append([]string{}, analysis.ParsedSkills.Technical...), analysis.ParsedSkills.Soft...) {
		key := strings.ToLower(s)
		if !have[key] {
			have[key] = true
			haveList = append(haveList, key)
		}
	}

	g := planGaps{
		skill:           unstatedSkillScore,
		experience:      unstatedExperienceScore,
		education:       unstatedEducationScore,
		missingSkills:   []string{},
		partialSkills:   []string{},
		missingKeywords: m.missingKeywords(req.JobDescription, req.ResumeText),
	}

	if len(skills) > 0 {
		seen := make(map[string]bool)
		matched, total := 0, 0
		for _, s := range skills {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			total++
			if have[key] {
				matched++
				continue
			}
			g.missingSkills = append(g.missingSkills, s)
			for _, h := range haveList {
				if strings.Contains(h, key) || strings.Contains(key, h) {
					g.partialSkills = append(g.partialSkills, s)
					break
				}
			}
		}
		g.skill = 100
		if total > 0 {
			g.skill = matched * 100 / total
		}
	}

	if req.ExperienceLevel != "" {
		required, ok := levelYears[strings.ToLower(req.ExperienceLevel)]
		if !ok {
			required = defaultLevelYears
		}
		g.experience = ratioScore(analysis.Detailed.Experience.Timeline.TotalYears, required)
	}

	if len(requirements) > 0 {
		_, required := screening.ClassifyDegree(strings.Join(requirements, " "))
		held := 0
		for _, e := range analysis.ParsedEducation {
			_, level := screening.ClassifyDegree(e.Degree)
			held = max(held, level)
		}
		g.education = ratioScore(held, required)
	}

	g.overall = int(float64(g.skill)*planSkillWeight + float64(g.experience)*planExperienceWeight + float64(g.education)*planEducationWeight)
	return g
}

// ratioScore is 100 when have meets need, otherwise the truncated share.
func ratioScore(have, need int) int {
	if need <= 0 || have >= need {
		return 100
	}
	return max(0, have*100/need)
}

// requirementLines splits a requirements section into its bullet lines.
func requirementLines(section string) []string {
	var out []string
	for _, line := range requirementSplit.Split(section, -1) {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*·"))
		if len(line) >= minRequirementLen {
			out = append(out, line)
		}
	}
	return out
}

// significantTerms returns the lowercased non-stopword words of text that
// are long enough to be keywords.
func (m *Matcher) significantTerms(text string) []string {
	var out []string
	for _, tok := range m.processor.Tokenize(text) {
		if len(tok) >= minKeywordLen && hasLetter.MatchString(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// missingKeywords returns the most frequent description terms the resume
// never uses, ties in order of first appearance.
func (m *Matcher) missingKeywords(description, resume string) []string {
	if description == "" {
		return []string{}
	}
	inResume := make(map[string]bool)
	for _, t := range m.significantTerms(resume) {
		inResume[t] = true
	}

	counts := make(map[string]int)
	var order []string
	for _, t := range m.significantTerms(description) {
		if inResume[t] {
			continue
		}
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > maxMissingKeywords {
		order = order[:maxMissingKeywords]
	}
	if order == nil {
		order = []string{}
	}
	return order
}

func highMatchSuggestions() SuggestionGroups {
	g := newSuggestionGroups()
	g.add(CategoryRecommended, "Your resume is already well-matched to this job! Consider customizing your cover letter to highlight your most relevant experiences.")
	g.add(CategoryRecommended, "Prepare for interviews by researching the company and preparing stories that demonstrate your skills.")
	g.add(CategoryFormatting, "Consider small tweaks to emphasize your strongest qualifications for this specific role.")
	return g
}

func suggest(gaps planGaps, analysis *resumeanalysis.Analysis, resumeText, jobTitle string) SuggestionGroups {
	g := newSuggestionGroups()

	if missing := gaps.missingSkills; len(missing) > 0 {
		g.add(CategoryCritical, "Add these key required skills to your resume: "+strings.Join(head(missing, maxSuggestedSkills), ", "))
		g.add(CategoryImportant, "Include these skills in your summary section and demonstrate them in your work experience bullet points")
		if len(missing) > maxSuggestedSkills {
			more := missing[maxSuggestedSkills:min(len(missing), 2*maxSuggestedSkills)]
			g.add(CategoryImportant, "Consider highlighting these additional relevant skills: "+strings.Join(more, ", "))
		}
	}
	if len(gaps.partialSkills) > 0 {
		g.add(CategoryImportant, "Use exact skill terms from the job description. Replace or expand these skills: "+
			strings.Join(head(gaps.partialSkills, maxSuggestedSkills), ", "))
	}

	switch {
	case gaps.experience < 70:
		g.add(CategoryImportant, "Highlight transferable skills and related projects to compensate for limited direct experience")
		g.add(CategoryRecommended, "Quantify achievements in your experience section to demonstrate impact relevant to "+jobTitle)
		g.add(CategoryLongTerm, "Consider gaining additional experience through certifications, volunteering, or side projects related to "+jobTitle)
	case gaps.experience < 90:
		g.add(CategoryRecommended, "Align your work experiences more closely with job requirements by highlighting relevant responsibilities")
		g.add(CategoryRecommended, "Use industry-specific terminology from the job description in your work experience bullet points")
	}

	switch {
	case gaps.education < 70:
		g.add(CategoryImportant, "Highlight relevant coursework, training or certifications to compensate for education requirements")
		g.add(CategoryLongTerm, "Consider pursuing further education or certifications to meet job requirements")
	case gaps.education < 90:
		g.add(CategoryRecommended, "Emphasize your educational achievements and relevant coursework in your education section")
	}

	if len(gaps.missingKeywords) > 0 {
		g.add(CategoryImportant, "Include these keywords from the job description: "+strings.Join(head(gaps.missingKeywords, maxQuotedKeywords), ", "))
		g.add(CategoryRecommended, "Many employers use Applicant Tracking Systems (ATS) - incorporate these keywords naturally throughout your resume")
	}

	if len(analysis.ParsedExperience) > 0 && !bulletLine.MatchString(resumeText) {
		g.add(CategoryFormatting, "Use bullet points to highlight achievements and responsibilities in your work experience section")
	}

	if hasSection(analysis.Sections, "summary") {
		g.add(CategoryRecommended, fmt.Sprintf("Customize your summary section to target the %s position specifically", jobTitle))
	} else {
		g.add(CategoryRecommended, fmt.Sprintf("Add a concise professional summary tailored to the %s position", jobTitle))
	}

	quantifiedFound := false
	for _, e := range analysis.ParsedExperience {
		if quantified.MatchString(e.Description) {
			quantifiedFound = true
			break
		}
	}
	if !quantifiedFound {
		g.add(CategoryImportant, "Add metrics and quantifiable achievements to your experience section (e.g., 'Increased sales by 20%')")
	}
	return g
}

func hasSection(sections []string, name string) bool {
	for _, s := range sections {
		if s == name {
			return true
		}
	}
	return false
}
