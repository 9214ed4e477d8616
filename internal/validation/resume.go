package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/types"
)

// EssentialSections are the sections every resume is checked for, in
// report order.
var EssentialSections = []string{"contact_info", "summary", "experience", "education", "skills"}

var (
	summaryMentions   = compileAll(`(?i)\bprofessional summary\b`, `(?i)\bprofile\b`, `(?i)\bcareer objective\b`, `(?i)\bsummary\b`, `(?i)\babout me\b`, `(?i)\bcareer summary\b`)
	experienceMention = compileAll(`(?i)\bexperience\b`, `(?i)\bemployment\b`, `(?i)\bwork history\b`, `(?i)\bprofessional experience\b`, `(?i)\bcareer history\b`)
	educationMentions = compileAll(`(?i)\beducation\b`, `(?i)\bacademic background\b`, `(?i)\bdegrees?\b`, `(?i)\bqualifications\b`)
	skillsMentions    = compileAll(`(?i)\bskills\b`, `(?i)\btechnical skills\b`, `(?i)\bcompetencies\b`, `(?i)\bcapabilities\b`)

	experienceDates  = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*-\s*(?:(?:19|20)\d{2}|present|current)\b`)
	experienceVerbs  = compileAll(`(?i)\bmanaged\b`, `(?i)\bimproved\b`, `(?i)\bdeveloped\b`, `(?i)\bincreased\b`, `(?i)\breduced\b`, `(?i)\bcreated\b`, `(?i)\bimplemented\b`, `(?i)\bachieved\b`, `(?i)\bdelivered\b`, `(?i)\bout?performed\b`)
	degreeMentions   = compileAll(`(?i)\b(?:bachelor|master|doctorate|phd|bs|ba|ms|ma|mba)\b|\b(?:b\.s|b\.a|m\.s|m\.a|ph\.d)\.`, `(?i)\bdegree\b`)
	educationYears   = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	skillListBullets = []string{"•", "·", "-", "*"}
)

// ValidateResume checks that text is a resume and grades its essential
// sections.
func (v *ContentValidator) ValidateResume(text string) types.ResumeValidation {
	validation := v.ValidateDocument(text)
	if !validation.IsValid || validation.DocumentType != types.DocumentResume {
		msg := validation.Error
		if msg == "" {
			msg = "Document is not a valid resume"
		}
		return types.ResumeValidation{
			IsValidResume: false,
			Error:         msg,
			DocumentType:  validation.DocumentType,
			Confidence:    validation.Confidence,
		}
	}

	sections := v.processor.Process(text, types.DocumentResume).Sections
	checks := map[string]*types.ResumeSectionCheck{}
	for _, name := range EssentialSections {
		checks[name] = &types.ResumeSectionCheck{}
	}

	hasEmail, hasPhone := emailPattern.MatchString(text), phonePattern.MatchString(text)
	switch {
	case hasEmail && hasPhone:
		checks["contact_info"].Present, checks["contact_info"].Score = true, 1.0
	case hasEmail || hasPhone:
		checks["contact_info"].Present, checks["contact_info"].Score = true, 0.5
	}

	gradeSummary(checks["summary"], text, sections)
	gradeExperience(checks["experience"], text, sections)
	gradeEducation(checks["education"], text, sections)
	gradeSkills(checks["skills"], text, sections)

	result := types.ResumeValidation{
		IsValidResume: true,
		DocumentType:  validation.DocumentType,
		Confidence:    validation.Confidence,
		Sections:      make(map[string]types.ResumeSectionCheck, len(checks)),
	}

	present, total := 0, 0.0
	for _, name := range EssentialSections {
		c := checks[name]
		c.Rating = Rating(c.Score)
		result.Sections[name] = *c
		total += c.Score

		label := strings.ReplaceAll(name, "_", " ")
		switch {
		case !c.Present:
			result.MissingSections = append(result.MissingSections, label)
			result.Recommendations = append(result.Recommendations, fmt.Sprintf("Add a %s section", label))
		case c.Score < 0.7:
			result.Recommendations = append(result.Recommendations, fmt.Sprintf("Improve your %s section", label))
		}
		if c.Present {
			present++
		}
	}

	overall := total / float64(len(EssentialSections))
	result.OverallScore = scoring.Round(overall * 100)
	result.Rating = Rating(overall)
	result.Completeness = scoring.Round(float64(present) / float64(len(EssentialSections)) * 100)
	return result
}

// Rating maps a 0-1 section score onto a label.
func Rating(score float64) string {
	switch {
	case score >= 0.9:
		return "Excellent"
	case score >= 0.7:
		return "Good"
	case score >= 0.4:
		return "Adequate"
	default:
		return "Needs Improvement"
	}
}

func gradeSummary(c *types.ResumeSectionCheck, text string, sections map[string]string) {
	if countPresent(text, summaryMentions) > 0 {
		c.Present, c.Score = true, 0.8
	}
	content, ok := sections["summary"]
	if !ok {
		return
	}
	c.Present = true
	switch words := len(strings.Fields(content)); {
	case words >= 30:
		c.Score = 1.0
	case words >= 15:
		c.Score = 0.7
	default:
		c.Score = 0.4
	}
}

func gradeExperience(c *types.ResumeSectionCheck, text string, sections map[string]string) {
	if countPresent(text, experienceMention) > 0 {
		c.Present = true
	}
	content, ok := sections["experience"]
	if !ok {
		return
	}
	c.Present = true
	dates := len(experienceDates.FindAllStringIndex(content, -1))
	achievements := countMatches(content, experienceVerbs)
	switch {
	case dates >= 2 && achievements >= 3:
		c.Score = 1.0
	case dates >= 1 && achievements >= 1:
		c.Score = 0.7
	default:
		c.Score = 0.4
	}
}

func gradeEducation(c *types.ResumeSectionCheck, text string, sections map[string]string) {
	if countPresent(text, educationMentions) > 0 {
		c.Present = true
	}
	content, ok := sections["education"]
	if !ok {
		return
	}
	c.Present = true
	hasDegree := countPresent(content, degreeMentions) > 0
	hasYear := educationYears.MatchString(content)
	switch {
	case hasDegree && hasYear:
		c.Score = 1.0
	case hasDegree || hasYear:
		c.Score = 0.7
	default:
		c.Score = 0.4
	}
}

func gradeSkills(c *types.ResumeSectionCheck, text string, sections map[string]string) {
	if countPresent(text, skillsMentions) > 0 {
		c.Present = true
	}
	content, ok := sections["skills"]
	if !ok {
		return
	}
	c.Present = true
	switch n := countSkillItems(content); {
	case n >= 10:
		c.Score = 1.0
	case n >= 5:
		c.Score = 0.7
	default:
		c.Score = 0.4
	}
}

// countSkillItems counts comma-separated items, else items split on the
// first bullet character present, else words.
func countSkillItems(content string) int {
	if strings.Contains(content, ",") {
		return countNonEmpty(strings.Split(content, ","))
	}
	for _, b := range skillListBullets {
		if strings.Contains(content, b) {
			return countNonEmpty(strings.Split(content, b))
		}
	}
	return len(strings.Fields(content))
}

func countNonEmpty(parts []string) int {
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
