package resumeanalysis

import (
	"fmt"
	"strings"

	"github.com/searchfind/screening-engine/internal/screening"
	"github.com/searchfind/screening-engine/internal/types"
)

// Diversity levels of a technical skill set.
const (
	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"
)

const (
	atsBaseScore  = 70
	atsBonus      = 10
	atsHighScore  = 90
	maxSuggestion = 5
)

// SkillDiversity counts the technical categories a resume covers.
type SkillDiversity struct {
	Level      string   `json:"level" yaml:"level"`
	Categories []string `json:"categories" yaml:"categories"`
}

// SkillsAnalysis details the skills of a resume.
type SkillsAnalysis struct {
	TechnicalSkillsCount int            `json:"technical_skills_count" yaml:"technical_skills_count"`
	SoftSkillsCount      int            `json:"soft_skills_count" yaml:"soft_skills_count"`
	Diversity            SkillDiversity `json:"skill_diversity" yaml:"skill_diversity"`
	InDemandSkills       []string       `json:"in_demand_skills" yaml:"in_demand_skills"`
	ImprovementAreas     []string       `json:"skill_improvement_areas" yaml:"skill_improvement_areas"`
}

// ExperienceTimeline summarizes the span of a work history.
type ExperienceTimeline struct {
	TotalYears           int                    `json:"total_years" yaml:"total_years"`
	HasGaps              bool                   `json:"has_gaps" yaml:"has_gaps"`
	MostRecentExperience *types.ExperienceEntry `json:"most_recent_experience" yaml:"most_recent_experience"`
}

// ExperienceAnalysis details the work history of a resume.
type ExperienceAnalysis struct {
	EntriesCount                int                `json:"experience_entries_count" yaml:"experience_entries_count"`
	HasDetailedDescriptions     bool               `json:"has_detailed_descriptions" yaml:"has_detailed_descriptions"`
	HasQuantifiableAchievements bool               `json:"has_quantifiable_achievements" yaml:"has_quantifiable_achievements"`
	Timeline                    ExperienceTimeline `json:"experience_timeline" yaml:"experience_timeline"`
	ImprovementAreas            []string           `json:"experience_improvement_areas" yaml:"experience_improvement_areas"`
}

// EducationAnalysis details the education of a resume.
type EducationAnalysis struct {
	EntriesCount     int                   `json:"education_entries_count" yaml:"education_entries_count"`
	HighestDegree    *types.EducationEntry `json:"highest_degree" yaml:"highest_degree"`
	ImprovementAreas []string              `json:"education_improvement_areas" yaml:"education_improvement_areas"`
}

// ATSCompatibility estimates how well applicant tracking systems will read
// the resume.
type ATSCompatibility struct {
	Score           int      `json:"score" yaml:"score"`
	Level           string   `json:"level" yaml:"level"`
	ImprovementTips []string `json:"improvement_tips" yaml:"improvement_tips"`
}

// DetailedAnalysis groups the per-area findings.
type DetailedAnalysis struct {
	Skills     SkillsAnalysis     `json:"skills_analysis" yaml:"skills_analysis"`
	Experience ExperienceAnalysis `json:"experience_analysis" yaml:"experience_analysis"`
	Education  EducationAnalysis  `json:"education_analysis" yaml:"education_analysis"`
	ATS        ATSCompatibility   `json:"ats_compatibility" yaml:"ats_compatibility"`
}

// inDemandSkills are matched case-insensitively against technical skills.
var inDemandSkills = []string{
	"Python", "JavaScript", "React", "Node.js", "AWS", "Azure", "GCP",
	"Docker", "Kubernetes", "Machine Learning", "Data Science", "AI",
	"DevOps", "Cloud Computing", "Cybersecurity", "Blockchain",
	"SQL", "NoSQL", "Big Data", "Data Analysis", "Data Visualization",
}

var atsTips = []string{
	"Use standard section headings (e.g., 'Experience', 'Education', 'Skills')",
	"Avoid using tables, headers, footers, or complex formatting",
	"Include keywords from job descriptions you're targeting",
	"Use standard job titles and company names",
	"Avoid using acronyms without spelling them out first",
}

func (a *Analyzer) detail(skills ParsedSkills, experience []types.ExperienceEntry, education []types.EducationEntry) DetailedAnalysis {
	skillAreas := []string{}
	if len(skills.Technical) < 5 {
		skillAreas = append(skillAreas, "Add more technical skills to showcase your expertise")
	}
	if len(skills.Soft) < 3 {
		skillAreas = append(skillAreas, "Include more soft skills to demonstrate your workplace effectiveness")
	}

	expAnalysis := ExperienceAnalysis{
		EntriesCount:                len(experience),
		HasDetailedDescriptions:     hasDetailedDescription(experience),
		HasQuantifiableAchievements: hasAchievements(experience, achievementIndicators),
		Timeline:                    timeline(experience, a.clock.Now().Year()),
		ImprovementAreas:            []string{},
	}
	if !expAnalysis.HasDetailedDescriptions {
		expAnalysis.ImprovementAreas = append(expAnalysis.ImprovementAreas, "Add more detailed descriptions of your responsibilities")
	}
	if !expAnalysis.HasQuantifiableAchievements {
		expAnalysis.ImprovementAreas = append(expAnalysis.ImprovementAreas, "Include quantifiable achievements with metrics")
	}

	eduAnalysis := EducationAnalysis{
		EntriesCount:     len(education),
		HighestDegree:    highestDegree(education),
		ImprovementAreas: []string{},
	}
	switch {
	case len(education) == 0:
		eduAnalysis.ImprovementAreas = append(eduAnalysis.ImprovementAreas, "Add your educational background")
	case hasUnspecifiedEducation(education):
		eduAnalysis.ImprovementAreas = append(eduAnalysis.ImprovementAreas, "Complete your education details with degree and institution information")
	}

	return DetailedAnalysis{
		Skills: SkillsAnalysis{
			TechnicalSkillsCount: len(skills.Technical),
			SoftSkillsCount:      len(skills.Soft),
			Diversity:            diversity(skills.Technical),
			InDemandSkills:       inDemand(skills.Technical),
			ImprovementAreas:     skillAreas,
		},
		Experience: expAnalysis,
		Education:  eduAnalysis,
		ATS:        atsCompatibility(skills, experience, education),
	}
}

func diversity(technical []string) SkillDiversity {
	categories := techCategories(technical)
	level := LevelLow
	switch {
	case len(categories) >= 4:
		level = LevelHigh
	case len(categories) >= 2:
		level = LevelMedium
	}
	if categories == nil {
		categories = []string{}
	}
	return SkillDiversity{Level: level, Categories: categories}
}

func inDemand(technical []string) []string {
	out := []string{}
	for _, skill := range technical {
		for _, want := range inDemandSkills {
			if strings.EqualFold(skill, want) {
				out = append(out, skill)
				break
			}
		}
	}
	return out
}

// timeline totals the parseable year ranges and picks the first current
// position, or the first entry when none is current.
func timeline(entries []types.ExperienceEntry, year int) ExperienceTimeline {
	if len(entries) == 0 {
		return ExperienceTimeline{}
	}
	recent := entries[0]
	for _, e := range entries {
		lower := strings.ToLower(e.Years)
		if strings.Contains(lower, "present") || strings.Contains(lower, "current") {
			recent = e
			break
		}
	}
	return ExperienceTimeline{
		TotalYears:           screening.TotalYears(entries, year),
		MostRecentExperience: &recent,
	}
}

// highestDegree returns the entry with the highest recognised degree, the
// first one on ties.
func highestDegree(entries []types.EducationEntry) *types.EducationEntry {
	best, bestLevel := -1, 0
	for i, e := range entries {
		if _, level := screening.ClassifyDegree(e.Degree); level > bestLevel {
			best, bestLevel = i, level
		}
	}
	if best < 0 {
		return nil
	}
	entry := entries[best]
	return &entry
}

func hasUnspecifiedEducation(entries []types.EducationEntry) bool {
	for _, e := range entries {
		if strings.Contains(e.Degree, "not specified") || strings.Contains(e.Institution, "not specified") {
			return true
		}
	}
	return false
}

func atsCompatibility(skills ParsedSkills, experience []types.ExperienceEntry, education []types.EducationEntry) ATSCompatibility {
	score := atsBaseScore
	if len(skills.Technical) > 0 && len(skills.Soft) > 0 {
		score += atsBonus
	}
	if len(experience) > 0 && allPositionsKnown(experience) {
		score += atsBonus
	}
	if len(education) > 0 {
		score += atsBonus
	}

	result := ATSCompatibility{Score: score, Level: LevelMedium, ImprovementTips: []string{}}
	switch {
	case score >= atsHighScore:
		result.Level = LevelHigh
	case score < atsBaseScore:
		result.Level = LevelLow
	}
	if score < atsHighScore {
		result.ImprovementTips = append(result.ImprovementTips, atsTips...)
	}
	return result
}

func allPositionsKnown(entries []types.ExperienceEntry) bool {
	for _, e := range entries {
		if e.Title == UnknownPosition {
			return false
		}
	}
	return true
}

// shortAchievementIndicators is the narrower list used when recommending.
var shortAchievementIndicators = []string{
	"achieve", "improve", "increase", "reduce", "save", "create", "develop", "implement",
	"lead", "manage", "coordinate", "launch", "design", "percent", "%",
}

var defaultSuggestions = []string{
	"Add more specific achievements with metrics in your experience section",
	"Include relevant certifications and professional development",
	"Highlight leadership experience and team collaboration skills",
	"Use strong action verbs to describe your responsibilities and achievements",
	"Tailor your resume to the specific job you're applying for",
}

func recommend(check types.ResumeValidation, skillScore, experienceScore, educationScore int, skills ParsedSkills, experience []types.ExperienceEntry, education []types.EducationEntry) []string {
	var out []string
	for _, missing := range check.MissingSections {
		out = append(out, fmt.Sprintf("Add a %s section to your resume", missing))
	}

	if skillScore < 70 {
		if len(skills.Technical) < 5 {
			out = append(out, "Add more technical skills to your resume")
		}
		if len(skills.Soft) < 3 {
			out = append(out, "Include some soft skills that are relevant to your target role")
		}
	}

	if experienceScore < 70 {
		if len(experience) == 0 {
			out = append(out, "Add work experience to your resume")
		} else {
			short := false
			for _, e := range experience {
				if e.Description != "" && len(strings.Fields(e.Description)) < detailedWordCount {
					short = true
				}
			}
			if short {
				out = append(out, "Add more details to your work experience descriptions")
			}
			if !hasAchievements(experience, shortAchievementIndicators) {
				out = append(out, "Include specific achievements with measurable results in your work experience")
			}
		}
	}

	if educationScore < 70 && hasUnspecifiedEducation(education) {
		out = append(out, "Complete your education section with degree and institution details")
	}
	if check.Completeness < 80 {
		out = append(out, "Improve the overall structure and completeness of your resume")
	}

	if len(out) > maxSuggestion {
		out = out[:maxSuggestion]
	}
	if len(out) == 0 {
		out = append(out, defaultSuggestions...)
	}
	return out
}
