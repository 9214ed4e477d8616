package screening

import (
	"strings"

	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/types"
)

// defaultFormattingScore stands in for a layout assessment, which plain
// text cannot support.
const defaultFormattingScore = 60

var achievementKeywords = []string{
	"increased", "decreased", "improved", "achieved", "won",
	"delivered", "reduced", "saved", "created", "developed",
	"implemented", "managed", "led", "trained", "designed",
	"%", "percent", "award", "recognition",
}

func resumeQuality(doc *types.ProcessedDocument) types.ResumeQuality {
	experience := doc.ExtractedExperience
	education := doc.ExtractedEducation
	skills := doc.ExtractedSkills

	completeness := 0.0
	if len(experience) > 0 {
		completeness += 30 * min(1, float64(len(experience))/3)
	}
	if len(education) > 0 {
		completeness += 20 * min(1, float64(len(education))/2)
	}
	if len(skills) > 0 {
		completeness += 20 * min(1, float64(len(skills))/10)
	}
	if doc.ExtractedContact.HasAny() {
		completeness += 10
	}
	if strings.TrimSpace(doc.ExtractedSummary) != "" {
		completeness += 10
	}

	achievements := 0
	for _, e := range experience {
		if containsAny(strings.ToLower(e.Description), achievementKeywords) {
			achievements++
		}
	}
	achievementScore := min(20, achievements*5)

	quality := completeness*0.5 + float64(achievementScore)*0.3 + defaultFormattingScore*0.2

	var evaluation string
	switch {
	case quality >= 85:
		evaluation = "Excellent resume with comprehensive details and achievement-oriented descriptions"
	case quality >= 70:
		evaluation = "Good resume with adequate information but could be improved"
	case quality >= 50:
		evaluation = "Basic resume with some gaps or areas for improvement"
	default:
		evaluation = "Limited resume with significant room for improvement"
	}

	improvements := []string{}
	if len(experience) < 2 {
		improvements = append(improvements, "Add more details about work experience")
	}
	if achievements < 2 {
		improvements = append(improvements, "Include specific achievements with measurable results")
	}
	if len(skills) < 8 {
		improvements = append(improvements, "Expand the skills section")
	}

	return types.ResumeQuality{
		Score:             scoring.Clamp(quality),
		CompletenessScore: scoring.Clamp(completeness),
		AchievementScore:  achievementScore,
		FormattingScore:   defaultFormattingScore,
		Evaluation:        evaluation,
		ImprovementAreas:  improvements,
	}
}

// genericLetterPhrases mark a letter that was not written for this employer.
var genericLetterPhrases = []string{
	"to whom it may concern",
	"dear hiring manager",
	"your company",
	"your organization",
}

// noCoverLetter is the cover-letter score of an application without one.
var noCoverLetter = types.CoverLetterQuality{Score: 0, Evaluation: "No cover letter provided"}

func coverLetterQuality(doc *types.ProcessedDocument, jobTitle, companyName string) types.CoverLetterQuality {
	text := strings.ToLower(doc.CleanText)
	result := types.CoverLetterQuality{}

	personalization := 0
	if jobTitle != "" && strings.Contains(text, strings.ToLower(jobTitle)) {
		result.JobTitleMentioned = true
		personalization += 20
	}
	if companyName != "" && strings.Contains(text, strings.ToLower(companyName)) {
		result.CompanyMentioned = true
		personalization += 20
	}
	personalization = max(0, personalization-10*countContained(text, genericLetterPhrases))
	if n := len(doc.CompanyReferences); n > 0 {
		personalization += min(20, n*10)
	}

	relevance := 0
	if n := len(doc.SkillsMentioned); n > 0 {
		relevance += min(30, n*5)
	}
	if n := len(doc.Achievements); n > 0 {
		relevance += min(30, n*10)
	}

	structure := 0
	for _, section := range []string{"introduction", "body", "closing"} {
		if _, ok := doc.Sections[section]; ok {
			structure += 15
		}
	}
	switch words := len(strings.Fields(text)); {
	case words >= 250 && words <= 500:
		structure += 15
	case words > 500, words < 150:
		structure += 5
	}

	quality := float64(personalization)*0.4 + float64(relevance)*0.4 + float64(structure)*0.2
	switch {
	case quality >= 85:
		result.Evaluation = "Excellent cover letter with strong personalization and relevant content"
	case quality >= 70:
		result.Evaluation = "Good cover letter with adequate personalization but could be improved"
	case quality >= 50:
		result.Evaluation = "Basic cover letter with limited personalization"
	default:
		result.Evaluation = "Generic cover letter with significant room for improvement"
	}

	improvements := []string{}
	if !result.JobTitleMentioned {
		improvements = append(improvements, "Mention the specific job title")
	}
	if !result.CompanyMentioned {
		improvements = append(improvements, "Include the company name")
	}
	if len(doc.SkillsMentioned) < 3 {
		improvements = append(improvements, "Highlight more relevant skills")
	}
	if len(doc.Achievements) < 2 {
		improvements = append(improvements, "Include specific achievements relevant to the position")
	}

	result.Score = scoring.Clamp(quality)
	result.PersonalizationScore = scoring.ClampInt(personalization)
	result.RelevanceScore = scoring.ClampInt(relevance)
	result.StructureScore = scoring.ClampInt(structure)
	result.ImprovementAreas = improvements
	return result
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func countContained(text string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			n++
		}
	}
	return n
}
