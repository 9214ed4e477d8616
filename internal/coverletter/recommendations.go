package coverletter

import (
	"fmt"
	"strings"
)

const maxRecommendations = 5

var missingPartAdvice = map[string]string{
	partGreeting:     "Add a proper greeting at the beginning of your cover letter (e.g., 'Dear Hiring Manager,')",
	partIntroduction: "Add an introduction that clearly states the position you're applying for and your interest in the role",
	partBody:         "Expand the body of your cover letter to highlight your relevant experience and skills",
	partClosing:      "Add a professional closing statement thanking the reader for their consideration",
	partSignature:    "Include your name at the end of the cover letter",
}

// recommend lists the most important fixes, at most maxRecommendations,
// falling back to general encouragement when nothing needs fixing.
func recommend(structure StructureAnalysis, content ContentAnalysis, personalization Personalization, relevance *JobRelevance) []string {
	var out []string

	if structure.Score < 70 {
		for _, part := range structure.SectionsMissing {
			out = append(out, missingPartAdvice[part])
		}
	}

	switch words := content.Length.WordCount; {
	case words < 200:
		out = append(out, "Expand your cover letter to at least 250-350 words to adequately highlight your qualifications")
	case words > 550:
		out = append(out, "Consider making your cover letter more concise (about 350-500 words) to respect the reader's time")
	}
	if content.AchievementCount < 2 {
		out = append(out, "Include specific achievements with measurable results from your past experience")
	}
	if content.SkillCount < 3 {
		out = append(out, "Mention more specific skills that are relevant to the position")
	}
	if content.GenericPhraseCount >= 2 {
		out = append(out, fmt.Sprintf("Replace generic phrases like '%s' with specific examples from your experience",
			strings.Join(content.GenericPhrases[:2], "', '")))
	}

	if personalization.CompanyMentions < 2 {
		out = append(out, "Mention the company name more frequently to show your specific interest in them")
	}
	if len(personalization.Indicators) < 3 {
		out = append(out, "Personalize your cover letter by referencing specific company initiatives, values, or projects")
	}

	if relevance != nil && len(relevance.KeywordsMissed) >= 5 {
		out = append(out, "Include more job-relevant keywords such as "+strings.Join(relevance.KeywordsMissed[:5], ", "))
	}

	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	if len(out) == 0 {
		if structure.Score >= 80 && content.rawScore >= 80 {
			out = append(out, "Your cover letter is well-structured and contains strong content. Consider tailoring it even further for each specific position.")
		} else {
			out = append(out, "Continue to focus on specific achievements and skills relevant to the position.")
		}
	}
	return out
}
