package resumeanalysis

import (
	"regexp"
	"strings"

	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/screening"
	"github.com/searchfind/screening-engine/internal/types"
)

const (
	baseScore         = 50
	missingScore      = 30
	detailedWordCount = 20
)

var (
	achievementIndicators = []string{
		"achieve", "improve", "increase", "reduce", "save", "create", "develop", "implement",
		"lead", "manage", "coordinate", "launch", "design", "mentor", "win", "award",
		"percent", "%", "million", "thousand", "growth", "revenue", "cost", "efficiency",
	}

	progressionIndicators = []string{"senior", "lead", "manager", "director", "head", "chief", "principal"}

	relevantFields = []string{
		"computer science", "information technology", "software engineering",
		"data science", "cybersecurity", "information systems", "computer engineering",
		"electrical engineering", "mathematics", "statistics", "physics",
		"business", "finance", "economics", "management", "marketing",
		"human resources", "communication", "psychology",
	}

	prestigiousInstitution = regexp.MustCompile(`\b(?:harvard|stanford|mit|princeton|yale|columbia|berkeley|oxford|cambridge|caltech|chicago|penn)\b`)
)

func scoreSkills(skills ParsedSkills) int {
	score := baseScore

	switch n := len(skills.Technical); {
	case n >= 10:
		score += 25
	case n >= 5:
		score += 15
	case n >= 1:
		score += 5
	}

	switch n := len(skills.Soft); {
	case n >= 5:
		score += 15
	case n >= 3:
		score += 10
	case n >= 1:
		score += 5
	}

	switch n := len(techCategories(skills.Technical)); {
	case n >= 3:
		score += 10
	case n >= 2:
		score += 5
	}
	return scoring.ClampInt(score)
}

func techCategories(technical []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, skill := range technical {
		if c := technicalCategory[strings.ToLower(skill)]; c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func hasDetailedDescription(entries []types.ExperienceEntry) bool {
	for _, e := range entries {
		if len(strings.Fields(e.Description)) >= detailedWordCount {
			return true
		}
	}
	return false
}

func hasAchievements(entries []types.ExperienceEntry, indicators []string) bool {
	for _, e := range entries {
		if containsAny(strings.ToLower(e.Description), indicators) {
			return true
		}
	}
	return false
}

func scoreExperience(entries []types.ExperienceEntry) int {
	if len(entries) == 0 {
		return missingScore
	}
	score := baseScore

	switch n := len(entries); {
	case n >= 3:
		score += 15
	case n >= 2:
		score += 10
	default:
		score += 5
	}
	if hasDetailedDescription(entries) {
		score += 5
	}
	if hasAchievements(entries, achievementIndicators) {
		score += 10
	}

	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	if containsAny(strings.ToLower(strings.Join(titles, " ")), progressionIndicators) {
		score += 10
	}

	for _, e := range entries {
		if e.Title == UnknownPosition || e.Company == UnknownCompany {
			score -= 5
		}
	}
	return scoring.ClampInt(score)
}

// degreeRank places a degree line on a 0-4 scale: high school or nothing,
// associate, bachelor, master, doctorate.
func degreeRank(degree string) int {
	_, level := screening.ClassifyDegree(degree)
	return max(0, level-1)
}

func scoreEducation(entries []types.EducationEntry) int {
	if len(entries) == 0 {
		return missingScore
	}
	score := baseScore

	highest, relevant := 0, false
	for _, e := range entries {
		highest = max(highest, degreeRank(e.Degree))
		if containsAny(strings.ToLower(e.Degree), relevantFields) {
			relevant = true
		}
	}

	switch {
	case highest >= 4:
		score += 25
	case highest >= 3:
		score += 20
	case highest >= 2:
		score += 15
	case highest >= 1:
		score += 10
	}
	if relevant {
		score += 15
	}
	for _, e := range entries {
		if prestigiousInstitution.MatchString(strings.ToLower(e.Institution)) {
			score += 10
			break
		}
	}
	return scoring.ClampInt(score)
}
