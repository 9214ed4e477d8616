package screening

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/searchfind/screening-engine/internal/types"
)

// criticalSkillCount is how many of the leading required skills are treated
// as critical for red-flag purposes.
const criticalSkillCount = 3

var tierOpenings = map[types.CandidateTier]string{
	types.TierExcellent: "Excellent candidate with strong match across all requirements. ",
	types.TierStrong:    "Strong candidate with good match to most requirements. ",
	types.TierGood:      "Good candidate with reasonable match to requirements. ",
	types.TierPotential: "Potential candidate with some match to requirements but areas of concern. ",
	types.TierLimited:   "Limited match to requirements with significant gaps. ",
	types.TierPoor:      "Poor match to requirements with major deficiencies. ",
}

func summarize(scores *scoreSet, tier types.CandidateTier) string {
	var b strings.Builder
	b.WriteString(tierOpenings[tier])

	switch pct := scores.skills.PercentageRequired; {
	case pct >= 90:
		b.WriteString("Matches all or nearly all required skills. ")
	case pct >= 70:
		b.WriteString("Matches most required skills. ")
	case pct >= 50:
		b.WriteString("Matches some required skills with notable gaps. ")
	default:
		b.WriteString("Significant skills gaps compared to requirements. ")
	}

	exp := scores.experience
	switch {
	case exp.YearsExperience >= exp.YearsRequired && exp.AreasScore >= 70:
		b.WriteString("Has sufficient experience in relevant areas. ")
	case exp.YearsExperience >= exp.YearsRequired:
		b.WriteString("Has sufficient years of experience but in less relevant areas. ")
	default:
		fmt.Fprintf(&b, "Has less than the required %d years of experience. ", exp.YearsRequired)
	}

	edu := scores.education
	switch {
	case edu.HasRequiredEducation && edu.FieldScore >= 70:
		b.WriteString("Education meets requirements with relevant field of study. ")
	case edu.HasRequiredEducation:
		b.WriteString("Education level meets requirements but in less relevant field. ")
	case edu.IsEducationRequired:
		b.WriteString("Does not meet the required education level. ")
	}

	switch tier {
	case types.TierExcellent, types.TierStrong:
		b.WriteString("Recommended for interview.")
	case types.TierGood:
		b.WriteString("Consider for interview.")
	case types.TierPotential:
		b.WriteString("May be worth further screening.")
	default:
		b.WriteString("Not recommended based on current qualifications.")
	}
	return b.String()
}

// genericApplicationPhrases are the boilerplate openings counted when
// deciding whether a cover letter is generic.
var genericApplicationPhrases = []string{
	"to whom it may concern",
	"dear hiring manager",
	"your company",
	"your organization",
	"i am writing to apply",
	"i am writing to express my interest",
}

func redFlags(resume, letter *types.ProcessedDocument, reqs types.JobRequirements, companyName string, currentYear int) []string {
	flags := []string{}
	entries := resume.ExtractedExperience

	if len(entries) > 0 {
		shortStints := 0
		for _, e := range entries {
			if start, end, ok := entrySpan(e.Years, currentYear); ok && end-start < 1 {
				shortStints++
			}
		}
		if shortStints >= 2 {
			flags = append(flags, "Multiple short-term positions (less than 1 year)")
		}
		flags = append(flags, employmentGaps(entries, currentYear)...)
	}

	have := lowerUnique(resume.ExtractedSkills)
	var missingCritical []string
	for _, skill := range reqs.RequiredSkills[:min(criticalSkillCount, len(reqs.RequiredSkills))] {
		if !containsString(have, strings.ToLower(skill)) {
			missingCritical = append(missingCritical, skill)
		}
	}
	if len(missingCritical) > 0 {
		flags = append(flags, "Missing critical skills: "+strings.Join(missingCritical, ", "))
	}

	if minYears := reqs.ExperienceRequirements.MinYears; minYears > 0 {
		if total := listedYears(entries, currentYear); total < minYears {
			flags = append(flags, fmt.Sprintf("Insufficient experience: %d years (required: %d)", total, minYears))
		}
	}

	edu := reqs.EducationRequirements
	if edu.Required && edu.MinDegreeLevel != "" {
		_, level, _ := highestDegree(resume.ExtractedEducation)
		if level < DegreeLevel(edu.MinDegreeLevel) {
			flags = append(flags, "Education below required level: "+edu.MinDegreeLevel)
		}
	}

	if letter != nil {
		text := strings.ToLower(letter.CleanText)
		if countContained(text, genericApplicationPhrases) >= 3 {
			flags = append(flags, "Generic cover letter with little personalization")
		}
		if companyName != "" && !strings.Contains(text, strings.ToLower(companyName)) {
			flags = append(flags, "Cover letter does not mention company name")
		}
		if reqs.JobTitle != "" && !strings.Contains(text, strings.ToLower(reqs.JobTitle)) {
			flags = append(flags, "Cover letter does not mention job title")
		}
	}
	return flags
}

// employmentGaps walks the entries newest first and reports every gap of
// more than a year between one role's start and the previous role's end.
func employmentGaps(entries []types.ExperienceEntry, currentYear int) []string {
	sorted := append([]types.ExperienceEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Years > sorted[j].Years
	})

	var gaps []string
	for i := 0; i+1 < len(sorted); i++ {
		startMatch := spanStart.FindStringSubmatch(sorted[i].Years)
		endMatch := spanEnd.FindStringSubmatch(sorted[i+1].Years)
		if startMatch == nil || endMatch == nil {
			continue
		}
		start, _ := strconv.Atoi(startMatch[1])
		end := currentYear
		if !strings.Contains(strings.ToLower(sorted[i+1].Years), "present") && endMatch[1] != "" {
			end, _ = strconv.Atoi(endMatch[1])
		}
		if start-end > 1 {
			gaps = append(gaps, fmt.Sprintf("Gap in employment history (%d to %d)", end, start))
		}
	}
	return gaps
}

// listedYears totals tenure for the insufficient-experience check. Unlike
// totalYears it has no upper bound per entry.
func listedYears(entries []types.ExperienceEntry, currentYear int) int {
	total := 0
	for _, e := range entries {
		startMatch := spanStart.FindStringSubmatch(e.Years)
		if startMatch == nil {
			continue
		}
		start, _ := strconv.Atoi(startMatch[1])
		end := currentYear
		if !strings.Contains(strings.ToLower(e.Years), "present") {
			if m := spanEnd.FindStringSubmatch(e.Years); m != nil && m[1] != "" {
				end, _ = strconv.Atoi(m[1])
			}
		}
		total += max(0, end-start)
	}
	return total
}

func recommendActions(scores *scoreSet, tier types.CandidateTier, flags []string) []string {
	var actions []string
	switch tier {
	case types.TierExcellent, types.TierStrong:
		actions = append(actions, "Schedule interview", "Contact candidate to discuss qualifications")
	case types.TierGood:
		actions = append(actions, "Consider for interview if other candidates are limited", "Consider a screening call to clarify qualifications")
	case types.TierPotential:
		actions = append(actions, "Hold for further review", "Request additional information or samples")
		if len(flags) > 0 {
			actions = append(actions, "Address red flags in screening call")
		}
	default:
		actions = append(actions, "Reject application", "Send standard rejection email")
	}

	missing := scores.skills.MissingRequired
	if len(missing) > 0 && tier != types.TierLimited && tier != types.TierPoor {
		actions = append(actions, "Verify skills in "+strings.Join(missing[:min(3, len(missing))], ", "))
	}

	exp := scores.experience
	if exp.YearsExperience < exp.YearsRequired && (tier == types.TierGood || tier == types.TierPotential) {
		actions = append(actions, "Assess if quality of experience compensates for years")
	}
	return actions
}

var generalQuestions = []string{
	"Why are you interested in this position?",
	"What are your salary expectations?",
	"When would you be available to start if selected?",
	"Are you comfortable with the location/remote requirements of this position?",
	"Do you have any questions about the role or company?",
}

func suggestQuestions(resume *types.ProcessedDocument, scores *scoreSet) types.SuggestedQuestions {
	q := types.SuggestedQuestions{
		SkillsQuestions:     []string{},
		ExperienceQuestions: []string{},
		GeneralQuestions:    append([]string(nil), generalQuestions...),
	}

	missing := scores.skills.MissingRequired
	for _, skill := range missing[:min(2, len(missing))] {
		q.SkillsQuestions = append(q.SkillsQuestions, fmt.Sprintf("Do you have any experience with %s?", skill))
	}
	matching := scores.skills.MatchingRequired
	for _, skill := range matching[:min(2, len(matching))] {
		q.SkillsQuestions = append(q.SkillsQuestions, fmt.Sprintf("Can you describe your experience with %s in more detail?", skill))
	}

	exp := scores.experience
	for _, area := range exp.RelevantAreasMissing[:min(2, len(exp.RelevantAreasMissing))] {
		q.ExperienceQuestions = append(q.ExperienceQuestions, fmt.Sprintf("Do you have any experience with %s?", area))
	}
	if entries := resume.ExtractedExperience; len(entries) > 0 {
		company := entries[0].Company
		if company == "" {
			company = "your most recent company"
		}
		q.ExperienceQuestions = append(q.ExperienceQuestions, fmt.Sprintf("Can you tell me more about your role at %s?", company))
	}
	if exp.YearsExperience < exp.YearsRequired {
		q.ExperienceQuestions = append(q.ExperienceQuestions, fmt.Sprintf(
			"The role requires %d years of experience. Can you explain how your experience qualifies you despite having fewer years?",
			exp.YearsRequired))
	}
	return q
}

func containsString(items []string, target string) bool {
	for _, it := range items {
		if it == target {
			return true
		}
	}
	return false
}
