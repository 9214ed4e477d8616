package screening

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/types"
)

// minOverlapLength is the shortest skill name that may match by substring
// rather than exactly.
const minOverlapLength = 4

// maxSaneTenure bounds the years a single experience entry may contribute.
const maxSaneTenure = 50

// skillMatches reports whether want is in have exactly or, for names of at
// least minOverlapLength runes, as a substring in either direction.
func skillMatches(want string, have []string) bool {
	for _, h := range have {
		if h == want {
			return true
		}
	}
	for _, h := range have {
		shorter := min(len([]rune(want)), len([]rune(h)))
		if shorter >= minOverlapLength && (strings.Contains(h, want) || strings.Contains(want, h)) {
			return true
		}
	}
	return false
}

func matchSkills(candidate, required, preferred []string) types.SkillsMatch {
	result := types.SkillsMatch{
		MatchingRequired:  []string{},
		MissingRequired:   []string{},
		MatchingPreferred: []string{},
		MissingPreferred:  []string{},
	}
	if len(required) == 0 {
		result.Score = scoring.MaxScore
		result.PercentageRequired = 100
		result.Evaluation = "No specific skills were required for this job"
		return result
	}

	have := lowerUnique(candidate)
	for _, skill := range lowerUnique(required) {
		if skillMatches(skill, have) {
			result.MatchingRequired = append(result.MatchingRequired, skill)
		} else {
			result.MissingRequired = append(result.MissingRequired, skill)
		}
	}
	wantPreferred := lowerUnique(preferred)
	for _, skill := range wantPreferred {
		if skillMatches(skill, have) {
			result.MatchingPreferred = append(result.MatchingPreferred, skill)
		} else {
			result.MissingPreferred = append(result.MissingPreferred, skill)
		}
	}

	pctRequired := scoring.Percent(len(result.MatchingRequired), len(result.MatchingRequired)+len(result.MissingRequired))
	pctPreferred := scoring.Percent(len(result.MatchingPreferred), len(wantPreferred))

	var score float64
	if pctRequired < 50 {
		score = pctRequired*0.9 + pctPreferred*0.1
	} else {
		score = pctRequired*0.7 + pctPreferred*0.3
	}

	switch {
	case pctRequired == 100 && pctPreferred >= 70:
		result.Evaluation = "Excellent skills match with all required skills and most preferred skills"
	case pctRequired == 100:
		result.Evaluation = "Strong skills match with all required skills"
	case pctRequired >= 80:
		result.Evaluation = "Good skills match with most required skills"
	case pctRequired >= 60:
		result.Evaluation = "Moderate skills match with some missing required skills"
	default:
		result.Evaluation = "Limited skills match with several missing required skills"
	}

	result.Score = scoring.Clamp(score)
	result.PercentageRequired = scoring.Round1(pctRequired)
	result.PercentagePreferred = scoring.Round1(pctPreferred)
	return result
}

var (
	yearSpan  = regexp.MustCompile(`(?i)(\d{4})\s*-\s*(?:present|current|now|(\d{4}))`)
	spanStart = regexp.MustCompile(`(\d{4})\s*-`)
	spanEnd   = regexp.MustCompile(`(?i)-\s*(?:present|current|now|(\d{4}))`)
)

// entrySpan parses the start and end year of an experience entry's years
// text. Open ranges end in currentYear.
func entrySpan(years string, currentYear int) (start, end int, ok bool) {
	m := yearSpan.FindStringSubmatch(years)
	if m == nil {
		return 0, 0, false
	}
	start, _ = strconv.Atoi(m[1])
	end = currentYear
	if !strings.Contains(strings.ToLower(years), "present") && m[2] != "" {
		end, _ = strconv.Atoi(m[2])
	}
	return start, end, true
}

// TotalYears sums the tenure of every parseable entry, skipping entries
// with a negative or implausibly long span.
func TotalYears(entries []types.ExperienceEntry, currentYear int) int {
	total := 0
	for _, e := range entries {
		start, end, ok := entrySpan(e.Years, currentYear)
		if !ok {
			continue
		}
		if years := end - start; years >= 0 && years <= maxSaneTenure {
			total += years
		}
	}
	return total
}

// MatchExperience scores entries against the years and areas a job asks
// for. Open ranges end in currentYear.
func MatchExperience(entries []types.ExperienceEntry, req types.ExperienceRequirements, currentYear int) types.ExperienceMatch {
	total := TotalYears(entries, currentYear)
	minYears, preferred := req.MinYears, req.PreferredYears

	var yearsScore float64
	var yearsEval string
	switch {
	case minYears == 0:
		yearsScore = 100
		yearsEval = "No specific years of experience required"
	case total >= preferred && preferred > minYears:
		yearsScore = 100
		yearsEval = fmt.Sprintf("Experience (%d years) exceeds preferred level (%d years)", total, preferred)
	case total >= minYears && preferred > minYears:
		ratio := float64(total-minYears) / float64(preferred-minYears)
		yearsScore = 80 + 20*min(1, ratio)
		yearsEval = fmt.Sprintf("Experience (%d years) meets required (%d years) and is approaching preferred level (%d years)", total, minYears, preferred)
	case total >= minYears:
		yearsScore = 80 + min(20, float64(total-minYears)*5)
		yearsEval = fmt.Sprintf("Experience (%d years) exceeds minimum requirement (%d years)", total, minYears)
	default:
		yearsScore = 70 * float64(total) / float64(max(1, minYears))
		yearsEval = fmt.Sprintf("Experience (%d years) is below the required minimum (%d years)", total, minYears)
	}

	matched, missing := []string{}, []string{}
	for _, area := range req.Areas {
		if areaCovered(area, entries) {
			matched = append(matched, area)
		} else {
			missing = append(missing, area)
		}
	}

	var areasScore float64
	var areasEval string
	if len(req.Areas) == 0 {
		areasScore = 100
		areasEval = "No specific experience areas required"
	} else {
		areasScore = scoring.Percent(len(matched), len(req.Areas))
		switch {
		case areasScore >= 80:
			areasEval = "Experience highly relevant to job requirements"
		case areasScore >= 60:
			areasEval = "Experience mostly relevant to job requirements"
		case areasScore >= 40:
			areasEval = "Experience somewhat relevant to job requirements"
		default:
			areasEval = "Limited relevant experience for this position"
		}
	}

	return types.ExperienceMatch{
		Score:                scoring.Clamp(yearsScore*0.6 + areasScore*0.4),
		YearsExperience:      total,
		YearsRequired:        minYears,
		YearsPreferred:       preferred,
		YearsScore:           scoring.Clamp(yearsScore),
		YearsEvaluation:      yearsEval,
		RelevantAreasMatched: matched,
		RelevantAreasMissing: missing,
		AreasScore:           scoring.Clamp(areasScore),
		AreasEvaluation:      areasEval,
		ExperienceEntries:    len(entries),
	}
}

func areaCovered(area string, entries []types.ExperienceEntry) bool {
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Description), area) ||
			strings.Contains(strings.ToLower(e.Title), area) ||
			strings.Contains(strings.ToLower(e.Company), area) {
			return true
		}
	}
	return false
}

// highestDegree returns the candidate's highest recognised degree and the
// fields of study across all entries.
func highestDegree(entries []types.EducationEntry) (*types.Degree, int, []string) {
	var best *types.Degree
	bestLevel := 0
	var fields []string

	for _, e := range entries {
		degree := strings.TrimSpace(e.Degree)
		if degree == "" {
			continue
		}
		name, level := ClassifyDegree(degree)
		field := degreeField(degree)
		if level > bestLevel {
			bestLevel = level
			best = &types.Degree{
				Type:        name,
				Field:       field,
				Institution: strings.TrimSpace(e.Institution),
				Year:        strings.TrimSpace(e.Year),
			}
		}
		if field != "" {
			fields = append(fields, field)
		}
	}
	return best, bestLevel, fields
}

func degreeLabel(d *types.Degree) string {
	if d == nil {
		return noDegreeLabel
	}
	return d.Type
}

// MatchEducation scores the candidate's highest degree and fields of study
// against req.
func MatchEducation(entries []types.EducationEntry, req types.EducationRequirements) types.EducationMatch {
	best, level, fields := highestDegree(entries)
	requiredDegree := req.MinDegreeLevel
	requiredLevel := DegreeLevel(requiredDegree)

	var degreeScore float64
	var degreeEval string
	switch {
	case requiredDegree == "":
		degreeScore = 100
		degreeEval = "No specific degree requirement for this position"
	case level > requiredLevel:
		degreeScore = 100
		degreeEval = fmt.Sprintf("Education (%s) exceeds required level (%s)", degreeLabel(best), requiredDegree)
	case level == requiredLevel:
		degreeScore = 100
		degreeEval = fmt.Sprintf("Education (%s) meets required level (%s)", degreeLabel(best), requiredDegree)
	case level > 0:
		degreeScore = float64(level) / float64(requiredLevel) * 100
		degreeEval = fmt.Sprintf("Education (%s) is below required level (%s)", degreeLabel(best), requiredDegree)
	case req.Required:
		degreeScore = 0
		degreeEval = "No degree information found in resume"
	default:
		degreeScore = 50
		degreeEval = "No degree information found in resume"
	}

	matches, mismatches := []string{}, []string{}
	var fieldScore float64
	var fieldEval string
	if len(req.PreferredFields) == 0 {
		fieldScore = 100
		fieldEval = "No specific field of study required"
	} else {
		remaining := append([]string(nil), req.PreferredFields...)
		for _, cf := range fields {
			for _, pf := range req.PreferredFields {
				if strings.Contains(cf, pf) || strings.Contains(pf, cf) {
					matches = append(matches, cf)
					remaining = removeString(remaining, pf)
					break
				}
			}
		}
		mismatches = remaining

		if len(matches) > 0 {
			fieldScore = min(100, scoring.Percent(len(matches), len(req.PreferredFields)))
			switch {
			case fieldScore >= 80:
				fieldEval = "Field of study highly relevant to job requirements"
			case fieldScore >= 50:
				fieldEval = "Field of study somewhat relevant to job requirements"
			default:
				fieldEval = "Field of study has limited relevance to job requirements"
			}
		} else {
			fieldScore = 40
			fieldEval = "Field of study does not match job requirements"
		}
	}

	var overall float64
	if requiredDegree != "" {
		overall = degreeScore*0.7 + fieldScore*0.3
	} else {
		overall = degreeScore*0.3 + fieldScore*0.7
	}
	if !req.Required && overall < 70 {
		overall = 70
	}

	return types.EducationMatch{
		Score:                  scoring.Clamp(overall),
		CandidateHighestDegree: best,
		HasRequiredEducation:   level >= requiredLevel,
		RequiredDegree:         requiredDegree,
		DegreeScore:            scoring.Clamp(degreeScore),
		DegreeEvaluation:       degreeEval,
		FieldMatches:           matches,
		FieldMismatches:        mismatches,
		FieldScore:             scoring.Clamp(fieldScore),
		FieldEvaluation:        fieldEval,
		IsEducationRequired:    req.Required,
	}
}

func removeString(items []string, target string) []string {
	for i, it := range items {
		if it == target {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
