package screening

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/searchfind/screening-engine/internal/resources"
	"github.com/searchfind/screening-engine/internal/types"
)

var (
	educationRequired = regexp.MustCompile(`\b(?:must have|required|minimum)\b.*(?:degree|education)\b`)

	fieldOfStudyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:degree|education)[^.\n]*?(?:in|with)([^.\n]*?)(?:\.|,|\(|or |and |preferred|required|\+|;|\n|$)`),
		regexp.MustCompile(`(?:bachelor'?s?|master'?s?|phd|doctorate|ms|ma|mba|bs|ba)[^.\n]*?(?:in|with)([^.\n]*?)(?:\.|,|\(|or |and |preferred|required|\+|;|\n|$)`),
	}

	fieldFillerWords = regexp.MustCompile(`\b(?:or|and|the|a|an|degree|field)\b`)
	fieldSeparators  = regexp.MustCompile(`[,/]`)

	yearsOfExperiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)(?:\+|\s*\+|\s*plus|\s*or more)?\s*(?:years?|yrs?)(?:\s+of)?\s+experience`),
		regexp.MustCompile(`experience(?:\s+of)?\s+(\d+)(?:\+|\s*\+|\s*plus|\s*or more)?\s*(?:years?|yrs?)`),
	}

	bareNumber       = regexp.MustCompile(`\b\d+\b`)
	requiredContext  = regexp.MustCompile(`\b(?:required|must have|minimum|at least)\b`)
	preferredContext = regexp.MustCompile(`\b(?:preferred|ideally|nice to have|plus)\b`)

	experienceAreaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`experience (?:in|with) ([^.,;()\n]+)`),
		regexp.MustCompile(`knowledge of ([^.,;()\n]+)`),
		regexp.MustCompile(`proficiency (?:in|with) ([^.,;()\n]+)`),
		regexp.MustCompile(`background (?:in|with) ([^.,;()\n]+)`),
	}

	areaFillerWords = regexp.MustCompile(`\b(?:and|or|the|a|an)\b`)
	multiSpace      = regexp.MustCompile(`\s{2,}`)
)

// contextWindow is how far around a years figure the required/preferred
// keywords are searched for.
const contextWindow = 50

// ExtractRequirements derives the structured requirements of a listing from
// its explicit fields and its description and requirements text.
func (s *Screener) ExtractRequirements(listing *types.JobListing) types.JobRequirements {
	if listing == nil {
		listing = &types.JobListing{}
	}

	fullText := listing.Description
	if listing.Requirements != "" && !strings.Contains(fullText, listing.Requirements) {
		fullText += "\n\n" + listing.Requirements
	}

	processed := s.processor.Process(fullText, types.DocumentJobDescription)

	required := make([]string, 0, len(listing.SkillsRequired)+len(processed.ExtractedSkills))
	required = append(required, listing.SkillsRequired...)
	required = append(required, processed.ExtractedSkills...)

	industry := listing.Industry
	if industry == "" {
		industry = resources.IndustryForText(fullText)
	}

	return types.JobRequirements{
		JobTitle:               listing.Title,
		JobLocation:            listing.Location,
		RequiredSkills:         lowerUnique(required),
		PreferredSkills:        lowerUnique(listing.PreferredSkills),
		EducationRequirements:  extractEducationRequirements(fullText, listing),
		ExperienceRequirements: extractExperienceRequirements(fullText, listing),
		JobCategory:            listing.Category,
		JobIndustry:            industry,
	}
}

func extractEducationRequirements(text string, listing *types.JobListing) types.EducationRequirements {
	req := types.EducationRequirements{PreferredFields: []string{}}
	lower := strings.ToLower(text)

	if e := strings.TrimSpace(listing.EducationRequired); e != "" {
		req.MinDegreeLevel = NormalizeDegree(e)
		req.Required = true
	} else {
		req.MinDegreeLevel, _ = highestRequiredDegree(lower)
		req.Required = educationRequired.MatchString(lower)
	}

	var fields []string
	for _, re := range fieldOfStudyPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			cleaned := fieldFillerWords.ReplaceAllString(m[1], "")
			for _, f := range fieldSeparators.Split(cleaned, -1) {
				f = strings.TrimSpace(multiSpace.ReplaceAllString(f, " "))
				if len(f) > 2 {
					fields = append(fields, f)
				}
			}
		}
	}
	req.PreferredFields = lowerUnique(fields)
	return req
}

func extractExperienceRequirements(text string, listing *types.JobListing) types.ExperienceRequirements {
	req := types.ExperienceRequirements{
		MinYears: int(listing.MinExperience),
		Areas:    []string{},
	}
	lower := strings.ToLower(text)

	if req.MinYears <= 0 {
		req.MinYears, req.PreferredYears = yearsFromText(text, lower)
	}

	var areas []string
	for _, re := range experienceAreaPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			area := areaFillerWords.ReplaceAllString(strings.TrimSpace(m[1]), "")
			area = strings.TrimSpace(multiSpace.ReplaceAllString(area, " "))
			if len(area) > 2 {
				areas = append(areas, area)
			}
		}
	}
	req.Areas = lowerUnique(areas)
	return req
}

// yearsFromText finds "N years of experience" figures and splits them into
// required and preferred by the keywords near each occurrence of N. It
// returns the minimum of each bucket.
func yearsFromText(text, lower string) (minYears, preferredYears int) {
	var years []int
	for _, re := range yearsOfExperiencePatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil {
				years = append(years, n)
			}
		}
	}
	if len(years) == 0 {
		return 0, 0
	}

	var required, preferred []int
	numbers := bareNumber.FindAllStringIndex(text, -1)
	for _, y := range years {
		want := strconv.Itoa(y)
		for _, loc := range numbers {
			if text[loc[0]:loc[1]] != want {
				continue
			}
			window := strings.ToLower(text[max(0, loc[0]-contextWindow):min(len(text), loc[1]+contextWindow)])
			switch {
			case requiredContext.MatchString(window):
				required = append(required, y)
			case preferredContext.MatchString(window):
				preferred = append(preferred, y)
			default:
				required = append(required, y)
			}
		}
	}

	switch {
	case len(required) > 0:
		minYears = minOf(required)
	case len(preferred) == 0:
		minYears = minOf(years)
	}
	if len(preferred) > 0 {
		preferredYears = minOf(preferred)
	}
	return minYears, preferredYears
}

func minOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		m = min(m, v)
	}
	return m
}

// lowerUnique lowercases and trims items, dropping blanks and repeats while
// keeping first-seen order.
func lowerUnique(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
