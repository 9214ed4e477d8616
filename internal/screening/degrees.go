package screening

import (
	"regexp"
	"strings"
)

// Canonical degree names, highest first.
const (
	DegreePhD        = "PhD"
	DegreeMasters    = "Master's"
	DegreeBachelors  = "Bachelor's"
	DegreeAssociates = "Associate's"
	DegreeHighSchool = "High School"
)

const (
	defaultMinDegree = DegreeBachelors + " degree"
	noDegreeLabel    = "None"
)

type degreeRung struct {
	name    string
	level   int
	pattern *regexp.Regexp
}

// requirementLadder recognises degree levels in job text.
var requirementLadder = []degreeRung{
	{DegreePhD, 5, regexp.MustCompile(`(?i)\b(?:phd|doctorate|doctoral)\b`)},
	{DegreeMasters, 4, regexp.MustCompile(`(?i)\b(?:master'?s?|ms|ma|mba)\b`)},
	{DegreeBachelors, 3, regexp.MustCompile(`(?i)\b(?:bachelor'?s?|bs|ba|bsc|undergraduate degree)\b`)},
	{DegreeAssociates, 2, regexp.MustCompile(`(?i)\b(?:associate'?s?|aas|aa)\b`)},
	{DegreeHighSchool, 1, regexp.MustCompile(`(?i)\b(?:high school|diploma|ged)\b`)},
}

// candidateLadder recognises degree levels in a resume's degree line.
var candidateLadder = []degreeRung{
	{DegreePhD, 5, regexp.MustCompile(`(?i)\b(?:phd|ph\.d|doctorate|doctoral)\b`)},
	{DegreeMasters, 4, regexp.MustCompile(`(?i)\b(?:master|ms|ma|mba|m\.s|m\.a)\b`)},
	{DegreeBachelors, 3, regexp.MustCompile(`(?i)\b(?:bachelor|bs|ba|bsc|b\.a|b\.s)\b`)},
	{DegreeAssociates, 2, regexp.MustCompile(`(?i)\b(?:associate|aas|aa|a\.a)\b`)},
	{DegreeHighSchool, 1, regexp.MustCompile(`(?i)\b(?:high school|diploma|ged)\b`)},
}

// DegreeLevel returns the numeric level of a canonical degree name, 0 when
// the name is not on the ladder.
func DegreeLevel(name string) int {
	for _, r := range requirementLadder {
		if r.name == name {
			return r.level
		}
	}
	return 0
}

// highestRequiredDegree returns the highest degree named anywhere in text.
func highestRequiredDegree(text string) (string, int) {
	for _, r := range requirementLadder {
		if r.pattern.MatchString(text) {
			return r.name, r.level
		}
	}
	return "", 0
}

// NormalizeDegree maps free text such as "BS in Computer Science" onto its
// canonical ladder name. Unrecognised text is returned trimmed.
func NormalizeDegree(text string) string {
	if name, _ := highestRequiredDegree(text); name != "" {
		return name
	}
	return strings.TrimSpace(text)
}

// ClassifyDegree returns the canonical name and level of one resume degree
// line, or "" and 0 when no rung matches.
func ClassifyDegree(degree string) (string, int) {
	for _, r := range candidateLadder {
		if r.pattern.MatchString(degree) {
			return r.name, r.level
		}
	}
	return "", 0
}

var (
	degreeFieldPrefixes = []string{
		"bachelor of", "master of", "doctor of", "bachelor's in", "master's in", "doctorate in",
		"bs in", "ba in", "ms in", "ma in", "phd in", "b.s. in", "b.a. in", "m.s. in", "m.a. in",
		"bachelor", "master", "doctorate", "associate",
	}

	degreeFieldFallback = regexp.MustCompile(`\b(?:in|of)\s+([^,;.]+)`)
)

// degreeField extracts the field of study from a degree line, lowercased.
func degreeField(degree string) string {
	lower := strings.ToLower(degree)
	if lower == "" {
		return ""
	}
	for _, prefix := range degreeFieldPrefixes {
		if _, rest, ok := strings.Cut(lower, prefix); ok {
			if rest = strings.TrimSpace(rest); rest != "" {
				return rest
			}
		}
	}
	if m := degreeFieldFallback.FindStringSubmatch(lower); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
