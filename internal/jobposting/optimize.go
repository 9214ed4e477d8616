package jobposting

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	noChangesRationale = "No changes needed"
	movedToPreferred   = " (Moved to preferred qualifications to be more inclusive)"
	equivalentPractice = "or equivalent practical experience"
)

// RequirementChange pairs a requirement with its rewrite.
type RequirementChange struct {
	Original  string `json:"original" yaml:"original"`
	Optimized string `json:"optimized" yaml:"optimized"`
	Rationale string `json:"rationale" yaml:"rationale"`
}

// Explanations summarise what the optimizer changed and why.
type Explanations struct {
	StructureChanges        string              `json:"structure_changes" yaml:"structure_changes"`
	LanguageChanges         string              `json:"language_changes" yaml:"language_changes"`
	InclusivityImprovements string              `json:"inclusivity_improvements" yaml:"inclusivity_improvements"`
	SpecificChanges         []RequirementChange `json:"specific_changes" yaml:"specific_changes"`
}

// OptimizedRequirements is a requirements section rewritten as separate
// required and preferred lists in Markdown.
type OptimizedRequirements struct {
	Text            string              `json:"optimized_requirements" yaml:"optimized_requirements"`
	MustHave        []RequirementChange `json:"must_have" yaml:"must_have"`
	NiceToHave      []RequirementChange `json:"nice_to_have" yaml:"nice_to_have"`
	MustHaveCount   int                 `json:"must_have_count" yaml:"must_have_count"`
	NiceToHaveCount int                 `json:"nice_to_have_count" yaml:"nice_to_have_count"`
	Explanations    Explanations        `json:"explanations" yaml:"explanations"`
}

var (
	optionalClue       = regexp.MustCompile(`(?i)\b(?:ideally|plus|bonus|helpful|preferred)\b`)
	mandatoryClue      = regexp.MustCompile(`(?i)\b(?:must|required|essential|needs?)\b`)
	yearsMention       = regexp.MustCompile(`(?i)\b\d+\+?\s*(?:years?|yrs?)\b`)
	degreeMention      = regexp.MustCompile(`(?i)\b(?:degree|bachelor|master|phd)\b`)
	skillAfterYears    = regexp.MustCompile(`(?i)(?:in|with)\s+([^.,;]+)`)
	doubledPreposition = regexp.MustCompile(`(?i)\bwith\s+(?:with|in)\b`)

	degreeRewrites = []struct {
		pattern *regexp.Regexp
		base    string
	}{
		{regexp.MustCompile(`(?i)\b(?:bachelor'?s?|bs|ba)\s+(?:degree\s+)?(?:in|with)\s+([^.,;]+)`), "Bachelor's degree in"},
		{regexp.MustCompile(`(?i)\b(?:master'?s?|ms|ma)\s+(?:degree\s+)?(?:in|with)\s+([^.,;]+)`), "Master's degree in"},
		{regexp.MustCompile(`(?i)\b(?:phd|doctorate)\s+(?:in|with)\s+([^.,;]+)`), "PhD in"},
	}

	qualifierRewrites = []struct {
		term        string
		pattern     *regexp.Regexp
		replacement string
	}{
		{"familiar with", regexp.MustCompile(`(?i)\bfamiliar with\b`), "experience using"},
		{"knowledge of", regexp.MustCompile(`(?i)\bknowledge of\b`), "experience with"},
		{"understanding of", regexp.MustCompile(`(?i)\bunderstanding of\b`), "experience applying"},
		{"strong", regexp.MustCompile(`(?i)\bstrong\b`), "demonstrated"},
		{"excellent", regexp.MustCompile(`(?i)\bexcellent\b`), "proven"},
		{"outstanding", regexp.MustCompile(`(?i)\boutstanding\b`), "effective"},
	}

	actionPrefixes  = []string{"Experience", "Ability", "Knowledge", "Skills", "Proficient"}
	existingActions = compileAll(`(?i)\bexperience with\b`, `(?i)\bability to\b`, `(?i)\bproficiency in\b`)
	practiceVerbs   = regexp.MustCompile(`(?i)\b(?:using|developing|managing|creating|designing|implementing)\b`)
	abilityVerbs    = regexp.MustCompile(`(?i)\b(?:communicate|collaborate|work|solve|analyze|lead|present)\b`)
)

// OptimizeRequirements rewrites a requirements section to be more specific
// and inclusive. Each requirement is classified as required or preferred;
// unmarked experience and degree requirements become preferred.
func (a *Analyzer) OptimizeRequirements(ctx context.Context, text string) (result *OptimizedRequirements, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("requirements optimization panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			result, err = nil, &AnalysisError{Message: msgOptimizerFailure, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Message: msgNoRequirements}
	}

	result = &OptimizedRequirements{
		MustHave:   []RequirementChange{},
		NiceToHave: []RequirementChange{},
		Explanations: Explanations{
			StructureChanges:        "Requirements have been organized into 'Required' and 'Preferred' sections for clarity",
			LanguageChanges:         "Ambiguous language has been replaced with more specific, measurable criteria",
			InclusivityImprovements: "Barriers to entry have been reduced by moving some requirements to the 'Preferred' section",
			SpecificChanges:         []RequirementChange{},
		},
	}

	items, _ := listItems(text)
	for _, req := range items {
		optimized, rationale := optimizeRequirement(req)
		change := RequirementChange{Original: req, Optimized: optimized, Rationale: rationale}
		switch {
		case containsAny(req, optionalPhrases) || optionalClue.MatchString(req):
			result.NiceToHave = append(result.NiceToHave, change)
		case containsAny(req, requirementPhrases) || mandatoryClue.MatchString(req):
			result.MustHave = append(result.MustHave, change)
		case yearsMention.MatchString(req) || degreeMention.MatchString(req):
			change.Rationale += movedToPreferred
			result.NiceToHave = append(result.NiceToHave, change)
		default:
			result.MustHave = append(result.MustHave, change)
		}
	}
	result.MustHaveCount = len(result.MustHave)
	result.NiceToHaveCount = len(result.NiceToHave)

	var b strings.Builder
	b.WriteString("## Required Qualifications\n\n")
	for _, c := range result.MustHave {
		fmt.Fprintf(&b, "- %s\n", c.Optimized)
	}
	b.WriteString("\n## Preferred Qualifications\n\n")
	for _, c := range result.NiceToHave {
		fmt.Fprintf(&b, "- %s\n", c.Optimized)
	}
	result.Text = b.String()

	for _, c := range append(append([]RequirementChange{}, result.MustHave...), result.NiceToHave...) {
		if c.Original != c.Optimized {
			result.Explanations.SpecificChanges = append(result.Explanations.SpecificChanges, c)
		}
	}

	a.logger.Debug("requirements optimized", map[string]interface{}{
		"must_have":    result.MustHaveCount,
		"nice_to_have": result.NiceToHaveCount,
		"changed":      len(result.Explanations.SpecificChanges),
	})
	return result, nil
}

// optimizeRequirement rewrites one requirement and explains each change.
func optimizeRequirement(req string) (string, string) {
	original := req
	var rationale []string

	if m := yearsRequirementPattern.FindStringSubmatchIndex(req); m != nil {
		matched := req[m[0]:m[1]]
		years, _ := strconv.Atoi(req[m[2]:m[3]])
		switch {
		case years > 5:
			replacement := "experience with"
			if years > 8 {
				replacement = "significant experience with"
			}
			req = doubledPreposition.ReplaceAllString(strings.ReplaceAll(req, matched, replacement), "with")
			rationale = append(rationale, fmt.Sprintf("Removed specific years requirement (%d years) to focus on actual skills and avoid excluding qualified candidates", years))
		case years >= 3:
			if skillAfterYears.MatchString(req[m[1]:]) {
				req = strings.ReplaceAll(req, matched, "proven experience")
				rationale = append(rationale, fmt.Sprintf("Changed '%s' to 'proven experience' to focus on demonstrated ability rather than time", matched))
			}
		}
	}

	if !strings.Contains(strings.ToLower(req), equivalentPractice) {
		for _, d := range degreeRewrites {
			m := d.pattern.FindStringSubmatch(req)
			if m == nil {
				continue
			}
			if field := strings.TrimSpace(m[1]); field != "" {
				req = d.pattern.ReplaceAllLiteralString(req, d.base+" "+field+" "+equivalentPractice)
				rationale = append(rationale, "Added '"+equivalentPractice+"' to education requirement to be more inclusive")
				break
			}
		}
	}

	for _, q := range qualifierRewrites {
		if q.pattern.MatchString(req) {
			req = q.pattern.ReplaceAllLiteralString(req, q.replacement)
			rationale = append(rationale, fmt.Sprintf("Replaced ambiguous term '%s' with more specific '%s'", q.term, q.replacement))
		}
	}

	if !hasActionPrefix(req) && !anyMatch(req, existingActions) {
		switch {
		case practiceVerbs.MatchString(req):
			req = "Experience with " + lowerFirst(req)
			rationale = append(rationale, "Reformatted to start with action-oriented 'Experience with' for consistency")
		case abilityVerbs.MatchString(req):
			req = "Ability to " + lowerFirst(req)
			rationale = append(rationale, "Reformatted to start with action-oriented 'Ability to' for consistency")
		}
	}

	if req == original {
		return req, noChangesRationale
	}
	return req, strings.Join(rationale, "; ")
}

func hasActionPrefix(req string) bool {
	trimmed := strings.TrimSpace(req)
	for _, p := range actionPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
