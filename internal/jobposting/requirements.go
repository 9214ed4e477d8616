package jobposting

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/searchfind/screening-engine/internal/scoring"
)

// Requirement kinds.
const (
	KindMustHave    = "Must Have"
	KindNiceToHave  = "Nice to Have"
	KindUnspecified = "Unspecified"
)

// Education requirement statuses.
const (
	StatusRequired    = "Required"
	StatusPreferred   = "Preferred"
	StatusUnspecified = "Unspecified"
)

const (
	maxMustHaveListed     = 7
	maxNiceToHaveListed   = 5
	maxUnclassifiedListed = 3
	excessiveRequirements = 15
)

// RequirementsAnalysis classifies the stated requirements and grades how
// clear and reasonable they are.
type RequirementsAnalysis struct {
	RequirementsPresent bool                   `json:"requirements_present" yaml:"requirements_present"`
	HasMustHave         bool                   `json:"has_must_have" yaml:"has_must_have"`
	HasNiceToHave       bool                   `json:"has_nice_to_have" yaml:"has_nice_to_have"`
	MustHaveCount       int                    `json:"must_have_count" yaml:"must_have_count"`
	NiceToHaveCount     int                    `json:"nice_to_have_count" yaml:"nice_to_have_count"`
	MustHave            []string               `json:"must_have_requirements" yaml:"must_have_requirements"`
	NiceToHave          []string               `json:"nice_to_have_requirements" yaml:"nice_to_have_requirements"`
	Unclassified        []string               `json:"unclassified_requirements" yaml:"unclassified_requirements"`
	Excessive           bool                   `json:"excessive_requirements" yaml:"excessive_requirements"`
	YearsOfExperience   []YearsRequirement     `json:"years_experience_requirements" yaml:"years_experience_requirements"`
	Education           []EducationRequirement `json:"education_requirements" yaml:"education_requirements"`
	Ambiguous           []AmbiguousRequirement `json:"ambiguous_requirements" yaml:"ambiguous_requirements"`
	Score               int                    `json:"requirements_score" yaml:"requirements_score"`
	Evaluation          string                 `json:"evaluation" yaml:"evaluation"`
}

// YearsRequirement is a stated minimum of experience.
type YearsRequirement struct {
	Years    int    `json:"years" yaml:"years"`
	Area     string `json:"area" yaml:"area"`
	Kind     string `json:"type" yaml:"type"`
	FullText string `json:"full_text" yaml:"full_text"`
}

// EducationRequirement is a stated degree requirement.
type EducationRequirement struct {
	Level    string `json:"level" yaml:"level"`
	Field    string `json:"field" yaml:"field"`
	Status   string `json:"status" yaml:"status"`
	Kind     string `json:"type" yaml:"type"`
	FullText string `json:"full_text" yaml:"full_text"`
}

// AmbiguousRequirement is a requirement worded with a vague qualifier.
type AmbiguousRequirement struct {
	Text string `json:"text" yaml:"text"`
	Term string `json:"ambiguous_term" yaml:"ambiguous_term"`
	Kind string `json:"type" yaml:"type"`
}

var (
	requirementPhrases = []string{"required", "must have", "essential", "necessary", "needed", "minimum"}
	optionalPhrases    = []string{"preferred", "nice to have", "bonus", "desirable", "plus", "advantageous"}

	requirementHeaders = compileAll(
		`(?i)(?:requirements|qualifications|what you'll need|who we're looking for)[^\n]*`,
		`(?i)(?:you should have|you must have|you need to have|we require)[^\n]*`,
	)

	phrasePatterns = func() []*regexp.Regexp {
		out := make([]*regexp.Regexp, 0, len(requirementPhrases)+len(optionalPhrases))
		for _, p := range append(append([]string{}, requirementPhrases...), optionalPhrases...) {
			out = append(out, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(p)))
		}
		return out
	}()

	softRequirementClue = regexp.MustCompile(`(?i)\b(?:should|ideally|typically|usually|generally)\b`)
	hardRequirementClue = regexp.MustCompile(`(?i)\b(?:must|required|essential|need|demonstrate|able to|ability to)\b`)

	yearsRequirementPattern = regexp.MustCompile(`(?i)(\d+)(?:\+|\s*-\s*\d+)?\s*(?:years?|yrs?)(?:\s+of)?\s+experience`)
	experienceArea          = regexp.MustCompile(`(?i)experience(?:\s+(?:in|with))?\s+([^.,;]+)`)

	requirementEducation = func() []labeled {
		out := make([]labeled, len(educationLevels))
		for i, l := range educationLevels {
			out[i] = labeled{label: l.label, pattern: regexp.MustCompile(`(?i)` + l.pattern.String())}
		}
		return out
	}()
	educationRequired  = regexp.MustCompile(`(?i)\b(?:must|required|need)\b`)
	educationPreferred = regexp.MustCompile(`(?i)\b(?:preferred|desirable|ideal)\b`)
	educationField     = regexp.MustCompile(`(?i)\b(?:in|with)\s+([^.,;]+)`)

	ambiguousTerms = compileAll(
		`(?i)\b(?:familiar with|knowledge of|understanding of|background in)\b`,
		`(?i)\b(?:strong|excellent|exceptional|outstanding|superior)\b`,
		`(?i)\b(?:effective|solid|good)\b`,
	)
)

func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// classifyRequirement sorts one requirement by its explicit wording, then by
// softer contextual clues. It returns KindUnspecified when neither applies.
func classifyRequirement(req string) string {
	switch {
	case containsAny(req, requirementPhrases):
		return KindMustHave
	case containsAny(req, optionalPhrases):
		return KindNiceToHave
	case softRequirementClue.MatchString(req):
		return KindNiceToHave
	case hardRequirementClue.MatchString(req):
		return KindMustHave
	}
	return KindUnspecified
}

// requirementsText returns the requirements section, or failing that the
// sentences around every requirement phrase in the posting.
func requirementsText(text string) string {
	if body := sectionBody(text, requirementHeaders...); body != "" {
		return body
	}
	var found []string
	seen := map[string]bool{}
	for _, re := range phrasePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if ctx := contextAround(text, loc[0], loc[1]); ctx != "" && !seen[ctx] {
				seen[ctx] = true
				found = append(found, ctx)
			}
		}
	}
	return strings.Join(found, "\n")
}

type classified struct {
	text string
	kind string
}

func analyzeRequirements(text string) RequirementsAnalysis {
	r := RequirementsAnalysis{
		MustHave:          []string{},
		NiceToHave:        []string{},
		Unclassified:      []string{},
		YearsOfExperience: []YearsRequirement{},
		Education:         []EducationRequirement{},
		Ambiguous:         []AmbiguousRequirement{},
	}

	section := requirementsText(text)
	if section == "" {
		r.Evaluation = "No clear requirements section found in the job posting"
		return r
	}
	r.RequirementsPresent = true

	items, _ := listItems(section)
	var must, nice, unspecified []string
	for _, item := range items {
		switch classifyRequirement(item) {
		case KindMustHave:
			must = append(must, item)
		case KindNiceToHave:
			nice = append(nice, item)
		default:
			unspecified = append(unspecified, item)
		}
	}

	// Without any stated nice-to-haves, unclassified items are taken as
	// nice-to-haves when must-haves are marked, and split in half otherwise.
	if len(nice) == 0 && len(unspecified) > 0 {
		if len(must) > 0 {
			nice = unspecified
		} else {
			half := len(unspecified) / 2
			must, nice = unspecified[:half], unspecified[half:]
		}
		unspecified = nil
	}

	r.HasMustHave, r.HasNiceToHave = len(must) > 0, len(nice) > 0
	r.MustHaveCount, r.NiceToHaveCount = len(must), len(nice)
	r.MustHave = append(r.MustHave, must[:min(len(must), maxMustHaveListed)]...)
	r.NiceToHave = append(r.NiceToHave, nice[:min(len(nice), maxNiceToHaveListed)]...)
	r.Unclassified = append(r.Unclassified, unspecified[:min(len(unspecified), maxUnclassifiedListed)]...)

	total := len(must) + len(nice) + len(unspecified)
	r.Excessive = total > excessiveRequirements

	var all []classified
	for _, group := range []struct {
		items []string
		kind  string
	}{{must, KindMustHave}, {nice, KindNiceToHave}, {unspecified, KindUnspecified}} {
		for _, item := range group.items {
			all = append(all, classified{item, group.kind})
		}
	}

	for _, req := range all {
		r.YearsOfExperience = append(r.YearsOfExperience, yearsRequirements(req)...)
		if edu, ok := educationRequirement(req); ok {
			r.Education = append(r.Education, edu)
		}
	}

	seen := map[string]bool{}
	for _, req := range all {
		if req.kind == KindUnspecified || seen[req.text] {
			continue
		}
		for _, re := range ambiguousTerms {
			if term := re.FindString(req.text); term != "" {
				seen[req.text] = true
				r.Ambiguous = append(r.Ambiguous, AmbiguousRequirement{Text: req.text, Term: term, Kind: req.kind})
				break
			}
		}
	}

	r.Score = scoring.ClampInt(r.score(total))
	switch {
	case r.Score >= 85:
		r.Evaluation = "Excellent requirements section with clear must-have vs. nice-to-have distinction and reasonable expectations"
	case r.Score >= 70:
		r.Evaluation = "Good requirements section with reasonable expectations"
	case r.Score >= 50:
		r.Evaluation = "Adequate requirements section but could use more clarity"
	default:
		r.Evaluation = "Poor requirements section with unclear expectations or potential barriers"
	}
	return r
}

func yearsRequirements(req classified) []YearsRequirement {
	var out []YearsRequirement
	for _, m := range yearsRequirementPattern.FindAllStringSubmatchIndex(req.text, -1) {
		years, err := strconv.Atoi(req.text[m[2]:m[3]])
		if err != nil {
			continue
		}
		area := "Unspecified area"
		if am := experienceArea.FindStringSubmatch(req.text[m[3]:]); am != nil {
			area = strings.TrimSpace(am[1])
		}
		out = append(out, YearsRequirement{Years: years, Area: area, Kind: req.kind, FullText: req.text})
	}
	return out
}

// educationRequirement reports the first degree level req mentions.
func educationRequirement(req classified) (EducationRequirement, bool) {
	level := firstLabel(req.text, requirementEducation)
	if level == "" {
		return EducationRequirement{}, false
	}
	edu := EducationRequirement{
		Level:    level,
		Field:    "Unspecified field",
		Status:   StatusUnspecified,
		Kind:     req.kind,
		FullText: req.text,
	}
	switch {
	case educationRequired.MatchString(req.text):
		edu.Status = StatusRequired
	case educationPreferred.MatchString(req.text):
		edu.Status = StatusPreferred
	}
	if m := educationField.FindStringSubmatch(req.text); m != nil {
		edu.Field = strings.TrimSpace(m[1])
	}
	return edu, true
}

func (r RequirementsAnalysis) score(total int) int {
	score := 0
	switch {
	case r.HasMustHave && r.HasNiceToHave:
		score += 30
	case r.HasMustHave || r.HasNiceToHave:
		score += 15
	}

	switch n := r.MustHaveCount; {
	case n >= 5 && n <= 10:
		score += 25
	case n >= 3 && n < 5, n > 10 && n <= 15:
		score += 15
	case n > 0:
		score += 5
	}

	if r.Excessive {
		score -= 15
	}

	ratio := 0.0
	if total > 0 {
		ratio = float64(len(r.Unclassified)+len(r.Ambiguous)) / float64(total)
	}
	switch {
	case ratio <= 0.1:
		score += 25
	case ratio <= 0.25:
		score += 15
	case ratio <= 0.5:
		score += 5
	}

	if len(r.YearsOfExperience) > 0 {
		most := 0
		for _, y := range r.YearsOfExperience {
			most = max(most, y.Years)
		}
		switch {
		case most <= 5:
			score += 10
		case most <= 8:
			score += 5
		default:
			score -= 5
		}
	}

	if len(r.Education) == 0 {
		score += 15
	} else {
		required, lowBarrier := false, false
		for _, e := range r.Education {
			if e.Status != StatusRequired {
				continue
			}
			required = true
			if e.Level == "High School" || e.Level == "Associate's Degree" {
				lowBarrier = true
			}
		}
		switch {
		case !required:
			score += 10
		case lowBarrier:
			score += 5
		}
	}
	return score
}
