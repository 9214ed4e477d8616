package jobposting

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/searchfind/screening-engine/internal/resources"
	"github.com/searchfind/screening-engine/internal/types"
)

const (
	maxBenefits      = 10
	maxSkillsListed  = 15
	maxTitleWords    = 8
	maxLocationWords = 6
)

// Info is the factual summary pulled out of a posting. Fields the posting
// does not state are left empty.
type Info struct {
	JobTitle             string       `json:"job_title" yaml:"job_title"`
	CompanyName          string       `json:"company_name" yaml:"company_name"`
	Location             string       `json:"location" yaml:"location"`
	EmploymentType       string       `json:"employment_type,omitempty" yaml:"employment_type,omitempty"`
	WorkArrangement      string       `json:"work_arrangement,omitempty" yaml:"work_arrangement,omitempty"`
	YearsOfExperience    *int         `json:"years_of_experience,omitempty" yaml:"years_of_experience,omitempty"`
	EducationRequirement string       `json:"education_requirement,omitempty" yaml:"education_requirement,omitempty"`
	SalaryRange          *SalaryRange `json:"salary_range,omitempty" yaml:"salary_range,omitempty"`
	Benefits             []string     `json:"benefits" yaml:"benefits"`
	SkillsRequired       []string     `json:"skills_required" yaml:"skills_required"`
	Industry             string       `json:"industry" yaml:"industry"`
}

// SalaryRange holds the figures as written, without currency symbols.
type SalaryRange struct {
	Min string `json:"min" yaml:"min"`
	Max string `json:"max,omitempty" yaml:"max,omitempty"`
}

type labeled struct {
	label   string
	pattern *regexp.Regexp
}

func labeledPatterns(pairs ...string) []labeled {
	out := make([]labeled, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, labeled{label: pairs[i], pattern: regexp.MustCompile(pairs[i+1])})
	}
	return out
}

// firstLabel returns the label of the first pattern matching text.
func firstLabel(text string, patterns []labeled) string {
	for _, p := range patterns {
		if p.pattern.MatchString(text) {
			return p.label
		}
	}
	return ""
}

// Patterns below run against lowercased text.
var (
	employmentTypes = labeledPatterns(
		"Full-time", `\bfull[ -]time\b`,
		"Part-time", `\bpart[ -]time\b`,
		"Contract", `\bcontract\b`,
		"Freelance", `\bfreelance\b`,
		"Temporary", `\btemporary\b`,
		"Internship", `\binternship\b`,
		"Apprenticeship", `\bapprentice(?:ship)?\b`,
	)

	workArrangements = labeledPatterns(
		"Remote", `\bremote\b`,
		"In-office", `\bin[ -]office\b`,
		"On-site", `\bon[ -]site\b`,
		"Hybrid", `\bhybrid\b`,
		"Flexible", `\bflexible\b`,
	)

	educationLevels = labeledPatterns(
		"Bachelor's Degree", `\b(?:bachelor'?s?|bs|ba)\b`,
		"Master's Degree", `\b(?:master'?s?|ms|ma)\b`,
		"PhD/Doctorate", `\b(?:phd|doctorate)\b`,
		"MBA", `\bmba\b`,
		"High School", `\bhigh school\b`,
		"Associate's Degree", `\bassociate'?s?\b`,
	)

	benefitKinds = labeledPatterns(
		"health benefits", `health (?:insurance|care|benefits)`,
		"dental benefits", `dental (?:insurance|care|benefits)`,
		"vision benefits", `vision (?:insurance|care|benefits)`,
		"401k", `\b401k\b`,
		"retirement", `retirement\b`,
		"pension", `pension\b`,
		"paid time off", `paid (?:time off|vacation|holidays)`,
		"pto", `pto\b`,
		"flexible work", `flexible (?:work|hours|scheduling)`,
		"remote work", `remote work`,
		"work from home", `work from home`,
		"professional development", `professional development`,
		"tuition assistance", `tuition (?:reimbursement|assistance)`,
		"child care", `child care`,
		"parental leave", `parental leave`,
		"wellness program", `wellness program`,
		"gym membership", `gym membership`,
		"stock options", `stock options`,
		"equity", `equity`,
		"bonus", `bonus`,
		"relocation assistance", `relocation (?:assistance|package)`,
		"commuter benefits", `commuter benefits`,
	)

	// benefitContexts wrap each benefit pattern in the clause containing it.
	// A clause ends at punctuation or at the end of its line.
	benefitContexts = func() []*regexp.Regexp {
		out := make([]*regexp.Regexp, len(benefitKinds))
		for i, b := range benefitKinds {
			out[i] = regexp.MustCompile(`([^.;:\n]*)(?:` + b.pattern.String() + `)[^.;:\n]*(?:[.;:]|\n|\z)`)
		}
		return out
	}()

	yearsOfExperiencePattern = regexp.MustCompile(`(\d+)(?:\+|\s*-\s*\d+)?\s*(?:years?|yrs?)(?:\s+of)?\s+experience`)

	salaryPattern = regexp.MustCompile(`(?:salary|compensation)[^.]*?[$£€](\d{1,3}(?:,\d{3})*(?:\.\d+)?)[kK]?(?:\s*-\s*[$£€](\d{1,3}(?:,\d{3})*(?:\.\d+)?)[kK]?)?`)
)

// Patterns below run against the original text.
var (
	titleLabelPattern    = regexp.MustCompile(`(?im)^\s*(?:job title|position|title|role)\s*:\s*(.+?)\s*$`)
	companyLabelPattern  = regexp.MustCompile(`(?im)^\s*(?:company|employer|organization)\s*:\s*(.+?)\s*$`)
	locationLabelPattern = regexp.MustCompile(`(?im)^\s*(?:location|based in)\s*:\s*(.+?)\s*$`)
	aboutCompanyPattern  = regexp.MustCompile(`(?m)^\s*About\s+([A-Z][\w&.' -]*?)\s*:?\s*$`)
	locatedInPattern     = regexp.MustCompile(`\b(?:[Bb]ased|[Ll]ocated) in\s+([A-Z][a-zA-Z]+(?:[ -][A-Z][a-zA-Z]+)*(?:,\s*[A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*)?)`)
	titleAtCompany       = regexp.MustCompile(`^(.+?)\s+(?:at|@)\s+(.+)$`)
	lineEndsSentence     = regexp.MustCompile(`[.!?:,;]$`)
)

// notCompanyNames are "About ..." headings that introduce something other
// than the employer.
var notCompanyNames = map[string]bool{
	"us": true, "you": true, "the role": true, "the team": true, "the job": true,
	"the position": true, "the company": true, "this role": true, "this position": true,
}

func (a *Analyzer) extractInfo(text string, doc *types.ProcessedDocument) Info {
	lower := strings.ToLower(text)
	info := Info{
		EmploymentType:       firstLabel(lower, employmentTypes),
		WorkArrangement:      firstLabel(lower, workArrangements),
		EducationRequirement: firstLabel(lower, educationLevels),
		Benefits:             extractBenefits(lower),
		SkillsRequired:       []string{},
		Industry:             resources.IndustryForText(text),
	}
	info.JobTitle, info.CompanyName = extractTitleAndCompany(text)
	info.Location = extractLocation(text)

	for _, m := range yearsOfExperiencePattern.FindAllStringSubmatch(lower, -1) {
		years, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if info.YearsOfExperience == nil || years < *info.YearsOfExperience {
			y := years
			info.YearsOfExperience = &y
		}
	}

	if m := salaryPattern.FindStringSubmatch(lower); m != nil {
		info.SalaryRange = &SalaryRange{Min: m[1], Max: m[2]}
	}

	if doc != nil {
		skills := doc.ExtractedSkills
		if len(skills) > maxSkillsListed {
			skills = skills[:maxSkillsListed]
		}
		info.SkillsRequired = append(info.SkillsRequired, skills...)
	}
	return info
}

// extractBenefits returns the clause mentioning each recognised benefit.
func extractBenefits(lower string) []string {
	out := []string{}
	seen := map[string]bool{}
	for i, b := range benefitKinds {
		if !b.pattern.MatchString(lower) {
			continue
		}
		entry := b.label
		if m := strings.Trim(benefitContexts[i].FindString(lower), " \t\r\n-*•"); m != "" {
			entry = m
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		out = append(out, entry)
		if len(out) == maxBenefits {
			break
		}
	}
	return out
}

// extractTitleAndCompany prefers labelled lines ("Job Title: ...") and
// otherwise reads a short opening line such as "Data Analyst at Globex".
func extractTitleAndCompany(text string) (title, company string) {
	if m := titleLabelPattern.FindStringSubmatch(text); m != nil {
		title = m[1]
	}
	if m := companyLabelPattern.FindStringSubmatch(text); m != nil {
		company = m[1]
	}

	if title == "" {
		if line := firstLine(text); isTitleLine(line) {
			if m := titleAtCompany.FindStringSubmatch(line); m != nil {
				title = m[1]
				if company == "" {
					company = m[2]
				}
			} else {
				title = line
			}
		}
	}

	if company == "" {
		for _, m := range aboutCompanyPattern.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			lname := strings.ToLower(name)
			if notCompanyNames[lname] || strings.HasPrefix(lname, "our ") || strings.HasPrefix(lname, "the ") {
				continue
			}
			company = name
			break
		}
	}
	return title, company
}

func extractLocation(text string) string {
	if m := locationLabelPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := locatedInPattern.FindStringSubmatch(text); m != nil {
		words := strings.Fields(m[1])
		if len(words) > maxLocationWords {
			words = words[:maxLocationWords]
		}
		return strings.Join(words, " ")
	}
	return ""
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// isTitleLine reports whether line looks like a heading naming the job
// rather than a sentence or a section heading.
func isTitleLine(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > maxTitleWords || lineEndsSentence.MatchString(line) {
		return false
	}
	lower := strings.ToLower(line)
	for _, secs := range sectionPatterns {
		for _, re := range secs.patterns {
			if loc := re.FindStringIndex(lower); loc != nil && loc[0] == 0 {
				return false
			}
		}
	}
	return true
}
