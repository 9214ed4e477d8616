package jobposting

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/searchfind/screening-engine/internal/resources"
	"github.com/searchfind/screening-engine/internal/scoring"
)

const (
	maxSpecificResponsibilities = 5
	maxSellingPoints            = 5
	maxBenefitSellingPoints     = 3
	sellingPointBonus           = 3
	maxSellingPointBonus        = 15
	maxSpecificityPoints        = 40
)

// TitleAnalysis grades the job title for specificity and searchability.
type TitleAnalysis struct {
	IsPresent        bool   `json:"is_present" yaml:"is_present"`
	Specificity      string `json:"specificity,omitempty" yaml:"specificity,omitempty"`
	IndustryStandard bool   `json:"industry_standard" yaml:"industry_standard"`
	SeniorityLevel   string `json:"seniority_level,omitempty" yaml:"seniority_level,omitempty"`
	Searchability    string `json:"searchability,omitempty" yaml:"searchability,omitempty"`
	Score            int    `json:"score" yaml:"score"`
	Evaluation       string `json:"evaluation,omitempty" yaml:"evaluation,omitempty"`
}

// CompanyDescription grades the "about us" part of a posting.
type CompanyDescription struct {
	IsPresent       bool   `json:"is_present" yaml:"is_present"`
	WordCount       int    `json:"word_count" yaml:"word_count"`
	MentionsValues  bool   `json:"mentions_values" yaml:"mentions_values"`
	MentionsCulture bool   `json:"mentions_culture" yaml:"mentions_culture"`
	MentionsMission bool   `json:"mentions_mission" yaml:"mentions_mission"`
	MentionsGrowth  bool   `json:"mentions_growth" yaml:"mentions_growth"`
	Score           int    `json:"score" yaml:"score"`
	Evaluation      string `json:"evaluation" yaml:"evaluation"`
}

// RoleDescription grades the overview of the role itself.
type RoleDescription struct {
	IsPresent      bool   `json:"is_present" yaml:"is_present"`
	WordCount      int    `json:"word_count" yaml:"word_count"`
	DescribesRole  bool   `json:"describes_role" yaml:"describes_role"`
	MentionsTeam   bool   `json:"mentions_team" yaml:"mentions_team"`
	MentionsImpact bool   `json:"mentions_impact" yaml:"mentions_impact"`
	Score          int    `json:"score" yaml:"score"`
	Evaluation     string `json:"evaluation" yaml:"evaluation"`
}

// ResponsibilitiesAnalysis grades the list of duties.
type ResponsibilitiesAnalysis struct {
	IsPresent                bool     `json:"is_present" yaml:"is_present"`
	WordCount                int      `json:"word_count" yaml:"word_count"`
	HasBulletPoints          bool     `json:"has_bullet_points" yaml:"has_bullet_points"`
	ResponsibilityCount      int      `json:"responsibility_count" yaml:"responsibility_count"`
	SpecificResponsibilities []string `json:"specific_responsibilities" yaml:"specific_responsibilities"`
	Score                    int      `json:"score" yaml:"score"`
	Evaluation               string   `json:"evaluation" yaml:"evaluation"`
}

// ContentAnalysis combines the per-part content grades.
type ContentAnalysis struct {
	Title               TitleAnalysis            `json:"title_analysis" yaml:"title_analysis"`
	CompanyDescription  CompanyDescription       `json:"company_description_analysis" yaml:"company_description_analysis"`
	JobDescription      RoleDescription          `json:"job_description_analysis" yaml:"job_description_analysis"`
	Responsibilities    ResponsibilitiesAnalysis `json:"responsibilities_analysis" yaml:"responsibilities_analysis"`
	UniqueSellingPoints []string                 `json:"unique_selling_points" yaml:"unique_selling_points"`
	Score               int                      `json:"content_score" yaml:"content_score"`
	Evaluation          string                   `json:"evaluation" yaml:"evaluation"`
}

var (
	seniorityLevels = []string{"junior", "senior", "lead", "principal", "staff", "head", "chief", "director", "vp", "manager"}

	specializationTerms = func() []*regexp.Regexp {
		terms := []string{"frontend", "backend", "full stack", "devops", "data", "machine learning", "ai", "mobile", "web"}
		out := make([]*regexp.Regexp, len(terms))
		for i, t := range terms {
			out[i] = resources.WordPattern(t)
		}
		return out
	}()

	// titleTechPatterns match technical skills in a title. Single-letter
	// names such as "C" and "R" are skipped.
	titleTechPatterns = func() []*regexp.Regexp {
		var out []*regexp.Regexp
		for _, skills := range resources.TechnicalSkills {
			for _, s := range skills {
				if utf8.RuneCountInString(s) > 1 {
					out = append(out, resources.WordPattern(s))
				}
			}
		}
		return out
	}()

	standardTitles = []string{
		"software engineer", "software developer", "web developer", "data scientist",
		"data analyst", "product manager", "project manager", "ux designer",
		"ui designer", "devops engineer", "systems administrator", "network engineer",
		"database administrator", "security engineer", "qa engineer", "test engineer",
	}
)

func analyzeTitle(title string) TitleAnalysis {
	if strings.TrimSpace(title) == "" {
		return TitleAnalysis{Evaluation: "Job title not found in the posting"}
	}
	t := TitleAnalysis{
		IsPresent:      true,
		Specificity:    "Low",
		SeniorityLevel: "Not specified",
		Searchability:  "Low",
	}
	lower := strings.ToLower(title)
	words := len(strings.Fields(title))

	score := 0
	if words >= 2 && words <= 5 {
		score += 20
	}
	for _, level := range seniorityLevels {
		if strings.Contains(lower, level) {
			t.SeniorityLevel = strings.ToUpper(level[:1]) + level[1:]
			score += 20
			break
		}
	}

	switch {
	case anyMatch(title, titleTechPatterns) || anyMatch(title, specializationTerms):
		t.Specificity = "High"
		score += 30
	case words >= 3:
		t.Specificity = "Medium"
		score += 15
	}

	for _, standard := range standardTitles {
		if strings.Contains(lower, standard) {
			t.IndustryStandard = true
			score += 30
			break
		}
	}

	switch {
	case score >= 70:
		t.Searchability = "High"
	case score >= 40:
		t.Searchability = "Medium"
	}
	t.Score = min(scoring.MaxScore, score)
	return t
}

var (
	companyHeaders = compileAll(
		`(?i)(?:about (?:us|our company|our team|the company)|company overview|who we are)[^\n]*`,
		`(?i)(?:we are|we're|our company is)[^\n]*`,
	)
	roleHeaders = compileAll(
		`(?i)(?:job (?:description|summary)|role overview|position (?:description|summary|overview))[^\n]*`,
		`(?i)(?:the role|this position|this role|the job)[^\n]*`,
	)
	responsibilityHeaders = compileAll(
		`(?i)(?:responsibilities|duties|what you'll do|day[ -]to[ -]day|key activities)[^\n]*`,
		`(?i)(?:you will be responsible for|you'll be responsible for|your responsibilities will include)[^\n]*`,
	)

	companyValues  = regexp.MustCompile(`(?i)\b(?:values|value|believe|principles)\b`)
	companyCulture = regexp.MustCompile(`(?i)\b(?:culture|environment|team|colleagues|work\s+life)\b`)
	companyMission = regexp.MustCompile(`(?i)\b(?:mission|vision|purpose|goal|aim|strive)\b`)
	companyGrowth  = regexp.MustCompile(`(?i)\b(?:grow|growing|growth|expand|expanding|expansion|scale|scaling)\b`)

	roleDuties = regexp.MustCompile(`(?i)\b(?:you will|you'll|responsible for|role involves|role includes|position involves|position includes)\b`)
	roleTeam   = regexp.MustCompile(`(?i)\b(?:team|collaborate|work with|report to|manager|director|lead)\b`)
	roleImpact = regexp.MustCompile(`(?i)\b(?:impact|influence|contribute|help|improve|create|build|develop|deliver)\b`)

	specificVerbs = regexp.MustCompile(`(?i)\b(?:design|develop|implement|create|manage|lead|analyze|build|maintain|test|deploy)\b`)
	outcomeVerbs  = regexp.MustCompile(`(?i)\b(?:improve|increase|reduce|enhance|optimize|ensure)\b`)
)

// lengthPoints awards points for the first threshold words reaches.
func lengthPoints(words int, thresholds []int, points []int) int {
	for i, t := range thresholds {
		if words >= t {
			return points[i]
		}
	}
	return 0
}

func analyzeCompanyDescription(text string) CompanyDescription {
	body := sectionBody(text, companyHeaders...)
	if body == "" {
		return CompanyDescription{Evaluation: "Company description not found in the posting"}
	}
	c := CompanyDescription{IsPresent: true, WordCount: len(strings.Fields(body))}
	score := lengthPoints(c.WordCount, []int{100, 50, 25}, []int{30, 15, 5})
	if companyValues.MatchString(body) {
		c.MentionsValues = true
		score += 15
	}
	if companyCulture.MatchString(body) {
		c.MentionsCulture = true
		score += 15
	}
	if companyMission.MatchString(body) {
		c.MentionsMission = true
		score += 20
	}
	if companyGrowth.MatchString(body) {
		c.MentionsGrowth = true
		score += 20
	}
	c.Score = min(scoring.MaxScore, score)

	switch {
	case c.Score >= 80:
		c.Evaluation = "Excellent company description with mission, values, and culture"
	case c.Score >= 60:
		c.Evaluation = "Good company description that covers most key elements"
	case c.Score >= 40:
		c.Evaluation = "Adequate company description but missing some important elements"
	default:
		c.Evaluation = "Basic company description that needs more detail"
	}
	return c
}

func analyzeRoleDescription(text string) RoleDescription {
	body := sectionBody(text, roleHeaders...)
	if body == "" {
		return RoleDescription{Evaluation: "Job description not found in the posting"}
	}
	r := RoleDescription{IsPresent: true, WordCount: len(strings.Fields(body))}
	score := lengthPoints(r.WordCount, []int{100, 50, 25}, []int{25, 15, 5})
	if roleDuties.MatchString(body) {
		r.DescribesRole = true
		score += 25
	}
	if roleTeam.MatchString(body) {
		r.MentionsTeam = true
		score += 25
	}
	if roleImpact.MatchString(body) {
		r.MentionsImpact = true
		score += 25
	}
	r.Score = min(scoring.MaxScore, score)

	switch {
	case r.Score >= 80:
		r.Evaluation = "Excellent job description that clearly explains the role, team, and impact"
	case r.Score >= 60:
		r.Evaluation = "Good job description that covers most key elements"
	case r.Score >= 40:
		r.Evaluation = "Adequate job description but missing some important context"
	default:
		r.Evaluation = "Basic job description that needs more detail"
	}
	return r
}

func analyzeResponsibilities(text string) ResponsibilitiesAnalysis {
	body := sectionBody(text, responsibilityHeaders...)
	if body == "" {
		return ResponsibilitiesAnalysis{
			SpecificResponsibilities: []string{},
			Evaluation:               "Responsibilities section not found in the posting",
		}
	}
	r := ResponsibilitiesAnalysis{IsPresent: true, WordCount: len(strings.Fields(body))}

	items, bulleted := listItems(body)
	r.HasBulletPoints = bulleted
	r.ResponsibilityCount = len(items)
	r.SpecificResponsibilities = items[:min(len(items), maxSpecificResponsibilities)]
	if r.SpecificResponsibilities == nil {
		r.SpecificResponsibilities = []string{}
	}

	score := 0
	if len(items) > 0 {
		if bulleted {
			score += lengthPoints(len(items), []int{5, 3, 1}, []int{40, 25, 10})
		} else {
			score += lengthPoints(len(items), []int{5, 3, 1}, []int{25, 15, 5})
		}
	}

	specificity := 0
	for _, item := range r.SpecificResponsibilities {
		if specificVerbs.MatchString(item) {
			specificity += 5
		}
		if outcomeVerbs.MatchString(item) {
			specificity += 5
		}
	}
	score += min(maxSpecificityPoints, specificity)
	score += lengthPoints(r.WordCount, []int{150, 75}, []int{20, 10})
	r.Score = min(scoring.MaxScore, score)

	switch {
	case r.Score >= 80:
		r.Evaluation = "Excellent responsibilities section with specific, actionable items"
	case r.Score >= 60:
		r.Evaluation = "Good responsibilities section with clear duties"
	case r.Score >= 40:
		r.Evaluation = "Adequate responsibilities section but could be more specific"
	default:
		r.Evaluation = "Basic responsibilities section that needs more detail"
	}
	return r
}

// Selling point themes. The first pattern of each theme found in the text
// contributes one selling point.
var sellingPointThemes = [][]*regexp.Regexp{
	compileAll(
		`(?i)(?:growth|advancement|career|promotion)\s+opportunities`,
		`(?i)opportunity\s+to\s+(?:grow|advance|develop|learn)`,
		`(?i)career\s+(?:path|development|progression)`,
	),
	compileAll(
		`(?i)(?:great|positive|inclusive|collaborative|innovative)\s+(?:culture|environment|workplace)`,
		`(?i)work-life\s+balance`,
		`(?i)flexible\s+(?:hours|schedule|working)`,
		`(?i)diverse\s+(?:and\s+)?inclusive`,
	),
	compileAll(
		`(?i)(?:cutting[ -]edge|latest|modern|state[ -]of[ -]the[ -]art)\s+(?:technology|tools|stack|equipment)`,
		`(?i)opportunity\s+to\s+work\s+with\s+(?:new|modern|cutting[ -]edge)\s+technology`,
	),
}

func sellingPoints(text string, benefits []string) []string {
	out := append([]string{}, benefits[:min(len(benefits), maxBenefitSellingPoints)]...)
	contains := func(s string) bool {
		for _, p := range out {
			if p == s {
				return true
			}
		}
		return false
	}
	for _, theme := range sellingPointThemes {
		for _, re := range theme {
			loc := re.FindStringIndex(text)
			if loc == nil {
				continue
			}
			if ctx := contextAround(text, loc[0], loc[1]); ctx != "" && !contains(ctx) {
				out = append(out, ctx)
				break
			}
		}
	}
	if len(out) > maxSellingPoints {
		out = out[:maxSellingPoints]
	}
	return out
}

func analyzeContent(text string, info Info) ContentAnalysis {
	c := ContentAnalysis{
		Title:              analyzeTitle(info.JobTitle),
		CompanyDescription: analyzeCompanyDescription(text),
		JobDescription:     analyzeRoleDescription(text),
		Responsibilities:   analyzeResponsibilities(text),
	}
	c.UniqueSellingPoints = sellingPoints(text, info.Benefits)

	score := c.weightedScore(len(strings.Fields(text)))
	score += float64(min(maxSellingPointBonus, len(c.UniqueSellingPoints)*sellingPointBonus))
	c.Score = scoring.Clamp(score)

	switch {
	case c.Score >= 85:
		c.Evaluation = "Excellent content with comprehensive information and clear selling points"
	case c.Score >= 70:
		c.Evaluation = "Good content that covers most key areas effectively"
	case c.Score >= 50:
		c.Evaluation = "Adequate content but missing some important information"
	default:
		c.Evaluation = "Basic content that needs significant improvement"
	}
	return c
}

// weightedScore combines the part scores. The weight of a missing part is
// handed to the others before normalising; when every part is missing the
// posting is scored on its length alone.
func (c ContentAnalysis) weightedScore(words int) float64 {
	weight := func(present bool, w float64) float64 {
		if present {
			return w
		}
		return 0
	}
	title := weight(c.Title.IsPresent, 0.25)
	company := weight(c.CompanyDescription.IsPresent, 0.20)
	role := weight(c.JobDescription.IsPresent, 0.25)
	duties := weight(c.Responsibilities.IsPresent, 0.30)

	if title+company+role+duties == 0 {
		return float64(lengthPoints(words, []int{500, 300, 150, 0}, []int{40, 30, 20, 10}))
	}

	if title == 0 {
		role += 0.10
		duties += 0.15
	}
	if company == 0 {
		title += 0.05
		role += 0.05
		duties += 0.10
	}
	if role == 0 {
		title += 0.10
		duties += 0.15
	}
	if duties == 0 {
		title += 0.10
		role += 0.20
	}
	total := title + company + role + duties

	score := 0.0
	if c.Title.IsPresent {
		score += float64(c.Title.Score) * title / total
	}
	if c.CompanyDescription.IsPresent {
		score += float64(c.CompanyDescription.Score) * company / total
	}
	if c.JobDescription.IsPresent {
		score += float64(c.JobDescription.Score) * role / total
	}
	if c.Responsibilities.IsPresent {
		score += float64(c.Responsibilities.Score) * duties / total
	}
	return score
}
