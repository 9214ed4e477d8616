package coverletter

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/textproc"
)

type indicator struct {
	label   string
	pattern *regexp.Regexp
}

func indicators(pairs ...string) []indicator {
	out := make([]indicator, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, indicator{label: pairs[i], pattern: regexp.MustCompile(`(?i)` + pairs[i+1])})
	}
	return out
}

var (
	personalizationIndicators = indicators(
		"your company", `your company`,
		"your organization", `your organization`,
		"your team", `your team`,
		"your mission", `your mission`,
		"your values", `your values`,
		"your projects", `your projects?`,
		"your products", `your products?`,
		"your services", `your services?`,
		"your clients", `your clients?`,
		"your customers", `your customers?`,
		"your website", `your website`,
		"your reputation", `your reputation`,
		"your commitment", `your commitment`,
		"your dedication", `your dedication`,
		"your focus", `your focus`,
		"your approach", `your approach`,
		"your work in/on", `your work (?:in|on)`,
	)

	genericCompanyReferences = compileInsensitive(
		`your company`, `your organization`, `your firm`,
		`your business`, `your team`, `your department`,
	)

	companyKnowledgePatterns = compileInsensitive(
		`your (?:recent|latest) (?:product|project|initiative|announcement)`,
		`your (?:mission|vision) statement`,
		`your (?:blog|article|interview|talk) (?:about|on)`,
		`your commitment to`,
		`your reputation for`,
		`your work (?:in|on) (?:the|your)`,
	)
)

// analyzePersonalization scores how specifically text addresses the
// company. Without a company name, generic "your company" references count
// as mentions.
func analyzePersonalization(text, companyName string) Personalization {
	p := Personalization{
		SpecificCompanyKnowledge: []string{},
		Indicators:               []string{},
	}

	if name := strings.TrimSpace(companyName); name != "" {
		p.CompanyMentions = strings.Count(strings.ToLower(text), strings.ToLower(name))
	} else {
		for _, re := range genericCompanyReferences {
			p.CompanyMentions += len(re.FindAllStringIndex(text, -1))
		}
	}

	for _, ind := range personalizationIndicators {
		if ind.pattern.MatchString(text) {
			p.Indicators = append(p.Indicators, ind.label)
		}
	}

	for _, re := range companyKnowledgePatterns {
		p.SpecificCompanyKnowledge = append(p.SpecificCompanyKnowledge, re.FindAllString(text, -1)...)
	}

	score := 0
	switch {
	case p.CompanyMentions >= 3:
		score += 30
	case p.CompanyMentions >= 1:
		score += 15
	}
	switch n := len(p.Indicators); {
	case n >= 5:
		score += 50
	case n >= 3:
		score += 30
	case n >= 1:
		score += 10
	}
	switch n := len(p.SpecificCompanyKnowledge); {
	case n >= 2:
		score += 20
	case n >= 1:
		score += 10
	}
	p.Score = scoring.ClampInt(score)

	switch {
	case p.Score >= 80:
		p.Evaluation = "Excellent personalization with specific company knowledge"
	case p.Score >= 60:
		p.Evaluation = "Good personalization with company mentions"
	case p.Score >= 40:
		p.Evaluation = "Some personalization but could be more specific"
	default:
		p.Evaluation = "Little to no personalization, appears to be a generic cover letter"
	}
	return p
}

const (
	maxJobKeywords   = 20
	minKeywordLength = 4
)

// analyzeJobRelevance matches the most frequent words of jobDescription
// against the letter.
func (a *Analyzer) analyzeJobRelevance(text, jobDescription string) *JobRelevance {
	r := &JobRelevance{
		KeywordsMatched: []string{},
		KeywordsMissed:  []string{},
	}

	keywords := topKeywords(a.processor.Tokenize(jobDescription), maxJobKeywords)
	present := make(map[string]bool)
	for _, w := range textproc.Words(strings.ToLower(text)) {
		present[w] = true
	}
	for _, kw := range keywords {
		if present[kw] {
			r.KeywordsMatched = append(r.KeywordsMatched, kw)
		} else {
			r.KeywordsMissed = append(r.KeywordsMissed, kw)
		}
	}

	if len(keywords) > 0 {
		r.SkillAlignment = float64(len(r.KeywordsMatched)) / float64(len(keywords))
		r.Score = scoring.ClampInt(int(r.SkillAlignment * 100))
	}

	switch {
	case r.Score >= 80:
		r.Evaluation = "Excellent alignment with job requirements"
	case r.Score >= 60:
		r.Evaluation = "Good alignment, matches many job keywords"
	case r.Score >= 40:
		r.Evaluation = "Fair alignment, matches some job keywords"
	default:
		r.Evaluation = "Poor alignment, few job keywords matched"
	}
	return r
}

// topKeywords returns up to n of the most frequent tokens of at least
// minKeywordLength runes. Ties keep first-seen order.
func topKeywords(tokens []string, n int) []string {
	counts := map[string]int{}
	var order []string
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < minKeywordLength {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}
