package jobposting

import (
	"regexp"

	"github.com/searchfind/screening-engine/internal/resources"
	"github.com/searchfind/screening-engine/internal/scoring"
)

const (
	maxLanguageInstances = 5
	neutralInclusivity   = 50
	languagePoints       = 5
	maxInclusiveBonus    = 25
	maxExclusivePenalty  = 30
)

// InclusivityAnalysis grades the posting's language for how welcoming it is
// to a diverse pool of candidates.
type InclusivityAnalysis struct {
	Score                       int                `json:"inclusive_language_score" yaml:"inclusive_language_score"`
	ExclusiveInstances          []LanguageInstance `json:"exclusive_language_instances" yaml:"exclusive_language_instances"`
	InclusiveInstances          []LanguageInstance `json:"inclusive_language_instances" yaml:"inclusive_language_instances"`
	GenderedInstances           []LanguageInstance `json:"gendered_language_instances" yaml:"gendered_language_instances"`
	MentionsDiversity           bool               `json:"mentions_diversity" yaml:"mentions_diversity"`
	MentionsEqualOpportunity    bool               `json:"mentions_equal_opportunity" yaml:"mentions_equal_opportunity"`
	AccessibilityConsiderations bool               `json:"accessibility_considerations" yaml:"accessibility_considerations"`
	Evaluation                  string             `json:"evaluation" yaml:"evaluation"`
}

// LanguageInstance is one flagged term and the sentence around it.
type LanguageInstance struct {
	Text string `json:"text" yaml:"text"`
	Term string `json:"term" yaml:"term"`
}

var (
	// "he" and "she" on their own are left out; they mostly appear in
	// "he/she" and "s/he" constructions.
	genderedPatterns = compileAll(
		`(?i)\b(?:him|his|himself|man|men|male|guy|guys|gentlemen)\b`,
		`(?i)\b(?:her|hers|herself|woman|women|female|lady|ladies)\b`,
		`(?i)\b(?:maternal|paternal)\b`,
		`(?i)\b(?:chairman|chairwoman|fireman|policeman|salesman|stewardess)\b`,
		`(?i)\b(?:manpower|workmanship|mankind)\b`,
	)

	diversityPatterns = compileAll(
		`(?i)\b(?:diversity|diverse|inclusion|inclusive)\b`,
		`(?i)\b(?:equal opportunity|eeo|affirmative action)\b`,
		`(?i)\b(?:backgrounds|perspectives|viewpoints)\b`,
		`(?i)\bdiscrimination\b`,
	)

	equalOpportunityPatterns = compileAll(
		`(?i)equal opportunity employer`,
		`(?i)eeo`,
		`(?i)does not discriminate`,
		`(?i)regardless of (?:race|gender|religion|age|disability|sexual orientation|identity)`,
	)

	accessibilityPatterns = compileAll(
		`(?i)accommodation`,
		`(?i)accessible`,
		`(?i)disabilit(?:y|ies)`,
		`(?i)access needs`,
	)
)

func anyMatch(text string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// collectInstances counts every match of patterns and records the first
// maxLanguageInstances of them.
func collectInstances(text string, patterns []*regexp.Regexp) (int, []LanguageInstance) {
	count := 0
	instances := []LanguageInstance{}
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			count++
			if len(instances) < maxLanguageInstances {
				instances = append(instances, LanguageInstance{
					Text: contextAround(text, loc[0], loc[1]),
					Term: text[loc[0]:loc[1]],
				})
			}
		}
	}
	return count, instances
}

func analyzeInclusivity(text string) InclusivityAnalysis {
	var in InclusivityAnalysis
	exclusive, exclusiveInstances := collectInstances(text, resources.ExclusivePatterns)
	inclusive, inclusiveInstances := collectInstances(text, resources.InclusivePatterns)
	gendered, genderedInstances := collectInstances(text, genderedPatterns)
	in.ExclusiveInstances = exclusiveInstances
	in.InclusiveInstances = inclusiveInstances
	in.GenderedInstances = genderedInstances

	in.MentionsDiversity = anyMatch(text, diversityPatterns)
	in.MentionsEqualOpportunity = anyMatch(text, equalOpportunityPatterns)
	in.AccessibilityConsiderations = anyMatch(text, accessibilityPatterns)

	score := neutralInclusivity
	score += min(maxInclusiveBonus, inclusive*languagePoints)
	score -= min(maxExclusivePenalty, (exclusive+gendered)*languagePoints)
	if in.MentionsDiversity {
		score += 15
	}
	if in.MentionsEqualOpportunity {
		score += 10
	}
	if in.AccessibilityConsiderations {
		score += 10
	}
	in.Score = scoring.ClampInt(score)

	switch {
	case in.Score >= 85:
		in.Evaluation = "Excellent use of inclusive language with strong diversity and inclusion statements"
	case in.Score >= 70:
		in.Evaluation = "Good use of inclusive language with some diversity considerations"
	case in.Score >= 50:
		in.Evaluation = "Adequate inclusivity but room for improvement"
	default:
		in.Evaluation = "Poor inclusivity with potential barriers or exclusive language"
	}
	return in
}
