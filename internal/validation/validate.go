// Package validation classifies documents as resumes, cover letters or job
// descriptions and reports how confident that classification is.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/searchfind/screening-engine/internal/textproc"
	"github.com/searchfind/screening-engine/internal/types"
)

// Confidence thresholds used by the validator and by downstream analyzers.
const (
	HighConfidence   = 0.8
	MediumConfidence = 0.3
	LowConfidence    = 0.1
)

// MinWordCount is the shortest document that is classified at all.
const MinWordCount = 20

// otherScore is the fixed score of the fallback "other" type.
const otherScore = 0.2

// ErrTooShort is the rejection message for documents under MinWordCount.
const ErrTooShort = "Document is too short or empty"

// ContentValidator assigns a document type and confidence to text. It is
// safe for concurrent use.
type ContentValidator struct {
	processor *textproc.Processor
}

// NewContentValidator returns a validator that uses processor for section
// detection. A nil processor gets a default one.
func NewContentValidator(processor *textproc.Processor) *ContentValidator {
	if processor == nil {
		processor = textproc.New()
	}
	return &ContentValidator{processor: processor}
}

// ValidateDocument scores text as each document type and picks the best.
// It never fails; empty and short input is rejected with zero confidence.
func (v *ContentValidator) ValidateDocument(text string) types.ValidationResult {
	wordCount := len(strings.Fields(text))
	if wordCount < MinWordCount {
		return types.ValidationResult{
			IsValid:      false,
			DocumentType: types.DocumentUnknown,
			Confidence:   0,
			Error:        ErrTooShort,
			WordCount:    wordCount,
			TypeScores:   zeroScores(),
		}
	}

	scores := map[types.DocumentType]float64{
		types.DocumentResume:         resumeScore(text),
		types.DocumentCoverLetter:    coverLetterScore(text),
		types.DocumentJobDescription: jobDescriptionScore(text),
		types.DocumentOther:          otherScore,
	}

	docType := types.DocumentUnknown
	confidence := -1.0
	for _, t := range types.ScoredDocumentTypes {
		if scores[t] > confidence {
			docType, confidence = t, scores[t]
		}
	}

	result := types.ValidationResult{
		IsValid:      confidence >= MediumConfidence,
		DocumentType: docType,
		Confidence:   confidence,
		WordCount:    wordCount,
		TypeScores:   scores,
	}
	if !result.IsValid {
		result.Error = fmt.Sprintf("Document doesn't appear to be a valid %s", docType)
	}
	return result
}

// IsType reports whether result classifies the document as want with at
// least minConfidence.
func IsType(result types.ValidationResult, want types.DocumentType, minConfidence float64) bool {
	return result.DocumentType == want && result.Confidence >= minConfidence
}

func wordPatterns(words ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}

func zeroScores() map[types.DocumentType]float64 {
	scores := make(map[types.DocumentType]float64, len(types.ScoredDocumentTypes))
	for _, dt := range types.ScoredDocumentTypes {
		scores[dt] = 0
	}
	return scores
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// countPresent counts the patterns that match at least once.
func countPresent(text string, patterns []*regexp.Regexp) int {
	n := 0
	for _, re := range patterns {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

// countMatches counts every non-overlapping match of every pattern.
func countMatches(text string, patterns []*regexp.Regexp) int {
	n := 0
	for _, re := range patterns {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}

// tiered returns the bonus of the first threshold count reaches.
func tiered(count int, tiers ...tier) float64 {
	for _, t := range tiers {
		if count >= t.min {
			return t.bonus
		}
	}
	return 0
}

type tier struct {
	min   int
	bonus float64
}

var (
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern  = regexp.MustCompile(`\b(?:\+\d{1,3}[\-.\s]?)?\(?\d{3}\)?[\-.\s]?\d{3}[\-.\s]?\d{4}\b`)
	socialPattern = regexp.MustCompile(`\b(?:linkedin\.com|github\.com|twitter\.com)/[\w\-]+\b`)

	resumeSectionWords = wordPatterns(
		"experience", "education", "skills", "summary", "profile",
		"work history", "employment", "qualifications", "projects",
		"certifications", "references", "publications", "awards",
		"professional experience", "career objective", "technical skills",
	)

	resumeDatePatterns = compileAll(
		`(?i)\b(?:19|20)\d{2}\s*-\s*(?:19|20)\d{2}\b`,
		`(?i)\b(?:19|20)\d{2}\s*-\s*(?:present|current|now)\b`,
		`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* (?:19|20)\d{2}\b`,
	)

	skillIndicators = compileAll(
		`\bproficient in\b`, `\bexperienced with\b`, `\bskilled in\b`,
		`\bknowledge of\b`, `\bfamiliar with\b`, `\bexpertise in\b`,
		`\bcompetent with\b`, `\btechnical skills\b`, `\bsoft skills\b`,
	)
)

func resumeScore(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0

	score += tiered(countPresent(lower, resumeSectionWords), tier{4, 0.4}, tier{2, 0.2}, tier{1, 0.1})

	contact := countPresent(text, []*regexp.Regexp{emailPattern, phonePattern, socialPattern})
	score += tiered(contact, tier{2, 0.2}, tier{1, 0.1})

	score += tiered(countMatches(text, resumeDatePatterns), tier{3, 0.2}, tier{1, 0.1})
	score += tiered(countMatches(lower, skillIndicators), tier{3, 0.2}, tier{1, 0.1})

	return min(1.0, score)
}

var (
	// Matched against lowercased text, so the pronoun is written lowercase.
	coverLetterPhrases = compileAll(
		`\b(?:dear|to) (?:hiring manager|recruiter|sir|madam)\b`,
		`\bi am (?:writing|applying) (?:to|for)\b`,
		`\bi am interested in\b`,
		`\bthank you for (?:your|the) consideration\b`,
		`\blook forward to\b`,
		`\bsincerely\b`,
		`\bregards\b`,
		`\benclosed\b`,
		`\battached\b`,
	)

	firstPersonWords = map[string]bool{"i": true, "me": true, "my": true, "mine": true, "myself": true}

	// Unanchored, so "what we" counts as a mention.
	companyMentionPatterns = compileAll(
		`at \w+`,
		`(?:join|with) \w+`,
		`(?:position|role|opportunity) at \w+`,
	)
)

func coverLetterScore(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0

	score += tiered(countPresent(lower, coverLetterPhrases), tier{4, 0.4}, tier{2, 0.2}, tier{1, 0.1})

	words := strings.Fields(lower)
	if len(words) > 0 {
		pronouns := 0
		for _, w := range words {
			if firstPersonWords[w] {
				pronouns++
			}
		}
		ratio := float64(pronouns) / float64(len(words))
		switch {
		case ratio >= 0.05:
			score += 0.3
		case ratio >= 0.02:
			score += 0.15
		}
	}

	score += tiered(countMatches(lower, companyMentionPatterns), tier{2, 0.2}, tier{1, 0.1})

	if n := len(words); n > 100 && n < 500 {
		score += 0.1
	}
	return min(1.0, score)
}

var (
	jobSectionWords = wordPatterns(
		"job description", "responsibilities", "requirements", "qualifications",
		"about the role", "about the company", "skills", "experience required",
		"education required", "who you are", "what you'll do", "benefits",
		"compensation", "how to apply", "about us", "our company", "the team",
	)

	jobPostingPhrases = compileAll(
		`\b(?:we are|our company is) (?:seeking|looking for|hiring)\b`,
		`\bmust have\b`,
		`\brequired skills\b`,
		`\bpreferred qualifications\b`,
		`\bresponsibilities include\b`,
		`\breport to\b`,
		`\bwork with\b`,
		`\bfull[ \-]time\b`,
		`\bpart[ \-]time\b`,
		`\bremote\b`,
		`\bhybrid\b`,
		`\bon[ \-]site\b`,
		`\bsalary\b`,
		`\bemployment type\b`,
		`\bapply now\b`,
	)

	bulletPattern = regexp.MustCompile(`(?m)^[ \t]*(?:•|·|-|\*|\d+\.)\s`)

	yearsOfExperience = compileAll(
		`\b\d+\+?\s*(?:years|yrs)(?:\s*of\s*|\s+)experience\b`,
		`\bexperience: \d+\+?\s*(?:years|yrs)\b`,
		`\bminimum \d+\s*(?:years|yrs)\b`,
	)
)

func jobDescriptionScore(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0

	score += tiered(countPresent(lower, jobSectionWords), tier{4, 0.4}, tier{2, 0.2}, tier{1, 0.1})
	score += tiered(countPresent(lower, jobPostingPhrases), tier{4, 0.3}, tier{2, 0.15})
	score += tiered(len(bulletPattern.FindAllStringIndex(text, -1)), tier{10, 0.2}, tier{5, 0.1})
	score += tiered(countMatches(lower, yearsOfExperience), tier{2, 0.1}, tier{1, 0.05})

	return min(1.0, score)
}
