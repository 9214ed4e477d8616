package coverletter

import (
	"regexp"
	"strings"

	"github.com/searchfind/screening-engine/internal/scoring"
)

// Letter parts, in the order they are reported.
const (
	partGreeting     = "greeting"
	partIntroduction = "introduction"
	partBody         = "body"
	partClosing      = "closing"
	partSignature    = "signature"
)

var signaturePatterns = []*regexp.Regexp{
	regexp.MustCompile(`Sincerely,\s*\n\s*([A-Z][a-z]+ [A-Z][a-z]+)`),
	regexp.MustCompile(`Regards,\s*\n\s*([A-Z][a-z]+ [A-Z][a-z]+)`),
	regexp.MustCompile(`Best,\s*\n\s*([A-Z][a-z]+ [A-Z][a-z]+)`),
	regexp.MustCompile(`Yours truly,\s*\n\s*([A-Z][a-z]+ [A-Z][a-z]+)`),
	regexp.MustCompile(`Respectfully,\s*\n\s*([A-Z][a-z]+ [A-Z][a-z]+)`),
}

// sectionCountScores maps the number of parts present to a base score.
var sectionCountScores = []int{10, 30, 50, 70, 85, 100}

// Deductions for specific missing parts, applied after the base score.
const (
	missingGreetingPenalty = 15
	missingIntroPenalty    = 20
	missingBodyPenalty     = 30
	missingClosingPenalty  = 15
)

func analyzeStructure(text string) StructureAnalysis {
	lower := strings.ToLower(text)
	s := StructureAnalysis{
		SectionsPresent: []string{},
		SectionsMissing: []string{},
	}

	mark := func(part string, present bool) {
		if present {
			s.SectionsPresent = append(s.SectionsPresent, part)
		} else {
			s.SectionsMissing = append(s.SectionsMissing, part)
		}
	}

	if m := greetingPattern.FindString(lower); m != "" {
		s.HasGreeting, s.GreetingText = true, strings.TrimSpace(m)
	}
	mark(partGreeting, s.HasGreeting)

	if m := introPattern.FindString(lower); m != "" {
		s.HasIntroduction, s.IntroductionText = true, strings.TrimSpace(m)
	}
	mark(partIntroduction, s.HasIntroduction)

	s.HasBody = bodyPattern.MatchString(lower)
	mark(partBody, s.HasBody)

	if m := closingPattern.FindString(lower); m != "" {
		s.HasClosing, s.ClosingText = true, strings.TrimSpace(m)
	}
	mark(partClosing, s.HasClosing)

	for _, re := range signaturePatterns {
		if re.MatchString(text) {
			s.HasSignature = true
			break
		}
	}
	mark(partSignature, s.HasSignature)

	score := sectionCountScores[min(len(s.SectionsPresent), len(sectionCountScores)-1)]
	if !s.HasGreeting {
		score -= missingGreetingPenalty
	}
	if !s.HasIntroduction {
		score -= missingIntroPenalty
	}
	if !s.HasBody {
		score -= missingBodyPenalty
	}
	if !s.HasClosing {
		score -= missingClosingPenalty
	}
	s.Score = scoring.ClampInt(score)

	switch {
	case s.Score >= 90:
		s.Evaluation = "Excellent structure with all necessary sections"
	case s.Score >= 75:
		s.Evaluation = "Good structure with most key sections present"
	case s.Score >= 50:
		s.Evaluation = "Adequate structure but some important sections are missing"
	default:
		s.Evaluation = "Poor structure, missing multiple critical sections"
	}
	return s
}
