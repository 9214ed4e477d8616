package coverletter

import (
	"regexp"
	"strings"

	"github.com/searchfind/screening-engine/internal/resources"
	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/textproc"
)

const (
	maxAchievements   = 5
	maxSkillsReported = 10

	achievementContextBefore = 50
	achievementContextAfter  = 100

	genericPhrasePenalty    = 10
	maxGenericPhrasePenalty = 30
)

var (
	genericPhrasePatterns = compileInsensitive(
		`hard[ -]working`,
		`team player`,
		`detail oriented`,
		`excellent communication skills`,
		`good communicat(?:ion|or)`,
		`people person`,
		`self[ -]motivated`,
		`fast learner`,
		`think outside the box`,
		`hit the ground running`,
		`valuable asset`,
		`perfect fit`,
		`esteemed organization`,
		`prestigious company`,
	)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

func compileInsensitive(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

type lengthBand struct {
	below      int
	score      int
	evaluation string
}

var lengthBands = []lengthBand{
	{150, 30, "Too short"},
	{250, 70, "Slightly short"},
	{500, 100, "Good length"},
	{600, 80, "Slightly long"},
}

func gradeLength(words int) (int, string) {
	for _, b := range lengthBands {
		if words < b.below {
			return b.score, b.evaluation
		}
	}
	return 40, "Too long"
}

func analyzeContent(text string) ContentAnalysis {
	c := ContentAnalysis{}

	c.Length.WordCount = len(strings.Fields(text))
	c.Length.Score, c.Length.Evaluation = gradeLength(c.Length.WordCount)

	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			c.Length.ParagraphCount++
		}
	}
	switch {
	case c.Length.ParagraphCount < 3:
		c.Length.ParagraphEvaluation = "Too few paragraphs"
	case c.Length.ParagraphCount > 7:
		c.Length.ParagraphEvaluation = "Too many paragraphs"
	default:
		c.Length.ParagraphEvaluation = "Good paragraph structure"
	}

	sentences := textproc.Sentences(text)
	c.Language.SentenceCount = len(sentences)

	c.Achievements = achievementContexts(text)
	c.AchievementCount = len(c.Achievements)

	c.SkillsMentioned = resources.MentionedSkills(text)
	if len(c.SkillsMentioned) > maxSkillsReported {
		c.SkillsMentioned = c.SkillsMentioned[:maxSkillsReported]
	}
	if c.SkillsMentioned == nil {
		c.SkillsMentioned = []string{}
	}
	c.SkillCount = len(c.SkillsMentioned)

	c.GenericPhrases = []string{}
	for _, re := range genericPhrasePatterns {
		if m := re.FindString(text); m != "" {
			c.GenericPhrases = append(c.GenericPhrases, m)
		}
	}
	c.GenericPhraseCount = len(c.GenericPhrases)

	score := float64(c.Length.Score) * 0.2
	switch {
	case c.AchievementCount >= 3:
		score += 25
	case c.AchievementCount >= 1:
		score += 15
	}
	switch {
	case c.SkillCount >= 5:
		score += 20
	case c.SkillCount >= 3:
		score += 15
	case c.SkillCount >= 1:
		score += 5
	}
	score = max(0, score-float64(min(maxGenericPhrasePenalty, c.GenericPhraseCount*genericPhrasePenalty)))

	if len(sentences) > 0 {
		variance := sentenceLengthVariance(sentences)
		switch {
		case variance >= 15:
			score += 15
			c.Language.SentenceVariety = "Good sentence length variety"
		case variance >= 5:
			score += 5
			c.Language.SentenceVariety = "Some sentence length variety"
		default:
			c.Language.SentenceVariety = "Poor sentence length variety"
		}
	}

	c.rawScore = scoring.ClampFloat(score, scoring.MinScore, scoring.MaxScore)
	c.Score = scoring.Clamp(c.rawScore)

	switch {
	case c.rawScore >= 90:
		c.Evaluation = "Excellent content with specific achievements and relevant skills"
	case c.rawScore >= 75:
		c.Evaluation = "Good content with some specific details"
	case c.rawScore >= 50:
		c.Evaluation = "Adequate content but lacks specificity"
	default:
		c.Evaluation = "Poor content with generic phrases and little substance"
	}
	return c
}

// achievementContexts returns the text around each achievement verb, with
// whitespace collapsed, deduplicated and capped at maxAchievements.
func achievementContexts(text string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, loc := range resources.AchievementVerbPattern.FindAllStringIndex(text, -1) {
		ctx := strings.TrimSpace(whitespaceRun.ReplaceAllString(
			textproc.Window(text, loc[0], loc[1], achievementContextBefore, achievementContextAfter), " "))
		if seen[ctx] {
			continue
		}
		seen[ctx] = true
		out = append(out, ctx)
		if len(out) == maxAchievements {
			break
		}
	}
	return out
}

func sentenceLengthVariance(sentences []string) float64 {
	lengths := make([]float64, len(sentences))
	var sum float64
	for i, s := range sentences {
		lengths[i] = float64(len(strings.Fields(s)))
		sum += lengths[i]
	}
	mean := sum / float64(len(lengths))
	var variance float64
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	return variance / float64(len(lengths))
}
