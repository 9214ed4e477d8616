package resources

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// AchievementVerbs are the action verbs that mark an accomplishment.
var AchievementVerbs = []string{
	"accomplished", "achieved", "completed", "created", "delivered", "developed",
	"established", "founded", "implemented", "improved", "increased", "launched",
	"led", "managed", "organized", "produced", "reduced", "spearheaded",
	"streamlined", "succeeded", "won",
}

// AchievementVerbPattern matches any achievement verb as a whole word.
var AchievementVerbPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(AchievementVerbs, "|") + `)\b`)

type skillPattern struct {
	name string
	re   *regexp.Regexp
}

var skillPatterns = buildSkillPatterns()

func buildSkillPatterns() []skillPattern {
	seen := make(map[string]bool)
	var out []skillPattern
	for _, s := range allSkills {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skillPattern{name: s, re: WordPattern(s)})
	}
	return out
}

// WordPattern compiles a case-insensitive pattern for phrase. Word boundaries
// are only asserted on edges that are word characters, so "C++" and "C#"
// still match.
func WordPattern(phrase string) *regexp.Regexp {
	expr := regexp.QuoteMeta(phrase)
	if first, _ := utf8.DecodeRuneInString(phrase); isWordRune(first) {
		expr = `\b` + expr
	}
	if last, _ := utf8.DecodeLastRuneInString(phrase); isWordRune(last) {
		expr += `\b`
	}
	return regexp.MustCompile(`(?i)` + expr)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// MentionedSkills returns the gazetteer skills mentioned in text, in sorted
// order with their canonical casing.
func MentionedSkills(text string) []string {
	var out []string
	for _, sp := range skillPatterns {
		if sp.re.MatchString(text) {
			out = append(out, sp.name)
		}
	}
	sort.Strings(out)
	return out
}
