// Package textproc cleans, tokenizes and segments document text and extracts
// the structured facts (skills, experience, education, contact details) the
// analyzers score against.
package textproc

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/searchfind/screening-engine/internal/resources"
	"github.com/searchfind/screening-engine/internal/types"
)

var (
	disallowedChars  = regexp.MustCompile(`[^\p{L}\p{N}_\s,\-./:+#&•·!?'@]`)
	horizontalSpace  = regexp.MustCompile(`[^\S\n]+`)
	excessiveNewline = regexp.MustCompile(`\n{3,}`)
	nonWord          = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	sentenceBreak    = regexp.MustCompile(`[.!?]+`)
)

// Processor turns raw text into a ProcessedDocument. It holds no state and is
// safe for concurrent use.
type Processor struct{}

// New returns a Processor.
func New() *Processor {
	return &Processor{}
}

// Clean lowercases text, replaces unusual punctuation with spaces and
// normalizes whitespace. Line breaks are kept; runs of blank lines collapse
// to a single paragraph break.
func (p *Processor) Clean(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = disallowedChars.ReplaceAllString(text, " ")
	return normalizeLines(text)
}

// normalizeLines collapses horizontal whitespace and trims every line
// without changing case.
func normalizeLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = excessiveNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Words splits text on runs of non-word characters.
func Words(text string) []string {
	parts := nonWord.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, w := range parts {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Tokenize returns the lowercased words of text with stopwords removed.
func (p *Processor) Tokenize(text string) []string {
	return RemoveStopwords(Words(strings.ToLower(text)))
}

// RemoveStopwords drops common English function words.
func RemoveStopwords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !resources.Stopwords[strings.ToLower(tok)] {
			out = append(out, tok)
		}
	}
	return out
}

// Sentences splits text on sentence-ending punctuation.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceBreak.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Process runs every extraction relevant to docType over text.
func (p *Processor) Process(text string, docType types.DocumentType) *types.ProcessedDocument {
	normalized := normalizeLines(text)
	clean := p.Clean(text)

	doc := &types.ProcessedDocument{
		DocumentType:  docType,
		CleanText:     clean,
		WordCount:     len(Words(clean)),
		SentenceCount: len(Sentences(clean)),
		Tokens:        p.Tokenize(clean),
		Sections:      p.IdentifySections(normalized, docType),
		Entities:      p.ExtractEntities(normalized),
	}

	switch docType {
	case types.DocumentResume:
		doc.ExtractedSkills = p.ExtractSkills(normalized)
		doc.ExtractedExperience = p.ExtractExperience(sectionOr(doc.Sections, "experience", normalized))
		doc.ExtractedEducation = p.ExtractEducation(sectionOr(doc.Sections, "education", normalized))
		doc.ExtractedContact = p.ExtractContact(text)
		doc.ExtractedSummary = doc.Sections["summary"]
	case types.DocumentCoverLetter:
		doc.ExtractedSkills = p.ExtractSkills(normalized)
		doc.CompanyReferences = ExtractCompanyReferences(normalized)
		doc.SkillsMentioned = resources.MentionedSkills(normalized)
		doc.Achievements = ExtractAchievements(normalized)
		doc.ExtractedContact = p.ExtractContact(text)
	case types.DocumentJobDescription:
		doc.ExtractedSkills = p.ExtractSkills(normalized)
	}
	return doc
}

func sectionOr(sections map[string]string, name, fallback string) string {
	if s := sections[name]; strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func uniqueSorted(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

func uniqueOrdered(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// Window returns text[start:end] widened by up to before runes on the left
// and after runes on the right.
func Window(text string, start, end, before, after int) string {
	start, end = WindowBounds(text, start, end, before, after)
	return text[start:end]
}

// WindowBounds returns the byte offsets of the window Window would return.
func WindowBounds(text string, start, end, before, after int) (int, int) {
	for i := 0; i < before && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	for i := 0; i < after && end < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	return start, end
}
