package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
	bulletGlyph = regexp.MustCompile(`^[•·▪◦‣]\s*`)
)

// CleanText normalises extracted document text while keeping its layout:
// line endings become LF, runs of spaces inside a line collapse, bullet
// glyphs become "- ", leading indentation is kept and no more than one
// blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u200b", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	content = blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(content)
}

func cleanLine(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}
	indent := strings.Repeat(" ", len(line)-len(trimmed))

	// Markdown headings start flush left.
	if strings.HasPrefix(trimmed, "#") {
		return strings.TrimSpace(innerSpace.ReplaceAllString(trimmed, " "))
	}
	if bulletGlyph.MatchString(trimmed) {
		trimmed = "- " + bulletGlyph.ReplaceAllString(trimmed, "")
	}
	return indent + strings.TrimSpace(innerSpace.ReplaceAllString(trimmed, " "))
}
