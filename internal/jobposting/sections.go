package jobposting

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/searchfind/screening-engine/internal/textproc"
)

const contextChars = 100

var (
	bulletItem   = regexp.MustCompile(`(?:•|\*|-|\d+\.)\s+([^\n]+)`)
	sentenceItem = regexp.MustCompile(`[^.!?]+[.!?]`)
)

// sectionBody returns the text following the first heading matched by one of
// headers. The body starts on the line after the heading and runs until a
// blank line or a line that starts with a letter, so bulleted lists are kept
// whole. Headers are tried in order.
func sectionBody(text string, headers ...*regexp.Regexp) string {
	for _, header := range headers {
		for _, loc := range header.FindAllStringIndex(text, -1) {
			nl := strings.IndexByte(text[loc[1]:], '\n')
			if nl < 0 {
				continue
			}
			start := loc[1] + nl + 1
			if start >= len(text) {
				continue
			}
			_, size := utf8.DecodeRuneInString(text[start:])
			end := start + size
			for end < len(text) && !bodyEndsAt(text, end) {
				_, size = utf8.DecodeRuneInString(text[end:])
				end += size
			}
			return strings.TrimSpace(text[start:end])
		}
	}
	return ""
}

// bodyEndsAt reports whether a section body ends at text[i]: a newline
// followed by whitespace and then another newline or a letter.
func bodyEndsAt(text string, i int) bool {
	if text[i] != '\n' {
		return false
	}
	for j := i + 1; j < len(text); {
		r, size := utf8.DecodeRuneInString(text[j:])
		switch {
		case r == '\n':
			return true
		case unicode.IsSpace(r):
			j += size
		default:
			return r < utf8.RuneSelf && unicode.IsLetter(r)
		}
	}
	return false
}

// listItems splits text into bullet items, or into sentences when it has no
// bullets. The second result reports whether bullets were found.
func listItems(text string) ([]string, bool) {
	var items []string
	for _, m := range bulletItem.FindAllStringSubmatch(text, -1) {
		if item := strings.TrimSpace(m[1]); item != "" {
			items = append(items, item)
		}
	}
	if len(items) > 0 {
		return items, true
	}
	for _, s := range sentenceItem.FindAllString(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			items = append(items, s)
		}
	}
	return items, false
}

// contextAround returns about contextChars runes either side of
// text[start:end], trimmed to sentence boundaries where the window was cut.
func contextAround(text string, start, end int) string {
	ws, we := textproc.WindowBounds(text, start, end, contextChars, contextChars)
	window := text[ws:we]
	if ws > 0 {
		if i := strings.Index(window, ". "); i >= 0 {
			window = window[i+2:]
		}
	}
	if we < len(text) {
		if i := strings.LastIndex(window, ". "); i >= 0 {
			window = window[:i+1]
		}
	}
	return strings.TrimSpace(window)
}
