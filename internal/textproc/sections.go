package textproc

import (
	"regexp"
	"strings"

	"github.com/searchfind/screening-engine/internal/resources"
	"github.com/searchfind/screening-engine/internal/types"
)

// maxHeaderWords is the longest line still treated as a section heading.
const maxHeaderWords = 4

const unknownSection = "unknown"

type sectionDef struct {
	name     string
	variants []string
	patterns []*regexp.Regexp
}

func defineSections(defs ...sectionDef) []sectionDef {
	for i := range defs {
		for _, v := range defs[i].variants {
			defs[i].patterns = append(defs[i].patterns, resources.WordPattern(v))
		}
	}
	return defs
}

var resumeSections = defineSections(
	sectionDef{name: "experience", variants: []string{"experience", "work experience", "employment history", "work history", "professional experience"}},
	sectionDef{name: "education", variants: []string{"education", "academic background", "educational background", "academic history"}},
	sectionDef{name: "skills", variants: []string{"skills", "technical skills", "core competencies", "key skills", "competencies"}},
	sectionDef{name: "projects", variants: []string{"projects", "project experience", "key projects", "professional projects"}},
	sectionDef{name: "summary", variants: []string{"summary", "professional summary", "executive summary", "profile", "about me", "objective"}},
	sectionDef{name: "certifications", variants: []string{"certifications", "certificates", "professional certifications", "credentials"}},
	sectionDef{name: "languages", variants: []string{"languages", "language proficiency", "language skills"}},
	sectionDef{name: "volunteer", variants: []string{"volunteer", "volunteering", "volunteer experience", "community service"}},
	sectionDef{name: "publications", variants: []string{"publications", "research publications", "papers", "articles"}},
	sectionDef{name: "interests", variants: []string{"interests", "hobbies", "activities", "personal interests"}},
)

var coverLetterSections = defineSections(
	sectionDef{name: "greeting", variants: []string{"dear", "hello", "hi", "greetings", "to whom it may concern"}},
	sectionDef{name: "introduction", variants: []string{"i am writing", "please accept", "i would like to", "i am pleased"}},
	sectionDef{name: "body", variants: []string{"my experience", "my skills", "i have worked", "i developed", "i managed"}},
	sectionDef{name: "closing", variants: []string{"thank you", "sincerely", "best regards", "looking forward", "yours truly"}},
)

var jobDescriptionSections = defineSections(
	sectionDef{name: "about_company", variants: []string{"about us", "company overview", "our company", "who we are"}},
	sectionDef{name: "job_summary", variants: []string{"job summary", "position summary", "role overview", "about the role"}},
	sectionDef{name: "responsibilities", variants: []string{"responsibilities", "duties", "what you'll do", "key responsibilities"}},
	sectionDef{name: "requirements", variants: []string{"requirements", "qualifications", "what you need", "must have", "who you are"}},
	sectionDef{name: "benefits", variants: []string{"benefits", "perks", "what we offer", "compensation", "why join us"}},
	sectionDef{name: "application_process", variants: []string{"how to apply", "application process", "next steps"}},
)

func sectionsFor(docType types.DocumentType) []sectionDef {
	switch docType {
	case types.DocumentResume:
		return resumeSections
	case types.DocumentCoverLetter:
		return coverLetterSections
	case types.DocumentJobDescription:
		return jobDescriptionSections
	default:
		return nil
	}
}

var headerTrim = regexp.MustCompile(`^[\s#*•·\-=_]+|[\s:#*•·\-=_]+$`)

// normalizeHeader strips markdown decoration and trailing colons.
func normalizeHeader(line string) string {
	line = strings.ReplaceAll(line, "’", "'")
	return strings.ToLower(headerTrim.ReplaceAllString(line, ""))
}

// isHeading reports whether line is short enough to be a heading.
func isHeading(line string) bool {
	header := normalizeHeader(line)
	if header == "" || strings.ContainsAny(header, "0123456789") {
		return false
	}
	return len(strings.Fields(header)) <= maxHeaderWords
}

// matchSection finds the section a line opens. Phrase-based documents
// (cover letters) switch on any line containing a variant; the others only
// switch on heading lines.
func matchSection(defs []sectionDef, line string, phraseBased bool) (string, bool) {
	if !phraseBased && !isHeading(line) {
		return "", false
	}
	header := normalizeHeader(line)
	for _, def := range defs {
		for _, re := range def.patterns {
			if re.MatchString(header) {
				return def.name, true
			}
		}
	}
	return "", false
}

// IdentifySections splits text into named sections using the heading
// vocabulary for docType. Lines before the first heading are filed under
// "unknown". A section is present in the result once its heading is seen,
// even if it has no content.
func (p *Processor) IdentifySections(text string, docType types.DocumentType) map[string]string {
	defs := sectionsFor(docType)
	phraseBased := docType == types.DocumentCoverLetter

	collected := make(map[string][]string)
	current := unknownSection

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if name, ok := matchSection(defs, line, phraseBased); ok {
			current = name
			if _, exists := collected[current]; !exists {
				collected[current] = nil
			}
			if !phraseBased {
				continue
			}
		}
		collected[current] = append(collected[current], line)
	}

	sections := make(map[string]string, len(collected))
	for name, lines := range collected {
		if name == unknownSection && len(lines) == 0 {
			continue
		}
		sections[name] = strings.Join(lines, "\n")
	}
	return sections
}

// isResumeHeading reports whether line is a known resume section heading.
func isResumeHeading(line string) bool {
	_, ok := matchSection(resumeSections, line, false)
	return ok
}
