package textproc

import (
	"regexp"
	"sort"
	"strings"

	"github.com/searchfind/screening-engine/internal/resources"
	"github.com/searchfind/screening-engine/internal/types"
)

// maxSkillItemLength drops list items that read like sentences.
const maxSkillItemLength = 40

const monthExpr = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s+`

var (
	skillListHeader = regexp.MustCompile(`(?i)^(?:[\p{L}&/]+\s+){0,2}(?:skills|expertise|competencies|proficiencies)\s*(:)?\s*(.*)$`)
	skillBullet     = regexp.MustCompile(`^[-*•·]\s*`)
	skillItemSep    = regexp.MustCompile(`\s*[•·|,;]\s*|\s+[-–]\s+`)

	techPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:python|java|javascript|js|typescript|ruby|php|golang|rust|swift|kotlin)\b`),
		regexp.MustCompile(`(?i)\bc\+\+`),
		regexp.MustCompile(`(?i)\b(?:html|css|sass|sql|nosql|mongodb|mysql|postgresql|oracle|redis)\b`),
		regexp.MustCompile(`(?i)\b(?:react|angular|vue|svelte|node\.?js|express|django|flask|spring|rails)\b`),
		regexp.MustCompile(`(?i)\b(?:aws|azure|gcp|google cloud|docker|kubernetes|k8s|terraform|jenkins|git)\b`),
		regexp.MustCompile(`(?i)\b(?:machine learning|ml|ai|artificial intelligence|data science|nlp|computer vision)\b`),
	}

	yearRangePattern = regexp.MustCompile(`(?i)(?:` + monthExpr + `)?\b((?:19|20)\d{2})\s*(?:-|–|—|to)\s*(?:` + monthExpr + `)?((?:19|20)\d{2}\b|present\b|current\b|now\b)`)
	headerEdgeTrim   = regexp.MustCompile(`^[\s|,;:()\-–—]+|[\s|,;:()\-–—]+$`)
	emptyParens      = regexp.MustCompile(`\(\s*\)`)
	titleCompanySep  = regexp.MustCompile(`(?i)\s+at\s+|\s+@\s+|\s*\|\s*|\s*,\s*|\s+[-–—]\s+`)

	degreeLine       = regexp.MustCompile(`(?i)\b(?:ph\.?d|doctorate|doctor of|masters?|master's|mba|bachelors?|bachelor's|associates?|associate's|high school|diploma|ged|bsc|msc)\b|\b(?:m\.b\.a|b\.s|b\.a|m\.s|m\.a)\.?`)
	institutionWord  = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy)\b`)
	yearPattern      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	educationSegment = regexp.MustCompile(`\s*[|,;]\s*|\s+[-–—]\s+`)

	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}\b`)
)

// ExtractSkills returns the lowercased skills named in text. Skills come from
// "skills:"-style lists and from well-known technology names.
func (p *Processor) ExtractSkills(text string) []string {
	var skills []string
	skills = append(skills, skillListItems(text)...)
	for _, re := range techPatterns {
		for _, m := range re.FindAllString(text, -1) {
			skills = append(skills, strings.ToLower(strings.TrimSpace(m)))
		}
	}
	return uniqueSorted(skills)
}

// skillListItems reads the items of every skills list in text. A list runs
// from its heading to the next blank line or resume heading.
func skillListItems(text string) []string {
	var items []string
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		m := skillListHeader.FindStringSubmatch(line)
		if m == nil || (m[1] == "" && strings.TrimSpace(m[2]) != "") {
			continue
		}
		items = append(items, splitSkillItems(m[2])...)
		for i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next == "" || isResumeHeading(next) || skillListHeader.MatchString(next) {
				break
			}
			items = append(items, splitSkillItems(next)...)
			i++
		}
	}
	return items
}

func splitSkillItems(line string) []string {
	line = skillBullet.ReplaceAllString(strings.TrimSpace(line), "")
	if line == "" {
		return nil
	}
	var out []string
	for _, part := range skillItemSep.Split(line, -1) {
		if idx := strings.LastIndex(part, ":"); idx >= 0 {
			part = part[idx+1:]
		}
		part = strings.ToLower(strings.Trim(part, " .:;-*"))
		if part == "" || len(part) > maxSkillItemLength {
			continue
		}
		out = append(out, part)
	}
	return out
}

// ExtractExperience finds work history entries. Each entry is anchored on a
// line carrying a year range; the title and company come from that line or
// the line before it, and the following lines up to the next entry form the
// description.
func (p *Processor) ExtractExperience(text string) []types.ExperienceEntry {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	type anchor struct {
		line   int
		start  int // first line belonging to the entry
		years  string
		header string
	}

	var anchors []anchor
	for i, line := range lines {
		m := yearRangePattern.FindStringSubmatchIndex(line)
		if m == nil || degreeLine.MatchString(line) {
			continue
		}
		years := line[m[2]:m[3]] + " - " + line[m[4]:m[5]]
		header := line[:m[0]] + " " + line[m[1]:]
		header = headerEdgeTrim.ReplaceAllString(emptyParens.ReplaceAllString(header, ""), "")
		header = strings.Join(strings.Fields(header), " ")

		a := anchor{line: i, start: i, years: years, header: header}
		if header == "" && i > 0 && lines[i-1] != "" && !yearRangePattern.MatchString(lines[i-1]) && !isResumeHeading(lines[i-1]) {
			a.header = lines[i-1]
			a.start = i - 1
		}
		anchors = append(anchors, a)
	}

	entries := make([]types.ExperienceEntry, 0, len(anchors))
	for k, a := range anchors {
		end := len(lines)
		if k+1 < len(anchors) {
			end = anchors[k+1].start
		}
		var desc []string
		for j := a.line + 1; j < end; j++ {
			if isResumeHeading(lines[j]) {
				break
			}
			if lines[j] != "" {
				desc = append(desc, lines[j])
			}
		}
		title, company := splitTitleCompany(a.header)
		entries = append(entries, types.ExperienceEntry{
			Title:       title,
			Company:     company,
			Years:       a.years,
			Description: strings.Join(desc, "\n"),
		})
	}
	return entries
}

func splitTitleCompany(header string) (string, string) {
	if header == "" {
		return "", ""
	}
	parts := titleCompanySep.Split(header, 3)
	title := strings.TrimSpace(parts[0])
	if len(parts) < 2 {
		return title, ""
	}
	return title, strings.TrimSpace(parts[1])
}

// ExtractEducation finds degree lines. The institution and year come from
// the same line or, failing that, the neighbouring lines.
func (p *Processor) ExtractEducation(text string) []types.EducationEntry {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	var entries []types.EducationEntry
	for i, line := range lines {
		if line == "" || !degreeLine.MatchString(line) {
			continue
		}

		var degreeParts []string
		institution := ""
		for _, seg := range educationSegment.Split(line, -1) {
			seg = strings.TrimSpace(yearPattern.ReplaceAllString(seg, ""))
			seg = strings.Trim(seg, " ()-–")
			switch {
			case seg == "":
			case institution == "" && institutionWord.MatchString(seg) && !degreeLine.MatchString(seg):
				institution = seg
			default:
				degreeParts = append(degreeParts, seg)
			}
		}

		year := lastYear(line)
		for _, j := range []int{i + 1, i + 2, i - 1} {
			if j < 0 || j >= len(lines) || lines[j] == "" || degreeLine.MatchString(lines[j]) {
				continue
			}
			if institution == "" && institutionWord.MatchString(lines[j]) {
				institution = strings.TrimSpace(yearPattern.ReplaceAllString(lines[j], ""))
				institution = strings.Trim(institution, " ,|()-–")
			}
			if year == "" {
				year = lastYear(lines[j])
			}
		}

		entries = append(entries, types.EducationEntry{
			Degree:      strings.Join(degreeParts, ", "),
			Institution: institution,
			Year:        year,
		})
	}
	return entries
}

func lastYear(s string) string {
	all := yearPattern.FindAllString(s, -1)
	if len(all) == 0 {
		return ""
	}
	return all[len(all)-1]
}

// ExtractContact returns the first email address and phone number in text.
func (p *Processor) ExtractContact(text string) types.ContactInfo {
	return types.ContactInfo{
		Email: emailPattern.FindString(text),
		Phone: strings.TrimSpace(phonePattern.FindString(text)),
	}
}

var companyReferencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\byour (?:recent|latest) (?:product|project|initiative|announcement)\b[^.!?\n]{0,60}`),
	regexp.MustCompile(`(?i)\byour (?:mission|vision)(?: statement)?\b[^.!?\n]{0,60}`),
	regexp.MustCompile(`(?i)\byour (?:commitment|dedication) to\b[^.!?\n]{0,60}`),
	regexp.MustCompile(`(?i)\byour reputation for\b[^.!?\n]{0,60}`),
	regexp.MustCompile(`(?i)\byour work (?:in|on)\b[^.!?\n]{0,60}`),
	regexp.MustCompile(`(?i)\byour (?:blog|article|interview|talk) (?:about|on)\b[^.!?\n]{0,60}`),
}

// ExtractCompanyReferences returns phrases showing specific knowledge of the
// employer, in order of appearance.
func ExtractCompanyReferences(text string) []string {
	type hit struct {
		pos  int
		text string
	}
	var hits []hit
	for _, re := range companyReferencePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			hits = append(hits, hit{pos: loc[0], text: strings.TrimSpace(text[loc[0]:loc[1]])})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.text)
	}
	return uniqueOrdered(out)
}

// ExtractAchievements returns the sentences of text that contain an
// achievement verb.
func ExtractAchievements(text string) []string {
	var out []string
	for _, s := range Sentences(text) {
		if resources.AchievementVerbPattern.MatchString(s) {
			out = append(out, strings.Join(strings.Fields(s), " "))
		}
	}
	return uniqueOrdered(out)
}

var (
	titleFieldPattern = regexp.MustCompile(`(?im)^(?:title|position|role)\s*:\s*(.+)$`)
	titleSuffix       = regexp.MustCompile(`(?im)^([a-z][a-z ]*(?:developer|engineer|manager|director|analyst|designer|consultant|specialist))\s*(?:$|,)`)
	titleSeniority    = regexp.MustCompile(`(?im)^((?:senior|lead|principal|junior|staff) [a-z ]+)\s*(?:$|,)`)

	companyField    = regexp.MustCompile(`(?im)^(?:company|employer|organization)\s*:\s*(.+)$`)
	companyWorkedAt = regexp.MustCompile(`(?i:worked at|employed by|experience at)\s+([A-Z][\w&.]*(?:\s+[A-Z][\w&.]*)*)`)
	companyDated    = regexp.MustCompile(`(?m)^([A-Z][A-Za-z0-9 .&]+?)\s*,\s*(?i:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)
	bareYear        = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	leadingMonth    = regexp.MustCompile(`(?i)^(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)

	educationField  = regexp.MustCompile(`(?im)^(?:degree|education|qualification)\s*:\s*(.+)$`)
	degreeInField   = regexp.MustCompile(`(?i)(?:\b(?:bachelor|master|doctorate|phd|bs|ba|ms|ma|mba)|\b(?:b\.s|b\.a|m\.s|m\.a|ph\.d)\.)(?:'?s)?(?:\s+of\s+[a-z]+)?\s+in\s+([^\n,.;]+)`)
	institutionOf   = regexp.MustCompile(`(?i)\b(?:university|college|institute|school) of ([^\n,]+)`)
	institutionName = regexp.MustCompile(`((?:[A-Z][\w.&'\-]*\s+)+(?:University|College|Institute|School))\b`)
)

// ExtractEntities collects loosely-typed entity mentions from anywhere in
// the text.
func (p *Processor) ExtractEntities(text string) types.Entities {
	return types.Entities{
		Skills:    p.ExtractSkills(text),
		JobTitles: uniqueSorted(submatches(text, 1, titleFieldPattern, titleSuffix, titleSeniority)),
		Companies: extractCompanies(text),
		Education: uniqueSorted(submatches(text, 1, educationField, degreeInField, institutionOf, institutionName)),
	}
}

func extractCompanies(text string) []string {
	var out []string
	for _, c := range submatches(text, 1, companyField, companyWorkedAt, companyDated) {
		c = strings.Trim(c, " .,")
		if c == "" || bareYear.MatchString(c) || leadingMonth.MatchString(c) {
			continue
		}
		out = append(out, c)
	}
	return uniqueSorted(out)
}

func submatches(text string, group int, patterns ...*regexp.Regexp) []string {
	var out []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if v := strings.TrimSpace(m[group]); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
