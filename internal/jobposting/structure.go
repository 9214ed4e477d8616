package jobposting

import (
	"regexp"
	"sort"
	"strings"

	"github.com/searchfind/screening-engine/internal/scoring"
)

// Posting sections, in their ideal order.
const (
	SectionCompanyOverview    = "company_overview"
	SectionJobDescription     = "job_description"
	SectionResponsibilities   = "responsibilities"
	SectionRequirements       = "requirements"
	SectionBenefits           = "benefits"
	SectionApplicationProcess = "application_process"
)

type sectionDef struct {
	name     string
	patterns []*regexp.Regexp
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// sectionPatterns match section headings in lowercased text.
var sectionPatterns = []sectionDef{
	{SectionCompanyOverview, compileAll(
		`\babout (?:us|our company|our team|the company)\b`,
		`\bcompany overview\b`,
		`\bwho we are\b`,
	)},
	{SectionJobDescription, compileAll(
		`\bjob (?:description|summary)\b`,
		`\brole overview\b`,
		`\bposition (?:description|summary|overview)\b`,
	)},
	{SectionResponsibilities, compileAll(
		`\bresponsibilities\b`,
		`\bduties\b`,
		`\bwhat you'll do\b`,
		`\bday[ -]to[ -]day\b`,
		`\bkey activities\b`,
	)},
	{SectionRequirements, compileAll(
		`\brequirements\b`,
		`\bskills (?:required|needed)\b`,
		`\bqualifications\b`,
		`\bwhat you'll need\b`,
		`\bwho we're looking for\b`,
	)},
	{SectionBenefits, compileAll(
		`\bbenefits\b`,
		`\bperks\b`,
		`\bwhat we offer\b`,
		`\bcompensation\b`,
		`\bwhy work (?:for|with) us\b`,
	)},
	{SectionApplicationProcess, compileAll(
		`\bhow to apply\b`,
		`\bapplication process\b`,
		`\bnext steps\b`,
		`\bto apply\b`,
	)},
}

var idealOrder = map[string]int{
	SectionCompanyOverview:    0,
	SectionJobDescription:     1,
	SectionResponsibilities:   2,
	SectionRequirements:       3,
	SectionBenefits:           4,
	SectionApplicationProcess: 5,
}

// Section groups and the share of the structure score each is worth.
var sectionGroups = []struct {
	sections []string
	points   float64
}{
	{[]string{SectionJobDescription, SectionResponsibilities, SectionRequirements}, 50},
	{[]string{SectionCompanyOverview, SectionBenefits}, 30},
	{[]string{SectionApplicationProcess}, 20},
}

const maxOrderPoints = 10

// StructureAnalysis records which sections a posting has and how they are
// laid out.
type StructureAnalysis struct {
	SectionsPresent []string       `json:"sections_present" yaml:"sections_present"`
	SectionsMissing []string       `json:"sections_missing" yaml:"sections_missing"`
	SectionOrder    []string       `json:"section_order" yaml:"section_order"`
	SectionLengths  map[string]int `json:"section_lengths" yaml:"section_lengths"`
	Score           int            `json:"structure_score" yaml:"structure_score"`
	Evaluation      string         `json:"evaluation" yaml:"evaluation"`

	rawScore float64
}

// Has reports whether section was found.
func (s StructureAnalysis) Has(section string) bool {
	for _, p := range s.SectionsPresent {
		if p == section {
			return true
		}
	}
	return false
}

func analyzeStructure(text string) StructureAnalysis {
	lower := strings.ToLower(text)
	s := StructureAnalysis{
		SectionsPresent: []string{},
		SectionsMissing: []string{},
		SectionOrder:    []string{},
		SectionLengths:  map[string]int{},
	}

	type located struct {
		name string
		pos  int
	}
	var found []located
	for _, def := range sectionPatterns {
		pos := -1
		for _, re := range def.patterns {
			if loc := re.FindStringIndex(lower); loc != nil && (pos < 0 || loc[0] < pos) {
				pos = loc[0]
			}
		}
		if pos < 0 {
			s.SectionsMissing = append(s.SectionsMissing, def.name)
			continue
		}
		s.SectionsPresent = append(s.SectionsPresent, def.name)
		found = append(found, located{def.name, pos})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })
	for i, f := range found {
		end := len(lower)
		if i+1 < len(found) {
			end = found[i+1].pos
		}
		s.SectionOrder = append(s.SectionOrder, f.name)
		s.SectionLengths[f.name] = len(strings.Fields(lower[f.pos:end]))
	}

	score := 0.0
	for _, g := range sectionGroups {
		present := 0
		for _, name := range g.sections {
			if s.Has(name) {
				present++
			}
		}
		score += float64(present) / float64(len(g.sections)) * g.points
	}
	score += orderScore(s.SectionOrder)
	score += balanceScore(s.SectionLengths)

	s.rawScore = scoring.ClampFloat(score, scoring.MinScore, scoring.MaxScore)
	s.Score = scoring.Clamp(s.rawScore)

	switch {
	case s.rawScore >= 90:
		s.Evaluation = "Excellent structure with all key sections in logical order"
	case s.rawScore >= 75:
		s.Evaluation = "Good structure with most key sections present"
	case s.rawScore >= 50:
		s.Evaluation = "Adequate structure but missing some important sections"
	default:
		s.Evaluation = "Poor structure, missing multiple critical sections"
	}
	return s
}

// orderScore awards up to maxOrderPoints for the share of section pairs that
// appear in their ideal relative order.
func orderScore(order []string) float64 {
	if len(order) < 2 {
		return 0
	}
	correct, total := 0, 0
	for i := range order {
		for j := range order {
			if i == j {
				continue
			}
			total++
			if (idealOrder[order[i]] < idealOrder[order[j]]) == (i < j) {
				correct++
			}
		}
	}
	return float64(correct) / float64(total) * maxOrderPoints
}

// balanceScore rewards sections of comparable length.
func balanceScore(lengths map[string]int) float64 {
	if len(lengths) == 0 {
		return 0
	}
	lo, hi := -1, 0
	for _, l := range lengths {
		if lo < 0 || l < lo {
			lo = l
		}
		hi = max(hi, l)
	}
	ratio := float64(hi) / float64(max(lo, 1))
	switch {
	case lo > 20 && ratio < 5:
		return 10
	case lo > 10 && ratio < 10:
		return 5
	}
	return 0
}
