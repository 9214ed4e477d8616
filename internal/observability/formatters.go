// Package observability renders engine results as boxed text reports for
// the CLI's text output mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/searchfind/screening-engine/internal/coverletter"
	"github.com/searchfind/screening-engine/internal/jobposting"
	"github.com/searchfind/screening-engine/internal/matching"
	"github.com/searchfind/screening-engine/internal/resumeanalysis"
	"github.com/searchfind/screening-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes text reports.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// writeList appends up to limit items with a "... and N more" tail.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// PrintValidation outputs a document classification.
func (p *Printer) PrintValidation(v *types.ValidationResult) {
	if v == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:       %s\n", v.DocumentType.Label()))
	sb.WriteString(fmt.Sprintf("Valid:      %s\n", yesNo(v.IsValid)))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", v.Confidence))
	sb.WriteString(fmt.Sprintf("Words:      %d\n", v.WordCount))
	if v.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:      %s\n", v.Error))
	}
	if len(v.TypeScores) > 0 {
		sb.WriteString("\nType scores:\n")
		for _, dt := range types.ScoredDocumentTypes {
			sb.WriteString(fmt.Sprintf("  %-16s %.2f\n", dt.String(), v.TypeScores[dt]))
		}
	}
	p.printBox("DOCUMENT VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeValidation outputs a resume section report.
func (p *Printer) PrintResumeValidation(v *types.ResumeValidation) {
	if v == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Valid resume: %s\n", yesNo(v.IsValidResume)))
	if v.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:        %s\n", v.Error))
		p.printBox("RESUME VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
		return
	}
	sb.WriteString(fmt.Sprintf("Score:        %d (%s)\n", v.OverallScore, v.Rating))
	sb.WriteString(fmt.Sprintf("Completeness: %d%%\n\n", v.Completeness))

	names := make([]string, 0, len(v.Sections))
	for name := range v.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := v.Sections[name]
		mark := "✗"
		if s.Present {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("  %s %-14s %s\n", mark, name, s.Rating))
	}
	sb.WriteString("\n")
	writeList(&sb, "Recommendations", v.Recommendations, maxItemsToShow)
	p.printBox("RESUME VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScreeningResult outputs the score card of one candidate.
func (p *Printer) PrintScreeningResult(r *types.ScreeningResult) {
	if r == nil {
		return
	}
	var sb strings.Builder
	name := r.CandidateName
	if name == "" {
		name = "(unnamed candidate)"
	}
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", name))
	sb.WriteString(fmt.Sprintf("Role:      %s\n", r.JobTitle))
	sb.WriteString(fmt.Sprintf("Score:     %d (%s)\n\n", r.OverallScore, r.CandidateTier))

	sb.WriteString(fmt.Sprintf("  Skills       %3d  %s\n", r.SkillsMatch.Score, r.SkillsMatch.Evaluation))
	sb.WriteString(fmt.Sprintf("  Experience   %3d  %d years\n", r.ExperienceMatch.Score, r.ExperienceMatch.YearsExperience))
	sb.WriteString(fmt.Sprintf("  Education    %3d  %s\n", r.EducationMatch.Score, r.EducationMatch.DegreeEvaluation))
	sb.WriteString(fmt.Sprintf("  Resume       %3d  %s\n", r.ResumeQuality.Score, r.ResumeQuality.Evaluation))
	if r.HasCoverLetter {
		sb.WriteString(fmt.Sprintf("  Cover letter %3d  %s\n", r.CoverLetterQuality.Score, r.CoverLetterQuality.Evaluation))
	}
	sb.WriteString("\n")

	writeList(&sb, "Missing skills", r.SkillsMatch.MissingRequired, maxItemsToShow)
	if len(r.RedFlags) > 0 {
		sb.WriteString("Red flags:\n")
		for _, flag := range r.RedFlags {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", flag))
		}
		sb.WriteString("\n")
	}
	writeList(&sb, "Next steps", r.RecommendedActions, 3)

	p.printBox("SCREENING RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBulkResult outputs the ranking of a bulk screening.
func (p *Printer) PrintBulkResult(b *types.BulkResult) {
	if b == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:       %s\n", b.JobTitle))
	sb.WriteString(fmt.Sprintf("Screened:   %d of %d valid\n", b.Stats.ValidApplications, b.Stats.TotalApplications))
	sb.WriteString(fmt.Sprintf("Average:    %.1f\n\n", b.Stats.AverageScore))

	if len(b.ScreeningResults) == 0 {
		sb.WriteString("No valid applications.")
		p.printBox("BULK SCREENING", sb.String())
		return
	}

	count := min(len(b.ScreeningResults), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		r := b.ScreeningResults[i]
		name := r.CandidateName
		if name == "" {
			name = r.ApplicationID
		}
		sb.WriteString(fmt.Sprintf("#%-3d %-30s %3d  %s\n", i+1, truncate(name, 30), r.OverallScore, r.CandidateTier))
	}
	if len(b.ScreeningResults) > count {
		sb.WriteString(fmt.Sprintf("... and %d more candidates\n", len(b.ScreeningResults)-count))
	}

	sb.WriteString("\nTiers:\n")
	for _, tr := range types.TierRanges {
		if n := b.Stats.TierDistribution[tr.Tier]; n > 0 {
			sb.WriteString(fmt.Sprintf("  %-10s %d\n", tr.Tier, n))
		}
	}
	p.printBox("BULK SCREENING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCriteria outputs a screening checklist.
func (p *Printer) PrintCriteria(c *types.ScreeningCriteria) {
	if c == nil {
		return
	}
	d := c.Criteria
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role: %s\n\n", c.JobTitle))
	writeList(&sb, "Must have", d.Skills.MustHave, maxItemsToShow)
	writeList(&sb, "Nice to have", d.Skills.NiceToHave, maxItemsToShow)

	education := d.Education.MinimumLevel
	if education == "" {
		education = "none"
	}
	sb.WriteString(fmt.Sprintf("Education:  %s (required: %s)\n", education, yesNo(d.Education.IsRequired)))
	sb.WriteString(fmt.Sprintf("Experience: %d+ years\n\n", d.Experience.MinimumYears))
	writeList(&sb, "Questions", d.ScreeningQuestions, 3)
	writeList(&sb, "Disqualifiers", d.AutomaticDisqualifiers, maxItemsToShow)

	p.printBox("SCREENING CRITERIA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverLetterAnalysis outputs a cover letter grade.
func (p *Printer) PrintCoverLetterAnalysis(a *coverletter.Analysis) {
	if a == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:         %d\n", a.OverallScore))
	sb.WriteString(fmt.Sprintf("Structure:       %d\n", a.Structure.Score))
	sb.WriteString(fmt.Sprintf("Content:         %d  %s\n", a.Content.Score, a.Content.Evaluation))
	sb.WriteString(fmt.Sprintf("Personalization: %d  %s\n", a.Personalization.Score, a.Personalization.Evaluation))
	if a.JobRelevance != nil {
		sb.WriteString(fmt.Sprintf("Job relevance:   %d  %s\n", a.JobRelevance.Score, a.JobRelevance.Evaluation))
	}
	sb.WriteString(fmt.Sprintf("Words:           %d\n\n", a.WordCount))
	writeList(&sb, "Missing parts", a.Structure.SectionsMissing, maxItemsToShow)
	writeList(&sb, "Suggestions", a.Suggestions, maxItemsToShow)

	p.printBox("COVER LETTER ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobPostingAnalysis outputs a job posting grade.
func (p *Printer) PrintJobPostingAnalysis(a *jobposting.Analysis) {
	if a == nil {
		return
	}
	info := a.ExtractedInfo
	q := a.Quality
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", info.JobTitle))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", info.CompanyName))
	if info.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", info.Location))
	}
	sb.WriteString(fmt.Sprintf("Quality:  %.1f (%s)\n\n", q.Overall.Score, q.Overall.Evaluation))

	rows := []struct {
		label string
		score jobposting.QualityScore
	}{
		{"Title", q.TitleQuality},
		{"Description", q.DescriptionQuality},
		{"Requirements", q.RequirementsClarity},
		{"Responsibilities", q.ResponsibilitiesClarity},
		{"Benefits", q.BenefitsAppeal},
		{"Inclusivity", q.Inclusivity},
		{"Structure", q.StructureQuality},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  %-16s %3d  %s\n", row.label, row.score.Score, row.score.Evaluation))
	}
	sb.WriteString("\n")

	var suggestions []string
	for _, group := range [][]string{a.Suggestions.Title, a.Suggestions.Structure, a.Suggestions.Content,
		a.Suggestions.Requirements, a.Suggestions.Inclusivity, a.Suggestions.General} {
		suggestions = append(suggestions, group...)
	}
	writeList(&sb, "Suggestions", suggestions, maxItemsToShow)

	p.printBox("JOB POSTING ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptimizedRequirements outputs the rewritten requirements section.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintOptimizedRequirements(o *jobposting.OptimizedRequirements) {
	if o == nil {
		return
	}
	summary := fmt.Sprintf("Must have:    %d\nNice to have: %d", o.MustHaveCount, o.NiceToHaveCount)
	p.printBox("OPTIMIZED REQUIREMENTS", summary)
	fmt.Fprintf(p.out, "\n%s", o.Text)
}

// Print dispatches on the result type. It reports false for types it
// cannot render.
func (p *Printer) Print(v interface{}) bool {
	switch r := v.(type) {
	case *types.ValidationResult:
		p.PrintValidation(r)
	case *types.ResumeValidation:
		p.PrintResumeValidation(r)
	case *types.ScreeningResult:
		p.PrintScreeningResult(r)
	case *types.BulkResult:
		p.PrintBulkResult(r)
	case *types.ScreeningCriteria:
		p.PrintCriteria(r)
	case *coverletter.Analysis:
		p.PrintCoverLetterAnalysis(r)
	case *jobposting.Analysis:
		p.PrintJobPostingAnalysis(r)
	case *jobposting.OptimizedRequirements:
		p.PrintOptimizedRequirements(r)
	case *resumeanalysis.Analysis:
		p.PrintResumeAnalysis(r)
	case *matching.Match:
		p.PrintMatch(r)
	case *matching.Ranking:
		p.PrintRanking(r)
	case *matching.Qualification:
		p.PrintQualification(r)
	case map[string]matching.Qualification:
		p.PrintQualifications(r)
	case *matching.ImprovementPlan:
		p.PrintImprovementPlan(r)
	default:
		return false
	}
	return true
}
