package observability

import (
	"fmt"
	"sort"
	"strings"

	"github.com/searchfind/screening-engine/internal/matching"
	"github.com/searchfind/screening-engine/internal/resumeanalysis"
)

// PrintResumeAnalysis outputs a resume grade.
func (p *Printer) PrintResumeAnalysis(a *resumeanalysis.Analysis) {
	if a == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:      %d\n", a.OverallScore))
	sb.WriteString(fmt.Sprintf("Skills:       %d\n", a.SkillScore))
	sb.WriteString(fmt.Sprintf("Experience:   %d  %d years\n", a.ExperienceScore, a.Detailed.Experience.Timeline.TotalYears))
	sb.WriteString(fmt.Sprintf("Education:    %d\n", a.EducationScore))
	sb.WriteString(fmt.Sprintf("Completeness: %d%%\n", a.Completeness))
	sb.WriteString(fmt.Sprintf("Words:        %d\n\n", a.WordCount))
	writeList(&sb, "Technical skills", a.ParsedSkills.Technical, maxItemsToShow)
	writeList(&sb, "Missing sections", a.MissingSections, maxItemsToShow)
	writeList(&sb, "Suggestions", a.Suggestions, maxItemsToShow)

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs one candidate-job match.
func (p *Printer) PrintMatch(m *matching.Match) {
	if m == nil {
		return
	}
	var sb strings.Builder
	if m.CandidateName != "" {
		sb.WriteString(fmt.Sprintf("Candidate: %s\n", m.CandidateName))
	}
	sb.WriteString(fmt.Sprintf("Role:      %s\n", m.JobTitle))
	sb.WriteString(fmt.Sprintf("Match:     %d (%s)\n\n", m.OverallMatch, m.MatchTier))

	sb.WriteString(fmt.Sprintf("  Skills     %3d  %s\n", m.Skills.Score, m.Skills.Evaluation))
	sb.WriteString(fmt.Sprintf("  Experience %3d  %d years\n", m.Experience.Score, m.Experience.YearsExperience))
	sb.WriteString(fmt.Sprintf("  Education  %3d  %s\n", m.Education.Score, m.Education.DegreeEvaluation))
	sb.WriteString(fmt.Sprintf("  Title      %3d  %s\n", m.Title.Score, m.Title.Evaluation))
	sb.WriteString(fmt.Sprintf("  Location   %3d  %s\n\n", m.Location.Score, m.Location.Evaluation))

	writeList(&sb, "Missing skills", m.Skills.MissingSkills, maxItemsToShow)
	if r := m.Recommendations; r != nil {
		var all []string
		for _, group := range [][]string{r.Skills, r.Experience, r.Education, r.Resume} {
			all = append(all, group...)
		}
		writeList(&sb, "Recommendations", all, maxItemsToShow)
	}

	p.printBox("CANDIDATE MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs a candidate pool in match order.
func (p *Printer) PrintRanking(r *matching.Ranking) {
	if r == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:       %s\n", r.JobTitle))
	sb.WriteString(fmt.Sprintf("Candidates: %d\n\n", r.TotalCandidates))
	if len(r.Matches) == 0 {
		sb.WriteString("No candidates could be matched.")
		p.printBox("CANDIDATE RANKING", sb.String())
		return
	}

	count := min(len(r.Matches), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		m := r.Matches[i]
		sb.WriteString(fmt.Sprintf("#%-3d %-30s %3d  %s\n", i+1, truncate(m.CandidateName, 30), m.OverallMatch, m.MatchTier))
	}
	if len(r.Matches) > count {
		sb.WriteString(fmt.Sprintf("... and %d more candidates\n", len(r.Matches)-count))
	}
	p.printBox("CANDIDATE RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQualification outputs the qualification summary for one job.
func (p *Printer) PrintQualification(q *matching.Qualification) {
	if q == nil {
		return
	}
	p.printBox("QUALIFICATION", qualificationText(q))
}

// PrintQualifications outputs one summary per job, ordered by job ID.
func (p *Printer) PrintQualifications(qs map[string]matching.Qualification) {
	ids := make([]string, 0, len(qs))
	for id := range qs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		q := qs[id]
		p.printBox("QUALIFICATION "+id, qualificationText(&q))
	}
}

func qualificationText(q *matching.Qualification) string {
	var sb strings.Builder
	if !q.IsValid {
		sb.WriteString(fmt.Sprintf("Not assessed: %s\n\n", q.Error))
	} else {
		sb.WriteString(fmt.Sprintf("Match: %d%% (%s)\n\n", q.MatchPercentage, q.MatchTier))
	}
	writeList(&sb, "Missing", highlightLines(q.MissingRequirements), maxItemsToShow)
	writeList(&sb, "Strengths", highlightLines(q.Strengths), maxItemsToShow)
	writeList(&sb, "Suggestions", q.ImprovementSuggestions, maxItemsToShow)
	return strings.TrimSuffix(sb.String(), "\n")
}

func highlightLines(hs []matching.Highlight) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		switch {
		case len(h.Items) > 0:
			out = append(out, fmt.Sprintf("%s: %s", h.Type, strings.Join(h.Items, ", ")))
		case h.Current != nil:
			out = append(out, fmt.Sprintf("%s: %d of %v", h.Type, *h.Current, h.Required))
		case h.Degree != "":
			out = append(out, fmt.Sprintf("%s: %s", h.Type, h.Degree))
		default:
			out = append(out, fmt.Sprintf("%s: %v", h.Type, h.Required))
		}
	}
	return out
}

// PrintImprovementPlan outputs prioritized resume suggestions.
func (p *Printer) PrintImprovementPlan(plan *matching.ImprovementPlan) {
	if plan == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match:      %d%%\n", plan.MatchPercentage))
	sb.WriteString(fmt.Sprintf("Skills:     %d\n", plan.SkillMatch))
	sb.WriteString(fmt.Sprintf("Experience: %d\n", plan.ExperienceMatch))
	sb.WriteString(fmt.Sprintf("Education:  %d\n\n", plan.EducationMatch))
	writeList(&sb, "Missing skills", plan.MissingSkills, maxItemsToShow)
	writeList(&sb, "Missing keywords", plan.MissingKeywords, maxItemsToShow)

	groups := []struct {
		heading string
		items   []matching.Suggestion
	}{
		{"Critical", plan.Suggestions.Critical},
		{"Important", plan.Suggestions.Important},
		{"Recommended", plan.Suggestions.Recommended},
		{"Formatting", plan.Suggestions.Formatting},
		{"Long term", plan.Suggestions.LongTerm},
	}
	for _, g := range groups {
		texts := make([]string, 0, len(g.items))
		for _, s := range g.items {
			texts = append(texts, s.Text)
		}
		writeList(&sb, g.heading, texts, 3)
	}

	p.printBox("RESUME IMPROVEMENTS", strings.TrimSuffix(sb.String(), "\n"))
}
