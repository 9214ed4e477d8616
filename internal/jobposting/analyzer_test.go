package jobposting

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/types"
)

const samplePosting = `Senior Data Engineer at Globex
Location: Austin, TX
Employment: Full-time, hybrid

About Us
Globex builds analytics tools for retailers. Our mission is to help teams grow with data.

Job Description
You will build data pipelines and collaborate with the analytics team to improve reporting.

Responsibilities
- Design and maintain batch pipelines
- Build dashboards that improve decision making
- Deploy services to production
- Analyze data quality issues
- Mentor junior engineers

Requirements
- 3+ years of experience with Python
- Bachelor's degree in Computer Science required
- Strong SQL skills are a must have
- Experience with Airflow is a plus
- Familiarity with Kafka preferred

Benefits
We offer health insurance, a 401k match and paid time off. Salary: $120,000 - $150,000.

How to Apply
Send your resume to jobs@globex.example. Globex is an equal opportunity employer.`

const sampleRequirements = `- 7+ years of experience with Go
- Bachelor's degree in Computer Science
- Strong communication skills
- Knowledge of Kubernetes is a plus
- 3 years of experience in data modeling`

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return New(Options{Logger: logging.NewTestLogger(t)})
}

func TestAnalyze(t *testing.T) {
	a := newTestAnalyzer(t)

	got, err := a.Analyze(context.Background(), samplePosting)
	require.NoError(t, err)

	assert.True(t, got.IsValid)
	assert.Equal(t, types.DocumentJobDescription, got.DocumentType)
	assert.Greater(t, got.Confidence, 0.0)
	assert.Equal(t, len(strings.Fields(samplePosting)), got.WordCount)

	t.Run("extracted info", func(t *testing.T) {
		info := got.ExtractedInfo
		assert.Equal(t, "Senior Data Engineer", info.JobTitle)
		assert.Equal(t, "Globex", info.CompanyName)
		assert.Equal(t, "Austin, TX", info.Location)
		assert.Equal(t, "Full-time", info.EmploymentType)
		assert.Equal(t, "Hybrid", info.WorkArrangement)
		require.NotNil(t, info.YearsOfExperience)
		assert.Equal(t, 3, *info.YearsOfExperience)
		assert.Equal(t, "Bachelor's Degree", info.EducationRequirement)
		require.NotNil(t, info.SalaryRange)
		assert.Equal(t, SalaryRange{Min: "120,000", Max: "150,000"}, *info.SalaryRange)
		assert.Equal(t, []string{"we offer health insurance, a 401k match and paid time off."}, info.Benefits)
	})

	t.Run("structure", func(t *testing.T) {
		s := got.Structure
		assert.Equal(t, []string{
			SectionCompanyOverview, SectionJobDescription, SectionResponsibilities,
			SectionRequirements, SectionBenefits, SectionApplicationProcess,
		}, s.SectionOrder)
		assert.Empty(t, s.SectionsMissing)
		assert.Equal(t, 100, s.Score)
	})

	t.Run("content", func(t *testing.T) {
		c := got.Content
		assert.Equal(t, 70, c.Title.Score)
		assert.Equal(t, "High", c.Title.Specificity)
		assert.Equal(t, "Senior", c.Title.SeniorityLevel)
		assert.Equal(t, "High", c.Title.Searchability)

		assert.Equal(t, 40, c.CompanyDescription.Score)
		assert.True(t, c.CompanyDescription.MentionsMission)
		assert.True(t, c.CompanyDescription.MentionsGrowth)
		assert.False(t, c.CompanyDescription.MentionsValues)
		assert.False(t, c.CompanyDescription.MentionsCulture)

		assert.Equal(t, 75, c.JobDescription.Score)
		assert.Equal(t, 65, c.Responsibilities.Score)
		assert.Equal(t, 5, c.Responsibilities.ResponsibilityCount)
		assert.True(t, c.Responsibilities.HasBulletPoints)
		assert.Equal(t, 67, c.Score)
	})

	t.Run("requirements", func(t *testing.T) {
		r := got.Requirements
		assert.True(t, r.RequirementsPresent)
		assert.Equal(t, []string{"Bachelor's degree in Computer Science required", "Strong SQL skills are a must have"}, r.MustHave)
		assert.Equal(t, []string{"Experience with Airflow is a plus", "Familiarity with Kafka preferred"}, r.NiceToHave)
		assert.Equal(t, []string{"3+ years of experience with Python"}, r.Unclassified)
		assert.Equal(t, []YearsRequirement{{
			Years: 3, Area: "Python", Kind: KindUnspecified, FullText: "3+ years of experience with Python",
		}}, r.YearsOfExperience)
		require.Len(t, r.Education, 1)
		assert.Equal(t, "Bachelor's Degree", r.Education[0].Level)
		assert.Equal(t, StatusRequired, r.Education[0].Status)
		assert.Equal(t, KindMustHave, r.Education[0].Kind)
		require.Len(t, r.Ambiguous, 1)
		assert.Equal(t, "Strong", r.Ambiguous[0].Term)
		assert.Equal(t, 50, r.Score)
	})

	t.Run("inclusivity", func(t *testing.T) {
		in := got.Inclusivity
		assert.True(t, in.MentionsDiversity)
		assert.True(t, in.MentionsEqualOpportunity)
		assert.False(t, in.AccessibilityConsiderations)
		assert.Empty(t, in.GenderedInstances)
		assert.Equal(t, 80, in.Score)
	})

	t.Run("quality", func(t *testing.T) {
		q := got.Quality
		assert.Equal(t, 68, q.BenefitsAppeal.Score)
		assert.Equal(t, 60, q.DescriptionQuality.Score)
		assert.InDelta(t, 68.55, q.Overall.Score, 0.1)
		assert.Equal(t, "Above average overall job posting", q.Overall.Evaluation)

		sum := 0.0
		for _, f := range q.factors() {
			sum += f.Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("suggestions", func(t *testing.T) {
		s := got.Suggestions
		assert.Empty(t, s.Title)
		assert.Empty(t, s.Structure)
		assert.Equal(t, []string{"Enhance your company description by including information about your values, culture"}, s.Content)
		assert.Equal(t, []string{"Replace ambiguous terms like 'familiar with' or 'strong' with more specific, measurable criteria"}, s.Requirements)
		assert.Empty(t, s.Inclusivity)
		assert.Empty(t, s.General)
		assert.Empty(t, s.ImprovedTemplate)
	})
}

func TestAnalyze_Rejects(t *testing.T) {
	a := newTestAnalyzer(t)

	t.Run("not a posting", func(t *testing.T) {
		_, err := a.Analyze(context.Background(), "The quick brown fox jumps over the lazy dog.")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, msgNotJobPosting, verr.Message)
		assert.Less(t, verr.Confidence, minSecondaryConfidence)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := a.Analyze(ctx, samplePosting)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestAnalyze_LowQualityGetsTemplate(t *testing.T) {
	a := newTestAnalyzer(t)
	text := `We are looking for someone to join our team. This is a full-time remote position.
Requirements: experience with sales. Apply by email. Salary is competitive and benefits are included.`

	got, err := a.Analyze(context.Background(), text)
	require.NoError(t, err)

	assert.Less(t, got.Quality.Overall.Score, float64(templateThreshold))
	assert.NotEmpty(t, got.Suggestions.ImprovedTemplate)
	assert.Contains(t, got.Suggestions.ImprovedTemplate, "Full-time")
	assert.NotEmpty(t, got.Suggestions.Structure)
	assert.LessOrEqual(t, len(got.Suggestions.Structure), maxSuggestionsPerCategory)
}

func TestAnalyzeTitle(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		specificity string
		seniority   string
		standard    bool
	}{
		{"technology", "Senior Python Developer", "High", "Senior", false},
		{"specialization", "Backend Engineer", "High", "Not specified", false},
		{"soft skill only", "Mentoring Program Coordinator", "Medium", "Not specified", false},
		{"industry standard", "Lead Software Engineer", "Medium", "Lead", true},
		{"vague", "Associate", "Low", "Not specified", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzeTitle(tt.title)
			assert.True(t, got.IsPresent)
			assert.Equal(t, tt.specificity, got.Specificity)
			assert.Equal(t, tt.seniority, got.SeniorityLevel)
			assert.Equal(t, tt.standard, got.IndustryStandard)
		})
	}

	missing := analyzeTitle("  ")
	assert.False(t, missing.IsPresent)
	assert.Zero(t, missing.Score)
}

func TestOptimizeRequirements(t *testing.T) {
	a := newTestAnalyzer(t)

	got, err := a.OptimizeRequirements(context.Background(), sampleRequirements)
	require.NoError(t, err)

	want := "## Required Qualifications\n\n" +
		"- demonstrated communication skills\n" +
		"\n## Preferred Qualifications\n\n" +
		"- experience with Go\n" +
		"- Bachelor's degree in Computer Science or equivalent practical experience\n" +
		"- experience with Kubernetes is a plus\n" +
		"- proven experience in data modeling\n"
	assert.Equal(t, want, got.Text)
	assert.Equal(t, 1, got.MustHaveCount)
	assert.Equal(t, 4, got.NiceToHaveCount)
	assert.Len(t, got.Explanations.SpecificChanges, 5)

	assert.True(t, strings.HasSuffix(got.NiceToHave[0].Rationale, movedToPreferred))
	assert.True(t, strings.HasSuffix(got.NiceToHave[1].Rationale, movedToPreferred))
	assert.False(t, strings.HasSuffix(got.NiceToHave[2].Rationale, movedToPreferred))
}

func TestOptimizeRequirements_Rejects(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.OptimizeRequirements(context.Background(), " \n ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgNoRequirements, verr.Message)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.OptimizeRequirements(ctx, sampleRequirements)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptimizeRequirement(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{"many years", "12 years of experience with Java", "significant experience with Java", true},
		{"practice verb", "Designing APIs", "Experience with designing APIs", true},
		{"ability verb", "Communicate clearly with stakeholders", "Ability to communicate clearly with stakeholders", true},
		{"already clear", "Ability to lead teams", "Ability to lead teams", false},
		{"degree with equivalent", "BS in Physics or equivalent practical experience", "BS in Physics or equivalent practical experience", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rationale := optimizeRequirement(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.changed {
				assert.NotEqual(t, noChangesRationale, rationale)
			} else {
				assert.Equal(t, noChangesRationale, rationale)
			}
		})
	}
}

func TestSectionBody(t *testing.T) {
	header := regexp.MustCompile(`(?i)about us[^\n]*`)

	assert.Equal(t, "We build things.\n- item", sectionBody("About Us\nWe build things.\n- item\nNext line\n\nOther", header))
	assert.Equal(t, "", sectionBody("About Us", header))
	assert.Equal(t, "", sectionBody("Nothing here\nat all", header))
}

func TestContextAround(t *testing.T) {
	text := strings.Repeat("a", 150) + ". Key phrase here. " + strings.Repeat("b", 150)
	assert.Equal(t, "Key phrase here.", contextAround(text, 152, 155))
	assert.Equal(t, "short text", contextAround("short text", 0, 5))
}

func TestOrderScore(t *testing.T) {
	assert.Zero(t, orderScore([]string{SectionRequirements, SectionCompanyOverview}))
	assert.Equal(t, float64(maxOrderPoints), orderScore([]string{SectionCompanyOverview, SectionRequirements}))
	assert.Zero(t, orderScore([]string{SectionBenefits}))
}

func TestBalanceScore(t *testing.T) {
	tests := []struct {
		name    string
		lengths map[string]int
		want    float64
	}{
		{"balanced", map[string]int{"a": 30, "b": 100}, 10},
		{"uneven", map[string]int{"a": 15, "b": 100}, 5},
		{"too short", map[string]int{"a": 5}, 0},
		{"empty", map[string]int{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, balanceScore(tt.lengths))
		})
	}
}

func TestExtractBenefits(t *testing.T) {
	got := extractBenefits("perks\n- dental insurance\n- stock options\n- gym membership")
	assert.Equal(t, []string{"dental insurance", "gym membership", "stock options"}, got)
	assert.Empty(t, extractBenefits("nothing to see here"))
}
