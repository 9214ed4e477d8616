package screening

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchfind/screening-engine/internal/types"
)

func TestMatchSkills(t *testing.T) {
	tests := []struct {
		name          string
		candidate     []string
		required      []string
		preferred     []string
		wantMatching  []string
		wantMissing   []string
		wantPreferred []string
		wantPct       float64
		wantScore     int
		wantEval      string
	}{
		{
			name:         "partial required",
			candidate:    []string{"python", "sql", "react"},
			required:     []string{"python", "django", "sql"},
			wantMatching: []string{"python", "sql"},
			wantMissing:  []string{"django"},
			wantPct:      66.7,
			wantScore:    47,
			wantEval:     "Moderate skills match with some missing required skills",
		},
		{
			name:          "all required and preferred",
			candidate:     []string{"Go", "Postgres", "Docker"},
			required:      []string{"go", "postgres"},
			preferred:     []string{"docker"},
			wantMatching:  []string{"go", "postgres"},
			wantMissing:   []string{},
			wantPreferred: []string{"docker"},
			wantPct:       100,
			wantScore:     100,
			wantEval:      "Excellent skills match with all required skills and most preferred skills",
		},
		{
			name:         "substring overlap on long names",
			candidate:    []string{"postgresql"},
			required:     []string{"postgres"},
			wantMatching: []string{"postgres"},
			wantMissing:  []string{},
			wantPct:      100,
			wantScore:    70,
			wantEval:     "Strong skills match with all required skills",
		},
		{
			name:         "no substring overlap on short names",
			candidate:    []string{"golang"},
			required:     []string{"go"},
			wantMatching: []string{},
			wantMissing:  []string{"go"},
			wantPct:      0,
			wantScore:    0,
			wantEval:     "Limited skills match with several missing required skills",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchSkills(tt.candidate, tt.required, tt.preferred)
			assert.Equal(t, tt.wantMatching, got.MatchingRequired)
			assert.Equal(t, tt.wantMissing, got.MissingRequired)
			if tt.wantPreferred != nil {
				assert.Equal(t, tt.wantPreferred, got.MatchingPreferred)
			}
			assert.InDelta(t, tt.wantPct, got.PercentageRequired, 1e-9)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantEval, got.Evaluation)
		})
	}
}

func TestMatchSkills_NothingRequired(t *testing.T) {
	got := matchSkills([]string{"python"}, nil, []string{"sql"})
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, 100.0, got.PercentageRequired)
	assert.Equal(t, 0.0, got.PercentagePreferred)
	assert.Equal(t, "No specific skills were required for this job", got.Evaluation)
	assert.NotNil(t, got.MatchingRequired)
}

func TestEntrySpan(t *testing.T) {
	tests := []struct {
		years     string
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"2015 - 2018", 2015, 2018, true},
		{"2019 - Present", 2019, 2025, true},
		{"2020-current", 2020, 2025, true},
		{"2021 - now", 2021, 2025, true},
		{"since 2020", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		start, end, ok := entrySpan(tt.years, 2025)
		assert.Equal(t, tt.wantOK, ok, tt.years)
		assert.Equal(t, tt.wantStart, start, tt.years)
		assert.Equal(t, tt.wantEnd, end, tt.years)
	}
}

func TestTotalYears_SkipsImplausibleSpans(t *testing.T) {
	entries := []types.ExperienceEntry{
		{Years: "2015 - 2018"},
		{Years: "2020 - 2010"},
		{Years: "1900 - 2000"},
		{Years: "2022 - Present"},
	}
	assert.Equal(t, 6, TotalYears(entries, 2025))
}

func TestMatchExperience(t *testing.T) {
	entries := []types.ExperienceEntry{
		{Title: "Senior Engineer", Company: "Acme", Years: "2019 - Present", Description: "Built billing pipelines in python"},
		{Title: "Engineer", Company: "Initech", Years: "2015 - 2018", Description: "Reporting dashboards"},
	}

	tests := []struct {
		name          string
		req           types.ExperienceRequirements
		wantScore     int
		wantYears     int
		wantEval      string
		wantMatched   []string
		wantMissing   []string
		wantAreaScore int
	}{
		{
			name:          "no requirement",
			req:           types.ExperienceRequirements{},
			wantScore:     100,
			wantYears:     100,
			wantEval:      "No specific years of experience required",
			wantMatched:   []string{},
			wantMissing:   []string{},
			wantAreaScore: 100,
		},
		{
			name:          "exceeds minimum",
			req:           types.ExperienceRequirements{MinYears: 5},
			wantScore:     100,
			wantYears:     100,
			wantEval:      "Experience (9 years) exceeds minimum requirement (5 years)",
			wantMatched:   []string{},
			wantMissing:   []string{},
			wantAreaScore: 100,
		},
		{
			name:          "exceeds preferred",
			req:           types.ExperienceRequirements{MinYears: 3, PreferredYears: 8},
			wantScore:     100,
			wantYears:     100,
			wantEval:      "Experience (9 years) exceeds preferred level (8 years)",
			wantMatched:   []string{},
			wantMissing:   []string{},
			wantAreaScore: 100,
		},
		{
			name:          "below minimum with areas",
			req:           types.ExperienceRequirements{MinYears: 10, Areas: []string{"billing", "mobile"}},
			wantScore:     58,
			wantYears:     63,
			wantEval:      "Experience (9 years) is below the required minimum (10 years)",
			wantMatched:   []string{"billing"},
			wantMissing:   []string{"mobile"},
			wantAreaScore: 50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchExperience(entries, tt.req, 2025)
			assert.Equal(t, 9, got.YearsExperience)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantYears, got.YearsScore)
			assert.Equal(t, tt.wantEval, got.YearsEvaluation)
			assert.Equal(t, tt.wantMatched, got.RelevantAreasMatched)
			assert.Equal(t, tt.wantMissing, got.RelevantAreasMissing)
			assert.Equal(t, tt.wantAreaScore, got.AreasScore)
			assert.Equal(t, 2, got.ExperienceEntries)
		})
	}
}

func TestMatchExperience_BetweenMinimumAndPreferred(t *testing.T) {
	entries := []types.ExperienceEntry{{Years: "2019 - 2025"}}
	got := MatchExperience(entries, types.ExperienceRequirements{MinYears: 4, PreferredYears: 8}, 2025)
	assert.Equal(t, 90, got.YearsScore)
	assert.Contains(t, got.YearsEvaluation, "approaching preferred level (8 years)")
}

func TestMatchEducation(t *testing.T) {
	bachelor := []types.EducationEntry{{Degree: "Bachelor of Science in Computer Science", Institution: "Stanford University", Year: "2015"}}

	t.Run("no requirement", func(t *testing.T) {
		got := MatchEducation(bachelor, types.EducationRequirements{})
		assert.Equal(t, 100, got.Score)
		assert.True(t, got.HasRequiredEducation)
		require.NotNil(t, got.CandidateHighestDegree)
		assert.Equal(t, DegreeBachelors, got.CandidateHighestDegree.Type)
		assert.Equal(t, "Stanford University", got.CandidateHighestDegree.Institution)
		assert.Equal(t, "No specific degree requirement for this position", got.DegreeEvaluation)
	})

	t.Run("below required level", func(t *testing.T) {
		got := MatchEducation(bachelor, types.EducationRequirements{
			MinDegreeLevel:  DegreeMasters,
			Required:        true,
			PreferredFields: []string{"computer science"},
		})
		assert.False(t, got.HasRequiredEducation)
		assert.Equal(t, 75, got.DegreeScore)
		assert.Equal(t, "Education (Bachelor's) is below required level (Master's)", got.DegreeEvaluation)
		assert.Equal(t, 100, got.FieldScore)
		assert.Equal(t, []string{}, got.FieldMismatches)
		assert.InDelta(t, 82, got.Score, 1)
	})

	t.Run("meets level, wrong field", func(t *testing.T) {
		got := MatchEducation(bachelor, types.EducationRequirements{
			MinDegreeLevel:  DegreeBachelors,
			Required:        true,
			PreferredFields: []string{"biology"},
		})
		assert.True(t, got.HasRequiredEducation)
		assert.Equal(t, "Education (Bachelor's) meets required level (Bachelor's)", got.DegreeEvaluation)
		assert.Equal(t, 40, got.FieldScore)
		assert.Equal(t, []string{"biology"}, got.FieldMismatches)
		assert.Equal(t, "Field of study does not match job requirements", got.FieldEvaluation)
		assert.Equal(t, 82, got.Score)
	})

	t.Run("not required floors at 70", func(t *testing.T) {
		got := MatchEducation(nil, types.EducationRequirements{MinDegreeLevel: DegreePhD})
		assert.Nil(t, got.CandidateHighestDegree)
		assert.Equal(t, 50, got.DegreeScore)
		assert.Equal(t, "No degree information found in resume", got.DegreeEvaluation)
		assert.Equal(t, 70, got.Score)
	})

	t.Run("required and missing", func(t *testing.T) {
		got := MatchEducation(nil, types.EducationRequirements{MinDegreeLevel: DegreePhD, Required: true})
		assert.Equal(t, 0, got.DegreeScore)
		assert.Equal(t, 30, got.Score)
	})
}

func TestDegreeField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bachelor of Science in Computer Science", "science in computer science"},
		{"Master's in Data Science", "data science"},
		{"MBA", ""},
		{"Certificate of Completion in Welding", "completion in welding"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, degreeField(tt.in), tt.in)
	}
}

func TestNormalizeDegree(t *testing.T) {
	assert.Equal(t, DegreeBachelors, NormalizeDegree("BS in Computer Science"))
	assert.Equal(t, DegreeMasters, NormalizeDegree("Master's degree"))
	assert.Equal(t, DegreePhD, NormalizeDegree("PhD or equivalent"))
	assert.Equal(t, "Trade certificate", NormalizeDegree("  Trade certificate "))
	assert.Equal(t, 3, DegreeLevel(DegreeBachelors))
	assert.Equal(t, 0, DegreeLevel("Trade certificate"))
}

func TestExtractRequirements(t *testing.T) {
	s := New(Options{})
	listing := &types.JobListing{
		Title:       "Backend Engineer",
		Location:    "Remote",
		Description: "Minimum 3 years of experience in backend development is required for this role.\nThe team ships weekly and values careful code review and testing practices.\nIdeally you bring 7 years of experience.\nMaster's degree preferred.",
		Requirements: "Knowledge of distributed systems.",
		SkillsRequired:  types.SkillList{"Go", "PostgreSQL"},
		PreferredSkills: types.SkillList{"kafka"},
	}

	reqs := s.ExtractRequirements(listing)
	assert.Equal(t, "Backend Engineer", reqs.JobTitle)
	assert.Equal(t, "Remote", reqs.JobLocation)
	assert.Equal(t, []string{"go", "postgresql"}, reqs.RequiredSkills)
	assert.Equal(t, []string{"kafka"}, reqs.PreferredSkills)
	assert.Equal(t, 3, reqs.ExperienceRequirements.MinYears)
	assert.Equal(t, 7, reqs.ExperienceRequirements.PreferredYears)
	assert.Contains(t, reqs.ExperienceRequirements.Areas, "distributed systems")
	assert.Equal(t, DegreeMasters, reqs.EducationRequirements.MinDegreeLevel)
	assert.False(t, reqs.EducationRequirements.Required)
}

func TestExtractRequirements_ListingFieldsWin(t *testing.T) {
	s := New(Options{})
	reqs := s.ExtractRequirements(&types.JobListing{
		Title:             "Analyst",
		Description:       "5 years of experience required. PhD preferred.",
		EducationRequired: "Bachelor's degree in Statistics",
		MinExperience:     2,
	})
	assert.Equal(t, 2, reqs.ExperienceRequirements.MinYears)
	assert.Equal(t, 0, reqs.ExperienceRequirements.PreferredYears)
	assert.Equal(t, DegreeBachelors, reqs.EducationRequirements.MinDegreeLevel)
	assert.True(t, reqs.EducationRequirements.Required)
}

func TestExtractRequirements_AppendsRequirementsOnce(t *testing.T) {
	s := New(Options{})
	listing := &types.JobListing{Description: "Experience with Terraform.", Requirements: "Experience with Terraform."}
	reqs := s.ExtractRequirements(listing)
	assert.Equal(t, []string{"terraform"}, reqs.ExperienceRequirements.Areas)
	assert.Equal(t, 1, strings.Count(strings.Join(reqs.RequiredSkills, ","), "terraform"))
}
