package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/searchfind/screening-engine/internal/coverletter"
	"github.com/searchfind/screening-engine/internal/jobposting"
	"github.com/searchfind/screening-engine/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(&types.ValidationResult{
		IsValid:      true,
		DocumentType: types.DocumentResume,
		Confidence:   0.82,
		WordCount:    240,
		TypeScores: map[types.DocumentType]float64{
			types.DocumentResume:      0.82,
			types.DocumentCoverLetter: 0.1,
		},
	})
	output := buf.String()

	assert.Contains(t, output, "DOCUMENT VALIDATION")
	assert.Contains(t, output, "resume")
	assert.Contains(t, output, "0.82")
	assert.Contains(t, output, "240")
	assert.Contains(t, output, "cover_letter")
}

func TestPrintResumeValidation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeValidation(&types.ResumeValidation{
		IsValidResume: true,
		DocumentType:  types.DocumentResume,
		Sections: map[string]types.ResumeSectionCheck{
			"skills":    {Present: true, Score: 1, Rating: "excellent"},
			"education": {Present: false, Rating: "missing"},
		},
		OverallScore:    72,
		Rating:          "good",
		Recommendations: []string{"Add an education section"},
		Completeness:    50,
	})
	output := buf.String()

	assert.Contains(t, output, "RESUME VALIDATION")
	assert.Contains(t, output, "72 (good)")
	assert.Contains(t, output, "✓ skills")
	assert.Contains(t, output, "✗ education")
	assert.Contains(t, output, "Add an education section")
	assert.Less(t, strings.Index(output, "education"), strings.Index(output, "skills"))
}

func TestPrintResumeValidation_Error(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeValidation(&types.ResumeValidation{Error: "Document too short"})
	output := buf.String()

	assert.Contains(t, output, "Document too short")
	assert.NotContains(t, output, "Completeness")
}

func TestPrintScreeningResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.ScreeningResult{
		IsValid:            true,
		CandidateName:      "Jane Doe",
		JobTitle:           "Backend Engineer",
		OverallScore:       78,
		CandidateTier:      types.TierStrong,
		SkillsMatch:        types.SkillsMatch{Score: 80, MissingRequired: []string{"kubernetes"}, Evaluation: "Good skills match"},
		ExperienceMatch:    types.ExperienceMatch{Score: 90, YearsExperience: 6},
		HasCoverLetter:     true,
		CoverLetterQuality: types.CoverLetterQuality{Score: 70, Evaluation: "Good"},
		RedFlags:           []string{"Employment gap"},
		RecommendedActions: []string{"Schedule a phone screen"},
	}
	p.PrintScreeningResult(result)
	output := buf.String()

	assert.Contains(t, output, "SCREENING RESULT")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "78 (strong)")
	assert.Contains(t, output, "6 years")
	assert.Contains(t, output, "Cover letter")
	assert.Contains(t, output, "kubernetes")
	assert.Contains(t, output, "⚠ Employment gap")
	assert.Contains(t, output, "Schedule a phone screen")
}

func TestPrintScreeningResult_NoCoverLetter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScreeningResult(&types.ScreeningResult{JobTitle: "Engineer"})
	output := buf.String()

	assert.Contains(t, output, "(unnamed candidate)")
	assert.NotContains(t, output, "Cover letter")
	assert.NotContains(t, output, "Red flags")
}

func TestPrintBulkResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := make([]types.ScreeningResult, 12)
	for i := range results {
		results[i] = types.ScreeningResult{
			CandidateName: fmt.Sprintf("Candidate %02d", i+1),
			OverallScore:  95 - i*5,
			CandidateTier: types.TierForScore(95 - i*5),
		}
	}
	bulk := &types.BulkResult{
		IsValid:          true,
		JobTitle:         "Backend Engineer",
		ScreeningResults: results,
		Stats: types.BulkStats{
			TotalApplications: 13,
			ValidApplications: 12,
			TierDistribution:  map[types.CandidateTier]int{types.TierExcellent: 2, types.TierStrong: 2},
			AverageScore:      67.5,
		},
	}
	p.PrintBulkResult(bulk)
	output := buf.String()

	assert.Contains(t, output, "BULK SCREENING")
	assert.Contains(t, output, "12 of 13 valid")
	assert.Contains(t, output, "#1")
	assert.Contains(t, output, "Candidate 10")
	assert.NotContains(t, output, "Candidate 11")
	assert.Contains(t, output, "... and 2 more candidates")
	assert.Contains(t, output, "excellent")
}

func TestPrintBulkResult_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBulkResult(&types.BulkResult{JobTitle: "Engineer", Stats: types.BulkStats{TotalApplications: 2}})

	assert.Contains(t, buf.String(), "No valid applications.")
}

func TestPrintCriteria(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	criteria := &types.ScreeningCriteria{
		IsValid:  true,
		JobTitle: "Data Scientist",
	}
	criteria.Criteria.Skills.MustHave = []string{"python", "sql", "statistics", "pandas", "spark", "airflow", "dbt"}
	criteria.Criteria.Education.MinimumLevel = "master"
	criteria.Criteria.Education.IsRequired = true
	criteria.Criteria.Experience.MinimumYears = 3
	p.PrintCriteria(criteria)
	output := buf.String()

	assert.Contains(t, output, "SCREENING CRITERIA")
	assert.Contains(t, output, "Data Scientist")
	assert.Contains(t, output, "• python")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "master (required: yes)")
	assert.Contains(t, output, "3+ years")
	assert.NotContains(t, output, "Nice to have")
}

func TestPrintCoverLetterAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	a := &coverletter.Analysis{
		IsValid:      true,
		OverallScore: 64,
		WordCount:    210,
		Suggestions:  []string{"Mention the company by name"},
		JobRelevance: &coverletter.JobRelevance{Score: 55, Evaluation: "Moderate"},
	}
	a.Structure.SectionsMissing = []string{"closing"}
	p.PrintCoverLetterAnalysis(a)
	output := buf.String()

	assert.Contains(t, output, "COVER LETTER ANALYSIS")
	assert.Contains(t, output, "64")
	assert.Contains(t, output, "Job relevance")
	assert.Contains(t, output, "• closing")
	assert.Contains(t, output, "Mention the company by name")
}

func TestPrintJobPostingAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	a := &jobposting.Analysis{IsValid: true}
	a.ExtractedInfo.JobTitle = "Site Reliability Engineer"
	a.ExtractedInfo.CompanyName = "Globex"
	a.Quality.Overall = jobposting.OverallQuality{Score: 71.5, Evaluation: "Good"}
	a.Quality.Inclusivity = jobposting.QualityScore{Score: 40, Evaluation: "Needs work"}
	a.Suggestions.Inclusivity = []string{"Replace 'rockstar'"}
	p.PrintJobPostingAnalysis(a)
	output := buf.String()

	assert.Contains(t, output, "JOB POSTING ANALYSIS")
	assert.Contains(t, output, "Site Reliability Engineer")
	assert.Contains(t, output, "Globex")
	assert.Contains(t, output, "71.5 (Good)")
	assert.Contains(t, output, "Needs work")
	assert.Contains(t, output, "Replace 'rockstar'")
	assert.NotContains(t, output, "Location")
}

func TestPrintOptimizedRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOptimizedRequirements(&jobposting.OptimizedRequirements{
		Text:            "Requirements:\n- Go",
		MustHaveCount:   1,
		NiceToHaveCount: 0,
	})
	output := buf.String()

	assert.Contains(t, output, "OPTIMIZED REQUIREMENTS")
	assert.Contains(t, output, "Must have:    1")
	assert.True(t, strings.HasSuffix(output, "Requirements:\n- Go"))
}

func TestPrint_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	assert.True(t, p.Print(&types.ScreeningCriteria{JobTitle: "Engineer"}))
	assert.False(t, p.Print(map[string]string{"a": "b"}))
}

func TestPrinters_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(nil)
	p.PrintResumeValidation(nil)
	p.PrintScreeningResult(nil)
	p.PrintBulkResult(nil)
	p.PrintCriteria(nil)
	p.PrintCoverLetterAnalysis(nil)
	p.PrintJobPostingAnalysis(nil)
	p.PrintOptimizedRequirements(nil)
	p.PrintResumeAnalysis(nil)
	p.PrintMatch(nil)
	p.PrintRanking(nil)
	p.PrintQualification(nil)
	p.PrintImprovementPlan(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
	assert.Contains(t, buf.String(), "...")
}
