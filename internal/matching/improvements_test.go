package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImprovementPlan(t *testing.T) {
	m := newTestMatcher(t, nil)

	got, err := m.ImprovementPlan(context.Background(), ImprovementRequest{
		ResumeText:      sampleResume,
		JobTitle:        "Backend Engineer",
		Requirements:    []string{"Master's degree in Computer Science"},
		Skills:          []string{"Python", "Django", "SQL"},
		ExperienceLevel: "Senior",
	})
	require.NoError(t, err)

	assert.Equal(t, 66, got.SkillMatch)
	assert.Equal(t, 100, got.ExperienceMatch)
	assert.Equal(t, 75, got.EducationMatch)
	assert.Equal(t, 78, got.MatchPercentage)
	assert.Equal(t, []string{"Django"}, got.MissingSkills)
	assert.Empty(t, got.MissingKeywords)
	require.NotNil(t, got.ResumeAnalysis)

	require.NotEmpty(t, got.Suggestions.Critical)
	assert.Equal(t, Suggestion{
		Text:     "Add these key required skills to your resume: Django",
		Priority: PriorityHigh,
		Category: CategoryCritical,
	}, got.Suggestions.Critical[0])
	assert.Contains(t, got.Suggestions.Recommended, Suggestion{
		Text:     "Emphasize your educational achievements and relevant coursework in your education section",
		Priority: PriorityMedium,
		Category: CategoryRecommended,
	})
	assert.Contains(t, got.Suggestions.Recommended, Suggestion{
		Text:     "Customize your summary section to target the Backend Engineer position specifically",
		Priority: PriorityMedium,
		Category: CategoryRecommended,
	})
	assert.Empty(t, got.Suggestions.LongTerm)

	require.NotNil(t, got.FocusedResume)
	assert.Equal(t, []string{"Django"}, got.FocusedResume.SkillsToEmphasize)
}

func TestImprovementPlan_HighMatch(t *testing.T) {
	m := newTestMatcher(t, nil)

	got, err := m.ImprovementPlan(context.Background(), ImprovementRequest{
		ResumeText:      sampleResume,
		JobTitle:        "Backend Engineer",
		Skills:          []string{"python", "sql"},
		ExperienceLevel: "junior",
	})
	require.NoError(t, err)

	assert.Equal(t, 95, got.MatchPercentage)
	assert.Empty(t, got.Suggestions.Critical)
	assert.Empty(t, got.Suggestions.Important)
	assert.Len(t, got.Suggestions.Recommended, 2)
	assert.Len(t, got.Suggestions.Formatting, 1)
	assert.Equal(t, PriorityLow, got.Suggestions.Formatting[0].Priority)
	assert.Nil(t, got.FocusedResume)
}

func TestImprovementPlan_UnstatedAreas(t *testing.T) {
	m := newTestMatcher(t, nil)

	got, err := m.ImprovementPlan(context.Background(), ImprovementRequest{
		ResumeText: sampleResume,
		JobTitle:   "Backend Engineer",
	})
	require.NoError(t, err)

	assert.Equal(t, unstatedSkillScore, got.SkillMatch)
	assert.Equal(t, unstatedExperienceScore, got.ExperienceMatch)
	assert.Equal(t, unstatedEducationScore, got.EducationMatch)
	assert.Equal(t, 69, got.MatchPercentage)
	assert.Contains(t, got.Suggestions.LongTerm, Suggestion{
		Text:     "Consider gaining additional experience through certifications, volunteering, or side projects related to Backend Engineer",
		Priority: PriorityLow,
		Category: CategoryLongTerm,
	})
}

func TestImprovementPlan_NoResume(t *testing.T) {
	m := newTestMatcher(t, nil)

	_, err := m.ImprovementPlan(context.Background(), ImprovementRequest{JobTitle: "Backend Engineer"})

	var matchErr *MatchError
	require.True(t, errors.As(err, &matchErr))
	assert.Equal(t, MsgNoResumeForPlan, matchErr.Message)
}

func TestMissingKeywords(t *testing.T) {
	m := newTestMatcher(t, nil)

	assert.Equal(t, []string{}, m.missingKeywords("", sampleResume))
	assert.Equal(t,
		[]string{"kafka", "streaming"},
		m.missingKeywords("Kafka pipelines. Kafka streaming. Python services.", sampleResume))
}

func TestRequirementLines(t *testing.T) {
	got := requirementLines("- Five years of Go\n• Strong SQL\nok\n\n")
	assert.Equal(t, []string{"Five years of Go", "Strong SQL"}, got)
}

func TestRatioScore(t *testing.T) {
	tests := []struct {
		have, need, want int
	}{
		{0, 0, 100},
		{5, 3, 100},
		{3, 4, 75},
		{1, 3, 33},
		{0, 5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ratioScore(tt.have, tt.need), "%d of %d", tt.have, tt.need)
	}
}
