package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchfind/screening-engine/internal/types"
)

func TestCheckQualification(t *testing.T) {
	m := newTestMatcher(t, nil)

	got, err := m.CheckQualification(context.Background(), sampleResume, scienceListing())
	require.NoError(t, err)

	assert.True(t, got.IsValid)
	assert.Equal(t, "job-2", got.JobID)
	require.NotNil(t, got.FullResults)
	assert.Equal(t, got.FullResults.OverallMatch, got.MatchPercentage)
	assert.Equal(t, got.FullResults.MatchTier, got.MatchTier)
	assert.Equal(t, ColorClass(got.MatchPercentage), got.ColorClass)

	require.Len(t, got.MissingRequirements, maxHighlights)
	assert.Equal(t, GapSkills, got.MissingRequirements[0].Type)
	assert.Contains(t, got.MissingRequirements[0].Items, "tensorflow")
	assert.Equal(t, GapExperienceYears, got.MissingRequirements[1].Type)
	assert.Equal(t, 12, got.MissingRequirements[1].Required)
	require.NotNil(t, got.MissingRequirements[1].Current)
	assert.Equal(t, 9, *got.MissingRequirements[1].Current)
	assert.Equal(t, GapExperienceAreas, got.MissingRequirements[2].Type)

	require.NotEmpty(t, got.Strengths)
	assert.Equal(t, Highlight{Type: GapSkills, Items: []string{"python"}}, got.Strengths[0])

	assert.Contains(t, got.ImprovementSuggestions,
		"Highlight any additional experience to meet the 12 years requirement. Include relevant projects or freelance work.")
	assert.Contains(t, got.ImprovementSuggestions,
		"This position requires a Master's degree. Highlight relevant coursework, certifications, or equivalent experience.")
}

func TestCheckQualification_InvalidMatch(t *testing.T) {
	m := newTestMatcher(t, nil)

	got, err := m.CheckQualification(context.Background(), sampleCoverLetter, backendListing())
	require.NoError(t, err)

	assert.False(t, got.IsValid)
	assert.Equal(t, 0, got.MatchPercentage)
	assert.Equal(t, TierUnknown, got.MatchTier)
	assert.Equal(t, MsgInvalidResume, got.Error)
	assert.Nil(t, got.FullResults)
	assert.Equal(t, []string{"Update your resume with relevant skills and experience."}, got.ImprovementSuggestions)
}

func TestCheckQualification_CanceledContext(t *testing.T) {
	m := newTestMatcher(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.CheckQualification(ctx, sampleResume, backendListing())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckQualificationBatch(t *testing.T) {
	m := newTestMatcher(t, nil)
	listings := []types.JobListing{
		*backendListing(),
		{Title: "No ID", Description: "Listing without an identifier."},
		{ID: "job-empty"},
		*scienceListing(),
	}

	got, err := m.CheckQualificationBatch(context.Background(), sampleResume, listings)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.True(t, got["job-1"].IsValid)
	assert.True(t, got["job-2"].IsValid)
	assert.False(t, got["job-empty"].IsValid)
	assert.Equal(t, MsgNoJobListing, got["job-empty"].Error)
	assert.Equal(t, TierUnknown, got["job-empty"].MatchTier)
}

func TestColorClass(t *testing.T) {
	tests := []struct {
		percentage int
		want       string
	}{
		{95, "excellent-match"},
		{85, "very-good-match"},
		{70, "good-match"},
		{55, "moderate-match"},
		{30, "low-match"},
		{10, "poor-match"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColorClass(tt.percentage), "percentage %d", tt.percentage)
	}
}

func TestImprovementSuggestions(t *testing.T) {
	tests := []struct {
		name string
		q    Qualification
		want []string
	}{
		{
			"invalid",
			Qualification{},
			[]string{"Update your resume with relevant skills and experience."},
		},
		{
			"good match",
			Qualification{IsValid: true, MatchPercentage: 92, FullResults: &Match{}},
			[]string{"Your resume appears to be a good match for this position."},
		},
		{
			"gaps",
			Qualification{
				IsValid:         true,
				MatchPercentage: 40,
				FullResults: &Match{
					Skills:     SkillsMatch{MissingSkills: []string{"go", "rust", "sql", "kafka", "redis", "grpc"}},
					Experience: types.ExperienceMatch{RelevantAreasMissing: []string{"payments", "fraud", "risk", "ledgers"}},
				},
			},
			[]string{
				"Add these key skills to your resume: go, rust, sql, kafka, redis",
				"Emphasize experience in: payments, fraud, risk. Include relevant projects or training.",
				"Tailor your resume specifically for this position by highlighting relevant skills and experiences that match the job requirements.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, improvementSuggestions(tt.q))
		})
	}
}

func TestStrengths(t *testing.T) {
	match := &Match{
		Skills: SkillsMatch{ExactMatches: []string{"python", "sql", "go", "rust"}},
		Experience: types.ExperienceMatch{
			YearsRequired:        3,
			YearsExperience:      5,
			RelevantAreasMatched: []string{"payments"},
		},
		Education: types.EducationMatch{
			HasRequiredEducation:   true,
			CandidateHighestDegree: &types.Degree{Type: "Bachelor's"},
		},
	}

	got := strengths(match)

	require.Len(t, got, maxHighlights)
	assert.Equal(t, []string{"python", "sql", "go"}, got[0].Items)
	assert.Equal(t, GapExperienceYears, got[1].Type)
	assert.Equal(t, 3, got[1].Required)
	assert.Equal(t, GapExperienceAreas, got[2].Type)
}
