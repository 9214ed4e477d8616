package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/screening"
	"github.com/searchfind/screening-engine/internal/textproc"
	"github.com/searchfind/screening-engine/internal/types"
	"github.com/searchfind/screening-engine/internal/validation"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

PROFESSIONAL SUMMARY
Backend engineer with a focus on data platforms.

EXPERIENCE
Senior Software Engineer at Acme Corp
Jan 2019 - Present
- Led migration of billing services to Kubernetes
- Reduced latency by 40%

Software Engineer, Initech | 2015 - 2018
- Developed reporting pipelines in Python

EDUCATION
Bachelor of Science in Computer Science, Stanford University, 2015

SKILLS
Python, SQL, React
`

const weakResume = `John Smith
john.smith@example.com

SUMMARY
Retail associate moving into operations.

EXPERIENCE
Store Associate at Corner Market
2021 - 2022
- Managed inventory counts

EDUCATION
High School Diploma, Springfield High School, 2016

SKILLS
Customer service, Scheduling
`

const sampleCoverLetter = `Dear Hiring Manager,

I am writing to apply for the Data Analyst position at Globex. I am interested in joining your team because my background in analytics matches the role. In my current role at Initech I built dashboards and I improved reporting accuracy.

Thank you for your consideration. I look forward to hearing from you.

Sincerely,
Sam Lee`

func newTestMatcher(t *testing.T, parser screening.DocumentParser) *Matcher {
	t.Helper()
	return New(Options{
		Parser: parser,
		Clock:  screening.FixedYear(2025),
		Logger: logging.NewTestLogger(t),
	})
}

func backendListing() *types.JobListing {
	return &types.JobListing{
		ID:             "job-1",
		Title:          "Backend Engineer",
		Company:        "Globex",
		Description:    "We are hiring a backend engineer to build data services for our analytics team.",
		SkillsRequired: types.SkillList{"python", "django", "sql"},
	}
}

// scienceListing asks for more than sampleResume offers: a master's degree,
// twelve years and machine learning.
func scienceListing() *types.JobListing {
	return &types.JobListing{
		ID:             "job-2",
		Title:          "Data Scientist",
		Description:    "Requires a Master's degree in Statistics. 12 years of experience required. Experience with machine learning.",
		SkillsRequired: types.SkillList{"python", "tensorflow"},
		Location:       "New York, NY",
	}
}

type fakeParser struct {
	fileText string
	fileErr  error
	calls    []string
}

func (f *fakeParser) ParseBytes(data []byte, filename string) (string, error) {
	f.calls = append(f.calls, "bytes:"+filename)
	return "", errors.New("not supported")
}

func (f *fakeParser) ParseFile(path string) (string, error) {
	f.calls = append(f.calls, "file:"+path)
	return f.fileText, f.fileErr
}

func TestMatchCandidateWithJob(t *testing.T) {
	m := newTestMatcher(t, nil)

	got, err := m.MatchCandidateWithJob(context.Background(), sampleResume, "", backendListing())
	require.NoError(t, err)

	assert.Equal(t, "job-1", got.JobID)
	assert.Equal(t, "Backend Engineer", got.JobTitle)
	assert.Equal(t, []string{"python", "sql"}, got.Skills.ExactMatches)
	assert.Equal(t, []string{"django"}, got.Skills.MissingSkills)
	assert.Equal(t, 67, got.Skills.Score)
	assert.InDelta(t, 66.7, got.Skills.Percentage, 1e-9)
	assert.Equal(t, "Moderate skills match with some missing critical skills", got.Skills.Evaluation)
	assert.Equal(t, 9, got.Experience.YearsExperience)
	assert.Equal(t, 100, got.Location.Score)

	want := scoring.Round(scoring.Weighted(
		scoring.WeightedScore{Score: got.Skills.Score, Weight: SkillsWeight},
		scoring.WeightedScore{Score: got.Experience.Score, Weight: ExperienceWeight},
		scoring.WeightedScore{Score: got.Education.Score, Weight: EducationWeight},
		scoring.WeightedScore{Score: got.Title.Score, Weight: TitleWeight},
		scoring.WeightedScore{Score: got.Location.Score, Weight: LocationWeight},
	))
	assert.Equal(t, want, got.OverallMatch)
	assert.Equal(t, TierFor(want), got.MatchTier)

	require.NotNil(t, got.Recommendations)
	require.Len(t, got.Recommendations.Skills, 1)
	assert.Equal(t,
		"Consider adding the following missing skills to your resume or working to acquire them:\n- django",
		got.Recommendations.Skills[0])
	assert.Contains(t, got.Recommendations.Resume,
		"Your resume has fewer skills listed than typical for this position. Consider expanding your skills section with relevant technical and soft skills.")
}

func TestMatchCandidateWithJob_Gaps(t *testing.T) {
	m := newTestMatcher(t, nil)

	got, err := m.MatchCandidateWithJob(context.Background(), sampleResume, "Brooklyn, New York", scienceListing())
	require.NoError(t, err)

	assert.Equal(t, 12, got.Experience.YearsRequired)
	assert.Contains(t, got.Experience.RelevantAreasMissing, "machine learning")
	assert.Equal(t, screening.DegreeMasters, got.Education.RequiredDegree)
	assert.False(t, got.Education.HasRequiredEducation)
	assert.Equal(t, 67, got.Location.Score)

	recs := got.Recommendations
	require.NotNil(t, recs)
	assert.Contains(t, recs.Experience,
		"You have 9 years of experience but this position requires 12 years. Consider roles with lower experience requirements or highlight projects/achievements that demonstrate advanced expertise.")
	assert.Contains(t, recs.Education,
		"This position requires a Master's degree. Consider pursuing additional education or focusing on positions with different requirements.")
}

func TestMatchCandidateWithJob_Rejections(t *testing.T) {
	m := newTestMatcher(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		resume  string
		listing *types.JobListing
		wantMsg string
	}{
		{"no resume", "  ", backendListing(), MsgNoResume},
		{"nil listing", sampleResume, nil, MsgNoJobListing},
		{"empty listing", sampleResume, &types.JobListing{}, MsgNoJobListing},
		{"cover letter as resume", sampleCoverLetter, backendListing(), MsgInvalidResume},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.MatchCandidateWithJob(ctx, tt.resume, "", tt.listing)
			assert.Nil(t, got)

			var matchErr *MatchError
			require.True(t, errors.As(err, &matchErr), "got %v", err)
			assert.Equal(t, tt.wantMsg, matchErr.Message)
		})
	}
}

func TestMatchCandidateWithJob_InvalidResumeCarriesConfidence(t *testing.T) {
	m := newTestMatcher(t, nil)

	_, err := m.MatchCandidateWithJob(context.Background(), sampleCoverLetter, "", backendListing())

	var matchErr *MatchError
	require.True(t, errors.As(err, &matchErr))

	check := validation.NewContentValidator(textproc.New()).ValidateDocument(sampleCoverLetter)
	assert.Equal(t, check.DocumentType, matchErr.DetectedType)
	assert.Equal(t, check.Confidence, matchErr.Confidence)
}

func TestMatchCandidateWithJob_CanceledContext(t *testing.T) {
	m := newTestMatcher(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.MatchCandidateWithJob(ctx, sampleResume, "", backendListing())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchJobWithCandidates(t *testing.T) {
	parser := &fakeParser{fileErr: errors.New("unreadable")}
	m := newTestMatcher(t, parser)

	got, err := m.MatchJobWithCandidates(context.Background(), backendListing(), []Candidate{
		{ID: "c-weak", Name: "John Smith", ResumeText: weakResume},
		{ID: "c-empty", Name: "Nobody"},
		{ID: "c-file", ResumeFilePath: "/resumes/broken.pdf"},
		{ID: "c-strong", ResumeText: sampleResume},
	})
	require.NoError(t, err)

	assert.Equal(t, "job-1", got.JobID)
	assert.Equal(t, "Backend Engineer", got.JobTitle)
	assert.Equal(t, 2, got.TotalCandidates)
	require.Len(t, got.Matches, 2)
	assert.Equal(t, "c-strong", got.Matches[0].CandidateID)
	assert.Equal(t, UnknownCandidate, got.Matches[0].CandidateName)
	assert.Equal(t, "c-weak", got.Matches[1].CandidateID)
	assert.GreaterOrEqual(t, got.Matches[0].OverallMatch, got.Matches[1].OverallMatch)
	assert.Nil(t, got.Matches[0].Recommendations)
	assert.Equal(t, []string{"file:/resumes/broken.pdf"}, parser.calls)
}

func TestMatchJobWithCandidates_ReadsResumeFiles(t *testing.T) {
	parser := &fakeParser{fileText: sampleResume}
	m := newTestMatcher(t, parser)

	got, err := m.MatchJobWithCandidates(context.Background(), backendListing(), []Candidate{
		{ID: "c-1", Name: "Jane Doe", ResumeFilePath: "/resumes/jane.pdf"},
	})
	require.NoError(t, err)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "Jane Doe", got.Matches[0].CandidateName)
	assert.Equal(t, []string{"python", "sql"}, got.Matches[0].Skills.ExactMatches)
}

func TestMatchJobWithCandidates_Rejections(t *testing.T) {
	m := newTestMatcher(t, nil)
	ctx := context.Background()

	_, err := m.MatchJobWithCandidates(ctx, nil, []Candidate{{ResumeText: sampleResume}})
	var matchErr *MatchError
	require.True(t, errors.As(err, &matchErr))
	assert.Equal(t, MsgNoJobListing, matchErr.Message)

	_, err = m.MatchJobWithCandidates(ctx, backendListing(), nil)
	require.True(t, errors.As(err, &matchErr))
	assert.Equal(t, MsgNoCandidates, matchErr.Message)
}

func TestMatchSkills(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		required  []string
		wantScore int
		wantExact []string
		wantClose int
		wantMiss  []string
		wantEval  string
	}{
		{
			name:      "nothing required",
			wantScore: 100,
			wantExact: []string{},
			wantMiss:  []string{},
			wantEval:  "No specific skills were required for this job",
		},
		{
			name:      "exact keeps candidate spelling",
			candidate: []string{"Python", "SQL"},
			required:  []string{"python", "sql"},
			wantScore: 100,
			wantExact: []string{"Python", "SQL"},
			wantMiss:  []string{},
			wantEval:  "Excellent skills match with almost all required skills",
		},
		{
			name:      "containment earns half",
			candidate: []string{"postgresql"},
			required:  []string{"sql"},
			wantScore: 50,
			wantExact: []string{},
			wantClose: 1,
			wantMiss:  []string{},
			wantEval:  "Moderate skills match with some missing critical skills",
		},
		{
			name:      "similar spelling earns half",
			candidate: []string{"java script"},
			required:  []string{"javascript", "rust"},
			wantScore: 25,
			wantExact: []string{},
			wantClose: 1,
			wantMiss:  []string{"rust"},
			wantEval:  "Limited skills match with several missing required skills",
		},
		{
			name:      "nothing in common",
			candidate: []string{"python"},
			required:  []string{"rust"},
			wantScore: 0,
			wantExact: []string{},
			wantMiss:  []string{"rust"},
			wantEval:  "Limited skills match with several missing required skills",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchSkills(tt.candidate, tt.required)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantExact, got.ExactMatches)
			assert.Len(t, got.CloseMatches, tt.wantClose)
			assert.Equal(t, tt.wantMiss, got.MissingSkills)
			assert.Equal(t, tt.wantEval, got.Evaluation)
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, similarity("react", "react"), 1e-9)
	assert.InDelta(t, 20.0/21.0, similarity("javascript", "java script"), 1e-9)
	assert.Less(t, similarity("django", "python"), closeMatchRatio)
}

func TestMatchTitle(t *testing.T) {
	tests := []struct {
		name        string
		titles      []string
		jobTitle    string
		wantScore   int
		wantEval    string
		wantPartial []PartialTitle
	}{
		{"no job title", []string{"Engineer"}, "", 100, "No specific job title to match against", []PartialTitle{}},
		{"no titles", nil, "Backend Engineer", 50, "No previous job titles found in resume", []PartialTitle{}},
		{
			"identical ignoring case",
			[]string{"Data Analyst", "backend engineer"},
			"Backend Engineer",
			100,
			"Excellent match with previous job title: backend engineer",
			[]PartialTitle{},
		},
		{
			"shared words",
			[]string{"Data Analyst", "Software Engineer"},
			"Backend Engineer",
			33,
			"Limited match with previous job title: Software Engineer",
			[]PartialTitle{{Title: "Software Engineer", Score: 33}},
		},
		{"unrelated", []string{"Chef"}, "Backend Engineer", 0, "No matching job titles found", []PartialTitle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchTitle(tt.titles, tt.jobTitle)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantEval, got.Evaluation)
			assert.Equal(t, tt.wantPartial, got.PartialMatches)
		})
	}
}

func TestMatchLocation(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		job       string
		wantScore int
		wantEval  string
	}{
		{"no job location", "Austin, TX", "", 100, "No specific location required for this job"},
		{"no candidate location", "", "Austin, TX", 50, "No location information found in resume"},
		{"same", "Austin, TX", "austin, tx", 100, "Excellent location match: austin, tx matches job location: austin, tx"},
		{"partial", "Brooklyn, New York", "New York, NY", 67, "Partial location match: brooklyn, new york partially matches job location: new york, ny"},
		{"elsewhere", "Austin, TX", "New York, NY", 0, "No location match: austin, tx does not match job location: new york, ny"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchLocation(tt.candidate, tt.job)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantEval, got.Evaluation)
		})
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierExcellent},
		{90, TierExcellent},
		{89, TierVeryGood},
		{70, TierGood},
		{69, TierModerate},
		{50, TierModerate},
		{49, TierWeak},
		{30, TierWeak},
		{29, TierPoor},
		{0, TierPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score), "score %d", tt.score)
	}
}

func TestRecommend(t *testing.T) {
	resume := &types.ProcessedDocument{
		ExtractedSkills:     []string{"a", "b", "c", "d", "e"},
		ExtractedExperience: []types.ExperienceEntry{{Title: "One"}, {Title: "Two"}},
	}

	t.Run("strong match", func(t *testing.T) {
		got := recommend(resume, Match{OverallMatch: 95, Education: types.EducationMatch{HasRequiredEducation: true}})
		assert.Empty(t, got.Skills)
		assert.Empty(t, got.Experience)
		assert.Empty(t, got.Education)
		assert.Empty(t, got.Resume)
	})

	t.Run("lists are capped", func(t *testing.T) {
		got := recommend(resume, Match{
			OverallMatch: 40,
			Skills:       SkillsMatch{MissingSkills: []string{"s1", "s2", "s3", "s4", "s5", "s6"}},
			Experience:   types.ExperienceMatch{RelevantAreasMissing: []string{"a1", "a2", "a3", "a4"}},
			Education: types.EducationMatch{
				HasRequiredEducation: true,
				FieldMismatches:      []string{"statistics"},
			},
		})
		require.Len(t, got.Skills, 1)
		assert.Equal(t,
			"Consider adding the following missing skills to your resume or working to acquire them:\n- s1\n- s2\n- s3\n- s4\n- s5",
			got.Skills[0])
		assert.Equal(t, []string{
			"Your experience doesn't show sufficient expertise in these areas:\n- a1\n- a2\n- a3\nConsider highlighting any relevant projects or training in these areas.",
		}, got.Experience)
		assert.Equal(t, []string{
			"Your education doesn't match these preferred fields of study:\n- statistics\nConsider highlighting relevant coursework or additional training in these areas.",
		}, got.Education)
		assert.Len(t, got.Resume, 1)
	})
}
