package validation

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchfind/screening-engine/internal/types"
)

const testResume = `Jane Doe
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

const testCoverLetter = `Dear Hiring Manager,

I am writing to apply for the Data Analyst position at Globex. I am interested in joining your team because my background in analytics matches the role. In my current role at Initech I built dashboards and I improved reporting accuracy.

Thank you for your consideration. I look forward to hearing from you.

Sincerely,
Sam Lee`

const testJobDescription = `Job Description: Senior Data Engineer

About Us
We are seeking a data engineer to join the team. This is a full-time, hybrid role.

Responsibilities
- Build batch and streaming pipelines
- Own data quality checks
- Work with analysts on reporting
- Review designs
- Mentor junior engineers

Requirements
- 5+ years of experience in data engineering
- Must have strong SQL
- Python or Scala
- Experience with Airflow
- Minimum 3 years cloud experience

Benefits
- Competitive salary
- Remote stipend

How to apply: apply now through our careers page.`

func TestValidateDocument_TooShort(t *testing.T) {
	v := NewContentValidator(nil)

	for _, text := range []string{"", "Hi there.", strings.Repeat("word ", MinWordCount-1)} {
		result := v.ValidateDocument(text)
		assert.False(t, result.IsValid)
		assert.Equal(t, 0.0, result.Confidence)
		assert.Equal(t, types.DocumentUnknown, result.DocumentType)
		assert.Contains(t, result.Error, "too short")
		assert.Equal(t, map[types.DocumentType]float64{
			types.DocumentResume:         0,
			types.DocumentCoverLetter:    0,
			types.DocumentJobDescription: 0,
			types.DocumentOther:          0,
		}, result.TypeScores)
	}
}

func TestValidateDocument_Classifies(t *testing.T) {
	v := NewContentValidator(nil)

	tests := []struct {
		name string
		text string
		want types.DocumentType
	}{
		{"resume", testResume, types.DocumentResume},
		{"cover letter", testCoverLetter, types.DocumentCoverLetter},
		{"job description", testJobDescription, types.DocumentJobDescription},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateDocument(tt.text)
			assert.Equal(t, tt.want, result.DocumentType)
			assert.True(t, result.IsValid)
			assert.GreaterOrEqual(t, result.Confidence, MediumConfidence)
			assert.Empty(t, result.Error)
			assert.Len(t, result.TypeScores, 4)
		})
	}
}

func TestValidateDocument_ExactScores(t *testing.T) {
	v := NewContentValidator(nil)

	resume := v.ValidateDocument(testResume)
	assert.InDelta(t, 0.8, resume.TypeScores[types.DocumentResume], 1e-9)

	letter := v.ValidateDocument(testCoverLetter)
	assert.InDelta(t, 0.9, letter.TypeScores[types.DocumentCoverLetter], 1e-9)
	assert.InDelta(t, 0.0, letter.TypeScores[types.DocumentResume], 1e-9)
}

func TestValidateDocument_OtherFallback(t *testing.T) {
	v := NewContentValidator(nil)
	text := "The garden behind the old house grows tomatoes, beans, and squash every summer while the neighbors trade seeds and stories about rain and soil."

	result := v.ValidateDocument(text)
	assert.Equal(t, types.DocumentOther, result.DocumentType)
	assert.InDelta(t, 0.2, result.Confidence, 1e-9)
	assert.False(t, result.IsValid)
	assert.Equal(t, "Document doesn't appear to be a valid other", result.Error)
}

func TestValidateDocument_ArgmaxAndBounds(t *testing.T) {
	v := NewContentValidator(nil)
	rng := rand.New(rand.NewSource(42))
	vocab := []string{
		"experience", "education", "skills", "dear", "sincerely", "I", "my", "at", "acme",
		"responsibilities", "requirements", "-", "•", "2019 - 2021", "5 years of experience",
		"remote", "salary", "日本", "ñandú", "\n", "me@example.com", "\x00",
	}

	for i := 0; i < 300; i++ {
		n := rng.Intn(120)
		words := make([]string, n)
		for j := range words {
			words[j] = vocab[rng.Intn(len(vocab))]
		}
		result := v.ValidateDocument(strings.Join(words, " "))

		require.GreaterOrEqual(t, result.Confidence, 0.0)
		require.LessOrEqual(t, result.Confidence, 1.0)
		require.Equal(t, result.IsValid, result.Confidence >= MediumConfidence)
		if result.DocumentType == types.DocumentUnknown {
			continue
		}
		for dt, s := range result.TypeScores {
			require.GreaterOrEqual(t, result.TypeScores[result.DocumentType], s, "type %s beats %s", dt, result.DocumentType)
		}
	}
}

func TestCoverLetterSignals(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		phrases  int
		mentions int
	}{
		{"lowercase pronoun phrases", "i am writing to you because i am interested in the team", 2, 0},
		{"company after at", "the role at globex", 0, 2},
		{"at inside a word", "what we offer is a great team", 0, 2},
		{"join and with", "to join acme and work with data", 0, 2},
		{"no signals", "the garden grows tomatoes", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.phrases, countPresent(tt.text, coverLetterPhrases))
			assert.Equal(t, tt.mentions, countMatches(tt.text, companyMentionPatterns))
		})
	}
}

func TestIsType(t *testing.T) {
	r := types.ValidationResult{DocumentType: types.DocumentResume, Confidence: 0.3}
	assert.True(t, IsType(r, types.DocumentResume, MediumConfidence))
	assert.False(t, IsType(r, types.DocumentResume, HighConfidence))
	assert.False(t, IsType(r, types.DocumentCoverLetter, LowConfidence))
}

func TestValidateResume(t *testing.T) {
	v := NewContentValidator(nil)
	result := v.ValidateResume(testResume)

	require.True(t, result.IsValidResume)
	assert.Equal(t, 70, result.OverallScore)
	assert.Equal(t, 100, result.Completeness)
	assert.Empty(t, result.MissingSections)

	require.Len(t, result.Sections, len(EssentialSections))
	assert.Equal(t, 1.0, result.Sections["contact_info"].Score)
	assert.Equal(t, "Excellent", result.Sections["contact_info"].Rating)
	assert.Equal(t, 0.4, result.Sections["summary"].Score)
	assert.Equal(t, 0.7, result.Sections["experience"].Score)
	assert.Equal(t, "Good", result.Sections["experience"].Rating)
	assert.Equal(t, 1.0, result.Sections["education"].Score)
	assert.Equal(t, 0.4, result.Sections["skills"].Score)

	assert.Equal(t, []string{"Improve your summary section", "Improve your skills section"}, result.Recommendations)
}

func TestValidateResume_NotAResume(t *testing.T) {
	v := NewContentValidator(nil)

	result := v.ValidateResume("Hi there.")
	assert.False(t, result.IsValidResume)
	assert.Equal(t, ErrTooShort, result.Error)

	result = v.ValidateResume(testCoverLetter)
	assert.False(t, result.IsValidResume)
	assert.Equal(t, types.DocumentCoverLetter, result.DocumentType)
	assert.Equal(t, "Document is not a valid resume", result.Error)
}

func TestRating(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, "Excellent"},
		{0.9, "Excellent"},
		{0.7, "Good"},
		{0.5, "Adequate"},
		{0.4, "Adequate"},
		{0.0, "Needs Improvement"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rating(tt.score))
	}
}

func TestCountSkillItems(t *testing.T) {
	assert.Equal(t, 3, countSkillItems("Python, SQL, React"))
	assert.Equal(t, 2, countSkillItems("• Go • Rust"))
	assert.Equal(t, 4, countSkillItems("go rust sql bash"))
}
