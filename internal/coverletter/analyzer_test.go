package coverletter

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/types"
)

const sampleLetter = `Dear Hiring Manager,

I am writing to apply for the Data Analyst position at Globex. I am interested in joining your team because my background in analytics matches the role. In my current role at Initech I built dashboards and I improved reporting accuracy.

Thank you for your consideration. I look forward to hearing from you.

Sincerely,
Sam Lee`

const unrelatedText = `The quarterly report covers revenue growth across all regions. Sales increased in the northern territory while costs remained flat. The board will review the figures next month and decide on the budget for the coming year.`

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return New(Options{Logger: logging.NewTestLogger(t)})
}

func TestAnalyze(t *testing.T) {
	a := newTestAnalyzer(t)

	got, err := a.Analyze(context.Background(), sampleLetter, "", "Globex")
	require.NoError(t, err)

	assert.True(t, got.IsValid)
	assert.Equal(t, types.DocumentCoverLetter, got.DocumentType)
	assert.Greater(t, got.Confidence, 0.0)
	assert.Equal(t, 100, got.Structure.Score)
	assert.Equal(t, []string{"greeting", "introduction", "body", "closing", "signature"}, got.Structure.SectionsPresent)
	assert.Equal(t, "Too short", got.Content.Length.Evaluation)
	assert.Equal(t, 1, got.Personalization.CompanyMentions)
	assert.Nil(t, got.JobRelevance)
	assert.Equal(t, len(strings.Fields(sampleLetter)), got.WordCount)
	assert.NotEmpty(t, got.Suggestions)
	assert.LessOrEqual(t, len(got.Suggestions), maxRecommendations)
	assert.GreaterOrEqual(t, got.OverallScore, 0)
	assert.LessOrEqual(t, got.OverallScore, 100)
}

func TestAnalyze_OverallScoreTruncates(t *testing.T) {
	a := newTestAnalyzer(t)
	got, err := a.Analyze(context.Background(), sampleLetter, "", "Globex")
	require.NoError(t, err)

	want := int(float64(got.Structure.Score)*StructureWeight +
		got.Content.rawScore*ContentWeight +
		float64(got.Personalization.Score)*PersonalizationWeight)
	assert.Equal(t, want, got.OverallScore)
}

func TestAnalyze_JobRelevance(t *testing.T) {
	a := newTestAnalyzer(t)
	jd := "Data analyst role. Analyst builds dashboards with python. Python reporting, dashboards, python."

	got, err := a.Analyze(context.Background(), sampleLetter, jd, "")
	require.NoError(t, err)
	require.NotNil(t, got.JobRelevance)

	assert.Equal(t, []string{"analyst", "dashboards", "data", "role", "reporting"}, got.JobRelevance.KeywordsMatched)
	assert.Equal(t, []string{"python", "builds"}, got.JobRelevance.KeywordsMissed)
	assert.Equal(t, 71, got.JobRelevance.Score)
	assert.InDelta(t, 5.0/7.0, got.JobRelevance.SkillAlignment, 1e-9)
	assert.Equal(t, "Good alignment, matches many job keywords", got.JobRelevance.Evaluation)
}

func TestAnalyze_Rejections(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"too short", "Hi there."},
		{"not a letter", unrelatedText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Analyze(context.Background(), tt.text, "", "")
			assert.Nil(t, got)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, msgNotCoverLetter, verr.Message)
		})
	}
}

func TestAnalyze_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestAnalyzer(t).Analyze(ctx, sampleLetter, "", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_ScoresStayInRange(t *testing.T) {
	a := newTestAnalyzer(t)
	rng := rand.New(rand.NewSource(11))
	words := []string{"dear", "I", "am", "writing", "sincerely", "your", "company", "led", "improved",
		"python", "team player", "é", "日本", "!", ".", "\n\n", "hard-working", "thank you", "my experience"}

	for i := 0; i < 50; i++ {
		var b strings.Builder
		for j := 0; j < 20+rng.Intn(200); j++ {
			b.WriteString(words[rng.Intn(len(words))])
			b.WriteByte(' ')
		}
		got, err := a.Analyze(context.Background(), b.String(), b.String(), "Globex")
		if err != nil {
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			continue
		}
		for _, score := range []int{got.OverallScore, got.Structure.Score, got.Content.Score, got.Personalization.Score, got.JobRelevance.Score} {
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
		assert.LessOrEqual(t, len(got.Suggestions), maxRecommendations)
	}
}

func TestAnalyzeStructure(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantScore   int
		wantMissing []string
		wantEval    string
	}{
		{
			name:        "complete letter",
			text:        "Dear Ms. Smith,\n\nI am writing to apply for the Data Analyst position. In my previous role I built dashboards.\n\nThank you for your time.\n\nSincerely,\nJane Doe",
			wantScore:   100,
			wantMissing: []string{},
			wantEval:    "Excellent structure with all necessary sections",
		},
		{
			name:        "greeting and closing only",
			text:        "Dear team, thanks. Regards",
			wantScore:   0,
			wantMissing: []string{"introduction", "body", "signature"},
			wantEval:    "Poor structure, missing multiple critical sections",
		},
		{
			name:        "nothing recognisable",
			text:        "Random words here.",
			wantScore:   0,
			wantMissing: []string{"greeting", "introduction", "body", "closing", "signature"},
			wantEval:    "Poor structure, missing multiple critical sections",
		},
		{
			name:        "no signature",
			text:        "Hello! I am excited to apply. My background is in finance. Looking forward to it.",
			wantScore:   85,
			wantMissing: []string{"signature"},
			wantEval:    "Good structure with most key sections present",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzeStructure(tt.text)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantMissing, got.SectionsMissing)
			assert.Equal(t, tt.wantEval, got.Evaluation)
		})
	}
}

func TestGreetingPattern(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"hi sam, thanks for reading", "hi sam, thanks for reading"},
		{"to whom it may concern: hello.", "to whom it may concern: hello"},
		{"greetings from austin!", "greetings from austin"},
		{"this is where things stand.", ""},
		{"my highest goal.", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, greetingPattern.FindString(tt.text), tt.text)
	}

	got := analyzeStructure("This is where things stand.")
	assert.False(t, got.HasGreeting)
	assert.Contains(t, got.SectionsMissing, "greeting")
}

func TestAnalyzeStructure_CapturesPartText(t *testing.T) {
	got := analyzeStructure("Dear Ms. Smith,\n\nI am writing to apply for the role.\n\nThank you for your time.")
	assert.Equal(t, "dear ms", got.GreetingText)
	assert.Equal(t, "i am writing to apply for the role.", got.IntroductionText)
	assert.Equal(t, "thank you for your time.", got.ClosingText)
}

func TestGradeLength(t *testing.T) {
	tests := []struct {
		words     int
		wantScore int
		wantEval  string
	}{
		{0, 30, "Too short"},
		{149, 30, "Too short"},
		{150, 70, "Slightly short"},
		{250, 100, "Good length"},
		{499, 100, "Good length"},
		{500, 80, "Slightly long"},
		{600, 40, "Too long"},
	}
	for _, tt := range tests {
		score, eval := gradeLength(tt.words)
		assert.Equal(t, tt.wantScore, score, tt.words)
		assert.Equal(t, tt.wantEval, eval, tt.words)
	}
}

func TestAnalyzeContent_GenericPhrasesPenalised(t *testing.T) {
	plain := analyzeContent("I led the migration. I improved reporting.")
	generic := analyzeContent("I led the migration. I improved reporting. I am a team player and a fast learner.")

	assert.Empty(t, plain.GenericPhrases)
	assert.Equal(t, []string{"team player", "fast learner"}, generic.GenericPhrases)
	assert.Equal(t, 2, generic.GenericPhraseCount)

	// Both verbs sit in one short text, so their contexts coincide.
	assert.Equal(t, 1, plain.AchievementCount)

	got := recommend(StructureAnalysis{Score: 100}, generic, Personalization{CompanyMentions: 3, Indicators: []string{"a", "b", "c"}}, nil)
	assert.Contains(t, got, "Replace generic phrases like 'team player', 'fast learner' with specific examples from your experience")
}

func TestAchievementContexts(t *testing.T) {
	text := "In 2023 I launched a product.   It increased revenue by 20%. I also managed a team. " +
		"We delivered on time. We reduced costs. We won an award. Then I led a migration."
	got := achievementContexts(text)
	assert.Len(t, got, maxAchievements)
	for _, ctx := range got {
		assert.NotContains(t, ctx, "  ")
	}
	assert.Contains(t, got[0], "launched a product")
}

func TestAnalyzePersonalization(t *testing.T) {
	t.Run("generic letter", func(t *testing.T) {
		text := "To whom it may concern, Dear hiring manager, I would love to join your company."
		got := analyzePersonalization(text, "")
		assert.Equal(t, 1, got.CompanyMentions)
		assert.Equal(t, []string{"your company"}, got.Indicators)
		assert.Empty(t, got.SpecificCompanyKnowledge)
		assert.Equal(t, 25, got.Score)
		assert.Equal(t, "Little to no personalization, appears to be a generic cover letter", got.Evaluation)
	})

	t.Run("named company not mentioned", func(t *testing.T) {
		text := "To whom it may concern, Dear hiring manager, I would love to join your company."
		got := analyzePersonalization(text, "Globex")
		assert.Equal(t, 0, got.CompanyMentions)
		assert.Equal(t, 10, got.Score)
		assert.Equal(t, "Little to no personalization, appears to be a generic cover letter", got.Evaluation)
	})

	t.Run("specific letter", func(t *testing.T) {
		text := "I admire Globex and your mission statement. Globex has a reputation I respect, and your commitment to open source inspires me. " +
			"I want to join your team at globex, build your products and delight your customers."
		got := analyzePersonalization(text, "Globex")
		assert.Equal(t, 3, got.CompanyMentions)
		assert.Equal(t, []string{"your team", "your mission", "your products", "your customers", "your commitment"}, got.Indicators)
		assert.Equal(t, []string{"your mission statement", "your commitment to"}, got.SpecificCompanyKnowledge)
		assert.Equal(t, 100, got.Score)
		assert.Equal(t, "Excellent personalization with specific company knowledge", got.Evaluation)
	})
}

func TestAnalyzePersonalization_CompanyNameIsLiteral(t *testing.T) {
	text := "I follow ACME (US) closely. Acme (us) ships weekly, unlike Acme US or AcmeXUS."
	got := analyzePersonalization(text, "Acme (US)")
	assert.Equal(t, 2, got.CompanyMentions)

	got = analyzePersonalization("Working at C++ Labs taught me a lot about c++ labs culture.", "c++ labs")
	assert.Equal(t, 2, got.CompanyMentions)
}

func TestAnalyzeJobRelevance_WholeWords(t *testing.T) {
	a := newTestAnalyzer(t)
	jd := "Data pipelines. Data quality. Streaming data. Pipelines and quality."

	got := a.analyzeJobRelevance("I maintain databases, Pipelines: and quality-checks.", jd)

	assert.Equal(t, []string{"pipelines", "quality"}, got.KeywordsMatched)
	assert.Equal(t, []string{"data", "streaming"}, got.KeywordsMissed)
	assert.Equal(t, 50, got.Score)
}

func TestTopKeywords(t *testing.T) {
	tokens := []string{"data", "data", "pipeline", "sql", "python", "python", "python", "team"}
	assert.Equal(t, []string{"python", "data"}, topKeywords(tokens, 2))
	assert.Equal(t, []string{"python", "data", "pipeline", "team"}, topKeywords(tokens, 20))
	assert.Empty(t, topKeywords(nil, 20))
}

func TestRecommend(t *testing.T) {
	structure := analyzeStructure("Random words here.")
	content := analyzeContent("Random words here.")
	personalization := analyzePersonalization("Random words here.", "")

	got := recommend(structure, content, personalization, nil)
	assert.Len(t, got, maxRecommendations)
	assert.Equal(t, missingPartAdvice[partGreeting], got[0])

	strong := StructureAnalysis{Score: 100}
	rich := ContentAnalysis{Length: LengthAnalysis{WordCount: 300}, AchievementCount: 3, SkillCount: 5, rawScore: 85}
	personal := Personalization{CompanyMentions: 3, Indicators: []string{"a", "b", "c"}}
	assert.Equal(t, []string{
		"Your cover letter is well-structured and contains strong content. Consider tailoring it even further for each specific position.",
	}, recommend(strong, rich, personal, nil))

	rich.rawScore = 60
	assert.Equal(t, []string{"Continue to focus on specific achievements and skills relevant to the position."},
		recommend(strong, rich, personal, nil))

	relevance := &JobRelevance{KeywordsMissed: []string{"a", "b", "c", "d", "e", "f"}}
	assert.Equal(t, []string{"Include more job-relevant keywords such as a, b, c, d, e"},
		recommend(strong, rich, personal, relevance))
}
