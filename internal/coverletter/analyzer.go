// Package coverletter grades cover letters on structure, content,
// personalization and, when a job description is supplied, relevance to
// the job.
package coverletter

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/textproc"
	"github.com/searchfind/screening-engine/internal/types"
	"github.com/searchfind/screening-engine/internal/validation"
)

// Weights of the overall score.
const (
	StructureWeight       = 0.3
	ContentWeight         = 0.4
	PersonalizationWeight = 0.3
)

// minSecondaryScore is the combined indicator score at which the fallback
// heuristic accepts a letter the content validator was unsure about.
const minSecondaryScore = 0.5

// Analysis is the full report on one cover letter.
type Analysis struct {
	IsValid         bool               `json:"is_valid" yaml:"is_valid"`
	DocumentType    types.DocumentType `json:"document_type" yaml:"document_type"`
	Confidence      float64            `json:"confidence" yaml:"confidence"`
	Structure       StructureAnalysis  `json:"structure_analysis" yaml:"structure_analysis"`
	Content         ContentAnalysis    `json:"content_analysis" yaml:"content_analysis"`
	Personalization Personalization    `json:"personalization" yaml:"personalization"`
	JobRelevance    *JobRelevance      `json:"job_relevance,omitempty" yaml:"job_relevance,omitempty"`
	OverallScore    int                `json:"overall_score" yaml:"overall_score"`
	Suggestions     []string           `json:"suggestions" yaml:"suggestions"`
	WordCount       int                `json:"word_count" yaml:"word_count"`
}

// StructureAnalysis records which conventional letter parts are present.
type StructureAnalysis struct {
	HasGreeting      bool     `json:"has_greeting" yaml:"has_greeting"`
	HasIntroduction  bool     `json:"has_introduction" yaml:"has_introduction"`
	HasBody          bool     `json:"has_body" yaml:"has_body"`
	HasClosing       bool     `json:"has_closing" yaml:"has_closing"`
	HasSignature     bool     `json:"has_signature" yaml:"has_signature"`
	SectionsPresent  []string `json:"sections_present" yaml:"sections_present"`
	SectionsMissing  []string `json:"sections_missing" yaml:"sections_missing"`
	GreetingText     string   `json:"greeting_text,omitempty" yaml:"greeting_text,omitempty"`
	IntroductionText string   `json:"introduction_text,omitempty" yaml:"introduction_text,omitempty"`
	ClosingText      string   `json:"closing_text,omitempty" yaml:"closing_text,omitempty"`
	Score            int      `json:"structure_score" yaml:"structure_score"`
	Evaluation       string   `json:"evaluation" yaml:"evaluation"`
}

// LengthAnalysis grades word and paragraph counts.
type LengthAnalysis struct {
	WordCount           int    `json:"word_count" yaml:"word_count"`
	Evaluation          string `json:"evaluation" yaml:"evaluation"`
	Score               int    `json:"score" yaml:"score"`
	ParagraphCount      int    `json:"paragraph_count" yaml:"paragraph_count"`
	ParagraphEvaluation string `json:"paragraph_evaluation" yaml:"paragraph_evaluation"`
}

// LanguageQuality describes sentence-level writing.
type LanguageQuality struct {
	SentenceCount   int    `json:"sentence_count" yaml:"sentence_count"`
	SentenceVariety string `json:"sentence_variety,omitempty" yaml:"sentence_variety,omitempty"`
}

// ContentAnalysis grades what the letter says.
type ContentAnalysis struct {
	Length             LengthAnalysis  `json:"length_analysis" yaml:"length_analysis"`
	Language           LanguageQuality `json:"language_quality" yaml:"language_quality"`
	Achievements       []string        `json:"achievements" yaml:"achievements"`
	AchievementCount   int             `json:"achievement_count" yaml:"achievement_count"`
	SkillsMentioned    []string        `json:"skills_mentioned" yaml:"skills_mentioned"`
	SkillCount         int             `json:"skill_count" yaml:"skill_count"`
	GenericPhrases     []string        `json:"generic_phrases" yaml:"generic_phrases"`
	GenericPhraseCount int             `json:"generic_phrase_count" yaml:"generic_phrase_count"`
	Score              int             `json:"content_score" yaml:"content_score"`
	Evaluation         string          `json:"evaluation" yaml:"evaluation"`

	rawScore float64
}

// Personalization grades how specifically the letter addresses the company.
type Personalization struct {
	Score                    int      `json:"score" yaml:"score"`
	CompanyMentions          int      `json:"company_mentions" yaml:"company_mentions"`
	SpecificCompanyKnowledge []string `json:"specific_company_knowledge" yaml:"specific_company_knowledge"`
	Indicators               []string `json:"personalization_indicators" yaml:"personalization_indicators"`
	Evaluation               string   `json:"evaluation" yaml:"evaluation"`
}

// JobRelevance grades keyword overlap with the job description.
type JobRelevance struct {
	Score           int      `json:"score" yaml:"score"`
	KeywordsMatched []string `json:"job_keywords_matched" yaml:"job_keywords_matched"`
	KeywordsMissed  []string `json:"job_keywords_missed" yaml:"job_keywords_missed"`
	SkillAlignment  float64  `json:"skill_alignment" yaml:"skill_alignment"`
	Evaluation      string   `json:"evaluation" yaml:"evaluation"`
}

// Options configures an Analyzer. Zero values get defaults.
type Options struct {
	Validator *validation.ContentValidator
	Processor *textproc.Processor
	Logger    logging.Logger
}

// Analyzer grades cover letters. It is safe for concurrent use.
type Analyzer struct {
	validator *validation.ContentValidator
	processor *textproc.Processor
	logger    logging.Logger
}

// New returns an Analyzer built from opts.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		validator: opts.Validator,
		processor: opts.Processor,
		logger:    opts.Logger,
	}
	if a.processor == nil {
		a.processor = textproc.New()
	}
	if a.validator == nil {
		a.validator = validation.NewContentValidator(a.processor)
	}
	if a.logger == nil {
		a.logger = logging.NewNoOpLogger()
	}
	return a
}

// Analyze grades text as a cover letter. jobDescription and companyName are
// optional; without a job description no relevance is reported. Text that
// does not read as a cover letter is rejected with a *ValidationError.
func (a *Analyzer) Analyze(ctx context.Context, text, jobDescription, companyName string) (analysis *Analysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("cover letter analysis panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			analysis, err = nil, &AnalysisError{Message: msgAnalysisFailure, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	confidence, err := a.validate(text)
	if err != nil {
		return nil, err
	}

	structure := analyzeStructure(text)
	content := analyzeContent(text)
	personalization := analyzePersonalization(text, companyName)

	var relevance *JobRelevance
	if strings.TrimSpace(jobDescription) != "" {
		relevance = a.analyzeJobRelevance(text, jobDescription)
	}

	overall := int(float64(structure.Score)*StructureWeight +
		content.rawScore*ContentWeight +
		float64(personalization.Score)*PersonalizationWeight)

	analysis = &Analysis{
		IsValid:         true,
		DocumentType:    types.DocumentCoverLetter,
		Confidence:      confidence,
		Structure:       structure,
		Content:         content,
		Personalization: personalization,
		JobRelevance:    relevance,
		OverallScore:    overall,
		Suggestions:     recommend(structure, content, personalization, relevance),
		WordCount:       len(strings.Fields(text)),
	}
	a.logger.Debug("cover letter analyzed", map[string]interface{}{
		"overall_score": overall,
		"word_count":    analysis.WordCount,
	})
	return analysis, nil
}

var (
	greetingPattern = regexp.MustCompile(`\b(?:dear|to whom it may concern|hello|greetings|hi)\b[^.!?]*`)
	introPattern    = regexp.MustCompile(`(?:i am writing|i would like to|i am interested|i am excited|please accept|i am pleased)[^.!?]*\.?`)
	bodyPattern     = regexp.MustCompile(`(?:my experience|my background|throughout my career|during my time|i have been|in my role|in my previous|in my current|in my past|in my most recent)[^.!?]*\.?`)
	closingPattern  = regexp.MustCompile(`(?:thank you|sincerely|regards|best regards|yours truly|looking forward)[^.!?]*\.?`)

	firstPersonPattern = regexp.MustCompile(`\b(?:I|me|my|mine|myself)\b`)
)

// validate accepts text the content validator classifies as a cover letter
// with medium confidence. Otherwise it falls back to counting letter
// conventions: greeting, introduction, closing and first-person voice.
func (a *Analyzer) validate(text string) (float64, error) {
	check := a.validator.ValidateDocument(text)
	if validation.IsType(check, types.DocumentCoverLetter, validation.MediumConfidence) {
		return check.Confidence, nil
	}

	lower := strings.ToLower(text)
	score := 0.0
	for _, re := range []*regexp.Regexp{greetingPattern, introPattern, closingPattern} {
		if re.MatchString(lower) {
			score += 0.2
		}
	}
	if words := len(strings.Fields(text)); words > 0 {
		ratio := float64(len(firstPersonPattern.FindAllStringIndex(text, -1))) / float64(words)
		if ratio > 0.03 {
			score += 0.2
		}
	}
	if strings.Contains(lower, "cover letter") {
		score += 0.1
	}
	if strings.Contains(lower, "position") && strings.Contains(lower, "apply") {
		score += 0.1
	}
	score = math.Round(score*10) / 10

	if score < minSecondaryScore {
		return 0, &ValidationError{Message: msgNotCoverLetter, DetectedType: check.DocumentType}
	}
	return score, nil
}
