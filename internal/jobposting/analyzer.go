// Package jobposting grades job postings for employers: structure, content,
// requirement clarity, inclusive language and overall quality, with concrete
// suggestions and a requirements rewriter.
package jobposting

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

// minSecondaryConfidence is the combined indicator confidence at which the
// fallback heuristic accepts a posting the content validator was unsure
// about.
const minSecondaryConfidence = 0.5

// expectedSectionCount is the number of section headings a typical posting
// has.
const expectedSectionCount = 5

// Analysis is the full report on one job posting.
type Analysis struct {
	IsValid       bool                 `json:"is_valid" yaml:"is_valid"`
	DocumentType  types.DocumentType   `json:"document_type" yaml:"document_type"`
	Confidence    float64              `json:"confidence" yaml:"confidence"`
	ExtractedInfo Info                 `json:"extracted_info" yaml:"extracted_info"`
	Structure     StructureAnalysis    `json:"structure_analysis" yaml:"structure_analysis"`
	Content       ContentAnalysis      `json:"content_analysis" yaml:"content_analysis"`
	Requirements  RequirementsAnalysis `json:"requirements_analysis" yaml:"requirements_analysis"`
	Inclusivity   InclusivityAnalysis  `json:"inclusivity_analysis" yaml:"inclusivity_analysis"`
	Quality       QualityScores        `json:"quality_scores" yaml:"quality_scores"`
	Suggestions   Suggestions          `json:"optimization_suggestions" yaml:"optimization_suggestions"`
	WordCount     int                  `json:"word_count" yaml:"word_count"`
}

// Options configures an Analyzer. Nil fields get defaults.
type Options struct {
	Validator *validation.ContentValidator
	Processor *textproc.Processor
	Logger    logging.Logger
}

// Analyzer grades job postings. It is safe for concurrent use.
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

// Analyze grades text as a job posting. Text that does not read as a job
// posting is rejected with a *ValidationError.
func (a *Analyzer) Analyze(ctx context.Context, text string) (analysis *Analysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("job posting analysis panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
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

	doc := a.processor.Process(text, types.DocumentJobDescription)
	info := a.extractInfo(text, doc)
	structure := analyzeStructure(text)
	content := analyzeContent(text, info)
	reqs := analyzeRequirements(text)
	incl := analyzeInclusivity(text)
	quality := calculateQuality(info, structure, content, reqs, incl)

	analysis = &Analysis{
		IsValid:       true,
		DocumentType:  types.DocumentJobDescription,
		Confidence:    confidence,
		ExtractedInfo: info,
		Structure:     structure,
		Content:       content,
		Requirements:  reqs,
		Inclusivity:   incl,
		Quality:       quality,
		Suggestions:   suggest(info, structure, content, reqs, incl, quality),
		WordCount:     len(strings.Fields(text)),
	}
	a.logger.Debug("job posting analyzed", map[string]interface{}{
		"overall_quality": quality.Overall.Score,
		"word_count":      analysis.WordCount,
	})
	return analysis, nil
}

var (
	postingIndicators = compileAll(
		`\bjob description\b`,
		`\bposition\b`,
		`\brole\b`,
		`\bresponsibilities\b`,
		`\brequirements\b`,
		`\bqualifications\b`,
		`\bwe are looking for\b`,
		`\bwe are seeking\b`,
		`\bapply\b`,
		`\bemployment\b`,
		`\bcareer\b`,
		`\bopportunity\b`,
		`\bbenefits\b`,
		`\bsalary\b`,
		`\bfull[ -]time\b`,
		`\bpart[ -]time\b`,
		`\bremote\b`,
		`\bhybrid\b`,
		`\bin[ -]office\b`,
	)

	postingSectionIndicators = compileAll(
		`\bcompany overview\b`,
		`\babout (?:us|the company|our team)\b`,
		`\bjob (?:description|summary)\b`,
		`\bresponsibilities\b`,
		`\bduties\b`,
		`\brequirements\b`,
		`\bqualifications\b`,
		`\bskills\b`,
		`\bexperience\b`,
		`\bbenefits\b`,
		`\bperks\b`,
		`\bhow to apply\b`,
		`\bapplication process\b`,
	)
)

func countPresent(text string, patterns []*regexp.Regexp) int {
	n := 0
	for _, re := range patterns {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

// validate accepts text the content validator classifies as a job
// description with medium confidence. Otherwise it falls back to the share
// of posting vocabulary and section headings present.
func (a *Analyzer) validate(text string) (float64, error) {
	check := a.validator.ValidateDocument(text)
	if validation.IsType(check, types.DocumentJobDescription, validation.MediumConfidence) {
		return check.Confidence, nil
	}

	lower := strings.ToLower(text)
	indicatorRatio := float64(countPresent(lower, postingIndicators)) / float64(len(postingIndicators))
	sectionRatio := math.Min(1, float64(countPresent(lower, postingSectionIndicators))/expectedSectionCount)
	confidence := 0.6*indicatorRatio + 0.4*sectionRatio

	if confidence < minSecondaryConfidence {
		return 0, &ValidationError{
			Message:      msgNotJobPosting,
			Confidence:   math.Round(confidence*100) / 100,
			DetectedType: check.DocumentType,
		}
	}
	return math.Round(confidence*100) / 100, nil
}
