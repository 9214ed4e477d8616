// Package screening scores job applications against job listings. It
// extracts structured requirements from a listing, matches a candidate's
// resume and optional cover letter against them, and produces an overall
// score, a candidate tier and a human-readable report.
package screening

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/textproc"
	"github.com/searchfind/screening-engine/internal/types"
	"github.com/searchfind/screening-engine/internal/validation"
)

// Sub-score weights of the overall score. They sum to 1.
const (
	SkillsWeight      = 0.35
	ExperienceWeight  = 0.25
	EducationWeight   = 0.20
	ResumeWeight      = 0.10
	CoverLetterWeight = 0.10
)

// DefaultBulkConcurrency is the number of applications BulkScreen scores
// at once when no limit is configured.
const DefaultBulkConcurrency = 8

// DocumentParser extracts plain text from uploaded files.
type DocumentParser interface {
	ParseBytes(data []byte, filename string) (string, error)
	ParseFile(path string) (string, error)
}

// Options configures a Screener. Zero values get defaults.
type Options struct {
	Validator       *validation.ContentValidator
	Processor       *textproc.Processor
	Parser          DocumentParser
	Clock           Clock
	Logger          logging.Logger
	BulkConcurrency int
}

// Screener scores applications. It holds no per-call state and is safe for
// concurrent use.
type Screener struct {
	validator   *validation.ContentValidator
	processor   *textproc.Processor
	parser      DocumentParser
	clock       Clock
	logger      logging.Logger
	concurrency int
}

// New returns a Screener built from opts.
func New(opts Options) *Screener {
	s := &Screener{
		validator:   opts.Validator,
		processor:   opts.Processor,
		parser:      opts.Parser,
		clock:       opts.Clock,
		logger:      opts.Logger,
		concurrency: opts.BulkConcurrency,
	}
	if s.processor == nil {
		s.processor = textproc.New()
	}
	if s.validator == nil {
		s.validator = validation.NewContentValidator(s.processor)
	}
	if s.clock == nil {
		s.clock = SystemClock
	}
	if s.logger == nil {
		s.logger = logging.NewNoOpLogger()
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultBulkConcurrency
	}
	return s
}

// scoreSet holds every sub-score of one application.
type scoreSet struct {
	overall     int
	skills      types.SkillsMatch
	experience  types.ExperienceMatch
	education   types.EducationMatch
	resume      types.ResumeQuality
	coverLetter types.CoverLetterQuality
}

// ScreenApplication scores app against listing. Rejections are returned as
// *ScreeningError; unexpected failures, including panics, as *AnalysisError.
func (s *Screener) ScreenApplication(ctx context.Context, listing *types.JobListing, app *types.Application) (result *types.ScreeningResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("application screening panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			result, err = nil, &AnalysisError{Message: MsgScreeningFault, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if listing.IsEmpty() {
		return nil, &ScreeningError{Message: MsgNoJobListing}
	}
	if app.IsEmpty() {
		return nil, &ScreeningError{Message: MsgNoApplication}
	}

	resumeText, err := s.documentText("resume", app.ResumeText, app.ResumeFile, app.ResumeFileName, app.ResumeFilePath)
	if strings.TrimSpace(resumeText) == "" {
		return nil, &ScreeningError{Message: MsgNoResume, Cause: err}
	}

	check := s.validator.ValidateDocument(resumeText)
	if !validation.IsType(check, types.DocumentResume, validation.MediumConfidence) {
		rejection := &ScreeningError{
			Message:      MsgInvalidResume,
			Confidence:   check.Confidence,
			DetectedType: check.DocumentType,
		}
		if check.Error != "" {
			rejection.Cause = errors.New(check.Error)
		}
		return nil, rejection
	}

	var letter *types.ProcessedDocument
	letterText, err := s.documentText("cover letter", app.CoverLetterText, app.CoverLetterFile, app.CoverLetterFileName, app.CoverLetterFilePath)
	if err != nil {
		s.logger.WithError(err).Warn("cover letter could not be read; scoring without it", nil)
	}
	if strings.TrimSpace(letterText) != "" {
		letterCheck := s.validator.ValidateDocument(letterText)
		if validation.IsType(letterCheck, types.DocumentCoverLetter, validation.LowConfidence) {
			letter = s.processor.Process(letterText, types.DocumentCoverLetter)
		} else {
			s.logger.Debug("cover letter rejected by validator", map[string]interface{}{
				"detected_type": letterCheck.DocumentType.String(),
				"confidence":    letterCheck.Confidence,
			})
		}
	}

	reqs := s.ExtractRequirements(listing)
	resume := s.processor.Process(resumeText, types.DocumentResume)
	year := s.clock.Now().Year()

	scores := s.score(resume, letter, reqs, listing.Company, year)
	tier := types.TierForScore(scores.overall)
	flags := redFlags(resume, letter, reqs, listing.Company, year)

	result = &types.ScreeningResult{
		ApplicationID:      app.ID,
		IsValid:            true,
		CandidateName:      orDefault(app.CandidateName, "Unknown Candidate"),
		JobTitle:           orDefault(listing.Title, "Unknown Position"),
		OverallScore:       scores.overall,
		CandidateTier:      tier,
		SkillsMatch:        scores.skills,
		ExperienceMatch:    scores.experience,
		EducationMatch:     scores.education,
		ResumeQuality:      scores.resume,
		CoverLetterQuality: scores.coverLetter,
		HasCoverLetter:     letter != nil,
		ScreeningSummary:   summarize(scores, tier),
		RecommendedActions: recommendActions(scores, tier, flags),
		SuggestedQuestions: suggestQuestions(resume, scores),
	}
	if len(flags) > 0 {
		result.RedFlags = flags
	}
	return result, nil
}

func (s *Screener) score(resume, letter *types.ProcessedDocument, reqs types.JobRequirements, companyName string, year int) *scoreSet {
	set := &scoreSet{
		skills:      matchSkills(resume.ExtractedSkills, reqs.RequiredSkills, reqs.PreferredSkills),
		experience:  MatchExperience(resume.ExtractedExperience, reqs.ExperienceRequirements, year),
		education:   MatchEducation(resume.ExtractedEducation, reqs.EducationRequirements),
		resume:      resumeQuality(resume),
		coverLetter: noCoverLetter,
	}
	if letter != nil {
		set.coverLetter = coverLetterQuality(letter, reqs.JobTitle, companyName)
	}

	set.overall = scoring.Clamp(scoring.Weighted(
		scoring.WeightedScore{Score: set.skills.Score, Weight: SkillsWeight},
		scoring.WeightedScore{Score: set.experience.Score, Weight: ExperienceWeight},
		scoring.WeightedScore{Score: set.education.Score, Weight: EducationWeight},
		scoring.WeightedScore{Score: set.resume.Score, Weight: ResumeWeight},
		scoring.WeightedScore{Score: set.coverLetter.Score, Weight: CoverLetterWeight},
	))
	return set
}

// documentText returns the first available text for a document, trying
// inline text, then uploaded bytes, then a path on disk. A source that
// fails to parse is logged and the next one is tried.
func (s *Screener) documentText(kind, text string, file []byte, fileName, path string) (string, error) {
	if text != "" {
		return text, nil
	}

	var lastErr error
	if len(file) > 0 && fileName != "" {
		if s.parser == nil {
			lastErr = fmt.Errorf("no document parser configured for %s file %q", kind, fileName)
		} else if parsed, err := s.parser.ParseBytes(file, fileName); err != nil {
			lastErr = fmt.Errorf("failed to extract %s text from %q: %w", kind, fileName, err)
			s.logger.WithError(err).Warn("document extraction failed", map[string]interface{}{"document": kind, "file_name": fileName})
		} else if strings.TrimSpace(parsed) != "" {
			return parsed, nil
		}
	}

	if path != "" {
		if s.parser == nil {
			lastErr = fmt.Errorf("no document parser configured for %s path %q", kind, path)
		} else if parsed, err := s.parser.ParseFile(path); err != nil {
			lastErr = fmt.Errorf("failed to extract %s text from %q: %w", kind, path, err)
			s.logger.WithError(err).Warn("document extraction failed", map[string]interface{}{"document": kind, "path": path})
		} else {
			return parsed, nil
		}
	}
	return "", lastErr
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
