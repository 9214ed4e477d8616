// Package matching scores how well a candidate fits a job. Unlike
// screening, it reads the resume alone and adds job-title and location
// fit, so it can rank a pool of candidates for one job or tell a job
// seeker how qualified they are for many.
package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/resumeanalysis"
	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/screening"
	"github.com/searchfind/screening-engine/internal/textproc"
	"github.com/searchfind/screening-engine/internal/types"
	"github.com/searchfind/screening-engine/internal/validation"
)

// Weights of the overall match. They sum to 1.
const (
	SkillsWeight     = 0.35
	ExperienceWeight = 0.30
	EducationWeight  = 0.15
	TitleWeight      = 0.15
	LocationWeight   = 0.05
)

// Placeholders for records without a name.
const (
	UnknownJobTitle  = "Unknown Position"
	UnknownCandidate = "Unknown Candidate"
)

// Tier buckets an overall match score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierVeryGood  Tier = "very_good"
	TierGood      Tier = "good"
	TierModerate  Tier = "moderate"
	TierWeak      Tier = "weak"
	TierPoor      Tier = "poor"
	TierUnknown   Tier = "unknown"
)

var tierFloors = []struct {
	tier  Tier
	floor int
}{
	{TierExcellent, 90},
	{TierVeryGood, 80},
	{TierGood, 70},
	{TierModerate, 50},
	{TierWeak, 30},
}

// TierFor returns the tier of an overall score.
func TierFor(score int) Tier {
	for _, t := range tierFloors {
		if score >= t.floor {
			return t.tier
		}
	}
	return TierPoor
}

// CloseMatch is a required skill credited through a similar candidate skill.
type CloseMatch struct {
	Required   string  `json:"required" yaml:"required"`
	Candidate  string  `json:"candidate" yaml:"candidate"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// SkillsMatch compares candidate skills to the job's required skills.
type SkillsMatch struct {
	Score         int          `json:"score" yaml:"score"`
	ExactMatches  []string     `json:"exact_matches" yaml:"exact_matches"`
	CloseMatches  []CloseMatch `json:"close_matches" yaml:"close_matches"`
	MissingSkills []string     `json:"missing_skills" yaml:"missing_skills"`
	Percentage    float64      `json:"percentage" yaml:"percentage"`
	Evaluation    string       `json:"evaluation" yaml:"evaluation"`
}

// PartialTitle is a previous job title sharing terms with the job title.
type PartialTitle struct {
	Title string `json:"title" yaml:"title"`
	Score int    `json:"score" yaml:"score"`
}

// TitleMatch compares previous job titles to the job title.
type TitleMatch struct {
	Score          int            `json:"score" yaml:"score"`
	ExactMatches   []string       `json:"exact_matches" yaml:"exact_matches"`
	PartialMatches []PartialTitle `json:"partial_matches" yaml:"partial_matches"`
	Evaluation     string         `json:"evaluation" yaml:"evaluation"`
}

// LocationMatch compares the candidate's location to the job's.
type LocationMatch struct {
	Score             int    `json:"score" yaml:"score"`
	CandidateLocation string `json:"candidate_location,omitempty" yaml:"candidate_location,omitempty"`
	JobLocation       string `json:"job_location,omitempty" yaml:"job_location,omitempty"`
	Evaluation        string `json:"evaluation" yaml:"evaluation"`
}

// Recommendations are grouped suggestions for closing the gaps of a match.
type Recommendations struct {
	Skills     []string `json:"skills_recommendations" yaml:"skills_recommendations"`
	Experience []string `json:"experience_recommendations" yaml:"experience_recommendations"`
	Education  []string `json:"education_recommendations" yaml:"education_recommendations"`
	Resume     []string `json:"resume_recommendations" yaml:"resume_recommendations"`
}

// Match is the fit of one candidate for one job.
type Match struct {
	JobID           string                `json:"job_id,omitempty" yaml:"job_id,omitempty"`
	JobTitle        string                `json:"job_title" yaml:"job_title"`
	CandidateID     string                `json:"candidate_id,omitempty" yaml:"candidate_id,omitempty"`
	CandidateName   string                `json:"candidate_name,omitempty" yaml:"candidate_name,omitempty"`
	OverallMatch    int                   `json:"overall_match" yaml:"overall_match"`
	MatchTier       Tier                  `json:"match_tier" yaml:"match_tier"`
	Skills          SkillsMatch           `json:"skills_match" yaml:"skills_match"`
	Experience      types.ExperienceMatch `json:"experience_match" yaml:"experience_match"`
	Education       types.EducationMatch  `json:"education_match" yaml:"education_match"`
	Title           TitleMatch            `json:"job_title_match" yaml:"job_title_match"`
	Location        LocationMatch         `json:"location_match" yaml:"location_match"`
	Recommendations *Recommendations      `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

// Candidate is one profile in a pool. The resume comes from ResumeText, or
// from ResumeFilePath when the text is empty.
type Candidate struct {
	ID             string `json:"id,omitempty" yaml:"id,omitempty"`
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	ResumeText     string `json:"resume_text,omitempty" yaml:"resume_text,omitempty"`
	ResumeFilePath string `json:"resume_file_path,omitempty" yaml:"resume_file_path,omitempty"`
	Location       string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Ranking is a job's candidate pool ordered by overall match.
type Ranking struct {
	JobID           string  `json:"job_id,omitempty" yaml:"job_id,omitempty"`
	JobTitle        string  `json:"job_title" yaml:"job_title"`
	TotalCandidates int     `json:"total_candidates" yaml:"total_candidates"`
	Matches         []Match `json:"matches" yaml:"matches"`
}

// Options configures a Matcher. Zero values get defaults.
type Options struct {
	Validator *validation.ContentValidator
	Processor *textproc.Processor
	Screener  *screening.Screener
	Resumes   *resumeanalysis.Analyzer
	Parser    screening.DocumentParser
	Clock     screening.Clock
	Logger    logging.Logger
}

// Matcher matches candidates with jobs. It is safe for concurrent use.
type Matcher struct {
	validator *validation.ContentValidator
	processor *textproc.Processor
	screener  *screening.Screener
	resumes   *resumeanalysis.Analyzer
	parser    screening.DocumentParser
	clock     screening.Clock
	logger    logging.Logger
}

// New returns a Matcher built from opts.
func New(opts Options) *Matcher {
	m := &Matcher{
		validator: opts.Validator,
		processor: opts.Processor,
		screener:  opts.Screener,
		resumes:   opts.Resumes,
		parser:    opts.Parser,
		clock:     opts.Clock,
		logger:    opts.Logger,
	}
	if m.processor == nil {
		m.processor = textproc.New()
	}
	if m.validator == nil {
		m.validator = validation.NewContentValidator(m.processor)
	}
	if m.clock == nil {
		m.clock = screening.SystemClock
	}
	if m.logger == nil {
		m.logger = logging.NewNoOpLogger()
	}
	if m.screener == nil {
		m.screener = screening.New(screening.Options{
			Validator: m.validator,
			Processor: m.processor,
			Parser:    m.parser,
			Clock:     m.clock,
			Logger:    m.logger,
		})
	}
	if m.resumes == nil {
		m.resumes = resumeanalysis.New(resumeanalysis.Options{
			Validator: m.validator,
			Processor: m.processor,
			Clock:     m.clock,
			Logger:    m.logger,
		})
	}
	return m
}

// MatchCandidateWithJob scores one resume against listing. location is the
// candidate's location and may be empty. Rejections are returned as
// *MatchError; unexpected failures, including panics, as *AnalysisError.
func (m *Matcher) MatchCandidateWithJob(ctx context.Context, resumeText, location string, listing *types.JobListing) (match *Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("candidate matching panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			match, err = nil, &AnalysisError{Message: MsgMatchFault, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, &MatchError{Message: MsgNoResume}
	}
	if listing.IsEmpty() {
		return nil, &MatchError{Message: MsgNoJobListing}
	}

	check := m.validator.ValidateDocument(resumeText)
	if !validation.IsType(check, types.DocumentResume, validation.MediumConfidence) {
		return nil, &MatchError{
			Message:      MsgInvalidResume,
			Confidence:   check.Confidence,
			DetectedType: check.DocumentType,
		}
	}

	resume := m.processor.Process(resumeText, types.DocumentResume)
	req := m.screener.ExtractRequirements(listing)
	result := m.score(resume, location, req)
	result.JobID = listing.ID
	result.JobTitle = jobTitle(listing)
	recs := recommend(resume, result)
	result.Recommendations = &recs

	m.logger.Debug("candidate matched", map[string]interface{}{
		"job_id":        listing.ID,
		"overall_match": result.OverallMatch,
		"match_tier":    string(result.MatchTier),
	})
	return &result, nil
}

// MatchJobWithCandidates scores every candidate against listing and orders
// them by overall match, best first. Candidates whose resume cannot be read
// or is empty are skipped.
func (m *Matcher) MatchJobWithCandidates(ctx context.Context, listing *types.JobListing, candidates []Candidate) (ranking *Ranking, err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("candidate ranking panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			ranking, err = nil, &AnalysisError{Message: MsgMatchFault, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if listing.IsEmpty() {
		return nil, &MatchError{Message: MsgNoJobListing}
	}
	if len(candidates) == 0 {
		return nil, &MatchError{Message: MsgNoCandidates}
	}

	req := m.screener.ExtractRequirements(listing)
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := c.ResumeText
		if text == "" && c.ResumeFilePath != "" {
			if m.parser == nil {
				m.logger.Warn("no document parser configured; skipping candidate", map[string]interface{}{"candidate_id": c.ID})
				continue
			}
			text, err = m.parser.ParseFile(c.ResumeFilePath)
			if err != nil {
				m.logger.WithError(err).Error("resume file could not be read; skipping candidate", map[string]interface{}{
					"candidate_id": c.ID,
				})
				continue
			}
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		result := m.score(m.processor.Process(text, types.DocumentResume), c.Location, req)
		result.JobID = listing.ID
		result.JobTitle = jobTitle(listing)
		result.CandidateID = c.ID
		result.CandidateName = c.Name
		if result.CandidateName == "" {
			result.CandidateName = UnknownCandidate
		}
		matches = append(matches, result)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].OverallMatch > matches[j].OverallMatch
	})

	m.logger.Info("candidates ranked", map[string]interface{}{
		"job_id":     listing.ID,
		"submitted":  len(candidates),
		"considered": len(matches),
	})
	return &Ranking{
		JobID:           listing.ID,
		JobTitle:        jobTitle(listing),
		TotalCandidates: len(matches),
		Matches:         matches,
	}, nil
}

func (m *Matcher) score(resume *types.ProcessedDocument, location string, req types.JobRequirements) Match {
	skills := matchSkills(resume.ExtractedSkills, req.RequiredSkills)
	experience := screening.MatchExperience(resume.ExtractedExperience, req.ExperienceRequirements, m.clock.Now().Year())
	education := screening.MatchEducation(resume.ExtractedEducation, req.EducationRequirements)
	title := matchTitle(candidateTitles(resume), req.JobTitle)
	place := matchLocation(location, req.JobLocation)

	overall := scoring.Round(scoring.Weighted(
		scoring.WeightedScore{Score: skills.Score, Weight: SkillsWeight},
		scoring.WeightedScore{Score: experience.Score, Weight: ExperienceWeight},
		scoring.WeightedScore{Score: education.Score, Weight: EducationWeight},
		scoring.WeightedScore{Score: title.Score, Weight: TitleWeight},
		scoring.WeightedScore{Score: place.Score, Weight: LocationWeight},
	))

	return Match{
		OverallMatch: overall,
		MatchTier:    TierFor(overall),
		Skills:       skills,
		Experience:   experience,
		Education:    education,
		Title:        title,
		Location:     place,
	}
}

// candidateTitles lists the titles of every extracted position followed by
// loose title mentions, without duplicates.
func candidateTitles(resume *types.ProcessedDocument) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(title string) {
		key := strings.ToLower(strings.TrimSpace(title))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(title))
	}
	for _, e := range resume.ExtractedExperience {
		add(e.Title)
	}
	for _, t := range resume.Entities.JobTitles {
		add(t)
	}
	return out
}

func jobTitle(listing *types.JobListing) string {
	if listing.Title == "" {
		return UnknownJobTitle
	}
	return listing.Title
}
