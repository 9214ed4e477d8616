package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/searchfind/screening-engine/internal/types"
)

// Kinds of missing requirement and strength.
const (
	GapSkills          = "skills"
	GapExperienceYears = "experience_years"
	GapExperienceAreas = "experience_areas"
	GapEducation       = "education"
)

const (
	maxHighlights        = 3
	maxHighlightSkills   = 3
	maxHighlightAreas    = 2
	maxSuggestedSkills   = 5
	maxSuggestedAreas    = 3
	goodMatchPercentage  = 70
	defaultQualifyFailed = "Invalid match calculation"
)

// Highlight is one missing requirement or strength of a match. Which fields
// are set depends on Type.
type Highlight struct {
	Type     string      `json:"type" yaml:"type"`
	Items    []string    `json:"items,omitempty" yaml:"items,omitempty"`
	Required interface{} `json:"required,omitempty" yaml:"required,omitempty"`
	Current  *int        `json:"current,omitempty" yaml:"current,omitempty"`
	Degree   string      `json:"degree,omitempty" yaml:"degree,omitempty"`
}

// Qualification is the condensed view of a match shown beside a job
// listing.
type Qualification struct {
	IsValid                bool        `json:"is_valid" yaml:"is_valid"`
	JobID                  string      `json:"job_id,omitempty" yaml:"job_id,omitempty"`
	MatchPercentage        int         `json:"match_percentage" yaml:"match_percentage"`
	MatchTier              Tier        `json:"match_tier" yaml:"match_tier"`
	MissingRequirements    []Highlight `json:"missing_requirements,omitempty" yaml:"missing_requirements,omitempty"`
	Strengths              []Highlight `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	ColorClass             string      `json:"color_class,omitempty" yaml:"color_class,omitempty"`
	ImprovementSuggestions []string    `json:"improvement_suggestions" yaml:"improvement_suggestions"`
	FullResults            *Match      `json:"full_results,omitempty" yaml:"full_results,omitempty"`
	Error                  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// ColorClass returns the display class of a match percentage.
func ColorClass(percentage int) string {
	switch {
	case percentage >= 90:
		return "excellent-match"
	case percentage >= 80:
		return "very-good-match"
	case percentage >= 70:
		return "good-match"
	case percentage >= 50:
		return "moderate-match"
	case percentage >= 30:
		return "low-match"
	default:
		return "poor-match"
	}
}

// CheckQualification condenses the match of resumeText against listing.
// Match rejections do not fail the call; they come back as an invalid
// Qualification carrying the message. Only context errors are returned.
func (m *Matcher) CheckQualification(ctx context.Context, resumeText string, listing *types.JobListing) (Qualification, error) {
	q := Qualification{JobID: jobID(listing)}

	match, err := m.MatchCandidateWithJob(ctx, resumeText, "", listing)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return q, err
		}
		var mErr *MatchError
		q.MatchTier = TierUnknown
		q.Error = defaultQualifyFailed
		switch {
		case errors.As(err, &mErr):
			q.Error = mErr.Message
		default:
			m.logger.WithError(err).Error("qualification check failed", map[string]interface{}{"job_id": q.JobID})
			q.Error = fmt.Sprintf("%s: %v", MsgQualifyFault, err)
		}
		q.ImprovementSuggestions = improvementSuggestions(q)
		return q, nil
	}

	q.IsValid = true
	q.MatchPercentage = match.OverallMatch
	q.MatchTier = match.MatchTier
	q.MissingRequirements = missingRequirements(match)
	q.Strengths = strengths(match)
	q.ColorClass = ColorClass(match.OverallMatch)
	q.FullResults = match
	q.ImprovementSuggestions = improvementSuggestions(q)
	return q, nil
}

// CheckQualificationBatch checks resumeText against every listing that has
// an ID, keyed by that ID.
func (m *Matcher) CheckQualificationBatch(ctx context.Context, resumeText string, listings []types.JobListing) (map[string]Qualification, error) {
	out := make(map[string]Qualification, len(listings))
	for i := range listings {
		listing := &listings[i]
		if strings.TrimSpace(listing.ID) == "" {
			continue
		}
		q, err := m.CheckQualification(ctx, resumeText, listing)
		if err != nil {
			return nil, err
		}
		out[listing.ID] = q
	}
	m.logger.Debug("qualifications checked", map[string]interface{}{
		"listings": len(listings),
		"checked":  len(out),
	})
	return out, nil
}

func jobID(listing *types.JobListing) string {
	if listing == nil {
		return ""
	}
	return listing.ID
}

func intPtr(v int) *int {
	return &v
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func limitHighlights(h []Highlight) []Highlight {
	if len(h) > maxHighlights {
		return h[:maxHighlights]
	}
	return h
}

func missingRequirements(match *Match) []Highlight {
	var out []Highlight
	if len(match.Skills.MissingSkills) > 0 {
		out = append(out, Highlight{Type: GapSkills, Items: head(match.Skills.MissingSkills, maxHighlightSkills)})
	}
	exp := match.Experience
	if exp.YearsExperience < exp.YearsRequired {
		out = append(out, Highlight{Type: GapExperienceYears, Required: exp.YearsRequired, Current: intPtr(exp.YearsExperience)})
	}
	if len(exp.RelevantAreasMissing) > 0 {
		out = append(out, Highlight{Type: GapExperienceAreas, Items: head(exp.RelevantAreasMissing, maxHighlightAreas)})
	}
	edu := match.Education
	if !edu.HasRequiredEducation && edu.RequiredDegree != "" {
		out = append(out, Highlight{Type: GapEducation, Required: edu.RequiredDegree})
	}
	return limitHighlights(out)
}

func strengths(match *Match) []Highlight {
	var out []Highlight
	if len(match.Skills.ExactMatches) > 0 {
		out = append(out, Highlight{Type: GapSkills, Items: head(match.Skills.ExactMatches, maxHighlightSkills)})
	}
	exp := match.Experience
	if exp.YearsRequired > 0 && exp.YearsExperience >= exp.YearsRequired {
		out = append(out, Highlight{Type: GapExperienceYears, Required: exp.YearsRequired, Current: intPtr(exp.YearsExperience)})
	}
	if len(exp.RelevantAreasMatched) > 0 {
		out = append(out, Highlight{Type: GapExperienceAreas, Items: head(exp.RelevantAreasMatched, maxHighlightAreas)})
	}
	edu := match.Education
	if edu.HasRequiredEducation && edu.CandidateHighestDegree != nil && edu.CandidateHighestDegree.Type != "" {
		out = append(out, Highlight{Type: GapEducation, Degree: edu.CandidateHighestDegree.Type})
	}
	return limitHighlights(out)
}

// improvementSuggestions turns the gaps of a qualification into short
// actions for the job seeker.
func improvementSuggestions(q Qualification) []string {
	if !q.IsValid || q.FullResults == nil {
		return []string{"Update your resume with relevant skills and experience."}
	}
	match := q.FullResults

	var out []string
	if missing := match.Skills.MissingSkills; len(missing) > 0 {
		out = append(out, "Add these key skills to your resume: "+strings.Join(head(missing, maxSuggestedSkills), ", "))
	}
	exp := match.Experience
	if exp.YearsExperience < exp.YearsRequired {
		out = append(out, fmt.Sprintf(
			"Highlight any additional experience to meet the %d years requirement. Include relevant projects or freelance work.",
			exp.YearsRequired))
	}
	if len(exp.RelevantAreasMissing) > 0 {
		out = append(out, "Emphasize experience in: "+strings.Join(head(exp.RelevantAreasMissing, maxSuggestedAreas), ", ")+
			". Include relevant projects or training.")
	}
	edu := match.Education
	if !edu.HasRequiredEducation && edu.RequiredDegree != "" {
		out = append(out, fmt.Sprintf(
			"This position requires a %s degree. Highlight relevant coursework, certifications, or equivalent experience.",
			edu.RequiredDegree))
	}
	if q.MatchPercentage < goodMatchPercentage {
		out = append(out, "Tailor your resume specifically for this position by highlighting relevant skills and experiences that match the job requirements.")
	}
	if len(out) == 0 {
		return []string{"Your resume appears to be a good match for this position."}
	}
	return out
}
