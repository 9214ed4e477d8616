package screening

import (
	"fmt"

	"github.com/searchfind/screening-engine/internal/types"
)

// mustHaveSkillCount caps the must-have skills of a criteria checklist.
const mustHaveSkillCount = 5

var (
	criteriaGeneralQuestions = []string{
		"Why are you interested in this position?",
		"What makes you a good fit for our company?",
		"What are your salary expectations?",
		"When would you be available to start?",
		"Are you legally authorized to work in this country?",
	}

	automaticDisqualifiers = []string{
		"Insufficient required skills",
		"Does not meet minimum experience requirement",
		"Does not meet minimum education requirement",
		"Ineligible to work in the country",
		"Salary expectations far exceed budget",
	}

	criteriaRedFlags = []string{
		"Frequent job changes (less than 1 year)",
		"Unexplained gaps in employment",
		"Declining career progression",
		"Poor attention to detail in application",
		"Generic application not tailored to position",
	}
)

// GenerateCriteria derives a candidate-independent screening checklist from
// a listing.
func (s *Screener) GenerateCriteria(listing *types.JobListing) (criteria *types.ScreeningCriteria, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("criteria generation panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			criteria, err = nil, &AnalysisError{Message: "Error generating screening criteria", Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if listing.IsEmpty() {
		return nil, &ScreeningError{Message: MsgNoJobListing}
	}

	reqs := s.ExtractRequirements(listing)
	mustHave := reqs.RequiredSkills[:min(mustHaveSkillCount, len(reqs.RequiredSkills))]
	areas := reqs.ExperienceRequirements.Areas

	questions := append([]string(nil), criteriaGeneralQuestions...)
	for _, skill := range mustHave[:min(3, len(mustHave))] {
		questions = append(questions, "Describe your experience with "+skill)
	}
	for _, area := range areas[:min(2, len(areas))] {
		questions = append(questions, "Tell me about your experience with "+area)
	}

	return &types.ScreeningCriteria{
		IsValid:  true,
		JobTitle: orDefault(listing.Title, "Unknown Position"),
		Criteria: types.CriteriaDetail{
			Skills: types.SkillCriteria{
				MustHave:   append([]string{}, mustHave...),
				NiceToHave: reqs.PreferredSkills,
			},
			Education: types.EducationCriteria{
				MinimumLevel:    orDefault(reqs.EducationRequirements.MinDegreeLevel, defaultMinDegree),
				PreferredFields: reqs.EducationRequirements.PreferredFields,
				IsRequired:      reqs.EducationRequirements.Required,
			},
			Experience: types.ExperienceCriteria{
				MinimumYears:   reqs.ExperienceRequirements.MinYears,
				PreferredYears: reqs.ExperienceRequirements.PreferredYears,
				KeyAreas:       areas,
			},
			ScreeningQuestions:     questions,
			AutomaticDisqualifiers: append([]string(nil), automaticDisqualifiers...),
			RedFlags:               append([]string(nil), criteriaRedFlags...),
		},
	}, nil
}
